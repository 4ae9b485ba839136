package app

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/notehub/internal/config"
	"github.com/marcus/notehub/internal/debounce"
	"github.com/marcus/notehub/internal/form"
	"github.com/marcus/notehub/internal/keymap"
	"github.com/marcus/notehub/internal/note"
	"github.com/marcus/notehub/internal/notelist"
	"github.com/marcus/notehub/internal/pager"
	"github.com/marcus/notehub/internal/preview"
	"github.com/marcus/notehub/internal/query"
	"github.com/marcus/notehub/internal/searchbox"
	"github.com/marcus/notehub/internal/state"
	"github.com/marcus/notehub/internal/styles"
)

// notesNamespace groups every list query so a mutation can invalidate them
// together.
const notesNamespace = "notes"

// previewStep is how far one resize key moves the preview split, in percent.
const previewStep = 5

// changedKeys collects the cache keys that changed state during one Update.
// The cache reports into it synchronously, and a map is shared by every copy
// of the Model.
type changedKeys map[query.Key]struct{}

// take reports whether key changed and forgets everything collected.
func (c changedKeys) take(key query.Key) bool {
	_, ok := c[key]
	clear(c)
	return ok
}

// ModalKind identifies an app-level modal with explicit priority ordering.
// Lower values = higher priority (checked first for rendering and input routing).
type ModalKind int

const (
	ModalNone   ModalKind = iota // No modal open
	ModalCreate                  // Create-note form
	ModalHelp                    // Help overlay
)

// activeModal returns the highest-priority open modal.
func (m *Model) activeModal() ModalKind {
	switch {
	case m.form != nil:
		return ModalCreate
	case m.showHelp:
		return ModalHelp
	default:
		return ModalNone
	}
}

// Model is the root Bubble Tea model. It owns the page, the search text, the
// modal and every in-flight mutation; child components only render what they
// are given.
type Model struct {
	// Configuration
	cfg    *config.Config
	client Client

	// Keymap
	keymap        *keymap.Registry
	activeContext string

	// Query state. page is 1-based; search.Settled() is the only search text
	// that reaches the query key.
	page    int
	search  debounce.Value
	cache   *query.Cache[*note.Page]
	notes   *query.Observer[*note.Page]
	changed changedKeys

	// Components
	searchbox searchbox.Model
	list      notelist.Model
	pager     pager.Model
	preview   preview.Model
	spinner   spinner.Model
	help      help.Model
	form      *form.Model // non-nil while the create modal is open

	// Mutations in flight
	deleting      map[string]bool
	createPending bool

	// UI state
	width, height int
	ready         bool
	showHelp      bool
	showFooter    bool
	showPreview   bool

	// Status/toast messages
	statusMsg     string
	statusIsError bool
	statusSeq     int
	lastError     error
}

// New creates the root model. The first page is fetched by Init.
func New(cfg *config.Config, client Client, km *keymap.Registry) Model {
	if cfg == nil {
		cfg = config.Default()
	}
	if km == nil {
		km = keymap.NewRegistry()
		keymap.RegisterDefaults(km)
	}

	cache := query.New[*note.Page]()
	changed := make(changedKeys)
	cache.Subscribe(func(k query.Key) { changed[k] = struct{}{} })
	deleting := make(map[string]bool)

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.StatusLoading))

	m := Model{
		cfg:           cfg,
		client:        client,
		keymap:        km,
		activeContext: keymap.ContextList,
		page:          1,
		search:        debounce.New(cfg.List.SearchDebounce),
		cache:         cache,
		changed:       changed,
		searchbox:     searchbox.New(),
		list:          notelist.New(func(id string) bool { return deleting[id] }),
		pager:         pager.New(),
		preview:       preview.New(markdownStyle(cfg)),
		spinner:       sp,
		help:          help.New(),
		deleting:      deleting,
		showFooter:    cfg.UI.ShowFooter,
		showPreview:   state.GetShowPreview(),
	}

	if last := state.GetLastSearch(); last != "" {
		m.searchbox.SetValue(last)
		m.search.Set(last)
		m.search.Flush()
	}

	m.pager.SetKeyMap(pager.KeyMap{
		Prev:  km.Binding(keymap.ContextList, "prev-page"),
		Next:  km.Binding(keymap.ContextList, "next-page"),
		First: km.Binding(keymap.ContextList, "first-page"),
		Last:  km.Binding(keymap.ContextList, "last-page"),
	})
	m.notes = query.NewObserver(cache, m.currentKey())
	return m
}

// Init starts the spinner and fetches the first page.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch(m.currentKey()))
}

// currentKey is the query key for the page and settled search.
func (m *Model) currentKey() query.Key {
	return query.Key{Namespace: notesNamespace, Page: m.page, Search: m.search.Settled()}
}

// Page returns the current 1-based page.
func (m Model) Page() int { return m.page }

// Search returns the search text as typed.
func (m Model) Search() string { return m.searchbox.Value() }

// Result returns what the list currently shows.
func (m Model) Result() query.Result[*note.Page] { return m.notes.Result() }

// Deleting reports whether a delete for id is in flight.
func (m Model) Deleting(id string) bool { return m.deleting[id] }

// CreatePending reports whether a create is in flight.
func (m Model) CreatePending() bool { return m.createPending }

// FormOpen reports whether the create modal is open.
func (m Model) FormOpen() bool { return m.form != nil }

// fetch starts a list fetch for key unless one is already in flight.
func (m *Model) fetch(key query.Key) tea.Cmd {
	t, started := m.cache.Begin(key)
	if !started {
		return nil
	}
	slog.Debug("fetch notes", "key", key.String())
	return listNotes(m.client, t, m.cfg.List.PerPage)
}

// syncQuery points the observer at the current key, fetches it if the cache
// has nothing fresh, and refreshes the list from whatever is cached.
func (m *Model) syncQuery() tea.Cmd {
	key := m.currentKey()
	m.notes.SetKey(key)

	var cmd tea.Cmd
	if m.cache.NeedsFetch(key) {
		cmd = m.fetch(key)
	}
	m.applyResult()
	return cmd
}

// invalidateNotes marks every cached page stale and refetches the current one.
// The list picks up the new state through the cache subscription.
func (m *Model) invalidateNotes() tea.Cmd {
	m.cache.Invalidate(notesNamespace)
	return m.fetch(m.currentKey())
}

// applyResult copies the observed result into the list and pager.
func (m *Model) applyResult() {
	r := m.notes.Result()

	if s := m.search.Settled(); s != "" {
		m.list.SetEmptyText(fmt.Sprintf("No notes match %q", s))
	} else {
		m.list.SetEmptyText("No notes yet. Press n to create one.")
	}

	if !r.HasData || r.Data == nil {
		m.list.SetNotes(nil)
		m.pager.Set(m.page, 1)
		m.syncPreview()
		return
	}
	m.list.SetNotes(r.Data.Notes)
	m.pager.Set(m.page, max(1, r.Data.TotalPages))
	m.syncPreview()
}

// clampPage moves back to the last page when a fresh result shows the
// current page no longer exists, e.g. after deleting the last note on it.
func (m *Model) clampPage() tea.Cmd {
	r := m.notes.Result()
	if r.IsPlaceholder || r.Status != query.StatusSuccess || r.Data == nil {
		return nil
	}
	last := max(1, r.Data.TotalPages)
	if m.page <= last {
		return nil
	}
	m.page = last
	return m.syncQuery()
}

// syncPreview shows the selected note in the preview when it is on screen.
func (m *Model) syncPreview() {
	if !m.showPreview && m.activeContext != keymap.ContextPreview {
		return
	}
	n, ok := m.list.Selected()
	m.preview.SetNote(n, ok)
}

// setPage selects a 1-based page. Only applied when there is more than one.
func (m *Model) setPage(page int) tea.Cmd {
	if !m.pager.Visible() || page == m.page {
		return nil
	}
	m.page = page
	return m.syncQuery()
}

// setSearch records a new search text. The page goes back to 1 right away;
// the text reaches the query key once typing pauses.
func (m *Model) setSearch(s string) tea.Cmd {
	var cmds []tea.Cmd
	if m.page != 1 {
		m.page = 1
		cmds = append(cmds, m.syncQuery())
	}
	cmds = append(cmds, m.search.Set(s))
	return tea.Batch(cmds...)
}

// openForm shows the create modal.
func (m *Model) openForm() tea.Cmd {
	m.form = form.New()
	m.showHelp = false
	m.activeContext = keymap.ContextForm
	return m.form.Init()
}

// closeForm hides the create modal.
func (m *Model) closeForm() {
	m.form = nil
	m.activeContext = keymap.ContextList
}

// togglePreview shows or hides the preview pane and remembers the choice.
func (m *Model) togglePreview() {
	m.showPreview = !m.showPreview
	m.syncPreview()
	if err := state.SetShowPreview(m.showPreview); err != nil {
		slog.Warn("save preview preference", "err", err)
	}
}

// resizePreview widens or narrows the preview pane by delta percent and
// remembers the width. It does nothing while the pane is hidden.
func (m *Model) resizePreview(delta int) {
	if !m.showPreview {
		return
	}
	if err := state.SetPreviewWidth(state.GetPreviewWidth() + delta); err != nil {
		slog.Warn("save preview width", "err", err)
	}
}

// markdownStyle is the configured glamour style, or the theme's when unset.
func markdownStyle(cfg *config.Config) string {
	if cfg.UI.GlamourStyle != "" {
		return cfg.UI.GlamourStyle
	}
	return styles.GetMarkdownTheme()
}
