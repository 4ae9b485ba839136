package keymap

import (
	"slices"
	"sort"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// Binding maps a key to a command within a context. Bindings without Help are
// active but left out of the help footer.
type Binding struct {
	Key     string
	Command string
	Context string
	Help    string
}

// Registry resolves keys to commands per context.
type Registry struct {
	bindings  []Binding
	byKey     map[string]map[string]string // context -> key -> command
	overrides map[string]string            // key -> command, any context defining command
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byKey:     make(map[string]map[string]string),
		overrides: make(map[string]string),
	}
}

// RegisterBinding adds a binding. A later binding for the same context and key
// replaces the earlier one.
func (r *Registry) RegisterBinding(b Binding) {
	r.bindings = append(r.bindings, b)
	ctx := r.byKey[b.Context]
	if ctx == nil {
		ctx = make(map[string]string)
		r.byKey[b.Context] = ctx
	}
	ctx[b.Key] = b.Command
}

// SetUserOverride makes key trigger command in every context that has command.
func (r *Registry) SetUserOverride(key, command string) {
	r.overrides[key] = command
}

// Lookup returns the command bound to key in context, or "".
func (r *Registry) Lookup(context, key string) string {
	if cmd, ok := r.overrides[key]; ok && r.hasCommand(context, cmd) {
		return cmd
	}
	return r.byKey[context][key]
}

func (r *Registry) hasCommand(context, command string) bool {
	for _, b := range r.bindings {
		if b.Context == context && b.Command == command {
			return true
		}
	}
	return false
}

// Keys returns every key that triggers command in context, defaults first.
func (r *Registry) Keys(context, command string) []string {
	var keys []string
	for _, b := range r.bindings {
		if b.Context == context && b.Command == command && r.Lookup(context, b.Key) == command {
			keys = append(keys, b.Key)
		}
	}
	var extra []string
	for k, cmd := range r.overrides {
		if cmd == command && r.hasCommand(context, command) && !slices.Contains(keys, k) {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

// Binding returns a bubbles key binding for command in context, carrying all
// of its keys and its help text.
func (r *Registry) Binding(context, command string) key.Binding {
	keys := r.Keys(context, command)
	if len(keys) == 0 {
		return key.NewBinding(key.WithDisabled())
	}
	desc := ""
	for _, b := range r.bindings {
		if b.Context == context && b.Command == command && b.Help != "" {
			desc = b.Help
			break
		}
	}
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(keys[0], desc))
}

// HelpFor returns the help.KeyMap for context, in registration order.
func (r *Registry) HelpFor(context string) help.KeyMap {
	var out []key.Binding
	seen := make(map[string]bool)
	for _, b := range r.bindings {
		if b.Context != context || b.Help == "" || seen[b.Command] {
			continue
		}
		seen[b.Command] = true
		out = append(out, r.Binding(context, b.Command))
	}
	return contextHelp(out)
}

// contextHelp implements help.KeyMap over a flat binding list.
type contextHelp []key.Binding

func (c contextHelp) ShortHelp() []key.Binding { return c }

func (c contextHelp) FullHelp() [][]key.Binding {
	const perColumn = 4
	var cols [][]key.Binding
	for i := 0; i < len(c); i += perColumn {
		cols = append(cols, c[i:min(i+perColumn, len(c))])
	}
	return cols
}
