package keymap

// Contexts a binding can belong to.
const (
	ContextList    = "list"
	ContextSearch  = "search"
	ContextForm    = "form"
	ContextPreview = "preview"
)

// DefaultBindings returns the default key bindings.
func DefaultBindings() []Binding {
	return []Binding{
		// Note list
		{Key: "q", Command: "quit", Context: ContextList, Help: "quit"},
		{Key: "ctrl+c", Command: "quit", Context: ContextList},
		{Key: "n", Command: "new-note", Context: ContextList, Help: "new"},
		{Key: "/", Command: "focus-search", Context: ContextList, Help: "search"},
		{Key: "d", Command: "delete-note", Context: ContextList, Help: "delete"},
		{Key: "x", Command: "delete-note", Context: ContextList},
		{Key: "j", Command: "cursor-down", Context: ContextList},
		{Key: "down", Command: "cursor-down", Context: ContextList, Help: "down"},
		{Key: "k", Command: "cursor-up", Context: ContextList},
		{Key: "up", Command: "cursor-up", Context: ContextList, Help: "up"},
		{Key: "g", Command: "cursor-top", Context: ContextList},
		{Key: "G", Command: "cursor-bottom", Context: ContextList},
		{Key: "left", Command: "prev-page", Context: ContextList, Help: "prev page"},
		{Key: "h", Command: "prev-page", Context: ContextList},
		{Key: "pgup", Command: "prev-page", Context: ContextList},
		{Key: "right", Command: "next-page", Context: ContextList, Help: "next page"},
		{Key: "l", Command: "next-page", Context: ContextList},
		{Key: "pgdown", Command: "next-page", Context: ContextList},
		{Key: "home", Command: "first-page", Context: ContextList, Help: "first page"},
		{Key: "end", Command: "last-page", Context: ContextList, Help: "last page"},
		{Key: "r", Command: "refresh", Context: ContextList, Help: "refresh"},
		{Key: "enter", Command: "open-preview", Context: ContextList, Help: "preview"},
		{Key: "p", Command: "toggle-preview", Context: ContextList, Help: "toggle preview"},
		{Key: ">", Command: "grow-preview", Context: ContextList, Help: "wider preview"},
		{Key: "<", Command: "shrink-preview", Context: ContextList, Help: "narrower preview"},
		{Key: "y", Command: "yank", Context: ContextList, Help: "copy"},
		{Key: "?", Command: "toggle-help", Context: ContextList, Help: "help"},

		// Search box
		{Key: "esc", Command: "blur-search", Context: ContextSearch, Help: "done"},
		{Key: "enter", Command: "blur-search", Context: ContextSearch},
		{Key: "down", Command: "blur-search", Context: ContextSearch},
		{Key: "ctrl+u", Command: "clear-search", Context: ContextSearch, Help: "clear"},
		{Key: "ctrl+c", Command: "quit", Context: ContextSearch},

		// Create-note form
		{Key: "tab", Command: "next-field", Context: ContextForm, Help: "next field"},
		{Key: "shift+tab", Command: "prev-field", Context: ContextForm, Help: "prev field"},
		{Key: "ctrl+s", Command: "submit", Context: ContextForm, Help: "save"},
		{Key: "esc", Command: "cancel", Context: ContextForm, Help: "cancel"},
		{Key: "ctrl+c", Command: "quit", Context: ContextForm},

		// Note preview
		{Key: "esc", Command: "back", Context: ContextPreview, Help: "back"},
		{Key: "q", Command: "back", Context: ContextPreview},
		{Key: "j", Command: "scroll-down", Context: ContextPreview},
		{Key: "down", Command: "scroll-down", Context: ContextPreview, Help: "scroll"},
		{Key: "k", Command: "scroll-up", Context: ContextPreview},
		{Key: "up", Command: "scroll-up", Context: ContextPreview},
		{Key: "y", Command: "yank", Context: ContextPreview, Help: "copy"},
		{Key: "ctrl+c", Command: "quit", Context: ContextPreview},
	}
}

// RegisterDefaults registers all default bindings with the registry.
func RegisterDefaults(r *Registry) {
	for _, b := range DefaultBindings() {
		r.RegisterBinding(b)
	}
}
