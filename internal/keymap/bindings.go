package keymap

// DefaultBindings returns the built-in bindings.
func DefaultBindings() []Binding {
	return []Binding{
		// Global
		{Key: "q", Action: ActionQuit, Context: ContextGlobal},
		{Key: "tab", Action: ActionNextPage, Context: ContextGlobal},
		{Key: "shift+tab", Action: ActionPrevPage, Context: ContextGlobal},
		{Key: "ctrl+f", Action: ActionFocusFlags, Context: ContextGlobal},
		{Key: "f2", Action: ActionFocusFlags, Context: ContextGlobal},

		// Debug panel
		{Key: "esc", Action: ActionBack, Context: ContextFlags},
		{Key: "ctrl+f", Action: ActionBack, Context: ContextFlags},
		{Key: "f2", Action: ActionBack, Context: ContextFlags},
		{Key: "j", Action: ActionDown, Context: ContextFlags},
		{Key: "down", Action: ActionDown, Context: ContextFlags},
		{Key: "k", Action: ActionUp, Context: ContextFlags},
		{Key: "up", Action: ActionUp, Context: ContextFlags},
		{Key: "space", Action: ActionToggle, Context: ContextFlags},
		{Key: "enter", Action: ActionToggle, Context: ContextFlags},
		{Key: "e", Action: ActionEnable, Context: ContextFlags},
		{Key: "x", Action: ActionDisable, Context: ContextFlags},
		{Key: "y", Action: ActionCopyEnv, Context: ContextFlags},
		{Key: "r", Action: ActionResetAll, Context: ContextFlags},
	}
}

// RegisterDefaults registers the built-in bindings with r.
func RegisterDefaults(r *Registry) {
	for _, b := range DefaultBindings() {
		r.RegisterBinding(b)
	}
}
