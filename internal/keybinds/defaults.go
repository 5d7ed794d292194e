package keybinds

// NewDefaultRegistry returns the built-in bindings. User overrides from
// keybinds.yaml are merged on top of these.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	// Global
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)

	// Form (keys that work while a text field may be focused use modifiers)
	r.Register(ContextForm, "ctrl+s", ActionSubmit)
	r.Register(ContextForm, "enter", ActionSubmit)
	r.Register(ContextForm, "esc", ActionCancelRequest)
	r.Register(ContextForm, "tab", ActionNextField)
	r.Register(ContextForm, "shift+tab", ActionPrevField)
	r.Register(ContextForm, "ctrl+m", ActionCycleMethod)
	r.RegisterMultiple(ContextForm, []string{"left", "right"}, ActionCycleMethod)
	r.Register(ContextForm, "ctrl+o", ActionOpenPicker)
	r.Register(ContextForm, "ctrl+r", ActionSwitchFocus)
	r.Register(ContextForm, "ctrl+h", ActionOpenHelp)
	r.Register(ContextForm, "ctrl+q", ActionQuit)

	// Response
	r.Register(ContextResponse, "q", ActionQuit)
	r.Register(ContextResponse, "?", ActionOpenHelp)
	r.Register(ContextResponse, "tab", ActionNextTab)
	r.Register(ContextResponse, "shift+tab", ActionPrevTab)
	r.RegisterMultiple(ContextResponse, []string{"h", "left"}, ActionPrevTab)
	r.RegisterMultiple(ContextResponse, []string{"l", "right"}, ActionNextTab)
	r.Register(ContextResponse, "c", ActionCopyToClipboard)
	r.Register(ContextResponse, "f", ActionOpenFilter)
	r.Register(ContextResponse, "F", ActionClearFilter)
	r.Register(ContextResponse, "/", ActionOpenSearch)
	r.Register(ContextResponse, "n", ActionSearchNext)
	r.Register(ContextResponse, "N", ActionSearchPrevious)
	r.Register(ContextResponse, "esc", ActionSearchClear)
	r.Register(ContextResponse, "z", ActionToggleFullscreen)
	r.RegisterMultiple(ContextResponse, []string{"k", "up"}, ActionScrollUp)
	r.RegisterMultiple(ContextResponse, []string{"j", "down"}, ActionScrollDown)
	r.Register(ContextResponse, "pgup", ActionPageUp)
	r.Register(ContextResponse, "pgdown", ActionPageDown)
	r.Register(ContextResponse, "g", ActionGoToTop)
	r.Register(ContextResponse, "G", ActionGoToBottom)
	r.Register(ContextResponse, "ctrl+r", ActionSwitchFocus)
	r.Register(ContextResponse, "enter", ActionSubmit)

	// Search / filter inputs
	r.Register(ContextSearch, "enter", ActionTextSubmit)
	r.Register(ContextSearch, "esc", ActionTextCancel)
	r.Register(ContextFilter, "enter", ActionTextSubmit)
	r.Register(ContextFilter, "esc", ActionTextCancel)

	// Certificate picker
	r.Register(ContextPicker, "esc", ActionTextCancel)

	// Help viewer
	r.RegisterMultiple(ContextHelp, []string{"esc", "q", "?"}, ActionTextCancel)
	r.RegisterMultiple(ContextHelp, []string{"k", "up"}, ActionScrollUp)
	r.RegisterMultiple(ContextHelp, []string{"j", "down"}, ActionScrollDown)

	return r
}
