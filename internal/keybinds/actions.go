package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the context in which keybindings are active
type Context string

const (
	// Contexts define where keybindings are active
	ContextGlobal   Context = "global"   // Available everywhere
	ContextForm     Context = "form"     // Request form focused
	ContextResponse Context = "response" // Response panel focused
	ContextSearch   Context = "search"   // Search input mode
	ContextFilter   Context = "filter"   // JMESPath filter input mode
	ContextPicker   Context = "picker"   // Certificate file picker
	ContextHelp     Context = "help"     // Help viewer
)

const (
	// Global actions
	ActionQuit      Action = "quit"       // Quit application
	ActionQuitForce Action = "quit_force" // Force quit (ctrl+c)
	ActionOpenHelp  Action = "open_help"  // Open help viewer

	// Form actions
	ActionSubmit          Action = "submit"            // Dispatch the request
	ActionCancelRequest   Action = "cancel_request"    // Cancel the in-flight request
	ActionNextField       Action = "next_field"        // Focus next form field
	ActionPrevField       Action = "prev_field"        // Focus previous form field
	ActionCycleMethod     Action = "cycle_method"      // Next HTTP method
	ActionCycleMethodBack Action = "cycle_method_back" // Previous HTTP method
	ActionOpenPicker      Action = "open_picker"       // Open certificate file picker
	ActionSwitchFocus     Action = "switch_focus"      // Switch between form and response

	// Response actions
	ActionNextTab          Action = "next_tab"          // Next response tab
	ActionPrevTab          Action = "prev_tab"          // Previous response tab
	ActionCopyToClipboard  Action = "copy_to_clipboard" // Copy response body
	ActionOpenFilter       Action = "open_filter"       // Open JMESPath filter input
	ActionClearFilter      Action = "clear_filter"      // Drop the applied filter
	ActionOpenSearch       Action = "open_search"       // Open response search
	ActionSearchNext       Action = "search_next"       // Next search match
	ActionSearchPrevious   Action = "search_previous"   // Previous search match
	ActionSearchClear      Action = "search_clear"      // Clear search
	ActionToggleFullscreen Action = "toggle_fullscreen" // Fullscreen response panel
	ActionScrollUp         Action = "scroll_up"         // Scroll viewport up
	ActionScrollDown       Action = "scroll_down"       // Scroll viewport down
	ActionPageUp           Action = "page_up"           // Page up
	ActionPageDown         Action = "page_down"         // Page down
	ActionGoToTop          Action = "go_to_top"         // Viewport top
	ActionGoToBottom       Action = "go_to_bottom"      // Viewport bottom

	// Modal/input actions
	ActionTextSubmit Action = "text_submit" // Submit text input
	ActionTextCancel Action = "text_cancel" // Cancel text input / close modal
)

// knownActions is the full action vocabulary, used by the validator
var knownActions = map[Action]bool{
	ActionQuit: true, ActionQuitForce: true, ActionOpenHelp: true,
	ActionSubmit: true, ActionCancelRequest: true,
	ActionNextField: true, ActionPrevField: true,
	ActionCycleMethod: true, ActionCycleMethodBack: true,
	ActionOpenPicker: true, ActionSwitchFocus: true,
	ActionNextTab: true, ActionPrevTab: true,
	ActionCopyToClipboard: true, ActionOpenFilter: true, ActionClearFilter: true,
	ActionOpenSearch: true, ActionSearchNext: true, ActionSearchPrevious: true,
	ActionSearchClear: true, ActionToggleFullscreen: true,
	ActionScrollUp: true, ActionScrollDown: true,
	ActionPageUp: true, ActionPageDown: true,
	ActionGoToTop: true, ActionGoToBottom: true,
	ActionTextSubmit: true, ActionTextCancel: true,
}

// KnownAction reports whether the action name is part of the vocabulary
func KnownAction(a Action) bool {
	return knownActions[a]
}
