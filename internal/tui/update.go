package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/reqview/internal/keybinds"
)

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.loadingSpin, cmd = m.loadingSpin.Update(msg)
		return m, cmd

	case resultMsg:
		m.finishRequest(msg.result)
		return m, nil

	case errorMsg:
		m.loading = false
		m.errorMsg = string(msg)
		return m, nil

	case statusMsg:
		m.statusMsg = string(msg)
		return m, nil

	case updateMsg:
		m.updateAvailable = msg.available
		m.latestVersion = msg.latest
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Non-key messages (directory reads etc.) must still reach the picker
	if m.mode == ModePicker {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c always force-quits, whatever mode we are in
	if action, ok := m.keys.Match(keybinds.ContextGlobal, msg.String()); ok && action == keybinds.ActionQuitForce {
		m.cancelInFlight()
		return m, tea.Quit
	}

	switch m.mode {
	case ModeHelp:
		return m.handleHelpKey(msg)
	case ModeSearch:
		return m.handleSearchKey(msg)
	case ModeFilter:
		return m.handleFilterKey(msg)
	case ModePicker:
		return m.handlePickerKey(msg)
	}

	if m.focusedPanel == "form" {
		return m.handleFormKey(msg)
	}
	return m.handleResponseKey(msg)
}

func (m *Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	action, matched := m.keys.Match(keybinds.ContextForm, key)

	// Keys the focused text component owns take precedence over bindings:
	// enter inserts a newline in the body, arrows move the cursor in inputs.
	if matched {
		switch {
		case action == keybinds.ActionSubmit && key == "enter" && m.focusedField == FieldBody:
			matched = false
		case (action == keybinds.ActionCycleMethod || action == keybinds.ActionCycleMethodBack) &&
			(key == "left" || key == "right") && m.focusedField != FieldMethod:
			matched = false
		}
	}

	if matched {
		switch action {
		case keybinds.ActionQuit:
			return m, tea.Quit
		case keybinds.ActionSubmit:
			if key == "enter" && m.focusedField == FieldCert {
				return m.openPicker()
			}
			return m, m.submitRequest()
		case keybinds.ActionCancelRequest:
			if m.loading {
				m.cancelInFlight()
			} else {
				m.statusMsg = ""
				m.errorMsg = ""
			}
			return m, nil
		case keybinds.ActionNextField:
			m.nextField(1)
			return m, nil
		case keybinds.ActionPrevField:
			m.nextField(-1)
			return m, nil
		case keybinds.ActionCycleMethod:
			if key == "left" {
				m.cycleMethod(-1)
			} else {
				m.cycleMethod(1)
			}
			return m, nil
		case keybinds.ActionCycleMethodBack:
			m.cycleMethod(-1)
			return m, nil
		case keybinds.ActionOpenPicker:
			return m.openPicker()
		case keybinds.ActionSwitchFocus:
			m.focusedPanel = "response"
			return m, nil
		case keybinds.ActionOpenHelp:
			return m.openHelp()
		}
	}

	// Field-local editing
	switch m.focusedField {
	case FieldURL:
		var cmd tea.Cmd
		m.urlInput, cmd = m.urlInput.Update(msg)
		return m, cmd
	case FieldBody:
		var cmd tea.Cmd
		m.bodyInput, cmd = m.bodyInput.Update(msg)
		return m, cmd
	case FieldMethod:
		if key == " " {
			m.cycleMethod(1)
		}
	case FieldCert:
		if key == "backspace" || key == "delete" {
			m.certPath = ""
			m.statusMsg = "Certificate cleared"
		}
	}
	return m, nil
}

func (m *Model) handleResponseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, matched := m.keys.Match(keybinds.ContextResponse, msg.String())
	if !matched {
		var cmd tea.Cmd
		m.responseView, cmd = m.responseView.Update(msg)
		return m, cmd
	}

	switch action {
	case keybinds.ActionQuit:
		return m, tea.Quit
	case keybinds.ActionOpenHelp:
		return m.openHelp()
	case keybinds.ActionSubmit:
		return m, m.submitRequest()
	case keybinds.ActionNextTab:
		m.nextTab(1)
	case keybinds.ActionPrevTab:
		m.nextTab(-1)
	case keybinds.ActionCopyToClipboard:
		return m, m.copyBody()
	case keybinds.ActionOpenFilter:
		m.mode = ModeFilter
		m.filterInput.SetValue(m.filterExpr)
		m.filterInput.Focus()
		return m, textinput.Blink
	case keybinds.ActionClearFilter:
		m.clearFilter()
	case keybinds.ActionOpenSearch:
		m.mode = ModeSearch
		m.searchInput.SetValue("")
		m.searchInput.Focus()
		return m, textinput.Blink
	case keybinds.ActionSearchNext:
		m.nextMatch(1)
	case keybinds.ActionSearchPrevious:
		m.nextMatch(-1)
	case keybinds.ActionSearchClear:
		if m.loading {
			m.cancelInFlight()
		} else {
			m.clearSearch()
			m.statusMsg = ""
			m.errorMsg = ""
		}
	case keybinds.ActionToggleFullscreen:
		m.fullscreen = !m.fullscreen
		m.resize()
	case keybinds.ActionScrollUp:
		m.responseView.LineUp(1)
	case keybinds.ActionScrollDown:
		m.responseView.LineDown(1)
	case keybinds.ActionPageUp:
		m.responseView.PageUp()
	case keybinds.ActionPageDown:
		m.responseView.PageDown()
	case keybinds.ActionGoToTop:
		m.responseView.GotoTop()
	case keybinds.ActionGoToBottom:
		m.responseView.GotoBottom()
	case keybinds.ActionSwitchFocus:
		m.focusedPanel = "form"
	}
	return m, nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if action, ok := m.keys.Match(keybinds.ContextSearch, msg.String()); ok {
		switch action {
		case keybinds.ActionTextSubmit:
			m.mode = ModeNormal
			m.searchInput.Blur()
			m.runSearch(m.searchInput.Value())
			return m, nil
		case keybinds.ActionTextCancel:
			m.mode = ModeNormal
			m.searchInput.Blur()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if action, ok := m.keys.Match(keybinds.ContextFilter, msg.String()); ok {
		switch action {
		case keybinds.ActionTextSubmit:
			m.mode = ModeNormal
			m.filterInput.Blur()
			m.applyFilter(m.filterInput.Value())
			return m, nil
		case keybinds.ActionTextCancel:
			m.mode = ModeNormal
			m.filterInput.Blur()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

func (m *Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if action, ok := m.keys.Match(keybinds.ContextPicker, msg.String()); ok && action == keybinds.ActionTextCancel {
		m.mode = ModeNormal
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if selected, path := m.picker.DidSelectFile(msg); selected {
		m.certPath = path
		m.mode = ModeNormal
		m.focusedField = FieldCert
		m.statusMsg = fmt.Sprintf("Certificate selected: %s (read only, never applied to the connection)", path)
	}

	return m, cmd
}

func (m *Model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if action, ok := m.keys.Match(keybinds.ContextHelp, msg.String()); ok {
		switch action {
		case keybinds.ActionTextCancel:
			m.mode = ModeNormal
			return m, nil
		case keybinds.ActionScrollUp:
			m.helpView.LineUp(1)
			return m, nil
		case keybinds.ActionScrollDown:
			m.helpView.LineDown(1)
			return m, nil
		}
	}
	return m, nil
}

func (m *Model) openPicker() (tea.Model, tea.Cmd) {
	m.mode = ModePicker
	return m, m.picker.Init()
}

func (m *Model) openHelp() (tea.Model, tea.Cmd) {
	m.mode = ModeHelp
	m.helpView.SetContent(m.renderHelpContent())
	m.helpView.GotoTop()
	return m, nil
}

// resize recomputes component dimensions after a window change
func (m *Model) resize() {
	if m.width == 0 {
		return
	}

	formWidth, responseWidth := m.panelWidths()

	m.urlInput.Width = formWidth - 12
	m.bodyInput.SetWidth(formWidth - 4)
	m.bodyInput.SetHeight(maxInt(3, m.height-16))

	m.responseView.Width = responseWidth - 4
	m.responseView.Height = m.height - 7

	m.helpView.Width = m.width - 6
	m.helpView.Height = m.height - 6

	m.picker.Height = m.height - 8

	m.updateResponseView()
}

// panelWidths computes the form/response split, mirroring renderMain
func (m *Model) panelWidths() (int, int) {
	if m.fullscreen {
		return 0, m.width - 2
	}
	formWidth := maxInt(40, m.width*40/100)
	if m.width < 100 {
		formWidth = m.width / 2
	}
	return formWidth, m.width - formWidth - 4
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
