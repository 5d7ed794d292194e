package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/studiowebux/reqview/internal/config"
	"github.com/studiowebux/reqview/internal/keybinds"
	"github.com/studiowebux/reqview/internal/types"
)

// Mode represents the current TUI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeFilter
	ModePicker
	ModeHelp
)

// Field identifies a form field
type Field int

const (
	FieldURL Field = iota
	FieldMethod
	FieldBody
	FieldCert
	fieldCount
)

// Tab identifies a response panel tab
type Tab int

const (
	TabBody Tab = iota
	TabHeaders
	TabError
	tabCount
)

func (t Tab) String() string {
	switch t {
	case TabBody:
		return "Body"
	case TabHeaders:
		return "Headers"
	case TabError:
		return "Error"
	}
	return "?"
}

// Model represents the TUI state
type Model struct {
	settings *config.Settings
	keys     *keybinds.Registry
	version  string

	// Update check
	updateAvailable bool
	latestVersion   string

	// Form state
	urlInput     textinput.Model
	bodyInput    textarea.Model
	certPath     string
	methodIndex  int
	focusedField Field
	focusedPanel string // "form" or "response"

	// Dispatch state (one request in flight per submission)
	loading       bool
	loadingSpin   spinner.Model
	cancelRequest context.CancelFunc
	result        *types.Result

	// Response view state
	activeTab     Tab
	responseView  viewport.Model
	helpView      viewport.Model
	responseLines []string // plain content of the active tab, for search
	filterExpr    string
	filteredBody  string

	// Search state
	searchInput   textinput.Model
	filterInput   textinput.Model
	searchQuery   string
	searchMatches []int
	searchIndex   int

	// Certificate picker
	picker filepicker.Model

	// UI state
	mode       Mode
	fullscreen bool
	width      int
	height     int
	statusMsg string
	errorMsg  string
}

// Method returns the currently selected HTTP method
func (m *Model) Method() string {
	return types.KnownMethods[m.methodIndex]
}

// cycleMethod moves the method selection forward or backward, wrapping around
func (m *Model) cycleMethod(delta int) {
	n := len(types.KnownMethods)
	m.methodIndex = (m.methodIndex + delta + n) % n
}

// nextField moves focus to the next form field, wrapping around
func (m *Model) nextField(delta int) {
	n := int(fieldCount)
	m.focusedField = Field((int(m.focusedField) + delta + n) % n)
	m.syncFieldFocus()
}

// syncFieldFocus focuses the text component backing the selected field
func (m *Model) syncFieldFocus() {
	m.urlInput.Blur()
	m.bodyInput.Blur()

	switch m.focusedField {
	case FieldURL:
		m.urlInput.Focus()
	case FieldBody:
		m.bodyInput.Focus()
	}
}

// nextTab moves the response tab selection, wrapping around
func (m *Model) nextTab(delta int) {
	n := int(tabCount)
	m.activeTab = Tab((int(m.activeTab) + delta + n) % n)
	m.updateResponseView()
}

// buildRequest assembles a request from the current form values
func (m *Model) buildRequest() *types.Request {
	return &types.Request{
		Method:   m.Method(),
		URL:      m.urlInput.Value(),
		Body:     m.bodyInput.Value(),
		Headers:  m.settings.DefaultHeaders,
		CertFile: m.certPath,
		Timeout:  m.settings.Timeout(),
	}
}
