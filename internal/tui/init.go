package tui

import (
	"os"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/reqview/internal/config"
	"github.com/studiowebux/reqview/internal/keybinds"
	"github.com/studiowebux/reqview/internal/types"
)

// New creates a new TUI model
func New(settings *config.Settings, keys *keybinds.Registry, version string) Model {
	urlInput := textinput.New()
	urlInput.Placeholder = "https://api.example.com/users"
	urlInput.Prompt = ""
	urlInput.Focus()

	bodyInput := textarea.New()
	bodyInput.Placeholder = `{"key": "value"}`
	bodyInput.ShowLineNumbers = false

	searchInput := textinput.New()
	searchInput.Prompt = "/"

	filterInput := textinput.New()
	filterInput.Placeholder = "items[].name"
	filterInput.Prompt = "filter: "

	picker := filepicker.New()
	picker.AllowedTypes = []string{".pem", ".crt", ".cer", ".key", ".p12"}
	if home, err := os.UserHomeDir(); err == nil {
		picker.CurrentDirectory = home
	}

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))

	methodIndex := 0
	for i, method := range types.KnownMethods {
		if method == settings.DefaultMethod {
			methodIndex = i
			break
		}
	}

	return Model{
		settings:     settings,
		keys:         keys,
		version:      version,
		urlInput:     urlInput,
		bodyInput:    bodyInput,
		searchInput:  searchInput,
		filterInput:  filterInput,
		picker:       picker,
		loadingSpin:  spin,
		methodIndex:  methodIndex,
		focusedField: FieldURL,
		focusedPanel: "form",
		mode:         ModeNormal,
		responseView: viewport.New(80, 20),
		helpView:     viewport.New(80, 20),
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, checkForUpdate(m.version))
}

// Run starts the TUI
func Run(version string) error {
	if err := config.Initialize(); err != nil {
		return err
	}

	settings, err := config.LoadOrDefault()
	if err != nil {
		return err
	}

	keys, err := keybinds.LoadOrDefault(config.KeybindsFile)
	if err != nil {
		return err
	}

	m := New(settings, keys, version)

	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}

	return nil
}
