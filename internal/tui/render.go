package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/reqview/internal/executor"
	"github.com/studiowebux/reqview/internal/format"
	"github.com/studiowebux/reqview/internal/keybinds"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"}
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"}
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"}
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"}
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)
)

// View implements tea.Model
func (m *Model) View() string {
	if m.width == 0 {
		return ""
	}

	switch m.mode {
	case ModeHelp:
		return m.renderHelp()
	case ModePicker:
		return m.renderPicker()
	}

	return m.renderMain()
}

// renderMain renders the request form beside the response panel
func (m *Model) renderMain() string {
	formWidth, responseWidth := m.panelWidths()

	response := m.renderResponse(responseWidth - 2)

	formBorderColor := colorGray
	responseBorderColor := colorGray
	if m.focusedPanel == "form" {
		formBorderColor = colorGreen
	} else {
		responseBorderColor = colorGreen
	}

	responseBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(responseBorderColor).
		Width(responseWidth).
		Height(m.height - 3).
		Render(response)

	statusBar := m.renderStatusBar()

	if m.fullscreen {
		return lipgloss.JoinVertical(lipgloss.Left, responseBox, statusBar)
	}

	form := m.renderForm(formWidth - 2)
	formBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(formBorderColor).
		Width(formWidth).
		Height(m.height - 3).
		Render(form)

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, formBox, responseBox)

	return lipgloss.JoinVertical(lipgloss.Left, mainView, statusBar)
}

// renderForm renders the request form panel
func (m *Model) renderForm(width int) string {
	var lines []string

	lines = append(lines, styleTitle.Render("Request"))
	lines = append(lines, "")

	lines = append(lines, m.fieldLabel(FieldURL, "URL"))
	lines = append(lines, m.urlInput.View())
	lines = append(lines, "")

	method := fmt.Sprintf("< %s >", m.Method())
	if m.focusedField == FieldMethod {
		method = styleSelected.Render(method)
	}
	lines = append(lines, m.fieldLabel(FieldMethod, "Method")+"  "+method)
	lines = append(lines, "")

	bodyLabel := m.fieldLabel(FieldBody, "Body (JSON)")
	if !methodAllowsBodyLabel(m.Method()) {
		bodyLabel += styleSubtle.Render("  (ignored for " + m.Method() + ")")
	}
	lines = append(lines, bodyLabel)
	lines = append(lines, m.bodyInput.View())
	lines = append(lines, "")

	cert := m.certPath
	if cert == "" {
		cert = styleSubtle.Render("(none)")
	}
	lines = append(lines, m.fieldLabel(FieldCert, "Client certificate")+"  "+cert)
	if m.certPath != "" {
		lines = append(lines, styleSubtle.Render("  read only, never applied to the connection"))
	}
	lines = append(lines, "")

	if m.loading {
		lines = append(lines, m.loadingSpin.View()+" dispatching...")
	} else {
		lines = append(lines, styleSubtle.Render("enter to send | tab next field | ctrl+o pick cert"))
	}

	content := strings.Join(lines, "\n")
	return lipgloss.NewStyle().MaxWidth(width).Padding(1).Render(content)
}

func (m *Model) fieldLabel(field Field, label string) string {
	if m.focusedField == field && m.focusedPanel == "form" {
		return styleSelected.Render(label)
	}
	return styleTitle.Render(label)
}

func methodAllowsBodyLabel(method string) bool {
	return method != "GET" && method != "HEAD"
}

// renderResponse renders the tabbed response panel
func (m *Model) renderResponse(width int) string {
	var lines []string

	lines = append(lines, m.renderTabBar())

	if m.result == nil {
		lines = append(lines, "")
		if m.loading {
			lines = append(lines, m.loadingSpin.View()+" waiting for response...")
		} else {
			lines = append(lines, styleSubtle.Render("No response yet. Fill the form and press enter."))
		}
		content := strings.Join(lines, "\n")
		return lipgloss.NewStyle().MaxWidth(width).Padding(1).Render(content)
	}

	lines = append(lines, m.renderResultSummary())
	lines = append(lines, "")
	lines = append(lines, m.responseView.View())

	content := strings.Join(lines, "\n")
	return lipgloss.NewStyle().MaxWidth(width).Padding(1).Render(content)
}

func (m *Model) renderTabBar() string {
	var tabs []string
	for t := TabBody; t < tabCount; t++ {
		label := " " + t.String() + " "
		if t == m.activeTab {
			tabs = append(tabs, styleSelected.Render(label))
		} else {
			tabs = append(tabs, styleSubtle.Render(label))
		}
	}
	return strings.Join(tabs, " ")
}

// renderResultSummary renders the status/duration/size line
func (m *Model) renderResultSummary() string {
	r := m.result

	var status string
	switch {
	case r.NoResponse():
		status = styleError.Render("no response")
	case r.OK():
		status = styleSuccess.Render(r.StatusText)
	case executor.IsClientErrorStatus(r.Status):
		status = styleWarning.Render(r.StatusText)
	default:
		status = styleError.Render(r.StatusText)
	}

	summary := fmt.Sprintf("%s | %s | %s",
		status,
		format.Duration(r.Duration),
		format.Size(r.ResponseSize))

	if m.filterExpr != "" {
		summary += styleWarning.Render("  [filtered: " + m.filterExpr + "]")
	}
	if len(m.searchMatches) > 0 {
		summary += styleWarning.Render(fmt.Sprintf("  [match %d/%d]", m.searchIndex+1, len(m.searchMatches)))
	}

	return summary
}

// updateResponseView rebuilds the viewport content for the active tab
func (m *Model) updateResponseView() {
	if m.result == nil {
		m.responseView.SetContent("")
		m.responseLines = nil
		return
	}

	plain := m.tabContent()
	m.responseLines = strings.Split(plain, "\n")

	styled := plain
	if m.activeTab == TabBody && m.result.JSON != nil {
		styled = format.HighlightJSON(plain, m.settings.Theme)
	}

	m.responseView.SetContent(styled)
	m.responseView.GotoTop()
}

// tabContent builds the plain text for the active tab
func (m *Model) tabContent() string {
	r := m.result

	switch m.activeTab {
	case TabBody:
		return m.visibleBody()

	case TabHeaders:
		if len(r.Headers) == 0 {
			return "(no headers)"
		}
		var sb strings.Builder
		for _, h := range r.Headers {
			sb.WriteString(h.Name)
			sb.WriteString(": ")
			sb.WriteString(h.Value)
			sb.WriteString("\n")
		}
		return strings.TrimRight(sb.String(), "\n")

	case TabError:
		if r.Error == nil {
			return "(no error)"
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "Kind:    %s\n", r.Error.Kind)
		fmt.Fprintf(&sb, "Message: %s\n", r.Error.Message)
		if r.Explanation != "" {
			sb.WriteString("\n")
			sb.WriteString(r.Explanation)
			sb.WriteString("\n")
		}
		if r.Error.Details != "" {
			sb.WriteString("\n")
			sb.WriteString(r.Error.Details)
			sb.WriteString("\n")
		}
		if r.Error.Trace != "" {
			sb.WriteString("\nTrace:\n")
			sb.WriteString(r.Error.Trace)
			sb.WriteString("\n")
		}
		if r.Notes != "" {
			sb.WriteString("\nNotes: ")
			sb.WriteString(r.Notes)
			sb.WriteString("\n")
		}
		return strings.TrimRight(sb.String(), "\n")
	}

	return ""
}

// visibleBody returns the body text the Body tab shows
func (m *Model) visibleBody() string {
	if m.filteredBody != "" {
		return m.filteredBody
	}
	if m.result.JSON != nil {
		return format.PrettyJSON(m.result.JSON, m.result.Body)
	}
	return m.result.Body
}

// renderStatusBar renders the status bar at the bottom
func (m *Model) renderStatusBar() string {
	left := fmt.Sprintf("reqview v%s", m.version)
	if m.updateAvailable {
		left += styleWarning.Render(fmt.Sprintf(" (v%s available)", m.latestVersion))
	}

	right := ""
	switch m.mode {
	case ModeSearch:
		right = m.searchInput.View()
	case ModeFilter:
		right = m.filterInput.View()
	default:
		if m.errorMsg != "" {
			right = styleError.Render(m.errorMsg)
		} else if m.statusMsg != "" {
			if strings.Contains(m.statusMsg, "copied") || strings.Contains(m.statusMsg, "Match") {
				right = styleSuccess.Render(m.statusMsg)
			} else {
				right = m.statusMsg
			}
		} else {
			right = styleSubtle.Render("? for help | q to quit")
		}
	}

	spacing := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if spacing < 1 {
		spacing = 1
	}

	return left + strings.Repeat(" ", spacing) + right
}

// renderPicker renders the certificate file picker
func (m *Model) renderPicker() string {
	title := styleTitle.Render("Pick a client certificate")
	note := styleSubtle.Render("The file is read and summarized only; it is never applied to the connection.")
	return lipgloss.JoinVertical(lipgloss.Left, title, note, "", m.picker.View())
}

// renderHelp renders the help viewer
func (m *Model) renderHelp() string {
	title := styleTitle.Render("Help")
	footer := styleSubtle.Render("esc or q to close")
	return lipgloss.JoinVertical(lipgloss.Left, title, "", m.helpView.View(), "", footer)
}

// renderHelpContent lists the active keybindings per context
func (m *Model) renderHelpContent() string {
	type entry struct {
		context keybinds.Context
		action  keybinds.Action
		desc    string
	}

	entries := []entry{
		{keybinds.ContextForm, keybinds.ActionSubmit, "Send the request"},
		{keybinds.ContextForm, keybinds.ActionNextField, "Next form field"},
		{keybinds.ContextForm, keybinds.ActionPrevField, "Previous form field"},
		{keybinds.ContextForm, keybinds.ActionCycleMethod, "Cycle HTTP method"},
		{keybinds.ContextForm, keybinds.ActionOpenPicker, "Pick client certificate"},
		{keybinds.ContextForm, keybinds.ActionSwitchFocus, "Focus response panel"},
		{keybinds.ContextForm, keybinds.ActionCancelRequest, "Cancel in-flight request"},
		{keybinds.ContextResponse, keybinds.ActionNextTab, "Next response tab"},
		{keybinds.ContextResponse, keybinds.ActionPrevTab, "Previous response tab"},
		{keybinds.ContextResponse, keybinds.ActionCopyToClipboard, "Copy response body"},
		{keybinds.ContextResponse, keybinds.ActionOpenFilter, "Filter body (JMESPath)"},
		{keybinds.ContextResponse, keybinds.ActionClearFilter, "Clear filter"},
		{keybinds.ContextResponse, keybinds.ActionOpenSearch, "Search response"},
		{keybinds.ContextResponse, keybinds.ActionSearchNext, "Next search match"},
		{keybinds.ContextResponse, keybinds.ActionSearchPrevious, "Previous search match"},
		{keybinds.ContextResponse, keybinds.ActionToggleFullscreen, "Toggle fullscreen"},
		{keybinds.ContextResponse, keybinds.ActionQuit, "Quit"},
	}

	var sb strings.Builder
	currentContext := keybinds.Context("")
	for _, e := range entries {
		if e.context != currentContext {
			currentContext = e.context
			sb.WriteString("\n")
			sb.WriteString(styleTitle.Render(titleCase(string(e.context))))
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "  %-14s %s\n", m.keys.GetBindingString(e.context, e.action), e.desc)
	}

	sb.WriteString("\n")
	sb.WriteString(styleSubtle.Render("Override any binding in ~/.reqview/keybinds.yaml"))

	return sb.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
