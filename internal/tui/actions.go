package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
	"github.com/studiowebux/reqview/internal/executor"
	"github.com/studiowebux/reqview/internal/filter"
	"github.com/studiowebux/reqview/internal/types"
	"github.com/studiowebux/reqview/internal/version"
)

// Messages flowing back into Update
type (
	resultMsg struct{ result *types.Result }
	errorMsg  string
	statusMsg string

	updateMsg struct {
		available bool
		latest    string
	}
)

// submitRequest dispatches the current form as a request
func (m *Model) submitRequest() tea.Cmd {
	// One request in flight per submission
	if m.loading {
		return func() tea.Msg {
			return errorMsg("Request already in progress")
		}
	}

	if strings.TrimSpace(m.urlInput.Value()) == "" {
		return func() tea.Msg {
			return errorMsg("Enter a URL first")
		}
	}

	m.loading = true
	m.errorMsg = ""
	m.statusMsg = fmt.Sprintf("Dispatching %s %s", m.Method(), m.urlInput.Value())

	req := m.buildRequest()
	opts := &executor.Options{
		Timeout:            m.settings.Timeout(),
		InsecureSkipVerify: m.settings.InsecureSkipVerify,
		FollowRedirects:    m.settings.FollowRedirects,
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancelRequest = cancel

	dispatch := func() tea.Msg {
		// Cancellation propagates through the context; a cancelled dispatch
		// still comes back as a classified result
		return resultMsg{result: executor.Execute(ctx, req, opts)}
	}

	return tea.Batch(m.loadingSpin.Tick, dispatch)
}

// cancelInFlight aborts the running request, if any
func (m *Model) cancelInFlight() {
	if m.cancelRequest != nil {
		m.cancelRequest()
		m.cancelRequest = nil
		m.statusMsg = "Cancelling request..."
	}
}

// finishRequest stores a completed result and resets dispatch state
func (m *Model) finishRequest(result *types.Result) {
	m.loading = false
	m.cancelRequest = nil
	m.result = result
	m.filterExpr = ""
	m.filteredBody = ""
	m.clearSearch()

	switch {
	case result.Error != nil && result.Error.Kind.Fatal():
		m.activeTab = TabError
		m.errorMsg = result.Error.Message
	case result.Error != nil:
		m.activeTab = TabBody
		m.statusMsg = fmt.Sprintf("%s in %dms (see Error tab)", result.StatusText, result.Duration)
	default:
		m.activeTab = TabBody
		m.statusMsg = fmt.Sprintf("%s in %dms", result.StatusText, result.Duration)
	}

	m.focusedPanel = "response"
	m.updateResponseView()
}

// copyBody copies the visible response body to the clipboard
func (m *Model) copyBody() tea.Cmd {
	if m.result == nil {
		return func() tea.Msg { return errorMsg("Nothing to copy") }
	}

	body := m.visibleBody()
	return func() tea.Msg {
		if err := clipboard.WriteAll(body); err != nil {
			return errorMsg(fmt.Sprintf("Failed to copy: %v", err))
		}
		return statusMsg("Response body copied")
	}
}

// applyFilter evaluates the JMESPath expression against the response body
func (m *Model) applyFilter(expression string) {
	if m.result == nil {
		m.errorMsg = "No response to filter"
		return
	}

	if expression == "" {
		m.filterExpr = ""
		m.filteredBody = ""
		m.updateResponseView()
		return
	}

	filtered, err := filter.Apply(m.result.Body, expression)
	if err != nil {
		m.errorMsg = err.Error()
		return
	}

	m.filterExpr = expression
	m.filteredBody = filtered
	m.activeTab = TabBody
	m.statusMsg = fmt.Sprintf("Filter applied: %s", expression)
	m.updateResponseView()
}

// clearFilter drops the applied filter
func (m *Model) clearFilter() {
	if m.filterExpr == "" {
		return
	}
	m.filterExpr = ""
	m.filteredBody = ""
	m.statusMsg = "Filter cleared"
	m.updateResponseView()
}

// runSearch fuzzy-matches the query against the visible response lines
func (m *Model) runSearch(query string) {
	m.searchQuery = query
	m.searchMatches = nil
	m.searchIndex = 0

	if query == "" || len(m.responseLines) == 0 {
		return
	}

	matches := fuzzy.Find(query, m.responseLines)
	for _, match := range matches {
		m.searchMatches = append(m.searchMatches, match.Index)
	}
	// Navigate in document order, not score order
	sort.Ints(m.searchMatches)

	if len(m.searchMatches) == 0 {
		m.errorMsg = fmt.Sprintf("No match for %q", query)
		return
	}

	m.statusMsg = fmt.Sprintf("Match 1 of %d", len(m.searchMatches))
	m.jumpToMatch()
}

// nextMatch advances the search selection by delta, wrapping around
func (m *Model) nextMatch(delta int) {
	if len(m.searchMatches) == 0 {
		return
	}
	n := len(m.searchMatches)
	m.searchIndex = (m.searchIndex + delta + n) % n
	m.statusMsg = fmt.Sprintf("Match %d of %d", m.searchIndex+1, n)
	m.jumpToMatch()
}

func (m *Model) jumpToMatch() {
	if m.searchIndex < len(m.searchMatches) {
		m.responseView.SetYOffset(m.searchMatches[m.searchIndex])
	}
}

func (m *Model) clearSearch() {
	m.searchQuery = ""
	m.searchMatches = nil
	m.searchIndex = 0
}

// checkForUpdate asks GitHub for the latest release in the background
func checkForUpdate(current string) tea.Cmd {
	return func() tea.Msg {
		available, latest, _, err := version.CheckForUpdate(current)
		if err != nil {
			// Offline or rate limited; the check is best-effort
			return updateMsg{}
		}
		return updateMsg{available: available, latest: latest}
	}
}
