package tui

import (
	"strings"
	"testing"

	"github.com/studiowebux/reqview/internal/config"
	"github.com/studiowebux/reqview/internal/keybinds"
	"github.com/studiowebux/reqview/internal/types"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	m := New(config.DefaultSettings(), keybinds.NewDefaultRegistry(), "0.0.0-test")
	m.width = 120
	m.height = 40
	m.resize()
	return &m
}

func TestCycleMethodWraps(t *testing.T) {
	m := newTestModel(t)

	if m.Method() != "GET" {
		t.Fatalf("expected default method GET, got %s", m.Method())
	}

	for range types.KnownMethods {
		m.cycleMethod(1)
	}
	if m.Method() != "GET" {
		t.Errorf("cycling through all methods should wrap back to GET, got %s", m.Method())
	}

	m.cycleMethod(-1)
	if m.Method() != "HEAD" {
		t.Errorf("cycling backward from GET should reach HEAD, got %s", m.Method())
	}
}

func TestNextFieldWraps(t *testing.T) {
	m := newTestModel(t)

	if m.focusedField != FieldURL {
		t.Fatalf("expected URL focused initially, got %v", m.focusedField)
	}

	m.nextField(1)
	if m.focusedField != FieldMethod {
		t.Errorf("expected Method after URL, got %v", m.focusedField)
	}

	m.nextField(-1)
	m.nextField(-1)
	if m.focusedField != FieldCert {
		t.Errorf("expected backward wrap to Cert, got %v", m.focusedField)
	}
}

func TestNextTabWraps(t *testing.T) {
	m := newTestModel(t)
	m.result = &types.Result{Status: 200, StatusText: "200 OK", Body: "ok"}

	if m.activeTab != TabBody {
		t.Fatalf("expected Body tab initially, got %v", m.activeTab)
	}

	m.nextTab(1)
	m.nextTab(1)
	if m.activeTab != TabError {
		t.Errorf("expected Error tab, got %v", m.activeTab)
	}

	m.nextTab(1)
	if m.activeTab != TabBody {
		t.Errorf("expected wrap to Body tab, got %v", m.activeTab)
	}
}

func TestFinishRequestSelectsTab(t *testing.T) {
	t.Run("fatal failure lands on error tab", func(t *testing.T) {
		m := newTestModel(t)
		m.loading = true

		m.finishRequest(&types.Result{
			Status: 0,
			Body:   "Connection refused - check if server is running and port is correct",
			Error: &types.ErrorDetail{
				Kind:    types.KindNetworkError,
				Message: "Connection refused - check if server is running and port is correct",
			},
		})

		if m.loading {
			t.Error("loading flag should clear")
		}
		if m.activeTab != TabError {
			t.Errorf("expected Error tab, got %v", m.activeTab)
		}
		if m.errorMsg == "" {
			t.Error("expected the failure in the status bar")
		}
	})

	t.Run("success lands on body tab", func(t *testing.T) {
		m := newTestModel(t)
		m.loading = true

		m.finishRequest(&types.Result{Status: 200, StatusText: "200 OK", Body: `{"ok":true}`})

		if m.activeTab != TabBody {
			t.Errorf("expected Body tab, got %v", m.activeTab)
		}
		if m.focusedPanel != "response" {
			t.Errorf("focus should move to the response panel, got %s", m.focusedPanel)
		}
	})

	t.Run("status error stays on body tab", func(t *testing.T) {
		m := newTestModel(t)

		m.finishRequest(&types.Result{
			Status:     404,
			StatusText: "404 Not Found",
			Body:       "nope",
			Error:      &types.ErrorDetail{Kind: types.KindHTTPStatusError, Message: "404 Not Found"},
		})

		if m.activeTab != TabBody {
			t.Errorf("non-fatal status errors keep the Body tab, got %v", m.activeTab)
		}
	})
}

func TestTabContent(t *testing.T) {
	m := newTestModel(t)
	m.result = &types.Result{
		Status:     404,
		StatusText: "404 Not Found",
		Headers: types.HeaderList{
			{Name: "Content-Type", Value: "text/plain"},
			{Name: "X-Request-Id", Value: "abc"},
		},
		Body:        "nope",
		Explanation: "404 Not Found: the requested resource was not found.",
		Error:       &types.ErrorDetail{Kind: types.KindHTTPStatusError, Message: "404 Not Found"},
	}

	m.activeTab = TabHeaders
	headers := m.tabContent()
	if !strings.Contains(headers, "Content-Type: text/plain") ||
		!strings.Contains(headers, "X-Request-Id: abc") {
		t.Errorf("headers tab missing entries: %q", headers)
	}

	m.activeTab = TabError
	errTab := m.tabContent()
	if !strings.Contains(errTab, "HttpStatusError") {
		t.Errorf("error tab should name the kind, got %q", errTab)
	}
	if !strings.Contains(errTab, "resource was not found") {
		t.Errorf("error tab should carry the explanation, got %q", errTab)
	}
}

func TestVisibleBodyPrefersDecodedJSON(t *testing.T) {
	m := newTestModel(t)
	m.result = &types.Result{
		Status: 200,
		Body:   `{"a":1}`,
		JSON:   map[string]interface{}{"a": float64(1)},
	}

	body := m.visibleBody()
	if !strings.Contains(body, "\"a\": 1") {
		t.Errorf("expected pretty-printed JSON, got %q", body)
	}

	m.filteredBody = `"filtered"`
	if m.visibleBody() != `"filtered"` {
		t.Error("applied filter should win over the raw body")
	}
}

func TestRunSearch(t *testing.T) {
	m := newTestModel(t)
	m.result = &types.Result{Status: 200, Body: "alpha\nbravo\ncharlie\nbravado"}
	m.updateResponseView()

	m.runSearch("bravo")
	if len(m.searchMatches) == 0 {
		t.Fatal("expected at least one match")
	}
	if m.searchMatches[0] != 1 {
		t.Errorf("first match should be line 1, got %d", m.searchMatches[0])
	}

	before := m.searchIndex
	m.nextMatch(1)
	if len(m.searchMatches) > 1 && m.searchIndex == before {
		t.Error("nextMatch should advance the selection")
	}

	m.clearSearch()
	if m.searchQuery != "" || len(m.searchMatches) != 0 {
		t.Error("clearSearch should reset state")
	}
}

func TestApplyFilter(t *testing.T) {
	m := newTestModel(t)
	m.result = &types.Result{
		Status: 200,
		Body:   `{"items":[{"name":"a"},{"name":"b"}]}`,
	}

	m.applyFilter("items[0].name")
	if m.filteredBody != `"a"` {
		t.Errorf("expected filtered body %q, got %q", `"a"`, m.filteredBody)
	}

	m.applyFilter("items[?")
	if m.errorMsg == "" {
		t.Error("invalid expression should surface an error")
	}
	// A failed filter must not clobber the previous one
	if m.filteredBody != `"a"` {
		t.Errorf("failed filter should leave the last result, got %q", m.filteredBody)
	}
}

func TestBuildRequest(t *testing.T) {
	m := newTestModel(t)
	m.urlInput.SetValue("https://api.example.com/users")
	m.bodyInput.SetValue(`{"name":"test"}`)
	m.certPath = "/tmp/client.pem"
	m.cycleMethod(1) // POST

	req := m.buildRequest()
	if req.Method != "POST" {
		t.Errorf("expected POST, got %s", req.Method)
	}
	if req.URL != "https://api.example.com/users" {
		t.Errorf("unexpected URL: %s", req.URL)
	}
	if req.Body != `{"name":"test"}` {
		t.Errorf("unexpected body: %s", req.Body)
	}
	if req.CertFile != "/tmp/client.pem" {
		t.Errorf("unexpected cert file: %s", req.CertFile)
	}
}

func TestSubmitRequestSingleFlight(t *testing.T) {
	m := newTestModel(t)
	m.urlInput.SetValue("https://api.example.com")
	m.loading = true

	cmd := m.submitRequest()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg := cmd()
	if _, ok := msg.(errorMsg); !ok {
		t.Errorf("second submit while loading should be rejected, got %T", msg)
	}
}
