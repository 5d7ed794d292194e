package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/studiowebux/reqview/internal/types"
)

func TestExecuteInvalidURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"missing scheme", "example.com/users"},
		{"bare host with port", "127.0.0.1:8080"},
		{"unsupported scheme", "ftp://example.com/file"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Execute(context.Background(), &types.Request{Method: "GET", URL: tt.url}, nil)

			if res.Status != 0 {
				t.Errorf("expected status 0, got %d", res.Status)
			}
			if res.Error == nil || res.Error.Kind != types.KindInvalidURL {
				t.Errorf("expected InvalidUrl error, got %+v", res.Error)
			}
		})
	}
}

func TestExecuteInvalidURLNeverDispatches(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer server.Close()

	// Same host and port, scheme stripped
	res := Execute(context.Background(), &types.Request{
		Method: "GET",
		URL:    strings.TrimPrefix(server.URL, "http://"),
	}, nil)

	if res.Error == nil || res.Error.Kind != types.KindInvalidURL {
		t.Fatalf("expected InvalidUrl error, got %+v", res.Error)
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Errorf("expected no network call, server was hit %d times", hits)
	}
}

func TestExecuteIgnoresBodyForGetAndHead(t *testing.T) {
	var receivedBody string
	var receivedContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		receivedBody = string(b)
		receivedContentType = r.Header.Get("Content-Type")
	}))
	defer server.Close()

	for _, method := range []string{"GET", "HEAD"} {
		t.Run(method, func(t *testing.T) {
			// Malformed JSON: must be ignored, not validated
			res := Execute(context.Background(), &types.Request{
				Method: method,
				URL:    server.URL,
				Body:   `{"a":}`,
			}, nil)

			if res.Error != nil {
				t.Fatalf("expected no error, got %+v", res.Error)
			}
			if res.Status != 200 {
				t.Errorf("expected status 200, got %d", res.Status)
			}
			if receivedBody != "" {
				t.Errorf("expected empty request body, server received %q", receivedBody)
			}
			if receivedContentType == "application/json" {
				t.Error("Content-Type: application/json must not be sent without a body")
			}
		})
	}
}

func TestExecuteInvalidJSONBody(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer server.Close()

	res := Execute(context.Background(), &types.Request{
		Method: "POST",
		URL:    server.URL,
		Body:   `{"a":}`,
	}, nil)

	if res.Status != 0 {
		t.Errorf("expected status 0, got %d", res.Status)
	}
	if res.Error == nil || res.Error.Kind != types.KindInvalidRequestBody {
		t.Fatalf("expected InvalidRequestBody error, got %+v", res.Error)
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Errorf("expected no dispatch, server was hit %d times", hits)
	}
}

func TestExecuteSendsRawBodyWithContentType(t *testing.T) {
	const rawBody = `{ "a" : 1 ,  "b" : [ true ] }`

	var receivedBody, receivedContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		receivedBody = string(b)
		receivedContentType = r.Header.Get("Content-Type")
	}))
	defer server.Close()

	res := Execute(context.Background(), &types.Request{
		Method: "POST",
		URL:    server.URL,
		Body:   rawBody,
	}, nil)

	if res.Error != nil {
		t.Fatalf("expected no error, got %+v", res.Error)
	}
	if receivedBody != rawBody {
		t.Errorf("body was not sent verbatim: got %q", receivedBody)
	}
	if receivedContentType != "application/json" {
		t.Errorf("expected Content-Type application/json, got %q", receivedContentType)
	}
	if res.RequestSize != len(rawBody) {
		t.Errorf("expected request size %d, got %d", len(rawBody), res.RequestSize)
	}
}

func TestExecuteDecodesJSONResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"a":1}`)
	}))
	defer server.Close()

	res := Execute(context.Background(), &types.Request{Method: "GET", URL: server.URL}, nil)

	if res.Error != nil {
		t.Fatalf("expected no error, got %+v", res.Error)
	}
	decoded, ok := res.JSON.(map[string]interface{})
	if !ok {
		t.Fatalf("expected decoded object, got %T", res.JSON)
	}
	if decoded["a"] != float64(1) {
		t.Errorf(`expected {"a":1}, got %v`, decoded)
	}
	if res.Duration < 0 {
		t.Errorf("expected non-negative duration, got %d", res.Duration)
	}
	if res.Body != `{"a":1}` {
		t.Errorf("raw body should be preserved, got %q", res.Body)
	}
}

func TestExecuteOpportunisticJSONParse(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantParsed bool
	}{
		{"object with whitespace", "  {\"ok\": true}\n", true},
		{"array", `[1, 2, 3]`, true},
		{"plain text", "hello world", false},
		{"json-looking but invalid", `{"a":`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/plain")
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			res := Execute(context.Background(), &types.Request{Method: "GET", URL: server.URL}, nil)

			if res.Error != nil {
				t.Fatalf("expected no error, got %+v", res.Error)
			}
			if tt.wantParsed && res.JSON == nil {
				t.Error("expected opportunistic JSON parse to succeed")
			}
			if !tt.wantParsed && res.JSON != nil {
				t.Errorf("expected raw text only, got decoded %v", res.JSON)
			}
			if res.Body != tt.body {
				t.Errorf("raw body must be kept, got %q", res.Body)
			}
		})
	}
}

func TestExecuteUndecodableJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"broken":`)
	}))
	defer server.Close()

	res := Execute(context.Background(), &types.Request{Method: "GET", URL: server.URL}, nil)

	if res.Error == nil || res.Error.Kind != types.KindResponseDecodeError {
		t.Fatalf("expected ResponseDecodeError, got %+v", res.Error)
	}
	if !strings.Contains(res.Body, `{"broken":`) {
		t.Errorf("raw text must survive in the body, got %q", res.Body)
	}
	if res.Status != 200 {
		t.Errorf("decode failures keep the real status, got %d", res.Status)
	}
}

func TestExecuteStatusExplanation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, "nope")
	}))
	defer server.Close()

	res := Execute(context.Background(), &types.Request{Method: "GET", URL: server.URL}, nil)

	if res.Status != 404 {
		t.Fatalf("expected status 404, got %d", res.Status)
	}
	if !strings.Contains(res.Explanation, "resource was not found") {
		t.Errorf("404 explanation should describe the missing resource, got %q", res.Explanation)
	}
	if res.Error == nil || res.Error.Kind != types.KindHTTPStatusError {
		t.Errorf("expected HttpStatusError annotation, got %+v", res.Error)
	}
}

func TestExecuteHeaderCollection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Request-Id", "abc-123")
		w.Header().Add("X-Dup", "first")
		w.Header().Add("X-Dup", "last")
		w.Header().Set("Content-Type", "text/plain")
		fmt.Fprint(w, "ok")
	}))
	defer server.Close()

	res := Execute(context.Background(), &types.Request{Method: "GET", URL: server.URL}, nil)

	if res.Error != nil {
		t.Fatalf("expected no error, got %+v", res.Error)
	}

	seen := make(map[string]int)
	for _, h := range res.Headers {
		seen[h.Name]++
	}
	for name, count := range seen {
		if count != 1 {
			t.Errorf("header %q appears %d times, want exactly once", name, count)
		}
	}

	if v, ok := res.Headers.Get("X-Dup"); !ok || v != "last" {
		t.Errorf("duplicate headers must collapse to the last value, got %q", v)
	}
	if v, ok := res.Headers.Get("X-Request-Id"); !ok || v != "abc-123" {
		t.Errorf("expected X-Request-Id abc-123, got %q (present=%v)", v, ok)
	}
}

func TestExecuteTransportFailure(t *testing.T) {
	// Reserve a port, then close it so the connect is refused
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := l.Addr().String()
	l.Close()

	res := Execute(context.Background(), &types.Request{Method: "GET", URL: "http://" + addr}, nil)

	if res.Status != 0 {
		t.Errorf("transport failures must report status 0, got %d", res.Status)
	}
	if res.Error == nil || res.Error.Kind != types.KindNetworkError {
		t.Fatalf("expected NetworkError, got %+v", res.Error)
	}
	if len(res.Headers) != 0 {
		t.Errorf("expected empty header list, got %v", res.Headers)
	}
	if res.Error.Details == "" || !strings.Contains(res.Error.Details, "DNS") {
		t.Errorf("connect failures should carry the troubleshooting checklist, got %q", res.Error.Details)
	}
}

func TestNetworkFailureFetchSignature(t *testing.T) {
	res := networkFailure(errors.New("TypeError: Failed to fetch"))

	if res.Status != 0 {
		t.Errorf("expected status exactly 0, got %d", res.Status)
	}
	if res.Error == nil || res.Error.Kind != types.KindNetworkError {
		t.Fatalf("expected NetworkError, got %+v", res.Error)
	}
	if !strings.Contains(res.Error.Details, "connectivity") {
		t.Errorf("fetch-failure signature should attach the troubleshooting note, got %q", res.Error.Details)
	}
}

func TestSummarizeCertificate(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		note := summarizeCertificate(filepath.Join(t.TempDir(), "nope.pem"))
		if !strings.Contains(note, "could not be read") {
			t.Errorf("unexpected note: %q", note)
		}
	})

	t.Run("not pem", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cert.pem")
		if err := os.WriteFile(path, []byte("just text"), 0o644); err != nil {
			t.Fatal(err)
		}
		note := summarizeCertificate(path)
		if !strings.Contains(note, "not PEM encoded") {
			t.Errorf("unexpected note: %q", note)
		}
		if !strings.Contains(note, "not applied") {
			t.Errorf("note must state the certificate is not applied, got %q", note)
		}
	})
}

func TestExecuteCertificateIsReadButNeverApplied(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "ok")
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "client.pem")
	if err := os.WriteFile(path, []byte("opaque bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	res := Execute(context.Background(), &types.Request{
		Method:   "GET",
		URL:      server.URL,
		CertFile: path,
	}, nil)

	if res.Error != nil {
		t.Fatalf("expected success, got %+v", res.Error)
	}
	if !strings.Contains(res.Notes, "not applied") {
		t.Errorf("result notes should record the unapplied certificate, got %q", res.Notes)
	}
}
