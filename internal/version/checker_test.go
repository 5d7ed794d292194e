package version

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int // sign only
	}{
		{"equal", "0.2.1", "0.2.1", 0},
		{"patch newer", "0.2.2", "0.2.1", 1},
		{"patch older", "0.2.0", "0.2.1", -1},
		{"minor newer", "0.3.0", "0.2.9", 1},
		{"major newer", "1.0.0", "0.9.9", 1},
		{"multi-digit", "0.0.100", "0.0.99", 1},
		{"shorter newer", "1.0", "0.9.9", 1},
		{"shorter equal", "1.0", "1.0.0", 0},
		{"pre-release stripped", "0.3.0-dev", "0.2.9", 1},
		{"pre-release same base", "0.2.1-alpha", "0.2.1", 0},
		{"build metadata stripped", "0.2.2+build7", "0.2.1", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := compareVersions(tt.a, tt.b)
			switch {
			case tt.want > 0 && got <= 0:
				t.Errorf("compareVersions(%q, %q) = %d, want > 0", tt.a, tt.b, got)
			case tt.want < 0 && got >= 0:
				t.Errorf("compareVersions(%q, %q) = %d, want < 0", tt.a, tt.b, got)
			case tt.want == 0 && got != 0:
				t.Errorf("compareVersions(%q, %q) = %d, want 0", tt.a, tt.b, got)
			}
		})
	}
}

func TestCheckForUpdate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "reqview/0.1.0" {
			t.Errorf("unexpected User-Agent: %s", ua)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"tag_name":"v0.2.0","html_url":"https://example.com/releases/v0.2.0"}`))
	}))
	defer srv.Close()

	orig := releaseURL
	releaseURL = srv.URL
	defer func() { releaseURL = orig }()

	available, latest, url, err := CheckForUpdate("0.1.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !available {
		t.Error("expected an update to be available")
	}
	if latest != "0.2.0" {
		t.Errorf("expected latest 0.2.0, got %s", latest)
	}
	if url != "https://example.com/releases/v0.2.0" {
		t.Errorf("unexpected release url: %s", url)
	}
}

func TestCheckForUpdateUpToDate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"tag_name":"v0.1.0"}`))
	}))
	defer srv.Close()

	orig := releaseURL
	releaseURL = srv.URL
	defer func() { releaseURL = orig }()

	available, latest, _, err := CheckForUpdate("v0.1.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if available {
		t.Error("same version should not report an update")
	}
	if latest != "0.1.0" {
		t.Errorf("expected latest 0.1.0, got %s", latest)
	}
}

func TestCheckForUpdateServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	orig := releaseURL
	releaseURL = srv.URL
	defer func() { releaseURL = orig }()

	if _, _, _, err := CheckForUpdate("0.1.0"); err == nil {
		t.Error("expected an error for a non-200 response")
	}
}
