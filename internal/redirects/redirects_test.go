package redirects

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCompile_DefaultCodeAndSlashVariant(t *testing.T) {
	got := Compile([]Entry{{From: "/docs", To: "/docs/x"}})

	for _, want := range []string{"/docs /docs/x 301", "/docs/ /docs/x 301"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected output to contain %q, got %q", want, got)
		}
	}
	if got != "/docs /docs/x 301\n/docs/ /docs/x 301\n" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestCompile_PreservesOrderAndDuplicates(t *testing.T) {
	got := Compile([]Entry{
		{From: "/b", To: "/two", Code: 302},
		{From: "/a", To: "/one"},
		{From: "/b", To: "/three", Code: 308},
	})
	want := strings.Join([]string{
		"/b /two 302",
		"/b/ /two 302",
		"/a /one 301",
		"/a/ /one 301",
		"/b /three 308",
		"/b/ /three 308",
		"",
	}, "\n")
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestCompile_Empty(t *testing.T) {
	if got := Compile(nil); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}

func TestTable_RedirectsBothVariants(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	h := Table([]Entry{
		{From: "/docs", To: "/docs/getting-started"},
		{From: "/old", To: "/new", Code: http.StatusFound},
	})(next)

	tests := []struct {
		path     string
		status   int
		location string
	}{
		{"/docs", http.StatusMovedPermanently, "/docs/getting-started"},
		{"/docs/", http.StatusMovedPermanently, "/docs/getting-started"},
		{"/old/", http.StatusFound, "/new"},
		{"/docs/getting-started", http.StatusTeapot, ""},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
		if rec.Code != tt.status {
			t.Errorf("%s: expected status %d, got %d", tt.path, tt.status, rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != tt.location {
			t.Errorf("%s: expected location %q, got %q", tt.path, tt.location, loc)
		}
	}
}

func TestEntry_Validate(t *testing.T) {
	tests := []struct {
		entry   Entry
		wantErr bool
	}{
		{Entry{From: "/docs", To: "/docs/getting-started"}, false},
		{Entry{From: "/old", To: "https://example.com", Code: 302}, false},
		{Entry{From: "docs", To: "/x"}, true},
		{Entry{From: "/docs"}, true},
		{Entry{From: "/docs", To: "/x", Code: 200}, true},
	}
	for _, tt := range tests {
		err := tt.entry.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("%+v: expected error=%v, got %v", tt.entry, tt.wantErr, err)
		}
	}
}
