package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/jusunglee/bikeshare-go/pkg/bikeshare"
)

const washingtonCSV = `,Start Time,End Time,Trip Duration,Start Station,End Station,User Type
1621326,2017-06-21 08:36:34,2017-06-21 08:44:43,489.066,14th & Belmont St NW,15th & K St NW,Subscriber
`

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "washington.csv"), []byte(washingtonCSV), 0600); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	client, err := bikeshare.NewLocal(bikeshare.Config{DataDir: dir})
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	return newRouter(client)
}

func TestRouter(t *testing.T) {
	r := newTestServer(t)

	tests := []struct {
		name   string
		target string
		status int
	}{
		{"stats", "/stats?city=washington", http.StatusOK},
		{"preview", "/preview?city=washington&rows=1", http.StatusOK},
		{"no data", "/stats?city=washington&month=january", http.StatusNotFound},
		{"missing source", "/stats?city=chicago", http.StatusInternalServerError},
		{"bad filter", "/stats?city=boston", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			req.Header.Set("Origin", "http://example.com")
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Errorf("Expected status %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
			if rec.Header().Get("X-Request-Id") == "" {
				t.Error("Expected a request id header")
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
				t.Errorf("Expected CORS origin *, got %q", got)
			}
		})
	}
}

func TestRouterPreflight(t *testing.T) {
	r := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/stats?city=washington", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "GET" {
		t.Errorf("Expected allowed method GET, got %q", got)
	}
}
