package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pulseinsights/pitheme/internal/analysis"
	"github.com/pulseinsights/pitheme/internal/css"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validTheme = `colors {
  primary = "#2563eb"
}
`

func writeTheme(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "theme.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealth(t *testing.T) {
	srv := New(nil, nil, css.DefaultOptions())
	rec := get(t, srv, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCompile(t *testing.T) {
	srv := New(nil, nil, css.DefaultOptions())
	rec := post(t, srv, "/api/compile", `{"tokens":{"colors":{"primary":"#ff6b35"}}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		CSS    *string  `json:"css"`
		Errors []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.CSS)
	assert.Contains(t, *body.CSS, "--pi-color-primary: #ff6b35")
	assert.Empty(t, body.Errors)
}

func TestCompile_MissingCoreToken(t *testing.T) {
	srv := New(nil, nil, css.DefaultOptions())
	rec := post(t, srv, "/api/compile", `{"tokens":{"colors":{"text":""}}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		CSS    *string  `json:"css"`
		Errors []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Nil(t, body.CSS)
	assert.Contains(t, body.Errors, "Missing token: colors.text")
}

func TestValidate(t *testing.T) {
	srv := New(nil, nil, css.DefaultOptions())
	rec := post(t, srv, "/api/validate", `{"tokens":{"colors":{"text":""}}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing token: colors.text")
}

func TestVariants(t *testing.T) {
	srv := New(nil, nil, css.DefaultOptions())
	payload, err := json.Marshal(map[string]any{"analysis": analysis.Fallback("https://example.com")})
	require.NoError(t, err)

	rec := post(t, srv, "/api/variants", string(payload))
	require.Equal(t, http.StatusOK, rec.Code)

	var body []struct {
		Name string `json:"name"`
		CSS  string `json:"css"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 4)
	assert.Equal(t, "Brand Faithful", body[0].Name)
	for _, v := range body {
		assert.NotEmpty(t, v.CSS, v.Name)
	}
}

func TestBadRequestBody(t *testing.T) {
	srv := New(nil, nil, css.DefaultOptions())
	for _, path := range []string{"/api/compile", "/api/validate", "/api/variants"} {
		rec := post(t, srv, path, `{`)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "invalid request body", path)
	}
}

func TestThemeCSS_NoSession(t *testing.T) {
	srv := New(nil, nil, css.DefaultOptions())
	assert.Equal(t, http.StatusServiceUnavailable, get(t, srv, "/theme.css").Code)
}

func TestThemeCSS_BeforeFirstCompile(t *testing.T) {
	session := NewSession(writeTheme(t, "colors {"), css.DefaultOptions(), nil)
	res := session.Reload()
	require.False(t, res.OK())

	srv := New(session, nil, css.DefaultOptions())
	assert.Equal(t, http.StatusServiceUnavailable, get(t, srv, "/theme.css").Code)
}

func TestThemeCSS_KeepsLastGoodStylesheet(t *testing.T) {
	path := writeTheme(t, validTheme)
	session := NewSession(path, css.DefaultOptions(), nil)
	require.True(t, session.Reload().OK())

	srv := New(session, nil, css.DefaultOptions())
	rec := get(t, srv, "/theme.css")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/css; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "--pi-color-primary: #2563eb")

	require.NoError(t, os.WriteFile(path, []byte("colors {"), 0644))
	assert.False(t, session.Reload().OK())

	rec = get(t, srv, "/theme.css")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "--pi-color-primary: #2563eb")
	assert.NotEmpty(t, session.Last().Errors)
}

func TestSessionReload_MissingFile(t *testing.T) {
	session := NewSession(filepath.Join(t.TempDir(), "missing.hcl"), css.DefaultOptions(), nil)
	res := session.Reload()
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "reading token file")
	_, ok := session.CSS()
	assert.False(t, ok)
}

func TestSameOrigin(t *testing.T) {
	tests := []struct {
		origin string
		want   bool
	}{
		{"", true},
		{"http://localhost:8787", true},
		{"http://evil.example", false},
		{"://bad", false},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "http://localhost:8787/ws", nil)
		if tt.origin != "" {
			req.Header.Set("Origin", tt.origin)
		}
		assert.Equal(t, tt.want, sameOrigin(req), tt.origin)
	}
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestWebSocketLiveReload(t *testing.T) {
	path := writeTheme(t, validTheme)
	hub := NewHub()
	session := NewSession(path, css.DefaultOptions(), hub)
	require.True(t, session.Reload().OK())

	ts := httptest.NewServer(New(session, hub, css.DefaultOptions()))
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	msg := readMessage(t, conn)
	assert.Equal(t, "css", msg.Type)
	assert.Contains(t, msg.CSS, "#2563eb")

	require.NoError(t, os.WriteFile(path, []byte("colors {\n  primary = \"#ff6b35\"\n}\n"), 0644))
	session.Reload()
	msg = readMessage(t, conn)
	assert.Equal(t, "css", msg.Type)
	assert.Contains(t, msg.CSS, "#ff6b35")

	require.NoError(t, os.WriteFile(path, []byte("colors {"), 0644))
	session.Reload()
	msg = readMessage(t, conn)
	assert.Equal(t, "errors", msg.Type)
	assert.NotEmpty(t, msg.Errors)
	assert.Empty(t, msg.CSS)
}

func TestWebSocketInitialErrorsKeepStylesheet(t *testing.T) {
	path := writeTheme(t, validTheme)
	session := NewSession(path, css.DefaultOptions(), nil)
	require.True(t, session.Reload().OK())
	require.NoError(t, os.WriteFile(path, []byte("colors {"), 0644))
	require.False(t, session.Reload().OK())

	ts := httptest.NewServer(New(session, nil, css.DefaultOptions()))
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	msg := readMessage(t, conn)
	assert.Equal(t, "errors", msg.Type)
	assert.Contains(t, msg.CSS, "#2563eb")
}

func TestWatchFile(t *testing.T) {
	path := writeTheme(t, validTheme)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- WatchFile(ctx, path, func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(validTheme+"\n"), 0644))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("onChange was not called")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("WatchFile did not return after cancel")
	}
}

func TestWatchFile_IgnoresSiblings(t *testing.T) {
	path := writeTheme(t, validTheme)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 1)
	go WatchFile(ctx, path, func() { changed <- struct{}{} })

	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "other.hcl"), []byte("x"), 0644))

	select {
	case <-changed:
		t.Fatal("onChange called for another file")
	case <-time.After(500 * time.Millisecond):
	}
}
