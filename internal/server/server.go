// Package server is the preview server: a JSON compile API, the watched
// token file's stylesheet and a websocket that pushes each recompile.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pulseinsights/pitheme/internal/analysis"
	"github.com/pulseinsights/pitheme/internal/compiler"
	"github.com/pulseinsights/pitheme/internal/css"
	"github.com/pulseinsights/pitheme/internal/theme"
	"github.com/pulseinsights/pitheme/internal/tokens"
	"github.com/pulseinsights/pitheme/internal/variants"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("pitheme.server")

// maxBody caps request bodies.
const maxBody = 1 << 20

// Server routes preview requests.
type Server struct {
	router     *mux.Router
	session    *Session // nil when no token file is watched
	hub        *Hub
	options    css.Options
	generator  *variants.Generator
	wsUpgrader websocket.Upgrader
}

// New creates a server. session may be nil, in which case /theme.css always
// answers 503 and /ws only reports the absence of a theme.
func New(session *Session, hub *Hub, opts css.Options) *Server {
	if hub == nil {
		hub = NewHub()
	}
	s := &Server{
		router:    mux.NewRouter(),
		session:   session,
		hub:       hub,
		options:   opts,
		generator: variants.New(),
		wsUpgrader: websocket.Upgrader{
			CheckOrigin: sameOrigin,
		},
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/api/compile", s.handleCompile).Methods("POST")
	s.router.HandleFunc("/api/validate", s.handleValidate).Methods("POST")
	s.router.HandleFunc("/api/variants", s.handleVariants).Methods("POST")
	s.router.HandleFunc("/theme.css", s.handleThemeCSS).Methods("GET")
	s.router.HandleFunc("/ws", s.handleWebSocket).Methods("GET")
	s.router.HandleFunc("/healthz", s.handleHealth).Methods("GET")
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Noticef("preview server listening on %s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// sameOrigin allows websocket upgrades without an Origin header or from the
// serving host.
func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == r.Host
}

type compileRequest struct {
	Tokens  tokens.Raw  `json:"tokens"`
	Options css.Options `json:"options"`
}

type variantsRequest struct {
	Analysis analysis.Analysis `json:"analysis"`
	Options  css.Options       `json:"options"`
}

func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	req := compileRequest{Options: s.options}
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, compiler.Compile(req.Tokens, req.Options))
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req compileRequest
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, theme.Validate(theme.Normalize(req.Tokens)))
}

func (s *Server) handleVariants(w http.ResponseWriter, r *http.Request) {
	req := variantsRequest{Options: s.options}
	if !decode(w, r, &req) {
		return
	}
	compiled, err := s.generator.Compile(req.Analysis, req.Options)
	if err != nil {
		var cerr *variants.CompileError
		if errors.As(err, &cerr) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":  cerr.Error(),
				"theme":  cerr.Theme,
				"errors": cerr.Errors,
			})
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, compiled)
}

func (s *Server) handleThemeCSS(w http.ResponseWriter, r *http.Request) {
	if s.session == nil {
		http.Error(w, "no token file is being watched", http.StatusServiceUnavailable)
		return
	}
	stylesheet, ok := s.session.CSS()
	if !ok {
		http.Error(w, "theme has not compiled yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write([]byte(stylesheet))
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warningf("websocket upgrade: %s", err)
		return
	}

	var initial *Message
	if s.session != nil {
		msg := messageFor(s.session.Last())
		if stylesheet, ok := s.session.CSS(); ok && msg.Type != "css" {
			// Keep the page styled while the file is broken.
			msg.CSS = stylesheet
		}
		initial = &msg
	}
	s.hub.Serve(conn, initial)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("encoding response: %s", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
