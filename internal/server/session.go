package server

import (
	"sync"

	"github.com/pulseinsights/pitheme/internal/compiler"
	"github.com/pulseinsights/pitheme/internal/css"
	"github.com/pulseinsights/pitheme/internal/parser"
)

// Session holds the latest compile of one token file. The stylesheet served
// to previews is the last one that compiled without errors.
type Session struct {
	Path    string
	Options css.Options

	hub *Hub

	mu      sync.RWMutex
	last    compiler.Result
	css     string
	version int
}

func NewSession(path string, opts css.Options, hub *Hub) *Session {
	return &Session{Path: path, Options: opts, hub: hub}
}

// Reload reads and compiles the token file, keeps the stylesheet when it
// compiled and notifies live-reload clients either way.
func (s *Session) Reload() compiler.Result {
	var res compiler.Result
	doc, err := parser.Load(s.Path)
	if err != nil {
		res = compiler.Result{Warnings: []string{}, Errors: []string{err.Error()}}
	} else {
		res = compiler.Compile(doc.Tokens, s.Options)
	}

	s.mu.Lock()
	s.last = res
	if res.OK() {
		s.css = res.CSS
		s.version++
	}
	s.mu.Unlock()

	if res.OK() {
		log.Infof("recompiled %s", s.Path)
	} else {
		log.Errorf("compiling %s failed with %d errors", s.Path, len(res.Errors))
	}
	if s.hub != nil {
		s.hub.Broadcast(messageFor(res))
	}
	return res
}

// CSS returns the last stylesheet that compiled. ok is false before the
// first successful compile.
func (s *Session) CSS() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.css, s.version > 0
}

// Last returns the result of the most recent compile.
func (s *Session) Last() compiler.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

func messageFor(res compiler.Result) Message {
	if res.OK() {
		return Message{Type: "css", CSS: res.CSS, Warnings: res.Warnings}
	}
	return Message{Type: "errors", Errors: res.Errors, Warnings: res.Warnings}
}
