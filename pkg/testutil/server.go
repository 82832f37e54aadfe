// Package testutil provides test helpers shared by the client and account
// tests, chiefly an in-process stand-in for the Starling API.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

// Server is a fake Starling API backed by a chi router. Register a route per
// endpoint the test touches; body callbacks are re-evaluated on every
// request, so tests mutate fixture state between refresh calls to simulate
// the backend changing underneath the client.
type Server struct {
	*httptest.Server
	router *chi.Mux
}

// NewServer starts a fake API server and closes it when the test finishes.
func NewServer(t *testing.T) *Server {
	t.Helper()

	router := chi.NewRouter()
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &Server{Server: srv, router: router}
}

// Handle registers an arbitrary handler for method + pattern.
func (s *Server) Handle(method, pattern string, h http.HandlerFunc) {
	s.router.Method(method, pattern, h)
}

// GetJSON serves the callback's value as the JSON body of GET pattern.
func (s *Server) GetJSON(pattern string, body func() any) {
	s.router.Get(pattern, func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, body())
	})
}

// GetStatus serves a bare status code for GET pattern.
func (s *Server) GetStatus(pattern string, code int) {
	s.router.Get(pattern, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(code)
	})
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // test fixture
}

// DecodeJSONBody unmarshals a request body into out, failing the test on
// malformed JSON.
func DecodeJSONBody(t *testing.T, r *http.Request, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(r.Body).Decode(out), "decode request body")
}
