package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"tailscale.com/client/tailscale/apitype"

	"github.com/claude/fittrack/internal/store"
)

// Backend is the persistence the server needs. *storage.DB satisfies it.
type Backend interface {
	store.Store
	GetOrCreateUser(ctx context.Context, login, displayName string) (int, error)
}

// WhoIser resolves a tailnet peer address to its owner. *local.Client
// from tsnet satisfies it.
type WhoIser interface {
	WhoIs(ctx context.Context, remoteAddr string) (*apitype.WhoIsResponse, error)
}

// Options configures how callers are identified.
type Options struct {
	// APIKey, when set, is accepted in X-API-Key and maps to APILogin.
	APIKey   string
	APILogin string

	// DevIdentity attributes otherwise unidentified requests to user 1.
	DevIdentity bool

	// WeeklyGoal is used by the dashboard endpoint.
	WeeklyGoal int
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	db     Backend
	opts   Options
	whois  WhoIser
	log    *slog.Logger
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(db Backend, opts Options, log *slog.Logger) *Server {
	if opts.APILogin == "" {
		opts.APILogin = "api@localhost"
	}
	s := &Server{
		db:     db,
		opts:   opts,
		log:    log,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// SetTailscale enables tailnet identity lookups for incoming requests.
func (s *Server) SetTailscale(w WhoIser) {
	s.whois = w
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(s.identify)
		r.Get("/me", s.handleMe)
		r.Get("/sessions", s.handleListSessions)
		r.Post("/sessions", s.handleCreateSession)
		r.Delete("/sessions/{id}", s.handleDeleteSession)
		r.Get("/sessions/{id}/exercises", s.handleListExercises)
		r.Post("/sessions/{id}/exercises", s.handleInsertExercises)
		r.Get("/stats/dashboard", s.handleDashboard)
	})
}
