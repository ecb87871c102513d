package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/folioparse/internal/config"
	"github.com/dgallion1/folioparse/internal/parser"
	"github.com/dgallion1/folioparse/internal/pipeline"
	"github.com/dgallion1/folioparse/internal/profile"
	"github.com/dgallion1/folioparse/internal/stats"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for folioparse.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	profiles     *profile.Parser
	latency      *stats.Latency
	limiter      *ClientLimiter
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server. The latency tracker is
// shared with the orchestrator's workers.
func NewServer(orch *pipeline.Orchestrator, latency *stats.Latency, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		profiles:     profile.New(log),
		latency:      latency,
		limiter:      NewClientLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints. The rate limit runs first so failed key
	// guesses spend tokens too.
	r.Group(func(r chi.Router) {
		r.Use(RateLimit(s.limiter))
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/parse", s.handleParse)
		r.Post("/api/parse/lines", s.handleParseLines)
		r.Post("/api/parse/fragments", s.handleParseFragments)

		r.Post("/api/imports", s.handleImport)
		r.Post("/api/imports/batch", s.handleBatchImport)
		r.Get("/api/imports", s.handleListImports)
		r.Get("/api/imports/{jobID}", s.handleImportStatus)
		r.Delete("/api/imports/{jobID}", s.handleDeleteImport)

		r.Get("/api/stats/parse", s.handleParseStats)
	})

	s.router = r
}

func (s *Server) parserOptions() parser.Options {
	return parser.Options{
		FallbackPdftotext: s.cfg.PDFFallbackPdftotext,
		MaxPages:          s.cfg.MaxPDFPages,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
