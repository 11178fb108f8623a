package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"sciparse/internal/airtable"
	"sciparse/internal/config"
	"sciparse/internal/fetch"
	"sciparse/internal/parse"
	"sciparse/internal/webhook"
)

// Server is the HTTP API for the parse service.
type Server struct {
	router   chi.Router
	parser   *parse.Service
	fetcher  *fetch.Client
	webhook  *webhook.Deliverer
	airtable *airtable.Client
	log      *slog.Logger
	cfg      config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(parser *parse.Service, fetcher *fetch.Client, wh *webhook.Deliverer, at *airtable.Client, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		parser:   parser,
		fetcher:  fetcher,
		webhook:  wh,
		airtable: at,
		log:      log,
		cfg:      cfg,
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
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.AllowedOrigins(),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	r.Get("/health", s.handleHealth)

	r.Post("/api/v1/parse", s.handleParse)
	r.Post("/api/v1/parse-url", s.handleParseURL)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
