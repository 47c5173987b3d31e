// Package server provides the HTTP handlers and routing for the MCP server.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"workflow-mcp/internal/store"
)

const (
	serverName      = "ai-workflow-continuity-system"
	serverVersion   = "1.0.0"
	protocolVersion = "2024-11-05"
)

// Config contains server configuration values such as the listen port.
type Config struct {
	Port string
}

// Server contains the configured router, the workflow state store, and the
// logger for the MCP server.
type Server struct {
	cfg    Config
	router *chi.Mux
	store  *store.Store
	log    *slog.Logger
}

// New constructs a Server with middleware and routes configured.
func New(cfg Config, st *store.Store, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		cfg:    cfg,
		router: chi.NewRouter(),
		store:  st,
		log:    log,
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.logRequests)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))

	// Wide-open CORS: the server is meant to be reachable from hosted AI
	// clients on arbitrary origins.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}))

	s.router.Get("/", s.handleRoot)
	s.router.Get("/health", s.handleHealth)
	s.router.Options("/mcp", s.handlePreflight)
	s.router.Post("/mcp", s.handleMCP)

	return s
}

// Router exposes the root HTTP handler for the server.
func (s *Server) Router() http.Handler { return s.router }

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).String(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	sessions, memories := s.store.Counts()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":          "🚀 AI Workflow Continuity System - ONLINE",
		"server":          serverInfo(),
		"protocol":        protocolVersion,
		"mcp_endpoint":    "/mcp",
		"tools_available": len(toolList),
		"sessions":        sessions,
		"memory_items":    memories,
		"timestamp":       time.Now().Format(time.RFC3339),
		"claude_ai_ready": true,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// handlePreflight answers plain OPTIONS probes on the MCP endpoint; actual
// CORS preflights are terminated by the cors middleware.
func (s *Server) handlePreflight(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func serverInfo() map[string]string {
	return map[string]string{"name": serverName, "version": serverVersion}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
