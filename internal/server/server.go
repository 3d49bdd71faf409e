// Package server exposes the repair desk over HTTP.
package server

import (
	"io/fs"
	"net/http"
	"strings"

	"repair_desk/internal/repair"
	"repair_desk/internal/web"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 64 << 10

// Server routes HTTP requests to the repair service.
type Server struct {
	repairs *repair.Service
	router  chi.Router
}

// New constructs the server with routes configured.
func New(repairs *repair.Service) *Server {
	s := &Server{
		repairs: repairs,
		router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

// Router returns the configured handler.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := s.router
	r.Use(withRequestID, withRequestLog, middleware.Recoverer, withCORS, withSecurityHeaders)

	r.Get("/", s.handlePage(web.IndexPage))
	r.Get("/tasks", s.handlePage(web.TasksPage))
	r.Handle("/static/*", staticFiles(web.Static()))
	r.Get("/healthz", s.handleHealth)

	r.Post("/submit_report", s.handleSubmitReport)
	r.Get("/get_tasks", s.handleGetTasks)
	r.Post("/update_status", s.handleUpdateStatus)
}

// staticFiles serves named files from static and answers 404 for
// directories instead of listing them.
func staticFiles(static fs.FS) http.Handler {
	files := http.StripPrefix("/static/", http.FileServer(http.FS(static)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/static/")
		if name == "" || strings.HasSuffix(name, "/") {
			http.NotFound(w, r)
			return
		}
		if info, err := fs.Stat(static, name); err == nil && info.IsDir() {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}
