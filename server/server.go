package server

import (
	"net/http"

	"github.com/voxkit/voxkit/config"
	"github.com/voxkit/voxkit/pkg/otel"
	"github.com/voxkit/voxkit/pkg/tts"
	"github.com/voxkit/voxkit/server/api"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const publicUploadPath = "/api/files/uploads/"

type Server struct {
	*config.Config

	router *chi.Mux
}

func New(cfg *config.Config, handler *api.Handler) *Server {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	handler.Attach(r)

	fileServer(r, tts.PublicPath, http.Dir(cfg.OutputDir))
	fileServer(r, publicUploadPath, http.Dir(cfg.UploadDir))

	return &Server{
		Config: cfg,

		router: r,
	}
}

func (s *Server) Handler() http.Handler {
	var handler http.Handler = s.router

	if otel.EnableTelemetry {
		handler = otelhttp.NewHandler(handler, "http")
	}

	return handler
}

func (s *Server) ListenAndServe() error {
	return http.ListenAndServe(s.Address, s.Handler())
}

func fileServer(r chi.Router, path string, root http.FileSystem) {
	r.Handle(path+"*", http.StripPrefix(path, http.FileServer(root)))
}
