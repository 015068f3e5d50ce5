package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ayanpandit/PrepTera/internal/config"
	"github.com/ayanpandit/PrepTera/internal/handler/catalog"
	"github.com/ayanpandit/PrepTera/internal/handler/interview"
	"github.com/ayanpandit/PrepTera/internal/handler/live"
	"github.com/ayanpandit/PrepTera/internal/handler/stream"
	"github.com/ayanpandit/PrepTera/internal/metrics"
	middlewarePkg "github.com/ayanpandit/PrepTera/internal/middleware"
	catalogModel "github.com/ayanpandit/PrepTera/internal/model/catalog"
	interviewService "github.com/ayanpandit/PrepTera/internal/service/interview"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(cfg config.ServerConfig, svc *interviewService.Service, options catalogModel.Catalog) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(cfg.AllowedOrigins))

	interview.New(svc, cfg.Environment).RegisterRoutes(r)
	catalog.New(options).RegisterRoutes(r)
	stream.New(svc).RegisterRoutes(r)
	live.New(svc, cfg.AllowedOrigins).RegisterRoutes(r)

	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	return r
}
