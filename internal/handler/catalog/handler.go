package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ayanpandit/PrepTera/internal/model/catalog"
	"github.com/ayanpandit/PrepTera/pkg/utils"
)

// Handler serves the setup options.
type Handler struct {
	catalog catalog.Catalog
}

// New creates the catalog handler.
func New(c catalog.Catalog) *Handler {
	return &Handler{catalog: c}
}

// RegisterRoutes mounts GET /catalog.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/catalog", h.handleCatalog)
}

func (h *Handler) handleCatalog(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.catalog)
}
