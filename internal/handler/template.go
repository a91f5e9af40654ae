package handler

import (
	"log/slog"
	"net/http"

	docsSvc "docshelf/internal/domain/services/docs"
	"docshelf/internal/httputil"
)

// TemplateHandler serves the built-in page template catalog
type TemplateHandler struct {
	catalog docsSvc.TemplateCatalog
	logger  *slog.Logger
}

// NewTemplateHandler creates a new template handler
func NewTemplateHandler(catalog docsSvc.TemplateCatalog, logger *slog.Logger) *TemplateHandler {
	return &TemplateHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// ListTemplates returns every template in the catalog
// GET /api/templates
func (h *TemplateHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.catalog.ListTemplates())
}

// GetTemplate returns one template by id
// GET /api/templates/{id}
func (h *TemplateHandler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "template ID is required")
		return
	}

	tmpl, err := h.catalog.GetTemplate(id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tmpl)
}
