package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	docsSvc "docshelf/internal/domain/services/docs"
	"docshelf/internal/httputil"
)

// TreeHandler handles HTTP requests for tree operations
type TreeHandler struct {
	treeService docsSvc.TreeService
	logger      *slog.Logger
}

// NewTreeHandler creates a new tree handler
func NewTreeHandler(treeService docsSvc.TreeService, logger *slog.Logger) *TreeHandler {
	return &TreeHandler{
		treeService: treeService,
		logger:      logger,
	}
}

// GetTree returns the sorted document forest for a project
// GET /api/projects/{id}/tree
func (h *TreeHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	if projectID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "project ID is required")
		return
	}

	forest, err := h.treeService.ProjectTree(r.Context(), projectID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, forest)
}

// WatchTree streams the forest over SSE: one snapshot immediately, then
// one per change-feed event, until the client disconnects.
// GET /api/projects/{id}/tree/watch
func (h *TreeHandler) WatchTree(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	if projectID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "project ID is required")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		httputil.RespondError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	trees, err := h.treeService.WatchProjectTree(r.Context(), projectID)
	if err != nil {
		handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for forest := range trees {
		payload, err := json.Marshal(forest)
		if err != nil {
			h.logger.Error("encode tree event failed", "project_id", projectID, "error", err)
			continue
		}
		fmt.Fprintf(w, "event: tree\ndata: %s\n\n", payload)
		flusher.Flush()
	}
}
