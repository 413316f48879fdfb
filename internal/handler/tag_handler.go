package handler

import (
	"encoding/json"
	"net/http"

	"catalog-api/internal/model"
	"catalog-api/internal/service"

	"github.com/rs/zerolog"
)

// TagHandler handles tag-related HTTP requests.
type TagHandler struct {
	service service.TagService
	logger  zerolog.Logger
}

// NewTagHandler creates a new tag handler.
func NewTagHandler(service service.TagService, logger zerolog.Logger) *TagHandler {
	return &TagHandler{
		service: service,
		logger:  logger.With().Str("handler", "tag").Logger(),
	}
}

// GetAll handles GET /api/tags requests.
func (h *TagHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	tags, err := h.service.GetAll(r.Context())
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	if tags == nil {
		tags = []model.Tag{}
	}

	writeJSON(w, http.StatusOK, tags)
}

// GetByID handles GET /api/tags/{id} requests.
func (h *TagHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid tag id", h.logger)
		return
	}

	tag, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, tag)
}

// Create handles POST /api/tags requests.
func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.TagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	tag, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, tag)
}

// Update handles PUT /api/tags/{id} requests.
func (h *TagHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid tag id", h.logger)
		return
	}

	var req model.TagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if err := h.service.Update(r.Context(), id, &req); err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Tag updated successfully"})
}

// Delete handles DELETE /api/tags/{id} requests.
func (h *TagHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid tag id", h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Tag deleted successfully"})
}
