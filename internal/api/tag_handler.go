package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/taskdeck-api/internal/api/shared"
	"github.com/phrazzld/taskdeck-api/internal/service"
)

// TagHandler handles tag-related HTTP requests.
type TagHandler struct {
	tagService service.TagService
	logger     *slog.Logger
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(tagService service.TagService, logger *slog.Logger) *TagHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TagHandler")
	}

	return &TagHandler{
		tagService: tagService,
		logger:     logger.With(slog.String("component", "tag_handler")),
	}
}

// CreateTag handles POST /tags requests.
func (h *TagHandler) CreateTag(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req CreateTagRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	tag, err := h.tagService.CreateTag(r.Context(), userID, req.Name, req.Color)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create tag")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, tag)
}

// ListTags handles GET /tags requests.
func (h *TagHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	tags, err := h.tagService.ListTags(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tags")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tags)
}

// UpdateTag handles PATCH /tags/{id} requests.
func (h *TagHandler) UpdateTag(w http.ResponseWriter, r *http.Request) {
	userID, tagID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req UpdateTagRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	tag, err := h.tagService.UpdateTag(r.Context(), userID, tagID, service.TagPatch{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update tag")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tag)
}

// DeleteTag handles DELETE /tags/{id} requests.
func (h *TagHandler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	userID, tagID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	if err := h.tagService.DeleteTag(r.Context(), userID, tagID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete tag")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
