package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/taskdeck-api/internal/api/shared"
	"github.com/phrazzld/taskdeck-api/internal/domain"
	"github.com/phrazzld/taskdeck-api/internal/service"
)

// PriorityHandler handles priority-related HTTP requests.
type PriorityHandler struct {
	priorityService service.PriorityService
	logger          *slog.Logger
}

// NewPriorityHandler creates a new PriorityHandler.
func NewPriorityHandler(priorityService service.PriorityService, logger *slog.Logger) *PriorityHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for PriorityHandler")
	}

	return &PriorityHandler{
		priorityService: priorityService,
		logger:          logger.With(slog.String("component", "priority_handler")),
	}
}

// CreatePriority handles POST /priorities requests.
func (h *PriorityHandler) CreatePriority(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req CreatePriorityRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	priority, err := h.priorityService.CreatePriority(
		r.Context(), userID, req.Name, domain.PriorityLevel(req.Level), req.Color)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create priority")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, priority)
}

// ListPriorities handles GET /priorities requests.
func (h *PriorityHandler) ListPriorities(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	priorities, err := h.priorityService.ListPriorities(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list priorities")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, priorities)
}

// UpdatePriority handles PATCH /priorities/{id} requests.
func (h *PriorityHandler) UpdatePriority(w http.ResponseWriter, r *http.Request) {
	userID, priorityID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req UpdatePriorityRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	patch := service.PriorityPatch{Name: req.Name, Color: req.Color}
	if req.Level != nil {
		level := domain.PriorityLevel(*req.Level)
		patch.Level = &level
	}

	priority, err := h.priorityService.UpdatePriority(r.Context(), userID, priorityID, patch)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update priority")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, priority)
}

// DeletePriority handles DELETE /priorities/{id} requests.
func (h *PriorityHandler) DeletePriority(w http.ResponseWriter, r *http.Request) {
	userID, priorityID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	if err := h.priorityService.DeletePriority(r.Context(), userID, priorityID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete priority")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
