package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/taskdeck-api/internal/api/shared"
	"github.com/phrazzld/taskdeck-api/internal/service"
)

// NotificationHandler handles notification-related HTTP requests.
type NotificationHandler struct {
	notificationService service.NotificationService
	logger              *slog.Logger
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(
	notificationService service.NotificationService,
	logger *slog.Logger,
) *NotificationHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for NotificationHandler")
	}

	return &NotificationHandler{
		notificationService: notificationService,
		logger:              logger.With(slog.String("component", "notification_handler")),
	}
}

// ListNotifications handles GET /notifications requests.
func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	notifications, err := h.notificationService.ListNotifications(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list notifications")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, notifications)
}

// MarkNotificationRead handles PATCH /notifications/{id}/read requests.
func (h *NotificationHandler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	userID, notificationID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	notification, err := h.notificationService.MarkRead(r.Context(), userID, notificationID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to mark notification read")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, notification)
}

// MarkAllNotificationsRead handles PATCH /notifications/read-all requests.
func (h *NotificationHandler) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	if err := h.notificationService.MarkAllRead(r.Context(), userID); err != nil {
		HandleAPIError(w, r, err, "Failed to mark notifications read")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteNotification handles DELETE /notifications/{id} requests.
func (h *NotificationHandler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	userID, notificationID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	if err := h.notificationService.DeleteNotification(r.Context(), userID, notificationID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete notification")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ClearNotifications handles DELETE /notifications requests.
func (h *NotificationHandler) ClearNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	if err := h.notificationService.ClearNotifications(r.Context(), userID); err != nil {
		HandleAPIError(w, r, err, "Failed to clear notifications")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
