// Package handlers exposes the record store over JSON endpoints. Every
// handler validates its own input before calling the store, which runs the
// same checks again; the store stays safe to call without this layer.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/veritaslogistics/veritas-api/internal/domain"
	"github.com/veritaslogistics/veritas-api/internal/http/response"
	"github.com/veritaslogistics/veritas-api/internal/store"
	"github.com/veritaslogistics/veritas-api/pkg/events"
	"github.com/veritaslogistics/veritas-api/pkg/logger"
)

// writeStoreError maps store failures onto the error response taxonomy.
func writeStoreError(w http.ResponseWriter, err error) {
	var verr *store.ValidationError
	switch {
	case errors.As(err, &verr):
		response.WriteErrorWithDetails(w, http.StatusBadRequest,
			"validation failed", response.CodeValidation, verr.Error())
	case errors.Is(err, store.ErrDuplicateEmail):
		response.Conflict(w, "email already registered", response.CodeEmailExists)
	case errors.Is(err, store.ErrInvalidCredentials):
		response.WriteError(w, http.StatusUnauthorized,
			"invalid email or password", response.CodeInvalidCredentials)
	case errors.Is(err, store.ErrUserNotFound):
		response.NotFound(w, "user not found")
	case errors.Is(err, store.ErrStorageUnavailable):
		response.StorageUnavailable(w)
	default:
		response.InternalError(w, "unexpected error")
	}
}

// publishNotification emits notification.created for a freshly appended
// notification. Best effort, like every other event.
func publishNotification(ctx context.Context, bus events.Publisher, userID string, n *domain.Notification) {
	if err := bus.Publish(ctx, events.NotificationCreated, events.NotificationCreatedEvent{
		UserID:         userID,
		NotificationID: n.ID,
		Type:           n.Type,
		Title:          n.Title,
	}); err != nil {
		logger.WarnContext(ctx, "publish notification.created failed", "error", err)
	}
}
