// Package notify delivers in-app notifications and outbound email.
package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/loan-checklist/internal/model"
	"github.com/nhle/loan-checklist/internal/store"
)

// StoreNotifier writes notifications to each recipient's inbox in the
// store.
type StoreNotifier struct {
	store store.NotificationStore
	now   func() time.Time
}

// NewStoreNotifier creates a StoreNotifier.
func NewStoreNotifier(s store.NotificationStore) *StoreNotifier {
	return &StoreNotifier{store: s, now: time.Now}
}

// Notify creates one notification per recipient. Every recipient is
// attempted; the failures are returned joined.
func (n *StoreNotifier) Notify(ctx context.Context, req model.NotificationRequest) error {
	now := n.now().UTC()
	var errs []error
	for _, userID := range req.UserIDs {
		err := n.store.CreateNotification(ctx, model.Notification{
			ID:         uuid.New().String(),
			UserID:     userID,
			Type:       req.Type,
			Message:    req.Message,
			EntityType: req.EntityType,
			EntityID:   req.EntityID,
			LinkURL:    req.LinkURL,
			Priority:   req.Priority,
			CreatedAt:  now,
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("notifying %s: %w", userID, err))
		}
	}
	return errors.Join(errs...)
}

// Unread lists a user's unread notifications, newest first.
func (n *StoreNotifier) Unread(ctx context.Context, userID string) ([]model.Notification, error) {
	return n.store.GetUnreadNotifications(ctx, userID)
}

// MarkRead marks one notification as read.
func (n *StoreNotifier) MarkRead(ctx context.Context, id string) error {
	return n.store.MarkNotificationRead(ctx, id)
}
