package model

import "time"

// Notification types.
const (
	NotificationTypeAssignment   = "assignment"
	NotificationTypeStatusChange = "status_change"
	NotificationTypeMention      = "mention"
	NotificationTypeLOE          = "loe_request"
)

// Notification priorities.
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

// NotificationRequest is what the engine hands to the notification
// dispatcher. One Notification is produced per recipient.
type NotificationRequest struct {
	UserIDs    []string `json:"user_ids"`
	Message    string   `json:"message"`
	Type       string   `json:"type"`
	EntityType string   `json:"entity_type"`
	EntityID   string   `json:"entity_id"`
	LinkURL    string   `json:"link_url"`
	Priority   string   `json:"priority"`
}

// Notification represents an alert surfaced to a single user
// about activity on a checklist item.
type Notification struct {
	// ID is the unique identifier for this notification.
	ID string `json:"id"`

	// UserID is the recipient.
	UserID string `json:"user_id"`

	// Type is one of the NotificationType* constants.
	Type string `json:"type"`

	// Message is the human-readable notification text.
	Message string `json:"message"`

	// EntityType and EntityID point at the record the notification is about.
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`

	// LinkURL is where the UI should navigate when the notification is opened.
	LinkURL string `json:"link_url"`

	Priority string `json:"priority"`

	// Read indicates whether the user has seen this notification.
	Read bool `json:"read"`

	// CreatedAt is when this notification was generated.
	CreatedAt time.Time `json:"created_at"`
}

// Email is an outbound message handed to the email dispatcher.
type Email struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
