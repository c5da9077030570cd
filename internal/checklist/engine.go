// Package checklist materializes loan checklists from the template
// catalog and applies every state change a checklist item goes through.
package checklist

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nhle/loan-checklist/internal/catalog"
	"github.com/nhle/loan-checklist/internal/mirror"
	"github.com/nhle/loan-checklist/internal/model"
	"github.com/nhle/loan-checklist/internal/store"
)

// FileStorage stores uploaded files and returns their public URL.
type FileStorage interface {
	Upload(ctx context.Context, file model.UploadFile) (string, error)
}

// Notifier delivers in-app notifications.
type Notifier interface {
	Notify(ctx context.Context, req model.NotificationRequest) error
}

// Mailer sends outbound email.
type Mailer interface {
	SendEmail(ctx context.Context, email model.Email) error
}

// Session resolves the user performing the current operation.
type Session interface {
	CurrentUser(ctx context.Context) (*model.User, error)
}

// EventKind identifies what changed in an Event.
type EventKind string

const (
	EventMaterialized     EventKind = "materialized"
	EventItemUpdated      EventKind = "item_updated"
	EventDocumentsChanged EventKind = "documents_changed"
)

// Event tells subscribers that a loan's checklist or documents changed
// and should be reloaded.
type Event struct {
	Kind   EventKind `json:"kind"`
	LoanID string    `json:"loan_id"`
	ItemID string    `json:"item_id,omitempty"`
}

// Engine applies checklist operations against the store and keeps the
// document mirror in step.
type Engine struct {
	store    store.Store
	catalog  *catalog.Catalog
	mirror   *mirror.Mirror
	session  Session
	files    FileStorage
	notifier Notifier
	mailer   Mailer
	logger   *slog.Logger
	events   chan<- Event
	now      func() time.Time
	baseURL  string
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithClock replaces time.Now for activity timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithEvents publishes an Event after every committed operation. Sends
// never block; events are dropped when the channel is full.
func WithEvents(ch chan<- Event) Option {
	return func(e *Engine) { e.events = ch }
}

func WithFileStorage(fs FileStorage) Option {
	return func(e *Engine) { e.files = fs }
}

func WithNotifier(n Notifier) Option {
	return func(e *Engine) { e.notifier = n }
}

func WithMailer(m Mailer) Option {
	return func(e *Engine) { e.mailer = m }
}

// WithBaseURL sets the application URL used in notification links.
func WithBaseURL(u string) Option {
	return func(e *Engine) { e.baseURL = strings.TrimRight(u, "/") }
}

// New creates an Engine.
func New(s store.Store, cat *catalog.Catalog, session Session, opts ...Option) *Engine {
	e := &Engine{
		store:   s,
		catalog: cat,
		session: session,
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.mirror = mirror.New(s, e.logger)
	return e
}

// Catalog returns the template catalog the engine materializes from.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Items returns every checklist item of a loan in creation order.
func (e *Engine) Items(ctx context.Context, loanID string) ([]model.ChecklistItem, error) {
	return e.store.GetChecklistItems(ctx, store.ChecklistFilter{LoanID: loanID})
}

// Item returns one checklist item.
func (e *Engine) Item(ctx context.Context, itemID string) (*model.ChecklistItem, error) {
	return e.store.GetChecklistItemByID(ctx, itemID)
}

// Documents returns every loan document of a loan.
func (e *Engine) Documents(ctx context.Context, loanID string) ([]model.LoanDocument, error) {
	return e.store.GetLoanDocuments(ctx, store.DocumentFilter{LoanID: loanID})
}

func (e *Engine) actor(ctx context.Context) (*model.User, error) {
	u, err := e.session.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving current user: %w", err)
	}
	return u, nil
}

// load fetches the item and the acting user for a mutation.
func (e *Engine) load(ctx context.Context, itemID string) (*model.ChecklistItem, *model.User, error) {
	actor, err := e.actor(ctx)
	if err != nil {
		return nil, nil, err
	}
	item, err := e.store.GetChecklistItemByID(ctx, itemID)
	if err != nil {
		return nil, nil, err
	}
	return item, actor, nil
}

// record appends one activity entry to the item.
func (e *Engine) record(item *model.ChecklistItem, actor *model.User, action, details string) {
	item.ActivityHistory = append(item.ActivityHistory, model.ActivityEntry{
		Timestamp: e.now().UTC(),
		UserID:    actor.ID,
		UserName:  actor.FullName(),
		Action:    action,
		Details:   details,
	})
}

func (e *Engine) save(ctx context.Context, item *model.ChecklistItem) error {
	if err := e.store.UpdateChecklistItem(ctx, item); err != nil {
		return fmt.Errorf("saving checklist item %s: %w", item.ID, err)
	}
	return nil
}

// syncMirror propagates the item's status to its linked documents. The
// item write is already committed, so failures are only logged.
func (e *Engine) syncMirror(ctx context.Context, item *model.ChecklistItem) {
	if err := e.mirror.SyncStatus(ctx, item.ID, item.LoanID, item.Status); err != nil {
		e.logger.Error("document mirror out of sync",
			"loan_id", item.LoanID, "item_id", item.ID, "status", item.Status, "error", err)
	}
}

// publish sends an event without blocking.
func (e *Engine) publish(kind EventKind, loanID, itemID string) {
	if e.events == nil {
		return
	}
	select {
	case e.events <- Event{Kind: kind, LoanID: loanID, ItemID: itemID}:
	default:
		e.logger.Debug("event channel full, dropping event", "kind", kind, "loan_id", loanID)
	}
}

// notify dispatches a notification to recipients, skipping the actor.
// Failures are logged only.
func (e *Engine) notify(ctx context.Context, actor *model.User, req model.NotificationRequest) {
	if e.notifier == nil {
		return
	}
	req.UserIDs = without(req.UserIDs, actor.ID)
	if len(req.UserIDs) == 0 {
		return
	}
	if req.EntityType == "" {
		req.EntityType = "checklist_item"
	}
	if req.Priority == "" {
		req.Priority = model.PriorityNormal
	}
	if err := e.notifier.Notify(ctx, req); err != nil {
		e.logger.Warn("notification failed",
			"type", req.Type, "entity_id", req.EntityID, "error", err)
	}
}

func (e *Engine) itemLink(item *model.ChecklistItem) string {
	return fmt.Sprintf("%s/loans/%s/checklist?item=%s", e.baseURL, item.LoanID, item.ID)
}

// without returns ids minus exclude, deduplicated, in original order.
func without(ids []string, exclude string) []string {
	seen := make(map[string]bool, len(ids))
	var out []string
	for _, id := range ids {
		if id == "" || id == exclude || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
