package checklist_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nhle/loan-checklist/internal/catalog"
	"github.com/nhle/loan-checklist/internal/checklist"
	"github.com/nhle/loan-checklist/internal/model"
	"github.com/nhle/loan-checklist/internal/store"
	"github.com/nhle/loan-checklist/tests/testutil"
)

var fixedNow = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

var (
	actor = model.User{ID: "u-ada", FirstName: "Ada", LastName: "Lovelace", Email: "ada@lender.test", Role: model.RoleProcessor}
	jane  = model.User{ID: "u-jane", FirstName: "Jane", LastName: "Smith", Email: "jane@lender.test", Role: model.RoleUnderwriter}
	omar  = model.User{ID: "u-omar", FirstName: "Omar", LastName: "Haddad", Email: "omar@lender.test", Role: model.RoleLoanOfficer}
)

type staticSession struct {
	user model.User
}

func (s staticSession) CurrentUser(context.Context) (*model.User, error) {
	u := s.user
	return &u, nil
}

type fakeStorage struct {
	fail     map[string]bool
	uploaded []string
}

func (f *fakeStorage) Upload(_ context.Context, file model.UploadFile) (string, error) {
	if f.fail[file.Name] {
		return "", errors.New("storage unavailable")
	}
	f.uploaded = append(f.uploaded, file.Name)
	return "https://files.lender.test/" + file.Name, nil
}

type recordingNotifier struct {
	requests []model.NotificationRequest
}

func (n *recordingNotifier) Notify(_ context.Context, req model.NotificationRequest) error {
	n.requests = append(n.requests, req)
	return nil
}

func (n *recordingNotifier) ofType(typ string) []model.NotificationRequest {
	var out []model.NotificationRequest
	for _, r := range n.requests {
		if r.Type == typ {
			out = append(out, r)
		}
	}
	return out
}

type recordingMailer struct {
	fail map[string]bool
	sent []model.Email
}

func (m *recordingMailer) SendEmail(_ context.Context, email model.Email) error {
	m.sent = append(m.sent, email)
	if m.fail[email.To] {
		return errors.New("mailbox unavailable")
	}
	return nil
}

type fixture struct {
	store    *store.SQLiteStore
	engine   *checklist.Engine
	loan     *model.Loan
	files    *fakeStorage
	notifier *recordingNotifier
	mailer   *recordingMailer
	events   chan checklist.Event
}

// newFixture seeds a fix-and-flip loan and the user directory, then
// builds an engine with recording collaborators.
func newFixture(t *testing.T, borrowers ...model.Borrower) *fixture {
	t.Helper()
	ctx := context.Background()

	s := testutil.NewTestStore(t)
	for _, u := range []model.User{actor, jane, omar} {
		require.NoError(t, s.UpsertUser(ctx, u))
	}
	loan := testutil.SeedLoan(t, s, testutil.Product(model.LoanTypeFixAndFlip), borrowers...)

	f := &fixture{
		store:    s,
		loan:     loan,
		files:    &fakeStorage{fail: map[string]bool{}},
		notifier: &recordingNotifier{},
		mailer:   &recordingMailer{fail: map[string]bool{}},
		events:   make(chan checklist.Event, 64),
	}
	f.engine = checklist.New(s, catalog.Default(), staticSession{user: actor},
		checklist.WithClock(func() time.Time { return fixedNow }),
		checklist.WithFileStorage(f.files),
		checklist.WithNotifier(f.notifier),
		checklist.WithMailer(f.mailer),
		checklist.WithEvents(f.events),
		checklist.WithBaseURL("https://app.lender.test/"),
	)
	return f
}

// materialized returns a fixture whose loan checklist has been created.
func materialized(t *testing.T, borrowers ...model.Borrower) *fixture {
	t.Helper()
	f := newFixture(t, borrowers...)
	_, err := f.engine.Materialize(context.Background(), f.loan.ID)
	require.NoError(t, err)
	drain(f.events)
	return f
}

func (f *fixture) item(t *testing.T, name string) *model.ChecklistItem {
	t.Helper()
	items, err := f.engine.Items(context.Background(), f.loan.ID)
	require.NoError(t, err)
	for i := range items {
		if items[i].ItemName == name {
			return &items[i]
		}
	}
	t.Fatalf("no checklist item named %q", name)
	return nil
}

func (f *fixture) linkedDocs(t *testing.T, itemID string) []model.LoanDocument {
	t.Helper()
	docs, err := f.store.GetLoanDocuments(context.Background(), store.DocumentFilter{
		LoanID:          f.loan.ID,
		ChecklistItemID: &itemID,
	})
	require.NoError(t, err)
	return docs
}

func drain(ch chan checklist.Event) []checklist.Event {
	var out []checklist.Event
	for {
		select {
		case e := <-ch:
			out = append(out, e)
		default:
			return out
		}
	}
}

func lastActivity(item *model.ChecklistItem) model.ActivityEntry {
	return item.ActivityHistory[len(item.ActivityHistory)-1]
}

func upload(names ...string) []model.UploadFile {
	files := make([]model.UploadFile, len(names))
	for i, n := range names {
		files[i] = model.UploadFile{Name: n, ContentType: "application/pdf"}
	}
	return files
}
