package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/showrunner/internal/blob"
	"github.com/alexanderramin/showrunner/internal/domain"
	"github.com/alexanderramin/showrunner/internal/mutation"
	"github.com/alexanderramin/showrunner/internal/repository"
	"github.com/alexanderramin/showrunner/internal/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	managerID    = "person-m"
	productionID = "person-p"
	crewID       = "person-c"
	artistID     = "person-a"
	tourID       = "tour-1"
	otherTourID  = "tour-2"
)

// harness wires a workspace over an in-memory blob store and records every
// confirmation prompt and notice.
type harness struct {
	ws      *Workspace
	store   blob.Store
	repo    repository.StateRepo
	events  []UseCaseEvent
	prompts []string
	notices []string
	answer  bool
}

func newHarness(t *testing.T, st domain.State, opts ...Option) *harness {
	return newHarnessWithStore(t, blob.NewMemory(), st, opts...)
}

func newHarnessWithStore(t *testing.T, store blob.Store, st domain.State, opts ...Option) *harness {
	t.Helper()
	h := &harness{store: store, answer: true}
	h.repo = repository.NewBlobStateRepo(store, zap.NewNop(), func() domain.State { return st })
	base := []Option{
		WithClock(testutil.FixedClock(testutil.FixedNow)),
		WithIDGenerator(testutil.SequentialIDs()),
		WithConfirmer(ConfirmFunc(func(_ context.Context, prompt string) (bool, error) {
			h.prompts = append(h.prompts, prompt)
			return h.answer, nil
		})),
		WithNotifier(NotifyFunc(func(_ context.Context, msg string) { h.notices = append(h.notices, msg) })),
		WithObservers(observerFunc(func(e UseCaseEvent) { h.events = append(h.events, e) })),
		WithPasswordCost(bcrypt.MinCost),
	}
	ws, err := OpenWorkspace(context.Background(), h.repo, append(base, opts...)...)
	require.NoError(t, err)
	h.ws = ws
	return h
}

type observerFunc func(UseCaseEvent)

func (f observerFunc) ObserveUseCase(_ context.Context, e UseCaseEvent) { f(e) }

func (h *harness) signIn(t *testing.T, personID string) {
	t.Helper()
	require.NoError(t, h.ws.mutate(context.Background(), "test-sign-in", nil, func(st domain.State) (domain.State, []domain.StateKey, error) {
		return mutation.SignIn(st, personID), nil, nil
	}))
}

// persisted reloads the workspace from the store.
func (h *harness) persisted(t *testing.T) domain.State {
	t.Helper()
	st, err := h.repo.Load(context.Background())
	require.NoError(t, err)
	return st
}

func (h *harness) tour(t *testing.T, id string) domain.Tour {
	t.Helper()
	tour, ok := h.ws.Snapshot().FindTour(id)
	require.True(t, ok, "tour %s", id)
	return tour
}

func (h *harness) event(t *testing.T, tourID, eventID string) domain.ScheduleEvent {
	t.Helper()
	e, ok := domain.FindEvent(h.ws.Snapshot().Events(tourID), eventID)
	require.True(t, ok, "event %s", eventID)
	return e
}

// fixtureState is a small tour workspace with the manager signed in and
// tour-1 selected.
func fixtureState() domain.State {
	people := []domain.Person{
		testutil.NewTestPerson(managerID, "Alex Johnson", testutil.WithRole(domain.RoleTourManager), testutil.WithEmail("alex@showrunner.app")),
		testutil.NewTestPerson(productionID, "Jordan Davis", testutil.WithRole(domain.RoleProduction), testutil.WithEmail("jordan@showrunner.app")),
		testutil.NewTestPerson(crewID, "Casey Lee", testutil.WithEmail("casey@showrunner.app")),
		testutil.NewTestPerson(artistID, "Maria Garcia", testutil.WithRole(domain.RoleArtist), testutil.WithEmail("maria@showrunner.app")),
	}

	tour := testutil.NewTestTour(tourID, "Brightside World Tour",
		testutil.WithBudget(
			domain.BudgetItem{ID: "bud-1", Category: "Venue", Amount: 1000},
			domain.BudgetItem{ID: "bud-2", Category: "Catering", Amount: 500},
		),
		testutil.WithExpenses(
			domain.Expense{ID: "exp-1", Description: "Venue deposit", Amount: 400, Date: "2024-08-01", Category: "Venue", SubmittedByID: managerID, Status: domain.ExpenseApproved},
			domain.Expense{ID: "exp-2", Description: "Crew dinner", Amount: 100, Date: "2024-08-10", Category: "Catering", SubmittedByID: crewID, Status: domain.ExpensePending},
		),
		testutil.WithWebsite(true,
			domain.WebsiteSection{ID: "ws-1", Type: domain.SectionHero, Content: domain.SectionContent{Headline: "Brightside"}},
			domain.WebsiteSection{ID: "ws-2", Type: domain.SectionAbout, Content: domain.SectionContent{Title: "About"}},
		),
		testutil.WithCampaigns(domain.EmailCampaign{
			ID: "camp-1", Name: "Denver Reminder", Status: domain.CampaignScheduled, ScheduledDate: "2024-08-10",
			Subject: "See you in {{event_city}}, {{user_name}}!", FromName: "HQ",
			Content:      domain.CampaignContent{Headline: "Hi {{user_name}}", Body: "Doors open at 7."},
			Segmentation: &domain.Segmentation{LocationIDs: []string{"Chicago, IL"}},
		}),
		testutil.WithForms(
			domain.RegistrationForm{ID: "form-1", Name: "General Admission", Status: domain.FormOpen, Fields: []domain.FormField{
				{ID: "field-1", Type: domain.FieldText, Label: "Full Name", Required: true},
				{ID: "field-2", Type: domain.FieldSelect, Label: "T-Shirt Size", Options: []string{"Small", "Large"}},
			}},
			domain.RegistrationForm{ID: "form-2", Name: "VIP", Status: domain.FormClosed, Fields: []domain.FormField{}},
		),
		testutil.WithAttendees(domain.Attendee{
			ID: "att-1", FormID: "form-1", RegistrationDate: time.Date(2024, 7, 20, 10, 0, 0, 0, time.UTC),
			Responses: []domain.RegistrationResponse{
				{FieldID: "field-1", Value: domain.StringValue("Alice Johnson")},
				{FieldID: "field-2", Value: domain.StringValue("Small")},
			},
		}),
		testutil.WithRFPs(
			[]domain.RFP{{ID: "rfp-1", Title: "Lighting", Status: domain.RFPResponded}},
			[]domain.Proposal{
				{ID: "prop-1", RFPID: "rfp-1", SupplierID: "sup-1", TotalCost: 9200},
				{ID: "prop-2", RFPID: "rfp-1", SupplierID: "sup-2", TotalCost: 8500},
			},
		),
	)
	other := testutil.NewTestTour(otherTourID, "Second Tour", testutil.WithDates("2024-10-01", "2024-10-31"))

	schedule := domain.Schedule{
		tourID: {
			testutil.NewTestEvent("ev-1", "2024-08-16",
				testutil.WithAssignee(managerID, domain.PermissionWrite),
				testutil.WithAssignee(productionID, domain.PermissionWrite),
				testutil.WithAssignee(crewID, domain.PermissionRead),
				testutil.WithTasks(
					domain.Task{ID: "task-1", Text: "Load the truck", AssignedTo: crewID},
					domain.Task{ID: "task-2", Text: "Check power", AssignedTo: productionID, Completed: true},
				),
			),
			testutil.NewTestEvent("ev-2", "2024-08-17",
				testutil.WithLocation("Chicago, IL"),
				testutil.WithAssignee(crewID, domain.PermissionWrite),
				testutil.WithTasks(domain.Task{ID: "task-3", Text: "Set up merch", AssignedTo: crewID}),
			),
			testutil.NewTestEvent("ev-3", "2024-08-18",
				testutil.WithLocation("Nashville, TN"),
				testutil.WithAssignee(artistID, domain.PermissionRead),
			),
		},
	}

	st := testutil.NewTestState(people, []domain.Tour{tour, other}, schedule)
	st.Suppliers = []domain.Supplier{
		{ID: "sup-1", Name: "StageGlow Productions", Category: domain.SupplierLighting},
		{ID: "sup-2", Name: "Bright Lights Inc.", Category: domain.SupplierLighting},
	}
	return st
}
