package service

import (
	"context"
	"io"

	"github.com/alexanderramin/showrunner/internal/domain"
	"github.com/alexanderramin/showrunner/internal/views"
)

// Delete operations return applied=false with a nil error when the user
// declines the confirmation prompt.

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (domain.Person, error)
	Login(ctx context.Context, email, password string) (domain.Person, error)
	Logout(ctx context.Context) error
	// HasPendingInvitation reports whether email belongs to an invited person
	// who has not set a password yet.
	HasPendingInvitation(ctx context.Context, email string) (bool, error)
	SetPassword(ctx context.Context, in SetPasswordInput) (domain.Person, error)
	CurrentUser(ctx context.Context) (domain.Person, error)
}

type TourService interface {
	List(ctx context.Context) ([]domain.Tour, error)
	Get(ctx context.Context, tourID string) (domain.Tour, error)
	Save(ctx context.Context, in TourInput) (domain.Tour, error)
	Delete(ctx context.Context, tourID string) (bool, error)
	Select(ctx context.Context, tourID string) (domain.Tour, error)
	ClearSelection(ctx context.Context) error
	Selected(ctx context.Context) (domain.Tour, bool, error)
}

type CrewService interface {
	List(ctx context.Context) ([]domain.Person, error)
	TourCrew(ctx context.Context, tourID string) ([]domain.Person, error)
	Save(ctx context.Context, in CrewMemberInput) (domain.Person, error)
	RemoveFromTour(ctx context.Context, tourID, personID string) (bool, error)
}

type ScheduleService interface {
	// Events is the signed-in person's visible schedule of the tour.
	Events(ctx context.Context, tourID string) ([]domain.ScheduleEvent, error)
	Event(ctx context.Context, tourID, eventID string) (domain.ScheduleEvent, error)
	SaveEvent(ctx context.Context, tourID string, in EventInput) (domain.ScheduleEvent, error)
	DeleteEvent(ctx context.Context, tourID, eventID string) (bool, error)
	AddComment(ctx context.Context, tourID, eventID, text string) (domain.Comment, error)
	DaySheet(ctx context.Context, tourID, personID, date string) ([]domain.ScheduleEvent, error)
}

type TaskService interface {
	List(ctx context.Context, tourID string, filter views.TaskFilter) ([]views.TourTask, error)
	Add(ctx context.Context, tourID, eventID string, in TaskInput) (domain.Task, error)
	Update(ctx context.Context, tourID string, ref domain.TaskRef, in TaskUpdate) (domain.Task, error)
	Delete(ctx context.Context, tourID string, ref domain.TaskRef) (bool, error)
	// BulkToggle moves every referenced task to NOT(all currently completed)
	// and returns that target value.
	BulkToggle(ctx context.Context, tourID string, refs []domain.TaskRef) (bool, error)
	BulkDelete(ctx context.Context, tourID string, refs []domain.TaskRef) (int, error)
}

type FinanceService interface {
	Summary(ctx context.Context, tourID string, filter views.ExpenseFilter) (views.BudgetSummary, error)
	SaveExpense(ctx context.Context, tourID string, in ExpenseInput) (domain.Expense, error)
	DeleteExpense(ctx context.Context, tourID, expenseID string) (bool, error)
	SetExpenseStatus(ctx context.Context, tourID, expenseID string, status domain.ExpenseStatus, reason string) (domain.Expense, error)
	AddBudgetItem(ctx context.Context, tourID string, in BudgetItemInput) (domain.BudgetItem, error)
	DeleteBudgetItem(ctx context.Context, tourID, itemID string) (bool, error)
}

type MarketingService interface {
	UpdateWebsite(ctx context.Context, tourID string, sections []domain.WebsiteSection) error
	AddSection(ctx context.Context, tourID string, sectionType domain.SectionType) (domain.WebsiteSection, error)
	EditSection(ctx context.Context, tourID, sectionID string, content domain.SectionContent) error
	MoveSection(ctx context.Context, tourID, sectionID string, delta int) error
	DeleteSection(ctx context.Context, tourID, sectionID string) (bool, error)
	ToggleDeployment(ctx context.Context, tourID string) (bool, error)
	// PublicWebsite returns the sections of a deployed website. No session
	// is needed; an undeployed website reports ErrNotFound.
	PublicWebsite(ctx context.Context, tourID string) (domain.Tour, error)

	AddCampaign(ctx context.Context, tourID string, in CampaignInput) (domain.EmailCampaign, error)
	UpdateCampaign(ctx context.Context, tourID string, c domain.EmailCampaign) error
	DeleteCampaign(ctx context.Context, tourID, campaignID string) (bool, error)
	Audience(ctx context.Context, tourID, campaignID string) ([]domain.Person, error)
	Preview(ctx context.Context, tourID, campaignID string) (views.CampaignPreview, error)
}

type RegistrationService interface {
	AddForm(ctx context.Context, tourID string) (domain.RegistrationForm, error)
	UpdateForm(ctx context.Context, tourID string, form domain.RegistrationForm) error
	ToggleFormStatus(ctx context.Context, tourID, formID string) (domain.FormStatus, error)
	DeleteForm(ctx context.Context, tourID, formID string) (bool, error)
	AddField(ctx context.Context, tourID, formID string, in FieldInput) (domain.FormField, error)
	UpdateField(ctx context.Context, tourID, formID string, field domain.FormField) error
	DeleteField(ctx context.Context, tourID, formID, fieldID string) error
	// Submit records an attendee. The form's open/closed status is not checked.
	Submit(ctx context.Context, tourID, formID string, responses []domain.RegistrationResponse) (domain.Attendee, error)
	// PublicForm returns a form that accepts public submissions.
	PublicForm(ctx context.Context, tourID, formID string) (domain.RegistrationForm, error)
	Attendees(ctx context.Context, tourID, formID string, filters map[string]string) ([]domain.Attendee, error)
	DeleteAttendee(ctx context.Context, tourID, attendeeID string) (bool, error)
	// ExportCSV writes the filtered attendee report and returns its file name.
	ExportCSV(ctx context.Context, w io.Writer, tourID, formID string, filters map[string]string) (string, error)
}

type SourcingService interface {
	Suppliers(ctx context.Context) ([]domain.Supplier, error)
	RFPs(ctx context.Context, tourID string) ([]domain.RFP, error)
	Compare(ctx context.Context, tourID, rfpID string) ([]views.ProposalRow, error)
	Award(ctx context.Context, tourID, rfpID string) error
	// AwardProposal awards the RFP the proposal answers and returns its ID.
	AwardProposal(ctx context.Context, tourID, proposalID string) (string, error)
}

type RiderService interface {
	// Process parses rider text. Adapter failures are reported through the
	// Notifier and yield an empty result with a nil error.
	Process(ctx context.Context, text string) (domain.RiderParseResult, error)
	// Apply stores the budget items and the generated Load-in event together.
	Apply(ctx context.Context, tourID string, result domain.RiderParseResult) (domain.ScheduleEvent, error)
}

// RiderParser turns rider text into suggested tasks and budget items.
type RiderParser interface {
	Parse(ctx context.Context, text string, people []domain.Person) (domain.RiderParseResult, error)
}
