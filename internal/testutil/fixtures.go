package testutil

import (
	"fmt"
	"sync"
	"time"

	"github.com/alexanderramin/showrunner/internal/domain"
)

// FixedNow is the clock value used across service tests.
var FixedNow = time.Date(2024, 8, 16, 12, 0, 0, 0, time.UTC)

// FixedClock returns a clock that always reports now.
func FixedClock(now time.Time) func() time.Time {
	return func() time.Time { return now }
}

// SequentialIDs returns a generator producing "<prefix>-t1", "<prefix>-t2", ...
// with one counter shared across prefixes.
func SequentialIDs() func(prefix string) string {
	var mu sync.Mutex
	n := 0
	return func(prefix string) string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-t%d", prefix, n)
	}
}

// Person options
type PersonOption func(*domain.Person)

func WithRole(r domain.Role) PersonOption {
	return func(p *domain.Person) { p.Role = r }
}

func WithEmail(email string) PersonOption {
	return func(p *domain.Person) { p.Email = email }
}

func WithPersonStatus(s domain.PersonStatus) PersonOption {
	return func(p *domain.Person) { p.Status = s }
}

// NewTestPerson creates an active crew member without a password.
func NewTestPerson(id, name string, opts ...PersonOption) domain.Person {
	p := domain.Person{
		ID:     id,
		Name:   name,
		Email:  id + "@test.local",
		Status: domain.PersonActive,
		Role:   domain.RoleCrew,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Tour options
type TourOption func(*domain.Tour)

func WithDates(start, end string) TourOption {
	return func(t *domain.Tour) {
		t.StartDate = start
		t.EndDate = end
	}
}

func WithBudget(items ...domain.BudgetItem) TourOption {
	return func(t *domain.Tour) {
		f := t.FinancialsOrEmpty()
		f.Budget = append(f.Budget, items...)
		t.Financials = &f
	}
}

func WithExpenses(expenses ...domain.Expense) TourOption {
	return func(t *domain.Tour) {
		f := t.FinancialsOrEmpty()
		f.Expenses = append(f.Expenses, expenses...)
		t.Financials = &f
	}
}

func WithWebsite(deployed bool, sections ...domain.WebsiteSection) TourOption {
	return func(t *domain.Tour) {
		t.Website = sections
		t.IsWebsiteDeployed = deployed
	}
}

func WithCampaigns(campaigns ...domain.EmailCampaign) TourOption {
	return func(t *domain.Tour) { t.Campaigns = campaigns }
}

func WithForms(forms ...domain.RegistrationForm) TourOption {
	return func(t *domain.Tour) {
		r := t.RegistrationOrEmpty()
		r.Forms = append(r.Forms, forms...)
		t.Registration = &r
	}
}

func WithAttendees(attendees ...domain.Attendee) TourOption {
	return func(t *domain.Tour) {
		r := t.RegistrationOrEmpty()
		r.Attendees = append(r.Attendees, attendees...)
		t.Registration = &r
	}
}

func WithRFPs(rfps []domain.RFP, proposals []domain.Proposal) TourOption {
	return func(t *domain.Tour) {
		t.RFPs = rfps
		t.Proposals = proposals
	}
}

// NewTestTour creates an active tour running through August 2024.
func NewTestTour(id, name string, opts ...TourOption) domain.Tour {
	t := domain.Tour{
		ID:         id,
		ArtistName: "Test Artist",
		TourName:   name,
		Status:     domain.TourActive,
		StartDate:  "2024-08-01",
		EndDate:    "2024-08-31",
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// Event options
type EventOption func(*domain.ScheduleEvent)

func WithAssignee(personID string, perm domain.Permission) EventOption {
	return func(e *domain.ScheduleEvent) {
		e.AssignedTo = append(e.AssignedTo, domain.EventAssignment{PersonID: personID, Permission: perm})
	}
}

func WithTasks(tasks ...domain.Task) EventOption {
	return func(e *domain.ScheduleEvent) { e.Tasks = append(e.Tasks, tasks...) }
}

func WithLocation(loc string) EventOption {
	return func(e *domain.ScheduleEvent) { e.Location = loc }
}

func WithEventType(t domain.EventType) EventOption {
	return func(e *domain.ScheduleEvent) { e.Type = t }
}

// NewTestEvent creates a performance on date with nobody assigned.
func NewTestEvent(id, date string, opts ...EventOption) domain.ScheduleEvent {
	e := domain.ScheduleEvent{
		ID:         id,
		Date:       date,
		Type:       domain.EventPerformance,
		Title:      "Show " + id,
		StartTime:  "20:00",
		EndTime:    "22:00",
		Location:   "Denver, CO",
		AssignedTo: []domain.EventAssignment{},
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// NewTestState assembles a state from its parts with the first person
// signed in and the first tour selected.
func NewTestState(people []domain.Person, tours []domain.Tour, schedule domain.Schedule) domain.State {
	if schedule == nil {
		schedule = domain.Schedule{}
	}
	st := domain.State{
		Tours:     tours,
		People:    people,
		Schedule:  schedule,
		Suppliers: []domain.Supplier{},
	}
	if len(people) > 0 {
		st.CurrentUserID = people[0].ID
	}
	if len(tours) > 0 {
		st.SelectedTourID = tours[0].ID
	}
	return st
}
