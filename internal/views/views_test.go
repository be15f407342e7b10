package views

import (
	"bytes"
	"testing"
	"time"

	"github.com/alexanderramin/showrunner/internal/domain"
	"github.com/alexanderramin/showrunner/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedTour(t *testing.T) (domain.State, domain.Tour) {
	t.Helper()
	st := repository.DefaultDataset()
	tour, ok := st.FindTour("tour-01")
	require.True(t, ok)
	return st, tour
}

func person(t *testing.T, st domain.State, id string) domain.Person {
	t.Helper()
	p, ok := domain.FindPerson(st.People, id)
	require.True(t, ok)
	return p
}

func TestSummarizeBudget_Tour1(t *testing.T) {
	_, tour := seedTour(t)
	s := SummarizeBudget(tour.FinancialsOrEmpty(), ExpenseFilter{})

	assert.InDelta(t, 75000, s.TotalBudget, 0.001)
	assert.InDelta(t, 26570.75, s.TotalApprovedSpend, 0.001)
	assert.InDelta(t, 48429.25, s.Remaining, 0.001)
	assert.InDelta(t, 2150, s.PendingTotal, 0.001)
	assert.Equal(t, 2, s.PendingCount)
	assert.Len(t, s.Expenses, 7)

	require.Len(t, s.ByCategory, 5)
	assert.Equal(t, "Venue", s.ByCategory[0].Category)
	assert.InDelta(t, 7000, s.ByCategory[0].Spent, 0.001)
	assert.InDelta(t, 10450.25, s.ByCategory[1].Spent, 0.001)
	assert.InDelta(t, 0, s.ByCategory[4].Spent, 0.001)
	assert.InDelta(t, 10000, s.ByCategory[4].Remaining(), 0.001)
}

func TestSummarizeBudget_RemainingIgnoresPending(t *testing.T) {
	f := domain.Financials{
		Budget: []domain.BudgetItem{{ID: "b", Category: "Venue", Amount: 1000}},
		Expenses: []domain.Expense{
			{ID: "a", Category: "Venue", Amount: 300, Status: domain.ExpenseApproved},
			{ID: "p1", Category: "Venue", Amount: 500, Status: domain.ExpensePending},
			{ID: "p2", Category: "Venue", Amount: 900, Status: domain.ExpensePending},
			{ID: "r", Category: "Venue", Amount: 50, Status: domain.ExpenseRejected},
		},
	}
	s := SummarizeBudget(f, ExpenseFilter{})
	assert.InDelta(t, 700, s.Remaining, 0.001)
	assert.InDelta(t, 1400, s.PendingTotal, 0.001)
}

func TestSummarizeBudget_Filters(t *testing.T) {
	_, tour := seedTour(t)

	catering := SummarizeBudget(tour.FinancialsOrEmpty(), ExpenseFilter{Category: "Catering"})
	assert.InDelta(t, 75000, catering.TotalBudget, 0.001)
	assert.InDelta(t, 620.50, catering.TotalApprovedSpend, 0.001)
	assert.Len(t, catering.Expenses, 3)

	window := SummarizeBudget(tour.FinancialsOrEmpty(), ExpenseFilter{From: "2024-08-16", To: "2024-08-18"})
	assert.InDelta(t, 850.25, window.TotalApprovedSpend, 0.001)
	assert.Zero(t, window.PendingCount)

	all := SummarizeBudget(tour.FinancialsOrEmpty(), ExpenseFilter{Category: "all"})
	assert.Len(t, all.Expenses, 7)
}

func TestSummarizeBudget_UnbudgetedCategory(t *testing.T) {
	f := domain.Financials{Expenses: []domain.Expense{
		{ID: "a", Category: "Merch", Amount: 40, Status: domain.ExpenseApproved},
	}}
	s := SummarizeBudget(f, ExpenseFilter{})
	require.Len(t, s.ByCategory, 1)
	assert.Equal(t, "Merch", s.ByCategory[0].Category)
	assert.Zero(t, s.ByCategory[0].Remaining())
	assert.InDelta(t, -40, s.Remaining, 0.001)
}

func TestGroupByDate(t *testing.T) {
	events := []domain.ScheduleEvent{
		{ID: "c", Date: "2024-08-16"},
		{ID: "x", Date: "someday"},
		{ID: "a", Date: "2024-08-15"},
		{ID: "d", Date: "2024-08-16"},
		{ID: "b", Date: "2024-08-15"},
	}
	groups := GroupByDate(events)
	require.Len(t, groups, 3)
	assert.Equal(t, "2024-08-15", groups[0].Date)
	assert.Equal(t, "a", groups[0].Events[0].ID)
	assert.Equal(t, "b", groups[0].Events[1].ID)
	assert.Equal(t, "2024-08-16", groups[1].Date)
	assert.Equal(t, "someday", groups[2].Date)
}

func TestVisibleEvents(t *testing.T) {
	st, _ := seedTour(t)
	events := st.Events("tour-01")

	assert.Len(t, VisibleEvents(person(t, st, "person-1"), events), 6)

	casey := VisibleEvents(person(t, st, "person-5"), events)
	var ids []string
	for _, e := range casey {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"event-2", "event-3", "event-4"}, ids)

	sheet := DaySheet(person(t, st, "person-6"), events, "2024-08-15")
	require.Len(t, sheet, 1)
	assert.Equal(t, "event-1", sheet[0].ID)
}

func TestTourCrewAndSort(t *testing.T) {
	st, _ := seedTour(t)
	events := st.Events("tour-01")

	assert.Len(t, TourCrew(st.People, events), 6)
	crew := TourCrew(st.People, events[5:])
	require.Len(t, crew, 2)
	assert.Equal(t, "person-1", crew[0].ID)
	assert.Equal(t, "person-6", crew[1].ID)

	byName := SortCrew(st.People, SortByName)
	assert.Equal(t, "Alex Johnson", byName[0].Name)
	byRole := SortCrew(st.People, SortByRole)
	assert.Equal(t, domain.RoleArtist, byRole[0].Role)
	assert.Equal(t, "Maria Garcia", byRole[0].Name)
	assert.Equal(t, "Sam Chen", byRole[1].Name)

	assert.Equal(t, "Unknown", AssigneeName(st.People, "person-404"))
	assert.Len(t, TravelEvents(events), 2)
}

func TestSegmentAudience(t *testing.T) {
	st, tour := seedTour(t)
	events := st.Events("tour-01")

	everyone := SegmentAudience(tour.Campaigns[0], events, st.People)
	assert.Len(t, everyone, 6)

	denver := SegmentAudience(tour.Campaigns[2], events, st.People)
	var ids []string
	for _, p := range denver {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"person-1", "person-2", "person-3", "person-4", "person-5"}, ids)

	nowhere := domain.EmailCampaign{Segmentation: &domain.Segmentation{LocationIDs: []string{"red rocks amphitheatre"}}}
	assert.Empty(t, SegmentAudience(nowhere, events, st.People))

	assert.Equal(t, []string{"DEN Airport", "Red Rocks Amphitheatre", "Denver, CO", "On the road"}, CampaignLocations(events))
}

func TestRenderCampaign(t *testing.T) {
	st, tour := seedTour(t)
	camp := tour.Campaigns[2]

	preview := RenderCampaign(camp, st.Events("tour-01"), st.People)
	assert.Equal(t, "See you in Denver, Alex Johnson!", preview.Subject)
	assert.Contains(t, preview.Body, "show in DEN Airport.")
	assert.Equal(t, "alex@showrunner.app", preview.To)
	assert.Equal(t, 5, preview.AudienceSize)

	// stored campaign keeps its tokens
	assert.Contains(t, camp.Subject, TokenUserName)

	empty := RenderCampaign(camp, nil, nil)
	assert.Equal(t, camp.Subject, empty.Subject)
	assert.Equal(t, "sample@email.com", empty.To)
}

func TestFilterAttendees(t *testing.T) {
	_, tour := seedTour(t)
	reg := tour.RegistrationOrEmpty()
	form, ok := reg.FindForm("form-1")
	require.True(t, ok)

	ids := func(as []domain.Attendee) []string {
		var out []string
		for _, a := range as {
			out = append(out, a.ID)
		}
		return out
	}

	assert.Equal(t, []string{"att-1", "att-2"}, ids(FilterAttendees(form, reg.Attendees, nil)))
	assert.Equal(t, []string{"att-1", "att-2"}, ids(FilterAttendees(form, reg.Attendees, map[string]string{"field-3": "all"})))
	assert.Equal(t, []string{"att-2"}, ids(FilterAttendees(form, reg.Attendees, map[string]string{"field-1": "BOB"})))
	assert.Equal(t, []string{"att-1"}, ids(FilterAttendees(form, reg.Attendees, map[string]string{"field-3": "Medium"})))
	assert.Empty(t, FilterAttendees(form, reg.Attendees, map[string]string{"field-3": "Med"}))
	assert.Empty(t, FilterAttendees(form, reg.Attendees, map[string]string{"field-1": "alice", "field-2": "bob"}))
}

func TestFilterAttendees_Checkbox(t *testing.T) {
	form := domain.RegistrationForm{ID: "f", Fields: []domain.FormField{{ID: "diet", Type: domain.FieldCheckbox}}}
	attendees := []domain.Attendee{
		{ID: "a", FormID: "f", Responses: []domain.RegistrationResponse{{FieldID: "diet", Value: domain.ListValue("Vegan", "Gluten-free")}}},
		{ID: "b", FormID: "f", Responses: []domain.RegistrationResponse{{FieldID: "diet", Value: domain.ListValue("Vegetarian")}}},
		{ID: "c", FormID: "other", Responses: []domain.RegistrationResponse{{FieldID: "diet", Value: domain.ListValue("Vegan")}}},
	}
	got := FilterAttendees(form, attendees, map[string]string{"diet": "Vegan"})
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
	assert.Empty(t, FilterAttendees(form, attendees, map[string]string{"diet": "Veg"}))
}

func TestMissingRequired(t *testing.T) {
	_, tour := seedTour(t)
	form, _ := tour.RegistrationOrEmpty().FindForm("form-1")
	missing := MissingRequired(form, []domain.RegistrationResponse{
		{FieldID: "field-1", Value: domain.StringValue("  ")},
		{FieldID: "field-3", Value: domain.StringValue("Large")},
	})
	assert.Equal(t, []string{"Full Name", "Email Address"}, missing)
}

func TestWriteAttendeeCSV(t *testing.T) {
	form := domain.RegistrationForm{ID: "f", Fields: []domain.FormField{
		{ID: "name", Label: "Full Name"},
		{ID: "diet", Label: "Diet"},
		{ID: "size", Label: "Size"},
	}}
	attendees := []domain.Attendee{{
		ID: "a", FormID: "f",
		RegistrationDate: time.Date(2024, 7, 20, 10, 0, 0, 0, time.UTC),
		Responses: []domain.RegistrationResponse{
			{FieldID: "name", Value: domain.StringValue(`Ann "The Fan" Lee`)},
			{FieldID: "diet", Value: domain.ListValue("Vegan", "Nuts, none")},
		},
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteAttendeeCSV(&buf, form, attendees))
	want := "Registration Date,Full Name,Diet,Size\n" +
		`2024-07-20T10:00:00.000Z,"Ann ""The Fan"" Lee","Vegan; Nuts, none",""`
	assert.Equal(t, want, buf.String())

	assert.ErrorIs(t, WriteAttendeeCSV(&buf, form, nil), ErrNoAttendees)
}

func TestWriteAttendeeCSV_KeepsMilliseconds(t *testing.T) {
	form := domain.RegistrationForm{ID: "f", Fields: []domain.FormField{{ID: "name", Label: "Name"}}}
	denver := time.FixedZone("MDT", -6*60*60)
	attendees := []domain.Attendee{{
		ID: "a", FormID: "f",
		RegistrationDate: time.Date(2024, 7, 20, 4, 0, 5, 123_456_789, denver),
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteAttendeeCSV(&buf, form, attendees))
	assert.Equal(t, "Registration Date,Name\n2024-07-20T10:00:05.123Z,\"\"", buf.String())
}

func TestCSVFileName(t *testing.T) {
	assert.Equal(t, "Brightside_World_Tour_General_Admission_Sign-up_attendees.csv",
		CSVFileName("Brightside World Tour", "General Admission Sign-up"))
	assert.Equal(t, "A__B_C_attendees.csv", CSVFileName("A \tB", "C"))
}

func TestTourTasks(t *testing.T) {
	events := []domain.ScheduleEvent{
		{ID: "e2", Date: "2024-08-16", Title: "Show", Tasks: []domain.Task{{ID: "t3", AssignedTo: "p1"}}},
		{ID: "e1", Date: "2024-08-15", Title: "Load-in", Tasks: []domain.Task{
			{ID: "t1", AssignedTo: "p1", Completed: true},
			{ID: "t2", AssignedTo: "p2"},
		}},
	}
	all := TourTasks(events, TaskFilter{})
	require.Len(t, all, 3)
	assert.Equal(t, "t1", all[0].ID)
	assert.Equal(t, "Load-in", all[0].EventTitle)
	assert.Equal(t, "t3", all[2].ID)

	pendingP1 := TourTasks(events, TaskFilter{AssigneeID: "p1", Status: TaskStatusPending})
	require.Len(t, pendingP1, 1)
	assert.Equal(t, domain.TaskRef{EventID: "e2", TaskID: "t3"}, pendingP1[0].Ref())

	done := TourTasks(events, TaskFilter{AssigneeID: FilterAll, Status: TaskStatusCompleted})
	assert.Equal(t, []domain.TaskRef{{EventID: "e1", TaskID: "t1"}}, TaskRefs(done))
}

func TestVisibleEventTasks(t *testing.T) {
	st, _ := seedTour(t)
	loadIn := st.Events("tour-01")[1]

	assert.Len(t, VisibleEventTasks(person(t, st, "person-4"), loadIn), 3)
	casey := VisibleEventTasks(person(t, st, "person-5"), loadIn)
	require.Len(t, casey, 2)
	assert.Equal(t, "t-1", casey[0].ID)
	assert.Empty(t, VisibleEventTasks(person(t, st, "person-2"), loadIn))
}

func TestCompareProposals(t *testing.T) {
	st, tour := seedTour(t)
	rows := CompareProposals(tour, st.Suppliers, "rfp-4")
	require.Len(t, rows, 2)
	assert.Equal(t, "Bright Lights Inc.", rows[0].SupplierName)
	assert.Equal(t, "StageGlow Productions", rows[1].SupplierName)

	orphan := domain.Tour{Proposals: []domain.Proposal{{ID: "x", RFPID: "r", SupplierID: "sup-404"}}}
	assert.Equal(t, "Unknown", CompareProposals(orphan, st.Suppliers, "r")[0].SupplierName)

	counts := ProposalCount(tour)
	assert.Equal(t, 2, counts["rfp-4"])
	assert.Zero(t, counts["rfp-3"])
}

func TestPendingApprovals(t *testing.T) {
	st, _ := seedTour(t)
	pending := PendingApprovals(st.Tours)
	require.Len(t, pending, 2)
	assert.Equal(t, "tour-01", pending[0].TourID)
	assert.Equal(t, "exp-6", pending[0].Expense.ID)
}
