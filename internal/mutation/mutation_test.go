package mutation

import (
	"errors"
	"testing"

	"github.com/alexanderramin/showrunner/internal/domain"
	"github.com/alexanderramin/showrunner/internal/repository"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tour1(t *testing.T, st domain.State) domain.Tour {
	t.Helper()
	tour, ok := st.FindTour("tour-01")
	require.True(t, ok)
	return tour
}

func TestUpdateTask_KeepsIDAndSiblings(t *testing.T) {
	st := repository.DefaultDataset()
	before := st.Schedule["tour-01"][1].Tasks

	next, err := UpdateTask(st, "tour-01", domain.TaskRef{EventID: "event-2", TaskID: "t-2"}, func(task domain.Task) (domain.Task, error) {
		task.ID = "something-else"
		task.Text = "Set up drum mics and overheads"
		task.Completed = true
		return task, nil
	})
	require.NoError(t, err)

	tasks := next.Schedule["tour-01"][1].Tasks
	require.Len(t, tasks, 3)
	assert.Equal(t, "t-2", tasks[1].ID)
	assert.Equal(t, "Set up drum mics and overheads", tasks[1].Text)
	assert.True(t, tasks[1].Completed)
	assert.Equal(t, before[0], tasks[0])
	assert.Equal(t, before[2], tasks[2])

	// the input snapshot is untouched
	assert.False(t, st.Schedule["tour-01"][1].Tasks[1].Completed)
}

func TestUpdateTask_Unknown(t *testing.T) {
	st := repository.DefaultDataset()
	_, err := UpdateTask(st, "tour-01", domain.TaskRef{EventID: "event-2", TaskID: "nope"}, func(task domain.Task) (domain.Task, error) {
		return task, nil
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = UpdateTask(st, "tour-01", domain.TaskRef{EventID: "event-99", TaskID: "t-1"}, func(task domain.Task) (domain.Task, error) {
		return task, nil
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBulkToggleTarget(t *testing.T) {
	mixed := []domain.Task{{ID: "a", Completed: true}, {ID: "b"}}
	allDone := []domain.Task{{ID: "a", Completed: true}, {ID: "b", Completed: true}}
	noneDone := []domain.Task{{ID: "a"}, {ID: "b"}}

	assert.True(t, BulkToggleTarget(mixed))
	assert.False(t, BulkToggleTarget(allDone))
	assert.True(t, BulkToggleTarget(noneDone))
	assert.True(t, BulkToggleTarget(nil))
}

func TestSetTasksCompleted(t *testing.T) {
	st := repository.DefaultDataset()
	refs := []domain.TaskRef{
		{EventID: "event-2", TaskID: "t-1"},
		{EventID: "event-2", TaskID: "t-2"},
		{EventID: "event-9", TaskID: "t-x"},
	}
	target := BulkToggleTarget(SelectTasks(st, "tour-01", refs))
	require.True(t, target)

	next := SetTasksCompleted(st, "tour-01", refs, target)
	tasks := next.Schedule["tour-01"][1].Tasks
	assert.True(t, tasks[0].Completed)
	assert.True(t, tasks[1].Completed)
	assert.False(t, tasks[2].Completed)

	untouched := SetTasksCompleted(st, "tour-02", refs, true)
	_, exists := untouched.Schedule["tour-02"]
	assert.False(t, exists)
}

func TestDeleteTasks(t *testing.T) {
	st := repository.DefaultDataset()
	next, n := DeleteTasks(st, "tour-01", []domain.TaskRef{
		{EventID: "event-2", TaskID: "t-1"},
		{EventID: "event-2", TaskID: "t-3"},
		{EventID: "event-2", TaskID: "gone"},
	})
	assert.Equal(t, 2, n)
	tasks := next.Schedule["tour-01"][1].Tasks
	require.Len(t, tasks, 1)
	assert.Equal(t, "t-2", tasks[0].ID)
	assert.Len(t, st.Schedule["tour-01"][1].Tasks, 3)
}

func TestStripAssignments_OnlyThatTour(t *testing.T) {
	st := repository.DefaultDataset()
	st = AddEvent(st, "tour-02", domain.ScheduleEvent{
		ID:         "event-x",
		AssignedTo: []domain.EventAssignment{{PersonID: "person-5", Permission: domain.PermissionRead}},
	})

	next := StripAssignments(st, "tour-01", "person-5")

	for _, e := range next.Schedule["tour-01"] {
		assert.False(t, e.IsAssigned("person-5"), e.ID)
	}
	assert.True(t, next.Schedule["tour-02"][0].IsAssigned("person-5"))
	_, ok := domain.FindPerson(next.People, "person-5")
	assert.True(t, ok)
	// task assignment to the removed person is left as is
	assert.Equal(t, "person-5", next.Schedule["tour-01"][1].Tasks[1].AssignedTo)
}

func TestDelete_TourCascades(t *testing.T) {
	st := repository.DefaultDataset()
	st = SelectTour(st, "tour-01")

	next, keys, err := Delete(st, Target{Kind: KindTour, ID: "tour-01"})
	require.NoError(t, err)

	_, ok := next.FindTour("tour-01")
	assert.False(t, ok)
	_, ok = next.Schedule["tour-01"]
	assert.False(t, ok)
	assert.Empty(t, next.SelectedTourID)
	assert.ElementsMatch(t, []domain.StateKey{domain.KeyTours, domain.KeySchedule, domain.KeySelectedTour}, keys)
	assert.Equal(t, []string{"schedule", "selection"}, Cascades(KindTour))

	// original snapshot keeps its schedule
	_, ok = st.Schedule["tour-01"]
	assert.True(t, ok)
}

func TestDelete_TourKeepsOtherSelection(t *testing.T) {
	st := SelectTour(repository.DefaultDataset(), "tour-02")
	next, _, err := Delete(st, Target{Kind: KindTour, ID: "tour-01"})
	require.NoError(t, err)
	assert.Equal(t, "tour-02", next.SelectedTourID)
}

func TestDelete_FormCascadesAttendees(t *testing.T) {
	st := repository.DefaultDataset()
	next, keys, err := Delete(st, Target{Kind: KindForm, TourID: "tour-01", ID: "form-1"})
	require.NoError(t, err)
	assert.Equal(t, []domain.StateKey{domain.KeyTours}, keys)

	reg := tour1(t, next).RegistrationOrEmpty()
	_, ok := reg.FindForm("form-1")
	assert.False(t, ok)
	for _, a := range reg.Attendees {
		assert.NotEqual(t, "form-1", a.FormID)
	}
	assert.Len(t, tour1(t, st).Registration.Attendees, 2)
}

func TestDelete_LeafKinds(t *testing.T) {
	cases := []struct {
		name   string
		target Target
		check  func(t *testing.T, tour domain.Tour, st domain.State)
	}{
		{
			name:   "expense",
			target: Target{Kind: KindExpense, TourID: "tour-01", ID: "exp-7"},
			check: func(t *testing.T, tour domain.Tour, _ domain.State) {
				assert.Len(t, tour.Financials.Expenses, 6)
			},
		},
		{
			name:   "budget",
			target: Target{Kind: KindBudget, TourID: "tour-01", ID: "bud-5"},
			check: func(t *testing.T, tour domain.Tour, _ domain.State) {
				assert.Len(t, tour.Financials.Budget, 4)
			},
		},
		{
			name:   "section",
			target: Target{Kind: KindSection, TourID: "tour-01", ID: "ws-3"},
			check: func(t *testing.T, tour domain.Tour, _ domain.State) {
				assert.Len(t, tour.Website, 4)
			},
		},
		{
			name:   "campaign",
			target: Target{Kind: KindCampaign, TourID: "tour-01", ID: "camp-4"},
			check: func(t *testing.T, tour domain.Tour, _ domain.State) {
				assert.Len(t, tour.Campaigns, 3)
			},
		},
		{
			name:   "field",
			target: Target{Kind: KindField, TourID: "tour-01", ParentID: "form-1", ID: "field-3"},
			check: func(t *testing.T, tour domain.Tour, _ domain.State) {
				form, _ := tour.Registration.FindForm("form-1")
				assert.Len(t, form.Fields, 2)
			},
		},
		{
			name:   "attendee",
			target: Target{Kind: KindAttendee, TourID: "tour-01", ID: "att-2"},
			check: func(t *testing.T, tour domain.Tour, _ domain.State) {
				assert.Len(t, tour.Registration.Attendees, 1)
			},
		},
		{
			name:   "event",
			target: Target{Kind: KindEvent, TourID: "tour-01", ID: "event-6"},
			check: func(t *testing.T, _ domain.Tour, st domain.State) {
				assert.Len(t, st.Schedule["tour-01"], 5)
			},
		},
		{
			name:   "task",
			target: Target{Kind: KindTask, TourID: "tour-01", ParentID: "event-2", ID: "t-1"},
			check: func(t *testing.T, _ domain.Tour, st domain.State) {
				assert.Len(t, st.Schedule["tour-01"][1].Tasks, 2)
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := repository.DefaultDataset()
			next, _, err := Delete(st, tc.target)
			require.NoError(t, err)
			tc.check(t, tour1(t, next), next)
		})
	}
}

func TestDelete_Missing(t *testing.T) {
	st := repository.DefaultDataset()
	for _, target := range []Target{
		{Kind: KindTour, ID: "tour-99"},
		{Kind: KindExpense, TourID: "tour-01", ID: "exp-99"},
		{Kind: KindField, TourID: "tour-01", ParentID: "form-2", ID: "field-1"},
		{Kind: KindTask, TourID: "tour-01", ParentID: "event-1", ID: "t-1"},
		{Kind: KindEvent, TourID: "tour-02", ID: "event-1"},
	} {
		_, _, err := Delete(st, target)
		assert.ErrorIs(t, err, domain.ErrNotFound, "%+v", target)
	}

	_, _, err := Delete(st, Target{Kind: "venue", ID: "venue-1"})
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrNotFound))
}

func TestAwardRFP_OnlyTouchesTarget(t *testing.T) {
	st := repository.DefaultDataset()
	before := tour1(t, st)

	next, err := UpdateTour(st, "tour-01", func(tour domain.Tour) (domain.Tour, error) {
		return AwardRFP(tour, "rfp-1")
	})
	require.NoError(t, err)
	after := tour1(t, next)

	assert.Equal(t, domain.RFPAwarded, after.RFPs[0].Status)
	assert.Empty(t, cmp.Diff(before.RFPs[1:], after.RFPs[1:]))
	assert.Empty(t, cmp.Diff(before.Proposals, after.Proposals))

	again, err := AwardRFP(after, "rfp-1")
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(after, again, cmpopts.EquateEmpty(), cmp.AllowUnexported(domain.ResponseValue{})))
}

func TestProposalRFP(t *testing.T) {
	tour := tour1(t, repository.DefaultDataset())
	require.NotEmpty(t, tour.Proposals)
	p := tour.Proposals[0]

	rfpID, err := ProposalRFP(tour, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.RFPID, rfpID)

	_, err = ProposalRFP(tour, "prop-missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMoveSection(t *testing.T) {
	tour := tour1(t, repository.DefaultDataset())
	ids := func(tr domain.Tour) []string {
		var out []string
		for _, s := range tr.Website {
			out = append(out, s.ID)
		}
		return out
	}

	up, err := MoveSection(tour, "ws-2", -1)
	require.NoError(t, err)
	assert.Equal(t, []string{"ws-h", "ws-2", "ws-1", "ws-3", "ws-f"}, ids(up))

	top, err := MoveSection(tour, "ws-h", -1)
	require.NoError(t, err)
	assert.Equal(t, ids(tour), ids(top))

	bottom, err := MoveSection(tour, "ws-f", 1)
	require.NoError(t, err)
	assert.Equal(t, ids(tour), ids(bottom))

	_, err = MoveSection(tour, "ws-99", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSetExpenseStatus(t *testing.T) {
	tour := tour1(t, repository.DefaultDataset())

	rejected, err := SetExpenseStatus(tour, "exp-6", domain.ExpenseRejected, "missing receipt")
	require.NoError(t, err)
	assert.Equal(t, domain.ExpenseRejected, rejected.Financials.Expenses[5].Status)
	assert.Equal(t, "missing receipt", rejected.Financials.Expenses[5].RejectionReason)

	approved, err := SetExpenseStatus(rejected, "exp-6", domain.ExpenseApproved, "ignored")
	require.NoError(t, err)
	assert.Empty(t, approved.Financials.Expenses[5].RejectionReason)

	// the source tour still sees the pending expense
	assert.Equal(t, domain.ExpensePending, tour.Financials.Expenses[5].Status)
}

func TestRegistrationReducers(t *testing.T) {
	var tour domain.Tour
	tour = AddForm(tour, domain.RegistrationForm{ID: "form-a", Name: "Crew", Status: domain.FormOpen})
	require.NotNil(t, tour.Registration)

	tour, err := AddField(tour, "form-a", domain.FormField{ID: "f-1", Type: domain.FieldText, Label: "Name"})
	require.NoError(t, err)
	tour, err = UpdateField(tour, "form-a", domain.FormField{ID: "f-1", Type: domain.FieldText, Label: "Full name", Required: true})
	require.NoError(t, err)

	form, ok := tour.Registration.FindForm("form-a")
	require.True(t, ok)
	require.Len(t, form.Fields, 1)
	assert.Equal(t, "Full name", form.Fields[0].Label)
	assert.True(t, form.Fields[0].Required)

	_, err = UpdateField(tour, "form-a", domain.FormField{ID: "f-9"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	tour = AddAttendee(tour, domain.Attendee{ID: "att-a", FormID: "form-a"})
	assert.Len(t, tour.Registration.AttendeesFor("form-a"), 1)
}

func TestUpdatePerson_Missing(t *testing.T) {
	st := repository.DefaultDataset()
	_, err := UpdatePerson(st, "person-99", func(p domain.Person) (domain.Person, error) { return p, nil })
	assert.ErrorIs(t, err, domain.ErrNotFound)

	p, ok := FindPersonByEmail(st.People, "  CASEY@showrunner.app ")
	require.True(t, ok)
	assert.Equal(t, "person-5", p.ID)
}
