package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/showrunner/internal/domain"
	"github.com/alexanderramin/showrunner/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventIDs(events []domain.ScheduleEvent) []string {
	ids := make([]string, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}
	return ids
}

func TestScheduleService_EventsVisibility(t *testing.T) {
	tests := []struct {
		name   string
		userID string
		want   []string
	}{
		{"manager sees everything", managerID, []string{"ev-1", "ev-2", "ev-3"}},
		{"crew sees assigned events", crewID, []string{"ev-1", "ev-2"}},
		{"artist sees assigned events", artistID, []string{"ev-3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, fixtureState())
			h.signIn(t, tt.userID)

			events, err := NewScheduleService(h.ws).Events(context.Background(), "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, eventIDs(events))
		})
	}
}

func TestScheduleService_EventHiddenFromUnassigned(t *testing.T) {
	h := newHarness(t, fixtureState())
	h.signIn(t, crewID)
	svc := NewScheduleService(h.ws)

	_, err := svc.Event(context.Background(), tourID, "ev-3")
	assert.ErrorIs(t, err, ErrNotFound)

	e, err := svc.Event(context.Background(), tourID, "ev-2")
	require.NoError(t, err)
	assert.Equal(t, "Chicago, IL", e.Location)
}

func TestScheduleService_SaveEventAdds(t *testing.T) {
	h := newHarness(t, fixtureState())
	svc := NewScheduleService(h.ws)

	e, err := svc.SaveEvent(context.Background(), tourID, EventInput{
		Date: "2024-08-19", Type: domain.EventTravel, Title: "Bus to Austin", StartTime: "09:00", Location: "Nashville, TN",
		AssignedTo: []domain.EventAssignment{{PersonID: crewID, Permission: domain.PermissionRead}},
	})
	require.NoError(t, err)
	assert.Equal(t, "event-t1", e.ID)
	assert.NotNil(t, e.Tasks)
	assert.NotNil(t, e.Comments)

	persisted := h.persisted(t)
	_, ok := domain.FindEvent(persisted.Events(tourID), e.ID)
	assert.True(t, ok)
}

func TestScheduleService_SaveEventEditKeepsTasks(t *testing.T) {
	h := newHarness(t, fixtureState())
	svc := NewScheduleService(h.ws)

	_, err := svc.SaveEvent(context.Background(), tourID, EventInput{
		ID: "ev-1", Date: "2024-08-16", Type: domain.EventPerformance, Title: "Red Rocks", StartTime: "19:00", Location: "Morrison, CO",
		AssignedTo: []domain.EventAssignment{{PersonID: managerID, Permission: domain.PermissionWrite}},
	})
	require.NoError(t, err)

	e := h.event(t, tourID, "ev-1")
	assert.Equal(t, "Red Rocks", e.Title)
	assert.Len(t, e.Tasks, 2)
	assert.False(t, e.IsAssigned(crewID))
}

func TestScheduleService_SaveEventValidation(t *testing.T) {
	valid := EventInput{Date: "2024-08-19", Type: domain.EventTravel, Title: "Bus", StartTime: "09:00", Location: "Austin, TX"}

	tests := []struct {
		name   string
		mutate func(*EventInput)
		is     error
	}{
		{"missing title", func(in *EventInput) { in.Title = " " }, ErrValidation},
		{"unknown type", func(in *EventInput) { in.Type = "Party" }, ErrValidation},
		{"unknown person", func(in *EventInput) {
			in.AssignedTo = []domain.EventAssignment{{PersonID: "person-x", Permission: domain.PermissionRead}}
		}, ErrNotFound},
		{"bad permission", func(in *EventInput) {
			in.AssignedTo = []domain.EventAssignment{{PersonID: crewID, Permission: "admin"}}
		}, ErrValidation},
		{"duplicate assignment", func(in *EventInput) {
			in.AssignedTo = []domain.EventAssignment{
				{PersonID: crewID, Permission: domain.PermissionRead},
				{PersonID: crewID, Permission: domain.PermissionWrite},
			}
		}, ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, fixtureState())
			in := valid
			tt.mutate(&in)

			_, err := NewScheduleService(h.ws).SaveEvent(context.Background(), tourID, in)
			assert.ErrorIs(t, err, tt.is)
			assert.Len(t, h.ws.Snapshot().Events(tourID), 3)
		})
	}
}

func TestScheduleService_SaveEventRequiresManager(t *testing.T) {
	h := newHarness(t, fixtureState())
	h.signIn(t, productionID)

	_, err := NewScheduleService(h.ws).SaveEvent(context.Background(), tourID, EventInput{
		Date: "2024-08-19", Type: domain.EventTravel, Title: "Bus", StartTime: "09:00", Location: "Austin, TX",
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestScheduleService_DeleteEvent(t *testing.T) {
	h := newHarness(t, fixtureState())
	svc := NewScheduleService(h.ws)

	applied, err := svc.DeleteEvent(context.Background(), tourID, "ev-2")
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, []string{"ev-1", "ev-3"}, eventIDs(h.persisted(t).Events(tourID)))

	_, err = svc.DeleteEvent(context.Background(), tourID, "ev-2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestScheduleService_AddCommentNeedsWritePermission(t *testing.T) {
	h := newHarness(t, fixtureState())
	h.signIn(t, crewID)
	svc := NewScheduleService(h.ws)
	ctx := context.Background()

	_, err := svc.AddComment(ctx, tourID, "ev-1", "Running late")
	assert.ErrorIs(t, err, ErrForbidden)

	c, err := svc.AddComment(ctx, tourID, "ev-2", "  Merch table is set  ")
	require.NoError(t, err)
	assert.Equal(t, crewID, c.AuthorID)
	assert.Equal(t, "Merch table is set", c.Text)
	assert.Equal(t, testutil.FixedNow, c.Timestamp)

	e := h.event(t, tourID, "ev-2")
	require.Len(t, e.Comments, 1)
	assert.Equal(t, c.ID, e.Comments[0].ID)

	_, err = svc.AddComment(ctx, tourID, "ev-2", "   ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestScheduleService_AddCommentManagerRoleIsNotEnough(t *testing.T) {
	h := newHarness(t, fixtureState())

	_, err := NewScheduleService(h.ws).AddComment(context.Background(), tourID, "ev-3", "hello")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestScheduleService_DaySheet(t *testing.T) {
	h := newHarness(t, fixtureState())
	svc := NewScheduleService(h.ws)
	ctx := context.Background()

	sheet, err := svc.DaySheet(ctx, tourID, crewID, "2024-08-17")
	require.NoError(t, err)
	assert.Equal(t, []string{"ev-2"}, eventIDs(sheet))

	h.signIn(t, crewID)
	sheet, err = svc.DaySheet(ctx, tourID, "", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"ev-1"}, eventIDs(sheet), "defaults to today")

	_, err = svc.DaySheet(ctx, tourID, managerID, "2024-08-16")
	assert.ErrorIs(t, err, ErrForbidden)

	sheet, err = svc.DaySheet(ctx, tourID, "", "2024-08-18")
	require.NoError(t, err)
	assert.Empty(t, sheet)
}
