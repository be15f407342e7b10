package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/showrunner/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTourService_SaveCreatesEmptyTour(t *testing.T) {
	h := newHarness(t, fixtureState())
	svc := NewTourService(h.ws)

	tour, err := svc.Save(context.Background(), TourInput{
		ArtistName: "Neon Tide", TourName: "Winter Run", StartDate: "2024-12-01", EndDate: "2024-12-20",
	})
	require.NoError(t, err)

	assert.Equal(t, "tour-t1", tour.ID)
	assert.Equal(t, domain.TourUpcoming, tour.Status)
	require.NotNil(t, tour.Financials)
	assert.Empty(t, tour.Financials.Budget)
	require.NotNil(t, tour.Registration)
	assert.Empty(t, tour.Registration.Forms)
	assert.False(t, tour.IsWebsiteDeployed)

	persisted := h.persisted(t)
	_, ok := persisted.FindTour(tour.ID)
	assert.True(t, ok)
}

func TestTourService_SaveEditKeepsNestedData(t *testing.T) {
	h := newHarness(t, fixtureState())
	svc := NewTourService(h.ws)

	saved, err := svc.Save(context.Background(), TourInput{
		ID: tourID, ArtistName: "Brightside", TourName: "Renamed", StartDate: "2024-08-01", EndDate: "2024-09-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", saved.TourName)

	tour := h.tour(t, tourID)
	assert.Equal(t, "2024-09-01", tour.EndDate)
	assert.Len(t, tour.Financials.Expenses, 2)
	assert.Len(t, tour.Website, 2)
}

func TestTourService_SaveValidation(t *testing.T) {
	tests := []struct {
		name string
		in   TourInput
		msg  string
	}{
		{"blank", TourInput{ArtistName: "A"}, "Please fill out all fields."},
		{"bad date", TourInput{ArtistName: "A", TourName: "B", StartDate: "08/01/2024", EndDate: "2024-08-02"}, "Start date must be YYYY-MM-DD."},
		{"reversed", TourInput{ArtistName: "A", TourName: "B", StartDate: "2024-08-10", EndDate: "2024-08-02"}, "End date must be after start date."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, fixtureState())
			_, err := NewTourService(h.ws).Save(context.Background(), tt.in)
			require.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, tt.msg, UserMessage(err))
		})
	}
}

func TestTourService_SaveRequiresManager(t *testing.T) {
	h := newHarness(t, fixtureState())
	h.signIn(t, crewID)

	_, err := NewTourService(h.ws).Save(context.Background(), TourInput{
		ArtistName: "A", TourName: "B", StartDate: "2024-08-01", EndDate: "2024-08-02",
	})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Len(t, h.ws.Snapshot().Tours, 2)
}

func TestTourService_DeleteCascades(t *testing.T) {
	h := newHarness(t, fixtureState())
	svc := NewTourService(h.ws)

	applied, err := svc.Delete(context.Background(), tourID)
	require.NoError(t, err)
	assert.True(t, applied)
	require.Len(t, h.prompts, 1)

	snap := h.ws.Snapshot()
	_, ok := snap.FindTour(tourID)
	assert.False(t, ok)
	assert.Empty(t, snap.Events(tourID))
	assert.Empty(t, snap.SelectedTourID)

	persisted := h.persisted(t)
	assert.Len(t, persisted.Tours, 1)
	assert.NotContains(t, persisted.Schedule, tourID)
	assert.Empty(t, persisted.SelectedTourID)
}

func TestTourService_DeleteDeclined(t *testing.T) {
	h := newHarness(t, fixtureState())
	h.answer = false

	applied, err := NewTourService(h.ws).Delete(context.Background(), tourID)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Len(t, h.ws.Snapshot().Tours, 2)
}

func TestTourService_DeleteUnknownSkipsPrompt(t *testing.T) {
	h := newHarness(t, fixtureState())

	_, err := NewTourService(h.ws).Delete(context.Background(), "tour-missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, h.prompts)
}

func TestTourService_SelectionLifecycle(t *testing.T) {
	h := newHarness(t, fixtureState())
	svc := NewTourService(h.ws)
	ctx := context.Background()

	selected, err := svc.Select(ctx, otherTourID)
	require.NoError(t, err)
	assert.Equal(t, otherTourID, selected.ID)
	assert.Equal(t, otherTourID, h.persisted(t).SelectedTourID)

	got, ok, err := svc.Selected(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, otherTourID, got.ID)

	current, err := svc.Get(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, otherTourID, current.ID)

	_, err = svc.Select(ctx, "tour-missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.ClearSelection(ctx))
	_, ok, err = svc.Selected(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.Get(ctx, "")
	assert.ErrorIs(t, err, ErrNoTourSelected)
}

func TestTourService_ListRequiresSession(t *testing.T) {
	st := fixtureState()
	st.CurrentUserID = ""
	h := newHarness(t, st)

	_, err := NewTourService(h.ws).List(context.Background())
	assert.ErrorIs(t, err, ErrNotSignedIn)
}
