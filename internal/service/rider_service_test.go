package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/showrunner/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRiderParser struct {
	result domain.RiderParseResult
	err    error
	people []domain.Person
	calls  int
}

func (p *stubRiderParser) Parse(_ context.Context, _ string, people []domain.Person) (domain.RiderParseResult, error) {
	p.calls++
	p.people = people
	return p.result, p.err
}

func riderResult() domain.RiderParseResult {
	return domain.RiderParseResult{
		Tasks: []domain.RiderTask{
			{Text: "Provide 2x Shure SM58", AssignedTo: productionID},
			{Text: "Book hotel rooms", AssignedTo: managerID},
		},
		BudgetItems: []domain.RiderBudgetItem{{Category: "Hospitality", Amount: 300}},
	}
}

func TestRiderService_ProcessPassesPeople(t *testing.T) {
	h := newHarness(t, fixtureState())
	parser := &stubRiderParser{result: riderResult()}

	result, err := NewRiderService(h.ws, parser).Process(context.Background(), "rider text")
	require.NoError(t, err)
	assert.Len(t, result.Tasks, 2)
	assert.Len(t, parser.people, 4)
}

func TestRiderService_ProcessFailureNotifies(t *testing.T) {
	h := newHarness(t, fixtureState())
	parser := &stubRiderParser{err: errors.New("The model returned no usable data.")}

	result, err := NewRiderService(h.ws, parser).Process(context.Background(), "rider text")
	require.NoError(t, err)
	assert.True(t, result.Empty())
	assert.Equal(t, []string{"The model returned no usable data."}, h.notices)

	require.NotEmpty(t, h.events)
	last := h.events[len(h.events)-1]
	assert.Equal(t, "process-rider", last.Name)
	assert.False(t, last.Success)
}

func TestRiderService_ProcessGuards(t *testing.T) {
	h := newHarness(t, fixtureState())
	parser := &stubRiderParser{result: riderResult()}
	svc := NewRiderService(h.ws, parser)

	_, err := svc.Process(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrValidation)

	h.signIn(t, productionID)
	_, err = svc.Process(context.Background(), "rider text")
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Zero(t, parser.calls)
}

func TestRiderService_Apply(t *testing.T) {
	h := newHarness(t, fixtureState())
	svc := NewRiderService(h.ws, &stubRiderParser{})

	e, err := svc.Apply(context.Background(), tourID, riderResult())
	require.NoError(t, err)
	assert.Equal(t, domain.EventLoadIn, e.Type)
	assert.Equal(t, "2024-08-01", e.Date)
	assert.Equal(t, "Action Items from Rider Import", e.Title)
	assert.Len(t, e.Tasks, 2)
	assert.True(t, e.IsAssigned(managerID))

	persisted := h.persisted(t)
	_, ok := domain.FindEvent(persisted.Events(tourID), e.ID)
	assert.True(t, ok)
	tour, _ := persisted.FindTour(tourID)
	assert.Len(t, tour.Financials.Budget, 3)
}

func TestRiderService_ApplyRejectsBadInput(t *testing.T) {
	h := newHarness(t, fixtureState())
	svc := NewRiderService(h.ws, &stubRiderParser{})
	ctx := context.Background()

	_, err := svc.Apply(ctx, tourID, domain.RiderParseResult{})
	assert.ErrorIs(t, err, ErrValidation)

	bad := riderResult()
	bad.Tasks[0].AssignedTo = crewID
	_, err = svc.Apply(ctx, tourID, bad)
	require.ErrorIs(t, err, ErrValidation)

	assert.Len(t, h.ws.Snapshot().Events(tourID), 3)
	assert.Len(t, h.tour(t, tourID).Financials.Budget, 2, "nothing applied")
}
