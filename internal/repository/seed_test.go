package repository

import (
	"testing"

	"github.com/alexanderramin/showrunner/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDataset_Tour1Financials(t *testing.T) {
	st := DefaultDataset()
	tour, ok := st.FindTour("tour-01")
	require.True(t, ok)
	require.NotNil(t, tour.Financials)

	var budget, approved float64
	for _, b := range tour.Financials.Budget {
		budget += b.Amount
	}
	for _, e := range tour.Financials.Expenses {
		if e.Status == domain.ExpenseApproved {
			approved += e.Amount
		}
	}
	assert.Len(t, tour.Financials.Budget, 5)
	assert.InDelta(t, 75000, budget, 0.001)
	assert.InDelta(t, 26570.75, approved, 0.001)
}

func TestDefaultDataset_FreshCopies(t *testing.T) {
	a := DefaultDataset()
	b := DefaultDataset()
	a.Tours[0].TourName = "changed"
	a.Schedule["tour-01"][0].Title = "changed"
	assert.Equal(t, "Brightside World Tour", b.Tours[0].TourName)
	assert.Equal(t, "Fly to Denver", b.Schedule["tour-01"][0].Title)
}

func TestDefaultDataset_SeedAccountsLogIn(t *testing.T) {
	st := DefaultDataset()
	alex, ok := domain.FindPerson(st.People, "person-1")
	require.True(t, ok)
	assert.True(t, alex.IsManager())
	assert.True(t, alex.CheckPassword(SeedPassword))
}
