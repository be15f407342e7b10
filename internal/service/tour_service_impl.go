package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/showrunner/internal/domain"
	"github.com/alexanderramin/showrunner/internal/mutation"
)

const defaultTourImage = "https://images.unsplash.com/photo-1516450360452-9312f5e86fc7?w=600"

type tourService struct {
	ws *Workspace
}

func NewTourService(ws *Workspace) TourService {
	return &tourService{ws: ws}
}

func (s *tourService) List(_ context.Context) ([]domain.Tour, error) {
	st := s.ws.Snapshot()
	if _, err := currentUser(st); err != nil {
		return nil, err
	}
	return st.Tours, nil
}

func (s *tourService) Get(_ context.Context, tourID string) (domain.Tour, error) {
	st := s.ws.Snapshot()
	if _, err := currentUser(st); err != nil {
		return domain.Tour{}, err
	}
	return resolveTour(st, tourID)
}

func validateTourInput(in TourInput) error {
	if strings.TrimSpace(in.ArtistName) == "" || strings.TrimSpace(in.TourName) == "" ||
		in.StartDate == "" || in.EndDate == "" {
		return invalid("Please fill out all fields.")
	}
	start, err := time.Parse(domain.DateLayout, in.StartDate)
	if err != nil {
		return invalid("Start date must be YYYY-MM-DD.")
	}
	end, err := time.Parse(domain.DateLayout, in.EndDate)
	if err != nil {
		return invalid("End date must be YYYY-MM-DD.")
	}
	if start.After(end) {
		return invalid("End date must be after start date.")
	}
	return nil
}

// Save creates a tour when in.ID is empty. New tours start with empty
// financials, website, campaigns and registration; edits only touch the
// header fields.
func (s *tourService) Save(ctx context.Context, in TourInput) (domain.Tour, error) {
	if err := validateTourInput(in); err != nil {
		return domain.Tour{}, err
	}
	var saved domain.Tour
	fields := map[string]any{"tour_id": in.ID}
	err := s.ws.mutate(ctx, "save-tour", fields, func(st domain.State) (domain.State, []domain.StateKey, error) {
		if _, err := requireManager(st, "save tour"); err != nil {
			return st, nil, err
		}
		if in.ID != "" {
			next, err := mutation.UpdateTour(st, in.ID, func(t domain.Tour) (domain.Tour, error) {
				saved = mutation.EditTourDetails(t, in.ArtistName, in.TourName, in.StartDate, in.EndDate)
				return saved, nil
			})
			return next, changed(domain.KeyTours), err
		}
		saved = domain.Tour{
			ID:           s.ws.newID("tour"),
			ArtistName:   in.ArtistName,
			TourName:     in.TourName,
			Status:       domain.StatusForStart(in.StartDate, s.ws.now()),
			StartDate:    in.StartDate,
			EndDate:      in.EndDate,
			ImageURL:     defaultTourImage,
			Financials:   &domain.Financials{Budget: []domain.BudgetItem{}, Expenses: []domain.Expense{}},
			Website:      []domain.WebsiteSection{},
			Campaigns:    []domain.EmailCampaign{},
			Registration: &domain.Registration{Forms: []domain.RegistrationForm{}, Attendees: []domain.Attendee{}},
		}
		return mutation.AddTour(st, saved), changed(domain.KeyTours), nil
	})
	if err != nil {
		return domain.Tour{}, err
	}
	return saved, nil
}

func (s *tourService) Delete(ctx context.Context, tourID string) (bool, error) {
	const prompt = "Are you sure you want to permanently delete this tour and all its data? This cannot be undone."
	return s.ws.destroy(ctx, "delete-tour", prompt, map[string]any{"tour_id": tourID},
		func(st domain.State) (domain.State, []domain.StateKey, error) {
			if _, err := requireManager(st, "delete tour"); err != nil {
				return st, nil, err
			}
			return mutation.Delete(st, mutation.Target{Kind: mutation.KindTour, ID: tourID})
		})
}

func (s *tourService) Select(ctx context.Context, tourID string) (domain.Tour, error) {
	var selected domain.Tour
	err := s.ws.mutate(ctx, "select-tour", map[string]any{"tour_id": tourID}, func(st domain.State) (domain.State, []domain.StateKey, error) {
		if _, err := currentUser(st); err != nil {
			return st, nil, err
		}
		t, ok := st.FindTour(tourID)
		if !ok {
			return st, nil, domain.NotFound("tour", tourID)
		}
		selected = t
		return mutation.SelectTour(st, tourID), changed(domain.KeySelectedTour), nil
	})
	return selected, err
}

func (s *tourService) ClearSelection(ctx context.Context) error {
	return s.ws.mutate(ctx, "clear-selection", nil, func(st domain.State) (domain.State, []domain.StateKey, error) {
		return mutation.SelectTour(st, ""), changed(domain.KeySelectedTour), nil
	})
}

func (s *tourService) Selected(_ context.Context) (domain.Tour, bool, error) {
	st := s.ws.Snapshot()
	if st.SelectedTourID == "" {
		return domain.Tour{}, false, nil
	}
	t, ok := st.FindTour(st.SelectedTourID)
	return t, ok, nil
}
