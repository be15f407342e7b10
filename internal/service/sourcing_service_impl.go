package service

import (
	"context"

	"github.com/alexanderramin/showrunner/internal/domain"
	"github.com/alexanderramin/showrunner/internal/mutation"
	"github.com/alexanderramin/showrunner/internal/views"
)

type sourcingService struct {
	ws *Workspace
}

func NewSourcingService(ws *Workspace) SourcingService {
	return &sourcingService{ws: ws}
}

func (s *sourcingService) Suppliers(_ context.Context) ([]domain.Supplier, error) {
	st := s.ws.Snapshot()
	if _, err := currentUser(st); err != nil {
		return nil, err
	}
	return st.Suppliers, nil
}

func (s *sourcingService) RFPs(_ context.Context, tourID string) ([]domain.RFP, error) {
	st := s.ws.Snapshot()
	if _, err := currentUser(st); err != nil {
		return nil, err
	}
	t, err := resolveTour(st, tourID)
	if err != nil {
		return nil, err
	}
	return t.RFPs, nil
}

// Compare lists the proposals answering one RFP, cheapest first.
func (s *sourcingService) Compare(_ context.Context, tourID, rfpID string) ([]views.ProposalRow, error) {
	st := s.ws.Snapshot()
	if _, err := currentUser(st); err != nil {
		return nil, err
	}
	t, err := resolveTour(st, tourID)
	if err != nil {
		return nil, err
	}
	found := false
	for _, r := range t.RFPs {
		if r.ID == rfpID {
			found = true
			break
		}
	}
	if !found {
		return nil, domain.NotFound("rfp", rfpID)
	}
	return views.CompareProposals(t, st.Suppliers, rfpID), nil
}

// Award marks the RFP awarded. Awarding twice is harmless.
func (s *sourcingService) Award(ctx context.Context, tourID, rfpID string) error {
	return s.ws.mutate(ctx, "award-rfp", map[string]any{"tour_id": tourID, "rfp_id": rfpID}, func(st domain.State) (domain.State, []domain.StateKey, error) {
		if _, err := requireManager(st, "award proposal"); err != nil {
			return st, nil, err
		}
		t, err := resolveTour(st, tourID)
		if err != nil {
			return st, nil, err
		}
		next, err := mutation.UpdateTour(st, t.ID, func(tour domain.Tour) (domain.Tour, error) {
			return mutation.AwardRFP(tour, rfpID)
		})
		return next, changed(domain.KeyTours), err
	})
}

func (s *sourcingService) AwardProposal(ctx context.Context, tourID, proposalID string) (string, error) {
	var rfpID string
	err := s.ws.mutate(ctx, "award-proposal", map[string]any{"tour_id": tourID, "proposal_id": proposalID}, func(st domain.State) (domain.State, []domain.StateKey, error) {
		if _, err := requireManager(st, "award proposal"); err != nil {
			return st, nil, err
		}
		t, err := resolveTour(st, tourID)
		if err != nil {
			return st, nil, err
		}
		next, err := mutation.UpdateTour(st, t.ID, func(tour domain.Tour) (domain.Tour, error) {
			id, err := mutation.ProposalRFP(tour, proposalID)
			if err != nil {
				return tour, err
			}
			rfpID = id
			return mutation.AwardRFP(tour, id)
		})
		return next, changed(domain.KeyTours), err
	})
	if err != nil {
		return "", err
	}
	return rfpID, nil
}
