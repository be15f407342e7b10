package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/showrunner/internal/domain"
	"github.com/alexanderramin/showrunner/internal/mutation"
	"github.com/alexanderramin/showrunner/internal/views"
)

type marketingService struct {
	ws *Workspace
}

func NewMarketingService(ws *Workspace) MarketingService {
	return &marketingService{ws: ws}
}

// editTour runs fn against the resolved tour behind the manager gate and
// stores the result under the tours key.
func (s *marketingService) editTour(ctx context.Context, name, tourID string, fields map[string]any, fn func(domain.Tour) (domain.Tour, error)) error {
	if fields == nil {
		fields = map[string]any{}
	}
	fields["tour_id"] = tourID
	return s.ws.mutate(ctx, name, fields, func(st domain.State) (domain.State, []domain.StateKey, error) {
		if _, err := requireManager(st, name); err != nil {
			return st, nil, err
		}
		t, err := resolveTour(st, tourID)
		if err != nil {
			return st, nil, err
		}
		next, err := mutation.UpdateTour(st, t.ID, fn)
		return next, changed(domain.KeyTours), err
	})
}

func (s *marketingService) UpdateWebsite(ctx context.Context, tourID string, sections []domain.WebsiteSection) error {
	for _, sec := range sections {
		if !sec.Type.Valid() {
			return invalid(fmt.Sprintf("Unknown section type %q.", sec.Type))
		}
	}
	return s.editTour(ctx, "update-website", tourID, nil, func(t domain.Tour) (domain.Tour, error) {
		return mutation.SetWebsite(t, sections), nil
	})
}

// AddSection appends an empty section of the given type.
func (s *marketingService) AddSection(ctx context.Context, tourID string, sectionType domain.SectionType) (domain.WebsiteSection, error) {
	if !sectionType.Valid() {
		return domain.WebsiteSection{}, invalid(fmt.Sprintf("Unknown section type %q.", sectionType))
	}
	sec := domain.WebsiteSection{ID: s.ws.newID("ws"), Type: sectionType}
	err := s.editTour(ctx, "add-section", tourID, nil, func(t domain.Tour) (domain.Tour, error) {
		return mutation.AddSection(t, sec), nil
	})
	if err != nil {
		return domain.WebsiteSection{}, err
	}
	return sec, nil
}

func (s *marketingService) EditSection(ctx context.Context, tourID, sectionID string, content domain.SectionContent) error {
	return s.editTour(ctx, "edit-section", tourID, map[string]any{"section_id": sectionID}, func(t domain.Tour) (domain.Tour, error) {
		return mutation.UpdateSection(t, sectionID, content)
	})
}

func (s *marketingService) MoveSection(ctx context.Context, tourID, sectionID string, delta int) error {
	return s.editTour(ctx, "move-section", tourID, map[string]any{"section_id": sectionID, "delta": delta}, func(t domain.Tour) (domain.Tour, error) {
		return mutation.MoveSection(t, sectionID, delta)
	})
}

func (s *marketingService) DeleteSection(ctx context.Context, tourID, sectionID string) (bool, error) {
	const prompt = "Are you sure you want to delete this section? This action cannot be undone."
	return s.ws.destroy(ctx, "delete-section", prompt, map[string]any{"tour_id": tourID, "section_id": sectionID},
		func(st domain.State) (domain.State, []domain.StateKey, error) {
			if _, err := requireManager(st, "delete section"); err != nil {
				return st, nil, err
			}
			t, err := resolveTour(st, tourID)
			if err != nil {
				return st, nil, err
			}
			return mutation.Delete(st, mutation.Target{Kind: mutation.KindSection, TourID: t.ID, ID: sectionID})
		})
}

// ToggleDeployment flips whether the website is public and returns the new value.
func (s *marketingService) ToggleDeployment(ctx context.Context, tourID string) (bool, error) {
	var deployed bool
	err := s.editTour(ctx, "toggle-deployment", tourID, nil, func(t domain.Tour) (domain.Tour, error) {
		t = mutation.ToggleDeployment(t)
		deployed = t.IsWebsiteDeployed
		return t, nil
	})
	return deployed, err
}

func (s *marketingService) PublicWebsite(_ context.Context, tourID string) (domain.Tour, error) {
	t, ok := s.ws.Snapshot().FindTour(tourID)
	if !ok || !t.IsWebsiteDeployed {
		return domain.Tour{}, domain.NotFound("website", tourID)
	}
	return t, nil
}

// AddCampaign creates a campaign with placeholder content. It is Scheduled
// when a date is given and a Draft otherwise.
func (s *marketingService) AddCampaign(ctx context.Context, tourID string, in CampaignInput) (domain.EmailCampaign, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.EmailCampaign{}, invalid("Please enter a campaign name.")
	}
	c := domain.EmailCampaign{
		ID:       s.ws.newID("camp"),
		Name:     name,
		Status:   domain.CampaignDraft,
		Subject:  "New Campaign Subject",
		FromName: "Your Team",
	}
	if in.ScheduledDate != "" {
		c.Status = domain.CampaignScheduled
		c.ScheduledDate = in.ScheduledDate
	}
	err := s.editTour(ctx, "add-campaign", tourID, nil, func(t domain.Tour) (domain.Tour, error) {
		return mutation.AddCampaign(t, c), nil
	})
	if err != nil {
		return domain.EmailCampaign{}, err
	}
	return c, nil
}

// UpdateCampaign replaces a stored campaign. Placeholder tokens are stored
// as written.
func (s *marketingService) UpdateCampaign(ctx context.Context, tourID string, c domain.EmailCampaign) error {
	if strings.TrimSpace(c.Name) == "" {
		return invalid("Please enter a campaign name.")
	}
	if !c.Status.Valid() {
		return invalid(fmt.Sprintf("Unknown campaign status %q.", c.Status))
	}
	return s.editTour(ctx, "update-campaign", tourID, map[string]any{"campaign_id": c.ID}, func(t domain.Tour) (domain.Tour, error) {
		return mutation.ReplaceCampaign(t, c)
	})
}

func (s *marketingService) DeleteCampaign(ctx context.Context, tourID, campaignID string) (bool, error) {
	return s.ws.destroy(ctx, "delete-campaign", "Are you sure you want to delete this campaign?",
		map[string]any{"tour_id": tourID, "campaign_id": campaignID},
		func(st domain.State) (domain.State, []domain.StateKey, error) {
			if _, err := requireManager(st, "delete campaign"); err != nil {
				return st, nil, err
			}
			t, err := resolveTour(st, tourID)
			if err != nil {
				return st, nil, err
			}
			return mutation.Delete(st, mutation.Target{Kind: mutation.KindCampaign, TourID: t.ID, ID: campaignID})
		})
}

func (s *marketingService) campaign(tourID, campaignID string) (domain.State, domain.Tour, domain.EmailCampaign, error) {
	st := s.ws.Snapshot()
	if _, err := currentUser(st); err != nil {
		return st, domain.Tour{}, domain.EmailCampaign{}, err
	}
	t, err := resolveTour(st, tourID)
	if err != nil {
		return st, t, domain.EmailCampaign{}, err
	}
	for _, c := range t.Campaigns {
		if c.ID == campaignID {
			return st, t, c, nil
		}
	}
	return st, t, domain.EmailCampaign{}, domain.NotFound("campaign", campaignID)
}

func (s *marketingService) Audience(_ context.Context, tourID, campaignID string) ([]domain.Person, error) {
	st, t, c, err := s.campaign(tourID, campaignID)
	if err != nil {
		return nil, err
	}
	return views.SegmentAudience(c, st.Events(t.ID), st.People), nil
}

func (s *marketingService) Preview(_ context.Context, tourID, campaignID string) (views.CampaignPreview, error) {
	st, t, c, err := s.campaign(tourID, campaignID)
	if err != nil {
		return views.CampaignPreview{}, err
	}
	return views.RenderCampaign(c, st.Events(t.ID), st.People), nil
}
