package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/showrunner/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sectionIDs(sections []domain.WebsiteSection) []string {
	ids := make([]string, len(sections))
	for i, s := range sections {
		ids[i] = s.ID
	}
	return ids
}

func TestMarketingService_Sections(t *testing.T) {
	h := newHarness(t, fixtureState())
	svc := NewMarketingService(h.ws)
	ctx := context.Background()

	sec, err := svc.AddSection(ctx, tourID, domain.SectionGallery)
	require.NoError(t, err)
	assert.Equal(t, []string{"ws-1", "ws-2", sec.ID}, sectionIDs(h.tour(t, tourID).Website))

	require.NoError(t, svc.MoveSection(ctx, tourID, sec.ID, -1))
	assert.Equal(t, []string{"ws-1", sec.ID, "ws-2"}, sectionIDs(h.tour(t, tourID).Website))

	require.NoError(t, svc.MoveSection(ctx, tourID, "ws-1", -1), "moving past the top is a no-op")
	assert.Equal(t, []string{"ws-1", sec.ID, "ws-2"}, sectionIDs(h.tour(t, tourID).Website))

	require.NoError(t, svc.EditSection(ctx, tourID, "ws-1", domain.SectionContent{Headline: "New headline"}))
	assert.Equal(t, "New headline", h.tour(t, tourID).Website[0].Content.Headline)

	applied, err := svc.DeleteSection(ctx, tourID, sec.ID)
	require.NoError(t, err)
	assert.True(t, applied)

	persisted, _ := h.persisted(t).FindTour(tourID)
	assert.Equal(t, []string{"ws-1", "ws-2"}, sectionIDs(persisted.Website))

	_, err = svc.AddSection(ctx, tourID, "marquee")
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, svc.MoveSection(ctx, tourID, "ws-9", 1), ErrNotFound)
}

func TestMarketingService_UpdateWebsiteReplacesSections(t *testing.T) {
	h := newHarness(t, fixtureState())
	svc := NewMarketingService(h.ws)

	err := svc.UpdateWebsite(context.Background(), tourID, []domain.WebsiteSection{{ID: "ws-9", Type: domain.SectionFooter}})
	require.NoError(t, err)
	assert.Equal(t, []string{"ws-9"}, sectionIDs(h.tour(t, tourID).Website))

	err = svc.UpdateWebsite(context.Background(), tourID, []domain.WebsiteSection{{ID: "x", Type: "banner"}})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestMarketingService_PublicWebsiteFollowsDeployment(t *testing.T) {
	h := newHarness(t, fixtureState())
	svc := NewMarketingService(h.ws)
	ctx := context.Background()

	tour, err := svc.PublicWebsite(ctx, tourID)
	require.NoError(t, err)
	assert.Len(t, tour.Website, 2)

	deployed, err := svc.ToggleDeployment(ctx, tourID)
	require.NoError(t, err)
	assert.False(t, deployed)

	_, err = svc.PublicWebsite(ctx, tourID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.PublicWebsite(ctx, "tour-missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMarketingService_EditsRequireManager(t *testing.T) {
	h := newHarness(t, fixtureState())
	h.signIn(t, productionID)
	svc := NewMarketingService(h.ws)

	_, err := svc.ToggleDeployment(context.Background(), tourID)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.AddCampaign(context.Background(), tourID, CampaignInput{Name: "Hello"})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.True(t, h.tour(t, tourID).IsWebsiteDeployed)
}

func TestMarketingService_CampaignLifecycle(t *testing.T) {
	h := newHarness(t, fixtureState())
	svc := NewMarketingService(h.ws)
	ctx := context.Background()

	draft, err := svc.AddCampaign(ctx, tourID, CampaignInput{Name: "Presale"})
	require.NoError(t, err)
	assert.Equal(t, domain.CampaignDraft, draft.Status)

	scheduled, err := svc.AddCampaign(ctx, tourID, CampaignInput{Name: "On sale", ScheduledDate: "2024-08-20"})
	require.NoError(t, err)
	assert.Equal(t, domain.CampaignScheduled, scheduled.Status)

	draft.Subject = "Tickets for {{event_city}}"
	draft.Status = domain.CampaignSent
	require.NoError(t, svc.UpdateCampaign(ctx, tourID, draft))

	campaigns := h.tour(t, tourID).Campaigns
	require.Len(t, campaigns, 3)
	assert.Equal(t, "Tickets for {{event_city}}", campaigns[1].Subject)

	draft.Status = "Archived"
	assert.ErrorIs(t, svc.UpdateCampaign(ctx, tourID, draft), ErrValidation)

	_, err = svc.AddCampaign(ctx, tourID, CampaignInput{Name: " "})
	assert.ErrorIs(t, err, ErrValidation)

	applied, err := svc.DeleteCampaign(ctx, tourID, scheduled.ID)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Len(t, h.persisted(t).Tours[0].Campaigns, 2)
}

func TestMarketingService_AudienceAndPreview(t *testing.T) {
	h := newHarness(t, fixtureState())
	svc := NewMarketingService(h.ws)
	ctx := context.Background()

	audience, err := svc.Audience(ctx, tourID, "camp-1")
	require.NoError(t, err)
	assert.Equal(t, []string{crewID}, personIDs(audience))

	preview, err := svc.Preview(ctx, tourID, "camp-1")
	require.NoError(t, err)
	assert.Equal(t, "casey@showrunner.app", preview.To)
	assert.Equal(t, "See you in Denver, CO, Casey Lee!", preview.Subject)
	assert.Equal(t, "Hi Casey Lee", preview.Headline)
	assert.Equal(t, 1, preview.AudienceSize)

	stored := h.tour(t, tourID).Campaigns[0]
	assert.Equal(t, "See you in {{event_city}}, {{user_name}}!", stored.Subject, "preview never rewrites the campaign")

	_, err = svc.Preview(ctx, tourID, "camp-9")
	assert.ErrorIs(t, err, ErrNotFound)
}
