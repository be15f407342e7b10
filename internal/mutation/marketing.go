package mutation

import "github.com/alexanderramin/showrunner/internal/domain"

// SetWebsite replaces the whole section list.
func SetWebsite(t domain.Tour, sections []domain.WebsiteSection) domain.Tour {
	t.Website = appendItem[domain.WebsiteSection](nil, sections...)
	return t
}

// AddSection appends a section at the bottom of the page.
func AddSection(t domain.Tour, s domain.WebsiteSection) domain.Tour {
	t.Website = appendItem(t.Website, s)
	return t
}

// UpdateSection replaces one section's content. Type and position are kept.
func UpdateSection(t domain.Tour, id string, content domain.SectionContent) (domain.Tour, error) {
	sections, found, _ := replaceByID(t.Website, sectionID, id, func(s domain.WebsiteSection) (domain.WebsiteSection, error) {
		s.Content = content
		return s, nil
	})
	if !found {
		return t, domain.NotFound("section", id)
	}
	t.Website = sections
	return t, nil
}

// MoveSection swaps a section with its neighbour: up when delta is negative,
// down otherwise. Moving past either end is a no-op.
func MoveSection(t domain.Tour, id string, delta int) (domain.Tour, error) {
	idx := -1
	for i, s := range t.Website {
		if s.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return t, domain.NotFound("section", id)
	}
	target := idx + 1
	if delta < 0 {
		target = idx - 1
	}
	if target < 0 || target >= len(t.Website) {
		return t, nil
	}
	out := appendItem[domain.WebsiteSection](nil, t.Website...)
	out[idx], out[target] = out[target], out[idx]
	t.Website = out
	return t, nil
}

// ToggleDeployment flips the public website flag.
func ToggleDeployment(t domain.Tour) domain.Tour {
	t.IsWebsiteDeployed = !t.IsWebsiteDeployed
	return t
}

// AddCampaign appends a campaign.
func AddCampaign(t domain.Tour, c domain.EmailCampaign) domain.Tour {
	t.Campaigns = appendItem(t.Campaigns, c)
	return t
}

// ReplaceCampaign swaps in c wholesale, matched by ID.
func ReplaceCampaign(t domain.Tour, c domain.EmailCampaign) (domain.Tour, error) {
	campaigns, found, _ := replaceByID(t.Campaigns, campaignID, c.ID, func(domain.EmailCampaign) (domain.EmailCampaign, error) {
		return c, nil
	})
	if !found {
		return t, domain.NotFound("campaign", c.ID)
	}
	t.Campaigns = campaigns
	return t, nil
}

// AwardRFP marks the RFP awarded. Proposals and every other RFP are left as they are.
func AwardRFP(t domain.Tour, id string) (domain.Tour, error) {
	rfps, found, _ := replaceByID(t.RFPs, rfpID, id, func(r domain.RFP) (domain.RFP, error) {
		r.Status = domain.RFPAwarded
		return r, nil
	})
	if !found {
		return t, domain.NotFound("rfp", id)
	}
	t.RFPs = rfps
	return t, nil
}

// ProposalRFP returns the RFP a proposal answers.
func ProposalRFP(t domain.Tour, proposalID string) (string, error) {
	for _, p := range t.Proposals {
		if p.ID == proposalID {
			return p.RFPID, nil
		}
	}
	return "", domain.NotFound("proposal", proposalID)
}
