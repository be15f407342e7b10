package views

import (
	"strings"

	"github.com/alexanderramin/showrunner/internal/domain"
)

// CampaignLocations lists the distinct event locations of a schedule in
// first-seen order. They are the choices for campaign segmentation.
func CampaignLocations(events []domain.ScheduleEvent) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range events {
		if !seen[e.Location] {
			seen[e.Location] = true
			out = append(out, e.Location)
		}
	}
	return out
}

// SegmentAudience returns the people a campaign reaches. With no segment
// locations it is everyone; otherwise it is the people assigned to any event
// whose location exactly matches one of the segment locations.
func SegmentAudience(c domain.EmailCampaign, events []domain.ScheduleEvent, people []domain.Person) []domain.Person {
	locations := c.LocationIDs()
	if len(locations) == 0 {
		return people
	}
	wanted := make(map[string]bool, len(locations))
	for _, l := range locations {
		wanted[l] = true
	}
	ids := make(map[string]bool)
	for _, e := range events {
		if !wanted[e.Location] {
			continue
		}
		for _, a := range e.AssignedTo {
			ids[a.PersonID] = true
		}
	}
	var out []domain.Person
	for _, p := range people {
		if ids[p.ID] {
			out = append(out, p)
		}
	}
	return out
}

const (
	TokenUserName  = "{{user_name}}"
	TokenEventCity = "{{event_city}}"
)

// CampaignPreview is a campaign with its placeholders resolved for one
// sample recipient.
type CampaignPreview struct {
	To            string
	FromName      string
	Subject       string
	Headline      string
	Body          string
	CTAButtonText string
	CTAButtonURL  string
	RecipientName string
	AudienceSize  int
}

// RenderCampaign resolves placeholders against a sample recipient: the first
// audience member, else the first person. Without anyone the tokens are left
// in place. The stored campaign is never modified.
func RenderCampaign(c domain.EmailCampaign, events []domain.ScheduleEvent, people []domain.Person) CampaignPreview {
	audience := SegmentAudience(c, events, people)
	var sample *domain.Person
	switch {
	case len(audience) > 0:
		sample = &audience[0]
	case len(people) > 0:
		sample = &people[0]
	}

	replace := func(s string) string { return s }
	preview := CampaignPreview{
		To:            "sample@email.com",
		RecipientName: "Sample User",
		AudienceSize:  len(audience),
	}
	if sample != nil {
		city := sampleLocation(*sample, events)
		r := strings.NewReplacer(TokenUserName, sample.Name, TokenEventCity, city)
		replace = r.Replace
		preview.To = sample.Email
		preview.RecipientName = sample.Name
	}

	preview.FromName = c.FromName
	preview.Subject = replace(c.Subject)
	preview.Headline = replace(c.Content.Headline)
	preview.Body = replace(c.Content.Body)
	preview.CTAButtonText = c.Content.CTAButtonText
	preview.CTAButtonURL = c.Content.CTAButtonURL
	return preview
}

func sampleLocation(p domain.Person, events []domain.ScheduleEvent) string {
	for _, e := range events {
		if e.IsAssigned(p.ID) && e.Location != "" {
			return e.Location
		}
	}
	return "the event"
}
