package domain

type GalleryImage struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

type Testimonial struct {
	Quote    string `json:"quote"`
	Author   string `json:"author"`
	ImageURL string `json:"imageUrl,omitempty"`
}

type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// SectionContent is the union of every section payload. Which fields are
// meaningful depends on the section type.
type SectionContent struct {
	Headline      string         `json:"headline,omitempty"`
	Subheadline   string         `json:"subheadline,omitempty"`
	ImageURL      string         `json:"imageUrl,omitempty"`
	LogoURL       string         `json:"logoUrl,omitempty"`
	Title         string         `json:"title,omitempty"`
	Body          string         `json:"body,omitempty"`
	VideoURL      string         `json:"videoUrl,omitempty"`
	TicketURL     string         `json:"ticketUrl,omitempty"`
	ButtonText    string         `json:"buttonText,omitempty"`
	Images        []GalleryImage `json:"images,omitempty"`
	Testimonials  []Testimonial  `json:"testimonials,omitempty"`
	CTATitle      string         `json:"ctaTitle,omitempty"`
	CTABody       string         `json:"ctaBody,omitempty"`
	CTAButtonText string         `json:"ctaButtonText,omitempty"`
	CTAButtonURL  string         `json:"ctaButtonUrl,omitempty"`
	CopyrightText string         `json:"copyrightText,omitempty"`
	SocialLinks   []SocialLink   `json:"socialLinks,omitempty"`
}

type WebsiteSection struct {
	ID      string         `json:"id"`
	Type    SectionType    `json:"type"`
	Content SectionContent `json:"content"`
}

type CampaignStats struct {
	OpenRate  float64 `json:"openRate"`
	ClickRate float64 `json:"clickRate"`
}

type CampaignContent struct {
	Headline      string `json:"headline"`
	Body          string `json:"body"`
	CTAButtonText string `json:"ctaButtonText"`
	CTAButtonURL  string `json:"ctaButtonUrl"`
}

// Segmentation restricts a campaign audience to people assigned to events
// at the listed locations.
type Segmentation struct {
	LocationIDs []string `json:"locationIds"`
}

// EmailCampaign content may carry {{user_name}} and {{event_city}} tokens.
// They are stored unresolved.
type EmailCampaign struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Status        CampaignStatus  `json:"status"`
	ScheduledDate string          `json:"scheduledDate,omitempty"`
	Stats         CampaignStats   `json:"stats"`
	Subject       string          `json:"subject"`
	FromName      string          `json:"fromName"`
	Content       CampaignContent `json:"content"`
	Segmentation  *Segmentation   `json:"segmentation,omitempty"`
}

// LocationIDs returns the segmentation locations, nil when the campaign targets everyone.
func (c EmailCampaign) LocationIDs() []string {
	if c.Segmentation == nil {
		return nil
	}
	return c.Segmentation.LocationIDs
}
