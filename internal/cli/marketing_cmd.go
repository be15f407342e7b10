package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/showrunner/internal/cli/formatter"
	"github.com/alexanderramin/showrunner/internal/domain"
	"github.com/alexanderramin/showrunner/internal/service"
	"github.com/alexanderramin/showrunner/internal/views"
	"github.com/spf13/cobra"
)

func newWebsiteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "website",
		Short: "Build and publish the tour website",
	}

	cmd.AddCommand(
		newWebsiteShowCmd(app),
		newSectionAddCmd(app),
		newSectionEditCmd(app),
		newSectionMoveCmd(app),
		newSectionDeleteCmd(app),
		newWebsiteDeployCmd(app),
	)

	return cmd
}

func newWebsiteShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "List the website sections in page order",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.Tours.Get(cmd.Context(), app.tourID)
			if err != nil {
				return err
			}
			state := formatter.Dim("draft")
			if t.IsWebsiteDeployed {
				state = formatter.StyleGreen.Render("● live at /?view=website&tourId=" + t.ID)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n\n", formatter.Bold(t.TourName), state)

			rows := make([][]string, 0, len(t.Website))
			for i, s := range t.Website {
				rows = append(rows, []string{fmt.Sprint(i + 1), formatter.Dim(s.ID), string(s.Type), sectionSummary(s.Content)})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable([]string{"#", "ID", "TYPE", "CONTENT"}, rows))
			return nil
		},
	}
}

func sectionSummary(c domain.SectionContent) string {
	for _, s := range []string{c.Headline, c.Title, c.CTATitle, c.CopyrightText} {
		if s != "" {
			return s
		}
	}
	switch {
	case len(c.Images) > 0:
		return fmt.Sprintf("%d images", len(c.Images))
	case len(c.Testimonials) > 0:
		return fmt.Sprintf("%d testimonials", len(c.Testimonials))
	}
	return ""
}

func newSectionAddCmd(app *App) *cobra.Command {
	sectionType := domain.SectionHero

	cmd := &cobra.Command{
		Use:   "add-section",
		Short: "Append a section with default content",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Marketing.AddSection(cmd.Context(), app.tourID, sectionType)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s section [%s]\n", s.Type, s.ID)
			return nil
		},
	}
	enumFlag(cmd.Flags(), &sectionType, "type", domain.SectionTypes, "Section type")
	return cmd
}

func newSectionEditCmd(app *App) *cobra.Command {
	var content domain.SectionContent

	cmd := &cobra.Command{
		Use:   "edit-section SECTION_ID",
		Short: "Edit a section's text fields; unset flags keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := app.Tours.Get(ctx, app.tourID)
			if err != nil {
				return err
			}
			var current *domain.WebsiteSection
			for i := range t.Website {
				if t.Website[i].ID == args[0] {
					current = &t.Website[i]
				}
			}
			if current == nil {
				return domain.NotFound("section", args[0])
			}
			next := current.Content
			set := func(flag string, dst *string, v string) {
				if cmd.Flags().Changed(flag) {
					*dst = v
				}
			}
			set("headline", &next.Headline, content.Headline)
			set("subheadline", &next.Subheadline, content.Subheadline)
			set("title", &next.Title, content.Title)
			set("body", &next.Body, content.Body)
			set("image", &next.ImageURL, content.ImageURL)
			set("video", &next.VideoURL, content.VideoURL)
			set("ticket-url", &next.TicketURL, content.TicketURL)
			set("button", &next.ButtonText, content.ButtonText)

			if err := app.Marketing.EditSection(ctx, app.tourID, args[0], next); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated section %s\n", args[0])
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&content.Headline, "headline", "", "Headline")
	f.StringVar(&content.Subheadline, "subheadline", "", "Subheadline")
	f.StringVar(&content.Title, "title", "", "Title")
	f.StringVar(&content.Body, "body", "", "Body text")
	f.StringVar(&content.ImageURL, "image", "", "Image URL")
	f.StringVar(&content.VideoURL, "video", "", "Video URL")
	f.StringVar(&content.TicketURL, "ticket-url", "", "Ticket link")
	f.StringVar(&content.ButtonText, "button", "", "Button text")

	return cmd
}

func newSectionMoveCmd(app *App) *cobra.Command {
	var up, down bool

	cmd := &cobra.Command{
		Use:   "move-section SECTION_ID",
		Short: "Move a section one place up or down",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if up == down {
				return fmt.Errorf("pass exactly one of --up or --down")
			}
			delta := 1
			if up {
				delta = -1
			}
			if err := app.Marketing.MoveSection(cmd.Context(), app.tourID, args[0], delta); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved section %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVar(&up, "up", false, "Move towards the top")
	cmd.Flags().BoolVar(&down, "down", false, "Move towards the bottom")
	return cmd
}

func newSectionDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-section SECTION_ID",
		Short: "Delete a section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applied, err := app.Marketing.DeleteSection(cmd.Context(), app.tourID, args[0])
			return reportDelete(cmd, applied, err, "Deleted section "+args[0])
		},
	}
}

func newWebsiteDeployCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "deploy",
		Short: "Publish the website, or take it down when live",
		RunE: func(cmd *cobra.Command, args []string) error {
			live, err := app.Marketing.ToggleDeployment(cmd.Context(), app.tourID)
			if err != nil {
				return err
			}
			if live {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleGreen.Render("Website is live."))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Website taken down.")
			}
			return nil
		},
	}
}

func newCampaignCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "campaign",
		Short: "Email campaigns",
	}

	cmd.AddCommand(
		newCampaignListCmd(app),
		newCampaignAddCmd(app),
		newCampaignEditCmd(app),
		newCampaignDeleteCmd(app),
		newCampaignPreviewCmd(app),
		newCampaignAudienceCmd(app),
	)

	return cmd
}

func newCampaignListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List campaigns",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.Tours.Get(cmd.Context(), app.tourID)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(t.Campaigns))
			for _, c := range t.Campaigns {
				stats := ""
				if c.Status == domain.CampaignSent {
					stats = fmt.Sprintf("%.0f%% open · %.0f%% click", c.Stats.OpenRate, c.Stats.ClickRate)
				}
				rows = append(rows, []string{formatter.Dim(c.ID), c.Name, string(c.Status), formatter.HumanDate(c.ScheduledDate), stats})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable([]string{"ID", "NAME", "STATUS", "SCHEDULED", "STATS"}, rows))
			return nil
		},
	}
}

func newCampaignAddCmd(app *App) *cobra.Command {
	var in service.CampaignInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a campaign; a scheduled date makes it Scheduled",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Marketing.AddCampaign(cmd.Context(), app.tourID, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s campaign %s [%s]\n", c.Status, c.Name, c.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "Campaign name")
	cmd.Flags().StringVar(&in.ScheduledDate, "scheduled", "", "Send date (YYYY-MM-DD)")

	return cmd
}

func newCampaignEditCmd(app *App) *cobra.Command {
	var c domain.EmailCampaign
	var locations []string

	cmd := &cobra.Command{
		Use:   "edit CAMPAIGN_ID",
		Short: "Edit a campaign; content may use {{user_name}} and {{event_city}}",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := app.Tours.Get(ctx, app.tourID)
			if err != nil {
				return err
			}
			var current domain.EmailCampaign
			for _, existing := range t.Campaigns {
				if existing.ID == args[0] {
					current = existing
				}
			}
			if current.ID == "" {
				return domain.NotFound("campaign", args[0])
			}
			next := current
			keep(cmd, "name", &c.Name, current.Name)
			keep(cmd, "status", &c.Status, current.Status)
			keep(cmd, "scheduled", &c.ScheduledDate, current.ScheduledDate)
			keep(cmd, "subject", &c.Subject, current.Subject)
			keep(cmd, "from", &c.FromName, current.FromName)
			keep(cmd, "headline", &c.Content.Headline, current.Content.Headline)
			keep(cmd, "body", &c.Content.Body, current.Content.Body)
			keep(cmd, "cta-text", &c.Content.CTAButtonText, current.Content.CTAButtonText)
			keep(cmd, "cta-url", &c.Content.CTAButtonURL, current.Content.CTAButtonURL)
			next.Name, next.Status, next.ScheduledDate = c.Name, c.Status, c.ScheduledDate
			next.Subject, next.FromName, next.Content = c.Subject, c.FromName, c.Content
			if cmd.Flags().Changed("locations") {
				next.Segmentation = nil
				if len(locations) > 0 {
					next.Segmentation = &domain.Segmentation{LocationIDs: locations}
				}
			}

			if err := app.Marketing.UpdateCampaign(ctx, app.tourID, next); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated campaign %s\n", next.Name)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&c.Name, "name", "", "Campaign name")
	enumFlag(f, &c.Status, "status", campaignStatuses, "Status")
	f.StringVar(&c.ScheduledDate, "scheduled", "", "Send date (YYYY-MM-DD)")
	f.StringVar(&c.Subject, "subject", "", "Subject line")
	f.StringVar(&c.FromName, "from", "", "Sender name")
	f.StringVar(&c.Content.Headline, "headline", "", "Headline")
	f.StringVar(&c.Content.Body, "body", "", "Body")
	f.StringVar(&c.Content.CTAButtonText, "cta-text", "", "Button text")
	f.StringVar(&c.Content.CTAButtonURL, "cta-url", "", "Button link")
	f.StringSliceVar(&locations, "locations", nil, "Target only crew at these event locations (empty for everyone)")

	return cmd
}

func newCampaignDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete CAMPAIGN_ID",
		Short: "Delete a campaign",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applied, err := app.Marketing.DeleteCampaign(cmd.Context(), app.tourID, args[0])
			return reportDelete(cmd, applied, err, "Deleted campaign "+args[0])
		},
	}
}

// previewMarkdown lays out a rendered campaign as an email.
func previewMarkdown(p views.CampaignPreview) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**From:** %s  \n**To:** %s  \n**Subject:** %s\n\n---\n\n", p.FromName, p.To, p.Subject)
	if p.Headline != "" {
		fmt.Fprintf(&b, "# %s\n\n", p.Headline)
	}
	if p.Body != "" {
		fmt.Fprintf(&b, "%s\n\n", p.Body)
	}
	if p.CTAButtonText != "" {
		fmt.Fprintf(&b, "[%s](%s)\n\n", p.CTAButtonText, p.CTAButtonURL)
	}
	fmt.Fprintf(&b, "---\n\n_Audience: %d recipient(s)_\n", p.AudienceSize)
	return b.String()
}

func newCampaignPreviewCmd(app *App) *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "preview CAMPAIGN_ID",
		Short: "Render a campaign for its first recipient",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Marketing.Preview(cmd.Context(), app.tourID, args[0])
			if err != nil {
				return err
			}
			out, err := formatter.RenderMarkdown(previewMarkdown(p), app.interactive(), width)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 80, "Wrap width")
	return cmd
}

func newCampaignAudienceCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "audience CAMPAIGN_ID",
		Short: "List who the campaign will reach",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			people, err := app.Marketing.Audience(cmd.Context(), app.tourID, args[0])
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(people))
			for _, p := range people {
				rows = append(rows, []string{p.Name, p.Email, string(p.Role)})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable([]string{"NAME", "EMAIL", "ROLE"}, rows))
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.Dim(fmt.Sprintf("%d recipient(s)", len(people))))
			return nil
		},
	}
}
