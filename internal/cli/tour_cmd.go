package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/showrunner/internal/cli/formatter"
	"github.com/alexanderramin/showrunner/internal/service"
	"github.com/alexanderramin/showrunner/internal/views"
	"github.com/spf13/cobra"
)

func newTourCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tour",
		Short: "Manage tours",
	}

	cmd.AddCommand(
		newTourListCmd(app),
		newTourAddCmd(app),
		newTourEditCmd(app),
		newTourDeleteCmd(app),
		newTourSelectCmd(app),
		newTourShowCmd(app),
	)

	return cmd
}

func newTourListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tours",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			tours, err := app.Tours.List(ctx)
			if err != nil {
				return err
			}
			if len(tours) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tours yet. Create one with `showrunner tour add`.")
				return nil
			}
			selected, _, _ := app.Tours.Selected(ctx)

			headers := []string{"", "ID", "TOUR", "ARTIST", "DATES", "STATUS"}
			rows := make([][]string, 0, len(tours))
			for _, t := range tours {
				marker := ""
				if t.ID == selected.ID {
					marker = formatter.StyleHeader.Render("▸")
				}
				rows = append(rows, []string{
					marker,
					formatter.Dim(t.ID),
					t.TourName,
					t.ArtistName,
					formatter.DateRange(t.StartDate, t.EndDate),
					formatter.TourStatusPill(t.Status),
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable(headers, rows))
			return nil
		},
	}
}

func tourFlags(cmd *cobra.Command, in *service.TourInput) {
	cmd.Flags().StringVar(&in.ArtistName, "artist", "", "Artist name")
	cmd.Flags().StringVar(&in.TourName, "name", "", "Tour name")
	cmd.Flags().StringVar(&in.StartDate, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&in.EndDate, "end", "", "End date (YYYY-MM-DD)")
}

func newTourAddCmd(app *App) *cobra.Command {
	var in service.TourInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a tour",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.Tours.Save(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created tour %s [%s] %s\n", t.TourName, t.ID, formatter.TourStatusPill(t.Status))
			return nil
		},
	}
	tourFlags(cmd, &in)
	return cmd
}

func newTourEditCmd(app *App) *cobra.Command {
	var in service.TourInput

	cmd := &cobra.Command{
		Use:   "edit [TOUR_ID]",
		Short: "Edit a tour's name, artist or dates",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := app.tourID
			if len(args) == 1 {
				id = args[0]
			}
			current, err := app.Tours.Get(ctx, id)
			if err != nil {
				return err
			}
			in.ID = current.ID
			keep(cmd, "artist", &in.ArtistName, current.ArtistName)
			keep(cmd, "name", &in.TourName, current.TourName)
			keep(cmd, "start", &in.StartDate, current.StartDate)
			keep(cmd, "end", &in.EndDate, current.EndDate)

			t, err := app.Tours.Save(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated tour %s\n", t.TourName)
			return nil
		},
	}
	tourFlags(cmd, &in)
	return cmd
}

// keep falls back to the current value when the flag was not given.
func keep[T any](cmd *cobra.Command, flag string, dst *T, current T) {
	if !cmd.Flags().Changed(flag) {
		*dst = current
	}
}

func newTourDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete TOUR_ID",
		Short: "Delete a tour and everything attached to it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applied, err := app.Tours.Delete(cmd.Context(), args[0])
			return reportDelete(cmd, applied, err, "Deleted tour "+args[0])
		},
	}
}

// reportDelete prints the outcome of a confirmed delete.
func reportDelete(cmd *cobra.Command, applied bool, err error, done string) error {
	if err != nil {
		return err
	}
	if !applied {
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), done)
	return nil
}

func newTourSelectCmd(app *App) *cobra.Command {
	var unselect bool

	cmd := &cobra.Command{
		Use:   "select [TOUR_ID]",
		Short: "Choose the tour other commands work on",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if unselect {
				if err := app.Tours.ClearSelection(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Tour selection cleared.")
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("tour ID is required")
			}
			t, err := app.Tours.Select(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Selected %s\n", formatter.Bold(t.TourName))
			return nil
		},
	}
	cmd.Flags().BoolVar(&unselect, "clear", false, "Clear the selection")
	return cmd
}

func newTourShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the tour dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := app.Tours.Get(ctx, app.tourID)
			if err != nil {
				return err
			}
			events, err := app.Schedule.Events(ctx, t.ID)
			if err != nil {
				return err
			}

			var b strings.Builder
			fmt.Fprintf(&b, "%s  %s\n", formatter.Bold(t.ArtistName), formatter.TourStatusPill(t.Status))
			fmt.Fprintf(&b, "%s\n\n", formatter.Dim(formatter.DateRange(t.StartDate, t.EndDate)))

			if summary, err := app.Finance.Summary(ctx, t.ID, views.ExpenseFilter{}); err == nil {
				fmt.Fprintf(&b, "Budget     %s\n", formatter.Money(summary.TotalBudget))
				fmt.Fprintf(&b, "Spent      %s\n", formatter.Money(summary.TotalApprovedSpend))
				fmt.Fprintf(&b, "Pending    %s (%d)\n\n", formatter.Money(summary.PendingTotal), summary.PendingCount)
			}

			if travel := views.TravelEvents(events); len(travel) > 0 {
				b.WriteString(formatter.Header("Travel") + "\n")
				for _, e := range travel {
					fmt.Fprintf(&b, "%s  %s  %s\n", formatter.HumanDate(e.Date), e.Title, formatter.Dim(e.Location))
				}
				b.WriteString("\n")
			}

			fmt.Fprintf(&b, "%d events  %d website sections  %d campaigns  %d forms",
				len(events), len(t.Website), len(t.Campaigns), len(t.RegistrationOrEmpty().Forms))
			if t.IsWebsiteDeployed {
				b.WriteString("  " + formatter.StyleGreen.Render("● site live"))
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderBox(t.TourName, b.String()))
			return nil
		},
	}
}
