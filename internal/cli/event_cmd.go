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

func newEventCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Manage the tour schedule",
	}

	cmd.AddCommand(
		newEventListCmd(app),
		newEventAddCmd(app),
		newEventEditCmd(app),
		newEventDeleteCmd(app),
		newEventShowCmd(app),
		newEventDaySheetCmd(app),
	)

	return cmd
}

func renderDays(events []domain.ScheduleEvent) string {
	var b strings.Builder
	for i, day := range views.GroupByDate(events) {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(formatter.Header(formatter.HumanDate(day.Date)) + "\n")
		for _, e := range day.Events {
			fmt.Fprintf(&b, "  %-12s %s  %s  %s\n",
				formatter.TimeRange(e.StartTime, e.EndTime),
				formatter.StylePurple.Render(string(e.Type)),
				e.Title,
				formatter.Dim(e.Location+" · "+e.ID))
		}
	}
	return b.String()
}

func newEventListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the events you can see, grouped by day",
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := app.Schedule.Events(cmd.Context(), app.tourID)
			if err != nil {
				return err
			}
			if len(events) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No events scheduled.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), renderDays(events))
			return nil
		},
	}
}

func eventFlags(cmd *cobra.Command, in *service.EventInput, assign *[]string) {
	cmd.Flags().StringVar(&in.Date, "date", "", "Date (YYYY-MM-DD)")
	enumFlag(cmd.Flags(), &in.Type, "type", domain.EventTypes, "Event type")
	cmd.Flags().StringVar(&in.Title, "title", "", "Title")
	cmd.Flags().StringVar(&in.StartTime, "start", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&in.EndTime, "end", "", "End time (HH:MM)")
	cmd.Flags().StringVar(&in.Location, "location", "", "Location")
	cmd.Flags().StringVar(&in.Notes, "notes", "", "Notes")
	cmd.Flags().StringSliceVar(assign, "assign", nil, "Assignment PERSON_ID[:read|write], repeatable")
}

func newEventAddCmd(app *App) *cobra.Command {
	in := service.EventInput{Type: domain.EventPerformance}
	var assign []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an event",
		RunE: func(cmd *cobra.Command, args []string) error {
			assignments, err := parseAssignments(assign)
			if err != nil {
				return err
			}
			in.AssignedTo = assignments
			e, err := app.Schedule.SaveEvent(cmd.Context(), app.tourID, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s on %s [%s]\n", e.Title, formatter.HumanDate(e.Date), e.ID)
			return nil
		},
	}
	eventFlags(cmd, &in, &assign)
	return cmd
}

func newEventEditCmd(app *App) *cobra.Command {
	var in service.EventInput
	var assign []string

	cmd := &cobra.Command{
		Use:   "edit EVENT_ID",
		Short: "Edit an event; unset flags keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			current, err := app.Schedule.Event(ctx, app.tourID, args[0])
			if err != nil {
				return err
			}
			in.ID = current.ID
			keep(cmd, "date", &in.Date, current.Date)
			keep(cmd, "type", &in.Type, current.Type)
			keep(cmd, "title", &in.Title, current.Title)
			keep(cmd, "start", &in.StartTime, current.StartTime)
			keep(cmd, "end", &in.EndTime, current.EndTime)
			keep(cmd, "location", &in.Location, current.Location)
			keep(cmd, "notes", &in.Notes, current.Notes)
			in.AssignedTo = current.AssignedTo
			if cmd.Flags().Changed("assign") {
				if in.AssignedTo, err = parseAssignments(assign); err != nil {
					return err
				}
			}

			e, err := app.Schedule.SaveEvent(ctx, app.tourID, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", e.Title)
			return nil
		},
	}
	eventFlags(cmd, &in, &assign)
	return cmd
}

func newEventDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete EVENT_ID",
		Short: "Delete an event with its tasks and comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applied, err := app.Schedule.DeleteEvent(cmd.Context(), app.tourID, args[0])
			return reportDelete(cmd, applied, err, "Deleted event "+args[0])
		},
	}
}

func newEventShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show EVENT_ID",
		Short: "Show an event with its tasks and comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := app.Schedule.Event(ctx, app.tourID, args[0])
			if err != nil {
				return err
			}
			people, err := app.Crew.List(ctx)
			if err != nil {
				return err
			}

			var b strings.Builder
			fmt.Fprintf(&b, "%s  %s\n", formatter.StylePurple.Render(string(e.Type)), formatter.HumanDate(e.Date))
			fmt.Fprintf(&b, "%s  %s\n", formatter.TimeRange(e.StartTime, e.EndTime), e.Location)
			if e.Notes != "" {
				fmt.Fprintf(&b, "\n%s\n", e.Notes)
			}

			b.WriteString("\n" + formatter.Header("Assigned") + "\n")
			for _, a := range e.AssignedTo {
				fmt.Fprintf(&b, "  %s %s\n", domain.PersonName(people, a.PersonID), formatter.Dim("("+string(a.Permission)+")"))
			}

			if len(e.Tasks) > 0 {
				b.WriteString("\n" + formatter.Header("Tasks") + "\n")
				for _, t := range e.Tasks {
					fmt.Fprintf(&b, "  %s %s %s\n", formatter.Check(t.Completed), t.Text,
						formatter.Dim("· "+views.AssigneeName(people, t.AssignedTo)+" · "+t.ID))
				}
			}

			if len(e.Comments) > 0 {
				b.WriteString("\n" + formatter.Header("Comments") + "\n")
				for _, c := range e.Comments {
					fmt.Fprintf(&b, "  %s %s\n  %s\n", formatter.Bold(domain.PersonName(people, c.AuthorID)),
						formatter.Dim(c.Timestamp.Format("Jan 2 15:04")), c.Text)
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderBox(e.Title, strings.TrimRight(b.String(), "\n")))
			return nil
		},
	}
}

func newEventDaySheetCmd(app *App) *cobra.Command {
	var personID, date string

	cmd := &cobra.Command{
		Use:   "daysheet",
		Short: "Show one person's events for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := app.Schedule.DaySheet(cmd.Context(), app.tourID, personID, date)
			if err != nil {
				return err
			}
			if len(events) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing scheduled.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), renderDays(events))
			return nil
		},
	}

	cmd.Flags().StringVar(&personID, "person", "", "Person ID (defaults to you)")
	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD, defaults to today)")

	return cmd
}
