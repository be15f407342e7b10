package cli

import (
	"fmt"

	"github.com/alexanderramin/showrunner/internal/cli/formatter"
	"github.com/alexanderramin/showrunner/internal/domain"
	"github.com/alexanderramin/showrunner/internal/service"
	"github.com/alexanderramin/showrunner/internal/views"
	"github.com/spf13/cobra"
)

func newCrewCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crew",
		Short: "Manage the roster and tour crew",
	}

	cmd.AddCommand(
		newCrewListCmd(app),
		newCrewAddCmd(app),
		newCrewEditCmd(app),
		newCrewRemoveCmd(app),
	)

	return cmd
}

func newCrewListCmd(app *App) *cobra.Command {
	var all bool
	sortBy := views.SortByName

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the tour crew, or everyone with --all",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var people []domain.Person
			var err error
			if all {
				people, err = app.Crew.List(ctx)
			} else {
				people, err = app.Crew.TourCrew(ctx, app.tourID)
			}
			if err != nil {
				return err
			}
			if len(people) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No crew assigned to this tour yet.")
				return nil
			}

			rows := make([][]string, 0, len(people))
			for _, p := range views.SortCrew(people, sortBy) {
				rows = append(rows, []string{formatter.Dim(p.ID), p.Name, string(p.Role), p.Email, formatter.PersonStatusPill(p.Status)})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable([]string{"ID", "NAME", "ROLE", "EMAIL", "STATUS"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "List every person, not just the tour crew")
	enumFlag(cmd.Flags(), &sortBy, "sort", []views.CrewSort{views.SortByName, views.SortByRole}, "Sort order")

	return cmd
}

func crewFlags(cmd *cobra.Command, in *service.CrewMemberInput) {
	cmd.Flags().StringVar(&in.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&in.Email, "email", "", "Email address")
	enumFlag(cmd.Flags(), &in.Role, "role", domain.Roles, "Role")
}

func newCrewAddCmd(app *App) *cobra.Command {
	in := service.CrewMemberInput{Role: domain.RoleCrew}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Invite a person to the roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Crew.Save(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Invited %s [%s] as %s\n", p.Name, p.ID, p.Role)
			return nil
		},
	}
	crewFlags(cmd, &in)
	return cmd
}

func newCrewEditCmd(app *App) *cobra.Command {
	var in service.CrewMemberInput

	cmd := &cobra.Command{
		Use:   "edit PERSON_ID",
		Short: "Edit a person's name, email or role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			people, err := app.Crew.List(ctx)
			if err != nil {
				return err
			}
			current, ok := domain.FindPerson(people, args[0])
			if !ok {
				return domain.NotFound("person", args[0])
			}
			in.ID = current.ID
			keep(cmd, "name", &in.Name, current.Name)
			keep(cmd, "email", &in.Email, current.Email)
			keep(cmd, "role", &in.Role, current.Role)

			p, err := app.Crew.Save(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", p.Name)
			return nil
		},
	}
	crewFlags(cmd, &in)
	return cmd
}

func newCrewRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove PERSON_ID",
		Short: "Remove a person from every event of the tour",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applied, err := app.Crew.RemoveFromTour(cmd.Context(), app.tourID, args[0])
			return reportDelete(cmd, applied, err, "Removed "+args[0]+" from the tour")
		},
	}
}
