package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/showrunner/internal/cli/formatter"
	"github.com/alexanderramin/showrunner/internal/domain"
	"github.com/alexanderramin/showrunner/internal/service"
	"github.com/spf13/cobra"
)

func newFormCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "form",
		Short: "Fan registration forms and attendees",
	}

	cmd.AddCommand(
		newFormListCmd(app),
		newFormAddCmd(app),
		newFormRenameCmd(app),
		newFormToggleCmd(app),
		newFormDeleteCmd(app),
		newFieldAddCmd(app),
		newFieldEditCmd(app),
		newFieldDeleteCmd(app),
		newFormSubmitCmd(app),
		newAttendeesCmd(app),
		newExportCmd(app),
		newAttendeeDeleteCmd(app),
	)

	return cmd
}

func findTourForm(cmd *cobra.Command, app *App, formID string) (domain.Tour, domain.RegistrationForm, error) {
	t, err := app.Tours.Get(cmd.Context(), app.tourID)
	if err != nil {
		return t, domain.RegistrationForm{}, err
	}
	form, ok := t.RegistrationOrEmpty().FindForm(formID)
	if !ok {
		return t, form, domain.NotFound("form", formID)
	}
	return t, form, nil
}

func formStatusPill(s domain.FormStatus) string {
	if s == domain.FormOpen {
		return formatter.StyleGreen.Render("● open")
	}
	return formatter.Dim("○ closed")
}

func newFormListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registration forms",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.Tours.Get(cmd.Context(), app.tourID)
			if err != nil {
				return err
			}
			reg := t.RegistrationOrEmpty()
			rows := make([][]string, 0, len(reg.Forms))
			for _, f := range reg.Forms {
				rows = append(rows, []string{
					formatter.Dim(f.ID), f.Name, formStatusPill(f.Status),
					fmt.Sprint(len(f.Fields)), fmt.Sprint(len(reg.AttendeesFor(f.ID))),
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable([]string{"ID", "NAME", "STATUS", "FIELDS", "ATTENDEES"}, rows))
			return nil
		},
	}
}

func newFormAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add",
		Short: "Create an open form with no fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := app.Registration.AddForm(cmd.Context(), app.tourID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s [%s]\n", f.Name, f.ID)
			return nil
		},
	}
}

func newFormRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename FORM_ID NAME",
		Short: "Rename a form",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, form, err := findTourForm(cmd, app, args[0])
			if err != nil {
				return err
			}
			form.Name = args[1]
			if err := app.Registration.UpdateForm(cmd.Context(), app.tourID, form); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed form to %s\n", form.Name)
			return nil
		},
	}
}

func newFormToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle FORM_ID",
		Short: "Open or close a form for public submissions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := app.Registration.ToggleFormStatus(cmd.Context(), app.tourID, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Form %s is now %s\n", args[0], formStatusPill(status))
			return nil
		},
	}
}

func newFormDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete FORM_ID",
		Short: "Delete a form and its attendees",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applied, err := app.Registration.DeleteForm(cmd.Context(), app.tourID, args[0])
			return reportDelete(cmd, applied, err, "Deleted form "+args[0])
		},
	}
}

func newFieldAddCmd(app *App) *cobra.Command {
	in := service.FieldInput{Type: domain.FieldText}
	var options string

	cmd := &cobra.Command{
		Use:   "field-add FORM_ID",
		Short: "Append a field to a form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Options = splitOptions(options)
			f, err := app.Registration.AddField(cmd.Context(), app.tourID, args[0], in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s field %q [%s]\n", f.Type, f.Label, f.ID)
			return nil
		},
	}

	f := cmd.Flags()
	enumFlag(f, &in.Type, "type", domain.FieldTypes, "Field type")
	f.StringVar(&in.Label, "label", "", "Label (defaults to a generated one)")
	f.StringVar(&in.Placeholder, "placeholder", "", "Placeholder")
	f.BoolVar(&in.Required, "required", false, "Answer required")
	f.StringVar(&options, "options", "", "Comma-separated options for select, radio and checkbox")

	return cmd
}

func newFieldEditCmd(app *App) *cobra.Command {
	var label, placeholder, options string
	var required bool

	cmd := &cobra.Command{
		Use:   "field-edit FORM_ID FIELD_ID",
		Short: "Edit a field; unset flags keep their current value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, form, err := findTourForm(cmd, app, args[0])
			if err != nil {
				return err
			}
			var field domain.FormField
			for _, f := range form.Fields {
				if f.ID == args[1] {
					field = f
				}
			}
			if field.ID == "" {
				return domain.NotFound("field", args[1])
			}
			keep(cmd, "label", &label, field.Label)
			keep(cmd, "placeholder", &placeholder, field.Placeholder)
			keep(cmd, "required", &required, field.Required)
			field.Label, field.Placeholder, field.Required = label, placeholder, required
			if cmd.Flags().Changed("options") {
				field.Options = splitOptions(options)
			}

			if err := app.Registration.UpdateField(cmd.Context(), app.tourID, args[0], field); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated field %q\n", field.Label)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&label, "label", "", "Label")
	f.StringVar(&placeholder, "placeholder", "", "Placeholder")
	f.BoolVar(&required, "required", false, "Answer required")
	f.StringVar(&options, "options", "", "Comma-separated options")

	return cmd
}

func newFieldDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "field-delete FORM_ID FIELD_ID",
		Short: "Remove a field from a form",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Registration.DeleteField(cmd.Context(), app.tourID, args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted field %s\n", args[1])
			return nil
		},
	}
}

func newFormSubmitCmd(app *App) *cobra.Command {
	var responses []string

	cmd := &cobra.Command{
		Use:   "submit FORM_ID",
		Short: "Register an attendee on a fan's behalf",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, form, err := findTourForm(cmd, app, args[0])
			if err != nil {
				return err
			}
			parsed, err := parseResponses(form, responses)
			if err != nil {
				return err
			}
			a, err := app.Registration.Submit(cmd.Context(), app.tourID, args[0], parsed)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered attendee %s\n", a.ID)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&responses, "response", nil, "Answer FIELD_ID=VALUE, repeatable; checkbox options separated by ';'")
	return cmd
}

func newAttendeesCmd(app *App) *cobra.Command {
	var filters map[string]string

	cmd := &cobra.Command{
		Use:   "attendees FORM_ID",
		Short: "List a form's attendees",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, form, err := findTourForm(cmd, app, args[0])
			if err != nil {
				return err
			}
			attendees, err := app.Registration.Attendees(cmd.Context(), app.tourID, args[0], filters)
			if err != nil {
				return err
			}
			if len(attendees) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No attendees match.")
				return nil
			}

			headers := []string{"ID", "REGISTERED"}
			for _, f := range form.Fields {
				headers = append(headers, strings.ToUpper(f.Label))
			}
			rows := make([][]string, 0, len(attendees))
			for _, a := range attendees {
				row := []string{formatter.Dim(a.ID), a.RegistrationDate.Format("Jan 2 15:04")}
				for _, f := range form.Fields {
					v, _ := a.Response(f.ID)
					row = append(row, v.String())
				}
				rows = append(rows, row)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable(headers, rows))
			return nil
		},
	}
	cmd.Flags().StringToStringVar(&filters, "filter", nil, "Option filter FIELD_ID=VALUE for select, radio and checkbox fields")
	return cmd
}

func newExportCmd(app *App) *cobra.Command {
	var filters map[string]string
	var dir string

	cmd := &cobra.Command{
		Use:   "export FORM_ID",
		Short: "Write the attendee list as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var buf bytes.Buffer
			name, err := app.Registration.ExportCSV(cmd.Context(), &buf, app.tourID, args[0], filters)
			if err != nil {
				return err
			}
			if dir == "-" {
				_, err := buf.WriteTo(cmd.OutOrStdout())
				return err
			}
			path := filepath.Join(dir, name)
			if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringToStringVar(&filters, "filter", nil, "Option filter FIELD_ID=VALUE")
	cmd.Flags().StringVar(&dir, "dir", ".", "Output directory, or - for stdout")
	return cmd
}

func newAttendeeDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "attendee-delete ATTENDEE_ID",
		Short: "Remove an attendee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applied, err := app.Registration.DeleteAttendee(cmd.Context(), app.tourID, args[0])
			return reportDelete(cmd, applied, err, "Deleted attendee "+args[0])
		},
	}
}
