package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/showrunner/internal/cli/formatter"
	"github.com/alexanderramin/showrunner/internal/domain"
	"github.com/spf13/cobra"
)

func newRiderCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rider",
		Short: "Turn a technical rider into tasks and budget lines",
	}
	cmd.AddCommand(newRiderImportCmd(app))
	return cmd
}

func readRider(cmd *cobra.Command, path string) (string, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("opening rider: %w", err)
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading rider: %w", err)
	}
	return string(data), nil
}

func newRiderImportCmd(app *App) *cobra.Command {
	var path string
	var apply bool

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Parse a rider; --apply adds the result to the tour",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			text, err := readRider(cmd, path)
			if err != nil {
				return err
			}
			result, err := app.Rider.Process(ctx, text)
			if err != nil {
				return err
			}
			if result.Empty() {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to import.")
				return nil
			}

			people, err := app.Crew.List(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(result.Tasks) > 0 {
				rows := make([][]string, 0, len(result.Tasks))
				for _, t := range result.Tasks {
					rows = append(rows, []string{t.Text, domain.PersonName(people, t.AssignedTo)})
				}
				fmt.Fprint(out, formatter.RenderTable([]string{"TASK", "ASSIGNEE"}, rows))
			}
			if len(result.BudgetItems) > 0 {
				rows := make([][]string, 0, len(result.BudgetItems))
				for _, b := range result.BudgetItems {
					rows = append(rows, []string{b.Category, formatter.Money(b.Amount)})
				}
				fmt.Fprintln(out)
				fmt.Fprint(out, formatter.RenderTable([]string{"CATEGORY", "AMOUNT"}, rows))
			}

			if !apply {
				fmt.Fprintln(out, formatter.Dim("\nRe-run with --apply to add these to the tour."))
				return nil
			}
			e, err := app.Rider.Apply(ctx, app.tourID, result)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\nAdded %d tasks to %q on %s and %d budget lines.\n",
				len(e.Tasks), e.Title, formatter.HumanDate(e.Date), len(result.BudgetItems))
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "file", "-", "Rider text file, or - for stdin")
	cmd.Flags().BoolVar(&apply, "apply", false, "Apply the parsed result to the tour")

	return cmd
}
