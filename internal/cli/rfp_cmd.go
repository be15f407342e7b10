package cli

import (
	"fmt"

	"github.com/alexanderramin/showrunner/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newRFPCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rfp",
		Short: "Supplier requests for proposal",
	}

	cmd.AddCommand(
		newRFPListCmd(app),
		newRFPCompareCmd(app),
		newRFPAwardCmd(app),
		newRFPAwardProposalCmd(app),
	)

	return cmd
}

func newRFPListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the tour's RFPs",
		RunE: func(cmd *cobra.Command, args []string) error {
			rfps, err := app.Sourcing.RFPs(cmd.Context(), app.tourID)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(rfps))
			for _, r := range rfps {
				rows = append(rows, []string{formatter.Dim(r.ID), r.Title, string(r.Status), formatter.HumanDate(r.DueDate)})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable([]string{"ID", "TITLE", "STATUS", "DUE"}, rows))
			return nil
		},
	}
}

func newRFPCompareCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "compare RFP_ID",
		Short: "Compare proposals, cheapest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proposals, err := app.Sourcing.Compare(cmd.Context(), app.tourID, args[0])
			if err != nil {
				return err
			}
			if len(proposals) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No proposals received yet.")
				return nil
			}
			rows := make([][]string, 0, len(proposals))
			for i, p := range proposals {
				cost := formatter.Money(p.TotalCost)
				if i == 0 {
					cost = formatter.StyleGreen.Render(cost)
				}
				rows = append(rows, []string{p.SupplierName, cost, fmt.Sprintf("%.1f★", p.Rating), formatter.HumanDate(p.ReceivedDate), p.Notes})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable([]string{"SUPPLIER", "TOTAL", "RATING", "RECEIVED", "NOTES"}, rows))
			return nil
		},
	}
}

func newRFPAwardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "award RFP_ID",
		Short: "Mark an RFP awarded",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Sourcing.Award(cmd.Context(), app.tourID, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Awarded %s\n", args[0])
			return nil
		},
	}
}

func newRFPAwardProposalCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "award-proposal PROPOSAL_ID",
		Short: "Award the RFP a proposal answers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rfpID, err := app.Sourcing.AwardProposal(cmd.Context(), app.tourID, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Awarded %s to %s\n", rfpID, args[0])
			return nil
		},
	}
}
