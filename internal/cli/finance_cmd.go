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

func newFinanceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "finance",
		Short: "Budgets and expenses",
	}

	cmd.AddCommand(
		newFinanceSummaryCmd(app),
		newExpenseAddCmd(app),
		newExpenseEditCmd(app),
		newExpenseDeleteCmd(app),
		newExpenseStatusCmd(app, "approve", domain.ExpenseApproved),
		newExpenseStatusCmd(app, "reject", domain.ExpenseRejected),
		newBudgetAddCmd(app),
		newBudgetDeleteCmd(app),
	)

	return cmd
}

func newFinanceSummaryCmd(app *App) *cobra.Command {
	var filter views.ExpenseFilter

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show budget, spend and expenses",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := app.Finance.Summary(ctx, app.tourID, filter)
			if err != nil {
				return err
			}
			people, err := app.Crew.List(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			var b strings.Builder
			fmt.Fprintf(&b, "Total budget     %s\n", formatter.Money(s.TotalBudget))
			fmt.Fprintf(&b, "Approved spend   %s\n", formatter.Money(s.TotalApprovedSpend))
			remaining := formatter.Money(s.Remaining)
			if s.Remaining < 0 {
				remaining = formatter.StyleRed.Render(remaining)
			}
			fmt.Fprintf(&b, "Remaining        %s\n", remaining)
			fmt.Fprintf(&b, "Pending          %s (%d)", formatter.Money(s.PendingTotal), s.PendingCount)
			fmt.Fprintln(out, formatter.RenderBox("Budget", b.String()))

			if len(s.ByCategory) > 0 {
				rows := make([][]string, 0, len(s.ByCategory))
				for _, c := range s.ByCategory {
					rows = append(rows, []string{c.Category, formatter.Money(c.Budget), formatter.Money(c.Spent), formatter.Money(c.Remaining())})
				}
				fmt.Fprintln(out)
				fmt.Fprint(out, formatter.RenderTable([]string{"CATEGORY", "BUDGET", "SPENT", "LEFT"}, rows))
			}

			if len(s.Expenses) > 0 {
				rows := make([][]string, 0, len(s.Expenses))
				for _, e := range s.Expenses {
					rows = append(rows, []string{
						formatter.Dim(e.ID),
						formatter.HumanDate(e.Date),
						e.Description,
						e.Category,
						formatter.Money(e.Amount),
						domain.PersonName(people, e.SubmittedByID),
						formatter.ExpenseStatusPill(e.Status),
					})
				}
				fmt.Fprintln(out)
				fmt.Fprint(out, formatter.RenderTable([]string{"ID", "DATE", "DESCRIPTION", "CATEGORY", "AMOUNT", "BY", "STATUS"}, rows))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&filter.From, "from", "", "Only expenses on or after (YYYY-MM-DD)")
	cmd.Flags().StringVar(&filter.To, "to", "", "Only expenses on or before (YYYY-MM-DD)")
	cmd.Flags().StringVar(&filter.Category, "category", "", "Only this category")

	return cmd
}

func expenseFlags(cmd *cobra.Command, in *service.ExpenseInput) {
	cmd.Flags().StringVar(&in.Description, "description", "", "What was bought")
	cmd.Flags().Float64Var(&in.Amount, "amount", 0, "Amount")
	cmd.Flags().StringVar(&in.Date, "date", "", "Date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&in.Category, "category", "", "Budget category")
	cmd.Flags().StringVar(&in.ReceiptURL, "receipt", "", "Receipt URL")
}

func newExpenseAddCmd(app *App) *cobra.Command {
	var in service.ExpenseInput

	cmd := &cobra.Command{
		Use:   "expense-add",
		Short: "Submit an expense for approval",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := app.Finance.SaveExpense(cmd.Context(), app.tourID, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Submitted %s for %s [%s] %s\n",
				e.Description, formatter.Money(e.Amount), e.ID, formatter.ExpenseStatusPill(e.Status))
			return nil
		},
	}
	expenseFlags(cmd, &in)
	return cmd
}

func newExpenseEditCmd(app *App) *cobra.Command {
	var in service.ExpenseInput

	cmd := &cobra.Command{
		Use:   "expense-edit EXPENSE_ID",
		Short: "Edit an expense; unset flags keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := app.Finance.Summary(ctx, app.tourID, views.ExpenseFilter{})
			if err != nil {
				return err
			}
			var current domain.Expense
			for _, e := range s.Expenses {
				if e.ID == args[0] {
					current = e
				}
			}
			if current.ID == "" {
				return domain.NotFound("expense", args[0])
			}
			in.ID = current.ID
			keep(cmd, "description", &in.Description, current.Description)
			keep(cmd, "amount", &in.Amount, current.Amount)
			keep(cmd, "date", &in.Date, current.Date)
			keep(cmd, "category", &in.Category, current.Category)
			keep(cmd, "receipt", &in.ReceiptURL, current.ReceiptURL)

			e, err := app.Finance.SaveExpense(ctx, app.tourID, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", e.Description)
			return nil
		},
	}
	expenseFlags(cmd, &in)
	return cmd
}

func newExpenseDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "expense-delete EXPENSE_ID",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applied, err := app.Finance.DeleteExpense(cmd.Context(), app.tourID, args[0])
			return reportDelete(cmd, applied, err, "Deleted expense "+args[0])
		},
	}
}

func newExpenseStatusCmd(app *App, use string, status domain.ExpenseStatus) *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   use + " EXPENSE_ID",
		Short: fmt.Sprintf("Mark an expense %s", status),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := app.Finance.SetExpenseStatus(cmd.Context(), app.tourID, args[0], status, reason)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.ExpenseStatusPill(e.Status), e.Description)
			return nil
		},
	}
	if status == domain.ExpenseRejected {
		cmd.Flags().StringVar(&reason, "reason", "", "Why the expense was rejected")
	}
	return cmd
}

func newBudgetAddCmd(app *App) *cobra.Command {
	var in service.BudgetItemInput

	cmd := &cobra.Command{
		Use:   "budget-add",
		Short: "Add a budget line",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := app.Finance.AddBudgetItem(cmd.Context(), app.tourID, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Budgeted %s for %s [%s]\n", formatter.Money(b.Amount), b.Category, b.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Category, "category", "", "Category")
	cmd.Flags().Float64Var(&in.Amount, "amount", 0, "Amount")

	return cmd
}

func newBudgetDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "budget-delete ITEM_ID",
		Short: "Delete a budget line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applied, err := app.Finance.DeleteBudgetItem(cmd.Context(), app.tourID, args[0])
			return reportDelete(cmd, applied, err, "Deleted budget item "+args[0])
		},
	}
}
