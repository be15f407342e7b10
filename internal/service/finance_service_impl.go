package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/showrunner/internal/access"
	"github.com/alexanderramin/showrunner/internal/domain"
	"github.com/alexanderramin/showrunner/internal/mutation"
	"github.com/alexanderramin/showrunner/internal/views"
)

type financeService struct {
	ws *Workspace
}

func NewFinanceService(ws *Workspace) FinanceService {
	return &financeService{ws: ws}
}

// Summary totals the tour's financials. Non-managers see the same totals
// but only their own expenses.
func (s *financeService) Summary(_ context.Context, tourID string, filter views.ExpenseFilter) (views.BudgetSummary, error) {
	st := s.ws.Snapshot()
	user, err := currentUser(st)
	if err != nil {
		return views.BudgetSummary{}, err
	}
	t, err := resolveTour(st, tourID)
	if err != nil {
		return views.BudgetSummary{}, err
	}
	summary := views.SummarizeBudget(t.FinancialsOrEmpty(), filter)
	summary.Expenses = views.ExpensesNewestFirst(summary.Expenses)
	if !access.IsManager(user) {
		var own []domain.Expense
		for _, e := range summary.Expenses {
			if e.SubmittedByID == user.ID {
				own = append(own, e)
			}
		}
		summary.Expenses = own
	}
	return summary, nil
}

func validateExpenseInput(in ExpenseInput) error {
	if strings.TrimSpace(in.Description) == "" || in.Amount == 0 || strings.TrimSpace(in.Category) == "" {
		return invalid("Please fill out all required fields.")
	}
	if in.Amount < 0 {
		return invalid("Amount must be positive.")
	}
	return nil
}

// SaveExpense adds a pending expense submitted by the signed-in person when
// in.ID is empty. Edits keep the status and submitter.
func (s *financeService) SaveExpense(ctx context.Context, tourID string, in ExpenseInput) (domain.Expense, error) {
	if err := validateExpenseInput(in); err != nil {
		return domain.Expense{}, err
	}
	date := in.Date
	if date == "" {
		date = s.ws.today()
	}
	var saved domain.Expense
	err := s.ws.mutate(ctx, "save-expense", map[string]any{"tour_id": tourID, "expense_id": in.ID}, func(st domain.State) (domain.State, []domain.StateKey, error) {
		user, err := currentUser(st)
		if err != nil {
			return st, nil, err
		}
		t, err := resolveTour(st, tourID)
		if err != nil {
			return st, nil, err
		}
		next, err := mutation.UpdateTour(st, t.ID, func(tour domain.Tour) (domain.Tour, error) {
			if in.ID == "" {
				saved = domain.Expense{
					ID:            s.ws.newID("exp"),
					Description:   strings.TrimSpace(in.Description),
					Amount:        in.Amount,
					Date:          date,
					Category:      strings.TrimSpace(in.Category),
					SubmittedByID: user.ID,
					ReceiptURL:    in.ReceiptURL,
					Status:        domain.ExpensePending,
				}
				return mutation.AddExpense(tour, saved), nil
			}
			return mutation.UpdateExpense(tour, in.ID, func(e domain.Expense) (domain.Expense, error) {
				if !access.CanEditExpense(user, e) {
					return e, forbidden("edit expense")
				}
				e.Description = strings.TrimSpace(in.Description)
				e.Amount = in.Amount
				e.Date = date
				e.Category = strings.TrimSpace(in.Category)
				if in.ReceiptURL != "" {
					e.ReceiptURL = in.ReceiptURL
				}
				saved = e
				return e, nil
			})
		})
		return next, changed(domain.KeyTours), err
	})
	if err != nil {
		return domain.Expense{}, err
	}
	return saved, nil
}

func (s *financeService) DeleteExpense(ctx context.Context, tourID, expenseID string) (bool, error) {
	return s.ws.destroy(ctx, "delete-expense", "Are you sure you want to delete this expense?",
		map[string]any{"tour_id": tourID, "expense_id": expenseID},
		func(st domain.State) (domain.State, []domain.StateKey, error) {
			user, err := currentUser(st)
			if err != nil {
				return st, nil, err
			}
			t, err := resolveTour(st, tourID)
			if err != nil {
				return st, nil, err
			}
			for _, e := range t.FinancialsOrEmpty().Expenses {
				if e.ID == expenseID && !access.CanEditExpense(user, e) {
					return st, nil, forbidden("delete expense")
				}
			}
			return mutation.Delete(st, mutation.Target{Kind: mutation.KindExpense, TourID: t.ID, ID: expenseID})
		})
}

// SetExpenseStatus approves or rejects an expense. The reason is only kept
// for rejections.
func (s *financeService) SetExpenseStatus(ctx context.Context, tourID, expenseID string, status domain.ExpenseStatus, reason string) (domain.Expense, error) {
	switch status {
	case domain.ExpensePending, domain.ExpenseApproved, domain.ExpenseRejected:
	default:
		return domain.Expense{}, invalid(fmt.Sprintf("Unknown expense status %q.", status))
	}
	var updated domain.Expense
	fields := map[string]any{"tour_id": tourID, "expense_id": expenseID, "status": string(status)}
	err := s.ws.mutate(ctx, "set-expense-status", fields, func(st domain.State) (domain.State, []domain.StateKey, error) {
		if _, err := requireManager(st, "approve expense"); err != nil {
			return st, nil, err
		}
		t, err := resolveTour(st, tourID)
		if err != nil {
			return st, nil, err
		}
		next, err := mutation.UpdateTour(st, t.ID, func(tour domain.Tour) (domain.Tour, error) {
			tour, err := mutation.SetExpenseStatus(tour, expenseID, status, strings.TrimSpace(reason))
			if err != nil {
				return tour, err
			}
			for _, e := range tour.FinancialsOrEmpty().Expenses {
				if e.ID == expenseID {
					updated = e
				}
			}
			return tour, nil
		})
		return next, changed(domain.KeyTours), err
	})
	if err != nil {
		return domain.Expense{}, err
	}
	return updated, nil
}

func (s *financeService) AddBudgetItem(ctx context.Context, tourID string, in BudgetItemInput) (domain.BudgetItem, error) {
	category := strings.TrimSpace(in.Category)
	if category == "" || in.Amount <= 0 {
		return domain.BudgetItem{}, invalid("Please fill out all required fields.")
	}
	item := domain.BudgetItem{Category: category, Amount: in.Amount}
	err := s.ws.mutate(ctx, "add-budget-item", map[string]any{"tour_id": tourID}, func(st domain.State) (domain.State, []domain.StateKey, error) {
		if _, err := requireManager(st, "edit budget"); err != nil {
			return st, nil, err
		}
		t, err := resolveTour(st, tourID)
		if err != nil {
			return st, nil, err
		}
		item.ID = s.ws.newID("bud")
		next, err := mutation.UpdateTour(st, t.ID, func(tour domain.Tour) (domain.Tour, error) {
			return mutation.AddBudgetItems(tour, item), nil
		})
		return next, changed(domain.KeyTours), err
	})
	if err != nil {
		return domain.BudgetItem{}, err
	}
	return item, nil
}

func (s *financeService) DeleteBudgetItem(ctx context.Context, tourID, itemID string) (bool, error) {
	return s.ws.destroy(ctx, "delete-budget-item", "Are you sure you want to delete this budget item?",
		map[string]any{"tour_id": tourID, "budget_id": itemID},
		func(st domain.State) (domain.State, []domain.StateKey, error) {
			if _, err := requireManager(st, "edit budget"); err != nil {
				return st, nil, err
			}
			t, err := resolveTour(st, tourID)
			if err != nil {
				return st, nil, err
			}
			return mutation.Delete(st, mutation.Target{Kind: mutation.KindBudget, TourID: t.ID, ID: itemID})
		})
}
