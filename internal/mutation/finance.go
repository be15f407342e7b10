package mutation

import "github.com/alexanderramin/showrunner/internal/domain"

func withFinancials(t domain.Tour, fn func(domain.Financials) domain.Financials) domain.Tour {
	f := fn(t.FinancialsOrEmpty())
	t.Financials = &f
	return t
}

// AddExpense appends an expense to the tour's financials.
func AddExpense(t domain.Tour, e domain.Expense) domain.Tour {
	return withFinancials(t, func(f domain.Financials) domain.Financials {
		f.Expenses = appendItem(f.Expenses, e)
		return f
	})
}

// UpdateExpense replaces the expense returned by fn.
func UpdateExpense(t domain.Tour, id string, fn func(domain.Expense) (domain.Expense, error)) (domain.Tour, error) {
	f := t.FinancialsOrEmpty()
	expenses, found, err := replaceByID(f.Expenses, expenseID, id, fn)
	if !found {
		return t, domain.NotFound("expense", id)
	}
	if err != nil {
		return t, err
	}
	f.Expenses = expenses
	t.Financials = &f
	return t, nil
}

// SetExpenseStatus moves an expense to approved or rejected. The rejection
// reason is kept only for rejections.
func SetExpenseStatus(t domain.Tour, id string, status domain.ExpenseStatus, reason string) (domain.Tour, error) {
	return UpdateExpense(t, id, func(e domain.Expense) (domain.Expense, error) {
		e.Status = status
		e.RejectionReason = ""
		if status == domain.ExpenseRejected {
			e.RejectionReason = reason
		}
		return e, nil
	})
}

// AddBudgetItems appends budget lines in order.
func AddBudgetItems(t domain.Tour, items ...domain.BudgetItem) domain.Tour {
	return withFinancials(t, func(f domain.Financials) domain.Financials {
		f.Budget = appendItem(f.Budget, items...)
		return f
	})
}
