// Package views computes read-only projections of the workspace. Nothing here
// is persisted; every view is rebuilt from the snapshot it is given.
package views

import (
	"sort"
	"time"

	"github.com/alexanderramin/showrunner/internal/domain"
)

// ExpenseFilter narrows the expenses a budget summary considers. Empty
// fields and the category "all" match everything. Dates are inclusive.
type ExpenseFilter struct {
	From     string
	To       string
	Category string
}

func (f ExpenseFilter) matches(e domain.Expense) bool {
	if f.Category != "" && f.Category != "all" && e.Category != f.Category {
		return false
	}
	if f.From == "" && f.To == "" {
		return true
	}
	date, err := time.Parse(domain.DateLayout, e.Date)
	if err != nil {
		return false
	}
	if from, err := time.Parse(domain.DateLayout, f.From); err == nil && date.Before(from) {
		return false
	}
	if to, err := time.Parse(domain.DateLayout, f.To); err == nil && date.After(to) {
		return false
	}
	return true
}

// CategoryRollup is the budget and approved spend of one category.
type CategoryRollup struct {
	Category string
	Budget   float64
	Spent    float64
}

// Remaining is budget minus spend, floored at zero.
func (c CategoryRollup) Remaining() float64 {
	if c.Spent > c.Budget {
		return 0
	}
	return c.Budget - c.Spent
}

// BudgetSummary is the finance dashboard of one tour.
type BudgetSummary struct {
	TotalBudget        float64
	TotalApprovedSpend float64
	Remaining          float64
	PendingTotal       float64
	PendingCount       int
	Expenses           []domain.Expense
	ByCategory         []CategoryRollup
}

// SummarizeBudget totals a tour's financials. Only approved expenses count
// against the budget; pending expenses are reported separately. The budget
// total ignores the expense filter.
func SummarizeBudget(f domain.Financials, filter ExpenseFilter) BudgetSummary {
	var s BudgetSummary
	rollup := make(map[string]*CategoryRollup)
	var order []string
	category := func(name string) *CategoryRollup {
		c, ok := rollup[name]
		if !ok {
			c = &CategoryRollup{Category: name}
			rollup[name] = c
			order = append(order, name)
		}
		return c
	}

	for _, b := range f.Budget {
		s.TotalBudget += b.Amount
		category(b.Category).Budget += b.Amount
	}
	for _, e := range f.Expenses {
		if !filter.matches(e) {
			continue
		}
		s.Expenses = append(s.Expenses, e)
		switch e.Status {
		case domain.ExpenseApproved:
			s.TotalApprovedSpend += e.Amount
			category(e.Category).Spent += e.Amount
		case domain.ExpensePending:
			s.PendingTotal += e.Amount
			s.PendingCount++
		}
	}
	s.Remaining = s.TotalBudget - s.TotalApprovedSpend

	for _, name := range order {
		s.ByCategory = append(s.ByCategory, *rollup[name])
	}
	return s
}

// BudgetCategories lists the distinct budget categories in first-seen order.
func BudgetCategories(f domain.Financials) []string {
	seen := make(map[string]bool)
	var out []string
	for _, b := range f.Budget {
		if !seen[b.Category] {
			seen[b.Category] = true
			out = append(out, b.Category)
		}
	}
	return out
}

// ExpensesNewestFirst returns the expenses in reverse entry order.
func ExpensesNewestFirst(expenses []domain.Expense) []domain.Expense {
	out := make([]domain.Expense, len(expenses))
	for i, e := range expenses {
		out[len(expenses)-1-i] = e
	}
	return out
}

// PendingApprovals lists pending expenses across tours, oldest date first.
func PendingApprovals(tours []domain.Tour) []TourExpense {
	var out []TourExpense
	for _, t := range tours {
		for _, e := range t.FinancialsOrEmpty().Expenses {
			if e.Status == domain.ExpensePending {
				out = append(out, TourExpense{TourID: t.ID, TourName: t.TourName, Expense: e})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return dateBefore(out[i].Expense.Date, out[j].Expense.Date)
	})
	return out
}

// TourExpense pairs an expense with the tour it belongs to.
type TourExpense struct {
	TourID   string
	TourName string
	Expense  domain.Expense
}
