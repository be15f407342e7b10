// Package mutation holds the pure state reducers. Every function takes a
// snapshot and returns a new one; input slices and maps are never written.
package mutation

import "github.com/alexanderramin/showrunner/internal/domain"

func appendItem[T any](items []T, item ...T) []T {
	out := make([]T, 0, len(items)+len(item))
	out = append(out, items...)
	return append(out, item...)
}

// replaceByID applies fn to the element whose ID matches and returns a new slice.
func replaceByID[T any](items []T, idOf func(T) string, id string, fn func(T) (T, error)) ([]T, bool, error) {
	for i, it := range items {
		if idOf(it) != id {
			continue
		}
		updated, err := fn(it)
		if err != nil {
			return items, true, err
		}
		out := make([]T, len(items))
		copy(out, items)
		out[i] = updated
		return out, true, nil
	}
	return items, false, nil
}

// removeWhere returns a new slice without the matching elements and the
// number removed.
func removeWhere[T any](items []T, match func(T) bool) ([]T, int) {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if !match(it) {
			out = append(out, it)
		}
	}
	return out, len(items) - len(out)
}

func cloneSchedule(s domain.Schedule) domain.Schedule {
	out := make(domain.Schedule, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

func tourID(t domain.Tour) string              { return t.ID }
func personID(p domain.Person) string          { return p.ID }
func eventID(e domain.ScheduleEvent) string    { return e.ID }
func taskID(t domain.Task) string              { return t.ID }
func expenseID(e domain.Expense) string        { return e.ID }
func budgetID(b domain.BudgetItem) string      { return b.ID }
func sectionID(s domain.WebsiteSection) string { return s.ID }
func campaignID(c domain.EmailCampaign) string { return c.ID }
func formID(f domain.RegistrationForm) string  { return f.ID }
func fieldID(f domain.FormField) string        { return f.ID }
func rfpID(r domain.RFP) string                { return r.ID }
