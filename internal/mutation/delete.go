package mutation

import (
	"fmt"

	"github.com/alexanderramin/showrunner/internal/domain"
)

// Kind names a deletable entity.
type Kind string

const (
	KindTour     Kind = "tour"
	KindEvent    Kind = "event"
	KindTask     Kind = "task"
	KindExpense  Kind = "expense"
	KindBudget   Kind = "budget"
	KindSection  Kind = "section"
	KindCampaign Kind = "campaign"
	KindForm     Kind = "form"
	KindField    Kind = "field"
	KindAttendee Kind = "attendee"
)

// Target addresses one entity. TourID scopes everything but tours; ParentID
// is the event of a task or the form of a field.
type Target struct {
	Kind     Kind
	TourID   string
	ParentID string
	ID       string
}

// relation is a dependent collection cleaned up when its owner is deleted.
type relation struct {
	name  string
	key   domain.StateKey
	strip func(domain.State, Target) domain.State
}

type deleteRule struct {
	key      domain.StateKey
	remove   func(domain.State, Target) (domain.State, error)
	cascades []relation
}

var deleteRules = map[Kind]deleteRule{
	KindTour: {
		key:    domain.KeyTours,
		remove: removeTour,
		cascades: []relation{
			{name: "schedule", key: domain.KeySchedule, strip: func(st domain.State, t Target) domain.State {
				if _, ok := st.Schedule[t.ID]; !ok {
					return st
				}
				st.Schedule = cloneSchedule(st.Schedule)
				delete(st.Schedule, t.ID)
				return st
			}},
			{name: "selection", key: domain.KeySelectedTour, strip: func(st domain.State, t Target) domain.State {
				if st.SelectedTourID == t.ID {
					st.SelectedTourID = ""
				}
				return st
			}},
		},
	},
	KindEvent: {key: domain.KeySchedule, remove: removeEvent},
	KindTask:  {key: domain.KeySchedule, remove: removeTask},
	KindExpense: {key: domain.KeyTours, remove: inTour(func(tour domain.Tour, t Target) (domain.Tour, int) {
		f := tour.FinancialsOrEmpty()
		var n int
		f.Expenses, n = removeWhere(f.Expenses, func(e domain.Expense) bool { return e.ID == t.ID })
		tour.Financials = &f
		return tour, n
	})},
	KindBudget: {key: domain.KeyTours, remove: inTour(func(tour domain.Tour, t Target) (domain.Tour, int) {
		f := tour.FinancialsOrEmpty()
		var n int
		f.Budget, n = removeWhere(f.Budget, func(b domain.BudgetItem) bool { return b.ID == t.ID })
		tour.Financials = &f
		return tour, n
	})},
	KindSection: {key: domain.KeyTours, remove: inTour(func(tour domain.Tour, t Target) (domain.Tour, int) {
		var n int
		tour.Website, n = removeWhere(tour.Website, func(s domain.WebsiteSection) bool { return s.ID == t.ID })
		return tour, n
	})},
	KindCampaign: {key: domain.KeyTours, remove: inTour(func(tour domain.Tour, t Target) (domain.Tour, int) {
		var n int
		tour.Campaigns, n = removeWhere(tour.Campaigns, func(c domain.EmailCampaign) bool { return c.ID == t.ID })
		return tour, n
	})},
	KindForm: {
		key: domain.KeyTours,
		remove: inTour(func(tour domain.Tour, t Target) (domain.Tour, int) {
			r := tour.RegistrationOrEmpty()
			var n int
			r.Forms, n = removeWhere(r.Forms, func(f domain.RegistrationForm) bool { return f.ID == t.ID })
			tour.Registration = &r
			return tour, n
		}),
		cascades: []relation{
			{name: "attendees", key: domain.KeyTours, strip: func(st domain.State, t Target) domain.State {
				next, _ := UpdateTour(st, t.TourID, func(tour domain.Tour) (domain.Tour, error) {
					r := tour.RegistrationOrEmpty()
					r.Attendees, _ = removeWhere(r.Attendees, func(a domain.Attendee) bool { return a.FormID == t.ID })
					tour.Registration = &r
					return tour, nil
				})
				return next
			}},
		},
	},
	KindField: {key: domain.KeyTours, remove: func(st domain.State, t Target) (domain.State, error) {
		return UpdateTour(st, t.TourID, func(tour domain.Tour) (domain.Tour, error) {
			return UpdateForm(tour, t.ParentID, func(f domain.RegistrationForm) (domain.RegistrationForm, error) {
				var n int
				f.Fields, n = removeWhere(f.Fields, func(ff domain.FormField) bool { return ff.ID == t.ID })
				if n == 0 {
					return f, domain.NotFound("field", t.ID)
				}
				return f, nil
			})
		})
	}},
	KindAttendee: {key: domain.KeyTours, remove: inTour(func(tour domain.Tour, t Target) (domain.Tour, int) {
		r := tour.RegistrationOrEmpty()
		var n int
		r.Attendees, n = removeWhere(r.Attendees, func(a domain.Attendee) bool { return a.ID == t.ID })
		tour.Registration = &r
		return tour, n
	})},
}

// Delete removes the target and everything registered as depending on it.
// It returns the state keys that changed.
func Delete(st domain.State, t Target) (domain.State, []domain.StateKey, error) {
	rule, ok := deleteRules[t.Kind]
	if !ok {
		return st, nil, fmt.Errorf("delete: unknown kind %q", t.Kind)
	}
	next, err := rule.remove(st, t)
	if err != nil {
		return st, nil, err
	}
	keys := []domain.StateKey{rule.key}
	for _, rel := range rule.cascades {
		next = rel.strip(next, t)
		keys = appendKey(keys, rel.key)
	}
	return next, keys, nil
}

// Cascades lists the dependent collections removed along with kind.
func Cascades(kind Kind) []string {
	rule := deleteRules[kind]
	names := make([]string, 0, len(rule.cascades))
	for _, rel := range rule.cascades {
		names = append(names, rel.name)
	}
	return names
}

// DeleteTasks removes every referenced task from a tour's schedule.
// Dangling refs are ignored; the count removed is returned.
func DeleteTasks(st domain.State, tourID string, refs []domain.TaskRef) (domain.State, int) {
	events, ok := st.Schedule[tourID]
	if !ok {
		return st, 0
	}
	byEvent := groupRefs(refs)
	out := make([]domain.ScheduleEvent, len(events))
	total := 0
	for i, e := range events {
		if ids, ok := byEvent[e.ID]; ok {
			var n int
			e.Tasks, n = removeWhere(e.Tasks, func(t domain.Task) bool { return ids[t.ID] })
			total += n
		}
		out[i] = e
	}
	st.Schedule = cloneSchedule(st.Schedule)
	st.Schedule[tourID] = out
	return st, total
}

func removeTour(st domain.State, t Target) (domain.State, error) {
	tours, n := removeWhere(st.Tours, func(tour domain.Tour) bool { return tour.ID == t.ID })
	if n == 0 {
		return st, domain.NotFound("tour", t.ID)
	}
	st.Tours = tours
	return st, nil
}

func removeEvent(st domain.State, t Target) (domain.State, error) {
	events, n := removeWhere(st.Schedule[t.TourID], func(e domain.ScheduleEvent) bool { return e.ID == t.ID })
	if n == 0 {
		return st, domain.NotFound("event", t.ID)
	}
	st.Schedule = cloneSchedule(st.Schedule)
	st.Schedule[t.TourID] = events
	return st, nil
}

func removeTask(st domain.State, t Target) (domain.State, error) {
	return UpdateEvent(st, t.TourID, t.ParentID, func(e domain.ScheduleEvent) (domain.ScheduleEvent, error) {
		var n int
		e.Tasks, n = removeWhere(e.Tasks, func(task domain.Task) bool { return task.ID == t.ID })
		if n == 0 {
			return e, domain.NotFound("task", t.ID)
		}
		return e, nil
	})
}

// inTour lifts a tour-level removal into a state reducer. A removal that
// matched nothing reports the target as not found.
func inTour(fn func(domain.Tour, Target) (domain.Tour, int)) func(domain.State, Target) (domain.State, error) {
	return func(st domain.State, t Target) (domain.State, error) {
		return UpdateTour(st, t.TourID, func(tour domain.Tour) (domain.Tour, error) {
			next, n := fn(tour, t)
			if n == 0 {
				return tour, domain.NotFound(string(t.Kind), t.ID)
			}
			return next, nil
		})
	}
}

func appendKey(keys []domain.StateKey, k domain.StateKey) []domain.StateKey {
	for _, existing := range keys {
		if existing == k {
			return keys
		}
	}
	return append(keys, k)
}
