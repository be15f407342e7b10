package views

import (
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/showrunner/internal/access"
	"github.com/alexanderramin/showrunner/internal/domain"
)

// DayGroup holds the events that share one date string.
type DayGroup struct {
	Date   string
	Events []domain.ScheduleEvent
}

// GroupByDate groups events by exact date string and orders the groups by
// parsed date. Unparseable dates sort last. Event order within a day is kept.
func GroupByDate(events []domain.ScheduleEvent) []DayGroup {
	index := make(map[string]int)
	var groups []DayGroup
	for _, e := range events {
		i, ok := index[e.Date]
		if !ok {
			i = len(groups)
			index[e.Date] = i
			groups = append(groups, DayGroup{Date: e.Date})
		}
		groups[i].Events = append(groups[i].Events, e)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return dateBefore(groups[i].Date, groups[j].Date)
	})
	return groups
}

// VisibleEvents is the part of a tour's schedule the person may see:
// everything for a Tour Manager, otherwise only events they are assigned to.
func VisibleEvents(p domain.Person, events []domain.ScheduleEvent) []domain.ScheduleEvent {
	if access.IsManager(p) {
		return events
	}
	var out []domain.ScheduleEvent
	for _, e := range events {
		if access.CanSeeEvent(p, e) {
			out = append(out, e)
		}
	}
	return out
}

// DaySheet is the person's visible events on one date.
func DaySheet(p domain.Person, events []domain.ScheduleEvent, date string) []domain.ScheduleEvent {
	var out []domain.ScheduleEvent
	for _, e := range VisibleEvents(p, events) {
		if e.Date == date {
			out = append(out, e)
		}
	}
	return out
}

// TravelEvents lists the travel legs of a schedule by date.
func TravelEvents(events []domain.ScheduleEvent) []domain.ScheduleEvent {
	var out []domain.ScheduleEvent
	for _, e := range events {
		if e.Type == domain.EventTravel {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return dateBefore(out[i].Date, out[j].Date) })
	return out
}

// TourCrew lists the people assigned to at least one event of the tour, in
// roster order. Dangling assignments are skipped.
func TourCrew(people []domain.Person, events []domain.ScheduleEvent) []domain.Person {
	ids := make(map[string]bool)
	for _, e := range events {
		for _, a := range e.AssignedTo {
			ids[a.PersonID] = true
		}
	}
	var out []domain.Person
	for _, p := range people {
		if ids[p.ID] {
			out = append(out, p)
		}
	}
	return out
}

// CrewSort is the manifest ordering.
type CrewSort string

const (
	SortByName CrewSort = "name"
	SortByRole CrewSort = "role"
)

// SortCrew orders people by name, or by role then name.
func SortCrew(people []domain.Person, by CrewSort) []domain.Person {
	out := append([]domain.Person(nil), people...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if by == SortByRole && a.Role != b.Role {
			return a.Role < b.Role
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
	return out
}

// AssigneeName resolves a person ID for display.
func AssigneeName(people []domain.Person, id string) string {
	return domain.PersonName(people, id)
}

func dateBefore(a, b string) bool {
	ta, errA := time.Parse(domain.DateLayout, a)
	tb, errB := time.Parse(domain.DateLayout, b)
	switch {
	case errA != nil && errB != nil:
		return a < b
	case errA != nil:
		return false
	case errB != nil:
		return true
	}
	return ta.Before(tb)
}
