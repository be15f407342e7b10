package domain

import (
	"errors"
	"fmt"
)

// StateKey names one independently persisted part of the workspace.
type StateKey string

const (
	KeyTours        StateKey = "tours"
	KeyPeople       StateKey = "people"
	KeySchedule     StateKey = "schedule"
	KeySuppliers    StateKey = "suppliers"
	KeyCurrentUser  StateKey = "currentUser"
	KeySelectedTour StateKey = "selectedTour"
)

// StateKeys lists every persisted key in load order.
var StateKeys = []StateKey{KeyTours, KeyPeople, KeySchedule, KeySuppliers, KeyCurrentUser, KeySelectedTour}

// State is one snapshot of the whole workspace. Snapshots are treated as
// immutable: mutations build a new State sharing unchanged collections.
type State struct {
	Tours          []Tour
	People         []Person
	Schedule       Schedule
	Suppliers      []Supplier
	CurrentUserID  string
	SelectedTourID string
}

// FindTour returns the tour with the given ID.
func (s State) FindTour(id string) (Tour, bool) {
	for _, t := range s.Tours {
		if t.ID == id {
			return t, true
		}
	}
	return Tour{}, false
}

// CurrentUser returns the signed-in person, if any.
func (s State) CurrentUser() (Person, bool) {
	if s.CurrentUserID == "" {
		return Person{}, false
	}
	return FindPerson(s.People, s.CurrentUserID)
}

// Events returns the events of one tour.
func (s State) Events(tourID string) []ScheduleEvent {
	return s.Schedule[tourID]
}

// FindSupplier returns the supplier with the given ID.
func (s State) FindSupplier(id string) (Supplier, bool) {
	for _, sup := range s.Suppliers {
		if sup.ID == id {
			return sup, true
		}
	}
	return Supplier{}, false
}

// ErrNotFound reports an ID that does not resolve within its collection.
var ErrNotFound = errors.New("not found")

// NotFound wraps ErrNotFound with the kind and ID that failed to resolve.
func NotFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}
