package mutation

import "github.com/alexanderramin/showrunner/internal/domain"

// AddPerson appends a person to the global roster.
func AddPerson(st domain.State, p domain.Person) domain.State {
	st.People = appendItem(st.People, p)
	return st
}

// UpdatePerson replaces the person returned by fn.
func UpdatePerson(st domain.State, id string, fn func(domain.Person) (domain.Person, error)) (domain.State, error) {
	people, found, err := replaceByID(st.People, personID, id, fn)
	if !found {
		return st, domain.NotFound("person", id)
	}
	if err != nil {
		return st, err
	}
	st.People = people
	return st, nil
}

// FindPersonByEmail matches emails case-insensitively.
func FindPersonByEmail(people []domain.Person, email string) (domain.Person, bool) {
	for _, p := range people {
		if p.HasEmail(email) {
			return p, true
		}
	}
	return domain.Person{}, false
}

// StripAssignments removes personID from every event assignment list of one
// tour. The person record and other tours are untouched.
func StripAssignments(st domain.State, tourID, personID string) domain.State {
	events, ok := st.Schedule[tourID]
	if !ok {
		return st
	}
	out := make([]domain.ScheduleEvent, len(events))
	for i, e := range events {
		if e.IsAssigned(personID) {
			e.AssignedTo, _ = removeWhere(e.AssignedTo, func(a domain.EventAssignment) bool {
				return a.PersonID == personID
			})
		}
		out[i] = e
	}
	st.Schedule = cloneSchedule(st.Schedule)
	st.Schedule[tourID] = out
	return st
}
