package domain

import "time"

// Schedule maps a tour ID to its ordered events.
type Schedule map[string][]ScheduleEvent

type EventAssignment struct {
	PersonID   string     `json:"personId"`
	Permission Permission `json:"permission"`
}

type Comment struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"authorId"`
	Timestamp time.Time `json:"timestamp"`
	Text      string    `json:"text"`
}

type Task struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	Completed  bool   `json:"completed"`
	AssignedTo string `json:"assignedTo"`
}

type ScheduleEvent struct {
	ID         string            `json:"id"`
	Date       string            `json:"date"`
	Type       EventType         `json:"type"`
	Title      string            `json:"title"`
	StartTime  string            `json:"startTime"`
	EndTime    string            `json:"endTime"`
	Location   string            `json:"location"`
	Notes      string            `json:"notes,omitempty"`
	AssignedTo []EventAssignment `json:"assignedTo"`
	Comments   []Comment         `json:"comments,omitempty"`
	Tasks      []Task            `json:"tasks,omitempty"`
}

// Assignment returns the assignment of personID on the event, if any.
func (e ScheduleEvent) Assignment(personID string) (EventAssignment, bool) {
	for _, a := range e.AssignedTo {
		if a.PersonID == personID {
			return a, true
		}
	}
	return EventAssignment{}, false
}

// IsAssigned reports whether personID appears in the event's assignment list.
func (e ScheduleEvent) IsAssigned(personID string) bool {
	_, ok := e.Assignment(personID)
	return ok
}

// FindTask returns the task with the given ID.
func (e ScheduleEvent) FindTask(taskID string) (Task, bool) {
	for _, t := range e.Tasks {
		if t.ID == taskID {
			return t, true
		}
	}
	return Task{}, false
}

// FindEvent returns the event with the given ID from a tour's event list.
func FindEvent(events []ScheduleEvent, id string) (ScheduleEvent, bool) {
	for _, e := range events {
		if e.ID == id {
			return e, true
		}
	}
	return ScheduleEvent{}, false
}

// TaskRef addresses one task inside a tour's schedule.
type TaskRef struct {
	EventID string `json:"eventId"`
	TaskID  string `json:"taskId"`
}
