package mutation

import "github.com/alexanderramin/showrunner/internal/domain"

// AddEvent appends an event to a tour's schedule, creating the entry if needed.
func AddEvent(st domain.State, tourID string, e domain.ScheduleEvent) domain.State {
	if e.Comments == nil {
		e.Comments = []domain.Comment{}
	}
	if e.Tasks == nil {
		e.Tasks = []domain.Task{}
	}
	st.Schedule = cloneSchedule(st.Schedule)
	st.Schedule[tourID] = appendItem(st.Schedule[tourID], e)
	return st
}

// UpdateEvent replaces the event returned by fn.
func UpdateEvent(st domain.State, tourID, id string, fn func(domain.ScheduleEvent) (domain.ScheduleEvent, error)) (domain.State, error) {
	events, found, err := replaceByID(st.Schedule[tourID], eventID, id, fn)
	if !found {
		return st, domain.NotFound("event", id)
	}
	if err != nil {
		return st, err
	}
	st.Schedule = cloneSchedule(st.Schedule)
	st.Schedule[tourID] = events
	return st, nil
}

// EventDetails is the editable part of an event. Comments and tasks are
// never touched by an event edit.
type EventDetails struct {
	Date       string
	Type       domain.EventType
	Title      string
	StartTime  string
	EndTime    string
	Location   string
	Notes      string
	AssignedTo []domain.EventAssignment
}

// ApplyEventDetails overwrites the editable fields of e.
func ApplyEventDetails(e domain.ScheduleEvent, d EventDetails) domain.ScheduleEvent {
	e.Date = d.Date
	e.Type = d.Type
	e.Title = d.Title
	e.StartTime = d.StartTime
	e.EndTime = d.EndTime
	e.Location = d.Location
	e.Notes = d.Notes
	e.AssignedTo = appendItem[domain.EventAssignment](nil, d.AssignedTo...)
	return e
}

// AddComment appends a comment. Comments are never edited or removed.
func AddComment(st domain.State, tourID, eventID string, c domain.Comment) (domain.State, error) {
	return UpdateEvent(st, tourID, eventID, func(e domain.ScheduleEvent) (domain.ScheduleEvent, error) {
		e.Comments = appendItem(e.Comments, c)
		return e, nil
	})
}

// AddTask appends a task to an event.
func AddTask(st domain.State, tourID, eventID string, t domain.Task) (domain.State, error) {
	return UpdateEvent(st, tourID, eventID, func(e domain.ScheduleEvent) (domain.ScheduleEvent, error) {
		e.Tasks = appendItem(e.Tasks, t)
		return e, nil
	})
}

// UpdateTask replaces one task. Sibling tasks keep their identity and the
// task ID is restored if fn changed it.
func UpdateTask(st domain.State, tourID string, ref domain.TaskRef, fn func(domain.Task) (domain.Task, error)) (domain.State, error) {
	return UpdateEvent(st, tourID, ref.EventID, func(e domain.ScheduleEvent) (domain.ScheduleEvent, error) {
		tasks, found, err := replaceByID(e.Tasks, taskID, ref.TaskID, func(t domain.Task) (domain.Task, error) {
			updated, err := fn(t)
			updated.ID = t.ID
			return updated, err
		})
		if !found {
			return e, domain.NotFound("task", ref.TaskID)
		}
		if err != nil {
			return e, err
		}
		e.Tasks = tasks
		return e, nil
	})
}

// BulkToggleTarget is the completion state a bulk toggle moves every selected
// task to: false only when every selected task is already complete.
func BulkToggleTarget(selected []domain.Task) bool {
	if len(selected) == 0 {
		return true
	}
	for _, t := range selected {
		if !t.Completed {
			return true
		}
	}
	return false
}

// SelectTasks resolves refs against a tour's schedule, skipping dangling ones.
func SelectTasks(st domain.State, tourID string, refs []domain.TaskRef) []domain.Task {
	events := st.Schedule[tourID]
	var out []domain.Task
	for _, ref := range refs {
		e, ok := domain.FindEvent(events, ref.EventID)
		if !ok {
			continue
		}
		if t, ok := e.FindTask(ref.TaskID); ok {
			out = append(out, t)
		}
	}
	return out
}

// SetTasksCompleted sets the completed flag on every referenced task.
// Dangling refs are ignored.
func SetTasksCompleted(st domain.State, tourID string, refs []domain.TaskRef, completed bool) domain.State {
	events, ok := st.Schedule[tourID]
	if !ok {
		return st
	}
	byEvent := groupRefs(refs)
	out := make([]domain.ScheduleEvent, len(events))
	for i, e := range events {
		ids, ok := byEvent[e.ID]
		if ok {
			tasks := make([]domain.Task, len(e.Tasks))
			for j, t := range e.Tasks {
				if ids[t.ID] {
					t.Completed = completed
				}
				tasks[j] = t
			}
			e.Tasks = tasks
		}
		out[i] = e
	}
	st.Schedule = cloneSchedule(st.Schedule)
	st.Schedule[tourID] = out
	return st
}

func groupRefs(refs []domain.TaskRef) map[string]map[string]bool {
	out := make(map[string]map[string]bool)
	for _, r := range refs {
		if out[r.EventID] == nil {
			out[r.EventID] = make(map[string]bool)
		}
		out[r.EventID][r.TaskID] = true
	}
	return out
}
