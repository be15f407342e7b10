package views

import (
	"sort"

	"github.com/alexanderramin/showrunner/internal/access"
	"github.com/alexanderramin/showrunner/internal/domain"
)

// TourTask is a task with the event it belongs to.
type TourTask struct {
	domain.Task
	EventID    string
	EventTitle string
	EventDate  string
}

// Ref addresses the task for bulk operations.
func (t TourTask) Ref() domain.TaskRef {
	return domain.TaskRef{EventID: t.EventID, TaskID: t.ID}
}

// TaskStatus filters tasks by completion.
type TaskStatus string

const (
	TaskStatusAll       TaskStatus = "all"
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
)

// TaskFilter selects tasks by assignee and status. Empty values and "all"
// match everything.
type TaskFilter struct {
	AssigneeID string
	Status     TaskStatus
}

func (f TaskFilter) matches(t domain.Task) bool {
	if f.AssigneeID != "" && f.AssigneeID != FilterAll && t.AssignedTo != f.AssigneeID {
		return false
	}
	switch f.Status {
	case TaskStatusPending:
		return !t.Completed
	case TaskStatusCompleted:
		return t.Completed
	}
	return true
}

// TourTasks flattens every task of a schedule, filters it and orders the
// result by event date. Ties keep schedule order.
func TourTasks(events []domain.ScheduleEvent, filter TaskFilter) []TourTask {
	var out []TourTask
	for _, e := range events {
		for _, t := range e.Tasks {
			if !filter.matches(t) {
				continue
			}
			out = append(out, TourTask{Task: t, EventID: e.ID, EventTitle: e.Title, EventDate: e.Date})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return dateBefore(out[i].EventDate, out[j].EventDate) })
	return out
}

// TaskRefs lists the refs of a task view, in view order.
func TaskRefs(tasks []TourTask) []domain.TaskRef {
	refs := make([]domain.TaskRef, len(tasks))
	for i, t := range tasks {
		refs[i] = t.Ref()
	}
	return refs
}

// VisibleEventTasks is the task list of one event as the person sees it:
// every task with write permission on the event, otherwise their own.
func VisibleEventTasks(p domain.Person, e domain.ScheduleEvent) []domain.Task {
	var out []domain.Task
	for _, t := range e.Tasks {
		if access.CanSeeTask(p, e, t) {
			out = append(out, t)
		}
	}
	return out
}
