package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/showrunner/internal/access"
	"github.com/alexanderramin/showrunner/internal/domain"
	"github.com/alexanderramin/showrunner/internal/mutation"
	"github.com/alexanderramin/showrunner/internal/views"
)

type taskService struct {
	ws *Workspace
}

func NewTaskService(ws *Workspace) TaskService {
	return &taskService{ws: ws}
}

// List returns the tour's tasks the signed-in person can see, sorted by
// event date.
func (s *taskService) List(_ context.Context, tourID string, filter views.TaskFilter) ([]views.TourTask, error) {
	st := s.ws.Snapshot()
	user, err := currentUser(st)
	if err != nil {
		return nil, err
	}
	t, err := resolveTour(st, tourID)
	if err != nil {
		return nil, err
	}
	var visible []domain.ScheduleEvent
	for _, e := range st.Events(t.ID) {
		e.Tasks = views.VisibleEventTasks(user, e)
		visible = append(visible, e)
	}
	return views.TourTasks(visible, filter), nil
}

// taskEvent resolves the event behind a task operation and checks the
// signed-in person against allow.
func taskEvent(st domain.State, tourID, eventID string, allow func(domain.Person, domain.ScheduleEvent) bool) (string, domain.ScheduleEvent, error) {
	user, err := currentUser(st)
	if err != nil {
		return "", domain.ScheduleEvent{}, err
	}
	t, err := resolveTour(st, tourID)
	if err != nil {
		return "", domain.ScheduleEvent{}, err
	}
	e, ok := domain.FindEvent(st.Events(t.ID), eventID)
	if !ok {
		return "", domain.ScheduleEvent{}, domain.NotFound("event", eventID)
	}
	if !allow(user, e) {
		return "", domain.ScheduleEvent{}, forbidden("manage tasks")
	}
	return t.ID, e, nil
}

func checkAssignee(e domain.ScheduleEvent, personID string) error {
	if !e.IsAssigned(personID) {
		return invalid(fmt.Sprintf("%s is not assigned to this event.", personID))
	}
	return nil
}

func (s *taskService) Add(ctx context.Context, tourID, eventID string, in TaskInput) (domain.Task, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" || in.AssignedTo == "" {
		return domain.Task{}, invalid("Please enter task text and select an assignee.")
	}
	var task domain.Task
	err := s.ws.mutate(ctx, "add-task", map[string]any{"tour_id": tourID, "event_id": eventID}, func(st domain.State) (domain.State, []domain.StateKey, error) {
		tid, e, err := taskEvent(st, tourID, eventID, access.CanManageTasks)
		if err != nil {
			return st, nil, err
		}
		if err := checkAssignee(e, in.AssignedTo); err != nil {
			return st, nil, err
		}
		task = domain.Task{ID: s.ws.newID("task"), Text: text, AssignedTo: in.AssignedTo}
		next, err := mutation.AddTask(st, tid, eventID, task)
		return next, changed(domain.KeySchedule), err
	})
	if err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

// Update applies in to one task. Task managers may change anything; the
// task's assignee may only change its completed flag.
func (s *taskService) Update(ctx context.Context, tourID string, ref domain.TaskRef, in TaskUpdate) (domain.Task, error) {
	if in.Text != nil && strings.TrimSpace(*in.Text) == "" {
		return domain.Task{}, invalid("Please enter task text and select an assignee.")
	}
	if in.AssignedTo != nil && *in.AssignedTo == "" {
		return domain.Task{}, invalid("Please enter task text and select an assignee.")
	}
	completionOnly := in.Text == nil && in.AssignedTo == nil

	var updated domain.Task
	fields := map[string]any{"tour_id": tourID, "event_id": ref.EventID, "task_id": ref.TaskID}
	err := s.ws.mutate(ctx, "update-task", fields, func(st domain.State) (domain.State, []domain.StateKey, error) {
		allow := access.CanManageTasks
		if completionOnly {
			allow = func(p domain.Person, e domain.ScheduleEvent) bool {
				t, ok := e.FindTask(ref.TaskID)
				return !ok || access.CanCompleteTask(p, e, t)
			}
		}
		tid, e, err := taskEvent(st, tourID, ref.EventID, allow)
		if err != nil {
			return st, nil, err
		}
		next, err := mutation.UpdateTask(st, tid, ref, func(t domain.Task) (domain.Task, error) {
			if in.Text != nil {
				t.Text = strings.TrimSpace(*in.Text)
			}
			if in.AssignedTo != nil && *in.AssignedTo != t.AssignedTo {
				if err := checkAssignee(e, *in.AssignedTo); err != nil {
					return t, err
				}
				t.AssignedTo = *in.AssignedTo
			}
			if in.Completed != nil {
				t.Completed = *in.Completed
			}
			updated = t
			return t, nil
		})
		return next, changed(domain.KeySchedule), err
	})
	if err != nil {
		return domain.Task{}, err
	}
	return updated, nil
}

func (s *taskService) Delete(ctx context.Context, tourID string, ref domain.TaskRef) (bool, error) {
	fields := map[string]any{"tour_id": tourID, "event_id": ref.EventID, "task_id": ref.TaskID}
	return s.ws.destroy(ctx, "delete-task", "Are you sure you want to delete this task?", fields,
		func(st domain.State) (domain.State, []domain.StateKey, error) {
			tid, _, err := taskEvent(st, tourID, ref.EventID, access.CanManageTasks)
			if err != nil {
				return st, nil, err
			}
			return mutation.Delete(st, mutation.Target{Kind: mutation.KindTask, TourID: tid, ParentID: ref.EventID, ID: ref.TaskID})
		})
}

// authorizeRefs checks every resolvable ref against allow. Dangling refs are
// skipped, matching the bulk reducers.
func authorizeRefs(st domain.State, tourID string, refs []domain.TaskRef, allow func(domain.Person, domain.ScheduleEvent, domain.Task) bool) (string, error) {
	user, err := currentUser(st)
	if err != nil {
		return "", err
	}
	t, err := resolveTour(st, tourID)
	if err != nil {
		return "", err
	}
	events := st.Events(t.ID)
	for _, ref := range refs {
		e, ok := domain.FindEvent(events, ref.EventID)
		if !ok {
			continue
		}
		task, ok := e.FindTask(ref.TaskID)
		if !ok {
			continue
		}
		if !allow(user, e, task) {
			return "", forbidden("bulk task update")
		}
	}
	return t.ID, nil
}

func (s *taskService) BulkToggle(ctx context.Context, tourID string, refs []domain.TaskRef) (bool, error) {
	if len(refs) == 0 {
		return false, invalid("Please select at least one task.")
	}
	var target bool
	err := s.ws.mutate(ctx, "bulk-toggle-tasks", map[string]any{"tour_id": tourID, "count": len(refs)}, func(st domain.State) (domain.State, []domain.StateKey, error) {
		tid, err := authorizeRefs(st, tourID, refs, access.CanCompleteTask)
		if err != nil {
			return st, nil, err
		}
		target = mutation.BulkToggleTarget(mutation.SelectTasks(st, tid, refs))
		return mutation.SetTasksCompleted(st, tid, refs, target), changed(domain.KeySchedule), nil
	})
	return target, err
}

func (s *taskService) BulkDelete(ctx context.Context, tourID string, refs []domain.TaskRef) (int, error) {
	if len(refs) == 0 {
		return 0, invalid("Please select at least one task.")
	}
	var removed int
	reduce := func(st domain.State) (domain.State, []domain.StateKey, error) {
		tid, err := authorizeRefs(st, tourID, refs, func(p domain.Person, e domain.ScheduleEvent, _ domain.Task) bool {
			return access.CanManageTasks(p, e)
		})
		if err != nil {
			return st, nil, err
		}
		next, n := mutation.DeleteTasks(st, tid, refs)
		removed = n
		return next, changed(domain.KeySchedule), nil
	}
	prompt := fmt.Sprintf("Are you sure you want to delete %d task(s)? This cannot be undone.", len(refs))
	ok, err := s.ws.destroy(ctx, "bulk-delete-tasks", prompt, map[string]any{"tour_id": tourID, "count": len(refs)}, reduce)
	if err != nil || !ok {
		return 0, err
	}
	return removed, nil
}
