// Package access decides which operations a signed-in person may invoke.
//
// Two independent checks exist: the global role gate (Tour Manager) and the
// per-event permission taken from the event's assignment list. Neither implies
// the other.
package access

import "github.com/alexanderramin/showrunner/internal/domain"

// IsManager reports whether the person holds the Tour Manager role.
func IsManager(p domain.Person) bool {
	return p.IsManager()
}

// EventPermission is the person's permission on the event, read when unassigned.
func EventPermission(p domain.Person, e domain.ScheduleEvent) domain.Permission {
	if a, ok := e.Assignment(p.ID); ok && a.Permission.Valid() {
		return a.Permission
	}
	return domain.PermissionRead
}

// CanManageTasks reports whether the person may create, edit or delete any
// task on the event. Only write permission on the event grants it.
func CanManageTasks(p domain.Person, e domain.ScheduleEvent) bool {
	return EventPermission(p, e) == domain.PermissionWrite
}

// CanCompleteTask reports whether the person may flip the completed flag of
// one task: task managers, and the task's own assignee.
func CanCompleteTask(p domain.Person, e domain.ScheduleEvent, t domain.Task) bool {
	return CanManageTasks(p, e) || (t.AssignedTo == p.ID && e.IsAssigned(p.ID))
}

// CanComment reports whether the person may add a comment to the event.
func CanComment(p domain.Person, e domain.ScheduleEvent) bool {
	return EventPermission(p, e) == domain.PermissionWrite
}

// CanEditExpense reports whether the person may edit or delete the expense.
func CanEditExpense(p domain.Person, e domain.Expense) bool {
	if IsManager(p) {
		return true
	}
	return e.SubmittedByID == p.ID && e.Status == domain.ExpensePending
}

// CanSeeEvent reports whether the event appears in the person's schedule.
func CanSeeEvent(p domain.Person, e domain.ScheduleEvent) bool {
	return IsManager(p) || e.IsAssigned(p.ID)
}

// CanSeeTask reports whether the task is listed for the person on the event:
// every task with write permission, otherwise only their own.
func CanSeeTask(p domain.Person, e domain.ScheduleEvent, t domain.Task) bool {
	return CanManageTasks(p, e) || t.AssignedTo == p.ID
}
