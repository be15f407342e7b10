package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/showrunner/internal/domain"
	"github.com/alexanderramin/showrunner/internal/mutation"
	"go.uber.org/zap"
)

const (
	riderEventTitle = "Action Items from Rider Import"
	riderEventNotes = "These tasks and budget items were automatically generated by the AI Rider Import feature."
)

type riderService struct {
	ws     *Workspace
	parser RiderParser
}

func NewRiderService(ws *Workspace, parser RiderParser) RiderService {
	return &riderService{ws: ws, parser: parser}
}

// Process runs the parser outside the workspace lock. Any parser failure is
// shown through the Notifier and turned into an empty result.
func (s *riderService) Process(ctx context.Context, text string) (domain.RiderParseResult, error) {
	if strings.TrimSpace(text) == "" {
		return domain.RiderParseResult{}, invalid("Please paste the rider text.")
	}
	st := s.ws.Snapshot()
	if _, err := requireManager(st, "import rider"); err != nil {
		return domain.RiderParseResult{}, err
	}

	startedAt := s.ws.now()
	result, err := s.parser.Parse(ctx, text, st.People)
	s.ws.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "process-rider",
		StartedAt: startedAt,
		Duration:  s.ws.now().Sub(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    map[string]any{"tasks": len(result.Tasks), "budget_items": len(result.BudgetItems)},
	})
	if err != nil {
		s.ws.logger.Warn("rider parsing failed", zap.Error(err))
		s.ws.notify.Notify(ctx, err.Error())
		return domain.RiderParseResult{}, nil
	}
	return result, nil
}

// Apply appends the suggested budget items to the tour and stores one
// Load-in event carrying the suggested tasks. Both are built before either
// is stored, so a failure leaves the workspace untouched.
func (s *riderService) Apply(ctx context.Context, tourID string, result domain.RiderParseResult) (domain.ScheduleEvent, error) {
	if result.Empty() {
		return domain.ScheduleEvent{}, invalid("There is nothing to apply.")
	}
	var event domain.ScheduleEvent
	fields := map[string]any{"tour_id": tourID, "tasks": len(result.Tasks), "budget_items": len(result.BudgetItems)}
	err := s.ws.mutate(ctx, "apply-rider", fields, func(st domain.State) (domain.State, []domain.StateKey, error) {
		user, err := requireManager(st, "import rider")
		if err != nil {
			return st, nil, err
		}
		t, err := resolveTour(st, tourID)
		if err != nil {
			return st, nil, err
		}

		roster := make(map[string]bool)
		for _, p := range domain.RiderRoster(st.People) {
			roster[p.ID] = true
		}
		tasks := make([]domain.Task, 0, len(result.Tasks))
		for _, rt := range result.Tasks {
			if strings.TrimSpace(rt.Text) == "" {
				return st, nil, invalid("Rider tasks need text.")
			}
			if !roster[rt.AssignedTo] {
				return st, nil, invalid(fmt.Sprintf("Rider task assignee %q is not on the production roster.", rt.AssignedTo))
			}
			tasks = append(tasks, domain.Task{ID: s.ws.newID("task"), Text: rt.Text, AssignedTo: rt.AssignedTo})
		}
		items := make([]domain.BudgetItem, 0, len(result.BudgetItems))
		for _, b := range result.BudgetItems {
			items = append(items, domain.BudgetItem{ID: s.ws.newID("bud"), Category: b.Category, Amount: b.Amount})
		}

		date := t.StartDate
		if date == "" {
			date = s.ws.today()
		}
		event = domain.ScheduleEvent{
			ID:         s.ws.newID("event-rider"),
			Date:       date,
			Type:       domain.EventLoadIn,
			Title:      riderEventTitle,
			StartTime:  "09:00",
			Location:   "Various",
			Notes:      riderEventNotes,
			AssignedTo: []domain.EventAssignment{{PersonID: user.ID, Permission: domain.PermissionWrite}},
			Comments:   []domain.Comment{},
			Tasks:      tasks,
		}

		next, err := mutation.UpdateTour(st, t.ID, func(tour domain.Tour) (domain.Tour, error) {
			return mutation.AddBudgetItems(tour, items...), nil
		})
		if err != nil {
			return st, nil, err
		}
		next = mutation.AddEvent(next, t.ID, event)
		return next, changed(domain.KeyTours, domain.KeySchedule), nil
	})
	if err != nil {
		return domain.ScheduleEvent{}, err
	}
	return event, nil
}
