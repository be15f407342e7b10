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

type scheduleService struct {
	ws *Workspace
}

func NewScheduleService(ws *Workspace) ScheduleService {
	return &scheduleService{ws: ws}
}

func (s *scheduleService) Events(_ context.Context, tourID string) ([]domain.ScheduleEvent, error) {
	st := s.ws.Snapshot()
	user, err := currentUser(st)
	if err != nil {
		return nil, err
	}
	t, err := resolveTour(st, tourID)
	if err != nil {
		return nil, err
	}
	return views.VisibleEvents(user, st.Events(t.ID)), nil
}

func (s *scheduleService) Event(_ context.Context, tourID, eventID string) (domain.ScheduleEvent, error) {
	st := s.ws.Snapshot()
	user, err := currentUser(st)
	if err != nil {
		return domain.ScheduleEvent{}, err
	}
	t, err := resolveTour(st, tourID)
	if err != nil {
		return domain.ScheduleEvent{}, err
	}
	e, ok := domain.FindEvent(st.Events(t.ID), eventID)
	if !ok || !access.CanSeeEvent(user, e) {
		return domain.ScheduleEvent{}, domain.NotFound("event", eventID)
	}
	return e, nil
}

func validateEventInput(people []domain.Person, in EventInput) error {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Date) == "" ||
		strings.TrimSpace(in.StartTime) == "" || strings.TrimSpace(in.Location) == "" {
		return invalid("Please fill out all required fields.")
	}
	if !in.Type.Valid() {
		return invalid(fmt.Sprintf("Unknown event type %q.", in.Type))
	}
	seen := make(map[string]bool, len(in.AssignedTo))
	for _, a := range in.AssignedTo {
		if _, ok := domain.FindPerson(people, a.PersonID); !ok {
			return domain.NotFound("person", a.PersonID)
		}
		if !a.Permission.Valid() {
			return invalid(fmt.Sprintf("Unknown permission %q.", a.Permission))
		}
		if seen[a.PersonID] {
			return invalid("A person can only be assigned to an event once.")
		}
		seen[a.PersonID] = true
	}
	return nil
}

// SaveEvent adds an event when in.ID is empty. Edits keep the event's
// comments and tasks.
func (s *scheduleService) SaveEvent(ctx context.Context, tourID string, in EventInput) (domain.ScheduleEvent, error) {
	details := mutation.EventDetails{
		Date:       in.Date,
		Type:       in.Type,
		Title:      in.Title,
		StartTime:  in.StartTime,
		EndTime:    in.EndTime,
		Location:   in.Location,
		Notes:      in.Notes,
		AssignedTo: in.AssignedTo,
	}
	var saved domain.ScheduleEvent
	err := s.ws.mutate(ctx, "save-event", map[string]any{"tour_id": tourID, "event_id": in.ID}, func(st domain.State) (domain.State, []domain.StateKey, error) {
		if _, err := requireManager(st, "save event"); err != nil {
			return st, nil, err
		}
		t, err := resolveTour(st, tourID)
		if err != nil {
			return st, nil, err
		}
		if err := validateEventInput(st.People, in); err != nil {
			return st, nil, err
		}
		if in.ID != "" {
			next, err := mutation.UpdateEvent(st, t.ID, in.ID, func(e domain.ScheduleEvent) (domain.ScheduleEvent, error) {
				saved = mutation.ApplyEventDetails(e, details)
				return saved, nil
			})
			return next, changed(domain.KeySchedule), err
		}
		saved = mutation.ApplyEventDetails(domain.ScheduleEvent{ID: s.ws.newID("event")}, details)
		next := mutation.AddEvent(st, t.ID, saved)
		saved, _ = domain.FindEvent(next.Events(t.ID), saved.ID)
		return next, changed(domain.KeySchedule), nil
	})
	if err != nil {
		return domain.ScheduleEvent{}, err
	}
	return saved, nil
}

func (s *scheduleService) DeleteEvent(ctx context.Context, tourID, eventID string) (bool, error) {
	return s.ws.destroy(ctx, "delete-event", "Are you sure you want to delete this event?",
		map[string]any{"tour_id": tourID, "event_id": eventID},
		func(st domain.State) (domain.State, []domain.StateKey, error) {
			if _, err := requireManager(st, "delete event"); err != nil {
				return st, nil, err
			}
			t, err := resolveTour(st, tourID)
			if err != nil {
				return st, nil, err
			}
			return mutation.Delete(st, mutation.Target{Kind: mutation.KindEvent, TourID: t.ID, ID: eventID})
		})
}

// AddComment appends a comment authored by the signed-in person. Only people
// with write permission on the event may comment.
func (s *scheduleService) AddComment(ctx context.Context, tourID, eventID, text string) (domain.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Comment{}, invalid("Please enter a comment.")
	}
	var c domain.Comment
	err := s.ws.mutate(ctx, "add-comment", map[string]any{"tour_id": tourID, "event_id": eventID}, func(st domain.State) (domain.State, []domain.StateKey, error) {
		user, err := currentUser(st)
		if err != nil {
			return st, nil, err
		}
		t, err := resolveTour(st, tourID)
		if err != nil {
			return st, nil, err
		}
		e, ok := domain.FindEvent(st.Events(t.ID), eventID)
		if !ok {
			return st, nil, domain.NotFound("event", eventID)
		}
		if !access.CanComment(user, e) {
			return st, nil, forbidden("comment on event")
		}
		c = domain.Comment{
			ID:        s.ws.newID("comment"),
			AuthorID:  user.ID,
			Timestamp: s.ws.now().UTC(),
			Text:      text,
		}
		next, err := mutation.AddComment(st, t.ID, eventID, c)
		return next, changed(domain.KeySchedule), err
	})
	if err != nil {
		return domain.Comment{}, err
	}
	return c, nil
}

// DaySheet lists one person's visible events on date. An empty personID
// means the signed-in person; only managers may look at someone else's.
func (s *scheduleService) DaySheet(_ context.Context, tourID, personID, date string) ([]domain.ScheduleEvent, error) {
	st := s.ws.Snapshot()
	user, err := currentUser(st)
	if err != nil {
		return nil, err
	}
	t, err := resolveTour(st, tourID)
	if err != nil {
		return nil, err
	}
	if date == "" {
		date = s.ws.today()
	}
	subject := user
	if personID != "" && personID != user.ID {
		if !access.IsManager(user) {
			return nil, forbidden("view day sheet")
		}
		p, ok := domain.FindPerson(st.People, personID)
		if !ok {
			return nil, domain.NotFound("person", personID)
		}
		subject = p
	}
	return views.DaySheet(subject, st.Events(t.ID), date), nil
}
