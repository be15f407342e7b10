package service

import (
	"context"
	"strings"

	"github.com/alexanderramin/showrunner/internal/domain"
	"github.com/alexanderramin/showrunner/internal/mutation"
	"github.com/alexanderramin/showrunner/internal/views"
)

type crewService struct {
	ws *Workspace
}

func NewCrewService(ws *Workspace) CrewService {
	return &crewService{ws: ws}
}

func (s *crewService) List(_ context.Context) ([]domain.Person, error) {
	st := s.ws.Snapshot()
	if _, err := currentUser(st); err != nil {
		return nil, err
	}
	return st.People, nil
}

func (s *crewService) TourCrew(_ context.Context, tourID string) ([]domain.Person, error) {
	st := s.ws.Snapshot()
	if _, err := currentUser(st); err != nil {
		return nil, err
	}
	t, err := resolveTour(st, tourID)
	if err != nil {
		return nil, err
	}
	return views.TourCrew(st.People, st.Events(t.ID)), nil
}

// Save adds an invited person when in.ID is empty. Emails stay unique
// across the roster on both add and edit.
func (s *crewService) Save(ctx context.Context, in CrewMemberInput) (domain.Person, error) {
	name, email := strings.TrimSpace(in.Name), strings.TrimSpace(in.Email)
	if name == "" || email == "" {
		return domain.Person{}, invalid("Please enter a name and email.")
	}
	role := in.Role
	if role == "" {
		role = domain.RoleCrew
	}
	if !role.Valid() {
		return domain.Person{}, invalid("Please choose a valid role.")
	}

	var saved domain.Person
	err := s.ws.mutate(ctx, "save-crew-member", map[string]any{"person_id": in.ID}, func(st domain.State) (domain.State, []domain.StateKey, error) {
		if _, err := requireManager(st, "manage crew"); err != nil {
			return st, nil, err
		}
		if other, taken := mutation.FindPersonByEmail(st.People, email); taken && other.ID != in.ID {
			return st, nil, invalid("A user with this email already exists.")
		}
		if in.ID != "" {
			next, err := mutation.UpdatePerson(st, in.ID, func(p domain.Person) (domain.Person, error) {
				p.Name, p.Email, p.Role = name, email, role
				saved = p
				return p, nil
			})
			return next, changed(domain.KeyPeople), err
		}
		id := s.ws.newID("person")
		saved = domain.Person{
			ID:        id,
			Name:      name,
			Email:     email,
			Status:    domain.PersonPendingInvitation,
			Role:      role,
			AvatarURL: avatarURL(id),
		}
		return mutation.AddPerson(st, saved), changed(domain.KeyPeople), nil
	})
	if err != nil {
		return domain.Person{}, err
	}
	return saved, nil
}

// RemoveFromTour unassigns the person from every event of the tour. The
// person stays on the global roster.
func (s *crewService) RemoveFromTour(ctx context.Context, tourID, personID string) (bool, error) {
	const prompt = "Are you sure you want to remove this member from the tour? They will be unassigned from all events."
	return s.ws.destroy(ctx, "remove-crew-member", prompt, map[string]any{"tour_id": tourID, "person_id": personID},
		func(st domain.State) (domain.State, []domain.StateKey, error) {
			if _, err := requireManager(st, "manage crew"); err != nil {
				return st, nil, err
			}
			t, err := resolveTour(st, tourID)
			if err != nil {
				return st, nil, err
			}
			if _, ok := domain.FindPerson(st.People, personID); !ok {
				return st, nil, domain.NotFound("person", personID)
			}
			return mutation.StripAssignments(st, t.ID, personID), changed(domain.KeySchedule), nil
		})
}
