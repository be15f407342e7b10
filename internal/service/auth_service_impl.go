package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/showrunner/internal/domain"
	"github.com/alexanderramin/showrunner/internal/mutation"
)

const minPasswordLen = 6

type authService struct {
	ws *Workspace
}

func NewAuthService(ws *Workspace) AuthService {
	return &authService{ws: ws}
}

func checkNewPassword(password, confirm string) error {
	if password != confirm {
		return invalid("Passwords do not match.")
	}
	if len(password) < minPasswordLen {
		return invalid(fmt.Sprintf("Password must be at least %d characters long.", minPasswordLen))
	}
	return nil
}

func avatarURL(personID string) string {
	return "https://i.pravatar.cc/150?u=" + personID
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (domain.Person, error) {
	name, email := strings.TrimSpace(in.Name), strings.TrimSpace(in.Email)
	if name == "" || email == "" {
		return domain.Person{}, invalid("Please enter a name and email.")
	}
	if err := checkNewPassword(in.Password, in.ConfirmPassword); err != nil {
		return domain.Person{}, err
	}
	hash, err := domain.HashPassword(in.Password, s.ws.passwordCost)
	if err != nil {
		return domain.Person{}, fmt.Errorf("hashing password: %w", err)
	}

	id := s.ws.newID("person")
	p := domain.Person{
		ID:           id,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Status:       domain.PersonActive,
		Role:         domain.RoleTourManager,
		AvatarURL:    avatarURL(id),
	}
	err = s.ws.mutate(ctx, "register", map[string]any{"person_id": id}, func(st domain.State) (domain.State, []domain.StateKey, error) {
		if _, taken := mutation.FindPersonByEmail(st.People, email); taken {
			return st, nil, invalid("An account with this email already exists.")
		}
		st = mutation.AddPerson(st, p)
		st = mutation.SignIn(st, id)
		return st, changed(domain.KeyPeople, domain.KeyCurrentUser), nil
	})
	if err != nil {
		return domain.Person{}, err
	}
	return p, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (domain.Person, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return domain.Person{}, invalid("Please enter both email and password.")
	}
	var user domain.Person
	err := s.ws.mutate(ctx, "login", nil, func(st domain.State) (domain.State, []domain.StateKey, error) {
		p, ok := mutation.FindPersonByEmail(st.People, email)
		if !ok || !p.CheckPassword(password) {
			return st, nil, invalid("Invalid email or password.")
		}
		user = p
		return mutation.SignIn(st, p.ID), changed(domain.KeyCurrentUser), nil
	})
	return user, err
}

func (s *authService) Logout(ctx context.Context) error {
	return s.ws.mutate(ctx, "logout", nil, func(st domain.State) (domain.State, []domain.StateKey, error) {
		return mutation.SignOut(st), changed(domain.KeyCurrentUser, domain.KeySelectedTour), nil
	})
}

func pendingInvitation(people []domain.Person, email string) (domain.Person, bool) {
	p, ok := mutation.FindPersonByEmail(people, email)
	if !ok || p.Status != domain.PersonPendingInvitation {
		return domain.Person{}, false
	}
	return p, true
}

func (s *authService) HasPendingInvitation(_ context.Context, email string) (bool, error) {
	_, ok := pendingInvitation(s.ws.Snapshot().People, email)
	return ok, nil
}

// SetPassword accepts an invitation: the password is stored, the person
// becomes active and is signed in.
func (s *authService) SetPassword(ctx context.Context, in SetPasswordInput) (domain.Person, error) {
	if _, ok := pendingInvitation(s.ws.Snapshot().People, in.Email); !ok {
		return domain.Person{}, invalid("No pending invitation found for this email address.")
	}
	if err := checkNewPassword(in.Password, in.ConfirmPassword); err != nil {
		return domain.Person{}, err
	}
	hash, err := domain.HashPassword(in.Password, s.ws.passwordCost)
	if err != nil {
		return domain.Person{}, fmt.Errorf("hashing password: %w", err)
	}

	var user domain.Person
	err = s.ws.mutate(ctx, "set-password", nil, func(st domain.State) (domain.State, []domain.StateKey, error) {
		invited, ok := pendingInvitation(st.People, in.Email)
		if !ok {
			return st, nil, invalid("No pending invitation found for this email address.")
		}
		next, err := mutation.UpdatePerson(st, invited.ID, func(p domain.Person) (domain.Person, error) {
			p.PasswordHash = hash
			p.Status = domain.PersonActive
			user = p
			return p, nil
		})
		if err != nil {
			return st, nil, err
		}
		return mutation.SignIn(next, invited.ID), changed(domain.KeyPeople, domain.KeyCurrentUser), nil
	})
	return user, err
}

func (s *authService) CurrentUser(_ context.Context) (domain.Person, error) {
	return currentUser(s.ws.Snapshot())
}
