package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/showrunner/internal/domain"
	"github.com/alexanderramin/showrunner/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_RegisterSignsInAsManager(t *testing.T) {
	h := newHarness(t, fixtureState())
	svc := NewAuthService(h.ws)
	ctx := context.Background()

	p, err := svc.Register(ctx, RegisterInput{Name: " Sam Rivers ", Email: "sam@example.com", Password: "secret1", ConfirmPassword: "secret1"})
	require.NoError(t, err)

	assert.Equal(t, "person-t1", p.ID)
	assert.Equal(t, "Sam Rivers", p.Name)
	assert.Equal(t, domain.RoleTourManager, p.Role)
	assert.Equal(t, domain.PersonActive, p.Status)
	assert.NotEqual(t, "secret1", p.PasswordHash)
	assert.True(t, p.CheckPassword("secret1"))

	current, err := svc.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, p.ID, current.ID)

	persisted := h.persisted(t)
	assert.Equal(t, p.ID, persisted.CurrentUserID)
	_, ok := domain.FindPerson(persisted.People, p.ID)
	assert.True(t, ok)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	tests := []struct {
		name string
		in   RegisterInput
		msg  string
	}{
		{"missing name", RegisterInput{Email: "a@b.c", Password: "secret1", ConfirmPassword: "secret1"}, "Please enter a name and email."},
		{"mismatch", RegisterInput{Name: "A", Email: "a@b.c", Password: "secret1", ConfirmPassword: "secret2"}, "Passwords do not match."},
		{"short", RegisterInput{Name: "A", Email: "a@b.c", Password: "abc", ConfirmPassword: "abc"}, "Password must be at least 6 characters long."},
		{"duplicate email", RegisterInput{Name: "A", Email: "ALEX@showrunner.app", Password: "secret1", ConfirmPassword: "secret1"}, "An account with this email already exists."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, fixtureState())
			before := len(h.ws.Snapshot().People)

			_, err := NewAuthService(h.ws).Register(context.Background(), tt.in)
			require.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, tt.msg, UserMessage(err))
			assert.Len(t, h.ws.Snapshot().People, before)
		})
	}
}

func TestAuthService_LoginAndLogout(t *testing.T) {
	st := fixtureState()
	hash, err := domain.HashPassword("password123", 4)
	require.NoError(t, err)
	st.People[2].PasswordHash = hash
	st.CurrentUserID = ""
	h := newHarness(t, st)
	svc := NewAuthService(h.ws)
	ctx := context.Background()

	_, err = svc.CurrentUser(ctx)
	assert.ErrorIs(t, err, ErrNotSignedIn)

	_, err = svc.Login(ctx, "casey@showrunner.app", "wrong-password")
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Invalid email or password.", UserMessage(err))

	_, err = svc.Login(ctx, "", "")
	assert.Equal(t, "Please enter both email and password.", UserMessage(err))

	p, err := svc.Login(ctx, "Casey@ShowRunner.app", "password123")
	require.NoError(t, err)
	assert.Equal(t, crewID, p.ID)
	assert.Equal(t, crewID, h.persisted(t).CurrentUserID)

	require.NoError(t, svc.Logout(ctx))
	snap := h.ws.Snapshot()
	assert.Empty(t, snap.CurrentUserID)
	assert.Empty(t, snap.SelectedTourID)
	assert.Empty(t, h.persisted(t).CurrentUserID)
}

func TestAuthService_LoginRejectsPendingInvitation(t *testing.T) {
	st := fixtureState()
	st.People = append(st.People, testutil.NewTestPerson("person-i", "Invitee",
		testutil.WithEmail("invitee@example.com"), testutil.WithPersonStatus(domain.PersonPendingInvitation)))
	h := newHarness(t, st)

	_, err := NewAuthService(h.ws).Login(context.Background(), "invitee@example.com", "")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = NewAuthService(h.ws).Login(context.Background(), "invitee@example.com", "anything")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAuthService_SetPasswordAcceptsInvitation(t *testing.T) {
	st := fixtureState()
	st.People = append(st.People, testutil.NewTestPerson("person-i", "Invitee",
		testutil.WithEmail("invitee@example.com"), testutil.WithPersonStatus(domain.PersonPendingInvitation)))
	h := newHarness(t, st)
	svc := NewAuthService(h.ws)
	ctx := context.Background()

	pending, err := svc.HasPendingInvitation(ctx, "INVITEE@example.com")
	require.NoError(t, err)
	assert.True(t, pending)

	pending, err = svc.HasPendingInvitation(ctx, "alex@showrunner.app")
	require.NoError(t, err)
	assert.False(t, pending)

	_, err = svc.SetPassword(ctx, SetPasswordInput{Email: "invitee@example.com", Password: "abc", ConfirmPassword: "abc"})
	assert.ErrorIs(t, err, ErrValidation)

	p, err := svc.SetPassword(ctx, SetPasswordInput{Email: "invitee@example.com", Password: "newpass1", ConfirmPassword: "newpass1"})
	require.NoError(t, err)
	assert.Equal(t, domain.PersonActive, p.Status)
	assert.Equal(t, "person-i", h.ws.Snapshot().CurrentUserID)

	pending, err = svc.HasPendingInvitation(ctx, "invitee@example.com")
	require.NoError(t, err)
	assert.False(t, pending)

	_, err = svc.SetPassword(ctx, SetPasswordInput{Email: "invitee@example.com", Password: "newpass1", ConfirmPassword: "newpass1"})
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "No pending invitation found for this email address.", UserMessage(err))
}
