package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/alexanderramin/showrunner/internal/access"
	"github.com/alexanderramin/showrunner/internal/domain"
	"github.com/alexanderramin/showrunner/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Confirmer gates destructive operations. A false answer cancels the
// operation without error.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) { return f(ctx, prompt) }

// AlwaysConfirm answers yes to every prompt.
var AlwaysConfirm = ConfirmFunc(func(context.Context, string) (bool, error) { return true, nil })

// Notifier shows a one-off message to the user.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// NotifyFunc adapts a function to Notifier.
type NotifyFunc func(ctx context.Context, message string)

func (f NotifyFunc) Notify(ctx context.Context, message string) { f(ctx, message) }

// Workspace owns the in-memory state and is the single writer of it.
// Mutations are serialized; after each one only the changed keys are saved.
type Workspace struct {
	mu    sync.Mutex
	state domain.State

	repo     repository.StateRepo
	now      func() time.Time
	newID    func(prefix string) string
	confirm  Confirmer
	notify   Notifier
	observer UseCaseObserver
	logger   *zap.Logger

	passwordCost int
}

// Option configures a Workspace.
type Option func(*Workspace)

func WithClock(now func() time.Time) Option { return func(w *Workspace) { w.now = now } }

func WithIDGenerator(fn func(prefix string) string) Option {
	return func(w *Workspace) { w.newID = fn }
}

func WithConfirmer(c Confirmer) Option { return func(w *Workspace) { w.confirm = c } }

func WithNotifier(n Notifier) Option { return func(w *Workspace) { w.notify = n } }

func WithObservers(observers ...UseCaseObserver) Option {
	return func(w *Workspace) { w.observer = useCaseObserverOrNoop(observers) }
}

func WithLogger(l *zap.Logger) Option { return func(w *Workspace) { w.logger = l } }

// WithPasswordCost sets the bcrypt cost for new passwords; 0 means the default.
func WithPasswordCost(cost int) Option { return func(w *Workspace) { w.passwordCost = cost } }

// NewID returns "<prefix>-<uuid>".
func NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// OpenWorkspace loads state from repo.
func OpenWorkspace(ctx context.Context, repo repository.StateRepo, opts ...Option) (*Workspace, error) {
	w := &Workspace{
		repo:     repo,
		now:      time.Now,
		newID:    NewID,
		confirm:  AlwaysConfirm,
		notify:   NotifyFunc(func(context.Context, string) {}),
		observer: NoopUseCaseObserver{},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	st, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading workspace: %w", err)
	}
	w.state = st
	return w, nil
}

// Snapshot returns the current state. Callers must not modify it.
func (w *Workspace) Snapshot() domain.State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Reload replaces the in-memory state with what is persisted.
func (w *Workspace) Reload(ctx context.Context) error {
	st, err := w.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("reloading workspace: %w", err)
	}
	w.mu.Lock()
	w.state = st
	w.mu.Unlock()
	return nil
}

// reducer computes the next state and the keys it changed.
type reducer func(st domain.State) (domain.State, []domain.StateKey, error)

// mutate applies fn under the lock and persists the changed keys. The new
// state stays in memory even when saving fails.
func (w *Workspace) mutate(ctx context.Context, name string, fields map[string]any, fn reducer) (err error) {
	startedAt := w.now()
	defer func() {
		w.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      name,
			StartedAt: startedAt,
			Duration:  w.now().Sub(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	w.mu.Lock()
	defer w.mu.Unlock()

	next, keys, err := fn(w.state)
	if err != nil {
		return err
	}
	w.state = next
	if len(keys) == 0 {
		return nil
	}
	if err := w.repo.Save(ctx, next, keys...); err != nil {
		w.logger.Error("persisting workspace failed", zap.String("use_case", name), zap.Error(err))
		return fmt.Errorf("persisting %s: %w", name, err)
	}
	return nil
}

// destroy runs a confirmation-gated mutation. fn is tried against the
// current snapshot first so the user is never asked about a delete that
// cannot happen. It reports whether the mutation was applied.
func (w *Workspace) destroy(ctx context.Context, name, prompt string, fields map[string]any, fn reducer) (bool, error) {
	if _, _, err := fn(w.Snapshot()); err != nil {
		return false, err
	}
	ok, err := w.confirm.Confirm(ctx, prompt)
	if err != nil {
		return false, fmt.Errorf("confirming %s: %w", name, err)
	}
	if !ok {
		w.logger.Debug("confirmation declined", zap.String("use_case", name))
		return false, nil
	}
	return true, w.mutate(ctx, name, fields, fn)
}

// currentUser resolves the signed-in person.
func currentUser(st domain.State) (domain.Person, error) {
	p, ok := st.CurrentUser()
	if !ok {
		return domain.Person{}, ErrNotSignedIn
	}
	return p, nil
}

// requireManager resolves the signed-in person and checks the role gate.
func requireManager(st domain.State, action string) (domain.Person, error) {
	p, err := currentUser(st)
	if err != nil {
		return p, err
	}
	if !access.IsManager(p) {
		return p, forbidden(action)
	}
	return p, nil
}

// resolveTour picks tourID, or the selected tour when tourID is empty.
func resolveTour(st domain.State, tourID string) (domain.Tour, error) {
	if tourID == "" {
		tourID = st.SelectedTourID
	}
	if tourID == "" {
		return domain.Tour{}, ErrNoTourSelected
	}
	t, ok := st.FindTour(tourID)
	if !ok {
		return domain.Tour{}, domain.NotFound("tour", tourID)
	}
	return t, nil
}

// ResolveTourID returns tourID, or the selected tour's ID when empty.
func (w *Workspace) ResolveTourID(tourID string) (string, error) {
	t, err := resolveTour(w.Snapshot(), tourID)
	if err != nil {
		return "", err
	}
	return t.ID, nil
}

func (w *Workspace) today() string {
	return w.now().Format(domain.DateLayout)
}

func changed(k ...domain.StateKey) []domain.StateKey { return k }
