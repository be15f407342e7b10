package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/showrunner/internal/blob"
	"github.com/alexanderramin/showrunner/internal/domain"
	"go.uber.org/zap"
)

type blobStateRepo struct {
	store    blob.Store
	logger   *zap.Logger
	defaults func() domain.State
}

// NewBlobStateRepo persists state in store. defaults supplies the fallback
// dataset; nil uses DefaultDataset.
func NewBlobStateRepo(store blob.Store, logger *zap.Logger, defaults func() domain.State) StateRepo {
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaults == nil {
		defaults = DefaultDataset
	}
	return &blobStateRepo{store: store, logger: logger, defaults: defaults}
}

func (r *blobStateRepo) Load(ctx context.Context) (domain.State, error) {
	def := r.defaults()
	var st domain.State

	if err := ctx.Err(); err != nil {
		return st, err
	}

	st.Tours = loadKey(ctx, r, domain.KeyTours, def.Tours)
	st.People = loadKey(ctx, r, domain.KeyPeople, def.People)
	st.Schedule = loadKey(ctx, r, domain.KeySchedule, def.Schedule)
	st.Suppliers = loadKey(ctx, r, domain.KeySuppliers, def.Suppliers)
	st.CurrentUserID = loadKey(ctx, r, domain.KeyCurrentUser, def.CurrentUserID)
	st.SelectedTourID = loadKey(ctx, r, domain.KeySelectedTour, def.SelectedTourID)

	if st.Schedule == nil {
		st.Schedule = domain.Schedule{}
	}
	if st.SelectedTourID != "" {
		if _, ok := st.FindTour(st.SelectedTourID); !ok {
			r.logger.Info("selected tour no longer exists, clearing selection",
				zap.String("tour_id", st.SelectedTourID))
			st.SelectedTourID = ""
		}
	}
	if st.CurrentUserID != "" {
		if _, ok := st.CurrentUser(); !ok {
			r.logger.Info("signed-in user no longer exists, signing out",
				zap.String("person_id", st.CurrentUserID))
			st.CurrentUserID = ""
		}
	}

	return st, ctx.Err()
}

// loadKey decodes one key, returning fallback when it is absent or corrupt.
func loadKey[T any](ctx context.Context, r *blobStateRepo, key domain.StateKey, fallback T) T {
	data, err := r.store.Get(ctx, string(key))
	if errors.Is(err, blob.ErrNotFound) {
		return fallback
	}
	if err != nil {
		r.logger.Warn("reading state key failed, using default",
			zap.String("key", string(key)), zap.Error(err))
		return fallback
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		r.logger.Warn("state key is corrupt, using default",
			zap.String("key", string(key)), zap.Error(err))
		return fallback
	}
	return v
}

func (r *blobStateRepo) Save(ctx context.Context, st domain.State, keys ...domain.StateKey) error {
	var errs []error
	for _, key := range keys {
		value, err := keyValue(st, key)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		data, err := json.Marshal(value)
		if err != nil {
			errs = append(errs, fmt.Errorf("encoding %s: %w", key, err))
			continue
		}
		if err := r.store.Put(ctx, string(key), data); err != nil {
			r.logger.Error("persisting state key failed",
				zap.String("key", string(key)), zap.Error(err))
			errs = append(errs, fmt.Errorf("saving %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

func keyValue(st domain.State, key domain.StateKey) (any, error) {
	switch key {
	case domain.KeyTours:
		return nonNil(st.Tours), nil
	case domain.KeyPeople:
		return nonNil(st.People), nil
	case domain.KeySchedule:
		if st.Schedule == nil {
			return domain.Schedule{}, nil
		}
		return st.Schedule, nil
	case domain.KeySuppliers:
		return nonNil(st.Suppliers), nil
	case domain.KeyCurrentUser:
		return st.CurrentUserID, nil
	case domain.KeySelectedTour:
		return st.SelectedTourID, nil
	default:
		return nil, fmt.Errorf("unknown state key %q", key)
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
