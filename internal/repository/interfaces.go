package repository

import (
	"context"

	"github.com/alexanderramin/showrunner/internal/domain"
)

// StateRepo persists the workspace as independently keyed blobs.
type StateRepo interface {
	// Load reads every key on its own. A key that is missing or fails to
	// decode falls back to the bundled default dataset for that key only.
	Load(ctx context.Context) (domain.State, error)

	// Save writes the given keys one at a time. There is no transaction
	// across keys: a failure part way leaves earlier keys written.
	Save(ctx context.Context, state domain.State, keys ...domain.StateKey) error
}
