package testutil

import (
	"context"
	"sync/atomic"

	"github.com/alexanderramin/showrunner/internal/blob"
)

// FailOnNthPutStore wraps a blob.Store and returns Err from the Nth Put
// call. Puts are counted starting at 1; reads pass through.
//
// Saving a multi-key mutation writes keys one at a time, so this simulates
// a partial save.
type FailOnNthPutStore struct {
	blob.Store
	FailOn int32
	Err    error

	count atomic.Int32
}

func (s *FailOnNthPutStore) Put(ctx context.Context, key string, data []byte) error {
	if s.count.Add(1) == s.FailOn {
		return s.Err
	}
	return s.Store.Put(ctx, key, data)
}

// Puts reports how many Put calls were made, including the failed one.
func (s *FailOnNthPutStore) Puts() int {
	return int(s.count.Load())
}
