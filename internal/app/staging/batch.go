package staging

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Action is one staged write.
type Action interface {
	// Execute performs the write.
	Execute(ctx context.Context) error

	// Rollback undoes a successful Execute.
	Rollback(ctx context.Context) error

	// Description names the action in errors and logs.
	Description() string
}

// Batch holds staged actions until Commit.
type Batch struct {
	mu        sync.Mutex
	actions   []Action
	committed bool
}

// New returns an empty batch.
func New() *Batch {
	return &Batch{}
}

// Add stages action.
func (b *Batch) Add(action Action) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.committed {
		return ErrAlreadyCommitted
	}

	b.actions = append(b.actions, action)

	return nil
}

// Len returns the number of staged actions.
func (b *Batch) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.actions)
}

// Actions returns a copy of the staged actions.
func (b *Batch) Actions() []Action {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Action, len(b.actions))
	copy(out, b.actions)

	return out
}

// Commit executes the staged actions in order. On the first failure the
// actions that already ran are rolled back in reverse order and the returned
// error wraps the failure together with any rollback errors. A failed batch
// is not committed and may be retried.
func (b *Batch) Commit(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.committed {
		return ErrAlreadyCommitted
	}

	for i, action := range b.actions {
		if err := action.Execute(ctx); err != nil {
			failure := fmt.Errorf("action %q failed: %w", action.Description(), err)

			return errors.Join(failure, rollback(ctx, b.actions[:i]))
		}
	}

	b.committed = true

	return nil
}

func rollback(ctx context.Context, executed []Action) error {
	var errs []error

	for i := len(executed) - 1; i >= 0; i-- {
		if err := executed[i].Rollback(ctx); err != nil {
			errs = append(errs, fmt.Errorf("rolling back %q: %w", executed[i].Description(), err))
		}
	}

	return errors.Join(errs...)
}
