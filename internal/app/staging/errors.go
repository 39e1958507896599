package staging

import "errors"

var (
	// ErrAlreadyCommitted is returned when adding to or committing a batch
	// that has already been committed.
	ErrAlreadyCommitted = errors.New("batch already committed")

	// ErrNoPriorValue is returned by a rollback that has nothing to restore.
	ErrNoPriorValue = errors.New("no prior value to restore")
)
