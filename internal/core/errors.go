package core

import "errors"

var (
	// ErrStorage matches every *StorageError via errors.Is.
	ErrStorage   = errors.New("storage error")
	ErrNotFound  = errors.New("record not found")
	ErrMissingID = errors.New("record id must be provided")
)

// StorageError reports a failed store round-trip: the store was unreachable,
// a statement failed, or a write affected no rows.
type StorageError struct {
	Op  string
	Err error
}

// NewStorageError wraps err as a *StorageError for operation op.
func NewStorageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}
