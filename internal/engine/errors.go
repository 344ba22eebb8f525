package engine

import "fmt"

// CapacityError is returned when adding a quest would exceed the limit.
type CapacityError struct {
	Limit int
}

func (e CapacityError) Error() string {
	return fmt.Sprintf("too many quests (limit %d)", e.Limit)
}

type NotFoundError struct {
	ID int64
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("quest %d not found", e.ID)
}

// ValidationError reports bad input. State is left unchanged.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// CorruptStateError describes persisted data that was unreadable and has
// been replaced by defaults. It is logged, never returned to callers.
type CorruptStateError struct {
	Table string
	Err   error
}

func (e CorruptStateError) Error() string {
	return fmt.Sprintf("corrupt %s state: %v", e.Table, e.Err)
}

func (e CorruptStateError) Unwrap() error { return e.Err }
