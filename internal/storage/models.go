package storage

import "fmt"

type Player struct {
	Key        string
	Level      int
	Experience int
	Str        int
	Agi        int
	Int        int
	Vit        int
	Will       int
}

type Quest struct {
	ID         int64
	Name       string
	Stat       string
	Importance string
	Cadence    string
	TargetDay  *string
	RepeatMode string
	Completed  bool
	// CreditedStat is the stat that received today's +1, empty if none.
	CreditedStat string
	CreatedDay   string
}

type InterferenceEntry struct {
	Day  string
	Tags []string
}

// CorruptError reports a persisted value that could not be decoded.
type CorruptError struct {
	Table string
	Key   string
	Err   error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("corrupt %s row %q: %v", e.Table, e.Key, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }
