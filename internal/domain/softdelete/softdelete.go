// Package softdelete models soft-deletion as an explicit two-state value
// (active or deleted at a known time) instead of a nullable timestamp, so
// callers cannot forget to handle the deleted case.
package softdelete

import "time"

// State is either active or deleted-at-a-timestamp. The zero value is active.
type State struct {
	deleted bool
	at      time.Time
}

// Active returns the active state.
func Active() State {
	return State{}
}

// DeletedAt returns a deleted state recorded at t.
func DeletedAt(t time.Time) State {
	return State{deleted: true, at: t}
}

// FromTimestamp converts a nullable database timestamp into a State.
func FromTimestamp(t *time.Time) State {
	if t == nil {
		return Active()
	}
	return DeletedAt(*t)
}

// IsDeleted reports whether the record has been soft-deleted.
func (s State) IsDeleted() bool {
	return s.deleted
}

// At returns the deletion timestamp. The second result is false for active
// records.
func (s State) At() (time.Time, bool) {
	return s.at, s.deleted
}

// Timestamp returns the deletion time as a nullable value for persistence.
func (s State) Timestamp() *time.Time {
	if !s.deleted {
		return nil
	}
	t := s.at
	return &t
}
