package coupon

import "time"

// WindowMode selects how the validity window is compared against the check
// time. Two conventions exist in the system: exact instant comparison, and
// calendar-date-only comparison where the time-of-day of the window bounds is
// ignored. Each call site picks its mode explicitly.
type WindowMode int

const (
	// ModeInstant compares the check time against the window bounds exactly.
	ModeInstant WindowMode = iota
	// ModeCalendarDate truncates both the check time and the window bounds
	// to their calendar dates before comparing.
	ModeCalendarDate
)

// CheckEligibility decides whether a coupon may be applied at asOf.
// It returns nil for an eligible coupon, or one of:
//
//   - ErrDeleted for a soft-deleted coupon
//   - ErrNotInWindow when asOf is outside [ValidFrom, ValidUntil]
//
// The check is pure: calling it twice with the same inputs yields the same
// verdict. One-shot usage is enforced separately by the order pipeline, since
// it depends on committed orders.
func CheckEligibility(c *Coupon, asOf time.Time, mode WindowMode) error {
	if c.Deletion.IsDeleted() {
		return ErrDeleted
	}

	from, until, at := c.ValidFrom, c.ValidUntil, asOf
	if mode == ModeCalendarDate {
		// All three are compared on the caller's calendar; bounds stored in
		// another zone are converted first so dates line up.
		loc := asOf.Location()
		from = dateOnly(from.In(loc))
		until = dateOnly(until.In(loc))
		at = dateOnly(at)
	}

	// Window bounds are inclusive.
	if at.Before(from) || at.After(until) {
		return ErrNotInWindow
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
