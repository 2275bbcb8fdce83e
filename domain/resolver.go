package domain

import "time"

// The resolver derives a challenge's day number and lifecycle status purely
// from its start date, its length, and the current date. It works on calendar
// days truncated to midnight in a single reference location so that daylight
// saving shifts and sub-day timing never move the day boundary.

// DaysBetween returns the calendar-day difference b-a. Both instants are
// reduced to their date components in their own locations and rebuilt in UTC,
// which makes every day exactly 24 hours long.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua) / (24 * time.Hour))
}

// CurrentDay computes the 1-based challenge day for the given date. A value
// below 1 means the challenge has not started yet; callers clamp for display
// with ClampDay but feed the raw value into ResolveStatus.
func CurrentDay(startDate string, today time.Time) (int, error) {
	start, err := time.ParseInLocation(DateLayout, startDate, today.Location())
	if err != nil {
		return 0, WrapError(ErrCodeInvalid, "startDate must be formatted as YYYY-MM-DD", err)
	}
	return DaysBetween(start, today) + 1, nil
}

// ClampDay bounds a resolver day value to the displayable minimum of 1.
func ClampDay(day int) int {
	if day < 1 {
		return 1
	}
	return day
}

// ResolveStatus maps an unclamped day value onto a lifecycle status.
// An explicit pause is sticky while the challenge is in range, but an elapsed
// day range always wins: a paused challenge past its last day completes.
func ResolveStatus(day, totalDays int, current Status) Status {
	switch {
	case day > totalDays:
		return StatusCompleted
	case day < 1:
		return StatusDraft
	case current == StatusPaused:
		return StatusPaused
	default:
		return StatusActive
	}
}

// Resolve runs CurrentDay and ResolveStatus together for a challenge.
func Resolve(c *Challenge, today time.Time) (day int, status Status, err error) {
	if c == nil {
		return 0, "", ErrInvalidPayload
	}
	day, err = CurrentDay(c.StartDate, today)
	if err != nil {
		return 0, "", err
	}
	return day, ResolveStatus(day, c.TotalDays, c.Status), nil
}

// DaysRemaining reports how many days are left after the current one.
// A not-yet-started challenge still has all of its days ahead.
func DaysRemaining(startDate string, totalDays int, today time.Time) (int, error) {
	day, err := CurrentDay(startDate, today)
	if err != nil {
		return 0, err
	}
	if day < 1 {
		return totalDays, nil
	}
	if day > totalDays {
		return 0, nil
	}
	return totalDays - day, nil
}
