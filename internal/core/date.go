package core

import (
	"fmt"
	"time"
)

// ParseTimestamp parses a wire timestamp (yyyy-MM-ddTHH:mm:ss) into a UTC
// time.Time.
//
// N.B. The server appends a timezone designator that the origin platform
// could not parse reliably. Instead of attempting timezone math, we drop
// anything after the seconds field and force-interpret the wall-clock value
// as UTC. Preserve this behavior; "fixing" it desyncs us from the backend.
func ParseTimestamp(raw string) (time.Time, error) {
	if len(raw) < len(WireTimestampFmt) {
		return time.Time{}, fmt.Errorf("invalid timestamp '%s' (expected yyyy-MM-ddTHH:mm:ss)", raw)
	}

	t, err := time.ParseInLocation(WireTimestampFmt, raw[:len(WireTimestampFmt)], time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp '%s': %w", raw, err)
	}

	return t, nil
}

// RelativeAge renders a short human-readable age for then, relative to the
// current UTC time: "41m", "7h", "3d", or "Jan 02" beyond a week.
func RelativeAge(then time.Time) string {
	return relativeAgeAt(then, time.Now().UTC())
}

func relativeAgeAt(then, now time.Time) string {
	diff := now.Sub(then)

	minutes := int64(diff / time.Minute)
	hours := int64(diff / time.Hour)
	days := int64(diff / (24 * time.Hour))

	// HACK: timestamps for freshly created loves can land slightly ahead of
	// our "now" because of the forced-UTC parse above. Clamp to 1 minute
	// instead of showing a negative age.
	// todo: revisit once the server emits unambiguous UTC timestamps
	if minutes < 0 {
		minutes = 1
	}

	switch {
	case minutes < 60:
		return fmt.Sprintf("%dm", minutes)
	case hours < 24:
		return fmt.Sprintf("%dh", hours)
	case days < 7:
		return fmt.Sprintf("%dd", days)
	default:
		return then.Format("Jan 02")
	}
}
