package utils

import "time"

// Now returns the current time in UTC, truncated to microsecond precision
// to match the timestamp resolution stored in postgres.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func NowPtr() *time.Time {
	now := Now()
	return &now
}
