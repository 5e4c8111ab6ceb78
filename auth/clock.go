package auth

import "time"

// Clock is read once per signed request; the reading becomes the
// KALSHI-ACCESS-TIMESTAMP value.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// millisClock is frozen at a Unix millisecond timestamp.
type millisClock int64

func (c millisClock) Now() time.Time {
	return time.UnixMilli(int64(c))
}

// FixedClock returns a Clock that always reports t, truncated to the
// millisecond precision requests are signed with.
func FixedClock(t time.Time) Clock {
	return millisClock(t.UnixMilli())
}

// FixedMillis returns a Clock frozen at the given Unix millisecond timestamp.
func FixedMillis(ms int64) Clock {
	return millisClock(ms)
}
