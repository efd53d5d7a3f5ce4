package service

import "time"

const (
	DurationHour      = "1h"
	DurationDay       = "24h"
	DurationWeek      = "7d"
	DurationUnlimited = "unlimited"
)

var durationOffsets = map[string]time.Duration{
	DurationHour: time.Hour,
	DurationDay:  24 * time.Hour,
	DurationWeek: 7 * 24 * time.Hour,
}

// NormalizeDuration validates the retention label. Empty input means
// the caller did not choose, so the unlimited default applies.
func NormalizeDuration(raw string) (string, error) {
	if raw == "" {
		return DurationUnlimited, nil
	}
	if raw == DurationUnlimited {
		return raw, nil
	}
	if _, ok := durationOffsets[raw]; ok {
		return raw, nil
	}
	return "", ErrInvalidUploadOptions
}

// ExpiryFor returns the absolute expiry for a retention label, or nil
// for unlimited retention.
func ExpiryFor(duration string, now time.Time) *time.Time {
	offset, ok := durationOffsets[duration]
	if !ok {
		return nil
	}
	expiry := now.Add(offset)
	return &expiry
}

// IsExpired reports whether a record's expiry has passed. A nil
// expiry never expires.
func IsExpired(expiresAt *time.Time, now time.Time) bool {
	return expiresAt != nil && !expiresAt.After(now)
}
