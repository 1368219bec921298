// Package override owns the scheduler-override tag lifecycle: the tag key,
// the allowed duration range and the expiry timestamp format. An external
// scheduler reads the tag to decide whether an instance may be auto-stopped;
// this service only writes and clears it.
package override

import (
	"fmt"
	"time"
)

// TagKey is the EC2 tag consumed by the external shutdown scheduler.
const TagKey = "scheduler-override"

const (
	MinHours     = 1
	MaxHours     = 8
	DefaultHours = 3
)

// timeLayout is minute-precision UTC, e.g. "2026-08-24T15:04".
const timeLayout = "2006-01-02T15:04"

// ValidateHours checks the requested override duration. No clamping or
// rounding: out-of-range values are rejected outright.
func ValidateHours(hours int) error {
	if hours < MinHours || hours > MaxHours {
		return fmt.Errorf("override hours must be between %d and %d", MinHours, MaxHours)
	}
	return nil
}

// Expiry computes the override expiry tag value: now + hours in UTC,
// truncated to minute precision.
func Expiry(now time.Time, hours int) string {
	return now.UTC().Add(time.Duration(hours) * time.Hour).Truncate(time.Minute).Format(timeLayout)
}
