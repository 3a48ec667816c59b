// Package schedule converts monitor cadence strings into expected
// check-in intervals.
package schedule

import (
	"regexp"
	"strconv"
)

// FallbackIntervalMs is returned for any cadence string that does not match
// the grammar. Falling back to one hour instead of erroring means a
// misconfigured monitor still expires and alerts eventually, rather than
// silently never being swept.
const FallbackIntervalMs int64 = 3600000

var cadencePattern = regexp.MustCompile(`^(\d+)([smhd])$`)

// Parse returns the expected interval in milliseconds for a cadence string
// such as "30s", "5m", "1h" or "1d".
func Parse(cadence string) int64 {
	match := cadencePattern.FindStringSubmatch(cadence)
	if match == nil {
		return FallbackIntervalMs
	}

	value, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		// Magnitude too large for int64; treat like any other bad input.
		return FallbackIntervalMs
	}

	switch match[2] {
	case "s":
		return value * 1000
	case "m":
		return value * 60 * 1000
	case "h":
		return value * 60 * 60 * 1000
	case "d":
		return value * 24 * 60 * 60 * 1000
	default:
		return FallbackIntervalMs
	}
}
