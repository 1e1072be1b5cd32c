// config/duration.go
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// parseDurationFlexible accepts strings like "90s"/"2m", numeric seconds, or
// time.Duration. Zero is allowed and means "no limit"; negative values are
// rejected. Returns def on empty input or unknown types.
func parseDurationFlexible(raw any, def time.Duration) (time.Duration, error) {
	switch t := raw.(type) {
	case time.Duration:
		return nonNegative(t)
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return def, nil
		}
		if d, err := time.ParseDuration(s); err == nil {
			return nonNegative(d)
		}
		// Plain seconds in string form, e.g. "120" or "1.5".
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return seconds(f)
		}
		return def, fmt.Errorf("cannot parse duration %q", s)
	case int:
		return seconds(float64(t))
	case int64:
		return seconds(float64(t))
	case float64:
		return seconds(t)
	default:
		return def, nil
	}
}

func seconds(f float64) (time.Duration, error) {
	return nonNegative(time.Duration(f * float64(time.Second)))
}

func nonNegative(d time.Duration) (time.Duration, error) {
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0, got %s", d)
	}
	return d, nil
}
