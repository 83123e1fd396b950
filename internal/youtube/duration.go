package youtube

import (
	"fmt"
	"strings"
)

// Seconds per ISO 8601 designator.
const (
	secondsPerMinute = 60
	secondsPerHour   = 3600
	secondsPerDay    = 86400
)

// ParseISODuration converts an ISO 8601 duration as served by the Data API,
// like PT1H2M30S or P1DT2H, to whole seconds. The API never emits months,
// years or fractional seconds for video lengths; those are rejected.
func ParseISODuration(value string) (int, error) {
	if !strings.HasPrefix(value, "P") {
		return 0, fmt.Errorf("invalid duration %q", value)
	}

	var (
		total      int
		number     int
		hasDigits  bool
		inTime     bool
		components int
	)

	for _, r := range value[1:] {
		switch {
		case r >= '0' && r <= '9':
			number = number*10 + int(r-'0')
			hasDigits = true
		case r == 'T' && !inTime && !hasDigits:
			inTime = true
		default:
			if !hasDigits {
				return 0, fmt.Errorf("invalid duration %q", value)
			}

			seconds, err := designatorSeconds(r, inTime)
			if err != nil {
				return 0, fmt.Errorf("invalid duration %q: %w", value, err)
			}

			total += number * seconds
			number = 0
			hasDigits = false
			components++
		}
	}

	if hasDigits || components == 0 {
		return 0, fmt.Errorf("invalid duration %q", value)
	}

	return total, nil
}

// designatorSeconds maps a designator to its length in seconds. M means
// minutes inside the time part and months before it; months have no fixed
// length and are rejected.
func designatorSeconds(designator rune, inTime bool) (int, error) {
	if inTime {
		switch designator {
		case 'H':
			return secondsPerHour, nil
		case 'M':
			return secondsPerMinute, nil
		case 'S':
			return 1, nil
		}
	} else if designator == 'D' {
		return secondsPerDay, nil
	}

	return 0, fmt.Errorf("unsupported designator %q", designator)
}
