package timegrid

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"clinibook/utils"
)

const (
	// DateLayout is the wire and storage format for calendar days.
	DateLayout = "2006-01-02"

	minutesPerDay = 24 * 60
)

// ToMinutes parses an "HH:MM" string into minutes since midnight.
func ToMinutes(hhmm string) (int, error) {
	parts := strings.Split(hhmm, ":")
	if len(parts) != 2 {
		return 0, utils.NewDomainErrorf(utils.CodeFormat, "invalid time %q: expected HH:MM", hhmm)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, utils.NewDomainErrorf(utils.CodeFormat, "invalid hour in %q", hhmm)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, utils.NewDomainErrorf(utils.CodeFormat, "invalid minute in %q", hhmm)
	}
	if h < 0 || h >= 24 || m < 0 || m >= 60 {
		return 0, utils.NewDomainErrorf(utils.CodeFormat, "time %q out of range", hhmm)
	}
	return h*60 + m, nil
}

// FromMinutes renders minutes since midnight as zero-padded "HH:MM".
func FromMinutes(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// BuildSlots slices the window [start, end) into discrete slot start times
// stepMin minutes apart. A slot is included only if it fits entirely inside
// the window: the last slot t satisfies t + stepMin <= end. The result is
// empty (not an error) when stepMin <= 0 or start >= end.
func BuildSlots(startHHMM, endHHMM string, stepMin int) ([]string, error) {
	start, err := ToMinutes(startHHMM)
	if err != nil {
		return nil, err
	}
	end, err := ToMinutes(endHHMM)
	if err != nil {
		return nil, err
	}
	return BuildSlotsMinutes(start, end, stepMin), nil
}

// BuildSlotsMinutes is BuildSlots on pre-parsed minute offsets.
func BuildSlotsMinutes(start, end, stepMin int) []string {
	if stepMin <= 0 || start >= end {
		return nil
	}
	out := make([]string, 0, (end-start)/stepMin)
	for t := start; t+stepMin <= end; t += stepMin {
		out = append(out, FromMinutes(t))
	}
	return out
}

// NormalizeDate reduces a date string to a pure calendar day. It accepts the
// plain day layout or an RFC 3339 timestamp, stripping any time-of-day part.
func NormalizeDate(date string) (string, error) {
	if t, err := time.Parse(DateLayout, date); err == nil {
		return t.Format(DateLayout), nil
	}
	if t, err := time.Parse(time.RFC3339, date); err == nil {
		return t.Format(DateLayout), nil
	}
	return "", utils.NewDomainErrorf(utils.CodeFormat, "invalid date %q: expected YYYY-MM-DD", date)
}
