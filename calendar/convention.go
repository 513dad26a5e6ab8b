package calendar

import (
	"fmt"
	"strings"
	"time"
)

// BusinessDayConvention says how a date falling on a non-business day is moved.
type BusinessDayConvention string

const (
	Unadjusted        BusinessDayConvention = "UNADJUSTED"
	Following         BusinessDayConvention = "FOLLOWING"
	ModifiedFollowing BusinessDayConvention = "MODIFIED_FOLLOWING"
	Preceding         BusinessDayConvention = "PRECEDING"
)

// ParseBusinessDayConvention accepts the usual spellings ("F", "MF", "Modified Following", ...).
func ParseBusinessDayConvention(s string) (BusinessDayConvention, error) {
	key := strings.ToUpper(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	switch key {
	case "", "NONE", "U", "UNADJUSTED":
		return Unadjusted, nil
	case "F", "FOLLOWING":
		return Following, nil
	case "MF", "MODIFIED_FOLLOWING", "MODFOLLOWING":
		return ModifiedFollowing, nil
	case "P", "PRECEDING":
		return Preceding, nil
	default:
		return "", fmt.Errorf("ParseBusinessDayConvention: unknown convention %q", s)
	}
}

// AdjustWith moves t according to conv on cal.
func AdjustWith(cal CalendarID, conv BusinessDayConvention, t time.Time) time.Time {
	switch conv {
	case Following:
		return AdjustFollowing(cal, t)
	case ModifiedFollowing:
		return Adjust(cal, t)
	case Preceding:
		return AdjustPreceding(cal, t)
	default:
		return t
	}
}
