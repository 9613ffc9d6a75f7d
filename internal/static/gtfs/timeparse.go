package gtfs

import (
	"strconv"
	"strings"
)

// ParseTimeToSeconds converts GTFS time format (HH:MM:SS) to seconds since
// midnight. Hours may exceed 23 for service running past midnight.
// Anything other than exactly three integer components is missing.
func ParseTimeToSeconds(timeStr string) NullInt {
	parts := strings.Split(timeStr, ":")
	if len(parts) != 3 {
		return NullInt{}
	}

	var hms [3]int
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return NullInt{}
		}
		hms[i] = v
	}

	return NewNullInt(hms[0]*3600 + hms[1]*60 + hms[2])
}

// ParseOptionalTime is ParseTimeToSeconds for a nullable column value
func ParseOptionalTime(timeStr *string) NullInt {
	if timeStr == nil {
		return NullInt{}
	}
	return ParseTimeToSeconds(*timeStr)
}
