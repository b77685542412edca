package byteutil

import (
	"errors"
	"time"
)

// ErrInvalidTimestamp is returned by ParseISOTime when fewer than the six
// required date/time fields can be parsed from the input.
var ErrInvalidTimestamp = errors.New("byteutil: invalid timestamp")

// ParseISOTime parses the `YYYY-MM-DDTHH:MM:SS` prefix of s into a UTC time,
// ignoring any trailing timezone suffix. It fails with ErrInvalidTimestamp
// unless all six fields (year, month, day, hour, minute, second) are present
// and numeric.
func ParseISOTime(s string) (time.Time, error) {
	var year, month, day, hour, minute, second int
	n, _ := scanf6(s, &year, &month, &day, &hour, &minute, &second)
	if n < 6 {
		return time.Time{}, ErrInvalidTimestamp
	}
	return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC), nil
}

// scanf6 extracts six consecutive runs of decimal digits from s, in the
// layout produced by an ISO-8601 "YYYY-MM-DDTHH:MM:SS" string, ignoring any
// separators between them (and anything after the sixth field, such as a
// timezone offset). It returns the number of fields successfully parsed.
func scanf6(s string, fields ...*int) (int, error) {
	i := 0
	n := 0
	for n < len(fields) {
		for i < len(s) && (s[i] < '0' || s[i] > '9') {
			i++
		}
		start := i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i == start {
			break
		}
		value := 0
		for _, c := range []byte(s[start:i]) {
			value = value*10 + int(c-'0')
		}
		*fields[n] = value
		n++
	}
	return n, nil
}
