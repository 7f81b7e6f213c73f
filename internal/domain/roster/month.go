package roster

import (
	"fmt"
	"time"
)

const (
	monthLayout = "2006-01"
	dateLayout  = "2006-01-02"
)

// Month identifies one calendar month; work days are grouped and
// reconciled at this granularity.
type Month struct {
	Year  int
	Month time.Month
}

func ParseMonth(value string) (Month, error) {
	parsed, err := time.Parse(monthLayout, value)
	if err != nil {
		return Month{}, fmt.Errorf("%w: %q", ErrInvalidMonth, value)
	}
	return MonthOf(parsed), nil
}

func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

func CurrentMonth() Month {
	return MonthOf(time.Now())
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Contains reports whether the ISO date string falls inside the month.
// Malformed dates are treated as outside every month.
func (m Month) Contains(date string) bool {
	parsed, err := ParseDate(date)
	if err != nil {
		return false
	}
	return MonthOf(parsed) == m
}

func ParseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return parsed, nil
}
