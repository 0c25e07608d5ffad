package catalog

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidDate = errors.New("invalid date format, expected YYYY-MM-DD")
	ErrInvalidTime = errors.New("invalid time format, expected HH:MM")
)

const dateLayout = "2006-01-02"

// Date is a calendar day with no time component.
type Date struct {
	value time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{value: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{value: t}, nil
}

func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

func (d Date) Time() time.Time {
	return d.value
}

func (d Date) Weekday() time.Weekday {
	return d.value.Weekday()
}

func (d Date) AddDays(n int) Date {
	return Date{value: d.value.AddDate(0, 0, n)}
}

func (d Date) Before(other Date) bool {
	return d.value.Before(other.value)
}

func (d Date) Equal(other Date) bool {
	return d.value.Equal(other.value)
}

func (d Date) String() string {
	return d.value.Format(dateLayout)
}

// TimeOfDay is a wall-clock time of day, stored as seconds since midnight.
type TimeOfDay struct {
	seconds int
}

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, ErrInvalidTime
	}
	return TimeOfDay{seconds: hour*3600 + minute*60}, nil
}

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, ErrInvalidTime
	}
	return TimeOfDay{seconds: t.Hour()*3600 + t.Minute()*60}, nil
}

func TimeOfDayFromSeconds(seconds int) TimeOfDay {
	return TimeOfDay{seconds: seconds}
}

func (t TimeOfDay) Hour() int {
	return t.seconds / 3600
}

func (t TimeOfDay) Minute() int {
	return (t.seconds % 3600) / 60
}

func (t TimeOfDay) Seconds() int {
	return t.seconds
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// At anchors the time of day on a date in the given location.
func (t TimeOfDay) At(d Date, loc *time.Location) time.Time {
	day := d.Time()
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, loc)
}
