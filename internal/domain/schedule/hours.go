package schedule

import "time"

// BusinessHours holds opening and closing hours for one weekday.
// Close is exclusive: a room open 12-21 runs its last session at 20:00.
type BusinessHours struct {
	Open  int
	Close int
}

var weekdayHours = map[time.Weekday]BusinessHours{
	time.Monday:    {Open: 12, Close: 21},
	time.Tuesday:   {Open: 12, Close: 21},
	time.Wednesday: {Open: 12, Close: 21},
	time.Thursday:  {Open: 12, Close: 21},
	time.Friday:    {Open: 12, Close: 22},
	time.Saturday:  {Open: 10, Close: 22},
	time.Sunday:    {Open: 10, Close: 21},
}

func HoursFor(day time.Weekday) BusinessHours {
	return weekdayHours[day]
}

// HourlySlotTimes returns the session start hours for a weekday,
// one per full hour from opening up to but not including closing.
func HourlySlotTimes(day time.Weekday) []int {
	h := weekdayHours[day]
	times := make([]int, 0, h.Close-h.Open)
	for hour := h.Open; hour < h.Close; hour++ {
		times = append(times, hour)
	}
	return times
}
