package day

import "time"

// keyLayout matches JavaScript's Date.toDateString(), which is how the
// browser extension partitioned tasks. Keeping it means a database
// written by the extension stays readable.
const keyLayout = "Mon Jan 02 2006"

const prettyLayout = "Monday, January 2, 2006"

// Day is a single calendar day in local time.
type Day struct {
	t time.Time
}

// Today returns the current calendar day.
func Today() Day {
	return Of(time.Now())
}

// Of truncates a time to its calendar day.
func Of(t time.Time) Day {
	return Day{t: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())}
}

// Parse reads a day back from its storage key.
func Parse(key string) (Day, error) {
	t, err := time.ParseInLocation(keyLayout, key, time.Local)
	if err != nil {
		return Day{}, err
	}
	return Of(t), nil
}

// Key returns the string used as the task partition key.
func (d Day) Key() string {
	return d.t.Format(keyLayout)
}

// Pretty returns the long form shown in the header.
func (d Day) Pretty() string {
	return d.t.Format(prettyLayout)
}

// Next returns the following calendar day, rolling over month and year
// boundaries.
func (d Day) Next() Day {
	return Of(d.t.AddDate(0, 0, 1))
}

// Prev returns the preceding calendar day.
func (d Day) Prev() Day {
	return Of(d.t.AddDate(0, 0, -1))
}

// IsToday reports whether d is the current calendar day.
func (d Day) IsToday() bool {
	return d.Key() == Today().Key()
}
