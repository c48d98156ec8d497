// utils/dates.go
package utils

import "time"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// Tomorrow returns the start of the day after t, in t's location.
func Tomorrow(t time.Time) time.Time {
	return BeginningOfDay(t).AddDate(0, 0, 1)
}
