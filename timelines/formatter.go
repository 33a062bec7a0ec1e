package timelines

import (
	"fmt"
	"time"
)

const openedFor = "Internship applications opened for:"

// EventsFor returns the hiring announcement for the given month. Large
// companies open summer applications between October and January; fall and
// winter batches follow their own windows.
func EventsFor(month time.Month) string {
	switch month {
	case time.October, time.November, time.December, time.January:
		return fmt.Sprintf("%s Summer Internships 🏝️", openedFor)
	case time.April, time.May:
		return fmt.Sprintf("%s Fall Internships 🍂", openedFor)
	case time.August, time.September:
		return fmt.Sprintf("%s Winter Internships ⛄", openedFor)
	default:
		return fmt.Sprintf("%s Not this month, try the next one!", openedFor)
	}
}
