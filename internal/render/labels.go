package render

import (
	"fmt"
	"time"
)

// DayLabel renders t like "Fri, Jan 5th".
func DayLabel(t time.Time) string {
	return fmt.Sprintf("%s %d%s", t.Format("Mon, Jan"), t.Day(), ordinal(t.Day()))
}

// ClockLabel renders t like "6:12 pm".
func ClockLabel(t time.Time) string {
	return t.Format("3:04 pm")
}

func ordinal(n int) string {
	if n%100 >= 11 && n%100 <= 13 {
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
