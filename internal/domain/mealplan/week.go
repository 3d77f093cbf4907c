package mealplan

import "time"

// WeekStartOf returns the Monday anchoring the week containing t, truncated
// to midnight in t's location. Sundays belong to the week that started six
// days earlier, not the upcoming one.
func WeekStartOf(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	switch day.Weekday() {
	case time.Sunday:
		return day.AddDate(0, 0, -6)
	default:
		return day.AddDate(0, 0, -(int(day.Weekday()) - 1))
	}
}

// ParseWeekStart parses a YYYY-MM-DD date and normalizes it to its Monday.
func ParseWeekStart(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, ErrInvalidWeekStart
	}
	return WeekStartOf(t), nil
}

// FormatWeekStart renders a week-start date the way the API and the
// database key it.
func FormatWeekStart(t time.Time) string {
	return t.Format("2006-01-02")
}
