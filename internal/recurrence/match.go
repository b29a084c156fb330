package recurrence

import "time"

// DateOnly truncates t to its calendar day in UTC. All matching is done on
// date-only values to avoid off-by-one drift near midnight boundaries.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Matches reports whether candidate is an occurrence of a series anchored
// at anchor under rule. Both arguments are compared by calendar day.
func Matches(anchor, candidate time.Time, rule Rule) bool {
	a := DateOnly(anchor)
	c := DateOnly(candidate)

	switch rule.Freq {
	case None:
		return c.Equal(a)
	case Daily:
		days := daysBetween(a, c)
		return days >= 0 && days%rule.interval() == 0
	case Weekly:
		// Week count is raw elapsed days divided by 7, not aligned to
		// calendar-week boundaries. When the anchor's weekday and ByWeekday
		// disagree this can differ from "every Nth calendar week"; the
		// behavior is kept as-is.
		days := daysBetween(a, c)
		if days < 0 {
			return false
		}
		weeks := days / 7
		if weeks%rule.interval() != 0 {
			return false
		}
		return len(rule.ByWeekday) == 0 || containsWeekday(rule.ByWeekday, c.Weekday())
	case Monthly:
		months := (c.Year()-a.Year())*12 + int(c.Month()) - int(a.Month())
		if months < 0 || months%rule.interval() != 0 {
			return false
		}
		switch {
		case len(rule.ByMonthDay) > 0:
			return matchesMonthDay(rule.ByMonthDay, c)
		case rule.BySetPos != 0 && len(rule.ByWeekday) > 0:
			return matchesSetPos(rule, c)
		default:
			return c.Day() == a.Day()
		}
	}
	return false
}

func daysBetween(a, c time.Time) int {
	return int(c.Sub(a) / (24 * time.Hour))
}

func containsWeekday(days []time.Weekday, wd time.Weekday) bool {
	for _, d := range days {
		if d == wd {
			return true
		}
	}
	return false
}

func matchesMonthDay(monthDays []int, c time.Time) bool {
	last := daysInMonth(c.Year(), c.Month())
	for _, d := range monthDays {
		if d == LastDay {
			if c.Day() == last {
				return true
			}
			continue
		}
		if c.Day() == d {
			return true
		}
	}
	return false
}

// matchesSetPos checks the "Nth weekday of the month" form. Week-of-month
// is ceil(day/7); BySetPos=-1 means the month's last week-of-month.
func matchesSetPos(rule Rule, c time.Time) bool {
	if !containsWeekday(rule.ByWeekday, c.Weekday()) {
		return false
	}
	weekOfMonth := (c.Day() + 6) / 7
	want := rule.BySetPos
	if want == LastDay {
		want = (daysInMonth(c.Year(), c.Month()) + 6) / 7
	}
	return weekOfMonth == want
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
