package recurrence

import "time"

// maxSteps bounds Expand so a misconfigured rule can never loop forever.
const maxSteps = 1000

// Expand returns every calendar date in [rangeStart, rangeEnd] (inclusive)
// on which Matches is true for a series anchored at anchor. Dates are
// returned date-only in UTC, in ascending order, fully materialized.
//
// Iteration walks day-by-day from the later of anchor and rangeStart, so
// the step cap covers the queried window rather than the distance back to
// the anchor.
func Expand(anchor, rangeStart, rangeEnd time.Time, rule Rule) []time.Time {
	a := DateOnly(anchor)
	start := DateOnly(rangeStart)
	end := DateOnly(rangeEnd)

	if end.Before(start) {
		return nil
	}

	if rule.Freq == None {
		if !a.Before(start) && !a.After(end) {
			return []time.Time{a}
		}
		return nil
	}

	if a.After(start) {
		start = a
	}

	var dates []time.Time
	cur := start
	for steps := 0; steps < maxSteps && !cur.After(end); steps++ {
		if Matches(a, cur, rule) {
			dates = append(dates, cur)
		}
		cur = cur.AddDate(0, 0, 1)
	}
	return dates
}
