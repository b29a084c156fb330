package recurrence

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidRule is wrapped by all Validate failures.
var ErrInvalidRule = errors.New("invalid recurrence rule")

type Freq int

const (
	None Freq = iota
	Daily
	Weekly
	Monthly
)

var freqNames = map[Freq]string{
	None:    "NONE",
	Daily:   "DAILY",
	Weekly:  "WEEKLY",
	Monthly: "MONTHLY",
}

var freqFromName = map[string]Freq{
	"NONE":    None,
	"DAILY":   Daily,
	"WEEKLY":  Weekly,
	"MONTHLY": Monthly,
}

func (f Freq) String() string {
	return freqNames[f]
}

func (f Freq) MarshalJSON() ([]byte, error) {
	name, ok := freqNames[f]
	if !ok {
		return nil, fmt.Errorf("unknown frequency: %d", int(f))
	}
	return json.Marshal(name)
}

func (f *Freq) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, ok := freqFromName[strings.ToUpper(name)]
	if !ok {
		return fmt.Errorf("unknown frequency: %q", name)
	}
	*f = parsed
	return nil
}

// LastDay is the sentinel accepted in ByMonthDay ("last calendar day of the
// month") and in BySetPos ("last week of the month").
const LastDay = -1

// Rule describes how an entity repeats from its anchor date.
//
// Weekday ordinals are Sunday-first (0=Sunday..6=Saturday), matching the
// persisted JSON shape; time.Weekday uses the same numbering. Count and
// Until are carried for round-tripping but are not consulted by Matches or
// Expand.
type Rule struct {
	Freq       Freq           `json:"freq"`
	Interval   int            `json:"interval"`
	ByWeekday  []time.Weekday `json:"byWeekday,omitempty"`
	ByMonthDay []int          `json:"byMonthDay,omitempty"` // 1..31, or -1 for last day
	BySetPos   int            `json:"bySetPos,omitempty"`   // 1..4, or -1 for last; 0 = unset
	Count      int            `json:"count,omitempty"`
	Until      string         `json:"until,omitempty"` // ISO date, inclusive
}

// Validate reports misconfigured rules. It is meant for the API boundary;
// Matches and Expand never call it and tolerate any input.
func (r Rule) Validate() error {
	if _, ok := freqNames[r.Freq]; !ok {
		return fmt.Errorf("%w: unknown frequency %d", ErrInvalidRule, int(r.Freq))
	}
	if r.Interval < 0 {
		return fmt.Errorf("%w: interval %d", ErrInvalidRule, r.Interval)
	}
	for _, wd := range r.ByWeekday {
		if wd < time.Sunday || wd > time.Saturday {
			return fmt.Errorf("%w: weekday %d out of range", ErrInvalidRule, int(wd))
		}
	}
	for _, d := range r.ByMonthDay {
		if d != LastDay && (d < 1 || d > 31) {
			return fmt.Errorf("%w: month day %d out of range", ErrInvalidRule, d)
		}
	}
	if r.BySetPos != 0 && r.BySetPos != LastDay && (r.BySetPos < 1 || r.BySetPos > 4) {
		return fmt.Errorf("%w: set position %d out of range", ErrInvalidRule, r.BySetPos)
	}
	if len(r.ByMonthDay) > 0 && r.BySetPos != 0 {
		return fmt.Errorf("%w: byMonthDay and bySetPos are mutually exclusive", ErrInvalidRule)
	}
	if r.BySetPos != 0 && len(r.ByWeekday) == 0 {
		return fmt.Errorf("%w: bySetPos requires byWeekday", ErrInvalidRule)
	}
	if r.Count < 0 {
		return fmt.Errorf("%w: count %d", ErrInvalidRule, r.Count)
	}
	if r.Until != "" {
		if _, err := time.Parse("2006-01-02", r.Until); err != nil {
			return fmt.Errorf("%w: until %q", ErrInvalidRule, r.Until)
		}
	}
	return nil
}

// IsRecurring reports whether the rule repeats at all.
func (r Rule) IsRecurring() bool {
	return r.Freq != None
}

// interval returns the effective interval, clamped to a minimum of 1 so a
// zero-valued or misconfigured rule cannot stall iteration.
func (r Rule) interval() int {
	if r.Interval < 1 {
		return 1
	}
	return r.Interval
}

// Describe returns a human-readable description of the rule.
func (r Rule) Describe() string {
	switch r.Freq {
	case None:
		return "Does not repeat"
	case Daily:
		if r.interval() > 1 {
			return fmt.Sprintf("Repeats every %d days", r.interval())
		}
		return "Repeats daily"
	case Weekly:
		prefix := "Repeats weekly"
		if r.interval() == 2 {
			prefix = "Repeats every 2 weeks"
		} else if r.interval() > 2 {
			prefix = fmt.Sprintf("Repeats every %d weeks", r.interval())
		}
		if len(r.ByWeekday) > 0 {
			var names []string
			for _, d := range r.ByWeekday {
				names = append(names, d.String()[:3])
			}
			return prefix + " on " + strings.Join(names, ", ")
		}
		return prefix
	case Monthly:
		prefix := "Repeats monthly"
		if r.interval() > 1 {
			prefix = fmt.Sprintf("Repeats every %d months", r.interval())
		}
		switch {
		case len(r.ByMonthDay) == 1 && r.ByMonthDay[0] == LastDay:
			return prefix + " on the last day"
		case r.BySetPos == LastDay && len(r.ByWeekday) > 0:
			return prefix + " on the last " + r.ByWeekday[0].String()
		case r.BySetPos > 0 && len(r.ByWeekday) > 0:
			ordinals := []string{"first", "second", "third", "fourth"}
			return fmt.Sprintf("%s on the %s %s", prefix, ordinals[r.BySetPos-1], r.ByWeekday[0].String())
		}
		return prefix
	}
	return ""
}
