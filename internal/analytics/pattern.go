package analytics

import (
	"github.com/javiermolinar/timetabler/internal/grid"
	"github.com/javiermolinar/timetabler/internal/lesson"
)

// Pattern labels.
const (
	PatternEmpty        = "Empty Schedule"
	PatternMixed        = "Mixed Timing"
	PatternDoubleHeavy  = "Double-Heavy"
	PatternBalanced     = "Balanced Distribution"
	PatternFrontLoaded  = "Front-Loaded"
	PatternDaily        = "Daily Touchpoint"
	PatternConcentrated = "Concentrated"
	PatternCustom       = "Custom Pattern"
)

// Pattern is a heuristic label for the shape of the week.
type Pattern struct {
	Type        string
	Description string
}

type patternRule struct {
	pattern Pattern
	match   func(s lesson.Store, a Analytics) bool
}

// Rules are evaluated in order; the first match wins.
var patternRules = []patternRule{
	{
		Pattern{PatternEmpty, "No lessons scheduled yet"},
		func(s lesson.Store, _ Analytics) bool { return s.IsEmpty() },
	},
	{
		Pattern{PatternMixed, "Flexible schedule with double lessons and evening sessions"},
		func(s lesson.Store, a Analytics) bool { return hasDoubles(s) && a.EveningLessons > 0 },
	},
	{
		Pattern{PatternDoubleHeavy, "Intensive approach with multiple double lessons"},
		func(_ lesson.Store, a Analytics) bool { return a.DoubleLessons >= 4 },
	},
	{
		Pattern{PatternBalanced, "Even spread across multiple days"},
		func(_ lesson.Store, a Analytics) bool { return a.TotalDays >= 3 && spread(a) <= 1 },
	},
	{
		Pattern{PatternFrontLoaded, "Heavy concentration early in the week"},
		func(_ lesson.Store, a Analytics) bool {
			return a.Active(grid.Monday) && a.Active(grid.Tuesday) &&
				!a.Active(grid.Thursday) && !a.Active(grid.Friday)
		},
	},
	{
		Pattern{PatternDaily, "Lessons every day of the week"},
		func(_ lesson.Store, a Analytics) bool { return a.TotalDays == len(grid.Days()) },
	},
	{
		Pattern{PatternConcentrated, "Lessons packed into one or two days"},
		func(_ lesson.Store, a Analytics) bool { return a.TotalDays <= 2 },
	},
}

var customPattern = Pattern{PatternCustom, "Regular teaching schedule"}

func detectPattern(s lesson.Store, a Analytics) Pattern {
	for _, r := range patternRules {
		if r.match(s, a) {
			return r.pattern
		}
	}
	return customPattern
}

func hasDoubles(s lesson.Store) bool {
	found := false
	s.Each(func(sl lesson.Slot) {
		if sl.IsDoubleLesson {
			found = true
		}
	})
	return found
}

// spread is the difference between the busiest and quietest active day.
func spread(a Analytics) int {
	lo, hi := -1, 0
	for _, n := range a.DailyDistribution {
		if lo < 0 || n < lo {
			lo = n
		}
		hi = max(hi, n)
	}
	if lo < 0 {
		return 0
	}
	return hi - lo
}
