package analytics

import (
	"fmt"
	"strings"

	"github.com/javiermolinar/timetabler/internal/grid"
	"github.com/javiermolinar/timetabler/internal/lesson"
)

// MaxTips is the number of tips surfaced at once.
const MaxTips = 5

// MilestoneSessions is the session count that earns the milestone tip.
const MilestoneSessions = 10

// LowEfficiency is the efficiency score below which grouping is suggested.
const LowEfficiency = 60

// TipKind drives how a tip is presented.
type TipKind string

const (
	TipInfo         TipKind = "info"
	TipSuccess      TipKind = "success"
	TipWarning      TipKind = "warning"
	TipOptimization TipKind = "optimization"
	TipGoal         TipKind = "goal"
)

// Tip is one advisory message.
type Tip struct {
	ID         string
	Kind       TipKind
	Title      string
	Message    string
	Priority   string
	Actionable bool
}

// Tip titles.
const (
	TipTitleWelcome    = "Start Building Your Timetable"
	TipTitleLight      = "Light Schedule Detected"
	TipTitleOverloaded = "Schedule Overload"
	TipTitleSingleDay  = "All Lessons on One Day"
	TipTitleImbalance  = "Balance Double and Single Lessons"
	TipTitleGaps       = "Schedule Gaps Detected"
	TipTitleOptimal    = "Perfect Balance!"
	TipTitleEvening    = "Evening Session Strategy"
	TipTitleEfficiency = "Efficiency Opportunity"
	TipTitleMilestone  = "Milestone Reached"
)

type tipRule func(a Analytics) (Tip, bool)

// tipRules are listed in priority order.
var tipRules = []tipRule{
	workloadWarningTip,
	singleDayTip,
	imbalanceTip,
	gapTip,
	optimalTip,
	eveningTip,
	efficiencyTip,
	milestoneTip,
}

// Tips returns up to MaxTips tips for the store in rule order.
// An empty store only gets the welcome tip.
func Tips(s lesson.Store, a Analytics) []Tip {
	if s.IsEmpty() {
		return []Tip{{
			ID:       "welcome",
			Kind:     TipGoal,
			Title:    TipTitleWelcome,
			Message:  "Pick a subject and click a grid cell to add your first lesson, or apply a quick template.",
			Priority: "high",
		}}
	}

	var tips []Tip
	for _, rule := range tipRules {
		if t, ok := rule(a); ok {
			tips = append(tips, t)
			if len(tips) == MaxTips {
				break
			}
		}
	}
	return tips
}

func workloadWarningTip(a Analytics) (Tip, bool) {
	switch a.WorkloadLevel {
	case LevelLight:
		return Tip{
			ID:       "workload-light",
			Kind:     TipInfo,
			Title:    TipTitleLight,
			Message:  "Your schedule has room for more lessons. Consider adding sessions for better curriculum coverage.",
			Priority: "medium",
		}, true
	case LevelOverloaded:
		return Tip{
			ID:       "workload-overload",
			Kind:     TipWarning,
			Title:    TipTitleOverloaded,
			Message:  "Consider reducing lessons or redistributing across more days to prevent burnout.",
			Priority: "high",
		}, true
	}
	return Tip{}, false
}

func singleDayTip(a Analytics) (Tip, bool) {
	if a.TotalDays != 1 {
		return Tip{}, false
	}
	return Tip{
		ID:         "single-day",
		Kind:       TipWarning,
		Title:      TipTitleSingleDay,
		Message:    "Spreading lessons over several days helps students retain material between sessions.",
		Priority:   "high",
		Actionable: true,
	}, true
}

// imbalanceTip fires when double pairs outnumber single lessons.
func imbalanceTip(a Analytics) (Tip, bool) {
	if a.DoubleLessons < 2 || a.DoubleLessons <= a.SingleLessons {
		return Tip{}, false
	}
	return Tip{
		ID:         "double-imbalance",
		Kind:       TipOptimization,
		Title:      TipTitleImbalance,
		Message:    "Multiple double lessons require varied activities. Mix in single lessons for review and practice.",
		Priority:   "medium",
		Actionable: true,
	}, true
}

func gapTip(a Analytics) (Tip, bool) {
	gaps := Gaps(a)
	if len(gaps) == 0 {
		return Tip{}, false
	}
	return Tip{
		ID:         "schedule-gaps",
		Kind:       TipOptimization,
		Title:      TipTitleGaps,
		Message:    fmt.Sprintf("Large gaps found: %s. Plan review materials to maintain continuity.", strings.Join(gaps, ", ")),
		Priority:   "medium",
		Actionable: true,
	}, true
}

func optimalTip(a Analytics) (Tip, bool) {
	if a.WorkloadLevel != LevelOptimal {
		return Tip{}, false
	}
	return Tip{
		ID:       "workload-optimal",
		Kind:     TipSuccess,
		Title:    TipTitleOptimal,
		Message:  "Your workload is optimal for effective teaching and learning.",
		Priority: "low",
	}, true
}

func eveningTip(a Analytics) (Tip, bool) {
	if a.EveningLessons == 0 {
		return Tip{}, false
	}
	return Tip{
		ID:       "evening-lessons",
		Kind:     TipInfo,
		Title:    TipTitleEvening,
		Message:  "Evening classes work well for review, conversation practice, and interactive learning.",
		Priority: "medium",
	}, true
}

func efficiencyTip(a Analytics) (Tip, bool) {
	if a.Efficiency >= LowEfficiency {
		return Tip{}, false
	}
	return Tip{
		ID:         "efficiency-low",
		Kind:       TipOptimization,
		Title:      TipTitleEfficiency,
		Message:    "Consider grouping lessons on fewer days to reduce setup time and increase focus.",
		Priority:   "medium",
		Actionable: true,
	}, true
}

func milestoneTip(a Analytics) (Tip, bool) {
	if a.TotalSessions < MilestoneSessions {
		return Tip{}, false
	}
	return Tip{
		ID:       "milestone",
		Kind:     TipSuccess,
		Title:    TipTitleMilestone,
		Message:  fmt.Sprintf("%d sessions planned this week. Your timetable is taking shape.", a.TotalSessions),
		Priority: "low",
	}, true
}

// Gaps lists consecutive active weekdays separated by two or more inactive
// ones, formatted as "MON-THU (2 days)".
func Gaps(a Analytics) []string {
	var gaps []string
	prev := -1
	for i, d := range grid.Days() {
		if !a.Active(d) {
			continue
		}
		if prev >= 0 {
			if between := i - prev - 1; between >= 2 {
				gaps = append(gaps, fmt.Sprintf("%s-%s (%d days)", grid.Days()[prev], d, between))
			}
		}
		prev = i
	}
	return gaps
}

// Recommendations returns actionable follow-ups for the schedule.
func Recommendations(a Analytics) []string {
	var out []string
	switch a.WorkloadLevel {
	case LevelLight:
		if a.TotalSessions > 0 {
			out = append(out, "Consider adding more lessons for comprehensive curriculum coverage")
		}
	case LevelOverloaded:
		out = append(out, "Reduce lesson load or redistribute across more days")
	}
	if len(Gaps(a)) > 0 {
		out = append(out, "Plan connecting activities to maintain learning continuity")
	}
	if a.DoubleLessons > 0 {
		out = append(out, "Prepare engaging activities for extended double lesson periods")
	}
	return out
}
