// Package analytics derives metrics, a pattern label, a workload level and
// advisory tips from a lesson store. Everything here is recomputed on demand.
package analytics

import (
	"math"
	"time"

	"github.com/javiermolinar/timetabler/internal/grid"
	"github.com/javiermolinar/timetabler/internal/lesson"
)

// Minutes per session kind.
const (
	SingleMinutes = grid.LessonMinutes
	DoubleMinutes = 2 * grid.LessonMinutes
)

// Analytics holds the derived metrics for one store.
type Analytics struct {
	TotalSessions         int
	TotalHours            float64
	SingleLessons         int
	DoubleLessons         int
	EveningLessons        int
	DailyDistribution     map[grid.Day]int
	TotalDays             int
	AverageSessionsPerDay float64
	PatternType           string
	PatternDescription    string
	WorkloadLevel         Level
	WorkloadPercentage    int
	Recommendation        string
	Efficiency            int
	LastUpdated           time.Time
}

// Sessions returns the session count for day, zero when inactive.
func (a Analytics) Sessions(day grid.Day) int {
	return a.DailyDistribution[day]
}

// Active reports whether day has at least one session.
func (a Analytics) Active(day grid.Day) bool {
	return a.DailyDistribution[day] > 0
}

// Compute derives analytics from s. now is only stamped into LastUpdated.
func Compute(s lesson.Store, now time.Time) Analytics {
	a := Analytics{
		DailyDistribution: make(map[grid.Day]int),
		LastUpdated:       now,
	}

	totalSlots := 0
	s.Each(func(sl lesson.Slot) {
		totalSlots++
		if !sl.IsDoubleLesson {
			a.SingleLessons++
		} else if sl.DoublePosition == lesson.PositionTop {
			a.DoubleLessons++
		}
		if sl.IsEvening {
			a.EveningLessons++
		}
		if sl.IsSession() {
			a.DailyDistribution[sl.Day]++
		}
	})

	a.TotalSessions = a.SingleLessons + a.DoubleLessons
	minutes := a.SingleLessons*SingleMinutes + a.DoubleLessons*DoubleMinutes
	a.TotalHours = round1(float64(minutes) / 60)
	a.TotalDays = len(a.DailyDistribution)
	if a.TotalDays > 0 {
		a.AverageSessionsPerDay = float64(a.TotalSessions) / float64(a.TotalDays)
	}

	p := detectPattern(s, a)
	a.PatternType = p.Type
	a.PatternDescription = p.Description

	w := WeightedLoad(totalSlots, a.DoubleLessons, a.EveningLessons)
	a.WorkloadLevel, a.WorkloadPercentage = Workload(w)
	a.Recommendation = a.WorkloadLevel.Recommendation()

	a.Efficiency = int(math.Round(float64(a.TotalSessions) / float64(max(a.TotalDays, 1)) * 20))
	return a
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
