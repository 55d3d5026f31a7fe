package analytics

import "math"

// Level is a coarse classification of the weighted weekly load.
type Level string

const (
	LevelLight      Level = "light"
	LevelOptimal    Level = "optimal"
	LevelHeavy      Level = "heavy"
	LevelOverloaded Level = "overloaded"
)

// Load thresholds; each bound is inclusive for the lower level.
const (
	lightMax   = 5.0
	optimalMax = 12.0
	heavyMax   = 18.0
)

// Recommendation returns the advice sentence attached to a level.
func (l Level) Recommendation() string {
	switch l {
	case LevelLight:
		return "Consider adding more lessons for comprehensive coverage"
	case LevelOptimal:
		return "Perfect balance for effective teaching"
	case LevelHeavy:
		return "Intensive schedule, ensure adequate preparation time"
	case LevelOverloaded:
		return "Consider reducing lessons or redistributing across more days"
	default:
		return ""
	}
}

// WeightedLoad is the workload input: every slot counts once, each double
// pair adds half a slot and each evening slot adds 0.3.
func WeightedLoad(totalSlots, doublePairs, eveningSlots int) float64 {
	return float64(totalSlots) + 0.5*float64(doublePairs) + 0.3*float64(eveningSlots)
}

// Workload maps a weighted load to its level and a 0-100 gauge percentage.
func Workload(w float64) (Level, int) {
	switch {
	case w <= 0:
		return LevelLight, 0
	case w <= lightMax:
		return LevelLight, pct(w / lightMax * 25)
	case w <= optimalMax:
		return LevelOptimal, pct(25 + (w-lightMax)/(optimalMax-lightMax)*50)
	case w <= heavyMax:
		return LevelHeavy, pct(75 + (w-optimalMax)/(heavyMax-optimalMax)*20)
	default:
		return LevelOverloaded, min(100, pct(95+(w-heavyMax)/5*5))
	}
}

func pct(v float64) int {
	return int(math.Round(v))
}
