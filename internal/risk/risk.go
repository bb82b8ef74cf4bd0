// Package risk classifies travel destinations by disease risk. A periodically
// refreshed in-memory map of lowercase country name → level backs a resolver
// that tolerates "City, Country" destination strings.
package risk

// Level is a travel risk classification.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
	// LevelUnknown is the resolver's explicit fallback for destinations with
	// no cached match. Never stored in the cache itself.
	LevelUnknown Level = "unknown"
)

// Valid reports whether l is one of the defined levels.
func (l Level) Valid() bool {
	switch l {
	case LevelLow, LevelMedium, LevelHigh, LevelUnknown:
		return true
	}
	return false
}

// Case-count thresholds for classification.
const (
	highCaseThreshold   = 10000
	mediumCaseThreshold = 1000
)

// ClassifyCases maps a daily new-case count to a risk level.
func ClassifyCases(todayCases int) Level {
	switch {
	case todayCases > highCaseThreshold:
		return LevelHigh
	case todayCases > mediumCaseThreshold:
		return LevelMedium
	default:
		return LevelLow
	}
}
