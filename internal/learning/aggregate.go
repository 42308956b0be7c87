package learning

import (
	"math"

	"github.com/celyn/geirfa/internal/models"
)

// Aggregate rolls progress records for one category up into display stats.
// It is a pure function of its input; callers recompute it after every write
// rather than patching a cached copy, so the numbers cannot drift.
func (s Settings) Aggregate(category string, records []models.Progress) models.CategoryStats {
	stats := models.CategoryStats{
		Category:   category,
		TotalCards: len(records),
	}
	for _, p := range records {
		stats.TotalPoints += p.Points
		if p.Points >= s.MaxPoints {
			stats.MasteredCards++
		}
	}
	if stats.TotalCards > 0 {
		stats.AveragePoints = int(math.Round(float64(stats.TotalPoints) / float64(stats.TotalCards)))
	}
	return stats
}
