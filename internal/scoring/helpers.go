package scoring

import (
	"math"
	"time"
)

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// bandScore returns the score of the first band whose Min v reaches; bands are sorted descending.
func bandScore(bands []Band, v, floor float64) float64 {
	for _, b := range bands {
		if v >= b.Min {
			return b.Score
		}
	}
	return floor
}

// dayBandScore returns the score of the first band days falls below; bands are sorted ascending.
func dayBandScore(bands []DayBand, days int, fallback float64) float64 {
	for _, b := range bands {
		if days < b.Below {
			return b.Score
		}
	}
	return fallback
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// wholeDays counts complete 24h periods from a to b; negative when b is before a.
func wholeDays(a, b time.Time) int {
	return int(math.Floor(b.Sub(a).Hours() / 24))
}
