package helpers

import "sort"

// Statistic is a usage count for one name (an intent kind, a backend).
type Statistic struct {
	Name  string
	Count int
}

// CalculateTopEntries returns the most frequent names, highest count first.
// If limit is 0 or negative, returns all entries.
func CalculateTopEntries(frequency map[string]int, limit int) []Statistic {
	stats := make([]Statistic, 0, len(frequency))
	for name, count := range frequency {
		stats = append(stats, Statistic{Name: name, Count: count})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count == stats[j].Count {
			return stats[i].Name < stats[j].Name
		}
		return stats[i].Count > stats[j].Count
	})

	if limit > 0 && len(stats) > limit {
		return stats[:limit]
	}
	return stats
}

// CalculateSuccessRate calculates the success rate as a percentage
func CalculateSuccessRate(successfulCount int, totalCount int) float64 {
	if totalCount == 0 {
		return 0.0
	}
	return float64(successfulCount) / float64(totalCount) * 100.0
}
