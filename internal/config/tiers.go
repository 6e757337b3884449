package config

import (
	"math"
	"sort"
)

// Tier is an achievement resolved against a concrete catalog size.
type Tier struct {
	Count int    // Discovery count that unlocks the tier
	Title string // Notification title
}

// Tiers resolves the configured achievement fractions against a catalog of
// the given size. Each fraction maps to ceil(fraction*size) discoveries.
// Counts below MinAchievementCount are raised to it (the floor never exceeds
// the catalog size), and when several fractions land on the same count the
// smallest fraction's title wins.
// The result is sorted by count.
func (p ProgressionConfig) Tiers(catalogSize int) []Tier {
	if catalogSize <= 0 {
		return nil
	}

	type candidate struct {
		fraction float64
		title    string
	}
	byCount := make(map[int]candidate)
	floor := min(max(p.MinAchievementCount, 1), catalogSize)

	for _, a := range p.Achievements {
		frac := clampF(a.Fraction, 0, 1)
		if frac == 0 {
			continue
		}
		count := int(math.Ceil(frac*float64(catalogSize) - 1e-9))
		count = min(max(count, floor), catalogSize)
		if prev, ok := byCount[count]; ok && prev.fraction <= frac {
			continue
		}
		byCount[count] = candidate{fraction: frac, title: a.Title}
	}

	tiers := make([]Tier, 0, len(byCount))
	for count, c := range byCount {
		tiers = append(tiers, Tier{Count: count, Title: c.title})
	}
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].Count < tiers[j].Count })
	return tiers
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
