// Package scoring accumulates quiz answer points into a per-coin tally and
// selects the winning match.
package scoring

import "memematch-service/internal/domain"

// Apply adds an answered option's point map to the tally and returns the
// updated copy; the input tally is not mutated. When animalRestriction is
// set and not "All", coins whose animal theme differs are skipped entirely
// rather than zeroed. Coins outside the fixed set are ignored.
func Apply(t domain.Tally, points map[domain.Coin]int, animalRestriction string) domain.Tally {
	out := t.Clone()
	for coin, pts := range points {
		if !coin.Known() {
			continue
		}
		if animalRestriction != "" && animalRestriction != "All" && coin.Animal() != animalRestriction {
			continue
		}
		out[coin] += pts
	}
	return out
}

// Winner returns the coin with the highest positive tally. Coins at or
// below zero are excluded; if none remain the default coin wins. Ties go to
// the earliest coin in canonical order, so the result is deterministic.
func Winner(t domain.Tally) domain.Coin {
	best := domain.DefaultCoin
	bestScore := 0
	for _, coin := range domain.Coins() {
		if score := t[coin]; score > bestScore {
			best = coin
			bestScore = score
		}
	}
	return best
}
