// Package rules implements generation-gated weighted rule selection:
// filter by gate, sum weights, roulette draw.
package rules

import (
	"github.com/nmoller/verdant/engine/rng"
	"github.com/nmoller/verdant/types"
)

// Eligible reports whether the rule's generation gate admits gen.
// The gate is [MinGen, MaxGen), open-ended where absent.
func Eligible(r *types.Rule, gen float32) bool {
	if r.MinGen != nil && gen < *r.MinGen {
		return false
	}
	if r.MaxGen != nil && gen >= *r.MaxGen {
		return false
	}
	return true
}

// PickFrom selects one rule's result from candidates by weighted roulette,
// considering only rules whose gate admits gen. It returns nil when no rule
// is eligible or the eligible weight sum is not positive; the caller treats
// that as the symbol expanding to nothing.
//
// No entropy is consumed on a miss, which keeps seeded builds reproducible
// across grammars that gate rules in and out.
func PickFrom(candidates []types.Rule, gen float32, r *rng.RNG) []types.Symbol {
	var sum float32
	for i := range candidates {
		if Eligible(&candidates[i], gen) {
			sum += candidates[i].Chance
		}
	}
	if sum <= 0 {
		return nil
	}

	n := r.Range(0, sum)
	var t float32
	for i := range candidates {
		if !Eligible(&candidates[i], gen) {
			continue
		}
		t += candidates[i].Chance
		// Strictly greater: ties go to the next rule.
		if t > n {
			return candidates[i].Result
		}
	}
	return nil
}

// Pick selects from the currently active variant of a symbol's rule sets.
func Pick(sets *types.RuleSets, gen float32, r *rng.RNG) []types.Symbol {
	if sets == nil || len(sets.Sets) == 0 {
		return nil
	}
	current := sets.Current
	if current < 0 || current >= len(sets.Sets) {
		current = 0
	}
	return PickFrom(sets.Sets[current].Rules, gen, r)
}
