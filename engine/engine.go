// Package engine ties the grammar, random source, and turtle builder into a
// single generation pipeline. Each Build call produces a fresh, independent
// list of shape records; nothing is shared between passes except the
// immutable configuration, the random source, and the growth parameter.
package engine

import (
	"sort"

	"github.com/nmoller/verdant/engine/expand"
	"github.com/nmoller/verdant/engine/rng"
	"github.com/nmoller/verdant/engine/turtle"
	"github.com/nmoller/verdant/types"
)

// Engine holds a loaded configuration and the mutable bits around it: the
// random source, the growth interpolation, and the active rule-set variants
// inside the config.
type Engine struct {
	Config *types.Config
	RNG    *rng.RNG

	// Interpolation is the fraction of total growth elapsed, in [0, 1].
	// Callers may set it between builds.
	Interpolation float32
}

// New creates an engine from a loaded configuration, fully grown.
func New(cfg *types.Config, seed int64) *Engine {
	return &Engine{
		Config:        cfg,
		RNG:           rng.New(seed),
		Interpolation: 1,
	}
}

// Build generates one plant using the recursive strategy: rule expansion is
// interleaved with turtle interpretation, so negligible branches are pruned
// under partial growth.
func (e *Engine) Build() []types.RenderShape {
	return turtle.Build(e.Config, e.RNG, e.Interpolation)
}

// BuildMaterialized generates one plant by first rewriting the full symbol
// buffer for the configured number of iterations, then interpreting the
// flat result. Equivalent to Build at integral growth for grammars whose
// selection is deterministic; the strategies consume entropy in different
// orders otherwise.
func (e *Engine) BuildMaterialized() []types.RenderShape {
	flat := expand.Expand(&e.Config.Rules, e.RNG)
	return turtle.Interpret(flat, e.Config, e.RNG, e.Interpolation)
}

// Reseed replaces the random source deterministically.
func (e *Engine) Reseed(seed int64) {
	e.RNG = rng.New(seed)
}

// RandomizeRuleSets re-rolls which rule-set variant is current: for all
// symbols when n < 0, otherwise for a random subset of up to n symbols.
// Symbols are visited in sorted order so the draws are reproducible.
func (e *Engine) RandomizeRuleSets(n int) {
	sets := e.Config.Rules.RuleSets

	ids := make([]byte, 0, len(sets))
	for id := range sets {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	if n < 0 || n >= len(ids) {
		for _, id := range ids {
			s := sets[id]
			if len(s.Sets) > 0 {
				s.Current = e.RNG.Intn(len(s.Sets))
			}
		}
		return
	}

	for i := 0; i < n && len(ids) > 0; i++ {
		j := e.RNG.Intn(len(ids))
		s := sets[ids[j]]
		ids = append(ids[:j], ids[j+1:]...)
		if len(s.Sets) > 0 {
			s.Current = e.RNG.Intn(len(s.Sets))
		}
	}
}
