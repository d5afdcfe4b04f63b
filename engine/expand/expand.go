// Package expand implements the materialized expansion strategy: the whole
// symbol buffer is rewritten for a fixed number of rounds before any turtle
// interpretation, each spliced symbol tagged with the generation that
// produced it.
package expand

import (
	"github.com/nmoller/verdant/engine/rng"
	"github.com/nmoller/verdant/engine/rules"
	"github.com/nmoller/verdant/types"
)

// Expand rewrites the axiom for exactly cfg.Iterations rounds and returns
// the flat buffer. Every Rule occurrence is replaced by a selected rule's
// result; a selection miss makes the symbol vanish. Rule symbols still
// present after the last round are left in the buffer; the interpreter
// drops them.
func Expand(cfg *types.BuildConfig, r *rng.RNG) []types.Symbol {
	buf := make([]types.Symbol, len(cfg.Initial))
	copy(buf, cfg.Initial)

	for round := uint32(0); round < cfg.Iterations; round++ {
		next := make([]types.Symbol, 0, len(buf)*2)
		rewrote := false

		for _, sym := range buf {
			if sym.Kind != types.SymRule {
				next = append(next, sym)
				continue
			}

			rewrote = true
			result := rules.Pick(cfg.RuleSets[sym.ID], float32(sym.Gen), r)
			for _, spliced := range result {
				spliced.Gen = sym.Gen + 1
				next = append(next, spliced)
			}
		}

		buf = next
		if !rewrote {
			break
		}
	}

	return buf
}
