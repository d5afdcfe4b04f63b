package turtle

import (
	"github.com/nmoller/verdant/engine/rng"
	"github.com/nmoller/verdant/types"
)

// Sample draws a concrete float from a symbol parameter. Default parameters
// return the caller-supplied fallback; multi-choice parameters first pick
// one entry uniformly, then ranges draw uniformly within their span.
func Sample(v types.Values, def float32, r *rng.RNG) float32 {
	var val types.Value
	switch v.Kind {
	case types.ValuesDefault:
		return def
	case types.ValuesExact:
		val = v.Single
	case types.ValuesMultiple:
		if len(v.Choices) == 0 {
			return def
		}
		val = v.Choices[r.Intn(len(v.Choices))]
	}

	if val.Kind == types.ValueRange {
		return r.Range(val.Min, val.Max)
	}
	return val.Exact
}
