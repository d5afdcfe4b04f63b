// Package growth computes the continuous growth factor that turns discrete
// L-system generations into smooth animated growth.
package growth

import "math"

// Epsilon is the factor below which a branch is visually negligible and
// expansion may stop early.
const Epsilon = 1e-3

// LengthMod returns the length multiplier for a branch materializing at
// generation gen, given the fraction of total growth elapsed and the
// iteration ceiling.
//
// The virtual generation is interpolation*iterations. Branches beyond it
// have factor 0. Once the virtual generation passes gen the factor rises
// along a normalized sigmoid of t = virtual/(gen+1), raised to a power that
// shrinks with the distance past gen, so mature branches settle at 1 and
// stop visibly changing.
//
// Pure and deterministic: identical inputs give bit-identical output, which
// downstream width and color-age interpolation rely on across frames.
func LengthMod(gen float32, interpolation float32, iterations uint32) float32 {
	virtual := float64(interpolation) * float64(iterations)
	past := virtual - float64(gen)
	if past <= 0 {
		return 0
	}

	t := virtual / (float64(gen) + 1)
	sig := (1 - math.Exp(-2*t)) / (1 + math.Exp(-2*t))
	return float32(math.Pow(sig, 1/(past*past)))
}
