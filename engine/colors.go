package engine

import (
	"github.com/nmoller/verdant/engine/turtle"
	"github.com/nmoller/verdant/types"
)

// AgeColor resolves the rendering config's color ramp at the given age. It
// is the same lookup the builder bakes into branch records.
func AgeColor(cfg *types.RenderConfig, age float32) [3]float32 {
	return turtle.AgeColor(cfg, age)
}
