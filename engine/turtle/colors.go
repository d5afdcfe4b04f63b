package turtle

import "github.com/nmoller/verdant/types"

// AgeColor linearly interpolates the rendering config's color ramp at the
// given age. Ages before the first stop take the first color, ages past the
// last stop take the last. An empty ramp is white.
func AgeColor(cfg *types.RenderConfig, age float32) [3]float32 {
	stops := cfg.Colors
	if len(stops) == 0 {
		return [3]float32{1, 1, 1}
	}
	if age <= stops[0].Age {
		return stops[0].Color
	}

	for i := 1; i < len(stops); i++ {
		if stops[i].Age < age {
			continue
		}
		prev, next := stops[i-1], stops[i]
		span := next.Age - prev.Age
		if span <= 0 {
			return next.Color
		}
		t := (age - prev.Age) / span
		var out [3]float32
		for c := 0; c < 3; c++ {
			out[c] = prev.Color[c]*(1-t) + next.Color[c]*t
		}
		return out
	}

	return stops[len(stops)-1].Color
}
