// Package loader loads plant configurations into immutable Config structs.
// Two authoring formats are supported: the JSON document format and a Lua
// front-end for hand-authoring grammars. The Lua VM is discarded after
// loading; no Lua is carried into the build path.
package loader

import (
	"fmt"
	"os"
	"strings"

	"github.com/nmoller/verdant/types"
)

// Load reads a configuration file, dispatching on extension: .lua files go
// through the Lua front-end, everything else is parsed as JSON.
func Load(path string) (*types.Config, error) {
	if strings.HasSuffix(path, ".lua") {
		return LoadLua(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return LoadJSON(data)
}

// finish validates a compiled config and normalizes its defaults.
// Validation warnings do not fail the load.
func finish(cfg *types.Config) (*types.Config, error) {
	if cfg.Rendering.WidthMod == 0 {
		cfg.Rendering.WidthMod = 1
	}
	if cfg.Rendering.Shapes == nil {
		cfg.Rendering.Shapes = map[byte]types.Shape{}
	}
	if cfg.Rules.RuleSets == nil {
		cfg.Rules.RuleSets = map[byte]*types.RuleSets{}
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// fillChances distributes the chance left over after explicit weights evenly
// among entries that did not specify one. Performed once at load time;
// selection never re-normalizes.
func fillChances(explicit []*float32) []float32 {
	remaining := float32(1)
	unspecified := 0
	for _, c := range explicit {
		if c != nil {
			remaining -= *c
		} else {
			unspecified++
		}
	}

	divided := float32(0)
	if unspecified > 0 && remaining > 0 {
		divided = remaining / float32(unspecified)
	}

	out := make([]float32, len(explicit))
	for i, c := range explicit {
		if c != nil {
			out[i] = *c
		} else {
			out[i] = divided
		}
	}
	return out
}
