package loader

import (
	"encoding/json"
	"fmt"

	"github.com/nmoller/verdant/engine/parser"
	"github.com/nmoller/verdant/types"
)

// Shape descriptors are externally tagged: {"Branch": {...}} etc., so config
// documents read the same as the original authoring format.
type shapeJSON struct {
	Branch *struct {
		Width  float32 `json:"width"`
		Length float32 `json:"length"`
	} `json:"Branch"`
	Line *struct {
		Width  float32    `json:"width"`
		Length float32    `json:"length"`
		Color  [3]float32 `json:"color"`
	} `json:"Line"`
	Circle *struct {
		Size  float32    `json:"size"`
		Color [3]float32 `json:"color"`
	} `json:"Circle"`
}

type colorStopJSON struct {
	Age   float32    `json:"age"`
	Color [3]float32 `json:"color"`
}

type renderingJSON struct {
	DefaultAngleChange float32              `json:"default_angle_change"`
	WidthMod           *float32             `json:"width_mod"`
	Shapes             map[string]shapeJSON `json:"shapes"`
	Colors             []colorStopJSON      `json:"colors"`
}

type ruleJSON struct {
	Result string   `json:"result"`
	Chance *float32 `json:"chance"`
	MinGen *float32 `json:"min_gen"`
	MaxGen *float32 `json:"max_gen"`
}

type ruleSetJSON struct {
	Rules  []ruleJSON `json:"rules"`
	Chance *float32   `json:"chance"`
}

type rulesJSON struct {
	Iterations uint32                       `json:"iterations"`
	Initial    string                       `json:"initial"`
	Rules      map[string][]json.RawMessage `json:"rules"`
}

type configJSON struct {
	Rendering renderingJSON `json:"rendering"`
	Rules     rulesJSON     `json:"rules"`
}

// LoadJSON parses and validates a JSON configuration document.
func LoadJSON(data []byte) (*types.Config, error) {
	var doc configJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing config JSON: %w", err)
	}

	cfg := &types.Config{
		Rendering: types.RenderConfig{
			DefaultAngle: doc.Rendering.DefaultAngleChange,
			WidthMod:     1,
			Shapes:       map[byte]types.Shape{},
		},
		Rules: types.BuildConfig{
			Iterations: doc.Rules.Iterations,
			Initial:    parser.Parse(doc.Rules.Initial),
			RuleSets:   map[byte]*types.RuleSets{},
		},
	}
	if doc.Rendering.WidthMod != nil {
		cfg.Rendering.WidthMod = *doc.Rendering.WidthMod
	}

	for key, sj := range doc.Rendering.Shapes {
		if len(key) != 1 {
			return nil, fmt.Errorf("shape key %q: object ids are single characters", key)
		}
		shape, err := compileShape(key, sj)
		if err != nil {
			return nil, err
		}
		cfg.Rendering.Shapes[key[0]] = shape
	}

	for _, c := range doc.Rendering.Colors {
		cfg.Rendering.Colors = append(cfg.Rendering.Colors, types.ColorStop{Age: c.Age, Color: c.Color})
	}

	for key, raw := range doc.Rules.Rules {
		if len(key) != 1 {
			return nil, fmt.Errorf("rule key %q: rule ids are single characters", key)
		}
		sets, err := compileRuleSets(key, raw)
		if err != nil {
			return nil, err
		}
		cfg.Rules.RuleSets[key[0]] = sets
	}

	return finish(cfg)
}

func compileShape(key string, sj shapeJSON) (types.Shape, error) {
	switch {
	case sj.Branch != nil:
		return types.Shape{Kind: types.ShapeBranch, Width: sj.Branch.Width, Length: sj.Branch.Length}, nil
	case sj.Line != nil:
		return types.Shape{Kind: types.ShapeLine, Width: sj.Line.Width, Length: sj.Line.Length, Color: sj.Line.Color}, nil
	case sj.Circle != nil:
		return types.Shape{Kind: types.ShapeCircle, Size: sj.Circle.Size, Color: sj.Circle.Color}, nil
	}
	return types.Shape{}, fmt.Errorf("shape %q: expected one of Branch, Line, Circle", key)
}

// compileRuleSets accepts either a list of rule-set objects or, for the
// common single-variant case, a bare list of rules.
func compileRuleSets(key string, raw []json.RawMessage) (*types.RuleSets, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("rule %q: empty rule list", key)
	}

	// Probe the first element: rule sets have a "rules" field.
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw[0], &probe); err != nil {
		return nil, fmt.Errorf("rule %q: %w", key, err)
	}

	var setsJSON []ruleSetJSON
	if _, isSet := probe["rules"]; isSet {
		for i, r := range raw {
			var sj ruleSetJSON
			if err := json.Unmarshal(r, &sj); err != nil {
				return nil, fmt.Errorf("rule %q set %d: %w", key, i, err)
			}
			setsJSON = append(setsJSON, sj)
		}
	} else {
		// Bare rule list: wrap in a single implicit set.
		var rj []ruleJSON
		for i, r := range raw {
			var one ruleJSON
			if err := json.Unmarshal(r, &one); err != nil {
				return nil, fmt.Errorf("rule %q entry %d: %w", key, i, err)
			}
			rj = append(rj, one)
		}
		setsJSON = []ruleSetJSON{{Rules: rj}}
	}

	setChances := make([]*float32, len(setsJSON))
	for i := range setsJSON {
		setChances[i] = setsJSON[i].Chance
	}
	filledSet := fillChances(setChances)

	out := &types.RuleSets{}
	for i, sj := range setsJSON {
		if len(sj.Rules) == 0 {
			return nil, fmt.Errorf("rule %q set %d: empty rule list", key, i)
		}

		ruleChances := make([]*float32, len(sj.Rules))
		for j := range sj.Rules {
			ruleChances[j] = sj.Rules[j].Chance
		}
		filled := fillChances(ruleChances)

		set := types.RuleSet{Chance: filledSet[i]}
		for j, r := range sj.Rules {
			set.Rules = append(set.Rules, types.Rule{
				Result: parser.Parse(r.Result),
				Chance: filled[j],
				MinGen: r.MinGen,
				MaxGen: r.MaxGen,
			})
		}
		out.Sets = append(out.Sets, set)
	}
	return out, nil
}
