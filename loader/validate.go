package loader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nmoller/verdant/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// Validate checks a compiled configuration for structural problems and
// returns everything it found. Warnings (dangling rule or object ids,
// excess weight) are advisory, matching the forgiving run-time policy
// where those symbols simply draw or expand to nothing.
func Validate(cfg *types.Config) *ValidationError {
	v := &ValidationError{}

	if len(cfg.Rules.Initial) == 0 {
		v.Errors = append(v.Errors, "initial produces no symbols")
	}

	ids := make([]byte, 0, len(cfg.Rules.RuleSets))
	for id := range cfg.Rules.RuleSets {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	checkSequence(cfg, v, "initial", cfg.Rules.Initial)
	for _, id := range ids {
		sets := cfg.Rules.RuleSets[id]
		for si, set := range sets.Sets {
			var sum float32
			for ri, rule := range set.Rules {
				sum += rule.Chance
				where := fmt.Sprintf("rule %c set %d entry %d", id, si, ri)
				if rule.Chance < 0 {
					v.Errors = append(v.Errors, where+": negative chance")
				}
				if rule.MinGen != nil && rule.MaxGen != nil && *rule.MinGen >= *rule.MaxGen {
					v.Warnings = append(v.Warnings, where+": generation gate admits nothing")
				}
				checkSequence(cfg, v, where, rule.Result)
			}
			if sum > 1+1e-4 {
				v.Warnings = append(v.Warnings,
					fmt.Sprintf("rule %c set %d: chances sum to %.3f (> 1)", id, si, sum))
			}
		}
	}

	return v
}

// validate fails the load when Validate reports hard errors.
func validate(cfg *types.Config) error {
	if v := Validate(cfg); len(v.Errors) > 0 {
		return v
	}
	return nil
}

// checkSequence warns about symbols that will silently do nothing at build
// time: rules with no productions and objects with no shape descriptor.
func checkSequence(cfg *types.Config, v *ValidationError, where string, symbols []types.Symbol) {
	for _, s := range symbols {
		switch s.Kind {
		case types.SymRule:
			if _, ok := cfg.Rules.RuleSets[s.ID]; !ok {
				v.Warnings = append(v.Warnings,
					fmt.Sprintf("%s: rule %c has no productions and will expand to nothing", where, s.ID))
			}
		case types.SymObject:
			if _, ok := cfg.Rendering.Shapes[s.ID]; !ok {
				v.Warnings = append(v.Warnings,
					fmt.Sprintf("%s: object %c has no shape and will not draw", where, s.ID))
			}
		}
	}
}
