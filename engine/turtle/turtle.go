// Package turtle interprets symbol sequences as 3D drawing commands,
// expanding grammar rules on the fly. It maintains an explicit stack of
// transform states so scope discipline is inspectable independently of the
// language call stack.
package turtle

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/nmoller/verdant/engine/growth"
	"github.com/nmoller/verdant/engine/rng"
	"github.com/nmoller/verdant/engine/rules"
	"github.com/nmoller/verdant/types"
)

// State is one entry of the turtle's transform stack.
type State struct {
	Rotation mgl32.Quat
	Position mgl32.Vec3
	Scale    float32
	Age      float32
}

func defaultState() State {
	return State{Rotation: mgl32.QuatIdent(), Scale: 1}
}

type builder struct {
	cfg    *types.Config
	rng    *rng.RNG
	interp float32
	expand bool
	stack  []State
	shapes []types.RenderShape
}

// Build runs the recursive strategy: it walks the axiom and inlines rule
// substitution while interpreting, so fractional growth can prune recursion
// once branches become negligible.
func Build(cfg *types.Config, r *rng.RNG, interpolation float32) []types.RenderShape {
	b := &builder{
		cfg:    cfg,
		rng:    r,
		interp: interpolation,
		expand: true,
		stack:  []State{defaultState()},
	}
	b.walk(cfg.Rules.Initial, 0)
	return b.shapes
}

// Interpret walks an already-expanded buffer. Rule symbols left over from
// materialized expansion are dropped; every symbol's generation comes from
// its Gen tag.
func Interpret(symbols []types.Symbol, cfg *types.Config, r *rng.RNG, interpolation float32) []types.RenderShape {
	b := &builder{
		cfg:    cfg,
		rng:    r,
		interp: interpolation,
		stack:  []State{defaultState()},
	}
	b.walk(symbols, 0)
	return b.shapes
}

func axisFor(kind types.SymbolKind) mgl32.Vec3 {
	switch kind {
	case types.SymRotateX:
		return mgl32.Vec3{1, 0, 0}
	case types.SymRotateNegX:
		return mgl32.Vec3{-1, 0, 0}
	case types.SymRotateY:
		return mgl32.Vec3{0, 1, 0}
	case types.SymRotateNegY:
		return mgl32.Vec3{0, -1, 0}
	case types.SymRotateZ:
		return mgl32.Vec3{0, 0, 1}
	case types.SymRotateNegZ:
		return mgl32.Vec3{0, 0, -1}
	}
	return mgl32.Vec3{}
}

func (b *builder) top() *State {
	return &b.stack[len(b.stack)-1]
}

// walk executes one symbol sequence at the given generation. Recursive rule
// expansion passes the same stack, so branches share ancestor state and
// diverge only inside nested scopes.
func (b *builder) walk(symbols []types.Symbol, gen uint32) {
	for i := range symbols {
		sym := &symbols[i]
		switch sym.Kind {
		case types.SymScope:
			b.stack = append(b.stack, *b.top())
			b.shapes = append(b.shapes, types.RenderShape{Kind: types.RenderScope})

		case types.SymScopeEnd:
			if len(b.stack) > 1 {
				b.stack = b.stack[:len(b.stack)-1]
			} else {
				// Popping past the root resets it instead of underflowing.
				b.stack[0] = defaultState()
			}
			b.shapes = append(b.shapes, types.RenderShape{Kind: types.RenderScopeEnd})

		case types.SymObject:
			b.drawObject(sym.ID, gen+sym.Gen)

		case types.SymRotateX, types.SymRotateNegX,
			types.SymRotateY, types.SymRotateNegY,
			types.SymRotateZ, types.SymRotateNegZ:
			angle := Sample(sym.Param, b.cfg.Rendering.DefaultAngle, b.rng)
			q := mgl32.QuatRotate(mgl32.DegToRad(angle), axisFor(sym.Kind))
			top := b.top()
			// Right-multiplied: the rotation applies in the turtle's local frame.
			top.Rotation = top.Rotation.Mul(q)

		case types.SymScale:
			if sym.Param.Kind == types.ValuesDefault {
				// A scale with no explicit factor carries no information.
				continue
			}
			b.top().Scale *= Sample(sym.Param, 1, b.rng)

		case types.SymRule:
			if !b.expand {
				continue
			}
			g := gen + sym.Gen
			if g >= b.cfg.Rules.Iterations {
				continue
			}
			if growth.LengthMod(float32(g), b.interp, b.cfg.Rules.Iterations) < growth.Epsilon {
				// This branch is already invisible; children only shrink.
				continue
			}
			result := rules.Pick(b.cfg.Rules.RuleSets[sym.ID], float32(g), b.rng)
			if result == nil {
				continue
			}
			b.walk(result, g+1)
		}
	}
}

// drawObject emits the geometry record for a terminal at generation g.
// Terminals with no shape descriptor are skipped.
func (b *builder) drawObject(id byte, g uint32) {
	shape, ok := b.cfg.Rendering.Shapes[id]
	if !ok {
		return
	}

	top := b.top()
	iters := b.cfg.Rules.Iterations
	lm := growth.LengthMod(float32(g), b.interp, iters)

	switch shape.Kind {
	case types.ShapeBranch, types.ShapeLine:
		dir := top.Rotation.Rotate(mgl32.Vec3{0, shape.Length * lm * top.Scale, 0})
		end := top.Position.Add(dir)

		ageStep := lm
		if iters > 0 {
			ageStep = lm / float32(iters)
		}
		newAge := top.Age + ageStep

		// Branches take the age ramp; lines carry their configured color.
		color := shape.Color
		if shape.Kind == types.ShapeBranch {
			color = AgeColor(&b.cfg.Rendering, newAge)
		}

		b.shapes = append(b.shapes, types.RenderShape{
			Kind:    types.RenderLine,
			Start:   top.Position,
			End:     end,
			Width:   shape.Width,
			Age:     newAge,
			LastAge: top.Age,
			Color:   color,
		})

		top.Position = end
		top.Age = newAge

	case types.ShapeCircle:
		b.shapes = append(b.shapes, types.RenderShape{
			Kind:  types.RenderCircle,
			Size:  shape.Size * top.Scale,
			Pos:   top.Position,
			Age:   top.Age,
			Color: shape.Color,
		})
	}
}
