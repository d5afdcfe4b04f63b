// Package types defines the shared data structures for the verdant L-system
// engine. This package contains only type definitions, no logic.
package types

import "github.com/go-gl/mathgl/mgl32"

// ValueKind discriminates a single parsed parameter value.
type ValueKind int

const (
	// ValueExact is a literal number: "+(30)".
	ValueExact ValueKind = iota
	// ValueRange is a min~max span sampled uniformly: "+(10~20)".
	ValueRange
)

// Value is one numeric parameter value, immutable once parsed.
type Value struct {
	Kind  ValueKind
	Exact float32
	Min   float32
	Max   float32
}

// ValuesKind discriminates a symbol's full parameter.
type ValuesKind int

const (
	// ValuesDefault means no parenthesized parameter was present; the caller
	// supplies a context default at sample time.
	ValuesDefault ValuesKind = iota
	// ValuesExact is a single value (literal or range).
	ValuesExact
	// ValuesMultiple is a comma-separated choice list; one entry is picked
	// uniformly, then sampled.
	ValuesMultiple
)

// Values is a symbol's parameter: Default, one Value, or a choice of Values.
type Values struct {
	Kind    ValuesKind
	Single  Value
	Choices []Value
}

// SymbolKind discriminates the closed symbol set of the grammar.
type SymbolKind int

const (
	SymScope SymbolKind = iota
	SymScopeEnd
	SymRule
	SymObject
	SymRotateX
	SymRotateNegX
	SymRotateY
	SymRotateNegY
	SymRotateZ
	SymRotateNegZ
	SymScale
)

// Symbol is one element of a grammar string. Order within a sequence is
// load-bearing: the turtle executes symbols left to right.
//
// ID is set for SymRule and SymObject. Param is set for rotations and scale.
// Gen is zero for freshly parsed symbols; materialized expansion tags each
// spliced symbol with the generation that produced it.
type Symbol struct {
	Kind  SymbolKind
	ID    byte
	Param Values
	Gen   uint32
}

// Rule is one production: a result sequence, a selection weight, and an
// optional generation gate. A rule is eligible while the invoking generation
// lies in [MinGen, MaxGen), open-ended where nil.
type Rule struct {
	Result []Symbol
	Chance float32
	MinGen *float32
	MaxGen *float32
}

// RuleSet is one alternative rule group for a left-hand-side symbol.
type RuleSet struct {
	Chance float32
	Rules  []Rule
}

// RuleSets holds every alternative for one symbol plus the index of the
// currently active variant. Current is the only mutable field of a loaded
// grammar; re-rolling it produces visual variety without re-parsing.
type RuleSets struct {
	Current int
	Sets    []RuleSet
}

// ShapeKind discriminates the drawable terminal descriptors.
type ShapeKind int

const (
	// ShapeBranch is a segment colored by the age ramp.
	ShapeBranch ShapeKind = iota
	// ShapeLine is a segment with its own fixed color.
	ShapeLine
	// ShapeCircle is a bud at the current position.
	ShapeCircle
)

// Shape is a terminal's drawing descriptor, looked up by object ID.
type Shape struct {
	Kind   ShapeKind
	Width  float32
	Length float32
	Size   float32
	Color  [3]float32
}

// ColorStop is one entry of the age→color ramp.
type ColorStop struct {
	Age   float32
	Color [3]float32
}

// RenderConfig is the rendering half of a configuration document.
type RenderConfig struct {
	DefaultAngle float32
	WidthMod     float32
	Shapes       map[byte]Shape
	Colors       []ColorStop
}

// BuildConfig is the grammar half of a configuration document.
type BuildConfig struct {
	Iterations uint32
	Initial    []Symbol
	RuleSets   map[byte]*RuleSets
}

// Config is a fully loaded configuration. Immutable after load except for
// RuleSets.Current and RenderConfig.WidthMod.
type Config struct {
	Rendering RenderConfig
	Rules     BuildConfig
}

// RenderShapeKind discriminates the builder's output records.
type RenderShapeKind int

const (
	// RenderLine is an oriented segment (branch or line terminal).
	RenderLine RenderShapeKind = iota
	// RenderCircle is a bud sphere.
	RenderCircle
	// RenderScope marks a branch fork for extrusion-based meshers.
	RenderScope
	// RenderScopeEnd closes a RenderScope.
	RenderScopeEnd
)

// RenderShape is one geometry record emitted by the turtle builder.
// Line records carry both the segment's new age and the age the state had
// before drawing it, so a renderer can interpolate along the segment.
type RenderShape struct {
	Kind    RenderShapeKind
	Start   mgl32.Vec3
	End     mgl32.Vec3
	Pos     mgl32.Vec3
	Width   float32
	Size    float32
	Age     float32
	LastAge float32
	Color   [3]float32
}
