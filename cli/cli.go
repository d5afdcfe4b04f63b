// Package cli provides the plain (non-TUI) export surfaces: shape records as
// JSON for mesh-upload consumers and meshes as Wavefront OBJ.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/nmoller/verdant/engine"
	"github.com/nmoller/verdant/mesh"
	"github.com/nmoller/verdant/types"
)

// CLI drives a single build-and-export run.
type CLI struct {
	Engine *engine.Engine
	Out    io.Writer
}

// New creates a CLI writing to stdout.
func New(eng *engine.Engine) *CLI {
	return &CLI{Engine: eng, Out: os.Stdout}
}

// shapeRecord is the JSON form of one shape record. Scope markers are
// included so extrusion-based consumers can rebuild the branch hierarchy.
type shapeRecord struct {
	Kind    string      `json:"kind"`
	Start   *[3]float32 `json:"start,omitempty"`
	End     *[3]float32 `json:"end,omitempty"`
	Pos     *[3]float32 `json:"pos,omitempty"`
	Width   float32     `json:"width,omitempty"`
	Size    float32     `json:"size,omitempty"`
	Age     float32     `json:"age"`
	LastAge float32     `json:"last_age,omitempty"`
	Color   [3]float32  `json:"color"`
}

func kindName(k types.RenderShapeKind) string {
	switch k {
	case types.RenderLine:
		return "line"
	case types.RenderCircle:
		return "circle"
	case types.RenderScope:
		return "scope"
	case types.RenderScopeEnd:
		return "scope_end"
	}
	return "unknown"
}

func vec(v [3]float32) *[3]float32 { return &v }

// ExportShapes builds the plant and writes the shape records as a JSON array.
func (c *CLI) ExportShapes() error {
	shapes := c.Engine.Build()

	records := make([]shapeRecord, 0, len(shapes))
	for _, s := range shapes {
		rec := shapeRecord{
			Kind:    kindName(s.Kind),
			Age:     s.Age,
			LastAge: s.LastAge,
			Color:   s.Color,
		}
		switch s.Kind {
		case types.RenderLine:
			rec.Start = vec([3]float32{s.Start.X(), s.Start.Y(), s.Start.Z()})
			rec.End = vec([3]float32{s.End.X(), s.End.Y(), s.End.Z()})
			rec.Width = s.Width
		case types.RenderCircle:
			rec.Pos = vec([3]float32{s.Pos.X(), s.Pos.Y(), s.Pos.Z()})
			rec.Size = s.Size
		}
		records = append(records, rec)
	}

	enc := json.NewEncoder(c.Out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding shape records: %w", err)
	}
	return nil
}

// ExportOBJ builds the plant, meshes it, and writes Wavefront OBJ. Vertex
// colors use the unofficial "v x y z r g b" extension and the growth age
// rides in the v texture coordinate.
func (c *CLI) ExportOBJ() error {
	shapes := c.Engine.Build()
	m := mesh.FromShapes(shapes, &c.Engine.Config.Rendering)

	if _, err := fmt.Fprintln(c.Out, "o plant"); err != nil {
		return fmt.Errorf("writing OBJ: %w", err)
	}
	for _, v := range m.Vertices {
		fmt.Fprintf(c.Out, "v %g %g %g %g %g %g\n",
			v.Position.X(), v.Position.Y(), v.Position.Z(),
			v.Color[0], v.Color[1], v.Color[2])
	}
	for _, v := range m.Vertices {
		fmt.Fprintf(c.Out, "vn %g %g %g\n", v.Normal.X(), v.Normal.Y(), v.Normal.Z())
	}
	for _, v := range m.Vertices {
		fmt.Fprintf(c.Out, "vt %g %g\n", 0.0, v.Age)
	}
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, f := m.Indices[i]+1, m.Indices[i+1]+1, m.Indices[i+2]+1
		if _, err := fmt.Fprintf(c.Out, "f %d/%d/%d %d/%d/%d %d/%d/%d\n",
			a, a, a, b, b, b, f, f, f); err != nil {
			return fmt.Errorf("writing OBJ: %w", err)
		}
	}
	return nil
}
