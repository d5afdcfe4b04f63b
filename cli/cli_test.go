package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/nmoller/verdant/engine"
	"github.com/nmoller/verdant/engine/parser"
	"github.com/nmoller/verdant/types"
)

// testConfig is a two-segment stalk with a bud on top.
func testConfig() *types.Config {
	return &types.Config{
		Rendering: types.RenderConfig{
			DefaultAngle: 25,
			WidthMod:     1,
			Shapes: map[byte]types.Shape{
				'f': {Kind: types.ShapeBranch, Width: 1, Length: 1},
				'b': {Kind: types.ShapeCircle, Size: 0.5, Color: [3]float32{1, 0, 0}},
			},
		},
		Rules: types.BuildConfig{
			Iterations: 1,
			Initial:    parser.Parse("ffb"),
		},
	}
}

func TestExportShapes_JSON(t *testing.T) {
	var buf bytes.Buffer
	c := &CLI{Engine: engine.New(testConfig(), 1), Out: &buf}

	if err := c.ExportShapes(); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var records []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &records); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	if records[0]["kind"] != "line" {
		t.Errorf("expected first record to be a line, got %v", records[0]["kind"])
	}
	if _, ok := records[0]["start"]; !ok {
		t.Error("line record missing start")
	}
	if _, ok := records[0]["end"]; !ok {
		t.Error("line record missing end")
	}

	last := records[len(records)-1]
	if last["kind"] != "circle" {
		t.Errorf("expected last record to be a circle, got %v", last["kind"])
	}
	if _, ok := last["pos"]; !ok {
		t.Error("circle record missing pos")
	}
}

func TestExportShapes_ScopeMarkers(t *testing.T) {
	cfg := testConfig()
	cfg.Rules.Initial = parser.Parse("f[f]")

	var buf bytes.Buffer
	c := &CLI{Engine: engine.New(cfg, 1), Out: &buf}
	if err := c.ExportShapes(); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `"scope"`) || !strings.Contains(out, `"scope_end"`) {
		t.Fatalf("scope markers missing from output:\n%s", out)
	}
}

func TestExportOBJ(t *testing.T) {
	var buf bytes.Buffer
	c := &CLI{Engine: engine.New(testConfig(), 1), Out: &buf}

	if err := c.ExportOBJ(); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var vCount, vnCount, vtCount, fCount int
	for _, line := range strings.Split(buf.String(), "\n") {
		switch {
		case strings.HasPrefix(line, "v "):
			vCount++
		case strings.HasPrefix(line, "vn "):
			vnCount++
		case strings.HasPrefix(line, "vt "):
			vtCount++
		case strings.HasPrefix(line, "f "):
			fCount++
		}
	}

	// Two cylinder segments (6 vertices each) plus one icosahedron (12).
	if vCount != 24 {
		t.Errorf("expected 24 vertices, got %d", vCount)
	}
	if vnCount != vCount || vtCount != vCount {
		t.Errorf("normal/texcoord counts must match vertices: %d/%d/%d", vCount, vnCount, vtCount)
	}
	// Two segments at 6 triangles each plus 20 icosahedron faces.
	if fCount != 32 {
		t.Errorf("expected 32 faces, got %d", fCount)
	}

	// OBJ indices are one-based.
	if strings.Contains(buf.String(), "f 0/") {
		t.Error("found a zero-based face index")
	}
}

func TestExportOBJ_Deterministic(t *testing.T) {
	var a, b bytes.Buffer
	if err := (&CLI{Engine: engine.New(testConfig(), 9), Out: &a}).ExportOBJ(); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if err := (&CLI{Engine: engine.New(testConfig(), 9), Out: &b}).ExportOBJ(); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if a.String() != b.String() {
		t.Fatal("same seed must produce identical OBJ output")
	}
}
