package loader

import (
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nmoller/verdant/types"
)

func almostEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-6
}

func TestLoad_JSONDocument(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "fern.json"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Rendering.DefaultAngle != 25 {
		t.Errorf("expected default angle 25, got %v", cfg.Rendering.DefaultAngle)
	}
	if !almostEqual(cfg.Rendering.WidthMod, 0.8) {
		t.Errorf("expected width_mod 0.8, got %v", cfg.Rendering.WidthMod)
	}
	if cfg.Rules.Iterations != 4 {
		t.Errorf("expected 4 iterations, got %d", cfg.Rules.Iterations)
	}

	branch, ok := cfg.Rendering.Shapes['f']
	if !ok || branch.Kind != types.ShapeBranch {
		t.Fatalf("expected a Branch for f, got %+v", branch)
	}
	if !almostEqual(branch.Width, 0.12) || !almostEqual(branch.Length, 1.0) {
		t.Errorf("branch dimensions wrong: %+v", branch)
	}

	line, ok := cfg.Rendering.Shapes['l']
	if !ok || line.Kind != types.ShapeLine {
		t.Fatalf("expected a Line for l, got %+v", line)
	}
	if line.Color != [3]float32{0.2, 0.8, 0.3} {
		t.Errorf("line color wrong: %v", line.Color)
	}

	circle, ok := cfg.Rendering.Shapes['b']
	if !ok || circle.Kind != types.ShapeCircle {
		t.Fatalf("expected a Circle for b, got %+v", circle)
	}
	if !almostEqual(circle.Size, 0.3) {
		t.Errorf("circle size wrong: %v", circle.Size)
	}

	if len(cfg.Rendering.Colors) != 2 {
		t.Fatalf("expected 2 color stops, got %d", len(cfg.Rendering.Colors))
	}
	if cfg.Rendering.Colors[1].Age != 1 {
		t.Errorf("second stop age wrong: %v", cfg.Rendering.Colors[1].Age)
	}
}

func TestLoad_ChanceNormalization(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "fern.json"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	// Bare rule list wraps into one implicit set; the unspecified rule
	// receives the remaining 0.4.
	a := cfg.Rules.RuleSets['A']
	if len(a.Sets) != 1 {
		t.Fatalf("expected 1 implicit set for A, got %d", len(a.Sets))
	}
	if len(a.Sets[0].Rules) != 2 {
		t.Fatalf("expected 2 rules for A, got %d", len(a.Sets[0].Rules))
	}
	if !almostEqual(a.Sets[0].Rules[0].Chance, 0.6) {
		t.Errorf("explicit chance wrong: %v", a.Sets[0].Rules[0].Chance)
	}
	if !almostEqual(a.Sets[0].Rules[1].Chance, 0.4) {
		t.Errorf("filled chance wrong: %v", a.Sets[0].Rules[1].Chance)
	}

	// Variant list: second set takes the remaining 0.5, and its unspecified
	// rules split the full weight between them.
	b := cfg.Rules.RuleSets['B']
	if len(b.Sets) != 2 {
		t.Fatalf("expected 2 sets for B, got %d", len(b.Sets))
	}
	if !almostEqual(b.Sets[0].Chance, 0.5) || !almostEqual(b.Sets[1].Chance, 0.5) {
		t.Errorf("set chances wrong: %v, %v", b.Sets[0].Chance, b.Sets[1].Chance)
	}
	second := b.Sets[1]
	if !almostEqual(second.Rules[0].Chance, 0.5) || !almostEqual(second.Rules[1].Chance, 0.5) {
		t.Errorf("filled rule chances wrong: %v, %v", second.Rules[0].Chance, second.Rules[1].Chance)
	}
	if second.Rules[0].MinGen == nil || *second.Rules[0].MinGen != 1 {
		t.Errorf("min_gen not carried: %v", second.Rules[0].MinGen)
	}
	if second.Rules[0].MaxGen == nil || *second.Rules[0].MaxGen != 3 {
		t.Errorf("max_gen not carried: %v", second.Rules[0].MaxGen)
	}
}

func TestLoadJSON_Malformed(t *testing.T) {
	if _, err := LoadJSON([]byte("{not json")); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestLoadJSON_MultiCharKeys(t *testing.T) {
	doc := `{"rules": {"iterations": 1, "initial": "f", "rules": {"AB": [{"result": "f"}]}}}`
	if _, err := LoadJSON([]byte(doc)); err == nil || !strings.Contains(err.Error(), "single characters") {
		t.Fatalf("expected a single-character key error, got %v", err)
	}

	doc = `{"rendering": {"shapes": {"fg": {"Branch": {"width": 1, "length": 1}}}}, "rules": {"iterations": 1, "initial": "f"}}`
	if _, err := LoadJSON([]byte(doc)); err == nil || !strings.Contains(err.Error(), "single characters") {
		t.Fatalf("expected a single-character key error, got %v", err)
	}
}

func TestLoadJSON_UnknownShapeTag(t *testing.T) {
	doc := `{"rendering": {"shapes": {"f": {"Cube": {"size": 1}}}}, "rules": {"iterations": 1, "initial": "f"}}`
	if _, err := LoadJSON([]byte(doc)); err == nil {
		t.Fatal("expected an unknown shape error")
	}
}

func TestLoadJSON_EmptyInitialFailsValidation(t *testing.T) {
	doc := `{"rules": {"iterations": 1, "initial": ""}}`
	_, err := LoadJSON([]byte(doc))
	if err == nil {
		t.Fatal("expected validation to fail")
	}
	var v *ValidationError
	if !errors.As(err, &v) {
		t.Fatalf("expected a ValidationError, got %T", err)
	}
	if len(v.Errors) == 0 {
		t.Error("expected at least one hard error")
	}
}

func TestValidate_Warnings(t *testing.T) {
	doc := `{
		"rules": {
			"iterations": 2,
			"initial": "Xq",
			"rules": {
				"A": [{"result": "f", "min_gen": 3, "max_gen": 2}]
			}
		}
	}`
	cfg, err := LoadJSON([]byte(doc))
	if err != nil {
		t.Fatalf("warnings must not fail the load: %v", err)
	}

	v := Validate(cfg)
	if len(v.Errors) != 0 {
		t.Fatalf("unexpected hard errors: %v", v.Errors)
	}

	wantSubstrings := []string{
		"expand to nothing", // X has no productions
		"will not draw",     // q has no shape
		"admits nothing",    // min_gen >= max_gen
	}
	joined := strings.Join(v.Warnings, "\n")
	for _, w := range wantSubstrings {
		if !strings.Contains(joined, w) {
			t.Errorf("missing warning %q in:\n%s", w, joined)
		}
	}
}

func TestFillChances(t *testing.T) {
	h := float32(0.5)
	cases := []struct {
		name     string
		explicit []*float32
		want     []float32
	}{
		{"all explicit", []*float32{&h, &h}, []float32{0.5, 0.5}},
		{"all unspecified", []*float32{nil, nil}, []float32{0.5, 0.5}},
		{"mixed", []*float32{&h, nil, nil}, []float32{0.5, 0.25, 0.25}},
		{"nothing remaining", []*float32{&h, &h, nil}, []float32{0.5, 0.5, 0}},
	}
	for _, tc := range cases {
		got := fillChances(tc.explicit)
		for i := range tc.want {
			if !almostEqual(got[i], tc.want[i]) {
				t.Errorf("%s: entry %d: got %v, want %v", tc.name, i, got[i], tc.want[i])
			}
		}
	}
}
