package loader

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/nmoller/verdant/engine/parser"
	"github.com/nmoller/verdant/types"
)

// collector accumulates Lua definitions during file execution.
type collector struct {
	plant  *lua.LTable
	shapes map[byte]types.Shape
	colors []types.ColorStop
	sets   map[byte]*types.RuleSets
}

// LoadLua executes a single Lua grammar file in a sandboxed VM and compiles
// the collected definitions into a Config.
func LoadLua(path string) (*types.Config, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	openSafeLibs(L)
	sandbox(L)

	coll := &collector{
		shapes: map[byte]types.Shape{},
		sets:   map[byte]*types.RuleSets{},
	}
	registerAPI(L, coll)

	if err := L.DoFile(path); err != nil {
		return nil, fmt.Errorf("executing %s: %w", path, err)
	}

	return compileLua(coll)
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes dangerous globals and functions.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	// Remove math.randomseed to preserve determinism.
	if mathTbl := L.GetGlobal("math"); mathTbl != lua.LNil {
		if tbl, ok := mathTbl.(*lua.LTable); ok {
			tbl.RawSetString("randomseed", lua.LNil)
		}
	}
}

// registerAPI registers the grammar-authoring constructors as globals.
func registerAPI(L *lua.LState, coll *collector) {
	// Plant { iterations = 4, initial = "A", angle = 25, width_mod = 1 }
	L.SetGlobal("Plant", L.NewFunction(func(L *lua.LState) int {
		coll.plant = L.CheckTable(1)
		return 0
	}))

	// Branch { width = 0.1, length = 1 } returns a tagged shape table.
	registerShapeCtor(L, "Branch", "branch")
	registerShapeCtor(L, "Line", "line")
	registerShapeCtor(L, "Circle", "circle")

	// Shape("f", Branch { ... })
	L.SetGlobal("Shape", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		tbl := L.CheckTable(2)
		if len(id) != 1 {
			L.RaiseError("Shape: object ids are single characters, got %q", id)
			return 0
		}
		shape, err := luaShape(tbl)
		if err != nil {
			L.RaiseError("Shape %q: %s", id, err.Error())
			return 0
		}
		coll.shapes[id[0]] = shape
		return 0
	}))

	// ColorStop(age, {r, g, b})
	L.SetGlobal("ColorStop", L.NewFunction(func(L *lua.LState) int {
		age := float32(L.CheckNumber(1))
		color := luaColor(L.CheckTable(2))
		coll.colors = append(coll.colors, types.ColorStop{Age: age, Color: color})
		return 0
	}))

	// Rules("A", { { result = "...", chance = 0.5 }, ... }) for a single variant.
	L.SetGlobal("Rules", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		tbl := L.CheckTable(2)
		if len(id) != 1 {
			L.RaiseError("Rules: rule ids are single characters, got %q", id)
			return 0
		}
		set, err := luaRuleSet(tbl, nil)
		if err != nil {
			L.RaiseError("Rules %q: %s", id, err.Error())
			return 0
		}
		set.Chance = 1
		coll.sets[id[0]] = &types.RuleSets{Sets: []types.RuleSet{set}}
		return 0
	}))

	// Variants("B", { { chance = 0.5, rules = {...} }, { rules = {...} } })
	L.SetGlobal("Variants", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		tbl := L.CheckTable(2)
		if len(id) != 1 {
			L.RaiseError("Variants: rule ids are single characters, got %q", id)
			return 0
		}
		sets, err := luaVariants(tbl)
		if err != nil {
			L.RaiseError("Variants %q: %s", id, err.Error())
			return 0
		}
		coll.sets[id[0]] = sets
		return 0
	}))
}

func registerShapeCtor(L *lua.LState, name, tag string) {
	L.SetGlobal(name, L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		tbl.RawSetString("__shape", lua.LString(tag))
		L.Push(tbl)
		return 1
	}))
}

func getNumber(tbl *lua.LTable, key string) float32 {
	if n, ok := tbl.RawGetString(key).(lua.LNumber); ok {
		return float32(n)
	}
	return 0
}

func getNumberPtr(tbl *lua.LTable, key string) *float32 {
	if n, ok := tbl.RawGetString(key).(lua.LNumber); ok {
		f := float32(n)
		return &f
	}
	return nil
}

func getString(tbl *lua.LTable, key string) string {
	if s, ok := tbl.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

func luaColor(tbl *lua.LTable) [3]float32 {
	var out [3]float32
	for i := 0; i < 3; i++ {
		if n, ok := tbl.RawGetInt(i + 1).(lua.LNumber); ok {
			out[i] = float32(n)
		}
	}
	return out
}

func luaShape(tbl *lua.LTable) (types.Shape, error) {
	switch getString(tbl, "__shape") {
	case "branch":
		return types.Shape{
			Kind:   types.ShapeBranch,
			Width:  getNumber(tbl, "width"),
			Length: getNumber(tbl, "length"),
		}, nil
	case "line":
		shape := types.Shape{
			Kind:   types.ShapeLine,
			Width:  getNumber(tbl, "width"),
			Length: getNumber(tbl, "length"),
		}
		if c, ok := tbl.RawGetString("color").(*lua.LTable); ok {
			shape.Color = luaColor(c)
		}
		return shape, nil
	case "circle":
		shape := types.Shape{
			Kind: types.ShapeCircle,
			Size: getNumber(tbl, "size"),
		}
		if c, ok := tbl.RawGetString("color").(*lua.LTable); ok {
			shape.Color = luaColor(c)
		}
		return shape, nil
	}
	return types.Shape{}, fmt.Errorf("expected Branch, Line, or Circle")
}

// luaRuleSet compiles a list of rule tables into one RuleSet, filling in
// unspecified chances from what remains.
func luaRuleSet(tbl *lua.LTable, chance *float32) (types.RuleSet, error) {
	n := tbl.Len()
	if n == 0 {
		return types.RuleSet{}, fmt.Errorf("empty rule list")
	}

	explicit := make([]*float32, n)
	results := make([]string, n)
	mins := make([]*float32, n)
	maxs := make([]*float32, n)
	for i := 1; i <= n; i++ {
		entry, ok := tbl.RawGetInt(i).(*lua.LTable)
		if !ok {
			return types.RuleSet{}, fmt.Errorf("entry %d: expected a table", i)
		}
		results[i-1] = getString(entry, "result")
		explicit[i-1] = getNumberPtr(entry, "chance")
		mins[i-1] = getNumberPtr(entry, "min_gen")
		maxs[i-1] = getNumberPtr(entry, "max_gen")
	}
	filled := fillChances(explicit)

	set := types.RuleSet{}
	if chance != nil {
		set.Chance = *chance
	}
	for i := 0; i < n; i++ {
		set.Rules = append(set.Rules, types.Rule{
			Result: parser.Parse(results[i]),
			Chance: filled[i],
			MinGen: mins[i],
			MaxGen: maxs[i],
		})
	}
	return set, nil
}

func luaVariants(tbl *lua.LTable) (*types.RuleSets, error) {
	n := tbl.Len()
	if n == 0 {
		return nil, fmt.Errorf("empty variant list")
	}

	explicit := make([]*float32, n)
	ruleTbls := make([]*lua.LTable, n)
	for i := 1; i <= n; i++ {
		entry, ok := tbl.RawGetInt(i).(*lua.LTable)
		if !ok {
			return nil, fmt.Errorf("variant %d: expected a table", i)
		}
		explicit[i-1] = getNumberPtr(entry, "chance")
		rt, ok := entry.RawGetString("rules").(*lua.LTable)
		if !ok {
			return nil, fmt.Errorf("variant %d: missing rules list", i)
		}
		ruleTbls[i-1] = rt
	}
	filled := fillChances(explicit)

	out := &types.RuleSets{}
	for i := 0; i < n; i++ {
		set, err := luaRuleSet(ruleTbls[i], &filled[i])
		if err != nil {
			return nil, fmt.Errorf("variant %d: %w", i+1, err)
		}
		out.Sets = append(out.Sets, set)
	}
	return out, nil
}

// compileLua assembles the collected definitions into a validated Config.
func compileLua(coll *collector) (*types.Config, error) {
	if coll.plant == nil {
		return nil, fmt.Errorf("grammar file defines no Plant block")
	}

	cfg := &types.Config{
		Rendering: types.RenderConfig{
			DefaultAngle: getNumber(coll.plant, "angle"),
			WidthMod:     1,
			Shapes:       coll.shapes,
			Colors:       coll.colors,
		},
		Rules: types.BuildConfig{
			Iterations: uint32(getNumber(coll.plant, "iterations")),
			Initial:    parser.Parse(getString(coll.plant, "initial")),
			RuleSets:   coll.sets,
		},
	}
	if wm := getNumberPtr(coll.plant, "width_mod"); wm != nil {
		cfg.Rendering.WidthMod = *wm
	}

	return finish(cfg)
}
