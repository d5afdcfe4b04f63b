// Package parser converts rule-result strings into symbol sequences.
// Intentionally forgiving: the DSL is hand-authored, so unrecognized
// characters are dropped and malformed parameter bodies fall back to the
// default parameter instead of failing. Parse is total.
package parser

import (
	"strconv"
	"strings"

	"github.com/nmoller/verdant/types"
)

// operatorKind maps a directional/scale operator to its symbol kind.
func operatorKind(c byte) (types.SymbolKind, bool) {
	switch c {
	case '+':
		return types.SymRotateY, true
	case '-':
		return types.SymRotateNegY, true
	case '&':
		return types.SymRotateX, true
	case '^':
		return types.SymRotateNegX, true
	case '\\', '<':
		return types.SymRotateZ, true
	case '/', '>':
		return types.SymRotateNegZ, true
	case '|':
		return types.SymScale, true
	}
	return 0, false
}

// Parse scans text left to right and returns the symbol sequence.
// It never fails: anything it does not understand is skipped.
func Parse(text string) []types.Symbol {
	symbols := make([]types.Symbol, 0, len(text))

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '[':
			symbols = append(symbols, types.Symbol{Kind: types.SymScope})
		case c == ']':
			symbols = append(symbols, types.Symbol{Kind: types.SymScopeEnd})
		case c >= 'a' && c <= 'z':
			symbols = append(symbols, types.Symbol{Kind: types.SymObject, ID: c})
		case c >= 'A' && c <= 'Z':
			symbols = append(symbols, types.Symbol{Kind: types.SymRule, ID: c})
		default:
			kind, ok := operatorKind(c)
			if !ok {
				continue
			}
			values, consumed := parseValues(text[i+1:])
			i += consumed
			symbols = append(symbols, types.Symbol{Kind: kind, Param: values})
		}
	}

	return symbols
}

// paramChar reports whether c may appear inside a parameter body.
func paramChar(c byte) bool {
	return c >= '0' && c <= '9' || c == '.' || c == '-' || c == '~' || c == ',' || c == ' '
}

// parseValues parses an optional parenthesized parameter group at the start
// of rest. It returns the parsed parameter and the number of bytes consumed.
// The cursor advances past the group only when the body actually yields
// values; a missing, truncated, or empty group costs nothing and falls back
// to the default parameter.
func parseValues(rest string) (types.Values, int) {
	if len(rest) == 0 || rest[0] != '(' {
		return types.Values{Kind: types.ValuesDefault}, 0
	}

	j := 1
	for ; j < len(rest); j++ {
		if rest[j] == ')' {
			break
		}
		if !paramChar(rest[j]) {
			return types.Values{Kind: types.ValuesDefault}, 0
		}
	}
	if j == len(rest) {
		// Truncated group at end of string.
		return types.Values{Kind: types.ValuesDefault}, 0
	}

	values := parseBody(rest[1:j])
	if len(values) == 0 {
		return types.Values{Kind: types.ValuesDefault}, 0
	}
	if len(values) == 1 {
		return types.Values{Kind: types.ValuesExact, Single: values[0]}, j + 1
	}
	return types.Values{Kind: types.ValuesMultiple, Choices: values}, j + 1
}

// parseBody splits a parameter body on ',' into choices, and each choice on
// '~' into a literal or a min~max range. Chunks with no parseable number
// are dropped.
func parseBody(body string) []types.Value {
	var values []types.Value
	for _, chunk := range strings.Split(body, ",") {
		var nums []float32
		for _, piece := range strings.Split(chunk, "~") {
			f, err := strconv.ParseFloat(strings.TrimSpace(piece), 32)
			if err != nil {
				continue
			}
			nums = append(nums, float32(f))
		}
		switch {
		case len(nums) == 0:
		case len(nums) == 1:
			values = append(values, types.Value{Kind: types.ValueExact, Exact: nums[0]})
		default:
			values = append(values, types.Value{
				Kind: types.ValueRange,
				Min:  nums[0],
				Max:  nums[len(nums)-1],
			})
		}
	}
	return values
}
