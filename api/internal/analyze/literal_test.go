package analyze

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLiteral(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want any
	}{
		{
			name: "numbers",
			in:   "[1, 2.5, -3, 1_000, 0x10, 1e3, .5, 1., - 4]",
			want: []any{
				json.Number("1"), json.Number("2.5"), json.Number("-3"), json.Number("1000"),
				json.Number("16"), json.Number("1e3"), json.Number("0.5"), json.Number("1"), json.Number("-4"),
			},
		},
		{
			name: "names and quotes",
			in:   `('a', "b", True, False, None)`,
			want: []any{"a", "b", true, false, nil},
		},
		{name: "parenthesized value", in: "(1)", want: json.Number("1")},
		{name: "one-item tuple", in: "(1,)", want: []any{json.Number("1")}},
		{name: "empty tuple", in: "()", want: []any{}},
		{name: "empty dict", in: "{}", want: map[string]any{}},
		{name: "set", in: "{1, 2,}", want: []any{json.Number("1"), json.Number("2")}},
		{name: "single set", in: "{'a'}", want: []any{"a"}},
		{
			name: "nested dict",
			in:   "{'a': [1, {'b': 'c'}], 2: 'two', True: None,}",
			want: map[string]any{
				"a":    []any{json.Number("1"), map[string]any{"b": "c"}},
				"2":    "two",
				"True": nil,
			},
		},
		{name: "escapes", in: `'it\'s\n\x41é\101'`, want: "it's\nAéA"},
		{name: "unknown escape kept", in: `'\d+'`, want: `\d+`},
		{name: "adjacent strings", in: `'ab' "cd"`, want: "abcd"},
		{name: "raw string", in: `r'\d'`, want: `\d`},
		{name: "unicode prefix", in: `u'π'`, want: "π"},
		{name: "triple quoted", in: `'''a 'b' c'''`, want: "a 'b' c"},
		{
			name: "bare top-level tuple",
			in:   "{'expr': 'a'}, {'expr': 'b'}",
			want: []any{map[string]any{"expr": "a"}, map[string]any{"expr": "b"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseLiteral(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseLiteralErrors(t *testing.T) {
	testCases := []string{
		"",
		"[1, 2",
		"{'a' 1}",
		"{'a': 1, 'b'}",
		"foo",
		"'unterminated",
		"[1] extra",
		"1j",
		"nan",
		"-inf",
		"{[1]: 2}",
		`'\x4'`,
	}

	for _, in := range testCases {
		t.Run(in, func(t *testing.T) {
			_, err := parseLiteral(in)
			assert.Error(t, err)
		})
	}
}
