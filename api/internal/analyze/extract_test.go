package analyze

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestExtractMathPromptCarriesVariables(t *testing.T) {
	eng := &stubEngine{replies: []stubReply{{text: `[{"expr":"x+2","result":5,"assign":false}]`}}}
	img := &Image{Data: []byte{9}, MIME: "image/jpeg"}

	got := NewExtractor(eng, zap.NewNop()).Extract(context.Background(), img, map[string]float64{"x": 3}, CategoryMath)

	assert.Equal(t, []Record{{Expr: "x+2", Result: json.Number("5")}}, got)
	require.Len(t, eng.prompts, 1)
	assert.True(t, strings.HasPrefix(eng.prompts[0], "Analyze this image and return ONLY a JSON array"))
	assert.Contains(t, eng.prompts[0], "\nAvailable variables: {\"x\": 3.0}\n")
	assert.Contains(t, eng.prompts[0], `"assign": false`)
	assert.Equal(t, "image/jpeg", eng.blobs[0].MIMEType)
}

func TestExtractConceptPrompt(t *testing.T) {
	eng := &stubEngine{replies: []stubReply{{text: "```json\n[{\"expr\": \"peace symbol\", \"result\": \"peace\"}]\n```"}}}

	got := NewExtractor(eng, zap.NewNop()).Extract(context.Background(), &Image{}, map[string]float64{"x": 3}, CategoryConcept)

	assert.Equal(t, []Record{{Expr: "peace symbol", Result: "peace"}}, got)
	require.Len(t, eng.prompts, 1)
	assert.Equal(t, conceptPrompt, eng.prompts[0])
	assert.Contains(t, eng.prompts[0], `"heart shape", "result": "love"`)
	assert.Contains(t, eng.prompts[0], `"peace symbol", "result": "peace"`)
	assert.NotContains(t, eng.prompts[0], "Available variables")
}

func TestExtractFailsSoft(t *testing.T) {
	eng := &stubEngine{replies: []stubReply{{err: errors.New("deadline exceeded")}}}

	got := NewExtractor(eng, zap.NewNop()).Extract(context.Background(), &Image{}, nil, CategoryMath)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestVariablesJSON(t *testing.T) {
	testCases := []struct {
		name string
		vars map[string]float64
		want string
	}{
		{name: "nil", vars: nil, want: "{}"},
		{name: "sorted with fractions", vars: map[string]float64{"y": 0.5, "x": 3}, want: `{"x": 3.0, "y": 0.5}`},
		{name: "negative", vars: map[string]float64{"a": -2}, want: `{"a": -2.0}`},
		{name: "large and tiny", vars: map[string]float64{"big": 1e16, "tiny": 0.00001}, want: `{"big": 1e+16, "tiny": 1e-05}`},
		{name: "million", vars: map[string]float64{"m": 1234567}, want: `{"m": 1234567.0}`},
		{name: "quoted key", vars: map[string]float64{`a"b`: 1}, want: `{"a\"b": 1.0}`},
		{name: "non-ascii key", vars: map[string]float64{"α": 1}, want: `{"α": 1.0}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, variablesJSON(tc.vars))
		})
	}
}
