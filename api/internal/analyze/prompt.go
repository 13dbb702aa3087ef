package analyze

import (
	"bytes"
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
)

const classifyPrompt = "Does this image contain:\n" +
	"1. Mathematical expression/equation/formula/graphical problem/\n" +
	"2. Drawing/symbol/concept\n" +
	"Reply with ONLY the number (1 or 2)"

const conceptPrompt = "This image shows a drawing or symbol. " +
	"Provide a very brief analysis in this exact format:\n" +
	"[{\"expr\": \"key element (max 3-4 words)\", " +
	"\"result\": \"core concept (1-2 words)\", \"assign\": false}]\n" +
	"Example 1: [{\"expr\": \"heart shape\", \"result\": \"love\"}]\n" +
	"Example 2: [{\"expr\": \"peace symbol\", \"result\": \"peace\"}]\n" +
	"Return ONLY the JSON array, no explanations."

func mathPrompt(vars map[string]float64) string {
	return "Analyze this image and return ONLY a JSON array containing the mathematical solution " +
		"or if it is a graphical problem calculate the solution." +
		"Format: [{\"expr\": \"expression\", \"result\": value, \"assign\": false}]\n" +
		"Available variables: " + variablesJSON(vars) + "\n" +
		"Return ONLY the JSON array, no other text."
}

func extractPrompt(cat Category, vars map[string]float64) string {
	if cat == CategoryConcept {
		return conceptPrompt
	}
	return mathPrompt(vars)
}

// variablesJSON renders bindings as a JSON object with sorted keys,
// floats always carrying a fraction ({"x": 3.0, "y": 0.5}).
func variablesJSON(vars map[string]float64) string {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(quoteJSON(k))
		b.WriteString(": ")
		b.WriteString(formatFloat(vars[k]))
	}
	b.WriteByte('}')
	return b.String()
}

func quoteJSON(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}

func formatFloat(v float64) string {
	if abs := math.Abs(v); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
