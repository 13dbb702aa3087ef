package util

import (
	"regexp"
	"strings"
)

var (
	reFencedBlock = regexp.MustCompile("(?s)```(?:json)?\n?(.*?)\n?```")
	reSpaces      = regexp.MustCompile(`\s+`)
)

// CleanModelText unwraps every fenced block (optionally tagged json) to its
// inner text, then collapses whitespace runs to a single space.
func CleanModelText(s string) string {
	s = reFencedBlock.ReplaceAllString(s, "$1")
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Truncate режет строку по рунам и добавляет многоточие.
func Truncate(s string, max int) string {
	r := []rune(s)
	if max <= 0 || len(r) <= max {
		return s
	}
	return string(r[:max]) + "…"
}
