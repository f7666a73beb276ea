// Package display provides human-readable names for machine codes.
//
// Rule: code is for machines, words are for humans.
// Use these functions in CLI output and reports; keep the raw codes for
// settings files and comparisons.
package display

import (
	"strconv"
	"strings"
)

var statuses = map[string]string{
	"good":    "Passed",
	"bad":     "Failed",
	"unknown": "Unknown",
	"":        "Full log",
}

// Status returns the human-readable name for an artifact status code.
// Unknown codes are returned as-is.
func Status(code string) string {
	if name, ok := statuses[code]; ok {
		return name
	}
	return code
}

// Plural returns "1 run", "2 runs", ...
func Plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	if strings.HasSuffix(noun, "s") {
		return strconv.Itoa(n) + " " + noun + "es"
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
