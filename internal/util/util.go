// internal/util/util.go
// Package util holds small text helpers shared by the terminal renderers.
package util

import (
	"strings"
	"unicode/utf8"
)

// Ellipsis marks a value that was cut to fit a column.
const Ellipsis = "…"

// FitCell shortens text so that it occupies at most width runes, ellipsis included.
// A width below 1 leaves the text unchanged.
func FitCell(text string, width int) string {
	if width < 1 || utf8.RuneCountInString(text) <= width {
		return text
	}
	runes := []rune(text)
	return string(runes[:width-1]) + Ellipsis
}

// Wrap breaks text into lines of at most width runes, splitting on spaces and cutting
// words that are longer than a line. Existing newlines are kept.
func Wrap(text string, width int) []string {
	if width < 1 {
		return strings.Split(text, "\n")
	}
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		var cur []rune
		for _, word := range strings.Fields(paragraph) {
			w := []rune(word)
			if len(cur) > 0 && len(cur)+1+len(w) <= width {
				cur = append(append(cur, ' '), w...)
				continue
			}
			if len(cur) > 0 {
				lines = append(lines, string(cur))
				cur = nil
			}
			for len(w) > width {
				lines = append(lines, string(w[:width]))
				w = w[width:]
			}
			cur = w
		}
		lines = append(lines, string(cur))
	}
	return lines
}

// Hanging renders value wrapped to width with every continuation line indented by
// indent spaces, so it lines up after a fixed-width label.
func Hanging(value string, indent, width int) string {
	return strings.Join(Wrap(value, width-indent), "\n"+strings.Repeat(" ", indent))
}
