package tui

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// tabSpaces is what the textarea inserts in place of a tab.
const tabSpaces = "    "

// shownAs is how the textarea displays r once it has sanitized its input.
func shownAs(r rune) string {
	switch {
	case r == '\t':
		return tabSpaces
	case r == '\n', r == '\r':
		return "\n"
	case r == utf8.RuneError, unicode.IsControl(r):
		return ""
	}
	return string(r)
}

// restoreText maps the textarea value edited back onto the document text
// orig it was showing before the change. The parts of edited that still read
// as orig keep orig's runes, so tabs and other characters the textarea
// rewrites survive edits made elsewhere. The changed middle is taken as typed.
func restoreText(orig, edited string) string {
	o := []rune(orig)
	w := []rune(edited)

	// shown is orig as the textarea displays it. first[x] and last[x] are the
	// lowest and highest orig indexes starting at shown position x, or -1 when
	// x falls inside the expansion of a single rune.
	var shown []rune
	starts := make([]int, len(o)+1)
	for i, r := range o {
		starts[i] = len(shown)
		shown = append(shown, []rune(shownAs(r))...)
	}
	starts[len(o)] = len(shown)

	first := make([]int, len(shown)+1)
	last := make([]int, len(shown)+1)
	for x := range first {
		first[x], last[x] = -1, -1
	}
	for i, x := range starts {
		if first[x] < 0 {
			first[x] = i
		}
		last[x] = i
	}

	p := 0
	for p < len(shown) && p < len(w) && shown[p] == w[p] {
		p++
	}
	for last[p] < 0 {
		p--
	}

	limit := min(len(shown), len(w)) - p
	s := 0
	for s < limit && shown[len(shown)-1-s] == w[len(w)-1-s] {
		s++
	}
	q := len(shown) - s
	for first[q] < 0 {
		q++
	}
	tail := len(shown) - q

	head := o[:last[p]]
	rest := o[first[q]:]
	if p == q {
		rest = o[last[p]:]
	}

	var b strings.Builder
	b.WriteString(string(head))
	b.WriteString(string(w[p : len(w)-tail]))
	b.WriteString(string(rest))
	return b.String()
}
