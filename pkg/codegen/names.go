package codegen

import (
	"strconv"
	"strings"
	"unicode"
)

// sanitizeName turns a human page/element name into a valid component
// symbol: non-alphanumerics become separators, each token is
// title-cased, tokens are concatenated. Empty or digit-leading results
// fall back to a "Page" prefix.
func sanitizeName(name string) string {
	var b strings.Builder
	word := make([]rune, 0, 16)
	flush := func() {
		if len(word) == 0 {
			return
		}
		b.WriteRune(unicode.ToUpper(word[0]))
		for _, r := range word[1:] {
			b.WriteRune(r)
		}
		word = word[:0]
	}
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			word = append(word, r)
			continue
		}
		flush()
	}
	flush()
	out := b.String()
	if out == "" {
		return "Page"
	}
	if unicode.IsDigit(rune(out[0])) {
		return "Page" + out
	}
	return out
}

// componentNames assigns a unique component symbol per page, in page
// order. Sanitized collisions get a positional suffix (Home, Home2, …)
// instead of silently overwriting one page's file with another's.
func componentNames(pageNames []string) []string {
	used := make(map[string]int, len(pageNames))
	out := make([]string, len(pageNames))
	for i, name := range pageNames {
		base := sanitizeName(name)
		n := used[base]
		used[base] = n + 1
		if n == 0 {
			out[i] = base
			continue
		}
		candidate := base + strconv.Itoa(n+1)
		for used[candidate] > 0 {
			n++
			candidate = base + strconv.Itoa(n+1)
		}
		used[candidate] = 1
		out[i] = candidate
	}
	return out
}
