// utils/normalize.go
package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldChain = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// FoldAccents strips combining diacritical marks: "Quilpué" -> "Quilpue".
func FoldAccents(s string) string {
	out, _, err := transform.String(foldChain, s)
	if err != nil {
		return s
	}
	return out
}

// Character classes matching a base letter and its common Spanish accented
// forms. ñ is treated as a variant of n so "ano" matches "año".
var accentClasses = map[rune]string{
	'a': "[aáàäâ]",
	'e': "[eéèëê]",
	'i': "[iíìïî]",
	'o': "[oóòöô]",
	'u': "[uúùüû]",
	'n': "[nñ]",
}

// AccentInsensitivePattern builds a regex fragment that matches the query
// regardless of diacritics on either side. The query itself is folded first,
// then each foldable letter is widened to its accent class. Everything else
// is quoted literally.
func AccentInsensitivePattern(query string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(FoldAccents(query)) {
		if class, ok := accentClasses[r]; ok {
			b.WriteString(class)
			continue
		}
		b.WriteString(regexp.QuoteMeta(string(r)))
	}
	return b.String()
}
