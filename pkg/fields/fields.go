// Package fields canonicalizes component field labels into comparison keys
// and restores display labels from those keys.
package fields

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// placeholder is the root of the synthetic key family used for fields that
// carry neither a label nor a value.
const placeholder = "empty"

var (
	canonicalReplacer = strings.NewReplacer(`"`, "", " ", "_", "(", "", ")", "")
	titleCaser        = cases.Title(language.English, cases.NoLower)
)

// Canonicalize converts a display label into a comparison key.
// Canonicalize(Canonicalize(x)) == Canonicalize(x) for every x.
func Canonicalize(label string) string {
	return canonicalReplacer.Replace(strings.ToLower(label))
}

// Restore synthesizes a display label from a key: "part_number" becomes
// "Part Number". It cannot recover casing inside a token.
func Restore(key string) string {
	tokens := strings.FieldsFunc(key, func(r rune) bool {
		return r == '_' || r == ' '
	})
	for i, tok := range tokens {
		tokens[i] = titleCaser.String(tok)
	}
	return strings.Join(tokens, " ")
}

// Quote wraps a label in double quotes unless it already is.
func Quote(label string) string {
	if len(label) >= 2 && strings.HasPrefix(label, `"`) && strings.HasSuffix(label, `"`) {
		return label
	}
	return `"` + label + `"`
}

// Unquote removes one pair of surrounding double quotes.
func Unquote(label string) string {
	if len(label) >= 2 && strings.HasPrefix(label, `"`) && strings.HasSuffix(label, `"`) {
		return label[1 : len(label)-1]
	}
	return label
}

// PlaceholderKey returns the n-th synthetic key: empty, _empty, __empty...
func PlaceholderKey(n int) string {
	if n < 0 {
		n = 0
	}
	return strings.Repeat("_", n) + placeholder
}

// IsPlaceholder reports whether key belongs to the synthetic placeholder family.
func IsPlaceholder(key string) bool {
	return strings.TrimLeft(key, "_") == placeholder
}

// NextPlaceholder returns the first placeholder key not present in taken.
func NextPlaceholder(taken func(string) bool) string {
	for n := 0; ; n++ {
		if key := PlaceholderKey(n); !taken(key) {
			return key
		}
	}
}

// Disambiguate returns key unchanged if it is free, otherwise appends "2"
// or increments a trailing number until taken reports the key as free.
func Disambiguate(key string, taken func(string) bool) string {
	for taken(key) {
		key = bump(key)
	}
	return key
}

// bump turns "spec" into "spec2" and "spec2" into "spec3".
func bump(key string) string {
	i := len(key)
	for i > 0 && key[i-1] >= '0' && key[i-1] <= '9' {
		i--
	}
	if i == len(key) {
		return key + "2"
	}
	n, err := strconv.Atoi(key[i:])
	if err != nil {
		return key + "2"
	}
	return key[:i] + strconv.Itoa(n+1)
}
