package dining

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// titleOverrides fixes words the generic rule gets wrong.
var titleOverrides = map[string]string{
	"Ii": "II",
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// titleWord upper-cases the first letter or digit of word and lower-cases what
// follows it. Leading punctuation such as "(" is kept as is.
func titleWord(word string) string {
	if utf8.RuneCountInString(word) <= 1 {
		return word
	}
	start := strings.IndexFunc(word, isAlnum)
	if start < 0 {
		return strings.ToLower(word)
	}
	first, size := utf8.DecodeRuneInString(word[start:])
	titled := string(unicode.ToUpper(first)) + strings.ToLower(word[start+size:])
	if override, ok := titleOverrides[titled]; ok {
		titled = override
	}
	return word[:start] + titled
}

// ToTitleCase capitalizes every word longer than one letter and lower-cases
// the rest of it. Single-letter words and all whitespace are left untouched.
func ToTitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	wordStart := -1
	for i, r := range s {
		if unicode.IsSpace(r) {
			if wordStart >= 0 {
				b.WriteString(titleWord(s[wordStart:i]))
				wordStart = -1
			}
			b.WriteRune(r)
			continue
		}
		if wordStart < 0 {
			wordStart = i
		}
	}
	if wordStart >= 0 {
		b.WriteString(titleWord(s[wordStart:]))
	}
	return b.String()
}
