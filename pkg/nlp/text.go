package nlp

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// A word starts with a letter or digit and may carry the punctuation that shows
// up inside tech names: C++, C#, Node.js, CI/CD, scikit-learn.
var (
	reWord     = regexp.MustCompile(`[\p{L}\p{N}][\p{L}\p{N}+#./'\-]*`)
	reSentence = regexp.MustCompile(`[^.!?]+[.!?]*`)
)

// Words splits text into word tokens in document order, keeping original casing.
func Words(s string) []string {
	raw := reWord.FindAllString(s, -1)
	out := make([]string, 0, len(raw))
	for _, w := range raw {
		w = strings.TrimRight(w, ".'/-")
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

// Sentences splits text on terminal punctuation; the punctuation stays with its sentence.
func Sentences(s string) []string {
	var out []string
	for _, m := range reSentence.FindAllString(s, -1) {
		if m = strings.TrimSpace(m); m != "" {
			out = append(out, m)
		}
	}
	return out
}

// IsCapitalized reports whether w starts with an upper-case letter.
func IsCapitalized(w string) bool {
	r, _ := utf8.DecodeRuneInString(w)
	return unicode.IsUpper(r)
}

// HasTechMarks reports whether w looks like a product or tool name: mixed case
// after the first letter, digits next to letters, or symbols such as + # .
func HasTechMarks(w string) bool {
	if strings.ContainsAny(w, "+#.") {
		return true
	}
	var letters, digits, upperAfterFirst bool
	for i, r := range w {
		switch {
		case unicode.IsDigit(r):
			digits = true
		case unicode.IsLetter(r):
			letters = true
			if i > 0 && unicode.IsUpper(r) {
				upperAfterFirst = true
			}
		}
	}
	return upperAfterFirst || (letters && digits)
}
