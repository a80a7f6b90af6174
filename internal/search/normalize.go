package search

import "strings"

// letterFolds maps Arabic letter variants that are interchangeable in casual
// spelling onto one canonical base letter. Kept as a data table so it can be
// extended without touching the scoring code.
var letterFolds = map[rune]rune{
	'أ': 'ا',
	'إ': 'ا',
	'آ': 'ا',
	'ٱ': 'ا',
	'ى': 'ي',
	'ة': 'ه',
	'ؤ': 'ء',
	'ئ': 'ء',
}

// isDiacritic reports whether r is one of the Arabic combining marks
// (short vowels, shadda, sukun, superscript alef) dropped before matching.
func isDiacritic(r rune) bool {
	return (r >= 0x064B && r <= 0x065F) || r == 0x0670
}

// Normalize prepares text for comparison: strips diacritics, folds letter
// variants and lower-cases any Latin characters. Idempotent and total;
// empty input yields empty output.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if isDiacritic(r) {
			continue
		}
		if folded, ok := letterFolds[r]; ok {
			r = folded
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}

// Tokenize normalizes a query and splits it into whitespace-delimited terms,
// left to right, dropping empty tokens.
func Tokenize(query string) []string {
	return strings.Fields(Normalize(query))
}
