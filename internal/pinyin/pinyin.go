package pinyin

import (
	"regexp"
	"strings"
	"unicode"

	gopinyin "github.com/mozillazg/go-pinyin"
)

// toneMarks maps each plain vowel to its diacritic forms for tones 1-4
var toneMarks = map[rune][4]rune{
	'a': {'ā', 'á', 'ǎ', 'à'},
	'e': {'ē', 'é', 'ě', 'è'},
	'i': {'ī', 'í', 'ǐ', 'ì'},
	'o': {'ō', 'ó', 'ǒ', 'ò'},
	'u': {'ū', 'ú', 'ǔ', 'ù'},
	'ü': {'ǖ', 'ǘ', 'ǚ', 'ǜ'},
}

// tonedRe matches a bare syllable with an optional trailing tone digit
var tonedRe = regexp.MustCompile(`^([a-zA-ZüÜ]+)([0-5])?$`)

// Mark converts a bare syllable and a tone number into tone-marked pinyin.
// The "uu" umlaut convention is normalized to ü first. Tone 0 and 5 both
// mean neutral tone and return the syllable unmarked, as does any tone
// outside 1-4 or a syllable with no vowel. Mark never fails.
func Mark(syllable string, tone int) string {
	return MarkWith(syllable, tone, nil)
}

// MarkWith is Mark with the chosen vowel additionally wrapped by style.
// The styler never changes which vowel receives the mark; a nil styler
// is equivalent to Mark.
func MarkWith(syllable string, tone int, style Styler) string {
	s := strings.ReplaceAll(syllable, "uu", "ü")
	if tone < 1 || tone > 4 {
		return s
	}

	runes := []rune(s)
	lower := []rune(strings.ToLower(s))
	i := markIndex(lower)
	if i < 0 {
		return s
	}

	marked := toneMarks[lower[i]][tone-1]
	if unicode.IsUpper(runes[i]) {
		marked = unicode.ToUpper(marked)
	}

	if style == nil {
		runes[i] = marked
		return string(runes)
	}
	return string(runes[:i]) + style(string(marked), tone) + string(runes[i+1:])
}

// markIndex picks the rune that receives the tone mark, or -1 if the
// syllable has no vowel. Rules: first a, o or e (in that priority), then
// the u of an iu pair, then the i of a ui pair, then the last vowel.
func markIndex(lower []rune) int {
	for _, v := range []rune{'a', 'o', 'e'} {
		for i, r := range lower {
			if r == v {
				return i
			}
		}
	}

	for i := 0; i+1 < len(lower); i++ {
		if lower[i] == 'i' && lower[i+1] == 'u' {
			return i + 1
		}
	}
	for i := 0; i+1 < len(lower); i++ {
		if lower[i] == 'u' && lower[i+1] == 'i' {
			return i + 1
		}
	}

	for i := len(lower) - 1; i >= 0; i-- {
		switch lower[i] {
		case 'a', 'e', 'i', 'o', 'u', 'ü':
			return i
		}
	}

	return -1
}

// ParseToned splits a numbered syllable like "zuo4" into its base letters
// and tone digit. A missing digit means neutral tone. Returns false for
// anything that is not letters plus at most one trailing tone digit.
func ParseToned(s string) (syllable string, tone int, ok bool) {
	m := tonedRe.FindStringSubmatch(s)
	if m == nil {
		return "", 0, false
	}
	if m[2] != "" {
		tone = int(m[2][0] - '0')
	}
	return m[1], tone, true
}

// Sentence converts every Han character in text to tone-marked pinyin,
// joined with single spaces. Non-Han characters are skipped, so empty or
// fully non-Chinese input yields an empty string.
func Sentence(text string) string {
	return SentenceWith(text, nil)
}

// SentenceWith is Sentence with a styler applied to each marked vowel.
func SentenceWith(text string, style Styler) string {
	args := gopinyin.NewArgs()
	args.Style = gopinyin.Tone3

	var parts []string
	for _, readings := range gopinyin.Pinyin(text, args) {
		if len(readings) == 0 {
			continue
		}

		syllable, tone, ok := ParseToned(readings[0])
		if !ok {
			// Keep unexpected dictionary entries as-is
			parts = append(parts, readings[0])
			continue
		}
		parts = append(parts, MarkWith(syllable, tone, style))
	}

	return strings.Join(parts, " ")
}

// HasHan reports whether text contains at least one Han character.
func HasHan(text string) bool {
	for _, r := range text {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}
