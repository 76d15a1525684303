package pinyin

import "fmt"

// Styler wraps the tone-marked vowel of a syllable for display
type Styler func(vowel string, tone int) string

// toneColors is the fixed palette used by ColorStyler, one color per tone
var toneColors = map[int]string{
	1: "#e33737",
	2: "#e39c37",
	3: "#5cb85c",
	4: "#428bca",
}

// ClassStyler wraps the marked vowel in a span with a tN class so decks
// can color tones via their own CSS.
func ClassStyler(vowel string, tone int) string {
	return fmt.Sprintf(`<span class="t%d">%s</span>`, tone, vowel)
}

// ColorStyler wraps the marked vowel in a span with an inline color from
// the tone palette. Tones without a palette entry are left unwrapped.
func ColorStyler(vowel string, tone int) string {
	color, ok := toneColors[tone]
	if !ok {
		return vowel
	}
	return fmt.Sprintf(`<span style="color: %s">%s</span>`, color, vowel)
}
