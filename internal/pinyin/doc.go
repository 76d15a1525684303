// Package pinyin converts Mandarin text and numbered pinyin syllables into
// tone-marked pinyin. Tone placement follows standard pinyin rules: a, o or e
// takes the mark first, then the second vowel of an iu/ui pair, otherwise the
// last vowel of the syllable. Marked vowels can optionally be wrapped in HTML
// spans for tone-colored flashcard decks.
package pinyin
