package anki

import (
	"math/rand"
	"strings"
	"time"
	"unicode"

	"codeberg.org/zhlearn/pinyin-anki/internal/cleantext"
	"codeberg.org/zhlearn/pinyin-anki/internal/pinyin"
)

// clauseBreaks are the punctuation runes that stay anchored when scrambling
const clauseBreaks = "，。！？；：、"

// GeneratorOptions configures derived field generation
type GeneratorOptions struct {
	BlankMarker string            // cloze blank, e.g. "___"
	Separator   string            // joins scramble tokens for display
	MinMovable  int               // at or below this many movable tokens, scramble per character
	Hints       map[string]string // word to prompt hint lookup
	Styler      pinyin.Styler     // optional tone styling for romanized fields
	Rand        *rand.Rand        // randomness source for scrambling
}

// DefaultGeneratorOptions returns sensible defaults
func DefaultGeneratorOptions() *GeneratorOptions {
	return &GeneratorOptions{
		BlankMarker: "___",
		Separator:   " / ",
		MinMovable:  3,
		Hints:       DefaultPromptHints(),
		Rand:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Generator derives the study fields for a record
type Generator struct {
	options *GeneratorOptions
}

// NewGenerator creates a new field generator
func NewGenerator(options *GeneratorOptions) *Generator {
	if options == nil {
		options = DefaultGeneratorOptions()
	}
	if options.Rand == nil {
		options.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{options: options}
}

// Generate derives the study fields for a record and the selected card
// types. It never fails: any field that cannot be computed from the record
// content stays an empty string. Romanizations of the word and sentence are
// always produced, the other fields only for the types that use them.
func (g *Generator) Generate(rec *Record, types TypeSet) DerivedFields {
	var fields DerivedFields

	fields.WordPinyin = pinyin.SentenceWith(rec.Word, g.options.Styler)
	fields.SentencePinyin = pinyin.SentenceWith(rec.Sentence, g.options.Styler)

	if types.Has(TypeCloze) || types.Has(TypeGrammar) {
		fields.Cloze = g.clozeSentence(rec.Sentence, rec.Word)
		fields.ClozePinyin = g.romanizeCloze(fields.Cloze)
		fields.Prompt = g.prompt(rec.Word, rec.Definition1)
	}

	if types.Has(TypeOrder) {
		tokens := g.scrambleTokens(rec.Sentence)
		fields.Scrambled = strings.Join(tokens, g.options.Separator)
		fields.ScrambledPinyin = g.romanizeTokens(tokens)
	}

	if types.Has(TypeReconstruction) && rec.Sentence != "" {
		fields.Reconstructed = rec.Sentence
		fields.ReconstructedPinyin = fields.SentencePinyin
	}

	return fields
}

// clozeSentence blanks out the first occurrence of the word. When the word
// does not appear in the sentence the marker is appended at the end, so a
// cloze card always has a blank to fill.
func (g *Generator) clozeSentence(sentence, word string) string {
	if sentence == "" || word == "" {
		return ""
	}
	if strings.Contains(sentence, word) {
		return strings.Replace(sentence, word, g.options.BlankMarker, 1)
	}
	return sentence + " " + g.options.BlankMarker
}

// romanizeCloze romanizes a cloze sentence segment by segment, keeping the
// blank marker itself unromanized.
func (g *Generator) romanizeCloze(cloze string) string {
	if cloze == "" {
		return ""
	}

	var parts []string
	for i, segment := range strings.Split(cloze, g.options.BlankMarker) {
		if i > 0 {
			parts = append(parts, g.options.BlankMarker)
		}
		if r := pinyin.SentenceWith(segment, g.options.Styler); r != "" {
			parts = append(parts, r)
		}
	}
	return strings.Join(parts, " ")
}

// scrambleTokens tokenizes the sentence and shuffles the movable tokens.
// Clause-break punctuation keeps its original slot. Sentences that do not
// split into enough movable tokens (the usual case for unspaced Chinese)
// are scrambled per character instead.
func (g *Generator) scrambleTokens(sentence string) []string {
	tokens := splitTokens(sentence)

	var movable []int
	for i, tok := range tokens {
		if !isBreakToken(tok) {
			movable = append(movable, i)
		}
	}

	if len(movable) <= g.options.MinMovable {
		return g.charTokens(sentence)
	}

	words := make([]string, len(movable))
	for i, idx := range movable {
		words[i] = tokens[idx]
	}
	g.options.Rand.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})
	for i, idx := range movable {
		tokens[idx] = words[i]
	}

	return tokens
}

// splitTokens splits a sentence on whitespace, with each clause-break rune
// forming its own token
func splitTokens(sentence string) []string {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, r := range sentence {
		switch {
		case unicode.IsSpace(r):
			flush()
		case strings.ContainsRune(clauseBreaks, r):
			flush()
			tokens = append(tokens, string(r))
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return tokens
}

// isBreakToken reports whether the token is a single clause-break rune
func isBreakToken(tok string) bool {
	runes := []rune(tok)
	return len(runes) == 1 && strings.ContainsRune(clauseBreaks, runes[0])
}

// charTokens shuffles all non-space runes of the sentence individually
func (g *Generator) charTokens(sentence string) []string {
	var chars []string
	for _, r := range sentence {
		if !unicode.IsSpace(r) {
			chars = append(chars, string(r))
		}
	}
	g.options.Rand.Shuffle(len(chars), func(i, j int) {
		chars[i], chars[j] = chars[j], chars[i]
	})
	return chars
}

// romanizeTokens romanizes scramble tokens one by one, joined with the same
// separator as the scrambled sentence so the two lines stay aligned. Tokens
// without Han content (punctuation) are carried through verbatim.
func (g *Generator) romanizeTokens(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}

	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		if pinyin.HasHan(tok) {
			parts[i] = pinyin.SentenceWith(tok, g.options.Styler)
		} else {
			parts[i] = tok
		}
	}
	return strings.Join(parts, g.options.Separator)
}

// prompt builds the hint for cloze and grammar cards: a table lookup for
// known particles, otherwise the leading sense of the primary definition.
func (g *Generator) prompt(word, definition string) string {
	if hint, ok := g.options.Hints[word]; ok {
		return hint
	}
	if clause := cleantext.FirstClause(definition); clause != "" {
		return "Means: " + clause
	}
	return ""
}

// DefaultPromptHints returns the built-in hint table for common particles
// and function words.
func DefaultPromptHints() map[string]string {
	return map[string]string{
		"的":  "possessive or descriptive particle",
		"了":  "completed action or change of state",
		"在":  "location marker or ongoing action",
		"是":  "to be",
		"和":  "and, joining nouns",
		"或":  "or",
		"也":  "also, too",
		"都":  "all, both",
		"还":  "still, in addition",
		"又":  "once again",
		"如果": "if, conditional",
		"要是": "if, colloquial conditional",
		"虽然": "although",
		"但是": "but, however",
		"因为": "because",
		"所以": "therefore",
	}
}
