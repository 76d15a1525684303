package classify

import (
	"strings"
	"unicode/utf8"

	"codeberg.org/zhlearn/pinyin-anki/internal/anki"
)

// Classifier suggests card types for records
type Classifier struct {
	lists        *Lists
	functionWord map[string]bool
}

// NewClassifier creates a classifier over the given lists, or the defaults
// when lists is nil.
func NewClassifier(lists *Lists) *Classifier {
	if lists == nil {
		lists = DefaultLists()
	}

	functionWord := make(map[string]bool)
	for _, w := range lists.FunctionWords {
		functionWord[w] = true
	}

	return &Classifier{
		lists:        lists,
		functionWord: functionWord,
	}
}

// Suggest returns the recommended card types for a record. The suggestion
// is deterministic for identical input and never empty: records no rule
// matches fall back to a plain cloze card.
func (c *Classifier) Suggest(rec *anki.Record) anki.TypeSet {
	types := anki.NewTypeSet()

	wordLen := utf8.RuneCountInString(rec.Word)
	sentLen := utf8.RuneCountInString(rec.Sentence)
	isFunction := c.functionWord[rec.Word]

	// Media recognition works for pictures and for single content characters
	if rec.Image != "" || (wordLen == 1 && !isFunction) {
		types.Add(anki.TypeMedia)
	}

	// Function words drill best as cloze blanks
	if isFunction {
		types.Add(anki.TypeCloze)
	}

	// Grammar cards for marker constructions and multi-character content words
	if c.hasGrammarMarker(rec.Sentence) || (wordLen > 1 && !isFunction) {
		types.Add(anki.TypeGrammar)
	}

	// Word order practice needs a long sentence with an internal break
	if sentLen > c.lists.Thresholds.MinOrderLen && c.hasInternalBreak(rec.Sentence) {
		types.Add(anki.TypeOrder)
	}

	// Reconstruction wants sentences that are neither trivial nor a wall
	if sentLen > c.lists.Thresholds.MinReconLen && sentLen < c.lists.Thresholds.MaxReconLen {
		types.Add(anki.TypeReconstruction)
	}

	if types.Empty() {
		types.Add(anki.TypeCloze)
	}
	return types
}

// hasGrammarMarker reports whether the sentence contains any marker substring
func (c *Classifier) hasGrammarMarker(sentence string) bool {
	for _, marker := range c.lists.GrammarMarkers {
		if marker != "" && strings.Contains(sentence, marker) {
			return true
		}
	}
	return false
}

// hasInternalBreak reports whether the sentence contains a clause break
// before its final rune. Trailing sentence punctuation alone does not make
// a sentence multi-clause.
func (c *Classifier) hasInternalBreak(sentence string) bool {
	runes := []rune(sentence)
	for i, r := range runes {
		if i == len(runes)-1 {
			break
		}
		if strings.ContainsRune(c.lists.ClauseBreaks, r) {
			return true
		}
	}
	return false
}
