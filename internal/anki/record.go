package anki

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Column counts for the flat-file contract
const (
	InputColumns  = 8  // fields per input record
	OutputColumns = 17 // fields per exported record
)

// Record represents a single vocabulary entry in the flat-file layout
type Record struct {
	Word          string // the Chinese headword
	Definition1   string // primary definition
	Definition2   string // secondary definition (may be empty)
	Sentence      string // example sentence containing the word
	Translation   string // translation of the example sentence
	WordAudio     string // opaque media reference for the word audio
	SentenceAudio string // opaque media reference for the sentence audio
	Image         string // opaque media reference for a picture (may be empty)

	Derived DerivedFields // study fields attached after generation
}

// DerivedFields holds the generated study fields for a record. Fields that
// do not apply to the selected card types stay empty.
type DerivedFields struct {
	WordPinyin          string // romanized headword
	SentencePinyin      string // romanized example sentence
	Cloze               string // sentence with the word blanked out
	ClozePinyin         string // romanized cloze with the blank preserved
	Scrambled           string // sentence tokens in shuffled order
	ScrambledPinyin     string // per-token romanization of the scramble
	Reconstructed       string // the full sentence to reproduce
	ReconstructedPinyin string // romanization of the full sentence
	Prompt              string // short hint shown on cloze/grammar cards
}

// Validate checks that the record may enter the pipeline. A record without
// a headword cannot produce any card and is rejected at ingestion.
func (r Record) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Word, validation.Required),
	)
}
