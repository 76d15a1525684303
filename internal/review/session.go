package review

import (
	"fmt"
	"io"
	"os"

	"codeberg.org/zhlearn/pinyin-anki/internal/anki"
	"codeberg.org/zhlearn/pinyin-anki/internal/batch"
	"codeberg.org/zhlearn/pinyin-anki/internal/classify"
	"codeberg.org/zhlearn/pinyin-anki/internal/cleantext"
)

// Status is the review decision state of one record
type Status int

const (
	StatusPending Status = iota
	StatusAccepted
	StatusSkipped
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusAccepted:
		return "Accepted"
	case StatusSkipped:
		return "Skipped"
	default:
		return "Unknown"
	}
}

// Options configures a review session
type Options struct {
	Strict        bool // reject short input lines instead of padding them
	ExportHeaders bool // emit the #separator and #html directives on export
}

// DefaultOptions returns sensible defaults
func DefaultOptions() *Options {
	return &Options{
		Strict:        false,
		ExportHeaders: true,
	}
}

// Session owns the ordered records under review and the cursor over them.
// Records are never deleted, only marked accepted or skipped; stepping back
// reopens a record without discarding its generated fields. A Session is
// not safe for concurrent use and does not need to be.
type Session struct {
	options    *Options
	classifier *classify.Classifier
	generator  *anki.Generator

	records   []anki.Record
	status    []Status
	fields    []anki.DerivedFields
	generated []bool
	override  []anki.TypeSet
	cursor    int
	skipped   int // lines or records dropped at load time
}

// NewSession creates a session over the given classifier and generator.
// Nil collaborators fall back to defaults.
func NewSession(classifier *classify.Classifier, generator *anki.Generator, options *Options) *Session {
	if classifier == nil {
		classifier = classify.NewClassifier(nil)
	}
	if generator == nil {
		generator = anki.NewGenerator(nil)
	}
	if options == nil {
		options = DefaultOptions()
	}
	return &Session{
		options:    options,
		classifier: classifier,
		generator:  generator,
	}
}

// Load ingests parsed records: free-text fields are cleaned, records whose
// word cleans away to nothing are dropped with a warning, and all review
// state is reset. Returns the number of records loaded.
func (s *Session) Load(records []anki.Record) int {
	s.skipped = 0

	kept := make([]anki.Record, 0, len(records))
	for _, rec := range records {
		cleanRecord(&rec)
		if err := rec.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: skipping record: %v\n", err)
			s.skipped++
			continue
		}
		kept = append(kept, rec)
	}

	s.records = kept
	s.status = make([]Status, len(kept))
	s.fields = make([]anki.DerivedFields, len(kept))
	s.generated = make([]bool, len(kept))
	s.override = make([]anki.TypeSet, len(kept))
	s.cursor = 0
	return len(kept)
}

// LoadLines parses raw input lines and loads the valid records
func (s *Session) LoadLines(lines []string) int {
	records, skipped := batch.ParseRecords(lines, s.options.Strict)
	n := s.Load(records)
	s.skipped += skipped
	return n
}

// cleanRecord normalizes the free-text fields in place. Media references
// pass through untouched.
func cleanRecord(rec *anki.Record) {
	rec.Word = cleantext.Clean(rec.Word)
	rec.Definition1 = cleantext.Clean(rec.Definition1)
	rec.Definition2 = cleantext.Clean(rec.Definition2)
	rec.Sentence = cleantext.Clean(rec.Sentence)
	rec.Translation = cleantext.Clean(rec.Translation)
}

// Len returns the number of loaded records
func (s *Session) Len() int {
	return len(s.records)
}

// Index returns the cursor position
func (s *Session) Index() int {
	return s.cursor
}

// Skipped returns how many lines or records were dropped at load time
func (s *Session) Skipped() int {
	return s.skipped
}

// Done reports whether every record has been decided
func (s *Session) Done() bool {
	return s.cursor >= len(s.records)
}

// Current returns the record under review, or nil when the session is done
func (s *Session) Current() *anki.Record {
	if s.Done() {
		return nil
	}
	return &s.records[s.cursor]
}

// Suggestions re-derives the classifier's suggestion for the current
// record. It is deterministic and never empty.
func (s *Session) Suggestions() anki.TypeSet {
	if s.Done() {
		return anki.NewTypeSet()
	}
	return s.classifier.Suggest(&s.records[s.cursor])
}

// Types returns the effective selection for the current record: the
// reviewer's override when one is set, otherwise the suggestion.
func (s *Session) Types() anki.TypeSet {
	if s.Done() {
		return anki.NewTypeSet()
	}
	if o := s.override[s.cursor]; o != nil && !o.Empty() {
		return o
	}
	return s.classifier.Suggest(&s.records[s.cursor])
}

// SetTypes overrides the suggested types for the current record and
// invalidates its cached fields so the next access regenerates.
func (s *Session) SetTypes(types anki.TypeSet) {
	if s.Done() {
		return
	}
	s.override[s.cursor] = types
	s.generated[s.cursor] = false
}

// Fields returns the derived fields for the current record, generating
// them on first access. The result is cached: stepping back to a record
// never silently re-scrambles it.
func (s *Session) Fields() anki.DerivedFields {
	if s.Done() {
		return anki.DerivedFields{}
	}
	if !s.generated[s.cursor] {
		s.fields[s.cursor] = s.generator.Generate(&s.records[s.cursor], s.Types())
		s.generated[s.cursor] = true
	}
	return s.fields[s.cursor]
}

// Regenerate re-runs the generator for the current record, optionally with
// an explicit type set overriding the suggestion. Only the current
// record's cached fields change; accepted history is untouched.
func (s *Session) Regenerate(override anki.TypeSet) anki.DerivedFields {
	if s.Done() {
		return anki.DerivedFields{}
	}
	if override != nil && !override.Empty() {
		s.override[s.cursor] = override
	}
	s.fields[s.cursor] = s.generator.Generate(&s.records[s.cursor], s.Types())
	s.generated[s.cursor] = true
	return s.fields[s.cursor]
}

// Accept finalizes the current fields onto the record, marks it accepted
// and advances the cursor.
func (s *Session) Accept() {
	if s.Done() {
		return
	}
	s.records[s.cursor].Derived = s.Fields()
	s.status[s.cursor] = StatusAccepted
	s.cursor++
}

// Skip marks the current record as producing no output and advances
func (s *Session) Skip() {
	if s.Done() {
		return
	}
	s.status[s.cursor] = StatusSkipped
	s.cursor++
}

// Previous steps back to the prior record and reopens it for review,
// keeping its previously generated fields. Re-deciding replaces the
// earlier decision, so the export never gains duplicates. Returns false
// when already at the first record.
func (s *Session) Previous() bool {
	if s.cursor == 0 {
		return false
	}
	s.cursor--
	s.status[s.cursor] = StatusPending
	return true
}

// Accepted returns the accepted records in input order with their
// finalized fields.
func (s *Session) Accepted() []anki.Record {
	var out []anki.Record
	for i, rec := range s.records {
		if s.status[i] == StatusAccepted {
			out = append(out, rec)
		}
	}
	return out
}

// Counts returns how many records have been accepted and skipped so far
func (s *Session) Counts() (accepted, skipped int) {
	for _, st := range s.status {
		switch st {
		case StatusAccepted:
			accepted++
		case StatusSkipped:
			skipped++
		}
	}
	return
}

// ExportAll writes the accepted records as an Anki import file
func (s *Session) ExportAll(w io.Writer) error {
	exp := anki.NewExporter(&anki.ExporterOptions{IncludeHeaders: s.options.ExportHeaders})
	for _, rec := range s.Accepted() {
		exp.Add(rec)
	}
	return exp.Write(w)
}
