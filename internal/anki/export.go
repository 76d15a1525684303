package anki

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Import directives understood by Anki's text importer
const (
	directiveSeparator = "#separator:tab"
	directiveHTML      = "#html:true"
)

// ExporterOptions configures the Anki import file export
type ExporterOptions struct {
	IncludeHeaders bool // emit the #separator and #html directives
}

// DefaultExporterOptions returns sensible defaults
func DefaultExporterOptions() *ExporterOptions {
	return &ExporterOptions{
		IncludeHeaders: true,
	}
}

// Exporter writes accepted records as an Anki-importable tab separated file
type Exporter struct {
	options *ExporterOptions
	records []Record
}

// NewExporter creates a new exporter
func NewExporter(options *ExporterOptions) *Exporter {
	if options == nil {
		options = DefaultExporterOptions()
	}
	return &Exporter{
		options: options,
		records: make([]Record, 0),
	}
}

// Add appends a record to the export
func (e *Exporter) Add(rec Record) {
	e.records = append(e.records, rec)
}

// Records returns all records added so far
func (e *Exporter) Records() []Record {
	return e.records
}

// Write emits the directives and one 17-field line per record. Fields are
// joined with raw tabs: Anki does not expect quoting, and CSV-style quoting
// would corrupt HTML content in the styled pinyin fields.
func (e *Exporter) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)

	if e.options.IncludeHeaders {
		fmt.Fprintln(bw, directiveSeparator)
		fmt.Fprintln(bw, directiveHTML)
	}

	for _, rec := range e.records {
		if _, err := fmt.Fprintln(bw, strings.Join(columns(rec), "\t")); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}
	return nil
}

// WriteFile creates the output file and writes the export into it
func (e *Exporter) WriteFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	return e.Write(file)
}

// columns returns the 17 output fields in import order: the eight input
// fields followed by the derived study fields. Inapplicable fields are
// empty strings so the column count stays fixed.
func columns(rec Record) []string {
	return []string{
		rec.Word,
		rec.Definition1,
		rec.Definition2,
		rec.Sentence,
		rec.Translation,
		rec.WordAudio,
		rec.SentenceAudio,
		rec.Image,
		rec.Derived.Cloze,
		rec.Derived.ClozePinyin,
		rec.Derived.Scrambled,
		rec.Derived.ScrambledPinyin,
		rec.Derived.Reconstructed,
		rec.Derived.ReconstructedPinyin,
		rec.Derived.Prompt,
		rec.Derived.WordPinyin,
		rec.Derived.SentencePinyin,
	}
}

// Stats returns statistics about the exported records
func (e *Exporter) Stats() (total, withAudio, withImages int) {
	total = len(e.records)

	for _, rec := range e.records {
		if rec.WordAudio != "" || rec.SentenceAudio != "" {
			withAudio++
		}
		if rec.Image != "" {
			withImages++
		}
	}

	return
}
