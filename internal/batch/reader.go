package batch

import (
	"fmt"
	"os"
	"strings"

	"codeberg.org/zhlearn/pinyin-anki/internal/anki"
)

// ReadRecordFile reads vocabulary records from a tab separated file and
// returns them together with the number of lines dropped as malformed or
// invalid.
func ReadRecordFile(filename string, strict bool) ([]anki.Record, int, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read input file: %w", err)
	}

	records, skipped := ParseRecords(splitLines(string(content)), strict)
	return records, skipped, nil
}

// ParseRecords parses raw input lines into records. Blank lines and lines
// starting with # are ignored, which also covers the directive lines at the
// top of previously exported files. A line with too few fields is padded
// with empty strings, or skipped with a warning in strict mode. A record
// without a word is always skipped with a warning. Problem lines never
// abort the batch; they are only counted.
func ParseRecords(lines []string, strict bool) ([]anki.Record, int) {
	var records []anki.Record
	skipped := 0

	for i, line := range lines {
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < anki.InputColumns {
			if strict {
				fmt.Fprintf(os.Stderr, "Warning: skipping line %d: expected %d fields, got %d\n",
					i+1, anki.InputColumns, len(fields))
				skipped++
				continue
			}
			for len(fields) < anki.InputColumns {
				fields = append(fields, "")
			}
		}

		rec := recordFromFields(fields)
		if err := rec.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: skipping line %d: %v\n", i+1, err)
			skipped++
			continue
		}

		records = append(records, rec)
	}

	return records, skipped
}

// recordFromFields maps a field slice onto a record. Fields beyond the
// eight input columns are read back into the derived fields, so re-ingesting
// an exported file loses nothing; anything past the export layout is
// ignored.
func recordFromFields(fields []string) anki.Record {
	get := func(i int) string {
		if i < len(fields) {
			return strings.TrimSpace(fields[i])
		}
		return ""
	}

	return anki.Record{
		Word:          get(0),
		Definition1:   get(1),
		Definition2:   get(2),
		Sentence:      get(3),
		Translation:   get(4),
		WordAudio:     get(5),
		SentenceAudio: get(6),
		Image:         get(7),
		Derived: anki.DerivedFields{
			Cloze:               get(8),
			ClozePinyin:         get(9),
			Scrambled:           get(10),
			ScrambledPinyin:     get(11),
			Reconstructed:       get(12),
			ReconstructedPinyin: get(13),
			Prompt:              get(14),
			WordPinyin:          get(15),
			SentencePinyin:      get(16),
		},
	}
}

// splitLines splits file content into lines, tolerating CRLF endings
func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
