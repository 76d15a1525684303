package batch

import (
	"path/filepath"
	"strings"
	"testing"

	"codeberg.org/zhlearn/pinyin-anki/internal/anki"
	"codeberg.org/zhlearn/pinyin-anki/internal/testutil"
)

const fullLine = "爸爸\tfather (informal)/dad\tpapa\t我爸爸在家。\tMy dad is at home.\tbaba.mp3\tbaba_s.mp3\tbaba.jpg"

func TestParseRecords(t *testing.T) {
	lines := []string{
		"# vocabulary export",
		"",
		fullLine,
		"   ",
		"了\tcompleted action\t\t我吃了饭。\tI have eaten.\tle.mp3\tle_s.mp3\t",
	}

	records, skipped := ParseRecords(lines, false)

	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if skipped != 0 {
		t.Errorf("Expected 0 skipped lines, got %d", skipped)
	}

	rec := records[0]
	if rec.Word != "爸爸" {
		t.Errorf("Expected word 爸爸, got %q", rec.Word)
	}
	if rec.Definition1 != "father (informal)/dad" {
		t.Errorf("Unexpected definition: %q", rec.Definition1)
	}
	if rec.Sentence != "我爸爸在家。" {
		t.Errorf("Unexpected sentence: %q", rec.Sentence)
	}
	if rec.Image != "baba.jpg" {
		t.Errorf("Unexpected image ref: %q", rec.Image)
	}

	if records[1].Image != "" {
		t.Errorf("Expected empty trailing field, got %q", records[1].Image)
	}
}

func TestParseRecordsShortLine(t *testing.T) {
	short := "爸爸\tdad\t\t我爸爸在家。"

	// Lenient mode pads the missing fields
	records, skipped := ParseRecords([]string{short}, false)
	if len(records) != 1 || skipped != 0 {
		t.Fatalf("Lenient parse = %d records, %d skipped; want 1, 0", len(records), skipped)
	}
	if records[0].Translation != "" || records[0].Image != "" {
		t.Errorf("Expected padded empty fields, got %+v", records[0])
	}

	// Strict mode drops the line, counts it and warns
	stderr := testutil.CaptureStderr(t, func() {
		records, skipped = ParseRecords([]string{short, fullLine}, true)
	})
	if len(records) != 1 || skipped != 1 {
		t.Fatalf("Strict parse = %d records, %d skipped; want 1, 1", len(records), skipped)
	}
	if records[0].Word != "爸爸" {
		t.Errorf("Expected the full line to survive, got %q", records[0].Word)
	}
	if !strings.Contains(stderr, "expected 8 fields") {
		t.Errorf("Expected a field count warning, got %q", stderr)
	}
}

func TestParseRecordsEmptyWord(t *testing.T) {
	lines := []string{
		"\tdad\t\t我爸爸在家。\t\t\t\t",
		fullLine,
	}

	var (
		records []anki.Record
		skipped int
	)
	stderr := testutil.CaptureStderr(t, func() {
		records, skipped = ParseRecords(lines, false)
	})
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if skipped != 1 {
		t.Errorf("Expected the wordless line to be counted, got %d skipped", skipped)
	}
	if !strings.Contains(stderr, "Warning: skipping line 1") {
		t.Errorf("Expected a warning for the wordless line, got %q", stderr)
	}
}

func TestParseRecordsRestoresDerived(t *testing.T) {
	exported := fullLine +
		"\t我___在家。\twǒ ___ zài jiā\t\t\t\t\tMeans: father (informal)\tbà bà\twǒ bà bà zài jiā"

	records, _ := ParseRecords([]string{exported}, false)
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}

	derived := records[0].Derived
	if derived.Cloze != "我___在家。" {
		t.Errorf("Expected cloze restored, got %q", derived.Cloze)
	}
	if derived.WordPinyin != "bà bà" {
		t.Errorf("Expected word pinyin restored, got %q", derived.WordPinyin)
	}
	if derived.Scrambled != "" {
		t.Errorf("Expected empty scramble column, got %q", derived.Scrambled)
	}
}

func TestParseRecordsRoundTrip(t *testing.T) {
	original := anki.Record{
		Word:          "爸爸",
		Definition1:   "father (informal)/dad",
		Sentence:      "我爸爸在家。",
		Translation:   "My dad is at home.",
		WordAudio:     "baba.mp3",
		SentenceAudio: "baba_s.mp3",
		Image:         "baba.jpg",
		Derived: anki.DerivedFields{
			WordPinyin:          "bà bà",
			SentencePinyin:      "wǒ bà bà zài jiā",
			Cloze:               "我___在家。",
			ClozePinyin:         "wǒ ___ zài jiā",
			Reconstructed:       "我爸爸在家。",
			ReconstructedPinyin: "wǒ bà bà zài jiā",
			Prompt:              "Means: father (informal)",
		},
	}

	exporter := anki.NewExporter(nil)
	exporter.Add(original)

	var buf strings.Builder
	if err := exporter.Write(&buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	records, skipped := ParseRecords(strings.Split(buf.String(), "\n"), true)
	if len(records) != 1 || skipped != 0 {
		t.Fatalf("Reparse = %d records, %d skipped; want 1, 0", len(records), skipped)
	}
	if records[0] != original {
		t.Errorf("Round trip changed the record:\n got %+v\nwant %+v", records[0], original)
	}
}

func TestReadRecordFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.txt")
	content := "# header\r\n" + fullLine + "\r\n"
	testutil.CreateTestFile(t, path, []byte(content))

	records, skipped, err := ReadRecordFile(path, false)
	if err != nil {
		t.Fatalf("ReadRecordFile() error = %v", err)
	}
	if len(records) != 1 || skipped != 0 {
		t.Fatalf("Expected 1 record and 0 skipped, got %d and %d", len(records), skipped)
	}
	if records[0].Word != "爸爸" {
		t.Errorf("Expected word 爸爸, got %q", records[0].Word)
	}
	if strings.HasSuffix(records[0].Image, "\r") {
		t.Error("Carriage return should be stripped from the final field")
	}
}

func TestReadRecordFileMissing(t *testing.T) {
	if _, _, err := ReadRecordFile(filepath.Join(t.TempDir(), "missing.txt"), false); err == nil {
		t.Error("Expected an error for a missing file, got nil")
	}
}
