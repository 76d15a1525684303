package review

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"codeberg.org/zhlearn/pinyin-anki/internal/anki"
	"codeberg.org/zhlearn/pinyin-anki/internal/testutil"
)

// testSession returns a session with a deterministically seeded generator
func testSession(t *testing.T) *Session {
	t.Helper()
	opts := anki.DefaultGeneratorOptions()
	opts.Rand = rand.New(rand.NewSource(7))
	return NewSession(nil, anki.NewGenerator(opts), nil)
}

func testRecords() []anki.Record {
	return []anki.Record{
		{
			Word:        "爸爸",
			Definition1: "father (informal)",
			Sentence:    "我爸爸在家。",
			Translation: "My father is at home.",
			WordAudio:   "baba.mp3",
			Image:       "baba.jpg",
		},
		{
			Word:        "的",
			Definition1: "possessive particle",
			Sentence:    "这是我的书。",
			Translation: "This is my book.",
		},
		{
			Word:        "学校",
			Definition1: "school",
			Sentence:    "我昨天去了学校。",
			Translation: "I went to school yesterday.",
		},
	}
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusPending, "Pending"},
		{StatusAccepted, "Accepted"},
		{StatusSkipped, "Skipped"},
		{Status(9), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestLoadCleansRecords(t *testing.T) {
	s := testSession(t)
	n := s.Load([]anki.Record{
		{
			Word:        " <b>爸爸</b> ",
			Definition1: "father &amp; dad",
			Sentence:    "我 爸爸  在家。",
		},
	})
	if n != 1 {
		t.Fatalf("Expected 1 record loaded, got %d", n)
	}

	rec := s.Current()
	if rec.Word != "爸爸" {
		t.Errorf("Expected cleaned word %q, got %q", "爸爸", rec.Word)
	}
	if rec.Definition1 != "father & dad" {
		t.Errorf("Expected cleaned definition %q, got %q", "father & dad", rec.Definition1)
	}
	if rec.Sentence != "我 爸爸 在家。" {
		t.Errorf("Expected collapsed sentence %q, got %q", "我 爸爸 在家。", rec.Sentence)
	}
}

func TestLoadDropsEmptyWord(t *testing.T) {
	s := testSession(t)
	var n int
	stderr := testutil.CaptureStderr(t, func() {
		n = s.Load([]anki.Record{
			{Word: "<i></i>", Definition1: "markup only"},
			{Word: "好", Definition1: "good"},
		})
	})
	if n != 1 {
		t.Fatalf("Expected 1 record loaded, got %d", n)
	}
	if s.Skipped() != 1 {
		t.Errorf("Expected 1 skipped record, got %d", s.Skipped())
	}
	if s.Current().Word != "好" {
		t.Errorf("Expected first record %q, got %q", "好", s.Current().Word)
	}
	if !strings.Contains(stderr, "Warning: skipping record") {
		t.Errorf("Expected a skip warning, got %q", stderr)
	}
}

func TestLoadLines(t *testing.T) {
	lines := []string{
		"# vocabulary export",
		"",
		"爸爸\tfather (informal)\t\t我爸爸在家。\tMy father is at home.\tbaba.mp3\tsent.mp3\tbaba.jpg",
		"\tmissing word\t\t\t\t\t\t",
	}

	s := testSession(t)
	n := s.LoadLines(lines)
	if n != 1 {
		t.Fatalf("Expected 1 record loaded, got %d", n)
	}
	if s.Skipped() != 1 {
		t.Errorf("Expected 1 skipped line, got %d", s.Skipped())
	}
	if s.Current().Word != "爸爸" {
		t.Errorf("Expected word %q, got %q", "爸爸", s.Current().Word)
	}
}

func TestSessionSuggestions(t *testing.T) {
	s := testSession(t)
	s.Load(testRecords())

	tests := []struct {
		word string
		want string
	}{
		{"爸爸", "1,3"}, // has an image and is a content word
		{"的", "2"},     // function word
		{"学校", "3"},    // content word, sentence too short for more
	}

	for _, tt := range tests {
		if s.Current().Word != tt.word {
			t.Fatalf("Expected record %q under review, got %q", tt.word, s.Current().Word)
		}
		if got := s.Suggestions().String(); got != tt.want {
			t.Errorf("Suggestions for %s = %q, want %q", tt.word, got, tt.want)
		}
		s.Accept()
	}
}

func TestSessionFlow(t *testing.T) {
	s := testSession(t)
	n := s.Load(testRecords())
	if n != 3 {
		t.Fatalf("Expected 3 records loaded, got %d", n)
	}
	if s.Done() {
		t.Fatal("Expected session not done after load")
	}

	if s.Current().Word != "爸爸" {
		t.Errorf("Expected first record 爸爸, got %q", s.Current().Word)
	}
	s.Accept()

	if s.Current().Word != "的" {
		t.Errorf("Expected second record 的, got %q", s.Current().Word)
	}
	s.Skip()
	s.Accept()

	if !s.Done() {
		t.Error("Expected session done after deciding every record")
	}
	if s.Current() != nil {
		t.Error("Expected nil current record when done")
	}

	accepted, skipped := s.Counts()
	if accepted != 2 || skipped != 1 {
		t.Errorf("Expected 2 accepted and 1 skipped, got %d and %d", accepted, skipped)
	}

	recs := s.Accepted()
	if len(recs) != 2 {
		t.Fatalf("Expected 2 accepted records, got %d", len(recs))
	}
	if recs[0].Word != "爸爸" || recs[1].Word != "学校" {
		t.Errorf("Expected accepted records in input order, got %q and %q", recs[0].Word, recs[1].Word)
	}
	if recs[0].Derived.Cloze != "我___在家。" {
		t.Errorf("Expected accepted record to carry its cloze, got %q", recs[0].Derived.Cloze)
	}

	// deciding past the end is a no-op
	s.Accept()
	s.Skip()
	if got := len(s.Accepted()); got != 2 {
		t.Errorf("Expected accepting past the end to change nothing, got %d records", got)
	}
}

func TestFieldsCached(t *testing.T) {
	s := testSession(t)
	s.Load(testRecords())

	first := s.Fields()
	if first.Cloze != "我___在家。" {
		t.Fatalf("Expected cloze %q, got %q", "我___在家。", first.Cloze)
	}
	if again := s.Fields(); again != first {
		t.Error("Expected repeated Fields calls to return the cached result")
	}

	s.Accept()
	if !s.Previous() {
		t.Fatal("Expected Previous to step back")
	}
	if back := s.Fields(); back != first {
		t.Error("Expected fields to survive stepping back unchanged")
	}
}

func TestPreviousAtStart(t *testing.T) {
	s := testSession(t)
	s.Load(testRecords())
	if s.Previous() {
		t.Error("Expected Previous to refuse at the first record")
	}
}

func TestSetTypesRegenerates(t *testing.T) {
	s := testSession(t)
	s.Load(testRecords())

	base := s.Fields()
	if base.Cloze == "" {
		t.Fatal("Expected a cloze from the suggested types")
	}
	if base.Reconstructed != "" {
		t.Fatalf("Expected no reconstruction from the suggested types, got %q", base.Reconstructed)
	}

	s.SetTypes(anki.NewTypeSet(anki.TypeReconstruction))
	if got := s.Types().String(); got != "5" {
		t.Errorf("Expected overridden types %q, got %q", "5", got)
	}

	next := s.Fields()
	if next.Cloze != "" {
		t.Errorf("Expected no cloze after override, got %q", next.Cloze)
	}
	if next.Reconstructed != "我爸爸在家。" {
		t.Errorf("Expected reconstruction %q, got %q", "我爸爸在家。", next.Reconstructed)
	}
	if next.WordPinyin == "" {
		t.Error("Expected word romanization regardless of types")
	}
}

func TestRegenerateWithOverride(t *testing.T) {
	s := testSession(t)
	s.Load(testRecords())

	fields := s.Regenerate(anki.NewTypeSet(anki.TypeReconstruction))
	if fields.Reconstructed != "我爸爸在家。" {
		t.Errorf("Expected reconstruction %q, got %q", "我爸爸在家。", fields.Reconstructed)
	}
	if got := s.Types().String(); got != "5" {
		t.Errorf("Expected override to stick, got types %q", got)
	}

	// without an override the effective types stay as they are
	again := s.Regenerate(nil)
	if again.Reconstructed != "我爸爸在家。" {
		t.Errorf("Expected reconstruction to persist, got %q", again.Reconstructed)
	}
}

func TestReacceptReplacesDecision(t *testing.T) {
	s := testSession(t)
	s.Load(testRecords())

	s.Accept()
	if !s.Previous() {
		t.Fatal("Expected Previous to step back")
	}
	s.Accept()

	if got := len(s.Accepted()); got != 1 {
		t.Errorf("Expected re-accepting to replace the earlier decision, got %d records", got)
	}
}

func TestSkipThenPreviousThenAccept(t *testing.T) {
	s := testSession(t)
	s.Load(testRecords())

	s.Skip()
	if !s.Previous() {
		t.Fatal("Expected Previous to step back")
	}
	s.Accept()

	accepted, skipped := s.Counts()
	if accepted != 1 || skipped != 0 {
		t.Errorf("Expected 1 accepted and 0 skipped after revising, got %d and %d", accepted, skipped)
	}
	if recs := s.Accepted(); len(recs) != 1 || recs[0].Word != "爸爸" {
		t.Errorf("Expected the revised record in the output, got %v", recs)
	}
}

func TestExportAll(t *testing.T) {
	s := testSession(t)
	s.Load(testRecords())
	s.Accept()
	s.Skip()
	s.Accept()

	var buf bytes.Buffer
	if err := s.ExportAll(&buf); err != nil {
		t.Fatalf("ExportAll failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("Expected 2 directives and 2 records, got %d lines", len(lines))
	}
	if lines[0] != "#separator:tab" || lines[1] != "#html:true" {
		t.Errorf("Expected import directives, got %q and %q", lines[0], lines[1])
	}

	fields := strings.Split(lines[2], "\t")
	if len(fields) != anki.OutputColumns {
		t.Fatalf("Expected %d columns, got %d", anki.OutputColumns, len(fields))
	}
	if fields[0] != "爸爸" {
		t.Errorf("Expected word column %q, got %q", "爸爸", fields[0])
	}
	if fields[8] != "我___在家。" {
		t.Errorf("Expected cloze column %q, got %q", "我___在家。", fields[8])
	}
	if fields[15] != "bà bà" {
		t.Errorf("Expected word pinyin column %q, got %q", "bà bà", fields[15])
	}
}

func TestExportAllWithoutHeaders(t *testing.T) {
	opts := anki.DefaultGeneratorOptions()
	opts.Rand = rand.New(rand.NewSource(7))
	s := NewSession(nil, anki.NewGenerator(opts), &Options{ExportHeaders: false})
	s.Load(testRecords())
	s.Accept()
	s.Skip()
	s.Skip()

	var buf bytes.Buffer
	if err := s.ExportAll(&buf); err != nil {
		t.Fatalf("ExportAll failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 1 {
		t.Fatalf("Expected a single record line, got %d lines", len(lines))
	}
	if strings.HasPrefix(lines[0], "#") {
		t.Errorf("Expected no directives, got %q", lines[0])
	}
}
