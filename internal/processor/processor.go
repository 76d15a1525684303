package processor

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"

	"github.com/spf13/viper"

	"codeberg.org/zhlearn/pinyin-anki/internal/anki"
	"codeberg.org/zhlearn/pinyin-anki/internal/batch"
	"codeberg.org/zhlearn/pinyin-anki/internal/classify"
	"codeberg.org/zhlearn/pinyin-anki/internal/cli"
	"codeberg.org/zhlearn/pinyin-anki/internal/pinyin"
	"codeberg.org/zhlearn/pinyin-anki/internal/review"
)

// Processor handles the main record conversion logic
type Processor struct {
	flags      *cli.Flags
	lists      *classify.Lists
	classifier *classify.Classifier
	generator  *anki.Generator

	in  io.Reader // review commands, stdin unless overridden in tests
	out io.Writer // progress output, stdout unless overridden in tests
}

// NewProcessor creates a new record processor
func NewProcessor(flags *cli.Flags) (*Processor, error) {
	lists, err := loadLists(flags)
	if err != nil {
		return nil, err
	}

	// Use config file values if not overridden by flags
	style := flags.ToneStyle
	if style == "plain" && viper.IsSet("generate.tone_style") {
		style = viper.GetString("generate.tone_style")
	}
	styler, err := toneStyler(style)
	if err != nil {
		return nil, err
	}

	seed := flags.Seed
	if seed == 0 && viper.IsSet("generate.seed") {
		seed = viper.GetInt64("generate.seed")
	}

	opts := anki.DefaultGeneratorOptions()
	opts.BlankMarker = cli.BlankMarker()
	opts.Separator = cli.Separator()
	opts.Hints = lists.PromptHints
	opts.Styler = styler
	if seed != 0 {
		opts.Rand = rand.New(rand.NewSource(seed))
	}

	return &Processor{
		flags:      flags,
		lists:      lists,
		classifier: classify.NewClassifier(lists),
		generator:  anki.NewGenerator(opts),
		in:         os.Stdin,
		out:        os.Stdout,
	}, nil
}

// loadLists resolves the classifier word lists from the flag, the config
// file, or the built-in defaults.
func loadLists(flags *cli.Flags) (*classify.Lists, error) {
	path := flags.WordLists
	if path == "" {
		path = viper.GetString("lists.file")
	}
	if path == "" {
		return classify.DefaultLists(), nil
	}

	lists, err := classify.LoadLists(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load word lists: %w", err)
	}
	return lists, nil
}

// toneStyler maps the tone style name to a pinyin styler
func toneStyler(style string) (pinyin.Styler, error) {
	switch style {
	case "", "plain":
		return nil, nil
	case "classes":
		return pinyin.ClassStyler, nil
	case "colors":
		return pinyin.ColorStyler, nil
	default:
		return nil, fmt.Errorf("unknown tone style %q: use plain, classes or colors", style)
	}
}

// ProcessFile converts a record file into an Anki import file
func (p *Processor) ProcessFile(inputFile string) error {
	records, dropped, err := batch.ReadRecordFile(inputFile, p.flags.Strict)
	if err != nil {
		return err
	}

	session := review.NewSession(p.classifier, p.generator, &review.Options{
		Strict:        p.flags.Strict,
		ExportHeaders: !p.flags.NoHeader,
	})
	loaded := session.Load(records)
	dropped += session.Skipped()

	fmt.Fprintf(p.out, "Loaded %d records from %s\n", loaded, inputFile)

	forced, err := p.forcedTypes()
	if err != nil {
		return err
	}

	if p.flags.Review {
		if err := p.runReview(session, forced); err != nil {
			return err
		}
	} else {
		p.runBatch(session, forced)
	}

	accepted, reviewSkipped := session.Counts()

	outputFile := p.outputPath()
	if err := p.writeOutput(session, outputFile); err != nil {
		return err
	}

	p.printSummary(loaded, accepted, reviewSkipped, dropped, outputFile)
	return nil
}

// forcedTypes parses the types flag or config value into the card type
// set applied to every record, or nil when conversion should follow the
// per-record suggestions.
func (p *Processor) forcedTypes() (anki.TypeSet, error) {
	value := p.flags.Types
	if value == "" && viper.IsSet("convert.types") {
		value = viper.GetString("convert.types")
	}
	if value == "" {
		return nil, nil
	}

	types, err := anki.ParseTypeSet(value)
	if err != nil {
		return nil, fmt.Errorf("invalid card types %q: %w", value, err)
	}
	return types, nil
}

// runBatch accepts every record with its suggested or forced card types
func (p *Processor) runBatch(session *review.Session, forced anki.TypeSet) {
	for !session.Done() {
		rec := session.Current()
		if forced != nil {
			session.SetTypes(forced)
		}
		fmt.Fprintf(p.out, "Processing %d/%d: %s (%s)\n",
			session.Index()+1, session.Len(), rec.Word, session.Types().Describe())
		session.Accept()
	}
}

// runReview walks the records one by one, reading decisions from p.in.
// An empty line accepts; q or end of input stops the review and exports
// what was accepted so far.
func (p *Processor) runReview(session *review.Session, forced anki.TypeSet) error {
	scanner := bufio.NewScanner(p.in)

	fmt.Fprintln(p.out, "Commands: a=accept  s=skip  p=previous  r=regenerate  t TYPES=set types  q=quit")

	lastIndex := -1
	for !session.Done() {
		if forced != nil && session.Index() != lastIndex {
			session.SetTypes(forced)
		}
		lastIndex = session.Index()

		p.printRecord(session)

		fmt.Fprint(p.out, "> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "" || line == "a":
			session.Accept()
		case line == "s":
			session.Skip()
		case line == "p":
			if !session.Previous() {
				fmt.Fprintln(p.out, "Already at the first record")
			}
		case line == "r":
			session.Regenerate(nil)
		case strings.HasPrefix(line, "t "):
			types, err := anki.ParseTypeSet(strings.TrimPrefix(line, "t "))
			if err != nil {
				fmt.Fprintf(p.out, "Invalid types: %v\n", err)
				continue
			}
			session.SetTypes(types)
		case line == "q":
			return scanner.Err()
		default:
			fmt.Fprintf(p.out, "Unknown command %q\n", line)
		}
	}

	return scanner.Err()
}

// printRecord shows the record under review with its generated fields
func (p *Processor) printRecord(session *review.Session) {
	rec := session.Current()
	fields := session.Fields()
	types := session.Types()

	fmt.Fprintf(p.out, "\n[%d/%d] %s\n", session.Index()+1, session.Len(), rec.Word)
	if rec.Definition1 != "" {
		fmt.Fprintf(p.out, "  Definition: %s\n", rec.Definition1)
	}
	if rec.Sentence != "" {
		fmt.Fprintf(p.out, "  Sentence:   %s\n", rec.Sentence)
		fmt.Fprintf(p.out, "  Pinyin:     %s\n", fields.SentencePinyin)
	}
	fmt.Fprintf(p.out, "  Types:      %s (%s)\n", types, types.Describe())
	if fields.Cloze != "" {
		fmt.Fprintf(p.out, "  Cloze:      %s\n", fields.Cloze)
	}
	if fields.Scrambled != "" {
		fmt.Fprintf(p.out, "  Scrambled:  %s\n", fields.Scrambled)
	}
	if fields.Reconstructed != "" {
		fmt.Fprintf(p.out, "  Rebuild:    %s\n", fields.Reconstructed)
	}
	if fields.Prompt != "" {
		fmt.Fprintf(p.out, "  Prompt:     %s\n", fields.Prompt)
	}
}

// writeOutput writes the accepted records to the output file
func (p *Processor) writeOutput(session *review.Session, outputFile string) error {
	exp := anki.NewExporter(&anki.ExporterOptions{IncludeHeaders: !p.flags.NoHeader})
	for _, rec := range session.Accepted() {
		exp.Add(rec)
	}

	if err := exp.WriteFile(outputFile); err != nil {
		return err
	}

	total, withAudio, withImages := exp.Stats()
	fmt.Fprintf(p.out, "Generated %d cards (%d with audio, %d with images)\n",
		total, withAudio, withImages)
	return nil
}

// outputPath resolves the output file, letting the config file override
// the default when the flag was not given.
func (p *Processor) outputPath() string {
	if p.flags.OutputFile == "anki_import.txt" && viper.IsSet("output.file") {
		return viper.GetString("output.file")
	}
	return p.flags.OutputFile
}

// printSummary prints the conversion summary block
func (p *Processor) printSummary(loaded, accepted, skipped, dropped int, outputFile string) {
	fmt.Fprintf(p.out, "\n=== Conversion Summary ===\n")
	fmt.Fprintf(p.out, "Records loaded: %d\n", loaded)
	fmt.Fprintf(p.out, "Accepted: %d\n", accepted)
	fmt.Fprintf(p.out, "Skipped in review: %d\n", skipped)
	if dropped > 0 {
		fmt.Fprintf(p.out, "Dropped at load: %d\n", dropped)
	}
	fmt.Fprintf(p.out, "Output: %s\n", outputFile)
	fmt.Fprintf(p.out, "==========================\n")
}
