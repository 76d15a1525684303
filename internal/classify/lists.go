package classify

import (
	"fmt"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"codeberg.org/zhlearn/pinyin-anki/internal/anki"
)

// Lists holds the classifier's word lists and thresholds
type Lists struct {
	FunctionWords  []string          `yaml:"function_words"`
	GrammarMarkers []string          `yaml:"grammar_markers"`
	ClauseBreaks   string            `yaml:"clause_breaks"`
	PromptHints    map[string]string `yaml:"prompt_hints"`
	Thresholds     Thresholds        `yaml:"thresholds"`
}

// Thresholds are the sentence-length bounds used by the heuristics
type Thresholds struct {
	MinOrderLen int `yaml:"min_order_len"` // order cards want sentences longer than this
	MinReconLen int `yaml:"min_recon_len"` // reconstruction lower bound, exclusive
	MaxReconLen int `yaml:"max_recon_len"` // reconstruction upper bound, exclusive
}

// DefaultLists returns the built-in word lists and thresholds
func DefaultLists() *Lists {
	return &Lists{
		FunctionWords: []string{
			"的", "了", "在", "是", "和", "或", "但", "而",
			"如果", "要是", "也", "都", "还", "又",
		},
		GrammarMarkers: []string{
			"如果", "要是", "虽然", "但是", "因为", "所以",
		},
		ClauseBreaks: "，。！？；：、",
		PromptHints:  anki.DefaultPromptHints(),
		Thresholds: Thresholds{
			MinOrderLen: 10,
			MinReconLen: 8,
			MaxReconLen: 25,
		},
	}
}

// LoadLists reads a YAML word list file over the defaults: keys absent from
// the file keep their built-in values. Environment variable references in
// the file are expanded before parsing.
func LoadLists(path string) (*Lists, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read word list file %s: %w", path, err)
	}

	lists := DefaultLists()
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), lists); err != nil {
		return nil, fmt.Errorf("failed to parse word list file %s: %w", path, err)
	}

	if err := lists.Validate(); err != nil {
		return nil, fmt.Errorf("word list validation failed: %w", err)
	}
	return lists, nil
}

// Validate validates the lists
func (l *Lists) Validate() error {
	return l.Thresholds.Validate()
}

// Validate validates the thresholds
func (t *Thresholds) Validate() error {
	if err := validation.ValidateStruct(t,
		validation.Field(&t.MinOrderLen, validation.Required, validation.Min(1)),
		validation.Field(&t.MinReconLen, validation.Required, validation.Min(1)),
		validation.Field(&t.MaxReconLen, validation.Required, validation.Min(1)),
	); err != nil {
		return err
	}
	if t.MaxReconLen <= t.MinReconLen {
		return fmt.Errorf("max_recon_len %d must be greater than min_recon_len %d",
			t.MaxReconLen, t.MinReconLen)
	}
	return nil
}
