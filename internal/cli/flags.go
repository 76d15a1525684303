package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	OutputFile string
	WordLists  string
	Strict     bool
	Review     bool
	Types      string
	NoHeader   bool

	// Generation flags
	ToneStyle string
	Seed      int64
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		OutputFile: "anki_import.txt",
		ToneStyle:  "plain",
	}
}
