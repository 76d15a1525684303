package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/zhlearn/pinyin-anki/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pinyin-anki [input-file]",
		Short: "Chinese Anki Flashcard Converter",
		Long: `pinyin-anki converts tab separated Chinese vocabulary records into an
Anki import file with generated study fields.

Each input record carries a word, its definitions, an example sentence
with translation and media references. The converter suggests card types
per record, derives cloze, word order and sentence reconstruction
exercises, and romanizes the Chinese fields as tone-marked pinyin.

Examples:
  pinyin-anki words.txt                # Convert using suggested card types
  pinyin-anki words.txt -o deck.txt    # Write the import file to deck.txt
  pinyin-anki --review words.txt       # Review each record interactively
  pinyin-anki --types 2,3 words.txt    # Force cloze and grammar cards`,
		Args:    cobra.MaximumNArgs(1),
		Version: internal.Version,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.pinyin-anki.yaml)")

	// Local flags
	cmd.Flags().StringVarP(&flags.OutputFile, "output", "o", flags.OutputFile, "Output file for the Anki import")
	cmd.Flags().StringVar(&flags.WordLists, "wordlists", "", "YAML file overriding the classifier word lists")
	cmd.Flags().BoolVar(&flags.Strict, "strict", false, "Reject records with missing fields instead of padding them")
	cmd.Flags().BoolVar(&flags.Review, "review", false, "Review each record interactively before export")
	cmd.Flags().StringVar(&flags.Types, "types", "", "Force card types for every record, e.g. 2,3 (default: per-record suggestion)")
	cmd.Flags().StringVar(&flags.ToneStyle, "tone-style", flags.ToneStyle, "Pinyin tone styling: plain, classes or colors")
	cmd.Flags().BoolVar(&flags.NoHeader, "no-header", false, "Omit the #separator and #html directives from the output")
	cmd.Flags().Int64Var(&flags.Seed, "seed", 0, "Random seed for word order scrambling (0 seeds from the clock)")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("output.file", cmd.Flags().Lookup("output"))
	viper.BindPFlag("output.no_header", cmd.Flags().Lookup("no-header"))
	viper.BindPFlag("convert.strict", cmd.Flags().Lookup("strict"))
	viper.BindPFlag("convert.types", cmd.Flags().Lookup("types"))
	viper.BindPFlag("generate.tone_style", cmd.Flags().Lookup("tone-style"))
	viper.BindPFlag("generate.seed", cmd.Flags().Lookup("seed"))
	viper.BindPFlag("lists.file", cmd.Flags().Lookup("wordlists"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".pinyin-anki" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".pinyin-anki")
	}

	// Environment variables
	viper.SetEnvPrefix("PINYIN_ANKI")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// BlankMarker returns the cloze blank marker, configurable via the
// generate.blank_marker config key.
func BlankMarker() string {
	if marker := viper.GetString("generate.blank_marker"); marker != "" {
		return marker
	}
	return "___"
}

// Separator returns the scramble token separator, configurable via the
// generate.separator config key.
func Separator() string {
	if sep := viper.GetString("generate.separator"); sep != "" {
		return sep
	}
	return " / "
}
