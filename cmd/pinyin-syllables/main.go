package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/zhlearn/pinyin-anki/internal"
	"codeberg.org/zhlearn/pinyin-anki/internal/pinyin"
)

var (
	// Flags
	cfgFile     string
	batchFile   string
	checkDir    string
	audioFormat string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pinyin-syllables [syllable...]",
	Short: "Pinyin Syllable Tone Charts",
	Long: `pinyin-syllables prints tone charts for pinyin syllables and audits
per-syllable audio collections.

A bare syllable like "ma" prints all five tones with their marks, a
numbered syllable like "ma3" prints just that tone. With --check, the
tool reports which <syllable><tone> audio files are missing from a
directory; bare syllables audit tones 1-4, numbered syllables audit
exactly that file.

Example:
  pinyin-syllables ma              # Print the tone chart for ma
  pinyin-syllables --batch s.txt   # Charts for every syllable in the file
  pinyin-syllables --check audio/ ma de shi4`,
	Args:    cobra.ArbitraryArgs,
	RunE:    runCommand,
	Version: internal.Version,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.pinyin-syllables.yaml)")

	// Local flags
	rootCmd.Flags().StringVar(&batchFile, "batch", "", "Read syllables from file (one per line)")
	rootCmd.Flags().StringVar(&checkDir, "check", "", "Audit directory for missing syllable audio files")
	rootCmd.Flags().StringVarP(&audioFormat, "format", "f", "mp3", "Audio format expected by --check")

	// Bind flags to viper
	viper.BindPFlag("audio.format", rootCmd.Flags().Lookup("format"))
}

func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".pinyin-syllables" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".pinyin-syllables")
	}

	// Environment variables
	viper.SetEnvPrefix("PINYIN_SYLLABLES")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func runCommand(cmd *cobra.Command, args []string) error {
	// Determine syllables to process
	var syllables []string

	if batchFile != "" {
		content, err := os.ReadFile(batchFile)
		if err != nil {
			return fmt.Errorf("failed to read batch file: %w", err)
		}
		for _, line := range strings.Split(string(content), "\n") {
			line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
			if line != "" && !strings.HasPrefix(line, "#") {
				syllables = append(syllables, line)
			}
		}
	}
	syllables = append(syllables, args...)

	if len(syllables) == 0 {
		return fmt.Errorf("please provide a syllable or use --batch flag")
	}

	// Validate syllables
	for _, syllable := range syllables {
		if _, _, ok := pinyin.ParseToned(syllable); !ok {
			return fmt.Errorf("invalid syllable '%s': expected letters with an optional tone digit", syllable)
		}
	}

	// Use config file value if the format flag was not given
	if audioFormat == "mp3" && viper.IsSet("audio.format") {
		audioFormat = viper.GetString("audio.format")
	}

	if checkDir != "" {
		return checkAudioFiles(syllables)
	}

	printCharts(syllables)
	return nil
}

// printCharts prints one line per syllable: all five tones for a bare
// syllable, the single marked form for a numbered one.
func printCharts(syllables []string) {
	for _, syllable := range syllables {
		base, tone, _ := pinyin.ParseToned(syllable)
		if tone > 0 {
			fmt.Printf("%s\t%s\n", syllable, pinyin.Mark(base, tone))
			continue
		}

		var marks []string
		for t := 1; t <= 5; t++ {
			marks = append(marks, pinyin.Mark(base, t))
		}
		fmt.Printf("%s\t%s\n", base, strings.Join(marks, " "))
	}
}

// checkAudioFiles audits the check directory in both directions: it
// reports the <syllable><tone> audio files missing for the given list,
// plus files in the directory whose stem does not parse or whose
// syllable is not in the list. Fails when any file is missing.
func checkAudioFiles(syllables []string) error {
	missing := 0
	checked := 0

	wanted := make(map[string]bool)
	for _, syllable := range syllables {
		base, tone, _ := pinyin.ParseToned(syllable)
		wanted[base] = true

		tones := []int{1, 2, 3, 4}
		if tone > 0 {
			tones = []int{tone}
		}

		for _, t := range tones {
			name := fmt.Sprintf("%s%d.%s", base, t, audioFormat)
			checked++
			if _, err := os.Stat(filepath.Join(checkDir, name)); os.IsNotExist(err) {
				fmt.Printf("Missing: %s (%s)\n", name, pinyin.Mark(base, t))
				missing++
			}
		}
	}

	if err := reportStrayFiles(wanted); err != nil {
		return err
	}

	if missing > 0 {
		return fmt.Errorf("%d of %d audio files missing from %s", missing, checked, checkDir)
	}

	fmt.Printf("All %d audio files present in %s\n", checked, checkDir)
	return nil
}

// reportStrayFiles lists audio files in the check directory that no
// syllable in the list accounts for
func reportStrayFiles(wanted map[string]bool) error {
	entries, err := os.ReadDir(checkDir)
	if err != nil {
		return fmt.Errorf("failed to read check directory: %w", err)
	}

	suffix := "." + audioFormat
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, suffix) {
			continue
		}

		stem := strings.TrimSuffix(name, suffix)
		base, _, ok := pinyin.ParseToned(stem)
		switch {
		case !ok:
			fmt.Printf("Unparseable: %s\n", name)
		case !wanted[base]:
			fmt.Printf("Extra: %s (%s not in the list)\n", name, base)
		}
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
