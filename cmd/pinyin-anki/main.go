package main

import (
	"os"

	"github.com/spf13/cobra"

	_ "github.com/joho/godotenv/autoload"

	"codeberg.org/zhlearn/pinyin-anki/internal/cli"
	"codeberg.org/zhlearn/pinyin-anki/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	// Without an input file there is nothing to convert
	if len(args) == 0 {
		return cmd.Help()
	}

	proc, err := processor.NewProcessor(flags)
	if err != nil {
		return err
	}

	return proc.ProcessFile(args[0])
}
