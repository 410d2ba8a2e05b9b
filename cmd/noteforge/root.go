package main

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "noteforge",
	Short: "Noteforge - scheduled note generator for your vault",
	Long: `Noteforge generates study notes on a schedule: it picks topics from a
configured pool, asks an LLM to write each note, saves it into a local
vault and optionally commits and pushes the result to a git remote.`,
	Version: Version,
}

func init() {
	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runCmd)
}
