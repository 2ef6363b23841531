package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "lending",
	Short: "P2P micro-lending ledger service",
	Long: `Runs the lending ledger HTTP API and its maintenance tasks.
Configuration comes from the environment, optionally preloaded from a .env file.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to preload (ignored when missing)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
