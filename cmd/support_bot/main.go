// Package main provides the entry point for the Shoply support bot CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "support_bot",
	Short: "Shoply brand-voice support bot",
	Long:  "Support bot answers customer questions in the Shoply brand voice, with order-status lookups, versioned prompts, and structured replies.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
