// Package main implements surveyctl, the operator CLI for the questionnaire backend.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "surveyctl",
	Short:         "Operate the men's health questionnaire backend",
	Long:          "surveyctl scores questionnaire answers offline, derives recommendations, seeds clinician accounts and manages the database schema.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
