package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gabrielmiguelok/validatewhatsapp/internal/cli"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate an input file without prompts",
	Long:  `Runs one batch validation with the session and input file given as flags. Suited for scripts and cron jobs.`,
	Run: func(cmd *cobra.Command, args []string) {
		sessionName, _ := cmd.Flags().GetString("session")
		inputPath, _ := cmd.Flags().GetString("input")
		metricsAddr, _ := cmd.Flags().GetString("metrics-addr")
		configPath, _ := cmd.Flags().GetString("config")
		debug, _ := cmd.Flags().GetBool("debug")

		err := cli.RunValidation(cli.RunOptions{
			SessionName: sessionName,
			InputPath:   inputPath,
			ConfigPath:  configPath,
			Debug:       debug,
			Headless:    true,
			MetricsAddr: metricsAddr,
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().String("session", "", "Session name (required)")
	validateCmd.Flags().String("input", "", "Input .txt file with one number per line (required)")
	validateCmd.Flags().String("metrics-addr", "", "Expose /metrics and /status on this address (e.g. :9321)")
	_ = validateCmd.MarkFlagRequired("session")
	_ = validateCmd.MarkFlagRequired("input")
}
