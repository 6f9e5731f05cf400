package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "validatewhatsapp",
	Short: "Batch-validate phone numbers against the WhatsApp directory",
	Long: `validatewhatsapp reads a text file of candidate phone numbers, checks each
one against the WhatsApp account directory over a persistent session, and
writes a phone,validate CSV next to the input file.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Directory scanned for input files")
	rootCmd.PersistentFlags().String("config", "validate.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}
