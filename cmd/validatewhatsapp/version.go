package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of validatewhatsapp",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("validatewhatsapp version %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
