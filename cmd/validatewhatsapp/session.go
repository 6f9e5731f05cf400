package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gabrielmiguelok/validatewhatsapp/internal/config"
	"github.com/gabrielmiguelok/validatewhatsapp/internal/wa"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage stored sessions",
	Long:  `List and remove credential stores. Remove a session after a logout to force re-pairing.`,
}

var sessionLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List stored sessions",
	Run: func(cmd *cobra.Command, args []string) {
		sessions, err := wa.ListSessions(storeDir(cmd))
		if err != nil {
			fmt.Printf("Error listing sessions: %v\n", err)
			os.Exit(1)
		}

		if len(sessions) == 0 {
			fmt.Println("No stored sessions found.")
			return
		}

		fmt.Println("Stored sessions:")
		for _, s := range sessions {
			fmt.Println("- " + s)
		}
	},
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm <name>...",
	Short: "Remove one or more sessions",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := storeDir(cmd)
		hasError := false

		for _, name := range args {
			if err := wa.DeleteSession(dir, name); err != nil {
				fmt.Printf("Error removing '%s': %v\n", name, err)
				hasError = true
			} else {
				fmt.Printf("Removed session '%s'\n", name)
			}
		}

		if hasError {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionLsCmd)
	sessionCmd.AddCommand(sessionRmCmd)
}

func storeDir(cmd *cobra.Command) string {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Default().StoreDir
	}
	return cfg.StoreDir
}
