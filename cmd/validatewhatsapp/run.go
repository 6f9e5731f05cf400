package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/gabrielmiguelok/validatewhatsapp/internal/cli"
	"github.com/gabrielmiguelok/validatewhatsapp/internal/config"
	"github.com/gabrielmiguelok/validatewhatsapp/internal/tui"
)

// runCmd represents the interactive entrypoint
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Interactive mode: choose a session and input file, then validate",
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("dir")
		configPath, _ := cmd.Flags().GetString("config")
		debug, _ := cmd.Flags().GetBool("debug")

		if !term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Println("stdin is not a terminal; use 'validatewhatsapp validate --session --input' instead")
			os.Exit(1)
		}

		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		tui.PrintBanner(Version)
		prompter := cli.NewPrompter(os.Stdin, os.Stdout)

		for {
			choice, err := prompter.MainMenu()
			if err != nil || choice == cli.ChoiceExit {
				return
			}

			sessionName, err := prompter.ChooseSession(cfg.StoreDir)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}

			inputPath, err := prompter.ChooseInputFile(dir)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}

			err = cli.RunValidation(cli.RunOptions{
				SessionName: sessionName,
				InputPath:   inputPath,
				ConfigPath:  configPath,
				Debug:       debug,
			})
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Make 'run' the default if no command is provided
	rootCmd.Run = runCmd.Run
}
