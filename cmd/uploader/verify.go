package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check configuration and store connectivity",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := appInstance.cfg

		fmt.Printf("Store:   %s\n", cfg.Store.URL)
		fmt.Printf("Workers: %d\n", appInstance.runnerConfig().WorkerCount)
		if appInstance.assistant.Enabled() {
			fmt.Printf("AI:      enabled (%s)\n", cfg.AI.Model)
		} else {
			fmt.Println("AI:      disabled (no API key)")
		}

		fmt.Println("Checking store connectivity...")
		if err := appInstance.store.Ping(cmd.Context()); err != nil {
			return fmt.Errorf("store ping failed: %w", err)
		}
		fmt.Println("Store connection successful.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
