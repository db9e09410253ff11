package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the storage and every feature",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp(cmd)
		defer app.Close()

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(app.State()); err != nil {
			fatal("Failed to encode status", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
