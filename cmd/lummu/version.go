package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/lummu"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of lummu",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("lummu version %s\n", lummu.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
