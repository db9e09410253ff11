package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/lummu"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a lummu data directory",
	Long: `Initialize a new Lummu data directory. This creates the .lummu system
directory and, unless --no-versioning is given, runs 'git init'.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		dir, err := resolveDir()
		if err != nil {
			fatal("Failed to resolve data directory", err)
		}

		extra := []lummu.Option{lummu.WithAutoInit(true)}
		if !cmd.Flags().Changed("no-versioning") {
			extra = append(extra, lummu.WithVersioning(true))
		}
		opts, err := appOptions(cmd, dir, extra...)
		if err != nil {
			fatal("Failed to load configuration", err)
		}

		app, err := lummu.New(dir, opts...)
		if err != nil {
			fatal("Failed to initialize lummu", err)
		}
		defer app.Close()

		fmt.Printf("Initialized Lummu data directory in %s (%s)\n", dir, app.StorageType())
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
