package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/lummu"
)

var (
	verbose      bool
	dataDir      string
	adapter      string
	noVersioning bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lummu",
	Short: "Notes, a calculator and a background preference in one small toolkit",
	Long: `Lummu keeps tagged notes, runs an immediate-execution calculator and
remembers your preferred background. Data lives in a local directory,
optionally versioned with Git, or in a SQLite database.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&dataDir, "dir", "d", "", "Data directory (default: nearest .lummu root or the current directory)")
	rootCmd.PersistentFlags().StringVar(&adapter, "adapter", "", "Storage adapter: fs, sqlite or memory")
	rootCmd.PersistentFlags().BoolVar(&noVersioning, "no-versioning", false, "Disable Git versioning of the fs adapter")
}

// resolveDir returns the data directory: --dir, else the nearest root, else the CWD.
func resolveDir() (string, error) {
	if dataDir != "" {
		return dataDir, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get CWD: %w", err)
	}
	root, err := lummu.FindRoot(cwd)
	if err != nil {
		return cwd, nil
	}
	return root, nil
}

// appOptions merges lummu.yaml with the command-line flags, flags winning.
func appOptions(cmd *cobra.Command, dir string, extra ...lummu.Option) ([]lummu.Option, error) {
	cfg, err := lummu.LoadConfig(dir)
	if err != nil {
		return nil, err
	}

	opts := []lummu.Option{lummu.WithLogger(slog.Default())}
	opts = append(opts, cfg.Options()...)

	flags := cmd.Flags()
	if flags.Changed("adapter") {
		opts = append(opts, lummu.WithAdapter(adapter))
	}
	if flags.Changed("no-versioning") {
		opts = append(opts, lummu.WithVersioning(!noVersioning))
	}
	return append(opts, extra...), nil
}

// openApp opens the data directory selected by the global flags.
func openApp(cmd *cobra.Command, extra ...lummu.Option) *lummu.App {
	dir, err := resolveDir()
	if err != nil {
		fatal("Failed to resolve data directory", err)
	}

	opts, err := appOptions(cmd, dir, extra...)
	if err != nil {
		fatal("Failed to load configuration", err)
	}

	app, err := lummu.New(dir, opts...)
	if err != nil {
		fatal("Failed to open lummu", err)
	}
	return app
}
