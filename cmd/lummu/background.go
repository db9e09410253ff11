package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aretw0/lummu/pkg/core"
)

var presetCategory string

var backgroundCmd = &cobra.Command{
	Use:     "background",
	Aliases: []string{"bg"},
	Short:   "Manage the background preference",
}

var backgroundGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the stored background (empty when unset)",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp(cmd)
		defer app.Close()

		fmt.Println(app.Background.Current())
	},
}

var backgroundSetCmd = &cobra.Command{
	Use:   "set VALUE",
	Short: "Set the background to a preset (id or name), a gradient (name or CSS) or an image URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := openApp(cmd)
		defer app.Close()

		value := resolveBackground(args[0])
		if err := app.Background.Set(context.Background(), value); err != nil {
			return err
		}
		fmt.Println(app.Background.Current())
		return nil
	},
}

var backgroundClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the background preference",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := openApp(cmd)
		defer app.Close()

		return app.Background.Clear(context.Background())
	},
}

var backgroundPresetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the preset images",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !validCategory(presetCategory) {
			return fmt.Errorf("%w: unknown category %q (want one of %s)",
				core.ErrValidation, presetCategory, strings.Join(core.Categories(), ", "))
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, p := range core.Presets(presetCategory) {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Category, p.URL)
		}
		return w.Flush()
	},
}

var backgroundGradientsCmd = &cobra.Command{
	Use:   "gradients",
	Short: "List the named gradients",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, g := range core.Gradients() {
			fmt.Fprintf(w, "%s\t%s\n", g.Name, g.Value)
		}
		return w.Flush()
	},
}

var backgroundCSSCmd = &cobra.Command{
	Use:   "css",
	Short: "Print the stored background as a CSS background-image value",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp(cmd)
		defer app.Close()

		fmt.Println(core.CSS(app.Background.Current()))
	},
}

// resolveBackground maps preset ids/names and gradient names to their values.
// Anything else is returned as is and validated by the store.
func resolveBackground(arg string) string {
	arg = strings.TrimSpace(arg)
	for _, p := range core.Presets(core.CategoryAll) {
		if arg == p.ID || strings.EqualFold(arg, p.Name) {
			return p.URL
		}
	}
	for _, g := range core.Gradients() {
		if strings.EqualFold(arg, g.Name) {
			return g.Value
		}
	}
	return arg
}

func validCategory(category string) bool {
	if category == "" {
		return true
	}
	for _, c := range core.Categories() {
		if c == category {
			return true
		}
	}
	return false
}

func init() {
	rootCmd.AddCommand(backgroundCmd)
	backgroundCmd.AddCommand(backgroundGetCmd, backgroundSetCmd, backgroundClearCmd,
		backgroundPresetsCmd, backgroundGradientsCmd, backgroundCSSCmd)
	backgroundPresetsCmd.Flags().StringVar(&presetCategory, "category", core.CategoryAll, "Only list presets in this category")
}
