package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/lummu/pkg/core"
)

var (
	listJSON  bool
	listYAML  bool
	listWatch bool
	filterTag string
)

var noteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes, most recent first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := openApp(cmd)
		defer app.Close()

		if err := printNotes(filterNotes(app.Notes.Notes())); err != nil {
			return err
		}
		if !listWatch {
			return nil
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		err := app.Notes.Follow(ctx, func(notes []core.Note) {
			fmt.Println("---")
			if err := printNotes(filterNotes(notes)); err != nil {
				fatal("Failed to print notes", err)
			}
		})
		if err != nil && ctx.Err() == nil {
			return err
		}
		return nil
	},
}

var noteSearchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Find notes whose title, content or tags contain QUERY (case-insensitive)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := openApp(cmd)
		defer app.Close()

		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		return printNotes(filterNotes(app.Notes.Search(query)))
	},
}

func filterNotes(notes []core.Note) []core.Note {
	if filterTag == "" {
		return notes
	}
	filtered := []core.Note{}
	for _, n := range notes {
		if slices.ContainsFunc(n.Tags, func(t string) bool { return strings.EqualFold(t, filterTag) }) {
			filtered = append(filtered, n)
		}
	}
	return filtered
}

func printNotes(notes []core.Note) error {
	switch {
	case listJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(notes)
	case listYAML:
		encoder := yaml.NewEncoder(os.Stdout)
		defer encoder.Close()
		return encoder.Encode(notes)
	}

	for _, n := range notes {
		tags := ""
		if len(n.Tags) > 0 {
			tags = fmt.Sprintf(" [%s]", strings.Join(n.Tags, ", "))
		}
		fmt.Printf("%s - %s%s\n", n.ID, n.Title, tags)
	}
	return nil
}

func init() {
	noteCmd.AddCommand(noteListCmd, noteSearchCmd)
	for _, c := range []*cobra.Command{noteListCmd, noteSearchCmd} {
		c.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
		c.Flags().BoolVar(&listYAML, "yaml", false, "Output in YAML format")
		c.Flags().StringVar(&filterTag, "tag", "", "Filter notes by tag")
		c.MarkFlagsMutuallyExclusive("json", "yaml")
	}
	noteListCmd.Flags().BoolVarP(&listWatch, "watch", "w", false, "Keep running and print the list again on every change")
}
