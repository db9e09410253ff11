package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/lummu/pkg/core"
)

var (
	noteTitle   string
	noteContent string
	noteTags    string
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Create, edit and browse notes",
}

var noteCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a note",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := openApp(cmd)
		defer app.Close()

		note, err := app.Notes.Create(context.Background(), noteTitle, noteContent, noteTags)
		if err != nil {
			return err
		}
		fmt.Println(note.ID)
		return nil
	},
}

var noteUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Update the title, content or tags of a note",
	Long: `Update a note in place. Only the flags that are given change; the
others keep their current value.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := openApp(cmd)
		defer app.Close()

		id := args[0]
		current, ok := app.Notes.Get(id)
		if !ok {
			return fmt.Errorf("%w: %s", core.ErrNotFound, id)
		}

		title, content, tags := current.Title, current.Content, core.JoinTags(current.Tags)
		if cmd.Flags().Changed("title") {
			title = noteTitle
		}
		if cmd.Flags().Changed("content") {
			content = noteContent
		}
		if cmd.Flags().Changed("tags") {
			tags = noteTags
		}

		note, err := app.Notes.Update(context.Background(), id, title, content, tags)
		if err != nil {
			return err
		}
		printNote(note)
		return nil
	},
}

var noteDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a note (deleting an unknown id is not an error)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := openApp(cmd)
		defer app.Close()

		return app.Notes.Delete(context.Background(), args[0])
	},
}

var noteShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Print a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := openApp(cmd)
		defer app.Close()

		note, ok := app.Notes.Get(args[0])
		if !ok {
			return fmt.Errorf("%w: %s", core.ErrNotFound, args[0])
		}
		printNote(note)
		return nil
	},
}

func printNote(n core.Note) {
	fmt.Printf("id:      %s\n", n.ID)
	fmt.Printf("title:   %s\n", n.Title)
	if len(n.Tags) > 0 {
		fmt.Printf("tags:    %s\n", strings.Join(n.Tags, ", "))
	}
	fmt.Printf("created: %s\n", n.CreatedAt.Format(core.TimestampLayout))
	fmt.Printf("updated: %s\n", n.UpdatedAt.Format(core.TimestampLayout))
	if n.Content != "" {
		fmt.Printf("\n%s\n", n.Content)
	}
}

func init() {
	rootCmd.AddCommand(noteCmd)
	noteCmd.AddCommand(noteCreateCmd, noteUpdateCmd, noteDeleteCmd, noteShowCmd)

	for _, c := range []*cobra.Command{noteCreateCmd, noteUpdateCmd} {
		c.Flags().StringVarP(&noteTitle, "title", "t", "", "Note title (required)")
		c.Flags().StringVarP(&noteContent, "content", "c", "", "Note content")
		c.Flags().StringVar(&noteTags, "tags", "", "Comma-separated tags")
	}
}
