package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yash-srivastava19/docstudio/internal/notes"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List documents",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		e, err := setup()
		exitOnError(err)
		defer e.close()

		for i, d := range e.docs.Load().Docs {
			title := "(empty)"
			if !d.IsBlank() {
				title = notes.Title(d.Content)
			}
			fmt.Printf("%3d  %-50s  %d words\n", i+1, title, len(strings.Fields(d.Content)))
		}
	},
}

var addCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Append a new document",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.close()

		text := strings.Join(args, " ")
		c := e.docs.Load()
		// a lone empty document is replaced rather than kept ahead of the new one
		if c.Len() == 1 && c.Docs[0].IsBlank() {
			c.Docs[0].Content = text
		} else {
			c.InsertAt(c.Len(), &notes.Document{ID: notes.NewID(), Content: text})
		}
		if err := e.docs.Save(c); err != nil {
			return err
		}
		fmt.Printf("added document %d\n", c.Len())
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <n>",
	Short: "Print a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.close()

		c := e.docs.Load()
		i, err := docIndex(args[0], c)
		if err != nil {
			return err
		}
		fmt.Println(c.Docs[i].Content)
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <n>",
	Short: "Delete a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.close()

		c := e.docs.Load()
		i, err := docIndex(args[0], c)
		if err != nil {
			return err
		}
		if !c.Remove(c.Docs[i].ID) {
			return fmt.Errorf("cannot remove the only document")
		}
		if err := e.docs.Save(c); err != nil {
			return err
		}
		fmt.Printf("removed document %d\n", i+1)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd, addCmd, showCmd, rmCmd)
}
