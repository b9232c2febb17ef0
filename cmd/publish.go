package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yash-srivastava19/docstudio/internal/notes"
	"github.com/yash-srivastava19/docstudio/internal/publish"
)

var publishCmd = &cobra.Command{
	Use:   "publish [n]",
	Short: "Render documents to a standalone HTML page",
	Long: `Renders document n, or all non-empty documents joined together when n
is omitted, to an HTML page named after the first heading or line.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().String("out", "", "output directory (default <data_dir>/published)")
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	defer e.close()

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = e.cfg.PublishDir()
	}

	c := e.docs.Load()
	markdown := c.Markdown()
	if len(args) == 1 {
		i, err := docIndex(args[0], c)
		if err != nil {
			return err
		}
		markdown = c.Docs[i].Content
	}
	if markdown == "" {
		return fmt.Errorf("nothing to publish")
	}

	path, err := publish.WriteFile(out, notes.Title(markdown), markdown)
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}
