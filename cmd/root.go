package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yash-srivastava19/docstudio/internal/ai"
	"github.com/yash-srivastava19/docstudio/internal/config"
	"github.com/yash-srivastava19/docstudio/internal/draft"
	"github.com/yash-srivastava19/docstudio/internal/ui"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "docstudio",
	Short: "Multi-document draft editor with AI suggestions and rewrites",
	Long: `docstudio is a terminal editor for drafts made of several independent
documents. Documents are saved locally as you type. With a chat-completion
endpoint configured it offers follow-up suggestions while you pause and can
reorganize a document with a streamed rewrite you can stop or revert.`,
	Args: cobra.NoArgs,
	RunE: runEditor,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.Path(), "config file path")
}

func runEditor(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	defer e.close()

	ed := draft.New(e.docs.Load(), e.docs,
		draft.WithLogger(e.log),
		draft.WithSuggestions(e.settings.SuggestionsEnabled()),
	)
	client := ai.NewClient(e.settings, e.log)
	app := ui.New(e.cfg, ed, e.settings, client, e.log)

	e.log.Info("editor started", zap.Int("documents", len(ed.Documents())))
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running editor: %w", err)
	}
	return ed.Flush()
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
