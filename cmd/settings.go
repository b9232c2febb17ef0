package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yash-srivastava19/docstudio/internal/ai"
	"github.com/yash-srivastava19/docstudio/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the chat-completion API settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored settings with the key masked",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		e, err := setup()
		exitOnError(err)
		defer e.close()

		s, ok := e.settings.API()
		if !ok {
			fmt.Println("no API settings stored")
		} else {
			m := s.Masked()
			fmt.Printf("endpoint:     %s\n", m.APIEndpoint)
			fmt.Printf("api key:      %s\n", m.APIKey)
			fmt.Printf("model:        %s\n", m.Model)
			fmt.Printf("temperature:  %.2f\n", s.TemperatureOr(settings.DefaultTemperature))
			fmt.Printf("max tokens:   %d\n", s.MaxTokensOr(settings.DefaultMaxTokens))
		}
		fmt.Printf("suggestions:  %v\n", e.settings.SuggestionsEnabled())
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update stored settings; unset flags keep their value",
	Args:  cobra.NoArgs,
	RunE:  runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the stored API settings and suggestion preference",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.close()

		if err := e.settings.Reset(); err != nil {
			return err
		}
		e.log.Info("settings reset")
		fmt.Println("settings cleared")
		return nil
	},
}

func init() {
	f := settingsSetCmd.Flags()
	f.String("endpoint", "", "chat-completion endpoint URL")
	f.String("key", "", "API key")
	f.String("model", "", "model name")
	f.String("temperature", "", "sampling temperature for suggestions")
	f.String("max-tokens", "", "max tokens for suggestions")
	f.Bool("suggestions", true, "enable AI suggestions while typing")
	f.Bool("test", false, "send a test request after saving")

	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd, settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	defer e.close()

	s, _ := e.settings.API()
	for flag, dst := range map[string]*string{
		"endpoint":    &s.APIEndpoint,
		"key":         &s.APIKey,
		"model":       &s.Model,
		"temperature": &s.Temperature,
		"max-tokens":  &s.MaxTokens,
	} {
		if cmd.Flags().Changed(flag) {
			*dst, _ = cmd.Flags().GetString(flag)
		}
	}
	if err := s.Validate(); err != nil {
		return err
	}
	if err := e.settings.SaveAPI(s); err != nil {
		return err
	}
	if cmd.Flags().Changed("suggestions") {
		on, _ := cmd.Flags().GetBool("suggestions")
		if err := e.settings.SetSuggestionsEnabled(on); err != nil {
			return err
		}
	}
	fmt.Println("settings saved")

	if test, _ := cmd.Flags().GetBool("test"); test {
		if err := ai.NewClient(e.settings, e.log).TestConnection(context.Background(), s); err != nil {
			return fmt.Errorf("connection test failed: %w", err)
		}
		fmt.Println("connection ok")
	}
	return nil
}
