package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/neutron-wm/neutron/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View neutron configuration",
	Long: `View neutron configuration.

Without arguments, displays the effective settings: defaults, overridden by
the settings file, overridden by NEUTRON_* environment variables.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the settings file path",
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	if _, err := loadSettings(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if settingsFile != "" {
		fmt.Fprintf(out, "# Settings file: %s\n", settingsFile)
	} else {
		fmt.Fprintln(out, "# Settings file: (none - using defaults)")
	}

	settings := viper.AllSettings()
	delete(settings, "config")
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to format settings: %w", err)
	}
	_, err = out.Write(data)
	return err
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if settingsFile != "" {
		fmt.Fprintln(out, settingsFile)
		return nil
	}

	fmt.Fprintln(out, "No settings file found. Neutron looks in:")
	fmt.Fprintf(out, "  %s/%s\n", config.ConfigDir(), config.SettingsName)
	fmt.Fprintf(out, "  ~/.config/%s\n", config.SettingsName)
	fmt.Fprintf(out, "  ~/.%s\n", config.SettingsName)
	return nil
}
