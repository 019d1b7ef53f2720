package cmd

import (
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Pick a project to launch",
	Long: `List every project under the configured paths and launch the one picked.

The list is handed to the configured launcher command (rofi by default).
Without a launcher command an interactive list is shown on the terminal.
When a session is active the list also offers to quit it.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	return e.list(cmd.Context())
}
