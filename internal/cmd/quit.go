package cmd

import (
	"github.com/spf13/cobra"
)

var quitCmd = &cobra.Command{
	Use:   "quit",
	Short: "Quit the active project",
	Long: `Run the quit commands of the active project, close its workspace and
forget it. Does nothing when no project is active.`,
	Args: cobra.NoArgs,
	RunE: runQuit,
}

func init() {
	rootCmd.AddCommand(quitCmd)
}

func runQuit(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	return e.quit(cmd.Context())
}
