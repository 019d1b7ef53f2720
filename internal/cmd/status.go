package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/neutron-wm/neutron/internal/capability"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active project",
	Long:  `Display the active project, its editor folders and any launch or quit in progress.`,
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	st, err := e.orch.Status()
	if err != nil {
		return err
	}

	if st.Lock != nil {
		fmt.Fprintf(e.out, "In progress: %s (pid %d on %s, since %s)\n",
			st.Lock.Operation, st.Lock.PID, st.Lock.Hostname, st.Lock.StartedAt.Format("2006-01-02 15:04:05"))
	}

	if !st.Active {
		fmt.Fprintln(e.out, "No active session")
		return nil
	}
	fmt.Fprintf(e.out, "Project: %s\n", st.ProjectFile)
	fmt.Fprintf(e.out, "Workspace: %s\n", e.settings.I3.Workspace)

	w, err := capability.ReadWorkspace(e.settings.Session.EditorProjectFile)
	if err != nil {
		if !os.IsNotExist(err) {
			e.logger.Warn("editor project unreadable", "error", err.Error())
		}
		return nil
	}
	if len(w.Folders) > 0 {
		fmt.Fprintln(e.out, "Editor folders:")
		for _, f := range w.Folders {
			fmt.Fprintf(e.out, "  %s  %s\n", f.Name, f.Path)
		}
	}
	return nil
}
