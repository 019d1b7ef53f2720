package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neutron-wm/neutron/internal/capability"
	"github.com/neutron-wm/neutron/internal/errors"
	"github.com/neutron-wm/neutron/internal/layout"
	"github.com/neutron-wm/neutron/internal/project"
)

var treeCmd = &cobra.Command{
	Use:   "tree <project>",
	Short: "Compile a project without launching it",
	Long: `Compile a project's layout and print the i3 layout fragments followed by
the commands launch and quit would run. Nothing is started.`,
	Args: cobra.ExactArgs(1),
	RunE: runTree,
}

func init() {
	rootCmd.AddCommand(treeCmd)
}

func runTree(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	specPath, err := project.SpecPath(args[0])
	if err != nil {
		return errors.Wrapf(err, "failed to resolve project %q", args[0])
	}
	p, caps, err := e.orch.Load(specPath)
	if err != nil {
		return err
	}

	fmt.Fprintf(e.out, "Project: %s\n", p.File)
	for _, c := range caps {
		switch c := c.(type) {
		case *capability.Network:
			fmt.Fprintf(e.out, "Network: %s\n", c.Connection())
		case *capability.Editor:
			fmt.Fprintf(e.out, "Editor folders: %d\n", len(c.Workspace().Folders))
		case *capability.Layout:
			printLayout(e, c.Result())
		}
	}
	return nil
}

func printLayout(e *env, result *layout.Result) {
	fmt.Fprintln(e.out)
	if err := layout.WriteFragments(e.out, result.Root); err != nil {
		e.logger.Error("failed to print layout", "error", err.Error())
	}

	fmt.Fprintln(e.out, "Launch commands:")
	for _, c := range result.LaunchCommands {
		fmt.Fprintf(e.out, "  %s\n", c)
	}
	if len(result.QuitCommands) > 0 {
		fmt.Fprintln(e.out, "Quit commands:")
		for _, c := range result.QuitCommands {
			fmt.Fprintf(e.out, "  %s\n", c)
		}
	}
}
