package cmd

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/neutron-wm/neutron/internal/errors"
	"github.com/neutron-wm/neutron/internal/logging"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "View the debug log",
	Long: `View and filter neutron's debug log, rotated files included.

Examples:
  # Show the last 50 entries
  neutron logs

  # Show every warning and error of one project
  neutron logs -n 0 --level warn --project acme/shop

  # Show what the layout capability did in the last hour
  neutron logs --capability layout --since 1h

  # Export as CSV
  neutron logs -n 0 --format csv > neutron.csv`,
	Args: cobra.NoArgs,
	RunE: runLogs,
}

var (
	logsTail       int
	logsLevel      string
	logsSince      time.Duration
	logsProject    string
	logsPhase      string
	logsCapability string
	logsGrep       string
	logsFormat     string
)

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().IntVarP(&logsTail, "tail", "n", 50, "Number of entries to show (0 for all)")
	logsCmd.Flags().StringVar(&logsLevel, "level", "", "Filter by minimum level (debug/info/warn/error)")
	logsCmd.Flags().DurationVar(&logsSince, "since", 0, "Show entries since duration ago (e.g., 1h, 30m)")
	logsCmd.Flags().StringVar(&logsProject, "project", "", "Filter by project path substring")
	logsCmd.Flags().StringVar(&logsPhase, "phase", "", "Filter by phase (prepare/launch/settle/quit)")
	logsCmd.Flags().StringVar(&logsCapability, "capability", "", "Filter by capability (network/editor/layout)")
	logsCmd.Flags().StringVar(&logsGrep, "grep", "", "Filter by message substring")
	logsCmd.Flags().StringVar(&logsFormat, "format", "text", "Output format (text/json/csv)")
}

func runLogs(cmd *cobra.Command, args []string) error {
	if logsLevel != "" && !slices.Contains(logging.ValidLevels(), strings.ToUpper(logsLevel)) {
		return errors.NewValidationError("unknown log level").WithField("level").WithValue(logsLevel)
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	entries, err := logging.ReadLogs(settings.Logging.Dir)
	if err != nil {
		return err
	}

	filter := logging.LogFilter{
		Level:           logsLevel,
		Project:         logsProject,
		Phase:           logsPhase,
		Capability:      logsCapability,
		MessageContains: logsGrep,
	}
	if logsSince > 0 {
		filter.Since = time.Now().Add(-logsSince)
	}
	entries = logging.FilterLogs(entries, filter)

	if logsTail > 0 && len(entries) > logsTail {
		entries = entries[len(entries)-logsTail:]
	}
	if len(entries) == 0 && logsFormat == "text" {
		fmt.Fprintln(cmd.ErrOrStderr(), "No matching log entries")
		return nil
	}
	return logging.WriteLogEntries(cmd.OutOrStdout(), entries, logsFormat)
}
