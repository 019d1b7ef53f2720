package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/neutron-wm/neutron/internal/config"
	"github.com/neutron-wm/neutron/internal/errors"
	"github.com/neutron-wm/neutron/internal/project"
)

var rootCmd = &cobra.Command{
	Use:   "neutron [project]",
	Short: "Per-project i3 session launcher",
	Long: `Neutron starts a project's desktop session: it connects the project's VPN,
opens its editor workspace and appends its pane layout to an i3 workspace,
starting a window for every pane.

The project argument is a project directory, a picker entry such as
"shop → ~/Sites/acme", "list" to pick a project, or "quit" to tear down the
active session.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

// settingsFile is the settings file read by initConfig, "" when running on defaults.
var settingsFile string

// configErr holds a settings file read failure until a command needs the settings.
var configErr error

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx, which is canceled on interrupt.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// ErrorMessage renders an error returned by Execute for the terminal.
// Errors raised by neutron itself are printed as they are; anything else,
// such as a bad flag or argument, also points at the usage text.
func ErrorMessage(err error) string {
	if errors.IsUserFacing(err) {
		return fmt.Sprintf("neutron: %v", err)
	}
	return fmt.Sprintf("neutron: %v\nRun 'neutron --help' for usage.", err)
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "settings file (default is $XDG_CONFIG_HOME/neutron, ~/.config/neutron or ~/.neutron)")
	rootCmd.PersistentFlags().Bool("dry-run", false, "print commands instead of running them")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	v := viper.GetViper()

	// Set defaults first so they're available even without a settings file
	config.SetDefaults(v)

	settingsFile = viper.GetString("config")
	if settingsFile == "" {
		settingsFile = config.SettingsFile()
	}
	configErr = nil
	if settingsFile != "" {
		configErr = config.ReadSettingsFile(v, settingsFile)
	}
}

// dryRun reports whether --dry-run was given.
func dryRun(flags *pflag.FlagSet) bool {
	on, err := flags.GetBool("dry-run")
	return err == nil && on
}

func runRoot(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}

	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	return e.dispatch(cmd.Context(), args[0])
}

// dispatch routes a project token: quit phrases quit, "list" opens the
// picker and anything else launches the project it names.
func (e *env) dispatch(ctx context.Context, token string) error {
	switch {
	case project.IsQuit(token):
		return e.quit(ctx)
	case project.IsList(token):
		return e.list(ctx)
	}

	specPath, err := project.SpecPath(token)
	if err != nil {
		return errors.Wrapf(err, "failed to resolve project %q", token)
	}
	return e.launch(ctx, specPath)
}
