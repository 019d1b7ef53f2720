package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/tidwall/jsonc"
)

// SettingsName is the file name neutron looks for in the config locations.
const SettingsName = "neutron"

// Settings represents the complete neutron configuration
type Settings struct {
	Paths    []string       `mapstructure:"paths"`
	I3       I3Config       `mapstructure:"i3"`
	Launcher LauncherConfig `mapstructure:"launcher"`
	Terminal TerminalConfig `mapstructure:"terminal"`
	Browser  AppConfig      `mapstructure:"browser"`
	Editor   AppConfig      `mapstructure:"editor"`
	Network  NetworkConfig  `mapstructure:"network"`
	Session  SessionConfig  `mapstructure:"session"`
	Delays   DelayConfig    `mapstructure:"delays"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	// Shell is the interpreter every command string is handed to with -c
	Shell string `mapstructure:"shell"`
}

// I3Config controls how layouts are placed in the window manager
type I3Config struct {
	// Workspace is the workspace the project layout is appended to (default: "3")
	Workspace string `mapstructure:"workspace"`
	// NeutralWorkspace is switched to and back from after launch so i3
	// recomputes focus (default: "1"). Quit also ends on this workspace.
	NeutralWorkspace string `mapstructure:"neutral_workspace"`
	// BorderWidth is the pixel border of every leaf container (default: 1)
	BorderWidth int `mapstructure:"border_width"`
	// FocusParentDepth is how many "focus parent" steps quit walks up
	// before killing the focused container (default: 10)
	FocusParentDepth int `mapstructure:"focus_parent_depth"`
	// MsgCommand is the i3 IPC client binary (default: "i3-msg")
	MsgCommand string `mapstructure:"msg_command"`
}

// LauncherConfig controls the external project picker
type LauncherConfig struct {
	// Command receives the "|"-joined project list through %s and prints the choice.
	// When empty, neutron falls back to its terminal picker.
	Command string `mapstructure:"command"`
}

// TerminalConfig controls how terminal panes are started and matched
type TerminalConfig struct {
	// Command is a printf template taking (title, class, working directory)
	Command string `mapstructure:"command"`
	// Targets maps an i3 criterion (class, instance, ...) to a pattern
	// template taking the pane label
	Targets map[string]string `mapstructure:"targets"`
}

// AppConfig controls a single-instance application pane (browser, editor)
type AppConfig struct {
	// Title is the display name of the pane's container
	Title string `mapstructure:"title"`
	// Command starts the application. For the editor it takes the generated
	// project file through %s.
	Command string `mapstructure:"command"`
	// Targets maps an i3 criterion to a static pattern
	Targets map[string]string `mapstructure:"targets"`
}

// NetworkConfig controls VPN switching
type NetworkConfig struct {
	// Connect is a printf template taking the connection name
	Connect string `mapstructure:"connect"`
	// Disconnect drops any current connection
	Disconnect string `mapstructure:"disconnect"`
	// DefaultConnection is used when a project enables networking without naming one
	DefaultConnection string `mapstructure:"default_connection"`
}

// SessionConfig controls where session state is written
type SessionConfig struct {
	// MarkerFile holds the path of the active project's neutron.yml
	MarkerFile string `mapstructure:"marker_file"`
	// LockFile serializes concurrent launch/quit invocations
	LockFile string `mapstructure:"lock_file"`
	// LayoutFile receives the i3 layout fragments before append_layout
	LayoutFile string `mapstructure:"layout_file"`
	// EditorProjectFile receives the generated editor project
	EditorProjectFile string `mapstructure:"editor_project_file"`
}

// DelayConfig holds the settle delays between steps, in milliseconds
type DelayConfig struct {
	// CommandMs is waited after every submitted command (default: 100)
	CommandMs int `mapstructure:"command_ms"`
	// HookMs is waited before every capability hook (default: 100)
	HookMs int `mapstructure:"hook_ms"`
	// PhaseMs is waited between lifecycle phases (default: 250)
	PhaseMs int `mapstructure:"phase_ms"`
	// RelaunchMs is waited after quitting a previous session before launching (default: 500)
	RelaunchMs int `mapstructure:"relaunch_ms"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether debug logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// Dir is the directory debug.log is written to (default: $TMPDIR/neutron)
	Dir string `mapstructure:"dir"`
	// MaxSizeMB is the size at which debug.log is rotated, 0 to never rotate (default: 10)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is how many rotated logs are kept (default: 3)
	MaxBackups int `mapstructure:"max_backups"`
}

// Command returns the per-command settle delay as a time.Duration
func (d DelayConfig) Command() time.Duration {
	return time.Duration(d.CommandMs) * time.Millisecond
}

// Hook returns the per-hook settle delay as a time.Duration
func (d DelayConfig) Hook() time.Duration {
	return time.Duration(d.HookMs) * time.Millisecond
}

// Phase returns the between-phase settle delay as a time.Duration
func (d DelayConfig) Phase() time.Duration {
	return time.Duration(d.PhaseMs) * time.Millisecond
}

// Relaunch returns the delay after quitting a previous session
func (d DelayConfig) Relaunch() time.Duration {
	return time.Duration(d.RelaunchMs) * time.Millisecond
}

// Default returns Settings with the values neutron ships with
func Default() *Settings {
	tmp := os.TempDir()
	return &Settings{
		Paths: []string{"~/Sites"},
		I3: I3Config{
			Workspace:        "3",
			NeutralWorkspace: "1",
			BorderWidth:      1,
			FocusParentDepth: 10,
			MsgCommand:       "i3-msg",
		},
		Launcher: LauncherConfig{
			Command: "echo '%s' | rofi -dmenu -sep '|' -p 'Project Manager'",
		},
		Terminal: TerminalConfig{
			Command: `alacritty --title "%s" --class "Project%s" --working-directory %s`,
			Targets: map[string]string{
				"instance": "^Project%s$",
			},
		},
		Browser: AppConfig{
			Title:   "Firefox",
			Command: "firefox https://127.0.0.1",
			Targets: map[string]string{
				"class": "^Firefox$",
			},
		},
		Editor: AppConfig{
			Title:   "Sublime Text",
			Command: "subl3 --project %s",
			Targets: map[string]string{
				"class": "^Subl3$",
			},
		},
		Network: NetworkConfig{
			Connect:           "nordvpn connect %s",
			Disconnect:        "nordvpn disconnect",
			DefaultConnection: "Sweden",
		},
		Session: SessionConfig{
			MarkerFile:        filepath.Join(tmp, "neutron.recent"),
			LockFile:          filepath.Join(tmp, "neutron.lock"),
			LayoutFile:        filepath.Join(tmp, "neutron.i3-workspace"),
			EditorProjectFile: filepath.Join(tmp, "neutron.sublime-project"),
		},
		Delays: DelayConfig{
			CommandMs:  100,
			HookMs:     100,
			PhaseMs:    250,
			RelaunchMs: 500,
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			Dir:        filepath.Join(tmp, "neutron"),
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		Shell: "/bin/bash",
	}
}

// SetDefaults registers default values and environment bindings with v
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("paths", defaults.Paths)

	v.SetDefault("i3.workspace", defaults.I3.Workspace)
	v.SetDefault("i3.neutral_workspace", defaults.I3.NeutralWorkspace)
	v.SetDefault("i3.border_width", defaults.I3.BorderWidth)
	v.SetDefault("i3.focus_parent_depth", defaults.I3.FocusParentDepth)
	v.SetDefault("i3.msg_command", defaults.I3.MsgCommand)

	v.SetDefault("launcher.command", defaults.Launcher.Command)

	v.SetDefault("terminal.command", defaults.Terminal.Command)
	v.SetDefault("terminal.targets", targetDefaults(defaults.Terminal.Targets))

	v.SetDefault("browser.title", defaults.Browser.Title)
	v.SetDefault("browser.command", defaults.Browser.Command)
	v.SetDefault("browser.targets", targetDefaults(defaults.Browser.Targets))

	v.SetDefault("editor.title", defaults.Editor.Title)
	v.SetDefault("editor.command", defaults.Editor.Command)
	v.SetDefault("editor.targets", targetDefaults(defaults.Editor.Targets))

	v.SetDefault("network.connect", defaults.Network.Connect)
	v.SetDefault("network.disconnect", defaults.Network.Disconnect)
	v.SetDefault("network.default_connection", defaults.Network.DefaultConnection)

	v.SetDefault("session.marker_file", defaults.Session.MarkerFile)
	v.SetDefault("session.lock_file", defaults.Session.LockFile)
	v.SetDefault("session.layout_file", defaults.Session.LayoutFile)
	v.SetDefault("session.editor_project_file", defaults.Session.EditorProjectFile)

	v.SetDefault("delays.command_ms", defaults.Delays.CommandMs)
	v.SetDefault("delays.hook_ms", defaults.Delays.HookMs)
	v.SetDefault("delays.phase_ms", defaults.Delays.PhaseMs)
	v.SetDefault("delays.relaunch_ms", defaults.Delays.RelaunchMs)

	v.SetDefault("logging.enabled", defaults.Logging.Enabled)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.dir", defaults.Logging.Dir)
	v.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	v.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)

	v.SetDefault("shell", defaults.Shell)

	// NEUTRON_I3_WORKSPACE for i3.workspace, and so on
	v.SetEnvPrefix("NEUTRON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Legacy variable names read directly
	_ = v.BindEnv("i3.border_width", "NEUTRON_I3_BORDER_WIDTH", "SETTINGS_BORDERSIZE")
	_ = v.BindEnv("network.default_connection", "NEUTRON_NETWORK_DEFAULT_CONNECTION", "VPN_CONNECTION")
}

// targetDefaults converts a default target map for viper. Viper flattens it
// into per-criterion keys; Load undoes that merge for maps a settings file
// sets, see replaceTargets.
func targetDefaults(targets map[string]string) map[string]any {
	out := make(map[string]any, len(targets))
	for kind, pattern := range targets {
		out[kind] = pattern
	}
	return out
}

// ReadSettingsFile loads a settings file into v. The file is JSON; comments
// and trailing commas are stripped first.
func ReadSettingsFile(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading settings %s: %w", path, err)
	}

	v.SetConfigType("json")
	if err := v.ReadConfig(bytes.NewReader(jsonc.ToJSON(data))); err != nil {
		return fmt.Errorf("parsing settings %s: %w", path, err)
	}
	return nil
}

// Load reads the configuration from v into a Settings struct and validates it
func Load(v *viper.Viper) (*Settings, error) {
	var cfg Settings
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	replaceTargets(v, "terminal.targets", cfg.Terminal.Targets)
	replaceTargets(v, "browser.targets", cfg.Browser.Targets)
	replaceTargets(v, "editor.targets", cfg.Editor.Targets)

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// replaceTargets makes a targets map given in the settings file replace
// the default one instead of merging with it: default criteria the file
// does not name are removed.
func replaceTargets(v *viper.Viper, key string, targets map[string]string) {
	if !v.InConfig(key) {
		return
	}
	for kind := range targets {
		if !v.InConfig(key + "." + kind) {
			delete(targets, kind)
		}
	}
}

// ConfigDir returns the directory neutron's settings live in
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return xdg
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config")
}

// SettingsFile returns the first existing settings file, checking
// $XDG_CONFIG_HOME/neutron, ~/.config/neutron and ~/.neutron in that order.
// Returns "" when none exists.
func SettingsFile() string {
	var candidates []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		candidates = append(candidates, filepath.Join(xdg, SettingsName))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(home, ".config", SettingsName),
			filepath.Join(home, "."+SettingsName),
		)
	}

	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
