// Package main provides the zoomchat CLI entry point.
// zoomchat reads folders of Zoom "Personal Meeting Room" chat exports and
// reports who took part in the chat and how much.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/otherjamesbrown/zoomchat/cmd"
	"github.com/otherjamesbrown/zoomchat/config"
	"github.com/otherjamesbrown/zoomchat/pkg/buildinfo"
	pferrors "github.com/otherjamesbrown/zoomchat/pkg/errors"
	"github.com/otherjamesbrown/zoomchat/pkg/logging"
)

// Global flags and state.
var (
	outputFormat string
	logFormat    string
	indent       string
	counterMode  string
	debug        bool

	// cfg holds the loaded configuration.
	cfg *config.CLIConfig

	// deps is shared by the transcript commands.
	deps = cmd.DefaultDeps()
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "zoomchat",
	Short: "Zoom chat participation reports",
	Long: `zoomchat reads a folder of Zoom "Personal Meeting Room" chat exports and
reports, for every participant other than the moderator, what they wrote
and how much of the chat it was.

Each room folder looks like:
  2021-05-01 10.00.00 John Smith's Personal Meeting Room/meeting_saved_chat.txt

COMMON WORKFLOWS:
  Check a folder:    zoomchat scan ~/Documents/Zoom --dry-run
  Who took part:     zoomchat students ~/Documents/Zoom
  Read one student:  zoomchat messages ~/Documents/Zoom "Alice" --filter homework
  Participation:     zoomchat stats ~/Documents/Zoom

Commands support --output json|yaml for structured data.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(c *cobra.Command, args []string) error {
		// Skip initialization for commands that don't need it.
		if c.Name() == "version" || c.Name() == "help" || c.Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}

		if err := applyFlagOverrides(c, cfg); err != nil {
			return err
		}

		deps.Config = cfg
		deps.Logger = newLogger(cfg, os.Stderr)
		return nil
	},
}

// applyFlagOverrides overlays explicitly set persistent flags onto cfg.
func applyFlagOverrides(c *cobra.Command, cfg *config.CLIConfig) error {
	flags := c.Flags()
	if flags.Changed("output") {
		cfg.OutputFormat = config.OutputFormat(outputFormat)
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = config.LogFormat(logFormat)
	}
	if flags.Changed("indent") {
		cfg.Transcript.Indent = indent
	}
	if flags.Changed("counter") {
		cfg.Transcript.CounterMode = counterMode
	}
	if debug {
		cfg.Debug = true
	}
	return cfg.Validate()
}

// newLogger builds the stderr logger for cfg.
func newLogger(cfg *config.CLIConfig, w io.Writer) logging.Logger {
	level := logging.LevelWarn
	if cfg.Debug {
		level = logging.LevelDebug
	}
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !term.IsTerminal(int(f.Fd()))
	}
	return logging.NewLogger(&logging.Config{
		Level:       level,
		ServiceName: "zoomchat",
		JSONFormat:  cfg.LogFormat == config.LogFormatJSON,
		NoColor:     noColor,
		Output:      w,
	})
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long: `Print the version, commit hash, and build time of the zoomchat CLI.

Examples:
  zoomchat version
  zoomchat version --output json`,
	RunE: func(c *cobra.Command, args []string) error {
		info := buildinfo.Get("zoomchat")
		w := c.OutOrStdout()

		switch config.OutputFormat(outputFormat) {
		case config.OutputFormatJSON:
			return writeJSON(w, info)
		case config.OutputFormatYAML:
			return writeYAML(w, info)
		default:
			fmt.Fprintf(w, "zoomchat %s\n", buildinfo.String())
			fmt.Fprintf(w, "  Go:       %s\n", info.GoVersion)
			fmt.Fprintf(w, "  Platform: %s\n", info.Platform)
			return nil
		}
	},
}

// configCmd manages CLI configuration.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage CLI configuration",
	Long:  `View and modify the zoomchat CLI configuration settings.`,
}

// configShowCmd displays current configuration.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current CLI configuration values.`,
	RunE: func(c *cobra.Command, args []string) error {
		configPath, _ := config.ConfigPath()
		return showConfig(c.OutOrStdout(), configPath, cfg)
	},
}

func showConfig(w io.Writer, configPath string, cfg *config.CLIConfig) error {
	switch cfg.OutputFormat {
	case config.OutputFormatJSON:
		return writeJSON(w, redacted(cfg))
	case config.OutputFormatYAML:
		return writeYAML(w, redacted(cfg))
	}

	fmt.Fprintln(w, "Current configuration:")
	fmt.Fprintf(w, "  Config file:      %s\n", configPath)
	fmt.Fprintf(w, "  Output format:    %s\n", cfg.OutputFormat)
	fmt.Fprintf(w, "  Log format:       %s\n", cfg.LogFormat)
	fmt.Fprintf(w, "  Debug:            %t\n", cfg.Debug)
	fmt.Fprintf(w, "  Indent:           %s\n", cfg.Transcript.Indent)
	fmt.Fprintf(w, "  Counter mode:     %s\n", cfg.Transcript.CounterMode)
	fmt.Fprintf(w, "  Metrics textfile: %s\n", valueOrDefault(cfg.MetricsTextfile, "(not set)"))
	fmt.Fprintf(w, "  Events:           %t\n", cfg.Events.Enabled)
	if cfg.Events.Enabled {
		fmt.Fprintf(w, "  Redis address:    %s (db %d)\n", cfg.Events.Address, cfg.Events.DB)
		fmt.Fprintf(w, "  Events channel:   %s\n", cfg.Events.Channel)
	}
	return nil
}

// redacted returns a copy of cfg safe to print.
func redacted(cfg *config.CLIConfig) config.CLIConfig {
	out := *cfg
	if out.Events.Password != "" {
		out.Events.Password = "********"
	}
	return out
}

// configInitCmd initializes configuration.
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration file",
	Long:  `Create a new configuration file with default values if one doesn't exist.`,
	RunE: func(c *cobra.Command, args []string) error {
		w := c.OutOrStdout()
		configPath, err := config.ConfigPath()
		if err != nil {
			return fmt.Errorf("getting config path: %w", err)
		}

		if _, err := os.Stat(configPath); err == nil {
			fmt.Fprintf(w, "Configuration file already exists: %s\n", configPath)
			fmt.Fprintln(w, "Use 'zoomchat config show' to view current settings.")
			return nil
		}

		defaultCfg := config.DefaultConfig()
		if err := config.SaveConfig(defaultCfg); err != nil {
			return fmt.Errorf("saving configuration: %w", err)
		}

		fmt.Fprintf(w, "Created configuration file: %s\n", configPath)
		fmt.Fprintln(w, "\nDefault settings:")
		fmt.Fprintf(w, "  Output format: %s\n", defaultCfg.OutputFormat)
		fmt.Fprintf(w, "  Indent:        %s\n", defaultCfg.Transcript.Indent)
		fmt.Fprintf(w, "  Counter mode:  %s\n", defaultCfg.Transcript.CounterMode)

		return nil
	},
}

// configSetCmd sets a configuration value.
var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the config file.

Available keys:
  output_format           - Default output format (text, json, yaml)
  log_format              - Diagnostic log format (console, json)
  debug                   - Enable debug logging (true/false)
  transcript.indent       - Message body indent (auto, tab, spaces)
  transcript.counter_mode - Message total across files (scan, file)
  metrics_textfile        - Write scan metrics to this file (supports ~)
  events.enabled          - Publish scan events to Redis (true/false)
  events.address          - Redis address (host:port)
  events.db               - Redis database number
  events.channel          - Redis channel for scan events

The Redis password is read from ZOOMCHAT_REDIS_PASSWORD, usually via a .env
file, and is never stored in config.yaml.

Examples:
  zoomchat config set output_format json
  zoomchat config set transcript.counter_mode file
  zoomchat config set metrics_textfile ~/node_exporter/zoomchat.prom`,
	Args: cobra.ExactArgs(2),
	RunE: func(c *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		currentCfg, err := config.LoadConfig()
		if err != nil {
			// If config doesn't exist or is broken, start with defaults.
			currentCfg = config.DefaultConfig()
		}

		if err := setConfigValue(currentCfg, key, value); err != nil {
			return err
		}
		if err := currentCfg.Validate(); err != nil {
			return err
		}

		if err := config.SaveConfig(currentCfg); err != nil {
			return fmt.Errorf("saving configuration: %w", err)
		}

		fmt.Fprintf(c.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

// setConfigValue assigns value to the configuration key.
func setConfigValue(cfg *config.CLIConfig, key, value string) error {
	switch key {
	case "output_format":
		format := config.OutputFormat(value)
		if !format.IsValid() {
			return fmt.Errorf("%w: invalid output format: %s (must be text, json, or yaml)", pferrors.ErrValidation, value)
		}
		cfg.OutputFormat = format
	case "log_format":
		cfg.LogFormat = config.LogFormat(value)
	case "debug":
		b, err := parseBool(key, value)
		if err != nil {
			return err
		}
		cfg.Debug = b
	case "transcript.indent":
		cfg.Transcript.Indent = value
	case "transcript.counter_mode":
		cfg.Transcript.CounterMode = value
	case "metrics_textfile":
		if _, err := config.ExpandPath(value); err != nil {
			return fmt.Errorf("invalid metrics textfile path: %w", err)
		}
		// Store the original value (with ~) for readability.
		cfg.MetricsTextfile = value
	case "events.enabled":
		b, err := parseBool(key, value)
		if err != nil {
			return err
		}
		cfg.Events.Enabled = b
	case "events.address":
		cfg.Events.Address = value
	case "events.db":
		db, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: invalid events.db value: %s", pferrors.ErrValidation, value)
		}
		cfg.Events.DB = db
	case "events.channel":
		cfg.Events.Channel = value
	default:
		return fmt.Errorf("%w: unknown configuration key: %s", pferrors.ErrValidation, key)
	}
	return nil
}

func parseBool(key, value string) (bool, error) {
	switch value {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("%w: invalid %s value: %s (must be true or false)", pferrors.ErrValidation, key, value)
	}
}

// completionCmd generates shell completion scripts.
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for zoomchat.

To load completions:

Bash:
  $ source <(zoomchat completion bash)

Zsh:
  $ zoomchat completion zsh > "${fpath[1]}/_zoomchat"

Fish:
  $ zoomchat completion fish | source

PowerShell:
  PS> zoomchat completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(c *cobra.Command, args []string) error {
		w := c.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(w)
		case "zsh":
			return rootCmd.GenZshCompletion(w)
		case "fish":
			return rootCmd.GenFishCompletion(w, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(w)
		}
		return nil
	},
}

// writeJSON writes data as indented JSON.
func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeYAML writes data as YAML.
func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(v)
}

func valueOrDefault(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "Output format: text, json, yaml")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: console, json")
	rootCmd.PersistentFlags().StringVar(&indent, "indent", "", "Message body indent: auto, tab, spaces")
	rootCmd.PersistentFlags().StringVar(&counterMode, "counter", "", "Message total across files: scan, file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddGroup(
		&cobra.Group{ID: "chat", Title: "Chat Commands:"},
		&cobra.Group{ID: "setup", Title: "Setup Commands:"},
	)

	for _, c := range []*cobra.Command{
		cmd.NewScanCommand(deps),
		cmd.NewStudentsCommand(deps),
		cmd.NewMessagesCommand(deps),
		cmd.NewStatsCommand(deps),
	} {
		c.GroupID = "chat"
		rootCmd.AddCommand(c)
	}

	configCmd.GroupID = "setup"
	rootCmd.AddCommand(configCmd)

	completionCmd.GroupID = "setup"
	rootCmd.AddCommand(completionCmd)

	versionCmd.GroupID = "setup"
	rootCmd.AddCommand(versionCmd)

	// Config subcommands.
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
}

func main() {
	// Cancel the running scan on SIGINT or SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		reportError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// reportError prints err with the suggested follow-up for its class.
func reportError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	if code := pferrors.Classify(err); code != pferrors.CodeUnknown {
		fmt.Fprintf(w, "Hint: %s\n", pferrors.GetSuggestedAction(code))
	}
}
