package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/cronstorm/config"
	"github.com/teranos/cronstorm/errors"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect cronstorm configuration",
		Long: `Display and check cronstorm configuration.

Configuration sources (later overrides earlier):
1. Default values
2. System config (/etc/cronstorm/config.toml)
3. User config (~/.cronstorm/config.toml)
4. Project config (nearest cronstorm.toml, searching up from the working directory)
5. Environment variables (CRONSTORM_* prefix, e.g. CRONSTORM_API_ENDPOINT)

Examples:
  cronstorm config show                  # Show current configuration
  cronstorm config show --format json    # Show configuration in JSON format
  cronstorm config get api.endpoint      # Get a specific value
  cronstorm config validate              # Validate current configuration`,
	}

	var format string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd.OutOrStdout(), format)
		},
	}
	showCmd.Flags().StringVar(&format, "format", "toml", "Output format: toml, json, yaml")

	getCmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Get a specific configuration value",
		Long:  "Get a specific configuration value using dot notation (e.g., api.endpoint, job.content_type)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(cmd.OutOrStdout(), args[0])
		},
	}

	whereCmd := &cobra.Command{
		Use:   "where",
		Short: "Show where configuration is loaded from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigWhere(cmd.OutOrStdout())
		},
	}

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate current configuration",
		Long:  "Validate the merged configuration and report keys in config files that cronstorm does not recognize",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigValidate(cmd.OutOrStdout())
		},
	}

	configCmd.AddCommand(showCmd, getCmd, whereCmd, validateCmd)
	return configCmd
}

func runConfigShow(w io.Writer, format string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	switch format {
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to JSON")
		}
		fmt.Fprintln(w, string(data))

	case "yaml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to YAML")
		}
		fmt.Fprintf(w, "# cronstorm configuration\n%s", string(data))

	case "toml":
		data, err := toml.Marshal(cfg)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to TOML")
		}
		fmt.Fprintf(w, "# cronstorm configuration\n%s", string(data))

	default:
		return errors.Newf("unsupported format: %s (supported: toml, json, yaml)", format)
	}
	return nil
}

func runConfigGet(w io.Writer, key string) error {
	v, err := config.GetViper()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	if !v.IsSet(key) {
		return errors.Newf("configuration key %q not found", key)
	}
	fmt.Fprintln(w, v.Get(key))
	return nil
}

func runConfigWhere(w io.Writer) error {
	settings, err := config.Settings()
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Configuration cascade (later overrides earlier):")
	fmt.Fprintln(w, "  [DEFAULT]  built-in defaults")
	for _, c := range config.Candidates() {
		status := "missing"
		if c.Exists {
			status = "found"
		}
		label := "[" + strings.ToUpper(string(c.Source)) + "]"
		fmt.Fprintf(w, "  %-10s %s (%s)\n", label, c.Path, status)
	}
	fmt.Fprintln(w, "  [ENV]      CRONSTORM_* environment variables")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Active configuration:")
	for _, s := range settings {
		origin := string(s.Source)
		if s.SourcePath != "" {
			origin += " " + s.SourcePath
		}
		fmt.Fprintf(w, "  %s = %v (%s)\n", s.Key, s.Value, origin)
	}
	return nil
}

func runConfigValidate(w io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "configuration validation failed")
	}

	unknownTotal := 0
	for _, c := range config.Candidates() {
		if !c.Exists {
			continue
		}
		unknown, err := config.UnknownKeys(c.Path)
		if err != nil {
			return err
		}
		for _, key := range unknown {
			fmt.Fprintf(w, "unknown key %q in %s\n", key, c.Path)
		}
		unknownTotal += len(unknown)
	}
	if unknownTotal > 0 {
		return errors.Newf("configuration has %d unknown key(s)", unknownTotal)
	}

	fmt.Fprintln(w, "✓ Configuration is valid")
	return nil
}
