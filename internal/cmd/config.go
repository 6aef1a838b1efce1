package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/weblarek/larek/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or create the larek configuration",
	Long: `View or create the larek configuration.

Without arguments, displays the effective configuration: defaults, the
config file, LAREK_* environment variables and flags, merged.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/larek/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	// Show where config is being read from
	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "# Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintln(out, "# Config file: (none - using defaults)")
	}

	if _, err := config.Load(); err != nil {
		fmt.Fprintf(out, "# Invalid: %v\n", err)
	}

	settings := viper.AllSettings()
	delete(settings, "config")
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding configuration: %w", err)
	}
	_, err = out.Write(data)
	return err
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := config.ConfigDir()
	configFile := config.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s", configFile)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	defaults := config.Default()
	content := map[string]any{
		"api": map[string]any{
			"url":     defaults.API.URL,
			"timeout": defaults.API.Timeout.String(),
			"retries": defaults.API.Retries,
		},
		"cdn":     map[string]any{"url": defaults.CDN.URL},
		"logging": map[string]any{"level": defaults.Logging.Level, "dir": defaults.Logging.Dir},
		"stub": map[string]any{
			"addr":    defaults.Stub.Addr,
			"latency": defaults.Stub.Latency.String(),
		},
		"tui": map[string]any{"locale": defaults.TUI.Locale},
	}
	data, err := yaml.Marshal(content)
	if err != nil {
		return fmt.Errorf("encoding configuration: %w", err)
	}
	header := "# larek configuration\n# Every key can be overridden with LAREK_<SECTION>_<KEY>, e.g. LAREK_API_URL.\n\n"
	if err := os.WriteFile(configFile, append([]byte(header), data...), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config file at %s\n", configFile)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Fprintln(cmd.OutOrStdout(), used)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), config.ConfigFile())
	return nil
}
