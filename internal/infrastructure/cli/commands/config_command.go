package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/byte-agent-go/internal/app"
	configapp "github.com/doeshing/byte-agent-go/internal/application/config"
	"github.com/doeshing/byte-agent-go/internal/domain"
	"github.com/doeshing/byte-agent-go/internal/infrastructure/cli/helpers"
	configinfra "github.com/doeshing/byte-agent-go/internal/infrastructure/config"
	"github.com/doeshing/byte-agent-go/internal/infrastructure/summarizer"
)

const (
	envKeyEditor  = "EDITOR"
	defaultEditor = "vi"
)

// NewConfigCommand creates the config command with all subcommands.
// Without a subcommand it prints the loaded configuration.
func NewConfigCommand(container *app.Container) *cobra.Command {
	show := func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd.Context(), container)
		if err != nil {
			return err
		}
		return writeYAML(cmd.OutOrStdout(), cfg)
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect byteagent configuration",
		RunE:  show,
	}

	configCmd.AddCommand(
		&cobra.Command{Use: "show", Short: "Show full configuration", RunE: show},
		newConfigGetCommand(container),
		newConfigSetCommand(container),
		newConfigBackendsCommand(container),
		newConfigEditCommand(container),
		newConfigValidateCommand(container),
		newConfigResetCommand(container),
		newConfigDiffCommand(container),
		newConfigPathCommand(container),
	)

	return configCmd
}

func newConfigGetCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "get <key>",
		Short:   "Get a specific configuration value",
		Example: "  byteagent config get summarizer.default",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Context(), container)
			if err != nil {
				return err
			}
			value, err := helpers.LookupSetting(cfg, args[0])
			if err != nil {
				return err
			}
			return writeYAML(cmd.OutOrStdout(), value)
		},
	}
}

func newConfigSetCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value (value accepts YAML syntax)",
		Example: `  byteagent config set summarizer.default gemini
  byteagent config set chunking '{size: 2400, overlap: 400}'`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Context(), container)
			if err != nil {
				return err
			}
			updated, err := helpers.AssignSetting(cfg, args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			backup, err := helpers.SaveConfig(container, updated)
			if err != nil {
				return err
			}
			if backup != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Previous configuration saved to %s\n", backup)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s updated\n", args[0])
			return nil
		},
	}
}

// newConfigBackendsCommand lists the declared summarizer backends, marking the
// default one.
func newConfigBackendsCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List configured summarizer backends",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Context(), container)
			if err != nil {
				return err
			}
			listBackends(cmd.OutOrStdout(), cfg)
			return nil
		},
	}
}

func newConfigEditCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := helpers.ConfigLoader(container)
			if err != nil {
				return err
			}
			return openInEditor(loader.Path())
		},
	}
}

func newConfigValidateCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Context(), container)
			if err != nil {
				return err
			}
			if err := configapp.Validate(cfg); err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), MsgConfigurationValid)
			return nil
		},
	}
}

func newConfigResetCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults (the old file is backed up)",
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := helpers.ConfigLoader(container)
			if err != nil {
				return err
			}
			defaults, err := loader.Reset()
			if err != nil {
				return fmt.Errorf("failed to reset configuration: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration reset at %s\n", loader.Path())
			return writeYAML(cmd.OutOrStdout(), defaults)
		},
	}
}

func newConfigDiffCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "diff",
		Short: "Show diff versus default configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Context(), container)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), configDiff(cfg))
			return nil
		},
	}
}

func newConfigPathCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := helpers.ConfigLoader(container)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), loader.Path())
			return nil
		},
	}
}

func loadConfig(ctx context.Context, container *app.Container) (domain.Config, error) {
	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return domain.Config{}, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func writeYAML(out io.Writer, value interface{}) error {
	data, err := yaml.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	_, err = out.Write(data)
	return err
}

func configDiff(cfg domain.Config) string {
	diff := cmp.Diff(configinfra.DefaultConfig(), cfg)
	if diff == "" {
		return MsgNoDifferencesFromDefault
	}
	return diff
}

// listBackends prints one line per backend: default marker, name, kind and the
// model or endpoint it targets.
func listBackends(out io.Writer, cfg domain.Config) {
	if len(cfg.Summarizer.Backends) == 0 {
		fmt.Fprintln(out, "No summarizer backends configured.")
		return
	}
	def, _ := cfg.DefaultBackend()
	for _, backend := range cfg.Summarizer.Backends {
		marker := " "
		if backend.Name == def.Name {
			marker = "*"
		}
		target := backend.ModelID
		if target == "" {
			target = backend.Endpoint
		}
		if target == "" {
			target = "-"
		}
		fmt.Fprintf(out, "%s %-12s %-11s %s\n", marker, backend.Name, summarizer.InferKind(backend), target)
	}
}

func openInEditor(path string) error {
	editor := os.Getenv(envKeyEditor)
	if editor == "" {
		editor = defaultEditor
	}
	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run editor %s: %w", editor, err)
	}
	return nil
}
