package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/doeshing/byte-agent-go/assets"
	"github.com/doeshing/byte-agent-go/internal/app"
	"github.com/doeshing/byte-agent-go/internal/domain"
	"github.com/doeshing/byte-agent-go/internal/infrastructure/cli/helpers"
	configinfra "github.com/doeshing/byte-agent-go/internal/infrastructure/config"
	"github.com/doeshing/byte-agent-go/internal/pkg/homedir"
)

// NewInitCommand creates the init command which writes a fresh config file.
func NewInitCommand(container *app.Container) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize byteagent configuration",
		Long: `Initialize byteagent configuration with default settings.

This command writes ~/.byteagent/config.yaml after asking for the workspace
directory and the default summarizer backend. Credentials are never stored in
the file; put them in the environment or in ~/.byteagent/.env:

  HF_TOKEN=hf_...
  MODEL_ID=facebook/bart-large-cnn
  GEMINI_API_KEY=...
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInitWizard(cmd, container, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing config without prompting")
	return cmd
}

func runInitWizard(cmd *cobra.Command, container *app.Container, force bool) error {
	loader, err := helpers.ConfigLoader(container)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	asker := helpers.NewAsker(out, cmd.InOrStdin())

	if !shouldProceedWithInit(asker, loader.Path(), force) {
		fmt.Fprintln(out, MsgCancelled)
		return nil
	}

	cfg := promptForPreferences(out, asker, configinfra.DefaultConfig())
	backup, err := helpers.SaveConfig(container, cfg)
	if err != nil {
		return err
	}
	if backup != "" {
		fmt.Fprintf(out, "Existing config backed up to: %s\n", backup)
	}
	if err := writeDefaultRules(out, cfg.Security.RulesFile); err != nil {
		return err
	}

	displayCompletionInstructions(out, loader.Path(), cfg)
	return nil
}

// writeDefaultRules installs the bundled guard rules unless a rules file exists.
func writeDefaultRules(out io.Writer, rulesFile string) error {
	path := homedir.Expand(rulesFile)
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return fmt.Errorf("failed to create rules directory: %w", err)
	}
	if err := os.WriteFile(path, assets.DefaultGuardrailYAML, domain.FilePermissions); err != nil {
		return fmt.Errorf("failed to write guard rules: %w", err)
	}
	fmt.Fprintf(out, "Guard rules written to: %s\n", path)
	return nil
}

func shouldProceedWithInit(asker *helpers.Asker, configPath string, force bool) bool {
	if _, err := os.Stat(configPath); err != nil || force {
		return true
	}
	return asker.Confirm(fmt.Sprintf("%s exists. Overwrite?", configPath))
}

func promptForPreferences(out io.Writer, asker *helpers.Asker, cfg domain.Config) domain.Config {
	fmt.Fprintln(out, "Configuration preferences:")

	cfg.Workspace.Root = asker.Text("Workspace directory", cfg.Workspace.Root)

	names := make([]string, 0, len(cfg.Summarizer.Backends))
	for _, backend := range cfg.Summarizer.Backends {
		names = append(names, backend.Name)
	}
	cfg.Summarizer.Default = asker.Pick("Default summarizer", names, cfg.Summarizer.Default)

	cfg.Summarizer.Cache = asker.YesNo("Cache summaries on disk?", cfg.Summarizer.Cache)
	cfg.History.Enabled = asker.YesNo("Record command history?", cfg.History.Enabled)
	return cfg
}

func displayCompletionInstructions(out io.Writer, configPath string, cfg domain.Config) {
	fmt.Fprintf(out, "\nConfiguration initialized: %s\n\n", configPath)
	fmt.Fprintln(out, "Next steps:")
	if backend, err := cfg.DefaultBackend(); err == nil && backend.AuthEnvVar != "" {
		fmt.Fprintf(out, "  1. Set %s", backend.AuthEnvVar)
		if backend.ModelEnvVar != "" {
			fmt.Fprintf(out, " and %s", backend.ModelEnvVar)
		}
		fmt.Fprintln(out, " in your environment or ~/.byteagent/.env")
	} else {
		fmt.Fprintln(out, "  1. No credentials needed for the default backend")
	}
	fmt.Fprintln(out, "  2. Verify your setup:  byteagent doctor")
	fmt.Fprintln(out, "  3. Start the shell:    byteagent")
}
