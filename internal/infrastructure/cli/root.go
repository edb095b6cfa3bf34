package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/doeshing/byte-agent-go/internal/app"
	"github.com/doeshing/byte-agent-go/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// skipContainer lists commands that run without loading configuration.
var skipContainer = map[string]bool{
	"version": true,
	"help":    true,
}

// NewRootCmd wires the cobra root command. The container is built once flags
// are parsed so --config and --workspace take effect.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	appOpts := app.Options{Verbose: opts.Verbose}
	container := &app.Container{}

	root := &cobra.Command{
		Use:   "byteagent [command words]",
		Short: "byteagent - natural language file assistant",
		Long: `byteagent turns short English commands into file operations inside a
workspace directory and summarizes long documents through a remote model.

Without arguments it starts an interactive shell. With arguments the words
are run as a single command line.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipContainer[cmd.Name()] {
				return nil
			}
			built, err := app.BuildContainer(cmd.Context(), appOpts)
			if err != nil {
				return err
			}
			*container = *built
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return container.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runShell(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), container.Session, container.Workspace.Root())
			}
			return runOnce(cmd.Context(), cmd.OutOrStdout(), container.Session, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true

	flags := root.PersistentFlags()
	flags.StringVar(&appOpts.ConfigPath, "config", "", "Config file (default ~/.byteagent/config.yaml or $BYTEAGENT_CONFIG)")
	flags.StringVarP(&appOpts.Workspace, "workspace", "w", "", "Workspace directory (overrides workspace.root)")
	flags.BoolVarP(&appOpts.Verbose, "verbose", "v", opts.Verbose, "Enable debug logging")

	root.AddCommand(
		newShellCommand(container),
		newRunCommand(container),
		newServeCommand(container),
		newSummarizeCommand(container),
		commands.NewHistoryCommand(container),
		commands.NewCacheCommand(container),
		commands.NewConfigCommand(container),
		commands.NewGuardCommand(container),
		commands.NewInitCommand(container),
		commands.NewDoctorCommand(container),
		commands.NewVersionCommand(),
	)
	return root, nil
}
