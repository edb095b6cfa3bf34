package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/byte-agent-go/internal/app"
	"github.com/doeshing/byte-agent-go/internal/application/dispatch"
)

// Runner executes one command line.
type Runner interface {
	Run(ctx context.Context, line string) (dispatch.Result, error)
}

func newShellCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive command loop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), container.Session, container.Workspace.Root())
		},
	}
}

func newRunCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "run <command words...>",
		Short: "Run a single command line and print the result",
		Example: `  byteagent run find pdf files
  byteagent run 'append "done" to todo.txt'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd.Context(), cmd.OutOrStdout(), container.Session, args)
		},
	}
}

// runShell reads command lines until the exit intent or end of input.
func runShell(ctx context.Context, in io.Reader, out io.Writer, runner Runner, workspace string) error {
	renderer := NewRenderer(out)
	renderer.Banner(workspace)
	prompter := NewPrompter(in, renderer)

	for {
		line, err := prompter.ReadLine()
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("read command: %w", err)
		}

		res, err := runner.Run(ctx, line)
		if err != nil {
			return err
		}
		renderer.Result(res.Output)
		if res.Exit || ctx.Err() != nil {
			return nil
		}
	}
}

func runOnce(ctx context.Context, out io.Writer, runner Runner, args []string) error {
	res, err := runner.Run(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	NewRenderer(out).Result(res.Output)
	return nil
}
