package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/byte-agent-go/internal/app"
	"github.com/doeshing/byte-agent-go/internal/ports"
)

// NewGuardCommand creates the guard command for inspecting workspace protection
func NewGuardCommand(container *app.Container) *cobra.Command {
	guardCmd := &cobra.Command{
		Use:   "guard",
		Short: "Inspect workspace guard rules",
	}

	guardCmd.AddCommand(
		newGuardStatusCommand(container),
		newGuardCheckCommand(container),
	)
	return guardCmd
}

func newGuardStatusCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show protected paths and loaded rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.Guard == nil {
				return errors.New("workspace guard unavailable")
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Workspace: %s\n", container.Workspace.Root())
			fmt.Fprintf(out, "Rules file: %s\n", container.Config.Security.RulesFile)
			fmt.Fprintf(out, "Protected: %s\n", strings.Join(container.Guard.Protected(), ", "))
			fmt.Fprintf(out, "Path patterns: %d\n", container.Guard.PatternCount())
			return nil
		},
	}
}

func newGuardCheckCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "check <path>...",
		Short: "Report whether mutating commands may touch the given paths",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.Guard == nil {
				return errors.New("workspace guard unavailable")
			}
			return checkPaths(cmd.OutOrStdout(), container.Guard, args)
		},
	}
}

func checkPaths(out io.Writer, guard ports.SecurityService, targets []string) error {
	for _, target := range targets {
		decision, err := guard.Evaluate(target)
		if err != nil {
			return fmt.Errorf("evaluate %s: %w", target, err)
		}
		if decision.Allowed {
			fmt.Fprintf(out, "allowed  %s\n", target)
			continue
		}
		fmt.Fprintf(out, "refused  %s (%s)\n", target, decision.Reason)
	}
	return nil
}
