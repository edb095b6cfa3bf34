package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/doeshing/byte-agent-go/internal/app"
	"github.com/doeshing/byte-agent-go/internal/infrastructure/server"
)

func newServeCommand(container *app.Container) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the command console over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = container.Config.Server.Addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			handler := server.NewHandler(container.Session, container.Logger)
			fmt.Fprintf(cmd.OutOrStdout(), "Serving workspace %s on http://%s\n", container.Workspace.Root(), addr)
			return server.Serve(ctx, addr, handler, container.Logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default server.addr)")
	return cmd
}
