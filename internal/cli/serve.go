package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func NewServeCmd(deps *Dependencies) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run only the HTTP and WebSocket API",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := deps.App()
			if err != nil {
				return err
			}
			if addr != "" {
				a.Config.HTTP.Addr = addr
			}
			if err := a.EnsureDirectories(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return a.NewHTTPServer().ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides http.addr)")
	return cmd
}
