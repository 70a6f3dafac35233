package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func NewBotCmd(deps *Dependencies) *cobra.Command {
	var noHTTP bool

	cmd := &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram bot (and the HTTP API)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := deps.App()
			if err != nil {
				return err
			}
			if err := a.EnsureDirectories(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			reg, err := a.OpenRegistry(ctx)
			if err != nil {
				return err
			}
			defer reg.Close()

			bot, err := a.NewBot(reg)
			if err != nil {
				return err
			}

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error { return bot.Run(gctx) })
			if !noHTTP {
				srv := a.NewHTTPServer()
				g.Go(func() error { return srv.ListenAndServe(gctx) })
			}

			a.Logger.Info(ctx, "Bot is ready. Press Ctrl+C to stop")
			err = g.Wait()
			a.Logger.Info(context.Background(), "Bot stopped")
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&noHTTP, "no-http", false, "Do not start the HTTP API")
	return cmd
}
