package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func NewWatchCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Summarize link files dropped into the inbox folder",
		Long:  "Watches paths.inbox for .txt and .url files. Every YouTube link inside is summarized into paths.output as Markdown and DOCX, then the file is moved to paths.archived.",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := deps.App()
			if err != nil {
				return err
			}
			if err := a.EnsureDirectories(); err != nil {
				return err
			}

			w, err := a.NewWatcher()
			if err != nil {
				return err
			}
			defer w.Stop()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a.Logger.Info(ctx, "Monitoring: %s", a.Config.Paths.Inbox)
			a.Logger.Info(ctx, "Output: %s", a.Config.Paths.Output)

			if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}
