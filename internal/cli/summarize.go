package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/tubesum/internal/pipeline"
	"github.com/nguyentantai21042004/tubesum/internal/video"
)

func NewSummarizeCmd(deps *Dependencies) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "summarize <url>",
		Short: "Summarize one video and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, ok := video.Detect(args[0])
			if !ok {
				return fmt.Errorf("not a YouTube link: %s", args[0])
			}

			a, err := deps.App()
			if err != nil {
				return err
			}
			if err := a.EnsureDirectories(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			stderr := cmd.ErrOrStderr()
			sink := pipeline.SinkFunc(func(_ context.Context, p pipeline.Progress) error {
				if quiet || p.Final {
					return nil
				}
				_, err := fmt.Fprintln(stderr, p.Text)
				return err
			})

			summary, err := a.Pipeline.Run(ctx, ref, sink)
			if err != nil {
				var pErr *pipeline.Error
				if errors.As(err, &pErr) {
					return errors.New(pErr.Message())
				}
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), summary)
			return err
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not print progress to stderr")
	return cmd
}
