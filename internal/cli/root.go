package cli

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/tubesum/internal/app"
	"github.com/nguyentantai21042004/tubesum/internal/config"
	"github.com/nguyentantai21042004/tubesum/internal/logger"
	"github.com/nguyentantai21042004/tubesum/internal/version"
)

// Dependencies are resolved lazily so that commands like doctor work with
// an incomplete configuration.
type Dependencies struct {
	ConfigPath string

	once   sync.Once
	cfg    *config.Config
	log    logger.Logger
	app    *app.App
	appErr error
}

func (d *Dependencies) loadConfig() (*config.Config, error) {
	if d.cfg != nil {
		return d.cfg, nil
	}
	cfg, err := config.Load(d.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	d.cfg = cfg
	d.log = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	return cfg, nil
}

func (d *Dependencies) App() (*app.App, error) {
	d.once.Do(func() {
		cfg, err := d.loadConfig()
		if err != nil {
			d.appErr = err
			return
		}
		d.app, d.appErr = app.New(cfg, d.log)
		if d.appErr != nil {
			d.appErr = fmt.Errorf("initializing app: %w", d.appErr)
		}
	})
	return d.app, d.appErr
}

func NewRootCmd(deps *Dependencies) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tubesum",
		Short:         "Summarize YouTube videos from captions or speech",
		Long:          "tubesum fetches a video's captions (or transcribes its audio when there are none) and summarizes the text with Gemini. It runs as a Telegram bot, an HTTP API, an inbox watcher or a one-shot command.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(version.Full() + "\n")
	rootCmd.PersistentFlags().StringVarP(&deps.ConfigPath, "config", "c", "config.yaml", "Path to the YAML config file")

	rootCmd.AddCommand(NewBotCmd(deps))
	rootCmd.AddCommand(NewServeCmd(deps))
	rootCmd.AddCommand(NewWatchCmd(deps))
	rootCmd.AddCommand(NewSummarizeCmd(deps))
	rootCmd.AddCommand(NewDoctorCmd(deps))

	return rootCmd
}
