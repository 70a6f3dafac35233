package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/nguyentantai21042004/tubesum/internal/audio"
	"github.com/nguyentantai21042004/tubesum/internal/broadcast"
	"github.com/nguyentantai21042004/tubesum/internal/captions"
	"github.com/nguyentantai21042004/tubesum/internal/config"
	"github.com/nguyentantai21042004/tubesum/internal/gemini"
	"github.com/nguyentantai21042004/tubesum/internal/httpapi"
	"github.com/nguyentantai21042004/tubesum/internal/inbox"
	"github.com/nguyentantai21042004/tubesum/internal/logger"
	"github.com/nguyentantai21042004/tubesum/internal/pipeline"
	"github.com/nguyentantai21042004/tubesum/internal/registry"
	"github.com/nguyentantai21042004/tubesum/internal/report"
	"github.com/nguyentantai21042004/tubesum/internal/speech"
	"github.com/nguyentantai21042004/tubesum/internal/summarizer"
	"github.com/nguyentantai21042004/tubesum/internal/telegram"
	"github.com/nguyentantai21042004/tubesum/internal/watcher"
	"github.com/nguyentantai21042004/tubesum/pkg/executor"
)

// inbox files the watcher picks up
var linkFileExtensions = []string{".txt", ".url"}

// App holds the components shared by every front end.
type App struct {
	Config   *config.Config
	Logger   logger.Logger
	Pipeline pipeline.Pipeline
}

// New wires the summary pipeline from cfg.
func New(cfg *config.Config, log logger.Logger) (*App, error) {
	if len(cfg.Gemini.APIKeys) == 0 {
		return nil, errors.New("gemini.api_keys is required for summarization")
	}

	gem, err := gemini.New(cfg.Gemini.APIKeys, log)
	if err != nil {
		return nil, err
	}

	exec := executor.New()

	fetcher := captions.New(
		captions.NewYouTubeSource(&http.Client{Timeout: cfg.Timeouts.Captions}),
		cfg.Captions.Languages,
		log,
	)

	acquirer := audio.New(audio.Options{
		BinaryPath:  cfg.Audio.BinaryPath,
		Format:      cfg.Audio.Format,
		CookiesFile: cfg.Audio.CookiesFile,
		TempDir:     cfg.Paths.Temp,
	}, exec, log)

	var recognizer speech.Recognizer
	switch cfg.Speech.Backend {
	case "gemini":
		recognizer = speech.NewGeminiRecognizer(gem, cfg.Gemini.SpeechModel)
	default:
		recognizer = speech.NewWhisperRecognizer(speech.WhisperOptions{
			BinaryPath: cfg.Whisper.BinaryPath,
			ModelPath:  cfg.Whisper.ModelPath,
			Language:   cfg.Whisper.Language,
			Prompt:     cfg.Whisper.Prompt,
			Threads:    cfg.Whisper.Threads,
		}, exec, log)
	}

	transcriber := speech.New(speech.Options{
		FFmpegPath:  cfg.FFmpeg.BinaryPath,
		SampleRate:  cfg.FFmpeg.SampleRate,
		Calibration: cfg.Speech.Calibration,
		MinEnergy:   cfg.Speech.MinEnergy,
	}, recognizer, exec, log)

	sum := summarizer.New(summarizer.NewGeminiCompleter(gem, cfg.Gemini.Model), log)

	p := pipeline.New(fetcher, acquirer, transcriber, sum, pipeline.Options{
		Instructions: cfg.Summary.Instructions,
		Timeouts: pipeline.Timeouts{
			Captions:   cfg.Timeouts.Captions,
			Download:   cfg.Timeouts.Download,
			Convert:    cfg.Timeouts.Convert,
			Recognize:  cfg.Timeouts.Recognize,
			Summarize:  cfg.Timeouts.Summarize,
			SendUpdate: cfg.Timeouts.SendUpdate,
		},
	}, log)

	return &App{Config: cfg, Logger: log, Pipeline: p}, nil
}

// EnsureDirectories creates the working directories.
func (a *App) EnsureDirectories() error {
	dirs := []string{
		a.Config.Paths.Temp,
		a.Config.Paths.Inbox,
		a.Config.Paths.Output,
		a.Config.Paths.Archived,
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// OpenRegistry connects to the configured user registry.
func (a *App) OpenRegistry(ctx context.Context) (registry.Registry, error) {
	reg, err := registry.Open(ctx, a.Config.Registry.Driver, a.Config.Registry.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s registry: %w", a.Config.Registry.Driver, err)
	}
	return reg, nil
}

// NewBot logs in to Telegram and builds the chat front end.
func (a *App) NewBot(reg registry.Registry) (telegram.Bot, error) {
	if err := a.Config.ValidateTelegram(); err != nil {
		return nil, err
	}
	api, err := tgbotapi.NewBotAPI(a.Config.Telegram.Token)
	if err != nil {
		return nil, fmt.Errorf("telegram login: %w", err)
	}
	a.Logger.Info(context.Background(), "Authorized on Telegram as @%s", api.Self.UserName)

	dispatcher := broadcast.New(telegram.NewTransport(api), broadcast.Options{
		Parallelism:   a.Config.Broadcast.Parallelism,
		RatePerSecond: a.Config.Broadcast.RatePerSecond,
	}, a.Logger)

	return telegram.New(api, a.Pipeline, reg, dispatcher, telegram.Options{
		AuthUserID:    a.Config.Telegram.AuthUserID,
		MaxConcurrent: a.Config.Performance.MaxConcurrent,
	}, a.Logger), nil
}

func (a *App) NewHTTPServer() *httpapi.Server {
	return httpapi.New(a.Pipeline, httpapi.Options{
		Addr:           a.Config.HTTP.Addr,
		AllowedOrigins: a.Config.HTTP.AllowedOrigins,
	}, a.Logger)
}

// NewWatcher watches the inbox and turns link files into reports.
func (a *App) NewWatcher() (watcher.Watcher, error) {
	writer := report.New(a.Config.Paths.Output, a.Logger)
	proc := inbox.New(a.Pipeline, writer, a.Config.Paths.Archived, a.Logger)
	return watcher.New(a.Config.Paths.Inbox, linkFileExtensions, proc.Process, a.Logger, a.Config.Performance.MaxConcurrent)
}
