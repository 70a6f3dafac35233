package config

import (
	"fmt"
	"time"
)

type Config struct {
	Telegram    TelegramConfig    `yaml:"telegram"`
	HTTP        HTTPConfig        `yaml:"http"`
	Captions    CaptionsConfig    `yaml:"captions"`
	Audio       AudioConfig       `yaml:"audio"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	Speech      SpeechConfig      `yaml:"speech"`
	Whisper     WhisperConfig     `yaml:"whisper"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	Summary     SummaryConfig     `yaml:"summary"`
	Registry    RegistryConfig    `yaml:"registry"`
	Broadcast   BroadcastConfig   `yaml:"broadcast"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Timeouts    TimeoutsConfig    `yaml:"timeouts"`
}

type TelegramConfig struct {
	Token      string `yaml:"token"`
	AuthUserID int64  `yaml:"auth_user_id"`
}

type HTTPConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type CaptionsConfig struct {
	Languages []string `yaml:"languages"`
}

type AudioConfig struct {
	BinaryPath  string `yaml:"binary_path"`
	CookiesFile string `yaml:"cookies_file"`
	Format      string `yaml:"format"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
	SampleRate int    `yaml:"sample_rate"`
}

type SpeechConfig struct {
	Backend     string        `yaml:"backend"` // whisper | gemini
	Calibration time.Duration `yaml:"calibration"`
	MinEnergy   float64       `yaml:"min_energy"`
}

type WhisperConfig struct {
	ModelPath  string `yaml:"model_path"`
	BinaryPath string `yaml:"binary_path"`
	Language   string `yaml:"language"`
	Prompt     string `yaml:"prompt"`
	Threads    int    `yaml:"threads"`
}

type GeminiConfig struct {
	APIKeys     []string `yaml:"api_keys"`
	Model       string   `yaml:"model"`
	SpeechModel string   `yaml:"speech_model"`
}

type SummaryConfig struct {
	// Instructions overrides the built-in system guidance when set.
	Instructions string `yaml:"instructions"`
}

type RegistryConfig struct {
	Driver string `yaml:"driver"` // memory | postgres | sqlite | redis
	DSN    string `yaml:"dsn"`
}

type BroadcastConfig struct {
	Parallelism   int     `yaml:"parallelism"`
	RatePerSecond float64 `yaml:"rate_per_second"`
}

type PathsConfig struct {
	Temp     string `yaml:"temp"`
	Inbox    string `yaml:"inbox"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

// TimeoutsConfig bounds each external call of a pipeline run.
type TimeoutsConfig struct {
	Captions   time.Duration `yaml:"captions"`
	Download   time.Duration `yaml:"download"`
	Convert    time.Duration `yaml:"convert"`
	Recognize  time.Duration `yaml:"recognize"`
	Summarize  time.Duration `yaml:"summarize"`
	SendUpdate time.Duration `yaml:"send_update"`
}

// DefaultLanguages is the caption language preference, first available wins.
var DefaultLanguages = []string{
	"en", "ja", "ko", "de", "fr", "ru", "it", "es", "pl", "uk", "nl",
	"zh-TW", "zh-CN", "zh-Hant", "zh-Hans",
}

func (c *Config) Validate() error {
	switch c.Speech.Backend {
	case "":
		c.Speech.Backend = "whisper"
	case "whisper", "gemini":
	default:
		return fmt.Errorf("speech.backend must be whisper or gemini, got %q", c.Speech.Backend)
	}
	if c.Speech.Backend == "whisper" && c.Whisper.ModelPath == "" {
		return fmt.Errorf("whisper.model_path is required")
	}
	if c.Speech.Backend == "gemini" && len(c.Gemini.APIKeys) == 0 {
		return fmt.Errorf("gemini.api_keys is required for the gemini speech backend")
	}

	switch c.Registry.Driver {
	case "":
		c.Registry.Driver = "memory"
	case "memory":
	case "postgres", "sqlite", "redis":
		if c.Registry.DSN == "" {
			return fmt.Errorf("registry.dsn is required for driver %s", c.Registry.Driver)
		}
	default:
		return fmt.Errorf("unknown registry.driver %q", c.Registry.Driver)
	}

	if c.Broadcast.Parallelism < 0 {
		return fmt.Errorf("broadcast.parallelism must not be negative")
	}

	if len(c.Captions.Languages) == 0 {
		c.Captions.Languages = append([]string(nil), DefaultLanguages...)
	}
	if c.Audio.BinaryPath == "" {
		c.Audio.BinaryPath = "yt-dlp"
	}
	if c.Audio.Format == "" {
		c.Audio.Format = "bestaudio"
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.SampleRate == 0 {
		c.FFmpeg.SampleRate = 16000
	}
	if c.Speech.Calibration == 0 {
		c.Speech.Calibration = time.Second
	}
	if c.Speech.MinEnergy == 0 {
		c.Speech.MinEnergy = 10
	}
	if c.Whisper.BinaryPath == "" {
		c.Whisper.BinaryPath = "whisper-cli"
	}
	if c.Whisper.Language == "" {
		c.Whisper.Language = "auto"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 4
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Gemini.SpeechModel == "" {
		c.Gemini.SpeechModel = c.Gemini.Model
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
	if len(c.HTTP.AllowedOrigins) == 0 {
		c.HTTP.AllowedOrigins = []string{"*"}
	}
	if c.Broadcast.Parallelism == 0 {
		c.Broadcast.Parallelism = 1
	}
	if c.Broadcast.RatePerSecond == 0 {
		c.Broadcast.RatePerSecond = 25
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Paths.Inbox == "" {
		c.Paths.Inbox = "data/inbox"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "data/output"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 4
	}
	if c.Timeouts.Captions == 0 {
		c.Timeouts.Captions = 30 * time.Second
	}
	if c.Timeouts.Download == 0 {
		c.Timeouts.Download = 10 * time.Minute
	}
	if c.Timeouts.Convert == 0 {
		c.Timeouts.Convert = 5 * time.Minute
	}
	if c.Timeouts.Recognize == 0 {
		c.Timeouts.Recognize = 15 * time.Minute
	}
	if c.Timeouts.Summarize == 0 {
		c.Timeouts.Summarize = 2 * time.Minute
	}
	if c.Timeouts.SendUpdate == 0 {
		c.Timeouts.SendUpdate = 10 * time.Second
	}

	return nil
}

// ValidateTelegram checks the settings only the chat front end needs.
func (c *Config) ValidateTelegram() error {
	if c.Telegram.Token == "" {
		return fmt.Errorf("telegram.token is required")
	}
	return nil
}
