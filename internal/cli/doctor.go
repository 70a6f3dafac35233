package cli

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
)

func NewDoctorCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check prerequisites",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := deps.loadConfig()
			if err != nil {
				check(out, "Config", false, err.Error())
				return fmt.Errorf("some prerequisites are missing")
			}
			check(out, "Config", true, deps.ConfigPath)

			ok := true
			binaries := []struct{ name, path, hint string }{
				{"yt-dlp", cfg.Audio.BinaryPath, "install with: pip install yt-dlp"},
				{"ffmpeg", cfg.FFmpeg.BinaryPath, "install ffmpeg from your package manager"},
			}
			if cfg.Speech.Backend == "whisper" {
				binaries = append(binaries, struct{ name, path, hint string }{"whisper.cpp", cfg.Whisper.BinaryPath, "build whisper.cpp and set whisper.binary_path"})
			}
			for _, b := range binaries {
				if p, err := exec.LookPath(b.path); err != nil {
					check(out, b.name, false, "not found, "+b.hint)
					ok = false
				} else {
					check(out, b.name, true, p)
				}
			}

			if cfg.Speech.Backend == "whisper" {
				if _, err := os.Stat(cfg.Whisper.ModelPath); err != nil {
					check(out, "Whisper model", false, err.Error())
					ok = false
				} else {
					check(out, "Whisper model", true, cfg.Whisper.ModelPath)
				}
			}

			if n := len(cfg.Gemini.APIKeys); n > 0 {
				check(out, "Gemini API keys", true, fmt.Sprintf("%d configured", n))
			} else {
				check(out, "Gemini API keys", false, "not set. Set TUBESUM_GEMINI_API_KEYS or gemini.api_keys")
				ok = false
			}

			if cfg.Telegram.Token != "" {
				check(out, "Telegram token", true, "configured")
			} else {
				check(out, "Telegram token", false, "not set, only needed for the bot command")
			}

			check(out, "Registry", true, cfg.Registry.Driver)

			if !ok {
				return fmt.Errorf("some prerequisites are missing")
			}
			fmt.Fprintln(out, "\nAll prerequisites met.")
			return nil
		},
	}
}

func check(w io.Writer, name string, ok bool, detail string) {
	mark := "ok "
	if !ok {
		mark = "!! "
	}
	fmt.Fprintf(w, "%s %-16s %s\n", mark, name, detail)
}
