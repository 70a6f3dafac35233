package speech

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/tubesum/internal/logger"
	"github.com/nguyentantai21042004/tubesum/pkg/executor"
)

const blankAudioMarker = "[BLANK_AUDIO]"

type WhisperOptions struct {
	BinaryPath string
	ModelPath  string
	Language   string
	Prompt     string
	Threads    int
}

// WhisperRecognizer runs the whisper.cpp CLI on a WAV file.
type WhisperRecognizer struct {
	opts     WhisperOptions
	executor executor.Executor
	logger   logger.Logger
}

func NewWhisperRecognizer(opts WhisperOptions, exec executor.Executor, log logger.Logger) *WhisperRecognizer {
	if opts.BinaryPath == "" {
		opts.BinaryPath = "whisper-cli"
	}
	if opts.Language == "" {
		opts.Language = "auto"
	}
	if opts.Threads == 0 {
		opts.Threads = 4
	}
	return &WhisperRecognizer{opts: opts, executor: exec, logger: log}
}

// Recognize runs whisper.cpp inside the WAV's directory so it writes
// <base>.txt next to the input, reads it and always removes it.
func (w *WhisperRecognizer) Recognize(ctx context.Context, wavPath string) (string, error) {
	workDir, wavName := filepath.Split(wavPath)
	if workDir == "" {
		workDir = "."
	}
	outputPrefix := strings.TrimSuffix(wavName, filepath.Ext(wavName))
	txtPath := filepath.Join(workDir, outputPrefix+".txt")
	defer w.cleanupTempFile(ctx, txtPath)

	modelPath, err := filepath.Abs(w.opts.ModelPath)
	if err != nil {
		return "", &Error{Kind: ServiceUnavailable, Err: err}
	}

	// -otxt plain text output, -bo 5 best-of sampling
	args := []string{
		"-m", modelPath,
		"-f", wavName,
		"-otxt",
		"-l", w.opts.Language,
		"-t", strconv.Itoa(w.opts.Threads),
		"-bo", "5",
		"--output-file", outputPrefix,
	}
	if w.opts.Prompt != "" {
		args = append(args, "--prompt", w.opts.Prompt)
	}

	if _, err := w.executor.ExecuteInDir(ctx, workDir, w.opts.BinaryPath, args...); err != nil {
		return "", &Error{Kind: ServiceUnavailable, Err: err}
	}

	data, err := os.ReadFile(txtPath)
	if err != nil {
		return "", &Error{Kind: ServiceUnavailable, Err: err}
	}

	text := cleanTranscript(string(data))
	if text == "" {
		return "", &Error{Kind: UnintelligibleAudio, Err: errEmptyTranscript}
	}
	return text, nil
}

func cleanTranscript(raw string) string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(strings.ReplaceAll(line, blankAudioMarker, ""))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, " ")
}

func (w *WhisperRecognizer) cleanupTempFile(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil {
		if !os.IsNotExist(err) {
			w.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", path, err)
		}
		return
	}
	w.logger.Debug(ctx, "Cleaned up temp file: %s", path)
}
