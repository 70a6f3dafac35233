package speech

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/nguyentantai21042004/tubesum/internal/gemini"
	"google.golang.org/genai"
)

const (
	noSpeechMarker = "NO_SPEECH"
	// inline request data is capped at 20 MB by the Gemini API
	maxInlineAudio = 20 << 20

	transcribePrompt = "Transcribe the speech in this audio verbatim, in its original language. " +
		"Reply with the transcript only. If there is no intelligible speech, reply with exactly " + noSpeechMarker + "."
)

// GeminiRecognizer sends the WAV inline to a Gemini model for transcription.
type GeminiRecognizer struct {
	client *gemini.Client
	model  string
}

func NewGeminiRecognizer(client *gemini.Client, model string) *GeminiRecognizer {
	return &GeminiRecognizer{client: client, model: model}
}

func (g *GeminiRecognizer) Recognize(ctx context.Context, wavPath string) (string, error) {
	data, err := os.ReadFile(wavPath)
	if err != nil {
		return "", &Error{Kind: ServiceUnavailable, Err: err}
	}
	if len(data) > maxInlineAudio {
		return "", &Error{Kind: ServiceUnavailable, Err: fmt.Errorf("audio is %d bytes, inline limit is %d", len(data), maxInlineAudio)}
	}

	parts := []*genai.Part{
		genai.NewPartFromText(transcribePrompt),
		genai.NewPartFromBytes(data, "audio/wav"),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	text, err := g.client.Generate(ctx, g.model, contents, nil)
	if err != nil {
		if errors.Is(err, gemini.ErrEmptyResponse) {
			return "", &Error{Kind: UnintelligibleAudio, Err: err}
		}
		return "", &Error{Kind: ServiceUnavailable, Err: err}
	}

	text = strings.TrimSpace(text)
	if text == "" || strings.Trim(text, ". ") == noSpeechMarker {
		return "", &Error{Kind: UnintelligibleAudio, Err: errEmptyTranscript}
	}
	return text, nil
}
