package telegram

import (
	"context"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/nguyentantai21042004/tubesum/internal/pipeline"
)

// messageSink shows pipeline progress by editing a single reply message.
type messageSink struct {
	api       API
	chatID    int64
	replyTo   int
	messageID int
	lastText  string
}

func newMessageSink(api API, chatID int64, replyTo int) *messageSink {
	return &messageSink{api: api, chatID: chatID, replyTo: replyTo}
}

func (s *messageSink) Update(ctx context.Context, p pipeline.Progress) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	parts := splitText(p.Text, maxMessageLength)
	if len(parts) == 0 {
		return nil
	}

	if err := s.show(parts[0]); err != nil {
		return err
	}
	for _, part := range parts[1:] {
		if _, err := s.api.Send(tgbotapi.NewMessage(s.chatID, part)); err != nil {
			return err
		}
	}
	return nil
}

// show sends the status message on first use and edits it afterwards.
func (s *messageSink) show(text string) error {
	if s.messageID == 0 {
		out := tgbotapi.NewMessage(s.chatID, text)
		out.ReplyToMessageID = s.replyTo
		sent, err := s.api.Send(out)
		if err != nil {
			return err
		}
		s.messageID = sent.MessageID
		s.lastText = text
		return nil
	}
	// Telegram rejects edits that do not change the text
	if text == s.lastText {
		return nil
	}
	if _, err := s.api.Request(tgbotapi.NewEditMessageText(s.chatID, s.messageID, text)); err != nil {
		return err
	}
	s.lastText = text
	return nil
}

// splitText cuts text into pieces of at most limit characters, preferring
// line breaks, then spaces.
func splitText(text string, limit int) []string {
	text = strings.TrimSpace(text)
	var parts []string
	for text != "" {
		if utf8.RuneCountInString(text) <= limit {
			parts = append(parts, text)
			break
		}

		cut := byteOffset(text, limit)
		head := text[:cut]
		if i := strings.LastIndex(head, "\n"); i > 0 {
			cut = i
		} else if i := strings.LastIndex(head, " "); i > 0 {
			cut = i
		}

		parts = append(parts, strings.TrimSpace(text[:cut]))
		text = strings.TrimSpace(text[cut:])
	}
	return parts
}

// byteOffset returns the byte index just past the first n runes of s.
func byteOffset(s string, n int) int {
	i := 0
	for count := 0; count < n && i < len(s); count++ {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return i
}
