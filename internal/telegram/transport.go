package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/nguyentantai21042004/tubesum/internal/broadcast"
)

// media is the broadcast payload: either a text message's buttons or a
// message to copy.
type media struct {
	fromChatID int64
	messageID  int
	markup     *tgbotapi.InlineKeyboardMarkup
}

type transport struct {
	api API
}

// NewTransport delivers broadcasts through the bot.
func NewTransport(api API) broadcast.Transport {
	return &transport{api: api}
}

func (t *transport) DisplayName(ctx context.Context, recipient int64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	chat, err := t.api.GetChat(tgbotapi.ChatInfoConfig{ChatConfig: tgbotapi.ChatConfig{ChatID: recipient}})
	if err != nil {
		return "", err
	}
	switch {
	case chat.FirstName != "":
		return chat.FirstName, nil
	case chat.Title != "":
		return chat.Title, nil
	default:
		return chat.UserName, nil
	}
}

func (t *transport) Send(ctx context.Context, recipient int64, text string, payload any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m, _ := payload.(*media)
	if m != nil && m.messageID != 0 {
		cp := tgbotapi.NewCopyMessage(recipient, m.fromChatID, m.messageID)
		cp.Caption = text
		if m.markup != nil {
			cp.ReplyMarkup = *m.markup
		}
		_, err := t.api.CopyMessage(cp)
		return err
	}

	if text == "" {
		return errors.New("nothing to send")
	}
	out := tgbotapi.NewMessage(recipient, text)
	out.DisableWebPagePreview = true
	if m != nil && m.markup != nil {
		out.ReplyMarkup = *m.markup
	}
	_, err := t.api.Send(out)
	return err
}
