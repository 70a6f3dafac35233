package telegram

import (
	"context"
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/nguyentantai21042004/tubesum/internal/broadcast"
	"github.com/nguyentantai21042004/tubesum/internal/logger"
	"github.com/nguyentantai21042004/tubesum/internal/video"
)

func (b *implBot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	var wg sync.WaitGroup
	defer wg.Wait()

	b.logger.Info(ctx, "Bot started, max %d concurrent updates", cap(b.sem.ch))

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info(ctx, "Bot stopping")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if err := b.sem.acquire(ctx); err != nil {
				b.api.StopReceivingUpdates()
				return nil
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer b.sem.release()
				b.HandleUpdate(ctx, update)
			}()
		}
	}
}

func (b *implBot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return
	}
	ctx = logger.WithRequestID(ctx, uuid.NewString())

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			b.handleStart(ctx, msg)
			return
		case "users":
			if b.authorized(msg) {
				b.handleUsers(ctx, msg)
				return
			}
		case "bcast":
			if b.authorized(msg) {
				b.handleBroadcast(ctx, msg)
				return
			}
		}
	}

	ref, ok := video.Detect(msg.Text)
	if !ok {
		b.reply(ctx, msg, msgInvalidLink)
		return
	}
	b.handleLink(ctx, msg, ref)
}

func (b *implBot) authorized(msg *tgbotapi.Message) bool {
	return msg.From != nil && b.opts.AuthUserID != 0 && msg.From.ID == b.opts.AuthUserID
}

func (b *implBot) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	b.reply(ctx, msg, msgWelcome)

	// Insert ignores known ids; the lookup only avoids a write per /start
	known, err := b.registry.Contains(ctx, msg.Chat.ID)
	if err != nil {
		b.logger.Error(ctx, "Lookup user %d: %v", msg.Chat.ID, err)
		return
	}
	if known {
		return
	}
	if err := b.registry.Insert(ctx, msg.Chat.ID); err != nil {
		b.logger.Error(ctx, "Register user %d: %v", msg.Chat.ID, err)
		return
	}
	b.logger.Info(ctx, "Registered user %d", msg.Chat.ID)
}

func (b *implBot) handleUsers(ctx context.Context, msg *tgbotapi.Message) {
	ids, err := b.registry.All(ctx)
	if err != nil {
		b.logger.Error(ctx, "List users: %v", err)
		return
	}
	b.reply(ctx, msg, fmt.Sprintf(msgTotalUsers, len(ids)))
}

func (b *implBot) handleBroadcast(ctx context.Context, msg *tgbotapi.Message) {
	source := msg.ReplyToMessage
	if source == nil {
		b.reply(ctx, msg, msgBcastUsage)
		return
	}

	status, err := b.api.Send(tgbotapi.NewMessage(msg.Chat.ID, msgBcastProgress))
	if err != nil {
		b.logger.Error(ctx, "Send broadcast status: %v", err)
		return
	}

	ids, err := b.registry.All(ctx)
	if err != nil {
		b.logger.Error(ctx, "List users for broadcast: %v", err)
		return
	}

	outcome := b.dispatcher.Broadcast(ctx, broadcastMessage(source), ids)

	edit := tgbotapi.NewEditMessageText(msg.Chat.ID, status.MessageID,
		fmt.Sprintf(msgBcastCompleted, outcome.Delivered, outcome.Failed))
	if _, err := b.api.Request(edit); err != nil {
		b.logger.Error(ctx, "Edit broadcast status: %v", err)
	}
}

func (b *implBot) handleLink(ctx context.Context, msg *tgbotapi.Message, ref video.Reference) {
	b.logger.Info(ctx, "Received URL from %d: %s", msg.Chat.ID, ref.URL)

	sink := newMessageSink(b.api, msg.Chat.ID, msg.MessageID)
	if _, err := b.pipeline.Run(ctx, ref, sink); err != nil {
		// already shown to the user by the sink
		b.logger.Warn(ctx, "Summary for %s failed: %v", ref.URL, err)
	}
}

func (b *implBot) reply(ctx context.Context, msg *tgbotapi.Message, text string) {
	out := tgbotapi.NewMessage(msg.Chat.ID, text)
	out.ReplyToMessageID = msg.MessageID
	if _, err := b.api.Send(out); err != nil {
		b.logger.Error(ctx, "Reply to %d: %v", msg.Chat.ID, err)
	}
}

// broadcastMessage keeps text messages as text and copies anything with media.
func broadcastMessage(source *tgbotapi.Message) broadcast.Message {
	if source.Text != "" {
		return broadcast.Message{
			Template: source.Text,
			Media:    &media{markup: source.ReplyMarkup},
		}
	}
	return broadcast.Message{
		Template: source.Caption,
		Media: &media{
			fromChatID: source.Chat.ID,
			messageID:  source.MessageID,
			markup:     source.ReplyMarkup,
		},
	}
}
