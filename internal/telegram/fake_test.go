package telegram

import (
	"context"
	"errors"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/nguyentantai21042004/tubesum/internal/broadcast"
	"github.com/nguyentantai21042004/tubesum/internal/pipeline"
	"github.com/nguyentantai21042004/tubesum/internal/video"
)

type fakeAPI struct {
	mu      sync.Mutex
	nextID  int
	sent    []tgbotapi.MessageConfig
	edits   []tgbotapi.EditMessageTextConfig
	copies  []tgbotapi.CopyMessageConfig
	chats   map[int64]tgbotapi.Chat
	sendErr error
	updates chan tgbotapi.Update
	stopped bool
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{nextID: 100, chats: map[int64]tgbotapi.Chat{}, updates: make(chan tgbotapi.Update)}
}

func (f *fakeAPI) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return f.updates
}

func (f *fakeAPI) StopReceivingUpdates() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return tgbotapi.Message{}, f.sendErr
	}
	if m, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, m)
	}
	f.nextID++
	return tgbotapi.Message{MessageID: f.nextID}, nil
}

func (f *fakeAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e, ok := c.(tgbotapi.EditMessageTextConfig); ok {
		f.edits = append(f.edits, e)
	}
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeAPI) GetChat(config tgbotapi.ChatInfoConfig) (tgbotapi.Chat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	chat, ok := f.chats[config.ChatID]
	if !ok {
		return tgbotapi.Chat{}, errors.New("Bad Request: chat not found")
	}
	return chat, nil
}

func (f *fakeAPI) CopyMessage(config tgbotapi.CopyMessageConfig) (tgbotapi.MessageID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.copies = append(f.copies, config)
	f.nextID++
	return tgbotapi.MessageID{MessageID: f.nextID}, nil
}

func (f *fakeAPI) texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, m := range f.sent {
		out = append(out, m.Text)
	}
	return out
}

// fakePipeline replays a fixed list of progress updates.
type fakePipeline struct {
	updates []pipeline.Progress
	err     error
	ref     video.Reference
}

func (f *fakePipeline) Run(ctx context.Context, ref video.Reference, sink pipeline.ProgressSink) (string, error) {
	f.ref = ref
	var last string
	for _, u := range f.updates {
		_ = sink.Update(ctx, u)
		last = u.Text
	}
	return last, f.err
}

type fakeDispatcher struct {
	msg        broadcast.Message
	recipients []int64
	outcome    broadcast.Outcome
}

func (f *fakeDispatcher) Broadcast(ctx context.Context, msg broadcast.Message, recipients []int64) broadcast.Outcome {
	f.msg = msg
	f.recipients = recipients
	return f.outcome
}

func command(chatID, fromID int64, text string) tgbotapi.Update {
	cmd := text
	for i, r := range text {
		if r == ' ' {
			cmd = text[:i]
			break
		}
	}
	return tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 1,
		From:      &tgbotapi.User{ID: fromID},
		Chat:      &tgbotapi.Chat{ID: chatID},
		Text:      text,
		Entities:  []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd)}},
	}}
}

func textMessage(chatID int64, text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 1,
		From:      &tgbotapi.User{ID: chatID},
		Chat:      &tgbotapi.Chat{ID: chatID},
		Text:      text,
	}}
}
