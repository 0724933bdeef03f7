package bot_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"filmlog/internal/bot"
	"filmlog/internal/telegram"
	"filmlog/internal/testsupport"
	"filmlog/internal/watchlist"
)

type sentMessage struct {
	chatID int64
	text   string
	markup *telegram.InlineKeyboardMarkup
}

type fakeAPI struct {
	mu       sync.Mutex
	sent     []sentMessage
	edited   []sentMessage
	answered []string
}

func (f *fakeAPI) GetUpdates(ctx context.Context, offset int64, timeoutSeconds int) ([]telegram.Update, error) {
	return nil, nil
}

func (f *fakeAPI) SendMessage(ctx context.Context, chatID int64, text string, markup *telegram.InlineKeyboardMarkup) (*telegram.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMessage{chatID: chatID, text: text, markup: markup})
	return &telegram.Message{MessageID: int64(len(f.sent)), Chat: telegram.Chat{ID: chatID}, Text: text}, nil
}

func (f *fakeAPI) EditMessageText(ctx context.Context, chatID, messageID int64, text string, markup *telegram.InlineKeyboardMarkup) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edited = append(f.edited, sentMessage{chatID: chatID, text: text, markup: markup})
	return nil
}

func (f *fakeAPI) AnswerCallbackQuery(ctx context.Context, callbackID, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.answered = append(f.answered, text)
	return nil
}

type fakeIngestor struct {
	added []string
	err   error
}

func (f fakeIngestor) Ingest(ctx context.Context, userID int64, text string) ([]string, error) {
	return f.added, f.err
}

func newTestBot(t *testing.T, api *fakeAPI, ingestor bot.Ingestor) (*bot.Bot, *watchlist.Store) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return bot.New(api, ingestor, store, nil, logger), store
}

func messageUpdate(userID int64, text string) telegram.Update {
	return telegram.Update{
		UpdateID: 1,
		Message: &telegram.Message{
			MessageID: 10,
			From:      &telegram.User{ID: userID},
			Chat:      telegram.Chat{ID: userID},
			Text:      text,
		},
	}
}

func TestPlainMessageReportsAdded(t *testing.T) {
	api := &fakeAPI{}
	b, _ := newTestBot(t, api, fakeIngestor{added: []string{"Дюна", "Fargo"}})

	if err := b.HandleUpdate(context.Background(), messageUpdate(1, "посмотри Дюну и Фарго")); err != nil {
		t.Fatalf("HandleUpdate failed: %v", err)
	}
	if len(api.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(api.sent))
	}
	if api.sent[0].text != "Добавил в список: Дюна, Fargo" {
		t.Fatalf("unexpected reply %q", api.sent[0].text)
	}
}

func TestCaptionedMediaFeedsIngest(t *testing.T) {
	api := &fakeAPI{}
	b, _ := newTestBot(t, api, fakeIngestor{added: []string{"Интерстеллар"}})

	update := telegram.Update{
		UpdateID: 1,
		Message: &telegram.Message{
			MessageID: 10,
			From:      &telegram.User{ID: 1},
			Chat:      telegram.Chat{ID: 1},
			Caption:   "посмотри «Интерстеллар»",
		},
	}
	if err := b.HandleUpdate(context.Background(), update); err != nil {
		t.Fatalf("HandleUpdate failed: %v", err)
	}
	if len(api.sent) != 1 || api.sent[0].text != "Добавил в список: Интерстеллар" {
		t.Fatalf("expected caption to reach the pipeline, got %v", api.sent)
	}
}

func TestPlainMessageWithNoMatchesStaysSilent(t *testing.T) {
	api := &fakeAPI{}
	b, _ := newTestBot(t, api, fakeIngestor{})

	if err := b.HandleUpdate(context.Background(), messageUpdate(1, "как дела?")); err != nil {
		t.Fatalf("HandleUpdate failed: %v", err)
	}
	if len(api.sent) != 0 {
		t.Fatalf("expected silence, got %v", api.sent)
	}
}

func TestListSendsOneMessagePerEntry(t *testing.T) {
	api := &fakeAPI{}
	b, store := newTestBot(t, api, fakeIngestor{})
	testsupport.MustAdd(t, store, 1, 100, "Дюна", "movie")
	testsupport.MustAdd(t, store, 1, 101, "Severance", "series")

	if err := b.HandleUpdate(context.Background(), messageUpdate(1, "/list")); err != nil {
		t.Fatalf("HandleUpdate failed: %v", err)
	}
	if len(api.sent) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(api.sent))
	}
	for _, msg := range api.sent {
		if msg.markup == nil || len(msg.markup.InlineKeyboard) != 1 {
			t.Fatalf("expected inline keyboard on %q", msg.text)
		}
		data := msg.markup.InlineKeyboard[0][0].CallbackData
		if !strings.HasPrefix(data, "watched:") {
			t.Fatalf("unexpected callback data %q", data)
		}
	}
	if !strings.Contains(api.sent[0].text, "Severance") || !strings.Contains(api.sent[0].text, "сериал") {
		t.Fatalf("expected newest entry first with kind label, got %q", api.sent[0].text)
	}
}

func TestListEmpty(t *testing.T) {
	api := &fakeAPI{}
	b, _ := newTestBot(t, api, fakeIngestor{})

	if err := b.HandleUpdate(context.Background(), messageUpdate(1, "/list")); err != nil {
		t.Fatalf("HandleUpdate failed: %v", err)
	}
	if len(api.sent) != 1 || api.sent[0].text != "Список пуст." {
		t.Fatalf("expected empty-list reply, got %v", api.sent)
	}
}

func TestWatchedCommandNotFound(t *testing.T) {
	api := &fakeAPI{}
	b, _ := newTestBot(t, api, fakeIngestor{})

	if err := b.HandleUpdate(context.Background(), messageUpdate(1, "/watched xyz123")); err != nil {
		t.Fatalf("HandleUpdate failed: %v", err)
	}
	if len(api.sent) != 1 || !strings.Contains(api.sent[0].text, "Не нашёл") {
		t.Fatalf("expected not-found reply, got %v", api.sent)
	}
}

func TestWatchedCommandMarksMatches(t *testing.T) {
	api := &fakeAPI{}
	b, store := newTestBot(t, api, fakeIngestor{})
	testsupport.MustAdd(t, store, 1, 100, "Breaking Bad", "series")

	if err := b.HandleUpdate(context.Background(), messageUpdate(1, "/watched bad")); err != nil {
		t.Fatalf("HandleUpdate failed: %v", err)
	}
	if len(api.sent) != 1 || !strings.Contains(api.sent[0].text, "Breaking Bad") {
		t.Fatalf("expected confirmation, got %v", api.sent)
	}

	entries, err := store.ListUnwatched(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListUnwatched failed: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("entry should be watched, got %v", entries)
	}
}

func TestWatchedCallbackMarksAndEdits(t *testing.T) {
	api := &fakeAPI{}
	b, store := newTestBot(t, api, fakeIngestor{})
	testsupport.MustAdd(t, store, 1, 100, "Дюна", "movie")
	entries, err := store.ListUnwatched(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListUnwatched failed: %v", err)
	}
	id := entries[0].ID

	update := telegram.Update{
		UpdateID: 2,
		CallbackQuery: &telegram.CallbackQuery{
			ID:      "cb1",
			From:    telegram.User{ID: 1},
			Data:    fmt.Sprintf("watched:%d", id),
			Message: &telegram.Message{MessageID: 11, Chat: telegram.Chat{ID: 1}},
		},
	}
	if err := b.HandleUpdate(context.Background(), update); err != nil {
		t.Fatalf("HandleUpdate failed: %v", err)
	}

	if len(api.answered) != 1 || api.answered[0] != "Отметил просмотренным." {
		t.Fatalf("unexpected callback answer %v", api.answered)
	}
	if len(api.edited) != 1 || !strings.Contains(api.edited[0].text, "просмотрено") {
		t.Fatalf("expected edited message, got %v", api.edited)
	}

	entry, err := store.GetByID(context.Background(), 1, id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !entry.Watched {
		t.Fatal("entry should be watched")
	}
}

func TestWatchedCallbackRejectsOtherUsers(t *testing.T) {
	api := &fakeAPI{}
	b, store := newTestBot(t, api, fakeIngestor{})
	testsupport.MustAdd(t, store, 1, 100, "Дюна", "movie")
	entries, err := store.ListUnwatched(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListUnwatched failed: %v", err)
	}
	id := entries[0].ID

	update := telegram.Update{
		UpdateID: 3,
		CallbackQuery: &telegram.CallbackQuery{
			ID:   "cb2",
			From: telegram.User{ID: 2},
			Data: fmt.Sprintf("watched:%d", id),
		},
	}
	if err := b.HandleUpdate(context.Background(), update); err != nil {
		t.Fatalf("HandleUpdate failed: %v", err)
	}
	if len(api.answered) != 1 || api.answered[0] != "Запись не найдена." {
		t.Fatalf("unexpected answer %v", api.answered)
	}

	entry, err := store.GetByID(context.Background(), 1, id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if entry.Watched {
		t.Fatal("other user must not mark the entry")
	}
}
