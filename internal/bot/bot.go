// Package bot wires the Telegram transport to the ingestion pipeline and
// watchlist store.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"filmlog/internal/dispatch"
	"filmlog/internal/notifications"
	"filmlog/internal/telegram"
	"filmlog/internal/watchlist"
)

const watchedCallbackPrefix = "watched:"

// API is the slice of the Telegram client the bot drives.
type API interface {
	GetUpdates(ctx context.Context, offset int64, timeoutSeconds int) ([]telegram.Update, error)
	SendMessage(ctx context.Context, chatID int64, text string, markup *telegram.InlineKeyboardMarkup) (*telegram.Message, error)
	EditMessageText(ctx context.Context, chatID, messageID int64, text string, markup *telegram.InlineKeyboardMarkup) error
	AnswerCallbackQuery(ctx context.Context, callbackID, text string) error
}

// Ingestor runs the extraction and resolution pipeline for one message.
type Ingestor interface {
	Ingest(ctx context.Context, userID int64, text string) ([]string, error)
}

// Store is the watchlist surface the handlers read and update.
type Store interface {
	ListUnwatched(ctx context.Context, userID int64) ([]watchlist.Entry, error)
	GetByID(ctx context.Context, userID, id int64) (*watchlist.Entry, error)
	MarkWatchedByID(ctx context.Context, userID, id int64) error
	MarkWatchedByTitleFragment(ctx context.Context, userID int64, fragment string) ([]string, error)
}

// Bot routes incoming updates to handlers.
type Bot struct {
	api        API
	pipeline   Ingestor
	store      Store
	notifier   notifications.Service
	dispatcher *dispatch.Dispatcher
	logger     *slog.Logger
}

// New builds the bot and registers its route table.
func New(api API, pipeline Ingestor, store Store, notifier notifications.Service, logger *slog.Logger) *Bot {
	if logger == nil {
		logger = slog.Default()
	}
	b := &Bot{
		api:        api,
		pipeline:   pipeline,
		store:      store,
		notifier:   notifier,
		dispatcher: dispatch.New(logger),
		logger:     logger,
	}

	b.dispatcher.Handle(dispatch.KindMessage, dispatch.Command("start"), b.handleStart)
	b.dispatcher.Handle(dispatch.KindMessage, dispatch.Command("list"), b.handleList)
	b.dispatcher.Handle(dispatch.KindMessage, dispatch.Command("watched"), b.handleWatched)
	b.dispatcher.Handle(dispatch.KindCallback, dispatch.Prefix(watchedCallbackPrefix), b.handleWatchedCallback)
	b.dispatcher.Handle(dispatch.KindMessage, dispatch.Any(), b.handleIngest)

	return b
}

// HandleUpdate converts one transport update into an event and dispatches it.
// Unroutable updates (joins, edits, media without text or caption) are
// dropped.
func (b *Bot) HandleUpdate(ctx context.Context, update telegram.Update) error {
	ev, ok := eventFromUpdate(update)
	if !ok {
		return nil
	}
	_, err := b.dispatcher.Dispatch(ctx, ev)
	return err
}

func eventFromUpdate(update telegram.Update) (dispatch.Event, bool) {
	switch {
	case update.Message != nil && update.Message.From != nil && messageText(update.Message) != "":
		return dispatch.Event{
			Kind:      dispatch.KindMessage,
			UserID:    update.Message.From.ID,
			ChatID:    update.Message.Chat.ID,
			MessageID: update.Message.MessageID,
			Text:      messageText(update.Message),
		}, true
	case update.CallbackQuery != nil:
		ev := dispatch.Event{
			Kind:       dispatch.KindCallback,
			UserID:     update.CallbackQuery.From.ID,
			Text:       update.CallbackQuery.Data,
			CallbackID: update.CallbackQuery.ID,
		}
		if msg := update.CallbackQuery.Message; msg != nil {
			ev.ChatID = msg.Chat.ID
			ev.MessageID = msg.MessageID
		}
		return ev, true
	default:
		return dispatch.Event{}, false
	}
}

// messageText prefers the text body and falls back to the media caption, so
// a photo shared with a title in its caption still reaches the pipeline.
func messageText(msg *telegram.Message) string {
	if text := strings.TrimSpace(msg.Text); text != "" {
		return msg.Text
	}
	if strings.TrimSpace(msg.Caption) != "" {
		return msg.Caption
	}
	return ""
}

func (b *Bot) handleStart(ctx context.Context, ev dispatch.Event) error {
	text := "Привет! Пиши мне про фильмы и сериалы, я буду вести твой список.\n" +
		"/list покажет непросмотренное, /watched <название> отметит просмотренным."
	_, err := b.api.SendMessage(ctx, ev.ChatID, text, nil)
	return err
}

func (b *Bot) handleIngest(ctx context.Context, ev dispatch.Event) error {
	added, err := b.pipeline.Ingest(ctx, ev.UserID, ev.Text)
	if err != nil {
		b.logger.Error("ingest failed", "user_id", ev.UserID, "error", err)
		if b.notifier != nil {
			_ = b.notifier.NotifyError(ctx, err, "ingest")
		}
		return err
	}
	if len(added) == 0 {
		return nil
	}

	if b.notifier != nil {
		_ = b.notifier.NotifyAdded(ctx, ev.UserID, added)
	}
	_, err = b.api.SendMessage(ctx, ev.ChatID, "Добавил в список: "+strings.Join(added, ", "), nil)
	return err
}

func (b *Bot) handleList(ctx context.Context, ev dispatch.Event) error {
	entries, err := b.store.ListUnwatched(ctx, ev.UserID)
	if err != nil {
		return fmt.Errorf("list unwatched: %w", err)
	}
	if len(entries) == 0 {
		_, err := b.api.SendMessage(ctx, ev.ChatID, "Список пуст.", nil)
		return err
	}

	for _, entry := range entries {
		markup := &telegram.InlineKeyboardMarkup{InlineKeyboard: [][]telegram.InlineKeyboardButton{{
			{Text: "Посмотрел ✅", CallbackData: watchedCallbackPrefix + strconv.FormatInt(entry.ID, 10)},
		}}}
		if _, err := b.api.SendMessage(ctx, ev.ChatID, formatEntry(entry), markup); err != nil {
			return fmt.Errorf("send entry %d: %w", entry.ID, err)
		}
	}
	return nil
}

func (b *Bot) handleWatched(ctx context.Context, ev dispatch.Event) error {
	fragment := dispatch.CommandArgs(ev.Text)
	if fragment == "" {
		_, err := b.api.SendMessage(ctx, ev.ChatID, "Использование: /watched <часть названия>", nil)
		return err
	}

	titles, err := b.store.MarkWatchedByTitleFragment(ctx, ev.UserID, fragment)
	if errors.Is(err, watchlist.ErrNotFound) {
		_, sendErr := b.api.SendMessage(ctx, ev.ChatID, fmt.Sprintf("Не нашёл %q в твоём списке.", fragment), nil)
		return sendErr
	}
	if err != nil {
		return fmt.Errorf("mark watched by fragment: %w", err)
	}

	_, err = b.api.SendMessage(ctx, ev.ChatID, "Отметил просмотренным: "+strings.Join(titles, ", "), nil)
	return err
}

func (b *Bot) handleWatchedCallback(ctx context.Context, ev dispatch.Event) error {
	id, err := strconv.ParseInt(strings.TrimPrefix(ev.Text, watchedCallbackPrefix), 10, 64)
	if err != nil {
		return b.api.AnswerCallbackQuery(ctx, ev.CallbackID, "Непонятная кнопка.")
	}

	err = b.store.MarkWatchedByID(ctx, ev.UserID, id)
	if errors.Is(err, watchlist.ErrNotFound) {
		return b.api.AnswerCallbackQuery(ctx, ev.CallbackID, "Запись не найдена.")
	}
	if err != nil {
		return fmt.Errorf("mark watched %d: %w", id, err)
	}

	if ev.ChatID != 0 && ev.MessageID != 0 {
		if entry, getErr := b.store.GetByID(ctx, ev.UserID, id); getErr == nil {
			_ = b.api.EditMessageText(ctx, ev.ChatID, ev.MessageID, formatEntry(*entry)+"\n✅ просмотрено", nil)
		}
	}
	return b.api.AnswerCallbackQuery(ctx, ev.CallbackID, "Отметил просмотренным.")
}

func formatEntry(entry watchlist.Entry) string {
	kind := "фильм"
	if entry.MediaKind == "series" {
		kind = "сериал"
	}
	text := fmt.Sprintf("%s (%s)", entry.Title, kind)
	if synopsis := strings.TrimSpace(entry.Synopsis); synopsis != "" {
		text += "\n" + truncate(synopsis, 200)
	}
	return text
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return strings.TrimSpace(string(runes[:limit])) + "…"
}
