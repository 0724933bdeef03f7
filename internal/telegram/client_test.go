package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGetUpdatesParsesEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/bottest-token/getUpdates") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req getUpdatesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Offset != 42 {
			t.Errorf("expected offset 42, got %d", req.Offset)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"result":[
			{"update_id":43,"message":{"message_id":7,"from":{"id":100},"chat":{"id":100},"text":"посмотри Дюну"}},
			{"update_id":44,"callback_query":{"id":"cb1","from":{"id":100},"data":"watched:5"}}
		]}`))
	}))
	defer server.Close()

	client, err := New("test-token", server.URL, 0)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	updates, err := client.GetUpdates(context.Background(), 42, 1)
	if err != nil {
		t.Fatalf("GetUpdates failed: %v", err)
	}
	if len(updates) != 2 {
		t.Fatalf("expected 2 updates, got %d", len(updates))
	}
	if updates[0].Message == nil || updates[0].Message.Text != "посмотри Дюну" {
		t.Fatalf("unexpected first update: %+v", updates[0])
	}
	if updates[1].CallbackQuery == nil || updates[1].CallbackQuery.Data != "watched:5" {
		t.Fatalf("unexpected second update: %+v", updates[1])
	}
}

func TestSendMessageIncludesMarkup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req sendMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.ChatID != 100 || req.Text != "Дюна (movie)" {
			t.Errorf("unexpected request: %+v", req)
		}
		if req.ReplyMarkup == nil || req.ReplyMarkup.InlineKeyboard[0][0].CallbackData != "watched:5" {
			t.Errorf("expected inline keyboard, got %+v", req.ReplyMarkup)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":9,"chat":{"id":100},"text":"Дюна (movie)"}}`))
	}))
	defer server.Close()

	client, err := New("test-token", server.URL, 0)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	markup := &InlineKeyboardMarkup{InlineKeyboard: [][]InlineKeyboardButton{{
		{Text: "Посмотрел", CallbackData: "watched:5"},
	}}}
	sent, err := client.SendMessage(context.Background(), 100, "Дюна (movie)", markup)
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if sent.MessageID != 9 {
		t.Fatalf("expected message id 9, got %d", sent.MessageID)
	}
}

func TestAPIErrorSurfacesDescription(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
	}))
	defer server.Close()

	client, err := New("test-token", server.URL, 0)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, err := client.SendMessage(context.Background(), 1, "hi", nil); err == nil || !strings.Contains(err.Error(), "chat not found") {
		t.Fatalf("expected API error with description, got %v", err)
	}
}

func TestNewRequiresToken(t *testing.T) {
	if _, err := New("  ", "", 0); err == nil {
		t.Fatal("expected error for empty token")
	}
}
