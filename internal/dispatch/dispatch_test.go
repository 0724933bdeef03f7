package dispatch_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"filmlog/internal/dispatch"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDispatchFirstMatchWins(t *testing.T) {
	d := dispatch.New(discardLogger())
	var got string
	d.Handle(dispatch.KindMessage, dispatch.Command("list"), func(ctx context.Context, ev dispatch.Event) error {
		got = "list"
		return nil
	})
	d.Handle(dispatch.KindMessage, dispatch.Any(), func(ctx context.Context, ev dispatch.Event) error {
		got = "fallback"
		return nil
	})

	matched, err := d.Dispatch(context.Background(), dispatch.Event{Kind: dispatch.KindMessage, Text: "/list"})
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if !matched || got != "list" {
		t.Fatalf("expected list route, got %q (matched=%v)", got, matched)
	}

	got = ""
	matched, err = d.Dispatch(context.Background(), dispatch.Event{Kind: dispatch.KindMessage, Text: "посмотри Дюну"})
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if !matched || got != "fallback" {
		t.Fatalf("expected fallback route, got %q (matched=%v)", got, matched)
	}
}

func TestDispatchKindSeparation(t *testing.T) {
	d := dispatch.New(discardLogger())
	var kinds []dispatch.Kind
	d.Handle(dispatch.KindCallback, dispatch.Prefix("watched:"), func(ctx context.Context, ev dispatch.Event) error {
		kinds = append(kinds, ev.Kind)
		return nil
	})

	matched, err := d.Dispatch(context.Background(), dispatch.Event{Kind: dispatch.KindMessage, Text: "watched:5"})
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if matched {
		t.Fatal("message event should not hit callback route")
	}

	matched, err = d.Dispatch(context.Background(), dispatch.Event{Kind: dispatch.KindCallback, Text: "watched:5"})
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if !matched || len(kinds) != 1 {
		t.Fatalf("callback event should hit callback route, matched=%v", matched)
	}
}

func TestCommandPredicate(t *testing.T) {
	pred := dispatch.Command("watched")
	cases := []struct {
		text string
		want bool
	}{
		{"/watched", true},
		{"/watched bad", true},
		{"/watched@filmlog_bot bad", true},
		{"  /watched", true},
		{"/watchedx", false},
		{"watched", false},
		{"/list", false},
	}
	for _, tc := range cases {
		if got := pred(dispatch.Event{Kind: dispatch.KindMessage, Text: tc.text}); got != tc.want {
			t.Errorf("Command(%q) on %q = %v, want %v", "watched", tc.text, got, tc.want)
		}
	}
}

func TestCommandArgs(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"/watched bad", "bad"},
		{"/watched", ""},
		{"/watched   breaking bad  ", "breaking bad"},
	}
	for _, tc := range cases {
		if got := dispatch.CommandArgs(tc.text); got != tc.want {
			t.Errorf("CommandArgs(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}
