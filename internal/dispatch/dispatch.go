// Package dispatch routes incoming chat events to handlers by event kind
// and predicate, in registration order.
package dispatch

import (
	"context"
	"log/slog"
	"strings"
)

// Kind tags the transport event class a route applies to.
type Kind string

const (
	KindMessage  Kind = "message"
	KindCallback Kind = "callback"
)

// Event is a transport-neutral view of one incoming update.
type Event struct {
	Kind       Kind
	UserID     int64
	ChatID     int64
	MessageID  int64
	Text       string
	CallbackID string
}

// Handler processes one matched event.
type Handler func(ctx context.Context, ev Event) error

// Predicate decides whether a route accepts an event.
type Predicate func(ev Event) bool

type route struct {
	kind   Kind
	match  Predicate
	handle Handler
}

// Dispatcher holds an ordered route table. The first route whose kind and
// predicate both match wins.
type Dispatcher struct {
	routes []route
	logger *slog.Logger
}

// New creates an empty dispatcher.
func New(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{logger: logger}
}

// Handle registers a route. Routes match in registration order, so register
// specific predicates before catch-alls.
func (d *Dispatcher) Handle(kind Kind, match Predicate, handle Handler) {
	d.routes = append(d.routes, route{kind: kind, match: match, handle: handle})
}

// Dispatch runs the first matching handler. The matched flag reports whether
// any route accepted the event.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) (bool, error) {
	for _, r := range d.routes {
		if r.kind != ev.Kind {
			continue
		}
		if r.match != nil && !r.match(ev) {
			continue
		}
		return true, r.handle(ctx, ev)
	}
	d.logger.Debug("unrouted event", "kind", ev.Kind, "user_id", ev.UserID)
	return false, nil
}

// Command matches messages invoking the named slash command, tolerating an
// @botname suffix and trailing arguments.
func Command(name string) Predicate {
	want := "/" + name
	return func(ev Event) bool {
		text := strings.TrimSpace(ev.Text)
		if !strings.HasPrefix(text, want) {
			return false
		}
		rest := text[len(want):]
		if rest == "" {
			return true
		}
		// /watched bad, /list@filmlog_bot
		return rest[0] == ' ' || rest[0] == '\n' || rest[0] == '@'
	}
}

// Prefix matches events whose text starts with the given prefix, the usual
// shape of callback button data.
func Prefix(prefix string) Predicate {
	return func(ev Event) bool {
		return strings.HasPrefix(ev.Text, prefix)
	}
}

// Any matches every event of the route's kind.
func Any() Predicate {
	return func(Event) bool { return true }
}

// CommandArgs returns the text after the slash command itself, trimmed.
func CommandArgs(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return text
	}
	if idx := strings.IndexAny(text, " \n"); idx >= 0 {
		return strings.TrimSpace(text[idx+1:])
	}
	return ""
}
