// Package notifications delivers bot events via pluggable notifiers.
//
// The default implementation publishes to ntfy using the topic configured in
// config.toml and gracefully degrades to a no-op when notifications are
// disabled. The bot depends only on the small Service interface, so
// alternative transports slot in without touching handler code.
package notifications
