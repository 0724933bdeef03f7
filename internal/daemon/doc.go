// Package daemon owns the long-running bot process: it acquires a flock so
// only one poller talks to the Bot API per data directory, runs the update
// loop, and tears everything down in order on shutdown.
package daemon
