// Package logs reads daemon log files for CLI diagnostics.
//
// Last scans a file backwards in fixed-size blocks to return its trailing
// lines with bounded memory. Follow polls for appended complete lines and
// powers `filmlog logs --follow`; cancelling the context stops the poll.
package logs
