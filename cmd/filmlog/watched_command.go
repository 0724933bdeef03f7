package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"filmlog/internal/watchlist"
)

func newWatchedCommand(ctx *commandContext) *cobra.Command {
	var userID int64
	var byID int64

	cmd := &cobra.Command{
		Use:   "watched [fragment]",
		Short: "Mark watchlist entries as watched",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == 0 {
				return fmt.Errorf("--user is required")
			}
			if byID == 0 && len(args) == 0 {
				return fmt.Errorf("provide a title fragment or --id")
			}
			return ctx.withStore(func(store *watchlist.Store) error {
				out := cmd.OutOrStdout()

				if byID != 0 {
					err := store.MarkWatchedByID(cmd.Context(), userID, byID)
					if errors.Is(err, watchlist.ErrNotFound) {
						return fmt.Errorf("entry %d not found for user %d", byID, userID)
					}
					if err != nil {
						return fmt.Errorf("mark watched: %w", err)
					}
					fmt.Fprintf(out, "Marked entry %d as watched\n", byID)
					return nil
				}

				fragment := args[0]
				titles, err := store.MarkWatchedByTitleFragment(cmd.Context(), userID, fragment)
				if errors.Is(err, watchlist.ErrNotFound) {
					return fmt.Errorf("no unwatched entries match %q", fragment)
				}
				if err != nil {
					return fmt.Errorf("mark watched: %w", err)
				}
				fmt.Fprintf(out, "Marked as watched: %s\n", strings.Join(titles, ", "))
				return nil
			})
		},
	}

	cmd.Flags().Int64VarP(&userID, "user", "u", 0, "Telegram user id")
	cmd.Flags().Int64Var(&byID, "id", 0, "Mark a single entry by id")
	return cmd
}
