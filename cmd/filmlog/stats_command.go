package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"filmlog/internal/watchlist"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var userID int64

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show a user's watchlist counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == 0 {
				return fmt.Errorf("--user is required")
			}
			return ctx.withStore(func(store *watchlist.Store) error {
				stats, err := store.Stats(cmd.Context(), userID)
				if err != nil {
					return fmt.Errorf("watchlist stats: %w", err)
				}

				rows := [][]string{
					{"Unwatched", strconv.Itoa(stats.Unwatched)},
					{"Watched", strconv.Itoa(stats.Watched)},
					{"Total", strconv.Itoa(stats.Total)},
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"State", "Count"},
					rows,
					[]columnAlignment{alignLeft, alignRight},
				))
				return nil
			})
		},
	}

	cmd.Flags().Int64VarP(&userID, "user", "u", 0, "Telegram user id")
	return cmd
}
