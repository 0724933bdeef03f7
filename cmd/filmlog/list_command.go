package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"filmlog/internal/watchlist"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var userID int64
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show a user's watchlist",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == 0 {
				return fmt.Errorf("--user is required")
			}
			return ctx.withStore(func(store *watchlist.Store) error {
				var entries []watchlist.Entry
				var err error
				if all {
					entries, err = store.ListAll(cmd.Context(), userID)
				} else {
					entries, err = store.ListUnwatched(cmd.Context(), userID)
				}
				if err != nil {
					return fmt.Errorf("list entries: %w", err)
				}

				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(out, "No entries.")
					return nil
				}

				rows := make([][]string, 0, len(entries))
				for _, entry := range entries {
					rows = append(rows, []string{
						strconv.FormatInt(entry.ID, 10),
						entry.Title,
						entry.MediaKind,
						yesNo(entry.Watched),
						entry.AddedAt.Local().Format(time.DateOnly),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"ID", "Title", "Kind", "Watched", "Added"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().Int64VarP(&userID, "user", "u", 0, "Telegram user id")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include watched entries")
	return cmd
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
