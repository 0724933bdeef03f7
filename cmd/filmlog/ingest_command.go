package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"filmlog/internal/catalog"
	"filmlog/internal/catalog/tmdb"
	"filmlog/internal/extract"
	"filmlog/internal/ingest"
	"filmlog/internal/logging"
	"filmlog/internal/watchlist"
)

// ingest runs the full pipeline for one message from the command line, the
// quickest way to check extraction and resolution against live services.
func newIngestCommand(ctx *commandContext) *cobra.Command {
	var userID int64

	cmd := &cobra.Command{
		Use:   "ingest <text>",
		Short: "Run the extraction pipeline on a message",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == 0 {
				return fmt.Errorf("--user is required")
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			extractor, err := extract.FromConfig(cfg, logger)
			if err != nil {
				return fmt.Errorf("build extractor: %w", err)
			}
			searcher, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language)
			if err != nil {
				return fmt.Errorf("build tmdb client: %w", err)
			}
			resolver, err := catalog.NewResolver(searcher)
			if err != nil {
				return fmt.Errorf("build resolver: %w", err)
			}

			return ctx.withStore(func(store *watchlist.Store) error {
				pipeline := ingest.NewPipeline(extractor, resolver, store, logging.WithComponent(logger, "ingest"))
				added, err := pipeline.Ingest(cmd.Context(), userID, strings.Join(args, " "))
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(added) == 0 {
					fmt.Fprintln(out, "Nothing added.")
					return nil
				}
				fmt.Fprintf(out, "Added: %s\n", strings.Join(added, ", "))
				return nil
			})
		},
	}

	cmd.Flags().Int64VarP(&userID, "user", "u", 0, "Telegram user id")
	return cmd
}
