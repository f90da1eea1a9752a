package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"podpull/internal/feeds"
	"podpull/internal/ingest"
	"podpull/internal/logging"
)

func newScrapeCommand(ctx *commandContext) *cobra.Command {
	var groupFlag string
	var maxEpisodes int

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape configured feeds for new transcripts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			lock := flock.New(filepath.Join(cfg.Paths.LogDir, "podpull.lock"))
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire scrape lock: %w", err)
			}
			if !locked {
				return fmt.Errorf("another podpull scrape is already running")
			}
			defer lock.Unlock()

			groups, err := feeds.Load(cfg.Paths.FeedsFile)
			if err != nil {
				return ingest.Wrap(ingest.ErrConfiguration, "scrape", "load feeds", cfg.Paths.FeedsFile, err)
			}
			var targets []feeds.Feed
			if groupFlag != "" {
				targets, err = groups.Group(groupFlag)
				if err != nil {
					return ingest.Wrap(ingest.ErrConfiguration, "scrape", "resolve group", "", err)
				}
			} else {
				targets = groups.All()
			}
			if len(targets) == 0 {
				return ingest.Wrap(ingest.ErrConfiguration, "scrape", "resolve feeds", "no feeds configured in "+cfg.Paths.FeedsFile, nil)
			}

			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}
			logger = logging.With(logger, logging.String("run_id", uuid.NewString()))

			st, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			ingestor, err := ctx.newIngestor(st, logger)
			if err != nil {
				return err
			}
			if maxEpisodes > 0 {
				ingestor.MaxEpisodes = maxEpisodes
			}

			out := cmd.OutOrStdout()
			started := time.Now()
			var total ingest.Stats
			failedFeeds := 0
			for _, feed := range targets {
				stats, err := ingestor.IngestFeed(cmd.Context(), feed)
				if err != nil {
					logger.Error("feed scrape failed",
						logging.String("feed", feed.Name),
						logging.Error(err))
					fmt.Fprintf(out, "%s: failed (%v)\n", feed.Name, err)
					failedFeeds++
					continue
				}
				total.Add(stats)
				fmt.Fprintf(out, "%s: %d new, %d already stored\n", feed.Name, stats.New, stats.Skipped)
			}

			logger.Info("scrape complete",
				logging.Int("feeds", len(targets)),
				logging.Int("new", total.New),
				logging.Duration("elapsed", time.Since(started)))
			fmt.Fprintf(out, "\nScraped %d feeds: %d new episodes, %d skipped, %d without transcripts, %d failed\n",
				len(targets)-failedFeeds, total.New, total.Skipped, total.Unavailable, total.Failed)
			if failedFeeds == len(targets) {
				return fmt.Errorf("all %d feeds failed", failedFeeds)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&groupFlag, "group", "g", "", "Scrape only the named feed group")
	cmd.Flags().IntVarP(&maxEpisodes, "max-episodes", "n", 0, "Episodes to consider per feed (overrides config)")
	return cmd
}
