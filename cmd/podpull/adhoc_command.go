package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"podpull/internal/export"
	"podpull/internal/feeds"
	"podpull/internal/logging"
)

// adhocLookbackHours bounds the follow-up export to episodes stored by
// this run rather than the whole archive.
const adhocLookbackHours = 1

func newAdhocCommand(ctx *commandContext) *cobra.Command {
	var nameFlag string
	var maxEpisodes int
	var outputPath string
	var digestDir string

	cmd := &cobra.Command{
		Use:   "adhoc <feed-url>",
		Short: "Scrape a single feed URL and export its transcripts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			feedURL := strings.TrimSpace(args[0])
			if feedURL == "" {
				return fmt.Errorf("feed URL is required")
			}
			name := strings.TrimSpace(nameFlag)
			if name == "" {
				name = feeds.InferName(feedURL)
			}

			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}

			st, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			ingestor, err := ctx.newIngestor(st, logger)
			if err != nil {
				return err
			}
			ingestor.MaxEpisodes = maxEpisodes

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Scraping %s (%s)\n", name, feedURL)
			stats, err := ingestor.IngestFeed(cmd.Context(), feeds.Feed{Name: name, URL: feedURL})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%d new, %d already stored, %d without transcripts, %d failed\n",
				stats.New, stats.Skipped, stats.Unavailable, stats.Failed)

			episodes, err := st.ListRecent(cmd.Context(), adhocLookbackHours, name)
			if err != nil {
				return err
			}

			target := strings.TrimSpace(outputPath)
			if target == "" {
				target = filepath.Join(cfg.Digest.OutputDir,
					fmt.Sprintf("adhoc_%s.txt", time.Now().UTC().Format("20060102_150405")))
			}
			result, err := export.WriteText(episodes, target)
			if err != nil {
				return err
			}
			if result.EpisodeCount == 0 {
				fmt.Fprintln(out, "No transcripts captured; nothing to export")
				return nil
			}
			fmt.Fprintf(out, "Exported %d episodes (%d words) to %s\n",
				result.EpisodeCount, result.TotalWords, result.OutputPath)

			if cfg.Digest.Command == "" {
				return nil
			}
			dir := strings.TrimSpace(digestDir)
			if dir == "" {
				dir = cfg.Digest.OutputDir
			}
			runner := export.NewDigestRunner(cfg.Digest.Command, dir, logger)
			digestPath, err := runner.Run(cmd.Context(), result.OutputPath)
			if err != nil {
				logger.Warn("digest hand-off failed", logging.Error(err))
				fmt.Fprintf(out, "Digest command failed: %v\n", err)
				return nil
			}
			fmt.Fprintf(out, "Digest written to %s\n", digestPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&nameFlag, "name", "", "Feed display name (derived from the URL when omitted)")
	cmd.Flags().IntVarP(&maxEpisodes, "max-episodes", "n", 1, "Episodes to consider from the feed")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Export file destination")
	cmd.Flags().StringVar(&digestDir, "digest-dir", "", "Directory for the digest command output")
	return cmd
}
