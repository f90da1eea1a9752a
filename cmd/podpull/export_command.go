package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"podpull/internal/export"
	"podpull/internal/feeds"
	"podpull/internal/ingest"
	"podpull/internal/store"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var groupFlag string
	var lookbackHours int
	var outputPath string
	var asJSON bool
	var maxTotal int
	var maxPerFeed int
	var excerptChars int

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export recent transcripts to a digest file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			opts, err := ctx.exportOptions()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("lookback") {
				opts.LookbackHours = lookbackHours
			}
			if cmd.Flags().Changed("max-total") {
				opts.MaxEpisodesTotal = maxTotal
			}
			if cmd.Flags().Changed("max-per-feed") {
				opts.MaxEpisodesPerFeed = maxPerFeed
			}
			if cmd.Flags().Changed("excerpt-chars") {
				opts.ExcerptChars = excerptChars
			}

			st, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			var episodes []store.Episode
			if groupFlag != "" {
				groups, err := feeds.Load(cfg.Paths.FeedsFile)
				if err != nil {
					return ingest.Wrap(ingest.ErrConfiguration, "export", "load feeds", cfg.Paths.FeedsFile, err)
				}
				list, err := groups.Group(groupFlag)
				if err != nil {
					return ingest.Wrap(ingest.ErrConfiguration, "export", "resolve group", "", err)
				}
				episodes, err = st.ListByFeeds(cmd.Context(), feeds.FeedNames(list), opts.LookbackHours)
				if err != nil {
					return err
				}
			} else {
				episodes, err = st.ListRecent(cmd.Context(), opts.LookbackHours, "")
				if err != nil {
					return err
				}
			}

			target := strings.TrimSpace(outputPath)
			if target == "" {
				stamp := time.Now().UTC().Format("20060102_150405")
				ext := ".txt"
				if asJSON {
					ext = ".json"
				}
				target = filepath.Join(cfg.Digest.OutputDir, "export_"+stamp+ext)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				payload, err := export.WriteJSON(episodes, target, opts)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Exported %d episodes from %d feeds to %s\n",
					payload.EpisodeCount, payload.FeedCount, target)
				return nil
			}

			result, err := export.WriteText(episodes, target)
			if err != nil {
				return err
			}
			if result.EpisodeCount == 0 {
				return fmt.Errorf("no episodes with transcripts in the last %d hours", opts.LookbackHours)
			}
			fmt.Fprintf(out, "Exported %d episodes (%d words) to %s\n",
				result.EpisodeCount, result.TotalWords, result.OutputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&groupFlag, "group", "g", "", "Export only feeds in the named group")
	cmd.Flags().IntVarP(&lookbackHours, "lookback", "l", 0, "Hours of history to include (overrides config)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Export file destination")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Write a JSON payload instead of plain text")
	cmd.Flags().IntVar(&maxTotal, "max-total", 0, "Cap on total episodes, JSON form only (overrides config)")
	cmd.Flags().IntVar(&maxPerFeed, "max-per-feed", 0, "Cap on episodes per feed, JSON form only (overrides config)")
	cmd.Flags().IntVar(&excerptChars, "excerpt-chars", 0, "Excerpt budget per transcript, JSON form only, 0 for full text (overrides config)")
	return cmd
}
