package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"podpull/internal/export"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recently stored episodes",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			summaries, err := st.ListSummary(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(summaries) == 0 {
				fmt.Fprintln(out, "No episodes stored yet")
				return nil
			}

			rows := make([][]string, 0, len(summaries))
			for _, s := range summaries {
				rows = append(rows, []string{
					s.FeedName,
					truncateTitle(s.Title, 48),
					export.FormatDate(s.PublishedAt),
					string(s.TranscriptSource),
					strconv.Itoa(s.WordCount),
					s.ScrapedAt.Local().Format(time.DateTime),
				})
			}
			table := renderTable(
				[]string{"Feed", "Title", "Published", "Source", "Words", "Scraped"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
			)
			fmt.Fprintln(out, table)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum rows to show (default 50)")
	return cmd
}

func truncateTitle(title string, max int) string {
	runes := []rune(title)
	if len(runes) <= max {
		return title
	}
	return string(runes[:max-1]) + "…"
}
