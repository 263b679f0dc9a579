package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"media-tracker/feature/catalog"

	"github.com/spf13/cobra"
)

var (
	topTag   string
	topYear  int
	topLimit int
)

// topCmd prints the weighted ranking.
var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Print the top ranked titles",
	Long:  `Prints catalogue entries ordered by Bayesian weighted score, optionally narrowed to a tag or release year.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.log.Sync()

		q := catalog.RankingQuery{Tag: topTag, Limit: topLimit}
		if cmd.Flags().Changed("year") {
			q.Year = &topYear
		}

		ranked, err := catalog.NewService(rt.db, rt.cfg.Catalog, rt.log).Top(cmd.Context(), q)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "#\tTITLE\tKIND\tSCORE\tVOTES\tWEIGHTED")
		for i, r := range ranked {
			score := "-"
			if r.Score != nil {
				score = fmt.Sprintf("%.2f", *r.Score)
			}
			votes := 0
			if r.VoteCount != nil {
				votes = *r.VoteCount
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%.3f\n", i+1, r.Title, r.Kind, score, votes, r.WeightedScore)
		}
		return w.Flush()
	},
}

func init() {
	topCmd.Flags().StringVar(&topTag, "tag", "", "Restrict to a tag")
	topCmd.Flags().IntVar(&topYear, "year", 0, "Restrict to a release year")
	topCmd.Flags().IntVar(&topLimit, "limit", 0, "Number of titles (default from catalog.top_limit)")
	RootCmd.AddCommand(topCmd)
}
