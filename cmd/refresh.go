package cmd

import (
	"time"

	"media-tracker/feature/metadata"
	"media-tracker/feature/refresh"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// refreshCmd runs one metadata refresh pass.
var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Re-fetch metadata for every catalogued title",
	Long:  `Walks the catalogue and overwrites volatile fields (score, popularity, members, status) with fresh Jikan data.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		startTime := time.Now()

		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.log.Sync()

		job := refresh.NewJob(rt.db, metadata.NewClient(rt.cfg.Metadata, rt.log), rt.cfg.Refresh, rt.log)

		rt.log.Info("Refreshing catalogue metadata (this might take a while)...")
		summary, err := job.Run(cmd.Context())
		if err != nil {
			return err
		}

		rt.log.Info("Refresh complete",
			zap.Int("processed", summary.Processed),
			zap.Int("updated", summary.Updated),
			zap.Int("failed", summary.Failed),
			zap.Duration("duration", time.Since(startTime)),
		)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(refreshCmd)
}
