package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"media-tracker/feature/importer"
	"media-tracker/feature/metadata"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	importUser   uint
	importScores bool
	importNotes  bool
	importDates  bool
)

// importCmd runs an import from a local export file.
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a MyAnimeList export for a user",
	Long: `Reconciles a MyAnimeList XML export against the catalogue and upserts the user's list.
The summary is printed as JSON whether or not the import succeeds.

Examples:
  # Titles only
  import animelist.xml --user 1

  # Copy scores, comments, status and progress too
  import animelist.xml --user 1 --scores --notes --dates`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if importUser == 0 {
			return fmt.Errorf("--user is required")
		}

		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.log.Sync()

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open export: %w", err)
		}
		defer f.Close()

		reconciler := importer.NewReconciler(rt.db, metadata.NewClient(rt.cfg.Metadata, rt.log), rt.log)
		if rt.cfg.Import.Archive {
			if store := rt.storageClient(cmd.Context()); store != nil {
				reconciler.SetArchiver(importer.NewArchiver(store, rt.cfg.Storage.Bucket, rt.cfg.Import.ArchivePrefix))
			}
		}

		rt.log.Info("Importing export (this might take a while)...",
			zap.String("file", args[0]), zap.Uint("user_id", importUser))

		res, importErr := reconciler.Import(cmd.Context(), importUser, f, importer.Options{
			ImportScores: importScores,
			ImportNotes:  importNotes,
			ImportDates:  importDates,
			Filename:     filepath.Base(args[0]),
		})

		out, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		fmt.Println(string(out))

		return importErr
	},
}

func init() {
	importCmd.Flags().UintVar(&importUser, "user", 0, "User whose list receives the entries")
	importCmd.Flags().BoolVar(&importScores, "scores", false, "Copy scores")
	importCmd.Flags().BoolVar(&importNotes, "notes", false, "Copy comments")
	importCmd.Flags().BoolVar(&importDates, "dates", false, "Copy status and progress")
	RootCmd.AddCommand(importCmd)
}
