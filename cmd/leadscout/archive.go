package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"leadscout-engine/internal/archive"
)

var (
	archiveLimit int
	archiveStats bool
	archiveJSON  bool
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Inspect the sqlite lead archive",
	Long: `Lists recently archived leads, newest first. With --stats it
prints the per-kind totals instead.`,
	RunE: runArchive,
}

func init() {
	archiveCmd.Flags().IntVarP(&archiveLimit, "limit", "n", 20, "rows to list")
	archiveCmd.Flags().BoolVar(&archiveStats, "stats", false, "print counts by kind")
	archiveCmd.Flags().BoolVar(&archiveJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(archiveCmd)
}

func runArchive(cmd *cobra.Command, args []string) error {
	cfg, _, err := bootstrapConfig()
	if err != nil {
		return err
	}

	path := cfg.Archive.Filename
	if !filepath.IsAbs(path) {
		path = filepath.Join(cfg.App.DataDir, path)
	}
	db, err := archive.Open(path)
	if err != nil {
		return fmt.Errorf("archive open (%s): %w", path, err)
	}
	defer db.Close()
	if err := archive.Migrate(db.Pool); err != nil {
		return fmt.Errorf("archive migrate: %w", err)
	}

	ctx := context.Background()

	if archiveStats {
		counts, err := archive.CountByKind(ctx, db.Pool)
		if err != nil {
			return err
		}
		if archiveJSON {
			return printJSON(cmd, counts)
		}
		total := 0
		for _, n := range counts {
			total += n
		}
		cmd.Printf("Archived leads: %d\n", total)
		printCounts(cmd, "By kind", counts)
		return nil
	}

	rows, err := archive.ListRecent(ctx, db.Pool, archiveLimit)
	if err != nil {
		return err
	}
	if archiveJSON {
		return printJSON(cmd, rows)
	}
	if len(rows) == 0 {
		cmd.Println("Archive is empty.")
		return nil
	}
	for _, row := range rows {
		cmd.Printf("  %-8s %-28s %-10s %s\n", row.Kind, row.Name, row.Source, row.FirstSeen)
	}
	cmd.Printf("%d row(s)\n", len(rows))
	return nil
}
