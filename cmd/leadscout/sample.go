package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"leadscout-engine/internal/codec"
	"leadscout-engine/internal/domain"
	"leadscout-engine/internal/source"
	"leadscout-engine/internal/source/sample"
	"leadscout-engine/internal/store"
)

var (
	samplePeople    int
	sampleCompanies int
	sampleSeed      int64
	sampleOut       string
	sampleFormat    string
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Generate a demo leads file",
	Long: `Generates deterministic sample leads and writes them to a file.
Handy for trying the export, report and load paths without a source.`,
	RunE: runSample,
}

func init() {
	sampleCmd.Flags().IntVar(&samplePeople, "people", 10, "person leads to generate")
	sampleCmd.Flags().IntVar(&sampleCompanies, "companies", 5, "company leads to generate")
	sampleCmd.Flags().Int64Var(&sampleSeed, "seed", 0, "random seed (0 means time-based)")
	sampleCmd.Flags().StringVar(&sampleOut, "out", "leads.json", "output file")
	sampleCmd.Flags().StringVar(&sampleFormat, "format", codec.FormatJSON, "output format (json or csv)")
	rootCmd.AddCommand(sampleCmd)
}

func runSample(cmd *cobra.Command, args []string) error {
	cfg, _, err := bootstrapConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	src := sample.New(sampleSeed)
	st := store.New(log)
	ctx := context.Background()

	if samplePeople > 0 {
		raws, err := src.FetchPeople(ctx, source.Query{Limit: samplePeople})
		if err != nil {
			return err
		}
		if _, err := st.Ingest(domain.KindPerson, raws); err != nil {
			return err
		}
	}
	if sampleCompanies > 0 {
		raws, err := src.FetchCompanies(ctx, source.Query{Limit: sampleCompanies})
		if err != nil {
			return err
		}
		if _, err := st.Ingest(domain.KindCompany, raws); err != nil {
			return err
		}
	}

	path := resolvePath(cfg, sampleOut)
	if err := st.Save(path, sampleFormat); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	cmd.Printf("Wrote %d sample lead(s) to %s\n", len(st.All()), path)
	return nil
}
