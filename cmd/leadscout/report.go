package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"leadscout-engine/internal/store"
)

var (
	reportFormat string
	reportOut    string
)

var reportCmd = &cobra.Command{
	Use:   "report [leads-file]",
	Short: "Summarize a leads file",
	Long: `Loads a leads file, prints the tag and category breakdown and
writes the plain-text report next to it.`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportFormat, "format", "", "input format (json or csv, default from extension)")
	reportCmd.Flags().StringVar(&reportOut, "out", "leads_report.txt", "report file to write")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, _, err := bootstrapConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	format, err := formatFor(args[0], reportFormat)
	if err != nil {
		return err
	}

	st := store.New(log)
	if _, err := st.Load(resolvePath(cfg, args[0]), format); err != nil {
		return fmt.Errorf("load %s: %w", args[0], err)
	}

	sum := st.Report()
	cmd.Printf("Leads:     %d (%d people, %d companies)\n",
		sum.TotalLeads, sum.PeopleCount, sum.CompanyCount)
	printCounts(cmd, "Tags", sum.Tags)
	printCounts(cmd, "Categories", sum.Categories)

	out := resolvePath(cfg, reportOut)
	if err := st.WriteReport(out); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	cmd.Printf("Report written to %s\n", out)
	return nil
}

func printCounts(cmd *cobra.Command, label string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cmd.Printf("%s:\n", label)
	for _, k := range keys {
		cmd.Printf("  %-24s %d\n", k, counts[k])
	}
}
