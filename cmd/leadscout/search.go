package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"leadscout-engine/internal/classify"
	"leadscout-engine/internal/codec"
	"leadscout-engine/internal/domain"
	"leadscout-engine/internal/poll"
	"leadscout-engine/internal/search"
	"leadscout-engine/internal/store"
)

var (
	searchLocation string
	searchIndustry string
	searchSize     string
	searchLimit    int
	searchAutoTag  bool
	searchJSON     bool
	searchSave     string
	searchFormat   string
)

var searchCmd = &cobra.Command{
	Use:   "search [people|companies] [keywords]",
	Short: "Run a one-shot lead search",
	Long: `Searches the configured result source once and prints the leads.
With --save the results are also written to a leads file.`,
	Args: cobra.ExactArgs(2),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchLocation, "location", "", "location filter")
	searchCmd.Flags().StringVar(&searchIndustry, "industry", "", "industry filter")
	searchCmd.Flags().StringVar(&searchSize, "size", "", "company size filter")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchAutoTag, "auto-tag", false, "role-tag person results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().StringVar(&searchSave, "save", "", "write results to this leads file")
	searchCmd.Flags().StringVar(&searchFormat, "format", codec.FormatJSON, "leads file format (json or csv)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	var kind domain.Kind
	switch args[0] {
	case "people", "person":
		kind = domain.KindPerson
	case "companies", "company":
		kind = domain.KindCompany
	default:
		return fmt.Errorf("kind must be people or companies, got %q", args[0])
	}

	cfg, _, err := bootstrapConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	src, ok := poll.BuildSearchSource(cfg, log)
	if !ok {
		return fmt.Errorf("%w: no result source enabled", domain.ErrSourceUnavailable)
	}

	st := store.New(log)
	orch := search.New(src, st, classify.Tagger{Extra: cfg.Tagging.RoleRules}, log)

	p := search.Params{
		Keywords: args[1],
		Location: searchLocation,
		Industry: searchIndustry,
		Size:     searchSize,
		Limit:    searchLimit,
		AutoTag:  searchAutoTag,
	}

	ctx := context.Background()
	switch kind {
	case domain.KindPerson:
		people, err := orch.SearchPeople(ctx, p)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		if searchJSON {
			if err := printJSON(cmd, people); err != nil {
				return err
			}
		} else {
			printPeople(cmd, people)
		}
	case domain.KindCompany:
		companies, err := orch.SearchCompanies(ctx, p)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		if searchJSON {
			if err := printJSON(cmd, companies); err != nil {
				return err
			}
		} else {
			printCompanies(cmd, companies)
		}
	}

	if searchSave != "" {
		path := resolvePath(cfg, searchSave)
		if err := st.Save(path, searchFormat); err != nil {
			return fmt.Errorf("save failed: %w", err)
		}
		cmd.Printf("Saved %d lead(s) to %s\n", len(st.All()), path)
	}
	return nil
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func printPeople(cmd *cobra.Command, people []*domain.Person) {
	if len(people) == 0 {
		cmd.Println("No results.")
		return
	}
	for i, p := range people {
		cmd.Printf("  [%d] %s\n", i+1, p.Name)
		cmd.Printf("      %s\n", p.Headline)
		if p.Location != "" {
			cmd.Printf("      %s\n", p.Location)
		}
		if len(p.Tags) > 0 {
			cmd.Printf("      tags: %s\n", strings.Join(p.Tags, ", "))
		}
		cmd.Println()
	}
	cmd.Printf("%d result(s)\n", len(people))
}

func printCompanies(cmd *cobra.Command, companies []*domain.Company) {
	if len(companies) == 0 {
		cmd.Println("No results.")
		return
	}
	for i, c := range companies {
		cmd.Printf("  [%d] %s\n", i+1, c.Name)
		cmd.Printf("      %s, %s employees\n", c.Industry, c.Size)
		cmd.Printf("      category: %s\n", c.Category)
		cmd.Println()
	}
	cmd.Printf("%d result(s)\n", len(companies))
}
