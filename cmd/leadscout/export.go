package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"leadscout-engine/internal/codec"
	"leadscout-engine/internal/store"
)

var (
	exportFrom string
	exportTo   string
)

var exportCmd = &cobra.Command{
	Use:   "export [input] [output]",
	Short: "Convert a leads file between formats",
	Long: `Loads a leads file and writes it back out in another format.
Formats are inferred from the file extensions; --from and --to override.`,
	Args: cobra.ExactArgs(2),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "input format (json or csv)")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "output format (json or csv)")
	rootCmd.AddCommand(exportCmd)
}

// formatFor infers a persistence format from a filename extension.
func formatFor(path, override string) (string, error) {
	if override != "" {
		return override, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return codec.FormatJSON, nil
	case ".csv":
		return codec.FormatCSV, nil
	}
	return "", fmt.Errorf("cannot infer format for %q, pass --from/--to", path)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, _, err := bootstrapConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	in := resolvePath(cfg, args[0])
	out := resolvePath(cfg, args[1])

	inFormat, err := formatFor(args[0], exportFrom)
	if err != nil {
		return err
	}
	outFormat, err := formatFor(args[1], exportTo)
	if err != nil {
		return err
	}

	st := store.New(log)
	leads, err := st.Load(in, inFormat)
	if err != nil {
		return fmt.Errorf("load %s: %w", in, err)
	}
	if err := st.Save(out, outFormat); err != nil {
		return fmt.Errorf("save %s: %w", out, err)
	}

	cmd.Printf("Exported %d lead(s): %s -> %s\n", len(leads), in, out)
	return nil
}
