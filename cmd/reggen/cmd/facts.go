package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robert-at-pretension-io/reggen/internal/facts"
	"github.com/robert-at-pretension-io/reggen/internal/validator"
)

var (
	factsOutput    string
	factsDeltaFrom string
	factsDeltaOut  string
	factsBlocks    []string
	factsAlias     string
	factsOutDir    string
)

var factsCmd = &cobra.Command{
	Use:   "facts [description...]",
	Short: "Write the generation plan as fact tables",
	Long: `Write the relational fact tables the naming policies evaluate, as JSON.
With --delta-from the row-level difference to a previous snapshot is
written to --delta-out as well.

Examples:
  reggen facts -o facts.json data/*.json
  reggen facts --block uart --delta-from old.json --delta-out delta.json data/*.json`,
	RunE: runFacts,
}

func init() {
	rootCmd.AddCommand(factsCmd)

	factsCmd.Flags().StringVarP(&factsOutput, "output", "o", "", "write facts JSON to file (default: stdout)")
	factsCmd.Flags().StringVar(&factsDeltaFrom, "delta-from", "", "previous facts JSON to compute delta from")
	factsCmd.Flags().StringVar(&factsDeltaOut, "delta-out", "", "write delta JSON to file (requires --delta-from)")
	factsCmd.Flags().StringSliceVar(&factsBlocks, "block", nil, "only keep rows of these blocks")
	factsCmd.Flags().StringVar(&factsAlias, "alias", "", "alias implementation for blocks that declare none")
	factsCmd.Flags().StringVar(&factsOutDir, "outdir", "", "output directory the artifact paths are relative to")
}

func runFacts(cmd *cobra.Command, args []string) error {
	if (factsDeltaFrom == "") != (factsDeltaOut == "") {
		return fmt.Errorf("--delta-from and --delta-out must be used together")
	}

	paths, err := resolveInputs(args)
	if err != nil {
		return err
	}
	blocks, err := loadBlocks(paths, factsAlias)
	if err != nil {
		return err
	}

	ext := strings.TrimPrefix(cfg.Extension, ".")
	tables := facts.BuildTables(blocks, pick(factsOutDir, cfg.OutDir), ext)

	v, err := validator.NewFactsValidator()
	if err != nil {
		return err
	}
	if err := v.Validate(tables); err != nil {
		return fmt.Errorf("fact tables: %w", err)
	}

	var filter map[string]bool
	if len(factsBlocks) > 0 {
		filter = make(map[string]bool, len(factsBlocks))
		for _, b := range factsBlocks {
			filter[b] = true
		}
		tables = facts.FilterTablesByBlocks(tables, filter)
	}

	if err := writeJSON(cmd.OutOrStdout(), factsOutput, tables); err != nil {
		return fmt.Errorf("writing facts: %w", err)
	}

	if factsDeltaFrom == "" {
		return nil
	}
	prev, err := readTables(factsDeltaFrom)
	if err != nil {
		return fmt.Errorf("reading delta-from: %w", err)
	}
	delta := facts.ComputeDelta(prev, tables)
	if filter != nil {
		delta = facts.FilterDeltaByBlocks(delta, filter)
	}
	if err := writeJSON(nil, factsDeltaOut, delta); err != nil {
		return fmt.Errorf("writing delta: %w", err)
	}
	log.WithField("empty", delta.Empty()).Debug("wrote delta")
	return nil
}

func readTables(path string) (facts.Tables, error) {
	var tables facts.Tables
	raw, err := os.ReadFile(path)
	if err != nil {
		return tables, err
	}
	err = json.Unmarshal(raw, &tables)
	return tables, err
}

// writeJSON writes data as indented JSON to path, or to w when path is
// empty.
func writeJSON(w io.Writer, path string, data interface{}) error {
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
