package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/robert-at-pretension-io/reggen/internal/reggen"
	"github.com/robert-at-pretension-io/reggen/internal/rtlgen"
)

var (
	planOutDir string
	planAlias  string
	planExt    string
	planJSON   bool
)

// PlannedFile is one artifact in the plan output.
type PlannedFile struct {
	Block     string `json:"block"`
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	Path      string `json:"path"`
	Interface string `json:"interface,omitempty"`
	AwParam   string `json:"aw_param,omitempty"`
	AddrWidth int    `json:"addr_width,omitempty"`
}

var planCmd = &cobra.Command{
	Use:   "plan [description...]",
	Short: "List the files gen would write",
	Long: `Print the artifacts gen would create, in creation order, together with
the derived module names and address-width parameters.

Examples:
  reggen plan uart.json
  reggen plan --json --alias v2 uart.json`,
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().StringVarP(&planOutDir, "outdir", "o", "", "output directory the paths are relative to")
	planCmd.Flags().StringVar(&planAlias, "alias", "", "alias implementation for blocks that declare none")
	planCmd.Flags().StringVar(&planExt, "ext", "", "output file extension (default sv)")
	planCmd.Flags().BoolVar(&planJSON, "json", false, "output as JSON")
}

func runPlan(cmd *cobra.Command, args []string) error {
	paths, err := resolveInputs(args)
	if err != nil {
		return err
	}
	blocks, err := loadBlocks(paths, planAlias)
	if err != nil {
		return err
	}
	outdir := pick(planOutDir, cfg.OutDir)
	ext := strings.TrimPrefix(pick(planExt, cfg.Extension), ".")

	var files []PlannedFile
	for _, block := range blocks {
		widths := make(map[string]reggen.AddrWidth)
		for _, aw := range reggen.AddressWidths(block) {
			widths[aw.Iface.String()] = aw
		}
		for _, a := range rtlgen.Plan(block, ext) {
			f := PlannedFile{
				Block: block.Name,
				Kind:  string(a.Kind),
				Name:  a.Name,
				Path:  filepath.Join(outdir, a.File),
			}
			if a.Kind == rtlgen.KindModule {
				aw := widths[a.Iface.String()]
				f.Interface = a.Iface.String()
				f.AwParam = aw.Param
				f.AddrWidth = aw.Width
			}
			files = append(files, f)
		}
	}

	out := cmd.OutOrStdout()
	if planJSON {
		return writeJSON(out, "", files)
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "BLOCK\tKIND\tNAME\tPATH\tADDR WIDTH")
	for _, f := range files {
		aw := "-"
		if f.Kind == string(rtlgen.KindModule) {
			aw = fmt.Sprintf("%s=%d", f.AwParam, f.AddrWidth)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", f.Block, f.Kind, f.Name, f.Path, aw)
	}
	return w.Flush()
}
