package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/robert-at-pretension-io/reggen/internal/facts"
	"github.com/robert-at-pretension-io/reggen/internal/ipblock"
	"github.com/robert-at-pretension-io/reggen/internal/policy"
	"github.com/robert-at-pretension-io/reggen/internal/rtlgen"
)

var (
	genOutDir    string
	genAlias     string
	genExt       string
	genTemplates string
	genNoPolicy  bool
)

var genCmd = &cobra.Command{
	Use:   "gen [description...]",
	Short: "Generate register RTL",
	Long: `Load every description, check the naming policies over the combined
plan, then write the register package and one register-access module per
device interface for each block, in argument order.

Without arguments the configured input globs are used.

Examples:
  reggen gen -o rtl uart.json gpio.yaml
  reggen gen --alias v2 -o rtl uart.json     # uart_v2_reg_pkg.sv, uart_v2_reg_top.sv
  reggen gen --templates my_tpl uart.json    # override templates file by file`,
	RunE: runGen,
}

func init() {
	rootCmd.AddCommand(genCmd)

	genCmd.Flags().StringVarP(&genOutDir, "outdir", "o", "", "output directory (default from config, else .)")
	genCmd.Flags().StringVar(&genAlias, "alias", "", "alias implementation for blocks that declare none")
	genCmd.Flags().StringVar(&genExt, "ext", "", "output file extension (default sv)")
	genCmd.Flags().StringVar(&genTemplates, "templates", "", "directory of template overrides")
	genCmd.Flags().BoolVar(&genNoPolicy, "no-policy", false, "skip the naming policy check")
}

func runGen(cmd *cobra.Command, args []string) error {
	paths, err := resolveInputs(args)
	if err != nil {
		return err
	}
	blocks, err := loadBlocks(paths, genAlias)
	if err != nil {
		return err
	}

	outdir := pick(genOutDir, cfg.OutDir)
	ext := strings.TrimPrefix(pick(genExt, cfg.Extension), ".")

	if !genNoPolicy && cfg.PolicyEnabled() {
		if err := checkPolicy(cmd.Context(), blocks, outdir, ext); err != nil {
			return err
		}
	}

	renderer, err := rtlgen.DirRenderer(pick(genTemplates, cfg.TemplateDir))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outdir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	g := &rtlgen.Generator{
		Renderer:   renderer,
		Ext:        ext,
		Log:        log,
		TimingPath: cfg.Timing.Path,
	}
	for _, block := range blocks {
		res, err := g.Generate(block, outdir)
		if err != nil {
			rtlgen.ReportError(log, err)
			return errReported
		}
		log.WithFields(logrus.Fields{
			"block": block.Name,
			"files": len(res.Files),
		}).Info("generated")
	}
	return nil
}

// checkPolicy evaluates the naming policies over the plan of every block
// and fails when any error-severity violation remains after overrides.
func checkPolicy(ctx context.Context, blocks []*ipblock.IpBlock, outdir, ext string) error {
	engine, err := policy.New(cfg.Policy.Dir)
	if err != nil {
		return fmt.Errorf("loading policies: %w", err)
	}
	res, err := engine.Evaluate(ctx, facts.BuildTables(blocks, outdir, ext))
	if err != nil {
		return err
	}
	res.ApplyOverrides(cfg.Policy.Rules)

	for _, v := range res.Sorted() {
		entry := log.WithFields(logrus.Fields{"rule": v.Rule, "block": v.Block})
		if v.Path != "" {
			entry = entry.WithField("path", v.Path)
		}
		switch v.Severity {
		case policy.SeverityError:
			entry.Error(v.Message)
		case policy.SeverityWarning:
			entry.Warn(v.Message)
		default:
			entry.Info(v.Message)
		}
	}

	if res.HasErrors() {
		return fmt.Errorf("naming policy: %d error(s), nothing written", res.Summary.Errors)
	}
	return nil
}
