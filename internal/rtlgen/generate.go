// Package rtlgen renders the SystemVerilog package and register-access
// modules of an IP block and writes them to an output directory.
package rtlgen

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/robert-at-pretension-io/reggen/internal/ipblock"
)

// RenderError reports a template that failed to render. Files written
// before the failure are left in place.
type RenderError struct {
	Block    string
	Artifact string
	Template TemplateID
	Err      error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("block %s: rendering %s from template %s: %v", e.Block, e.Artifact, e.Template, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Result lists the files a generation run wrote, in creation order.
type Result struct {
	Files []string
}

// Generator renders every artifact of a block in plan order.
type Generator struct {
	Renderer Renderer
	// Ext is the output file extension, DefaultExt when empty.
	Ext string
	Log logrus.FieldLogger
	// TimingPath receives JSONL timings; TimingEnv overrides it.
	TimingPath string
}

// NewGenerator returns a Generator using the embedded templates.
func NewGenerator(log logrus.FieldLogger) (*Generator, error) {
	r, err := DefaultRenderer()
	if err != nil {
		return nil, err
	}
	return &Generator{Renderer: r, Ext: DefaultExt, Log: log}, nil
}

func (g *Generator) logger() logrus.FieldLogger {
	if g.Log != nil {
		return g.Log
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Generate renders and writes every artifact of block into outdir, which
// must exist. It stops at the first failure; the returned Result still
// lists the files written up to that point.
func (g *Generator) Generate(block *ipblock.IpBlock, outdir string) (*Result, error) {
	log := g.logger().WithField("block", block.Name)
	start := time.Now()
	timing := openTiming(g.resolveTimingPath(), block.Name, start)
	defer timing.close()
	if timing.err != nil {
		log.WithError(timing.err).Warn("timing output disabled")
	}

	res := &Result{}
	err := g.generate(block, outdir, res, timing, log)
	timing.stage("total", start, err)
	return res, err
}

func (g *Generator) generate(block *ipblock.IpBlock, outdir string, res *Result, timing *timingRecorder, log logrus.FieldLogger) error {
	for _, a := range Plan(block, g.Ext) {
		path := filepath.Join(outdir, a.File)

		renderStart := time.Now()
		text, err := g.Renderer.Render(a.Template, a.Context)
		timing.artifact("render", a.File, renderStart, err)
		if err != nil {
			return &RenderError{Block: block.Name, Artifact: a.File, Template: a.Template, Err: err}
		}

		writeStart := time.Now()
		err = os.WriteFile(path, []byte(text), 0644)
		timing.artifact("write", a.File, writeStart, err)
		if err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		res.Files = append(res.Files, path)
		log.WithFields(logrus.Fields{
			"artifact": a.Name,
			"template": a.Template,
			"path":     path,
		}).Debug("wrote artifact")
	}
	return nil
}

// ExitStatus maps a Generate error to a process exit status.
func ExitStatus(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

// GenRTL generates block into outdir with the embedded templates, logs
// any failure and returns the exit status.
func GenRTL(block *ipblock.IpBlock, outdir string, log logrus.FieldLogger) int {
	if log == nil {
		log = logrus.StandardLogger()
	}
	g, err := NewGenerator(log)
	if err != nil {
		log.WithError(err).Error("loading templates")
		return 1
	}
	_, err = g.Generate(block, outdir)
	if err != nil {
		ReportError(log, err)
	}
	return ExitStatus(err)
}

// ReportError logs a Generate failure. Render failures carry the block,
// artifact and template as fields.
func ReportError(log logrus.FieldLogger, err error) {
	var rerr *RenderError
	if errors.As(err, &rerr) {
		log.WithFields(logrus.Fields{
			"block":    rerr.Block,
			"artifact": rerr.Artifact,
			"template": rerr.Template,
		}).Error(rerr.Err)
		return
	}
	log.WithError(err).Error("generation failed")
}
