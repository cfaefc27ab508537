package policy

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/open-policy-agent/opa/v1/rego"

	"github.com/robert-at-pretension-io/reggen/internal/facts"
)

//go:embed policies/*.rego
var builtinPolicies embed.FS

// namingPackage is the rego package every naming rule lives in. Its
// all_violations and summary rules form the engine output.
const namingPackage = "data.reggen.naming"

// Severities in decreasing order of importance. SeverityOff disables a
// rule when used as an override.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
	SeverityOff     = "off"
)

// Engine evaluates OPA policies against generation fact tables
type Engine struct {
	query rego.PreparedEvalQuery
}

// Violation represents a policy violation
type Violation struct {
	Rule     string `json:"rule"`
	Severity string `json:"severity"`
	Block    string `json:"block"`
	Path     string `json:"path,omitempty"`
	Message  string `json:"message"`
}

// Result contains the evaluation results
type Result struct {
	Violations []Violation `json:"violations"`
	Summary    Summary     `json:"summary"`
}

// Summary provides aggregate counts
type Summary struct {
	TotalViolations int `json:"total_violations"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
	Info            int `json:"info"`
}

// namingOutput is the part of the naming package the engine reads.
type namingOutput struct {
	Violations []Violation `json:"all_violations"`
	Summary    Summary     `json:"summary"`
}

// New creates a policy engine from the built-in policies plus every
// .rego file in extraDir, when set.
func New(extraDir string) (*Engine, error) {
	opts := []func(*rego.Rego){rego.Query(namingPackage)}

	err := fs.WalkDir(builtinPolicies, "policies", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		content, err := builtinPolicies.ReadFile(path)
		if err != nil {
			return err
		}
		opts = append(opts, rego.Module(path, string(content)))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading built-in policies: %w", err)
	}

	if extraDir != "" {
		files, err := filepath.Glob(filepath.Join(extraDir, "*.rego"))
		if err != nil {
			return nil, fmt.Errorf("finding policy files: %w", err)
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("no policy files found in %s", extraDir)
		}
		for _, f := range files {
			content, err := os.ReadFile(f)
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", f, err)
			}
			opts = append(opts, rego.Module(f, string(content)))
		}
	}

	query, err := rego.New(opts...).PrepareForEval(context.Background())
	if err != nil {
		return nil, fmt.Errorf("preparing policy query: %w", err)
	}
	return &Engine{query: query}, nil
}

// Evaluate runs the policies against the fact tables
func (e *Engine) Evaluate(ctx context.Context, tables facts.Tables) (*Result, error) {
	input, err := roundTrip[map[string]interface{}](tables)
	if err != nil {
		return nil, fmt.Errorf("converting input: %w", err)
	}

	rs, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return nil, fmt.Errorf("evaluating policies: %w", err)
	}
	if len(rs) == 0 || len(rs[0].Expressions) == 0 {
		return &Result{}, nil
	}

	out, err := roundTrip[namingOutput](rs[0].Expressions[0].Value)
	if err != nil {
		return nil, fmt.Errorf("decoding policy output: %w", err)
	}
	return &Result{Violations: out.Violations, Summary: out.Summary}, nil
}

// ApplyOverrides rewrites rule severities from rules (rule name to
// severity). Rules set to "off" are dropped. The summary is recomputed.
func (r *Result) ApplyOverrides(rules map[string]string) {
	if len(rules) == 0 {
		return
	}
	kept := r.Violations[:0]
	for _, v := range r.Violations {
		if sev, ok := rules[v.Rule]; ok {
			if sev == SeverityOff {
				continue
			}
			v.Severity = sev
		}
		kept = append(kept, v)
	}
	r.Violations = kept
	r.Summary = summarize(r.Violations)
}

// HasErrors reports whether any violation has error severity.
func (r *Result) HasErrors() bool {
	for _, v := range r.Violations {
		if v.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Sorted returns the violations ordered by severity, block and rule.
func (r *Result) Sorted() []Violation {
	out := append([]Violation(nil), r.Violations...)
	sort.SliceStable(out, func(i, j int) bool {
		if ri, rj := severityRank(out[i].Severity), severityRank(out[j].Severity); ri != rj {
			return ri < rj
		}
		if out[i].Block != out[j].Block {
			return out[i].Block < out[j].Block
		}
		return out[i].Rule < out[j].Rule
	})
	return out
}

func severityRank(s string) int {
	switch s {
	case SeverityError:
		return 0
	case SeverityWarning:
		return 1
	case SeverityInfo:
		return 2
	}
	return 3
}

func summarize(vs []Violation) Summary {
	s := Summary{TotalViolations: len(vs)}
	for _, v := range vs {
		switch v.Severity {
		case SeverityError:
			s.Errors++
		case SeverityWarning:
			s.Warnings++
		case SeverityInfo:
			s.Info++
		}
	}
	return s
}

// roundTrip converts v to T through its JSON encoding.
func roundTrip[T any](v interface{}) (T, error) {
	var out T
	raw, err := json.Marshal(v)
	if err != nil {
		return out, err
	}
	err = json.Unmarshal(raw, &out)
	return out, err
}
