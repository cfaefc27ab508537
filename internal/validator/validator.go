package validator

// =============================================================================
// VALIDATOR: THE INPUT CONTRACT
// =============================================================================
//
// The generator trusts its input. Names, bit ranges and access modes are
// spliced into SystemVerilog without further checks, so a misspelled key
// or a bad access mode must stop the run here, with a message naming the
// offending path, rather than surface as broken RTL.
//
// WHEN VALIDATION FAILS:
// 1. Fix the description, not the schema.
// 2. Extend schema.cue only together with ipblock.Description and Build.
// =============================================================================

import (
	"embed"
	"encoding/json"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
)

//go:embed schema.cue facts_schema.cue
var schemaFS embed.FS

// contract is one definition of an embedded schema file.
type contract struct {
	ctx  *cue.Context
	def  cue.Value
	name string
}

func loadContract(file, definition string) (contract, error) {
	src, err := schemaFS.ReadFile(file)
	if err != nil {
		return contract{}, fmt.Errorf("loading embedded %s: %w", file, err)
	}

	ctx := cuecontext.New()
	schema := ctx.CompileBytes(src, cue.Filename(file))
	if schema.Err() != nil {
		return contract{}, fmt.Errorf("compiling %s: %w", file, schema.Err())
	}
	def := schema.LookupPath(cue.ParsePath(definition))
	if def.Err() != nil {
		return contract{}, fmt.Errorf("looking up %s: %w", definition, def.Err())
	}
	return contract{ctx: ctx, def: def, name: definition}, nil
}

// check unifies v with the definition and requires a concrete result.
func (c contract) check(v cue.Value) (cue.Value, error) {
	unified := c.def.Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return cue.Value{}, err
	}
	return unified, nil
}

func (c contract) compileData(data interface{}) (cue.Value, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return cue.Value{}, fmt.Errorf("marshaling data to JSON: %w", err)
	}
	v := c.ctx.CompileBytes(raw)
	if v.Err() != nil {
		return cue.Value{}, fmt.Errorf("compiling JSON as CUE: %w", v.Err())
	}
	return v, nil
}

// Validator checks IP block descriptions against the #IpBlock schema.
type Validator struct {
	contract
}

// New creates a new Validator with the embedded CUE schema
func New() (*Validator, error) {
	c, err := loadContract("schema.cue", "#IpBlock")
	if err != nil {
		return nil, err
	}
	return &Validator{contract: c}, nil
}

// Concrete compiles src (CUE or JSON), unifies it with #IpBlock and
// returns the result as JSON with every default filled in.
func (v *Validator) Concrete(src []byte, filename string) ([]byte, error) {
	value := v.ctx.CompileBytes(src, cue.Filename(filename))
	if value.Err() != nil {
		return nil, fmt.Errorf("compiling %s: %w", filename, value.Err())
	}

	unified, err := v.check(value)
	if err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	out, err := unified.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("exporting %s: %w", filename, err)
	}
	return out, nil
}

// Validate checks that data, marshaled to JSON, conforms to #IpBlock.
func (v *Validator) Validate(data interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshaling data to JSON: %w", err)
	}
	return v.ValidateJSON(raw)
}

// ValidateJSON validates JSON bytes directly against the schema
func (v *Validator) ValidateJSON(raw []byte) error {
	value := v.ctx.CompileBytes(raw)
	if value.Err() != nil {
		return fmt.Errorf("compiling JSON as CUE: %w", value.Err())
	}
	if _, err := v.check(value); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// ValidationErrors returns one message per schema violation in data.
func (v *Validator) ValidationErrors(data interface{}) []string {
	value, err := v.compileData(data)
	if err != nil {
		return []string{err.Error()}
	}
	_, err = v.check(value)
	if err == nil {
		return nil
	}

	var msgs []string
	for _, e := range errors.Errors(err) {
		msgs = append(msgs, e.Error())
	}
	return msgs
}

// FactsValidator validates relational fact tables against #FactTables.
type FactsValidator struct {
	contract
}

// NewFactsValidator creates a validator for relational fact tables.
func NewFactsValidator() (*FactsValidator, error) {
	c, err := loadContract("facts_schema.cue", "#FactTables")
	if err != nil {
		return nil, err
	}
	return &FactsValidator{contract: c}, nil
}

// Validate checks that the fact tables conform to the facts schema.
func (v *FactsValidator) Validate(data interface{}) error {
	value, err := v.compileData(data)
	if err != nil {
		return err
	}
	if _, err := v.check(value); err != nil {
		return fmt.Errorf("facts schema validation failed: %w", err)
	}
	return nil
}
