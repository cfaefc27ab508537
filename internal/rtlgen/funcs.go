package rtlgen

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/robert-at-pretension-io/reggen/internal/ipblock"
	"github.com/robert-at-pretension-io/reggen/internal/reggen"
)

// FuncMap is the helper set available to every template.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"lower":       strings.ToLower,
		"upper":       strings.ToUpper,
		"escape":      reggen.EscapeName,
		"boxQuote":    reggen.BoxQuote,
		"addrWidths":  reggen.AddressWidths,
		"awParam":     reggen.AddressWidthParam,
		"typePrefix":  reggen.TypeNamePrefix,
		"ifaceTxType": ifaceTxType,
		"regTxType":   regTxType,
		"renderParam": reggen.RenderParameter,
		"pkgName":     PackageName,
		"txFields":    txFields,
		"txEntries":   txEntries,
		"fieldPath":   fieldPath,
		"logicDecl":   logicDecl,
		"hexLit":      hexLit,
		"add":         func(a, b int) int { return a + b },
		"sub":         func(a, b int) int { return a - b },
		"div":         func(a, b int) int { return a / b },
	}
}

func parseDirection(s string) (reggen.Direction, error) {
	switch s {
	case "reg2hw":
		return reggen.Reg2Hw, nil
	case "hw2reg":
		return reggen.Hw2Reg, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

func ifaceTxType(block *ipblock.IpBlock, iface ipblock.IfaceName, dir string) (string, error) {
	d, err := parseDirection(dir)
	if err != nil {
		return "", err
	}
	return reggen.InterfaceTransferTypeName(block, iface, d), nil
}

func regTxType(block *ipblock.IpBlock, rb ipblock.RegBase, dir string) (string, error) {
	d, err := parseDirection(dir)
	if err != nil {
		return "", err
	}
	return reggen.RegisterTransferTypeName(block, rb, d), nil
}

// txFields returns the fields of r that cross the boundary in dir.
func txFields(r *ipblock.Register, dir string) ([]*ipblock.Field, error) {
	d, err := parseDirection(dir)
	if err != nil {
		return nil, err
	}
	if d == reggen.Hw2Reg {
		return r.Hw2RegFields(), nil
	}
	return r.Reg2HwFields(), nil
}

// txEntries returns the entries of rb with at least one field in dir.
func txEntries(rb *ipblock.RegBlock, dir string) ([]ipblock.RegBase, error) {
	var out []ipblock.RegBase
	for _, e := range rb.Entries {
		fields, err := txFields(e.Template(), dir)
		if err != nil {
			return nil, err
		}
		if len(fields) > 0 {
			out = append(out, e)
		}
	}
	return out, nil
}

// fieldPath is the member of the interface transfer struct that carries
// field f of entry e, e.g. "intr[3]" or "ctrl.tx".
func fieldPath(e ipblock.RegBase, f *ipblock.Field, dir string) (string, error) {
	path := strings.ToLower(e.GetName())
	if e.IsMulti() {
		path += fmt.Sprintf("[%d]", f.MrIndex)
	}
	fields, err := txFields(e.Template(), dir)
	if err != nil {
		return "", err
	}
	if len(fields) > 1 {
		path += "." + strings.ToLower(f.TemplateName)
	}
	return path, nil
}

func logicDecl(width int) string {
	if width <= 1 {
		return "logic"
	}
	return fmt.Sprintf("logic [%d:0]", width-1)
}

func hexLit(width int, v uint64) string {
	return fmt.Sprintf("%d'h%x", width, v)
}
