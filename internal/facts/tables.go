package facts

import (
	"path/filepath"
	"sort"

	"github.com/robert-at-pretension-io/reggen/internal/ipblock"
	"github.com/robert-at-pretension-io/reggen/internal/reggen"
	"github.com/robert-at-pretension-io/reggen/internal/rtlgen"
)

// Tables is the relational view of a generation plan. Each slice is a
// relation with flat rows; the naming policies query it.
type Tables struct {
	Artifacts  []ArtifactRow  `json:"artifacts"`
	Interfaces []InterfaceRow `json:"interfaces"`
	Registers  []RegisterRow  `json:"registers"`
	Params     []ParamRow     `json:"params"`
}

// ArtifactRow is one file a generation run would write.
type ArtifactRow struct {
	Block     string `json:"block"`
	Kind      string `json:"kind"`
	Path      string `json:"path"`
	Module    string `json:"module"`
	Interface string `json:"interface"`
	Template  string `json:"template"`
}

// InterfaceRow describes one device interface and its derived names.
type InterfaceRow struct {
	Block      string `json:"block"`
	Interface  string `json:"interface"`
	Named      bool   `json:"named"`
	AwParam    string `json:"aw_param"`
	AddrWidth  int    `json:"addr_width"`
	Reg2HwType string `json:"reg2hw_type"`
	Hw2RegType string `json:"hw2reg_type"`
	Registers  int    `json:"registers"`
}

// RegisterRow is one register or multireg entry.
type RegisterRow struct {
	Block      string `json:"block"`
	Interface  string `json:"interface"`
	Name       string `json:"name"`
	Offset     uint64 `json:"offset"`
	Multi      bool   `json:"multi"`
	Instances  int    `json:"instances"`
	Reg2HwType string `json:"reg2hw_type"`
	Hw2RegType string `json:"hw2reg_type"`
}

// ParamRow is a block parameter with its rendered literal.
type ParamRow struct {
	Block   string `json:"block"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Value   string `json:"value"`
	Literal string `json:"literal"`
}

func emptyTables() Tables {
	return Tables{
		Artifacts:  []ArtifactRow{},
		Interfaces: []InterfaceRow{},
		Registers:  []RegisterRow{},
		Params:     []ParamRow{},
	}
}

// BuildTables flattens the plans of every block, as they would be written
// into outdir, into the relational model.
func BuildTables(blocks []*ipblock.IpBlock, outdir, ext string) Tables {
	tables := emptyTables()

	for _, block := range blocks {
		for _, a := range rtlgen.Plan(block, ext) {
			tables.Artifacts = append(tables.Artifacts, ArtifactRow{
				Block:     block.Name,
				Kind:      string(a.Kind),
				Path:      filepath.Join(outdir, a.File),
				Module:    a.Name,
				Interface: a.Iface.String(),
				Template:  string(a.Template),
			})
		}

		for _, aw := range reggen.AddressWidths(block) {
			rb, _ := block.Interface(aw.Iface)
			tables.Interfaces = append(tables.Interfaces, InterfaceRow{
				Block:      block.Name,
				Interface:  aw.Iface.String(),
				Named:      !aw.Iface.IsUnnamed(),
				AwParam:    aw.Param,
				AddrWidth:  aw.Width,
				Reg2HwType: reggen.InterfaceTransferTypeName(block, aw.Iface, reggen.Reg2Hw),
				Hw2RegType: reggen.InterfaceTransferTypeName(block, aw.Iface, reggen.Hw2Reg),
				Registers:  len(rb.Flat),
			})

			for _, e := range rb.Entries {
				tables.Registers = append(tables.Registers, RegisterRow{
					Block:      block.Name,
					Interface:  aw.Iface.String(),
					Name:       e.GetName(),
					Offset:     reggen.RepresentativeRegister(e).Offset,
					Multi:      e.IsMulti(),
					Instances:  len(e.Instances()),
					Reg2HwType: reggen.RegisterTransferTypeName(block, e, reggen.Reg2Hw),
					Hw2RegType: reggen.RegisterTransferTypeName(block, e, reggen.Hw2Reg),
				})
			}
		}

		for _, p := range block.Params {
			tables.Params = append(tables.Params, ParamRow{
				Block:   block.Name,
				Name:    p.Name,
				Type:    p.Type,
				Value:   p.Default,
				Literal: reggen.RenderParameter(p.Type, p.Default),
			})
		}
	}

	sort.SliceStable(tables.Artifacts, func(i, j int) bool { return tables.Artifacts[i].Path < tables.Artifacts[j].Path })

	return tables
}

// Blocks returns the distinct block names in tables, sorted.
func Blocks(tables Tables) []string {
	seen := make(map[string]bool)
	var out []string
	for _, row := range tables.Artifacts {
		if !seen[row.Block] {
			seen[row.Block] = true
			out = append(out, row.Block)
		}
	}
	sort.Strings(out)
	return out
}
