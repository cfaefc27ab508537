// Package reggen derives the identifiers used in generated register
// packages and modules: address-width parameters, type prefixes and the
// names of the reg2hw / hw2reg transfer types.
package reggen

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/robert-at-pretension-io/reggen/internal/ipblock"
)

// Direction selects one side of the hardware/software boundary.
type Direction int

const (
	// Reg2Hw carries register values to hardware.
	Reg2Hw Direction = iota
	// Hw2Reg carries hardware updates to registers.
	Hw2Reg
)

func (d Direction) String() string {
	if d == Hw2Reg {
		return "hw2reg"
	}
	return "reg2hw"
}

// EscapeName lower-cases name and replaces spaces with underscores.
func EscapeName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

// BoxQuote frames msg in a three-line banner comment.
func BoxQuote(msg, indent string) string {
	hr := indent + strings.Repeat("/", len(msg)+6)
	middle := indent + "// " + msg + " //"
	return strings.Join([]string{hr, middle, hr}, "\n")
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// AddressWidthParamName is the address-width parameter for an interface:
// IfaceAw for the unnamed interface, FooAw for one called foo.
func AddressWidthParamName(iface ipblock.IfaceName) string {
	name, ok := iface.Get()
	if !ok || name == "" {
		name = "Iface"
	}
	return capitalize(name) + "Aw"
}

// AddrWidth is one entry of AddressWidths.
type AddrWidth struct {
	Iface ipblock.IfaceName
	Param string
	Width int
}

// AddressWidths returns the address-width parameters of every device
// interface in RegBlocks order. A block whose only interface is unnamed
// gets the single parameter BlockAw.
func AddressWidths(block *ipblock.IpBlock) []AddrWidth {
	if len(block.RegBlocks) == 0 {
		panic("reggen: block " + block.Name + " has no device interfaces")
	}
	if len(block.RegBlocks) == 1 && block.RegBlocks[0].Name.IsUnnamed() {
		return []AddrWidth{{
			Iface: ipblock.Unnamed,
			Param: "BlockAw",
			Width: block.RegBlocks[0].Regs.AddrWidth(),
		}}
	}

	widths := make([]AddrWidth, 0, len(block.RegBlocks))
	for _, iface := range block.RegBlocks {
		widths = append(widths, AddrWidth{
			Iface: iface.Name,
			Param: AddressWidthParamName(iface.Name),
			Width: iface.Regs.AddrWidth(),
		})
	}
	return widths
}

// AddressWidthParam returns the parameter name AddressWidths assigns to
// iface.
func AddressWidthParam(block *ipblock.IpBlock, iface ipblock.IfaceName) string {
	for _, aw := range AddressWidths(block) {
		if aw.Iface == iface {
			return aw.Param
		}
	}
	return AddressWidthParamName(iface)
}

// TypeNamePrefix is the block name, suffixed with the interface name for
// named interfaces.
func TypeNamePrefix(block *ipblock.IpBlock, iface ipblock.IfaceName) string {
	pfx := strings.ToLower(block.Name)
	if name, ok := iface.Get(); ok {
		pfx += "_" + strings.ToLower(name)
	}
	return pfx
}

// RepresentativeRegister returns the register standing in for rb.
func RepresentativeRegister(rb ipblock.RegBase) *ipblock.Register {
	return rb.R0()
}

// InterfaceTransferTypeName is the aggregate type carrying every register
// of one interface in direction dir.
func InterfaceTransferTypeName(block *ipblock.IpBlock, iface ipblock.IfaceName, dir Direction) string {
	return strings.Join([]string{TypeNamePrefix(block, iface), dir.String(), "t"}, "_")
}

// RegisterTransferTypeName is the type carrying one register (or one
// multireg element) in direction dir.
func RegisterTransferTypeName(block *ipblock.IpBlock, rb ipblock.RegBase, dir Direction) string {
	suffix := "reg_t"
	if rb.IsMulti() {
		suffix = "mreg_t"
	}
	r0 := RepresentativeRegister(rb)
	return strings.Join([]string{
		strings.ToLower(block.Name),
		dir.String(),
		strings.ToLower(r0.Name),
		suffix,
	}, "_")
}
