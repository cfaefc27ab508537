package ipblock

import (
	"math/bits"
)

// IfaceName names a device interface. The zero value is the unnamed
// interface, which is distinct from an interface named "".
type IfaceName struct {
	name  string
	named bool
}

// Unnamed is the sentinel for a block's anonymous device interface.
var Unnamed = IfaceName{}

// Named returns the interface name s.
func Named(s string) IfaceName {
	return IfaceName{name: s, named: true}
}

// Get returns the interface name and whether it is set.
func (n IfaceName) Get() (string, bool) {
	return n.name, n.named
}

// IsUnnamed reports whether n is the unnamed sentinel.
func (n IfaceName) IsUnnamed() bool {
	return !n.named
}

// String returns the name, or "" for the unnamed interface.
func (n IfaceName) String() string {
	return n.name
}

// Interface is one entry of IpBlock.RegBlocks.
type Interface struct {
	Name IfaceName
	Regs *RegBlock
}

// Param is a block parameter as declared in the description.
type Param struct {
	Name    string
	Type    string
	Default string
	Desc    string
	Local   bool
	Expose  bool
}

// IpBlock is a validated, immutable description of a hardware block.
type IpBlock struct {
	Name      string
	AliasImpl string
	RegWidth  int
	Params    []Param

	// RegBlocks is in generation order.
	RegBlocks []Interface
}

// Interface returns the register block for name.
func (b *IpBlock) Interface(name IfaceName) (*RegBlock, bool) {
	for _, iface := range b.RegBlocks {
		if iface.Name == name {
			return iface.Regs, true
		}
	}
	return nil, false
}

// HasUnnamed reports whether the block has an unnamed interface.
func (b *IpBlock) HasUnnamed() bool {
	_, ok := b.Interface(Unnamed)
	return ok
}

// RegBlock is one address-mapped register interface.
type RegBlock struct {
	RegWidth int
	Entries  []RegBase

	// Flat holds every concrete register in address order.
	Flat []*Register

	// Size is the first byte offset past the last register.
	Size uint64
}

// AddrWidth is the number of address bits needed to reach every byte
// of the block.
func (rb *RegBlock) AddrWidth() int {
	if rb.Size == 0 {
		return 1
	}
	return bits.Len64(rb.Size - 1)
}

// Registers returns the plain (non-multi) entries.
func (rb *RegBlock) Registers() []*Register {
	var out []*Register
	for _, e := range rb.Entries {
		if r, ok := e.(*Register); ok {
			out = append(out, r)
		}
	}
	return out
}

// MultiRegs returns the multireg entries.
func (rb *RegBlock) MultiRegs() []*MultiRegister {
	var out []*MultiRegister
	for _, e := range rb.Entries {
		if m, ok := e.(*MultiRegister); ok {
			out = append(out, m)
		}
	}
	return out
}

// Index returns the position of r within Flat, or -1.
func (rb *RegBlock) Index(r *Register) int {
	for i, f := range rb.Flat {
		if f == r {
			return i
		}
	}
	return -1
}
