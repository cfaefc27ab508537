package ipblock

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
)

// BitRange is an inclusive msb:lsb range within a register.
type BitRange struct {
	Msb int
	Lsb int
}

// Width is the number of bits in the range.
func (b BitRange) Width() int {
	return b.Msb - b.Lsb + 1
}

// Mask has the low Width bits set.
func (b BitRange) Mask() uint64 {
	if b.Width() >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(b.Width())) - 1
}

// String renders the range the way descriptions spell it.
func (b BitRange) String() string {
	if b.Msb == b.Lsb {
		return fmt.Sprintf("%d", b.Msb)
	}
	return fmt.Sprintf("%d:%d", b.Msb, b.Lsb)
}

// bitSpec is the grammar for a field's bits attribute: "7:0" or "3".
type bitSpec struct {
	Msb int  `parser:"@Int"`
	Lsb *int `parser:"( ':' @Int )?"`
}

var bitsParser = participle.MustBuild[bitSpec]()

// ParseBits parses a bits attribute.
func ParseBits(s string) (BitRange, error) {
	spec, err := bitsParser.ParseString("", s)
	if err != nil {
		return BitRange{}, fmt.Errorf("parse error: %w", err)
	}
	r := BitRange{Msb: spec.Msb, Lsb: spec.Msb}
	if spec.Lsb != nil {
		r.Lsb = *spec.Lsb
	}
	if r.Lsb > r.Msb {
		return BitRange{}, fmt.Errorf("bit range %q has lsb above msb", s)
	}
	return r, nil
}
