package reggen

import (
	"fmt"
	"math/big"

	"github.com/robert-at-pretension-io/reggen/internal/ipblock"
)

// UnsignedIntType is the parameter type whose large values need an
// explicitly sized literal.
const UnsignedIntType = "int unsigned"

// RenderParameter renders value as a literal for a parameter of type
// dstType. SystemVerilog reads bare integer literals as signed 32-bit, so
// "int unsigned" values of 2^31 and above are written as 32'h literals.
// Every other value is returned unchanged.
//
// The loader has already checked that "int unsigned" values parse; a
// value that does not is a caller bug and panics.
func RenderParameter(dstType, value string) string {
	if dstType != UnsignedIntType {
		return value
	}
	v, err := ipblock.ParseInt(value)
	if err != nil {
		panic(fmt.Sprintf("reggen: unchecked %s parameter value: %v", UnsignedIntType, err))
	}
	if v.Cmp(signedLimit) >= 0 {
		return fmt.Sprintf("32'h%08x", v)
	}
	return value
}

var signedLimit = new(big.Int).Lsh(big.NewInt(1), 31)
