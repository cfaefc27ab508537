package ipblock

// SwAccess is the software access mode of a register or field.
type SwAccess string

const (
	SwRO    SwAccess = "ro"
	SwRW    SwAccess = "rw"
	SwWO    SwAccess = "wo"
	SwRC    SwAccess = "rc"
	SwRW1C  SwAccess = "rw1c"
	SwRW1S  SwAccess = "rw1s"
	SwRW0C  SwAccess = "rw0c"
	SwR0W1C SwAccess = "r0w1c"
)

// Readable reports whether software can read the value back.
func (a SwAccess) Readable() bool {
	return a != SwWO
}

// Writable reports whether software writes have any effect.
func (a SwAccess) Writable() bool {
	return a != SwRO && a != SwRC
}

// SubregAccess is the prim_subreg_pkg access enum name for a.
func (a SwAccess) SubregAccess() string {
	switch a {
	case SwRO:
		return "SwAccessRO"
	case SwWO:
		return "SwAccessWO"
	case SwRC:
		return "SwAccessRC"
	case SwRW1C:
		return "SwAccessW1C"
	case SwRW1S:
		return "SwAccessW1S"
	case SwRW0C:
		return "SwAccessW0C"
	case SwR0W1C:
		return "SwAccessW1C"
	default:
		return "SwAccessRW"
	}
}

// HwAccess is the hardware access mode of a register or field.
type HwAccess string

const (
	HwRO   HwAccess = "hro"
	HwRW   HwAccess = "hrw"
	HwWO   HwAccess = "hwo"
	HwNone HwAccess = "none"
)

// Reads reports whether hardware consumes the value (reg2hw).
func (a HwAccess) Reads() bool {
	return a == HwRO || a == HwRW
}

// Writes reports whether hardware drives the value (hw2reg).
func (a HwAccess) Writes() bool {
	return a == HwWO || a == HwRW
}
