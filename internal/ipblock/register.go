package ipblock

// RegBase is either a *Register or a *MultiRegister. Callers that need a
// single register to stand in for the entry use R0.
type RegBase interface {
	GetName() string
	// R0 is the representative register: the register itself, or the
	// first instance of a multireg.
	R0() *Register
	// Template is the register whose fields describe one element of the
	// entry's transfer type.
	Template() *Register
	// Instances are the concrete registers this entry occupies.
	Instances() []*Register
	IsMulti() bool

	isRegBase()
}

// Field is a contiguous bit range within a register.
type Field struct {
	Name     string
	Desc     string
	Bits     BitRange
	ResVal   uint64
	SwAccess SwAccess
	HwAccess HwAccess

	// TemplateName and MrIndex locate a multireg instance field within
	// the multireg's transfer array. For plain registers TemplateName is
	// Name and MrIndex is 0.
	TemplateName string
	MrIndex      int
}

// Width is the number of bits in the field.
func (f *Field) Width() int {
	return f.Bits.Width()
}

// Register is a single addressable register.
type Register struct {
	Name     string
	Desc     string
	Offset   uint64
	Width    int
	SwAccess SwAccess
	HwAccess HwAccess
	HwExt    bool
	HwQe     bool
	Fields   []*Field
}

func (r *Register) GetName() string        { return r.Name }
func (r *Register) R0() *Register          { return r }
func (r *Register) Template() *Register    { return r }
func (r *Register) Instances() []*Register { return []*Register{r} }
func (r *Register) IsMulti() bool          { return false }
func (r *Register) isRegBase()             {}

// ResVal is the register reset value assembled from its fields.
func (r *Register) ResVal() uint64 {
	var v uint64
	for _, f := range r.Fields {
		v |= (f.ResVal & f.Bits.Mask()) << uint(f.Bits.Lsb)
	}
	return v
}

// Reg2HwFields are the fields hardware reads.
func (r *Register) Reg2HwFields() []*Field {
	var out []*Field
	for _, f := range r.Fields {
		if f.HwAccess.Reads() {
			out = append(out, f)
		}
	}
	return out
}

// Hw2RegFields are the fields hardware writes.
func (r *Register) Hw2RegFields() []*Field {
	var out []*Field
	for _, f := range r.Fields {
		if f.HwAccess.Writes() {
			out = append(out, f)
		}
	}
	return out
}

// Writable reports whether any field accepts software writes.
func (r *Register) Writable() bool {
	for _, f := range r.Fields {
		if f.SwAccess.Writable() {
			return true
		}
	}
	return false
}

// MultiRegister is a register template replicated Count times.
type MultiRegister struct {
	Name    string
	Desc    string
	Count   int
	CName   string
	Compact bool

	// Reg is the template as declared in the description.
	Reg *Register

	// PRegs is never empty.
	PRegs []*Register
}

func (m *MultiRegister) GetName() string        { return m.Name }
func (m *MultiRegister) R0() *Register          { return m.PRegs[0] }
func (m *MultiRegister) Template() *Register    { return m.Reg }
func (m *MultiRegister) Instances() []*Register { return m.PRegs }
func (m *MultiRegister) IsMulti() bool          { return true }
func (m *MultiRegister) isRegBase()             {}
