package ipblock

import (
	"fmt"
	"math/big"
	"strings"
)

const defaultRegWidth = 32

// Build turns a decoded description into an IpBlock. It assigns register
// offsets, expands multiregs and rejects descriptions the generator could
// not name consistently (duplicate interfaces or registers, fields outside
// the register, skipto moving backwards).
func Build(desc Description) (*IpBlock, error) {
	if desc.Name == "" {
		return nil, fmt.Errorf("block has no name")
	}
	if len(desc.Interfaces) == 0 {
		return nil, fmt.Errorf("block %s has no device interfaces", desc.Name)
	}

	regWidth := desc.RegWidth
	if regWidth == 0 {
		regWidth = defaultRegWidth
	}
	if regWidth%8 != 0 || regWidth > 64 {
		return nil, fmt.Errorf("block %s: unsupported regwidth %d", desc.Name, regWidth)
	}

	block := &IpBlock{
		Name:      desc.Name,
		AliasImpl: desc.AliasImpl,
		RegWidth:  regWidth,
	}

	params, err := buildParams(desc.Params)
	if err != nil {
		return nil, fmt.Errorf("block %s: %w", desc.Name, err)
	}
	block.Params = params

	seen := make(map[string]bool)
	regNames := make(map[string]string)
	for i, ifd := range desc.Interfaces {
		name := Unnamed
		key := ""
		if ifd.Name != nil {
			name = Named(*ifd.Name)
			key = "iface:" + strings.ToLower(*ifd.Name)
		}
		if seen[key] {
			if name.IsUnnamed() {
				return nil, fmt.Errorf("block %s: more than one unnamed interface", desc.Name)
			}
			return nil, fmt.Errorf("block %s: duplicate interface %q", desc.Name, name)
		}
		seen[key] = true

		rb, err := buildRegBlock(ifd.Registers, regWidth)
		if err != nil {
			return nil, fmt.Errorf("block %s interface %d: %w", desc.Name, i, err)
		}
		for _, e := range rb.Entries {
			lname := strings.ToLower(e.GetName())
			if prev, dup := regNames[lname]; dup {
				return nil, fmt.Errorf("block %s: register %s also defined in interface %s", desc.Name, e.GetName(), prev)
			}
			regNames[lname] = ifaceLabel(name)
		}
		block.RegBlocks = append(block.RegBlocks, Interface{Name: name, Regs: rb})
	}

	return block, nil
}

func ifaceLabel(n IfaceName) string {
	if n.IsUnnamed() {
		return "<unnamed>"
	}
	return n.String()
}

func buildParams(descs []ParamDesc) ([]Param, error) {
	var params []Param
	seen := make(map[string]bool)
	for _, pd := range descs {
		if seen[pd.Name] {
			return nil, fmt.Errorf("duplicate parameter %s", pd.Name)
		}
		seen[pd.Name] = true

		p := Param{
			Name:    pd.Name,
			Type:    pd.Type,
			Default: pd.Default,
			Desc:    pd.Desc,
			Local:   pd.Local == nil || *pd.Local,
			Expose:  pd.Expose,
		}
		if p.Type == "" {
			p.Type = "int"
		}
		if p.Type == "int" || p.Type == "int unsigned" {
			if _, err := ParseInt(p.Default); err != nil {
				return nil, fmt.Errorf("parameter %s: %w", p.Name, err)
			}
		}
		params = append(params, p)
	}
	return params, nil
}

// ParseInt parses an integer literal the way description files spell
// them: decimal, or 0x / 0o / 0b prefixed, optionally signed, with
// underscores between digits. A plain digit string is always decimal,
// leading zeros included.
func ParseInt(s string) (*big.Int, error) {
	text := strings.TrimSpace(s)
	base := 0
	if isDecimal(strings.TrimLeft(text, "+-")) {
		base = 10
	}
	v, ok := new(big.Int).SetString(text, base)
	if !ok {
		return nil, fmt.Errorf("%q is not an integer", s)
	}
	return v, nil
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

type regBuilder struct {
	regWidth int
	stride   uint64
	offset   uint64
	rb       *RegBlock
	names    map[string]bool
}

func buildRegBlock(entries []EntryDesc, regWidth int) (*RegBlock, error) {
	b := &regBuilder{
		regWidth: regWidth,
		stride:   uint64(regWidth / 8),
		rb:       &RegBlock{RegWidth: regWidth},
		names:    make(map[string]bool),
	}

	for i, e := range entries {
		switch {
		case e.SkipTo != nil:
			if err := b.skipTo(*e.SkipTo); err != nil {
				return nil, fmt.Errorf("entry %d: %w", i, err)
			}
		case e.Multireg != nil:
			if err := b.addMultiReg(*e.Multireg); err != nil {
				return nil, fmt.Errorf("entry %d: %w", i, err)
			}
		default:
			reg, err := b.newRegister(e.RegisterDesc)
			if err != nil {
				return nil, fmt.Errorf("entry %d: %w", i, err)
			}
			if err := b.claim(reg.Name); err != nil {
				return nil, fmt.Errorf("entry %d: %w", i, err)
			}
			b.place(reg)
			b.rb.Entries = append(b.rb.Entries, reg)
		}
	}

	b.rb.Size = b.offset
	return b.rb, nil
}

func (b *regBuilder) skipTo(addr uint64) error {
	if addr%b.stride != 0 {
		return fmt.Errorf("skipto 0x%x is not aligned to %d bytes", addr, b.stride)
	}
	if addr < b.offset {
		return fmt.Errorf("skipto 0x%x moves backwards from 0x%x", addr, b.offset)
	}
	b.offset = addr
	return nil
}

func (b *regBuilder) claim(name string) error {
	lname := strings.ToLower(name)
	if b.names[lname] {
		return fmt.Errorf("duplicate register %s", name)
	}
	b.names[lname] = true
	return nil
}

func (b *regBuilder) place(r *Register) {
	r.Offset = b.offset
	b.offset += b.stride
	b.rb.Flat = append(b.rb.Flat, r)
}

func (b *regBuilder) newRegister(rd RegisterDesc) (*Register, error) {
	if rd.Name == "" {
		return nil, fmt.Errorf("register has no name")
	}
	if len(rd.Fields) == 0 {
		return nil, fmt.Errorf("register %s has no fields", rd.Name)
	}
	reg := &Register{
		Name:     rd.Name,
		Desc:     rd.Desc,
		Width:    b.regWidth,
		SwAccess: SwAccess(rd.SwAccess),
		HwAccess: HwAccess(rd.HwAccess),
		HwExt:    rd.HwExt,
		HwQe:     rd.HwQe,
	}
	if reg.SwAccess == "" {
		reg.SwAccess = SwRW
	}
	if reg.HwAccess == "" {
		reg.HwAccess = HwRO
	}

	for _, fd := range rd.Fields {
		bits, err := ParseBits(fd.Bits)
		if err != nil {
			return nil, fmt.Errorf("register %s field %s: %w", rd.Name, fd.Name, err)
		}
		if bits.Msb >= b.regWidth {
			return nil, fmt.Errorf("register %s field %s: bits %s exceed register width %d",
				rd.Name, fd.Name, bits, b.regWidth)
		}
		f := &Field{
			Name:         fd.Name,
			Desc:         fd.Desc,
			Bits:         bits,
			ResVal:       fd.ResVal,
			SwAccess:     SwAccess(fd.SwAccess),
			HwAccess:     HwAccess(fd.HwAccess),
			TemplateName: fd.Name,
		}
		if f.SwAccess == "" {
			f.SwAccess = reg.SwAccess
		}
		if f.HwAccess == "" {
			f.HwAccess = reg.HwAccess
		}
		reg.Fields = append(reg.Fields, f)
	}
	return reg, nil
}

func (b *regBuilder) addMultiReg(md MultiRegDesc) error {
	tmpl, err := b.newRegister(md.RegisterDesc)
	if err != nil {
		return err
	}
	if md.Count < 1 {
		return fmt.Errorf("multireg %s: count must be at least 1", md.Name)
	}
	mr := &MultiRegister{
		Name:    md.Name,
		Desc:    md.Desc,
		Count:   md.Count,
		CName:   md.CName,
		Compact: md.Compact == nil || *md.Compact,
		Reg:     tmpl,
	}
	if err := b.claim(mr.Name); err != nil {
		return err
	}

	perReg := 1
	if mr.Compact && len(tmpl.Fields) == 1 && tmpl.Fields[0].Bits.Lsb == 0 {
		perReg = b.regWidth / tmpl.Fields[0].Width()
	}
	numRegs := (mr.Count + perReg - 1) / perReg

	for ri := 0; ri < numRegs; ri++ {
		name := mr.Name
		if numRegs > 1 {
			name = fmt.Sprintf("%s_%d", mr.Name, ri)
			if err := b.claim(name); err != nil {
				return err
			}
		}
		inst := &Register{
			Name:     name,
			Desc:     mr.Desc,
			Width:    b.regWidth,
			SwAccess: tmpl.SwAccess,
			HwAccess: tmpl.HwAccess,
			HwExt:    tmpl.HwExt,
			HwQe:     tmpl.HwQe,
		}
		if perReg > 1 {
			tf := tmpl.Fields[0]
			for k := 0; k < perReg; k++ {
				idx := ri*perReg + k
				if idx >= mr.Count {
					break
				}
				lsb := k * tf.Width()
				inst.Fields = append(inst.Fields, &Field{
					Name:         fmt.Sprintf("%s_%d", tf.Name, idx),
					Desc:         tf.Desc,
					Bits:         BitRange{Msb: lsb + tf.Width() - 1, Lsb: lsb},
					ResVal:       tf.ResVal,
					SwAccess:     tf.SwAccess,
					HwAccess:     tf.HwAccess,
					TemplateName: tf.Name,
					MrIndex:      idx,
				})
			}
		} else {
			for _, tf := range tmpl.Fields {
				f := *tf
				f.MrIndex = ri
				inst.Fields = append(inst.Fields, &f)
			}
		}
		b.place(inst)
		mr.PRegs = append(mr.PRegs, inst)
	}

	b.rb.Entries = append(b.rb.Entries, mr)
	return nil
}
