package ipblock

import (
	"strings"
	"testing"
)

func strPtr(s string) *string { return &s }

func field(name, bits string) FieldDesc {
	return FieldDesc{Name: name, Bits: bits}
}

func TestBuildAssignsOffsetsAndAddrWidth(t *testing.T) {
	skip := uint64(0xfc)
	desc := Description{
		Name: "uart",
		Interfaces: []InterfaceDesc{{
			Registers: []EntryDesc{
				{SkipTo: &skip},
				{RegisterDesc: RegisterDesc{Name: "CTRL", Fields: []FieldDesc{field("tx", "0"), field("nco", "31:16")}}},
			},
		}},
	}

	block, err := Build(desc)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if block.RegWidth != 32 {
		t.Fatalf("expected default regwidth 32, got %d", block.RegWidth)
	}
	if len(block.RegBlocks) != 1 || !block.RegBlocks[0].Name.IsUnnamed() {
		t.Fatalf("expected a single unnamed interface, got %+v", block.RegBlocks)
	}
	rb := block.RegBlocks[0].Regs
	if got := rb.Flat[0].Offset; got != 0xfc {
		t.Fatalf("expected CTRL at 0xfc, got 0x%x", got)
	}
	if got := rb.AddrWidth(); got != 8 {
		t.Fatalf("expected address width 8, got %d", got)
	}
	ctrl := rb.Flat[0]
	if ctrl.Fields[0].SwAccess != SwRW || ctrl.Fields[0].HwAccess != HwRO {
		t.Fatalf("expected fields to inherit rw/hro, got %s/%s", ctrl.Fields[0].SwAccess, ctrl.Fields[0].HwAccess)
	}
}

func TestAddrWidthEdges(t *testing.T) {
	tests := []struct {
		size uint64
		want int
	}{
		{0, 1},
		{4, 2},
		{8, 3},
		{0x100, 8},
		{0x104, 9},
	}
	for _, tt := range tests {
		rb := &RegBlock{Size: tt.size}
		if got := rb.AddrWidth(); got != tt.want {
			t.Errorf("AddrWidth(size=0x%x) = %d, want %d", tt.size, got, tt.want)
		}
	}
}

func TestBuildMultiRegCompaction(t *testing.T) {
	desc := Description{
		Name: "gpio",
		Interfaces: []InterfaceDesc{{
			Registers: []EntryDesc{
				{Multireg: &MultiRegDesc{
					RegisterDesc: RegisterDesc{Name: "INTR", Fields: []FieldDesc{field("en", "3:0")}},
					Count:        8,
					CName:        "pin",
				}},
				{Multireg: &MultiRegDesc{
					RegisterDesc: RegisterDesc{Name: "CFG", Fields: []FieldDesc{field("mode", "1:0"), field("pull", "4")}},
					Count:        3,
					CName:        "pin",
				}},
			},
		}},
	}

	block, err := Build(desc)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	rb := block.RegBlocks[0].Regs
	mrs := rb.MultiRegs()
	if len(mrs) != 2 {
		t.Fatalf("expected 2 multiregs, got %d", len(mrs))
	}

	intr := mrs[0]
	if len(intr.PRegs) != 1 {
		t.Fatalf("expected INTR to compact into 1 register, got %d", len(intr.PRegs))
	}
	if intr.R0().Name != "INTR" {
		t.Fatalf("expected single instance to keep the multireg name, got %s", intr.R0().Name)
	}
	if got := len(intr.R0().Fields); got != 8 {
		t.Fatalf("expected 8 packed fields, got %d", got)
	}
	last := intr.R0().Fields[7]
	if last.Bits != (BitRange{Msb: 31, Lsb: 28}) || last.MrIndex != 7 || last.TemplateName != "en" {
		t.Fatalf("unexpected last packed field %+v", last)
	}

	cfg := mrs[1]
	if len(cfg.PRegs) != 3 {
		t.Fatalf("expected CFG to expand to 3 registers, got %d", len(cfg.PRegs))
	}
	if cfg.R0().Name != "CFG_0" || cfg.PRegs[2].Name != "CFG_2" {
		t.Fatalf("unexpected instance names %s..%s", cfg.R0().Name, cfg.PRegs[2].Name)
	}
	if cfg.PRegs[2].Offset != 12 {
		t.Fatalf("expected CFG_2 at offset 12, got %d", cfg.PRegs[2].Offset)
	}
	if len(rb.Flat) != 4 {
		t.Fatalf("expected 4 concrete registers, got %d", len(rb.Flat))
	}
}

func TestBuildRejects(t *testing.T) {
	back := uint64(0)
	tests := []struct {
		name    string
		desc    Description
		wantErr string
	}{
		{
			name:    "no_interfaces",
			desc:    Description{Name: "x"},
			wantErr: "no device interfaces",
		},
		{
			name: "two_unnamed",
			desc: Description{Name: "x", Interfaces: []InterfaceDesc{
				{}, {},
			}},
			wantErr: "more than one unnamed interface",
		},
		{
			name: "duplicate_named",
			desc: Description{Name: "x", Interfaces: []InterfaceDesc{
				{Name: strPtr("core")}, {Name: strPtr("Core")},
			}},
			wantErr: "duplicate interface",
		},
		{
			name: "field_outside_register",
			desc: Description{Name: "x", Interfaces: []InterfaceDesc{{Registers: []EntryDesc{
				{RegisterDesc: RegisterDesc{Name: "r", Fields: []FieldDesc{field("f", "32")}}},
			}}}},
			wantErr: "exceed register width",
		},
		{
			name: "skipto_backwards",
			desc: Description{Name: "x", Interfaces: []InterfaceDesc{{Registers: []EntryDesc{
				{RegisterDesc: RegisterDesc{Name: "r", Fields: []FieldDesc{field("f", "0")}}},
				{SkipTo: &back},
			}}}},
			wantErr: "moves backwards",
		},
		{
			name: "duplicate_register_across_interfaces",
			desc: Description{Name: "x", Interfaces: []InterfaceDesc{
				{Name: strPtr("a"), Registers: []EntryDesc{{RegisterDesc: RegisterDesc{Name: "r", Fields: []FieldDesc{field("f", "0")}}}}},
				{Name: strPtr("b"), Registers: []EntryDesc{{RegisterDesc: RegisterDesc{Name: "R", Fields: []FieldDesc{field("f", "0")}}}}},
			}},
			wantErr: "also defined in interface a",
		},
		{
			name: "bad_int_param",
			desc: Description{Name: "x",
				Params:     []ParamDesc{{Name: "P", Type: "int unsigned", Default: "lots"}},
				Interfaces: []InterfaceDesc{{}},
			},
			wantErr: "not an integer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.desc)
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRegisterResVal(t *testing.T) {
	r := &Register{Fields: []*Field{
		{Bits: BitRange{Msb: 0, Lsb: 0}, ResVal: 1},
		{Bits: BitRange{Msb: 15, Lsb: 8}, ResVal: 0x1ab},
	}}
	if got := r.ResVal(); got != 0xab01 {
		t.Fatalf("ResVal = 0x%x, want 0xab01", got)
	}
}

func TestIfaceName(t *testing.T) {
	if !Unnamed.IsUnnamed() {
		t.Fatal("Unnamed must report unnamed")
	}
	empty := Named("")
	if empty.IsUnnamed() || empty == Unnamed {
		t.Fatal("an interface named \"\" must differ from the unnamed interface")
	}
	if name, ok := Named("dbg").Get(); !ok || name != "dbg" {
		t.Fatalf("Get() = %q, %v", name, ok)
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"08", "8", false},
		{"010", "10", false},
		{"03000000000", "3000000000", false},
		{"-12", "-12", false},
		{"0x1f", "31", false},
		{"0o17", "15", false},
		{"0b101", "5", false},
		{"1_000", "1000", false},
		{" 42 ", "42", false},
		{"abc", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, err := ParseInt(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected an error, got %v", v)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseInt: %v", err)
			}
			if v.String() != tt.want {
				t.Fatalf("ParseInt(%q) = %s, want %s", tt.in, v, tt.want)
			}
		})
	}
}

func TestBuildAcceptsLeadingZeroDefault(t *testing.T) {
	block, err := Build(Description{
		Name: "uart",
		Params: []ParamDesc{
			{Name: "Depth", Type: "int", Default: "08"},
			{Name: "Mask", Type: "int unsigned", Default: "03000000000"},
		},
		Interfaces: []InterfaceDesc{{
			Registers: []EntryDesc{{RegisterDesc: RegisterDesc{Name: "CTRL", Fields: []FieldDesc{field("EN", "0")}}}},
		}},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(block.Params) != 2 || block.Params[0].Default != "08" {
		t.Fatalf("unexpected params %+v", block.Params)
	}
}
