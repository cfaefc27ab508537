package ipblock

// Description is the decoded form of an IP block description file. It
// mirrors the #IpBlock schema in internal/validator.
type Description struct {
	Name       string          `json:"name"`
	AliasImpl  string          `json:"alias_impl,omitempty"`
	RegWidth   int             `json:"regwidth,omitempty"`
	Params     []ParamDesc     `json:"param_list,omitempty"`
	Interfaces []InterfaceDesc `json:"interfaces"`
}

// ParamDesc describes one entry of param_list.
type ParamDesc struct {
	Name    string `json:"name"`
	Type    string `json:"type,omitempty"`
	Default string `json:"default"`
	Desc    string `json:"desc,omitempty"`
	Local   *bool  `json:"local,omitempty"`
	Expose  bool   `json:"expose,omitempty"`
}

// InterfaceDesc is one device interface. A nil Name is the unnamed
// interface.
type InterfaceDesc struct {
	Name      *string     `json:"name,omitempty"`
	Registers []EntryDesc `json:"registers"`
}

// EntryDesc is a register, a multireg or a skipto directive.
type EntryDesc struct {
	RegisterDesc
	Multireg *MultiRegDesc `json:"multireg,omitempty"`
	SkipTo   *uint64       `json:"skipto,omitempty"`
}

// RegisterDesc describes a single register.
type RegisterDesc struct {
	Name     string      `json:"name,omitempty"`
	Desc     string      `json:"desc,omitempty"`
	SwAccess string      `json:"swaccess,omitempty"`
	HwAccess string      `json:"hwaccess,omitempty"`
	HwExt    bool        `json:"hwext,omitempty"`
	HwQe     bool        `json:"hwqe,omitempty"`
	Fields   []FieldDesc `json:"fields,omitempty"`
}

// MultiRegDesc describes a replicated register.
type MultiRegDesc struct {
	RegisterDesc
	Count   int    `json:"count"`
	CName   string `json:"cname,omitempty"`
	Compact *bool  `json:"compact,omitempty"`
}

// FieldDesc describes one register field.
type FieldDesc struct {
	Name     string `json:"name"`
	Desc     string `json:"desc,omitempty"`
	Bits     string `json:"bits"`
	ResVal   uint64 `json:"resval,omitempty"`
	SwAccess string `json:"swaccess,omitempty"`
	HwAccess string `json:"hwaccess,omitempty"`
}
