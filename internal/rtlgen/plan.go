package rtlgen

import (
	"strings"

	"github.com/robert-at-pretension-io/reggen/internal/ipblock"
)

// DefaultExt is the file extension of generated SystemVerilog.
const DefaultExt = "sv"

// ArtifactKind distinguishes the shared package from per-interface modules.
type ArtifactKind string

const (
	KindPackage ArtifactKind = "package"
	KindModule  ArtifactKind = "module"
)

// PackageContext is the data the package template renders.
type PackageContext struct {
	Block *ipblock.IpBlock
	// AliasImpl is the variant suffix: "" or "_" + alias.
	AliasImpl string
}

// ModuleContext is the data the module template renders for one
// device interface.
type ModuleContext struct {
	Block     *ipblock.IpBlock
	ModBase   string
	ModName   string
	IfaceName ipblock.IfaceName
	RegBlock  *ipblock.RegBlock
	AliasImpl string
}

// Artifact is one file a generation run produces.
type Artifact struct {
	Kind     ArtifactKind
	Name     string
	File     string
	Iface    ipblock.IfaceName
	Template TemplateID
	Context  interface{}
}

// VariantSuffix is "" or "_" followed by the block's alias implementation.
func VariantSuffix(block *ipblock.IpBlock) string {
	if block.AliasImpl == "" {
		return ""
	}
	return "_" + block.AliasImpl
}

// PackageName is the SystemVerilog package shared by every module of a
// block variant.
func PackageName(block *ipblock.IpBlock, suffix string) string {
	return strings.ToLower(block.Name) + suffix + "_reg_pkg"
}

// ModuleBase is the module name stem for one interface.
func ModuleBase(block *ipblock.IpBlock, iface ipblock.IfaceName) string {
	base := strings.ToLower(block.Name)
	if name, ok := iface.Get(); ok {
		base += "_" + strings.ToLower(name)
	}
	return base
}

// Plan lists the artifacts for block in creation order: the package,
// then one module per interface in RegBlocks order.
func Plan(block *ipblock.IpBlock, ext string) []Artifact {
	if ext == "" {
		ext = DefaultExt
	}
	suffix := VariantSuffix(block)

	pkg := PackageName(block, suffix)
	artifacts := []Artifact{{
		Kind:     KindPackage,
		Name:     pkg,
		File:     pkg + "." + ext,
		Iface:    ipblock.Unnamed,
		Template: PackageTemplate,
		Context:  PackageContext{Block: block, AliasImpl: suffix},
	}}

	for _, iface := range block.RegBlocks {
		base := ModuleBase(block, iface.Name)
		name := base + suffix + "_reg_top"
		artifacts = append(artifacts, Artifact{
			Kind:     KindModule,
			Name:     name,
			File:     name + "." + ext,
			Iface:    iface.Name,
			Template: ModuleTemplate,
			Context: ModuleContext{
				Block:     block,
				ModBase:   base,
				ModName:   name,
				IfaceName: iface.Name,
				RegBlock:  iface.Regs,
				AliasImpl: suffix,
			},
		})
	}
	return artifacts
}
