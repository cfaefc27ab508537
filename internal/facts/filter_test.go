package facts

import "testing"

func TestFilterTablesByBlocks(t *testing.T) {
	tables := Tables{
		Artifacts: []ArtifactRow{
			{Block: "uart", Path: "uart_reg_pkg.sv"},
			{Block: "gpio", Path: "gpio_reg_pkg.sv"},
		},
		Interfaces: []InterfaceRow{
			{Block: "uart", AwParam: "BlockAw"},
			{Block: "gpio", AwParam: "BlockAw"},
		},
		Registers: []RegisterRow{
			{Block: "uart", Name: "CTRL"},
			{Block: "gpio", Name: "DATA"},
		},
		Params: []ParamRow{
			{Block: "gpio", Name: "N"},
		},
	}

	filtered := FilterTablesByBlocks(tables, map[string]bool{"uart": true})

	if len(filtered.Artifacts) != 1 || filtered.Artifacts[0].Block != "uart" {
		t.Fatalf("expected only uart artifact rows, got %#v", filtered.Artifacts)
	}
	if len(filtered.Interfaces) != 1 || filtered.Interfaces[0].Block != "uart" {
		t.Fatalf("expected only uart interface rows, got %#v", filtered.Interfaces)
	}
	if len(filtered.Registers) != 1 || filtered.Registers[0].Name != "CTRL" {
		t.Fatalf("expected only uart register rows, got %#v", filtered.Registers)
	}
	if len(filtered.Params) != 0 {
		t.Fatalf("expected no param rows, got %#v", filtered.Params)
	}
}

func TestFilterDeltaByBlocksEmpty(t *testing.T) {
	delta := Delta{
		Added: Tables{
			Artifacts: []ArtifactRow{{Block: "uart"}},
		},
		Removed: Tables{
			Artifacts: []ArtifactRow{{Block: "gpio"}},
		},
	}

	filtered := FilterDeltaByBlocks(delta, map[string]bool{})
	if len(filtered.Added.Artifacts) != 0 || len(filtered.Removed.Artifacts) != 0 {
		t.Fatalf("expected empty delta, got %#v", filtered)
	}

	filtered = FilterDeltaByBlocks(delta, map[string]bool{"gpio": true})
	if len(filtered.Added.Artifacts) != 0 || len(filtered.Removed.Artifacts) != 1 {
		t.Fatalf("expected only the gpio removal, got %#v", filtered)
	}
}
