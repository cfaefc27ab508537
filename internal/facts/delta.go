package facts

import "strconv"

// Delta captures added and removed fact rows between two snapshots.
type Delta struct {
	Added   Tables `json:"added"`
	Removed Tables `json:"removed"`
}

// ComputeDelta computes row-level additions and removals between two snapshots.
func ComputeDelta(prev, next Tables) Delta {
	return Delta{
		Added:   diffTables(prev, next),
		Removed: diffTables(next, prev),
	}
}

// Empty reports whether the delta has no rows.
func (d Delta) Empty() bool {
	return tableRows(d.Added) == 0 && tableRows(d.Removed) == 0
}

func tableRows(t Tables) int {
	return len(t.Artifacts) + len(t.Interfaces) + len(t.Registers) + len(t.Params)
}

func diffTables(from, to Tables) Tables {
	out := emptyTables()

	out.Artifacts = diffArtifactRows(from.Artifacts, to.Artifacts)
	out.Interfaces = diffInterfaceRows(from.Interfaces, to.Interfaces)
	out.Registers = diffRegisterRows(from.Registers, to.Registers)
	out.Params = diffParamRows(from.Params, to.Params)

	return out
}

func diffArtifactRows(from, to []ArtifactRow) []ArtifactRow {
	return diffRows(from, to, func(r ArtifactRow) string {
		return r.Block + "|" + r.Kind + "|" + r.Path + "|" + r.Module + "|" + r.Interface + "|" + r.Template
	})
}

func diffInterfaceRows(from, to []InterfaceRow) []InterfaceRow {
	return diffRows(from, to, func(r InterfaceRow) string {
		return r.Block + "|" + r.Interface + "|" + boolKey(r.Named) + "|" + r.AwParam + "|" +
			strconv.Itoa(r.AddrWidth) + "|" + r.Reg2HwType + "|" + r.Hw2RegType + "|" + strconv.Itoa(r.Registers)
	})
}

func diffRegisterRows(from, to []RegisterRow) []RegisterRow {
	return diffRows(from, to, func(r RegisterRow) string {
		return r.Block + "|" + r.Interface + "|" + r.Name + "|" + strconv.FormatUint(r.Offset, 10) + "|" +
			boolKey(r.Multi) + "|" + strconv.Itoa(r.Instances) + "|" + r.Reg2HwType + "|" + r.Hw2RegType
	})
}

func diffParamRows(from, to []ParamRow) []ParamRow {
	return diffRows(from, to, func(r ParamRow) string {
		return r.Block + "|" + r.Name + "|" + r.Type + "|" + r.Value + "|" + r.Literal
	})
}

func diffRows[T any](from, to []T, key func(T) string) []T {
	fromSet := make(map[string]T, len(from))
	for _, row := range from {
		fromSet[key(row)] = row
	}
	var diff []T
	for _, row := range to {
		rowKey := key(row)
		if _, ok := fromSet[rowKey]; !ok {
			diff = append(diff, row)
		}
	}
	if diff == nil {
		diff = []T{}
	}
	return diff
}

func boolKey(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
