package facts

// FilterTablesByBlocks returns a new Tables object containing only rows
// that belong to one of the named blocks.
func FilterTablesByBlocks(tables Tables, blocks map[string]bool) Tables {
	if len(blocks) == 0 {
		return emptyTables()
	}
	out := emptyTables()

	for _, row := range tables.Artifacts {
		if blocks[row.Block] {
			out.Artifacts = append(out.Artifacts, row)
		}
	}
	for _, row := range tables.Interfaces {
		if blocks[row.Block] {
			out.Interfaces = append(out.Interfaces, row)
		}
	}
	for _, row := range tables.Registers {
		if blocks[row.Block] {
			out.Registers = append(out.Registers, row)
		}
	}
	for _, row := range tables.Params {
		if blocks[row.Block] {
			out.Params = append(out.Params, row)
		}
	}

	return out
}

// FilterDeltaByBlocks returns a new Delta containing only rows for the
// named blocks.
func FilterDeltaByBlocks(delta Delta, blocks map[string]bool) Delta {
	if len(blocks) == 0 {
		return Delta{
			Added:   emptyTables(),
			Removed: emptyTables(),
		}
	}
	return Delta{
		Added:   FilterTablesByBlocks(delta.Added, blocks),
		Removed: FilterTablesByBlocks(delta.Removed, blocks),
	}
}
