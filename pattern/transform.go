package pattern

// Translate shifts all cell offsets by (dx, dy)
func (r PatternResult) Translate(dx, dy int) PatternResult {
	out := r
	out.Cells = make([]PatternCell, len(r.Cells))
	for i, cell := range r.Cells {
		cell.OffsetX += dx
		cell.OffsetY += dy
		out.Cells[i] = cell
	}
	return out
}

// Center places the pattern in the middle of a width x height area
func (r PatternResult) Center(width, height int) PatternResult {
	out := r.Translate((width-r.Width)/2, (height-r.Height)/2)
	out.Width, out.Height = width, height
	return out
}

// Merge overlays patterns in order; later cells win at the same position
// The base cell comes from the first pattern
func Merge(patterns ...PatternResult) PatternResult {
	if len(patterns) == 0 {
		return PatternResult{}
	}

	type posKey struct{ x, y int }
	index := make(map[posKey]int)
	out := PatternResult{Base: patterns[0].Base}

	for _, p := range patterns {
		out.Width = max(out.Width, p.Width)
		out.Height = max(out.Height, p.Height)
		for _, cell := range p.Cells {
			key := posKey{cell.OffsetX, cell.OffsetY}
			if i, ok := index[key]; ok {
				out.Cells[i] = cell
				continue
			}
			index[key] = len(out.Cells)
			out.Cells = append(out.Cells, cell)
		}
	}
	return out
}
