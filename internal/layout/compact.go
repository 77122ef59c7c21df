package layout

import "sort"

// dedupeCharts drops any chart blueprint whose (componentType, primaryField)
// signature already occurred earlier in the list. Non-chart components are
// never dropped; a dashboard may legitimately repeat tables or cards.
func dedupeCharts(bps []ComponentBlueprint) []ComponentBlueprint {
	seen := make(map[string]struct{}, len(bps))
	out := make([]ComponentBlueprint, 0, len(bps))
	for _, bp := range bps {
		if bp.ComponentType.IsChart() {
			sig := string(bp.ComponentType) + "\x00" + bp.Meta.PrimaryField
			if _, dup := seen[sig]; dup {
				continue
			}
			seen[sig] = struct{}{}
		}
		out = append(out, bp)
	}
	return out
}

// compact runs the two post-processing passes: row renumbering (drop empty
// rows left by skipped sections) and row-width reconciliation (no half-filled
// rows survive). Rects are rewritten in place on the returned slice.
func compact(bps []ComponentBlueprint) []ComponentBlueprint {
	if len(bps) == 0 {
		return bps
	}
	renumberRows(bps)
	reconcileRowWidths(bps)
	return bps
}

// renumberRows sorts by (row, col) and reassigns row offsets sequentially,
// each row advancing by its tallest component.
func renumberRows(bps []ComponentBlueprint) {
	sort.SliceStable(bps, func(i, j int) bool {
		if bps[i].GridRect.Row != bps[j].GridRect.Row {
			return bps[i].GridRect.Row < bps[j].GridRect.Row
		}
		return bps[i].GridRect.Col < bps[j].GridRect.Col
	})

	y := 0
	i := 0
	for i < len(bps) {
		oldRow := bps[i].GridRect.Row
		maxHeight := 0
		j := i
		for j < len(bps) && bps[j].GridRect.Row == oldRow {
			if bps[j].GridRect.Height > maxHeight {
				maxHeight = bps[j].GridRect.Height
			}
			j++
		}
		for k := i; k < j; k++ {
			bps[k].GridRect.Row = y
		}
		if maxHeight < 1 {
			maxHeight = 1
		}
		y += maxHeight
		i = j
	}
}

// reconcileRowWidths expands lone or paired components so every row sums to
// 12 columns. A lone narrow chart widens only to 8, keeping whitespace
// instead of stretching to full bleed.
func reconcileRowWidths(bps []ComponentBlueprint) {
	i := 0
	for i < len(bps) {
		j := i
		for j < len(bps) && bps[j].GridRect.Row == bps[i].GridRect.Row {
			j++
		}
		group := bps[i:j]

		switch len(group) {
		case 1:
			r := &group[0].GridRect
			if r.Width < 12 {
				if group[0].ComponentType.IsChart() && r.Width <= 6 {
					r.Col = 0
					r.Width = 8
				} else {
					r.Col = 0
					r.Width = 12
				}
			}
		case 2:
			total := group[0].GridRect.Width + group[1].GridRect.Width
			if total < 12 {
				shortfall := 12 - total
				wider := 0
				if group[1].GridRect.Width > group[0].GridRect.Width {
					wider = 1
				}
				group[wider].GridRect.Width += shortfall
				group[0].GridRect.Col = 0
				group[1].GridRect.Col = group[0].GridRect.Width
			}
		}
		i = j
	}
}
