package layout

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func bp(id string, ct ComponentType, col, row, width, height int) ComponentBlueprint {
	return ComponentBlueprint{
		ID:            id,
		ComponentType: ct,
		GridRect:      GridRect{Col: col, Row: row, Width: width, Height: height},
		Meta:          BlueprintMeta{SectionID: id},
	}
}

func TestCompact_RemovesEmptyRows(t *testing.T) {
	bps := []ComponentBlueprint{
		bp("header", ComponentPageHeader, 0, 0, 12, 1),
		// row 1 and 2 left empty by skipped sections
		bp("table", ComponentDataTable, 0, 3, 12, 3),
	}
	out := compact(bps)
	require.Equal(t, 0, out[0].GridRect.Row)
	require.Equal(t, 1, out[1].GridRect.Row)
}

func TestCompact_RowAdvancesByTallestComponent(t *testing.T) {
	bps := []ComponentBlueprint{
		bp("a", ComponentBarChart, 0, 0, 6, 2),
		bp("b", ComponentDataTable, 6, 0, 6, 3),
		bp("c", ComponentPageHeader, 0, 5, 12, 1),
	}
	out := compact(bps)
	require.Equal(t, 0, out[0].GridRect.Row)
	require.Equal(t, 3, out[2].GridRect.Row)
}

func TestCompact_LoneChartWidths(t *testing.T) {
	narrow := compact([]ComponentBlueprint{bp("c", ComponentPieChart, 3, 0, 5, 2)})
	require.Equal(t, 0, narrow[0].GridRect.Col)
	require.Equal(t, 8, narrow[0].GridRect.Width)

	wide := compact([]ComponentBlueprint{bp("c", ComponentTimeseriesChart, 0, 0, 7, 2)})
	require.Equal(t, 12, wide[0].GridRect.Width)

	nonChart := compact([]ComponentBlueprint{bp("t", ComponentDataTable, 2, 0, 5, 3)})
	require.Equal(t, 0, nonChart[0].GridRect.Col)
	require.Equal(t, 12, nonChart[0].GridRect.Width)
}

func TestCompact_PairShortfallWidensTheWider(t *testing.T) {
	out := compact([]ComponentBlueprint{
		bp("a", ComponentBarChart, 0, 0, 4, 2),
		bp("b", ComponentPieChart, 4, 0, 6, 2),
	})
	require.Equal(t, 4, out[0].GridRect.Width)
	require.Equal(t, 8, out[1].GridRect.Width)
	require.Equal(t, 0, out[0].GridRect.Col)
	require.Equal(t, 4, out[1].GridRect.Col)
}

func TestCompact_FullRowsUntouched(t *testing.T) {
	out := compact([]ComponentBlueprint{
		bp("a", ComponentBarChart, 0, 0, 7, 2),
		bp("b", ComponentPieChart, 7, 0, 5, 2),
	})
	require.Equal(t, 7, out[0].GridRect.Width)
	require.Equal(t, 5, out[1].GridRect.Width)
}

func TestDedupeCharts_DropsRepeatedSignature(t *testing.T) {
	a := bp("a", ComponentBarChart, 0, 0, 6, 2)
	a.Meta.PrimaryField = "vendor"
	b := bp("b", ComponentBarChart, 6, 0, 6, 2)
	b.Meta.PrimaryField = "vendor"
	c := bp("c", ComponentBarChart, 0, 2, 6, 2)
	c.Meta.PrimaryField = "region"

	out := dedupeCharts([]ComponentBlueprint{a, b, c})
	require.Len(t, out, 2)
	require.Equal(t, "a", out[0].ID)
	require.Equal(t, "c", out[1].ID)
}

func TestDedupeCharts_NonChartsNeverDropped(t *testing.T) {
	a := bp("a", ComponentDataTable, 0, 0, 12, 3)
	b := bp("b", ComponentDataTable, 0, 3, 12, 3)
	out := dedupeCharts([]ComponentBlueprint{a, b})
	require.Len(t, out, 2)
}
