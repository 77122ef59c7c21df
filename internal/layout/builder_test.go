package layout

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sparseFields() []ClassifiedField {
	return []ClassifiedField{
		{Name: "duration_ms", Shape: ShapeDuration, Role: RoleHero, Aggregation: "avg", UniqueValueCount: 40},
		{Name: "status", Shape: ShapeStatus, Role: RoleSupporting, Aggregation: "percentage", UniqueValueCount: 3},
	}
}

func kpisOf(bps []ComponentBlueprint) []ComponentBlueprint {
	var out []ComponentBlueprint
	for _, bp := range bps {
		if bp.ComponentType == ComponentMetricCard {
			out = append(out, bp)
		}
	}
	return out
}

func TestBuild_SparseDataScenario(t *testing.T) {
	c := DefaultCatalog()
	fields := sparseFields()
	sig := ComputeSignals(fields, nil)
	sel := c.Select(sig, UITypeDashboard, ModeInternal, "")
	require.Equal(t, SkeletonExecutiveOverview, sel.Skeleton)

	bps := Build(BuildInput{
		Skeleton:    c.Skeleton(sel.Skeleton),
		Fields:      fields,
		EntityLabel: "Workflow Run",
	}, DefaultVocabulary())

	kpis := kpisOf(bps)
	require.Len(t, kpis, 2)
	require.Equal(t, 0, kpis[0].GridRect.Col)
	require.Equal(t, 6, kpis[0].GridRect.Width)
	require.Equal(t, 6, kpis[1].GridRect.Col)
	require.Equal(t, 6, kpis[1].GridRect.Width)
	require.Equal(t, "duration_ms", kpis[0].Meta.PrimaryField)
	require.Equal(t, "status", kpis[1].Meta.PrimaryField)
}

func TestBuild_FallbackKPISet(t *testing.T) {
	skel := &Skeleton{
		ID:          "kpi-only",
		Category:    CategoryDashboard,
		MaxKPISlots: 4,
		Sections: []Section{
			{ID: "kpis", Type: SectionKPIGrid, ColumnSpan: 12, MinHeight: 1, MaxItems: 4},
		},
	}
	fields := []ClassifiedField{
		{Name: "duration_ms", Shape: ShapeDuration, Role: RoleDetail, UniqueValueCount: 40},
		{Name: "outcome", Shape: ShapeStatus, Role: RoleDetail, UniqueValueCount: 2},
	}
	bps := Build(BuildInput{Skeleton: skel, Fields: fields, EntityLabel: "Run"}, DefaultVocabulary())

	kpis := kpisOf(bps)
	require.Len(t, kpis, 3)
	require.Equal(t, "Total Run", kpis[0].Meta.Title) // count alias unresolved
	require.Equal(t, "outcome", kpis[1].Meta.PrimaryField)
	require.Equal(t, "duration_ms", kpis[2].Meta.PrimaryField)
}

func TestBuild_GapFillAbsorbsSkippedSibling(t *testing.T) {
	skel := &Skeleton{
		ID:       "pair",
		Category: CategoryDashboard,
		Sections: []Section{
			{ID: "left", Type: SectionChart, ColumnSpan: 5, MinHeight: 2},
			{ID: "right", Type: SectionChart, ColumnSpan: 7, MinHeight: 2},
		},
	}
	fields := []ClassifiedField{
		{Name: "latency", Shape: ShapeDuration, Role: RoleTrend, SuggestedComponent: "TimeseriesChart", UniqueValueCount: 60},
	}
	bps := Build(BuildInput{Skeleton: skel, Fields: fields, EntityLabel: "Event"}, DefaultVocabulary())

	require.Len(t, bps, 1)
	require.Equal(t, ComponentTimeseriesChart, bps[0].ComponentType)
	require.Equal(t, 0, bps[0].GridRect.Col)
	require.Equal(t, 12, bps[0].GridRect.Width)
}

func TestBuild_LoneNarrowChartWidensToEight(t *testing.T) {
	skel := &Skeleton{
		ID:       "narrow",
		Category: CategoryDashboard,
		Sections: []Section{
			{ID: "only", Type: SectionChart, ColumnSpan: 5, MinHeight: 2},
		},
	}
	fields := []ClassifiedField{
		{Name: "region", Shape: ShapeLabel, Role: RoleBreakdown, UniqueValueCount: 6},
	}
	bps := Build(BuildInput{Skeleton: skel, Fields: fields, EntityLabel: "Event"}, DefaultVocabulary())

	require.Len(t, bps, 1)
	require.Equal(t, ComponentPieChart, bps[0].ComponentType) // span <= 6
	require.Equal(t, 0, bps[0].GridRect.Col)
	require.Equal(t, 8, bps[0].GridRect.Width)
}

func TestBuild_FieldExhaustionFallsBackToHints(t *testing.T) {
	skel := &Skeleton{
		ID:       "two-charts",
		Category: CategoryDashboard,
		Sections: []Section{
			{ID: "a", Type: SectionChart, ColumnSpan: 6, MinHeight: 2},
			{ID: "b", Type: SectionChart, ColumnSpan: 6, MinHeight: 2},
		},
	}
	hints := []ChartHint{
		{ComponentType: "bar chart", Rationale: "vendors rank well as bars", FieldName: "vendor"},
		{ComponentType: "donut breakdown", Rationale: "region share", FieldName: "region"},
	}
	bps := Build(BuildInput{Skeleton: skel, Hints: hints, EntityLabel: "Order"}, DefaultVocabulary())

	require.Len(t, bps, 2)
	require.Equal(t, ComponentBarChart, bps[0].ComponentType)
	require.Equal(t, "vendor", bps[0].Meta.PrimaryField)
	require.Equal(t, ComponentDonutChart, bps[1].ComponentType)
	require.Equal(t, "region", bps[1].Meta.PrimaryField)
}

func TestBuild_HintsNeverReuseAField(t *testing.T) {
	skel := &Skeleton{
		ID:       "two-charts",
		Category: CategoryDashboard,
		Sections: []Section{
			{ID: "a", Type: SectionChart, ColumnSpan: 6, MinHeight: 2},
			{ID: "b", Type: SectionChart, ColumnSpan: 6, MinHeight: 2},
		},
	}
	hints := []ChartHint{
		{ComponentType: "bar", FieldName: "vendor"},
		{ComponentType: "pie", FieldName: "vendor"},
		{ComponentType: "line", FieldName: "created_at"},
	}
	bps := Build(BuildInput{Skeleton: skel, Hints: hints, EntityLabel: "Order"}, DefaultVocabulary())

	require.Len(t, bps, 2)
	require.Equal(t, "vendor", bps[0].Meta.PrimaryField)
	require.Equal(t, ComponentTimeseriesChart, bps[1].ComponentType)
	require.Equal(t, "created_at", bps[1].Meta.PrimaryField)
}

func TestBuild_NoDuplicateChartSignatures(t *testing.T) {
	c := DefaultCatalog()
	fields := []ClassifiedField{
		{Name: "created_at", Shape: ShapeTimestamp, UniqueValueCount: 200},
		{Name: "latency", Shape: ShapeDuration, Role: RoleTrend, SuggestedComponent: "TimeseriesChart", Aggregation: "avg", UniqueValueCount: 80},
		{Name: "status", Shape: ShapeStatus, Role: RoleBreakdown, Aggregation: "count", UniqueValueCount: 4},
		{Name: "vendor", Shape: ShapeLabel, Role: RoleBreakdown, Aggregation: "count", UniqueValueCount: 9},
		{Name: "amount", Shape: ShapeMoney, Role: RoleHero, Aggregation: "sum", UniqueValueCount: 300},
		{Name: "region", Shape: ShapeLabel, Role: RoleSupporting, Aggregation: "count", UniqueValueCount: 5},
	}
	for _, id := range c.IDs() {
		bps := Build(BuildInput{
			Skeleton:    c.Skeleton(id),
			Fields:      fields,
			Hints:       []ChartHint{{ComponentType: "bar", FieldName: "region"}},
			EntityLabel: "Order",
		}, DefaultVocabulary())

		seen := map[string]bool{}
		for _, bp := range bps {
			if !bp.ComponentType.IsChart() {
				continue
			}
			sig := string(bp.ComponentType) + "/" + bp.Meta.PrimaryField
			require.False(t, seen[sig], "skeleton %s repeats chart %s", id, sig)
			seen[sig] = true
		}
	}
}

func TestBuild_RowWidthInvariant(t *testing.T) {
	c := DefaultCatalog()
	fields := []ClassifiedField{
		{Name: "created_at", Shape: ShapeTimestamp, UniqueValueCount: 200},
		{Name: "latency", Shape: ShapeDuration, Role: RoleTrend, SuggestedComponent: "TimeseriesChart", UniqueValueCount: 80},
		{Name: "status", Shape: ShapeStatus, Role: RoleBreakdown, UniqueValueCount: 4},
		{Name: "amount", Shape: ShapeMoney, Role: RoleHero, UniqueValueCount: 300},
	}
	for _, id := range c.IDs() {
		bps := Build(BuildInput{Skeleton: c.Skeleton(id), Fields: fields, EntityLabel: "Order"}, DefaultVocabulary())
		requireRowsFilled(t, bps, string(id))
	}
}

func requireRowsFilled(t *testing.T, bps []ComponentBlueprint, label string) {
	t.Helper()
	byRow := map[int][]ComponentBlueprint{}
	rows := []int{}
	for _, bp := range bps {
		require.GreaterOrEqual(t, bp.GridRect.Width, 1, label)
		require.LessOrEqual(t, bp.GridRect.Width, 12, label)
		if _, ok := byRow[bp.GridRect.Row]; !ok {
			rows = append(rows, bp.GridRect.Row)
		}
		byRow[bp.GridRect.Row] = append(byRow[bp.GridRect.Row], bp)
	}
	for _, row := range rows {
		group := byRow[row]
		sum := 0
		for _, bp := range group {
			sum += bp.GridRect.Width
		}
		if len(group) == 1 && group[0].ComponentType.IsChart() && group[0].GridRect.Width == 8 {
			continue // lone chart deliberately capped at 8
		}
		require.Equal(t, 12, sum, "%s row %d widths sum to %d", label, row, sum)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	c := DefaultCatalog()
	fields := []ClassifiedField{
		{Name: "created_at", Shape: ShapeTimestamp, UniqueValueCount: 200},
		{Name: "latency", Shape: ShapeDuration, Role: RoleTrend, SuggestedComponent: "TimeseriesChart", UniqueValueCount: 80},
		{Name: "status", Shape: ShapeStatus, Role: RoleBreakdown, UniqueValueCount: 4},
	}
	in := BuildInput{
		Skeleton:    c.Skeleton(SkeletonOperationalMonitoring),
		Fields:      fields,
		Hints:       []ChartHint{{ComponentType: "bar", FieldName: "status"}},
		EntityLabel: "Deploy",
		Mapping:     FieldMapping{"latency": "payload.latency_ms"},
	}
	a := Build(in, DefaultVocabulary())
	b := Build(in, DefaultVocabulary())

	require.Equal(t, len(a), len(b))
	for i := range a {
		require.Equal(t, a[i].ID, b[i].ID)
		require.Equal(t, a[i].ComponentType, b[i].ComponentType)
		require.Equal(t, a[i].GridRect, b[i].GridRect)
		require.Equal(t, a[i].Meta, b[i].Meta)
		require.Equal(t, a[i].Props(in.Mapping), b[i].Props(in.Mapping))
	}
}

func TestBuild_TableColumnsAndSort(t *testing.T) {
	c := DefaultCatalog()
	fields := make([]ClassifiedField, 0, 10)
	fields = append(fields, ClassifiedField{Name: "created_at", Shape: ShapeTimestamp, UniqueValueCount: 100})
	for _, n := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i"} {
		fields = append(fields, ClassifiedField{Name: n, Shape: ShapeHighCardText, Role: RoleDetail, UniqueValueCount: 50})
	}
	bps := Build(BuildInput{Skeleton: c.Skeleton(SkeletonTableFirst), Fields: fields, EntityLabel: "Log"}, DefaultVocabulary())

	var table *ComponentBlueprint
	for i := range bps {
		if bps[i].ComponentType == ComponentDataTable {
			table = &bps[i]
			break
		}
	}
	require.NotNil(t, table)
	props := table.Props(nil)
	cols, ok := props["columns"].([]string)
	require.True(t, ok)
	require.Len(t, cols, 8)
	require.Equal(t, "created_at", props["sortBy"])
	require.Equal(t, "desc", props["sortDir"])
}

func TestBuild_UnknownSectionTypeSkipped(t *testing.T) {
	skel := &Skeleton{
		ID:       "odd",
		Category: CategoryDashboard,
		Sections: []Section{
			{ID: "mystery", Type: SectionType("carousel"), ColumnSpan: 12, MinHeight: 2},
			{ID: "header", Type: SectionPageHeader, ColumnSpan: 12, MinHeight: 1},
		},
	}
	bps := Build(BuildInput{Skeleton: skel, EntityLabel: "Run"}, DefaultVocabulary())
	require.Len(t, bps, 1)
	require.Equal(t, ComponentPageHeader, bps[0].ComponentType)
}

func TestBuild_MappedColumnFallback(t *testing.T) {
	skel := &Skeleton{
		ID:       "table-only",
		Category: CategoryDashboard,
		Sections: []Section{
			{ID: "rows", Type: SectionTable, ColumnSpan: 12, MinHeight: 3},
		},
	}
	mapping := FieldMapping{
		"zeta": "payload.z", "alpha": "payload.a", "mid": "payload.m",
	}
	bps := Build(BuildInput{Skeleton: skel, Mapping: mapping, EntityLabel: "Run"}, DefaultVocabulary())
	require.Len(t, bps, 1)
	cols, ok := bps[0].Props(mapping)["columns"].([]string)
	require.True(t, ok)
	require.Equal(t, []string{"alpha", "mid", "zeta"}, cols) // sorted for determinism
}
