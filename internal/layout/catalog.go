package layout

import "fmt"

// DefaultCatalog returns the built-in skeleton table. The capacity thresholds
// are hand-tuned; callers that need different minimums construct their own
// catalog via NewCatalog with an adjusted rule map.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultSkeletons(), defaultCapacityRules())
	if err != nil {
		// The built-in table is fixed at compile time; a validation failure
		// here is a programming error, not an input condition.
		panic(fmt.Sprintf("layout: built-in catalog invalid: %v", err))
	}
	return c
}

func defaultCapacityRules() map[SkeletonID]CapacityRule {
	return map[SkeletonID]CapacityRule{
		SkeletonOperationalMonitoring: {MinChartableFields: 5, MinActiveFields: 6, MinDistinctRoles: 3, Fallback: SkeletonExecutiveOverview},
		SkeletonAnalyticalBreakdown:   {MinChartableFields: 4, MinActiveFields: 6, MinDistinctRoles: 2, Fallback: SkeletonExecutiveOverview},
		SkeletonTableFirst:            {MinChartableFields: 2, MinActiveFields: 8, MinDistinctRoles: 1, Fallback: SkeletonExecutiveOverview},
		SkeletonStoryboardInsight:     {MinChartableFields: 3, MinActiveFields: 4, MinDistinctRoles: 2, Fallback: SkeletonExecutiveOverview},
		SkeletonExecutiveOverview:     {MinChartableFields: 2, MinActiveFields: 3, MinDistinctRoles: 1, Fallback: SkeletonExecutiveOverview},
		SkeletonRecordBrowser:         {MinChartableFields: 1, MinActiveFields: 1, MinDistinctRoles: 1, Fallback: SkeletonRecordBrowser},
	}
}

func defaultSkeletons() []*Skeleton {
	return []*Skeleton{
		{
			ID:          SkeletonExecutiveOverview,
			DisplayName: "Executive Overview",
			Category:    CategoryDashboard,
			MaxKPISlots: 4,
			SpacingPx:   24,
			Sections: []Section{
				{ID: "header", Type: SectionPageHeader, ColumnSpan: 12, MinHeight: 1},
				{ID: "kpis", Type: SectionKPIGrid, ColumnSpan: 12, MinHeight: 1, MaxItems: 4},
				{ID: "primary-trend", Type: SectionChart, ColumnSpan: 8, MinHeight: 2, IsDominant: true},
				{ID: "side-breakdown", Type: SectionChart, ColumnSpan: 4, MinHeight: 2},
				{ID: "recent", Type: SectionTable, ColumnSpan: 12, MinHeight: 3, MaxItems: 8},
			},
		},
		{
			ID:          SkeletonOperationalMonitoring,
			DisplayName: "Operational Monitoring",
			Category:    CategoryDashboard,
			MaxKPISlots: 6,
			SpacingPx:   16,
			Sections: []Section{
				{ID: "header", Type: SectionPageHeader, ColumnSpan: 12, MinHeight: 1},
				{ID: "health-kpis", Type: SectionKPIGrid, ColumnSpan: 12, MinHeight: 1, MaxItems: 6, IsCompact: true},
				{ID: "event-rate", Type: SectionChart, ColumnSpan: 7, MinHeight: 2, IsDominant: true},
				{ID: "status-split", Type: SectionChart, ColumnSpan: 5, MinHeight: 2},
				{ID: "incident-feed", Type: SectionFeed, ColumnSpan: 4, MinHeight: 3, MaxItems: 10},
				{ID: "event-log", Type: SectionTable, ColumnSpan: 8, MinHeight: 3, MaxItems: 8},
			},
		},
		{
			ID:          SkeletonAnalyticalBreakdown,
			DisplayName: "Analytical Breakdown",
			Category:    CategoryDashboard,
			MaxKPISlots: 3,
			SpacingPx:   24,
			Sections: []Section{
				{ID: "header", Type: SectionPageHeader, ColumnSpan: 12, MinHeight: 1},
				{ID: "kpis", Type: SectionKPIGrid, ColumnSpan: 12, MinHeight: 1, MaxItems: 3},
				{ID: "dimension-a", Type: SectionChart, ColumnSpan: 6, MinHeight: 2},
				{ID: "dimension-b", Type: SectionChart, ColumnSpan: 6, MinHeight: 2},
				{ID: "trend", Type: SectionChart, ColumnSpan: 8, MinHeight: 2, IsDominant: true},
				{ID: "composition", Type: SectionChart, ColumnSpan: 4, MinHeight: 2},
				{ID: "detail", Type: SectionTable, ColumnSpan: 12, MinHeight: 3, MaxItems: 8},
			},
		},
		{
			ID:          SkeletonTableFirst,
			DisplayName: "Table First",
			Category:    CategoryDashboard,
			MaxKPISlots: 3,
			SpacingPx:   16,
			Sections: []Section{
				{ID: "header", Type: SectionPageHeader, ColumnSpan: 12, MinHeight: 1},
				{ID: "filters", Type: SectionFilters, ColumnSpan: 12, MinHeight: 1, IsCompact: true},
				{ID: "kpis", Type: SectionKPIGrid, ColumnSpan: 12, MinHeight: 1, MaxItems: 3, IsCompact: true},
				{ID: "main", Type: SectionTable, ColumnSpan: 12, MinHeight: 4, MaxItems: 8, IsDominant: true},
			},
		},
		{
			ID:          SkeletonRecordBrowser,
			DisplayName: "Record Browser",
			Category:    CategoryProduct,
			MaxKPISlots: 0,
			SpacingPx:   16,
			Sections: []Section{
				{ID: "header", Type: SectionPageHeader, ColumnSpan: 12, MinHeight: 1},
				{ID: "filters", Type: SectionFilters, ColumnSpan: 12, MinHeight: 1, IsCompact: true},
				{ID: "records", Type: SectionTable, ColumnSpan: 9, MinHeight: 4, MaxItems: 8, IsDominant: true},
				{ID: "summary", Type: SectionInsightCard, ColumnSpan: 3, MinHeight: 4},
			},
		},
		{
			ID:          SkeletonStoryboardInsight,
			DisplayName: "Storyboard Insight",
			Category:    CategoryDashboard,
			MaxKPISlots: 3,
			SpacingPx:   32,
			Sections: []Section{
				{ID: "hero", Type: SectionHero, ColumnSpan: 12, MinHeight: 2},
				{ID: "headline-kpis", Type: SectionKPIGrid, ColumnSpan: 12, MinHeight: 1, MaxItems: 3},
				{ID: "story-trend", Type: SectionChart, ColumnSpan: 12, MinHeight: 2, IsDominant: true},
				{ID: "narrative", Type: SectionInsightCard, ColumnSpan: 6, MinHeight: 2},
				{ID: "story-breakdown", Type: SectionChart, ColumnSpan: 6, MinHeight: 2},
			},
		},
		{
			ID:          SkeletonLandingPage,
			DisplayName: "Landing Page",
			Category:    CategoryProduct,
			MaxKPISlots: 0,
			SpacingPx:   48,
			Sections: []Section{
				{ID: "hero", Type: SectionHero, ColumnSpan: 12, MinHeight: 3},
				{ID: "feature-a", Type: SectionInsightCard, ColumnSpan: 4, MinHeight: 2},
				{ID: "feature-b", Type: SectionInsightCard, ColumnSpan: 4, MinHeight: 2},
				{ID: "feature-c", Type: SectionInsightCard, ColumnSpan: 4, MinHeight: 2},
			},
		},
		{
			ID:          SkeletonFormWizard,
			DisplayName: "Form Wizard",
			Category:    CategoryProduct,
			MaxKPISlots: 0,
			SpacingPx:   24,
			Sections: []Section{
				{ID: "header", Type: SectionPageHeader, ColumnSpan: 12, MinHeight: 1},
				{ID: "wizard-steps", Type: SectionInsightCard, ColumnSpan: 8, MinHeight: 3, IsDominant: true},
				{ID: "wizard-help", Type: SectionInsightCard, ColumnSpan: 4, MinHeight: 3},
			},
		},
		{
			ID:          SkeletonResultsDisplay,
			DisplayName: "Results Display",
			Category:    CategoryProduct,
			MaxKPISlots: 3,
			SpacingPx:   24,
			Sections: []Section{
				{ID: "header", Type: SectionPageHeader, ColumnSpan: 12, MinHeight: 1},
				{ID: "result-kpis", Type: SectionKPIGrid, ColumnSpan: 12, MinHeight: 1, MaxItems: 3},
				{ID: "results", Type: SectionTable, ColumnSpan: 12, MinHeight: 4, MaxItems: 8, IsDominant: true},
			},
		},
		{
			ID:          SkeletonAdminCRUD,
			DisplayName: "Admin CRUD",
			Category:    CategoryAdmin,
			MaxKPISlots: 0,
			SpacingPx:   16,
			Sections: []Section{
				{ID: "header", Type: SectionPageHeader, ColumnSpan: 12, MinHeight: 1},
				{ID: "filters", Type: SectionFilters, ColumnSpan: 12, MinHeight: 1, IsCompact: true},
				{ID: "rows", Type: SectionTable, ColumnSpan: 12, MinHeight: 4, MaxItems: 8, IsDominant: true},
			},
		},
		{
			ID:          SkeletonSettings,
			DisplayName: "Settings",
			Category:    CategoryAdmin,
			MaxKPISlots: 0,
			SpacingPx:   24,
			Sections: []Section{
				{ID: "header", Type: SectionPageHeader, ColumnSpan: 12, MinHeight: 1},
				{ID: "setting-groups", Type: SectionInsightCard, ColumnSpan: 8, MinHeight: 3, IsDominant: true},
				{ID: "danger-zone", Type: SectionInsightCard, ColumnSpan: 4, MinHeight: 3},
			},
		},
		{
			ID:          SkeletonAuth,
			DisplayName: "Auth",
			Category:    CategoryAdmin,
			MaxKPISlots: 0,
			SpacingPx:   32,
			Sections: []Section{
				{ID: "auth-hero", Type: SectionHero, ColumnSpan: 12, MinHeight: 1},
				{ID: "auth-card", Type: SectionInsightCard, ColumnSpan: 12, MinHeight: 2},
			},
		},
	}
}
