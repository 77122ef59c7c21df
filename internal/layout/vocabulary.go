package layout

import "strings"

// Vocabulary is the single declarative lookup table injected into the layout
// builder: field alias chains, hint-keyword component mapping, the fallback
// KPI set, and display labels. Earlier builder generations each carried their
// own drifting copies of these tables; the version stamp exists so stored
// documents can say which vocabulary produced them.
type Vocabulary struct {
	Version      int
	FieldAliases map[string][]string
	HintRules    []HintRule
	FallbackKPIs []FallbackKPI
	ShapeLabels  map[FieldShape]string
}

// HintRule maps hint-label keywords to a component type. Rules are evaluated
// in slice order; the first keyword hit wins.
type HintRule struct {
	Keywords  []string
	Component ComponentType
}

// FallbackKPI is one entry of the generic KPI set used when no hero or
// supporting fields exist. Concept keys into FieldAliases; an unresolved
// concept still renders, just unbound.
type FallbackKPI struct {
	Title       string
	Concept     string
	Aggregation string
}

// DefaultVocabulary returns vocabulary v2, the consolidated table.
func DefaultVocabulary() *Vocabulary {
	return &Vocabulary{
		Version: 2,
		FieldAliases: map[string][]string{
			"duration":  {"duration", "duration_ms", "execution_time", "elapsed"},
			"status":    {"status", "result", "outcome"},
			"timestamp": {"timestamp", "created_at", "started_at", "event_time", "time"},
			"money":     {"amount", "price", "cost", "revenue"},
			"count":     {"count", "total", "executions"},
		},
		HintRules: []HintRule{
			{Keywords: []string{"pie"}, Component: ComponentPieChart},
			{Keywords: []string{"donut"}, Component: ComponentDonutChart},
			{Keywords: []string{"line", "area", "timeseries"}, Component: ComponentTimeseriesChart},
			{Keywords: []string{"bar", "funnel"}, Component: ComponentBarChart},
			{Keywords: []string{"table"}, Component: ComponentDataTable},
			{Keywords: []string{"kpi", "metric", "gauge"}, Component: ComponentMetricCard},
		},
		FallbackKPIs: []FallbackKPI{
			{Title: "Total Records", Concept: "count", Aggregation: "count"},
			{Title: "Success Rate", Concept: "status", Aggregation: "percentage"},
			{Title: "Avg Duration", Concept: "duration", Aggregation: "avg"},
		},
		ShapeLabels: map[FieldShape]string{
			ShapeID:           "Identifier",
			ShapeStatus:       "Status",
			ShapeBinary:       "Flag",
			ShapeTimestamp:    "Time",
			ShapeDuration:     "Duration",
			ShapeMoney:        "Amount",
			ShapeRate:         "Rate",
			ShapeLabel:        "Category",
			ShapeHighCardText: "Text",
			ShapeLongText:     "Text",
			ShapeRichText:     "Content",
			ShapeNumeric:      "Value",
			ShapeUnknown:      "Value",
		},
	}
}

// HintComponent maps a free-text hint label to a component type. Unmatched
// labels fall back to a bar chart.
func (v *Vocabulary) HintComponent(label string) ComponentType {
	l := strings.ToLower(label)
	for _, rule := range v.HintRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(l, kw) {
				return rule.Component
			}
		}
	}
	return ComponentBarChart
}

// ResolveAlias walks the alias chain for concept and returns the first
// matching active field name, or "" when nothing matches. Matching is
// case-insensitive on the exact field name.
func (v *Vocabulary) ResolveAlias(concept string, fields []ClassifiedField) string {
	for _, alias := range v.FieldAliases[concept] {
		for _, f := range fields {
			if f.Active() && strings.EqualFold(f.Name, alias) {
				return f.Name
			}
		}
	}
	return ""
}

// ShapeLabel returns the display label for a shape.
func (v *Vocabulary) ShapeLabel(s FieldShape) string {
	if l, ok := v.ShapeLabels[s]; ok {
		return l
	}
	return "Value"
}
