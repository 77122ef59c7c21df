package layout

// ComponentType names a renderer component. The renderer validates against
// this allowlist; the builder never emits a type outside it.
type ComponentType string

const (
	ComponentMetricCard      ComponentType = "MetricCard"
	ComponentTimeseriesChart ComponentType = "TimeseriesChart"
	ComponentBarChart        ComponentType = "BarChart"
	ComponentPieChart        ComponentType = "PieChart"
	ComponentDonutChart      ComponentType = "DonutChart"
	ComponentDataTable       ComponentType = "DataTable"
	ComponentRecordList      ComponentType = "RecordList"
	ComponentContentCard     ComponentType = "ContentCard"
	ComponentFilteredChart   ComponentType = "FilteredChart"
	ComponentStatusFeed      ComponentType = "StatusFeed"
	ComponentHeroSection     ComponentType = "HeroSection"
	ComponentPageHeader      ComponentType = "PageHeader"
	ComponentInsightCard     ComponentType = "InsightCard"
	ComponentFilterBar       ComponentType = "FilterBar"
)

// IsChart reports whether the component renders as a chart for the purposes
// of deduplication and gap compaction.
func (t ComponentType) IsChart() bool {
	switch t {
	case ComponentTimeseriesChart, ComponentBarChart, ComponentPieChart,
		ComponentDonutChart, ComponentFilteredChart:
		return true
	}
	return false
}

// GridRect is a component's placement on the 12-column grid. Row is a
// cumulative vertical offset in grid rows; Height counts grid rows.
type GridRect struct {
	Col    int `json:"col"`
	Row    int `json:"row"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// PropertyBag carries renderer props for one component instance.
type PropertyBag map[string]any

// PropsBuilder materializes a component's props once the field-to-column
// mapping is known. Builders are pure; calling one twice with the same
// mapping yields equal bags.
type PropsBuilder func(FieldMapping) PropertyBag

// BlueprintMeta is auxiliary binding information the post-processing passes
// and the document assembler rely on.
type BlueprintMeta struct {
	SectionID    string `json:"sectionId"`
	PrimaryField string `json:"primaryField,omitempty"`
	Title        string `json:"title,omitempty"`
}

// ComponentBlueprint is one concrete, placed component. Within a built list
// no two rectangles on the same row overlap and every width is in 1..12;
// the gap-compaction pass is the only code allowed to rewrite rects.
type ComponentBlueprint struct {
	ID            string        `json:"id"`
	ComponentType ComponentType `json:"componentType"`
	Props         PropsBuilder  `json:"-"`
	GridRect      GridRect      `json:"gridRect"`
	Meta          BlueprintMeta `json:"meta"`
}

func staticProps(bag PropertyBag) PropsBuilder {
	return func(FieldMapping) PropertyBag {
		out := make(PropertyBag, len(bag))
		for k, v := range bag {
			out[k] = v
		}
		return out
	}
}
