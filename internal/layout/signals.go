package layout

import (
	"regexp"
	"strings"
)

type EventDensity string

const (
	DensityLow    EventDensity = "low"
	DensityMedium EventDensity = "medium"
	DensityHigh   EventDensity = "high"
)

type DataDisplayMode string

const (
	DisplayMetrics DataDisplayMode = "metrics"
	DisplayRecords DataDisplayMode = "records"
	DisplayHybrid  DataDisplayMode = "hybrid"
)

type DataStory string

const (
	StoryHealthy  DataStory = "healthy"
	StoryWarning  DataStory = "warning"
	StoryCritical DataStory = "critical"
	StoryUnknown  DataStory = "unknown"
)

// DataSignals is the aggregate, read-only shape summary derived from the
// classified fields of one request. Computed once, never mutated.
type DataSignals struct {
	FieldCount            int             `json:"fieldCount"`
	HasTimestamp          bool            `json:"hasTimestamp"`
	HasTimeSeries         bool            `json:"hasTimeSeries"`
	HasBreakdown          bool            `json:"hasBreakdown"`
	StatusFieldCount      int             `json:"statusFieldCount"`
	CategoricalFieldCount int             `json:"categoricalFieldCount"`
	TableSuitableRatio    float64         `json:"tableSuitableRatio"`
	EventDensity          EventDensity    `json:"eventDensity"`
	DataDisplayMode       DataDisplayMode `json:"dataDisplayMode"`
	DataStory             DataStory       `json:"dataStory"`
	LayoutSearchQuery     string          `json:"layoutSearchQuery"`
	RichTextFields        []string        `json:"richTextFields,omitempty"`
	FieldGroups           []FieldGroup    `json:"fieldGroups,omitempty"`
	SparseFields          []string        `json:"sparseFields,omitempty"`
}

// FieldGroup clusters active field names by broad family, preserving the
// classifier's field order within each group.
type FieldGroup struct {
	Family string   `json:"family"`
	Fields []string `json:"fields"`
}

var errNamePattern = regexp.MustCompile(`(?i)error|fail|exception|fault`)

// ComputeSignals derives DataSignals from the classified fields and optional
// event statistics. The function is total: an empty field list yields the
// minimal/unknown signal set.
func ComputeSignals(fields []ClassifiedField, stats *EventStats) DataSignals {
	active := activeFields(fields)

	sig := DataSignals{
		FieldCount:   len(active),
		EventDensity: DensityMedium,
		DataStory:    StoryUnknown,
	}

	tableSuitable := 0
	maxUnique := 0
	hasDuration := false
	hasMoneyOrRate := false
	hasErrorName := false
	chartRoleCount := 0

	for _, f := range active {
		if f.UniqueValueCount > maxUnique {
			maxUnique = f.UniqueValueCount
		}
		if f.Shape == ShapeTimestamp && f.UniqueValueCount >= 5 {
			sig.HasTimestamp = true
		}
		if f.Role == RoleTrend && suggestsTimeSeries(f.SuggestedComponent) {
			sig.HasTimeSeries = true
		}
		if f.Role == RoleBreakdown {
			sig.HasBreakdown = true
		}
		switch f.Role {
		case RoleHero, RoleTrend, RoleBreakdown:
			chartRoleCount++
		}
		if f.Shape == ShapeStatus || f.Shape == ShapeBinary {
			sig.StatusFieldCount++
		}
		switch f.Shape {
		case ShapeStatus, ShapeBinary, ShapeLabel:
			if f.UniqueValueCount >= 2 && f.UniqueValueCount <= 20 {
				sig.CategoricalFieldCount++
			}
		}
		if isTableSuitable(f) {
			tableSuitable++
		}
		if f.Shape == ShapeDuration {
			hasDuration = true
		}
		if f.Shape == ShapeMoney || f.Shape == ShapeRate {
			hasMoneyOrRate = true
		}
		if errNamePattern.MatchString(f.Name) {
			hasErrorName = true
		}
		if f.Shape == ShapeRichText {
			sig.RichTextFields = append(sig.RichTextFields, f.Name)
		}
		if f.UniqueValueCount <= 1 {
			sig.SparseFields = append(sig.SparseFields, f.Name)
		}
	}

	if sig.FieldCount > 0 {
		sig.TableSuitableRatio = float64(tableSuitable) / float64(sig.FieldCount)
	}

	sig.EventDensity = computeDensity(stats, maxUnique)
	sig.DataDisplayMode = computeDisplayMode(sig.FieldCount, chartRoleCount, sig.TableSuitableRatio)
	sig.DataStory = computeStory(stats, sig, hasErrorName, hasDuration, hasMoneyOrRate)
	sig.FieldGroups = groupFields(active)
	sig.LayoutSearchQuery = buildSearchQuery(sig)
	return sig
}

func suggestsTimeSeries(component string) bool {
	c := strings.ToLower(component)
	return strings.Contains(c, "timeseries") ||
		strings.Contains(c, "time-series") ||
		strings.Contains(c, "line") ||
		strings.Contains(c, "area")
}

func isTableSuitable(f ClassifiedField) bool {
	if f.Shape == ShapeHighCardText || f.Shape == ShapeLongText {
		return true
	}
	if f.Role == RoleDetail {
		return true
	}
	return f.Shape == ShapeLabel && f.UniqueValueCount > 10
}

func computeDensity(stats *EventStats, maxUnique int) EventDensity {
	if stats != nil && stats.EventsPerHour != nil {
		switch {
		case *stats.EventsPerHour > 100:
			return DensityHigh
		case *stats.EventsPerHour < 5:
			return DensityLow
		default:
			return DensityMedium
		}
	}
	if stats != nil && stats.TotalEvents != nil {
		switch {
		case *stats.TotalEvents > 1000:
			return DensityHigh
		case *stats.TotalEvents < 50:
			return DensityLow
		default:
			return DensityMedium
		}
	}
	switch {
	case maxUnique > 500:
		return DensityHigh
	case maxUnique < 10:
		return DensityLow
	default:
		return DensityMedium
	}
}

// computeDisplayMode decides whether the data reads as metrics, raw records,
// or a mix. With no chartable roles at all there is nothing to plot; a high
// table ratio alongside a couple of chartable fields reads as hybrid.
func computeDisplayMode(fieldCount, chartRoleCount int, tableRatio float64) DataDisplayMode {
	if fieldCount == 0 {
		return DisplayMetrics
	}
	if chartRoleCount == 0 {
		return DisplayRecords
	}
	if tableRatio >= 0.75 && chartRoleCount <= 2 {
		return DisplayHybrid
	}
	return DisplayMetrics
}

func computeStory(stats *EventStats, sig DataSignals, hasErrorName, hasDuration, hasMoneyOrRate bool) DataStory {
	if stats != nil && stats.ErrorRate != nil {
		switch {
		case *stats.ErrorRate < 0.05:
			return StoryHealthy
		case *stats.ErrorRate < 0.20:
			return StoryWarning
		default:
			return StoryCritical
		}
	}
	hasStatus := sig.StatusFieldCount > 0
	switch {
	case hasErrorName && hasStatus:
		return StoryWarning
	case hasStatus && hasDuration:
		return StoryHealthy
	case hasMoneyOrRate:
		return StoryHealthy
	case sig.HasTimeSeries && hasStatus:
		return StoryHealthy
	case sig.HasTimeSeries:
		return StoryHealthy
	default:
		return StoryUnknown
	}
}

func groupFields(active []ClassifiedField) []FieldGroup {
	families := []struct {
		name   string
		member func(ClassifiedField) bool
	}{
		{"metrics", func(f ClassifiedField) bool {
			switch f.Shape {
			case ShapeNumeric, ShapeDuration, ShapeMoney, ShapeRate:
				return true
			}
			return false
		}},
		{"time", func(f ClassifiedField) bool { return f.Shape == ShapeTimestamp }},
		{"category", func(f ClassifiedField) bool {
			switch f.Shape {
			case ShapeStatus, ShapeBinary, ShapeLabel:
				return true
			}
			return false
		}},
		{"text", func(f ClassifiedField) bool {
			switch f.Shape {
			case ShapeHighCardText, ShapeLongText, ShapeRichText:
				return true
			}
			return false
		}},
	}

	var groups []FieldGroup
	for _, fam := range families {
		var names []string
		for _, f := range active {
			if fam.member(f) {
				names = append(names, f.Name)
			}
		}
		if len(names) > 0 {
			groups = append(groups, FieldGroup{Family: fam.name, Fields: names})
		}
	}
	return groups
}

// buildSearchQuery assembles the keyword bag consumed by the downstream
// BM25 design-database search. Term group order is fixed.
func buildSearchQuery(sig DataSignals) string {
	var terms []string

	switch {
	case sig.FieldCount <= 5:
		terms = append(terms, "minimal", "executive", "KPI-focused", "hero")
	case sig.FieldCount <= 12:
		terms = append(terms, "balanced", "analytical", "multi-chart", "breakdown")
	default:
		terms = append(terms, "data-heavy", "table-dominant", "filterable", "sortable")
	}

	if sig.HasTimeSeries {
		terms = append(terms, "time-series", "trend", "temporal")
	}
	if sig.HasBreakdown {
		terms = append(terms, "distribution", "segments", "composition")
	}
	if sig.StatusFieldCount > 0 {
		terms = append(terms, "status", "monitoring", "health")
	}
	if sig.CategoricalFieldCount >= 3 {
		terms = append(terms, "multi-dimensional", "comparison", "cross-filter")
	}
	switch sig.EventDensity {
	case DensityHigh:
		terms = append(terms, "real-time", "high-volume")
	case DensityLow:
		terms = append(terms, "summary", "snapshot")
	}

	switch sig.DataStory {
	case StoryHealthy:
		terms = append(terms, "success", "performance", "growth")
	case StoryWarning:
		terms = append(terms, "attention", "warning", "degradation")
	case StoryCritical:
		terms = append(terms, "critical", "alert", "error-tracking", "incident")
	default:
		terms = append(terms, "general", "dashboard", "monitoring")
	}

	return strings.Join(terms, " ")
}
