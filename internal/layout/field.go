package layout

// FieldShape is the semantic shape assigned to a field by the upstream
// classifier. The layout core never re-derives shapes; it only consumes them.
type FieldShape string

const (
	ShapeID           FieldShape = "id"
	ShapeStatus       FieldShape = "status"
	ShapeBinary       FieldShape = "binary"
	ShapeTimestamp    FieldShape = "timestamp"
	ShapeDuration     FieldShape = "duration"
	ShapeMoney        FieldShape = "money"
	ShapeRate         FieldShape = "rate"
	ShapeLabel        FieldShape = "label"
	ShapeHighCardText FieldShape = "high_cardinality_text"
	ShapeLongText     FieldShape = "long_text"
	ShapeRichText     FieldShape = "rich_text"
	ShapeNumeric      FieldShape = "numeric"
	ShapeUnknown      FieldShape = "unknown"
)

// FieldRole is the chart role suggested by the classifier.
type FieldRole string

const (
	RoleHero       FieldRole = "hero"
	RoleSupporting FieldRole = "supporting"
	RoleTrend      FieldRole = "trend"
	RoleBreakdown  FieldRole = "breakdown"
	RoleDetail     FieldRole = "detail"
)

// ClassifiedField is one event-data field annotated by the classifier.
// Immutable once handed to the core.
type ClassifiedField struct {
	Name               string     `json:"name"`
	DeclaredType       string     `json:"declaredType"`
	Shape              FieldShape `json:"shape"`
	SuggestedComponent string     `json:"suggestedComponent"`
	Aggregation        string     `json:"aggregation"`
	Role               FieldRole  `json:"role"`
	UniqueValueCount   int        `json:"uniqueValueCount"`
	TotalRowCount      int        `json:"totalRowCount"`
	Skip               bool       `json:"skip"`
	SkipReason         string     `json:"skipReason,omitempty"`
}

// Active reports whether the field participates in layout decisions.
func (f ClassifiedField) Active() bool { return !f.Skip }

// EventStats carries optional aggregate statistics from the analytics
// collaborator. Pointer fields distinguish "absent" from zero.
type EventStats struct {
	TotalEvents   *int     `json:"totalEvents,omitempty"`
	EventsPerHour *float64 `json:"eventsPerHour,omitempty"`
	ErrorRate     *float64 `json:"errorRate,omitempty"`
	TimeSpanHours *float64 `json:"timeSpanHours,omitempty"`
}

// ChartHint is one entry of the design collaborator's recommendation queue.
type ChartHint struct {
	ComponentType string `json:"type"`
	Rationale     string `json:"rationale"`
	FieldName     string `json:"fieldName,omitempty"`
}

// FieldMapping maps a classified field name to its source column in the
// connected platform's event payload.
type FieldMapping map[string]string

func activeFields(fields []ClassifiedField) []ClassifiedField {
	out := make([]ClassifiedField, 0, len(fields))
	for _, f := range fields {
		if f.Active() {
			out = append(out, f)
		}
	}
	return out
}
