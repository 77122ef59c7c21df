package classify

import (
	"strings"

	"flowlens/internal/layout"
)

// Heuristic classifies columns by name and declared type alone. It is the
// deterministic path used when no model is configured and the safety net
// when a model answer is unusable.
func Heuristic(req Request) Result {
	res := Result{Mapping: make(layout.FieldMapping, len(req.Columns))}
	for _, col := range req.Columns {
		res.Fields = append(res.Fields, heuristicField(col))
		res.Mapping[col.Name] = col.Name
	}
	res.Hints = heuristicHints(res.Fields)
	return res
}

func heuristicField(col SourceColumn) layout.ClassifiedField {
	f := layout.ClassifiedField{
		Name:             col.Name,
		DeclaredType:     col.DeclaredType,
		Shape:            layout.ShapeUnknown,
		Role:             layout.RoleDetail,
		Aggregation:      "count",
		UniqueValueCount: col.UniqueValueCount,
		TotalRowCount:    col.TotalRowCount,
	}

	name := strings.ToLower(col.Name)
	typ := strings.ToLower(col.DeclaredType)

	switch {
	case name == "id" || strings.HasSuffix(name, "_id") || strings.HasSuffix(name, "uuid"):
		f.Shape = layout.ShapeID
		f.Skip = true
		f.SkipReason = "identifier column"
	case containsAny(name, "timestamp", "created_at", "updated_at", "started_at", "finished_at", "_time", "date") || typ == "timestamp" || typ == "datetime":
		f.Shape = layout.ShapeTimestamp
		f.Role = layout.RoleTrend
		f.SuggestedComponent = "TimeseriesChart"
		f.Aggregation = "count"
	case containsAny(name, "duration", "elapsed", "latency", "_ms"):
		f.Shape = layout.ShapeDuration
		f.Role = layout.RoleHero
		f.Aggregation = "avg"
	case containsAny(name, "status", "state", "result", "outcome"):
		f.Shape = layout.ShapeStatus
		f.Role = layout.RoleBreakdown
		f.Aggregation = "count"
	case typ == "bool" || typ == "boolean" || col.UniqueValueCount == 2 && containsAny(name, "is_", "has_", "success", "enabled", "active"):
		f.Shape = layout.ShapeBinary
		f.Role = layout.RoleSupporting
		f.Aggregation = "percentage"
	case containsAny(name, "amount", "price", "cost", "revenue", "total_") && isNumericType(typ):
		f.Shape = layout.ShapeMoney
		f.Role = layout.RoleHero
		f.Aggregation = "sum"
	case containsAny(name, "rate", "ratio", "percent"):
		f.Shape = layout.ShapeRate
		f.Role = layout.RoleSupporting
		f.Aggregation = "avg"
	case isNumericType(typ):
		f.Shape = layout.ShapeNumeric
		f.Role = layout.RoleSupporting
		f.Aggregation = "avg"
	case col.UniqueValueCount > 0 && col.UniqueValueCount <= 20:
		f.Shape = layout.ShapeLabel
		f.Role = layout.RoleBreakdown
		f.Aggregation = "count"
	case col.TotalRowCount > 0 && col.UniqueValueCount > col.TotalRowCount/2:
		f.Shape = layout.ShapeHighCardText
	default:
		f.Shape = layout.ShapeLabel
	}
	return f
}

// heuristicHints proposes one chart per chartable field, mirroring what the
// design collaborator would send. The queue follows field order.
func heuristicHints(fields []layout.ClassifiedField) []layout.ChartHint {
	var hints []layout.ChartHint
	for _, f := range fields {
		if f.Skip {
			continue
		}
		switch f.Role {
		case layout.RoleTrend:
			hints = append(hints, layout.ChartHint{
				ComponentType: "line",
				Rationale:     "events over time",
				FieldName:     f.Name,
			})
		case layout.RoleBreakdown:
			hints = append(hints, layout.ChartHint{
				ComponentType: "bar",
				Rationale:     "value distribution",
				FieldName:     f.Name,
			})
		}
	}
	return hints
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func isNumericType(typ string) bool {
	switch typ {
	case "int", "integer", "bigint", "float", "double", "number", "numeric", "decimal":
		return true
	}
	return false
}
