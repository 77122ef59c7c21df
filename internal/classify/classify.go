package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"flowlens/internal/layout"
	"flowlens/internal/llm"
)

// SourceColumn describes one raw column of the connected platform's event
// payload, with the sampling statistics the classifier reasons over.
type SourceColumn struct {
	Name             string   `json:"name"`
	DeclaredType     string   `json:"declaredType"`
	UniqueValueCount int      `json:"uniqueValueCount"`
	TotalRowCount    int      `json:"totalRowCount"`
	Examples         []string `json:"examples,omitempty"`
}

// Request is one classification job: the entity the columns belong to plus
// the sampled columns in payload order.
type Request struct {
	Entity  string         `json:"entity"`
	Columns []SourceColumn `json:"columns"`
}

// Result is what the layout pipeline consumes: classified fields in column
// order, the field-to-source mapping, and the chart-hint queue.
type Result struct {
	Fields  []layout.ClassifiedField `json:"fields"`
	Mapping layout.FieldMapping      `json:"mapping"`
	Hints   []layout.ChartHint       `json:"hints"`
}

// Classifier annotates source columns with semantic shapes and chart roles.
// With no model configured it runs the heuristic rules directly; a model
// failure also degrades to the heuristics rather than failing the run.
type Classifier struct {
	model llm.Client
}

func New(model llm.Client) *Classifier {
	return &Classifier{model: model}
}

func (c *Classifier) Classify(ctx context.Context, req Request) (Result, error) {
	if len(req.Columns) == 0 {
		return Result{}, fmt.Errorf("at least one column is required")
	}
	if c == nil || c.model == nil {
		return Heuristic(req), nil
	}

	raw, err := c.model.GenerateJSON(ctx, classifyPrompt, req)
	if err != nil {
		log.Printf("classify: model %s failed (%v); using heuristics", c.model.Name(), err)
		return Heuristic(req), nil
	}
	res, err := parseModelResult(raw, req)
	if err != nil {
		log.Printf("classify: unusable model output (%v); using heuristics", err)
		return Heuristic(req), nil
	}
	return res, nil
}

type modelField struct {
	Name               string `json:"name"`
	Shape              string `json:"shape"`
	Role               string `json:"role"`
	SuggestedComponent string `json:"suggestedComponent"`
	Aggregation        string `json:"aggregation"`
	Skip               bool   `json:"skip"`
	SkipReason         string `json:"skipReason"`
}

type modelResult struct {
	Fields []modelField `json:"fields"`
	Hints  []struct {
		Type      string `json:"type"`
		Rationale string `json:"rationale"`
		FieldName string `json:"fieldName"`
	} `json:"hints"`
}

// parseModelResult validates the model's answer against the request: fields
// must refer to real columns, and the output preserves the request's column
// order regardless of how the model ordered its answer.
func parseModelResult(raw json.RawMessage, req Request) (Result, error) {
	var mr modelResult
	if err := json.Unmarshal(raw, &mr); err != nil {
		return Result{}, fmt.Errorf("decode classification: %w", err)
	}
	if len(mr.Fields) == 0 {
		return Result{}, fmt.Errorf("classification contains no fields")
	}

	byName := make(map[string]modelField, len(mr.Fields))
	for _, f := range mr.Fields {
		byName[strings.ToLower(strings.TrimSpace(f.Name))] = f
	}

	res := Result{Mapping: make(layout.FieldMapping, len(req.Columns))}
	matched := 0
	for _, col := range req.Columns {
		f, ok := byName[strings.ToLower(col.Name)]
		if !ok {
			// The model dropped a column: carry it as unknown detail.
			res.Fields = append(res.Fields, heuristicField(col))
			res.Mapping[col.Name] = col.Name
			continue
		}
		matched++
		res.Fields = append(res.Fields, layout.ClassifiedField{
			Name:               col.Name,
			DeclaredType:       col.DeclaredType,
			Shape:              normalizeShape(f.Shape),
			SuggestedComponent: f.SuggestedComponent,
			Aggregation:        f.Aggregation,
			Role:               normalizeRole(f.Role),
			UniqueValueCount:   col.UniqueValueCount,
			TotalRowCount:      col.TotalRowCount,
			Skip:               f.Skip,
			SkipReason:         f.SkipReason,
		})
		res.Mapping[col.Name] = col.Name
	}
	if matched == 0 {
		return Result{}, fmt.Errorf("classification names none of the requested columns")
	}

	for _, h := range mr.Hints {
		res.Hints = append(res.Hints, layout.ChartHint{
			ComponentType: h.Type,
			Rationale:     h.Rationale,
			FieldName:     h.FieldName,
		})
	}
	return res, nil
}

var validShapes = map[layout.FieldShape]struct{}{
	layout.ShapeID: {}, layout.ShapeStatus: {}, layout.ShapeBinary: {},
	layout.ShapeTimestamp: {}, layout.ShapeDuration: {}, layout.ShapeMoney: {},
	layout.ShapeRate: {}, layout.ShapeLabel: {}, layout.ShapeHighCardText: {},
	layout.ShapeLongText: {}, layout.ShapeRichText: {}, layout.ShapeNumeric: {},
	layout.ShapeUnknown: {},
}

func normalizeShape(s string) layout.FieldShape {
	shape := layout.FieldShape(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := validShapes[shape]; ok {
		return shape
	}
	return layout.ShapeUnknown
}

func normalizeRole(s string) layout.FieldRole {
	switch layout.FieldRole(strings.ToLower(strings.TrimSpace(s))) {
	case layout.RoleHero:
		return layout.RoleHero
	case layout.RoleSupporting:
		return layout.RoleSupporting
	case layout.RoleTrend:
		return layout.RoleTrend
	case layout.RoleBreakdown:
		return layout.RoleBreakdown
	default:
		return layout.RoleDetail
	}
}
