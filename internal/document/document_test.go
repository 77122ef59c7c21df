package document

import (
	"testing"
	"time"

	"flowlens/internal/layout"
)

func TestAssemble_MaterializesProps(t *testing.T) {
	mapping := layout.FieldMapping{"status": "status_col"}
	calls := 0
	blueprints := []layout.ComponentBlueprint{
		{
			ID:            "chart-1",
			ComponentType: layout.ComponentPieChart,
			GridRect:      layout.GridRect{Col: 0, Row: 0, Width: 6, Height: 2},
			Meta:          layout.BlueprintMeta{Title: "Status"},
			Props: func(m layout.FieldMapping) layout.PropertyBag {
				calls++
				return layout.PropertyBag{"field": "status", "sourceColumn": m["status"]}
			},
		},
	}

	sel := layout.Selection{Skeleton: layout.SkeletonExecutiveOverview, Reason: "default"}
	sig := layout.DataSignals{LayoutSearchQuery: "minimal executive"}

	doc, err := Assemble("d1", "acct-1", "Workflow Run", sel, sig, blueprints, mapping, 2, time.Now())
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if calls != 1 {
		t.Fatalf("props builder invoked %d times, want 1", calls)
	}
	if len(doc.Components) != 1 {
		t.Fatalf("expected 1 component, got %d", len(doc.Components))
	}
	c := doc.Components[0]
	if c.Type != string(layout.ComponentPieChart) || c.Title != "Status" {
		t.Fatalf("unexpected component: %+v", c)
	}
	if c.Props["sourceColumn"] != "status_col" {
		t.Fatalf("mapping not applied: %+v", c.Props)
	}
	if doc.Skeleton != "executive-overview" || doc.LayoutSearchQuery != "minimal executive" {
		t.Fatalf("selection/signals not carried: %+v", doc)
	}
}

func TestAssemble_RequiresID(t *testing.T) {
	if _, err := Assemble("", "", "x", layout.Selection{}, layout.DataSignals{}, nil, nil, 1, time.Now()); err == nil {
		t.Fatalf("expected error for empty id")
	}
}

func TestAssemble_DefaultsEntity(t *testing.T) {
	doc, err := Assemble("d1", "", "  ", layout.Selection{}, layout.DataSignals{}, nil, nil, 1, time.Now())
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if doc.Entity != "Records" {
		t.Fatalf("expected default entity, got %q", doc.Entity)
	}
}
