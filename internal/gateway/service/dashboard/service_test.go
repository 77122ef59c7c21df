package dashboard

import (
	"context"
	"testing"
	"time"

	"flowlens/internal/classify"
	"flowlens/internal/gateway/repository/artifact"
	dashrepo "flowlens/internal/gateway/repository/dashboard"
	"flowlens/internal/layout"
)

func newTestService() (*Service, *artifact.MemoryStore) {
	artifacts := artifact.NewMemoryStore()
	svc := New(classify.New(nil), layout.DefaultCatalog(), dashrepo.New(), artifacts)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return svc, artifacts
}

func workflowColumns() []classify.SourceColumn {
	return []classify.SourceColumn{
		{Name: "run_id", DeclaredType: "string", UniqueValueCount: 900, TotalRowCount: 900},
		{Name: "started_at", DeclaredType: "timestamp", UniqueValueCount: 880, TotalRowCount: 900},
		{Name: "duration_ms", DeclaredType: "int", UniqueValueCount: 420, TotalRowCount: 900},
		{Name: "status", DeclaredType: "string", UniqueValueCount: 3, TotalRowCount: 900},
		{Name: "trigger", DeclaredType: "string", UniqueValueCount: 5, TotalRowCount: 900},
	}
}

func TestGenerate_PersistsAndExports(t *testing.T) {
	svc, artifacts := newTestService()
	ctx := context.Background()

	doc, err := svc.Generate(ctx, GenerateRequest{
		OwnerID: "acct-1",
		Entity:  "Workflow Run",
		Columns: workflowColumns(),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if doc.ID == "" || doc.Skeleton == "" {
		t.Fatalf("incomplete document: %+v", doc)
	}
	if len(doc.Components) == 0 {
		t.Fatalf("expected components in generated document")
	}

	stored, err := svc.Get(ctx, doc.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Skeleton != doc.Skeleton {
		t.Fatalf("stored skeleton %q != generated %q", stored.Skeleton, doc.Skeleton)
	}

	raw, err := artifacts.Get(ctx, doc.ID, "layout.json")
	if err != nil {
		t.Fatalf("export artifact missing: %v", err)
	}
	if len(raw) == 0 {
		t.Fatalf("export artifact is empty")
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	req := GenerateRequest{OwnerID: "acct-1", Entity: "Workflow Run", Columns: workflowColumns()}

	a, err := svc.Generate(ctx, req)
	if err != nil {
		t.Fatalf("first generate: %v", err)
	}
	b, err := svc.Generate(ctx, req)
	if err != nil {
		t.Fatalf("second generate: %v", err)
	}
	if a.Skeleton != b.Skeleton {
		t.Fatalf("skeleton differs across identical runs: %q vs %q", a.Skeleton, b.Skeleton)
	}
	if len(a.Components) != len(b.Components) {
		t.Fatalf("component count differs: %d vs %d", len(a.Components), len(b.Components))
	}
	for i := range a.Components {
		if a.Components[i].Type != b.Components[i].Type || a.Components[i].Grid != b.Components[i].Grid {
			t.Fatalf("component %d differs: %+v vs %+v", i, a.Components[i], b.Components[i])
		}
	}
}

func TestPreview_DoesNotPersist(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	doc, err := svc.Preview(ctx, GenerateRequest{Entity: "Workflow Run", Columns: workflowColumns()})
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if len(doc.Components) == 0 {
		t.Fatalf("expected components in preview")
	}
	docs, err := svc.List(ctx, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("preview must not persist, found %d documents", len(docs))
	}
}

func TestGenerate_ValidatesInput(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Generate(ctx, GenerateRequest{Columns: workflowColumns()}); err == nil {
		t.Fatalf("expected error for missing entity")
	}
	if _, err := svc.Generate(ctx, GenerateRequest{Entity: "Workflow Run"}); err == nil {
		t.Fatalf("expected error for empty columns")
	}
}

func TestGenerate_PublishesProgress(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	events, cancel := svc.Subscribe()
	defer cancel()

	if _, err := svc.Generate(ctx, GenerateRequest{Entity: "Workflow Run", Columns: workflowColumns()}); err != nil {
		t.Fatalf("generate: %v", err)
	}

	seen := map[Stage]bool{}
	deadline := time.After(time.Second)
	for !seen[StageDone] {
		select {
		case ev := <-events:
			seen[ev.Stage] = true
		case <-deadline:
			t.Fatalf("timed out waiting for done event, saw %v", seen)
		}
	}
	for _, stage := range []Stage{StageClassifying, StageSignals, StageSkeleton, StageLayout, StageDone} {
		if !seen[stage] {
			t.Fatalf("missing progress stage %q, saw %v", stage, seen)
		}
	}
}

func TestPreview_AcceptsPreclassifiedFields(t *testing.T) {
	svc, _ := newTestService()
	doc, err := svc.Preview(context.Background(), GenerateRequest{
		Entity: "Workflow Run",
		Fields: []layout.ClassifiedField{
			{Name: "started_at", Shape: layout.ShapeTimestamp, Role: layout.RoleTrend, UniqueValueCount: 200, TotalRowCount: 300},
			{Name: "status", Shape: layout.ShapeStatus, Role: layout.RoleBreakdown, UniqueValueCount: 3, TotalRowCount: 300},
			{Name: "duration_ms", Shape: layout.ShapeDuration, Role: layout.RoleHero, UniqueValueCount: 120, TotalRowCount: 300},
		},
	})
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if len(doc.Components) == 0 {
		t.Fatalf("expected components from pre-classified input")
	}
}

func TestGenerate_ExplicitUITypePassedThrough(t *testing.T) {
	svc, _ := newTestService()
	doc, err := svc.Generate(context.Background(), GenerateRequest{
		Entity:  "Workflow Run",
		Columns: workflowColumns(),
		UIType:  "settings",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if doc.Skeleton != "settings" {
		t.Fatalf("explicit ui type ignored, got skeleton %q", doc.Skeleton)
	}
}
