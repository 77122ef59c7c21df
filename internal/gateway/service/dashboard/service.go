package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"flowlens/internal/classify"
	"flowlens/internal/document"
	"flowlens/internal/gateway/repository/artifact"
	dashrepo "flowlens/internal/gateway/repository/dashboard"
	"flowlens/internal/layout"
)

// GenerateRequest carries everything one synthesis run needs: the sampled
// columns, optional event statistics, and optional user overrides.
type GenerateRequest struct {
	OwnerID     string                  `json:"ownerId"`
	Entity      string                  `json:"entity"`
	EntityLabel string                  `json:"entityLabel"`
	Columns     []classify.SourceColumn `json:"columns,omitempty"`
	Stats       *layout.EventStats      `json:"stats,omitempty"`
	UIType      string                  `json:"uiType,omitempty"`
	Mode        string                  `json:"mode,omitempty"`
	Intent      string                  `json:"intent,omitempty"`

	// Pre-classified input skips the classifier entirely. Used by callers
	// that already ran classification (the preview endpoint in particular).
	Fields  []layout.ClassifiedField `json:"fields,omitempty"`
	Hints   []layout.ChartHint       `json:"hints,omitempty"`
	Mapping layout.FieldMapping      `json:"mapping,omitempty"`
}

func (r GenerateRequest) hasInput() bool {
	return len(r.Columns) > 0 || len(r.Fields) > 0
}

// Service runs the synthesis pipeline end to end: classification, signal
// computation, skeleton selection, layout building, then persistence.
type Service struct {
	classifier *classify.Classifier
	catalog    *layout.Catalog
	vocab      *layout.Vocabulary
	store      *dashrepo.Store
	artifacts  artifact.Store
	progress   *progressHub
	now        func() time.Time
}

func New(classifier *classify.Classifier, catalog *layout.Catalog, store *dashrepo.Store, artifacts artifact.Store) *Service {
	return &Service{
		classifier: classifier,
		catalog:    catalog,
		vocab:      layout.DefaultVocabulary(),
		store:      store,
		artifacts:  artifacts,
		progress:   newProgressHub(),
		now:        time.Now,
	}
}

// Generate synthesizes a dashboard document and persists it. A nil artifact
// store or a failed export does not fail the run.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (*document.Document, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("dashboard service is not available")
	}
	entity := strings.TrimSpace(req.Entity)
	if entity == "" {
		return nil, fmt.Errorf("entity is required")
	}
	if !req.hasInput() {
		return nil, fmt.Errorf("columns or pre-classified fields are required")
	}

	id := newDashboardID(entity, s.now())
	s.progress.publish(Event{DashboardID: id, Stage: StageClassifying})

	doc, err := s.synthesize(ctx, id, req)
	if err != nil {
		s.progress.publish(Event{DashboardID: id, Stage: StageFailed, Message: err.Error()})
		return nil, err
	}

	if err := s.store.Save(ctx, doc); err != nil {
		s.progress.publish(Event{DashboardID: id, Stage: StageFailed, Message: err.Error()})
		return nil, fmt.Errorf("persist dashboard: %w", err)
	}
	s.exportArtifact(ctx, doc)
	s.progress.publish(Event{DashboardID: id, Stage: StageDone, Message: doc.Skeleton})
	return doc, nil
}

// Preview runs the same pipeline without persisting anything.
func (s *Service) Preview(ctx context.Context, req GenerateRequest) (*document.Document, error) {
	if s == nil {
		return nil, fmt.Errorf("dashboard service is not available")
	}
	entity := strings.TrimSpace(req.Entity)
	if entity == "" {
		return nil, fmt.Errorf("entity is required")
	}
	if !req.hasInput() {
		return nil, fmt.Errorf("columns or pre-classified fields are required")
	}
	return s.synthesize(ctx, "preview", req)
}

func (s *Service) synthesize(ctx context.Context, id string, req GenerateRequest) (*document.Document, error) {
	cls, err := s.classifiedInput(ctx, req)
	if err != nil {
		return nil, err
	}
	s.progress.publish(Event{DashboardID: id, Stage: StageSignals})

	signals := layout.ComputeSignals(cls.Fields, req.Stats)

	sel := s.catalog.Select(signals, layout.UIType(strings.TrimSpace(req.UIType)), layout.Mode(strings.TrimSpace(req.Mode)), req.Intent)
	skel := s.catalog.Skeleton(sel.Skeleton)
	if skel == nil {
		return nil, fmt.Errorf("selected skeleton %q is not in the catalog", sel.Skeleton)
	}
	s.progress.publish(Event{DashboardID: id, Stage: StageSkeleton, Message: string(sel.Skeleton)})

	blueprints := layout.Build(layout.BuildInput{
		Skeleton:    skel,
		Fields:      cls.Fields,
		Hints:       cls.Hints,
		EntityLabel: strings.TrimSpace(req.EntityLabel),
		Mapping:     cls.Mapping,
	}, s.vocab)
	s.progress.publish(Event{DashboardID: id, Stage: StageLayout, Message: fmt.Sprintf("%d components", len(blueprints))})

	doc, err := document.Assemble(id, req.OwnerID, req.Entity, sel, signals,
		blueprints, cls.Mapping, s.vocab.Version, s.now())
	if err != nil {
		return nil, fmt.Errorf("assemble document: %w", err)
	}
	return doc, nil
}

// classifiedInput resolves the request's fields: pre-classified fields pass
// through with an identity mapping where none was given, raw columns go
// through the classifier.
func (s *Service) classifiedInput(ctx context.Context, req GenerateRequest) (classify.Result, error) {
	if len(req.Fields) > 0 {
		res := classify.Result{Fields: req.Fields, Hints: req.Hints, Mapping: req.Mapping}
		if res.Mapping == nil {
			res.Mapping = make(layout.FieldMapping, len(req.Fields))
			for _, f := range req.Fields {
				res.Mapping[f.Name] = f.Name
			}
		}
		return res, nil
	}
	res, err := s.classifier.Classify(ctx, classify.Request{
		Entity:  req.Entity,
		Columns: req.Columns,
	})
	if err != nil {
		return classify.Result{}, fmt.Errorf("classify columns: %w", err)
	}
	return res, nil
}

// exportArtifact writes the assembled document next to the database copy so
// downstream consumers (search indexing, static rendering) can pull it
// without a gateway round trip.
func (s *Service) exportArtifact(ctx context.Context, doc *document.Document) {
	if s.artifacts == nil || doc == nil {
		return
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		log.Printf("dashboard: encode export for %s: %v", doc.ID, err)
		return
	}
	if err := s.artifacts.Put(ctx, doc.ID, "layout.json", payload); err != nil {
		log.Printf("dashboard: export %s: %v", doc.ID, err)
	}
}

// Get returns one persisted document.
func (s *Service) Get(ctx context.Context, id string) (*document.Document, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("dashboard service is not available")
	}
	return s.store.Get(ctx, id)
}

// List returns the owner's documents, most recently updated first.
func (s *Service) List(ctx context.Context, ownerID string) ([]*document.Document, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("dashboard service is not available")
	}
	return s.store.ListByOwner(ctx, ownerID)
}

// Export returns the persisted layout export, or its presigned URL when the
// backing store supports one.
func (s *Service) Export(ctx context.Context, id string) ([]byte, string, error) {
	if s == nil || s.artifacts == nil {
		return nil, "", fmt.Errorf("artifact store is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, "", fmt.Errorf("dashboard id is required")
	}
	if url, err := s.artifacts.GetURL(ctx, id, "layout.json"); err == nil && url != "" {
		return nil, url, nil
	}
	raw, err := s.artifacts.Get(ctx, id, "layout.json")
	if err != nil {
		return nil, "", err
	}
	return raw, "", nil
}

func newDashboardID(entity string, now time.Time) string {
	slug := strings.ToLower(strings.TrimSpace(entity))
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = strings.ReplaceAll(slug, "/", "-")
	return fmt.Sprintf("dash-%s-%d", slug, now.UnixNano())
}
