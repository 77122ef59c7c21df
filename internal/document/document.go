package document

import (
	"fmt"
	"strings"
	"time"

	"flowlens/internal/layout"
)

// Component is one rendered component entry of a persisted dashboard
// document: a blueprint with its props materialized against the field
// mapping, ready for the renderer.
type Component struct {
	ID    string             `json:"id"`
	Type  string             `json:"type"`
	Grid  layout.GridRect    `json:"grid"`
	Props layout.PropertyBag `json:"props"`
	Title string             `json:"title,omitempty"`
}

// Document is the serializable dashboard spec handed to the renderer and
// stored by the dashboard repository.
type Document struct {
	ID                string             `json:"id"`
	OwnerID           string             `json:"ownerId"`
	Entity            string             `json:"entity"`
	Skeleton          string             `json:"skeleton"`
	SelectionReason   string             `json:"selectionReason"`
	LayoutSearchQuery string             `json:"layoutSearchQuery"`
	VocabularyVersion int                `json:"vocabularyVersion"`
	Signals           layout.DataSignals `json:"signals"`
	Components        []Component        `json:"components"`
	CreatedAt         time.Time          `json:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt"`
}

// Assemble materializes blueprints into a document. Props builders are
// invoked exactly once per component with the supplied mapping.
func Assemble(id, ownerID, entity string, sel layout.Selection, sig layout.DataSignals,
	blueprints []layout.ComponentBlueprint, mapping layout.FieldMapping, vocabVersion int, now time.Time) (*Document, error) {

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("document id is required")
	}
	entity = strings.TrimSpace(entity)
	if entity == "" {
		entity = "Records"
	}

	components := make([]Component, 0, len(blueprints))
	for _, bp := range blueprints {
		var props layout.PropertyBag
		if bp.Props != nil {
			props = bp.Props(mapping)
		}
		components = append(components, Component{
			ID:    bp.ID,
			Type:  string(bp.ComponentType),
			Grid:  bp.GridRect,
			Props: props,
			Title: bp.Meta.Title,
		})
	}

	return &Document{
		ID:                id,
		OwnerID:           strings.TrimSpace(ownerID),
		Entity:            entity,
		Skeleton:          string(sel.Skeleton),
		SelectionReason:   sel.Reason,
		LayoutSearchQuery: sig.LayoutSearchQuery,
		VocabularyVersion: vocabVersion,
		Signals:           sig,
		Components:        components,
		CreatedAt:         now.UTC(),
		UpdatedAt:         now.UTC(),
	}, nil
}
