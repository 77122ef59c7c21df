package layout

import "fmt"

// SectionType enumerates the slot kinds a skeleton may contain.
type SectionType string

const (
	SectionKPIGrid     SectionType = "kpi-grid"
	SectionChart       SectionType = "chart"
	SectionTable       SectionType = "table"
	SectionFeed        SectionType = "feed"
	SectionInsightCard SectionType = "insight-card"
	SectionFilters     SectionType = "filters"
	SectionHero        SectionType = "hero"
	SectionPageHeader  SectionType = "page-header"
)

// Section is one slot within a skeleton. ColumnSpan is on a 12-column grid;
// MinHeight is in abstract grid rows.
type Section struct {
	ID         string
	Type       SectionType
	ColumnSpan int
	MinHeight  int
	MaxItems   int
	IsDominant bool
	IsCompact  bool
}

type SkeletonID string

const (
	SkeletonExecutiveOverview     SkeletonID = "executive-overview"
	SkeletonOperationalMonitoring SkeletonID = "operational-monitoring"
	SkeletonAnalyticalBreakdown   SkeletonID = "analytical-breakdown"
	SkeletonTableFirst            SkeletonID = "table-first"
	SkeletonRecordBrowser         SkeletonID = "record-browser"
	SkeletonStoryboardInsight     SkeletonID = "storyboard-insight"

	SkeletonLandingPage    SkeletonID = "landing-page"
	SkeletonFormWizard     SkeletonID = "form-wizard"
	SkeletonResultsDisplay SkeletonID = "results-display"
	SkeletonAdminCRUD      SkeletonID = "admin-crud"
	SkeletonSettings       SkeletonID = "settings"
	SkeletonAuth           SkeletonID = "auth"
)

type SkeletonCategory string

const (
	CategoryDashboard SkeletonCategory = "dashboard"
	CategoryProduct   SkeletonCategory = "product"
	CategoryAdmin     SkeletonCategory = "admin"
)

// Skeleton is a static, versioned layout template. Skeletons are read-only
// configuration data; they are never built or mutated at request time.
type Skeleton struct {
	ID          SkeletonID
	DisplayName string
	Category    SkeletonCategory
	Sections    []Section
	MaxKPISlots int
	SpacingPx   int
}

// CapacityRule is the minimum data a skeleton needs before the selector is
// allowed to keep it. Fallback names the skeleton to downgrade to when the
// minimums are not met; a rule whose Fallback is its own skeleton is terminal.
type CapacityRule struct {
	MinChartableFields int
	MinActiveFields    int
	MinDistinctRoles   int
	Fallback           SkeletonID
}

// Catalog holds the skeleton table and the capacity fallback graph. Built
// once at startup; Validate must pass before a catalog is used.
type Catalog struct {
	skeletons map[SkeletonID]*Skeleton
	order     []SkeletonID
	capacity  map[SkeletonID]CapacityRule
}

// NewCatalog assembles and validates a catalog. The skeleton slice order is
// preserved for deterministic enumeration.
func NewCatalog(skeletons []*Skeleton, capacity map[SkeletonID]CapacityRule) (*Catalog, error) {
	c := &Catalog{
		skeletons: make(map[SkeletonID]*Skeleton, len(skeletons)),
		capacity:  make(map[SkeletonID]CapacityRule, len(capacity)),
	}
	for _, sk := range skeletons {
		if sk == nil {
			return nil, fmt.Errorf("catalog: nil skeleton")
		}
		if _, dup := c.skeletons[sk.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate skeleton id %q", sk.ID)
		}
		c.skeletons[sk.ID] = sk
		c.order = append(c.order, sk.ID)
	}
	for id, rule := range capacity {
		c.capacity[id] = rule
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Skeleton returns the skeleton for id, or nil when unknown.
func (c *Catalog) Skeleton(id SkeletonID) *Skeleton {
	if c == nil {
		return nil
	}
	return c.skeletons[id]
}

// IDs returns the catalog's skeleton ids in registration order.
func (c *Catalog) IDs() []SkeletonID {
	out := make([]SkeletonID, len(c.order))
	copy(out, c.order)
	return out
}

// Capacity returns the capacity rule for id, if one is declared.
func (c *Catalog) Capacity(id SkeletonID) (CapacityRule, bool) {
	rule, ok := c.capacity[id]
	return rule, ok
}

// validate enforces the two structural invariants that are configuration
// bugs rather than runtime conditions: section ids must be unique within a
// skeleton, and the capacity fallback graph must resolve to a terminal
// skeleton without cycles.
func (c *Catalog) validate() error {
	for _, id := range c.order {
		sk := c.skeletons[id]
		seen := make(map[string]struct{}, len(sk.Sections))
		for _, sec := range sk.Sections {
			if sec.ID == "" {
				return fmt.Errorf("catalog: skeleton %q has a section with empty id", id)
			}
			if _, dup := seen[sec.ID]; dup {
				return fmt.Errorf("catalog: skeleton %q has duplicate section id %q", id, sec.ID)
			}
			seen[sec.ID] = struct{}{}
			if sec.ColumnSpan < 1 || sec.ColumnSpan > 12 {
				return fmt.Errorf("catalog: skeleton %q section %q has column span %d outside 1..12", id, sec.ID, sec.ColumnSpan)
			}
		}
	}

	for id, rule := range c.capacity {
		if _, ok := c.skeletons[id]; !ok {
			return fmt.Errorf("catalog: capacity rule for unknown skeleton %q", id)
		}
		if _, ok := c.skeletons[rule.Fallback]; !ok {
			return fmt.Errorf("catalog: skeleton %q falls back to unknown skeleton %q", id, rule.Fallback)
		}
		// Walk the fallback chain; it must reach a terminal rule within the
		// number of declared rules.
		visited := map[SkeletonID]struct{}{}
		cur := id
		for {
			if _, seen := visited[cur]; seen {
				return fmt.Errorf("catalog: capacity fallback cycle through %q", cur)
			}
			visited[cur] = struct{}{}
			next, ok := c.capacity[cur]
			if !ok {
				// No rule means the skeleton always accepts; chain terminates.
				break
			}
			if next.Fallback == cur {
				break
			}
			cur = next.Fallback
		}
	}
	return nil
}
