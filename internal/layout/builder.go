package layout

import (
	"fmt"
	"log"
	"sort"
	"strings"
)

// BuildInput bundles everything the builder consumes. All inputs are
// read-only; the builder never mutates them.
type BuildInput struct {
	Skeleton    *Skeleton
	Fields      []ClassifiedField
	Hints       []ChartHint
	EntityLabel string
	Mapping     FieldMapping
}

// Build binds classified fields into the skeleton's sections and returns the
// ordered blueprint list after deduplication and gap compaction. It is total:
// missing data degrades through fallbacks and section skipping, never errors.
func Build(in BuildInput, vocab *Vocabulary) []ComponentBlueprint {
	if in.Skeleton == nil {
		return nil
	}
	if vocab == nil {
		vocab = DefaultVocabulary()
	}
	b := &builder{
		skel:    in.Skeleton,
		vocab:   vocab,
		fields:  activeFields(in.Fields),
		hints:   in.Hints,
		label:   strings.TrimSpace(in.EntityLabel),
		mapping: in.Mapping,
		used:    make(map[string]bool),
	}
	if b.label == "" {
		b.label = "Records"
	}

	for i, sec := range in.Skeleton.Sections {
		var next *Section
		if i+1 < len(in.Skeleton.Sections) {
			next = &in.Skeleton.Sections[i+1]
		}
		b.buildSection(sec, next)
	}

	out := dedupeCharts(b.out)
	out = compact(out)
	return out
}

type builder struct {
	skel    *Skeleton
	vocab   *Vocabulary
	fields  []ClassifiedField
	hints   []ChartHint
	hintIdx int
	label   string
	mapping FieldMapping
	used    map[string]bool

	out    []ComponentBlueprint
	col    int
	row    int
	rowMax int
}

func (b *builder) buildSection(sec Section, next *Section) {
	switch sec.Type {
	case SectionKPIGrid:
		b.buildKPIGrid(sec)
	case SectionChart:
		b.buildChart(sec, next)
	case SectionTable, SectionFeed:
		b.buildTable(sec)
	case SectionInsightCard:
		b.emit(sec, ComponentInsightCard, "", insightTitle(b.label), staticProps(PropertyBag{
			"entity": b.label,
		}))
	case SectionFilters:
		b.buildFilters(sec)
	case SectionHero:
		b.emit(sec, ComponentHeroSection, "", b.label, staticProps(PropertyBag{
			"title": b.label,
		}))
	case SectionPageHeader:
		b.emit(sec, ComponentPageHeader, "", b.label+" Dashboard", staticProps(PropertyBag{
			"title": b.label + " Dashboard",
		}))
	default:
		log.Printf("layout: skipping unrecognized section type %q (section %q)", sec.Type, sec.ID)
	}
}

// --- grid cursor ---------------------------------------------------------

func (b *builder) newRow() {
	if b.col > 0 {
		b.row += b.rowMax
		b.col = 0
		b.rowMax = 0
	}
}

// reserve returns the origin for a section of the given span, advancing the
// cursor past it.
func (b *builder) reserve(span, height int) (col, row int) {
	if b.col+span > 12 {
		b.newRow()
	}
	col, row = b.col, b.row
	b.col += span
	if height > b.rowMax {
		b.rowMax = height
	}
	if b.col >= 12 {
		b.newRow()
	}
	return col, row
}

// --- KPI grid ------------------------------------------------------------

func (b *builder) buildKPIGrid(sec Section) {
	limit := kpiLimit(sec, b.skel)
	if limit <= 0 {
		return
	}

	picked := b.pickKPIFields(limit)
	if len(picked) > 0 {
		b.emitKPIRow(sec, len(picked), func(i, col, row, width int) ComponentBlueprint {
			f := picked[i]
			b.used[f.Name] = true
			return b.metricCard(sec, i, f.Name, humanize(f.Name), f.Aggregation, col, row, width, sec.MinHeight)
		})
		return
	}

	// No hero or supporting fields at all: generic KPI set, alias-resolved.
	kpis := b.vocab.FallbackKPIs
	b.emitKPIRow(sec, len(kpis), func(i, col, row, width int) ComponentBlueprint {
		k := kpis[i]
		bound := b.vocab.ResolveAlias(k.Concept, b.fields)
		if bound != "" {
			b.used[bound] = true
		}
		title := k.Title
		if k.Concept == "count" && bound == "" {
			title = "Total " + b.label
		}
		return b.metricCard(sec, i, bound, title, k.Aggregation, col, row, width, sec.MinHeight)
	})
}

func kpiLimit(sec Section, skel *Skeleton) int {
	limit := sec.MaxItems
	if limit <= 0 {
		limit = skel.MaxKPISlots
	}
	if skel.MaxKPISlots > 0 && skel.MaxKPISlots < limit {
		limit = skel.MaxKPISlots
	}
	if skel.MaxKPISlots == 0 {
		limit = 0
	}
	return limit
}

func (b *builder) pickKPIFields(limit int) []ClassifiedField {
	var picked []ClassifiedField
	for _, role := range []FieldRole{RoleHero, RoleSupporting} {
		for _, f := range b.fields {
			if len(picked) >= limit {
				return picked
			}
			if f.Role == role && !b.used[f.Name] {
				picked = append(picked, f)
			}
		}
	}
	return picked
}

func (b *builder) emitKPIRow(sec Section, n int, mk func(i, col, row, width int) ComponentBlueprint) {
	origin, row := b.reserve(sec.ColumnSpan, sec.MinHeight)
	width := sec.ColumnSpan / n
	col := origin
	for i := 0; i < n; i++ {
		w := width
		if i == n-1 {
			w = origin + sec.ColumnSpan - col
		}
		b.out = append(b.out, mk(i, col, row, w))
		col += w
	}
}

func (b *builder) metricCard(sec Section, i int, field, title, agg string, col, row, width, height int) ComponentBlueprint {
	props := PropertyBag{
		"title":       title,
		"aggregation": agg,
		"compact":     sec.IsCompact,
	}
	return ComponentBlueprint{
		ID:            fmt.Sprintf("%s-%d", sec.ID, i),
		ComponentType: ComponentMetricCard,
		Props:         b.fieldProps(field, props),
		GridRect:      GridRect{Col: col, Row: row, Width: width, Height: height},
		Meta:          BlueprintMeta{SectionID: sec.ID, PrimaryField: field, Title: title},
	}
}

// --- charts --------------------------------------------------------------

func (b *builder) buildChart(sec Section, next *Section) {
	if f, ok := b.nextUnusedByRole(RoleTrend); ok {
		b.used[f.Name] = true
		b.emit(sec, ComponentTimeseriesChart, f.Name, humanize(f.Name)+" Over Time", b.fieldProps(f.Name, PropertyBag{
			"aggregation": f.Aggregation,
		}))
		return
	}

	if f, ok := b.nextUnusedByRole(RoleBreakdown); ok {
		b.used[f.Name] = true
		ct := ComponentBarChart
		if sec.ColumnSpan <= 6 {
			ct = ComponentPieChart
		}
		b.emit(sec, ct, f.Name, humanize(f.Name)+" Breakdown", b.fieldProps(f.Name, PropertyBag{
			"aggregation": f.Aggregation,
		}))
		return
	}

	if hint, field, ok := b.nextHint(); ok {
		b.used[field] = true
		ct := b.vocab.HintComponent(hint.ComponentType)
		b.emit(sec, ct, field, humanize(field), b.fieldProps(field, PropertyBag{
			"rationale": hint.Rationale,
		}))
		return
	}

	b.skipChart(sec, next)
}

// skipChart handles a chart section with nothing to bind. A sibling already
// placed on this row absorbs the section's width; otherwise, when the next
// section is a chart that would have shared this row, the cursor is left
// untouched so that chart starts the row and compaction widens it.
func (b *builder) skipChart(sec Section, next *Section) {
	if b.col > 0 && b.col+sec.ColumnSpan <= 12 {
		for i := len(b.out) - 1; i >= 0; i-- {
			if b.out[i].GridRect.Row == b.row {
				b.out[i].GridRect.Width += sec.ColumnSpan
				b.col += sec.ColumnSpan
				if b.col >= 12 {
					b.newRow()
				}
				return
			}
		}
		return
	}
	// Row increment withheld: next chart section (if any) takes this row.
	_ = next
}

func (b *builder) nextUnusedByRole(role FieldRole) (ClassifiedField, bool) {
	for _, f := range b.fields {
		if f.Role == role && !b.used[f.Name] {
			return f, true
		}
	}
	return ClassifiedField{}, false
}

func (b *builder) nextHint() (ChartHint, string, bool) {
	for b.hintIdx < len(b.hints) {
		h := b.hints[b.hintIdx]
		b.hintIdx++
		name := strings.TrimSpace(h.FieldName)
		if name == "" || b.used[name] {
			continue
		}
		return h, name, true
	}
	return ChartHint{}, "", false
}

// --- tables and feeds ----------------------------------------------------

func (b *builder) buildTable(sec Section) {
	columns := make([]string, 0, 8)
	for _, f := range b.fields {
		if len(columns) >= 8 {
			break
		}
		columns = append(columns, f.Name)
	}
	if len(columns) == 0 {
		columns = mappedColumns(b.mapping, 6)
	}

	sortField := b.timestampField()

	ct := ComponentDataTable
	if sec.Type == SectionFeed {
		ct = ComponentStatusFeed
	} else if sec.IsDominant && b.skel.Category == CategoryProduct {
		ct = ComponentRecordList
	}

	props := PropertyBag{
		"columns": columns,
	}
	if sec.MaxItems > 0 {
		props["pageSize"] = sec.MaxItems
	}
	if sortField != "" {
		props["sortBy"] = sortField
		props["sortDir"] = "desc"
	}
	b.emit(sec, ct, sortField, b.label, b.fieldProps(sortField, props))
}

// timestampField returns the best timestamp-like field: the first active
// timestamp-shaped field, else the alias chain.
func (b *builder) timestampField() string {
	for _, f := range b.fields {
		if f.Shape == ShapeTimestamp {
			return f.Name
		}
	}
	return b.vocab.ResolveAlias("timestamp", b.fields)
}

func mappedColumns(m FieldMapping, limit int) []string {
	if len(m) == 0 {
		return nil
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) > limit {
		names = names[:limit]
	}
	return names
}

// --- filters -------------------------------------------------------------

func (b *builder) buildFilters(sec Section) {
	var candidates []string
	for _, f := range b.fields {
		if len(candidates) >= 4 {
			break
		}
		switch f.Shape {
		case ShapeStatus, ShapeBinary, ShapeLabel, ShapeTimestamp:
			candidates = append(candidates, f.Name)
		}
	}
	b.emit(sec, ComponentFilterBar, "", "", staticProps(PropertyBag{
		"fields": candidates,
	}))
}

// --- shared emit ---------------------------------------------------------

func (b *builder) emit(sec Section, ct ComponentType, primaryField, title string, props PropsBuilder) {
	col, row := b.reserve(sec.ColumnSpan, sec.MinHeight)
	b.out = append(b.out, ComponentBlueprint{
		ID:            sec.ID,
		ComponentType: ct,
		Props:         props,
		GridRect:      GridRect{Col: col, Row: row, Width: sec.ColumnSpan, Height: sec.MinHeight},
		Meta:          BlueprintMeta{SectionID: sec.ID, PrimaryField: primaryField, Title: title},
	})
}

// fieldProps wraps a static bag with the bound field and, when the mapping
// knows it, the source column.
func (b *builder) fieldProps(field string, bag PropertyBag) PropsBuilder {
	base := make(PropertyBag, len(bag)+2)
	for k, v := range bag {
		base[k] = v
	}
	return func(m FieldMapping) PropertyBag {
		out := make(PropertyBag, len(base)+2)
		for k, v := range base {
			out[k] = v
		}
		if field != "" {
			out["field"] = field
			if src, ok := m[field]; ok && src != "" {
				out["sourceColumn"] = src
			}
		}
		return out
	}
}

func humanize(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == '.' || r == ' '
	})
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

func insightTitle(label string) string {
	return "About " + label
}
