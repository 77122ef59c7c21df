package layout

/*
Package layout turns a set of classified event fields into a concrete,
gap-free dashboard grid.

Three stages, consumed leaves-first:

  - ComputeSignals: classified fields (+ optional event statistics) ->
    aggregate DataSignals (counts, density, narrative health, a design
    search query string).
  - Catalog.Select: DataSignals + explicit UI intent -> one SkeletonID,
    chosen via a priority waterfall then validated and possibly downgraded
    through the capacity fallback graph.
  - Build: chosen skeleton + fields + a chart-hint queue + an entity label
    -> an ordered list of non-overlapping ComponentBlueprints, followed by
    chart deduplication and gap compaction.

Everything here is synchronous, side-effect-free computation over immutable
value objects. Field binding consumes ordered slices only; identical inputs
always produce identical output.
*/
