package classify

const classifyPrompt = `You classify event-data columns for dashboard layout.

For every column in the input, return one field object:
  name: the column name, unchanged
  shape: one of id, status, binary, timestamp, duration, money, rate, label,
         high_cardinality_text, long_text, rich_text, numeric, unknown
  role: one of hero, supporting, trend, breakdown, detail
  suggestedComponent: the chart component that fits the field best
                      (MetricCard, TimeseriesChart, BarChart, PieChart, DataTable)
  aggregation: count, sum, avg, min, max or percentage
  skip: true for identifiers and columns that carry no display value
  skipReason: short reason when skip is true

Also return a "hints" array of chart recommendations, most important first:
  { "type": "...", "rationale": "...", "fieldName": "..." }

Respond with a single JSON object: { "fields": [...], "hints": [...] }.
Do not invent columns that are not in the input.`
