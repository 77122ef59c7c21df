package layout

import (
	"fmt"
	"strings"
)

// UIType is the explicit UI intent supplied by the conversational layer.
// Empty means "no explicit preference".
type UIType string

const (
	UITypeDashboard      UIType = "dashboard"
	UITypeLandingPage    UIType = "landing-page"
	UITypeFormWizard     UIType = "form-wizard"
	UITypeResultsDisplay UIType = "results-display"
	UITypeAdminCRUD      UIType = "admin-crud"
	UITypeSettings       UIType = "settings"
	UITypeAuth           UIType = "auth"
)

// Mode distinguishes internal tooling dashboards from client-facing ones.
type Mode string

const (
	ModeInternal     Mode = "internal"
	ModeClientFacing Mode = "client-facing"
)

// Selection is the selector's result: the chosen skeleton plus a
// human-readable account of which rule fired. The reason is observability
// output only, not a contract.
type Selection struct {
	Skeleton SkeletonID `json:"skeleton"`
	Reason   string     `json:"reason"`
}

// explicitSkeletons maps the non-dashboard explicit UI types to their
// dedicated skeletons. These bypass the capacity gate entirely.
var explicitSkeletons = map[UIType]SkeletonID{
	UITypeLandingPage:    SkeletonLandingPage,
	UITypeFormWizard:     SkeletonFormWizard,
	UITypeResultsDisplay: SkeletonResultsDisplay,
	UITypeAdminCRUD:      SkeletonAdminCRUD,
	UITypeSettings:       SkeletonSettings,
	UITypeAuth:           SkeletonAuth,
}

var monitoringIntentTerms = []string{
	"monitor", "health check", "real-time", "realtime", "uptime",
	"devops", "observability", "incident", "ops status",
}

var analyticalIntentTerms = []string{"analyze", "compare", "breakdown", "segment"}

// Select picks a skeleton for the given signals and intent. Phase A is a
// strict-order priority waterfall; Phase B validates the candidate's data
// capacity and downgrades through the fallback graph when the minimums are
// not met.
func (c *Catalog) Select(sig DataSignals, uiType UIType, mode Mode, intentText string) Selection {
	if id, ok := explicitSkeletons[uiType]; ok {
		return Selection{
			Skeleton: id,
			Reason:   fmt.Sprintf("explicit ui type %q requested its dedicated skeleton", uiType),
		}
	}

	candidate, reason := c.pickCandidate(sig, uiType, mode, intentText)
	final, gateNote := c.validateCapacity(candidate, sig)
	if gateNote != "" {
		reason += "; " + gateNote
	}
	return Selection{Skeleton: final, Reason: reason}
}

func (c *Catalog) pickCandidate(sig DataSignals, uiType UIType, mode Mode, intentText string) (SkeletonID, string) {
	intent := strings.ToLower(intentText)

	if (sig.DataDisplayMode == DisplayRecords || sig.DataDisplayMode == DisplayHybrid) &&
		(uiType == "" || uiType == UITypeDashboard) {
		return SkeletonRecordBrowser, fmt.Sprintf("data reads as %s; browsing records beats charting them", sig.DataDisplayMode)
	}

	if mode == ModeClientFacing {
		return SkeletonStoryboardInsight, "client-facing mode prefers a narrative storyboard"
	}

	if isOperational(sig, intent) {
		return SkeletonOperationalMonitoring, fmt.Sprintf(
			"timestamped status data with %s density reads as operational monitoring", sig.EventDensity)
	}

	if isAnalytical(sig, intent) {
		return SkeletonAnalyticalBreakdown, fmt.Sprintf(
			"%d categorical fields across %d active fields with a breakdown suit dimensional analysis",
			sig.CategoricalFieldCount, sig.FieldCount)
	}

	if sig.TableSuitableRatio > 0.6 || (sig.TableSuitableRatio > 0.4 && sig.FieldCount > 20) {
		return SkeletonTableFirst, fmt.Sprintf(
			"table-suitable ratio %.2f over %d fields favors a table-first layout",
			sig.TableSuitableRatio, sig.FieldCount)
	}

	return SkeletonExecutiveOverview, "no specialised rule fired; defaulting to executive overview"
}

func isOperational(sig DataSignals, intent string) bool {
	if !sig.HasTimestamp || sig.StatusFieldCount == 0 {
		return false
	}
	if sig.EventDensity == DensityHigh {
		return true
	}
	if !sig.HasTimeSeries {
		return false
	}
	return sig.EventDensity == DensityMedium || matchesAny(intent, monitoringIntentTerms)
}

func isAnalytical(sig DataSignals, intent string) bool {
	if sig.CategoricalFieldCount < 2 || sig.FieldCount < 6 || !sig.HasBreakdown {
		return false
	}
	if matchesAny(intent, analyticalIntentTerms) {
		return true
	}
	if sig.CategoricalFieldCount >= 3 {
		return true
	}
	return sig.CategoricalFieldCount >= 4 && sig.TableSuitableRatio < 0.5
}

func matchesAny(text string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}

// validateCapacity walks the fallback graph from candidate until a skeleton
// whose minimums are met (or whose rule is terminal). Catalog validation
// guarantees termination; the visited set is a belt against a corrupted
// catalog reaching this path.
func (c *Catalog) validateCapacity(candidate SkeletonID, sig DataSignals) (SkeletonID, string) {
	chartable := chartableFields(sig)
	roles := distinctRoles(sig)

	visited := make(map[SkeletonID]struct{}, len(c.capacity))
	cur := candidate
	hops := 0
	for {
		rule, ok := c.capacity[cur]
		if !ok {
			break
		}
		if chartable >= rule.MinChartableFields &&
			sig.FieldCount >= rule.MinActiveFields &&
			roles >= rule.MinDistinctRoles {
			break
		}
		if rule.Fallback == cur {
			break
		}
		if _, seen := visited[cur]; seen {
			break
		}
		visited[cur] = struct{}{}
		cur = rule.Fallback
		hops++
	}

	if hops == 0 {
		return cur, ""
	}
	return cur, fmt.Sprintf(
		"downgraded %s -> %s (chartable=%d active=%d roles=%d)",
		candidate, cur, chartable, sig.FieldCount, roles)
}

func chartableFields(sig DataSignals) int {
	n := sig.FieldCount - int(float64(sig.FieldCount)*sig.TableSuitableRatio)
	if n < 1 {
		n = 1
	}
	return n
}

func distinctRoles(sig DataSignals) int {
	roles := 0
	if sig.FieldCount > 0 {
		roles++
	}
	if sig.HasTimeSeries || sig.HasTimestamp {
		roles++
	}
	if sig.HasBreakdown || sig.CategoricalFieldCount > 0 {
		roles++
	}
	return roles
}
