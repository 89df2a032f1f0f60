package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/saurabh-lab/project-dashboard/pkg/agent/tool"
	"github.com/saurabh-lab/project-dashboard/pkg/domain/model"
	"github.com/saurabh-lab/project-dashboard/pkg/domain/types"
	metricsvc "github.com/saurabh-lab/project-dashboard/pkg/service/metrics"
)

// New builds the metric tools for one analysis session. Every tool
// holds the session's dataset by construction, so the model never has
// to (and never can) pass the tables as arguments.
func New(ds *model.Dataset) []gollem.Tool {
	return NewWithClock(ds, time.Now)
}

// NewWithClock is New with an injectable clock for overdue
// classification.
func NewWithClock(ds *model.Dataset, now func() time.Time) []gollem.Tool {
	return []gollem.Tool{
		&velocityTool{ds: ds},
		&completionTool{ds: ds},
		&capacityTool{ds: ds},
		&densityTool{ds: ds},
		&stageTool{ds: ds},
		&raidTool{ds: ds, now: now},
	}
}

// velocityTool reports delivered story points per sprint
type velocityTool struct {
	ds *model.Dataset
}

func (t *velocityTool) Spec() gollem.ToolSpec {
	return gollem.ToolSpec{
		Name:        "metrics__velocity_trend",
		Description: "Get the velocity trend: story points delivered (Done stories) per sprint, in sprint order",
		Parameters:  map[string]*gollem.Parameter{},
	}
}

func (t *velocityTool) Run(ctx context.Context, _ map[string]any) (map[string]any, error) {
	tool.Update(ctx, "Computing velocity trend...")
	records := metricsvc.VelocityTrend(t.ds)

	items := make([]map[string]any, len(records))
	for i, r := range records {
		items[i] = map[string]any{
			"sprint_id": r.SprintID.String(),
			"points":    r.Points,
		}
	}
	return map[string]any{"records": items}, nil
}

// completionTool reports committed vs completed story points per sprint
type completionTool struct {
	ds *model.Dataset
}

func (t *completionTool) Spec() gollem.ToolSpec {
	return gollem.ToolSpec{
		Name:        "metrics__sprint_completion",
		Description: "Get sprint completion: committed story points (all stories) vs completed story points (Done stories) per sprint",
		Parameters:  map[string]*gollem.Parameter{},
	}
}

func (t *completionTool) Run(ctx context.Context, _ map[string]any) (map[string]any, error) {
	tool.Update(ctx, "Computing sprint completion...")
	records := metricsvc.SprintCompletion(t.ds)

	items := make([]map[string]any, len(records))
	for i, r := range records {
		items[i] = map[string]any{
			"sprint_id": r.SprintID.String(),
			"committed": r.Committed,
			"completed": r.Completed,
		}
	}
	return map[string]any{"records": items}, nil
}

// capacityTool reports per-assignee load over the recent sprint window
type capacityTool struct {
	ds *model.Dataset
}

func (t *capacityTool) Spec() gollem.ToolSpec {
	return gollem.ToolSpec{
		Name:        "metrics__capacity_utilization",
		Description: "Get capacity utilization: story points per assignee over the most recent sprints, compared to an assumed capacity",
		Parameters: map[string]*gollem.Parameter{
			"sprint_window": {
				Type:        gollem.TypeInteger,
				Description: fmt.Sprintf("Number of most recent sprints to include (default: %d)", metricsvc.DefaultCapacityWindow),
				Required:    false,
			},
			"assumed_capacity": {
				Type:        gollem.TypeInteger,
				Description: fmt.Sprintf("Assumed per-assignee capacity in story points (default: %d)", metricsvc.DefaultAssumedCapacity),
				Required:    false,
			},
		},
	}
}

func (t *capacityTool) Run(ctx context.Context, args map[string]any) (map[string]any, error) {
	window, err := extractInt64Default(args, "sprint_window", metricsvc.DefaultCapacityWindow)
	if err != nil {
		return nil, err
	}
	assumed, err := extractInt64Default(args, "assumed_capacity", metricsvc.DefaultAssumedCapacity)
	if err != nil {
		return nil, err
	}
	if window <= 0 {
		return nil, goerr.New("sprint_window must be positive", goerr.V("sprint_window", window))
	}
	if assumed <= 0 {
		return nil, goerr.New("assumed_capacity must be positive", goerr.V("assumed_capacity", assumed))
	}

	tool.Update(ctx, fmt.Sprintf("Computing capacity over the last %d sprints...", window))
	records := metricsvc.CapacityUtilization(t.ds, int(window), int(assumed))

	items := make([]map[string]any, len(records))
	for i, r := range records {
		items[i] = map[string]any{
			"assignee":          r.Assignee,
			"load":              r.Load,
			"assumed_capacity":  r.Assumed,
			"utilization_ratio": float64(r.Load) / float64(r.Assumed),
		}
	}
	return map[string]any{"records": items, "sprint_window": window}, nil
}

// densityTool reports defects raised vs stories planned per sprint
type densityTool struct {
	ds *model.Dataset
}

func (t *densityTool) Spec() gollem.ToolSpec {
	return gollem.ToolSpec{
		Name:        "metrics__defect_density",
		Description: "Get defect density: defects raised per sprint vs stories planned, with the defects/stories ratio (null when a sprint has no stories)",
		Parameters:  map[string]*gollem.Parameter{},
	}
}

func (t *densityTool) Run(ctx context.Context, _ map[string]any) (map[string]any, error) {
	tool.Update(ctx, "Computing defect density...")
	records := metricsvc.DefectDensity(t.ds)

	items := make([]map[string]any, len(records))
	for i, r := range records {
		item := map[string]any{
			"sprint_id": r.SprintID.String(),
			"defects":   r.Defects,
			"stories":   r.Stories,
		}
		if r.Ratio != nil {
			item["ratio"] = *r.Ratio
		} else {
			item["ratio"] = nil
		}
		items[i] = item
	}
	return map[string]any{"records": items}, nil
}

// stageTool reports open defects by lifecycle phase
type stageTool struct {
	ds *model.Dataset
}

func (t *stageTool) Spec() gollem.ToolSpec {
	return gollem.ToolSpec{
		Name:        "metrics__stage_distribution",
		Description: "Get the stage distribution: count of open defects per lifecycle phase (SIT, UAT, Prod, ...)",
		Parameters:  map[string]*gollem.Parameter{},
	}
}

func (t *stageTool) Run(ctx context.Context, _ map[string]any) (map[string]any, error) {
	tool.Update(ctx, "Computing stage distribution...")
	records := metricsvc.StageDistribution(t.ds)

	items := make([]map[string]any, len(records))
	for i, r := range records {
		items[i] = map[string]any{
			"phase": r.Phase,
			"count": r.Count,
		}
	}
	return map[string]any{"records": items}, nil
}

// raidTool reports the RAID log summary per category
type raidTool struct {
	ds  *model.Dataset
	now func() time.Time
}

func (t *raidTool) Spec() gollem.ToolSpec {
	return gollem.ToolSpec{
		Name:        "metrics__raid_summary",
		Description: "Get the RAID log summary: total, open, and overdue item counts per category with a health indicator (healthy/warning/critical)",
		Parameters: map[string]*gollem.Parameter{
			"category": {
				Type:        gollem.TypeString,
				Description: "Restrict the summary to one RAID category (default: all categories)",
				Required:    false,
				Enum: []string{
					types.RAIDCategoryRisk.String(),
					types.RAIDCategoryAssumption.String(),
					types.RAIDCategoryIssue.String(),
					types.RAIDCategoryDependency.String(),
				},
			},
		},
	}
}

func (t *raidTool) Run(ctx context.Context, args map[string]any) (map[string]any, error) {
	var filter types.RAIDCategory
	if raw, ok := args["category"].(string); ok && raw != "" {
		category, err := types.ParseRAIDCategory(raw)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid category argument", goerr.V("category", raw))
		}
		filter = category
	}

	tool.Update(ctx, "Summarizing RAID log...")
	records := metricsvc.RAIDSummary(t.ds, t.now())

	items := make([]map[string]any, 0, len(records))
	for _, r := range records {
		if filter != "" && r.Category != filter {
			continue
		}
		items = append(items, map[string]any{
			"category": r.Category.String(),
			"total":    r.Total,
			"open":     r.Open,
			"overdue":  r.Overdue,
			"health":   r.Health.String(),
		})
	}
	return map[string]any{"records": items}, nil
}

// extractInt64Default reads an optional integer argument, falling back
// to the declared default when absent.
func extractInt64Default(args map[string]any, key string, fallback int64) (int64, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return fallback, nil
	}
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case float64:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("%s must be an integer, got %T", key, v)
	}
}
