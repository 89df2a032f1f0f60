package metrics

import (
	"sort"
	"time"

	"github.com/saurabh-lab/project-dashboard/pkg/domain/model"
	"github.com/saurabh-lab/project-dashboard/pkg/domain/types"
)

// Defaults for capacity utilization
const (
	DefaultCapacityWindow  = 5
	DefaultAssumedCapacity = 40
)

// VelocityTrend sums delivered story points per sprint: Story issues
// with status Done. Every sprint on the canonical axis yields a record,
// zero when nothing was delivered.
func VelocityTrend(ds *model.Dataset) []model.VelocityRecord {
	points := make(map[types.SprintID]int)
	for _, issue := range ds.Issues {
		if issue.IsStory() && issue.IsDone() {
			points[issue.SprintID] += issue.StoryPoints
		}
	}

	records := make([]model.VelocityRecord, 0, len(ds.Sprints))
	for _, id := range ds.Sprints {
		records = append(records, model.VelocityRecord{
			SprintID: id,
			Points:   points[id],
		})
	}
	return records
}

// SprintCompletion pairs committed story points (all stories in the
// sprint regardless of status) with completed points (the velocity
// figure). The merge is total over the sprint axis: a sprint missing
// from one side fills zero, never drops out.
func SprintCompletion(ds *model.Dataset) []model.CompletionRecord {
	committed := make(map[types.SprintID]int)
	completed := make(map[types.SprintID]int)
	for _, issue := range ds.Issues {
		if !issue.IsStory() {
			continue
		}
		committed[issue.SprintID] += issue.StoryPoints
		if issue.IsDone() {
			completed[issue.SprintID] += issue.StoryPoints
		}
	}

	records := make([]model.CompletionRecord, 0, len(ds.Sprints))
	for _, id := range ds.Sprints {
		records = append(records, model.CompletionRecord{
			SprintID:  id,
			Committed: committed[id],
			Completed: completed[id],
		})
	}
	return records
}

// CapacityUtilization sums story points per assignee over the
// most-recent-window sprints by ordinal, across all issue types, and
// attaches the assumed capacity constant. Sorted by load descending,
// assignee ascending on ties.
func CapacityUtilization(ds *model.Dataset, window, assumed int) []model.CapacityRecord {
	if window <= 0 {
		window = DefaultCapacityWindow
	}
	if assumed <= 0 {
		assumed = DefaultAssumedCapacity
	}

	recent := make(map[types.SprintID]bool)
	start := len(ds.Sprints) - window
	if start < 0 {
		start = 0
	}
	for _, id := range ds.Sprints[start:] {
		recent[id] = true
	}

	load := make(map[string]int)
	for _, issue := range ds.Issues {
		if !recent[issue.SprintID] {
			continue
		}
		load[issue.Assignee] += issue.StoryPoints
	}

	records := make([]model.CapacityRecord, 0, len(load))
	for assignee, pts := range load {
		records = append(records, model.CapacityRecord{
			Assignee: assignee,
			Load:     pts,
			Assumed:  assumed,
		})
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Load != records[j].Load {
			return records[i].Load > records[j].Load
		}
		return records[i].Assignee < records[j].Assignee
	})
	return records
}

// DefectDensity relates defects raised in each sprint to stories
// planned for it, over the union of sprints seen on either side.
// The ratio is nil when a sprint has no stories: undefined, not zero.
func DefectDensity(ds *model.Dataset) []model.DensityRecord {
	defects := make(map[types.SprintID]int)
	stories := make(map[types.SprintID]int)
	ordinals := make(map[types.SprintID]int)

	note := func(id types.SprintID) bool {
		if _, ok := ordinals[id]; ok {
			return true
		}
		n, ok := id.Ordinal()
		if ok {
			ordinals[id] = n
		}
		return ok
	}

	for _, d := range ds.Defects {
		if note(d.RaisedIn) {
			defects[d.RaisedIn]++
		}
	}
	for _, issue := range ds.Issues {
		if issue.IsStory() && note(issue.SprintID) {
			stories[issue.SprintID]++
		}
	}

	axis := make([]types.SprintID, 0, len(ordinals))
	for id := range ordinals {
		axis = append(axis, id)
	}
	sort.Slice(axis, func(i, j int) bool {
		return ordinals[axis[i]] < ordinals[axis[j]]
	})

	records := make([]model.DensityRecord, 0, len(axis))
	for _, id := range axis {
		rec := model.DensityRecord{
			SprintID: id,
			Defects:  defects[id],
			Stories:  stories[id],
		}
		if rec.Stories > 0 {
			ratio := float64(rec.Defects) / float64(rec.Stories)
			rec.Ratio = &ratio
		}
		records = append(records, rec)
	}
	return records
}

// StageDistribution counts open defects by lifecycle phase, sorted by
// phase name. Phases with no open defects are omitted.
func StageDistribution(ds *model.Dataset) []model.StageRecord {
	counts := make(map[string]int)
	for _, d := range ds.Defects {
		if d.Status.IsOpen() {
			counts[d.Phase]++
		}
	}

	phases := make([]string, 0, len(counts))
	for phase := range counts {
		phases = append(phases, phase)
	}
	sort.Strings(phases)

	records := make([]model.StageRecord, 0, len(phases))
	for _, phase := range phases {
		records = append(records, model.StageRecord{Phase: phase, Count: counts[phase]})
	}
	return records
}

// RAIDSummary aggregates the RAID log per category in canonical order.
// Health follows strict precedence: any overdue open item makes the
// category critical, else any open item makes it warning, else healthy.
func RAIDSummary(ds *model.Dataset, now time.Time) []model.RAIDSummaryRecord {
	records := make([]model.RAIDSummaryRecord, 0, len(types.AllRAIDCategories()))
	for _, category := range types.AllRAIDCategories() {
		rec := model.RAIDSummaryRecord{
			Category: category,
			Health:   types.HealthHealthy,
		}
		for _, item := range ds.RAID {
			if item.Category != category {
				continue
			}
			rec.Total++
			switch item.State(now) {
			case types.ItemStateOverdue:
				rec.Open++
				rec.Overdue++
				rec.Health = types.HealthCritical
			case types.ItemStateOpen:
				rec.Open++
				if rec.Health != types.HealthCritical {
					rec.Health = types.HealthWarning
				}
			}
		}
		records = append(records, rec)
	}
	return records
}
