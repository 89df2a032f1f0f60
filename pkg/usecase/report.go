package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/saurabh-lab/project-dashboard/pkg/domain/types"
	"github.com/saurabh-lab/project-dashboard/pkg/service/metrics"
	"github.com/saurabh-lab/project-dashboard/pkg/utils/logging"
)

// Metric section names in report order
var reportMetrics = []string{
	"velocity_trend",
	"sprint_completion",
	"capacity_utilization",
	"defect_density",
	"stage_distribution",
	"raid_summary",
}

// ReportSection is one AI-written summary with a structured severity
type ReportSection struct {
	Metric  string       `json:"metric"`
	Health  types.Health `json:"health"`
	Summary string       `json:"summary"`
}

// Report holds the per-metric summaries and the executive summary
type Report struct {
	Sections  []ReportSection `json:"sections"`
	Executive ReportSection   `json:"executive"`
}

// metricSummary is the JSON structure requested from the model for
// each section. Severity is a declared enum field, not inferred from
// prose.
type metricSummary struct {
	Summary string `json:"summary"`
	Health  string `json:"health"`
}

var metricSummarySchema = &gollem.Parameter{
	Title:       "MetricSummary",
	Description: "Structured summary of one program health metric",
	Type:        gollem.TypeObject,
	Properties: map[string]*gollem.Parameter{
		"summary": {
			Type:        gollem.TypeString,
			Description: "Two to four plain sentences summarizing the metric for a program status report. No markdown headers.",
			Required:    true,
		},
		"health": {
			Type:        gollem.TypeString,
			Description: "Overall health assessment of this metric",
			Required:    true,
			Enum: []string{
				types.HealthHealthy.String(),
				types.HealthWarning.String(),
				types.HealthCritical.String(),
			},
		},
	},
}

// GenerateReport produces an AI-written summary per metric plus an
// executive summary over all of them. Retry and credential semantics
// match the conversation loop.
func (uc *UseCases) GenerateReport(ctx context.Context) (*Report, error) {
	logger := logging.From(ctx)

	if uc.llmClient == nil {
		return nil, goerr.New(CredentialRequiredMessage)
	}

	report := &Report{}
	for _, metric := range reportMetrics {
		data, err := uc.metricJSON(metric)
		if err != nil {
			return nil, err
		}

		section, err := uc.summarizeMetric(ctx, metric, data)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to summarize metric", goerr.V("metric", metric))
		}
		report.Sections = append(report.Sections, *section)
		logger.Info("metric summarized", "metric", metric, "health", section.Health)
	}

	executive, err := uc.summarizeExecutive(ctx, report.Sections)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build executive summary")
	}
	report.Executive = *executive

	return report, nil
}

// metricJSON serializes one metric's records for the prompt
func (uc *UseCases) metricJSON(metric string) (string, error) {
	var v any
	switch metric {
	case "velocity_trend":
		v = metrics.VelocityTrend(uc.dataset)
	case "sprint_completion":
		v = metrics.SprintCompletion(uc.dataset)
	case "capacity_utilization":
		v = metrics.CapacityUtilization(uc.dataset, metrics.DefaultCapacityWindow, metrics.DefaultAssumedCapacity)
	case "defect_density":
		v = metrics.DefectDensity(uc.dataset)
	case "stage_distribution":
		v = metrics.StageDistribution(uc.dataset)
	case "raid_summary":
		v = metrics.RAIDSummary(uc.dataset, uc.now())
	default:
		return "", goerr.New("unknown report metric", goerr.V("metric", metric))
	}

	encoded, err := json.Marshal(v)
	if err != nil {
		return "", goerr.Wrap(err, "failed to encode metric data", goerr.V("metric", metric))
	}
	return string(encoded), nil
}

func (uc *UseCases) summarizeMetric(ctx context.Context, metric, data string) (*ReportSection, error) {
	prompt := fmt.Sprintf(`Summarize the following program health metric for a weekly status report.
Assess its health as one of: healthy, warning, critical.

Metric: %s
Data (JSON):
%s`, metric, data)

	summary, err := uc.generateSummary(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return &ReportSection{Metric: metric, Health: summary.health, Summary: summary.text}, nil
}

func (uc *UseCases) summarizeExecutive(ctx context.Context, sections []ReportSection) (*ReportSection, error) {
	var sb strings.Builder
	for _, s := range sections {
		fmt.Fprintf(&sb, "- %s [%s]: %s\n", s.Metric, s.Health, s.Summary)
	}

	prompt := fmt.Sprintf(`Write an executive summary of the overall program health based on these metric summaries.
Assess the overall health as one of: healthy, warning, critical — the worst individual metric should dominate the assessment.

Metric summaries:
%s`, sb.String())

	summary, err := uc.generateSummary(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return &ReportSection{Metric: "executive", Health: summary.health, Summary: summary.text}, nil
}

type generatedSummary struct {
	text   string
	health types.Health
}

// generateSummary runs one structured-output request with the shared
// retry loop and validates the returned severity against the enum.
func (uc *UseCases) generateSummary(ctx context.Context, prompt string) (*generatedSummary, error) {
	sess, err := uc.llmClient.NewSession(ctx,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
		gollem.WithSessionResponseSchema(metricSummarySchema),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create summary session")
	}

	resp, err := uc.generateWithRetry(ctx, sess, gollem.Text(prompt))
	if err != nil {
		return nil, err
	}
	if len(resp.Texts) == 0 {
		return nil, goerr.New("summary generation returned empty result")
	}

	var summary metricSummary
	if err := json.Unmarshal([]byte(resp.Texts[0]), &summary); err != nil {
		return nil, goerr.Wrap(err, "failed to parse summary JSON",
			goerr.V("response", resp.Texts[0]),
		)
	}

	health, err := types.ParseHealth(summary.Health)
	if err != nil {
		return nil, goerr.Wrap(err, "model returned invalid health level",
			goerr.V("health", summary.Health),
		)
	}

	return &generatedSummary{text: summary.Summary, health: health}, nil
}

// RenderMarkdown renders the report as a markdown document
func (r *Report) RenderMarkdown() string {
	var sb strings.Builder
	sb.WriteString("# Program Health Report\n\n")
	sb.WriteString(fmt.Sprintf("## Executive Summary %s\n\n%s\n", r.Executive.Health.Emoji(), r.Executive.Summary))
	for _, s := range r.Sections {
		sb.WriteString(fmt.Sprintf("\n## %s %s\n\n%s\n", s.Metric, s.Health.Emoji(), s.Summary))
	}
	return sb.String()
}
