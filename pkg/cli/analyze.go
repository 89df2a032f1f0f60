package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/saurabh-lab/project-dashboard/pkg/cli/config"
	"github.com/saurabh-lab/project-dashboard/pkg/domain/model"
	"github.com/saurabh-lab/project-dashboard/pkg/domain/types"
	"github.com/saurabh-lab/project-dashboard/pkg/service/metrics"
	"github.com/urfave/cli/v3"
)

func cmdAnalyze() *cli.Command {
	var (
		inputsCfg  config.Inputs
		configPath string
	)

	flags := inputsCfg.Flags()
	flags = append(flags,
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to the analysis parameters TOML file",
			Sources:     cli.EnvVars("DASHBOARD_CONFIG"),
			Destination: &configPath,
		},
	)

	return &cli.Command{
		Name:  "analyze",
		Usage: "Compute all program health metrics and print them as tables",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			appCfg, err := config.LoadAppConfiguration(configPath)
			if err != nil {
				return err
			}

			ds, err := inputsCfg.Load(ctx)
			if err != nil {
				return err
			}

			printAnalysis(os.Stdout, ds, appCfg, time.Now())
			return nil
		},
	}
}

func printAnalysis(w io.Writer, ds *model.Dataset, cfg *config.AppConfig, now time.Time) {
	bold := color.New(color.Bold)

	_, _ = bold.Fprintln(w, "Velocity Trend")
	renderVelocity(w, metrics.VelocityTrend(ds))

	_, _ = bold.Fprintln(w, "\nSprint Completion")
	renderCompletion(w, metrics.SprintCompletion(ds))

	_, _ = bold.Fprintln(w, "\nCapacity Utilization")
	renderCapacity(w, metrics.CapacityUtilization(ds, cfg.Capacity.SprintWindow, cfg.Capacity.AssumedPoints))

	_, _ = bold.Fprintln(w, "\nDefect Density")
	renderDensity(w, metrics.DefectDensity(ds))

	_, _ = bold.Fprintln(w, "\nDefect Stage Distribution")
	renderStages(w, metrics.StageDistribution(ds))

	_, _ = bold.Fprintln(w, "\nRAID Summary")
	renderRAID(w, metrics.RAIDSummary(ds, now))
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func renderVelocity(w io.Writer, records []model.VelocityRecord) {
	tw := newTable(w)
	fmt.Fprintln(tw, "SPRINT\tPOINTS")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%d\n", r.SprintID, r.Points)
	}
	_ = tw.Flush()
}

func renderCompletion(w io.Writer, records []model.CompletionRecord) {
	tw := newTable(w)
	fmt.Fprintln(tw, "SPRINT\tCOMMITTED\tCOMPLETED\tRATE")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.0f%%\n", r.SprintID, r.Committed, r.Completed, r.Rate()*100)
	}
	_ = tw.Flush()
}

func renderCapacity(w io.Writer, records []model.CapacityRecord) {
	tw := newTable(w)
	fmt.Fprintln(tw, "ASSIGNEE\tLOAD\tASSUMED\tUTILIZATION")
	for _, r := range records {
		util := float64(r.Load) / float64(r.Assumed) * 100
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.0f%%\n", r.Assignee, r.Load, r.Assumed, util)
	}
	_ = tw.Flush()
}

func renderDensity(w io.Writer, records []model.DensityRecord) {
	tw := newTable(w)
	fmt.Fprintln(tw, "SPRINT\tDEFECTS\tSTORIES\tRATIO")
	for _, r := range records {
		ratio := "n/a"
		if r.Ratio != nil {
			ratio = fmt.Sprintf("%.2f", *r.Ratio)
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", r.SprintID, r.Defects, r.Stories, ratio)
	}
	_ = tw.Flush()
}

func renderStages(w io.Writer, records []model.StageRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, "no open defects")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "PHASE\tOPEN DEFECTS")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%d\n", r.Phase, r.Count)
	}
	_ = tw.Flush()
}

func renderRAID(w io.Writer, records []model.RAIDSummaryRecord) {
	tw := newTable(w)
	fmt.Fprintln(tw, "CATEGORY\tTOTAL\tOPEN\tOVERDUE\tHEALTH")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\n", r.Category, r.Total, r.Open, r.Overdue, colorHealth(r.Health))
	}
	_ = tw.Flush()
}

func colorHealth(h types.Health) string {
	switch h {
	case types.HealthCritical:
		return color.RedString(h.String())
	case types.HealthWarning:
		return color.YellowString(h.String())
	default:
		return color.GreenString(h.String())
	}
}
