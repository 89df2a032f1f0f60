package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/saurabh-lab/project-dashboard/pkg/domain/model"
	"github.com/saurabh-lab/project-dashboard/pkg/service/loader"
	"github.com/urfave/cli/v3"
)

// Inputs holds CLI flags for the three CSV exports
type Inputs struct {
	issuesPath  string
	defectsPath string
	raidPath    string
}

// Flags returns CLI flags for the input files
func (i *Inputs) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "issues",
			Usage:       "Path to the issue tracker CSV export",
			Required:    true,
			Sources:     cli.EnvVars("DASHBOARD_ISSUES_CSV"),
			Destination: &i.issuesPath,
		},
		&cli.StringFlag{
			Name:        "defects",
			Usage:       "Path to the defect log CSV export",
			Required:    true,
			Sources:     cli.EnvVars("DASHBOARD_DEFECTS_CSV"),
			Destination: &i.defectsPath,
		},
		&cli.StringFlag{
			Name:        "raid",
			Usage:       "Path to the RAID log CSV export",
			Required:    true,
			Sources:     cli.EnvVars("DASHBOARD_RAID_CSV"),
			Destination: &i.raidPath,
		},
	}
}

// LogAttrs returns log attributes for the input configuration
func (i *Inputs) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("issues", i.issuesPath),
		slog.String("defects", i.defectsPath),
		slog.String("raid", i.raidPath),
	}
}

// Load reads and cleans the configured CSV files into a dataset
func (i *Inputs) Load(ctx context.Context) (*model.Dataset, error) {
	ds, err := loader.LoadDataset(ctx, i.issuesPath, i.defectsPath, i.raidPath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load input files")
	}
	return ds, nil
}
