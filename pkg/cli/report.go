package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/saurabh-lab/project-dashboard/pkg/agent/tool"
	toolmetrics "github.com/saurabh-lab/project-dashboard/pkg/agent/tool/metrics"
	"github.com/saurabh-lab/project-dashboard/pkg/cli/config"
	"github.com/saurabh-lab/project-dashboard/pkg/repository/memory"
	"github.com/saurabh-lab/project-dashboard/pkg/usecase"
	"github.com/saurabh-lab/project-dashboard/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdReport() *cli.Command {
	var (
		inputsCfg  config.Inputs
		geminiCfg  config.Gemini
		configPath string
		output     string
	)

	flags := inputsCfg.Flags()
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags,
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to the analysis parameters TOML file",
			Sources:     cli.EnvVars("DASHBOARD_CONFIG"),
			Destination: &configPath,
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Write the markdown report to this file instead of stdout",
			Destination: &output,
		},
	)

	return &cli.Command{
		Name:  "report",
		Usage: "Generate an AI-written program health report in markdown",
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

			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return err
			}

			registry, err := tool.NewRegistry(toolmetrics.New(ds)...)
			if err != nil {
				return err
			}

			var opts []usecase.Option
			if appCfg.Agent.RetryLimit > 0 {
				opts = append(opts, usecase.WithRetryLimit(appCfg.Agent.RetryLimit))
			}

			uc := usecase.New(memory.New(), llmClient, ds, registry, opts...)

			report, err := uc.GenerateReport(ctx)
			if err != nil {
				return err
			}

			doc := report.RenderMarkdown()
			if output == "" {
				fmt.Print(doc)
				return nil
			}

			if err := os.WriteFile(output, []byte(doc), 0600); err != nil {
				return goerr.Wrap(err, "failed to write report", goerr.V("path", output))
			}
			logging.From(ctx).Info("report written", "path", output)
			return nil
		},
	}
}
