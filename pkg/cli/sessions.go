package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/saurabh-lab/project-dashboard/pkg/cli/config"
	"github.com/saurabh-lab/project-dashboard/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdSessions() *cli.Command {
	var repoCfg config.Repository

	return &cli.Command{
		Name:  "sessions",
		Usage: "List stored chat sessions",
		Flags: repoCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.From(ctx).Warn("failed to close repository", "error", err)
				}
			}()

			sessions, err := repo.Session().List(ctx)
			if err != nil {
				return err
			}

			if len(sessions) == 0 {
				fmt.Println("no stored sessions")
				return nil
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tMESSAGES\tUPDATED")
			for _, s := range sessions {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n",
					s.ID, s.Title, len(s.Messages), s.UpdatedAt.Format(time.RFC3339))
			}
			return tw.Flush()
		},
	}
}
