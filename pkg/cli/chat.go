package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/saurabh-lab/project-dashboard/pkg/agent/tool"
	toolmetrics "github.com/saurabh-lab/project-dashboard/pkg/agent/tool/metrics"
	"github.com/saurabh-lab/project-dashboard/pkg/cli/config"
	"github.com/saurabh-lab/project-dashboard/pkg/domain/interfaces"
	"github.com/saurabh-lab/project-dashboard/pkg/domain/model"
	"github.com/saurabh-lab/project-dashboard/pkg/usecase"
	"github.com/saurabh-lab/project-dashboard/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdChat() *cli.Command {
	var (
		inputsCfg  config.Inputs
		geminiCfg  config.Gemini
		repoCfg    config.Repository
		configPath string
		query      string
		sessionID  string
	)

	flags := inputsCfg.Flags()
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags,
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to the analysis parameters TOML file",
			Sources:     cli.EnvVars("DASHBOARD_CONFIG"),
			Destination: &configPath,
		},
		&cli.StringFlag{
			Name:        "query",
			Aliases:     []string{"q"},
			Usage:       "Ask a single question and exit instead of starting an interactive session",
			Destination: &query,
		},
		&cli.StringFlag{
			Name:        "session",
			Usage:       "Resume an existing session by ID",
			Destination: &sessionID,
		},
	)

	return &cli.Command{
		Name:  "chat",
		Usage: "Ask questions about program health through the AI assistant",
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

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.From(ctx).Warn("failed to close repository", "error", err)
				}
			}()

			registry, err := tool.NewRegistry(toolmetrics.New(ds)...)
			if err != nil {
				return err
			}

			var opts []usecase.Option
			if appCfg.Agent.TurnLimit > 0 {
				opts = append(opts, usecase.WithTurnLimit(appCfg.Agent.TurnLimit))
			}
			if appCfg.Agent.RetryLimit > 0 {
				opts = append(opts, usecase.WithRetryLimit(appCfg.Agent.RetryLimit))
			}

			uc := usecase.New(repo, llmClient, ds, registry, opts...)

			session, err := resolveSession(ctx, repo, sessionID, query)
			if err != nil {
				return err
			}

			// Tool progress goes to the terminal, dimmed
			ctx = tool.WithUpdate(ctx, func(ctx context.Context, message string) {
				_, _ = color.New(color.Faint).Fprintf(os.Stderr, "  … %s\n", message)
			})

			if query != "" {
				return runOneShot(ctx, uc, repo, session, query)
			}
			return runInteractive(ctx, uc, repo, session)
		},
	}
}

// resolveSession loads the named session or starts a fresh one
func resolveSession(ctx context.Context, repo interfaces.Repository, sessionID, query string) (*model.ChatSession, error) {
	if sessionID == "" {
		title := query
		if title == "" {
			title = "interactive session"
		}
		return model.NewChatSession(title), nil
	}

	session, err := repo.Session().Get(ctx, model.SessionID(sessionID))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resume session", goerr.V("session_id", sessionID))
	}
	return session, nil
}

func runOneShot(ctx context.Context, uc *usecase.UseCases, repo interfaces.Repository, session *model.ChatSession, query string) error {
	result, err := uc.Chat(ctx, session, query)
	if err != nil {
		return err
	}

	fmt.Println(result.Answer)

	if err := repo.Session().Put(ctx, session); err != nil {
		return goerr.Wrap(err, "failed to save session")
	}
	fmt.Fprintf(os.Stderr, "\nsession: %s\n", session.ID)
	return nil
}

func runInteractive(ctx context.Context, uc *usecase.UseCases, repo interfaces.Repository, session *model.ChatSession) error {
	prompt := color.New(color.FgCyan, color.Bold)
	fmt.Printf("Session %s — ask about program health. Type 'exit' to quit.\n", session.ID)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		_, _ = prompt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		result, err := uc.Chat(ctx, session, line)
		if err != nil {
			if errors.Is(err, usecase.ErrEmptyQuery) {
				continue
			}
			color.Red("error: %v", err)
			continue
		}

		fmt.Println(result.Answer)

		if err := repo.Session().Put(ctx, session); err != nil {
			return goerr.Wrap(err, "failed to save session")
		}
	}

	if err := scanner.Err(); err != nil {
		return goerr.Wrap(err, "failed to read input")
	}
	return nil
}
