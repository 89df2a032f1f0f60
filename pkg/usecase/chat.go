package usecase

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/saurabh-lab/project-dashboard/pkg/domain/model"
	"github.com/saurabh-lab/project-dashboard/pkg/domain/types"
	"github.com/saurabh-lab/project-dashboard/pkg/utils/logging"
	"google.golang.org/api/googleapi"
)

//go:embed prompt/chat_system.md
var chatSystemPromptTmpl string

var chatSystemPrompt = template.Must(template.New("chat_system").Parse(chatSystemPromptTmpl))

// Fixed terminal messages of the conversation loop
const (
	CredentialRequiredMessage = "❌ Gemini credential is required. Configure the Gemini project ID to enable the assistant."
	NoResponseMessage         = "I could not produce a clear response. Please try rephrasing your question."
	MaxTurnsMessage           = "Reached the maximum number of turns without a final answer. The conversation so far is preserved in the session history."
)

// ChatResult is the outcome of one Chat invocation
type ChatResult struct {
	Answer  string
	Session *model.ChatSession
	Turns   int
}

// Chat runs one bounded conversation round: the user query goes to the
// model together with the metric tool specs; requested tool calls are
// dispatched through the registry and fed back until the model produces
// a text answer or the turn cap is exhausted. Exhaustion is a degraded
// result, not an error, and the session history survives for retry.
func (uc *UseCases) Chat(ctx context.Context, session *model.ChatSession, query string) (*ChatResult, error) {
	logger := logging.From(ctx)

	if strings.TrimSpace(query) == "" {
		return nil, goerr.Wrap(ErrEmptyQuery, "chat query is empty")
	}

	// Short-circuit before any network call when no credential is configured
	if uc.llmClient == nil {
		return &ChatResult{Answer: CredentialRequiredMessage, Session: session}, nil
	}

	// Append the user query idempotently: a retry after turn exhaustion
	// must not duplicate the last entry.
	last := session.LastMessage()
	if last == nil || last.Role != types.MessageRoleUser || last.Text != query {
		session.Append(types.MessageRoleUser, "", query)
	}

	systemPrompt, err := uc.buildChatSystemPrompt(session)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build system prompt")
	}

	sess, err := uc.llmClient.NewSession(ctx,
		gollem.WithSessionSystemPrompt(systemPrompt),
		gollem.WithSessionTools(uc.registry.Tools()...),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create LLM session")
	}

	inputs := []gollem.Input{gollem.Text(query)}

	for turn := 1; turn <= uc.turnLimit; turn++ {
		resp, err := uc.generateWithRetry(ctx, sess, inputs...)
		if err != nil {
			return nil, goerr.Wrap(err, "LLM request failed", goerr.V("turn", turn))
		}

		if len(resp.FunctionCalls) > 0 {
			inputs = uc.dispatchCalls(ctx, session, resp.FunctionCalls)
			continue
		}

		if len(resp.Texts) > 0 {
			answer := strings.Join(resp.Texts, "\n")
			session.Append(types.MessageRoleModel, "", answer)
			return &ChatResult{Answer: answer, Session: session, Turns: turn}, nil
		}

		// Empty candidate: neither tool calls nor text
		logger.Warn("model returned empty response", "turn", turn)
		session.Append(types.MessageRoleModel, "", NoResponseMessage)
		return &ChatResult{Answer: NoResponseMessage, Session: session, Turns: turn}, nil
	}

	session.Append(types.MessageRoleModel, "", MaxTurnsMessage)
	return &ChatResult{Answer: MaxTurnsMessage, Session: session, Turns: uc.turnLimit}, nil
}

// dispatchCalls runs each requested tool through the registry. Failures
// are converted into error-carrying responses for the model, never
// propagated: a misbehaving tool must not end the conversation.
func (uc *UseCases) dispatchCalls(ctx context.Context, session *model.ChatSession, calls []*gollem.FunctionCall) []gollem.Input {
	logger := logging.From(ctx)

	next := make([]gollem.Input, 0, len(calls))
	for _, call := range calls {
		result, err := uc.registry.Dispatch(ctx, call.Name, call.Arguments)
		if err != nil {
			logger.Warn("tool dispatch failed", "tool", call.Name, "error", err.Error())
			session.Append(types.MessageRoleTool, call.Name, "error: "+err.Error())
			next = append(next, gollem.FunctionResponse{
				ID:    call.ID,
				Name:  call.Name,
				Error: err,
			})
			continue
		}

		encoded, err := json.Marshal(result)
		if err != nil {
			encoded = []byte(`{}`)
		}
		session.Append(types.MessageRoleTool, call.Name, string(encoded))
		next = append(next, gollem.FunctionResponse{
			ID:   call.ID,
			Name: call.Name,
			Data: result,
		})
	}
	return next
}

// generateWithRetry calls the model with an explicit bounded retry
// loop. Rate-limit and server-error responses back off with a doubling
// blocking delay; every other error class surfaces immediately.
func (uc *UseCases) generateWithRetry(ctx context.Context, sess gollem.Session, inputs ...gollem.Input) (*gollem.Response, error) {
	logger := logging.From(ctx)

	delay := uc.backoffBase
	for attempt := 0; ; attempt++ {
		resp, err := sess.GenerateContent(ctx, inputs...)
		if err == nil {
			return resp, nil
		}
		if !isRetryable(err) {
			return nil, err
		}
		if attempt+1 >= uc.retryLimit {
			return nil, goerr.Wrap(ErrLLMExhausted, "giving up on transient errors",
				goerr.V("attempts", attempt+1),
				goerr.V("cause", err.Error()),
			)
		}

		logger.Warn("transient LLM error, backing off",
			"attempt", attempt+1,
			"delay", delay.String(),
			"error", err.Error(),
		)
		uc.sleep(delay)
		delay *= 2
	}
}

// isRetryable classifies upstream errors: HTTP 429 and the 5xx class
// are transient, everything else is terminal.
func isRetryable(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= 500
	}
	return false
}

// chatPromptMessage renders one history entry in the system prompt
type chatPromptMessage struct {
	Role string
	Tool string
	Text string
}

// chatPromptData holds all data for the chat system prompt template
type chatPromptData struct {
	LoadedAt    string
	SprintCount int
	IssueCount  int
	DefectCount int
	RAIDCount   int
	FirstSprint string
	LastSprint  string
	Messages    []chatPromptMessage
}

func (uc *UseCases) buildChatSystemPrompt(session *model.ChatSession) (string, error) {
	data := chatPromptData{
		LoadedAt:    uc.dataset.LoadedAt,
		SprintCount: len(uc.dataset.Sprints),
		IssueCount:  len(uc.dataset.Issues),
		DefectCount: len(uc.dataset.Defects),
		RAIDCount:   len(uc.dataset.RAID),
	}
	if len(uc.dataset.Sprints) > 0 {
		data.FirstSprint = uc.dataset.Sprints[0].String()
		data.LastSprint = uc.dataset.Sprints[len(uc.dataset.Sprints)-1].String()
	}

	// Render prior conversation, excluding the query just appended
	messages := session.Messages
	if n := len(messages); n > 0 && messages[n-1].Role == types.MessageRoleUser {
		messages = messages[:n-1]
	}
	for _, m := range messages {
		data.Messages = append(data.Messages, chatPromptMessage{
			Role: m.Role.String(),
			Tool: m.Tool,
			Text: m.Text,
		})
	}

	var buf bytes.Buffer
	if err := chatSystemPrompt.Execute(&buf, data); err != nil {
		return "", goerr.Wrap(err, "failed to execute chat system prompt template")
	}
	return buf.String(), nil
}
