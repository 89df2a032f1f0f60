package usecase

import (
	"time"

	"github.com/m-mizutani/gollem"
	"github.com/saurabh-lab/project-dashboard/pkg/agent/tool"
	"github.com/saurabh-lab/project-dashboard/pkg/domain/interfaces"
	"github.com/saurabh-lab/project-dashboard/pkg/domain/model"
)

// Defaults for the conversation loop
const (
	DefaultTurnLimit   = 5
	DefaultRetryLimit  = 5
	DefaultBackoffBase = time.Second
)

// UseCases bundles the application operations over one loaded dataset
type UseCases struct {
	repo      interfaces.Repository
	llmClient gollem.LLMClient
	dataset   *model.Dataset
	registry  *tool.Registry

	turnLimit   int
	retryLimit  int
	backoffBase time.Duration
	now         func() time.Time
	sleep       func(time.Duration)
}

type Option func(*UseCases)

// WithTurnLimit sets the conversation turn cap
func WithTurnLimit(n int) Option {
	return func(uc *UseCases) {
		uc.turnLimit = n
	}
}

// WithRetryLimit sets the retry ceiling for transient LLM errors
func WithRetryLimit(n int) Option {
	return func(uc *UseCases) {
		uc.retryLimit = n
	}
}

// WithBackoffBase sets the initial backoff delay (doubled per attempt)
func WithBackoffBase(d time.Duration) Option {
	return func(uc *UseCases) {
		uc.backoffBase = d
	}
}

// WithClock injects a clock, used for overdue classification in reports
func WithClock(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

// WithSleep injects the backoff sleep function
func WithSleep(sleep func(time.Duration)) Option {
	return func(uc *UseCases) {
		uc.sleep = sleep
	}
}

// New creates the use cases. llmClient may be nil; AI operations then
// short-circuit with a credential-required result instead of calling out.
func New(repo interfaces.Repository, llmClient gollem.LLMClient, dataset *model.Dataset, registry *tool.Registry, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:        repo,
		llmClient:   llmClient,
		dataset:     dataset,
		registry:    registry,
		turnLimit:   DefaultTurnLimit,
		retryLimit:  DefaultRetryLimit,
		backoffBase: DefaultBackoffBase,
		now:         time.Now,
		sleep:       time.Sleep,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}
