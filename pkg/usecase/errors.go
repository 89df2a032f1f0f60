package usecase

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for use case operations
var (
	ErrEmptyQuery   = goerr.New("query must not be empty")
	ErrLLMExhausted = goerr.New("LLM request failed after retries")
)
