package tool

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for registry operations
var (
	ErrToolNotFound  = goerr.New("tool not found")
	ErrInvalidSpec   = goerr.New("invalid tool spec")
	ErrDuplicateTool = goerr.New("duplicate tool name")
)
