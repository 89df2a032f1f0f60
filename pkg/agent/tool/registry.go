package tool

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/saurabh-lab/project-dashboard/pkg/utils/logging"
)

// Registry maps tool names to gollem tools. Specs are validated at
// registration time so a malformed tool fails construction, not a
// conversation turn.
type Registry struct {
	tools map[string]gollem.Tool
	order []string
}

// NewRegistry builds a registry from the given tools.
// Empty tool names, duplicate names, and untyped parameter specs are
// rejected.
func NewRegistry(tools ...gollem.Tool) (*Registry, error) {
	r := &Registry{
		tools: make(map[string]gollem.Tool, len(tools)),
	}

	for _, t := range tools {
		spec := t.Spec()
		if spec.Name == "" {
			return nil, goerr.Wrap(ErrInvalidSpec, "tool name must not be empty")
		}
		if _, exists := r.tools[spec.Name]; exists {
			return nil, goerr.Wrap(ErrDuplicateTool, "tool is already registered",
				goerr.V("name", spec.Name),
			)
		}
		if err := validateParameters(spec.Name, spec.Parameters); err != nil {
			return nil, err
		}
		r.tools[spec.Name] = t
		r.order = append(r.order, spec.Name)
	}

	return r, nil
}

func validateParameters(tool string, params map[string]*gollem.Parameter) error {
	for name, p := range params {
		if p == nil {
			return goerr.Wrap(ErrInvalidSpec, "parameter spec must not be nil",
				goerr.V("tool", tool),
				goerr.V("parameter", name),
			)
		}
		if p.Type == "" {
			return goerr.Wrap(ErrInvalidSpec, "parameter type must be declared",
				goerr.V("tool", tool),
				goerr.V("parameter", name),
			)
		}
	}
	return nil
}

// Tools returns the registered tools in registration order
func (r *Registry) Tools() []gollem.Tool {
	tools := make([]gollem.Tool, 0, len(r.order))
	for _, name := range r.order {
		tools = append(tools, r.tools[name])
	}
	return tools
}

// Specs returns the registered tool specs in registration order
func (r *Registry) Specs() []gollem.ToolSpec {
	specs := make([]gollem.ToolSpec, 0, len(r.order))
	for _, name := range r.order {
		specs = append(specs, r.tools[name].Spec())
	}
	return specs
}

// Dispatch runs the named tool with the given arguments. An unknown
// name returns ErrToolNotFound carrying the name. A panic inside a tool
// is recovered and returned as an error value so a misbehaving tool can
// never crash the conversation loop.
func (r *Registry) Dispatch(ctx context.Context, name string, args map[string]any) (result map[string]any, err error) {
	t, ok := r.tools[name]
	if !ok {
		return nil, goerr.Wrap(ErrToolNotFound, "no such tool", goerr.V("name", name))
	}

	defer func() {
		if rec := recover(); rec != nil {
			logging.From(ctx).Error("tool panicked", "tool", name, "panic", rec)
			result = nil
			err = goerr.New(fmt.Sprintf("tool %s panicked: %v", name, rec), goerr.V("name", name))
		}
	}()

	return t.Run(ctx, args)
}
