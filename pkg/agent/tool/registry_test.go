package tool_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gt"
	"github.com/saurabh-lab/project-dashboard/pkg/agent/tool"
)

// fakeTool is a minimal gollem.Tool for registry tests
type fakeTool struct {
	name   string
	params map[string]*gollem.Parameter
	runFn  func(ctx context.Context, args map[string]any) (map[string]any, error)
}

func (t *fakeTool) Spec() gollem.ToolSpec {
	return gollem.ToolSpec{
		Name:        t.name,
		Description: "fake tool for testing",
		Parameters:  t.params,
	}
}

func (t *fakeTool) Run(ctx context.Context, args map[string]any) (map[string]any, error) {
	if t.runFn != nil {
		return t.runFn(ctx, args)
	}
	return map[string]any{"ok": true}, nil
}

func TestNewRegistry(t *testing.T) {
	t.Run("registers tools and preserves order", func(t *testing.T) {
		r, err := tool.NewRegistry(
			&fakeTool{name: "b_tool"},
			&fakeTool{name: "a_tool"},
		)
		gt.NoError(t, err).Required()

		specs := r.Specs()
		gt.Array(t, specs).Length(2).Required()
		gt.Value(t, specs[0].Name).Equal("b_tool")
		gt.Value(t, specs[1].Name).Equal("a_tool")
		gt.Array(t, r.Tools()).Length(2)
	})

	t.Run("rejects empty tool name", func(t *testing.T) {
		_, err := tool.NewRegistry(&fakeTool{name: ""})
		gt.Error(t, err)
		gt.Value(t, errors.Is(err, tool.ErrInvalidSpec)).Equal(true)
	})

	t.Run("rejects duplicate tool name", func(t *testing.T) {
		_, err := tool.NewRegistry(
			&fakeTool{name: "same"},
			&fakeTool{name: "same"},
		)
		gt.Error(t, err)
		gt.Value(t, errors.Is(err, tool.ErrDuplicateTool)).Equal(true)
	})

	t.Run("rejects untyped parameter spec", func(t *testing.T) {
		_, err := tool.NewRegistry(&fakeTool{
			name: "bad_params",
			params: map[string]*gollem.Parameter{
				"window": {Description: "missing type"},
			},
		})
		gt.Error(t, err)
		gt.Value(t, errors.Is(err, tool.ErrInvalidSpec)).Equal(true)
	})
}

func TestRegistryDispatch(t *testing.T) {
	t.Run("dispatches by name", func(t *testing.T) {
		called := false
		r, err := tool.NewRegistry(&fakeTool{
			name: "echo",
			runFn: func(ctx context.Context, args map[string]any) (map[string]any, error) {
				called = true
				return map[string]any{"echo": args["msg"]}, nil
			},
		})
		gt.NoError(t, err).Required()

		result, err := r.Dispatch(context.Background(), "echo", map[string]any{"msg": "hi"})
		gt.NoError(t, err)
		gt.Value(t, called).Equal(true)
		gt.Value(t, result["echo"]).Equal(any("hi"))
	})

	t.Run("unknown tool returns error naming the tool", func(t *testing.T) {
		r, err := tool.NewRegistry(&fakeTool{name: "known"})
		gt.NoError(t, err).Required()

		_, err = r.Dispatch(context.Background(), "unknown_tool", nil)
		gt.Error(t, err)
		gt.Value(t, errors.Is(err, tool.ErrToolNotFound)).Equal(true)
		gt.Value(t, hasValue(err, "name", "unknown_tool")).Equal(true)
	})

	t.Run("panicking tool surfaces as error, never crashes", func(t *testing.T) {
		r, err := tool.NewRegistry(&fakeTool{
			name: "boom",
			runFn: func(ctx context.Context, args map[string]any) (map[string]any, error) {
				panic("unexpected state")
			},
		})
		gt.NoError(t, err).Required()

		result, err := r.Dispatch(context.Background(), "boom", nil)
		gt.Error(t, err)
		gt.Value(t, result == nil).Equal(true)
		gt.Value(t, strings.Contains(err.Error(), "boom")).Equal(true)
	})

	t.Run("tool error propagates as error value", func(t *testing.T) {
		r, err := tool.NewRegistry(&fakeTool{
			name: "fails",
			runFn: func(ctx context.Context, args map[string]any) (map[string]any, error) {
				return nil, errors.New("computation failed")
			},
		})
		gt.NoError(t, err).Required()

		_, err = r.Dispatch(context.Background(), "fails", nil)
		gt.Error(t, err)
	})
}

func hasValue(err error, key, want string) bool {
	type valuer interface{ Values() map[string]any }
	var v valuer
	if errors.As(err, &v) {
		if got, ok := v.Values()[key]; ok {
			s, _ := got.(string)
			return s == want
		}
	}
	return false
}
