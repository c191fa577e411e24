package handler_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/keystorm-inflection/internal/dispatcher/execctx"
	"github.com/dshills/keystorm-inflection/internal/dispatcher/handler"
	"github.com/dshills/keystorm-inflection/internal/engine/buffer"
	"github.com/dshills/keystorm-inflection/internal/input"
)

func TestSimpleHandler(t *testing.T) {
	called := false
	sh := &handler.SimpleHandler{
		ActionName: "test.action",
		Fn: func(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
			called = true
			return handler.Success()
		},
		Prio: 50,
	}

	assert.Equal(t, 50, sh.Priority())
	assert.True(t, sh.CanHandle("test.action"))
	assert.False(t, sh.CanHandle("test.other"))

	result := sh.Handle(input.Action{Name: "test.action"}, execctx.New())
	assert.True(t, called)
	assert.True(t, result.IsOK())

	nilFn := &handler.SimpleHandler{ActionName: "x"}
	assert.True(t, nilFn.Handle(input.Action{Name: "x"}, execctx.New()).IsError())
}

func TestBaseNamespaceHandler(t *testing.T) {
	h := handler.NewBaseNamespaceHandler("test")
	h.Register("test.one", func(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
		return handler.SuccessWithData("name", action.Name)
	})

	assert.Equal(t, "test", h.Namespace())
	assert.True(t, h.CanHandle("test.one"))
	assert.False(t, h.CanHandle("test.two"))
	assert.Equal(t, []string{"test.one"}, h.Actions())

	adapter := handler.NewNamespaceAdapter(h)
	result := adapter.Handle(input.Action{Name: "test.one"}, execctx.New())
	v, ok := result.GetData("name")
	require.True(t, ok)
	assert.Equal(t, "test.one", v)
	assert.Equal(t, 0, adapter.Priority())

	result = h.HandleAction(input.Action{Name: "test.two"}, execctx.New())
	assert.True(t, result.IsError())
}

func TestResultBuilders(t *testing.T) {
	r := handler.Success().
		WithMessage("done").
		WithRedraw().
		WithReveal(buffer.NewRange(1, 4)).
		WithEdits([]handler.Edit{{Range: buffer.NewRange(1, 3), NewText: "abc", OldText: "xy"}}).
		WithData("k", 1)

	assert.Equal(t, handler.StatusOK, r.Status)
	assert.Equal(t, "done", r.Message)
	assert.True(t, r.ViewUpdate.Redraw)
	require.NotNil(t, r.ViewUpdate.Reveal)
	assert.Equal(t, buffer.NewRange(1, 4), *r.ViewUpdate.Reveal)
	assert.Len(t, r.Edits, 1)

	_, ok := handler.NoOp().GetData("k")
	assert.False(t, ok)

	err := errors.New("bad")
	assert.Same(t, err, handler.Error(err).Error)
	assert.EqualError(t, handler.Errorf("bad %d", 2).Error, "bad 2")
	assert.Equal(t, "selections overlap", handler.NoOpWithMessage("selections overlap").Message)
}

func TestResultStatusString(t *testing.T) {
	tests := map[handler.ResultStatus]string{
		handler.StatusOK:        "ok",
		handler.StatusNoOp:      "no-op",
		handler.StatusError:     "error",
		handler.ResultStatus(99): "unknown",
	}
	for status, want := range tests {
		assert.Equal(t, want, status.String())
	}
}
