package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/vovakirdan/tui-stack/internal/stack"
)

func newRecorded(t *testing.T) (*GameTracer, *tracetest.SpanRecorder) {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return NewGameTracer(tp.Tracer("test"), "stack", "session-1"), rec
}

func attrs(kv []attribute.KeyValue) map[attribute.Key]attribute.Value {
	m := make(map[attribute.Key]attribute.Value, len(kv))
	for _, a := range kv {
		m[a.Key] = a.Value
	}
	return m
}

func TestGameTracerSpanPerGame(t *testing.T) {
	gt, rec := newRecorded(t)

	gt.OnInit()
	gt.OnStart()
	gt.OnResolve(stack.Resolution{Kind: stack.Perfect, Axis: stack.AxisX, Block: stack.Block{Layer: 1}})
	gt.OnScoreChange(1)
	gt.OnResolve(stack.Resolution{Kind: stack.Partial, Axis: stack.AxisZ, Block: stack.Block{Layer: 2}, Combo: 1})
	gt.OnScoreChange(2)
	gt.OnResolve(stack.Resolution{Kind: stack.Miss, Axis: stack.AxisX, Block: stack.Block{Layer: 3}})
	assert.Empty(t, rec.Ended(), "span stays open until game over")
	gt.OnGameOver(2)

	spans := rec.Ended()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, "stack.game", span.Name())
	assert.Len(t, span.Events(), 3)

	a := attrs(span.Attributes())
	assert.Equal(t, "stack", a["game.id"].AsString())
	assert.Equal(t, "session-1", a["session.id"].AsString())
	assert.Equal(t, int64(2), a["game.score"].AsInt64())
	assert.Equal(t, int64(1), a["game.perfects"].AsInt64())
	assert.Equal(t, int64(1), a["game.partials"].AsInt64())

	first := attrs(span.Events()[0].Attributes)
	assert.Equal(t, "perfect", first["outcome"].AsString())
}

func TestGameTracerAbandonedGame(t *testing.T) {
	gt, rec := newRecorded(t)

	gt.OnStart()
	gt.OnInit()

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}

func TestGameTracerIgnoresEventsOutsideGame(t *testing.T) {
	gt, rec := newRecorded(t)

	gt.OnResolve(stack.Resolution{Kind: stack.Perfect})
	gt.OnGameOver(0)
	assert.Empty(t, rec.Ended())
	assert.Empty(t, rec.Started())
}

func TestNilTracerIsNoop(t *testing.T) {
	gt := NewGameTracer(nil, "stack", "s")
	gt.OnStart()
	gt.OnGameOver(3)
}
