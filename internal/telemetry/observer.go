package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vovakirdan/tui-stack/internal/stack"
)

// GameTracer records one span per played game. Every drop becomes a span
// event; the span ends on game over with the final score.
type GameTracer struct {
	tracer    trace.Tracer
	gameID    string
	sessionID string

	span     trace.Span
	perfects int
	partials int
}

var _ stack.Observer = (*GameTracer)(nil)

// NewGameTracer creates an observer for the games of one session.
// A nil tracer falls back to a no-op one.
func NewGameTracer(tracer trace.Tracer, gameID, sessionID string) *GameTracer {
	if tracer == nil {
		tracer = NoopTracer()
	}
	return &GameTracer{tracer: tracer, gameID: gameID, sessionID: sessionID}
}

// OnInit abandons a game that never reached game over.
func (t *GameTracer) OnInit() {
	if t.span != nil {
		t.span.SetStatus(codes.Error, "abandoned")
		t.span.End()
		t.span = nil
	}
}

func (t *GameTracer) OnStart() {
	t.OnInit()
	_, t.span = t.tracer.Start(context.Background(), "stack.game",
		trace.WithAttributes(
			attribute.String("game.id", t.gameID),
			attribute.String("session.id", t.sessionID),
		),
	)
	t.perfects, t.partials = 0, 0
}

func (t *GameTracer) OnResolve(r stack.Resolution) {
	if t.span == nil {
		return
	}
	switch r.Kind {
	case stack.Perfect:
		t.perfects++
	case stack.Partial:
		t.partials++
	}
	t.span.AddEvent("drop", trace.WithAttributes(
		attribute.String("outcome", r.Kind.String()),
		attribute.String("axis", r.Axis.String()),
		attribute.Int("layer", r.Block.Layer),
		attribute.Int("combo", r.Combo),
	))
}

func (t *GameTracer) OnScoreChange(int) {}

func (t *GameTracer) OnGameOver(finalScore int) {
	if t.span == nil {
		return
	}
	t.span.SetAttributes(
		attribute.Int("game.score", finalScore),
		attribute.Int("game.perfects", t.perfects),
		attribute.Int("game.partials", t.partials),
	)
	t.span.End()
	t.span = nil
}
