package tower

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-stack/internal/stack"
)

// LogObserver writes game transitions to a structured logger.
// Drops and score changes go to debug, start and game over to info.
type LogObserver struct {
	logger *log.Logger
}

var _ stack.Observer = (*LogObserver)(nil)

// NewLogObserver logs through l; a nil logger discards everything.
func NewLogObserver(l *log.Logger) *LogObserver {
	return &LogObserver{logger: l}
}

func (o *LogObserver) OnInit() {
	if o.logger != nil {
		o.logger.Debug("session ready")
	}
}

func (o *LogObserver) OnStart() {
	if o.logger != nil {
		o.logger.Info("game started")
	}
}

func (o *LogObserver) OnResolve(r stack.Resolution) {
	if o.logger == nil {
		return
	}
	kv := []any{
		"outcome", r.Kind,
		"axis", r.Axis,
		"layer", r.Block.Layer,
		"streak", r.Combo,
	}
	if r.Kind != stack.Miss {
		kv = append(kv, "width", r.Block.Size.X, "depth", r.Block.Size.Z)
	}
	if r.Debris != nil {
		kv = append(kv, "cut", r.Debris.Size.Get(r.Axis))
	}
	o.logger.Debug("drop", kv...)
}

func (o *LogObserver) OnScoreChange(layer int) {
	if o.logger != nil {
		o.logger.Debug("score", "layer", layer)
	}
}

func (o *LogObserver) OnGameOver(finalScore int) {
	if o.logger != nil {
		o.logger.Info("game over", "score", finalScore)
	}
}
