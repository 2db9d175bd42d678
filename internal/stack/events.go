package stack

// Resolution reports one settled drop to the presentation layer.
type Resolution struct {
	Kind   OutcomeKind
	Axis   Axis
	Block  Block  // The resolved block: snapped, trimmed, or the whole missed block
	Debris *Block // Cut-off remainder, Partial only
	Combo  int    // Perfect streak before this drop
}

// Observer receives game transitions. Events arrive in the order
// init, start, then resolve/score-change pairs, then game-over.
// Implementations may ignore any of them.
type Observer interface {
	OnInit()
	OnStart()
	OnResolve(r Resolution)
	OnScoreChange(layer int)
	OnGameOver(finalScore int)
}

// NopObserver ignores every event. Embed it to implement only what you need.
type NopObserver struct{}

func (NopObserver) OnInit()              {}
func (NopObserver) OnStart()             {}
func (NopObserver) OnResolve(Resolution) {}
func (NopObserver) OnScoreChange(int)    {}
func (NopObserver) OnGameOver(int)       {}

// Observers fans events out to several observers in slice order.
type Observers []Observer

func (obs Observers) OnInit() {
	for _, o := range obs {
		o.OnInit()
	}
}

func (obs Observers) OnStart() {
	for _, o := range obs {
		o.OnStart()
	}
}

func (obs Observers) OnResolve(r Resolution) {
	for _, o := range obs {
		o.OnResolve(r)
	}
}

func (obs Observers) OnScoreChange(layer int) {
	for _, o := range obs {
		o.OnScoreChange(layer)
	}
}

func (obs Observers) OnGameOver(finalScore int) {
	for _, o := range obs {
		o.OnGameOver(finalScore)
	}
}

// EventKind tags a recorded event.
type EventKind int

const (
	EventInit EventKind = iota
	EventStart
	EventResolve
	EventScoreChange
	EventGameOver
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventInit:
		return "init"
	case EventStart:
		return "start"
	case EventResolve:
		return "resolve"
	case EventScoreChange:
		return "score"
	case EventGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Event is one entry in a Recorder.
type Event struct {
	Kind       EventKind
	Score      int         // Layer for score changes, final score for game over
	Resolution *Resolution // Set for EventResolve
}

// Recorder is an Observer that queues events for a host to drain each frame.
type Recorder struct {
	events []Event
}

func (r *Recorder) OnInit()  { r.events = append(r.events, Event{Kind: EventInit}) }
func (r *Recorder) OnStart() { r.events = append(r.events, Event{Kind: EventStart}) }

func (r *Recorder) OnResolve(res Resolution) {
	r.events = append(r.events, Event{Kind: EventResolve, Resolution: &res})
}

func (r *Recorder) OnScoreChange(layer int) {
	r.events = append(r.events, Event{Kind: EventScoreChange, Score: layer})
}

func (r *Recorder) OnGameOver(finalScore int) {
	r.events = append(r.events, Event{Kind: EventGameOver, Score: finalScore})
}

// Events returns the queued events without clearing them.
func (r *Recorder) Events() []Event {
	return r.events
}

// Drain returns the queued events and clears the queue.
func (r *Recorder) Drain() []Event {
	out := r.events
	r.events = nil
	return out
}

// Kinds returns the kinds of the queued events, in order.
func (r *Recorder) Kinds() []EventKind {
	kinds := make([]EventKind, len(r.events))
	for i, e := range r.events {
		kinds[i] = e.Kind
	}
	return kinds
}
