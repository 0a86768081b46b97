package tetris

// EventType identifies what changed in the engine.
type EventType uint8

const (
	EventStarted EventType = iota
	EventSpawned
	EventMoved
	EventRotated
	EventSoftDropped
	EventHardDropped
	EventHeld
	EventLocked
	EventLinesCleared
	EventLevelUp
	EventPaused
	EventResumed
	EventGameOver
	EventReset
)

var eventNames = [...]string{
	EventStarted:      "started",
	EventSpawned:      "spawned",
	EventMoved:        "moved",
	EventRotated:      "rotated",
	EventSoftDropped:  "soft_dropped",
	EventHardDropped:  "hard_dropped",
	EventHeld:         "held",
	EventLocked:       "locked",
	EventLinesCleared: "lines_cleared",
	EventLevelUp:      "level_up",
	EventPaused:       "paused",
	EventResumed:      "resumed",
	EventGameOver:     "game_over",
	EventReset:        "reset",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// Event describes a single state change. Only the fields relevant to the
// event type are set.
type Event struct {
	Type EventType
	Kind Kind

	// Cells is the distance moved by a soft or hard drop.
	Cells int
	// Kicked is set on rotations that needed a wall kick.
	Kicked bool

	Award Award
	Level int
	Score int
}

// DefaultEventLimit bounds the number of undrained events kept by an engine.
const DefaultEventLimit = 256

// EventQueue buffers events until a consumer drains them. When the buffer is
// full the oldest event is discarded.
type EventQueue struct {
	events  []Event
	limit   int
	dropped int
}

func newEventQueue(limit int) *EventQueue {
	return &EventQueue{limit: limit}
}

func (q *EventQueue) push(ev Event) {
	if q.limit > 0 && len(q.events) >= q.limit {
		copy(q.events, q.events[1:])
		q.events = q.events[:len(q.events)-1]
		q.dropped++
	}
	q.events = append(q.events, ev)
}

// Len returns the number of buffered events.
func (q *EventQueue) Len() int { return len(q.events) }

// Dropped returns how many events were discarded because the queue was full.
func (q *EventQueue) Dropped() int { return q.dropped }

// Flush hands every buffered event to fn in order and empties the queue.
// Events pushed by fn stay queued for the next Flush.
func (q *EventQueue) Flush(fn func(Event)) {
	events := q.events
	q.events = nil
	for _, ev := range events {
		fn(ev)
	}
}
