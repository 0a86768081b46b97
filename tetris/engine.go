package tetris

import (
	"fmt"
	"time"
)

// State is the run state of an engine.
type State uint8

const (
	Idle State = iota
	Running
	Paused
	GameOver
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case GameOver:
		return "game over"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// DefaultLockDelay is how long a grounded piece may rest before it locks.
const DefaultLockDelay = 500 * time.Millisecond

type options struct {
	width, height int
	difficulty    Difficulty
	lockDelay     time.Duration
	randomizer    Randomizer
	eventLimit    int
}

// Option configures an Engine.
type Option func(*options)

// WithBoardSize sets the board dimensions.
func WithBoardSize(width, height int) Option {
	return func(o *options) {
		o.width = width
		o.height = height
	}
}

// WithDifficulty sets the starting difficulty.
func WithDifficulty(d Difficulty) Option {
	return func(o *options) { o.difficulty = d }
}

// WithLockDelay sets the lock delay threshold.
func WithLockDelay(d time.Duration) Option {
	return func(o *options) { o.lockDelay = d }
}

// WithRandomizer sets the source of spawned kinds.
func WithRandomizer(r Randomizer) Option {
	return func(o *options) { o.randomizer = r }
}

// WithEventLimit bounds the undrained event buffer. Zero means unbounded.
func WithEventLimit(n int) Option {
	return func(o *options) { o.eventLimit = n }
}

// Engine is the game state machine. It owns the board, the active, next and
// held pieces and the score counters. An Engine is not safe for concurrent
// use; wrap it in a Scheduler when commands and gravity come from different
// goroutines.
type Engine struct {
	opts  options
	board *Board

	state      State
	active     Piece
	hasActive  bool
	next       Kind
	held       Kind
	hasHeld    bool
	canHold    bool
	difficulty Difficulty

	score      int
	lines      int
	level      int
	combo      int
	backToBack bool

	lockTimer time.Duration
	elapsed   time.Duration
	epoch     uint64

	events *EventQueue
}

// NewEngine creates an idle engine.
func NewEngine(opts ...Option) *Engine {
	o := options{
		width:      DefaultWidth,
		height:     DefaultHeight,
		difficulty: Normal,
		lockDelay:  DefaultLockDelay,
		eventLimit: DefaultEventLimit,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.randomizer == nil {
		o.randomizer = NewUniformRandomizer(uint64(time.Now().UnixNano()))
	}

	e := &Engine{
		opts:       o,
		board:      NewBoard(o.width, o.height),
		difficulty: o.difficulty,
		level:      1,
		events:     newEventQueue(o.eventLimit),
	}
	return e
}

func (e *Engine) State() State  { return e.state }
func (e *Engine) Board() *Board { return e.board }
func (e *Engine) Score() int    { return e.score }
func (e *Engine) Lines() int    { return e.lines }
func (e *Engine) Level() int    { return e.level }
func (e *Engine) Combo() int    { return e.combo }
func (e *Engine) Next() Kind    { return e.next }
func (e *Engine) CanHold() bool { return e.canHold }

// Active returns the falling piece, if any.
func (e *Engine) Active() (Piece, bool) { return e.active, e.hasActive }

// Held returns the parked piece kind, if any.
func (e *Engine) Held() (Kind, bool) { return e.held, e.hasHeld }

// Elapsed returns the time the current game has spent running.
func (e *Engine) Elapsed() time.Duration { return e.elapsed }

// Epoch increases every time the engine enters Running, so clocks can tell
// that accumulated time belongs to an earlier run.
func (e *Engine) Epoch() uint64 { return e.epoch }

// Difficulty returns the current difficulty.
func (e *Engine) Difficulty() Difficulty { return e.difficulty }

// SetDifficulty changes the base gravity interval for subsequent ticks.
func (e *Engine) SetDifficulty(d Difficulty) {
	e.difficulty = d
}

// DropInterval returns the current gravity interval.
func (e *Engine) DropInterval() time.Duration {
	return DropInterval(e.difficulty, e.level)
}

// LockDelay returns the lock delay threshold.
func (e *Engine) LockDelay() time.Duration { return e.opts.lockDelay }

// DrainEvents passes every queued event to fn and clears the queue.
func (e *Engine) DrainEvents(fn func(Event)) {
	e.events.Flush(fn)
}

// Events exposes the event queue for inspection.
func (e *Engine) Events() *EventQueue { return e.events }

func (e *Engine) emit(ev Event) {
	e.events.push(ev)
}

// Start begins a new game. It only has an effect from Idle.
func (e *Engine) Start() bool {
	if e.state != Idle {
		return false
	}

	e.clearSession()
	e.state = Running
	e.epoch++
	e.emit(Event{Type: EventStarted})

	e.next = e.opts.randomizer.Next()
	e.spawn(e.takeNext())
	return true
}

// Reset abandons the current game and returns to Idle with an empty board.
func (e *Engine) Reset() {
	e.clearSession()
	e.state = Idle
	e.emit(Event{Type: EventReset})
}

func (e *Engine) clearSession() {
	e.board.Clear()
	e.active = Piece{}
	e.hasActive = false
	e.hasHeld = false
	e.canHold = true
	e.score = 0
	e.lines = 0
	e.level = 1
	e.combo = 0
	e.backToBack = false
	e.lockTimer = 0
	e.elapsed = 0
}

// Pause suspends a running game.
func (e *Engine) Pause() bool {
	if e.state != Running {
		return false
	}
	e.state = Paused
	e.emit(Event{Type: EventPaused})
	return true
}

// Resume continues a paused game.
func (e *Engine) Resume() bool {
	if e.state != Paused {
		return false
	}
	e.state = Running
	e.epoch++
	e.emit(Event{Type: EventResumed})
	return true
}

// TogglePause pauses a running game or resumes a paused one.
func (e *Engine) TogglePause() bool {
	if e.state == Paused {
		return e.Resume()
	}
	return e.Pause()
}

func (e *Engine) takeNext() Kind {
	kind := e.next
	e.next = e.opts.randomizer.Next()
	return kind
}

// spawn puts a new piece at the spawn position. A spawn that collides ends
// the game.
func (e *Engine) spawn(kind Kind) bool {
	e.active = Spawn(kind, e.board.Width())
	e.hasActive = true
	e.lockTimer = 0

	if Collides(e.board, e.active, 0, 0) {
		e.state = GameOver
		e.emit(Event{Type: EventGameOver, Kind: kind, Score: e.score})
		return false
	}

	e.emit(Event{Type: EventSpawned, Kind: kind})
	return true
}

func (e *Engine) playing() bool {
	return e.state == Running && e.hasActive
}

func (e *Engine) shift(dx, dy int) bool {
	if !e.playing() || Collides(e.board, e.active, dx, dy) {
		return false
	}
	e.active = e.active.Moved(dx, dy)
	e.lockTimer = 0
	return true
}

// MoveLeft shifts the piece one column left.
func (e *Engine) MoveLeft() bool {
	if !e.shift(-1, 0) {
		return false
	}
	e.emit(Event{Type: EventMoved, Kind: e.active.Kind})
	return true
}

// MoveRight shifts the piece one column right.
func (e *Engine) MoveRight() bool {
	if !e.shift(1, 0) {
		return false
	}
	e.emit(Event{Type: EventMoved, Kind: e.active.Kind})
	return true
}

// SoftDrop moves the piece down one row for one point.
func (e *Engine) SoftDrop() bool {
	if !e.shift(0, 1) {
		return false
	}
	e.score += softDropPoint
	e.emit(Event{Type: EventSoftDropped, Kind: e.active.Kind, Cells: 1, Score: e.score})
	return true
}

// HardDrop drops the piece to its landing row for two points per row and
// locks it without waiting for the lock delay.
func (e *Engine) HardDrop() bool {
	if !e.playing() {
		return false
	}

	k := DropDistance(e.board, e.active)
	e.active = e.active.Moved(0, k)
	e.score += hardDropPoint * k
	e.emit(Event{Type: EventHardDropped, Kind: e.active.Kind, Cells: k, Score: e.score})

	e.lock()
	return true
}

// Rotate turns the piece clockwise, applying a wall kick if needed.
func (e *Engine) Rotate() bool {
	if !e.playing() {
		return false
	}

	rotated, kicked, ok := attemptRotation(e.board, e.active)
	if !ok {
		return false
	}

	e.active = rotated
	e.lockTimer = 0
	e.emit(Event{Type: EventRotated, Kind: rotated.Kind, Kicked: kicked})
	return true
}

// Hold parks the active piece. The first hold spawns from the next queue;
// later holds swap the active and held kinds. Holding is allowed once per
// lock.
func (e *Engine) Hold() bool {
	if !e.playing() || !e.canHold {
		return false
	}

	current := e.active.Kind
	e.canHold = false

	var incoming Kind
	if e.hasHeld {
		incoming = e.held
	} else {
		incoming = e.takeNext()
	}
	e.held = current
	e.hasHeld = true

	e.emit(Event{Type: EventHeld, Kind: current})
	e.spawn(incoming)
	return true
}

// Tick applies one step of gravity. elapsed is the time since the previous
// tick; it counts toward the lock delay while the piece cannot fall.
func (e *Engine) Tick(elapsed time.Duration) {
	if !e.playing() {
		return
	}

	e.elapsed += elapsed

	if !Collides(e.board, e.active, 0, 1) {
		e.active = e.active.Moved(0, 1)
		e.lockTimer = 0
		return
	}

	e.lockTimer += elapsed
	if e.lockTimer >= e.opts.lockDelay {
		e.lock()
	}
}

func (e *Engine) lock() {
	piece := e.active
	for x, y := range piece.Cells() {
		if y < 0 {
			continue
		}
		if err := e.board.Set(x, y, piece.Kind.Cell()); err != nil {
			panic(fmt.Errorf("lock %s piece: %w", piece.Kind, err))
		}
	}
	e.hasActive = false
	e.emit(Event{Type: EventLocked, Kind: piece.Kind})

	n := e.board.ClearFullLines()
	award, combo, b2b := scoreLock(n, e.level, e.combo, e.backToBack)
	e.combo = combo
	e.backToBack = b2b

	if n > 0 {
		e.score += award.Total()
		e.lines += n
		e.emit(Event{Type: EventLinesCleared, Kind: piece.Kind, Award: award, Score: e.score})

		if level := levelForLines(e.lines); level != e.level {
			e.level = level
			e.emit(Event{Type: EventLevelUp, Level: level})
		}
	}

	e.canHold = true
	e.lockTimer = 0
	e.spawn(e.takeNext())
}

// GhostY returns the row the active piece would land on.
func (e *Engine) GhostY() int {
	if !e.hasActive {
		return 0
	}
	return e.active.Y + DropDistance(e.board, e.active)
}
