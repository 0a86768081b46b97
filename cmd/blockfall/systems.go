package main

import (
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"

	"github.com/plus3/blockfall/debugui"
	"github.com/plus3/blockfall/ecs"
	"github.com/plus3/blockfall/scores"
	"github.com/plus3/blockfall/stats"
	"github.com/plus3/blockfall/tetris"
)

const bannerTime = 3 * time.Second

// Session is the singleton holding the running game.
type Session struct {
	Engine *tetris.Engine
	Clock  tetris.FrameClock
	Ticks  int
	// Rank is the leaderboard place of the last finished game, or 0.
	Rank int
}

func (s *Session) apply(c tetris.Command) {
	switch {
	case c == tetris.CmdStart && s.Engine.State() == tetris.GameOver:
		s.Engine.Reset()
	case c == tetris.CmdReset:
		s.Engine.Reset()
		c = tetris.CmdStart
	}
	if c == tetris.CmdStart {
		s.Rank = 0
	}
	s.Engine.Apply(c)
}

// Banner is a message shown under the side panel until Left runs out.
type Banner struct {
	Text string
	Left time.Duration
}

// world is the ecs storage and systems behind one game window.
type world struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	session   *ecs.Singleton[Session]
	banners   *ecs.Query[struct{ *Banner }]
	tracker   *stats.Tracker
}

// newWorld registers the game systems after any systems passed in, which run
// first each frame.
func newWorld(engine *tetris.Engine, book *scores.Book, log *logrus.Entry, sound *soundBank, first ...ecs.System) *world {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Banner](registry)
	debugui.Register(registry)

	storage := ecs.NewStorage(registry)
	w := &world{
		storage:   storage,
		scheduler: ecs.NewScheduler(storage),
		session:   ecs.NewSingleton(storage, Session{Engine: engine}),
		banners:   ecs.NewQuery[struct{ *Banner }](storage),
		tracker:   stats.NewTracker(),
	}

	for _, system := range first {
		w.scheduler.Register(system)
	}
	w.scheduler.Register(&gravitySystem{})
	w.scheduler.Register(&eventSystem{tracker: w.tracker, book: book, log: log, sound: sound})
	w.scheduler.Register(&bannerSystem{})
	return w
}

// banner returns the text of the newest banner, if any.
func (w *world) banner() string {
	w.banners.Execute()
	text := ""
	for item := range w.banners.Values() {
		text = item.Banner.Text
	}
	return text
}

// inputSystem turns keyboard state into engine commands. F1 toggles the
// debug overlay; the game ignores keys while the overlay has focus.
type inputSystem struct {
	Session ecs.Singleton[Session]
	Overlay ecs.Singleton[debugui.InputState]

	keyboard *keyboard
}

func (s *inputSystem) Execute(frame *ecs.UpdateFrame) {
	overlay := s.Overlay.Get()
	if overlay != nil {
		if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
			overlay.Hidden = !overlay.Hidden
		}
		if overlay.WantCaptureKeyboard && !overlay.Hidden {
			return
		}
	}

	session := s.Session.Get()
	for _, c := range s.keyboard.commands(frame.Delta) {
		session.apply(c)
	}
}

type gravitySystem struct {
	Session ecs.Singleton[Session]
}

func (s *gravitySystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.Get()
	session.Ticks += session.Clock.Advance(session.Engine, frame.Delta)
}

// eventSystem feeds engine events to the tracker. Banners, sounds and the
// leaderboard write happen after the frame.
type eventSystem struct {
	Session ecs.Singleton[Session]
	Banners ecs.Query[struct {
		Id ecs.EntityId
		*Banner
	}]

	tracker *stats.Tracker
	book    *scores.Book
	log     *logrus.Entry
	sound   *soundBank
}

func (s *eventSystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.Get()
	session.Engine.DrainEvents(func(ev tetris.Event) {
		if unlocked := s.tracker.Observe(ev); len(unlocked) > 0 {
			s.showUnlocked(frame.Commands, unlocked)
		}

		if s.sound != nil {
			frame.Commands.Defer(func() { s.sound.play(ev) })
		}

		switch ev.Type {
		case tetris.EventLevelUp:
			s.log.WithField("level", ev.Level).Debug("level up")
		case tetris.EventGameOver:
			frame.Commands.Defer(func() { session.Rank = s.recordScore(session.Engine) })
		}
	})
}

func (s *eventSystem) showUnlocked(commands *ecs.Commands, unlocked []stats.Achievement) {
	names := make([]string, len(unlocked))
	for i, a := range unlocked {
		names[i] = a.String()
	}
	for item := range s.Banners.Values() {
		commands.Delete(item.Id)
	}
	commands.Spawn(Banner{
		Text: "UNLOCKED " + strings.ToUpper(strings.Join(names, ", ")),
		Left: bannerTime,
	})
	s.log.WithField("achievements", names).Info("achievement unlocked")
}

func (s *eventSystem) recordScore(e *tetris.Engine) int {
	entry := scores.Entry{
		Name:       "player",
		Score:      e.Score(),
		Lines:      e.Lines(),
		Level:      e.Level(),
		Difficulty: e.Difficulty().String(),
		Duration:   e.Elapsed(),
		PlayedAt:   time.Now(),
	}
	log := s.log.WithFields(logrus.Fields{"score": entry.Score, "lines": entry.Lines})

	rank, err := s.book.Record(entry)
	if err != nil {
		log.WithError(err).Error("failed to save leaderboard")
	}
	log.WithField("rank", rank).Info("game over")
	return rank
}

type bannerSystem struct {
	Banners ecs.Query[struct {
		Id ecs.EntityId
		*Banner
	}]
}

func (s *bannerSystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Banners.Values() {
		item.Banner.Left -= frame.Delta
		if item.Banner.Left <= 0 {
			frame.Commands.Delete(item.Id)
		}
	}
}
