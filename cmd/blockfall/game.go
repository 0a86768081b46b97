package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/debugui"
	debugui_ebiten "github.com/plus3/blockfall/debugui/ebiten"
	"github.com/plus3/blockfall/ecs"
	"github.com/plus3/blockfall/scores"
	"github.com/plus3/blockfall/tetris"
)

// Game implements ebiten.Game by running the world's systems once per tick.
type Game struct {
	cfg   config.Config
	log   *logrus.Entry
	world *world
	book  *scores.Book

	backend *ecs.Singleton[debugui_ebiten.ImguiBackend]
	overlay *ecs.Singleton[debugui.InputState]
	history *debugui.FrameHistory

	lastFrame time.Time
}

func newGame(cfg config.Config, log *logrus.Entry, book *scores.Book, sound *soundBank) *Game {
	engine := tetris.NewEngine(cfg.EngineOptions()...)
	w := newWorld(engine, book, log, sound, &inputSystem{keyboard: newKeyboard()})
	return &Game{
		cfg:       cfg,
		log:       log,
		world:     w,
		book:      book,
		history:   debugui.NewFrameHistory(120),
		lastFrame: time.Now(),
	}
}

// attachOverlay creates the imgui backend, which also creates the window,
// and spawns the debug windows.
func (g *Game) attachOverlay(width, height int) {
	storage := g.world.storage
	session := g.world.session.Get()

	g.backend = ecs.NewSingleton(storage, debugui_ebiten.NewImguiBackend("Blockfall", width, height))
	g.overlay = ecs.NewSingleton[debugui.InputState](storage)

	storage.Spawn((&debugui.EngineWindow{Snapshot: session.Engine.Snapshot}).Item())
	storage.Spawn((&debugui.StatsWindow{Summary: g.world.tracker.Summary}).Item())
	storage.Spawn((&debugui.LeaderboardWindow{Board: g.book.Leaderboard()}).Item())
	storage.Spawn((&debugui.PerformanceWindow{
		History:   g.history,
		Scheduler: g.world.scheduler,
		Ticks:     func() int { return g.world.session.Get().Ticks },
	}).Item())

	g.world.scheduler.Register(&debugui.OverlaySystem{})
}

func (g *Game) Update() error {
	now := time.Now()
	g.history.Record(now.Sub(g.lastFrame))
	g.lastFrame = now

	dt := time.Second / time.Duration(ebiten.TPS())

	if g.backend != nil {
		g.backend.Get().BeginFrame()
		defer g.backend.Get().EndFrame()
	}
	g.world.scheduler.Once(dt)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	session := g.world.session.Get()
	draw(screen, session.Engine.Snapshot(), g.book.Leaderboard().HighScore(), session.Rank, g.world.banner())
	if g.backend != nil {
		g.backend.Get().DrawOver(screen, g.overlay.Get())
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.backend != nil {
		g.backend.Get().Layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	board := g.world.session.Get().Engine.Board()
	return screenSize(board.Width(), board.Height())
}
