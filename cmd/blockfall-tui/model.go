package main

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/plus3/blockfall/scores"
	"github.com/plus3/blockfall/stats"
	"github.com/plus3/blockfall/tetris"
)

// gravityMsg is sent after the scheduler fires a gravity tick.
type gravityMsg struct{}

type bannerExpiredMsg struct{ id int }

var keyCommands = map[string]tetris.Command{
	"left":  tetris.CmdMoveLeft,
	"h":     tetris.CmdMoveLeft,
	"right": tetris.CmdMoveRight,
	"l":     tetris.CmdMoveRight,
	"down":  tetris.CmdSoftDrop,
	"j":     tetris.CmdSoftDrop,
	"up":    tetris.CmdRotate,
	"z":     tetris.CmdRotate,
	"x":     tetris.CmdRotate,
	"k":     tetris.CmdRotate,
	" ":     tetris.CmdHardDrop,
	"space": tetris.CmdHardDrop,
	"c":     tetris.CmdHold,
	"p":     tetris.CmdTogglePause,
	"esc":   tetris.CmdTogglePause,
	"enter": tetris.CmdStart,
	"r":     tetris.CmdReset,
}

type model struct {
	sched   *tetris.Scheduler
	ticks   <-chan struct{}
	tracker *stats.Tracker
	book    *scores.Book
	log     *logrus.Entry

	rank     int
	banner   string
	bannerID int
}

func newModel(sched *tetris.Scheduler, ticks <-chan struct{}, book *scores.Book, log *logrus.Entry) model {
	return model{
		sched:   sched,
		ticks:   ticks,
		tracker: stats.NewTracker(),
		book:    book,
		log:     log,
	}
}

func waitForGravity(ticks <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ticks
		return gravityMsg{}
	}
}

func (m model) Init() tea.Cmd {
	return waitForGravity(m.ticks)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		if key == "q" || key == "ctrl+c" {
			return m, tea.Quit
		}
		if c, ok := keyCommands[key]; ok {
			m.apply(c)
		}
		return m, m.drain()
	case gravityMsg:
		return m, tea.Batch(m.drain(), waitForGravity(m.ticks))
	case bannerExpiredMsg:
		if msg.id == m.bannerID {
			m.banner = ""
		}
	}
	return m, nil
}

func (m *model) apply(c tetris.Command) {
	switch c {
	case tetris.CmdStart, tetris.CmdReset:
		m.rank = 0
		m.sched.Do(func(e *tetris.Engine) {
			if c == tetris.CmdReset || e.State() == tetris.GameOver {
				e.Reset()
			}
			e.Start()
		})
	default:
		m.sched.Apply(c)
	}
}

// drain feeds queued engine events to the tracker and leaderboard.
func (m *model) drain() tea.Cmd {
	var (
		events   []tetris.Event
		finished scores.Entry
	)
	m.sched.Do(func(e *tetris.Engine) {
		e.DrainEvents(func(ev tetris.Event) { events = append(events, ev) })
		finished = scores.Entry{
			Name:       "player",
			Score:      e.Score(),
			Lines:      e.Lines(),
			Level:      e.Level(),
			Difficulty: e.Difficulty().String(),
			Duration:   e.Elapsed(),
		}
	})

	var cmd tea.Cmd
	for _, ev := range events {
		if unlocked := m.tracker.Observe(ev); len(unlocked) > 0 {
			names := make([]string, len(unlocked))
			for i, a := range unlocked {
				names[i] = a.String()
			}
			m.banner = "Unlocked " + strings.Join(names, ", ")
			m.bannerID++
			id := m.bannerID
			cmd = tea.Tick(3*time.Second, func(time.Time) tea.Msg { return bannerExpiredMsg{id: id} })
		}
		if ev.Type == tetris.EventGameOver {
			finished.PlayedAt = time.Now()
			m.record(finished)
		}
	}
	return cmd
}

func (m *model) record(entry scores.Entry) {
	log := m.log.WithFields(logrus.Fields{"score": entry.Score, "lines": entry.Lines})
	rank, err := m.book.Record(entry)
	if err != nil {
		log.WithError(err).Error("failed to save leaderboard")
	}
	m.rank = rank
	log.WithField("rank", rank).Info("game over")
}

func (m model) View() string {
	return render(m.sched.Snapshot(), m.book.Leaderboard(), m.rank, m.banner) + "\n"
}
