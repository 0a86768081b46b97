package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/blockfall/tetris"
)

const (
	repeatDelay = 170 * time.Millisecond
	repeatRate  = 50 * time.Millisecond
)

// autoRepeat fires once when a key goes down and then repeatedly while it
// stays down past the delay.
type autoRepeat struct {
	delay, rate time.Duration
	held        time.Duration
	down        bool
}

func newAutoRepeat() *autoRepeat {
	return &autoRepeat{delay: repeatDelay, rate: repeatRate}
}

// update reports whether the action fires this frame.
func (r *autoRepeat) update(down bool, dt time.Duration) bool {
	if !down {
		r.down = false
		r.held = 0
		return false
	}
	if !r.down {
		r.down = true
		r.held = 0
		return true
	}

	r.held += dt
	if r.held > r.delay {
		r.held -= r.rate
		return true
	}
	return false
}

type binding struct {
	command tetris.Command
	keys    []ebiten.Key
	repeat  *autoRepeat
}

// keyboard decodes ebiten key state into commands.
type keyboard struct {
	bindings []binding
}

func newKeyboard() *keyboard {
	return &keyboard{bindings: []binding{
		{command: tetris.CmdMoveLeft, keys: []ebiten.Key{ebiten.KeyArrowLeft}, repeat: newAutoRepeat()},
		{command: tetris.CmdMoveRight, keys: []ebiten.Key{ebiten.KeyArrowRight}, repeat: newAutoRepeat()},
		{command: tetris.CmdSoftDrop, keys: []ebiten.Key{ebiten.KeyArrowDown}, repeat: &autoRepeat{delay: 0, rate: repeatRate}},
		{command: tetris.CmdRotate, keys: []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyZ, ebiten.KeyX}},
		{command: tetris.CmdHardDrop, keys: []ebiten.Key{ebiten.KeySpace}},
		{command: tetris.CmdHold, keys: []ebiten.Key{ebiten.KeyC, ebiten.KeyShiftLeft, ebiten.KeyShiftRight}},
		{command: tetris.CmdTogglePause, keys: []ebiten.Key{ebiten.KeyP, ebiten.KeyEscape}},
		{command: tetris.CmdStart, keys: []ebiten.Key{ebiten.KeyEnter}},
		{command: tetris.CmdReset, keys: []ebiten.Key{ebiten.KeyR}},
	}}
}

// commands returns the commands triggered this frame, in binding order.
func (k *keyboard) commands(dt time.Duration) []tetris.Command {
	var out []tetris.Command
	for _, b := range k.bindings {
		if b.repeat != nil {
			if b.repeat.update(anyPressed(b.keys), dt) {
				out = append(out, b.command)
			}
			continue
		}
		if anyJustPressed(b.keys) {
			out = append(out, b.command)
		}
	}
	return out
}

func anyPressed(keys []ebiten.Key) bool {
	for _, key := range keys {
		if ebiten.IsKeyPressed(key) {
			return true
		}
	}
	return false
}

func anyJustPressed(keys []ebiten.Key) bool {
	for _, key := range keys {
		if inpututil.IsKeyJustPressed(key) {
			return true
		}
	}
	return false
}
