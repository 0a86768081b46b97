package tetris

import "fmt"

// Command is an abstract player input, decoded from keys, touches or a bot.
type Command uint8

const (
	CmdNone Command = iota
	CmdMoveLeft
	CmdMoveRight
	CmdSoftDrop
	CmdHardDrop
	CmdRotate
	CmdHold
	CmdPause
	CmdResume
	CmdTogglePause
	CmdStart
	CmdReset
)

var commandNames = [...]string{
	CmdNone:        "none",
	CmdMoveLeft:    "move_left",
	CmdMoveRight:   "move_right",
	CmdSoftDrop:    "soft_drop",
	CmdHardDrop:    "hard_drop",
	CmdRotate:      "rotate",
	CmdHold:        "hold",
	CmdPause:       "pause",
	CmdResume:      "resume",
	CmdTogglePause: "toggle_pause",
	CmdStart:       "start",
	CmdReset:       "reset",
}

func (c Command) String() string {
	if int(c) < len(commandNames) {
		return commandNames[c]
	}
	return fmt.Sprintf("Command(%d)", uint8(c))
}

// Apply runs a command and reports whether it changed the game.
func (e *Engine) Apply(c Command) bool {
	switch c {
	case CmdMoveLeft:
		return e.MoveLeft()
	case CmdMoveRight:
		return e.MoveRight()
	case CmdSoftDrop:
		return e.SoftDrop()
	case CmdHardDrop:
		return e.HardDrop()
	case CmdRotate:
		return e.Rotate()
	case CmdHold:
		return e.Hold()
	case CmdPause:
		return e.Pause()
	case CmdResume:
		return e.Resume()
	case CmdTogglePause:
		return e.TogglePause()
	case CmdStart:
		return e.Start()
	case CmdReset:
		e.Reset()
		return true
	}
	return false
}
