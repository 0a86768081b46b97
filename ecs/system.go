package ecs

import "time"

// System runs once per frame. Query and Singleton fields of a system are
// bound to the scheduler's storage when it is registered.
type System interface {
	Execute(frame *UpdateFrame)
}

// SystemFunc adapts a function to System.
type SystemFunc func(frame *UpdateFrame)

func (f SystemFunc) Execute(frame *UpdateFrame) { f(frame) }

type UpdateFrame struct {
	Delta    time.Duration
	Commands *Commands
	Storage  *Storage
}
