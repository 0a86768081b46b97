package ecs_test

import "github.com/plus3/blockfall/ecs"

type Position struct {
	X, Y int
}

type Velocity struct {
	DX, DY int
}

type Health struct {
	Current int
}

type Tag string

type Counter struct {
	Value int
}

func newRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[Tag](registry)
	return registry
}
