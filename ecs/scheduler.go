package ecs

import (
	"reflect"
	"time"
)

type SchedulerStats struct {
	SystemCount     int
	Frames          int64
	TotalExecutions int64
	Systems         []SystemStats
}

type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

// binder is implemented by Query and Singleton.
type binder interface {
	bind(storage *Storage)
}

type executor interface {
	Execute()
}

type registeredSystem struct {
	system  System
	queries []executor
	stats   SystemStats
}

// Scheduler runs registered systems in registration order.
type Scheduler struct {
	storage  *Storage
	commands *Commands
	systems  []*registeredSystem
	frames   int64
}

func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{
		storage:  storage,
		commands: NewCommands(),
	}
}

// Register binds the system's Query and Singleton fields and appends it.
func (s *Scheduler) Register(system System) {
	rs := &registeredSystem{
		system: system,
		stats: SystemStats{
			Name:        systemName(system),
			MinDuration: time.Duration(1<<63 - 1),
		},
	}

	v := reflect.ValueOf(system)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() == reflect.Struct {
		for i := 0; i < v.NumField(); i++ {
			field := v.Field(i)
			if !field.CanSet() || !field.CanAddr() {
				continue
			}
			b, ok := field.Addr().Interface().(binder)
			if !ok {
				continue
			}
			b.bind(s.storage)
			if e, ok := b.(executor); ok {
				rs.queries = append(rs.queries, e)
			}
		}
	}

	s.systems = append(s.systems, rs)
}

func systemName(system System) string {
	t := reflect.TypeOf(system)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" {
		return t.String()
	}
	return t.Name()
}

// Once runs every system with delta dt, then flushes the frame's commands.
func (s *Scheduler) Once(dt time.Duration) {
	frame := &UpdateFrame{
		Delta:    dt,
		Commands: s.commands,
		Storage:  s.storage,
	}

	for _, rs := range s.systems {
		start := time.Now()
		for _, q := range rs.queries {
			q.Execute()
		}
		rs.system.Execute(frame)
		duration := time.Since(start)

		rs.stats.ExecutionCount++
		rs.stats.LastDuration = duration
		rs.stats.TotalDuration += duration
		rs.stats.MinDuration = min(rs.stats.MinDuration, duration)
		rs.stats.MaxDuration = max(rs.stats.MaxDuration, duration)
	}

	s.frames++
	s.commands.Flush(s.storage)
}

func (s *Scheduler) Storage() *Storage {
	return s.storage
}

// Stats returns execution statistics per system.
func (s *Scheduler) Stats() SchedulerStats {
	stats := SchedulerStats{
		SystemCount: len(s.systems),
		Frames:      s.frames,
		Systems:     make([]SystemStats, len(s.systems)),
	}
	for i, rs := range s.systems {
		st := rs.stats
		if st.ExecutionCount > 0 {
			st.AvgDuration = st.TotalDuration / time.Duration(st.ExecutionCount)
		} else {
			st.MinDuration = 0
		}
		stats.Systems[i] = st
		stats.TotalExecutions += st.ExecutionCount
	}
	return stats
}
