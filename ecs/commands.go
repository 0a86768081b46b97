package ecs

// Commands buffers structural changes made while systems run. The
// Scheduler applies them after the last system of the frame.
type Commands struct {
	spawns  [][]any
	deletes []EntityId
	defers  []func()
}

func NewCommands() *Commands {
	return &Commands{}
}

// Spawn queues an entity with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, components)
}

// Delete queues the removal of entity.
func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// Defer queues fn to run after the structural changes.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Len returns the number of queued commands.
func (c *Commands) Len() int {
	return len(c.spawns) + len(c.deletes) + len(c.defers)
}

// Flush applies deletes, then spawns, then runs deferred functions.
// Commands queued while flushing stay buffered for the next Flush.
func (c *Commands) Flush(storage *Storage) {
	spawns, deletes, defers := c.spawns, c.deletes, c.defers
	c.spawns, c.deletes, c.defers = nil, nil, nil

	for _, id := range deletes {
		storage.Delete(id)
	}
	for _, components := range spawns {
		storage.Spawn(components...)
	}
	for _, fn := range defers {
		fn()
	}
}
