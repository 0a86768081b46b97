package ecs

import (
	"iter"
	"reflect"
)

// componentStore is a type-erased column of one component type.
type componentStore interface {
	Append(item any) int
	Delete(index int)
	Get(index int) any
	Len() int
	Iter() iter.Seq[int]
}

// ComponentRegistry maps component types to their storage. Every component
// type must be registered before an entity carrying it is spawned.
type ComponentRegistry struct {
	factories map[reflect.Type]func() componentStore
}

func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() componentStore),
	}
}

// RegisterComponent registers T with the registry.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func() componentStore {
		return &blockStore[T]{}
	}
}

func (r *ComponentRegistry) factory(t reflect.Type) func() componentStore {
	return r.factories[t]
}

const blockSize = 64

// blockStore keeps components in fixed-size blocks. Blocks are allocated
// separately, so pointers handed out by Get stay valid while the store grows.
type blockStore[T any] struct {
	blocks []*[blockSize]T
	filled []*[blockSize]bool
	free   []int
	next   int
	count  int
}

func (s *blockStore[T]) Append(item any) int {
	var value T
	if ptr, ok := item.(*T); ok {
		value = *ptr
	} else if v, ok := item.(T); ok {
		value = v
	} else {
		return -1
	}

	var index int
	if n := len(s.free); n > 0 {
		index = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		index = s.next
		s.next++
		if index/blockSize >= len(s.blocks) {
			s.blocks = append(s.blocks, new([blockSize]T))
			s.filled = append(s.filled, new([blockSize]bool))
		}
	}

	s.blocks[index/blockSize][index%blockSize] = value
	s.filled[index/blockSize][index%blockSize] = true
	s.count++
	return index
}

func (s *blockStore[T]) has(index int) bool {
	if index < 0 || index >= s.next {
		return false
	}
	return s.filled[index/blockSize][index%blockSize]
}

// Get returns a pointer to the component at index, or nil for an empty slot.
func (s *blockStore[T]) Get(index int) any {
	if !s.has(index) {
		return nil
	}
	return &s.blocks[index/blockSize][index%blockSize]
}

func (s *blockStore[T]) Delete(index int) {
	if !s.has(index) {
		return
	}
	var zero T
	s.blocks[index/blockSize][index%blockSize] = zero
	s.filled[index/blockSize][index%blockSize] = false
	s.free = append(s.free, index)
	s.count--
}

func (s *blockStore[T]) Len() int { return s.count }

func (s *blockStore[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < s.next; i++ {
			if s.filled[i/blockSize][i%blockSize] && !yield(i) {
				return
			}
		}
	}
}
