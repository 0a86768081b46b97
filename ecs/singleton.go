package ecs

import "reflect"

// Singleton gives typed access to the singleton component T of a storage.
// Declared as a field of a System it is bound when the system is registered.
type Singleton[T any] struct {
	storage *Storage
	ptr     *T
}

// NewSingleton returns an accessor for T, storing initial (or the zero
// value) first when the storage has no T yet.
func NewSingleton[T any](storage *Storage, initial ...T) *Singleton[T] {
	if storage.getSingletonEntry(reflect.TypeFor[T]()) == nil {
		var value T
		if len(initial) > 0 {
			value = initial[0]
		}
		storage.AddSingleton(value)
	}

	s := &Singleton[T]{}
	s.bind(storage)
	return s
}

func (s *Singleton[T]) bind(storage *Storage) {
	s.storage = storage
	s.ptr = nil
	s.refresh()
}

func (s *Singleton[T]) refresh() {
	if s.storage == nil {
		return
	}
	if entry := s.storage.getSingletonEntry(reflect.TypeFor[T]()); entry != nil {
		s.ptr = entry.value.Interface().(*T)
	}
}

// Get returns the singleton, or nil if the storage has none.
func (s *Singleton[T]) Get() *T {
	if s.ptr == nil {
		s.refresh()
	}
	return s.ptr
}

func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}
