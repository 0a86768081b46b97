package ecs

import (
	"iter"
	"reflect"
	"slices"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }

// Archetype stores every entity with one exact set of component types. Slot
// indices are shared by all of its columns.
type Archetype struct {
	id     uint32
	types  []reflect.Type
	stores []componentStore
}

func newArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:     id,
		types:  types,
		stores: make([]componentStore, len(types)),
	}
	for i, typ := range types {
		factory := registry.factory(typ)
		if factory == nil {
			panic("component type " + typ.String() + " not registered")
		}
		a.stores[i] = factory()
	}
	return a
}

func (a *Archetype) column(t reflect.Type) int {
	return slices.Index(a.types, t)
}

func (a *Archetype) spawn(components []any) uint32 {
	var index int
	for _, comp := range components {
		if col := a.column(componentType(comp)); col >= 0 {
			index = a.stores[col].Append(comp)
		}
	}
	return uint32(index)
}

// GetComponent returns a pointer to the component of type t at index, or nil.
func (a *Archetype) GetComponent(index uint32, t reflect.Type) any {
	col := a.column(t)
	if col < 0 {
		return nil
	}
	return a.stores[col].Get(int(index))
}

func (a *Archetype) delete(index uint32) {
	for _, s := range a.stores {
		s.Delete(int(index))
	}
}

func (a *Archetype) HasComponent(t reflect.Type) bool {
	return a.column(t) >= 0
}

func (a *Archetype) ID() uint32 { return a.id }

// Types returns the sorted component types of the archetype.
func (a *Archetype) Types() []reflect.Type { return a.types }

// Len returns the number of live entities.
func (a *Archetype) Len() int {
	if len(a.stores) == 0 {
		return 0
	}
	return a.stores[0].Len()
}

// Iter yields the ID of every live entity.
func (a *Archetype) Iter() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		if len(a.stores) == 0 {
			return
		}
		for index := range a.stores[0].Iter() {
			if !yield(NewEntityId(a.id, uint32(index))) {
				return
			}
		}
	}
}
