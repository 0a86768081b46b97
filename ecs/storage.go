package ecs

import (
	"reflect"
	"sort"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// iface is the memory layout of an interface value.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

// typeKey identifies a reflect.Type by its runtime type pointer.
type typeKey uint64

func keyOf(t reflect.Type) typeKey {
	return typeKey(uintptr((*iface)(unsafe.Pointer(&t)).data))
}

type singletonEntry struct {
	typ reflect.Type
	// value is a pointer to the stored component.
	value reflect.Value
}

// Storage holds entities grouped into archetypes plus singleton components
// that belong to no entity.
type Storage struct {
	archetypes map[uint32]*Archetype
	registry   *ComponentRegistry

	singletons     *intmap.Map[typeKey, *singletonEntry]
	singletonOrder []reflect.Type
}

func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: make(map[uint32]*Archetype),
		registry:   registry,
		singletons: intmap.New[typeKey, *singletonEntry](16),
	}
}

// Spawn creates an entity with the given components and returns its ID.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	types := extractComponentTypes(components)
	id := hashTypesToUint32(types)

	archetype, ok := s.archetypes[id]
	if !ok {
		archetype = newArchetype(id, types, s.registry)
		s.archetypes[id] = archetype
	}
	return NewEntityId(id, archetype.spawn(components))
}

// Delete removes the entity. Deleting a dead entity does nothing.
func (s *Storage) Delete(id EntityId) {
	if archetype, ok := s.archetypes[id.ArchetypeId()]; ok {
		archetype.delete(id.Index())
	}
}

// Alive reports whether id refers to a live entity.
func (s *Storage) Alive(id EntityId) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok || len(archetype.stores) == 0 {
		return false
	}
	return archetype.stores[0].Get(int(id.Index())) != nil
}

// GetComponent returns a pointer to the entity's component of type t, or nil.
func (s *Storage) GetComponent(id EntityId, t reflect.Type) any {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return nil
	}
	return archetype.GetComponent(id.Index(), t)
}

func (s *Storage) HasComponent(id EntityId, t reflect.Type) bool {
	return s.GetComponent(id, t) != nil
}

// ReadComponent returns the entity's T component, or nil.
func ReadComponent[T any](s *Storage, id EntityId) *T {
	c, _ := s.GetComponent(id, reflect.TypeFor[T]()).(*T)
	return c
}

// AddSingleton stores value as the singleton of its type, replacing the
// current value in place so existing Singleton accessors stay valid.
func (s *Storage) AddSingleton(value any) {
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}

	if entry := s.getSingletonEntry(v.Type()); entry != nil {
		entry.value.Elem().Set(v)
		return
	}

	ptr := reflect.New(v.Type())
	ptr.Elem().Set(v)
	s.singletons.Put(keyOf(v.Type()), &singletonEntry{typ: v.Type(), value: ptr})
	s.singletonOrder = append(s.singletonOrder, v.Type())
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	entry, _ := s.singletons.Get(keyOf(t))
	return entry
}

// StorageStats summarizes the contents of a Storage.
type StorageStats struct {
	EntityCount    int
	ArchetypeCount int
	SingletonCount int
	Archetypes     []ArchetypeStats
	SingletonTypes []string
}

type ArchetypeStats struct {
	ID          uint32
	Components  []string
	EntityCount int
}

// Stats collects entity counts per archetype, ordered by archetype ID.
func (s *Storage) Stats() StorageStats {
	stats := StorageStats{
		ArchetypeCount: len(s.archetypes),
		SingletonCount: s.singletons.Len(),
	}
	for id, a := range s.archetypes {
		names := make([]string, len(a.types))
		for i, t := range a.types {
			names[i] = t.String()
		}
		stats.Archetypes = append(stats.Archetypes, ArchetypeStats{ID: id, Components: names, EntityCount: a.Len()})
		stats.EntityCount += a.Len()
	}
	sort.Slice(stats.Archetypes, func(i, j int) bool { return stats.Archetypes[i].ID < stats.Archetypes[j].ID })
	for _, t := range s.singletonOrder {
		stats.SingletonTypes = append(stats.SingletonTypes, t.String())
	}
	return stats
}

func componentType(comp any) reflect.Type {
	t := reflect.TypeOf(comp)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// extractComponentTypes returns the sorted component types of components.
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		t := componentType(comp)
		switch t.Kind() {
		case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func:
			panic("components cannot be pointers, maps, channels, or functions")
		}
		types = append(types, t)
	}
	sort.Sort(byTypeName(types))
	return types
}

// hashTypesToUint32 is FNV-1a over the runtime type pointers of sorted types.
func hashTypesToUint32(types []reflect.Type) uint32 {
	var h uint32 = 2166136261
	const prime uint32 = 16777619

	for _, t := range types {
		k := uint64(keyOf(t))
		h ^= uint32(k) ^ uint32(k>>32)
		h *= prime
	}
	return h
}
