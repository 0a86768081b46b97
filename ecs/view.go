package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// View reads entities through a struct of component pointers. Embedded
// fields are required; named fields tagged `ecs:"optional"` are nil when the
// entity lacks that component. A field of type EntityId receives the ID.
type View[T any] struct {
	storage     *Storage
	idOffset    []uintptr
	types       []reflect.Type
	optional    []bool
	fieldOffset []uintptr
}

func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{storage: storage}
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if field.Type == reflect.TypeFor[EntityId]() {
			v.idOffset = append(v.idOffset, field.Offset)
			continue
		}
		if field.Type.Kind() != reflect.Pointer {
			panic("View struct fields must be pointer types")
		}

		isOptional := false
		if tag := field.Tag.Get("ecs"); tag != "" && !field.Anonymous {
			if tag != "optional" {
				panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
			isOptional = true
		}

		v.types = append(v.types, field.Type.Elem())
		v.optional = append(v.optional, isOptional)
		v.fieldOffset = append(v.fieldOffset, field.Offset)
	}
	return v
}

// Fill points the fields of ptr at the entity's components. It returns false
// when a required component is missing.
func (v *View[T]) Fill(id EntityId, ptr *T) bool {
	archetype, ok := v.storage.archetypes[id.ArchetypeId()]
	if !ok {
		return false
	}
	return v.populate(unsafe.Pointer(ptr), archetype, id, v.storageIndices(archetype))
}

// Get returns the filled view for id, or nil.
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

func (v *View[T]) matches(archetype *Archetype) bool {
	for i, t := range v.types {
		if !v.optional[i] && !archetype.HasComponent(t) {
			return false
		}
	}
	return true
}

func (v *View[T]) storageIndices(archetype *Archetype) []int {
	indices := make([]int, len(v.types))
	for i, t := range v.types {
		indices[i] = archetype.column(t)
	}
	return indices
}

func (v *View[T]) populate(resultPtr unsafe.Pointer, archetype *Archetype, id EntityId, indices []int) bool {
	index := int(id.Index())
	for _, offset := range v.idOffset {
		*(*EntityId)(unsafe.Pointer(uintptr(resultPtr) + offset)) = id
	}
	for i, col := range indices {
		fieldPtr := unsafe.Pointer(uintptr(resultPtr) + v.fieldOffset[i])

		var component any
		if col >= 0 {
			component = archetype.stores[col].Get(index)
		}
		if component == nil {
			if !v.optional[i] {
				return false
			}
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}
		*(*unsafe.Pointer)(fieldPtr) = (*iface)(unsafe.Pointer(&component)).data
	}
	return true
}

func (v *View[T]) iterArchetype(archetype *Archetype) iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		indices := v.storageIndices(archetype)
		for id := range archetype.Iter() {
			var result T
			if !v.populate(unsafe.Pointer(&result), archetype, id, indices) {
				continue
			}
			if !yield(id, result) {
				return
			}
		}
	}
}

// Iter yields every matching entity, in no particular order.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for _, archetype := range v.storage.archetypes {
			if !v.matches(archetype) {
				continue
			}
			for id, item := range v.iterArchetype(archetype) {
				if !yield(id, item) {
					return
				}
			}
		}
	}
}
