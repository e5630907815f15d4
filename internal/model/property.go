package model

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// CoercionType labels the declared parameter type of a mutator. It selects the
// value conversion routine used by the generated write dispatch.
type CoercionType string

const (
	CoercionBoolean CoercionType = "Boolean"
	CoercionShort   CoercionType = "Short"
	CoercionInt     CoercionType = "Int"
	CoercionLong    CoercionType = "Long"
	CoercionFloat   CoercionType = "Float"
	CoercionDouble  CoercionType = "Double"
	CoercionList    CoercionType = "List"
)

// DefaultCoercionTypes returns the closed set of recognised mutator parameter types.
func DefaultCoercionTypes() []CoercionType {
	return []CoercionType{
		CoercionBoolean,
		CoercionShort,
		CoercionInt,
		CoercionLong,
		CoercionFloat,
		CoercionDouble,
		CoercionList,
	}
}

// Accessor is one recognised read method.
type Accessor struct {
	Signature string // e.g. "isOnline()"
	Name      string // e.g. "online"
}

// Mutator is one recognised write method.
type Mutator struct {
	Signature string
	Type      CoercionType
	Name      string
}

// MutatorSet holds mutators keyed by coercion type. A later mutator with the
// same type replaces the earlier one but keeps its original position.
type MutatorSet struct {
	entries *orderedmap.OrderedMap[CoercionType, Mutator]
}

// NewMutatorSet returns an empty set.
func NewMutatorSet() *MutatorSet {
	return &MutatorSet{entries: orderedmap.New[CoercionType, Mutator]()}
}

// Put records mutator under its type and reports whether an entry was replaced.
func (s *MutatorSet) Put(mutator Mutator) bool {
	if s.entries == nil {
		s.entries = orderedmap.New[CoercionType, Mutator]()
	}

	_, replaced := s.entries.Set(mutator.Type, mutator)

	return replaced
}

// Get returns the mutator recorded for the type.
func (s *MutatorSet) Get(coercion CoercionType) (Mutator, bool) {
	if s == nil || s.entries == nil {
		return Mutator{}, false
	}

	return s.entries.Get(coercion)
}

// Len returns the number of surviving entries.
func (s *MutatorSet) Len() int {
	if s == nil || s.entries == nil {
		return 0
	}

	return s.entries.Len()
}

// Entries returns the mutators in insertion order.
func (s *MutatorSet) Entries() []Mutator {
	if s == nil || s.entries == nil {
		return nil
	}

	out := make([]Mutator, 0, s.entries.Len())
	for pair := s.entries.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}

	return out
}
