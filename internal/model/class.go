package model

// ClassSpec is everything extracted from one SourceUnit.
type ClassSpec struct {
	ClassName string
	Accessors []Accessor
	Mutators  *MutatorSet
}

// HasAccessors reports whether the class produces a generated unit.
func (c ClassSpec) HasAccessors() bool {
	return len(c.Accessors) > 0
}

// AccessorNames returns accessor property names in appearance order, duplicates included.
func (c ClassSpec) AccessorNames() []string {
	names := make([]string, 0, len(c.Accessors))
	for _, accessor := range c.Accessors {
		names = append(names, accessor.Name)
	}

	return names
}

// MutatorNames returns the surviving mutator property names in insertion order.
func (c ClassSpec) MutatorNames() []string {
	entries := c.Mutators.Entries()

	names := make([]string, 0, len(entries))
	for _, mutator := range entries {
		names = append(names, mutator.Name)
	}

	return names
}

// GeneratedUnit is one rendered output file.
type GeneratedUnit struct {
	Source    Path
	Target    Path
	ClassName string
	Content   []byte
}
