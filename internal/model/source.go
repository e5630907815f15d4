// Package model defines the data structures shared by the property generator.
package model

// Path represents a file system path.
type Path string

// SourceUnit is one input file: the class it declares and its raw text.
type SourceUnit struct {
	Path      Path
	ClassName string
	Content   []byte
}

// Text returns the raw contents as a string.
func (s SourceUnit) Text() string {
	return string(s.Content)
}
