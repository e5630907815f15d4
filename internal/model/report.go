package model

// Outcome describes what happened to one source unit.
type Outcome int

const (
	// Written indicates a new output file was created.
	Written Outcome = iota
	// SkippedExisting indicates the output file already existed and was left untouched.
	SkippedExisting
	// SkippedNoAccessors indicates the class exposes no accessors.
	SkippedNoAccessors
	// Failed indicates an I/O error aborted the unit.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Written:
		return "written"
	case SkippedExisting:
		return "skipped-existing"
	case SkippedNoAccessors:
		return "skipped-no-accessors"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Report is the result of processing one source unit.
type Report struct {
	Source    Path
	Target    Path
	ClassName string
	Outcome   Outcome
	Accessors int
	Mutators  int
	Err       error
}

// Summary aggregates reports of a whole run.
type Summary struct {
	Written            int
	SkippedExisting    int
	SkippedNoAccessors int
	Failed             int
}

// Add counts a report.
func (s *Summary) Add(report Report) {
	switch report.Outcome {
	case Written:
		s.Written++
	case SkippedExisting:
		s.SkippedExisting++
	case SkippedNoAccessors:
		s.SkippedNoAccessors++
	case Failed:
		s.Failed++
	}
}

// Total returns the number of processed units.
func (s Summary) Total() int {
	return s.Written + s.SkippedExisting + s.SkippedNoAccessors + s.Failed
}

// Listing describes one detected class for dry-run output.
type Listing struct {
	Source    Path     `yaml:"source"`
	ClassName string   `yaml:"class"`
	Accessors []string `yaml:"accessors"`
	Mutators  []string `yaml:"mutators,omitempty"`
}
