// Package domain contains the extraction, rendering and generation workflow.
package domain

import (
	"errors"
	"regexp"
	"strings"

	m "propgen.dev/pkg/propgen/internal/model"
)

const (
	mutatorPrefix    = "set"
	signatureOpening = " {"
)

// ErrInvalidExtractorConfig is returned when the extractor cannot be built from its configuration.
var ErrInvalidExtractorConfig = errors.New("invalid extractor config")

// Extractor finds accessor and mutator signatures in the raw text of one class.
// It never fails: signatures that cannot be decomposed are dropped.
type Extractor interface {
	Extract(unit m.SourceUnit) m.ClassSpec
}

// ExtractorConfig holds the literal token sets the extractor matches against.
type ExtractorConfig struct {
	// AccessorPrefixes are the read method prefixes, e.g. "get".
	AccessorPrefixes []string
	// ReservedSignatures are accessor signatures never turned into properties, e.g. "isCancelled()".
	ReservedSignatures []string
	// CoercionTypes are the parameter types a mutator may declare.
	CoercionTypes []m.CoercionType
}

// DefaultExtractorConfig returns the prefixes, reserved event signatures and
// coercion types of the Bukkit event convention.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		AccessorPrefixes:   []string{"get", "is", "has", "can"},
		ReservedSignatures: []string{"isCancelled()", "getHandlers()", "getHandlerList()"},
		CoercionTypes:      m.DefaultCoercionTypes(),
	}
}

type regexExtractor struct {
	accessorPattern *regexp.Regexp
	mutatorPattern  *regexp.Regexp
	prefixes        []string
	reserved        map[string]struct{}
	coercions       map[m.CoercionType]struct{}
}

// NewExtractor builds an Extractor matching the fixed lexical shapes
// `<prefix>Name() {` and `setName(<Type>[ param]) {`.
func NewExtractor(cfg ExtractorConfig) (Extractor, error) {
	if len(cfg.AccessorPrefixes) == 0 {
		return nil, errors.Join(ErrInvalidExtractorConfig, errors.New("no accessor prefixes"))
	}

	if len(cfg.CoercionTypes) == 0 {
		return nil, errors.Join(ErrInvalidExtractorConfig, errors.New("no coercion types"))
	}

	prefixes := make([]string, 0, len(cfg.AccessorPrefixes))
	for _, prefix := range cfg.AccessorPrefixes {
		if prefix == "" {
			return nil, errors.Join(ErrInvalidExtractorConfig, errors.New("empty accessor prefix"))
		}

		prefixes = append(prefixes, prefix)
	}

	coercions := make(map[m.CoercionType]struct{}, len(cfg.CoercionTypes))
	typeTokens := make([]string, 0, len(cfg.CoercionTypes))

	for _, coercion := range cfg.CoercionTypes {
		if coercion == "" {
			return nil, errors.Join(ErrInvalidExtractorConfig, errors.New("empty coercion type"))
		}

		coercions[coercion] = struct{}{}
		typeTokens = append(typeTokens, regexp.QuoteMeta(string(coercion)))
	}

	reserved := make(map[string]struct{}, len(cfg.ReservedSignatures))
	for _, signature := range cfg.ReservedSignatures {
		reserved[signature] = struct{}{}
	}

	accessorPattern, err := regexp.Compile(`(` + quoteAll(prefixes) + `)[A-Z][a-zA-Z]*\(\) \{`)
	if err != nil {
		return nil, errors.Join(ErrInvalidExtractorConfig, err)
	}

	mutatorPattern, err := regexp.Compile(
		mutatorPrefix + `[A-Z][a-zA-Z]*\((?:` + strings.Join(typeTokens, "|") + `)(?: [A-Za-z_][A-Za-z0-9_]*)?\) \{`,
	)
	if err != nil {
		return nil, errors.Join(ErrInvalidExtractorConfig, err)
	}

	return &regexExtractor{
		accessorPattern: accessorPattern,
		mutatorPattern:  mutatorPattern,
		prefixes:        prefixes,
		reserved:        reserved,
		coercions:       coercions,
	}, nil
}

func quoteAll(tokens []string) string {
	quoted := make([]string, 0, len(tokens))
	for _, token := range tokens {
		quoted = append(quoted, regexp.QuoteMeta(token))
	}

	return strings.Join(quoted, "|")
}

func (e *regexExtractor) Extract(unit m.SourceUnit) m.ClassSpec {
	text := unit.Text()

	return m.ClassSpec{
		ClassName: unit.ClassName,
		Accessors: e.accessors(text),
		Mutators:  e.mutators(text),
	}
}

func (e *regexExtractor) accessors(text string) []m.Accessor {
	var accessors []m.Accessor

	for _, match := range e.accessorPattern.FindAllString(text, -1) {
		signature := strings.TrimSuffix(match, signatureOpening)
		if _, ok := e.reserved[signature]; ok {
			continue
		}

		name, ok := e.accessorName(signature)
		if !ok {
			continue
		}

		accessors = append(accessors, m.Accessor{Signature: signature, Name: name})
	}

	return accessors
}

// accessorName strips the longest matching prefix and the trailing "()".
func (e *regexExtractor) accessorName(signature string) (string, bool) {
	prefix := ""

	for _, candidate := range e.prefixes {
		if strings.HasPrefix(signature, candidate) && len(candidate) > len(prefix) {
			prefix = candidate
		}
	}

	if prefix == "" {
		return "", false
	}

	rest := strings.TrimSuffix(strings.TrimPrefix(signature, prefix), "()")
	if rest == "" {
		return "", false
	}

	return lowerFirst(rest), true
}

func (e *regexExtractor) mutators(text string) *m.MutatorSet {
	mutators := m.NewMutatorSet()

	for _, match := range e.mutatorPattern.FindAllString(text, -1) {
		mutator, ok := e.decomposeMutator(match)
		if !ok {
			continue
		}

		mutators.Put(mutator)
	}

	return mutators
}

// decomposeMutator splits `setName(Type[ param]) {` into its type token and
// `setName` token. Anything that does not yield exactly those two parts is rejected.
func (e *regexExtractor) decomposeMutator(match string) (m.Mutator, bool) {
	signature := strings.TrimSuffix(match, signatureOpening)

	head, params, found := strings.Cut(strings.TrimSuffix(signature, ")"), "(")
	if !found || !strings.HasPrefix(head, mutatorPrefix) {
		return m.Mutator{}, false
	}

	fields := strings.Fields(params)
	if len(fields) == 0 || len(fields) > 2 {
		return m.Mutator{}, false
	}

	coercion := m.CoercionType(fields[0])
	if _, ok := e.coercions[coercion]; !ok {
		return m.Mutator{}, false
	}

	name := strings.TrimPrefix(head, mutatorPrefix)
	if name == "" {
		return m.Mutator{}, false
	}

	return m.Mutator{
		Signature: signature,
		Type:      coercion,
		Name:      lowerFirst(name),
	}, true
}
