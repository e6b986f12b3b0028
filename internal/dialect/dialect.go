// Package dialect implements the per-bank description classifiers.
//
// Each bank encodes counterparty, origin account, reference and free-text
// comment inside one unstructured string, with its own delimiters and
// conventions. A dialect is an ordered list of (predicate, extractor)
// rules evaluated top to bottom; the first match wins and every input
// falls through to the dialect's default category, so classification is
// total and never returns an error.
package dialect

import (
	"regexp"
	"strings"

	"conciliador/internal/core"
)

// Dialect classifies raw statement descriptions for one bank.
type Dialect interface {
	// Name is the lowercase identifier used to select the dialect.
	Name() string
	// Classify is pure: same description in, byte-identical fields out.
	Classify(description string) core.ClassifiedFields
	// DocumentTypes is the closed set of categories this dialect emits.
	DocumentTypes() []core.DocumentType
}

// rule pairs a predicate with its field extractor. Rules never overlap in
// practice; when two literals coincide the earlier rule wins, and tests
// pin that ordering.
type rule struct {
	name    string
	match   func(desc string) bool
	extract func(desc string) core.ClassifiedFields
}

// ruleSet is the shared first-match-wins engine. The rules themselves are
// dialect-private: field positions and delimiter semantics differ per
// bank even when surface patterns look alike.
type ruleSet struct {
	name     string
	rules    []rule
	fallback core.DocumentType
	docTypes []core.DocumentType
}

func (s *ruleSet) Name() string { return s.name }

func (s *ruleSet) DocumentTypes() []core.DocumentType {
	out := make([]core.DocumentType, len(s.docTypes))
	copy(out, s.docTypes)
	return out
}

func (s *ruleSet) Classify(description string) core.ClassifiedFields {
	desc := strings.TrimSpace(description)
	for _, r := range s.rules {
		if r.match(desc) {
			return normalizeComment(r.extract(desc))
		}
	}
	return normalizeComment(core.ClassifiedFields{
		DocumentType: s.fallback,
		Comment:      desc,
	})
}

var leadingDigitsRe = regexp.MustCompile(`^[\d\s]+`)

// normalizeComment strips a leading run of digits and whitespace from the
// comment. These are leftover positional artifacts of the source format,
// not semantic content.
func normalizeComment(cf core.ClassifiedFields) core.ClassifiedFields {
	if cf.Comment != "" {
		cf.Comment = strings.TrimSpace(leadingDigitsRe.ReplaceAllString(cf.Comment, ""))
	}
	return cf
}

// Registry holds named dialects.
type Registry struct {
	dialects map[string]Dialect
}

// NewRegistry creates an empty dialect registry.
func NewRegistry() *Registry {
	return &Registry{dialects: make(map[string]Dialect)}
}

// Register adds a dialect. Panics on duplicate name.
func (r *Registry) Register(d Dialect) {
	key := strings.ToLower(d.Name())
	if _, ok := r.dialects[key]; ok {
		panic("duplicate dialect: " + key)
	}
	r.dialects[key] = d
}

// Get returns the dialect for name, or nil.
func (r *Registry) Get(name string) Dialect {
	return r.dialects[strings.ToLower(name)]
}

// Names returns the registered dialect names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.dialects))
	for k := range r.dialects {
		names = append(names, k)
	}
	return names
}

// DefaultRegistry returns a registry with all built-in dialects.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewBanregio())
	r.Register(NewBBVA())
	return r
}
