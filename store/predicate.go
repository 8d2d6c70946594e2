// Package store holds the persistence layer: a small predicate language and a
// generic Collection with MongoDB, GORM and in-memory backends.
package store

// Predicate is a backend-neutral filter. Field names are the bson names of the
// model fields; the GORM backend maps them to column names.
type Predicate interface {
	predicate()
}

// Eq matches documents whose Field equals Value. A nil Value matches a missing
// or null field.
type Eq struct {
	Field string
	Value any
}

// In matches documents whose Field equals one of Values.
type In struct {
	Field  string
	Values []any
}

// Range is an inclusive numeric range. A nil bound is open.
type Range struct {
	Field string
	Gte   *float64
	Lte   *float64
}

// And matches when every predicate matches. An empty And matches everything.
type And []Predicate

// Or matches when any predicate matches. An empty Or matches nothing.
type Or []Predicate

// Nothing matches no document.
type Nothing struct{}

func (Eq) predicate()      {}
func (In) predicate()      {}
func (Range) predicate()   {}
func (And) predicate()     {}
func (Or) predicate()      {}
func (Nothing) predicate() {}

// All matches every document.
func All() Predicate {
	return And{}
}

func ByID(id string) Predicate {
	return Eq{Field: "_id", Value: id}
}

// Strings converts a string slice into the []any an In predicate expects.
func Strings(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// Float returns a pointer to f, for Range bounds.
func Float(f float64) *float64 {
	return &f
}
