package store

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("store: document not found")
	ErrDuplicate = errors.New("store: duplicate key")
)

// Document is implemented by *models.Model and therefore by every model that
// embeds it.
type Document interface {
	GetID() string
	SetID(id string)
	Touch(now time.Time)
}

type docPtr[T any] interface {
	*T
	Document
}

type SortField struct {
	Field string
	Desc  bool
}

type FindOptions struct {
	Filter Predicate
	Sort   []SortField
	Skip   int64
	// Limit <= 0 means no limit.
	Limit int64
	// Fields restricts the returned fields; the id is always included.
	Fields []string
}

// Collection is the persistence contract the services depend on.
type Collection[T any] interface {
	Find(ctx context.Context, opts FindOptions) ([]T, error)
	FindOne(ctx context.Context, filter Predicate) (*T, error)
	FindByID(ctx context.Context, id string) (*T, error)
	Count(ctx context.Context, filter Predicate) (int64, error)
	// Insert assigns an id when the document has none and stamps timestamps.
	Insert(ctx context.Context, doc *T) error
	// Update replaces the stored document with the same id.
	Update(ctx context.Context, doc *T) error
	Delete(ctx context.Context, id string) error
}
