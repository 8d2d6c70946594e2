package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryCollection keeps documents as encoded BSON so callers never share
// memory with the store. Predicates run through Match, so it behaves like the
// MongoDB backend for everything the services ask of it.
type MemoryCollection[T any, P docPtr[T]] struct {
	mu    sync.RWMutex
	docs  map[string][]byte
	order []string
	clock *monotonicClock
}

func NewMemoryCollection[T any, P docPtr[T]]() *MemoryCollection[T, P] {
	return &MemoryCollection[T, P]{
		docs:  make(map[string][]byte),
		clock: &monotonicClock{},
	}
}

type entry struct {
	id  string
	raw []byte
	doc bson.M
}

func (c *MemoryCollection[T, P]) matching(filter Predicate) ([]entry, error) {
	var out []entry
	for _, id := range c.order {
		raw := c.docs[id]
		var doc bson.M
		if err := bson.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", id, err)
		}
		if Match(filter, doc) {
			out = append(out, entry{id: id, raw: raw, doc: doc})
		}
	}
	return out, nil
}

func (c *MemoryCollection[T, P]) Find(ctx context.Context, opts FindOptions) ([]T, error) {
	c.mu.RLock()
	entries, err := c.matching(opts.Filter)
	c.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	if len(opts.Sort) > 0 {
		sort.SliceStable(entries, func(i, j int) bool {
			for _, s := range opts.Sort {
				a, _ := lookup(entries[i].doc, s.Field)
				b, _ := lookup(entries[j].doc, s.Field)
				if cmp := compare(a, b); cmp != 0 {
					if s.Desc {
						return cmp > 0
					}
					return cmp < 0
				}
			}
			return false
		})
	}

	if opts.Skip > 0 {
		if opts.Skip >= int64(len(entries)) {
			entries = nil
		} else {
			entries = entries[opts.Skip:]
		}
	}
	if opts.Limit > 0 && int64(len(entries)) > opts.Limit {
		entries = entries[:opts.Limit]
	}

	out := make([]T, 0, len(entries))
	for _, e := range entries {
		raw := e.raw
		if len(opts.Fields) > 0 {
			projected := bson.M{"_id": e.doc["_id"]}
			for _, f := range opts.Fields {
				if v, ok := e.doc[f]; ok {
					projected[f] = v
				}
			}
			if raw, err = bson.Marshal(projected); err != nil {
				return nil, err
			}
		}
		var doc T
		if err := bson.Unmarshal(raw, &doc); err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

func (c *MemoryCollection[T, P]) FindOne(ctx context.Context, filter Predicate) (*T, error) {
	docs, err := c.Find(ctx, FindOptions{Filter: filter, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, ErrNotFound
	}
	return &docs[0], nil
}

func (c *MemoryCollection[T, P]) FindByID(ctx context.Context, id string) (*T, error) {
	c.mu.RLock()
	raw, ok := c.docs[id]
	c.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	var doc T
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *MemoryCollection[T, P]) Count(ctx context.Context, filter Predicate) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entries, err := c.matching(filter)
	if err != nil {
		return 0, err
	}
	return int64(len(entries)), nil
}

func (c *MemoryCollection[T, P]) Insert(ctx context.Context, doc *T) error {
	p := P(doc)
	c.mu.Lock()
	defer c.mu.Unlock()

	if p.GetID() == "" {
		p.SetID(primitive.NewObjectID().Hex())
	}
	if _, exists := c.docs[p.GetID()]; exists {
		return ErrDuplicate
	}
	p.Touch(c.clock.now())

	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	c.docs[p.GetID()] = raw
	c.order = append(c.order, p.GetID())
	return nil
}

func (c *MemoryCollection[T, P]) Update(ctx context.Context, doc *T) error {
	p := P(doc)
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.docs[p.GetID()]; !exists {
		return ErrNotFound
	}
	p.Touch(c.clock.now())

	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	c.docs[p.GetID()] = raw
	return nil
}

func (c *MemoryCollection[T, P]) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.docs[id]; !exists {
		return ErrNotFound
	}
	delete(c.docs, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

// monotonicClock hands out strictly increasing millisecond timestamps, the
// precision BSON keeps, so createdAt ordering is deterministic.
type monotonicClock struct {
	mu   sync.Mutex
	last time.Time
}

func (m *monotonicClock) now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := time.Now().UTC().Truncate(time.Millisecond)
	if !t.After(m.last) {
		t = m.last.Add(time.Millisecond)
	}
	m.last = t
	return t
}
