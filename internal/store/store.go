// Package store holds the in-memory, insertion-ordered resource collection.
// Records live only for the life of the process; identity and ordering are
// the store's own (uuid ids, append order), not a database's.
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"resource-catalog-api/internal/apierr"
)

// FieldValidator is the collaborator-supplied schema check applied to field
// maps before they enter the store.
type FieldValidator func(fields map[string]any) error

// Store is an insertion-ordered collection of records, unique by id. A single
// RWMutex serializes mutations against reads; records handed out are copies,
// so no fine-grained locking is needed.
type Store struct {
	mu       sync.RWMutex
	items    map[string]*Record
	order    []string
	validate FieldValidator
	nowFunc  func() time.Time
}

// New creates an empty store. validate may be nil, in which case any field
// map is accepted.
func New(validate FieldValidator) *Store {
	return &Store{
		items:    make(map[string]*Record),
		order:    make([]string, 0),
		validate: validate,
		nowFunc:  time.Now,
	}
}

func (s *Store) timestamp() string {
	return s.nowFunc().UTC().Format(time.RFC3339)
}

// Create validates fields, stamps a fresh id and created_at, and appends the
// record to the end of the insertion order.
func (s *Store) Create(fields map[string]any) (Record, error) {
	if s.validate != nil {
		if err := s.validate(fields); err != nil {
			return Record{}, err
		}
	}

	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	rec := &Record{
		ID:        uuid.NewString(),
		CreatedAt: s.timestamp(),
		Fields:    copied,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[rec.ID] = rec
	s.order = append(s.order, rec.ID)
	return rec.clone(), nil
}

// Get returns a copy of the record with the given id.
func (s *Store) Get(id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.items[id]
	if !ok {
		return Record{}, apierr.NotFound("resource %q not found", id)
	}
	return rec.clone(), nil
}

// Update shallow-merges partial over the existing record's fields: each
// provided field fully replaces the prior value, omitted fields are left
// untouched. Stamps updated_at; position in the insertion order is preserved.
func (s *Store) Update(id string, partial map[string]any) (Record, error) {
	if s.validate != nil {
		if err := s.validate(partial); err != nil {
			return Record{}, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.items[id]
	if !ok {
		return Record{}, apierr.NotFound("resource %q not found", id)
	}
	for k, v := range partial {
		rec.Fields[k] = v
	}
	rec.UpdatedAt = s.timestamp()
	return rec.clone(), nil
}

// Delete removes the record from the map and the insertion order. Cursors
// that referenced the deleted id degrade to start-from-beginning on the next
// List call.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return apierr.NotFound("resource %q not found", id)
	}
	delete(s.items, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns up to limit records strictly following afterID in insertion
// order. An empty afterID starts from the beginning. An afterID that no
// longer exists also restarts from the beginning: a cursor may reference a
// record deleted since it was issued, and restarting is the documented
// degradation rather than an error.
func (s *Store) List(afterID string, limit int) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := 0
	if afterID != "" {
		for i, id := range s.order {
			if id == afterID {
				start = i + 1
				break
			}
		}
	}

	end := start + limit
	if end > len(s.order) {
		end = len(s.order)
	}
	out := make([]Record, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, s.items[s.order[i]].clone())
	}
	return out
}

// Len returns the number of records currently in the store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
