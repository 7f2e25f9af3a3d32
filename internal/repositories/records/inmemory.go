package records

import (
	"context"
	"sync"

	dnderr "github.com/KirkDiggler/rpg-keeper/internal/errors"
)

// InMemory is a Store kept in process memory. Records are cloned on the way
// in and out so callers never share state with the store.
type InMemory[T Record[T]] struct {
	mu      sync.RWMutex
	cfg     Config[T]
	records map[string]T
	order   []string
}

// NewInMemory creates an empty in-memory store
func NewInMemory[T Record[T]](cfg Config[T]) *InMemory[T] {
	return &InMemory[T]{
		cfg:     cfg,
		records: make(map[string]T),
	}
}

func (s *InMemory[T]) idKey() string {
	return s.cfg.Kind + "_id"
}

func (s *InMemory[T]) checkRecord(rec T) error {
	if isNil(rec) {
		return dnderr.InvalidArgumentf("%s cannot be nil", s.cfg.Kind)
	}
	if rec.GetID() == "" {
		return dnderr.InvalidArgumentf("%s ID is required", s.cfg.Kind)
	}
	return nil
}

func (s *InMemory[T]) Create(_ context.Context, rec T) error {
	if err := s.checkRecord(rec); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := rec.GetID()
	if _, exists := s.records[id]; exists {
		return dnderr.AlreadyExistsf("%s with ID '%s' already exists", s.cfg.Kind, id).
			WithMeta(s.idKey(), id)
	}

	s.records[id] = rec.Clone()
	s.order = append(s.order, id)
	return nil
}

func (s *InMemory[T]) Get(_ context.Context, id string) (T, error) {
	var zero T
	if id == "" {
		return zero, dnderr.InvalidArgumentf("%s ID is required", s.cfg.Kind)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, exists := s.records[id]
	if !exists {
		return zero, dnderr.NotFoundf("%s with ID '%s' not found", s.cfg.Kind, id).
			WithMeta(s.idKey(), id)
	}
	return rec.Clone(), nil
}

func (s *InMemory[T]) Update(_ context.Context, rec T) error {
	if err := s.checkRecord(rec); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := rec.GetID()
	if _, exists := s.records[id]; !exists {
		return dnderr.NotFoundf("%s with ID '%s' not found", s.cfg.Kind, id).
			WithMeta(s.idKey(), id)
	}
	s.records[id] = rec.Clone()
	return nil
}

func (s *InMemory[T]) Delete(_ context.Context, id string) error {
	if id == "" {
		return dnderr.InvalidArgumentf("%s ID is required", s.cfg.Kind)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[id]; !exists {
		return dnderr.NotFoundf("%s with ID '%s' not found", s.cfg.Kind, id).
			WithMeta(s.idKey(), id)
	}
	delete(s.records, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *InMemory[T]) List(_ context.Context) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.records[id].Clone())
	}
	return out, nil
}

func (s *InMemory[T]) ListBy(_ context.Context, index, value string) ([]T, error) {
	idx, ok := s.cfg.index(index)
	if !ok {
		return nil, dnderr.InvalidArgumentf("%s has no index '%s'", s.cfg.Kind, index)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0)
	for _, id := range s.order {
		rec := s.records[id]
		if idx.Key(rec) == value {
			out = append(out, rec.Clone())
		}
	}
	return out, nil
}

func (s *InMemory[T]) Replace(_ context.Context, recs []T) error {
	records := make(map[string]T, len(recs))
	order := make([]string, 0, len(recs))
	for _, rec := range recs {
		if err := s.checkRecord(rec); err != nil {
			return err
		}
		id := rec.GetID()
		if _, dup := records[id]; dup {
			return dnderr.AlreadyExistsf("%s with ID '%s' already exists", s.cfg.Kind, id).
				WithMeta(s.idKey(), id)
		}
		records[id] = rec.Clone()
		order = append(order, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = records
	s.order = order
	return nil
}
