// Package records holds the flat collection stores every entity repository
// is built on. Each collection keeps insertion order and may declare
// secondary indexes that are kept in step with writes.
package records

import "context"

// Record is an entity a Store can hold. Clone must return a copy that shares
// no mutable state with the receiver.
type Record[T any] interface {
	GetID() string
	Clone() T
}

// Index is a named secondary lookup. Key returns "" for records that should
// not be indexed.
type Index[T any] struct {
	Name string
	Key  func(T) string
}

// Store defines the persistence operations shared by every collection
type Store[T Record[T]] interface {
	// Create stores a new record; the id must be set and unused
	Create(ctx context.Context, rec T) error

	// Get retrieves a record by ID
	Get(ctx context.Context, id string) (T, error)

	// Update replaces an existing record
	Update(ctx context.Context, rec T) error

	// Delete removes a record
	Delete(ctx context.Context, id string) error

	// List returns every record in insertion order
	List(ctx context.Context) ([]T, error)

	// ListBy returns records whose index key equals value, in insertion order
	ListBy(ctx context.Context, index, value string) ([]T, error)

	// Replace drops the collection and stores recs in their place
	Replace(ctx context.Context, recs []T) error
}

// Config describes a collection
type Config[T any] struct {
	// Kind is the singular record name, used in keys and error messages
	Kind string

	Indexes []Index[T]
}

func (c *Config[T]) index(name string) (Index[T], bool) {
	for _, idx := range c.Indexes {
		if idx.Name == name {
			return idx, true
		}
	}
	return Index[T]{}, false
}
