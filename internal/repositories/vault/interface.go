package vault

import (
	"context"

	"github.com/KirkDiggler/rpg-keeper/internal/domain/treasure"
)

// Repository defines the interface for treasure vault persistence
type Repository interface {
	// Create stores a new vault item
	Create(ctx context.Context, item *treasure.Item) error

	// Get retrieves a vault item by ID
	Get(ctx context.Context, id string) (*treasure.Item, error)

	// Update replaces an existing vault item
	Update(ctx context.Context, item *treasure.Item) error

	// Delete removes a vault item
	Delete(ctx context.Context, id string) error

	// List returns every vault item in creation order
	List(ctx context.Context) ([]*treasure.Item, error)

	// ListBySystem returns the vault items filed under systemID
	ListBySystem(ctx context.Context, systemID string) ([]*treasure.Item, error)

	// Replace drops every stored vault item and stores the given ones
	Replace(ctx context.Context, all []*treasure.Item) error
}
