package rules

import (
	"context"

	"github.com/KirkDiggler/rpg-keeper/internal/domain/rules"
)

// Repository defines the interface for rule persistence
type Repository interface {
	// Create stores a new rule
	Create(ctx context.Context, rule *rules.Rule) error

	// Get retrieves a rule by ID
	Get(ctx context.Context, id string) (*rules.Rule, error)

	// Update replaces an existing rule
	Update(ctx context.Context, rule *rules.Rule) error

	// Delete removes a rule
	Delete(ctx context.Context, id string) error

	// List returns every rule in creation order
	List(ctx context.Context) ([]*rules.Rule, error)

	// ListBySystem returns the rules filed under systemID
	ListBySystem(ctx context.Context, systemID string) ([]*rules.Rule, error)

	// Replace drops every stored rule and stores the given ones
	Replace(ctx context.Context, all []*rules.Rule) error
}
