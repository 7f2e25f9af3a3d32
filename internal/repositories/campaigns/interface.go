package campaigns

import (
	"context"

	"github.com/KirkDiggler/rpg-keeper/internal/domain/campaign"
)

// Repository defines the interface for campaign persistence
type Repository interface {
	// Create stores a new campaign
	Create(ctx context.Context, c *campaign.Campaign) error

	// Get retrieves a campaign by ID
	Get(ctx context.Context, id string) (*campaign.Campaign, error)

	// Update replaces an existing campaign
	Update(ctx context.Context, c *campaign.Campaign) error

	// Delete removes a campaign
	Delete(ctx context.Context, id string) error

	// List returns every campaign in creation order
	List(ctx context.Context) ([]*campaign.Campaign, error)

	// ListBySystem returns the campaigns filed under systemID
	ListBySystem(ctx context.Context, systemID string) ([]*campaign.Campaign, error)

	// Replace drops every stored campaign and stores the given ones
	Replace(ctx context.Context, all []*campaign.Campaign) error
}
