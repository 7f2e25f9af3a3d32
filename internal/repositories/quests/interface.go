package quests

import (
	"context"

	"github.com/KirkDiggler/rpg-keeper/internal/domain/campaign"
)

// Repository defines the interface for quest persistence
type Repository interface {
	// Create stores a new quest
	Create(ctx context.Context, quest *campaign.Quest) error

	// Get retrieves a quest by ID
	Get(ctx context.Context, id string) (*campaign.Quest, error)

	// Update replaces an existing quest
	Update(ctx context.Context, quest *campaign.Quest) error

	// Delete removes a quest
	Delete(ctx context.Context, id string) error

	// List returns every quest in creation order
	List(ctx context.Context) ([]*campaign.Quest, error)

	// ListByCampaign returns the quests filed under campaignID
	ListByCampaign(ctx context.Context, campaignID string) ([]*campaign.Quest, error)

	// Replace drops every stored quest and stores the given ones
	Replace(ctx context.Context, all []*campaign.Quest) error
}
