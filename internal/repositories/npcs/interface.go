package npcs

import (
	"context"

	"github.com/KirkDiggler/rpg-keeper/internal/domain/campaign"
)

// Repository defines the interface for NPC persistence
type Repository interface {
	// Create stores a new NPC
	Create(ctx context.Context, npc *campaign.NPC) error

	// Get retrieves an NPC by ID
	Get(ctx context.Context, id string) (*campaign.NPC, error)

	// Update replaces an existing NPC
	Update(ctx context.Context, npc *campaign.NPC) error

	// Delete removes an NPC
	Delete(ctx context.Context, id string) error

	// List returns every NPC in creation order
	List(ctx context.Context) ([]*campaign.NPC, error)

	// ListByCampaign returns the NPCs filed under campaignID
	ListByCampaign(ctx context.Context, campaignID string) ([]*campaign.NPC, error)

	// Replace drops every stored NPC and stores the given ones
	Replace(ctx context.Context, all []*campaign.NPC) error
}
