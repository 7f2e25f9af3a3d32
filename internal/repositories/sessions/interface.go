package sessions

import (
	"context"

	"github.com/KirkDiggler/rpg-keeper/internal/domain/campaign"
)

// Repository defines the interface for session persistence
type Repository interface {
	// Create stores a new session
	Create(ctx context.Context, session *campaign.Session) error

	// Get retrieves a session by ID
	Get(ctx context.Context, id string) (*campaign.Session, error)

	// Update replaces an existing session
	Update(ctx context.Context, session *campaign.Session) error

	// Delete removes a session
	Delete(ctx context.Context, id string) error

	// List returns every session in creation order
	List(ctx context.Context) ([]*campaign.Session, error)

	// ListByCampaign returns the sessions filed under campaignID
	ListByCampaign(ctx context.Context, campaignID string) ([]*campaign.Session, error)

	// Replace drops every stored session and stores the given ones
	Replace(ctx context.Context, all []*campaign.Session) error
}
