package characters

import (
	"context"

	"github.com/KirkDiggler/rpg-keeper/internal/domain/character"
)

// Repository defines the interface for character persistence
type Repository interface {
	// Create stores a new character
	Create(ctx context.Context, char *character.Character) error

	// Get retrieves a character by ID
	Get(ctx context.Context, id string) (*character.Character, error)

	// Update replaces an existing character
	Update(ctx context.Context, char *character.Character) error

	// Delete removes a character
	Delete(ctx context.Context, id string) error

	// List returns every character in creation order
	List(ctx context.Context) ([]*character.Character, error)

	// ListBySystem returns the characters filed under systemID
	ListBySystem(ctx context.Context, systemID string) ([]*character.Character, error)

	// Replace drops every stored character and stores the given ones
	Replace(ctx context.Context, all []*character.Character) error
}
