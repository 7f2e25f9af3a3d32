package treasure

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-keeper/internal/clock"
	"github.com/KirkDiggler/rpg-keeper/internal/domain/rulebook"
	"github.com/KirkDiggler/rpg-keeper/internal/domain/treasure"
	"github.com/KirkDiggler/rpg-keeper/internal/repositories/vault"
	"github.com/KirkDiggler/rpg-keeper/internal/uuid"
	"go.uber.org/zap"
)

// Service defines the treasure service interface
type Service interface {
	// Generate draws a draft item for a system; drafts are never stored
	Generate(systemID, rarity, itemType string) (*treasure.Item, error)

	// AddToVault stores a draft under a fresh id
	AddToVault(ctx context.Context, item *treasure.Item) (*treasure.Item, error)

	// CreateCustom stores a hand made item
	CreateCustom(ctx context.Context, input *CustomItemInput) (*treasure.Item, error)

	// Get retrieves a vault item by ID
	Get(ctx context.Context, itemID string) (*treasure.Item, error)

	// Delete removes a vault item
	Delete(ctx context.Context, itemID string) error

	// ListBySystem returns the vault items of one system, or all of them
	ListBySystem(ctx context.Context, systemID string) ([]*treasure.Item, error)

	// Search filters the vault
	Search(ctx context.Context, query treasure.SearchQuery) ([]*treasure.Item, error)

	// Categories counts vault items per display category
	Categories(ctx context.Context, systemID string) ([]treasure.Category, error)

	// RarityColor is the display color of a rarity in a system
	RarityColor(systemID, rarity string) string

	// Rarities lists a system's rarity ladder
	Rarities(systemID string) []string

	// FormatValue renders a value in its currency
	FormatValue(value int, currency string) string

	// Export renders the vault items of one system, or all of them, as a JSON array
	Export(ctx context.Context, systemID string) ([]byte, error)

	// Import stores exported items under fresh ids
	Import(ctx context.Context, data []byte) ([]*treasure.Item, error)
}

// CustomItemInput contains data for a hand made item. Currency is taken from
// the system.
type CustomItemInput struct {
	Name            string
	Type            string
	SystemID        string
	Rarity          string
	Value           int
	Description     string
	FullDescription string
	Attunement      bool
	Properties      []string
	Tags            []string
}

type service struct {
	catalog       *rulebook.Catalog
	repository    vault.Repository
	random        *lockedRandomizer
	uuidGenerator uuid.Generator
	timeProvider  clock.TimeProvider
	logger        *zap.Logger
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository    vault.Repository    // Required
	Catalog       *rulebook.Catalog   // Optional, defaults to the embedded catalog
	Randomizer    treasure.Randomizer // Optional, defaults to a time seeded source
	UUIDGenerator uuid.Generator      // Optional
	TimeProvider  clock.TimeProvider  // Optional
	Logger        *zap.Logger         // Optional
}

// NewService creates a new treasure service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("config is required")
	}
	if cfg.Repository == nil {
		panic("repository is required")
	}

	svc := &service{
		catalog:       cfg.Catalog,
		repository:    cfg.Repository,
		uuidGenerator: cfg.UUIDGenerator,
		timeProvider:  cfg.TimeProvider,
		logger:        cfg.Logger,
	}
	if svc.catalog == nil {
		svc.catalog = rulebook.Default()
	}

	rnd := cfg.Randomizer
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	svc.random = &lockedRandomizer{rnd: rnd}

	if svc.uuidGenerator == nil {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}
	if svc.timeProvider == nil {
		svc.timeProvider = clock.New()
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}

	return svc
}

// lockedRandomizer serializes access to a source that is not safe for
// concurrent use
type lockedRandomizer struct {
	mu  sync.Mutex
	rnd treasure.Randomizer
}

func (l *lockedRandomizer) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rnd.Intn(n)
}

func (l *lockedRandomizer) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rnd.Float64()
}

func (s *service) RarityColor(systemID, rarity string) string {
	sys, _ := s.catalog.GetSystem(systemID)
	return treasure.RarityColor(sys, rarity)
}

func (s *service) Rarities(systemID string) []string {
	sys, _ := s.catalog.GetSystem(systemID)
	return treasure.Rarities(sys)
}

func (s *service) FormatValue(value int, currency string) string {
	return treasure.FormatValue(value, currency)
}
