package character

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/KirkDiggler/rpg-keeper/internal/clock"
	"github.com/KirkDiggler/rpg-keeper/internal/dice"
	"github.com/KirkDiggler/rpg-keeper/internal/domain/character"
	"github.com/KirkDiggler/rpg-keeper/internal/domain/rulebook"
	dnderr "github.com/KirkDiggler/rpg-keeper/internal/errors"
	"github.com/KirkDiggler/rpg-keeper/internal/repositories/characters"
	"github.com/KirkDiggler/rpg-keeper/internal/uuid"
	"go.uber.org/zap"
)

// Repository is an alias for the character repository interface
type Repository = characters.Repository

// DefaultName is given to characters created without a name
const DefaultName = "New Character"

// Service defines the character service interface
type Service interface {
	// Create builds a character from the system defaults and stores it
	Create(ctx context.Context, input *CreateInput) (*character.Character, error)

	// Get retrieves a character by ID
	Get(ctx context.Context, characterID string) (*character.Character, error)

	// List returns characters of one system, or all of them when systemID is empty
	List(ctx context.Context, systemID string) ([]*character.Character, error)

	// Update stores an edited character after validating it
	Update(ctx context.Context, c *character.Character) (*character.Character, error)

	// Delete removes a character and detaches it from any campaign player
	Delete(ctx context.Context, characterID string) error

	// Validate lists every problem with a draft; empty means valid
	Validate(draft *character.Draft) []string

	// AttributeModifier applies the system's modifier rule to value
	AttributeModifier(systemID, attributeID string, value int) int

	// RollSkillCheck rolls a skill check with the system's mechanic
	RollSkillCheck(systemID string, c *character.Character, skillID string, difficulty *int) (*character.CheckResult, error)

	// Advance applies earned progress to a stored character
	Advance(ctx context.Context, characterID string, adv character.Advancement) (*character.Character, error)

	// AddEquipment appends an item to the character's equipment
	AddEquipment(ctx context.Context, characterID string, input *EquipmentInput) (*character.Character, error)

	// UpdateEquipment edits one equipment item
	UpdateEquipment(ctx context.Context, characterID, itemID string, input *EquipmentUpdate) (*character.Character, error)

	// RemoveEquipment drops one equipment item
	RemoveEquipment(ctx context.Context, characterID, itemID string) (*character.Character, error)

	// Export renders a character as indented JSON
	Export(ctx context.Context, characterID string) ([]byte, error)

	// Import stores a character exported earlier under a fresh id
	Import(ctx context.Context, data []byte) (*character.Character, error)
}

// CreateInput contains data for creating a character
type CreateInput struct {
	SystemID string
	Name     string
}

// EquipmentInput describes a new equipment item
type EquipmentInput struct {
	Name        string
	Category    string
	Quantity    int
	Weight      *float64
	Value       *float64
	Description string
	Properties  map[string]any
}

// EquipmentUpdate carries the fields to change on an item; nil fields are
// left alone
type EquipmentUpdate struct {
	Name        *string
	Category    *string
	Quantity    *int
	Weight      *float64
	Value       *float64
	Description *string
	Properties  map[string]any
}

// Detacher clears references to a deleted character held elsewhere
type Detacher interface {
	DetachCharacter(ctx context.Context, characterID string) error
}

type service struct {
	catalog       *rulebook.Catalog
	repository    Repository
	roller        dice.Roller
	detacher      Detacher
	uuidGenerator uuid.Generator
	timeProvider  clock.TimeProvider
	logger        *zap.Logger
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository    Repository         // Required
	Catalog       *rulebook.Catalog  // Optional, defaults to the embedded catalog
	Roller        dice.Roller        // Optional, defaults to a random roller
	Detacher      Detacher           // Optional
	UUIDGenerator uuid.Generator     // Optional
	TimeProvider  clock.TimeProvider // Optional
	Logger        *zap.Logger        // Optional
}

// NewService creates a new character service
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
		roller:        cfg.Roller,
		detacher:      cfg.Detacher,
		uuidGenerator: cfg.UUIDGenerator,
		timeProvider:  cfg.TimeProvider,
		logger:        cfg.Logger,
	}
	if svc.catalog == nil {
		svc.catalog = rulebook.Default()
	}
	if svc.roller == nil {
		svc.roller = dice.NewRandomRoller()
	}
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

func (s *service) Create(ctx context.Context, input *CreateInput) (*character.Character, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}

	sys, ok := s.catalog.GetSystem(input.SystemID)
	if !ok {
		return nil, dnderr.UnknownSystem(input.SystemID)
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = DefaultName
	}

	c := character.New(s.catalog, sys, s.uuidGenerator.New(), name, s.timeProvider.Now())
	if err := s.repository.Create(ctx, c); err != nil {
		return nil, dnderr.Wrap(err, "failed to create character").
			WithMeta("character_id", c.ID).
			WithMeta("system_id", sys.ID)
	}

	s.logger.Debug("character created",
		zap.String("character_id", c.ID),
		zap.String("system_id", sys.ID))
	return c, nil
}

func (s *service) Get(ctx context.Context, characterID string) (*character.Character, error) {
	if strings.TrimSpace(characterID) == "" {
		return nil, dnderr.InvalidArgument("character ID is required")
	}

	c, err := s.repository.Get(ctx, characterID)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to get character '%s'", characterID).
			WithMeta("character_id", characterID)
	}
	return c, nil
}

func (s *service) List(ctx context.Context, systemID string) ([]*character.Character, error) {
	var (
		list []*character.Character
		err  error
	)
	if systemID == "" {
		list, err = s.repository.List(ctx)
	} else {
		list, err = s.repository.ListBySystem(ctx, systemID)
	}
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to list characters").
			WithMeta("system_id", systemID)
	}
	return list, nil
}

func (s *service) Update(ctx context.Context, c *character.Character) (*character.Character, error) {
	if c == nil {
		return nil, dnderr.InvalidArgument("character cannot be nil")
	}
	if problems := character.Validate(s.catalog, character.DraftOf(c)); len(problems) > 0 {
		return nil, dnderr.Validation(strings.Join(problems, "; ")).
			WithMeta("character_id", c.ID).
			WithMeta("problems", problems)
	}

	updated := c.Clone()
	updated.UpdatedAt = s.timeProvider.Now()
	if err := s.repository.Update(ctx, updated); err != nil {
		return nil, dnderr.Wrapf(err, "failed to update character '%s'", c.ID).
			WithMeta("character_id", c.ID)
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, characterID string) error {
	if strings.TrimSpace(characterID) == "" {
		return dnderr.InvalidArgument("character ID is required")
	}

	if err := s.repository.Delete(ctx, characterID); err != nil {
		return dnderr.Wrapf(err, "failed to delete character '%s'", characterID).
			WithMeta("character_id", characterID)
	}

	if s.detacher != nil {
		if err := s.detacher.DetachCharacter(ctx, characterID); err != nil {
			return dnderr.Wrapf(err, "failed to detach character '%s'", characterID).
				WithMeta("character_id", characterID)
		}
	}
	return nil
}

func (s *service) Validate(draft *character.Draft) []string {
	return character.Validate(s.catalog, draft)
}

func (s *service) AttributeModifier(systemID, attributeID string, value int) int {
	return s.catalog.AttributeModifier(systemID, attributeID, value)
}

func (s *service) RollSkillCheck(systemID string, c *character.Character, skillID string, difficulty *int) (*character.CheckResult, error) {
	result, err := character.RollSkillCheck(s.catalog, s.roller, systemID, c, skillID, difficulty)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to roll skill check").
			WithMeta("system_id", systemID).
			WithMeta("skill_id", skillID)
	}
	return result, nil
}

func (s *service) Advance(ctx context.Context, characterID string, adv character.Advancement) (*character.Character, error) {
	return s.modify(ctx, characterID, func(c *character.Character) (*character.Character, error) {
		return character.Advance(s.catalog, c, adv, s.timeProvider.Now()), nil
	})
}

// modify loads a character, applies fn and stores the result
func (s *service) modify(ctx context.Context, characterID string, fn func(*character.Character) (*character.Character, error)) (*character.Character, error) {
	c, err := s.Get(ctx, characterID)
	if err != nil {
		return nil, err
	}

	updated, err := fn(c)
	if err != nil {
		return nil, err
	}

	if err := s.repository.Update(ctx, updated); err != nil {
		return nil, dnderr.Wrapf(err, "failed to update character '%s'", characterID).
			WithMeta("character_id", characterID)
	}
	return updated, nil
}

func (s *service) Export(ctx context.Context, characterID string) ([]byte, error) {
	c, err := s.Get(ctx, characterID)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to encode character").
			WithMeta("character_id", characterID)
	}
	return data, nil
}

func (s *service) Import(ctx context.Context, data []byte) (*character.Character, error) {
	var c character.Character
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeInvalidArgument, "character import is not valid JSON")
	}
	if problems := character.Validate(s.catalog, character.DraftOf(&c)); len(problems) > 0 {
		return nil, dnderr.InvalidArgument("character import is invalid: "+strings.Join(problems, "; ")).
			WithMeta("problems", problems)
	}

	now := s.timeProvider.Now()
	c.ID = s.uuidGenerator.New()
	c.CreatedAt = now
	c.UpdatedAt = now
	fillCollections(&c)

	if err := s.repository.Create(ctx, &c); err != nil {
		return nil, dnderr.Wrap(err, "failed to import character").
			WithMeta("character_id", c.ID)
	}

	s.logger.Info("character imported",
		zap.String("character_id", c.ID),
		zap.String("system_id", c.SystemID))
	return &c, nil
}

// fillCollections replaces absent collections with empty ones
func fillCollections(c *character.Character) {
	if c.Attributes == nil {
		c.Attributes = map[string]int{}
	}
	if c.Health == nil {
		c.Health = map[string]*character.Track{}
	}
	if c.Skills == nil {
		c.Skills = map[string]int{}
	}
	if c.Equipment == nil {
		c.Equipment = []*character.EquipmentItem{}
	}
	if c.SystemData == nil {
		c.SystemData = map[string]any{}
	}
}
