package treasure

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/KirkDiggler/rpg-keeper/internal/domain/treasure"
	dnderr "github.com/KirkDiggler/rpg-keeper/internal/errors"
	"go.uber.org/zap"
)

func (s *service) Generate(systemID, rarity, itemType string) (*treasure.Item, error) {
	sys, ok := s.catalog.GetSystem(systemID)
	if !ok {
		return nil, dnderr.UnknownSystem(systemID)
	}

	item, err := treasure.Generate(sys, treasure.Request{Rarity: rarity, Type: itemType}, s.random)
	if err != nil {
		return nil, err
	}
	item.CreatedAt = s.timeProvider.Now()
	return item, nil
}

func (s *service) AddToVault(ctx context.Context, item *treasure.Item) (*treasure.Item, error) {
	if item == nil {
		return nil, dnderr.InvalidArgument("item cannot be nil")
	}

	stored := item.Clone()
	stored.ID = s.uuidGenerator.New()
	stored.CreatedAt = s.timeProvider.Now()
	fillCollections(stored)

	if err := s.repository.Create(ctx, stored); err != nil {
		return nil, dnderr.Wrap(err, "failed to add item to vault").
			WithMeta("item_id", stored.ID)
	}

	s.logger.Debug("item added to vault",
		zap.String("item_id", stored.ID),
		zap.String("system_id", stored.SystemID),
		zap.String("rarity", stored.Rarity))
	return stored, nil
}

func (s *service) CreateCustom(ctx context.Context, input *CustomItemInput) (*treasure.Item, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, dnderr.InvalidArgument("item name is required")
	}
	sys, ok := s.catalog.GetSystem(input.SystemID)
	if !ok {
		return nil, dnderr.UnknownSystem(input.SystemID)
	}

	rarity := strings.TrimSpace(input.Rarity)
	if rarity == "" {
		rarity = treasure.Rarities(sys)[0]
	}

	item := &treasure.Item{
		ID:              s.uuidGenerator.New(),
		Name:            name,
		Type:            input.Type,
		SystemID:        sys.ID,
		Rarity:          rarity,
		Value:           input.Value,
		Currency:        treasure.Currency(sys),
		Description:     input.Description,
		FullDescription: input.FullDescription,
		Attunement:      input.Attunement,
		Properties:      append([]string(nil), input.Properties...),
		Tags:            append([]string(nil), input.Tags...),
		Source:          treasure.SourceCustom,
		CreatedAt:       s.timeProvider.Now(),
	}
	fillCollections(item)

	if err := s.repository.Create(ctx, item); err != nil {
		return nil, dnderr.Wrap(err, "failed to create custom item").
			WithMeta("item_id", item.ID)
	}
	return item, nil
}

func (s *service) Get(ctx context.Context, itemID string) (*treasure.Item, error) {
	if strings.TrimSpace(itemID) == "" {
		return nil, dnderr.InvalidArgument("item ID is required")
	}

	item, err := s.repository.Get(ctx, itemID)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to get item '%s'", itemID).
			WithMeta("item_id", itemID)
	}
	return item, nil
}

func (s *service) Delete(ctx context.Context, itemID string) error {
	if strings.TrimSpace(itemID) == "" {
		return dnderr.InvalidArgument("item ID is required")
	}

	if err := s.repository.Delete(ctx, itemID); err != nil {
		return dnderr.Wrapf(err, "failed to delete item '%s'", itemID).
			WithMeta("item_id", itemID)
	}
	return nil
}

func (s *service) ListBySystem(ctx context.Context, systemID string) ([]*treasure.Item, error) {
	var (
		items []*treasure.Item
		err   error
	)
	if systemID == "" {
		items, err = s.repository.List(ctx)
	} else {
		items, err = s.repository.ListBySystem(ctx, systemID)
	}
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to list vault").
			WithMeta("system_id", systemID)
	}
	return items, nil
}

func (s *service) Search(ctx context.Context, query treasure.SearchQuery) ([]*treasure.Item, error) {
	items, err := s.ListBySystem(ctx, query.SystemID)
	if err != nil {
		return nil, err
	}
	return treasure.Filter(items, query), nil
}

func (s *service) Categories(ctx context.Context, systemID string) ([]treasure.Category, error) {
	items, err := s.ListBySystem(ctx, systemID)
	if err != nil {
		return nil, err
	}
	return treasure.Categorize(items, systemID), nil
}

func (s *service) Export(ctx context.Context, systemID string) ([]byte, error) {
	items, err := s.ListBySystem(ctx, systemID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*treasure.Item{}
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to encode vault").
			WithMeta("system_id", systemID)
	}
	return data, nil
}

func (s *service) Import(ctx context.Context, data []byte) ([]*treasure.Item, error) {
	var items []*treasure.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeInvalidArgument, "treasure import must be a JSON array of items")
	}
	for i, item := range items {
		if item == nil || strings.TrimSpace(item.Name) == "" || strings.TrimSpace(item.Rarity) == "" {
			return nil, dnderr.InvalidArgumentf("treasure import item %d needs a name and a rarity", i).
				WithMeta("index", i)
		}
	}

	now := s.timeProvider.Now()
	for i, item := range items {
		item.ID = s.uuidGenerator.New()
		item.CreatedAt = now
		if item.Source == "" {
			item.Source = treasure.SourceImported
		}
		if item.Currency == "" {
			sys, _ := s.catalog.GetSystem(item.SystemID)
			item.Currency = treasure.Currency(sys)
		}
		fillCollections(item)

		if err := s.repository.Create(ctx, item); err != nil {
			s.rollbackImport(ctx, items[:i])
			return nil, dnderr.Wrap(err, "failed to import item").
				WithMeta("item_id", item.ID)
		}
	}

	s.logger.Info("treasure imported", zap.Int("items", len(items)))
	return items, nil
}

// fillCollections replaces absent collections with empty ones
func fillCollections(item *treasure.Item) {
	if item.Properties == nil {
		item.Properties = []string{}
	}
	if item.Tags == nil {
		item.Tags = []string{}
	}
	if item.SystemData == nil {
		item.SystemData = map[string]any{}
	}
}

func (s *service) rollbackImport(ctx context.Context, created []*treasure.Item) {
	for _, item := range created {
		if err := s.repository.Delete(ctx, item.ID); err != nil && !dnderr.IsNotFound(err) {
			s.logger.Error("failed to roll back imported item",
				zap.String("item_id", item.ID),
				zap.Error(err))
		}
	}
}
