package character

import (
	"context"
	"strings"

	"github.com/KirkDiggler/rpg-keeper/internal/domain/character"
	dnderr "github.com/KirkDiggler/rpg-keeper/internal/errors"
)

func (s *service) AddEquipment(ctx context.Context, characterID string, input *EquipmentInput) (*character.Character, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, dnderr.InvalidArgument("equipment name is required")
	}

	return s.modify(ctx, characterID, func(c *character.Character) (*character.Character, error) {
		quantity := input.Quantity
		if quantity <= 0 {
			quantity = 1
		}

		item := &character.EquipmentItem{
			ID:          s.uuidGenerator.New(),
			Name:        strings.TrimSpace(input.Name),
			Category:    input.Category,
			Quantity:    quantity,
			Weight:      input.Weight,
			Value:       input.Value,
			Description: input.Description,
			Properties:  input.Properties,
		}

		c.Equipment = append(c.Equipment, item.Clone())
		c.UpdatedAt = s.timeProvider.Now()
		return c, nil
	})
}

func (s *service) UpdateEquipment(ctx context.Context, characterID, itemID string, input *EquipmentUpdate) (*character.Character, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}

	return s.modify(ctx, characterID, func(c *character.Character) (*character.Character, error) {
		i := c.FindEquipment(itemID)
		if i < 0 {
			return nil, dnderr.NotFoundf("equipment item '%s' not found", itemID).
				WithMeta("character_id", characterID).
				WithMeta("item_id", itemID)
		}

		item := c.Equipment[i]
		if input.Name != nil {
			item.Name = *input.Name
		}
		if input.Category != nil {
			item.Category = *input.Category
		}
		if input.Quantity != nil {
			item.Quantity = *input.Quantity
		}
		if input.Weight != nil {
			weight := *input.Weight
			item.Weight = &weight
		}
		if input.Value != nil {
			value := *input.Value
			item.Value = &value
		}
		if input.Description != nil {
			item.Description = *input.Description
		}
		if input.Properties != nil {
			item.Properties = input.Properties
		}

		c.UpdatedAt = s.timeProvider.Now()
		return c, nil
	})
}

func (s *service) RemoveEquipment(ctx context.Context, characterID, itemID string) (*character.Character, error) {
	return s.modify(ctx, characterID, func(c *character.Character) (*character.Character, error) {
		i := c.FindEquipment(itemID)
		if i < 0 {
			return nil, dnderr.NotFoundf("equipment item '%s' not found", itemID).
				WithMeta("character_id", characterID).
				WithMeta("item_id", itemID)
		}

		c.Equipment = append(c.Equipment[:i], c.Equipment[i+1:]...)
		c.UpdatedAt = s.timeProvider.Now()
		return c, nil
	})
}
