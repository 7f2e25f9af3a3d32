package campaign

import (
	"context"
	"strings"

	"github.com/KirkDiggler/rpg-keeper/internal/domain/campaign"
	dnderr "github.com/KirkDiggler/rpg-keeper/internal/errors"
)

func (s *service) CreateQuest(ctx context.Context, campaignID string, input *QuestInput) (*campaign.Quest, error) {
	if input == nil {
		input = &QuestInput{}
	}

	priority := input.Priority
	if priority == "" {
		priority = campaign.PriorityMedium
	}
	if !priority.Valid() {
		return nil, dnderr.InvalidArgumentf("unknown quest priority '%s'", priority).
			WithMeta("campaign_id", campaignID)
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = DefaultQuestTitle
	}

	var quest *campaign.Quest
	_, err := s.modifyCampaign(ctx, campaignID, func(c *campaign.Campaign) error {
		quest = &campaign.Quest{
			ID:          s.uuidGenerator.New(),
			CampaignID:  c.ID,
			Title:       title,
			Description: input.Description,
			Status:      campaign.QuestActive,
			Priority:    priority,
			Rewards:     orEmpty(append([]string(nil), input.Rewards...)),
			Notes:       input.Notes,
			SystemData:  map[string]any{},
		}
		if err := s.quests.Create(ctx, quest); err != nil {
			return dnderr.Wrap(err, "failed to create quest").
				WithMeta("campaign_id", c.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return quest, nil
}

func (s *service) UpdateQuestStatus(ctx context.Context, questID string, status campaign.QuestStatus) (*campaign.Quest, error) {
	if !status.Valid() {
		return nil, dnderr.InvalidArgumentf("unknown quest status '%s'", status).
			WithMeta("quest_id", questID)
	}

	quest, err := s.quests.Get(ctx, questID)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to get quest '%s'", questID).
			WithMeta("quest_id", questID)
	}

	quest.Status = status
	if err := s.quests.Update(ctx, quest); err != nil {
		return nil, dnderr.Wrapf(err, "failed to update quest '%s'", questID).
			WithMeta("quest_id", questID)
	}
	return quest, nil
}

func (s *service) ListQuests(ctx context.Context, campaignID string) ([]*campaign.Quest, error) {
	list, err := s.quests.ListByCampaign(ctx, campaignID)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to list quests").
			WithMeta("campaign_id", campaignID)
	}
	return list, nil
}

func (s *service) CreateNPC(ctx context.Context, campaignID string, input *NPCInput) (*campaign.NPC, error) {
	if input == nil {
		input = &NPCInput{}
	}

	relationship := input.Relationship
	if relationship == "" {
		relationship = campaign.RelationshipNeutral
	}
	if !relationship.Valid() {
		return nil, dnderr.InvalidArgumentf("unknown relationship '%s'", relationship).
			WithMeta("campaign_id", campaignID)
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = DefaultNPCName
	}
	role := strings.TrimSpace(input.Role)
	if role == "" {
		role = DefaultNPCRole
	}

	var npc *campaign.NPC
	_, err := s.modifyCampaign(ctx, campaignID, func(c *campaign.Campaign) error {
		npc = &campaign.NPC{
			ID:           s.uuidGenerator.New(),
			CampaignID:   c.ID,
			Name:         name,
			Role:         role,
			Location:     input.Location,
			Description:  input.Description,
			Relationship: relationship,
			Notes:        input.Notes,
			SystemData:   map[string]any{},
		}
		if err := s.npcs.Create(ctx, npc); err != nil {
			return dnderr.Wrap(err, "failed to create NPC").
				WithMeta("campaign_id", c.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return npc, nil
}

func (s *service) ListNPCs(ctx context.Context, campaignID string) ([]*campaign.NPC, error) {
	list, err := s.npcs.ListByCampaign(ctx, campaignID)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to list NPCs").
			WithMeta("campaign_id", campaignID)
	}
	return list, nil
}
