package campaign

import (
	"context"
	"slices"
	"strings"

	"github.com/KirkDiggler/rpg-keeper/internal/domain/campaign"
	dnderr "github.com/KirkDiggler/rpg-keeper/internal/errors"
	"go.uber.org/zap"
)

func (s *service) CreateCampaign(ctx context.Context, input *CreateCampaignInput) (*campaign.Campaign, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}

	systemID := strings.TrimSpace(input.SystemID)
	if systemID == "" {
		systemID = DefaultSystemID
	}
	sys, ok := s.catalog.GetSystem(systemID)
	if !ok {
		return nil, dnderr.InvalidSystem(systemID)
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = DefaultCampaignName
	}

	themes := s.catalog.Themes(sys.ID)
	theme := strings.TrimSpace(input.Theme)
	switch {
	case theme == "":
		theme = themes[0]
	case !slices.Contains(themes, theme):
		s.logger.Info("campaign theme is not a suggestion for its system",
			zap.String("system_id", sys.ID),
			zap.String("theme", theme))
	}

	now := s.timeProvider.Now()
	c := &campaign.Campaign{
		ID:          s.uuidGenerator.New(),
		Name:        name,
		Description: input.Description,
		SystemID:    sys.ID,
		Status:      campaign.StatusPlanning,
		Players:     []*campaign.Player{},
		NextSession: input.NextSession,
		Location:    input.Location,
		Theme:       theme,
		SystemData:  deepCopyBag(sys.CampaignDefaults),
		Notes:       input.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.campaigns.Create(ctx, c); err != nil {
		return nil, dnderr.Wrap(err, "failed to create campaign").
			WithMeta("campaign_id", c.ID).
			WithMeta("system_id", sys.ID)
	}
	return c, nil
}

func (s *service) GetCampaign(ctx context.Context, campaignID string) (*campaign.Campaign, error) {
	if strings.TrimSpace(campaignID) == "" {
		return nil, dnderr.InvalidArgument("campaign ID is required")
	}

	c, err := s.campaigns.Get(ctx, campaignID)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to get campaign '%s'", campaignID).
			WithMeta("campaign_id", campaignID)
	}
	return c, nil
}

func (s *service) ListCampaigns(ctx context.Context, systemID string) ([]*campaign.Campaign, error) {
	var (
		list []*campaign.Campaign
		err  error
	)
	if systemID == "" {
		list, err = s.campaigns.List(ctx)
	} else {
		list, err = s.campaigns.ListBySystem(ctx, systemID)
	}
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to list campaigns").
			WithMeta("system_id", systemID)
	}
	return list, nil
}

func (s *service) UpdateCampaign(ctx context.Context, c *campaign.Campaign) (*campaign.Campaign, error) {
	if c == nil {
		return nil, dnderr.InvalidArgument("campaign cannot be nil")
	}
	if _, ok := s.catalog.GetSystem(c.SystemID); !ok {
		return nil, dnderr.InvalidSystem(c.SystemID).WithMeta("campaign_id", c.ID)
	}

	updated := c.Clone()
	updated.Progress = campaign.ClampProgress(updated.Progress)
	updated.UpdatedAt = s.timeProvider.Now()
	if err := s.saveCampaign(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) saveCampaign(ctx context.Context, c *campaign.Campaign) error {
	if err := s.campaigns.Update(ctx, c); err != nil {
		return dnderr.Wrapf(err, "failed to update campaign '%s'", c.ID).
			WithMeta("campaign_id", c.ID)
	}
	return nil
}

// modifyCampaign loads a campaign, applies fn, stamps it and stores it
func (s *service) modifyCampaign(ctx context.Context, campaignID string, fn func(*campaign.Campaign) error) (*campaign.Campaign, error) {
	c, err := s.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if err := fn(c); err != nil {
		return nil, err
	}
	c.UpdatedAt = s.timeProvider.Now()
	if err := s.saveCampaign(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCampaign cascades to every session, quest and NPC filed under the
// campaign. The campaign record goes last.
func (s *service) DeleteCampaign(ctx context.Context, campaignID string) error {
	if _, err := s.GetCampaign(ctx, campaignID); err != nil {
		return err
	}

	children, err := s.loadChildren(ctx, campaignID)
	if err != nil {
		return err
	}

	for _, sess := range children.Sessions {
		if err := s.sessions.Delete(ctx, sess.ID); err != nil && !dnderr.IsNotFound(err) {
			return dnderr.Wrapf(err, "failed to delete session '%s'", sess.ID).
				WithMeta("campaign_id", campaignID)
		}
	}
	for _, q := range children.Quests {
		if err := s.quests.Delete(ctx, q.ID); err != nil && !dnderr.IsNotFound(err) {
			return dnderr.Wrapf(err, "failed to delete quest '%s'", q.ID).
				WithMeta("campaign_id", campaignID)
		}
	}
	for _, n := range children.NPCs {
		if err := s.npcs.Delete(ctx, n.ID); err != nil && !dnderr.IsNotFound(err) {
			return dnderr.Wrapf(err, "failed to delete NPC '%s'", n.ID).
				WithMeta("campaign_id", campaignID)
		}
	}

	if err := s.campaigns.Delete(ctx, campaignID); err != nil {
		return dnderr.Wrapf(err, "failed to delete campaign '%s'", campaignID).
			WithMeta("campaign_id", campaignID)
	}

	s.logger.Info("campaign deleted",
		zap.String("campaign_id", campaignID),
		zap.Int("sessions", len(children.Sessions)),
		zap.Int("quests", len(children.Quests)),
		zap.Int("npcs", len(children.NPCs)))
	return nil
}

func (s *service) AdvanceCampaign(ctx context.Context, campaignID string, adv campaign.Advancement) (*campaign.Campaign, error) {
	c, err := s.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	sys, ok := s.catalog.GetSystem(c.SystemID)
	if !ok {
		return nil, dnderr.InvalidSystem(c.SystemID).WithMeta("campaign_id", campaignID)
	}

	campaign.Advance(sys, c, adv, s.timeProvider.Now())
	if err := s.saveCampaign(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) AddPlayer(ctx context.Context, campaignID string, input *PlayerInput) (*campaign.Campaign, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}

	return s.modifyCampaign(ctx, campaignID, func(c *campaign.Campaign) error {
		name := strings.TrimSpace(input.Name)
		if name == "" {
			name = DefaultPlayerName
		}
		characterName := strings.TrimSpace(input.CharacterName)
		if characterName == "" {
			characterName = DefaultCharacterName
		}
		systemData := deepCopyBag(input.SystemData)
		if systemData == nil {
			systemData = map[string]any{}
		}

		c.Players = append(c.Players, &campaign.Player{
			ID:               s.uuidGenerator.New(),
			Name:             name,
			CharacterID:      input.CharacterID,
			CharacterName:    characterName,
			CharacterDetails: input.CharacterDetails,
			Status:           campaign.PlayerStatusActive,
			SystemData:       systemData,
		})
		return nil
	})
}

func (s *service) RemovePlayer(ctx context.Context, campaignID, playerID string) (*campaign.Campaign, error) {
	return s.modifyCampaign(ctx, campaignID, func(c *campaign.Campaign) error {
		i := c.FindPlayer(playerID)
		if i < 0 {
			return dnderr.NotFoundf("player '%s' not found", playerID).
				WithMeta("campaign_id", campaignID).
				WithMeta("player_id", playerID)
		}
		c.Players = append(c.Players[:i], c.Players[i+1:]...)
		return nil
	})
}

func (s *service) DetachCharacter(ctx context.Context, characterID string) error {
	if strings.TrimSpace(characterID) == "" {
		return dnderr.InvalidArgument("character ID is required")
	}

	all, err := s.campaigns.List(ctx)
	if err != nil {
		return dnderr.Wrap(err, "failed to list campaigns")
	}

	now := s.timeProvider.Now()
	for _, c := range all {
		touched := false
		for _, p := range c.Players {
			if p != nil && p.CharacterID == characterID {
				p.CharacterID = ""
				touched = true
			}
		}
		if !touched {
			continue
		}
		c.UpdatedAt = now
		if err := s.saveCampaign(ctx, c); err != nil {
			return err
		}
		s.logger.Debug("character detached from campaign",
			zap.String("campaign_id", c.ID),
			zap.String("character_id", characterID))
	}
	return nil
}

// deepCopyBag copies nested maps and slices so seeded system data never
// aliases the catalog
func deepCopyBag(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = deepCopyValue(v)
	}
	return out
}

func deepCopyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return deepCopyBag(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = deepCopyValue(e)
		}
		return out
	default:
		return v
	}
}
