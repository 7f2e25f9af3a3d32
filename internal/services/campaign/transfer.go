package campaign

import (
	"context"
	"encoding/json"

	"github.com/KirkDiggler/rpg-keeper/internal/domain/campaign"
	dnderr "github.com/KirkDiggler/rpg-keeper/internal/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// loadChildren fetches a campaign's sessions, quests and NPCs in parallel
func (s *service) loadChildren(ctx context.Context, campaignID string) (*campaign.Export, error) {
	out := &campaign.Export{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := s.ListSessions(gctx, campaignID)
		out.Sessions = list
		return err
	})
	g.Go(func() error {
		list, err := s.ListQuests(gctx, campaignID)
		out.Quests = list
		return err
	})
	g.Go(func() error {
		list, err := s.ListNPCs(gctx, campaignID)
		out.NPCs = list
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) CalculateStats(ctx context.Context, systemID string) (*campaign.Stats, error) {
	var all []*campaign.Campaign
	var sessionList []*campaign.Session

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		all, err = s.ListCampaigns(gctx, systemID)
		return err
	})
	g.Go(func() error {
		var err error
		sessionList, err = s.sessions.List(gctx)
		if err != nil {
			return dnderr.Wrap(err, "failed to list sessions")
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return campaign.CalculateStats(all, sessionList, systemID), nil
}

func (s *service) ExportCampaign(ctx context.Context, campaignID string) ([]byte, error) {
	c, err := s.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	export, err := s.loadChildren(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	export.Campaign = c
	export.ExportedAt = s.timeProvider.Now()

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to encode campaign export").
			WithMeta("campaign_id", campaignID)
	}
	return data, nil
}

func (s *service) ImportCampaign(ctx context.Context, data []byte) (*campaign.Export, error) {
	var export campaign.Export
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeInvalidArgument, "campaign import is not valid JSON")
	}
	if export.Campaign == nil {
		return nil, dnderr.InvalidArgument("campaign import is missing the campaign")
	}
	if _, ok := s.catalog.GetSystem(export.Campaign.SystemID); !ok {
		return nil, dnderr.InvalidSystem(export.Campaign.SystemID)
	}

	export.Rekey(s.uuidGenerator, s.timeProvider.Now())
	c := export.Campaign
	c.Progress = campaign.ClampProgress(c.Progress)
	if c.Players == nil {
		c.Players = []*campaign.Player{}
	}
	if c.SystemData == nil {
		c.SystemData = map[string]any{}
	}

	if err := s.campaigns.Create(ctx, c); err != nil {
		return nil, dnderr.Wrap(err, "failed to import campaign").
			WithMeta("campaign_id", c.ID)
	}
	if err := s.importChildren(ctx, &export); err != nil {
		if rbErr := s.DeleteCampaign(ctx, c.ID); rbErr != nil {
			s.logger.Error("failed to roll back partial campaign import",
				zap.String("campaign_id", c.ID),
				zap.Error(rbErr))
		}
		return nil, err
	}

	s.logger.Info("campaign imported",
		zap.String("campaign_id", c.ID),
		zap.Int("sessions", len(export.Sessions)),
		zap.Int("quests", len(export.Quests)),
		zap.Int("npcs", len(export.NPCs)))
	return &export, nil
}

// importChildren stores the sessions, quests and NPCs of an already re-keyed
// export. It stops at the first failure.
func (s *service) importChildren(ctx context.Context, export *campaign.Export) error {
	campaignID := export.Campaign.ID
	for _, sess := range export.Sessions {
		if err := s.sessions.Create(ctx, sess); err != nil {
			return dnderr.Wrap(err, "failed to import session").
				WithMeta("campaign_id", campaignID)
		}
	}
	for _, q := range export.Quests {
		if err := s.quests.Create(ctx, q); err != nil {
			return dnderr.Wrap(err, "failed to import quest").
				WithMeta("campaign_id", campaignID)
		}
	}
	for _, n := range export.NPCs {
		if err := s.npcs.Create(ctx, n); err != nil {
			return dnderr.Wrap(err, "failed to import NPC").
				WithMeta("campaign_id", campaignID)
		}
	}
	return nil
}
