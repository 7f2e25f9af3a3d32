package campaign

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/KirkDiggler/rpg-keeper/internal/domain/campaign"
	dnderr "github.com/KirkDiggler/rpg-keeper/internal/errors"
	"go.uber.org/zap"
)

func (s *service) AddSession(ctx context.Context, campaignID string, input *SessionInput) (*campaign.Session, error) {
	if input == nil {
		input = &SessionInput{}
	}

	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()

	c, err := s.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	existing, err := s.sessions.ListByCampaign(ctx, campaignID)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to count sessions").
			WithMeta("campaign_id", campaignID)
	}
	number := len(existing) + 1

	now := s.timeProvider.Now()
	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = fmt.Sprintf(sessionTitleFormat, number)
	}
	date := now
	if input.Date != nil {
		date = *input.Date
	}
	duration := DefaultSessionDuration
	if input.Duration != nil {
		duration = *input.Duration
	}

	sess := &campaign.Session{
		ID:               s.uuidGenerator.New(),
		CampaignID:       campaignID,
		SessionNumber:    number,
		Title:            title,
		Date:             date,
		Duration:         duration,
		Summary:          input.Summary,
		Notes:            input.Notes,
		SystemData:       orEmptyBag(deepCopyBag(input.SystemData)),
		Rewards:          orEmpty(input.Rewards),
		NPCsIntroduced:   orEmpty(input.NPCsIntroduced),
		LocationsVisited: orEmpty(input.LocationsVisited),
		QuestsProgressed: orEmpty(input.QuestsProgressed),
		PlayerAttendance: orEmpty(input.PlayerAttendance),
	}
	sess = sess.Clone()

	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, dnderr.Wrap(err, "failed to create session").
			WithMeta("campaign_id", campaignID).
			WithMeta("session_number", number)
	}

	c.UpdatedAt = now
	if err := s.saveCampaign(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Debug("session added",
		zap.String("campaign_id", campaignID),
		zap.Int("session_number", number))
	return sess, nil
}

func (s *service) UpdateSession(ctx context.Context, session *campaign.Session) (*campaign.Session, error) {
	if session == nil {
		return nil, dnderr.InvalidArgument("session cannot be nil")
	}

	stored, err := s.sessions.Get(ctx, session.ID)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to get session '%s'", session.ID).
			WithMeta("session_id", session.ID)
	}

	updated := session.Clone()
	updated.CampaignID = stored.CampaignID
	updated.SessionNumber = stored.SessionNumber
	if err := s.sessions.Update(ctx, updated); err != nil {
		return nil, dnderr.Wrapf(err, "failed to update session '%s'", session.ID).
			WithMeta("session_id", session.ID)
	}
	return updated, nil
}

func (s *service) DeleteSession(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return dnderr.InvalidArgument("session ID is required")
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return dnderr.Wrapf(err, "failed to delete session '%s'", sessionID).
			WithMeta("session_id", sessionID)
	}
	return nil
}

func (s *service) ListSessions(ctx context.Context, campaignID string) ([]*campaign.Session, error) {
	list, err := s.sessions.ListByCampaign(ctx, campaignID)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to list sessions").
			WithMeta("campaign_id", campaignID)
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].SessionNumber < list[j].SessionNumber
	})
	return list, nil
}

func orEmpty[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}

func orEmptyBag(in map[string]any) map[string]any {
	if in == nil {
		return map[string]any{}
	}
	return in
}
