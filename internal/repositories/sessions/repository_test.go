package sessions_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/KirkDiggler/rpg-keeper/internal/domain/campaign"
	"github.com/KirkDiggler/rpg-keeper/internal/repositories/sessions"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepoTestSuite struct {
	suite.Suite
	ctx        context.Context
	mockClient *redis.Client
	mock       redismock.ClientMock
	repo       sessions.Repository
}

func (s *RedisRepoTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.mockClient, s.mock = redismock.NewClientMock()
	s.repo = sessions.NewRedis(s.mockClient)
}

func (s *RedisRepoTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

func TestRedisRepoTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepoTestSuite))
}

func (s *RedisRepoTestSuite) session(id, campaignID string, number int) *campaign.Session {
	return &campaign.Session{
		ID:            id,
		CampaignID:    campaignID,
		SessionNumber: number,
		Title:         "Session",
		Date:          time.Date(2024, 2, 1, 19, 0, 0, 0, time.UTC),
		Duration:      3,
		Rewards:       []campaign.Reward{},
	}
}

func (s *RedisRepoTestSuite) encode(v *campaign.Session) string {
	data, err := json.Marshal(v)
	s.Require().NoError(err)
	return string(data)
}

func (s *RedisRepoTestSuite) TestListByCampaign_KeepsInsertionOrder() {
	first := s.session("s1", "c1", 1)
	second := s.session("s2", "c1", 2)

	s.mock.MatchExpectationsInOrder(false)
	s.mock.ExpectLRange("campaign:c1:sessions", 0, -1).SetVal([]string{"s1", "s2"})
	s.mock.ExpectGet("session:s2").SetVal(s.encode(second))
	s.mock.ExpectGet("session:s1").SetVal(s.encode(first))

	got, err := s.repo.ListByCampaign(s.ctx, "c1")
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal(1, got[0].SessionNumber)
	s.Equal(2, got[1].SessionNumber)
}

func (s *RedisRepoTestSuite) TestDelete_RemovesCampaignIndex() {
	sess := s.session("s1", "c1", 1)

	s.mock.ExpectGet("session:s1").SetVal(s.encode(sess))
	s.mock.ExpectDel("session:s1").SetVal(1)
	s.mock.ExpectLRem("sessions", 0, "s1").SetVal(1)
	s.mock.ExpectLRem("campaign:c1:sessions", 0, "s1").SetVal(1)

	s.NoError(s.repo.Delete(s.ctx, "s1"))
}
