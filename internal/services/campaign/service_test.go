package campaign_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/KirkDiggler/rpg-keeper/internal/clock"
	domain "github.com/KirkDiggler/rpg-keeper/internal/domain/campaign"
	dnderr "github.com/KirkDiggler/rpg-keeper/internal/errors"
	"github.com/KirkDiggler/rpg-keeper/internal/repositories/campaigns"
	"github.com/KirkDiggler/rpg-keeper/internal/repositories/npcs"
	"github.com/KirkDiggler/rpg-keeper/internal/repositories/quests"
	"github.com/KirkDiggler/rpg-keeper/internal/repositories/sessions"
	"github.com/KirkDiggler/rpg-keeper/internal/services/campaign"
	"github.com/stretchr/testify/suite"
)

var now = time.Date(2024, 7, 1, 18, 0, 0, 0, time.UTC)

// sequence hands out predictable ids and is safe for concurrent use
type sequence struct {
	mu sync.Mutex
	n  int
}

func (s *sequence) New() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

type ServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	ids       *sequence
	campaigns campaigns.Repository
	sessions  sessions.Repository
	quests    quests.Repository
	npcs      npcs.Repository
	svc       campaign.Service
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ids = &sequence{}
	s.campaigns = campaigns.NewInMemoryRepository()
	s.sessions = sessions.NewInMemoryRepository()
	s.quests = quests.NewInMemoryRepository()
	s.npcs = npcs.NewInMemoryRepository()

	s.svc = campaign.NewService(&campaign.ServiceConfig{
		CampaignRepository: s.campaigns,
		SessionRepository:  s.sessions,
		QuestRepository:    s.quests,
		NPCRepository:      s.npcs,
		UUIDGenerator:      s.ids,
		TimeProvider:       clock.Fixed(now),
	})
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (s *ServiceTestSuite) newCampaign(systemID string) *domain.Campaign {
	c, err := s.svc.CreateCampaign(s.ctx, &campaign.CreateCampaignInput{Name: "Test", SystemID: systemID})
	s.Require().NoError(err)
	return c
}

func (s *ServiceTestSuite) TestCreateCampaign_Defaults() {
	c, err := s.svc.CreateCampaign(s.ctx, &campaign.CreateCampaignInput{})
	s.Require().NoError(err)

	s.Equal(campaign.DefaultCampaignName, c.Name)
	s.Equal("dnd5e", c.SystemID)
	s.Equal(domain.StatusPlanning, c.Status)
	s.Equal(0, c.Progress)
	s.Equal(s.svc.Themes("dnd5e")[0], c.Theme)
	s.Empty(c.Players)
	s.NotNil(c.SystemData)
	s.Equal(now, c.CreatedAt)
}

func (s *ServiceTestSuite) TestCreateCampaign_SeedsSystemData() {
	c := s.newCampaign("call_of_cthulhu")
	c.SystemData["era"] = "mutated"

	again := s.newCampaign("call_of_cthulhu")
	s.NotEqual("mutated", again.SystemData["era"])
}

func (s *ServiceTestSuite) TestCreateCampaign_CustomThemeAccepted() {
	c, err := s.svc.CreateCampaign(s.ctx, &campaign.CreateCampaignInput{SystemID: "dnd5e", Theme: "Space Opera"})
	s.Require().NoError(err)
	s.Equal("Space Opera", c.Theme)
}

func (s *ServiceTestSuite) TestCreateCampaign_InvalidSystem() {
	_, err := s.svc.CreateCampaign(s.ctx, &campaign.CreateCampaignInput{SystemID: "gurps"})
	s.True(dnderr.IsInvalidSystem(err))
}

func (s *ServiceTestSuite) TestAddSession_NumbersSequentially() {
	c := s.newCampaign("dnd5e")
	other := s.newCampaign("dnd5e")

	for i := 1; i <= 3; i++ {
		sess, err := s.svc.AddSession(s.ctx, c.ID, nil)
		s.Require().NoError(err)
		s.Equal(i, sess.SessionNumber)
		s.Equal(fmt.Sprintf("Session %d", i), sess.Title)
		s.Equal(campaign.DefaultSessionDuration, sess.Duration)
		s.Equal(now, sess.Date)
	}

	first, err := s.svc.AddSession(s.ctx, other.ID, &campaign.SessionInput{Title: "Prologue"})
	s.Require().NoError(err)
	s.Equal(1, first.SessionNumber)
	s.Equal("Prologue", first.Title)
}

func (s *ServiceTestSuite) TestAddSession_ConcurrentNumbersAreUnique() {
	c := s.newCampaign("dnd5e")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.svc.AddSession(s.ctx, c.ID, nil)
			s.NoError(err)
		}()
	}
	wg.Wait()

	list, err := s.svc.ListSessions(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Require().Len(list, 10)
	for i, sess := range list {
		s.Equal(i+1, sess.SessionNumber)
	}
}

func (s *ServiceTestSuite) TestAddSession_UnknownCampaign() {
	_, err := s.svc.AddSession(s.ctx, "missing", nil)
	s.True(dnderr.IsNotFound(err))
}

func (s *ServiceTestSuite) TestUpdateSession_KeepsNumber() {
	c := s.newCampaign("dnd5e")
	sess, err := s.svc.AddSession(s.ctx, c.ID, nil)
	s.Require().NoError(err)

	sess.SessionNumber = 99
	sess.Summary = "The party met in a tavern"
	updated, err := s.svc.UpdateSession(s.ctx, sess)
	s.Require().NoError(err)
	s.Equal(1, updated.SessionNumber)
	s.Equal("The party met in a tavern", updated.Summary)
}

func (s *ServiceTestSuite) TestPlayersAndDetach() {
	c := s.newCampaign("dnd5e")

	c, err := s.svc.AddPlayer(s.ctx, c.ID, &campaign.PlayerInput{CharacterID: "char-1"})
	s.Require().NoError(err)
	s.Require().Len(c.Players, 1)
	s.Equal(campaign.DefaultPlayerName, c.Players[0].Name)
	s.Equal(campaign.DefaultCharacterName, c.Players[0].CharacterName)
	s.Equal(domain.PlayerStatusActive, c.Players[0].Status)

	s.Require().NoError(s.svc.DetachCharacter(s.ctx, "char-1"))
	stored, err := s.svc.GetCampaign(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Empty(stored.Players[0].CharacterID)

	c, err = s.svc.RemovePlayer(s.ctx, c.ID, c.Players[0].ID)
	s.Require().NoError(err)
	s.Empty(c.Players)

	_, err = s.svc.RemovePlayer(s.ctx, c.ID, "ghost")
	s.True(dnderr.IsNotFound(err))
}

func (s *ServiceTestSuite) TestQuestsAndNPCs() {
	c := s.newCampaign("vampire_masquerade")

	quest, err := s.svc.CreateQuest(s.ctx, c.ID, nil)
	s.Require().NoError(err)
	s.Equal(campaign.DefaultQuestTitle, quest.Title)
	s.Equal(domain.QuestActive, quest.Status)
	s.Equal(domain.PriorityMedium, quest.Priority)

	_, err = s.svc.CreateQuest(s.ctx, c.ID, &campaign.QuestInput{Priority: "Urgent"})
	s.True(dnderr.IsInvalidArgument(err))

	quest, err = s.svc.UpdateQuestStatus(s.ctx, quest.ID, domain.QuestCompleted)
	s.Require().NoError(err)
	s.Equal(domain.QuestCompleted, quest.Status)

	_, err = s.svc.UpdateQuestStatus(s.ctx, quest.ID, "Done")
	s.True(dnderr.IsInvalidArgument(err))

	npc, err := s.svc.CreateNPC(s.ctx, c.ID, &campaign.NPCInput{Name: "Beckett"})
	s.Require().NoError(err)
	s.Equal(campaign.DefaultNPCRole, npc.Role)
	s.Equal(domain.RelationshipNeutral, npc.Relationship)

	_, err = s.svc.CreateNPC(s.ctx, "missing", nil)
	s.True(dnderr.IsNotFound(err))

	questList, err := s.svc.ListQuests(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Len(questList, 1)
	npcList, err := s.svc.ListNPCs(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Len(npcList, 1)
}

func (s *ServiceTestSuite) TestAdvanceCampaign() {
	c := s.newCampaign("dnd5e")
	_, err := s.svc.AddPlayer(s.ctx, c.ID, &campaign.PlayerInput{Name: "Ada"})
	s.Require().NoError(err)

	c, err = s.svc.AdvanceCampaign(s.ctx, c.ID, domain.Advancement{Level: 3, ProgressIncrease: 150})
	s.Require().NoError(err)
	s.Equal(100, c.Progress)
	s.Equal(3, c.SystemData["partyLevel"])
	s.Equal(3, c.Players[0].SystemData["level"])

	_, err = s.svc.AdvanceCampaign(s.ctx, "missing", domain.Advancement{})
	s.True(dnderr.IsNotFound(err))
}

func (s *ServiceTestSuite) TestDeleteCampaign_Cascades() {
	doomed := s.newCampaign("dnd5e")
	kept := s.newCampaign("dnd5e")

	for _, id := range []string{doomed.ID, kept.ID} {
		_, err := s.svc.AddSession(s.ctx, id, nil)
		s.Require().NoError(err)
		_, err = s.svc.CreateQuest(s.ctx, id, nil)
		s.Require().NoError(err)
		_, err = s.svc.CreateNPC(s.ctx, id, nil)
		s.Require().NoError(err)
	}

	s.Require().NoError(s.svc.DeleteCampaign(s.ctx, doomed.ID))

	_, err := s.svc.GetCampaign(s.ctx, doomed.ID)
	s.True(dnderr.IsNotFound(err))

	allSessions, err := s.sessions.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(allSessions, 1)
	s.Equal(kept.ID, allSessions[0].CampaignID)

	allQuests, err := s.quests.List(s.ctx)
	s.Require().NoError(err)
	s.Len(allQuests, 1)

	allNPCs, err := s.npcs.List(s.ctx)
	s.Require().NoError(err)
	s.Len(allNPCs, 1)

	s.True(dnderr.IsNotFound(s.svc.DeleteCampaign(s.ctx, doomed.ID)))
}

func (s *ServiceTestSuite) TestCalculateStats() {
	c := s.newCampaign("dnd5e")
	c.Status = domain.StatusActive
	_, err := s.svc.UpdateCampaign(s.ctx, c)
	s.Require().NoError(err)
	_, err = s.svc.AddPlayer(s.ctx, c.ID, nil)
	s.Require().NoError(err)

	two := 2.5
	_, err = s.svc.AddSession(s.ctx, c.ID, nil)
	s.Require().NoError(err)
	_, err = s.svc.AddSession(s.ctx, c.ID, &campaign.SessionInput{Duration: &two})
	s.Require().NoError(err)

	other := s.newCampaign("call_of_cthulhu")
	_, err = s.svc.AddSession(s.ctx, other.ID, nil)
	s.Require().NoError(err)

	stats, err := s.svc.CalculateStats(s.ctx, "dnd5e")
	s.Require().NoError(err)
	s.Equal(&domain.Stats{TotalCampaigns: 1, ActivePlayers: 1, TotalSessions: 2, TotalHours: 5.5}, stats)

	all, err := s.svc.CalculateStats(s.ctx, "")
	s.Require().NoError(err)
	s.Equal(2, all.TotalCampaigns)
	s.Equal(3, all.TotalSessions)
}

func (s *ServiceTestSuite) TestUpdateCampaign_ClampsProgress() {
	c := s.newCampaign("dnd5e")
	c.Progress = 250

	updated, err := s.svc.UpdateCampaign(s.ctx, c)
	s.Require().NoError(err)
	s.Equal(100, updated.Progress)

	c.SystemID = "gurps"
	_, err = s.svc.UpdateCampaign(s.ctx, c)
	s.True(dnderr.IsInvalidSystem(err))
}

func (s *ServiceTestSuite) TestExportImportRoundTrip() {
	c := s.newCampaign("call_of_cthulhu")
	_, err := s.svc.AddPlayer(s.ctx, c.ID, &campaign.PlayerInput{Name: "Ada"})
	s.Require().NoError(err)
	_, err = s.svc.AddSession(s.ctx, c.ID, &campaign.SessionInput{Title: "The Haunting"})
	s.Require().NoError(err)
	_, err = s.svc.CreateQuest(s.ctx, c.ID, &campaign.QuestInput{Title: "Find the book"})
	s.Require().NoError(err)
	_, err = s.svc.CreateNPC(s.ctx, c.ID, &campaign.NPCInput{Name: "Corbitt"})
	s.Require().NoError(err)

	data, err := s.svc.ExportCampaign(s.ctx, c.ID)
	s.Require().NoError(err)

	var raw map[string]json.RawMessage
	s.Require().NoError(json.Unmarshal(data, &raw))
	s.Contains(raw, "campaign")
	s.Contains(raw, "exportedAt")

	imported, err := s.svc.ImportCampaign(s.ctx, data)
	s.Require().NoError(err)

	stored, err := s.svc.GetCampaign(s.ctx, c.ID)
	s.Require().NoError(err)

	s.NotEqual(c.ID, imported.Campaign.ID)
	s.Equal(stored.Name, imported.Campaign.Name)
	s.Equal(stored.Theme, imported.Campaign.Theme)
	s.Require().Len(imported.Campaign.Players, 1)
	s.Equal(stored.Players, imported.Campaign.Players)

	sessionList, err := s.svc.ListSessions(s.ctx, imported.Campaign.ID)
	s.Require().NoError(err)
	s.Require().Len(sessionList, 1)
	s.Equal("The Haunting", sessionList[0].Title)
	s.Equal(1, sessionList[0].SessionNumber)

	questList, err := s.svc.ListQuests(s.ctx, imported.Campaign.ID)
	s.Require().NoError(err)
	s.Require().Len(questList, 1)
	s.Equal("Find the book", questList[0].Title)

	npcList, err := s.svc.ListNPCs(s.ctx, imported.Campaign.ID)
	s.Require().NoError(err)
	s.Require().Len(npcList, 1)

	originalSessions, err := s.svc.ListSessions(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Len(originalSessions, 1, "the original is untouched")
}

func (s *ServiceTestSuite) TestImportCampaign_DropsNilPlayers() {
	data := []byte(`{"campaign": {"systemId": "dnd5e", "status": "Active", "players": [null, {"id": "p1", "name": "Ada", "status": "Active"}]}}`)

	imported, err := s.svc.ImportCampaign(s.ctx, data)
	s.Require().NoError(err)
	s.Require().Len(imported.Campaign.Players, 1)
	s.Equal("p1", imported.Campaign.Players[0].ID)

	stats, err := s.svc.CalculateStats(s.ctx, "dnd5e")
	s.Require().NoError(err)
	s.Equal(1, stats.ActivePlayers)

	advanced, err := s.svc.AdvanceCampaign(s.ctx, imported.Campaign.ID, domain.Advancement{Level: 3})
	s.Require().NoError(err)
	s.Equal(3, advanced.Players[0].SystemData["level"])
}

func (s *ServiceTestSuite) TestImportCampaign_Rejects() {
	_, err := s.svc.ImportCampaign(s.ctx, []byte("{"))
	s.True(dnderr.IsInvalidArgument(err))

	_, err = s.svc.ImportCampaign(s.ctx, []byte(`{"sessions": []}`))
	s.True(dnderr.IsInvalidArgument(err))

	_, err = s.svc.ImportCampaign(s.ctx, []byte(`{"campaign": {"systemId": "gurps"}}`))
	s.True(dnderr.IsInvalidSystem(err))
}

// failingQuests refuses every write
type failingQuests struct {
	quests.Repository
}

func (failingQuests) Create(context.Context, *domain.Quest) error {
	return errors.New("quest store unavailable")
}

func (s *ServiceTestSuite) TestImportCampaign_RollsBackOnChildFailure() {
	svc := campaign.NewService(&campaign.ServiceConfig{
		CampaignRepository: s.campaigns,
		SessionRepository:  s.sessions,
		QuestRepository:    failingQuests{Repository: s.quests},
		NPCRepository:      s.npcs,
		UUIDGenerator:      s.ids,
		TimeProvider:       clock.Fixed(now),
	})

	_, err := svc.ImportCampaign(s.ctx, []byte(`{
		"campaign": {"name": "Doomed", "systemId": "dnd5e"},
		"sessions": [{"title": "Session 1", "sessionNumber": 1}],
		"quests": [{"title": "Find the book"}]
	}`))
	s.Require().Error(err)

	all, err := s.campaigns.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(all)
	sessionList, err := s.sessions.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(sessionList)
}
