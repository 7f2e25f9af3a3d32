package treasure_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/KirkDiggler/rpg-keeper/internal/clock"
	domain "github.com/KirkDiggler/rpg-keeper/internal/domain/treasure"
	dnderr "github.com/KirkDiggler/rpg-keeper/internal/errors"
	"github.com/KirkDiggler/rpg-keeper/internal/repositories/vault"
	"github.com/KirkDiggler/rpg-keeper/internal/services/treasure"
	mockuuid "github.com/KirkDiggler/rpg-keeper/internal/uuid/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

var now = time.Date(2024, 6, 12, 20, 0, 0, 0, time.UTC)

type ServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	ctrl    *gomock.Controller
	uuidGen *mockuuid.MockGenerator
	repo    vault.Repository
	svc     treasure.Service
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.uuidGen = mockuuid.NewMockGenerator(s.ctrl)
	s.repo = vault.NewInMemoryRepository()

	s.svc = treasure.NewService(&treasure.ServiceConfig{
		Repository:    s.repo,
		Randomizer:    rand.New(rand.NewSource(42)),
		UUIDGenerator: s.uuidGen,
		TimeProvider:  clock.Fixed(now),
	})
}

func (s *ServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (s *ServiceTestSuite) custom(id string, input *treasure.CustomItemInput) *domain.Item {
	s.uuidGen.EXPECT().New().Return(id)
	item, err := s.svc.CreateCustom(s.ctx, input)
	s.Require().NoError(err)
	return item
}

func (s *ServiceTestSuite) TestGenerate_DraftIsNotStored() {
	item, err := s.svc.Generate("dnd5e", "Legendary", "weapon")
	s.Require().NoError(err)

	s.Empty(item.ID)
	s.Equal("dnd5e", item.SystemID)
	s.Equal("Legendary", item.Rarity)
	s.Equal("gp", item.Currency)
	s.Equal(domain.SourceGenerated, item.Source)
	s.Contains(item.Type, "Weapon")
	s.Equal(now, item.CreatedAt)

	stored, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(stored)
}

func (s *ServiceTestSuite) TestGenerate_SameSeedSameItem() {
	other := treasure.NewService(&treasure.ServiceConfig{
		Repository: vault.NewInMemoryRepository(),
		Randomizer: rand.New(rand.NewSource(42)),
	})

	a, err := s.svc.Generate("cyberpunk_red", "", "")
	s.Require().NoError(err)
	b, err := other.Generate("cyberpunk_red", "", "")
	s.Require().NoError(err)

	s.Equal(a.Name, b.Name)
	s.Equal(a.Rarity, b.Rarity)
	s.Equal(a.Value, b.Value)
	s.Equal("eb", a.Currency)
}

func (s *ServiceTestSuite) TestGenerate_Errors() {
	_, err := s.svc.Generate("pathfinder2e", "", "")
	s.True(dnderr.IsUnimplemented(err))

	_, err = s.svc.Generate("gurps", "", "")
	s.True(dnderr.IsUnknownSystem(err))

	_, err = s.svc.Generate("dnd5e", "Mythic", "")
	s.True(dnderr.IsInvalidArgument(err))
}

func (s *ServiceTestSuite) TestAddToVault_MintsID() {
	draft, err := s.svc.Generate("call_of_cthulhu", "Rare", "")
	s.Require().NoError(err)

	s.uuidGen.EXPECT().New().Return("item-1")
	stored, err := s.svc.AddToVault(s.ctx, draft)
	s.Require().NoError(err)

	s.Equal("item-1", stored.ID)
	s.Empty(draft.ID, "the draft is left alone")

	got, err := s.svc.Get(s.ctx, "item-1")
	s.Require().NoError(err)
	s.Equal(stored, got)
}

func (s *ServiceTestSuite) TestCreateCustom() {
	item := s.custom("item-1", &treasure.CustomItemInput{
		Name:     "Tommy Gun",
		Type:     "Weapon",
		SystemID: "call_of_cthulhu",
		Value:    1200,
		Tags:     []string{"firearm"},
	})

	s.Equal("$", item.Currency)
	s.Equal("Common", item.Rarity)
	s.Equal(domain.SourceCustom, item.Source)
	s.Empty(item.Properties)
	s.NotNil(item.Properties)
	s.Equal("$1,200", s.svc.FormatValue(item.Value, item.Currency))
}

func (s *ServiceTestSuite) TestCreateCustom_Rejects() {
	_, err := s.svc.CreateCustom(s.ctx, &treasure.CustomItemInput{SystemID: "dnd5e"})
	s.True(dnderr.IsInvalidArgument(err))

	_, err = s.svc.CreateCustom(s.ctx, &treasure.CustomItemInput{Name: "Thing", SystemID: "gurps"})
	s.True(dnderr.IsUnknownSystem(err))
}

func (s *ServiceTestSuite) TestSearchAndCategories() {
	s.custom("a", &treasure.CustomItemInput{Name: "Flaming Longsword", Type: "Weapon (longsword)", SystemID: "dnd5e", Rarity: "Rare"})
	s.custom("b", &treasure.CustomItemInput{Name: "Potion of Healing", Type: "Potion", SystemID: "dnd5e", Rarity: "Common"})
	s.custom("c", &treasure.CustomItemInput{Name: "Flaming Skull", Type: "Occult Item", SystemID: "call_of_cthulhu", Rarity: "Rare"})

	found, err := s.svc.Search(s.ctx, domain.SearchQuery{Query: "flaming", Rarity: "Rare"})
	s.Require().NoError(err)
	s.Len(found, 2)

	found, err = s.svc.Search(s.ctx, domain.SearchQuery{Query: "flaming", SystemID: "dnd5e", Type: "weapon"})
	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.Equal("a", found[0].ID)

	categories, err := s.svc.Categories(s.ctx, "dnd5e")
	s.Require().NoError(err)
	counts := map[string]int{}
	for _, c := range categories {
		counts[c.Name] = c.Count
	}
	s.Equal(1, counts["Weapons"])
	s.Equal(1, counts["Consumables"])
}

func (s *ServiceTestSuite) TestDelete() {
	s.custom("a", &treasure.CustomItemInput{Name: "Lantern", SystemID: "dnd5e"})

	s.Require().NoError(s.svc.Delete(s.ctx, "a"))
	_, err := s.svc.Get(s.ctx, "a")
	s.True(dnderr.IsNotFound(err))
	s.True(dnderr.IsNotFound(s.svc.Delete(s.ctx, "a")))
}

func (s *ServiceTestSuite) TestColorsAndRarities() {
	s.Equal("bg-orange-600", s.svc.RarityColor("dnd5e", "Legendary"))
	s.Equal("bg-gray-600", s.svc.RarityColor("dnd5e", "Mythic"))
	s.Equal("bg-gray-600", s.svc.RarityColor("gurps", "Rare"))

	s.Equal([]string{"Common", "Uncommon", "Rare"}, s.svc.Rarities("pathfinder2e"))
	s.Contains(s.svc.Rarities("dnd5e"), "Artifact")
}

func (s *ServiceTestSuite) TestExportImport() {
	s.custom("a", &treasure.CustomItemInput{Name: "Lantern", SystemID: "dnd5e"})
	s.custom("b", &treasure.CustomItemInput{Name: "Revolver", SystemID: "call_of_cthulhu"})

	data, err := s.svc.Export(s.ctx, "dnd5e")
	s.Require().NoError(err)

	s.uuidGen.EXPECT().New().Return("c")
	imported, err := s.svc.Import(s.ctx, data)
	s.Require().NoError(err)
	s.Require().Len(imported, 1)
	s.Equal("c", imported[0].ID)
	s.Equal("Lantern", imported[0].Name)
	s.Equal(domain.SourceCustom, imported[0].Source)

	all, err := s.svc.ListBySystem(s.ctx, "dnd5e")
	s.Require().NoError(err)
	s.Len(all, 2)

	empty, err := s.svc.Export(s.ctx, "pathfinder2e")
	s.Require().NoError(err)
	s.JSONEq(`[]`, string(empty))
}

func (s *ServiceTestSuite) TestImport_Rejects() {
	_, err := s.svc.Import(s.ctx, []byte(`{"name": "Lantern"}`))
	s.True(dnderr.IsInvalidArgument(err))

	_, err = s.svc.Import(s.ctx, []byte(`[{"name": "Lantern"}]`))
	s.True(dnderr.IsInvalidArgument(err))

	_, err = s.svc.Import(s.ctx, []byte(`[{"rarity": "Rare"}, null]`))
	s.True(dnderr.IsInvalidArgument(err))

	all, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(all)
}

// failingVault stores the first ok items and refuses the rest
type failingVault struct {
	vault.Repository
	ok int
}

func (v *failingVault) Create(ctx context.Context, item *domain.Item) error {
	if v.ok == 0 {
		return errors.New("vault is full")
	}
	v.ok--
	return v.Repository.Create(ctx, item)
}

func (s *ServiceTestSuite) TestImport_RollsBackOnWriteFailure() {
	svc := treasure.NewService(&treasure.ServiceConfig{
		Repository:    &failingVault{Repository: s.repo, ok: 1},
		UUIDGenerator: s.uuidGen,
		TimeProvider:  clock.Fixed(now),
	})
	s.uuidGen.EXPECT().New().Return("a")
	s.uuidGen.EXPECT().New().Return("b")

	_, err := svc.Import(s.ctx, []byte(`[
		{"name": "Lantern", "rarity": "Common", "systemId": "dnd5e"},
		{"name": "Rope", "rarity": "Common", "systemId": "dnd5e"}
	]`))
	s.Require().Error(err)

	all, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(all)
}
