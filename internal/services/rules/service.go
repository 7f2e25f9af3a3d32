package rules

import (
	"context"
	"strings"

	"github.com/KirkDiggler/rpg-keeper/internal/clock"
	"github.com/KirkDiggler/rpg-keeper/internal/domain/rulebook"
	"github.com/KirkDiggler/rpg-keeper/internal/domain/rules"
	dnderr "github.com/KirkDiggler/rpg-keeper/internal/errors"
	rulerepo "github.com/KirkDiggler/rpg-keeper/internal/repositories/rules"
	"github.com/KirkDiggler/rpg-keeper/internal/uuid"
	"go.uber.org/zap"
)

// Service defines the rules index interface
type Service interface {
	// Search filters rules by text, category and system
	Search(ctx context.Context, query rules.Query) ([]*rules.Rule, error)

	// RecentRules returns the most recently accessed rules
	RecentRules(ctx context.Context, limit int, systemID string) ([]*rules.Rule, error)

	// TouchAccess marks a rule as read now
	TouchAccess(ctx context.Context, ruleID string) (*rules.Rule, error)

	// Categories returns the fixed categories with live counts
	Categories(ctx context.Context, systemID string) ([]rules.Category, error)

	// Create stores a new rule
	Create(ctx context.Context, input *RuleInput) (*rules.Rule, error)

	// Get retrieves a rule by ID
	Get(ctx context.Context, ruleID string) (*rules.Rule, error)

	// Update stores an edited rule; its id and creation time never change
	Update(ctx context.Context, rule *rules.Rule) (*rules.Rule, error)

	// Delete removes a rule
	Delete(ctx context.Context, ruleID string) error

	// Statistics summarizes the rules of one system, or all of them
	Statistics(ctx context.Context, systemID string) (*rules.Statistics, error)

	// SystemsWithRules counts rules for every catalog system
	SystemsWithRules(ctx context.Context) ([]rules.SystemCount, error)

	// Suggest offers rule titles close to a misspelled query
	Suggest(ctx context.Context, query string, limit int) ([]string, error)

	// Export renders the rules of one system, or all of them, as a JSON array
	Export(ctx context.Context, systemID string) ([]byte, error)

	// Import stores exported rules under fresh ids
	Import(ctx context.Context, data []byte) ([]*rules.Rule, error)
}

// RuleInput contains data for a new rule. Source defaults to Custom.
type RuleInput struct {
	Title       string
	Category    string
	Description string
	FullText    string
	SystemID    string
	Tags        []string
	Source      string
	Page        string
}

type service struct {
	catalog       *rulebook.Catalog
	repository    rulerepo.Repository
	uuidGenerator uuid.Generator
	timeProvider  clock.TimeProvider
	logger        *zap.Logger
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository    rulerepo.Repository // Required
	Catalog       *rulebook.Catalog   // Optional, defaults to the embedded catalog
	UUIDGenerator uuid.Generator      // Optional
	TimeProvider  clock.TimeProvider  // Optional
	Logger        *zap.Logger         // Optional
}

// NewService creates a new rules service
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
		uuidGenerator: cfg.UUIDGenerator,
		timeProvider:  cfg.TimeProvider,
		logger:        cfg.Logger,
	}
	if svc.catalog == nil {
		svc.catalog = rulebook.Default()
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

func (s *service) Create(ctx context.Context, input *RuleInput) (*rules.Rule, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, dnderr.InvalidArgument("rule title is required")
	}
	if _, ok := s.catalog.GetSystem(input.SystemID); !ok {
		return nil, dnderr.UnknownSystem(input.SystemID)
	}

	source := strings.TrimSpace(input.Source)
	if source == "" {
		source = rules.SourceCustom
	}

	rule := &rules.Rule{
		ID:          s.uuidGenerator.New(),
		Title:       title,
		Category:    input.Category,
		Description: input.Description,
		FullText:    input.FullText,
		Page:        input.Page,
		Source:      source,
		Tags:        append([]string{}, input.Tags...),
		SystemID:    input.SystemID,
		CreatedAt:   s.timeProvider.Now(),
	}

	if err := s.repository.Create(ctx, rule); err != nil {
		return nil, dnderr.Wrap(err, "failed to create rule").
			WithMeta("rule_id", rule.ID)
	}

	s.logger.Debug("rule created",
		zap.String("rule_id", rule.ID),
		zap.String("system_id", rule.SystemID),
		zap.String("category", rule.Category))
	return rule, nil
}

func (s *service) Get(ctx context.Context, ruleID string) (*rules.Rule, error) {
	if strings.TrimSpace(ruleID) == "" {
		return nil, dnderr.InvalidArgument("rule ID is required")
	}

	rule, err := s.repository.Get(ctx, ruleID)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to get rule '%s'", ruleID).
			WithMeta("rule_id", ruleID)
	}
	return rule, nil
}

func (s *service) Update(ctx context.Context, rule *rules.Rule) (*rules.Rule, error) {
	if rule == nil {
		return nil, dnderr.InvalidArgument("rule cannot be nil")
	}

	stored, err := s.Get(ctx, rule.ID)
	if err != nil {
		return nil, err
	}

	updated := rule.Clone()
	updated.CreatedAt = stored.CreatedAt
	if updated.Tags == nil {
		updated.Tags = []string{}
	}
	if err := s.repository.Update(ctx, updated); err != nil {
		return nil, dnderr.Wrapf(err, "failed to update rule '%s'", rule.ID).
			WithMeta("rule_id", rule.ID)
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, ruleID string) error {
	if strings.TrimSpace(ruleID) == "" {
		return dnderr.InvalidArgument("rule ID is required")
	}

	if err := s.repository.Delete(ctx, ruleID); err != nil {
		return dnderr.Wrapf(err, "failed to delete rule '%s'", ruleID).
			WithMeta("rule_id", ruleID)
	}
	return nil
}

func (s *service) TouchAccess(ctx context.Context, ruleID string) (*rules.Rule, error) {
	rule, err := s.Get(ctx, ruleID)
	if err != nil {
		return nil, err
	}

	now := s.timeProvider.Now()
	rule.LastAccessed = &now
	if err := s.repository.Update(ctx, rule); err != nil {
		return nil, dnderr.Wrapf(err, "failed to record access to rule '%s'", ruleID).
			WithMeta("rule_id", ruleID)
	}
	return rule, nil
}

// list returns the rules of one system, or every rule
func (s *service) list(ctx context.Context, systemID string) ([]*rules.Rule, error) {
	var (
		list []*rules.Rule
		err  error
	)
	if systemID == "" {
		list, err = s.repository.List(ctx)
	} else {
		list, err = s.repository.ListBySystem(ctx, systemID)
	}
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to list rules").
			WithMeta("system_id", systemID)
	}
	return list, nil
}
