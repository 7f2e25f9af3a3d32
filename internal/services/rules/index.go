package rules

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/KirkDiggler/rpg-keeper/internal/domain/rules"
	dnderr "github.com/KirkDiggler/rpg-keeper/internal/errors"
	"go.uber.org/zap"
)

func (s *service) Search(ctx context.Context, query rules.Query) ([]*rules.Rule, error) {
	list, err := s.list(ctx, query.SystemID)
	if err != nil {
		return nil, err
	}
	return rules.Filter(list, query), nil
}

func (s *service) RecentRules(ctx context.Context, limit int, systemID string) ([]*rules.Rule, error) {
	list, err := s.list(ctx, systemID)
	if err != nil {
		return nil, err
	}
	return rules.Recent(list, limit, systemID), nil
}

func (s *service) Categories(ctx context.Context, systemID string) ([]rules.Category, error) {
	list, err := s.list(ctx, systemID)
	if err != nil {
		return nil, err
	}
	return rules.Categorize(list, systemID), nil
}

func (s *service) Statistics(ctx context.Context, systemID string) (*rules.Statistics, error) {
	list, err := s.list(ctx, systemID)
	if err != nil {
		return nil, err
	}
	return rules.Summarize(list, systemID), nil
}

func (s *service) SystemsWithRules(ctx context.Context) ([]rules.SystemCount, error) {
	list, err := s.list(ctx, "")
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, r := range list {
		counts[r.SystemID]++
	}

	systems := s.catalog.Systems()
	out := make([]rules.SystemCount, len(systems))
	for i, sys := range systems {
		out[i] = rules.SystemCount{SystemID: sys.ID, Name: sys.Name, RuleCount: counts[sys.ID]}
	}
	return out, nil
}

func (s *service) Suggest(ctx context.Context, query string, limit int) ([]string, error) {
	list, err := s.list(ctx, "")
	if err != nil {
		return nil, err
	}
	return rules.Suggest(list, query, limit), nil
}

func (s *service) Export(ctx context.Context, systemID string) ([]byte, error) {
	list, err := s.list(ctx, systemID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*rules.Rule{}
	}

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to encode rules").
			WithMeta("system_id", systemID)
	}
	return data, nil
}

func (s *service) Import(ctx context.Context, data []byte) ([]*rules.Rule, error) {
	var list []*rules.Rule
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeInvalidArgument, "rules import must be a JSON array of rules")
	}
	for i, r := range list {
		if r == nil || strings.TrimSpace(r.Title) == "" {
			return nil, dnderr.InvalidArgumentf("rules import entry %d needs a title", i).
				WithMeta("index", i)
		}
	}

	now := s.timeProvider.Now()
	for i, r := range list {
		r.ID = s.uuidGenerator.New()
		r.CreatedAt = now
		if r.Source == "" {
			r.Source = rules.SourceImported
		}
		if r.Tags == nil {
			r.Tags = []string{}
		}
		if err := s.repository.Create(ctx, r); err != nil {
			s.rollbackImport(ctx, list[:i])
			return nil, dnderr.Wrap(err, "failed to import rule").
				WithMeta("rule_id", r.ID)
		}
	}

	s.logger.Info("rules imported", zap.Int("rules", len(list)))
	return list, nil
}

// rollbackImport removes rules stored by an import that failed part way
func (s *service) rollbackImport(ctx context.Context, created []*rules.Rule) {
	for _, r := range created {
		if err := s.repository.Delete(ctx, r.ID); err != nil && !dnderr.IsNotFound(err) {
			s.logger.Error("failed to roll back imported rule",
				zap.String("rule_id", r.ID),
				zap.Error(err))
		}
	}
}
