package rules_test

import (
	"testing"
	"time"

	"github.com/KirkDiggler/rpg-keeper/internal/domain/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func at(minutes int) *time.Time {
	t := now.Add(time.Duration(minutes) * time.Minute)
	return &t
}

func fixtures() []*rules.Rule {
	return []*rules.Rule{
		{ID: "r1", Title: "Advantage", Category: "Core Mechanics", Description: "Roll two d20s", FullText: "Take the higher roll.", Source: "PHB", Tags: []string{"d20"}, SystemID: "dnd5e", LastAccessed: at(5)},
		{ID: "r2", Title: "Grapple", Category: "Combat", Description: "Seize a creature", FullText: "Athletics contest.", Source: "PHB", Tags: []string{"Athletics", "melee"}, SystemID: "dnd5e"},
		{ID: "r3", Title: "Sanity Rolls", Category: "Core Mechanics", Description: "Losing your mind", FullText: "Roll under POW.", Source: "Custom", Tags: nil, SystemID: "call_of_cthulhu", LastAccessed: at(30)},
		{ID: "r4", Title: "Flashbacks", Category: "Optional Rules", Description: "House rule", FullText: "", Source: "Custom", SystemID: "dnd5e", LastAccessed: at(10)},
		{ID: "r5", Title: "Oddity", Category: "Homebrew", Source: "Custom", SystemID: "dnd5e"},
	}
}

func ids(rs []*rules.Rule) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name  string
		query rules.Query
		want  []string
	}{
		{name: "everything", query: rules.Query{}, want: []string{"r1", "r2", "r3", "r4", "r5"}},
		{name: "system", query: rules.Query{SystemID: "call_of_cthulhu"}, want: []string{"r3"}},
		{name: "category", query: rules.Query{Category: "Core Mechanics"}, want: []string{"r1", "r3"}},
		{name: "title is case insensitive", query: rules.Query{Text: "  GRAPPLE "}, want: []string{"r2"}},
		{name: "full text", query: rules.Query{Text: "higher"}, want: []string{"r1"}},
		{name: "tag", query: rules.Query{Text: "melee"}, want: []string{"r2"}},
		{name: "description", query: rules.Query{Text: "house"}, want: []string{"r4"}},
		{name: "combined", query: rules.Query{Text: "roll", SystemID: "dnd5e"}, want: []string{"r1"}},
		{name: "no match", query: rules.Query{Text: "spaceship"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(rules.Filter(fixtures(), tt.query)))
		})
	}
}

func TestCategorize(t *testing.T) {
	all := rules.Categorize(fixtures(), "")
	require.Len(t, all, 8)
	assert.Equal(t, rules.CategoryNames()[0], all[0].Name)

	counts := map[string]int{}
	for _, c := range all {
		counts[c.Name] = c.Count
		assert.NotEmpty(t, c.Icon)
		assert.NotEmpty(t, c.Color)
	}
	assert.Equal(t, 2, counts["Core Mechanics"])
	assert.Equal(t, 1, counts["Combat"])
	assert.Equal(t, 1, counts["Optional Rules"])
	assert.Equal(t, 0, counts["Equipment"])
	assert.NotContains(t, counts, "Homebrew")

	dnd := rules.Categorize(fixtures(), "dnd5e")
	assert.Equal(t, 1, dnd[0].Count)
}

func TestRecent(t *testing.T) {
	assert.Equal(t, []string{"r3", "r4", "r1"}, ids(rules.Recent(fixtures(), 0, "")))
	assert.Equal(t, []string{"r3", "r4"}, ids(rules.Recent(fixtures(), 2, "")))
	assert.Equal(t, []string{"r4", "r1"}, ids(rules.Recent(fixtures(), 4, "dnd5e")))
	assert.Empty(t, rules.Recent(nil, 4, ""))
}

func TestSummarize(t *testing.T) {
	stats := rules.Summarize(fixtures(), "")

	assert.Equal(t, &rules.Statistics{
		TotalRules:       5,
		CategoryCounts:   map[string]int{"Core Mechanics": 2, "Combat": 1, "Optional Rules": 1, "Homebrew": 1},
		SourceCounts:     map[string]int{"PHB": 2, "Custom": 3},
		RecentlyAccessed: 3,
		CustomRules:      3,
	}, stats)

	coc := rules.Summarize(fixtures(), "call_of_cthulhu")
	assert.Equal(t, 1, coc.TotalRules)
	assert.Equal(t, 1, coc.CustomRules)

	empty := rules.Summarize(nil, "")
	assert.Equal(t, 0, empty.TotalRules)
	assert.NotNil(t, empty.CategoryCounts)
}

func TestSuggest(t *testing.T) {
	assert.Equal(t, []string{"Grapple"}, rules.Suggest(fixtures(), "grapel", 3))
	assert.Equal(t, []string{"Advantage"}, rules.Suggest(fixtures(), "advantge", 3))
	assert.Empty(t, rules.Suggest(fixtures(), "zzzzzzzz", 3))
	assert.Nil(t, rules.Suggest(fixtures(), " ", 3))
	assert.Nil(t, rules.Suggest(fixtures(), "grapple", 0))
}

func TestRuleClone(t *testing.T) {
	r := fixtures()[1]
	clone := r.Clone()
	clone.Tags[0] = "changed"
	assert.Equal(t, "Athletics", r.Tags[0])

	accessed := fixtures()[0]
	c2 := accessed.Clone()
	*c2.LastAccessed = now
	assert.Equal(t, *at(5), *accessed.LastAccessed)

	assert.Nil(t, (*rules.Rule)(nil).Clone())
}
