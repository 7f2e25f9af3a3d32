package records_test

import "github.com/KirkDiggler/rpg-keeper/internal/repositories/records"

type note struct {
	ID    string   `json:"id"`
	Topic string   `json:"topic"`
	Body  string   `json:"body"`
	Tags  []string `json:"tags"`
}

func (n *note) GetID() string { return n.ID }

func (n *note) Clone() *note {
	out := *n
	out.Tags = append([]string(nil), n.Tags...)
	return &out
}

func noteConfig() records.Config[*note] {
	return records.Config[*note]{
		Kind: "note",
		Indexes: []records.Index[*note]{
			{Name: "topic", Key: func(n *note) string { return n.Topic }},
		},
	}
}

func noteIDs(notes []*note) []string {
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.ID)
	}
	return out
}
