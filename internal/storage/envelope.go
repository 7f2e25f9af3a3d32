package storage

import (
	"bytes"
	"encoding/json"
	"time"

	dnderr "github.com/KirkDiggler/rpg-keeper/internal/errors"
)

type envelope struct {
	Version   string          `json:"version"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// backup is the layout of a downloadable backup file
type backup struct {
	Version    string          `json:"version"`
	ExportDate time.Time       `json:"exportDate"`
	Data       json.RawMessage `json:"data"`
}

// Encode wraps a snapshot in a versioned envelope
func Encode(s *Snapshot, now time.Time) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to encode snapshot")
	}

	out, err := json.Marshal(envelope{Version: Version, Data: data, Timestamp: now})
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to encode envelope")
	}
	return out, nil
}

// Decode unwraps an envelope. Empty input yields the defaults. Any stored
// version is accepted: the stored data is merged over the defaults, and
// migrated reports whether the version differed. Documents from another
// version get a fresh lastSync.
func Decode(data []byte, now time.Time) (s *Snapshot, migrated bool, err error) {
	s = Default(now)
	if len(bytes.TrimSpace(data)) == 0 {
		return s, false, nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, false, dnderr.WrapWithCode(err, dnderr.CodeInvalidArgument, "stored snapshot is not valid JSON")
	}

	migrated = env.Version != Version
	if isAbsent(env.Data) {
		return s, migrated, nil
	}
	if err := json.Unmarshal(env.Data, s); err != nil {
		return nil, migrated, dnderr.WrapWithCode(err, dnderr.CodeInvalidArgument, "stored snapshot data is malformed").
			WithMeta("version", env.Version)
	}
	if migrated {
		s.LastSync = now
	}
	return s, migrated, nil
}

// ExportBackup renders a snapshot as an indented backup document
func ExportBackup(s *Snapshot, now time.Time) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to encode snapshot")
	}

	out, err := json.MarshalIndent(backup{Version: Version, ExportDate: now, Data: data}, "", "  ")
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to encode backup")
	}
	return out, nil
}

// ImportBackup reads a backup document. Backups without data are rejected.
func ImportBackup(data []byte, now time.Time) (*Snapshot, error) {
	var b backup
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeInvalidArgument, "backup is not valid JSON")
	}
	if isAbsent(b.Data) {
		return nil, dnderr.InvalidArgument("backup has no data")
	}

	s := Default(now)
	if err := json.Unmarshal(b.Data, s); err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeInvalidArgument, "backup data is malformed").
			WithMeta("version", b.Version)
	}
	return s, nil
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
