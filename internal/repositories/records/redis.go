package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	dnderr "github.com/KirkDiggler/rpg-keeper/internal/errors"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// Redis is a Store backed by Redis. Each record is a JSON string at
// "<kind>:<id>"; insertion order lives in the list "<kind>s" and each index
// value in the list "<index>:<value>:<kind>s".
type Redis[T Record[T]] struct {
	client redis.UniversalClient
	cfg    Config[T]
	decode func([]byte) (T, error)
}

// RedisConfig holds configuration for a Redis store
type RedisConfig[T any] struct {
	Client redis.UniversalClient
	Config[T]

	// New returns an empty record to decode into
	New func() T
}

// NewRedis creates a Redis-backed store
func NewRedis[T Record[T]](cfg *RedisConfig[T]) *Redis[T] {
	if cfg == nil {
		panic("RedisConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}
	if cfg.New == nil {
		panic("record constructor is required")
	}

	newRecord := cfg.New
	return &Redis[T]{
		client: cfg.Client,
		cfg:    cfg.Config,
		decode: func(raw []byte) (T, error) {
			rec := newRecord()
			if err := json.Unmarshal(raw, rec); err != nil {
				var zero T
				return zero, err
			}
			return rec, nil
		},
	}
}

func (r *Redis[T]) key(id string) string {
	return fmt.Sprintf("%s:%s", r.cfg.Kind, id)
}

func (r *Redis[T]) allKey() string {
	return r.cfg.Kind + "s"
}

func (r *Redis[T]) indexKey(index, value string) string {
	return fmt.Sprintf("%s:%s:%ss", index, value, r.cfg.Kind)
}

func (r *Redis[T]) idKey() string {
	return r.cfg.Kind + "_id"
}

func (r *Redis[T]) notFound(id string) error {
	return dnderr.NotFoundf("%s with ID '%s' not found", r.cfg.Kind, id).
		WithMeta(r.idKey(), id)
}

func (r *Redis[T]) checkRecord(rec T) error {
	if isNil(rec) {
		return dnderr.InvalidArgumentf("%s cannot be nil", r.cfg.Kind)
	}
	if rec.GetID() == "" {
		return dnderr.InvalidArgumentf("%s ID is required", r.cfg.Kind)
	}
	return nil
}

func (r *Redis[T]) Create(ctx context.Context, rec T) error {
	if err := r.checkRecord(rec); err != nil {
		return err
	}
	id := rec.GetID()

	exists, err := r.client.Exists(ctx, r.key(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to check %s existence: %w", r.cfg.Kind, err)
	}
	if exists > 0 {
		return dnderr.AlreadyExistsf("%s with ID '%s' already exists", r.cfg.Kind, id).
			WithMeta(r.idKey(), id)
	}

	jsonData, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", r.cfg.Kind, err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.key(id), jsonData, 0)
	pipe.RPush(ctx, r.allKey(), id)
	for _, idx := range r.cfg.Indexes {
		if value := idx.Key(rec); value != "" {
			pipe.RPush(ctx, r.indexKey(idx.Name, value), id)
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to create %s: %w", r.cfg.Kind, err)
	}
	return nil
}

func (r *Redis[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	if id == "" {
		return zero, dnderr.InvalidArgumentf("%s ID is required", r.cfg.Kind)
	}

	jsonData, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return zero, r.notFound(id)
	}
	if err != nil {
		return zero, fmt.Errorf("failed to get %s: %w", r.cfg.Kind, err)
	}

	rec, err := r.decode(jsonData)
	if err != nil {
		return zero, fmt.Errorf("failed to unmarshal %s: %w", r.cfg.Kind, err)
	}
	return rec, nil
}

func (r *Redis[T]) Update(ctx context.Context, rec T) error {
	if err := r.checkRecord(rec); err != nil {
		return err
	}
	id := rec.GetID()

	// The stored copy tells us which index entries move
	existing, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	jsonData, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", r.cfg.Kind, err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.key(id), jsonData, 0)
	for _, idx := range r.cfg.Indexes {
		before, after := idx.Key(existing), idx.Key(rec)
		if before == after {
			continue
		}
		if before != "" {
			pipe.LRem(ctx, r.indexKey(idx.Name, before), 0, id)
		}
		if after != "" {
			pipe.RPush(ctx, r.indexKey(idx.Name, after), id)
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to update %s: %w", r.cfg.Kind, err)
	}
	return nil
}

func (r *Redis[T]) Delete(ctx context.Context, id string) error {
	existing, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.key(id))
	pipe.LRem(ctx, r.allKey(), 0, id)
	for _, idx := range r.cfg.Indexes {
		if value := idx.Key(existing); value != "" {
			pipe.LRem(ctx, r.indexKey(idx.Name, value), 0, id)
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete %s: %w", r.cfg.Kind, err)
	}
	return nil
}

func (r *Redis[T]) List(ctx context.Context) ([]T, error) {
	return r.listKey(ctx, r.allKey())
}

func (r *Redis[T]) ListBy(ctx context.Context, index, value string) ([]T, error) {
	if _, ok := r.cfg.index(index); !ok {
		return nil, dnderr.InvalidArgumentf("%s has no index '%s'", r.cfg.Kind, index)
	}
	return r.listKey(ctx, r.indexKey(index, value))
}

// listKey loads every id in a list in parallel. Ids whose record has gone
// missing are skipped.
func (r *Redis[T]) listKey(ctx context.Context, listKey string) ([]T, error) {
	ids, err := r.client.LRange(ctx, listKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list %s IDs: %w", r.cfg.Kind, err)
	}

	loaded := make([]T, len(ids))
	found := make([]bool, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			rec, err := r.Get(gctx, id)
			if dnderr.IsNotFound(err) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to get %s %s: %w", r.cfg.Kind, id, err)
			}
			loaded[i] = rec
			found[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]T, 0, len(ids))
	for i, rec := range loaded {
		if found[i] {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *Redis[T]) Replace(ctx context.Context, recs []T) error {
	current, err := r.List(ctx)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	for _, rec := range current {
		pipe.Del(ctx, r.key(rec.GetID()))
		for _, idx := range r.cfg.Indexes {
			if value := idx.Key(rec); value != "" {
				pipe.Del(ctx, r.indexKey(idx.Name, value))
			}
		}
	}
	pipe.Del(ctx, r.allKey())

	seen := make(map[string]struct{}, len(recs))
	for _, rec := range recs {
		if err := r.checkRecord(rec); err != nil {
			pipe.Discard()
			return err
		}
		id := rec.GetID()
		if _, dup := seen[id]; dup {
			pipe.Discard()
			return dnderr.AlreadyExistsf("%s with ID '%s' already exists", r.cfg.Kind, id).
				WithMeta(r.idKey(), id)
		}
		seen[id] = struct{}{}

		jsonData, err := json.Marshal(rec)
		if err != nil {
			pipe.Discard()
			return fmt.Errorf("failed to marshal %s: %w", r.cfg.Kind, err)
		}
		pipe.Set(ctx, r.key(id), jsonData, 0)
		pipe.RPush(ctx, r.allKey(), id)
		for _, idx := range r.cfg.Indexes {
			if value := idx.Key(rec); value != "" {
				pipe.RPush(ctx, r.indexKey(idx.Name, value), id)
			}
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to replace %ss: %w", r.cfg.Kind, err)
	}
	return nil
}
