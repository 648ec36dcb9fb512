package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"xplogd-live/internal/pipeline"
)

// positionKey guarda la última posición recibida; expira a los gap
// segundos, de modo que "existe la clave" == "hay un avión activo".
const positionKey = "xplogd:live"

var ErrNotFound = errors.New("store: no active position")

type Store struct {
	rdb *redis.Client
	gap time.Duration
}

func InitRedis(ctx context.Context, addr string, db int, gap time.Duration) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return New(rdb, gap), nil
}

func New(rdb *redis.Client, gap time.Duration) *Store {
	return &Store{rdb: rdb, gap: gap}
}

func (s *Store) Close() error {
	return s.rdb.Close()
}

func (s *Store) SavePosition(ctx context.Context, p *pipeline.Position) error {
	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("store: encode position: %w", err)
	}
	if err := s.rdb.Set(ctx, positionKey, b, s.gap).Err(); err != nil {
		return fmt.Errorf("store: redis SET %s: %w", positionKey, err)
	}
	return nil
}

// ActivePosition devuelve la última posición si se recibió dentro de la
// ventana gap; si no, ErrNotFound.
func (s *Store) ActivePosition(ctx context.Context) (*pipeline.Position, error) {
	val, err := s.rdb.Get(ctx, positionKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: redis GET %s: %w", positionKey, err)
	}

	var p pipeline.Position
	if err := json.Unmarshal(val, &p); err != nil {
		return nil, fmt.Errorf("store: decode position: %w", err)
	}
	// el TTL ya lo cubre; esto protege de relojes o gap cambiados en caliente
	if !p.Time.IsZero() && time.Since(p.Time) > s.gap {
		return nil, ErrNotFound
	}
	return &p, nil
}
