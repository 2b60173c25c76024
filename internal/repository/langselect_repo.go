package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"converso/internal/domain"
)

// LanguageSelectionRepository guarda la selección de idioma por usuario: el
// registro que el bootstrap de sesión lee una vez y cuya ausencia manda al
// cliente de vuelta al selector.
type LanguageSelectionRepository interface {
	Set(ctx context.Context, userID string, sel domain.LanguageSelection) error
	Get(ctx context.Context, userID string) (domain.LanguageSelection, error)
}

// redisKV es el subconjunto del cliente redis que usa el repositorio; se
// define aparte para poder simularlo en pruebas.
type redisKV interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

type RedisLanguageSelectionRepository struct {
	client redisKV
	prefix string
}

func NewRedisLanguageSelectionRepository(client *redis.Client) *RedisLanguageSelectionRepository {
	return &RedisLanguageSelectionRepository{
		client: client,
		prefix: "converso:lang:",
	}
}

func newRedisLanguageSelectionRepositoryWithKV(client redisKV) *RedisLanguageSelectionRepository {
	return &RedisLanguageSelectionRepository{client: client, prefix: "converso:lang:"}
}

func (r *RedisLanguageSelectionRepository) Set(ctx context.Context, userID string, sel domain.LanguageSelection) error {
	raw, err := json.Marshal(sel)
	if err != nil {
		return err
	}
	// Sin TTL: la selección vive hasta que el usuario la cambia.
	return r.client.Set(ctx, r.prefix+userID, raw, 0).Err()
}

func (r *RedisLanguageSelectionRepository) Get(ctx context.Context, userID string) (domain.LanguageSelection, error) {
	raw, err := r.client.Get(ctx, r.prefix+userID).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.LanguageSelection{}, ErrNotFound
	}
	if err != nil {
		return domain.LanguageSelection{}, err
	}
	var sel domain.LanguageSelection
	if err := json.Unmarshal(raw, &sel); err != nil {
		return domain.LanguageSelection{}, err
	}
	return sel, nil
}

// MemoryLanguageSelectionRepository es el respaldo cuando no hay redis.
type MemoryLanguageSelectionRepository struct {
	mu    sync.RWMutex
	items map[string]domain.LanguageSelection
}

func NewMemoryLanguageSelectionRepository() *MemoryLanguageSelectionRepository {
	return &MemoryLanguageSelectionRepository{items: make(map[string]domain.LanguageSelection)}
}

func (r *MemoryLanguageSelectionRepository) Set(_ context.Context, userID string, sel domain.LanguageSelection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[userID] = sel
	return nil
}

func (r *MemoryLanguageSelectionRepository) Get(_ context.Context, userID string) (domain.LanguageSelection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sel, ok := r.items[userID]
	if !ok {
		return domain.LanguageSelection{}, ErrNotFound
	}
	return sel, nil
}
