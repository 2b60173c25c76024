package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"converso/internal/domain"
)

// ProfileRepository persiste el perfil editable del usuario (display name y
// avatar).
type ProfileRepository interface {
	Upsert(ctx context.Context, profile domain.UserProfile) error
	GetByID(ctx context.Context, id string) (domain.UserProfile, error)
}

type PgProfileRepository struct {
	pool *pgxpool.Pool
}

func NewPgProfileRepository(pool *pgxpool.Pool) *PgProfileRepository {
	return &PgProfileRepository{pool: pool}
}

func (r *PgProfileRepository) Upsert(ctx context.Context, profile domain.UserProfile) error {
	const query = `
		INSERT INTO user_profiles (id, display_name, avatar_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET display_name = EXCLUDED.display_name,
		    avatar_url   = EXCLUDED.avatar_url,
		    updated_at   = EXCLUDED.updated_at
	`
	_, err := r.pool.Exec(ctx, query,
		profile.ID,
		profile.DisplayName,
		profile.AvatarURL,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	return err
}

func (r *PgProfileRepository) GetByID(ctx context.Context, id string) (domain.UserProfile, error) {
	const query = `
		SELECT id, display_name, avatar_url, created_at, updated_at
		FROM user_profiles
		WHERE id = $1
	`
	var profile domain.UserProfile
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&profile.ID,
		&profile.DisplayName,
		&profile.AvatarURL,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.UserProfile{}, ErrNotFound
	}
	return profile, err
}

// MemoryProfileRepository es el respaldo cuando no hay DATABASE_URL
// configurada.
type MemoryProfileRepository struct {
	mu       sync.RWMutex
	profiles map[string]domain.UserProfile
}

func NewMemoryProfileRepository() *MemoryProfileRepository {
	return &MemoryProfileRepository{profiles: make(map[string]domain.UserProfile)}
}

func (r *MemoryProfileRepository) Upsert(_ context.Context, profile domain.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.profiles[profile.ID]; ok && !existing.CreatedAt.IsZero() {
		profile.CreatedAt = existing.CreatedAt
	}
	if profile.UpdatedAt.IsZero() {
		profile.UpdatedAt = time.Now().UTC()
	}
	r.profiles[profile.ID] = profile
	return nil
}

func (r *MemoryProfileRepository) GetByID(_ context.Context, id string) (domain.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	profile, ok := r.profiles[id]
	if !ok {
		return domain.UserProfile{}, ErrNotFound
	}
	return profile, nil
}
