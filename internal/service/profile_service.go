package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"converso/internal/domain"
	"converso/internal/rating"
	"converso/internal/repository"
)

var ErrInvalidDisplayName = errors.New("invalid display name")

// TranscriptSource entrega la serie real de rating de un usuario; una serie
// vacía activa el historial sintético.
type TranscriptSource interface {
	UserSamples(ctx context.Context, userID string) ([]domain.RatingSample, error)
}

// ProfileService sirve el perfil editable y la vista de historial de rating.
type ProfileService struct {
	logger      *zap.Logger
	profiles    repository.ProfileRepository
	transcripts TranscriptSource
}

func NewProfileService(logger *zap.Logger, profiles repository.ProfileRepository, transcripts TranscriptSource) *ProfileService {
	return &ProfileService{
		logger:      logger,
		profiles:    profiles,
		transcripts: transcripts,
	}
}

// Profile devuelve el perfil guardado, o uno por defecto si el usuario nunca
// lo editó.
func (s *ProfileService) Profile(ctx context.Context, userID string) (domain.UserProfile, error) {
	profile, err := s.profiles.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.UserProfile{ID: userID, DisplayName: domain.DefaultDisplayName}, nil
	}
	if err != nil {
		return domain.UserProfile{}, err
	}
	if strings.TrimSpace(profile.DisplayName) == "" {
		profile.DisplayName = domain.DefaultDisplayName
	}
	return profile, nil
}

// UpdateProfile guarda display name y avatar.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID, displayName, avatarURL string) (domain.UserProfile, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return domain.UserProfile{}, ErrInvalidDisplayName
	}
	now := time.Now().UTC()
	profile := domain.UserProfile{
		ID:          userID,
		DisplayName: displayName,
		AvatarURL:   strings.TrimSpace(avatarURL),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if existing, err := s.profiles.GetByID(ctx, userID); err == nil && !existing.CreatedAt.IsZero() {
		profile.CreatedAt = existing.CreatedAt
	}
	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return domain.UserProfile{}, err
	}
	return profile, nil
}

// RatingHistory arma la proyección para la gráfica: serie real del usuario
// cuando existe, y si no, la serie sintética sembrada con su display name. La
// serie filtrada puede quedar vacía; eso es un resultado válido.
func (s *ProfileService) RatingHistory(ctx context.Context, userID string, window domain.Window) (domain.RatingHistory, error) {
	samples, err := s.transcripts.UserSamples(ctx, userID)
	if err != nil {
		return domain.RatingHistory{}, err
	}
	if len(samples) == 0 {
		profile, err := s.Profile(ctx, userID)
		if err != nil {
			return domain.RatingHistory{}, err
		}
		samples = rating.GenerateHistory(profile.DisplayName, rating.DefaultHistoryDays)
		s.logger.Debug("synthetic rating history",
			zap.String("user_id", userID),
			zap.String("seed", profile.DisplayName),
		)
	}

	filtered := rating.FilterWindow(samples, window, time.Now())
	return domain.RatingHistory{
		Window:  window,
		Points:  rating.Project(filtered),
		Summary: rating.Summarize(filtered),
	}, nil
}
