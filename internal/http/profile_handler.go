package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"converso/internal/domain"
	"converso/internal/service"
)

// ProfileHandler sirve el perfil y la vista de historial de rating.
type ProfileHandler struct {
	logger   *zap.Logger
	profiles *service.ProfileService
}

func NewProfileHandler(logger *zap.Logger, profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{logger: logger, profiles: profiles}
}

// GetProfile maneja GET /profile.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	claims, _ := GetAuthClaims(c)
	profile, err := h.profiles.Profile(c.Request.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("get profile failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// UpdateProfile maneja PUT /profile.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	claims, _ := GetAuthClaims(c)

	var req struct {
		DisplayName string `json:"display_name" binding:"required"`
		AvatarURL   string `json:"avatar_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update profile request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	profile, err := h.profiles.UpdateProfile(c.Request.Context(), claims.UserID, req.DisplayName, req.AvatarURL)
	if errors.Is(err, service.ErrInvalidDisplayName) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid display name"})
		return
	}
	if err != nil {
		h.logger.Error("update profile failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// RatingHistory maneja GET /profile/rating-history?window=7d|30d|all.
func (h *ProfileHandler) RatingHistory(c *gin.Context) {
	claims, _ := GetAuthClaims(c)

	window, err := domain.ParseWindow(c.Query("window"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid window"})
		return
	}

	history, err := h.profiles.RatingHistory(c.Request.Context(), claims.UserID, window)
	if err != nil {
		h.logger.Error("rating history failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not build rating history"})
		return
	}
	c.JSON(http.StatusOK, history)
}
