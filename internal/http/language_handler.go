package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"converso/internal/domain"
	"converso/internal/repository"
)

// LanguageHandler expone el catálogo y la selección persistida por usuario.
type LanguageHandler struct {
	logger     *zap.Logger
	selections repository.LanguageSelectionRepository
}

func NewLanguageHandler(logger *zap.Logger, selections repository.LanguageSelectionRepository) *LanguageHandler {
	return &LanguageHandler{logger: logger, selections: selections}
}

// ListLanguages maneja GET /languages.
func (h *LanguageHandler) ListLanguages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"languages": domain.Languages,
		"levels":    domain.Levels,
	})
}

// GetSelection maneja GET /language. 404 indica que el cliente debe volver al
// selector de idioma antes de abrir un chat.
func (h *LanguageHandler) GetSelection(c *gin.Context) {
	claims, _ := GetAuthClaims(c)
	sel, err := h.selections.Get(c.Request.Context(), claims.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no language selected"})
		return
	}
	if err != nil {
		h.logger.Error("get language selection failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load selection"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"selection": sel})
}

// PutSelection maneja PUT /language.
func (h *LanguageHandler) PutSelection(c *gin.Context) {
	claims, _ := GetAuthClaims(c)

	var req struct {
		Name  string `json:"name" binding:"required"`
		Level string `json:"level"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid language selection request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	language, ok := domain.FindLanguage(req.Name)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown language"})
		return
	}
	level := strings.TrimSpace(strings.ToLower(req.Level))
	if !domain.ValidLevel(level) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown level"})
		return
	}

	sel := domain.LanguageSelection{Name: language.Name, Level: level}
	if err := h.selections.Set(c.Request.Context(), claims.UserID, sel); err != nil {
		h.logger.Error("save language selection failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save selection"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"selection": sel})
}
