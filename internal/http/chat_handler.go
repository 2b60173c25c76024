package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"converso/internal/repository"
	"converso/internal/service"
)

// ChatHandler mantiene dependencias para endpoints de sesiones y turnos.
type ChatHandler struct {
	logger *zap.Logger
	chat   *service.ChatService
}

func NewChatHandler(logger *zap.Logger, chat *service.ChatService) *ChatHandler {
	return &ChatHandler{logger: logger, chat: chat}
}

// CreateSession maneja POST /session.
func (h *ChatHandler) CreateSession(c *gin.Context) {
	claims, _ := GetAuthClaims(c)

	var req struct {
		Lang  string `json:"lang" binding:"required"`
		Level string `json:"level"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create session request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	session, err := h.chat.StartSession(c.Request.Context(), claims.UserID, req.Lang, req.Level)
	switch {
	case errors.Is(err, service.ErrInvalidLanguage), errors.Is(err, service.ErrInvalidLevel):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		h.logger.Error("create session failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"session": session})
}

// GetSession maneja GET /session/:id.
func (h *ChatHandler) GetSession(c *gin.Context) {
	session, err := h.chat.Session(c.Request.Context(), c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	if err != nil {
		h.logger.Error("get session failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// GetMessages maneja GET /session/:id/messages.
func (h *ChatHandler) GetMessages(c *gin.Context) {
	messages, err := h.chat.Transcript(c.Request.Context(), c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	if err != nil {
		h.logger.Error("get messages failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load messages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// PostTurn maneja POST /session/:id/message. Un fallo del intercambio no es un
// fallo del endpoint: el turno queda registrado con el mensaje de error del
// agente y la respuesta lo indica en exchange_error.
func (h *ChatHandler) PostTurn(c *gin.Context) {
	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid turn request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	result, err := h.chat.SendTurn(c.Request.Context(), c.Param("id"), req.Message)
	switch {
	case errors.Is(err, service.ErrEmptyMessage):
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty message"})
		return
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	case errors.Is(err, service.ErrTurnInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": "a turn is already in flight"})
		return
	case err != nil:
		h.logger.Error("turn failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not process turn"})
		return
	}

	c.JSON(http.StatusCreated, result)
}
