package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"converso/internal/agent"
	"converso/internal/domain"
	"converso/internal/prng"
	"converso/internal/rating"
	"converso/internal/repository"
)

var (
	ErrEmptyMessage    = errors.New("empty message")
	ErrInvalidLanguage = errors.New("invalid language")
	ErrInvalidLevel    = errors.New("invalid level")
	ErrTurnInFlight    = errors.New("a turn is already in flight for this session")
)

// historyWindow es cuántas entradas previas del transcript viajan al agente.
const historyWindow = 10

// TurnResult es el resultado de un turno completo. ExchangeErr queda vacío en
// éxito; cuando el intercambio falla el transcript igual registra el turno con
// un mensaje sintético del agente y la sesión continúa.
type TurnResult struct {
	UserMessage  domain.Message `json:"user_message"`
	BotMessage   domain.Message `json:"bot_message"`
	RatingChange *int           `json:"rating_change,omitempty"`
	ExchangeErr  string         `json:"exchange_error,omitempty"`
}

// ChatService orquesta sesiones y turnos. Todo el estado mutable de una
// sesión (historial, ratings corrientes, flag de envío pendiente) vive aquí,
// enhebrado por sesión; no hay contadores globales.
type ChatService struct {
	logger    *zap.Logger
	sessions  repository.SessionRepository
	exchanger agent.Exchanger

	mu    sync.Mutex
	state map[string]*sessionState
}

// sessionState es el estado por sesión que no forma parte del transcript: los
// trackers sembrados del id de sesión (reproducibles), el contador monótono de
// ids de mensaje y el candado de "un intercambio en vuelo a la vez".
type sessionState struct {
	mu         sync.Mutex
	inFlight   bool
	nextMsgID  int64
	userTurns  *rating.Tracker
	agentTurns *rating.Tracker
}

func NewChatService(logger *zap.Logger, sessions repository.SessionRepository, exchanger agent.Exchanger) *ChatService {
	return &ChatService{
		logger:    logger,
		sessions:  sessions,
		exchanger: exchanger,
		state:     make(map[string]*sessionState),
	}
}

// StartSession crea una sesión con el saludo inicial del agente. El id es el
// identificador opaco de 12 dígitos que espera el webhook.
func (s *ChatService) StartSession(ctx context.Context, userID, lang, level string) (*domain.ChatSession, error) {
	language, ok := domain.FindLanguage(lang)
	if !ok {
		return nil, ErrInvalidLanguage
	}
	level = strings.TrimSpace(strings.ToLower(level))
	if !domain.ValidLevel(level) {
		return nil, ErrInvalidLevel
	}

	session := &domain.ChatSession{
		ID:         newChatSessionID(),
		UserID:     userID,
		Language:   language.Name,
		Level:      level,
		UserRating: domain.InitialChatRating,
		BotRating:  domain.InitialChatRating,
		CreatedAt:  time.Now().UTC(),
	}

	st := s.stateFor(session.ID)
	st.mu.Lock()
	st.nextMsgID++
	session.History = append(session.History, domain.Message{
		ID:        st.nextMsgID,
		Role:      domain.RoleBot,
		Text:      fmt.Sprintf("You are now practicing %s! Say something 👋", session.Language),
		Rating:    session.BotRating,
		Delta:     0,
		Timestamp: time.Now().UTC(),
	})
	st.mu.Unlock()

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	s.logger.Info("chat session started",
		zap.String("session_id", session.ID),
		zap.String("lang", session.Language),
		zap.String("level", session.Level),
	)
	return session, nil
}

// SendTurn ejecuta un turno completo: delta local del usuario, intercambio con
// el agente y mensaje de respuesta. A lo sumo un intercambio por sesión puede
// estar en vuelo; un envío mientras otro está pendiente se rechaza con
// ErrTurnInFlight y el caller decide si reenvía (aquí no hay cola ni retry).
func (s *ChatService) SendTurn(ctx context.Context, sessionID, text string) (TurnResult, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return TurnResult{}, ErrEmptyMessage
	}
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return TurnResult{}, err
	}
	st := s.stateFor(sessionID)

	st.mu.Lock()
	if st.inFlight {
		st.mu.Unlock()
		return TurnResult{}, ErrTurnInFlight
	}
	st.inFlight = true

	// El historial que viaja al agente es el anterior a este turno.
	history := session.LastHistory(historyWindow)

	newUserRating, userDelta := st.userTracker(sessionID).ApplyTurn(session.UserRating)
	session.UserRating = newUserRating
	st.nextMsgID++
	userMsg := domain.Message{
		ID:        st.nextMsgID,
		Role:      domain.RoleUser,
		Text:      trimmed,
		Rating:    newUserRating,
		Delta:     userDelta,
		Timestamp: time.Now().UTC(),
	}
	session.History = append(session.History, userMsg)
	st.mu.Unlock()

	reply, sendErr := s.exchanger.Send(ctx, agent.TurnRequest{
		Message:       trimmed,
		Lang:          session.Language,
		UserElo:       newUserRating,
		BotElo:        session.BotRating,
		History:       history,
		ChatSessionID: session.ID,
	})

	st.mu.Lock()
	defer func() {
		st.inFlight = false
		st.mu.Unlock()
	}()

	if sendErr != nil {
		s.logger.Warn("agent exchange failed",
			zap.String("session_id", session.ID),
			zap.Error(sendErr),
		)
		st.nextMsgID++
		botMsg := domain.Message{
			ID:        st.nextMsgID,
			Role:      domain.RoleBot,
			Text:      "Webhook error: " + exchangeErrText(sendErr),
			Rating:    session.BotRating,
			Delta:     0,
			Timestamp: time.Now().UTC(),
		}
		session.History = append(session.History, botMsg)
		return TurnResult{
			UserMessage: userMsg,
			BotMessage:  botMsg,
			ExchangeErr: exchangeErrText(sendErr),
		}, nil
	}

	// Dos señales de rating sin reconciliar: el delta local y el
	// rating_change del servidor. Para el lado del agente gana rating_change
	// cuando viene; si no, un draw local. El valor crudo se expone aparte.
	var botDelta int
	if reply.RatingChange != nil {
		botDelta = *reply.RatingChange
		session.BotRating += botDelta
	} else {
		session.BotRating, botDelta = st.agentTracker(sessionID).ApplyTurn(session.BotRating)
	}

	st.nextMsgID++
	botMsg := domain.Message{
		ID:        st.nextMsgID,
		Role:      domain.RoleBot,
		Text:      reply.Text,
		Rating:    session.BotRating,
		Delta:     botDelta,
		Timestamp: time.Now().UTC(),
	}
	session.History = append(session.History, botMsg)

	return TurnResult{
		UserMessage:  userMsg,
		BotMessage:   botMsg,
		RatingChange: reply.RatingChange,
	}, nil
}

// Transcript devuelve una copia del historial, segura frente a turnos
// concurrentes.
func (s *ChatService) Transcript(ctx context.Context, sessionID string) ([]domain.Message, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	st := s.stateFor(sessionID)
	st.mu.Lock()
	defer st.mu.Unlock()
	out := make([]domain.Message, len(session.History))
	copy(out, session.History)
	return out, nil
}

// Session devuelve la sesión con el historial copiado.
func (s *ChatService) Session(ctx context.Context, sessionID string) (domain.ChatSession, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return domain.ChatSession{}, err
	}
	st := s.stateFor(sessionID)
	st.mu.Lock()
	defer st.mu.Unlock()
	copied := *session
	copied.History = make([]domain.Message, len(session.History))
	copy(copied.History, session.History)
	return copied, nil
}

// UserSamples junta la serie de rating del usuario a partir de todos sus
// transcripts. Serie vacía significa "sin historial real" y habilita el
// generador sintético aguas arriba.
func (s *ChatService) UserSamples(ctx context.Context, userID string) ([]domain.RatingSample, error) {
	sessions, err := s.sessions.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	var samples []domain.RatingSample
	for _, session := range sessions {
		st := s.stateFor(session.ID)
		st.mu.Lock()
		samples = append(samples, rating.SamplesFromMessages(session.History)...)
		st.mu.Unlock()
	}
	return samples, nil
}

func (s *ChatService) stateFor(sessionID string) *sessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.state[sessionID]
	if !ok {
		st = &sessionState{}
		s.state[sessionID] = st
	}
	return st
}

// Los trackers se siembran del id de sesión, no de un PRNG ambiental, para
// que la caminata de una sesión sea reproducible.
func (st *sessionState) userTracker(sessionID string) *rating.Tracker {
	if st.userTurns == nil {
		st.userTurns = rating.NewTracker(prng.NewSource(sessionID + ":user"))
	}
	return st.userTurns
}

func (st *sessionState) agentTracker(sessionID string) *rating.Tracker {
	if st.agentTurns == nil {
		st.agentTurns = rating.NewTracker(prng.NewSource(sessionID + ":bot"))
	}
	return st.agentTurns
}

func exchangeErrText(err error) string {
	if errors.Is(err, agent.ErrTimeout) {
		return "Request timed out"
	}
	return err.Error()
}

// newChatSessionID genera el identificador numérico de 12 dígitos que el
// webhook acepta como chatSessionId.
func newChatSessionID() string {
	n := 100000000000 + rand.Int64N(900000000000)
	return fmt.Sprintf("%d", n)
}
