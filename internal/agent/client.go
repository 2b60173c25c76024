// Package agent implementa el intercambio de turnos contra el webhook del
// agente conversacional remoto.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"converso/internal/domain"
)

// Exchanger define la interfaz del intercambio: un request/response por turno,
// sin reintentos automáticos (reenviar es decisión del caller).
type Exchanger interface {
	Send(ctx context.Context, req TurnRequest) (TurnReply, error)
}

// TurnRequest es el cuerpo exacto que espera el webhook.
type TurnRequest struct {
	Message       string                `json:"message"`
	Lang          string                `json:"lang"`
	UserElo       int                   `json:"userElo"`
	BotElo        int                   `json:"botElo"`
	History       []domain.HistoryEntry `json:"history"`
	ChatSessionID string                `json:"chatSessionId"`
}

// TurnReply es el resultado ya extraído. RatingChange viene del servidor y se
// expone tal cual; no se reconcilia con el delta local del tracker.
type TurnReply struct {
	Text         string `json:"text"`
	RatingChange *int   `json:"rating_change,omitempty"`
}

// NoReplyText sustituye una respuesta válida pero sin candidato de texto.
const NoReplyText = "(no reply)"

// DefaultTimeout corta la llamada cuando el webhook no contesta.
const DefaultTimeout = 10 * time.Second

var (
	ErrTimeout = errors.New("agent request timed out")
	// ErrMalformedReply solo aparece cuando el webhook declara JSON y el
	// cuerpo no se puede decodificar; un objeto sin candidatos de texto cae
	// en NoReplyText, no aquí.
	ErrMalformedReply = errors.New("agent reply malformed")
)

// HTTPError es cualquier status fuera de 2xx; Body se captura best-effort.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("HTTP %d", e.Status)
	}
	return fmt.Sprintf("HTTP %d – %s", e.Status, e.Body)
}

// HTTPClient implementa Exchanger contra el webhook configurado.
type HTTPClient struct {
	webhookURL string
	timeout    time.Duration
	client     *http.Client
	logger     *zap.Logger
}

// NewHTTPClient construye el cliente del webhook. Un timeout <= 0 usa
// DefaultTimeout.
func NewHTTPClient(webhookURL string, timeout time.Duration, logger *zap.Logger) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPClient{
		webhookURL: strings.TrimSpace(webhookURL),
		timeout:    timeout,
		client:     &http.Client{},
		logger:     logger,
	}
}

// Send emite un único POST JSON y clasifica el fallo: ErrTimeout cuando vence
// el plazo (la llamada en vuelo se cancela), *HTTPError en status no-2xx y
// error de red envuelto en el resto. La cancelación del ctx del caller se
// respeta igual que el plazo propio.
func (c *HTTPClient) Send(ctx context.Context, req TurnRequest) (TurnReply, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return TurnReply{}, fmt.Errorf("marshal turn request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return TurnReply{}, fmt.Errorf("create turn request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return TurnReply{}, ErrTimeout
		}
		return TurnReply{}, fmt.Errorf("agent request: %w", err)
	}
	defer resp.Body.Close()

	respBody, readErr := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		httpErr := &HTTPError{Status: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
		c.logger.Warn("agent webhook error",
			zap.Int("status", resp.StatusCode),
			zap.String("body", httpErr.Body),
		)
		return TurnReply{}, httpErr
	}
	if readErr != nil {
		return TurnReply{}, fmt.Errorf("read agent response: %w", readErr)
	}

	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		return parseStructuredReply(respBody)
	}
	// Cualquier otro content type se toma como texto literal.
	return TurnReply{Text: orNoReply(string(respBody))}, nil
}

type structuredReply struct {
	TextResponse *string  `json:"text_response"`
	Reply        *string  `json:"reply"`
	RatingChange *float64 `json:"rating_change"`
}

// parseStructuredReply aplica la política de extracción: string JSON pelado,
// luego text_response, luego reply; el primer candidato no nulo gana.
func parseStructuredReply(body []byte) (TurnReply, error) {
	var bare string
	if err := json.Unmarshal(body, &bare); err == nil {
		return TurnReply{Text: orNoReply(bare)}, nil
	}

	var obj structuredReply
	if err := json.Unmarshal(body, &obj); err != nil {
		return TurnReply{}, fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}

	reply := TurnReply{Text: NoReplyText}
	switch {
	case obj.TextResponse != nil:
		reply.Text = orNoReply(*obj.TextResponse)
	case obj.Reply != nil:
		reply.Text = orNoReply(*obj.Reply)
	}
	if obj.RatingChange != nil {
		change := int(math.Round(*obj.RatingChange))
		reply.RatingChange = &change
	}
	return reply, nil
}

func orNoReply(s string) string {
	if t := strings.TrimSpace(s); t != "" {
		return t
	}
	return NoReplyText
}
