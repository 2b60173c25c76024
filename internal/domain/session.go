package domain

import "time"

// InitialChatRating es el rating con el que usuario y agente entran a una
// sesión nueva.
const InitialChatRating = 1600

// ChatSession vive solo en memoria: el historial crece de forma monótona y se
// descarta junto con la sesión. El rating corriente de cada lado pertenece a
// la sesión, no a los componentes que calculan deltas.
type ChatSession struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Language   string    `json:"lang"`
	Level      string    `json:"level,omitempty"`
	UserRating int       `json:"user_rating"`
	BotRating  int       `json:"bot_rating"`
	History    []Message `json:"history"`
	CreatedAt  time.Time `json:"created_at"`
}

// LastHistory devuelve las últimas n entradas del historial reducidas a
// {role, text}, en orden cronológico.
func (s *ChatSession) LastHistory(n int) []HistoryEntry {
	msgs := s.History
	if len(msgs) > n {
		msgs = msgs[len(msgs)-n:]
	}
	out := make([]HistoryEntry, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, HistoryEntry{Role: m.Role, Text: m.Text})
	}
	return out
}
