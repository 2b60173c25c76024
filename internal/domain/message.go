package domain

import "time"

const (
	RoleUser = "user"
	RoleBot  = "bot"
)

// Message es un turno del transcript. Rating es el total acumulado del autor
// inmediatamente después de aplicar Delta; un mensaje nunca se modifica una
// vez agregado al historial.
type Message struct {
	ID        int64     `json:"id"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Rating    int       `json:"rating"`
	Delta     int       `json:"delta"`
	Timestamp time.Time `json:"ts"`
}

// HistoryEntry es la forma reducida {role, text} que viaja al agente remoto.
type HistoryEntry struct {
	Role string `json:"role"`
	Text string `json:"text"`
}
