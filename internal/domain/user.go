package domain

import "time"

// UserProfile guarda lo editable desde la pantalla de perfil. DisplayName
// además actúa como semilla del historial sintético cuando el usuario no tiene
// mensajes reales.
type UserProfile struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DefaultDisplayName es el nombre de respaldo cuando el perfil no existe o no
// tiene nombre configurado.
const DefaultDisplayName = "You"
