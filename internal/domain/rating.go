package domain

import (
	"errors"
	"time"
)

// RatingSample es la unidad que consume la agregación y la gráfica: un punto
// diario derivado 1:1 de cada mensaje del usuario (los del agente no entran a
// la serie).
type RatingSample struct {
	Date   time.Time `json:"date"`
	Rating int       `json:"rating"`
	Delta  int       `json:"delta"`
}

// Window es el período de retención que se aplica a la serie antes de
// graficarla.
type Window string

const (
	Window7d  Window = "7d"
	Window30d Window = "30d"
	WindowAll Window = "all"
)

var ErrInvalidWindow = errors.New("invalid window")

// ParseWindow valida el parámetro de rango tal como llega del cliente.
func ParseWindow(s string) (Window, error) {
	switch Window(s) {
	case Window7d, Window30d, WindowAll:
		return Window(s), nil
	case "":
		return Window30d, nil
	}
	return "", ErrInvalidWindow
}

// Days devuelve el ancho de la ventana en días; 0 significa sin recorte.
func (w Window) Days() int {
	switch w {
	case Window7d:
		return 7
	case Window30d:
		return 30
	}
	return 0
}

// ChartPoint es una fila del contrato de proyección hacia la capa de
// presentación.
type ChartPoint struct {
	Label      string `json:"label"`
	UserRating int    `json:"userRating"`
}

// RatingSummary acompaña a la gráfica; Latest es nil cuando la serie filtrada
// quedó vacía (resultado válido, no error).
type RatingSummary struct {
	Change int  `json:"change"`
	Latest *int `json:"latest,omitempty"`
}

// RatingHistory es la respuesta completa para la vista de historial.
type RatingHistory struct {
	Window  Window        `json:"window"`
	Points  []ChartPoint  `json:"points"`
	Summary RatingSummary `json:"summary"`
}
