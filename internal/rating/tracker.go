// Package rating contiene el núcleo de puntuación: el tracker por turno, el
// generador de historial sintético y la agregación por ventana de tiempo.
package rating

import (
	"converso/internal/prng"
)

// MaxTurnDelta acota la magnitud del delta por turno.
const MaxTurnDelta = 30

// Tracker produce el delta de rating de cada turno. Es un paseo aleatorio
// placeholder, no un algoritmo real de skill-rating; su comportamiento está
// fijado por compatibilidad y no debe "mejorarse". El rating corriente lo
// posee el caller y se enhebra por los argumentos.
type Tracker struct {
	src *prng.Source
}

// NewTracker construye un tracker sobre una fuente explícita, de modo que los
// resultados sean reproducibles en pruebas.
func NewTracker(src *prng.Source) *Tracker {
	return &Tracker{src: src}
}

// ApplyTurn devuelve el rating resultante y el delta aplicado. La magnitud es
// uniforme en [0, 30] y el signo sale de una moneda independiente; una
// magnitud de 0 se fuerza a 1 para que el delta nunca sea cero.
func (t *Tracker) ApplyTurn(current int) (next, delta int) {
	n := int(t.src.Float64() * float64(MaxTurnDelta+1))
	sign := 1
	if t.src.Float64() < 0.5 {
		sign = -1
	}
	if n == 0 {
		n = 1
	}
	delta = sign * n
	return current + delta, delta
}
