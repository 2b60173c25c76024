package rating

import (
	"math"
	"time"

	"converso/internal/domain"
	"converso/internal/prng"
)

const (
	// DefaultHistoryDays es el largo por defecto de la serie sintética.
	DefaultHistoryDays = 45

	baselineRating = 1500
	historyHour    = 9

	dailySwing    = 20.0
	meanReversion = 0.02
)

// GenerateHistory produce una serie de rating reproducible a partir de una
// clave (típicamente el display name), un punto por día calendario terminando
// hoy, del más antiguo al más reciente. Solo debe usarse cuando no existe
// historial real.
func GenerateHistory(seedKey string, days int) []domain.RatingSample {
	return GenerateHistoryAt(seedKey, days, time.Now())
}

// GenerateHistoryAt es GenerateHistory con el "hoy" inyectado para pruebas.
// Misma clave y mismo número de días producen siempre la misma secuencia.
func GenerateHistoryAt(seedKey string, days int, now time.Time) []domain.RatingSample {
	if days <= 0 {
		days = DefaultHistoryDays
	}
	src := prng.NewSource(seedKey)

	current := baselineRating + int(src.Float64()*100) - 50

	out := make([]domain.RatingSample, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		// Paseo con reversión a la media: sesgado hacia 1500.
		delta := roundHalfUp((src.Float64()-0.5)*dailySwing + float64(baselineRating-current)*meanReversion)
		current += delta

		ts := time.Date(day.Year(), day.Month(), day.Day(), historyHour, 0, 0, 0, day.Location())
		out = append(out, domain.RatingSample{Date: ts, Rating: current, Delta: delta})
	}
	return out
}

// roundHalfUp redondea .5 hacia arriba (math.Round lo hace alejándose de
// cero), para que la serie coincida con clientes que redondean con Math.round.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
