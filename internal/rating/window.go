package rating

import (
	"sort"
	"time"

	"converso/internal/domain"
)

// SamplesFromMessages deriva la serie de rating del transcript: solo mensajes
// del usuario, y se descartan los de timestamp inválido en vez de abortar la
// serie completa.
func SamplesFromMessages(msgs []domain.Message) []domain.RatingSample {
	out := make([]domain.RatingSample, 0, len(msgs))
	for _, m := range msgs {
		if m.Role != domain.RoleUser || m.Timestamp.IsZero() {
			continue
		}
		out = append(out, domain.RatingSample{Date: m.Timestamp, Rating: m.Rating, Delta: m.Delta})
	}
	return out
}

// FilterWindow recorta la serie a la ventana pedida. El orden ascendente por
// timestamp es precondición del recorte y se garantiza aquí mismo (el caller
// puede entregar la serie desordenada); el sort es estable. El borde de la
// ventana es inclusivo y una serie que queda vacía es un resultado válido.
func FilterWindow(samples []domain.RatingSample, w domain.Window, now time.Time) []domain.RatingSample {
	sorted := make([]domain.RatingSample, 0, len(samples))
	for _, s := range samples {
		if s.Date.IsZero() {
			continue
		}
		sorted = append(sorted, s)
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	days := w.Days()
	if days == 0 {
		return sorted
	}

	since := now.Add(-time.Duration(days) * 24 * time.Hour)
	out := make([]domain.RatingSample, 0, len(sorted))
	for _, s := range sorted {
		if !s.Date.Before(since) {
			out = append(out, s)
		}
	}
	return out
}

// Summarize calcula el cambio dentro de la ventana y el último valor.
// Latest queda en nil para la serie vacía.
func Summarize(filtered []domain.RatingSample) domain.RatingSummary {
	if len(filtered) == 0 {
		return domain.RatingSummary{}
	}
	first := filtered[0]
	last := filtered[len(filtered)-1]
	latest := last.Rating
	return domain.RatingSummary{
		Change: last.Rating - first.Rating,
		Latest: &latest,
	}
}

// Project convierte la serie filtrada en las filas que consume la gráfica.
func Project(filtered []domain.RatingSample) []domain.ChartPoint {
	pts := make([]domain.ChartPoint, 0, len(filtered))
	for _, s := range filtered {
		pts = append(pts, domain.ChartPoint{
			Label:      s.Date.Format("Jan 2"),
			UserRating: s.Rating,
		})
	}
	return pts
}
