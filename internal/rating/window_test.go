package rating

import (
	"testing"
	"time"

	"converso/internal/domain"
)

func dailySeries(n int, now time.Time) []domain.RatingSample {
	out := make([]domain.RatingSample, 0, n)
	r := 1500
	for i := n - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		r += 3
		out = append(out, domain.RatingSample{
			Date:   time.Date(day.Year(), day.Month(), day.Day(), 9, 0, 0, 0, time.UTC),
			Rating: r,
			Delta:  3,
		})
	}
	return out
}

func TestFilterWindowAllPassthrough(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	series := dailySeries(45, now)
	got := FilterWindow(series, domain.WindowAll, now)
	if len(got) != len(series) {
		t.Fatalf("all window changed length: %d vs %d", len(got), len(series))
	}
	for i := range got {
		if got[i] != series[i] {
			t.Fatalf("all window reordered sample %d", i)
		}
	}
}

func TestFilterWindow30dOnDailySeries(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	series := dailySeries(45, now)
	got := FilterWindow(series, domain.Window30d, now)
	// El corte es now−30d inclusivo; con el ancla de las 09:00 y un "now" de
	// mediodía quedan exactamente 30 muestras.
	if len(got) != 30 {
		t.Fatalf("30d window kept %d samples, want 30", len(got))
	}
	if got[len(got)-1] != series[len(series)-1] {
		t.Fatalf("30d window dropped the newest sample")
	}
}

func TestFilterWindowBoundaryInclusive(t *testing.T) {
	now := time.Date(2026, time.March, 15, 9, 0, 0, 0, time.UTC)
	onBoundary := domain.RatingSample{Date: now.AddDate(0, 0, -7), Rating: 1510, Delta: 1}
	// La muestra un segundo antes del corte debe caer.
	outside := domain.RatingSample{Date: now.AddDate(0, 0, -7).Add(-time.Second), Rating: 1500, Delta: 1}

	got := FilterWindow([]domain.RatingSample{outside, onBoundary}, domain.Window7d, now)
	if len(got) != 1 || got[0] != onBoundary {
		t.Fatalf("inclusive boundary not honored: %+v", got)
	}
}

func TestFilterWindowSortsUnsortedInput(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	series := dailySeries(5, now)
	shuffled := []domain.RatingSample{series[3], series[0], series[4], series[2], series[1]}
	got := FilterWindow(shuffled, domain.WindowAll, now)
	for i := range series {
		if got[i] != series[i] {
			t.Fatalf("sample %d out of order after filter", i)
		}
	}
}

func TestFilterWindowSkipsZeroTimestamps(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	series := append(dailySeries(3, now), domain.RatingSample{Rating: 9999})
	got := FilterWindow(series, domain.WindowAll, now)
	if len(got) != 3 {
		t.Fatalf("zero-timestamp sample not skipped, got %d samples", len(got))
	}
}

func TestSummarize(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	series := dailySeries(10, now)
	sum := Summarize(series)
	if sum.Change != series[len(series)-1].Rating-series[0].Rating {
		t.Fatalf("change = %d", sum.Change)
	}
	if sum.Latest == nil || *sum.Latest != series[len(series)-1].Rating {
		t.Fatalf("latest = %v", sum.Latest)
	}
}

func TestSummarizeEmptySeries(t *testing.T) {
	sum := Summarize(nil)
	if sum.Change != 0 {
		t.Fatalf("empty series change = %d, want 0", sum.Change)
	}
	if sum.Latest != nil {
		t.Fatalf("empty series latest = %v, want nil", *sum.Latest)
	}
}

func TestSamplesFromMessages(t *testing.T) {
	ts := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	msgs := []domain.Message{
		{ID: 1, Role: domain.RoleBot, Rating: 1600, Delta: 0, Timestamp: ts},
		{ID: 2, Role: domain.RoleUser, Rating: 1612, Delta: 12, Timestamp: ts.Add(time.Minute)},
		{ID: 3, Role: domain.RoleUser, Rating: 1605, Delta: -7}, // sin timestamp
		{ID: 4, Role: domain.RoleUser, Rating: 1620, Delta: 15, Timestamp: ts.Add(2 * time.Minute)},
	}
	got := SamplesFromMessages(msgs)
	if len(got) != 2 {
		t.Fatalf("expected 2 samples (user-only, valid timestamps), got %d", len(got))
	}
	if got[0].Rating != 1612 || got[1].Rating != 1620 {
		t.Fatalf("unexpected samples: %+v", got)
	}
}

func TestProjectLabels(t *testing.T) {
	s := []domain.RatingSample{{
		Date:   time.Date(2026, time.March, 5, 9, 0, 0, 0, time.UTC),
		Rating: 1532,
	}}
	pts := Project(s)
	if len(pts) != 1 || pts[0].Label != "Mar 5" || pts[0].UserRating != 1532 {
		t.Fatalf("unexpected projection: %+v", pts)
	}
}
