package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"converso/internal/agent"
	"converso/internal/domain"
)

func TestProfileRoundTrip(t *testing.T) {
	r, _ := chatRouter(&agent.MockExchanger{})

	rec := doJSON(t, r, http.MethodPut, "/profile", map[string]string{
		"display_name": "Alice",
		"avatar_url":   "https://cdn.example.com/a.png",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update profile: %d %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, r, http.MethodGet, "/profile", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get profile: %d", rec.Code)
	}
	var resp struct {
		Profile domain.UserProfile `json:"profile"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	if resp.Profile.DisplayName != "Alice" {
		t.Fatalf("display name = %q", resp.Profile.DisplayName)
	}
}

func TestRatingHistoryEndpoint(t *testing.T) {
	r, _ := chatRouter(&agent.MockExchanger{})

	rec := doJSON(t, r, http.MethodGet, "/profile/rating-history?window=all", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var hist domain.RatingHistory
	if err := json.Unmarshal(rec.Body.Bytes(), &hist); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	// Sin mensajes reales el backend responde la serie sintética completa.
	if len(hist.Points) != 45 {
		t.Fatalf("points = %d, want 45", len(hist.Points))
	}
	if hist.Summary.Latest == nil {
		t.Fatalf("latest missing on non-empty series")
	}
}

func TestRatingHistoryInvalidWindow(t *testing.T) {
	r, _ := chatRouter(&agent.MockExchanger{})
	rec := doJSON(t, r, http.MethodGet, "/profile/rating-history?window=90d", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestLanguageSelectionFlow(t *testing.T) {
	r, _ := chatRouter(&agent.MockExchanger{})

	// Sin selección previa el cliente debe volver al selector.
	rec := doJSON(t, r, http.MethodGet, "/language", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before selection, got %d", rec.Code)
	}

	rec = doJSON(t, r, http.MethodPut, "/language", map[string]string{"name": "french", "level": "intermediate"})
	if rec.Code != http.StatusOK {
		t.Fatalf("put selection: %d %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, r, http.MethodGet, "/language", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get selection: %d", rec.Code)
	}
	var resp struct {
		Selection domain.LanguageSelection `json:"selection"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode selection: %v", err)
	}
	if resp.Selection.Name != "French" || resp.Selection.Level != domain.LevelIntermediate {
		t.Fatalf("unexpected selection: %+v", resp.Selection)
	}

	rec = doJSON(t, r, http.MethodPut, "/language", map[string]string{"name": "klingon"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown language: expected 400, got %d", rec.Code)
	}
}

func TestListLanguages(t *testing.T) {
	r, _ := chatRouter(&agent.MockExchanger{})
	rec := doJSON(t, r, http.MethodGet, "/languages", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Languages []domain.Language `json:"languages"`
		Levels    []string          `json:"levels"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode catalog: %v", err)
	}
	if len(resp.Languages) != 12 || len(resp.Levels) != 3 {
		t.Fatalf("catalog = %d languages, %d levels", len(resp.Languages), len(resp.Levels))
	}
}
