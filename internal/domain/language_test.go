package domain

import (
	"errors"
	"testing"
)

func TestFindLanguage(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Spanish", "Spanish", true},
		{"spanish", "Spanish", true},
		{"  Español ", "Spanish", true},
		{"es", "Spanish", true},
		{"klingon", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := FindLanguage(c.in)
		if ok != c.ok || got.Name != c.want {
			t.Fatalf("FindLanguage(%q) = %q, %v; want %q, %v", c.in, got.Name, ok, c.want, c.ok)
		}
	}
}

func TestValidLevel(t *testing.T) {
	for _, l := range []string{"", "beginner", "intermediate", "advanced"} {
		if !ValidLevel(l) {
			t.Fatalf("ValidLevel(%q) = false", l)
		}
	}
	if ValidLevel("expert") {
		t.Fatalf("ValidLevel(expert) = true")
	}
}

func TestParseWindow(t *testing.T) {
	if w, err := ParseWindow(""); err != nil || w != Window30d {
		t.Fatalf("empty window = %v, %v; want default 30d", w, err)
	}
	for _, s := range []string{"7d", "30d", "all"} {
		if w, err := ParseWindow(s); err != nil || string(w) != s {
			t.Fatalf("ParseWindow(%q) = %v, %v", s, w, err)
		}
	}
	if _, err := ParseWindow("90d"); !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("expected ErrInvalidWindow")
	}
}

func TestLastHistory(t *testing.T) {
	s := &ChatSession{}
	for i := 0; i < 15; i++ {
		role := RoleUser
		if i%2 == 0 {
			role = RoleBot
		}
		s.History = append(s.History, Message{ID: int64(i + 1), Role: role, Text: "m"})
	}
	got := s.LastHistory(10)
	if len(got) != 10 {
		t.Fatalf("len = %d, want 10", len(got))
	}
	if got[len(got)-1].Role != s.History[len(s.History)-1].Role {
		t.Fatalf("last entry mismatch")
	}
}
