package services

import (
	"shipping-cost-service/internal/domain"
	"testing"
)

func TestFoldText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Žluťoučký kůň!", "zlutoucky kun"},
		{"  Náměstí Míru 5,   PRAHA 2 ", "namesti miru 5 praha 2"},
		{"Vodičkova 681/12", "vodickova 681 12"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := foldText(tt.in); got != tt.want {
			t.Fatalf("foldText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTextSimilarity(t *testing.T) {
	if s := TextSimilarity("Náměstí Míru 5, Praha", "namesti miru 5 praha, Czechia"); s != 1 {
		t.Fatalf("diacritic/punctuation-insensitive match = %v, want 1", s)
	}
	if s := TextSimilarity("Brno", "Brna"); s != 0.75 {
		t.Fatalf("one edit in four = %v, want 0.75", s)
	}
	if s := TextSimilarity("Ostrava", "Brno, Czechia"); s >= 0.75 {
		t.Fatalf("unrelated places scored %v", s)
	}
	if s := TextSimilarity("   ", "Brno"); s != 0 {
		t.Fatalf("empty input scored %v", s)
	}
}

func TestClosestWithinTolerance(t *testing.T) {
	point := prague

	accepted := []domain.Candidate{{Coordinates: kmNorth(point, 9.9)}}
	if _, d, ok := ClosestWithin(accepted, point, 10); !ok || d < 9.89 || d > 9.91 {
		t.Fatalf("9.9 km candidate: ok=%v d=%v", ok, d)
	}

	rejected := []domain.Candidate{{Coordinates: kmNorth(point, 10.1)}}
	if _, _, ok := ClosestWithin(rejected, point, 10); ok {
		t.Fatal("10.1 km candidate must be rejected")
	}

	mixed := []domain.Candidate{
		{Coordinates: kmNorth(point, 9.9), FormattedAddress: "far"},
		{Coordinates: kmNorth(point, 2), FormattedAddress: "near"},
		{Coordinates: kmNorth(point, 50), FormattedAddress: "out"},
	}
	best, _, ok := ClosestWithin(mixed, point, 10)
	if !ok || best.FormattedAddress != "near" {
		t.Fatalf("best = %+v", best)
	}
}

func TestMostSimilar(t *testing.T) {
	cands := []domain.Candidate{
		{FormattedAddress: "Bruntál, Czechia"},
		{FormattedAddress: "Brno, Czechia"},
	}
	best, score, ok := MostSimilar(cands, "Brno", 0.75)
	if !ok || best.FormattedAddress != "Brno, Czechia" || score != 1 {
		t.Fatalf("best = %+v score=%v ok=%v", best, score, ok)
	}
	if _, _, ok := MostSimilar(cands, "Ostrava", 0.75); ok {
		t.Fatal("expected no similar candidate")
	}
}
