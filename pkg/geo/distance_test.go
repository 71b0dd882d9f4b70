package geo

import (
	"math"
	"testing"
)

func TestHaversineKnownDistance(t *testing.T) {
	// St Andrews Old Course to Carnoustie, under 20 km across the Tay.
	km := HaversineKm(56.3431, -2.8025, 56.4935, -2.7184)
	if km < 15 || km > 20 {
		t.Fatalf("unexpected distance: %f km", km)
	}
}

func TestHaversineZeroForSamePoint(t *testing.T) {
	km := HaversineKm(36.5725, -121.9486, 36.5725, -121.9486)
	if math.Abs(km) > 1e-9 {
		t.Fatalf("expected 0, got %f", km)
	}
}

func TestHaversineSymmetric(t *testing.T) {
	a := HaversineKm(51.4700, -0.4543, 48.8566, 2.3522)
	b := HaversineKm(48.8566, 2.3522, 51.4700, -0.4543)
	if math.Abs(a-b) > 1e-9 {
		t.Fatalf("asymmetric: %f vs %f", a, b)
	}
	// Heathrow to Paris is about 350 km.
	if a < 300 || a > 400 {
		t.Fatalf("unexpected distance: %f km", a)
	}
}
