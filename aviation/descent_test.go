// aviation/descent_test.go
// Copyright(c) 2025 zoaref contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import "testing"

func TestParseFLAltitude(t *testing.T) {
	for s, want := range map[string]int{"100": 10000, "020": 2000, "350": 35000, " 90 ": 9000} {
		got, ok := parseFLAltitude(s)
		if !ok || got != want {
			t.Errorf("parseFLAltitude(%q) = %d, %v; wanted %d", s, got, ok, want)
		}
	}
	if _, ok := parseFLAltitude("FL100"); ok {
		t.Error("parsed non-numeric altitude")
	}
}

func TestIsDistanceInput(t *testing.T) {
	for s, want := range map[string]bool{"25": true, "5": true, "12.5": true, "100.0": true, "020": false, "350": false} {
		if got := isDistanceInput(s); got != want {
			t.Errorf("isDistanceInput(%q) = %v, wanted %v", s, got, want)
		}
	}
}

func TestCalculateDescentDistance(t *testing.T) {
	// FL100 down to 2,000 ft: 8,000 ft at 318 ft/nm is about 25 nm.
	result, ok := CalculateDescent("100", "020")
	if !ok {
		t.Fatal("descent calculation failed")
	}
	if result.Mode != DistanceNeeded {
		t.Errorf("got mode %d", result.Mode)
	}
	if result.CurrentAlt != 10000 || result.TargetAlt != 2000 {
		t.Errorf("got %+v", result)
	}
	if result.DistanceNeeded < 25.1 || result.DistanceNeeded > 25.2 {
		t.Errorf("got %.2f nm, wanted about 25.16", result.DistanceNeeded)
	}
}

func TestCalculateDescentAltitude(t *testing.T) {
	// FL350, 25 nm of descent.
	result, ok := CalculateDescent("350", "25")
	if !ok {
		t.Fatal("descent calculation failed")
	}
	if result.Mode != AltitudeAtDistance {
		t.Errorf("got mode %d", result.Mode)
	}
	if result.AltitudeLost != 7950 || result.AltitudeAt != 35000-7950 {
		t.Errorf("got %+v", result)
	}

	// Fractional distances work too.
	result, ok = CalculateDescent("100", "12.5")
	if !ok {
		t.Fatal("descent calculation failed")
	}
	if result.AltitudeLost != 3975 {
		t.Errorf("lost %d ft, wanted 3975", result.AltitudeLost)
	}
}

func TestCalculateDescentBadInput(t *testing.T) {
	if _, ok := CalculateDescent("abc", "020"); ok {
		t.Error("accepted bad current altitude")
	}
	if _, ok := CalculateDescent("100", "x"); ok {
		t.Error("accepted bad distance")
	}
	if _, ok := CalculateDescent("100", "abc"); ok {
		t.Error("accepted bad target altitude")
	}
}
