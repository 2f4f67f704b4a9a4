// math/geo_test.go
// Copyright(c) 2025 zoaref contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	gomath "math"
	"testing"
)

func TestNMDistance2LL(t *testing.T) {
	for _, tc := range []struct {
		name string
		a, b Point2LL
		dist float32
	}{
		{name: "same point", a: Point2LL{-122.2236, 37.7259}, b: Point2LL{-122.2236, 37.7259}, dist: 0},
		// one degree of latitude is 60nm
		{name: "one degree latitude", a: Point2LL{-122, 37}, b: Point2LL{-122, 38}, dist: 60.04},
		// OAK VOR to SFO, roughly
		{name: "OAK to SFO", a: Point2LL{-122.2236, 37.7259}, b: Point2LL{-122.3748, 37.6188}, dist: 9.77},
	} {
		t.Run(tc.name, func(t *testing.T) {
			d := NMDistance2LL(tc.a, tc.b)
			if gomath.Abs(float64(d-tc.dist)) > 0.25 {
				t.Errorf("got distance %.2f, expected %.2f", d, tc.dist)
			}
		})
	}
}

func TestNMDistanceSymmetric(t *testing.T) {
	a := Point2LL{-121.5, 38.2}
	b := Point2LL{-119.9, 36.7}
	if d1, d2 := NMDistance2LL(a, b), NMDistance2LL(b, a); d1 != d2 {
		t.Errorf("distance not symmetric: %f vs %f", d1, d2)
	}
}

func TestCardinalDirection(t *testing.T) {
	for _, tc := range []struct {
		dlat, dlon float32
		want       string
	}{
		{1, 0, "N"},
		{-1, 0, "S"},
		{0, 1, "E"},
		{0, -1, "W"},
		{1, 1, "NE"},
		{-1, -1, "SW"},
		{0.6, -0.2, "N"}, // longitude below threshold
		{0.1, 0.3, "E"},  // both below threshold, dominant axis
		{0.2, 0.1, "N"},
	} {
		if got := CardinalDirection(tc.dlat, tc.dlon); got != tc.want {
			t.Errorf("CardinalDirection(%v, %v) = %q, want %q", tc.dlat, tc.dlon, got, tc.want)
		}
	}
}
