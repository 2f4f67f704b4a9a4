// math/geo.go
// Copyright(c) 2025 zoaref contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"fmt"
	gomath "math"
)

const NauticalMilesToFeet = 6076.12
const FeetToNauticalMiles = 1 / NauticalMilesToFeet

// REarthNM is the Earth's radius in nautical miles.
const REarthNM = 3440.065

// Point2LL represents a 2D point on the Earth in latitude-longitude.
// Important: 0 (x) is longitude, 1 (y) is latitude.
type Point2LL [2]float32

func (p Point2LL) Longitude() float32 {
	return p[0]
}

func (p Point2LL) Latitude() float32 {
	return p[1]
}

func (p Point2LL) IsZero() bool {
	return p[0] == 0 && p[1] == 0
}

// DDString returns the position in decimal degrees, e.g.:
// (39.860901, -75.274864)
func (p Point2LL) DDString() string {
	return fmt.Sprintf("(%f, %f)", p[1], p[0]) // latitude, longitude
}

// NMDistance2LL returns the great-circle distance in nautical miles
// between two lat-long coordinates, via the haversine formula.
// https://www.movable-type.co.uk/scripts/latlong.html
func NMDistance2LL(a Point2LL, b Point2LL) float32 {
	rad := func(d float64) float64 { return d / 180 * gomath.Pi }
	lat1, lon1 := rad(float64(a[1])), rad(float64(a[0]))
	lat2, lon2 := rad(float64(b[1])), rad(float64(b[0]))
	dlat, dlon := lat2-lat1, lon2-lon1

	sqr := func(x float64) float64 { return x * x }
	x := sqr(gomath.Sin(dlat/2)) + gomath.Cos(lat1)*gomath.Cos(lat2)*sqr(gomath.Sin(dlon/2))
	c := 2 * gomath.Atan2(gomath.Sqrt(x), gomath.Sqrt(1-x))

	return float32(REarthNM * c)
}

// CardinalDirection returns a compass label ("N", "SE", ...) for the
// displacement (dlat, dlon) in degrees. Movement below the threshold on an
// axis doesn't contribute; for very short displacements the dominant axis
// alone decides.
func CardinalDirection(dlat, dlon float32) string {
	// about 30nm on the latitude axis
	const threshold = 0.5

	var ns, ew string
	if abs(dlat) > threshold {
		if dlat > 0 {
			ns = "N"
		} else {
			ns = "S"
		}
	}
	if abs(dlon) > threshold {
		if dlon > 0 {
			ew = "E"
		} else {
			ew = "W"
		}
	}

	if ns == "" && ew == "" {
		if abs(dlat) > abs(dlon) {
			if dlat > 0 {
				return "N"
			}
			return "S"
		}
		if dlon > 0 {
			return "E"
		}
		return "W"
	}
	return ns + ew
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
