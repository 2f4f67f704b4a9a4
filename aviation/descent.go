// aviation/descent.go
// Copyright(c) 2025 zoaref contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"strconv"
	"strings"
)

// DescentFeetPerNM is the altitude lost per nautical mile on a 3 degree
// glideslope: tan(3°) * 6076 ft/nm.
const DescentFeetPerNM = 318.0

type DescentMode int

const (
	// DistanceNeeded: how many miles to reach a target altitude.
	DistanceNeeded DescentMode = iota
	// AltitudeAtDistance: what altitude results after descending for a
	// given distance.
	AltitudeAtDistance
)

type DescentResult struct {
	Mode       DescentMode
	CurrentAlt int // feet

	// DistanceNeeded mode
	TargetAlt      int
	DistanceNeeded float32 // nm

	// AltitudeAtDistance mode
	Distance     float32 // nm flown
	AltitudeAt   int     // resulting altitude, feet
	AltitudeLost int     // feet descended
}

// parseFLAltitude converts a flight-level style altitude string to feet:
// "100" is 10,000 and "020" is 2,000.
func parseFLAltitude(s string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return v * 100, true
}

// isDistanceInput distinguishes the second argument of a descent query:
// one or two digits (or anything with a decimal point) is a distance in
// nm; three digits is a target altitude.
func isDistanceInput(s string) bool {
	return strings.Contains(s, ".") || len(s) <= 2
}

// CalculateDescent answers both descent questions on a 3 degree
// glideslope. current is FL-style ("100" for 10,000 ft); second is
// either a target altitude ("020") or a distance in nm ("25", "12.5").
func CalculateDescent(current, second string) (DescentResult, bool) {
	currentAlt, ok := parseFLAltitude(current)
	if !ok {
		return DescentResult{}, false
	}

	second = strings.TrimSpace(second)
	if isDistanceInput(second) {
		dist, err := strconv.ParseFloat(second, 32)
		if err != nil {
			return DescentResult{}, false
		}
		lost := int(dist * DescentFeetPerNM)
		return DescentResult{
			Mode:         AltitudeAtDistance,
			CurrentAlt:   currentAlt,
			Distance:     float32(dist),
			AltitudeAt:   currentAlt - lost,
			AltitudeLost: lost,
		}, true
	}

	targetAlt, ok := parseFLAltitude(second)
	if !ok {
		return DescentResult{}, false
	}
	return DescentResult{
		Mode:           DistanceNeeded,
		CurrentAlt:     currentAlt,
		TargetAlt:      targetAlt,
		DistanceNeeded: float32(currentAlt-targetAlt) / DescentFeetPerNM,
	}, true
}
