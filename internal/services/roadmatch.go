package services

import (
	"regexp"
	"strings"

	"github.com/paulmach/orb"

	"github.com/ddk220-light/drive-conditions/internal/domain"
	"github.com/ddk220-light/drive-conditions/internal/geo"
)

// StationMatchRadiusMiles bounds how far a surface station may sit from a
// waypoint and still describe its pavement.
const StationMatchRadiusMiles = 15.0

// NearestStation returns the closest station within the match radius, or nil.
func NearestStation(p orb.Point, stations []domain.StationObservation) *domain.StationObservation {
	var best *domain.StationObservation
	bestDist := StationMatchRadiusMiles

	for i := range stations {
		st := &stations[i]
		if st.Point.Lat() == 0 && st.Point.Lon() == 0 {
			continue
		}
		d := geo.Miles(p, st.Point)
		if d <= bestDist {
			best = st
			bestDist = d
		}
	}
	return best
}

var highwayTokenRe = regexp.MustCompile(`\b(I|US|SR|CA|HWY)[- ]?(\d{1,3})\b`)

// highwayNumbers extracts route numbers referenced by a turn instruction,
// e.g. "Merge onto I-80 E toward Reno" yields {"80"}.
func highwayNumbers(instruction string) map[string]struct{} {
	nums := make(map[string]struct{})
	for _, m := range highwayTokenRe.FindAllStringSubmatch(strings.ToUpper(instruction), -1) {
		nums[m[2]] = struct{}{}
	}
	return nums
}

var directionWords = map[string]string{
	"N": "N", "NORTH": "N", "NORTHBOUND": "N",
	"S": "S", "SOUTH": "S", "SOUTHBOUND": "S",
	"E": "E", "EAST": "E", "EASTBOUND": "E",
	"W": "W", "WEST": "W", "WESTBOUND": "W",
}

// directionLetter returns the first compass direction named by the
// instruction, scanning token order so the bearing attached to the highway
// wins over place names later in the sentence.
func directionLetter(instruction string) string {
	for _, tok := range strings.Fields(strings.ToUpper(instruction)) {
		tok = strings.Trim(tok, ".,;:()")
		if d, ok := directionWords[tok]; ok {
			return d
		}
	}
	return ""
}

func restrictionRank(level string) int {
	switch strings.ToUpper(level) {
	case "R3":
		return 3
	case "R2":
		return 2
	case "R1":
		return 1
	}
	return 0
}

// MatchChainControl finds the most restrictive chain requirement whose
// highway appears in the waypoint's turn instruction. Controls without a
// direction apply to both directions; when the instruction names no
// direction every direction matches.
func MatchChainControl(instruction string, controls []domain.ChainControl) *domain.ChainControl {
	if instruction == "" || len(controls) == 0 {
		return nil
	}

	nums := highwayNumbers(instruction)
	if len(nums) == 0 {
		return nil
	}
	dir := directionLetter(instruction)

	var best *domain.ChainControl
	for i := range controls {
		cc := &controls[i]
		hwyNum := strings.TrimLeftFunc(cc.Highway, func(r rune) bool {
			return r < '0' || r > '9'
		})
		if _, ok := nums[hwyNum]; !ok {
			continue
		}
		ccDir := strings.ToUpper(strings.TrimSpace(cc.Direction))
		if dir != "" && ccDir != "" && !strings.HasPrefix(ccDir, dir) {
			continue
		}
		if best == nil || restrictionRank(cc.Level) > restrictionRank(best.Level) {
			best = cc
		}
	}
	return best
}
