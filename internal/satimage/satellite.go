// Package satimage supplies the external-collaborator contract the core
// clustering pipeline consumes a decoded fire-detection image through: the
// Satellite/Sector identity enums, file-name token parsing, and the
// FireSatImage adapter interface. It never decodes a raster itself.
package satimage

import "time"

// Satellite identifies a GOES satellite by its operational platform name.
type Satellite string

const (
	G16 Satellite = "G16"
	G17 Satellite = "G17"
)

// operationalSince is the earliest scan_start a satellite's data can have;
// used as the directory-prune cutoff in "process everything" mode (spec
// §4.5.1) unless an override is stored in the meta table, and in new-only
// mode when no cluster has been stored yet for a (satellite, sector).
var operationalSince = map[Satellite]time.Time{
	G16: time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC),
	G17: time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC),
}

// OperationalSince returns the satellite's operational-since timestamp and
// true, or the zero time and false if the satellite is unrecognized.
func (s Satellite) OperationalSince() (time.Time, bool) {
	t, ok := operationalSince[s]
	return t, ok
}

// String returns the satellite's token as found in archive file names.
func (s Satellite) String() string {
	return string(s)
}

// satelliteTokens lists, in the order file names are scanned, the
// recognized satellite substrings.
var satelliteTokens = []Satellite{G16, G17}

// MatchSatellite returns the first recognized satellite token found as a
// substring of s, and whether one was found.
func MatchSatellite(s string) (Satellite, bool) {
	for _, tok := range satelliteTokens {
		if containsToken(s, string(tok)) {
			return tok, true
		}
	}
	return "", false
}
