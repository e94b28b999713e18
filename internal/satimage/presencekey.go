package satimage

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// PresenceKey identifies one processed image: the tuple the cluster store
// uses to decide whether an image has already been ingested.
type PresenceKey struct {
	Satellite Satellite
	Sector    Sector
	ScanStart time.Time
	ScanEnd   time.Time
}

// timestampTokenLen is the length of a "YYYYJJJHHMMSS" timestamp token:
// year(4) + day-of-year(3) + hour(2) + minute(2) + second(2).
const timestampTokenLen = 13

// ParsePresenceKey extracts the satellite, sector, and start/end scan
// times from an archive file name. File names carry the satellite and
// sector as substrings, and the scan start/end as "_s" and "_e" prefixed
// 13-character YYYYJJJHHMMSS timestamps followed by a trailing tenths-of-
// a-second digit.
func ParsePresenceKey(name string) (PresenceKey, error) {
	sat, ok := MatchSatellite(name)
	if !ok {
		return PresenceKey{}, fmt.Errorf("satimage.ParsePresenceKey: no recognized satellite token in %q", name)
	}

	sector, ok := MatchSector(name)
	if !ok {
		return PresenceKey{}, fmt.Errorf("satimage.ParsePresenceKey: no recognized sector token in %q", name)
	}

	start, err := parseTimestampToken(name, "_s")
	if err != nil {
		return PresenceKey{}, fmt.Errorf("satimage.ParsePresenceKey: scan start: %w", err)
	}

	end, err := parseTimestampToken(name, "_e")
	if err != nil {
		return PresenceKey{}, fmt.Errorf("satimage.ParsePresenceKey: scan end: %w", err)
	}

	return PresenceKey{Satellite: sat, Sector: sector, ScanStart: start, ScanEnd: end}, nil
}

// parseTimestampToken finds prefix (e.g. "_s" or "_e") in name and parses
// the 13-character YYYYJJJHHMMSS timestamp that immediately follows it.
func parseTimestampToken(name, prefix string) (time.Time, error) {
	idx := strings.Index(name, prefix)
	if idx < 0 {
		return time.Time{}, fmt.Errorf("token %q not found in %q", prefix, name)
	}

	start := idx + len(prefix)
	if start+timestampTokenLen > len(name) {
		return time.Time{}, fmt.Errorf("truncated timestamp after %q in %q", prefix, name)
	}

	tok := name[start : start+timestampTokenLen]

	year, err := strconv.Atoi(tok[0:4])
	if err != nil {
		return time.Time{}, fmt.Errorf("year %q: %w", tok[0:4], err)
	}
	doy, err := strconv.Atoi(tok[4:7])
	if err != nil {
		return time.Time{}, fmt.Errorf("day-of-year %q: %w", tok[4:7], err)
	}
	hour, err := strconv.Atoi(tok[7:9])
	if err != nil {
		return time.Time{}, fmt.Errorf("hour %q: %w", tok[7:9], err)
	}
	minute, err := strconv.Atoi(tok[9:11])
	if err != nil {
		return time.Time{}, fmt.Errorf("minute %q: %w", tok[9:11], err)
	}
	second, err := strconv.Atoi(tok[11:13])
	if err != nil {
		return time.Time{}, fmt.Errorf("second %q: %w", tok[11:13], err)
	}

	return time.Date(year, 1, 1, hour, minute, second, 0, time.UTC).AddDate(0, 0, doy-1), nil
}
