package satimage

import "strconv"

// Cutoff is the latest known scan_start for a (satellite, sector) pair,
// expressed as the three path-component fields the archive layout encodes
// directly (year, day-of-year, hour) so directory names can be compared
// without a full timestamp parse.
type Cutoff struct {
	Year int
	DOY  int
	Hour int
}

// CutoffFromOperationalSince builds the "process everything" cutoff for a
// satellite: its operational-since date, expressed as a Cutoff.
func CutoffFromOperationalSince(sat Satellite) (Cutoff, bool) {
	t, ok := sat.OperationalSince()
	if !ok {
		return Cutoff{}, false
	}
	return Cutoff{Year: t.Year(), DOY: t.YearDay(), Hour: t.Hour()}, true
}

// PruneDecision is the walker's verdict on whether to descend into a
// directory component.
type PruneDecision int

const (
	Descend PruneDecision = iota
	Accept
	Prune
)

// CutoffLookup resolves the prune cutoff for a (satellite, sector) pair,
// e.g. backed by the cluster store's newest_scan_start or, in
// "process-everything" mode, the satellite's operational-since date.
type CutoffLookup func(Satellite, Sector) (Cutoff, bool)

// ShouldPruneComponent inspects one path component during a depth-first
// directory walk and decides whether to accept it (stop comparing further,
// descend unconditionally), prune it (skip the subtree), or keep comparing
// (descend, because this component carried no cutoff-relevant
// information yet, or because no cutoff could be resolved).
//
// lookup is consulted once a component yields both a satellite and sector
// token. Year/day-of-year/hour components are recognized positionally once
// satellite and sector are known, per the archive layout
// SATELLITE/SECTOR/YEAR/DAY_OF_YEAR/HOUR.
func ShouldPruneComponent(component string, lookup CutoffLookup, state *WalkState) PruneDecision {
	if state.Satellite == "" {
		if sat, ok := MatchSatellite(component); ok {
			state.Satellite = sat
		}
	}
	if state.Sector == "" {
		if sector, ok := MatchSector(component); ok {
			state.Sector = sector
		}
	}

	if state.Satellite == "" || state.Sector == "" {
		return Descend
	}

	cutoff, ok := lookup(state.Satellite, state.Sector)
	if !ok {
		return Descend
	}

	switch {
	case state.Year == 0 && len(component) >= 4:
		year, err := strconv.Atoi(component[:4])
		if err != nil || year <= 2016 {
			return Descend
		}
		state.Year = year
		return compareYear(year, cutoff)

	case state.Year != 0 && state.DOY == 0 && len(component) >= 3:
		doy, err := strconv.Atoi(component[:3])
		if err != nil || doy < 1 || doy > 366 {
			return Descend
		}
		state.DOY = doy
		return compareDOY(state.Year, doy, cutoff)

	case state.DOY != 0 && state.Hour == 0 && len(component) >= 2:
		hour, err := strconv.Atoi(component[:2])
		if err != nil || hour < 0 || hour > 24 {
			return Descend
		}
		state.Hour = hour
		return compareHour(state.Year, state.DOY, hour, cutoff)
	}

	return Descend
}

func compareYear(year int, cutoff Cutoff) PruneDecision {
	switch {
	case year < cutoff.Year:
		return Prune
	case year > cutoff.Year:
		return Accept
	default:
		return Descend
	}
}

func compareDOY(year, doy int, cutoff Cutoff) PruneDecision {
	if year != cutoff.Year {
		return Descend
	}
	switch {
	case doy < cutoff.DOY:
		return Prune
	case doy > cutoff.DOY:
		return Accept
	default:
		return Descend
	}
}

func compareHour(year, doy, hour int, cutoff Cutoff) PruneDecision {
	if year != cutoff.Year || doy != cutoff.DOY {
		return Descend
	}
	if hour < cutoff.Hour {
		return Prune
	}
	return Accept
}

// WalkState accumulates the satellite/sector/year/doy/hour tokens
// recognized so far along one depth-first path from the archive root. The
// walker allocates one per path being descended.
type WalkState struct {
	Satellite Satellite
	Sector    Sector
	Year      int
	DOY       int
	Hour      int
}
