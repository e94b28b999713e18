package cluster

// MaxScanAngle is the strict upper bound a cluster's maximum scan angle
// must fall under to be considered credible; at and beyond it the viewing
// geometry is inside the earth's limb region and unreliable.
const MaxScanAngle = 8.3

// goodMaskFlags are the mask codes considered credible fire detections:
// good, saturated, cloud-contaminated, and high/medium-probability fire,
// with or without temporal filtering.
var goodMaskFlags = map[int16]bool{
	10: true, 11: true, 12: true, 13: true, 14: true,
	30: true, 31: true, 32: true, 33: true, 34: true,
}

// Keep reports whether a cluster is credible enough to persist: its
// maximum scan angle is strictly under MaxScanAngle, and at least one
// member pixel carries a good mask flag. Keep is stable under repeated
// application since it only inspects immutable cluster fields.
func Keep(c Cluster) bool {
	if !(c.MaxScanAngle < MaxScanAngle) {
		return false
	}

	for _, p := range c.Pixels {
		if goodMaskFlags[p.MaskFlag] {
			return true
		}
	}

	return false
}

// KeepAll filters clusters down to those Keep reports true for.
func KeepAll(clusters []Cluster) []Cluster {
	kept := make([]Cluster, 0, len(clusters))
	for _, c := range clusters {
		if Keep(c) {
			kept = append(kept, c)
		}
	}
	return kept
}
