package cluster

import (
	"github.com/rnleach/satfire/internal/pixel"
	"github.com/rnleach/satfire/internal/satimage"
)

// Build groups points into clusters by 8-neighborhood (Chebyshev distance
// <= 1) connected-component labeling in raster index space, and returns one
// Cluster per component. Build is a pure function with no I/O so it can be
// tested directly against literal scenarios.
func Build(points []satimage.FirePoint, prov Provenance) []Cluster {
	unlabeled := make([]bool, len(points))
	for i := range unlabeled {
		unlabeled[i] = true
	}

	var clusters []Cluster

	for seed := 0; seed < len(points); seed++ {
		if !unlabeled[seed] {
			continue
		}

		member := make([]bool, len(points))
		member[seed] = true
		unlabeled[seed] = false

		for {
			addedAny := false
			for i := range points {
				if !unlabeled[i] {
					continue
				}
				if adjacentToAnyMember(points[i], points, member) {
					member[i] = true
					unlabeled[i] = false
					addedAny = true
				}
			}
			if !addedAny {
				break
			}
		}

		members := pixel.NewList(0)
		for i := range points {
			if member[i] {
				members = append(members, pointToPixel(points[i]))
			}
		}

		clusters = append(clusters, fromPixelList(prov, members))
	}

	return clusters
}

// adjacentToAnyMember reports whether candidate's (x, y) is within
// Chebyshev distance 1 of any point already accepted into the component.
func adjacentToAnyMember(candidate satimage.FirePoint, points []satimage.FirePoint, member []bool) bool {
	for i, isMember := range member {
		if !isMember {
			continue
		}
		if chebyshevAdjacent(candidate, points[i]) {
			return true
		}
	}
	return false
}

func chebyshevAdjacent(a, b satimage.FirePoint) bool {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return dx <= 1 && dy <= 1
}

func pointToPixel(p satimage.FirePoint) pixel.Pixel {
	return pixel.New(
		p.UL, p.LL, p.LR, p.UR,
		p.Power, p.Area, p.Temperature, p.ScanAngle,
		p.MaskFlag, p.DataQualityFlag,
	)
}
