// Package geo provides geodesic point sampling for solution placement.
package geo

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"github.com/mpetrie/geohunt/internal/dependencies/random"
	"github.com/mpetrie/geohunt/internal/model"
)

// Sampler produces candidate points within a radius of a center
type Sampler interface {
	// Sample returns a point uniformly distributed over the disk of
	// radiusMeters centered at center
	Sample(center model.Point, radiusMeters float64) model.Point
}

// DiskSampler samples uniformly over a geodesic disk
type DiskSampler struct {
	random random.Random
}

// Ensure DiskSampler implements Sampler
var _ Sampler = (*DiskSampler)(nil)

// NewDiskSampler creates a DiskSampler using the given random source
func NewDiskSampler(rnd random.Random) *DiskSampler {
	return &DiskSampler{random: rnd}
}

// Sample returns a point within radiusMeters of center. Distance is drawn
// as r*sqrt(u) so density is uniform over the disk area, and the point is
// projected along a random bearing on the Earth's surface so the radius
// holds at all latitudes.
func (s *DiskSampler) Sample(center model.Point, radiusMeters float64) model.Point {
	distance := radiusMeters * math.Sqrt(s.random.Float64())
	bearing := s.random.Float64()*360 - 180

	p := geo.PointAtBearingAndDistance(
		orb.Point{center.Longitude, center.Latitude},
		bearing,
		distance,
	)

	return model.Point{Latitude: p.Lat(), Longitude: p.Lon()}
}

// Distance returns the geodesic distance in meters between two points
func Distance(a, b model.Point) float64 {
	return geo.Distance(
		orb.Point{a.Longitude, a.Latitude},
		orb.Point{b.Longitude, b.Latitude},
	)
}
