package geo

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mpetrie/geohunt/internal/dependencies/mocks"
	"github.com/mpetrie/geohunt/internal/dependencies/random"
	"github.com/mpetrie/geohunt/internal/model"
)

func TestSampleStaysWithinRadius(t *testing.T) {
	centers := []model.Point{
		{Latitude: 0, Longitude: 0},
		{Latitude: 51.5074, Longitude: -0.1278}, // London
		{Latitude: -33.8688, Longitude: 151.2093}, // Sydney
		{Latitude: 78.2232, Longitude: 15.6267}, // Svalbard, high latitude
	}
	radii := []float64{10, 500, 5000, 100000}

	sampler := NewDiskSampler(random.New())

	for _, center := range centers {
		for _, radius := range radii {
			t.Run(fmt.Sprintf("lat%.2f_r%.0f", center.Latitude, radius), func(t *testing.T) {
				for i := 0; i < 200; i++ {
					p := sampler.Sample(center, radius)
					assert.True(t, p.Valid(), "sampled point out of coordinate bounds: %+v", p)
					dist := Distance(center, p)
					// Small tolerance for floating point at tiny radii
					assert.LessOrEqual(t, dist, radius*1.0001,
						"sample %d at distance %.2fm exceeds radius %.2fm", i, dist, radius)
				}
			})
		}
	}
}

func TestSampleIsDeterministicForFixedRandomSource(t *testing.T) {
	center := model.Point{Latitude: 48.8566, Longitude: 2.3522}

	rnd := mocks.NewMockRandom()
	rnd.QueueFloat64(0.25, 0.5)
	first := NewDiskSampler(rnd).Sample(center, 1000)

	rnd2 := mocks.NewMockRandom()
	rnd2.QueueFloat64(0.25, 0.5)
	second := NewDiskSampler(rnd2).Sample(center, 1000)

	assert.Equal(t, first, second)
}

func TestSampleZeroDrawReturnsCenterDistanceZero(t *testing.T) {
	center := model.Point{Latitude: 40.7128, Longitude: -74.0060}

	rnd := mocks.NewMockRandom()
	rnd.QueueFloat64(0, 0)
	p := NewDiskSampler(rnd).Sample(center, 2500)

	assert.InDelta(t, 0, Distance(center, p), 0.001)
}

func TestSampleMaxDrawApproachesRadius(t *testing.T) {
	center := model.Point{Latitude: 40.7128, Longitude: -74.0060}

	rnd := mocks.NewMockRandom()
	rnd.QueueFloat64(0.999999999, 0.75)
	p := NewDiskSampler(rnd).Sample(center, 2500)

	dist := Distance(center, p)
	assert.Greater(t, dist, 2499.0)
	assert.LessOrEqual(t, dist, 2500.1)
}
