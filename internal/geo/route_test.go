package geo

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePolyline(t *testing.T) {
	// The reference example from Google's polyline documentation.
	points := DecodePolyline("_p~iF~ps|U_ulLnnqC_mqNvxq`@")
	require.Len(t, points, 3)

	assert.InDelta(t, 38.5, points[0].Lat(), 1e-9)
	assert.InDelta(t, -120.2, points[0].Lon(), 1e-9)
	assert.InDelta(t, 40.7, points[1].Lat(), 1e-9)
	assert.InDelta(t, -120.95, points[1].Lon(), 1e-9)
	assert.InDelta(t, 43.252, points[2].Lat(), 1e-9)
	assert.InDelta(t, -126.453, points[2].Lon(), 1e-9)
}

func TestDecodePolylineDegenerate(t *testing.T) {
	assert.Empty(t, DecodePolyline(""))

	// Truncated input keeps the points decoded before the cut.
	points := DecodePolyline("_p~iF~ps|U_ulL")
	assert.Len(t, points, 1)
}

func TestCumulativeMiles(t *testing.T) {
	points := []orb.Point{{-120, 39}, {-120, 39.5}, {-120, 40}}
	cum := CumulativeMiles(points)
	require.Len(t, cum, 3)

	assert.Equal(t, 0.0, cum[0])
	assert.InDelta(t, 34.6, cum[1], 0.5)
	assert.InDelta(t, 69.2, cum[2], 1.0)

	assert.Nil(t, CumulativeMiles(nil))
}

func TestProject(t *testing.T) {
	points := []orb.Point{{-120, 39}, {-120, 39.5}, {-120, 40}}
	cum := CumulativeMiles(points)

	// A point slightly east of the middle vertex projects onto it.
	offset, along := Project(points, cum, orb.Point{-119.9, 39.5})
	assert.InDelta(t, cum[1], along, 1e-9)
	assert.Greater(t, offset, 0.0)
	assert.Less(t, offset, 10.0)
}

func TestPointAlong(t *testing.T) {
	points := []orb.Point{{-120, 39}, {-120, 39.5}, {-120, 40}}
	cum := CumulativeMiles(points)

	assert.Equal(t, points[1], PointAlong(points, cum, 10))
	assert.Equal(t, points[2], PointAlong(points, cum, 50))
	assert.Equal(t, points[2], PointAlong(points, cum, 1000), "past the end clamps to the last vertex")
}
