package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveAtCentroid(t *testing.T) {
	cases := []struct {
		lat, lng float64
		expected string
	}{
		{3.1390, 101.6869, "DBKL Kuala Lumpur"},
		{5.4141, 100.3288, "MBPP George Town"},
		{1.4927, 103.7414, "MBJB Johor Bahru"},
		{5.9804, 116.0735, "DBKK Kota Kinabalu"},
		{1.5535, 110.3593, "DBKU Kuching"},
	}

	for _, c := range cases {
		assert.Equal(t, c.expected, Resolve(c.lat, c.lng))
	}
}

func TestResolveNearCentroid(t *testing.T) {
	// A few km south of the KL centroid, still well inside coverage.
	name, dist := Nearest(3.05, 101.68)
	assert.Equal(t, "DBKL Kuala Lumpur", name)
	assert.Less(t, dist, CoverageRadiusKm)
	assert.Equal(t, "DBKL Kuala Lumpur", Resolve(3.05, 101.68))
}

func TestResolveOutOfCoverage(t *testing.T) {
	cases := []struct {
		lat, lng float64
	}{
		{8.0, 100.0},    // southern Thailand
		{-30.0, 80.0},   // southern Indian Ocean
		{51.5, -0.1},    // London
		{-3.139, -78.3}, // antipode of KL
	}

	for _, c := range cases {
		_, dist := Nearest(c.lat, c.lng)
		assert.Greater(t, dist, CoverageRadiusKm)
		assert.Equal(t, FallbackJurisdiction, Resolve(c.lat, c.lng))
	}
}

func TestResolveCoverageBoundary(t *testing.T) {
	// Due south of the DBKU Kuching centroid (its nearest neighbour is well
	// over 180 km away), so distance is the latitude arc alone: 0.88 deg is
	// ~97.9 km, 0.92 deg is ~102.3 km. Out of coverage only strictly beyond
	// the radius.
	inside, insideDist := Nearest(1.5535-0.88, 110.3593)
	assert.Equal(t, "DBKU Kuching", inside)
	assert.Less(t, insideDist, CoverageRadiusKm)
	assert.Equal(t, "DBKU Kuching", Resolve(1.5535-0.88, 110.3593))

	outside, outsideDist := Nearest(1.5535-0.92, 110.3593)
	assert.Equal(t, "DBKU Kuching", outside)
	assert.Greater(t, outsideDist, CoverageRadiusKm)
	assert.Equal(t, FallbackJurisdiction, Resolve(1.5535-0.92, 110.3593))
}

func TestResolveOutOfRangeInputs(t *testing.T) {
	// Haversine is defined for the full sphere; nonsense latitudes must
	// not panic and still resolve deterministically.
	assert.NotPanics(t, func() {
		Resolve(95.0, 200.0)
		Resolve(-95.0, -200.0)
	})
}

func TestResolveDeterministic(t *testing.T) {
	first := Resolve(4.60, 101.09)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Resolve(4.60, 101.09))
	}
}

func TestResolveTieBreakFirstWins(t *testing.T) {
	// (2.9264, 101.6964) appears twice in the table, first as MPKj Kajang
	// and later as PPj Putrajaya. The first entry wins the tie.
	assert.Equal(t, "MPKj Kajang", Resolve(2.9264, 101.6964))
}

func TestHaversineKm(t *testing.T) {
	assert.Equal(t, 0.0, HaversineKm(3.1390, 101.6869, 3.1390, 101.6869))

	// One degree of latitude is ~111.19 km on a 6371 km sphere.
	assert.InDelta(t, 111.19, HaversineKm(0, 0, 1, 0), 0.01)
	assert.InDelta(t, 111.19, HaversineKm(0, 0, 0, 1), 0.01)

	// Symmetry
	assert.InDelta(t,
		HaversineKm(3.1390, 101.6869, 1.4927, 103.7414),
		HaversineKm(1.4927, 103.7414, 3.1390, 101.6869),
		1e-9)
}
