// Package geo maps GPS coordinates to the nearest Malaysian local road
// authority using a fixed table of state-level centroids. This is a coarse
// approximation, not a real reverse geocoder.
package geo

import "math"

const (
	// earthRadiusKm is the haversine sphere radius.
	earthRadiusKm = 6371.0

	// CoverageRadiusKm is the maximum distance at which a nearest-centroid
	// match is considered meaningful. Strictly beyond it the resolver
	// returns FallbackJurisdiction.
	CoverageRadiusKm = 100.0

	// FallbackJurisdiction is returned when no centroid is within coverage.
	FallbackJurisdiction = "JKR Malaysia"
)

// JurisdictionPoint is one representative centroid for a local authority.
// A jurisdiction may appear more than once under several centroids.
type JurisdictionPoint struct {
	Lat  float64
	Long float64
	Name string
}

// jurisdictions is iterated in order; the first point with the minimum
// distance wins ties.
var jurisdictions = []JurisdictionPoint{
	// Peninsular Malaysia
	{6.4414, 100.1986, "JKR Perlis"},
	{6.1184, 100.3685, "JKR Kedah"},
	{6.4500, 100.5000, "JKR Kedah"}, // Kedah north
	{5.4141, 100.3288, "MBPP George Town"},
	{5.3553, 100.4687, "MPSP Seberang Perai"},
	{4.5970, 101.0901, "MBI Ipoh"},
	{4.2000, 100.8500, "JKR Perak"}, // Perak south
	{4.7500, 100.9500, "JKR Perak"}, // Perak central
	{4.3630, 100.9825, "JKR Perak"}, // Tapah area
	{3.1390, 101.6869, "DBKL Kuala Lumpur"},
	{3.0738, 101.5183, "MBPJ Petaling Jaya"},
	{3.1579, 101.7116, "MBSA Shah Alam"},
	{3.0000, 101.4500, "MPS Subang Jaya"},
	{2.9264, 101.6964, "MPKj Kajang"},
	{3.3200, 101.5500, "MPS Selayang"}, // Selayang/Gombak
	{2.9353, 101.9572, "JKR Selangor"},
	{2.9264, 102.2515, "MBNS Seremban"},
	{2.1896, 102.2501, "MBMB Melaka"},
	{1.4927, 103.7414, "MBJB Johor Bahru"},
	{1.8548, 103.0913, "JKR Johor"}, // Johor central
	{2.0150, 102.5600, "MPM Muar"},
	{3.8077, 103.3260, "MPK Kuantan"},
	{3.5200, 102.4500, "JKR Pahang"}, // Pahang central
	{4.2250, 101.9500, "JKR Pahang"}, // Cameron Highlands area
	{5.3117, 103.1324, "MBKT Kuala Terengganu"},
	{6.1254, 102.2381, "MPKB Kota Bharu"},
	{2.0174, 103.4000, "JKR Johor"},         // Johor east
	{1.5400, 103.8000, "MBJB Johor Bahru"},  // JB east
	{2.9480, 101.7900, "DBKL Kuala Lumpur"}, // KL south extent
	{3.1700, 101.7100, "DBKL Kuala Lumpur"}, // KL east
	// Putrajaya & Cyberjaya
	{2.9264, 101.6964, "PPj Putrajaya"},
	{2.9190, 101.6500, "PPj Putrajaya"},
	// Sabah & Sarawak
	{5.9804, 116.0735, "DBKK Kota Kinabalu"},
	{6.0500, 116.0500, "JKR Sabah"},
	{5.3000, 115.5000, "JKR Sabah"}, // Sabah south
	{1.5535, 110.3593, "DBKU Kuching"},
	{2.3000, 111.8500, "JKR Sarawak"}, // Sarawak central
	{2.2800, 111.8300, "MBS Sibu"},
	{4.0300, 114.0000, "JKR Sarawak"}, // Sarawak north
	// Labuan
	{5.2831, 115.2308, "PLB Labuan"},
}

// HaversineKm returns the great-circle distance between two points in km.
// Defined for the full sphere, including out-of-range inputs.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dlat := radians(lat2 - lat1)
	dlng := radians(lng2 - lng1)
	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*math.Sin(dlng/2)*math.Sin(dlng/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Nearest returns the closest centroid's name and its distance in km. The
// table is never empty, so there is always an answer.
func Nearest(lat, lng float64) (string, float64) {
	bestName := FallbackJurisdiction
	bestDist := math.Inf(1)

	for _, p := range jurisdictions {
		if d := HaversineKm(lat, lng, p.Lat, p.Long); d < bestDist {
			bestDist = d
			bestName = p.Name
		}
	}

	return bestName, bestDist
}

// Resolve returns the jurisdiction name responsible for the given
// coordinates, or FallbackJurisdiction when the nearest known centroid is
// strictly farther than CoverageRadiusKm. Safe for concurrent use; the
// table is read-only.
func Resolve(lat, lng float64) string {
	name, dist := Nearest(lat, lng)
	if dist > CoverageRadiusKm {
		return FallbackJurisdiction
	}
	return name
}
