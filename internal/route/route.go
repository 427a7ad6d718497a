package route

import (
	"math"
	"math/rand"

	"github.com/ukydev/fleet-telematics-generator/internal/models"
)

// Waypoint is a fixed reference point on a route with its cumulative
// distance from the origin in miles.
type Waypoint struct {
	Lat  float64
	Lon  float64
	Mile float64
}

// Route interpolates positions along an ordered list of waypoints. The last
// waypoint's mile marker defines the total route length.
type Route struct {
	waypoints []Waypoint
}

// gpsJitterStdDev is the standard deviation, in degrees, of the lateral
// noise added to interpolated positions (lane changes, curves, GPS error).
const gpsJitterStdDev = 0.002

// New builds a Route from waypoints ordered by non-decreasing mile marker.
// The slice is copied so callers cannot mutate the route afterwards.
func New(waypoints []Waypoint) *Route {
	wps := make([]Waypoint, len(waypoints))
	copy(wps, waypoints)
	return &Route{waypoints: wps}
}

// Interstate5 returns the I-5 route from San Francisco to Los Angeles.
func Interstate5() *Route {
	return New([]Waypoint{
		{37.7749, -122.4194, 0},   // San Francisco
		{37.7396, -121.9000, 30},  // Dublin/Pleasanton area
		{37.7400, -121.4200, 60},  // Tracy
		{37.9577, -121.2908, 80},  // Stockton
		{37.6391, -120.9969, 110}, // Modesto
		{37.3022, -120.4830, 150}, // Merced
		{36.7468, -119.7726, 200}, // Fresno
		{36.3302, -119.2921, 240}, // Visalia
		{35.3733, -119.0187, 290}, // Bakersfield
		{34.9400, -118.8500, 330}, // Grapevine/Tejon Pass
		{34.3917, -118.5426, 360}, // Santa Clarita
		{34.0522, -118.2437, 380}, // Los Angeles
	})
}

// Interpolate returns the position at the given trip progress (0.0 to 1.0),
// with Gaussian jitter drawn from rng and coordinates rounded to six
// decimal places (roughly 11 cm).
func (r *Route) Interpolate(progress float64, rng *rand.Rand) models.Location {
	total := r.waypoints[len(r.waypoints)-1].Mile
	mile := progress * total

	prev := r.waypoints[0]
	next := r.waypoints[1]
	for i := 0; i < len(r.waypoints)-1; i++ {
		if r.waypoints[i].Mile <= mile && mile <= r.waypoints[i+1].Mile {
			prev = r.waypoints[i]
			next = r.waypoints[i+1]
			break
		}
	}

	frac := 0.0
	if next.Mile != prev.Mile {
		frac = (mile - prev.Mile) / (next.Mile - prev.Mile)
	}

	lat := prev.Lat + (next.Lat-prev.Lat)*frac + rng.NormFloat64()*gpsJitterStdDev
	lon := prev.Lon + (next.Lon-prev.Lon)*frac + rng.NormFloat64()*gpsJitterStdDev

	return models.Location{
		Latitude:  round6(lat),
		Longitude: round6(lon),
	}
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
