package simulate

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/ukydev/fleet-telematics-generator/internal/models"
	"github.com/ukydev/fleet-telematics-generator/internal/route"
)

// fuelFloorPct is the lowest fuel level the model reports; vehicles are
// assumed to refuel before running dry.
const fuelFloorPct = 5.0

// referenceSpeedMPH normalizes fuel consumption across vehicles.
const referenceSpeedMPH = 65.0

// restStopThreshold is the minimum number of readings in a window before
// rest stops are scheduled at all.
const restStopThreshold = 60

// profile holds the per-vehicle characteristics drawn once per journey.
type profile struct {
	baseSpeed     float64 // mph
	fuelStart     float64 // percent
	fuelRate      float64 // percent consumed per reading at cruise
	tireBaseline  models.TirePressure
	startOffset   int           // minutes into the window; readings still cover the full window
	tripDuration  time.Duration // time to complete the whole route
	stopIndices   []int         // reading index at which each rest stop begins
	stopDurations []int         // rest stop length in reading intervals
}

// motion is the vehicle's state tag, advanced once per interval.
type motion int

const (
	moving motion = iota
	stopped
)

// vehicleState is the per-interval state machine: a vehicle is either
// moving or stopped with a known number of intervals remaining.
type vehicleState struct {
	motion        motion
	stopRemaining int // intervals left in the current stop, valid while stopped
	nextStop      int // index into the profile's stop schedule
	progress      float64
	fuel          float64
}

// Simulator produces complete journeys along a route at a fixed reading
// interval over a bounded observation window.
type Simulator struct {
	route    *route.Route
	window   time.Duration
	interval time.Duration
}

// New returns a Simulator for the given route, observation window and
// reading interval.
func New(r *route.Route, window, interval time.Duration) *Simulator {
	return &Simulator{route: r, window: window, interval: interval}
}

// Readings returns the number of readings per vehicle in the window.
func (s *Simulator) Readings() int {
	return int(s.window / s.interval)
}

func (s *Simulator) buildProfile(rng *rand.Rand, numReadings int) profile {
	p := profile{
		baseSpeed: uniform(rng, 55, 75),
		fuelStart: uniform(rng, 70, 100),
		fuelRate:  uniform(rng, 0.08, 0.15),
		tireBaseline: models.TirePressure{
			FrontLeft:  uniform(rng, 32, 35),
			FrontRight: uniform(rng, 32, 35),
			RearLeft:   uniform(rng, 32, 35),
			RearRight:  uniform(rng, 32, 35),
		},
		startOffset:  rng.Intn(31),
		tripDuration: time.Duration(uniform(rng, 5.5, 10) * float64(time.Hour)),
	}

	// Rest stops make sense only when the window is long enough to contain
	// them with margin on both sides.
	if numReadings > restStopThreshold {
		numStops := rng.Intn(4)
		for i := 0; i < numStops; i++ {
			p.stopIndices = append(p.stopIndices, 30+rng.Intn(numReadings-59))
		}
		sort.Ints(p.stopIndices)
		for i := 0; i < numStops; i++ {
			p.stopDurations = append(p.stopDurations, 3+rng.Intn(7))
		}
	}
	return p
}

// Simulate produces the full ordered reading sequence for one vehicle. The
// rng must be freshly seeded from the vehicle's seed: the profile and every
// per-interval draw come from it, so identical (vin, start, seed) inputs
// yield identical sequences.
func (s *Simulator) Simulate(vin string, start time.Time, seed int64) []models.Reading {
	rng := rand.New(rand.NewSource(seed))

	numReadings := s.Readings()
	p := s.buildProfile(rng, numReadings)

	st := vehicleState{fuel: p.fuelStart}
	readings := make([]models.Reading, 0, numReadings)

	for i := 0; i < numReadings; i++ {
		ts := start.Add(time.Duration(i) * s.interval)

		if st.motion == moving && st.nextStop < len(p.stopIndices) && i >= p.stopIndices[st.nextStop] {
			st.motion = stopped
			st.stopRemaining = p.stopDurations[st.nextStop]
			st.nextStop++
		}

		var speed float64
		switch st.motion {
		case stopped:
			st.stopRemaining--
			if st.stopRemaining <= 0 {
				st.motion = moving
				// Refuel before pulling back onto the highway.
				st.fuel = math.Min(100, st.fuel+uniform(rng, 20, 40))
			}
		case moving:
			speed = s.moveSpeed(rng, &p, &st)
		}

		var temp float64
		if speed == 0 {
			temp = uniform(rng, 175, 195) // idling or stopped
		} else {
			temp = uniform(rng, 195, 220) // normal operating range
		}

		readings = append(readings, models.Reading{
			EngineTempF:  round2(temp),
			FuelLevelPct: round2(st.fuel),
			Location:     s.route.Interpolate(st.progress, rng),
			SpeedMPH:     round2(speed),
			Timestamp:    models.FormatTimestamp(ts),
			TirePressure: models.TirePressure{
				FrontLeft:  tirePressure(rng, p.tireBaseline.FrontLeft, speed),
				FrontRight: tirePressure(rng, p.tireBaseline.FrontRight, speed),
				RearLeft:   tirePressure(rng, p.tireBaseline.RearLeft, speed),
				RearRight:  tirePressure(rng, p.tireBaseline.RearRight, speed),
			},
			VIN: vin,
		})
	}

	return readings
}

// moveSpeed draws this interval's speed, then advances progress and burns
// fuel accordingly.
func (s *Simulator) moveSpeed(rng *rand.Rand, p *profile, st *vehicleState) float64 {
	var speed float64
	switch {
	case st.progress < 0.1: // leaving the origin, city traffic
		speed = p.baseSpeed * uniform(rng, 0.4, 0.7)
	case st.progress > 0.8 && st.progress < 0.9: // mountain grade
		speed = p.baseSpeed * uniform(rng, 0.7, 0.85)
	case st.progress > 0.95: // approaching the destination
		speed = p.baseSpeed * uniform(rng, 0.3, 0.6)
	default: // open highway
		speed = p.baseSpeed * uniform(rng, 0.85, 1.15)
	}

	perReading := s.interval.Hours() / p.tripDuration.Hours()
	st.progress = math.Min(1.0, st.progress+perReading*(speed/p.baseSpeed))

	st.fuel = math.Max(fuelFloorPct, st.fuel-p.fuelRate*(speed/referenceSpeedMPH))
	return speed
}

func tirePressure(rng *rand.Rand, baseline, speed float64) float64 {
	return round2(baseline + rng.NormFloat64()*0.5 + speed/100)
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
