package fleet

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-telematics-generator/internal/config"
	"github.com/ukydev/fleet-telematics-generator/internal/models"
	"github.com/ukydev/fleet-telematics-generator/internal/route"
	"github.com/ukydev/fleet-telematics-generator/internal/simulate"
	"github.com/ukydev/fleet-telematics-generator/internal/sink"
	"github.com/ukydev/fleet-telematics-generator/internal/vin"
)

// Runner drives the whole generation run: VIN manifest, per-vehicle journey
// simulation and hand-off to the record sink.
type Runner struct {
	cfg  *config.Config
	sim  *simulate.Simulator
	sink sink.Sink
	rng  *rand.Rand
}

// New wires a Runner for the given route and sink. The rng only feeds VIN
// generation; per-vehicle simulation seeds itself from each VIN.
func New(cfg *config.Config, r *route.Route, s sink.Sink, rng *rand.Rand) *Runner {
	return &Runner{
		cfg:  cfg,
		sim:  simulate.New(r, cfg.Window, cfg.Interval),
		sink: s,
		rng:  rng,
	}
}

// Seed derives the per-vehicle simulation seed from a VIN using FNV-1a.
// The hash is fixed-parameter, so the same VIN maps to the same seed on
// every run and platform.
func Seed(v string) int64 {
	h := fnv.New32a()
	h.Write([]byte(v))
	return int64(h.Sum32())
}

// Run generates the fleet, writes the VIN manifest and persists every
// reading through the sink.
func (r *Runner) Run() error {
	vins := vin.New(r.rng).GenerateUnique(r.cfg.FleetSize)

	if err := writeManifest(r.cfg.VINManifest, vins); err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"vins": len(vins),
		"file": r.cfg.VINManifest,
	}).Info("Saved VIN manifest")

	perVehicle := r.sim.Readings()
	log.WithFields(log.Fields{
		"vehicles":             len(vins),
		"readings_per_vehicle": perVehicle,
		"interval":             r.cfg.Interval,
		"window":               r.cfg.Window,
	}).Info("Generating telematics readings")

	all := make([]models.Reading, 0, len(vins)*perVehicle)
	start := time.Now()
	for i, v := range vins {
		// Vehicles are simulated strictly in sequence: each journey owns
		// its random source from seed to last reading.
		all = append(all, r.sim.Simulate(v, r.cfg.StartTime, Seed(v))...)
		if (i+1)%100 == 0 || i == 0 {
			log.WithFields(log.Fields{
				"done":  i + 1,
				"total": len(vins),
			}).Info("Simulated vehicles")
		}
	}
	log.WithFields(log.Fields{
		"readings": len(all),
		"elapsed":  time.Since(start).Round(time.Millisecond),
	}).Info("Simulation completed")

	if err := r.sink.Persist(all); err != nil {
		return fmt.Errorf("persist readings: %w", err)
	}
	return nil
}

func writeManifest(path string, vins []string) error {
	data := strings.Join(vins, "\n") + "\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		return fmt.Errorf("write VIN manifest %s: %w", path, err)
	}
	return nil
}
