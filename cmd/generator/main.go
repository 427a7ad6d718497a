package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-telematics-generator/internal/config"
	"github.com/ukydev/fleet-telematics-generator/internal/fleet"
	"github.com/ukydev/fleet-telematics-generator/internal/route"
	"github.com/ukydev/fleet-telematics-generator/internal/sink"
)

func buildSink(cfg *config.Config) (sink.Sink, error) {
	switch cfg.Sink {
	case "file":
		return sink.NewFileSink(cfg.OutputDir)
	case "mqtt":
		return sink.NewMQTTSink(cfg.MQTTBroker, cfg.MQTTClientID, cfg.MQTTTopic)
	case "mongo":
		return sink.NewMongoSink(cfg.MongoURI, cfg.MongoDB, cfg.MongoCollection)
	default:
		return nil, fmt.Errorf("unknown sink %q", cfg.Sink)
	}
}

func main() {
	// A missing .env just means everything comes from the environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}

	log.WithFields(log.Fields{
		"fleet_size": cfg.FleetSize,
		"window":     cfg.Window,
		"interval":   cfg.Interval,
		"start":      cfg.StartTime,
		"sink":       cfg.Sink,
	}).Info("Starting telematics generation")

	s, err := buildSink(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to build record sink")
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	runner := fleet.New(cfg, route.Interstate5(), s, rng)
	if err := runner.Run(); err != nil {
		log.WithError(err).Fatal("Generation run failed")
	}

	log.Info("Generation complete")
}
