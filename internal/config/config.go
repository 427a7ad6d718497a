package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the static run configuration, read from the environment.
type Config struct {
	FleetSize       int
	Window          time.Duration
	Interval        time.Duration
	StartTime       time.Time
	OutputDir       string
	VINManifest     string
	Sink            string
	MQTTBroker      string
	MQTTTopic       string
	MQTTClientID    string
	MongoURI        string
	MongoDB         string
	MongoCollection string
}

// Load reads the configuration from environment variables, falling back to
// the defaults of the standard 500-vehicle, one-hour run.
func Load() (*Config, error) {
	cfg := &Config{
		FleetSize:       500,
		Window:          time.Hour,
		Interval:        5 * time.Minute,
		OutputDir:       getEnv("OUTPUT_DIR", "json"),
		VINManifest:     getEnv("VIN_MANIFEST", "vins.txt"),
		Sink:            getEnv("SINK", "file"),
		MQTTBroker:      getEnv("MQTT_BROKER", "tcp://localhost:1883"),
		MQTTTopic:       getEnv("MQTT_TOPIC", "fleet/telematics"),
		MQTTClientID:    getEnv("MQTT_CLIENT_ID", "telematics-generator"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:         getEnv("MONGO_DB", "fleet"),
		MongoCollection: getEnv("MONGO_COLLECTION", "telematics"),
	}

	if v := os.Getenv("FLEET_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid FLEET_SIZE %q", v)
		}
		cfg.FleetSize = n
	}
	if v := os.Getenv("TRIP_WINDOW"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid TRIP_WINDOW %q", v)
		}
		cfg.Window = d
	}
	if v := os.Getenv("READING_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid READING_INTERVAL %q", v)
		}
		cfg.Interval = d
	}

	start := getEnv("START_TIME", "2025-10-31T06:00:00Z")
	t, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return nil, fmt.Errorf("invalid START_TIME %q: %w", start, err)
	}
	cfg.StartTime = t

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
