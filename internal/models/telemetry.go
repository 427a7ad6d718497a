package models

import "time"

// Location represents a geographical location with latitude and longitude coordinates.
type Location struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

// TirePressure holds per-wheel pressure in psi.
type TirePressure struct {
	FrontLeft  float64 `bson:"front_left" json:"front_left"`
	FrontRight float64 `bson:"front_right" json:"front_right"`
	RearLeft   float64 `bson:"rear_left" json:"rear_left"`
	RearRight  float64 `bson:"rear_right" json:"rear_right"`
}

// Reading represents one simulated telematics sample for one vehicle.
// The json field names are the external record schema; the bson tags are
// for the Mongo sink.
type Reading struct {
	EngineTempF  float64      `bson:"engine_temp_f" json:"engine_temp_f"`
	FuelLevelPct float64      `bson:"fuel_level_pct" json:"fuel_level_pct"`
	Location     Location     `bson:"location" json:"location"`
	SpeedMPH     float64      `bson:"speed_mph" json:"speed_mph"`
	Timestamp    string       `bson:"timestamp" json:"timestamp"`
	TirePressure TirePressure `bson:"tire_pressure_psi" json:"tire_pressure_psi"`
	VIN          string       `bson:"vin" json:"vin"`
}

// timestampLayout is ISO-8601 with millisecond precision, always UTC.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// FormatTimestamp renders t in the record timestamp format.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// ParseTimestamp is the inverse of FormatTimestamp.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(timestampLayout, s)
}
