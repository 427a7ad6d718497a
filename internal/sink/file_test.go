package sink

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukydev/fleet-telematics-generator/internal/models"
)

func sampleReading(vin, ts string) models.Reading {
	return models.Reading{
		EngineTempF:  201.5,
		FuelLevelPct: 88.25,
		Location:     models.Location{Latitude: 37.7749, Longitude: -122.4194},
		SpeedMPH:     64.2,
		Timestamp:    ts,
		TirePressure: models.TirePressure{
			FrontLeft: 33.1, FrontRight: 33.4, RearLeft: 32.9, RearRight: 34.0,
		},
		VIN: vin,
	}
}

func TestFilename(t *testing.T) {
	r := sampleReading("1FA5VUWD4X5L10763", "2025-10-31T06:05:00.000Z")
	name := Filename(r)

	assert.Equal(t, "1FA5VUWD4X5L10763_2025-10-31T06-05-00-000Z.json", name)
	assert.NotContains(t, name, ":")
}

func TestFileSink_Persist(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "json")
	s, err := NewFileSink(dir)
	require.NoError(t, err)

	readings := []models.Reading{
		sampleReading("1FA5VUWD4X5L10763", "2025-10-31T06:00:00.000Z"),
		sampleReading("1FA5VUWD4X5L10763", "2025-10-31T06:05:00.000Z"),
		sampleReading("5YJRE33A9X5D21094", "2025-10-31T06:00:00.000Z"),
	}
	require.NoError(t, s.Persist(readings))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3, "distinct vin/timestamp pairs must not collide")

	raw, err := os.ReadFile(filepath.Join(dir, Filename(readings[0])))
	require.NoError(t, err)

	var got models.Reading
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, readings[0], got)
}

func TestNewFileSink_BadPath(t *testing.T) {
	parent := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(parent, []byte("not a directory"), 0o644))

	_, err := NewFileSink(filepath.Join(parent, "json"))
	assert.Error(t, err)
}
