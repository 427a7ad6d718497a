package sink

import (
	"github.com/ukydev/fleet-telematics-generator/internal/models"
)

// Sink persists a batch of readings. Implementations are free to choose the
// storage medium; each reading must remain individually addressable.
type Sink interface {
	Persist(readings []models.Reading) error
}
