package sink

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-telematics-generator/internal/models"
)

// FileSink writes each reading to its own JSON file under a directory.
type FileSink struct {
	dir string
}

// NewFileSink creates the output directory if needed and returns a sink
// writing into it.
func NewFileSink(dir string) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory %s: %w", dir, err)
	}
	return &FileSink{dir: dir}, nil
}

// Filename derives the record file name from the reading's VIN and
// timestamp. Colons and dots are unsafe in filenames on some platforms and
// are substituted; the VIN+timestamp pair is unique per reading, so names
// never collide.
func Filename(r models.Reading) string {
	ts := strings.NewReplacer(":", "-", ".", "-").Replace(r.Timestamp)
	return fmt.Sprintf("%s_%s.json", r.VIN, ts)
}

// Persist writes one indented JSON file per reading.
func (s *FileSink) Persist(readings []models.Reading) error {
	for i, r := range readings {
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal reading: %w", err)
		}
		path := filepath.Join(s.dir, Filename(r))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		if (i+1)%1000 == 0 {
			log.WithField("files", i+1).Info("Created record files")
		}
	}
	log.WithFields(log.Fields{
		"files": len(readings),
		"dir":   s.dir,
	}).Info("File sink completed")
	return nil
}
