// ABOUTME: Batch ingestion callback bridging the location producer to storage
// ABOUTME: Records the first sample of each delivered batch
package ingest

import (
	"fmt"
	"time"

	"github.com/harper/locstream/internal/models"
	"github.com/harper/locstream/internal/storage"
)

// Sample is one raw reading as delivered by the platform location API.
type Sample struct {
	Latitude         float64
	Longitude        float64
	Altitude         *float64
	AltitudeAccuracy *float64
	Accuracy         *float64
	Heading          *float64
	Speed            *float64
	Timestamp        time.Time
	BatteryLevel     *float64
}

// Valid checks the coordinate ranges the store itself does not enforce.
func (s Sample) Valid() bool {
	return s.Latitude >= -90 && s.Latitude <= 90 &&
		s.Longitude >= -180 && s.Longitude <= 180
}

// Recorder accepts sample batches for one session and persists them.
type Recorder struct {
	store     storage.LocationRepository
	sessionID int64
}

// NewRecorder creates a recorder writing to the given session. A zero
// sessionID records points without a session association.
func NewRecorder(store storage.LocationRepository, sessionID int64) *Recorder {
	return &Recorder{store: store, sessionID: sessionID}
}

// HandleBatch records the first sample of the batch and returns the new
// location id. Empty batches are a no-op; an invalid leading sample is
// rejected before it reaches the store.
func (r *Recorder) HandleBatch(samples []Sample) (int64, error) {
	if len(samples) == 0 {
		return 0, nil
	}

	s := samples[0]
	if !s.Valid() {
		return 0, fmt.Errorf("ingest: coordinates out of range: lat=%v lon=%v", s.Latitude, s.Longitude)
	}

	return r.store.InsertLocationPoint(&models.LocationPoint{
		SessionID:        r.sessionID,
		Latitude:         s.Latitude,
		Longitude:        s.Longitude,
		Altitude:         s.Altitude,
		AltitudeAccuracy: s.AltitudeAccuracy,
		Accuracy:         s.Accuracy,
		Heading:          s.Heading,
		Speed:            s.Speed,
		Timestamp:        s.Timestamp,
		BatteryLevel:     s.BatteryLevel,
	})
}
