package service

import (
	"math/rand"
	"sync"
	"time"

	"solarpulse/backend/services/energy-service/internal/models"
)

// FallbackGenerator fabricates plausible telemetry for installations
// that have no recorded samples yet. Fabricated samples are never
// persisted; they only exist in the response.
type FallbackGenerator struct {
	mu   sync.Mutex // rand.Rand is not safe for concurrent use
	rand *rand.Rand
	now  func() time.Time
}

// NewFallbackGenerator builds a generator. A nil source falls back to
// time-seeded entropy; tests inject a fixed seed instead.
func NewFallbackGenerator(src rand.Source, now func() time.Time) *FallbackGenerator {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	if now == nil {
		now = time.Now
	}
	return &FallbackGenerator{
		rand: rand.New(src),
		now:  now,
	}
}

func (g *FallbackGenerator) between(lo, hi float64) float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return lo + (hi-lo)*g.rand.Float64()
}

// Realtime fabricates a single realtime sample for the subject.
func (g *FallbackGenerator) Realtime(subjectID string) models.TelemetrySample {
	return models.TelemetrySample{
		SubjectID:   subjectID,
		Timestamp:   g.now().UTC(),
		Production:  g.between(2, 7),
		Consumption: g.between(1, 4),
		GridImport:  g.between(0, 1),
		GridExport:  g.between(0, 2),
		Granularity: models.GranularityRealtime,
	}
}

// History fabricates count hourly samples for the subject, most recent
// first, spaced exactly one hour apart.
func (g *FallbackGenerator) History(subjectID string, count int) []models.TelemetrySample {
	if count <= 0 {
		return nil
	}
	now := g.now().UTC()
	samples := make([]models.TelemetrySample, count)
	for i := 0; i < count; i++ {
		samples[i] = models.TelemetrySample{
			SubjectID:   subjectID,
			Timestamp:   now.Add(-time.Duration(i) * time.Hour),
			Production:  g.between(10, 40),
			Consumption: g.between(5, 30),
			GridImport:  g.between(0, 5),
			GridExport:  g.between(0, 10),
			Granularity: models.GranularityHourly,
		}
	}
	return samples
}
