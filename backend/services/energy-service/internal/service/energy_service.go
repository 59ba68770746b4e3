package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"solarpulse/backend/services/energy-service/internal/access"
	"solarpulse/backend/services/energy-service/internal/auth"
	"solarpulse/backend/services/energy-service/internal/models"
	"solarpulse/backend/services/energy-service/internal/period"
	"solarpulse/backend/services/energy-service/internal/repository"
)

var (
	// ErrValidation is returned for malformed or incomplete ingestion payloads.
	ErrValidation = errors.New("energy: invalid payload")
	// ErrStoreUnavailable wraps persistence failures. Callers render it as a
	// server fault; it is never masked by fallback data.
	ErrStoreUnavailable = errors.New("energy: store unavailable")
)

// TelemetryStore is the persistence contract used by the service.
type TelemetryStore interface {
	Insert(ctx context.Context, sample *models.TelemetrySample) error
	Latest(ctx context.Context, subjectID string) (*models.TelemetrySample, error)
	History(ctx context.Context, subjectID string, from time.Time, limit int) ([]models.TelemetrySample, error)
	SumWindow(ctx context.Context, subjectID string, from time.Time) (repository.WindowSums, error)
	FleetSums(ctx context.Context, from time.Time) (repository.WindowSums, error)
}

// AccountStore exposes the account counts needed by the fleet rollup.
type AccountStore interface {
	CountClients(ctx context.Context) (total, active int64, err error)
}

// EnergyService answers telemetry questions for a verified identity.
type EnergyService struct {
	store       TelemetryStore
	accounts    AccountStore
	fallback    *FallbackGenerator
	strictZeros bool
	now         func() time.Time
	logger      *zap.Logger
}

// NewEnergyService builds the service. strictZeros disables placeholder
// substitution for windows that have rows summing to zero; the default
// (false) reproduces the historical behavior where any zero sum is
// replaced by the demo placeholder.
func NewEnergyService(store TelemetryStore, accounts AccountStore, fallback *FallbackGenerator, strictZeros bool, logger *zap.Logger) *EnergyService {
	return &EnergyService{
		store:       store,
		accounts:    accounts,
		fallback:    fallback,
		strictZeros: strictZeros,
		now:         time.Now,
		logger:      logger,
	}
}

// resolveSubject defaults an empty subject to the requester itself.
func resolveSubject(requester auth.Identity, subjectID string) string {
	if subjectID == "" {
		return requester.SubjectID
	}
	return subjectID
}

// Realtime returns the most recent realtime sample for the subject,
// fabricating one when the installation has not reported yet.
func (s *EnergyService) Realtime(ctx context.Context, requester auth.Identity, subjectID string) (models.TelemetrySample, error) {
	subjectID = resolveSubject(requester, subjectID)
	if err := access.Authorize(requester, subjectID); err != nil {
		return models.TelemetrySample{}, err
	}

	latest, err := s.store.Latest(ctx, subjectID)
	if err != nil {
		return models.TelemetrySample{}, fmt.Errorf("%w: latest sample: %v", ErrStoreUnavailable, err)
	}
	if latest == nil {
		return s.fallback.Realtime(subjectID), nil
	}
	return *latest, nil
}

// History returns samples for the requested period, most recent first.
// An empty result is replaced by fabricated data of the same shape.
func (s *EnergyService) History(ctx context.Context, requester auth.Identity, subjectID, periodToken string) ([]models.TelemetrySample, error) {
	subjectID = resolveSubject(requester, subjectID)
	if err := access.Authorize(requester, subjectID); err != nil {
		return nil, err
	}

	win := period.Resolve(periodToken, s.now())
	samples, err := s.store.History(ctx, subjectID, win.Start, win.SampleCount)
	if err != nil {
		return nil, fmt.Errorf("%w: history: %v", ErrStoreUnavailable, err)
	}
	if len(samples) == 0 {
		return s.fallback.History(subjectID, win.SampleCount), nil
	}
	return samples, nil
}

// windowPlaceholder holds the documented demo figures substituted when
// a summary window aggregates to zero.
type windowPlaceholder struct {
	production  float64
	consumption float64
}

var summaryPlaceholders = struct {
	today windowPlaceholder
	month windowPlaceholder
	year  windowPlaceholder
}{
	today: windowPlaceholder{production: 45.5, consumption: 32.1},
	month: windowPlaceholder{production: 1234.5, consumption: 890.2},
	year:  windowPlaceholder{production: 14567.8, consumption: 10234.5},
}

// Summarize aggregates production and consumption over the current day,
// calendar month and calendar year.
func (s *EnergyService) Summarize(ctx context.Context, requester auth.Identity, subjectID string) (models.SummaryReport, error) {
	subjectID = resolveSubject(requester, subjectID)
	if err := access.Authorize(requester, subjectID); err != nil {
		return models.SummaryReport{}, err
	}

	now := s.now()
	var report models.SummaryReport
	windows := []struct {
		start       time.Time
		placeholder windowPlaceholder
		dest        *models.WindowTotals
	}{
		{startOfDay(now), summaryPlaceholders.today, &report.Today},
		{startOfMonth(now), summaryPlaceholders.month, &report.Month},
		{startOfYear(now), summaryPlaceholders.year, &report.Year},
	}

	for _, w := range windows {
		sums, err := s.store.SumWindow(ctx, subjectID, w.start)
		if err != nil {
			return models.SummaryReport{}, fmt.Errorf("%w: summary window: %v", ErrStoreUnavailable, err)
		}
		*w.dest = s.windowTotals(sums, w.placeholder)
	}
	return report, nil
}

// windowTotals applies the placeholder substitution rule. In compat
// mode each zero-valued figure falls back to its placeholder, whether
// the window is empty or its rows cancel out to zero. Strict mode
// substitutes only when the window matched no rows at all.
func (s *EnergyService) windowTotals(sums repository.WindowSums, placeholder windowPlaceholder) models.WindowTotals {
	production := sums.Production
	consumption := sums.Consumption
	if s.strictZeros {
		if sums.Samples == 0 {
			production = placeholder.production
			consumption = placeholder.consumption
		}
	} else {
		if production == 0 {
			production = placeholder.production
		}
		if consumption == 0 {
			consumption = placeholder.consumption
		}
	}
	return models.WindowTotals{
		Production:  production,
		Consumption: consumption,
		Savings:     production - consumption,
	}
}

// IngestInput is the payload accepted by the ingestion endpoint.
// Production and consumption are pointers so a missing field is
// distinguishable from an explicit zero.
type IngestInput struct {
	SubjectID   string    `json:"client_id"`
	Production  *float64  `json:"production"`
	Consumption *float64  `json:"consumption"`
	GridImport  float64   `json:"grid_import"`
	GridExport  float64   `json:"grid_export"`
	Granularity string    `json:"granularity"`
	Timestamp   time.Time `json:"timestamp"`
}

// Ingest validates and persists a new sample, optionally on behalf of
// another subject when the requester is an admin.
func (s *EnergyService) Ingest(ctx context.Context, requester auth.Identity, input IngestInput) (models.TelemetrySample, error) {
	subjectID := resolveSubject(requester, input.SubjectID)
	if err := access.Authorize(requester, subjectID); err != nil {
		return models.TelemetrySample{}, err
	}

	if input.Production == nil {
		return models.TelemetrySample{}, fmt.Errorf("%w: production is required", ErrValidation)
	}
	if input.Consumption == nil {
		return models.TelemetrySample{}, fmt.Errorf("%w: consumption is required", ErrValidation)
	}
	if *input.Production < 0 || *input.Consumption < 0 {
		return models.TelemetrySample{}, fmt.Errorf("%w: production and consumption must be non-negative", ErrValidation)
	}
	if input.GridImport < 0 || input.GridExport < 0 {
		return models.TelemetrySample{}, fmt.Errorf("%w: grid figures must be non-negative", ErrValidation)
	}

	granularity := input.Granularity
	if granularity == "" {
		granularity = models.GranularityHourly
	}
	if !models.ValidGranularity(granularity) {
		return models.TelemetrySample{}, fmt.Errorf("%w: unknown granularity %q", ErrValidation, granularity)
	}

	timestamp := input.Timestamp
	if timestamp.IsZero() {
		timestamp = s.now()
	}

	sample := models.TelemetrySample{
		SubjectID:   subjectID,
		Timestamp:   timestamp.UTC(),
		Production:  *input.Production,
		Consumption: *input.Consumption,
		GridImport:  input.GridImport,
		GridExport:  input.GridExport,
		Granularity: granularity,
	}
	if err := s.store.Insert(ctx, &sample); err != nil {
		return models.TelemetrySample{}, fmt.Errorf("%w: insert sample: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("telemetry sample ingested",
		zap.String("subject_id", sample.SubjectID),
		zap.String("granularity", sample.Granularity),
	)
	return sample, nil
}

// FleetStats returns the admin-only rollup across all clients. Unlike
// the per-client summary, empty windows report plain zeros.
func (s *EnergyService) FleetStats(ctx context.Context, requester auth.Identity) (models.FleetStats, error) {
	if !requester.IsAdmin() {
		return models.FleetStats{}, access.ErrForbidden
	}

	total, active, err := s.accounts.CountClients(ctx)
	if err != nil {
		return models.FleetStats{}, fmt.Errorf("%w: count clients: %v", ErrStoreUnavailable, err)
	}

	sums, err := s.store.FleetSums(ctx, startOfDay(s.now()))
	if err != nil {
		return models.FleetStats{}, fmt.Errorf("%w: fleet sums: %v", ErrStoreUnavailable, err)
	}

	return models.FleetStats{
		TotalClients:     total,
		ActiveClients:    active,
		InactiveClients:  total - active,
		TodayProduction:  sums.Production,
		TodayConsumption: sums.Consumption,
	}, nil
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func startOfMonth(t time.Time) time.Time {
	year, month, _ := t.Date()
	return time.Date(year, month, 1, 0, 0, 0, 0, t.Location())
}

func startOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
}
