package models

import "time"

// Sample granularities accepted by the ingestion endpoint.
const (
	GranularityRealtime = "realtime"
	GranularityHourly   = "hourly"
	GranularityDaily    = "daily"
	GranularityMonthly  = "monthly"
)

// TelemetrySample is a single energy observation for a client installation.
// Samples are append-only; they are never updated after insert.
type TelemetrySample struct {
	ID          int64     `db:"id" json:"id,omitempty"`
	SubjectID   string    `db:"subject_id" json:"client_id"`
	Timestamp   time.Time `db:"recorded_at" json:"timestamp"`
	Production  float64   `db:"production" json:"production"`
	Consumption float64   `db:"consumption" json:"consumption"`
	GridImport  float64   `db:"grid_import" json:"grid_import"`
	GridExport  float64   `db:"grid_export" json:"grid_export"`
	Granularity string    `db:"granularity" json:"granularity"`
}

// ValidGranularity reports whether g is one of the accepted granularities.
func ValidGranularity(g string) bool {
	switch g {
	case GranularityRealtime, GranularityHourly, GranularityDaily, GranularityMonthly:
		return true
	}
	return false
}

// WindowTotals holds aggregated energy figures for one window.
type WindowTotals struct {
	Production  float64 `json:"production"`
	Consumption float64 `json:"consumption"`
	Savings     float64 `json:"savings"`
}

// SummaryReport aggregates production/consumption over the current
// day, calendar month and calendar year.
type SummaryReport struct {
	Today WindowTotals `json:"today"`
	Month WindowTotals `json:"month"`
	Year  WindowTotals `json:"year"`
}

// FleetStats is the admin-only rollup across all client installations.
type FleetStats struct {
	TotalClients     int64   `json:"total_clients"`
	ActiveClients    int64   `json:"active_clients"`
	InactiveClients  int64   `json:"inactive_clients"`
	TodayProduction  float64 `json:"today_production"`
	TodayConsumption float64 `json:"today_consumption"`
}
