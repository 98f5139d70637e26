package domain

import "time"

// PhysicianKPI is the per-physician productivity summary. Totals are
// recomputed from scratch on every aggregation pass.
type PhysicianKPI struct {
	Physician   string
	TotalRVU    float64
	TotalPoints float64
	ExamCount   int
	AvgRVU      float64
}

// ModalityScope selects the grouping for a modality distribution:
// ScopeGlobal for the whole dataset, or a physician identifier. The
// empty string is safe as the global sentinel because loaded records
// never carry an empty physician, so no identifier can collide with it.
type ModalityScope string

const ScopeGlobal ModalityScope = ""

// ModalityDistribution is the exam-volume breakdown for one modality
// within a scope. Shares across a non-empty scope sum to 1.0.
type ModalityDistribution struct {
	Modality  string
	ExamCount int
	Share     float64
}

// TemporalBucket accumulates workload for one day-of-week or
// hour-of-day slot.
type TemporalBucket struct {
	ExamCount int
	TotalRVU  float64
}

// TimeSeriesPoint is one physician-month of the workload time series.
type TimeSeriesPoint struct {
	Year        int
	Month       time.Month
	Physician   string
	ExamCount   int
	TotalRVU    float64
	TotalPoints float64
}
