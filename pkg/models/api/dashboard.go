package api

import "time"

type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type DatasetStats struct {
	Source      string `json:"source"`
	RecordCount int    `json:"record_count"`
	Excluded    int    `json:"excluded_rows"`
	Period      Period `json:"period"`
}

type PhysicianKPI struct {
	Physician   string  `json:"physician"`
	TotalRVU    float64 `json:"total_rvu"`
	TotalPoints float64 `json:"total_points"`
	ExamCount   int     `json:"exam_count"`
	AvgRVU      float64 `json:"avg_rvu_per_exam"`
}

type ModalityShare struct {
	Modality  string  `json:"modality"`
	ExamCount int     `json:"exam_count"`
	Share     float64 `json:"share"`
}

type PhysicianModality struct {
	Physician  string          `json:"physician"`
	Modalities []ModalityShare `json:"modalities"`
}

type WorkloadBucket struct {
	Label     string  `json:"label"`
	ExamCount int     `json:"exam_count"`
	TotalRVU  float64 `json:"total_rvu"`
}

type TimeSeriesPoint struct {
	Month       string  `json:"month"`
	Physician   string  `json:"physician"`
	ExamCount   int     `json:"exam_count"`
	TotalRVU    float64 `json:"total_rvu"`
	TotalPoints float64 `json:"total_points"`
}

type DashboardSnapshot struct {
	ID                string              `json:"id"`
	GeneratedAt       time.Time           `json:"generated_at"`
	Stats             DatasetStats        `json:"stats"`
	KPIs              []PhysicianKPI      `json:"physician_kpi"`
	Modalities        []ModalityShare     `json:"modality_distribution"`
	PhysicianModality []PhysicianModality `json:"physician_modality"`
	DayOfWeek         []WorkloadBucket    `json:"day_of_week_workload"`
	Hourly            []WorkloadBucket    `json:"hourly_workload"`
	MonthlySeries     []TimeSeriesPoint   `json:"physician_time_series"`
}

type Status struct {
	State       string     `json:"state"`
	SnapshotID  string     `json:"snapshot_id,omitempty"`
	RefreshedAt *time.Time `json:"refreshed_at,omitempty"`
	LastError   string     `json:"last_error,omitempty"`
}

type Error struct {
	Error string `json:"error"`
}
