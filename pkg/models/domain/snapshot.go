package domain

import "time"

// DatasetStats summarizes the dataset a snapshot was derived from.
type DatasetStats struct {
	Source      string
	RecordCount int
	Excluded    int
	Period      DatasetPeriod
}

// DashboardSnapshot bundles every derived table produced by one
// refresh cycle. All tables are derived from the same dataset; the
// facade replaces the whole snapshot atomically.
type DashboardSnapshot struct {
	ID          string
	GeneratedAt time.Time
	Stats       DatasetStats

	KPIs              map[string]PhysicianKPI
	Modalities        map[string]ModalityDistribution
	PhysicianModality map[string]map[string]ModalityDistribution
	DayOfWeek         map[time.Weekday]TemporalBucket
	Hourly            map[int]TemporalBucket
	MonthlySeries     []TimeSeriesPoint
}
