package temporal

import (
	"fmt"
	"sort"
	"time"

	"github.com/milv-tools/rvu-atlas/pkg/models/domain"
)

// Aggregator buckets workload by time. Day-of-week follows Go's
// time.Weekday numbering (Sunday = 0); hours are 0..23 in the
// timezone the loader parsed the timestamps in.
type Aggregator interface {
	// DayOfWeek always returns all 7 buckets, zero-valued when idle.
	DayOfWeek(ds *domain.NormalizedDataset) (map[time.Weekday]domain.TemporalBucket, error)

	// Hourly always returns all 24 buckets, zero-valued when idle.
	Hourly(ds *domain.NormalizedDataset) (map[int]domain.TemporalBucket, error)

	// MonthlySeries returns the per-physician calendar-month series,
	// sorted by month then physician.
	MonthlySeries(ds *domain.NormalizedDataset) ([]domain.TimeSeriesPoint, error)
}

type aggregator struct{}

func NewAggregator() Aggregator {
	return &aggregator{}
}

func (a *aggregator) DayOfWeek(ds *domain.NormalizedDataset) (map[time.Weekday]domain.TemporalBucket, error) {
	if ds == nil || ds.Len() == 0 {
		return nil, fmt.Errorf("temporal: dataset contains no records")
	}

	buckets := make(map[time.Weekday]domain.TemporalBucket, 7)
	for day := time.Sunday; day <= time.Saturday; day++ {
		buckets[day] = domain.TemporalBucket{}
	}

	for _, record := range ds.Records {
		day := record.Timestamp.Weekday()
		b := buckets[day]
		b.ExamCount++
		b.TotalRVU += record.RVU
		buckets[day] = b
	}
	return buckets, nil
}

func (a *aggregator) Hourly(ds *domain.NormalizedDataset) (map[int]domain.TemporalBucket, error) {
	if ds == nil || ds.Len() == 0 {
		return nil, fmt.Errorf("temporal: dataset contains no records")
	}

	buckets := make(map[int]domain.TemporalBucket, 24)
	for hour := 0; hour < 24; hour++ {
		buckets[hour] = domain.TemporalBucket{}
	}

	for _, record := range ds.Records {
		hour := record.Timestamp.Hour()
		b := buckets[hour]
		b.ExamCount++
		b.TotalRVU += record.RVU
		buckets[hour] = b
	}
	return buckets, nil
}

type seriesKey struct {
	year      int
	month     time.Month
	physician string
}

func (a *aggregator) MonthlySeries(ds *domain.NormalizedDataset) ([]domain.TimeSeriesPoint, error) {
	if ds == nil || ds.Len() == 0 {
		return nil, fmt.Errorf("temporal: dataset contains no records")
	}

	points := make(map[seriesKey]domain.TimeSeriesPoint)

	for _, record := range ds.Records {
		key := seriesKey{
			year:      record.Timestamp.Year(),
			month:     record.Timestamp.Month(),
			physician: record.Physician,
		}
		p := points[key]
		p.Year = key.year
		p.Month = key.month
		p.Physician = key.physician
		p.ExamCount++
		p.TotalRVU += record.RVU
		p.TotalPoints += record.Points
		points[key] = p
	}

	series := make([]domain.TimeSeriesPoint, 0, len(points))
	for _, p := range points {
		series = append(series, p)
	}
	sort.Slice(series, func(i, j int) bool {
		if series[i].Year != series[j].Year {
			return series[i].Year < series[j].Year
		}
		if series[i].Month != series[j].Month {
			return series[i].Month < series[j].Month
		}
		return series[i].Physician < series[j].Physician
	})
	return series, nil
}
