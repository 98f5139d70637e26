package adapters

import (
	"fmt"
	"sort"
	"time"

	"github.com/milv-tools/rvu-atlas/pkg/models/api"
	"github.com/milv-tools/rvu-atlas/pkg/models/domain"
)

// Maps between domain aggregates and API models. Domain tables are
// unordered maps; the API exposes sorted slices so payloads are stable
// across refreshes.

func MapKPIsDomainToApi(kpis map[string]domain.PhysicianKPI) []api.PhysicianKPI {
	out := make([]api.PhysicianKPI, 0, len(kpis))
	for _, k := range kpis {
		out = append(out, api.PhysicianKPI{
			Physician:   k.Physician,
			TotalRVU:    k.TotalRVU,
			TotalPoints: k.TotalPoints,
			ExamCount:   k.ExamCount,
			AvgRVU:      k.AvgRVU,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Physician < out[j].Physician })
	return out
}

func MapModalitiesDomainToApi(dist map[string]domain.ModalityDistribution) []api.ModalityShare {
	out := make([]api.ModalityShare, 0, len(dist))
	for _, d := range dist {
		out = append(out, api.ModalityShare{
			Modality:  d.Modality,
			ExamCount: d.ExamCount,
			Share:     d.Share,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Modality < out[j].Modality })
	return out
}

func MapPhysicianModalityDomainToApi(
	cross map[string]map[string]domain.ModalityDistribution,
) []api.PhysicianModality {
	out := make([]api.PhysicianModality, 0, len(cross))
	for physician, dist := range cross {
		out = append(out, api.PhysicianModality{
			Physician:  physician,
			Modalities: MapModalitiesDomainToApi(dist),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Physician < out[j].Physician })
	return out
}

func MapDayOfWeekDomainToApi(buckets map[time.Weekday]domain.TemporalBucket) []api.WorkloadBucket {
	out := make([]api.WorkloadBucket, 0, 7)
	for day := time.Sunday; day <= time.Saturday; day++ {
		b := buckets[day]
		out = append(out, api.WorkloadBucket{
			Label:     day.String(),
			ExamCount: b.ExamCount,
			TotalRVU:  b.TotalRVU,
		})
	}
	return out
}

func MapHourlyDomainToApi(buckets map[int]domain.TemporalBucket) []api.WorkloadBucket {
	out := make([]api.WorkloadBucket, 0, 24)
	for hour := 0; hour < 24; hour++ {
		b := buckets[hour]
		out = append(out, api.WorkloadBucket{
			Label:     fmt.Sprintf("%02d:00", hour),
			ExamCount: b.ExamCount,
			TotalRVU:  b.TotalRVU,
		})
	}
	return out
}

func MapSeriesDomainToApi(series []domain.TimeSeriesPoint) []api.TimeSeriesPoint {
	out := make([]api.TimeSeriesPoint, 0, len(series))
	for _, p := range series {
		out = append(out, api.TimeSeriesPoint{
			Month:       fmt.Sprintf("%04d-%02d", p.Year, p.Month),
			Physician:   p.Physician,
			ExamCount:   p.ExamCount,
			TotalRVU:    p.TotalRVU,
			TotalPoints: p.TotalPoints,
		})
	}
	return out
}

func MapSnapshotDomainToApi(s *domain.DashboardSnapshot) api.DashboardSnapshot {
	return api.DashboardSnapshot{
		ID:          s.ID,
		GeneratedAt: s.GeneratedAt,
		Stats: api.DatasetStats{
			Source:      s.Stats.Source,
			RecordCount: s.Stats.RecordCount,
			Excluded:    s.Stats.Excluded,
			Period: api.Period{
				Start: s.Stats.Period.Start,
				End:   s.Stats.Period.End,
			},
		},
		KPIs:              MapKPIsDomainToApi(s.KPIs),
		Modalities:        MapModalitiesDomainToApi(s.Modalities),
		PhysicianModality: MapPhysicianModalityDomainToApi(s.PhysicianModality),
		DayOfWeek:         MapDayOfWeekDomainToApi(s.DayOfWeek),
		Hourly:            MapHourlyDomainToApi(s.Hourly),
		MonthlySeries:     MapSeriesDomainToApi(s.MonthlySeries),
	}
}
