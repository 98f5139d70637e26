package kpi

import (
	"fmt"

	"github.com/milv-tools/rvu-atlas/pkg/models/domain"
)

// Aggregator computes per-physician productivity summaries.
type Aggregator interface {
	Compute(ds *domain.NormalizedDataset) (map[string]domain.PhysicianKPI, error)
}

type aggregator struct{}

func NewAggregator() Aggregator {
	return &aggregator{}
}

// Compute groups the dataset by physician in a single pass. Output
// carries no ordering; consumers sort for presentation. Physicians
// only appear when the dataset has at least one of their exams, so
// the average is never a division by zero.
func (a *aggregator) Compute(ds *domain.NormalizedDataset) (map[string]domain.PhysicianKPI, error) {
	if ds == nil || ds.Len() == 0 {
		return nil, fmt.Errorf("kpi: dataset contains no records")
	}

	result := make(map[string]domain.PhysicianKPI)

	for _, record := range ds.Records {
		k := result[record.Physician]
		k.Physician = record.Physician
		k.TotalRVU += record.RVU
		k.TotalPoints += record.Points
		k.ExamCount++
		result[record.Physician] = k
	}

	for physician, k := range result {
		k.AvgRVU = k.TotalRVU / float64(k.ExamCount)
		result[physician] = k
	}

	return result, nil
}
