package modality

import (
	"fmt"

	"github.com/milv-tools/rvu-atlas/pkg/models/domain"
)

// Aggregator computes exam-volume breakdowns by modality.
type Aggregator interface {
	// Compute returns the distribution for one scope: the whole
	// dataset (domain.ScopeGlobal) or a single physician. A scope
	// with no matching records yields an empty map, not an error.
	Compute(ds *domain.NormalizedDataset, scope domain.ModalityScope) (map[string]domain.ModalityDistribution, error)

	// ComputeAll returns the physician-by-modality cross table.
	ComputeAll(ds *domain.NormalizedDataset) (map[string]map[string]domain.ModalityDistribution, error)
}

type aggregator struct{}

func NewAggregator() Aggregator {
	return &aggregator{}
}

func (a *aggregator) Compute(
	ds *domain.NormalizedDataset,
	scope domain.ModalityScope,
) (map[string]domain.ModalityDistribution, error) {
	if ds == nil || ds.Len() == 0 {
		return nil, fmt.Errorf("modality: dataset contains no records")
	}

	counts := make(map[string]int)
	total := 0

	for _, record := range ds.Records {
		if scope != domain.ScopeGlobal && record.Physician != string(scope) {
			continue
		}
		counts[record.Modality]++
		total++
	}

	return distribute(counts, total), nil
}

func (a *aggregator) ComputeAll(
	ds *domain.NormalizedDataset,
) (map[string]map[string]domain.ModalityDistribution, error) {
	if ds == nil || ds.Len() == 0 {
		return nil, fmt.Errorf("modality: dataset contains no records")
	}

	counts := make(map[string]map[string]int)
	totals := make(map[string]int)

	for _, record := range ds.Records {
		byModality, ok := counts[record.Physician]
		if !ok {
			byModality = make(map[string]int)
			counts[record.Physician] = byModality
		}
		byModality[record.Modality]++
		totals[record.Physician]++
	}

	result := make(map[string]map[string]domain.ModalityDistribution, len(counts))
	for physician, byModality := range counts {
		result[physician] = distribute(byModality, totals[physician])
	}
	return result, nil
}

// distribute turns raw counts into shares of the scope total. Shares
// across a non-empty scope sum to 1.0 within floating-point tolerance.
func distribute(counts map[string]int, total int) map[string]domain.ModalityDistribution {
	result := make(map[string]domain.ModalityDistribution, len(counts))
	if total == 0 {
		return result
	}
	for code, count := range counts {
		result[code] = domain.ModalityDistribution{
			Modality:  code,
			ExamCount: count,
			Share:     float64(count) / float64(total),
		}
	}
	return result
}
