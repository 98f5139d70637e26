package modality

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milv-tools/rvu-atlas/pkg/models/domain"
)

func dataset(records ...domain.ExamRecord) *domain.NormalizedDataset {
	return &domain.NormalizedDataset{Records: records}
}

func scenario() *domain.NormalizedDataset {
	ts := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	return dataset(
		domain.ExamRecord{Physician: "A", Modality: "CT", RVU: 2.0, Timestamp: ts},
		domain.ExamRecord{Physician: "A", Modality: "MR", RVU: 3.0, Timestamp: ts},
		domain.ExamRecord{Physician: "B", Modality: "CT", RVU: 1.0, Timestamp: ts},
	)
}

func TestAggregator_Compute(t *testing.T) {
	agg := NewAggregator()

	t.Run("global scope counts and shares", func(t *testing.T) {
		dist, err := agg.Compute(scenario(), domain.ScopeGlobal)
		require.NoError(t, err)

		require.Len(t, dist, 2)
		assert.Equal(t, 2, dist["CT"].ExamCount)
		assert.InDelta(t, 2.0/3.0, dist["CT"].Share, 1e-9)
		assert.Equal(t, 1, dist["MR"].ExamCount)
		assert.InDelta(t, 1.0/3.0, dist["MR"].Share, 1e-9)
	})

	t.Run("shares sum to one for non-empty scopes", func(t *testing.T) {
		for _, scope := range []domain.ModalityScope{domain.ScopeGlobal, "A", "B"} {
			dist, err := agg.Compute(scenario(), scope)
			require.NoError(t, err)

			sum := 0.0
			for _, d := range dist {
				sum += d.Share
			}
			assert.InDelta(t, 1.0, sum, 1e-9, "scope %q", scope)
		}
	})

	t.Run("physician scope only counts their exams", func(t *testing.T) {
		dist, err := agg.Compute(scenario(), "A")
		require.NoError(t, err)

		require.Len(t, dist, 2)
		assert.Equal(t, 1, dist["CT"].ExamCount)
		assert.InDelta(t, 0.5, dist["CT"].Share, 1e-9)
	})

	t.Run("physician named like the sentinel is still scoped individually", func(t *testing.T) {
		ts := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
		ds := dataset(
			domain.ExamRecord{Physician: "global", Modality: "CT", Timestamp: ts},
			domain.ExamRecord{Physician: "B", Modality: "MR", Timestamp: ts},
		)

		dist, err := agg.Compute(ds, "global")
		require.NoError(t, err)
		require.Len(t, dist, 1)
		assert.Equal(t, 1, dist["CT"].ExamCount)
		assert.InDelta(t, 1.0, dist["CT"].Share, 1e-9)

		all, err := agg.Compute(ds, domain.ScopeGlobal)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("unknown physician yields an empty map, not an error", func(t *testing.T) {
		dist, err := agg.Compute(scenario(), "nobody")
		require.NoError(t, err)
		assert.Empty(t, dist)
	})

	t.Run("empty dataset is an error", func(t *testing.T) {
		_, err := agg.Compute(dataset(), domain.ScopeGlobal)
		assert.Error(t, err)
	})
}

func TestAggregator_ComputeAll(t *testing.T) {
	agg := NewAggregator()

	cross, err := agg.ComputeAll(scenario())
	require.NoError(t, err)

	require.Len(t, cross, 2)
	assert.Equal(t, 1, cross["A"]["CT"].ExamCount)
	assert.InDelta(t, 0.5, cross["A"]["MR"].Share, 1e-9)
	assert.Equal(t, 1, cross["B"]["CT"].ExamCount)
	assert.InDelta(t, 1.0, cross["B"]["CT"].Share, 1e-9)
}
