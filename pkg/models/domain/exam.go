package domain

import "time"

// ExamRecord is a single imaging exam event. Records are immutable once
// loaded and owned by the dataset they were loaded into.
type ExamRecord struct {
	Physician string
	Modality  string
	RVU       float64
	Points    float64
	Timestamp time.Time
	ExamType  string
}

// DatasetPeriod is the observed time range of a dataset.
type DatasetPeriod struct {
	Start time.Time
	End   time.Time
}

// NormalizedDataset holds exam records in load order together with the
// load metadata. Every record has a non-empty physician and modality
// and a valid timestamp; numeric fields are non-negative.
type NormalizedDataset struct {
	Source   string
	LoadedAt time.Time
	Records  []ExamRecord
	Period   DatasetPeriod

	// Excluded counts rows dropped during validation, broken down
	// by reason in ExclusionReasons.
	Excluded         int
	ExclusionReasons map[string]int
}

func (d *NormalizedDataset) Len() int {
	return len(d.Records)
}
