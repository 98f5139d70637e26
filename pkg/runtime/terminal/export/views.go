package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/milv-tools/rvu-atlas/pkg/adapters"
	"github.com/milv-tools/rvu-atlas/pkg/models/domain"
)

// View file names match the CSV tables the executive dashboard
// historically consumed, so existing tooling keeps working.
const (
	PhysicianKPIFile      = "physician_kpi.csv"
	PhysicianSeriesFile   = "physician_time_series.csv"
	ModalityFile          = "modality_distribution.csv"
	PhysicianModalityFile = "physician_modality.csv"
	DayOfWeekFile         = "day_of_week_workload.csv"
	HourlyFile            = "hourly_workload.csv"
)

// Exporter writes the six derived view tables of a snapshot as CSV
// files into a directory.
type Exporter struct {
	dir string
}

func NewExporter(dir string) *Exporter {
	return &Exporter{dir: dir}
}

func (e *Exporter) Handle(snapshot *domain.DashboardSnapshot) error {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	views := []struct {
		name   string
		header []string
		rows   [][]string
	}{
		{PhysicianKPIFile,
			[]string{"Finalizing Provider", "Total_Exams", "Total_RVU", "Total_Points", "Avg_RVU"},
			e.kpiRows(snapshot)},
		{PhysicianSeriesFile,
			[]string{"Month", "Finalizing Provider", "Total_Exams", "Total_RVU", "Total_Points"},
			e.seriesRows(snapshot)},
		{ModalityFile,
			[]string{"Modality", "Total Exams", "Share"},
			e.modalityRows(snapshot)},
		{PhysicianModalityFile,
			[]string{"Physician", "Modality", "Exam Count"},
			e.physicianModalityRows(snapshot)},
		{DayOfWeekFile,
			[]string{"Day of Week", "Total Exams", "Total RVU"},
			e.dayOfWeekRows(snapshot)},
		{HourlyFile,
			[]string{"Hour", "Total Exams", "Total RVU"},
			e.hourlyRows(snapshot)},
	}

	for _, view := range views {
		if err := e.writeView(view.name, view.header, view.rows); err != nil {
			return err
		}
	}
	return nil
}

func (e *Exporter) writeView(name string, header []string, rows [][]string) error {
	path := filepath.Join(e.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	w.Flush()
	return w.Error()
}

func (e *Exporter) kpiRows(s *domain.DashboardSnapshot) [][]string {
	var rows [][]string
	for _, k := range adapters.MapKPIsDomainToApi(s.KPIs) {
		rows = append(rows, []string{
			k.Physician,
			strconv.Itoa(k.ExamCount),
			formatFloat(k.TotalRVU),
			formatFloat(k.TotalPoints),
			formatFloat(k.AvgRVU),
		})
	}
	return rows
}

func (e *Exporter) seriesRows(s *domain.DashboardSnapshot) [][]string {
	var rows [][]string
	for _, p := range adapters.MapSeriesDomainToApi(s.MonthlySeries) {
		rows = append(rows, []string{
			p.Month,
			p.Physician,
			strconv.Itoa(p.ExamCount),
			formatFloat(p.TotalRVU),
			formatFloat(p.TotalPoints),
		})
	}
	return rows
}

func (e *Exporter) modalityRows(s *domain.DashboardSnapshot) [][]string {
	var rows [][]string
	for _, m := range adapters.MapModalitiesDomainToApi(s.Modalities) {
		rows = append(rows, []string{
			m.Modality,
			strconv.Itoa(m.ExamCount),
			formatFloat(m.Share),
		})
	}
	return rows
}

func (e *Exporter) physicianModalityRows(s *domain.DashboardSnapshot) [][]string {
	var rows [][]string
	for _, pm := range adapters.MapPhysicianModalityDomainToApi(s.PhysicianModality) {
		for _, m := range pm.Modalities {
			rows = append(rows, []string{
				pm.Physician,
				m.Modality,
				strconv.Itoa(m.ExamCount),
			})
		}
	}
	return rows
}

func (e *Exporter) dayOfWeekRows(s *domain.DashboardSnapshot) [][]string {
	var rows [][]string
	for _, b := range adapters.MapDayOfWeekDomainToApi(s.DayOfWeek) {
		rows = append(rows, []string{
			b.Label,
			strconv.Itoa(b.ExamCount),
			formatFloat(b.TotalRVU),
		})
	}
	return rows
}

func (e *Exporter) hourlyRows(s *domain.DashboardSnapshot) [][]string {
	var rows [][]string
	for _, b := range adapters.MapHourlyDomainToApi(s.Hourly) {
		rows = append(rows, []string{
			b.Label,
			strconv.Itoa(b.ExamCount),
			formatFloat(b.TotalRVU),
		})
	}
	return rows
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
