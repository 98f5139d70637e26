package terminal

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/milv-tools/rvu-atlas/pkg/adapters"
	"github.com/milv-tools/rvu-atlas/pkg/models/api"
	"github.com/milv-tools/rvu-atlas/pkg/models/domain"
)

// Reporter outputs dashboard snapshots to the console in a formatted
// text form
type Reporter struct {
	writer io.Writer
}

// NewReporter creates a new console reporter
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

type reportView struct {
	Snapshot    api.DashboardSnapshot
	TotalExams  int
	TotalRVU    float64
	TotalPoints float64
}

func (c *Reporter) Handle(snapshot *domain.DashboardSnapshot) error {
	view := reportView{Snapshot: adapters.MapSnapshotDomainToApi(snapshot)}
	for _, k := range view.Snapshot.KPIs {
		view.TotalExams += k.ExamCount
		view.TotalRVU += k.TotalRVU
		view.TotalPoints += k.TotalPoints
	}

	tmpl := `
Radiology Productivity Dashboard
Source: {{.Snapshot.Stats.Source}}
Period: {{.Snapshot.Stats.Period.Start.Format "2006-01-02"}} to {{.Snapshot.Stats.Period.End.Format "2006-01-02"}}
Exams: {{.TotalExams}} (excluded rows: {{.Snapshot.Stats.Excluded}})
Total RVU: {{printf "%.2f" .TotalRVU}}
Total Points: {{printf "%.2f" .TotalPoints}}

=== Physician KPIs ===
{{range .Snapshot.KPIs}}- {{.Physician}}: {{.ExamCount}} exams, RVU {{printf "%.2f" .TotalRVU}}, points {{printf "%.2f" .TotalPoints}}, avg RVU/exam {{printf "%.2f" .AvgRVU}}
{{end}}
=== Modality Distribution ===
{{range .Snapshot.Modalities}}- {{.Modality}}: {{.ExamCount}} exams ({{printf "%.1f%%" (pct .Share)}})
{{end}}
=== Workload by Day of Week ===
{{range .Snapshot.DayOfWeek}}- {{.Label}}: {{.ExamCount}} exams, RVU {{printf "%.2f" .TotalRVU}}
{{end}}`

	t, err := template.New("report").Funcs(template.FuncMap{
		"pct": func(share float64) float64 { return share * 100 },
	}).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, view)
}
