package frontend

import (
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/ayanpandit/PrepTera/internal/model/interview"
)

// Indicator is a decorative score shown next to the feedback. Indicators are
// fixed presentation values and are not derived from the feedback text.
type Indicator struct {
	Name    string
	Percent int
}

// ReportData is what the report view renders.
type ReportData struct {
	CandidateName string
	Feedback      string
	Info          interview.SessionInfo
}

var (
	overallStars = 4
	categories   = []Indicator{
		{Name: "Communication", Percent: 85},
		{Name: "Technical Knowledge", Percent: 78},
		{Name: "Problem Solving", Percent: 82},
		{Name: "Confidence", Percent: 80},
	}
)

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"stars":    stars,
	"bar":      bar,
	"duration": duration,
}).Parse(`Interview Completed
Well Done{{with .CandidateName}}, {{.}}{{end}}! Here's Your Feedback
{{with .Info}}
Role:       {{.JobRole}}
Domain:     {{.Domain}}
Type:       {{.InterviewType}}
Questions:  {{.TotalQuestions}}
Duration:   {{duration .StartTime .EndTime}}
{{end}}
Interview Feedback
------------------
{{.Feedback}}

Overall Rating  {{stars .Overall}}
{{range .Categories}}{{printf "%-20s" .Name}} {{bar .Percent}} {{.Percent}}%
{{end}}`))

// RenderReport writes the report view for data.
func RenderReport(w io.Writer, data ReportData) error {
	return reportTemplate.Execute(w, struct {
		ReportData
		Overall    int
		Categories []Indicator
	}{data, overallStars, categories})
}

func stars(n int) string {
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}

func bar(percent int) string {
	filled := percent / 10
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", 10-filled) + "]"
}

func duration(start, end time.Time) string {
	if start.IsZero() || end.Before(start) {
		return "n/a"
	}
	return end.Sub(start).Round(time.Second).String()
}
