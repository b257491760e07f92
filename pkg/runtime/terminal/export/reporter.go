package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/report-hub/pkg/models/domain"
)

const defaultColumnWidth = 16

// Reporter renders report pages as fixed-width console tables.
type Reporter struct {
	writer io.Writer
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

func (c *Reporter) Handle(page *domain.ReportPage) error {
	widths := make([]int, len(page.Columns))
	for i, col := range page.Columns {
		widths[i] = col.Width
		if widths[i] <= 0 {
			widths[i] = defaultColumnWidth
		}
	}

	funcMap := template.FuncMap{
		"headerRow": func() string {
			cells := make([]string, len(page.Columns))
			for i, col := range page.Columns {
				cells[i] = fmt.Sprintf(" %-*s ", widths[i], col.Header)
			}
			return "|" + strings.Join(cells, "|") + "|"
		},
		"dataRow": func(row domain.Row) string {
			cells := make([]string, len(page.Columns))
			for i, col := range page.Columns {
				value := row[col.Key]
				if value == nil {
					value = ""
				}
				cells[i] = fmt.Sprintf(" %-*v ", widths[i], value)
			}
			return "|" + strings.Join(cells, "|") + "|"
		},
		"separator": func() string {
			parts := make([]string, len(page.Columns))
			for i := range page.Columns {
				parts[i] = strings.Repeat("-", widths[i]+2)
			}
			return "+" + strings.Join(parts, "+") + "+"
		},
	}

	tmpl := `
{{.Report}} ({{.Period.Days}} days)
Period: {{.Period.Start.Format "2006-01-02"}} to {{.Period.End.Format "2006-01-02"}}

{{separator}}
{{headerRow}}
{{separator}}
{{range .Rows}}{{dataRow .}}
{{end}}{{separator}}
{{range $key, $value := .Summary}}
{{$key}}: {{$value}}{{end}}

Page {{.Page.Index}} of {{.Page.TotalPages}} ({{.Page.TotalRows}} rows)
`

	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, page)
}
