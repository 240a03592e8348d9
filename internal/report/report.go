// internal/report/report.go
// Package report renders a leaderboard view as a standalone HTML page or a Markdown table.
package report

import (
	"fmt"
	"html/template"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/mwiater/matboard/internal/leaderboard"
)

// Download is a link to a downloadable artifact of the leaderboard.
type Download struct {
	Label string
	URL   string
}

// Data is the view model shared by both renderers.
type Data struct {
	Title       string
	SetLabel    string
	BestSummary string
	HasBest     bool
	BestModel   string
	Headers     []string
	Rows        []Row
	Issues      []string
	Downloads   []Download
	Footnote    string
	Generated   string
}

// Row is one rendered leaderboard row.
type Row struct {
	Model string
	Best  bool
	Cells []string
}

// Build flattens a view into report data. downloads maps a format label to its URL;
// entries with an empty URL are dropped.
func Build(view leaderboard.View, downloads map[string]string) Data {
	data := Data{
		Title:       "Matbench Discovery Leaderboard",
		SetLabel:    view.ActiveSet.Label(),
		BestSummary: view.BestSummary(),
		HasBest:     view.HasBest,
		Headers:     view.Headers(),
		Generated:   time.Now().UTC().Format(time.RFC3339),
	}
	if view.HasBest {
		data.BestModel = view.Best.Model
	}
	for i, cells := range view.Cells() {
		data.Rows = append(data.Rows, Row{
			Model: view.Rows[i].Record.ModelName,
			Best:  view.HasBest && view.Rows[i].Record.ModelName == view.Best.Model,
			Cells: cells,
		})
	}
	for _, issue := range view.Issues {
		data.Issues = append(data.Issues, issue.String())
	}
	for _, label := range sortedKeys(downloads) {
		if url := strings.TrimSpace(downloads[label]); url != "" {
			data.Downloads = append(data.Downloads, Download{Label: strings.ToUpper(label), URL: url})
		}
	}
	if view.IncludeNonCompliant {
		data.Footnote = fmt.Sprintf("Models marked with%s are not compliant with the benchmark rules.", leaderboard.NonCompliantMark)
	}
	return data
}

// WriteHTML renders data as a self-contained HTML page.
func WriteHTML(w io.Writer, data Data) error {
	return htmlTemplate.Execute(w, data)
}

// WriteMarkdown renders data as a Markdown document with a pipe table.
func WriteMarkdown(w io.Writer, data Data) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", data.Title)
	fmt.Fprintf(&b, "Discovery set: **%s**\n\n", data.SetLabel)
	fmt.Fprintf(&b, "%s\n\n", data.BestSummary)

	if len(data.Headers) > 0 {
		b.WriteString("| " + strings.Join(escapeAll(data.Headers), " | ") + " |\n")
		seps := make([]string, len(data.Headers))
		for i := range seps {
			seps[i] = "---"
		}
		b.WriteString("| " + strings.Join(seps, " | ") + " |\n")
		for _, row := range data.Rows {
			cells := escapeAll(row.Cells)
			if row.Best && len(cells) > 0 {
				cells[0] = "**" + cells[0] + "**"
			}
			b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
		}
		b.WriteString("\n")
	}

	if data.Footnote != "" {
		fmt.Fprintf(&b, "_%s_\n\n", data.Footnote)
	}
	if len(data.Issues) > 0 {
		b.WriteString("## Data quality\n\n")
		for _, issue := range data.Issues {
			fmt.Fprintf(&b, "- %s\n", issue)
		}
		b.WriteString("\n")
	}
	if len(data.Downloads) > 0 {
		links := make([]string, len(data.Downloads))
		for i, d := range data.Downloads {
			links[i] = fmt.Sprintf("[%s](%s)", d.Label, d.URL)
		}
		fmt.Fprintf(&b, "Download: %s\n", strings.Join(links, " · "))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func escapeAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ReplaceAll(s, "|", `\|`)
	}
	return out
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var htmlTemplate = template.Must(template.New("leaderboard-report").Parse(htmlTemplateText))

const htmlTemplateText = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Title }}</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css">
  <style>
    :root {
      --primary: #334155;
      --secondary: #64748B;
      --accent: #3B82F6;
      --light: #F1F5F9;
      --background: #FFFFFF;
      --text: #0F172A;
      --warning: #F59E0B;
      --border: #E2E8F0;
    }
    body { background-color: var(--light); color: var(--text); }
    .navbar-dark { background-color: var(--primary) !important; }
    .card { border: 1px solid var(--border); background-color: var(--background); }
    .table thead th { background-color: var(--light); border-color: var(--border); white-space: nowrap; }
    .table td.best-model { background-color: #DBEAFE; font-weight: 600; }
    .best-badge { background-color: var(--accent); }
    .issues li { color: var(--warning); }
    .footnote { color: var(--secondary); font-size: 0.9rem; }
  </style>
</head>
<body>
  <nav class="navbar navbar-dark mb-4">
    <div class="container-fluid">
      <span class="navbar-brand">{{ .Title }}</span>
      <span class="text-light small">{{ .Generated }}</span>
    </div>
  </nav>
  <main class="container-fluid">
    <div class="card mb-3">
      <div class="card-body">
        <h5 class="card-title">Discovery set: {{ .SetLabel }}</h5>
        <p class="card-text">{{ if .HasBest }}<span class="badge best-badge me-2">Best</span>{{ end }}{{ .BestSummary }}</p>
        {{- if .Downloads }}
        <p class="card-text">Download:{{ range .Downloads }} <a class="btn btn-sm btn-outline-secondary" href="{{ .URL }}">{{ .Label }}</a>{{ end }}</p>
        {{- end }}
      </div>
    </div>
    <div class="card">
      <div class="card-body table-responsive">
        <table class="table table-striped table-bordered table-sm" id="leaderboard">
          <thead>
            <tr>{{ range .Headers }}<th>{{ . }}</th>{{ end }}</tr>
          </thead>
          <tbody>
            {{- range .Rows }}
            <tr>{{ $best := .Best }}{{ range $i, $c := .Cells }}<td{{ if and $best (eq $i 0) }} class="best-model"{{ end }}>{{ $c }}</td>{{ end }}</tr>
            {{- end }}
          </tbody>
        </table>
        {{- if .Footnote }}
        <p class="footnote">{{ .Footnote }}</p>
        {{- end }}
      </div>
    </div>
    {{- if .Issues }}
    <div class="card mt-3">
      <div class="card-body">
        <h6 class="card-title">Data quality</h6>
        <ul class="issues">{{ range .Issues }}<li>{{ . }}</li>{{ end }}</ul>
      </div>
    </div>
    {{- end }}
  </main>
</body>
</html>
`
