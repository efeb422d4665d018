package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/mrz1836/buildwatch/internal/domain"
	"github.com/mrz1836/buildwatch/internal/integration"
)

// MessageBuilder renders the body of a notification.
type MessageBuilder interface {
	Build(snap integration.Snapshot) (string, error)
}

// MessageBuilderFunc adapts a function to MessageBuilder.
type MessageBuilderFunc func(snap integration.Snapshot) (string, error)

// Build calls f(snap).
func (f MessageBuilderFunc) Build(snap integration.Snapshot) (string, error) {
	return f(snap)
}

const timeLayout = "2006-01-02 15:04:05 MST"

//nolint:gochecknoglobals // parsed once, read-only
var htmlMessageTemplate = template.Must(template.New("message").Parse(`<html>
<head><title>{{.Subject}}</title></head>
<body>
<h1>Build results for project {{.Project}}</h1>
<table>
<tr><td>Status</td><td>{{.Outcome}}</td></tr>
<tr><td>Label</td><td>{{.Label}}</td></tr>
{{- if .ProjectURL}}
<tr><td>Project</td><td><a href="{{.ProjectURL}}">{{.ProjectURL}}</a></td></tr>
{{- end}}
{{- if .Started}}
<tr><td>Started</td><td>{{.Started}}</td></tr>
<tr><td>Duration</td><td>{{.Duration}}</td></tr>
{{- end}}
</table>
{{- if .ShowModifications}}
<h2>Modifications since last build</h2>
{{- if .Modifications}}
<table>
<tr><th>Author</th><th>Change</th><th>File</th><th>Comment</th><th>Date</th></tr>
{{- range .Modifications}}
<tr><td>{{.UserName}}</td><td>{{if .ChangeNumber}}{{.ChangeNumber}}{{end}}</td><td>{{.FolderName}}{{if and .FolderName .FileName}}/{{end}}{{.FileName}}</td><td>{{.Comment}}</td><td>{{.ModifiedTime.Format "2006-01-02 15:04:05 MST"}}</td></tr>
{{- end}}
</table>
{{- else}}
<p>No modifications.</p>
{{- end}}
{{- end}}
{{- if .Steps}}
<h2>Build details</h2>
{{- range .Steps}}
<h3>{{.Name}}: {{if .Success}}success{{else}}failure{{end}}</h3>
{{- with .Tests}}
<p>{{.}}</p>
{{- end}}
{{- end}}
{{- end}}
{{- if .Fault}}
<h2>Exception</h2>
<p>{{.Fault.Message}}</p>
<p>{{.Fault.Kind}}</p>
{{- else}}
<p>BUILD COMPLETE</p>
{{- end}}
</body>
</html>
`))

//nolint:gochecknoglobals // parsed once, read-only
var textMessageTemplate = texttemplate.Must(texttemplate.New("message").Parse(`Build results for project {{.Project}}

Status: {{.Outcome}}
Label: {{.Label}}
{{- if .ProjectURL}}
Project: {{.ProjectURL}}
{{- end}}
{{- if .Started}}
Started: {{.Started}}
Duration: {{.Duration}}
{{- end}}
{{- if .Modifications}}

Modifications since last build:
{{- range .Modifications}}
  {{.UserName}} {{.FolderName}}{{if and .FolderName .FileName}}/{{end}}{{.FileName}}{{with .Comment}} ({{.}}){{end}}
{{- end}}
{{- end}}

{{if .Fault -}}
Exception: {{.Fault.Message}} ({{.Fault.Kind}})
{{- else -}}
BUILD COMPLETE
{{- end}}
`))

type messageData struct {
	Subject           string
	Project           string
	ProjectURL        string
	Outcome           string
	Label             string
	Started           string
	Duration          string
	ShowModifications bool
	Modifications     []domain.Modification
	Steps             []stepDetail
	Fault             *domain.Fault
}

type stepDetail struct {
	Name    string
	Success bool
	Tests   *TestSummary
}

func newMessageData(snap integration.Snapshot) messageData {
	data := messageData{
		Subject:       Subject(snap),
		Project:       snap.ProjectName(),
		ProjectURL:    snap.ProjectURL(),
		Outcome:       Outcome(snap),
		Label:         snap.Label(),
		Modifications: snap.Modifications(),
		Fault:         snap.Fault(),
	}
	if start := snap.StartTime(); !start.IsZero() {
		data.Started = start.Format(timeLayout)
		data.Duration = snap.Duration().Round(time.Second).String()
	}
	return data
}

// TextMessageBuilder renders a short plain-text summary: the title line,
// the outcome, any modifications and the fault if one was captured.
type TextMessageBuilder struct{}

// ContentType returns ContentTypePlain.
func (TextMessageBuilder) ContentType() string { return ContentTypePlain }

// Build renders snap.
func (TextMessageBuilder) Build(snap integration.Snapshot) (string, error) {
	var buf strings.Builder
	if err := textMessageTemplate.Execute(&buf, newMessageData(snap)); err != nil {
		return "", fmt.Errorf("render message for %s: %w", snap.ProjectName(), err)
	}
	return buf.String(), nil
}

// HTMLMessageBuilder renders notifications as an HTML document.
type HTMLMessageBuilder struct {
	// IncludeDetails adds the modification section even when empty, and a
	// per-step section with any embedded test summaries.
	IncludeDetails bool
}

// ContentType returns ContentTypeHTML.
func (HTMLMessageBuilder) ContentType() string { return ContentTypeHTML }

// Build renders snap.
func (b HTMLMessageBuilder) Build(snap integration.Snapshot) (string, error) {
	data := newMessageData(snap)
	data.ShowModifications = snap.HasModifications() || b.IncludeDetails
	if b.IncludeDetails {
		data.Steps = stepDetails(snap.StepResults())
	}

	var buf bytes.Buffer
	if err := htmlMessageTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render message for %s: %w", snap.ProjectName(), err)
	}
	return buf.String(), nil
}

func stepDetails(steps []domain.StepResult) []stepDetail {
	details := make([]stepDetail, 0, len(steps))
	for i, s := range steps {
		name := s.StepName
		if name == "" {
			name = fmt.Sprintf("step %d", i+1)
		}
		d := stepDetail{Name: name, Success: s.Success}
		if summary, ok := parseTestSummary(s.Data); ok {
			d.Tests = &summary
		}
		details = append(details, d)
	}
	return details
}
