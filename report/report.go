// Package report renders a Recording as a human readable timeline, using
// text/template with the sprig functions.
package report

import (
	"embed"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"text/template"
	"time"

	"github.com/Masterminds/sprig"
	"github.com/vsariola/slidermon"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

type (
	Report struct {
		Template *template.Template
		// WithState includes the state of every step in the report.
		WithState bool
	}

	// Timeline is the data the templates are executed with.
	Timeline struct {
		Name      string
		Duration  time.Duration
		Rows      []Row
		WithState bool
	}

	Row struct {
		Index     int // 1-based
		Action    string
		Title     string
		Timestamp time.Duration
		Delta     time.Duration // time since the previous step
		State     string        // yaml
	}
)

//go:embed templates/*
var templates embed.FS

// New returns a report using the embedded templates.
func New() (*Report, error) {
	tmpl, err := baseTemplate().ParseFS(templates, "templates/*")
	if err != nil {
		return nil, fmt.Errorf("could not parse the embedded templates: %w", err)
	}
	return &Report{Template: tmpl}, nil
}

// NewFromTemplates parses all the templates in a directory; the format of a
// template is its filename without the extension.
func NewFromTemplates(templateDirectory string) (*Report, error) {
	globPtrn := filepath.Join(templateDirectory, "*.*")
	tmpl, err := baseTemplate().ParseGlob(globPtrn)
	if err != nil {
		return nil, fmt.Errorf(`could not create template based on directory "%v": %w`, templateDirectory, err)
	}
	return &Report{Template: tmpl}, nil
}

func baseTemplate() *template.Template {
	return template.New("base").Funcs(sprig.TxtFuncMap()).Funcs(template.FuncMap{
		"actiontitle": ActionTitle,
	})
}

// Formats returns the names of the available formats, sorted.
func (r *Report) Formats() []string {
	var ret []string
	for _, t := range r.Template.Templates() {
		if name := t.Name(); name != "base" {
			ret = append(ret, strings.TrimSuffix(name, filepath.Ext(name)))
		}
	}
	slices.Sort(ret)
	return ret
}

// Render writes the report of the recording to w in the given format, e.g.
// "text" or "markdown".
func (r *Report) Render(w io.Writer, format string, rec *slidermon.Recording) error {
	tmpl := r.lookup(format)
	if tmpl == nil {
		return fmt.Errorf("unknown report format %q, expected one of %s", format, strings.Join(r.Formats(), ", "))
	}
	timeline, err := NewTimeline(rec, r.WithState)
	if err != nil {
		return err
	}
	if err := tmpl.Execute(w, timeline); err != nil {
		return fmt.Errorf("could not execute template %q: %w", tmpl.Name(), err)
	}
	return nil
}

// Extension returns the file extension of a format, including the dot, or
// an empty string for unknown formats.
func (r *Report) Extension(format string) string {
	if tmpl := r.lookup(format); tmpl != nil {
		return filepath.Ext(tmpl.Name())
	}
	return ""
}

func (r *Report) lookup(format string) *template.Template {
	for _, t := range r.Template.Templates() {
		name := t.Name()
		if strings.TrimSuffix(name, filepath.Ext(name)) == format {
			return t
		}
	}
	return nil
}

func NewTimeline(rec *slidermon.Recording, withState bool) (Timeline, error) {
	t := Timeline{Name: rec.Name, WithState: withState}
	for i, step := range rec.Steps {
		row := Row{
			Index:     i + 1,
			Action:    step.Action,
			Title:     ActionTitle(step.Action),
			Timestamp: step.Timestamp,
		}
		if i > 0 {
			row.Delta = rec.Delta(i - 1)
		}
		if withState && step.State != nil {
			b, err := yaml.Marshal(step.State)
			if err != nil {
				return Timeline{}, fmt.Errorf("could not marshal the state of step %d: %w", i+1, err)
			}
			row.State = string(b)
		}
		t.Rows = append(t.Rows, row)
	}
	if n := rec.Len(); n > 0 {
		t.Duration = rec.Timestamp(n-1) - rec.Timestamp(0)
	}
	return t, nil
}

// ActionTitle converts action names like ADD_TODO or set-filter into titles:
// Add Todo, Set Filter.
func ActionTitle(action string) string {
	words := strings.Fields(strings.NewReplacer("_", " ", "-", " ").Replace(action))
	return cases.Title(language.English).String(strings.ToLower(strings.Join(words, " ")))
}
