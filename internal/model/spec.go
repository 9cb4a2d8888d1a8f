package model

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	DefaultColor   = "Red"
	DefaultGroupBy = "size"
	DefaultTimeout = 5 * time.Minute
	DefaultOutput  = "output"
)

// Source describes where a record collection is read from
type Source struct {
	Type string `json:"type" yaml:"type"` // csv, json, sqlite
	URL  string `json:"url" yaml:"url"`   // file path, http(s) URL or sqlite database path
}

// Sources holds the product and sales repositories of a report
type Sources struct {
	Products *Source `json:"products,omitempty" yaml:"products,omitempty"`
	Sales    *Source `json:"sales,omitempty" yaml:"sales,omitempty"`
}

// Export defines where a finished report is written
type Export struct {
	File string `json:"file" yaml:"file"` // report.txt, report.csv or report.json
	Dir  string `json:"dir" yaml:"dir"`   // base output directory, one subdirectory per run
}

// ReportSpec is the full configuration of a report run
type ReportSpec struct {
	Sources    Sources  `json:"sources" yaml:"sources"`
	Operations []string `json:"operations" yaml:"operations"`
	Color      string   `json:"color,omitempty" yaml:"color,omitempty"`     // filter for count-filtered
	GroupBy    string   `json:"groupBy,omitempty" yaml:"groupBy,omitempty"` // size or color
	Workers    int      `json:"workers,omitempty" yaml:"workers,omitempty"` // > 1 accumulates groups concurrently
	Export     *Export  `json:"export,omitempty" yaml:"export,omitempty"`
	Timeout    string   `json:"timeout,omitempty" yaml:"timeout,omitempty"` // e.g. "30s"
}

// WithDefaults returns a copy of the spec with empty fields filled in.
func (s ReportSpec) WithDefaults() ReportSpec {
	if s.Color == "" {
		s.Color = DefaultColor
	}
	if s.GroupBy == "" {
		s.GroupBy = DefaultGroupBy
	}
	if s.Export != nil && s.Export.Dir == "" {
		e := *s.Export
		e.Dir = DefaultOutput
		s.Export = &e
	}
	return s
}

// JobTimeout parses Timeout, falling back to DefaultTimeout.
func (s ReportSpec) JobTimeout() time.Duration {
	if s.Timeout == "" {
		return DefaultTimeout
	}
	d, err := time.ParseDuration(s.Timeout)
	if err != nil || d <= 0 {
		return DefaultTimeout
	}
	return d
}

// LoadReportSpec reads a YAML (or JSON) report spec from path.
func LoadReportSpec(path string) (ReportSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ReportSpec{}, fmt.Errorf("failed to read report spec: %w", err)
	}
	var spec ReportSpec
	if err := yaml.UnmarshalStrict(data, &spec); err != nil {
		return ReportSpec{}, fmt.Errorf("failed to parse report spec %s: %w", path, err)
	}
	return spec, nil
}
