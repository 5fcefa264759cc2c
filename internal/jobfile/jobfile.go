// Package jobfile loads offline composition jobs from YAML.
//
//	version: 1
//	canvas: {width: 1280, height: 720}
//	output: call.mp4
//	artifacts:
//	  - file: alice.webm
//	    start: 0
//	    duration: 30m
//	  - file: share.webm
//	    start: 3m
//	    duration: 5m
//	    screen: true
//
// Artifact ids are positional: the first artifact is input 0.
package jobfile

import (
	"fmt"
	"os"
	"time"

	"call-compositor/internal/composition"

	"gopkg.in/yaml.v3"
)

// Millis is a millisecond count that also accepts Go duration strings ("5m", "1h2m3.5s").
type Millis int64

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *Millis) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected milliseconds or duration", value.Line)
	}
	if value.Tag == "!!int" {
		var n int64
		if err := value.Decode(&n); err != nil {
			return err
		}
		*m = Millis(n)
		return nil
	}
	d, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*m = Millis(d.Milliseconds())
	return nil
}

// ArtifactSpec is one recorded track in a job file.
type ArtifactSpec struct {
	File     string `yaml:"file"`
	Start    Millis `yaml:"start"`
	Duration Millis `yaml:"duration"`
	Screen   bool   `yaml:"screen"`
}

// Job is a parsed job file.
type Job struct {
	Version int `yaml:"version"`
	Canvas  struct {
		Width  int `yaml:"width"`
		Height int `yaml:"height"`
	} `yaml:"canvas"`
	Output string         `yaml:"output"`
	Specs  []ArtifactSpec `yaml:"artifacts"`
}

// Load reads and parses the job file at path.
func Load(path string) (*Job, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	job, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return job, nil
}

// Parse decodes a job from YAML bytes.
func Parse(b []byte) (*Job, error) {
	var job Job
	if err := yaml.Unmarshal(b, &job); err != nil {
		return nil, err
	}
	if job.Version != 1 {
		return nil, fmt.Errorf("unsupported job version: %d", job.Version)
	}
	for i, s := range job.Specs {
		if s.File == "" {
			return nil, fmt.Errorf("artifact %d: file is required", i)
		}
	}
	return &job, nil
}

// Dimensions returns the job's canvas size; zero fields mean the default.
func (j *Job) Dimensions() composition.Dimensions {
	return composition.Dimensions{Width: j.Canvas.Width, Height: j.Canvas.Height}
}

// Artifacts converts the specs to artifacts with positional ids.
func (j *Job) Artifacts() []composition.Artifact {
	out := make([]composition.Artifact, len(j.Specs))
	for i, s := range j.Specs {
		out[i] = composition.Artifact{
			ID:       composition.ArtifactID(i),
			Start:    int64(s.Start),
			Duration: int64(s.Duration),
			Screen:   s.Screen,
			Input:    s.File,
		}
	}
	return out
}
