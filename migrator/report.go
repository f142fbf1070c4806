package migrator

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/viant/tssplit/inspector/graph"
	"github.com/viant/tssplit/inspector/repository"
	"github.com/viant/tssplit/notify"
)

// Status represents a per-file migration outcome
type Status string

const (
	StatusMigrated  Status = "migrated"
	StatusUnchanged Status = "unchanged" // every generated unit was already up to date
	StatusNothing   Status = "nothing"   // nothing to migrate
	StatusFailed    Status = "failed"
)

// FileReport represents the outcome of a single source file migration
type FileReport struct {
	Path      string             `yaml:"path"`
	OutputDir string             `yaml:"outputDir,omitempty"`
	Status    Status             `yaml:"status"`
	Counts    map[graph.Kind]int `yaml:"counts,omitempty"`
	Units     []*graph.Unit      `yaml:"units,omitempty"`
	Written   []string           `yaml:"written,omitempty"`
	Skipped   []string           `yaml:"skipped,omitempty"`
	Inlined   []string           `yaml:"inlined,omitempty"` // non-exported types included as dependencies
	Bytes     int                `yaml:"bytes,omitempty"`
	Events    []*notify.Event    `yaml:"events,omitempty"`
	Error     string             `yaml:"error,omitempty"`

	err error
}

// Err returns the error that ended the file migration
func (r *FileReport) Err() error {
	return r.err
}

func (r *FileReport) addEvent(level notify.Level, format string, args ...interface{}) {
	r.Events = append(r.Events, &notify.Event{Level: level, File: r.Path, Message: fmt.Sprintf(format, args...)})
}

func (r *FileReport) info(format string, args ...interface{}) {
	r.addEvent(notify.LevelInfo, format, args...)
}

func (r *FileReport) warning(format string, args ...interface{}) {
	r.addEvent(notify.LevelWarning, format, args...)
}

// fail records err as the file outcome, degraded failures are reported as warnings
func (r *FileReport) fail(err error, status Status, level notify.Level) {
	r.err = err
	r.Status = status
	r.Error = err.Error()
	if hints := errors.GetAllHints(err); len(hints) > 0 {
		r.Error += " (" + strings.Join(hints, "; ") + ")"
	}
	r.addEvent(level, "%s", r.Error)
}

// Report represents the outcome of a migration run
type Report struct {
	Location   string                 `yaml:"location"`
	Repository *repository.Repository `yaml:"repository,omitempty"`
	Project    *repository.Project    `yaml:"-"`
	Files      []*FileReport          `yaml:"files"`
	Events     []*notify.Event        `yaml:"events,omitempty"` // run level events
}

// AllEvents returns run level events followed by per-file events in processing order
func (r *Report) AllEvents() []*notify.Event {
	result := append([]*notify.Event{}, r.Events...)
	for _, fileReport := range r.Files {
		result = append(result, fileReport.Events...)
	}
	return result
}

// Count returns number of files with the supplied status
func (r *Report) Count(status Status) int {
	count := 0
	for _, fileReport := range r.Files {
		if fileReport.Status == status {
			count++
		}
	}
	return count
}

// HasFailures returns true if any file failed
func (r *Report) HasFailures() bool {
	return r.Count(StatusFailed) > 0
}

// Summary returns a one line run summary
func (r *Report) Summary() string {
	written, skipped, size := 0, 0, 0
	for _, fileReport := range r.Files {
		written += len(fileReport.Written)
		skipped += len(fileReport.Skipped)
		size += fileReport.Bytes
	}
	parts := []string{
		fmt.Sprintf("%d of %d file(s) migrated", r.Count(StatusMigrated)+r.Count(StatusUnchanged), len(r.Files)),
		fmt.Sprintf("%d unit(s) written (%s)", written, humanize.Bytes(uint64(size))),
	}
	if skipped > 0 {
		parts = append(parts, fmt.Sprintf("%d unchanged", skipped))
	}
	if failed := r.Count(StatusFailed); failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", failed))
	}
	return strings.Join(parts, ", ")
}
