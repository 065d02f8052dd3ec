package pipeline

import (
	"fmt"
	"time"
)

// StageName identifies a pipeline stage.
type StageName string

const (
	StageLoad   StageName = "load"
	StageRender StageName = "render"
	StageWrite  StageName = "write"
)

// BuildReport describes one pipeline run. It is never persisted.
type BuildReport struct {
	ID             string
	Start          time.Time
	End            time.Time
	OutputPath     string
	Fingerprint    string
	Bytes          int
	StageDurations map[StageName]time.Duration
	Err            error
}

// Duration is the wall time of the run.
func (r *BuildReport) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Outcome is "success" or "failed".
func (r *BuildReport) Outcome() string {
	if r.Err != nil {
		return "failed"
	}
	return "success"
}

// Summary returns a human-readable single-line summary.
func (r *BuildReport) Summary() string {
	return fmt.Sprintf("id=%s output=%s bytes=%d duration=%s stages=%d outcome=%s",
		r.ID, r.OutputPath, r.Bytes, r.Duration().Truncate(time.Millisecond), len(r.StageDurations), r.Outcome())
}
