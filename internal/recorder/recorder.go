// Package recorder persists per-account run history for later analysis.
package recorder

import "autodailies/internal/model"

// Recorder stores one row per account run.
type Recorder interface {
	RecordRun(res model.RunResult) error
	Close() error
}
