package recorder

import "autodailies/internal/model"

// NoopRecorder discards all records. Used when no database is configured.
type NoopRecorder struct{}

// NewNoopRecorder returns a recorder that does nothing.
func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordRun(model.RunResult) error { return nil }
func (n *NoopRecorder) Close() error                    { return nil }
