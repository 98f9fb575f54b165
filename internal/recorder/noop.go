package recorder

import "GoldSync/internal/model"

// NoopRecorder discards all cycles; used when history is disabled.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordCycle(_ *model.CycleResult) error { return nil }
func (n *NoopRecorder) Recent(_ int) []CycleSummary            { return nil }
func (n *NoopRecorder) Close() error                           { return nil }
