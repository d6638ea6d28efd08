package engine

// ProgressSink receives human-readable progress from the training and
// rollout loops. Report may block (a paused display) or sleep to pace the
// run for human viewing; returning false asks the caller to stop cleanly
// and hand back its best-effort result. The loops work identically with
// no sink attached.
type ProgressSink interface {
	Report(title, subtitle string, details ...string) bool
	Close()
}

// NopSink discards all reports and never requests a stop.
type NopSink struct{}

func (NopSink) Report(string, string, ...string) bool { return true }
func (NopSink) Close()                                {}
