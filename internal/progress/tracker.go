package progress

// Tracker ties an Estimator to an Observer. A nil *Tracker is a valid no-op,
// so callers never need to check whether progress is enabled.
type Tracker struct {
	est *Estimator
	obs Observer
}

func NewTracker(obs Observer, cfg Config) *Tracker {
	if obs == nil {
		return nil
	}
	return &Tracker{est: NewEstimator(cfg), obs: obs}
}

func (t *Tracker) Stage(stage Stage, total int) {
	if t == nil {
		return
	}
	t.obs.Publish(t.est.Stage(stage, total))
}

func (t *Tracker) Advance(delta int) {
	if t == nil {
		return
	}
	if snap, ok := t.est.Advance(delta); ok {
		t.obs.Publish(snap)
	}
}

// Done completes the current stage and tells the observer the run is over.
func (t *Tracker) Done() {
	if t == nil {
		return
	}
	t.obs.Done(t.est.Complete())
}
