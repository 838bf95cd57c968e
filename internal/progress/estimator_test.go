package progress

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestEstimatorAdvanceIsSequential(t *testing.T) {
	const workers = 128
	est := NewEstimator(Config{NotifyInterval: time.Nanosecond})
	est.Stage(StageCheck, workers)

	var wg sync.WaitGroup
	wg.Add(workers)

	start := make(chan struct{})
	results := make(chan int, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			snap, _ := est.Advance(1)
			results <- snap.Done
		}()
	}

	close(start)
	wg.Wait()
	close(results)

	seen := make([]bool, workers)
	for r := range results {
		if r <= 0 || r > workers {
			t.Fatalf("進捗値が範囲外です: got=%d", r)
		}
		if seen[r-1] {
			t.Fatalf("進捗値が重複しました: got=%d", r)
		}
		seen[r-1] = true
	}
	for i, ok := range seen {
		if !ok {
			t.Fatalf("進捗値が欠落しています: index=%d", i+1)
		}
	}
}

func TestEstimatorStageResetsCounts(t *testing.T) {
	est := NewEstimator(Config{})
	est.Stage(StageRead, 3)
	est.Advance(3)
	snap := est.Stage(StageCheck, 10)
	if snap.Stage != StageCheck || snap.Done != 0 || snap.Total != 10 || snap.Rate != 0 {
		t.Fatalf("段階切り替え後の状態が不正です: %+v", snap)
	}
	if got := est.Complete(); got.Done != 10 || got.Remaining != 0 {
		t.Fatalf("Complete 後は全件完了になるべきです: %+v", got)
	}
}

func TestEstimatorNotifiesOnLastUnit(t *testing.T) {
	est := NewEstimator(Config{NotifyInterval: time.Hour})
	est.Stage(StageCheck, 2)
	if _, notify := est.Advance(1); notify {
		t.Fatalf("間隔内の途中経過は通知しないはずです")
	}
	if _, notify := est.Advance(1); !notify {
		t.Fatalf("最後の 1 件では通知するはずです")
	}
}

func TestEstimatorETAAfterWarmup(t *testing.T) {
	now := time.Unix(0, 0)
	est := NewEstimator(Config{WarmupSamples: 2})
	est.now = func() time.Time { return now }
	est.Stage(StageCheck, 12)
	for i := 0; i < 2; i++ {
		now = now.Add(time.Second)
		est.Advance(1)
	}
	snap := est.Snapshot()
	if snap.Warmup {
		t.Fatalf("ウォームアップが終わっているはずです")
	}
	if snap.ETA != 10*time.Second {
		t.Fatalf("ETA が想定外です: got=%s", snap.ETA)
	}
}

func TestTrackerNilIsNoop(t *testing.T) {
	var tr *Tracker
	tr.Stage(StageRead, 1)
	tr.Advance(1)
	tr.Done()
	if NewTracker(nil, Config{}) != nil {
		t.Fatalf("observer が nil なら Tracker も nil になるべきです")
	}
}

func TestTrackerPublishesStagesAndDone(t *testing.T) {
	var got []Stage
	done := false
	obs := &recordObserver{publish: func(s Snapshot) { got = append(got, s.Stage) }, done: func(Snapshot) { done = true }}
	tr := NewTracker(obs, Config{NotifyInterval: time.Hour})
	tr.Stage(StageRead, 1)
	tr.Advance(1)
	tr.Stage(StageCheck, 1)
	tr.Advance(1)
	tr.Done()
	want := []Stage{StageRead, StageRead, StageCheck, StageCheck}
	if strings.Join(stageNames(got), ",") != strings.Join(stageNames(want), ",") {
		t.Fatalf("通知された段階が想定外です: got=%v want=%v", got, want)
	}
	if !done {
		t.Fatalf("Done が通知されていません")
	}
}

func TestTTYObserverRendersStatusLine(t *testing.T) {
	var buf bytes.Buffer
	obs := NewTTYObserver(&buf)
	obs.Publish(Snapshot{Stage: StageCheck, Total: 4, Done: 1, Warmup: true})
	if !strings.Contains(buf.String(), "[check]  25% 1/4 --/s ETA --:--:--") {
		t.Fatalf("unexpected line: %q", buf.String())
	}
}

func TestPercentClampsTo100(t *testing.T) {
	if got := percent(5, 4); got != 100 {
		t.Fatalf("5/4 は 100%% として扱うべきです: got=%d", got)
	}
}

type recordObserver struct {
	publish func(Snapshot)
	done    func(Snapshot)
}

func (r *recordObserver) Publish(s Snapshot) { r.publish(s) }
func (r *recordObserver) Done(s Snapshot)    { r.done(s) }

func stageNames(ss []Stage) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = string(s)
	}
	return out
}
