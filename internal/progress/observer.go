package progress

import (
	"fmt"
	"io"
	"math"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

type Observer interface {
	Publish(Snapshot)
	Done(Snapshot)
}

type NoopObserver struct{}

func (NoopObserver) Publish(Snapshot) {}
func (NoopObserver) Done(Snapshot)    {}

type ObserverFunc func(Snapshot)

func (f ObserverFunc) Publish(s Snapshot) { f(s) }
func (ObserverFunc) Done(Snapshot)        {}

type MultiObserver struct {
	observers []Observer
}

func NewMultiObserver(obs ...Observer) Observer {
	filtered := make([]Observer, 0, len(obs))
	for _, ob := range obs {
		if ob == nil {
			continue
		}
		filtered = append(filtered, ob)
	}
	if len(filtered) == 0 {
		return NoopObserver{}
	}
	return &MultiObserver{observers: filtered}
}

func (m *MultiObserver) Publish(s Snapshot) {
	for _, ob := range m.observers {
		ob.Publish(s)
	}
}

func (m *MultiObserver) Done(s Snapshot) {
	for _, ob := range m.observers {
		ob.Done(s)
	}
}

// ShouldShowProgress は --progress / --no-progress と端末判定から表示可否を決めます。
func ShouldShowProgress(force, no bool) bool {
	if no {
		return false
	}
	if force {
		return true
	}
	return isTerminal(os.Stderr)
}

type ttyObserver struct {
	w  io.Writer
	mu sync.Mutex
}

// NewTTYObserver redraws a single status line on w.
func NewTTYObserver(w io.Writer) Observer {
	if w == nil {
		w = os.Stderr
	}
	return &ttyObserver{w: w}
}

func (o *ttyObserver) Publish(s Snapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, _ = fmt.Fprintf(o.w, "\r\033[K%s", renderTTY(s))
}

func (o *ttyObserver) Done(Snapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, _ = fmt.Fprint(o.w, "\r\033[K")
}

type logObserver struct {
	log logrus.FieldLogger
}

// NewLogObserver reports progress as debug log entries. Used when stderr is
// not a terminal.
func NewLogObserver(log logrus.FieldLogger) Observer {
	if log == nil {
		return NoopObserver{}
	}
	return &logObserver{log: log}
}

func (o *logObserver) Publish(s Snapshot) {
	o.log.WithFields(fields(s)).Debug("progress")
}

func (o *logObserver) Done(s Snapshot) {
	o.log.WithFields(fields(s)).Debug("progress done")
}

func fields(s Snapshot) logrus.Fields {
	return logrus.Fields{
		"stage":   string(s.Stage),
		"total":   s.Total,
		"done":    s.Done,
		"rate":    math.Round(s.Rate*10) / 10,
		"elapsed": s.Elapsed.Round(1e6).String(),
	}
}

// NewAutoObserver picks the TTY renderer for terminals and the log observer
// otherwise.
func NewAutoObserver(w io.Writer, log logrus.FieldLogger) Observer {
	if w == nil {
		w = os.Stderr
	}
	if f, ok := w.(*os.File); ok && isTerminal(f) {
		return NewTTYObserver(w)
	}
	return NewLogObserver(log)
}

func renderTTY(s Snapshot) string {
	pct := percent(s.Done, s.Total)
	rate := "--/s"
	if !s.Warmup && s.Rate > 0 {
		rate = fmt.Sprintf("%.1f/s", s.Rate)
	}
	eta := "--:--:--"
	if !s.Warmup && s.ETA > 0 {
		eta = formatETA(s.ETA.Seconds())
	}
	return fmt.Sprintf("[%s] %3d%% %d/%d %s ETA %s", s.Stage, pct, s.Done, s.Total, rate, eta)
}

func formatETA(secs float64) string {
	total := int(math.Round(secs))
	if total < 0 {
		total = 0
	}
	h, m, sec := total/3600, (total%3600)/60, total%60
	if h > 99 {
		h = 99
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, m, sec)
}

func percent(a, b int) int {
	if b <= 0 {
		if a <= 0 {
			return 0
		}
		return 100
	}
	if a <= 0 {
		return 0
	}
	p := a * 100 / b
	if p > 100 {
		return 100
	}
	return p
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
