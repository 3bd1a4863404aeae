package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Phase accumulates the time spent in one named phase across all files.
type Phase struct {
	Name  string
	Dur   time.Duration
	Count int
}

// Timer collects phase durations. Safe for concurrent use: files are
// formatted in parallel and report into the same timer.
type Timer struct {
	mu     sync.Mutex
	start  time.Time
	phases []Phase
	index  map[string]int
}

// NewTimer creates a new empty Timer; wall time is measured from here.
func NewTimer() *Timer {
	return &Timer{
		start:  time.Now(),
		phases: make([]Phase, 0, 4),
		index:  make(map[string]int),
	}
}

// Add records one run of a phase. Phases keep first-seen order.
func (t *Timer) Add(name string, d time.Duration) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	idx, ok := t.index[name]
	if !ok {
		idx = len(t.phases)
		t.index[name] = idx
		t.phases = append(t.phases, Phase{Name: name})
	}
	t.phases[idx].Dur += d
	t.phases[idx].Count++
}

// Track starts measuring a phase; call the returned func to stop.
func (t *Timer) Track(name string) func() {
	started := time.Now()
	return func() { t.Add(name, time.Since(started)) }
}

// PhaseReport представляет сжатую информацию о фазе таймера для сериализации.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Count      int     `json:"count"`
}

// Report описывает агрегированные данные таймера.
type Report struct {
	WallMS float64       `json:"wall_ms"`
	Phases []PhaseReport `json:"phases"`
}

// Report формирует срез фаз и общее время работы в миллисекундах.
func (t *Timer) Report() Report {
	if t == nil {
		return Report{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	report := Report{
		WallMS: durationToMillis(time.Since(t.start)),
		Phases: make([]PhaseReport, len(t.phases)),
	}
	for i, p := range t.phases {
		report.Phases[i] = PhaseReport{
			Name:       p.Name,
			DurationMS: durationToMillis(p.Dur),
			Count:      p.Count,
		}
	}
	return report
}

// Summary returns a human-readable table. Phase times are summed over
// files, so with several jobs they may exceed the wall time.
func (t *Timer) Summary() string {
	report := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range report.Phases {
		fmt.Fprintf(&sb, "  %-12s %9.2f ms  x%d\n", p.Name, p.DurationMS, p.Count)
	}
	fmt.Fprintf(&sb, "  %-12s %9.2f ms\n", "wall", report.WallMS)
	return sb.String()
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
