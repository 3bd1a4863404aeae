package observ

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestTimerAccumulates(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for range 8 {
		wg.Go(func() {
			tm.Add("format", time.Millisecond)
		})
	}
	wg.Wait()
	tm.Add("parse", 2*time.Millisecond)

	rep := tm.Report()
	if len(rep.Phases) != 2 || rep.Phases[0].Name != "format" || rep.Phases[0].Count != 8 {
		t.Fatalf("report = %+v", rep)
	}
	if rep.Phases[0].DurationMS != 8 {
		t.Fatalf("format duration = %v", rep.Phases[0].DurationMS)
	}
	if !strings.Contains(tm.Summary(), "parse") {
		t.Fatalf("summary:\n%s", tm.Summary())
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.Add("x", time.Second)
	if len(tm.Report().Phases) != 0 {
		t.Fatal("nil timer must report nothing")
	}
}
