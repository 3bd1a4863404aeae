package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "DEBUG"} {
		lvl, err := ParseLevel(s)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", s, err)
		}
		if lvl.String() != strings.ToLower(s) {
			t.Fatalf("round trip %q -> %s", s, lvl)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestShouldEmit(t *testing.T) {
	if LevelPhase.ShouldEmit(ScopeFile, KindPoint) {
		t.Error("phase level must drop file events")
	}
	if !LevelPhase.ShouldEmit(ScopePass, KindSpanBegin) {
		t.Error("phase level must keep pass spans")
	}
	if !LevelError.ShouldEmit(ScopeFile, KindError) {
		t.Error("error level must keep failures")
	}
	if LevelOff.ShouldEmit(ScopeDriver, KindError) {
		t.Error("off must drop everything")
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)
	root := Begin(tr, ScopeDriver, "driver", 0)
	child := Begin(tr, ScopePass, "format", root.ID())
	child.WithExtra("bytes", "42").End("ok")
	Point(tr, ScopeFile, "cache-hit", root.ID(), "top.sv")
	root.End("")

	out := buf.String()
	for _, want := range []string{"→ driver", "→ format", "← format (ok) {bytes=42}", "• cache-hit (top.sv)", "← driver"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)
	Error(tr, ScopeFile, "file:a.sv", 0, errors.New("parse failed"))
	Point(tr, ScopeFile, "dropped", 0, "")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("want 1 event, got %d:\n%s", len(lines), buf.String())
	}
	var ev map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &ev); err != nil {
		t.Fatal(err)
	}
	if ev["kind"] != "error" || ev["detail"] != "parse failed" {
		t.Fatalf("event = %v", ev)
	}
}

func TestContextPropagation(t *testing.T) {
	ctx := context.Background()
	if FromContext(ctx) != Nop {
		t.Fatal("empty context must yield Nop")
	}
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatText)
	ctx = WithTracer(ctx, tr)
	span := Begin(FromContext(ctx), ScopeDriver, "driver", 0)
	ctx = WithSpan(ctx, span)
	if CurrentSpan(ctx) != span.ID() || span.ID() == 0 {
		t.Fatalf("span id not propagated: %d vs %d", CurrentSpan(ctx), span.ID())
	}
}

func TestDisabledSpanIsSafe(t *testing.T) {
	s := Begin(Nop, ScopeDriver, "x", 0)
	if s.ID() != 0 {
		t.Fatal("nop span must have id 0")
	}
	s.WithExtra("k", "v").End("")
	var nilSpan *Span
	if nilSpan.End("") != 0 {
		t.Fatal("nil span must report zero duration")
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("New(off) = %v, %v", tr, err)
	}
}
