package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"off", LevelOff, false},
		{"PHASE", LevelPhase, false},
		{"detail", LevelDetail, false},
		{" debug ", LevelDebug, false},
		{"loud", LevelOff, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseLevel(%q) err = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestShouldEmit(t *testing.T) {
	if LevelPhase.ShouldEmit(ScopeFile) {
		t.Error("phase level must drop file events")
	}
	if !LevelPhase.ShouldEmit(ScopePass) {
		t.Error("phase level must keep pass events")
	}
	if !LevelDetail.ShouldEmit(ScopeFile) || LevelDetail.ShouldEmit(ScopeDebug) {
		t.Error("detail level filters wrong scopes")
	}
	if LevelError.ShouldEmit(ScopeDriver) {
		t.Error("error level streams nothing")
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Enabled() {
		t.Fatal("expected disabled tracer")
	}
	s := Begin(tr, ScopeDriver, "check", 0)
	if s.End("") < 0 {
		t.Fatal("negative duration")
	}
}

func TestStreamTextSpan(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)

	root := Begin(tr, ScopePass, "compare", 0)
	child := Begin(tr, ScopeFile, "file:shop.puml", root.ID())
	child.WithExtra("deviations", "3").WithExtra("classes", "2").End("ok")
	Begin(tr, ScopeDebug, "hidden", root.ID()).End("")
	root.End("")

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "→ compare") {
		t.Errorf("begin line = %q", lines[0])
	}
	if !strings.Contains(lines[2], "← file:shop.puml (ok) {classes=2, deviations=3}") {
		t.Errorf("end line = %q", lines[2])
	}
	if strings.Contains(out, "hidden") {
		t.Error("debug scope leaked at detail level")
	}
}

func TestStreamNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)
	Begin(tr, ScopeDriver, "batch", 0).End("done")

	dec := json.NewDecoder(&buf)
	var kinds []string
	for dec.More() {
		var ev map[string]any
		if err := dec.Decode(&ev); err != nil {
			t.Fatal(err)
		}
		kinds = append(kinds, ev["kind"].(string))
		if ev["scope"] != "driver" {
			t.Errorf("scope = %v", ev["scope"])
		}
	}
	if strings.Join(kinds, ",") != "begin,end" {
		t.Errorf("kinds = %v", kinds)
	}
}

func TestRingWraps(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		r.Emit(&Event{Kind: KindPoint, Scope: ScopeFile, Name: name})
	}
	snap := r.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("len = %d", len(snap))
	}
	var names []string
	for _, ev := range snap {
		names = append(names, ev.Name)
	}
	if strings.Join(names, "") != "cde" {
		t.Errorf("names = %v", names)
	}
	for i := 1; i < len(snap); i++ {
		if snap[i].Seq <= snap[i-1].Seq {
			t.Error("sequence numbers not increasing")
		}
	}
}

func TestRingAtErrorLevelKeepsPhases(t *testing.T) {
	r := NewRingTracer(8, LevelError)
	r.Emit(&Event{Kind: KindPoint, Scope: ScopePass, Name: "generate"})
	r.Emit(&Event{Kind: KindPoint, Scope: ScopeFile, Name: "file"})
	snap := r.Snapshot()
	if len(snap) != 1 || snap[0].Name != "generate" {
		t.Fatalf("snapshot = %+v", snap)
	}

	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "generate") {
		t.Errorf("dump = %q", buf.String())
	}
}

func TestNewBothExposesRing(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf, RingSize: 4})
	if err != nil {
		t.Fatal(err)
	}
	Point(tr, ScopeDriver, "start", "", 0)
	ring := RingOf(tr)
	if ring == nil {
		t.Fatal("no ring behind ModeBoth tracer")
	}
	if len(ring.Snapshot()) != 1 || buf.Len() == 0 {
		t.Fatal("event did not reach both tracers")
	}
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestContextPropagation(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatal("empty context must yield Nop")
	}
	r := NewRingTracer(8, LevelDebug)
	ctx := WithTracer(context.Background(), r)
	ctx, parent := Start(ctx, ScopeDriver, "check")
	_, child := Start(ctx, ScopePass, "parse")
	child.End("")
	parent.End("")

	snap := r.Snapshot()
	if len(snap) != 4 {
		t.Fatalf("events = %d", len(snap))
	}
	if snap[1].ParentID != parent.ID() {
		t.Errorf("child parent = %d, want %d", snap[1].ParentID, parent.ID())
	}
}

func TestHeartbeat(t *testing.T) {
	if StartHeartbeat(Nop, time.Millisecond) != nil {
		t.Fatal("heartbeat on disabled tracer")
	}
	r := NewRingTracer(64, LevelPhase)
	h := StartHeartbeat(r, time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for len(r.Snapshot()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	h.Stop()
	h.Stop()
	if len(r.Snapshot()) == 0 {
		t.Fatal("no heartbeat recorded")
	}
	if r.Snapshot()[0].Kind != KindHeartbeat {
		t.Error("unexpected event kind")
	}
}
