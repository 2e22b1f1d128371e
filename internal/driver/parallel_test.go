package driver

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func TestListDesigns(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "b.puml", designText)
	write(t, dir, "a.puml", designText)
	write(t, dir, "nested/c.puml", designText)
	write(t, dir, ".hidden/d.puml", designText)
	write(t, dir, "notes.txt", "")

	files, err := ListDesigns(dir, "")
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, f := range files {
		rel, _ := filepath.Rel(dir, f)
		names = append(names, filepath.ToSlash(rel))
	}
	if got := strings.Join(names, ","); got != "a.puml,b.puml,nested/c.puml" {
		t.Errorf("files = %s", got)
	}

	if _, err := ListDesigns(dir, "["); err == nil {
		t.Error("bad pattern accepted")
	}
}

func TestCheckDirIsolatesFailures(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "designs/ok.puml", strings.Replace(designText, "impl.puml", "../impl/ok.puml", 1))
	write(t, dir, "designs/drift.puml", strings.Replace(designText, "impl.puml", "../impl/drift.puml", 1))
	write(t, dir, "designs/broken.puml", implMatching)
	write(t, dir, "impl/ok.puml", implMatching)
	write(t, dir, "impl/drift.puml", implDiverging)

	var queued int
	events := make(chan Event, 64)
	batch, err := CheckDir(context.Background(), filepath.Join(dir, "designs"), BatchOptions{
		Options: Options{Sink: ChannelSink{Ch: events}},
		Jobs:    2,
	})
	close(events)
	if err != nil {
		t.Fatal(err)
	}
	for ev := range events {
		if ev.Status == StatusQueued {
			queued++
		}
	}
	if queued != 3 {
		t.Errorf("queued events = %d", queued)
	}

	if len(batch.Results) != 3 {
		t.Fatalf("results = %d", len(batch.Results))
	}
	byName := map[string]*Result{}
	for _, r := range batch.Results {
		byName[filepath.Base(r.DesignPath)] = r
	}
	if !IsMissingDirective(byName["broken.puml"].Err) {
		t.Errorf("broken: %v", byName["broken.puml"].Err)
	}
	if byName["ok.puml"].Failed() || byName["ok.puml"].HasDeviations() {
		t.Errorf("ok: %+v", byName["ok.puml"])
	}
	if !byName["drift.puml"].HasDeviations() {
		t.Error("drift: expected deviations")
	}
	if batch.Failures() != 1 || batch.Deviations() != len(byName["drift.puml"].Deviations) {
		t.Errorf("failures = %d deviations = %d", batch.Failures(), batch.Deviations())
	}
}

func TestCheckDirCancelled(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "a.puml", designText)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := CheckDir(ctx, dir, BatchOptions{}); err == nil {
		t.Fatal("expected cancellation error")
	}
}

func TestCheckDirEmpty(t *testing.T) {
	batch, err := CheckDir(context.Background(), t.TempDir(), BatchOptions{})
	if err != nil || len(batch.Results) != 0 {
		t.Fatalf("batch = %+v, err = %v", batch, err)
	}
}
