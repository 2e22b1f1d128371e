package ui

import (
	"errors"
	"strings"
	"testing"

	"arcucheck/internal/driver"
)

func newModel(files ...string) *progressModel {
	return NewProgressModel("checking", files, nil).(*progressModel)
}

func TestApplyEventTracksStages(t *testing.T) {
	m := newModel("a.puml", "b.puml")

	m.applyEvent(driver.Event{File: "a.puml", Stage: driver.StageGenerate, Status: driver.StatusWorking})
	if m.items[0].status != "generating" {
		t.Errorf("status = %q", m.items[0].status)
	}
	if got := m.percent(); got != 0.15 {
		t.Errorf("percent = %v", got)
	}

	m.applyEvent(driver.Event{File: "a.puml", Stage: driver.StageCompare, Status: driver.StatusDone})
	m.applyEvent(driver.Event{File: "b.puml", Status: driver.StatusError, Err: errors.New("no directive\ndetails")})
	if m.finished() != 2 || m.percent() != 1 {
		t.Errorf("finished = %d percent = %v", m.finished(), m.percent())
	}
	if m.items[1].note != "no directive" {
		t.Errorf("note = %q", m.items[1].note)
	}

	m.applyEvent(driver.Event{File: "unknown.puml", Status: driver.StatusDone})
	if m.finished() != 2 {
		t.Error("unknown file changed the model")
	}
}

func TestViewListsFiles(t *testing.T) {
	m := newModel("designs/shop.puml")
	view := m.View()
	if !strings.Contains(view, "designs/shop.puml") || !strings.Contains(view, "queued") {
		t.Errorf("view:\n%s", view)
	}
	if !strings.Contains(view, "(0/1)") {
		t.Errorf("header misses counter:\n%s", view)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("designs/very/long/path.puml", 10); got != "designs..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("abcdef", 3); got != "abc" {
		t.Errorf("truncate = %q", got)
	}
}
