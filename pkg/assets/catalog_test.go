package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-drift/rive/pkg/rive"
)

const sampleCatalog = `
animations:
  hero:
    resource: anims/hero.riv
    artboard: Main
    stateMachine: Motion
    fit: cover
    alignment: topCenter
    loop: pingPong
  spinner:
    resource: anims/spinner.riv
    autoplay: false
`

func TestParseCatalog(t *testing.T) {
	c, err := Parse([]byte(sampleCatalog))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	if names := c.Names(); names[0] != "hero" || names[1] != "spinner" {
		t.Fatalf("Names() = %v", names)
	}

	hero, ok := c.Spec("hero")
	if !ok {
		t.Fatal("hero entry missing")
	}
	want := rive.NewAnimationSpec("anims/hero.riv")
	want.Artboard = "Main"
	want.StateMachine = "Motion"
	want.Fit = rive.FitCover
	want.Alignment = rive.AlignmentTopCenter
	want.Loop = rive.LoopPingPong
	if hero != want {
		t.Fatalf("hero = %+v, want %+v", hero, want)
	}

	spinner, _ := c.Spec("spinner")
	if spinner.Autoplay {
		t.Fatal("explicit autoplay: false not honored")
	}
	hero2, _ := c.Spec("hero")
	if !hero2.Autoplay {
		t.Fatal("omitted autoplay must default to on")
	}

	if _, ok := c.Spec("missing"); ok {
		t.Fatal("lookup succeeded for a missing entry")
	}
}

func TestParseCatalogRejectsBadEntries(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing resource", "animations:\n  broken:\n    fit: cover\n"},
		{"unknown fit", "animations:\n  broken:\n    resource: a.riv\n    fit: stretch\n"},
		{"unknown alignment", "animations:\n  broken:\n    resource: a.riv\n    alignment: middle\n"},
		{"unknown loop", "animations:\n  broken:\n    resource: a.riv\n    loop: bounce\n"},
		{"malformed yaml", "animations: ["},
	}
	for _, tt := range tests {
		if _, err := Parse([]byte(tt.yaml)); err == nil {
			t.Errorf("%s: Parse succeeded", tt.name)
		}
	}
}

func TestLoadCatalogFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "animations.yaml")
	if err := os.WriteFile(path, []byte(sampleCatalog), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatal("Load succeeded for a missing file")
	}
}

func TestWatcherReportsCatalogChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	path := filepath.Join(dir, "animations.yaml")
	if err := os.WriteFile(path, []byte(sampleCatalog), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Events:
		if got != path {
			t.Fatalf("event path = %q, want %q", got, path)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event for a catalog write")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Events:
		t.Fatalf("unexpected event for %q", got)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherCloseWithUndrainedBacklog(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}

	// Produce more notifications than the Events buffer holds, with nobody
	// draining, so the forwarding goroutine ends up blocked on a send.
	for i := 0; i < 2*cap(w.Events); i++ {
		name := fmt.Sprintf("catalog-%02d.yaml", i)
		if err := os.WriteFile(filepath.Join(dir, name), []byte("animations: {}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	time.Sleep(300 * time.Millisecond)

	// Close must neither panic nor race the pending send.
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// The goroutine, not Close, closes Events: the buffered backlog stays
	// readable and the channel terminates.
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-w.Events:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("Events never closed after Close")
		}
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if _, ok := <-w.Events; ok {
		t.Fatal("Events channel still open after Close")
	}
}

func TestWatcherRejectsMissingDir(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("NewWatcher succeeded for a missing directory")
	}
}
