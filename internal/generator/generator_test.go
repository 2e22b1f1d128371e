package generator

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const diagram = "@startuml\nclass com.shop.Order\n@enduml\n"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func needShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestIsDiagramPath(t *testing.T) {
	for path, want := range map[string]bool{
		"impl.puml":     true,
		"IMPL.PlantUML": true,
		"src/":          false,
		"main.go":       false,
	} {
		if got := IsDiagramPath(path); got != want {
			t.Errorf("IsDiagramPath(%q) = %v", path, got)
		}
	}
}

func TestPassthroughReadsDiagram(t *testing.T) {
	p := writeFile(t, t.TempDir(), "impl.puml", diagram)
	got, err := Passthrough{}.Generate(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if got != diagram {
		t.Errorf("got %q", got)
	}
}

func TestPassthroughWithoutGenerator(t *testing.T) {
	_, err := Passthrough{}.Generate(context.Background(), t.TempDir())
	if !errors.Is(err, ErrNoGenerator) {
		t.Fatalf("err = %v", err)
	}
}

func TestPassthroughDelegates(t *testing.T) {
	next := Func(func(_ context.Context, src string) (string, error) {
		return "from " + src, nil
	})
	got, err := Passthrough{Next: next}.Generate(context.Background(), "src")
	if err != nil || got != "from src" {
		t.Fatalf("got %q, %v", got, err)
	}
}

func TestCommandWritesOut(t *testing.T) {
	needShell(t)
	src := writeFile(t, t.TempDir(), "model.txt", diagram)
	cmd := Command{Argv: []string{"sh", "-c", `cat "$0" > "$1"`, "{src}", "{out}"}}
	got, err := cmd.Generate(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}
	if got != diagram {
		t.Errorf("got %q", got)
	}
}

func TestCommandStdout(t *testing.T) {
	needShell(t)
	cmd := Command{Argv: []string{"sh", "-c", `printf 'class %s\n' "$0"`, "{src}"}}
	got, err := cmd.Generate(context.Background(), "Order")
	if err != nil {
		t.Fatal(err)
	}
	if got != "class Order\n" {
		t.Errorf("got %q", got)
	}
}

func TestCommandFailureCarriesStderr(t *testing.T) {
	needShell(t)
	cmd := Command{Argv: []string{"sh", "-c", "echo broken >&2; exit 3"}}
	_, err := cmd.Generate(context.Background(), "x")
	var ce *CommandError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(ce.Stderr, "broken") {
		t.Errorf("stderr = %q", ce.Stderr)
	}
}

func TestCommandTimeout(t *testing.T) {
	needShell(t)
	cmd := Command{Argv: []string{"sh", "-c", "exec sleep 5"}, Timeout: 50 * time.Millisecond}
	_, err := cmd.Generate(context.Background(), "x")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v", err)
	}
}

func TestCommandEmpty(t *testing.T) {
	if _, err := (Command{}).Generate(context.Background(), "x"); !errors.Is(err, ErrNoGenerator) {
		t.Fatalf("err = %v", err)
	}
}

func TestFingerprint(t *testing.T) {
	a := Command{Argv: []string{"gen", "{src}"}}
	b := Command{Argv: []string{"gen", "-v", "{src}"}}
	if Fingerprint(a) == Fingerprint(b) {
		t.Error("different command lines share a fingerprint")
	}
	if !strings.HasPrefix(Fingerprint(Passthrough{Next: a}), "passthrough+command:") {
		t.Errorf("fingerprint = %q", Fingerprint(Passthrough{Next: a}))
	}
}
