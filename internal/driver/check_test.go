package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"arcucheck/internal/deviation"
	"arcucheck/internal/generator"
	"arcucheck/internal/observ"
	"arcucheck/internal/parser"
)

const designText = `@startuml Shop
'implementation_path=[impl.puml]
class shop.Order {
  - String id
  + double total()
}
class shop.Cart
shop.Order o-- shop.Cart
@enduml
`

const implMatching = `@startuml
class shop.Order {
  - String id
  + double total()
}
class shop.Cart
shop.Order o-- shop.Cart
@enduml
`

const implDiverging = `@startuml
class shop.Order {
  - String id
  + int total()
}
class shop.Cart
@enduml
`

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestCheckPairFromDirective(t *testing.T) {
	dir := t.TempDir()
	design := write(t, dir, "design.puml", designText)
	write(t, dir, "impl.puml", implMatching)

	timer := observ.NewTimer()
	res, err := CheckPair(context.Background(), design, "", Options{Timer: timer})
	if err != nil {
		t.Fatal(err)
	}
	if res.HasDeviations() {
		t.Fatalf("unexpected deviations: %+v", res.Deviations)
	}
	if res.ImplementationPath != filepath.Join(dir, "impl.puml") {
		t.Errorf("ImplementationPath = %q", res.ImplementationPath)
	}
	if res.Design.Name != "Shop" {
		t.Errorf("design name = %q", res.Design.Name)
	}
	if len(timer.Report().Stages) != 4 {
		t.Errorf("stages = %+v", timer.Report().Stages)
	}
}

func TestCheckPairReportsDeviations(t *testing.T) {
	dir := t.TempDir()
	design := write(t, dir, "design.puml", designText)
	impl := write(t, dir, "other.puml", implDiverging)

	res, err := CheckPair(context.Background(), design, impl, Options{})
	if err != nil {
		t.Fatal(err)
	}
	var relation, method bool
	for _, d := range res.Deviations {
		switch {
		case d.Subject == deviation.SubjectRelation && d.Type == deviation.Absent:
			relation = true
		case d.Subject == deviation.SubjectMethod && d.Type == deviation.Misimplemented:
			method = true
		}
	}
	if !relation || !method {
		t.Fatalf("deviations = %+v", res.Deviations)
	}
}

func TestCheckPairMissingDirective(t *testing.T) {
	dir := t.TempDir()
	design := write(t, dir, "design.puml", implMatching)

	res, err := CheckPair(context.Background(), design, "", Options{})
	if !IsMissingDirective(err) {
		t.Fatalf("err = %v", err)
	}
	if !res.Failed() || res.Err != err {
		t.Error("result must carry the error")
	}
}

func TestCheckPairParseError(t *testing.T) {
	dir := t.TempDir()
	design := write(t, dir, "design.puml", "@startuml\nnote: nothing here\n@enduml\n")

	_, err := CheckPair(context.Background(), design, filepath.Join(dir, "x.puml"), Options{})
	var pe *parser.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v", err)
	}
}

func TestCheckPairEmitsEvents(t *testing.T) {
	dir := t.TempDir()
	design := write(t, dir, "design.puml", designText)
	write(t, dir, "impl.puml", implMatching)

	var (
		mu     sync.Mutex
		stages []string
	)
	sink := SinkFunc(func(ev Event) {
		mu.Lock()
		defer mu.Unlock()
		stages = append(stages, string(ev.Stage)+"/"+string(ev.Status))
	})
	if _, err := CheckPair(context.Background(), design, "", Options{Sink: sink}); err != nil {
		t.Fatal(err)
	}
	want := "parse/working generate/working compare/working compare/done"
	if got := strings.Join(stages, " "); got != want {
		t.Errorf("events = %q, want %q", got, want)
	}
}

func TestCheckPairUsesCache(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	write(t, src, "Order.java", "class Order {}")
	design := write(t, dir, "design.puml", strings.Replace(designText, "impl.puml", "src", 1))

	cache, err := OpenDiskCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	var calls atomic.Int32
	gen := generator.Func(func(context.Context, string) (string, error) {
		calls.Add(1)
		return implMatching, nil
	})
	opts := Options{Generator: gen, Cache: cache}

	first, err := CheckPair(context.Background(), design, "", opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := CheckPair(context.Background(), design, "", opts)
	if err != nil {
		t.Fatal(err)
	}
	if calls.Load() != 1 {
		t.Errorf("generator ran %d times", calls.Load())
	}
	if first.CacheHit || !second.CacheHit {
		t.Errorf("cache hits = %v, %v", first.CacheHit, second.CacheHit)
	}

	write(t, src, "Order.java", "class Order { int x; }")
	if _, err := CheckPair(context.Background(), design, "", opts); err != nil {
		t.Fatal(err)
	}
	if calls.Load() != 2 {
		t.Error("changed sources must invalidate the cache")
	}
}

func TestCheckPairGeneratorFailure(t *testing.T) {
	dir := t.TempDir()
	design := write(t, dir, "design.puml", strings.Replace(designText, "impl.puml", "src", 1))
	if err := os.Mkdir(filepath.Join(dir, "src"), 0o755); err != nil {
		t.Fatal(err)
	}

	_, err := CheckPair(context.Background(), design, "", Options{})
	if !errors.Is(err, generator.ErrNoGenerator) {
		t.Fatalf("err = %v", err)
	}
}

func TestResolveImplementationPath(t *testing.T) {
	got := ResolveImplementationPath(filepath.Join("designs", "shop.puml"), "../src/main")
	if want := filepath.Join("src", "main"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	abs := filepath.Join(string(filepath.Separator), "opt", "src")
	if got := ResolveImplementationPath("designs/shop.puml", abs); got != abs {
		t.Errorf("absolute path changed to %q", got)
	}
}
