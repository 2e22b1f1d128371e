package driver

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"arcucheck/internal/compare"
	"arcucheck/internal/deviation"
	"arcucheck/internal/diag"
	"arcucheck/internal/generator"
	"arcucheck/internal/observ"
	"arcucheck/internal/parser"
	"arcucheck/internal/puml"
	"arcucheck/internal/source"
	"arcucheck/internal/trace"
)

// Options configures a check.
type Options struct {
	// Generator produces the implementation diagram. Nil reads
	// .puml/.plantuml implementation paths and fails on anything else.
	Generator generator.Generator
	// Cache stores generator output; nil disables caching.
	Cache *DiskCache
	// MaxDiagnostics caps parse warnings per file (0 = unlimited).
	MaxDiagnostics int
	Timer          *observ.Timer
	Sink           ProgressSink
}

func (o *Options) generator() generator.Generator {
	if o.Generator == nil {
		return generator.Passthrough{}
	}
	return o.Generator
}

func (o *Options) sink() ProgressSink {
	if o.Sink == nil {
		return nopSink{}
	}
	return o.Sink
}

// Result is the outcome of checking one design file.
type Result struct {
	DesignPath         string
	ImplementationPath string
	Design             *puml.Diagram
	Implementation     *puml.Diagram
	Deviations         []deviation.Deviation
	Diagnostics        *diag.Bag
	CacheHit           bool
	Elapsed            time.Duration
	Err                error
}

// Failed reports whether the check could not be completed.
func (r *Result) Failed() bool { return r != nil && r.Err != nil }

// HasDeviations reports whether the check found any deviation.
func (r *Result) HasDeviations() bool { return r != nil && len(r.Deviations) > 0 }

// ResolveImplementationPath resolves a directive path against the directory
// of the design file.
func ResolveImplementationPath(designPath, implPath string) string {
	if filepath.IsAbs(implPath) {
		return filepath.Clean(implPath)
	}
	return filepath.Join(filepath.Dir(designPath), filepath.FromSlash(implPath))
}

// CheckPair checks one design file. An empty implPath is taken from the
// design file's 'implementation_path directive. The returned Result is never
// nil; on failure its Err equals the returned error.
func CheckPair(ctx context.Context, designPath, implPath string, opts Options) (*Result, error) {
	started := time.Now()
	res := &Result{
		DesignPath:  designPath,
		Diagnostics: diag.NewBag(opts.MaxDiagnostics),
	}
	ctx, span := trace.Start(ctx, trace.ScopeFile, "check:"+designPath)
	sink := opts.sink()

	err := checkPair(ctx, res, implPath, &opts)
	res.Elapsed = time.Since(started)
	if err != nil {
		res.Err = err
		sink.OnEvent(Event{File: designPath, Status: StatusError, Err: err, Elapsed: res.Elapsed})
		span.WithExtra("error", err.Error()).End("failed")
		return res, err
	}
	sink.OnEvent(Event{File: designPath, Stage: StageCompare, Status: StatusDone, Elapsed: res.Elapsed})
	span.WithExtra("deviations", strconv.Itoa(len(res.Deviations))).
		WithExtra("cache", strconv.FormatBool(res.CacheHit)).
		End("")
	return res, nil
}

func checkPair(ctx context.Context, res *Result, implPath string, opts *Options) error {
	sink := opts.sink()
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: res.Diagnostics})

	// design
	sink.OnEvent(Event{File: res.DesignPath, Stage: StageParse, Status: StatusWorking})
	idx := opts.Timer.Begin("parse design")
	_, span := trace.Start(ctx, trace.ScopePass, "parse design")
	file, err := source.Load(res.DesignPath)
	if err != nil {
		opts.Timer.End(idx, "error")
		span.End("load failed")
		return fmt.Errorf("read design: %w", err)
	}
	res.Design, err = parser.ParseFile(file, parser.Options{Reporter: reporter})
	opts.Timer.End(idx, "")
	span.End("")
	if err != nil {
		return fmt.Errorf("design diagram: %w", err)
	}

	if implPath == "" {
		p, err := parser.ImplementationPath(res.DesignPath, file.Text())
		if err != nil {
			return err
		}
		implPath = ResolveImplementationPath(res.DesignPath, p)
	}
	res.ImplementationPath = implPath

	// implementation
	if err := ctx.Err(); err != nil {
		return err
	}
	sink.OnEvent(Event{File: res.DesignPath, Stage: StageGenerate, Status: StatusWorking})
	idx = opts.Timer.Begin("generate")
	text, hit, err := opts.generate(ctx, implPath)
	note := ""
	if hit {
		note = "cached"
	}
	opts.Timer.End(idx, note)
	res.CacheHit = hit
	if err != nil {
		return fmt.Errorf("generate implementation diagram: %w", err)
	}

	idx = opts.Timer.Begin("parse implementation")
	implFile := source.New(implPath, []byte(text), source.FileVirtual)
	res.Implementation, err = parser.ParseFile(implFile, parser.Options{Reporter: reporter})
	opts.Timer.End(idx, "")
	if err != nil {
		return fmt.Errorf("implementation diagram: %w", err)
	}

	// compare
	sink.OnEvent(Event{File: res.DesignPath, Stage: StageCompare, Status: StatusWorking})
	idx = opts.Timer.Begin("compare")
	_, span = trace.Start(ctx, trace.ScopePass, "compare")
	res.Deviations = compare.CompareDiagrams(res.Implementation, res.Design)
	span.WithExtra("deviations", strconv.Itoa(len(res.Deviations))).End("")
	opts.Timer.End(idx, "")
	return nil
}

// generate runs the generator, going through the cache for non-diagram
// paths. Cache failures never fail the check.
func (o *Options) generate(ctx context.Context, implPath string) (string, bool, error) {
	gen := o.generator()
	tr := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx)

	_, span := trace.Start(ctx, trace.ScopePass, "generate")
	defer span.End("")

	if o.Cache == nil || generator.IsDiagramPath(implPath) {
		text, err := gen.Generate(ctx, implPath)
		return text, false, err
	}

	fp := generator.Fingerprint(gen)
	key, err := TreeDigest(implPath, fp)
	if err != nil {
		return "", false, fmt.Errorf("hash implementation: %w", err)
	}
	if p, ok, err := o.Cache.Get(key); err != nil {
		trace.Point(tr, trace.ScopeFile, "cache", "read failed: "+err.Error(), parent)
	} else if ok {
		trace.Point(tr, trace.ScopeFile, "cache", "hit "+key.String()[:12], parent)
		return p.Text, true, nil
	}

	text, err := gen.Generate(ctx, implPath)
	if err != nil {
		return "", false, err
	}
	if err := o.Cache.Put(key, &DiskPayload{ImplementationPath: implPath, Generator: fp, Text: text}); err != nil {
		trace.Point(tr, trace.ScopeFile, "cache", "write failed: "+err.Error(), parent)
	}
	return text, false, nil
}

// IsMissingDirective reports whether err comes from a design file that lacks
// the implementation-path directive.
func IsMissingDirective(err error) bool {
	var target *parser.MissingImplementationPathError
	return errors.As(err, &target)
}
