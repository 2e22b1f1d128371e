package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"

	"golang.org/x/sync/errgroup"

	"arcucheck/internal/trace"
)

// BatchOptions configures CheckDir.
type BatchOptions struct {
	Options
	Jobs    int    // 0 = GOMAXPROCS
	Pattern string // glob over file names, default "*.puml"
}

// BatchResult holds one Result per design file, in path order.
type BatchResult struct {
	Dir     string
	Results []*Result
}

// Failures counts files whose check could not be completed.
func (b *BatchResult) Failures() int {
	n := 0
	for _, r := range b.Results {
		if r.Failed() {
			n++
		}
	}
	return n
}

// Deviations counts deviations over all files.
func (b *BatchResult) Deviations() int {
	n := 0
	for _, r := range b.Results {
		n += len(r.Deviations)
	}
	return n
}

// ListDesigns returns the sorted design files under dir whose base name
// matches pattern. Hidden directories are skipped.
func ListDesigns(dir, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "*.puml"
	}
	if _, err := filepath.Match(pattern, "x"); err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && len(d.Name()) > 1 && d.Name()[0] == '.' {
				return filepath.SkipDir
			}
			return nil
		}
		if ok, _ := filepath.Match(pattern, d.Name()); ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// CheckDir checks every design file under dir in parallel. Each file must
// carry the implementation-path directive. A failing file is recorded in its
// Result and never stops the others; the returned error is reserved for
// listing failures and cancellation.
func CheckDir(ctx context.Context, dir string, opts BatchOptions) (*BatchResult, error) {
	files, err := ListDesigns(dir, opts.Pattern)
	if err != nil {
		return nil, err
	}
	batch := &BatchResult{Dir: dir, Results: make([]*Result, len(files))}
	if len(files) == 0 {
		return batch, nil
	}

	ctx, span := trace.Start(ctx, trace.ScopeDriver, "batch:"+dir)
	defer func() {
		span.WithExtra("files", strconv.Itoa(len(files))).
			WithExtra("failures", strconv.Itoa(batch.Failures())).
			End("")
	}()

	sink := opts.sink()
	for _, f := range files {
		sink.OnEvent(Event{File: f, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				batch.Results[i] = &Result{DesignPath: path, Err: err}
				return err
			}
			// ошибка файла остаётся в Result
			batch.Results[i], _ = CheckPair(gctx, path, "", opts.Options)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return batch, err
	}
	return batch, ctx.Err()
}
