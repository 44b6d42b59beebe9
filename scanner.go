package solv

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/semaphore"
)

// DefaultPattern matches the solution files a directory scan considers.
const DefaultPattern = "**/*.sln"

// Scanner discovers solution files beneath a root directory and runs the
// full parse-and-validate pipeline over each of them concurrently. The zero
// value scans for *.sln files with parallelism matching the available CPUs.
type Scanner struct {
	// MaxParallelism bounds how many files are processed at once. Zero or
	// negative means the available parallelism.
	MaxParallelism int
	// Pattern is the doublestar pattern, relative to the root, that
	// candidate files must match. Empty means DefaultPattern.
	Pattern string
}

// FileResult is the outcome of one file's pipeline: either a model with its
// findings, or the failure that stopped that file. One file's failure never
// affects its siblings.
type FileResult struct {
	Path     string
	Solution *Solution
	Findings []Finding
	Err      error
}

// BatchReport aggregates a directory scan. The counts are sums, so the
// completion order of the per-file pipelines never changes them.
type BatchReport struct {
	// Results holds one entry per dispatched file, in discovery order.
	Results []FileResult
	// Files is the number of dispatched files; Parsed and Failed split it
	// by outcome.
	Files  int
	Parsed int
	Failed int
	// Projects counts the declared projects across all parsed solutions.
	Projects int
	// ErrorFindings and InfoFindings count findings by severity.
	ErrorFindings int
	InfoFindings  int
}

// ScanDirectory discovers and validates all solution files under root using
// the given concurrency limit; zero means the available parallelism.
func ScanDirectory(ctx context.Context, root string, concurrency int) (*BatchReport, error) {
	s := &Scanner{MaxParallelism: concurrency}
	return s.Scan(ctx, root)
}

// Scan discovers candidate files under root and processes each one. Results
// land in per-file slots, so no coordination is needed beyond the worker
// bound. Cancelling ctx stops dispatching new files; in-flight files finish
// (a single file's pipeline is short-lived and not interruptible), and the
// partial report is returned along with the context's error.
func (s *Scanner) Scan(ctx context.Context, root string) (*BatchReport, error) {
	pattern := s.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid file pattern %q", pattern)
	}
	files, err := discover(root, pattern)
	if err != nil {
		return nil, err
	}

	par := s.MaxParallelism
	if par <= 0 {
		par = min(runtime.NumCPU(), runtime.GOMAXPROCS(-1))
	}
	sem := semaphore.NewWeighted(int64(par))
	results := make([]FileResult, len(files))
	var wg sync.WaitGroup
	dispatched := 0
	for i, path := range files {
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		dispatched++
		wg.Add(1)
		go func(slot *FileResult, path string) {
			defer wg.Done()
			defer sem.Release(1)
			*slot = processFile(path)
		}(&results[i], path)
	}
	wg.Wait()

	report := &BatchReport{Results: results[:dispatched]}
	for i := range report.Results {
		r := &report.Results[i]
		report.Files++
		if r.Err != nil {
			report.Failed++
			continue
		}
		report.Parsed++
		report.Projects += len(r.Solution.Projects)
		for _, f := range r.Findings {
			switch f.Severity {
			case SeverityError:
				report.ErrorFindings++
			default:
				report.InfoFindings++
			}
		}
	}
	return report, ctx.Err()
}

// processFile runs one file through the whole pipeline. Parse failures are
// the file's result, not an abort.
func processFile(path string) FileResult {
	res := FileResult{Path: path}
	sol, err := ParseFile(path)
	if err != nil {
		res.Err = err
		return res
	}
	res.Solution = sol
	res.Findings = Validate(sol)
	return res
}

// discover walks root and collects the files matching pattern, in walk
// order. Unreadable entries are skipped rather than failing the scan.
func discover(root, pattern string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		ok, err := doublestar.Match(pattern, filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		if ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
