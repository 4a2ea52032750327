// quizc - Quiz DSL compiler
// Package: health
// Description: Environment checks run by the doctor command
// Author: quizc contributors
// Created: 2026-10-18
// License: MIT

package health

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// Status represents the outcome of a check
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusDegraded  Status = "degraded"
	StatusUnknown   Status = "unknown"
)

// CheckResult represents the result of a single check
type CheckResult struct {
	Name      string                 `json:"name" yaml:"name"`
	Status    Status                 `json:"status" yaml:"status"`
	Message   string                 `json:"message,omitempty" yaml:"message,omitempty"`
	Duration  time.Duration          `json:"duration" yaml:"duration"`
	Timestamp time.Time              `json:"timestamp" yaml:"timestamp"`
	Details   map[string]interface{} `json:"details,omitempty" yaml:"details,omitempty"`
}

// Checker is an interface for checks
type Checker interface {
	Name() string
	Check(ctx context.Context) CheckResult
}

type namedCheck struct {
	name string
	fn   func(ctx context.Context) CheckResult
}

// NewChecker creates a named checker from a function
func NewChecker(name string, fn func(ctx context.Context) CheckResult) Checker {
	return &namedCheck{name: name, fn: fn}
}

func (c *namedCheck) Name() string { return c.name }

func (c *namedCheck) Check(ctx context.Context) CheckResult { return c.fn(ctx) }

// Registry runs a set of named checks
type Registry struct {
	mu       sync.RWMutex
	checkers map[string]Checker
	tool     string
	version  string
}

// NewRegistry creates an empty registry
func NewRegistry(tool, version string) *Registry {
	return &Registry{
		checkers: make(map[string]Checker),
		tool:     tool,
		version:  version,
	}
}

// Register adds a checker, replacing any with the same name
func (r *Registry) Register(checker Checker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkers[checker.Name()] = checker
}

// RegisterFunc adds a check function to the registry
func (r *Registry) RegisterFunc(name string, fn func(ctx context.Context) CheckResult) {
	r.Register(NewChecker(name, fn))
}

// Unregister removes a checker from the registry
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.checkers, name)
}

// Check runs all checks concurrently. Results are sorted by name.
func (r *Registry) Check(ctx context.Context) *Report {
	r.mu.RLock()
	checkers := make([]Checker, 0, len(r.checkers))
	for _, c := range r.checkers {
		checkers = append(checkers, c)
	}
	r.mu.RUnlock()

	report := &Report{
		Tool:      r.tool,
		Version:   r.version,
		Timestamp: time.Now(),
		Checks:    make([]CheckResult, 0, len(checkers)),
	}

	var wg sync.WaitGroup
	results := make(chan CheckResult, len(checkers))
	for _, checker := range checkers {
		wg.Add(1)
		go func(c Checker) {
			defer wg.Done()
			start := time.Now()
			result := c.Check(ctx)
			result.Duration = time.Since(start)
			result.Timestamp = time.Now()
			if result.Name == "" {
				result.Name = c.Name()
			}
			if result.Status == "" {
				result.Status = StatusUnknown
			}
			results <- result
		}(checker)
	}
	wg.Wait()
	close(results)

	overall := StatusHealthy
	for result := range results {
		report.Checks = append(report.Checks, result)
		switch result.Status {
		case StatusUnhealthy:
			overall = StatusUnhealthy
		case StatusDegraded, StatusUnknown:
			if overall != StatusUnhealthy {
				overall = StatusDegraded
			}
		}
	}
	sort.Slice(report.Checks, func(i, j int) bool {
		return report.Checks[i].Name < report.Checks[j].Name
	})

	report.Status = overall
	return report
}

// CheckWithTimeout runs all checks with a timeout
func (r *Registry) CheckWithTimeout(timeout time.Duration) *Report {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return r.Check(ctx)
}

// Report is the combined outcome of a registry run
type Report struct {
	Tool      string        `json:"tool" yaml:"tool"`
	Version   string        `json:"version" yaml:"version"`
	Status    Status        `json:"status" yaml:"status"`
	Timestamp time.Time     `json:"timestamp" yaml:"timestamp"`
	Checks    []CheckResult `json:"checks" yaml:"checks"`
}

// Healthy reports whether no check failed outright
func (r *Report) Healthy() bool {
	return r.Status != StatusUnhealthy
}

// String returns a one-line summary of the report
func (r *Report) String() string {
	return fmt.Sprintf("%s %s: %s (%d checks)", r.Tool, r.Version, r.Status, len(r.Checks))
}

// DirCheck reports whether path is an existing directory. A missing
// directory is degraded unless required is set.
func DirCheck(name, path string, required bool) Checker {
	return NewChecker(name, func(ctx context.Context) CheckResult {
		result := CheckResult{Name: name, Details: map[string]interface{}{"path": path}}

		info, err := os.Stat(path)
		switch {
		case os.IsNotExist(err):
			result.Status = StatusDegraded
			if required {
				result.Status = StatusUnhealthy
			}
			result.Message = "directory does not exist"
		case err != nil:
			result.Status = StatusUnhealthy
			result.Message = err.Error()
		case !info.IsDir():
			result.Status = StatusUnhealthy
			result.Message = "not a directory"
		default:
			result.Status = StatusHealthy
			result.Message = "directory exists"
		}
		return result
	})
}

// WritableDirCheck reports whether a file could be created in the
// directory holding path. The directory is not created.
func WritableDirCheck(name, path string) Checker {
	return NewChecker(name, func(ctx context.Context) CheckResult {
		dir := filepath.Dir(path)
		result := CheckResult{Name: name, Details: map[string]interface{}{"dir": dir}}

		if _, err := os.Stat(dir); os.IsNotExist(err) {
			result.Status = StatusDegraded
			result.Message = "directory will be created on first use"
			return result
		}

		f, err := os.CreateTemp(dir, ".quizc-doctor-*")
		if err != nil {
			result.Status = StatusUnhealthy
			result.Message = err.Error()
			return result
		}
		tmp := f.Name()
		f.Close()
		os.Remove(tmp)

		result.Status = StatusHealthy
		result.Message = "directory is writable"
		return result
	})
}

// ErrorCheck wraps a function that returns an error into a checker
func ErrorCheck(name string, fn func(ctx context.Context) error) Checker {
	return NewChecker(name, func(ctx context.Context) CheckResult {
		if err := fn(ctx); err != nil {
			return CheckResult{Name: name, Status: StatusUnhealthy, Message: err.Error()}
		}
		return CheckResult{Name: name, Status: StatusHealthy, Message: "ok"}
	})
}
