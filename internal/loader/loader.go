// ============================================================================
// quizc - Quiz DSL compiler
// ============================================================================
//
// Package:     loader
// Description: Quiz directory loader with hot-reload support
// Author:      quizc contributors
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package loader

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	qzerror "github.com/quizdsl/quizc/foundation/core/error"
	"github.com/quizdsl/quizc/foundation/quiz"
	"github.com/quizdsl/quizc/foundation/quiz/ast"
	"github.com/quizdsl/quizc/pkg/core/cache"
	"github.com/quizdsl/quizc/pkg/core/logging"
)

// Extension is the file extension of quiz sources
const Extension = ".quiz"

// DefaultDebounce is the quiet period before a changed file is recompiled
const DefaultDebounce = 300 * time.Millisecond

// Entry is a successfully compiled quiz file
type Entry struct {
	Path     string
	Quiz     *ast.Quiz
	LoadedAt time.Time
}

type pendingEvent struct {
	timer *time.Timer
	seq   uint64
}

type firedEvent struct {
	event fsnotify.Event
	seq   uint64
}

// Loader compiles every quiz file in a directory and keeps the results
// current while watching is active
type Loader struct {
	mu       sync.RWMutex
	entries  map[string]*Entry // path -> compiled quiz
	failures map[string]error  // path -> last compile error
	dir      string
	engine   *quiz.Engine
	compiled *cache.Cache[*ast.Quiz] // content key -> compiled quiz
	logger   *logging.Logger
	debounce time.Duration

	onChange func(entry *Entry)
	onError  func(path string, err error)
	onDelete func(path string)

	watcher  *fsnotify.Watcher
	pending  map[string]pendingEvent // path -> debounce timer
	seq      uint64
	fired    chan firedEvent
	done     chan struct{} // closed when the watch loop exits
	stopCh   chan struct{}
	stopOnce sync.Once
	running  bool
}

// NewLoader creates a loader for dir. A nil engine or logger gets a default.
func NewLoader(dir string, engine *quiz.Engine, logger *logging.Logger) *Loader {
	if engine == nil {
		engine = quiz.NewEngine(quiz.Options{DecodeStrings: true})
	}
	if logger == nil {
		logger = logging.New("loader")
	}
	return &Loader{
		entries:  make(map[string]*Entry),
		failures: make(map[string]error),
		dir:      dir,
		engine:   engine,
		compiled: cache.New[*ast.Quiz](cache.DefaultConfig()),
		logger:   logger,
		debounce: DefaultDebounce,
		pending:  make(map[string]pendingEvent),
		stopCh:   make(chan struct{}),
	}
}

// SetDebounce changes the quiet period used by the watcher
func (l *Loader) SetDebounce(d time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if d >= 0 {
		l.debounce = d
	}
}

// SetOnChange sets the callback for when a quiz is compiled or recompiled
func (l *Loader) SetOnChange(fn func(entry *Entry)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = fn
}

// SetOnError sets the callback for when a quiz file fails to compile
func (l *Loader) SetOnError(fn func(path string, err error)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onError = fn
}

// SetOnDelete sets the callback for when a quiz file disappears
func (l *Loader) SetOnDelete(fn func(path string)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onDelete = fn
}

// Dir returns the watched directory
func (l *Loader) Dir() string {
	return l.dir
}

// LoadAll compiles every quiz file in the directory. Files that fail to
// compile are logged and recorded in Errors; loading continues.
func (l *Loader) LoadAll() error {
	info, err := os.Stat(l.dir)
	if err != nil {
		code := qzerror.CodeInvalidInput
		if os.IsNotExist(err) {
			code = qzerror.CodeNotFound
		}
		return qzerror.Wrap(err, "failed to open quiz directory").
			WithCode(code).
			WithOperation("loader.LoadAll").
			WithDetail("dir", l.dir)
	}
	if !info.IsDir() {
		return qzerror.Newf("%s is not a directory", l.dir).
			WithCode(qzerror.CodeInvalidInput).
			WithOperation("loader.LoadAll")
	}

	files, err := l.quizFiles()
	if err != nil {
		return qzerror.Wrap(err, "failed to list quiz files").WithOperation("loader.LoadAll")
	}

	if len(files) == 0 {
		l.logger.Info("No quiz files found in directory", "dir", l.dir)
		return nil
	}

	loaded := 0
	for _, file := range files {
		if _, err := l.load(file); err == nil {
			loaded++
		}
	}

	l.logger.Info("Quizzes loaded from directory", "count", loaded, "failed", len(files)-loaded, "dir", l.dir)
	return nil
}

// quizFiles lists the quiz sources in the directory, sorted by path
func (l *Loader) quizFiles() ([]string, error) {
	dirEntries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, de := range dirEntries {
		if de.IsDir() || !isQuizFile(de.Name()) {
			continue
		}
		files = append(files, filepath.Join(l.dir, de.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// load compiles one file and records the outcome. Unchanged content is
// served from the compile cache.
func (l *Loader) load(path string) (*Entry, error) {
	q, err := l.compile(path)

	l.mu.Lock()
	if err != nil {
		delete(l.entries, path)
		l.failures[path] = err
		onError := l.onError
		l.mu.Unlock()

		l.logger.Warn("Failed to compile quiz file", "file", filepath.Base(path), "error", err)
		if onError != nil {
			onError(path, err)
		}
		return nil, err
	}

	entry := &Entry{Path: path, Quiz: q, LoadedAt: time.Now()}
	l.entries[path] = entry
	delete(l.failures, path)
	onChange := l.onChange
	l.mu.Unlock()

	l.logger.Info("Quiz loaded", "file", filepath.Base(path), "title", q.TitleOr("(untitled)"), "questions", len(q.Questions))
	if onChange != nil {
		onChange(entry)
	}
	return entry, nil
}

func (l *Loader) compile(path string) (*ast.Quiz, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		code := qzerror.CodeInvalidInput
		if os.IsNotExist(err) {
			code = qzerror.CodeNotFound
		}
		return nil, qzerror.Wrap(err, "failed to read quiz file").
			WithCode(code).
			WithOperation("loader.load").
			WithDetail("path", path)
	}

	source := string(data)
	opts := l.engine.Options()
	key := cache.ContentKey(source, strconv.FormatBool(opts.DecodeStrings), strconv.Itoa(opts.MaxInputLength))

	q, err := l.compiled.GetOrSet(key, func() (*ast.Quiz, error) {
		return l.engine.CompileNamed(path, source)
	})
	if err != nil {
		return nil, err
	}
	return q.Clone(), nil
}

// CacheStats returns hit and miss counts of the compile cache
func (l *Loader) CacheStats() (hits, misses int64) {
	hits, misses, _ = l.compiled.Stats()
	return hits, misses
}

// remove forgets a file and reports whether it was known
func (l *Loader) remove(path string) bool {
	l.mu.Lock()
	_, loaded := l.entries[path]
	_, failed := l.failures[path]
	delete(l.entries, path)
	delete(l.failures, path)
	onDelete := l.onDelete
	l.mu.Unlock()

	if !loaded && !failed {
		return false
	}
	l.logger.Info("Quiz removed", "file", filepath.Base(path))
	if onDelete != nil {
		onDelete(path)
	}
	return true
}

// Get returns the compiled quiz for path
func (l *Loader) Get(path string) (*Entry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	entry, ok := l.entries[path]
	return entry, ok
}

// All returns every compiled quiz ordered by path
func (l *Loader) All() []*Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	entries := make([]*Entry, 0, len(l.entries))
	for _, entry := range l.entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries
}

// Errors returns the last compile error of every failing file
func (l *Loader) Errors() map[string]error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make(map[string]error, len(l.failures))
	for path, err := range l.failures {
		out[path] = err
	}
	return out
}

// StartWatching starts the file watcher for hot-reload. It returns once the
// watcher is registered; events are handled until ctx is cancelled or Stop
// is called.
func (l *Loader) StartWatching(ctx context.Context) error {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		l.mu.Unlock()
		return qzerror.Wrap(err, "failed to create watcher").
			WithCode(qzerror.CodeWatchError).
			WithOperation("loader.StartWatching")
	}
	if err := watcher.Add(l.dir); err != nil {
		watcher.Close()
		l.mu.Unlock()
		return qzerror.Wrap(err, "failed to watch directory").
			WithCode(qzerror.CodeWatchError).
			WithOperation("loader.StartWatching").
			WithDetail("dir", l.dir)
	}

	l.watcher = watcher
	l.running = true
	l.fired = make(chan firedEvent)
	l.done = make(chan struct{})
	done := l.done
	l.mu.Unlock()

	l.logger.Info("Started watching for quiz changes", "dir", l.dir)
	go l.watchLoop(ctx, watcher, done)
	return nil
}

// IsWatching reports whether the watcher is active
func (l *Loader) IsWatching() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.running
}

// watchLoop owns every reload while watching: debounced events come back
// here, so loads and callbacks run on this goroutine only and never after
// it returns.
func (l *Loader) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, done chan struct{}) {
	defer func() {
		close(done)
		watcher.Close()
		l.mu.Lock()
		l.running = false
		for path, p := range l.pending {
			p.timer.Stop()
			delete(l.pending, path)
		}
		l.mu.Unlock()
	}()

	l.mu.RLock()
	fired := l.fired
	l.mu.RUnlock()

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping quiz watcher (context cancelled)")
			return

		case <-l.stopCh:
			l.logger.Info("Stopping quiz watcher (stop signal)")
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !isQuizFile(event.Name) {
				continue
			}
			l.schedule(event)

		case f := <-fired:
			l.mu.Lock()
			p, ok := l.pending[f.event.Name]
			current := ok && p.seq == f.seq
			if current {
				delete(l.pending, f.event.Name)
			}
			l.mu.Unlock()
			// a newer event for the same file is still waiting
			if !current {
				continue
			}
			select {
			case <-ctx.Done():
				return
			case <-l.stopCh:
				return
			default:
			}
			l.handleFileEvent(f.event)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			l.logger.Error("Watcher error", "error", err)
		}
	}
}

// schedule handles event once no further event for the same file arrived
// within the debounce period. Editors often emit several writes per save.
func (l *Loader) schedule(event fsnotify.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if p, ok := l.pending[event.Name]; ok {
		p.timer.Stop()
	}
	l.seq++
	seq := l.seq
	fired, done := l.fired, l.done
	timer := time.AfterFunc(l.debounce, func() {
		select {
		case fired <- firedEvent{event: event, seq: seq}:
		case <-done:
		}
	})
	l.pending[event.Name] = pendingEvent{timer: timer, seq: seq}
}

// handleFileEvent applies a single file event
func (l *Loader) handleFileEvent(event fsnotify.Event) {
	switch {
	case event.Has(fsnotify.Create) || event.Has(fsnotify.Write):
		l.logger.Debug("Quiz file changed, recompiling", "file", filepath.Base(event.Name), "op", event.Op.String())
		l.load(event.Name)

	case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
		// a rename that leaves the file in place is followed by a Create
		if _, err := os.Stat(event.Name); err == nil {
			l.load(event.Name)
			return
		}
		l.remove(event.Name)
	}
}

// Stop stops the file watcher
func (l *Loader) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopCh)
	})
}

func isQuizFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), Extension)
}
