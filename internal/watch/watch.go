// Package watch rebuilds on content changes. It combines a recursive
// fsnotify watcher with debounce and an optional cron schedule for periodic
// full rebuilds.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/sitedata/internal/logfields"
)

// Rebuilder is the build trigger the watcher drives. force is set for
// scheduled rebuilds so they bypass the unchanged-content skip.
type Rebuilder func(ctx context.Context, force bool) error

// Watcher drives rebuilds from filesystem events and the optional schedule.
type Watcher struct {
	contentDir string
	debounce   time.Duration
	schedule   string
	rebuild    Rebuilder

	watcher   *fsnotify.Watcher
	scheduler gocron.Scheduler
	events    chan struct{}
}

// New constructs a watcher over contentDir. schedule is a cron expression
// for periodic full rebuilds; empty disables scheduling.
func New(contentDir string, debounce time.Duration, schedule string, rebuild Rebuilder) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	w := &Watcher{
		contentDir: contentDir,
		debounce:   debounce,
		schedule:   schedule,
		rebuild:    rebuild,
		watcher:    fsw,
		events:     make(chan struct{}, 1),
	}
	if err := w.addRecursive(contentDir); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run blocks, rebuilding until the context is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.watcher.Close() }()

	if w.schedule != "" {
		s, err := gocron.NewScheduler()
		if err != nil {
			return fmt.Errorf("create scheduler: %w", err)
		}
		_, err = s.NewJob(
			gocron.CronJob(w.schedule, false),
			gocron.NewTask(func() {
				slog.Info("scheduled rebuild")
				if err := w.rebuild(ctx, true); err != nil {
					slog.Error("scheduled rebuild failed", logfields.Error(err))
				}
			}),
			gocron.WithName("scheduled-rebuild"),
		)
		if err != nil {
			return fmt.Errorf("schedule rebuild: %w", err)
		}
		w.scheduler = s
		s.Start()
		defer func() { _ = s.Shutdown() }()
		slog.Info("rebuild schedule active", slog.String("schedule", w.schedule))
	}

	go w.watchLoop(ctx)

	slog.Info("watching for content changes", logfields.Path(w.contentDir))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.events:
			if !w.drainDebounce(ctx) {
				return ctx.Err()
			}
			if err := w.rebuild(ctx, false); err != nil {
				slog.Error("rebuild failed", logfields.Error(err))
			}
		}
	}
}

// watchLoop forwards relevant fsnotify events and keeps the recursive watch
// set current as directories appear.
func (w *Watcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if w.ignored(event.Name) {
				continue
			}
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addRecursive(event.Name); err != nil {
						slog.Warn("watch new directory failed", logfields.Path(event.Name), logfields.Error(err))
					}
				}
			}
			select {
			case w.events <- struct{}{}:
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("file watcher error", logfields.Error(err))
		}
	}
}

// drainDebounce waits out the debounce window, absorbing further events.
// It returns false when the context is canceled.
func (w *Watcher) drainDebounce(ctx context.Context) bool {
	timer := time.NewTimer(w.debounce)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return false
		case <-w.events:
			if !timer.Stop() {
				<-timer.C
			}
			timer.Reset(w.debounce)
		case <-timer.C:
			return true
		}
	}
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if w.ignored(path) {
			return fs.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// ignored filters editor noise and hidden trees out of the event stream.
func (w *Watcher) ignored(path string) bool {
	base := filepath.Base(path)
	if base != "." && strings.HasPrefix(base, ".") {
		return true
	}
	return strings.HasSuffix(base, "~") || strings.HasSuffix(base, ".swp")
}
