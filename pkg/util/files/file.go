// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"k8s.io/klog/v2"
)

const (
	// DefaultDebounceDelay groups bursts of file events into one notification
	DefaultDebounceDelay = 500 * time.Millisecond
)

// Watcher encapsulates file watch and configuration,
// abstracting form the underlying file watch provider
type Watcher struct {
	Watcher      *fsnotify.Watcher
	WatchedPaths []string
	// DebounceDelay defaults to DefaultDebounceDelay
	DebounceDelay time.Duration
	watched       []string
}

// NewFileWatcher creates Watcher
func NewFileWatcher() *Watcher {
	return &Watcher{
		WatchedPaths: []string{},
		watched:      []string{},
	}
}

// AddToWatch adds files or directories to the WatchedPaths list. Directories
// are watched recursively. The fsnotify watcher is created on demand if it's
// nil when the operation is invoked.
func (w *Watcher) AddToWatch(paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	if w.Watcher == nil {
		var err error
		w.Watcher, err = fsnotify.NewWatcher()
		if err != nil {
			return err
		}
	}
	w.WatchedPaths = append(w.WatchedPaths, paths...)
	return nil
}

// Watch starts monitoring WatchedPaths, until a signal is received on its stop channel. If WatchedPaths
// or Watcher are not initialized, Watch returns immediately. The eventHandler function is invoked once
// per burst of Write/Create/Remove/Rename events on the watched paths.
func (w *Watcher) Watch(stop <-chan struct{}, eventHandler func() error) error {
	if w.Watcher == nil || len(w.WatchedPaths) == 0 {
		return nil
	}
	defer func() {
		w.Watcher.Close() // nolint: errcheck
		klog.V(6).Infof("watching files stopped")
	}()
	for _, p := range w.WatchedPaths {
		if err := w.watch(p); err != nil {
			return fmt.Errorf("could not watch %v: %w", p, err)
		}
	}
	klog.V(6).Info("watching files started")
	delay := w.DebounceDelay
	if delay <= 0 {
		delay = DefaultDebounceDelay
	}
	var timerC <-chan time.Time
	for {
		select {
		case <-timerC:
			timerC = nil
			if eventHandler != nil {
				if err := eventHandler(); err != nil {
					klog.Warningf("handling file changes failed: %v", err)
				}
			}
		case event, ok := <-w.Watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event.Name) {
				continue
			}
			if event.Op&fsnotify.Create == fsnotify.Create {
				// new directories must be watched too
				if isDir(event.Name) {
					if err := w.watch(event.Name); err != nil {
						klog.Warningf("could not watch %s: %v", event.Name, err)
					}
				}
			}
			// use a timer to debounce updates
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				klog.V(6).Infof("file event %s", event)
				timerC = time.After(delay)
			}
		case err, ok := <-w.Watcher.Errors:
			if !ok {
				return nil
			}
			klog.V(6).Infof("watcher error: %v", err)
		case <-stop:
			return nil
		}
	}
}

// watch registers a directory tree, or the parent directory of a file so
// that atomic replacements of the file are noticed
func (w *Watcher) watch(path string) error {
	if !isDir(path) {
		return w.add(filepath.Dir(path))
	}
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return w.add(p)
	})
}

func (w *Watcher) add(dir string) error {
	for _, d := range w.watched {
		if d == dir {
			return nil
		}
	}
	if err := w.Watcher.Add(dir); err != nil {
		return err
	}
	klog.V(6).Infof("watching %s", dir)
	w.watched = append(w.watched, dir)
	return nil
}

// relevant reports whether name is one of the watched paths or inside one
func (w *Watcher) relevant(name string) bool {
	name = filepath.Clean(name)
	for _, p := range w.WatchedPaths {
		p = filepath.Clean(p)
		if name == p || strings.HasPrefix(name, p+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
