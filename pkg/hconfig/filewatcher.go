// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package hconfig

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher calls OnChange when one of its files is written or re-created.
// The parent directories are watched (editors often save by rename).
type Watcher struct {
	lock     *sync.Mutex
	watcher  *fsnotify.Watcher
	files    map[string]bool
	onChange func(fileName string)
}

func MakeWatcher(fileNames []string, onChange func(fileName string)) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("cannot create file watcher: %w", err)
	}
	rtn := &Watcher{
		lock:     &sync.Mutex{},
		watcher:  fsWatcher,
		files:    make(map[string]bool),
		onChange: onChange,
	}
	dirs := make(map[string]bool)
	for _, fileName := range fileNames {
		absName, err := filepath.Abs(fileName)
		if err != nil {
			fsWatcher.Close()
			return nil, fmt.Errorf("cannot resolve %q: %w", fileName, err)
		}
		rtn.files[absName] = true
		dirs[filepath.Dir(absName)] = true
	}
	for dir := range dirs {
		err = fsWatcher.Add(dir)
		if err != nil {
			fsWatcher.Close()
			return nil, fmt.Errorf("cannot watch %s: %w", dir, err)
		}
	}
	return rtn, nil
}

// Run processes events until ctx is done or the watcher is closed
func (w *Watcher) Run(ctx context.Context) {
	w.lock.Lock()
	fsWatcher := w.watcher
	w.lock.Unlock()
	if fsWatcher == nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return
			}
			log.Printf("[watcher] error: %v\n", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	absName, err := filepath.Abs(event.Name)
	if err != nil {
		return
	}
	w.lock.Lock()
	defer w.lock.Unlock()
	if !w.files[absName] {
		return
	}
	w.onChange(absName)
}

func (w *Watcher) Close() {
	w.lock.Lock()
	defer w.lock.Unlock()
	if w.watcher != nil {
		w.watcher.Close()
		w.watcher = nil
	}
}
