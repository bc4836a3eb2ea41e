/*
 * Copyright (c) 2024, NVIDIA CORPORATION.  All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"k8s.io/klog/v2"
)

func newFSWatcher(files ...string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, f := range files {
		err = watcher.Add(f)
		if err != nil {
			watcher.Close()
			return nil, err
		}
	}

	return watcher, nil
}

func newOSWatcher(sigs ...os.Signal) chan os.Signal {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, sigs...)

	return sigChan
}

// watchedDirs returns the directories containing paths. Directories are
// watched rather than the files themselves so that editors which replace a
// file on save do not end the watch.
func watchedDirs(paths []string) []string {
	seen := make(map[string]bool)
	var dirs []string
	for _, p := range paths {
		dir := filepath.Dir(p)
		if seen[dir] {
			continue
		}
		seen[dir] = true
		dirs = append(dirs, dir)
	}
	return dirs
}

// isSourceEvent reports whether event modifies one of the watched sources.
func isSourceEvent(event fsnotify.Event, paths map[string]bool) bool {
	if !paths[filepath.Clean(event.Name)] {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// watch compiles the source files and recompiles them whenever one of them
// changes. Compilation failures are logged and do not end the watch.
// SIGHUP forces a recompile; any other signal ends the watch.
func (r *runner) watch(paths []string) error {
	watched := make(map[string]bool)
	for _, p := range paths {
		if p == stdinPath {
			return fmt.Errorf("stdin cannot be watched")
		}
		watched[filepath.Clean(p)] = true
	}

	klog.Info("Starting FS watcher.")
	watcher, err := newFSWatcher(watchedDirs(paths)...)
	if err != nil {
		return fmt.Errorf("failed to create FS watcher: %v", err)
	}
	defer watcher.Close()

	klog.Info("Starting OS watcher.")
	sigs := newOSWatcher(syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer signal.Stop(sigs)

	debounce := time.Duration(*r.config.Flags.Output.WatchDebounce)
	return watchLoop(watcher.Events, watcher.Errors, sigs, watched, debounce, func() { r.recompile(paths) })
}

// watchLoop calls recompile once immediately and then again once events for
// the watched paths have stopped arriving for the debounce period.
func watchLoop(events <-chan fsnotify.Event, errs <-chan error, sigs <-chan os.Signal, watched map[string]bool, debounce time.Duration, recompile func()) error {
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
			recompile()

		case event := <-events:
			if isSourceEvent(event, watched) {
				klog.V(1).Infof("inotify: %s", event)
				resetTimer(timer, debounce)
			}

		case err := <-errs:
			klog.Errorf("inotify: %s", err)

		case s := <-sigs:
			switch s {
			case syscall.SIGHUP:
				klog.Info("Received SIGHUP, recompiling.")
				resetTimer(timer, 0)
			default:
				klog.Infof("Received signal \"%v\", shutting down.", s)
				return nil
			}
		}
	}
}

// resetTimer re-arms t, discarding an expiry that has not been received yet.
func resetTimer(t *time.Timer, d time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(d)
}

func (r *runner) recompile(paths []string) {
	sources, err := readSources(paths, nil)
	if err != nil {
		klog.Error(err)
		return
	}
	if err := r.compileAll(sources); err != nil {
		klog.Error(err)
		return
	}
	klog.Infof("Compiled %d source file(s).", len(sources))
}
