// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/bankd/interest"
)

const (
	watcherLoggerPrefix = "config-watcher"
	reloadDelay         = 2 * time.Second // editors write a file in several steps
)

// PolicySetter - receives the reloaded interest policy
type PolicySetter interface {
	SetPolicy(policy interest.Policy)
}

// watches the configuration file and pushes a changed interest
// section into the scheduler
type configWatcher struct {
	log      *logger.L
	watcher  *fsnotify.Watcher
	filePath string
	delay    time.Duration
	reload   func(string) (*Configuration, error)
	target   PolicySetter
	change   chan struct{}
}

func newConfigWatcher(targetFile string, target PolicySetter) (*configWatcher, error) {
	log := logger.New(watcherLoggerPrefix)

	filePath, err := filepath.Abs(filepath.Clean(targetFile))
	if nil != err {
		log.Errorf("parse file %s error: %s", targetFile, err)
		return nil, err
	}

	if _, err := os.Stat(filePath); nil != err {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		log.Errorf("new watcher with error: %s", err)
		return nil, err
	}

	// watch the directory so a rename over the file is seen
	err = watcher.Add(filepath.Dir(filePath))
	if nil != err {
		log.Errorf("watcher add error: %s", err)
		watcher.Close()
		return nil, err
	}

	return &configWatcher{
		log:      log,
		watcher:  watcher,
		filePath: filePath,
		delay:    reloadDelay,
		reload:   getConfiguration,
		target:   target,
		change:   make(chan struct{}, 1),
	}, nil
}

// Run - background process
func (w *configWatcher) Run(args interface{}, shutdown <-chan struct{}) {
	log := w.log
	log.Infof("starting…  file: %q", w.filePath)

	var pending <-chan time.Time

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case event, ok := <-w.watcher.Events:
			if !ok {
				break loop
			}
			if filepath.Clean(event.Name) != w.filePath {
				continue loop
			}
			log.Debugf("file event: %v", event)
			if watcherEventFileRemove(event) {
				log.Warnf("file %s removed, keeping current settings", w.filePath)
				continue loop
			}
			if watcherEventFileChange(event) {
				w.sendEvent()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				break loop
			}
			log.Errorf("watcher error: %s", err)

		case <-w.change:
			log.Debugf("file change, reload in %s", w.delay)
			pending = time.After(w.delay)

		case <-pending:
			pending = nil
			w.apply()
		}
	}

	log.Info("shutting down…")
	w.watcher.Close()
	log.Info("stopped")
}

// re-read the configuration and hand over the interest policy
//
// only the interest section is applied while running
func (w *configWatcher) apply() {
	conf, err := w.reload(w.filePath)
	if nil != err {
		w.log.Errorf("failed to read configuration from: %q  error: %s", w.filePath, err)
		return
	}

	policy, err := interest.NewPolicy(conf.Interest)
	if nil != err {
		w.log.Errorf("interest configuration error: %s", err)
		return
	}
	w.target.SetPolicy(policy)
}

func (w *configWatcher) sendEvent() {
	if len(w.change) == cap(w.change) {
		w.log.Debug("change already queued, discard event")
		return
	}
	w.change <- struct{}{}
}

func watcherEventFileRemove(event fsnotify.Event) bool {
	return event.Name == "" ||
		event.Op&fsnotify.Remove == fsnotify.Remove ||
		event.Op&fsnotify.Rename == fsnotify.Rename
}

func watcherEventFileChange(event fsnotify.Event) bool {
	return event.Op&fsnotify.Write == fsnotify.Write ||
		event.Op&fsnotify.Create == fsnotify.Create ||
		event.Op&fsnotify.Chmod == fsnotify.Chmod
}
