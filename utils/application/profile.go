// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2025-2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

package application

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"slices"

	"github.com/nfxdevelopment/graph-view-sub000/utils/errors"
)

// profiles are the profiles started for this run, [profiles.stop] writes and closes them all.
type profiles struct {
	stops []func() error
}

// startCPU profiles the cpu into [path] and traces the run into "trace-" next to it.
func (p *profiles) startCPU(path string) error {
	if path == "" {
		return nil
	}
	cpuFile, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "could not create CPU profile")
	}
	if err := pprof.StartCPUProfile(cpuFile); err != nil {
		return errors.Join(errors.Wrap(err, "could not start CPU profile"), cpuFile.Close())
	}
	p.stops = append(p.stops, func() error {
		pprof.StopCPUProfile()
		return closeSynced(cpuFile)
	})

	tracePath := filepath.Join(filepath.Dir(path), "trace-"+filepath.Base(path))
	traceFile, err := os.Create(tracePath)
	if err != nil {
		return errors.Wrap(err, "could not create trace")
	}
	if err := trace.Start(traceFile); err != nil {
		return errors.Join(errors.Wrap(err, "could not start trace"), traceFile.Close())
	}
	p.stops = append(p.stops, func() error {
		trace.Stop()
		return closeSynced(traceFile)
	})
	slog.Debug("started CPU profile and trace", "path", path, "trace", tracePath)
	return nil
}

// startHeap writes a heap profile into [path] when the run finishes.
func (p *profiles) startHeap(path string) error {
	if path == "" {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "could not create memory profile")
	}
	p.stops = append(p.stops, func() error {
		runtime.GC() // up to date statistics
		return errors.Join(errors.Wrap(pprof.WriteHeapProfile(f), "could not write memory profile"), f.Close())
	})
	return nil
}

// stop finishes the profiles in the reverse order they started.
func (p *profiles) stop() error {
	var errs []error
	for _, stop := range slices.Backward(p.stops) {
		errs = append(errs, stop())
	}
	p.stops = nil
	return errors.Join(errs...)
}

func closeSynced(f *os.File) error {
	return errors.Join(f.Sync(), f.Close())
}
