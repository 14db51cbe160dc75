// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

package graph

import (
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/nfxdevelopment/graph-view-sub000/utils/errors"
)

// stats are the frame and producer counters of one graph, kept in a registry private to the graph so that
// many graphs (and tests) never collide.
type stats struct {
	registry *prometheus.Registry

	frames           prometheus.Counter
	unchangedFrames  prometheus.Counter
	frameDuration    prometheus.Histogram
	bufferUpdates    prometheus.Counter
	sizeMismatches   prometheus.Counter
	blockSizeChanges prometheus.Counter
	gridNodes        *prometheus.GaugeVec
}

func newStats() *stats {
	s := &stats{
		registry: prometheus.NewRegistry(),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "graph_view",
			Name:      "frames_total",
			Help:      "Frames computed and painted.",
		}),
		unchangedFrames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "graph_view",
			Name:      "unchanged_frames_total",
			Help:      "Frame ticks where nothing but the spinner changed.",
		}),
		frameDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "graph_view",
			Name:      "frame_duration_seconds",
			Help:      "Time to compute and paint one frame.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 10),
		}),
		bufferUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "graph_view",
			Name:      "buffer_updates_total",
			Help:      "Sample blocks accepted from the producer.",
		}),
		sizeMismatches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "graph_view",
			Name:      "size_mismatches_total",
			Help:      "Sample blocks rejected because their length did not match the block size.",
		}),
		blockSizeChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "graph_view",
			Name:      "block_size_changes_total",
			Help:      "Block size changes applied to the signal buffers.",
		}),
		gridNodes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "graph_view",
			Name:      "grid_nodes",
			Help:      "Nodes in each grid line tree, one per major grid plus one per minor subdivision.",
		}, []string{"orientation"}),
	}
	s.registry.MustRegister(
		s.frames, s.unchangedFrames, s.frameDuration,
		s.bufferUpdates, s.sizeMismatches, s.blockSizeChanges,
		s.gridNodes,
	)
	return s
}

func (s *stats) observeFrame(start time.Time) {
	s.frames.Inc()
	s.frameDuration.Observe(time.Since(start).Seconds())
}

// summary renders every metric as "name: value" lines. Histograms report their count and mean.
func (s *stats) summary() (string, error) {
	families, err := s.registry.Gather()
	if err != nil {
		return "", errors.Wrap(err, "failed to gather graph statistics")
	}
	var lines []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			lines = append(lines, describeMetric(mf.GetName(), mf.GetType(), m))
		}
	}
	slices.Sort(lines)
	return strings.Join(lines, "\n"), nil
}

func describeMetric(name string, kind dto.MetricType, m *dto.Metric) string {
	for _, l := range m.GetLabel() {
		name += "{" + l.GetName() + "=" + l.GetValue() + "}"
	}
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', 4, 64) }
	switch kind {
	case dto.MetricType_COUNTER:
		return name + ": " + f(m.GetCounter().GetValue())
	case dto.MetricType_GAUGE:
		return name + ": " + f(m.GetGauge().GetValue())
	case dto.MetricType_HISTOGRAM:
		h := m.GetHistogram()
		mean := 0.0
		if h.GetSampleCount() > 0 {
			mean = h.GetSampleSum() / float64(h.GetSampleCount())
		}
		return name + ": count " + strconv.FormatUint(h.GetSampleCount(), 10) + " mean " + f(mean)
	default:
		return name + ": unsupported metric type " + kind.String()
	}
}

// writeText writes the registry in the prometheus text exposition format.
func (s *stats) writeText(w io.Writer) error {
	families, err := s.registry.Gather()
	if err != nil {
		return errors.Wrap(err, "failed to gather graph statistics")
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return errors.Wrapf(err, "failed to write metric %q", mf.GetName())
		}
	}
	return nil
}
