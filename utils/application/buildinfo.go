// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2025-2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

// Package application is the start up and tear down shared by every subcommand: flags common to all of
// them, logging, profiling and theme loading.
package application

import "strings"

// BuildInfo is stamped into the binary by the linker, nil for a development build.
type BuildInfo struct {
	commit    string
	goVersion string
	branch    string
	timestamp string
	tag       string
}

//nolint:staticcheck
func MakeBuildInfo(COMMIT, GO_VERSION, BRANCH, TIMESTAMP, TAG string) *BuildInfo {
	b := BuildInfo{commit: COMMIT, goVersion: GO_VERSION, branch: BRANCH, timestamp: TIMESTAMP, tag: TAG}
	if b == (BuildInfo{}) {
		return nil
	}
	return &b
}

// String is the multi line description printed by the version subcommand.
func (b *BuildInfo) String() string {
	if b == nil {
		return "graph-view: development build (no build info)"
	}
	var s strings.Builder
	s.WriteString("graph-view " + b.tag)
	for _, field := range b.fields() {
		s.WriteString("\n\t" + field.label + ":" + strings.Repeat(" ", 11-len(field.label)) + field.value)
	}
	return s.String()
}

type buildField struct{ label, key, value string }

func (b *BuildInfo) fields() []buildField {
	return []buildField{
		{"commit", "COMMIT", b.commit},
		{"branch", "BRANCH", b.branch},
		{"go version", "GO_VERSION", b.goVersion},
		{"built", "BUILD_TIMESTAMP", b.timestamp},
	}
}

// logAttrs tags every log record with the build, nothing for a development build.
func (b *BuildInfo) logAttrs() []any {
	if b == nil {
		return nil
	}
	attrs := []any{"TAG", b.tag}
	for _, field := range b.fields() {
		attrs = append(attrs, field.key, field.value)
	}
	return attrs
}
