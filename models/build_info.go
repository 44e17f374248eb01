// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strings"
)

const buildInfoUnknown = "N/A"

// BuildInfo is the version metadata linked into the server and client
// binaries with -ldflags "-X main.buildVersion=...".
type BuildInfo struct {
	Version string
	Date    string
	Commit  string
}

// NewBuildInfo replaces missing values with "N/A".
func NewBuildInfo(version, date, commit string) BuildInfo {
	orUnknown := func(s string) string {
		if s = strings.TrimSpace(s); s == "" {
			return buildInfoUnknown
		}
		return s
	}
	return BuildInfo{
		Version: orUnknown(version),
		Date:    orUnknown(date),
		Commit:  orUnknown(commit),
	}
}

// Known reports whether a version was linked in.
func (b BuildInfo) Known() bool {
	return b.Version != "" && b.Version != buildInfoUnknown
}

// String renders the three lines printed on start and by `version`.
func (b BuildInfo) String() string {
	return fmt.Sprintf("Build version: %s\nBuild date: %s\nBuild commit: %s\n", b.Version, b.Date, b.Commit)
}
