// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBuildInfo_FillsUnknown(t *testing.T) {
	info := NewBuildInfo("v1.4.0", " ", "")

	assert.Equal(t, "v1.4.0", info.Version)
	assert.Equal(t, "N/A", info.Date)
	assert.Equal(t, "N/A", info.Commit)
	assert.True(t, info.Known())
	assert.Equal(t, "Build version: v1.4.0\nBuild date: N/A\nBuild commit: N/A\n", info.String())

	assert.False(t, NewBuildInfo("", "", "").Known())
}
