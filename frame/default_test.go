// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !js

package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultIsShared(t *testing.T) {
	assert.Same(t, DefaultLoop(), Default())
}
