// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gl

import (
	"strings"

	"github.com/gogpu/gpucontext"
)

// DescribeAdapter reports the adapter behind ctx from its RENDERER and
// VENDOR strings.
func DescribeAdapter(ctx Context) gpucontext.AdapterInfo {
	renderer := ctx.GetString(RENDERER)
	vendor := ctx.GetString(VENDOR)
	name := renderer
	if name == "" {
		name = vendor
	}
	return gpucontext.AdapterInfo{
		Name: name,
		Type: ClassifyAdapter(vendor + " " + renderer),
	}
}

// ClassifyAdapter guesses the adapter type from a vendor/renderer string.
func ClassifyAdapter(s string) gpucontext.AdapterType {
	s = strings.ToLower(s)
	switch {
	case strings.TrimSpace(s) == "":
		return gpucontext.AdapterTypeUnknown
	case containsAny(s, "llvmpipe", "softpipe", "swiftshader", "software", "lavapipe", "headless"):
		return gpucontext.AdapterTypeSoftware
	case containsAny(s, "intel", "uhd graphics", "iris", "apple", "mali", "adreno", "powervr"):
		return gpucontext.AdapterTypeIntegrated
	case containsAny(s, "nvidia", "geforce", "quadro", "radeon", "amd", "ati "):
		return gpucontext.AdapterTypeDiscrete
	default:
		return gpucontext.AdapterTypeUnknown
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
