// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !js

package headless

import (
	"regexp"
	"strings"
)

// decls is what the scanner found in one shader source.
type decls struct {
	hasMain  bool
	errorMsg string // text of the first #error directive, if any
	uniforms []string
	inputs   []string
	outputs  []string
}

var (
	lineComment  = regexp.MustCompile(`//[^\n]*`)
	blockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
	layoutQual   = regexp.MustCompile(`layout\s*\([^)]*\)`)
	mainFunc     = regexp.MustCompile(`\bvoid\s+main\s*\(`)
	errorDir     = regexp.MustCompile(`(?m)^\s*#\s*error\b(.*)$`)
	preprocessor = regexp.MustCompile(`(?m)^\s*#.*$`)
)

// Qualifiers that may precede the storage keyword or the type.
var skipQualifiers = map[string]bool{
	"flat": true, "smooth": true, "centroid": true, "invariant": true,
	"highp": true, "mediump": true, "lowp": true,
}

// scan extracts top-level declarations from GLSL ES source. It is not a
// parser: uniform blocks are skipped and array sizes are dropped from
// names, which is enough to answer location queries.
func scan(src string) decls {
	src = blockComment.ReplaceAllString(src, " ")
	src = lineComment.ReplaceAllString(src, "")

	var d decls
	d.hasMain = mainFunc.MatchString(src)
	if m := errorDir.FindStringSubmatch(src); m != nil {
		d.errorMsg = strings.TrimSpace(m[1])
		if d.errorMsg == "" {
			d.errorMsg = "#error"
		}
	}

	src = preprocessor.ReplaceAllString(src, "")
	for _, stmt := range topLevel(src) {
		stmt = layoutQual.ReplaceAllString(stmt, " ")
		var fields []string
		for _, f := range strings.Fields(stmt) {
			if !skipQualifiers[f] {
				fields = append(fields, f)
			}
		}
		if len(fields) < 3 {
			continue
		}
		for _, name := range declNames(fields[2:]) {
			switch fields[0] {
			case "uniform":
				d.uniforms = append(d.uniforms, name)
			case "in", "attribute":
				d.inputs = append(d.inputs, name)
			case "out", "varying":
				d.outputs = append(d.outputs, name)
			}
		}
	}
	return d
}

// topLevel returns the ';'-terminated statements found outside braces.
// Text before a '{' (function and block headers) is dropped.
func topLevel(src string) []string {
	var (
		out   []string
		depth int
		start int
	)
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '{':
			depth++
			start = i + 1
		case '}':
			depth--
			start = i + 1
		case ';':
			if depth == 0 {
				out = append(out, src[start:i])
			}
			start = i + 1
		}
	}
	return out
}

// declNames splits "a, b[4], c" style declarator lists.
func declNames(fields []string) []string {
	var names []string
	for _, part := range strings.Split(strings.Join(fields, " "), ",") {
		name := strings.TrimSpace(part)
		if i := strings.IndexAny(name, "[= "); i >= 0 {
			name = name[:i]
		}
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}
