// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import (
	"errors"
	"strings"
	"testing"
)

const triangleWGSL = `
struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) color: vec3<f32>,
}

@vertex
fn vs_main(@location(0) pos: vec2<f32>, @location(1) color: vec3<f32>) -> VertexOutput {
    var out: VertexOutput;
    out.position = vec4<f32>(pos, 0.0, 1.0);
    out.color = color;
    return out;
}

@fragment
fn fs_main(@location(0) color: vec3<f32>) -> @location(0) vec4<f32> {
    return vec4<f32>(color, 1.0);
}
`

const solidWGSL = `
@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0, 0.0, 0.0, 1.0);
}
`

func skipUnsupported(t *testing.T, err error) {
	t.Helper()
	msg := err.Error()
	if strings.Contains(msg, "not yet implemented") || strings.Contains(msg, "not supported") {
		t.Skipf("naga limitation: %v", err)
	}
}

func TestTranslateFragment(t *testing.T) {
	r, err := Translate(solidWGSL, StageFragment)
	if err != nil {
		skipUnsupported(t, err)
		t.Fatalf("Translate() error = %v", err)
	}
	if r.EntryPoint != "fs_main" {
		t.Errorf("EntryPoint = %q, want %q", r.EntryPoint, "fs_main")
	}
	for _, want := range []string{"#version 300 es", "void main"} {
		if !strings.Contains(r.Source, want) {
			t.Errorf("output missing %q:\n%s", want, r.Source)
		}
	}
}

func TestTranslateVertexNamesInputs(t *testing.T) {
	src, err := TranslateWGSL(triangleWGSL, StageVertex)
	if err != nil {
		skipUnsupported(t, err)
		t.Fatalf("TranslateWGSL() error = %v", err)
	}
	for _, want := range []string{VertexInputName(0), VertexInputName(1), VaryingName(0)} {
		if !strings.Contains(src, want) {
			t.Errorf("output missing %q:\n%s", want, src)
		}
	}
}

func TestTranslatePicksStage(t *testing.T) {
	vs, err := Translate(triangleWGSL, StageVertex)
	if err != nil {
		skipUnsupported(t, err)
		t.Fatalf("vertex: %v", err)
	}
	fs, err := Translate(triangleWGSL, StageFragment)
	if err != nil {
		skipUnsupported(t, err)
		t.Fatalf("fragment: %v", err)
	}
	if vs.EntryPoint != "vs_main" || fs.EntryPoint != "fs_main" {
		t.Errorf("entry points = %q, %q; want vs_main, fs_main", vs.EntryPoint, fs.EntryPoint)
	}
}

func TestTranslateMissingStage(t *testing.T) {
	_, err := Translate(solidWGSL, StageVertex)
	if !errors.Is(err, ErrNoEntryPoint) {
		t.Fatalf("err = %v, want ErrNoEntryPoint", err)
	}
}

func TestTranslateUnknownEntryPoint(t *testing.T) {
	_, err := Translate(solidWGSL, StageFragment, WithEntryPoint("nope"))
	if !errors.Is(err, ErrNoEntryPoint) {
		t.Fatalf("err = %v, want ErrNoEntryPoint", err)
	}
	if !strings.Contains(err.Error(), `"nope"`) {
		t.Errorf("error %q does not name the entry point", err)
	}
}

func TestTranslateParseError(t *testing.T) {
	_, err := Translate("@fragment fn broken( {", StageFragment)
	if !errors.Is(err, ErrParse) {
		t.Fatalf("err = %v, want ErrParse", err)
	}
}

func TestStageString(t *testing.T) {
	tests := []struct {
		s    Stage
		want string
	}{
		{StageVertex, "vertex"},
		{StageFragment, "fragment"},
		{Stage(7), "Stage(7)"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("Stage(%d).String() = %q, want %q", int(tt.s), got, tt.want)
		}
	}
}

func TestCacheReusesTranslation(t *testing.T) {
	c := NewCache(4)
	first, err := c.Translate(solidWGSL, StageFragment)
	if err != nil {
		skipUnsupported(t, err)
		t.Fatalf("Translate() error = %v", err)
	}
	second, err := c.Translate(solidWGSL, StageFragment)
	if err != nil {
		t.Fatalf("second Translate() error = %v", err)
	}
	if second.Source != first.Source {
		t.Error("cached source differs")
	}
	if s := c.Stats(); s.Hits != 1 || s.Misses != 1 {
		t.Errorf("stats = %+v, want 1 hit and 1 miss", s)
	}

	if _, err := c.Translate(solidWGSL, StageFragment, WithoutValidation()); err != nil {
		t.Fatalf("Translate(WithoutValidation) error = %v", err)
	}
	if s := c.Stats(); s.Misses != 2 || s.Len != 2 {
		t.Errorf("different options shared an entry: %+v", s)
	}
}

func TestCacheSkipsFailures(t *testing.T) {
	c := NewCache(4)
	for i := 0; i < 2; i++ {
		if _, err := c.Translate(solidWGSL, StageVertex); !errors.Is(err, ErrNoEntryPoint) {
			t.Fatalf("err = %v, want ErrNoEntryPoint", err)
		}
	}
	if s := c.Stats(); s.Len != 0 || s.Misses != 2 {
		t.Errorf("stats = %+v, want no entries and 2 misses", s)
	}
}
