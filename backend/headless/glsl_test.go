// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !js

package headless

import (
	"slices"
	"testing"
)

func TestScan(t *testing.T) {
	src := `#version 300 es
precision highp float;
// uniform float commented;
/* uniform vec2 alsoCommented; */
layout(location = 0) in vec2 a_position;
in highp vec2 a_uv;
uniform mat4 u_mvp;
uniform float u_weights[4], u_bias;
uniform Block { vec4 hidden; };
flat out int v_id;
out vec2 v_uv;

float helper(float x) { return x; }

void main() {
    uniform float notTopLevel;
    v_uv = a_uv;
    gl_Position = u_mvp * vec4(a_position, 0.0, 1.0);
}
`
	d := scan(src)
	if !d.hasMain {
		t.Error("hasMain = false")
	}
	if d.errorMsg != "" {
		t.Errorf("errorMsg = %q", d.errorMsg)
	}
	if want := []string{"u_mvp", "u_weights", "u_bias"}; !slices.Equal(d.uniforms, want) {
		t.Errorf("uniforms = %v, want %v", d.uniforms, want)
	}
	if want := []string{"a_position", "a_uv"}; !slices.Equal(d.inputs, want) {
		t.Errorf("inputs = %v, want %v", d.inputs, want)
	}
	if want := []string{"v_id", "v_uv"}; !slices.Equal(d.outputs, want) {
		t.Errorf("outputs = %v, want %v", d.outputs, want)
	}
}

func TestScanErrorDirective(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"#error unsupported platform\nvoid main() {}", "unsupported platform"},
		{"  #  error\nvoid main() {}", "#error"},
		{"void main() {}", ""},
	}
	for _, tt := range tests {
		if got := scan(tt.src).errorMsg; got != tt.want {
			t.Errorf("scan(%q).errorMsg = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestScanNoMain(t *testing.T) {
	if scan("void mainly() {}").hasMain {
		t.Error("mainly matched main")
	}
	if scan("// void main() {}").hasMain {
		t.Error("commented main matched")
	}
}

func TestDeclNames(t *testing.T) {
	got := declNames([]string{"a,", "b[4],", "c", "=", "1.0"})
	if want := []string{"a", "b", "c"}; !slices.Equal(got, want) {
		t.Errorf("declNames = %v, want %v", got, want)
	}
}
