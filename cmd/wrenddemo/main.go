//go:build !js

// Command wrenddemo renders a spinning textured quad off-screen with wrend.
//
// Settings are read from flags, falling back to the environment and an
// optional .env file:
//
//	WREND_BACKEND     backend name (empty picks the best available)
//	WREND_LOG_LEVEL   debug, info, warn or error
//	WREND_FRAMES      number of frames to animate
//	WREND_RECORD_DIR  when set, frames are recorded into this directory
package main

import (
	"context"
	"errors"
	"flag"
	"image"
	"image/color"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/joho/godotenv"

	"github.com/gogpu/wrend"
	"github.com/gogpu/wrend/backend"
	_ "github.com/gogpu/wrend/backend/gles"
	"github.com/gogpu/wrend/backend/headless"
	"github.com/gogpu/wrend/frame"
	"github.com/gogpu/wrend/gl"
	"github.com/gogpu/wrend/recording"
)

const quadVS = `#version 300 es
in vec2 a_position;
in vec2 a_uv;
uniform mat4 u_mvp;
out vec2 v_uv;
void main() {
	v_uv = a_uv;
	gl_Position = u_mvp * vec4(a_position, 0.0, 1.0);
}
`

const quadFS = `#version 300 es
precision mediump float;
in vec2 v_uv;
uniform sampler2D u_tex;
out vec4 outColor;
void main() {
	outColor = texture(u_tex, v_uv);
}
`

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Ignoring .env: %v", err)
	}

	var (
		width     = flag.Int("width", 512, "canvas width")
		height    = flag.Int("height", 512, "canvas height")
		frames    = flag.Int("frames", envInt("WREND_FRAMES", 60), "frames to animate")
		name      = flag.String("backend", os.Getenv("WREND_BACKEND"), "backend name")
		level     = flag.String("log-level", envOr("WREND_LOG_LEVEL", "info"), "log level")
		recordDir = flag.String("record", os.Getenv("WREND_RECORD_DIR"), "record frames into this directory")
		output    = flag.String("output", "wrend.png", "snapshot of the last frame")
	)
	flag.Parse()

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(*level)); err != nil {
		log.Fatalf("Bad log level %q: %v", *level, err)
	}
	wrend.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))

	r, err := build(headless.NewCanvas(*width, *height), *name)
	if err != nil {
		log.Fatalf("Failed to build renderer: %v", err)
	}
	info := r.AdapterInfo()
	log.Printf("Rendering with %s (%s)", info.Name, info.Type)

	var (
		capture *recording.FrameCapture
		rec     *recording.Recorder
	)
	if *recordDir != "" {
		sink, err := recording.NewSink("file", *recordDir)
		if err != nil {
			log.Fatalf("Failed to create sink: %v", err)
		}
		capture = recording.NewFrameCapture(r)
		rec = recording.New(capture, sink)
		if err := rec.Start(); err != nil {
			log.Fatalf("Failed to start recording: %v", err)
		}
	}

	loop := frame.NewLoop()
	opts := []wrend.HandleOption{wrend.WithScheduler(loop)}
	if rec != nil {
		opts = append(opts, recording.WithRecorder(rec))
	}
	opts = append(opts, wrend.WithAnimationCallback(func(r *wrend.Renderer) {
		if err := r.UpdateUniforms(); err != nil {
			wrend.Logger().Error("update uniforms", "err", err)
			return
		}
		if err := r.Render(); err != nil {
			wrend.Logger().Error("render", "err", err)
			return
		}
		if capture != nil {
			if err := capture.CaptureFrame(); err != nil {
				wrend.Logger().Error("capture frame", "err", err)
			}
		}
	}))
	h := wrend.NewAnimationHandle(r, opts...)
	defer h.Close()

	if err := h.StartAnimating(); err != nil {
		log.Fatalf("Failed to animate: %v", err)
	}
	if err := loop.RunFrames(context.Background(), *frames); err != nil {
		log.Fatalf("Frame loop: %v", err)
	}
	_ = h.StopAnimating()

	if rec != nil {
		if err := rec.Stop(); err != nil {
			log.Fatalf("Failed to stop recording: %v", err)
		}
		log.Printf("Recorded %d frames to %s", capture.Frames(), *recordDir)
	}
	if err := r.SavePNG(*output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Snapshot saved to %s (%dx%d)", *output, *width, *height)
}

func build(canvas gl.Canvas, name string) (*wrend.Renderer, error) {
	open := backend.Open
	if name != "" {
		open = func(c gl.Canvas) (gl.Context, error) { return backend.OpenByName(name, c) }
	}

	return wrend.NewBuilder().
		SetCanvas(canvas).
		SetGetContext(open).
		AddVertexShaderSrc("quad", quadVS).
		AddFragmentShaderSrc("quad", quadFS).
		AddProgramLink(wrend.NewProgramLink("quad", "quad", "quad")).
		AddUniformLinks(
			wrend.NewUniformLink("u_tex", func(c *wrend.UniformContext) {
				c.GL.Uniform1i(c.Location, 0)
			}, "quad"),
			wrend.NewUniformLink("u_mvp", nil, "quad").
				WithUpdate(func(c *wrend.UniformContext) {
					angle := float32(c.Now / 1000)
					gl.UniformMat4(c.GL, c.Location, mgl32.HomogRotate3DZ(angle).Mul4(mgl32.Scale3D(0.7, 0.7, 1)))
				}),
		).
		AddBufferLinks(
			wrend.NewBufferLink("positions", staticBuffer(-1, -1, 1, -1, -1, 1, 1, 1)),
			wrend.NewBufferLink("uvs", staticBuffer(0, 0, 1, 0, 0, 1, 1, 1)),
		).
		AddVAOLink("quad").
		AddAttributeLinks(
			wrend.NewAttributeLink("a_position", "quad", "positions", float2, "quad"),
			wrend.NewAttributeLink("a_uv", "quad", "uvs", float2, "quad"),
		).
		AddTextureLink(wrend.NewTextureLink("checker", func(c *wrend.TextureContext) gl.Texture {
			tex, err := gl.UploadImage(c.GL, checkerboard(64, 8))
			if err != nil {
				wrend.Logger().Error("upload texture", "err", err)
			}
			return tex
		})).
		SetRenderCallback(draw).
		Build()
}

func draw(r *wrend.Renderer) {
	ctx := r.GL()
	ctx.Viewport(0, 0, r.Canvas().Width(), r.Canvas().Height())
	ctx.ClearColor(0.1, 0.1, 0.15, 1)
	ctx.Clear(gl.COLOR_BUFFER_BIT)

	if err := r.UseProgram("quad"); err != nil {
		wrend.Logger().Error("use program", "err", err)
		return
	}
	if err := r.UseVAO("quad"); err != nil {
		wrend.Logger().Error("use vao", "err", err)
		return
	}
	tex, _ := r.Texture("checker")
	ctx.ActiveTexture(gl.TEXTURE0)
	ctx.BindTexture(gl.TEXTURE_2D, tex)
	ctx.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	ctx.Flush()
}

func staticBuffer(data ...float32) func(*wrend.BufferContext) gl.Buffer {
	return func(c *wrend.BufferContext) gl.Buffer {
		buf := c.GL.CreateBuffer()
		c.GL.BindBuffer(gl.ARRAY_BUFFER, buf)
		c.GL.BufferData(gl.ARRAY_BUFFER, gl.Float32Bytes(data...), gl.STATIC_DRAW)
		return buf
	}
}

func float2(c *wrend.AttributeContext) {
	if err := gl.VertexAttribFormat(c.GL, c.Location, gputypes.VertexFormatFloat32x2, 0, 0); err != nil {
		wrend.Logger().Error("attribute format", "attribute", c.AttributeID, "err", err)
	}
}

func checkerboard(size, cell int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	light := color.RGBA{R: 240, G: 200, B: 80, A: 255}
	dark := color.RGBA{R: 40, G: 90, B: 160, A: 255}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := dark
			if (x/cell+y/cell)%2 == 0 {
				c = light
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Ignoring %s=%q: %v", key, v, err)
		return def
	}
	return n
}
