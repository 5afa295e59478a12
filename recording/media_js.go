//go:build js

package recording

import (
	"errors"
	"fmt"
	"syscall/js"
	"time"

	"github.com/gogpu/wrend"
)

// BrowserMedia records a canvas element with the DOM MediaRecorder.
type BrowserMedia struct {
	recorder  js.Value
	mimeType  string
	listeners map[string]js.Func
}

var (
	_ MediaRecorder = (*BrowserMedia)(nil)
	_ EventSource   = (*BrowserMedia)(nil)
)

// NewBrowserMedia captures the stream of canvas, an HTMLCanvasElement.
// The MIME type is the first of vp9, vp8 and plain WebM the browser
// supports.
func NewBrowserMedia(canvas js.Value) (*BrowserMedia, error) {
	ctor := js.Global().Get("MediaRecorder")
	if ctor.IsUndefined() {
		return nil, errors.New("recording: MediaRecorder is not supported")
	}
	if canvas.Get("captureStream").IsUndefined() {
		return nil, errors.New("recording: canvas.captureStream is not supported")
	}
	mime := SelectMimeType(func(m string) bool {
		return ctor.Call("isTypeSupported", m).Bool()
	})
	opts := js.Global().Get("Object").New()
	opts.Set("mimeType", mime)
	stream := canvas.Call("captureStream")
	return &BrowserMedia{
		recorder:  ctor.New(stream, opts),
		mimeType:  mime,
		listeners: make(map[string]js.Func),
	}, nil
}

// Attach registers the DOM listeners once. Later calls are ignored.
func (m *BrowserMedia) Attach(e Events) {
	if len(m.listeners) > 0 {
		return
	}
	m.listen("start", func(js.Value) { e.HandleStart() })
	m.listen("stop", func(js.Value) { e.HandleStop() })
	m.listen("pause", func(js.Value) { e.HandlePause() })
	m.listen("resume", func(js.Value) { e.HandleResume() })
	m.listen("error", func(ev js.Value) {
		e.HandleError(fmt.Errorf("recording: %s", ev.Get("error").Call("toString").String()))
	})
	m.listen("dataavailable", func(ev js.Value) {
		blobBytes(ev.Get("data"), func(b []byte, err error) {
			if err != nil {
				e.HandleError(err)
				return
			}
			if err := e.HandleData(b); err != nil {
				wrend.Logger().Error("recording: chunk rejected", "err", err)
			}
		})
	})
}

func (m *BrowserMedia) listen(event string, fn func(js.Value)) {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		ev := js.Undefined()
		if len(args) > 0 {
			ev = args[0]
		}
		fn(ev)
		return nil
	})
	m.recorder.Call("addEventListener", event, f)
	m.listeners[event] = f
}

// Start calls MediaRecorder.start(timeslice).
func (m *BrowserMedia) Start(timeslice time.Duration) error {
	return jsCall(func() { m.recorder.Call("start", timeslice.Milliseconds()) })
}

// Stop calls MediaRecorder.stop().
func (m *BrowserMedia) Stop() error {
	return jsCall(func() { m.recorder.Call("stop") })
}

// MimeType returns the negotiated type.
func (m *BrowserMedia) MimeType() string { return m.mimeType }

// Close removes the DOM listeners and releases their functions.
func (m *BrowserMedia) Close() {
	for event, f := range m.listeners {
		m.recorder.Call("removeEventListener", event, f)
		f.Release()
	}
	clear(m.listeners)
}

// jsCall turns a thrown JS exception into an error.
func jsCall(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if jsErr, ok := r.(js.Error); ok {
				err = fmt.Errorf("recording: %w", jsErr)
				return
			}
			panic(r)
		}
	}()
	fn()
	return nil
}

// blobBytes copies a Blob's contents into Go memory. done runs
// asynchronously once blob.arrayBuffer() settles.
func blobBytes(blob js.Value, done func([]byte, error)) {
	var then, catch js.Func
	release := func() {
		then.Release()
		catch.Release()
	}
	then = js.FuncOf(func(_ js.Value, args []js.Value) any {
		defer release()
		u8 := js.Global().Get("Uint8Array").New(args[0])
		b := make([]byte, u8.Get("length").Int())
		js.CopyBytesToGo(b, u8)
		done(b, nil)
		return nil
	})
	catch = js.FuncOf(func(_ js.Value, args []js.Value) any {
		defer release()
		done(nil, fmt.Errorf("recording: read blob: %s", args[0].Call("toString").String()))
		return nil
	})
	blob.Call("arrayBuffer").Call("then", then).Call("catch", catch)
}

// DownloadSink offers each recording to the user as a file download.
type DownloadSink struct {
	name string
}

// NewDownloadSink returns a sink downloading as name; empty means
// canvas.webm.
func NewDownloadSink(name string) *DownloadSink {
	if name == "" {
		name = "canvas.webm"
	}
	return &DownloadSink{name: name}
}

// Save creates a blob URL for data and clicks a temporary link to it.
func (s *DownloadSink) Save(data []byte, mimeType string) error {
	return jsCall(func() {
		u8 := js.Global().Get("Uint8Array").New(len(data))
		js.CopyBytesToJS(u8, data)
		opts := js.Global().Get("Object").New()
		opts.Set("type", mimeType)
		blob := js.Global().Get("Blob").New([]any{u8}, opts)
		url := js.Global().Get("URL").Call("createObjectURL", blob)
		defer js.Global().Get("URL").Call("revokeObjectURL", url)

		doc := js.Global().Get("document")
		a := doc.Call("createElement", "a")
		a.Set("href", url)
		a.Set("download", s.name)
		doc.Get("body").Call("appendChild", a)
		a.Call("click")
		doc.Get("body").Call("removeChild", a)
	})
}

func init() {
	Register("download", func(name string) (Sink, error) {
		return NewDownloadSink(name), nil
	})
}
