// Package recording captures what a wrend canvas renders.
//
// A Recorder is a two-state machine (idle, recording) sitting between a
// MediaRecorder, which produces encoded chunks, and a Sink, which stores
// the finished recording. The media recorder reports progress through the
// Recorder's Handle methods:
//
//	HandleStart   recording began; the chunk buffer is reset
//	HandleData    a chunk is available
//	HandleStop    recording ended
//	HandleError   the media recorder failed
//	HandlePause   recording paused
//	HandleResume  recording resumed
//
// Chunks are buffered while recording. A chunk that arrives after
// HandleStop completes the recording: the buffer is handed to the sink in
// one piece and cleared.
//
// # Implementations
//
// Under js/wasm, NewBrowserMedia wraps canvas.captureStream() and the DOM
// MediaRecorder; the finished WebM is downloaded as canvas.webm.
//
// Natively, FrameCapture reads frames back from the renderer and packs them
// into an lz4 stream of raw RGBA frames, and FileSink writes the result to
// a directory. DecodeFrames reads such a stream back.
//
// # Sinks
//
// Sinks are registered by name following the database/sql driver pattern,
// so callers can pick one from configuration:
//
//	sink, err := recording.NewSink("file", "/tmp/frames")
package recording
