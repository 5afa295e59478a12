package recording

import "time"

// Timeslice is how often a media recorder delivers a chunk.
const Timeslice = 1000 * time.Millisecond

// MediaRecorder produces encoded chunks of the canvas.
type MediaRecorder interface {
	// Start begins recording and delivers a chunk every timeslice.
	Start(timeslice time.Duration) error
	// Stop requests the end of the recording. The recorder answers with
	// HandleStop followed by the final chunk.
	Stop() error
	// MimeType is the type of the produced data.
	MimeType() string
}

// Events receives the notifications of a MediaRecorder.
// Recorder implements it.
type Events interface {
	HandleStart()
	HandleStop()
	HandleData(chunk []byte) error
	HandleError(err error)
	HandlePause()
	HandleResume()
}

// EventSource is implemented by media recorders that report to an Events
// value. New attaches the Recorder to such a media recorder.
type EventSource interface {
	Attach(e Events)
}

// Sink stores a finished recording.
type Sink interface {
	Save(data []byte, mimeType string) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(data []byte, mimeType string) error

// Save calls f(data, mimeType).
func (f SinkFunc) Save(data []byte, mimeType string) error { return f(data, mimeType) }
