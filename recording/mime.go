package recording

import "strings"

// WebM MIME types in order of preference.
const (
	MimeVP9  = "video/webm;codecs=vp9"
	MimeVP8  = "video/webm;codecs=vp8"
	MimeWebM = "video/webm"
)

// MimeFrames is the type of the lz4 frame streams written by FrameCapture.
const MimeFrames = "application/x-wrend-frames+lz4"

var preferred = []string{MimeVP9, MimeVP8, MimeWebM}

// SelectMimeType returns the first preferred WebM type the platform
// supports, falling back to plain video/webm.
func SelectMimeType(supported func(mimeType string) bool) string {
	for _, m := range preferred {
		if supported != nil && supported(m) {
			return m
		}
	}
	return MimeWebM
}

// Extension returns the file extension for a MIME type.
func Extension(mimeType string) string {
	base, _, _ := strings.Cut(mimeType, ";")
	switch strings.TrimSpace(base) {
	case "video/webm":
		return "webm"
	case "video/mp4":
		return "mp4"
	case MimeFrames:
		return "frames.lz4"
	}
	return "bin"
}
