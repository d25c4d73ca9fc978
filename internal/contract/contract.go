// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"github.com/vidgrade/vidgrade/schema"
	"gocv.io/x/gocv"
)

// Frame is one decoded video frame. The Mat is owned transiently by the
// sampling loop and must be closed after signal extraction.
type Frame struct {
	Mat   gocv.Mat
	Index int // Sequence index in the native (pre-sampling) frame order
}

// VideoStream is a sequential, single-consumer handle over a decodable
// video. Next depends on the prior read position, so a stream must never
// be iterated by more than one consumer.
type VideoStream interface {
	// Meta returns source metadata captured at open time.
	Meta() schema.VideoMeta

	// Next decodes and returns the next frame. ok=false marks the end of
	// the stream; a mid-video decode failure also ends the stream (tail
	// truncation is not an error).
	Next() (frame Frame, ok bool)

	// Close releases decoder resources and any temporary materialization.
	Close() error
}

// VideoClient opens video sources for decoding. This allows the core
// pipeline logic to be tested without a real codec stack.
type VideoClient interface {
	Open(src schema.VideoSource) (VideoStream, error)
}

// TextDetection is the outcome of one OCR attempt on a frame.
type TextDetection struct {
	Words     []string // Recognized words above the confidence cutoff
	AreaRatio float64  // Total text box area as a fraction of frame area
}

// TextEngine runs optical text recognition on single frames. An engine is
// stateless per call but not necessarily safe for concurrent reentrant
// calls; each pipeline instance owns its own.
type TextEngine interface {
	Detect(f Frame) (TextDetection, error)
	Close() error
}

// FaceDetection is the raw geometric outcome of facial-landmark inference
// on a frame. Ratios are relative to the inter-eye distance and are
// calibrated into 0-1 signals by the pipeline, not the engine.
type FaceDetection struct {
	Smile     float64 // Mouth-corner width / inter-eye distance
	EyeOpen   float64 // Mean eyelid gap / inter-eye distance
	MouthOpen float64 // Lip gap / inter-eye distance
	CenterX   float64 // Face box center, pixels
	CenterY   float64
	Size      float64 // Larger face box side, pixels
}

// FaceEngine runs facial-landmark inference on single frames.
// A nil detection with a nil error means no face was found.
type FaceEngine interface {
	Detect(f Frame) (*FaceDetection, error)
	Close() error
}
