// Package videoclient adapts OpenCV video capture to the stream
// contract used by the analysis pipelines.
package videoclient

import (
	"fmt"
	"os"

	"gocv.io/x/gocv"

	"github.com/vidgrade/vidgrade/internal/contract"
	"github.com/vidgrade/vidgrade/schema"
)

// Client opens video sources for sequential decoding.
type Client struct{}

// New creates a video client.
func New() *Client {
	return &Client{}
}

// Open starts decoding the given source. Byte sources are materialized
// to a temporary file first since the underlying decoder only reads
// from paths and URLs; the file is removed when the stream closes.
func (c *Client) Open(src schema.VideoSource) (contract.VideoStream, error) {
	switch s := src.(type) {
	case schema.PathSource:
		return openPath(s.Path, "")
	case schema.BytesSource:
		f, err := os.CreateTemp("", "vidgrade-*"+s.Ext())
		if err != nil {
			return nil, &schema.DecodeError{Source: "buffer", Reason: "cannot materialize buffer", Err: err}
		}
		tmp := f.Name()
		if _, err := f.Write(s.Data); err != nil {
			f.Close()
			os.Remove(tmp)
			return nil, &schema.DecodeError{Source: "buffer", Reason: "cannot materialize buffer", Err: err}
		}
		if err := f.Close(); err != nil {
			os.Remove(tmp)
			return nil, &schema.DecodeError{Source: "buffer", Reason: "cannot materialize buffer", Err: err}
		}
		stream, err := openPath(tmp, tmp)
		if err != nil {
			os.Remove(tmp)
			return nil, err
		}
		return stream, nil
	default:
		return nil, &schema.InputError{Reason: fmt.Sprintf("unsupported source type %T", src)}
	}
}

func openPath(path, cleanup string) (contract.VideoStream, error) {
	capture, err := gocv.OpenVideoCapture(path)
	if err != nil {
		return nil, &schema.DecodeError{Source: path, Reason: "cannot open video", Err: err}
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, &schema.DecodeError{Source: path, Reason: "video capture is not opened"}
	}

	fps := capture.Get(gocv.VideoCaptureFPS)
	if fps <= 0 {
		capture.Close()
		return nil, &schema.DecodeError{Source: path, Reason: "zero or unknown frame rate"}
	}
	frames := int(capture.Get(gocv.VideoCaptureFrameCount))
	meta := schema.VideoMeta{FPS: fps, FrameCount: frames}
	if frames > 0 {
		meta.DurationS = float64(frames) / fps
	}
	return &stream{capture: capture, meta: meta, cleanup: cleanup}, nil
}

// stream decodes frames one at a time. It is single-consumer; a short
// read near the end of file ends the stream without error, matching
// how real-world containers often under- or over-report frame counts.
type stream struct {
	capture *gocv.VideoCapture
	meta    schema.VideoMeta
	cleanup string
	index   int
	closed  bool
}

func (s *stream) Meta() schema.VideoMeta {
	return s.meta
}

func (s *stream) Next() (contract.Frame, bool) {
	if s.closed {
		return contract.Frame{}, false
	}
	mat := gocv.NewMat()
	if !s.capture.Read(&mat) || mat.Empty() {
		mat.Close()
		return contract.Frame{}, false
	}
	frame := contract.Frame{Mat: mat, Index: s.index}
	s.index++
	return frame, true
}

func (s *stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	err := s.capture.Close()
	if s.cleanup != "" {
		os.Remove(s.cleanup)
	}
	return err
}
