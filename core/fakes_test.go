package core

import (
	"errors"

	"gocv.io/x/gocv"

	"github.com/vidgrade/vidgrade/internal/contract"
	"github.com/vidgrade/vidgrade/schema"
)

// fakeStream serves synthetic frames produced by makeFrame. It satisfies
// contract.VideoStream so pipeline tests run without a codec stack.
type fakeStream struct {
	meta      schema.VideoMeta
	makeFrame func(idx int) gocv.Mat
	frames    int
	served    int
	closed    bool
}

func newFakeStream(frames int, fps float64, makeFrame func(idx int) gocv.Mat) *fakeStream {
	return &fakeStream{
		meta: schema.VideoMeta{
			FPS:        fps,
			FrameCount: frames,
			DurationS:  durationS(frames, fps),
		},
		makeFrame: makeFrame,
		frames:    frames,
	}
}

func durationS(frames int, fps float64) float64 {
	if fps <= 0 {
		return 0
	}
	return float64(frames) / fps
}

func (s *fakeStream) Meta() schema.VideoMeta { return s.meta }

func (s *fakeStream) Next() (contract.Frame, bool) {
	if s.served >= s.frames {
		return contract.Frame{}, false
	}
	idx := s.served
	s.served++
	return contract.Frame{Mat: s.makeFrame(idx), Index: idx}, true
}

func (s *fakeStream) Close() error {
	s.closed = true
	return nil
}

// uniformFrame returns a small solid-color BGR frame.
func uniformFrame(b, g, r float64) gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(b, g, r, 0), 48, 64, gocv.MatTypeCV8UC3)
}

// fakeTextEngine replays scripted detections in call order. Once the
// script is exhausted it keeps returning the last entry.
type fakeTextEngine struct {
	script []contract.TextDetection
	errs   []error
	calls  int
	closed bool
}

func (e *fakeTextEngine) Detect(_ contract.Frame) (contract.TextDetection, error) {
	i := e.calls
	e.calls++
	if i < len(e.errs) && e.errs[i] != nil {
		return contract.TextDetection{}, e.errs[i]
	}
	if len(e.script) == 0 {
		return contract.TextDetection{}, nil
	}
	if i >= len(e.script) {
		i = len(e.script) - 1
	}
	return e.script[i], nil
}

func (e *fakeTextEngine) Close() error {
	e.closed = true
	return nil
}

// fakeFaceEngine replays scripted detections in call order. A nil entry
// means no face was found on that frame.
type fakeFaceEngine struct {
	script []*contract.FaceDetection
	failAt int // 1-based call index that errors, 0 for never
	calls  int
}

func (e *fakeFaceEngine) Detect(_ contract.Frame) (*contract.FaceDetection, error) {
	i := e.calls
	e.calls++
	if e.failAt > 0 && e.calls == e.failAt {
		return nil, errors.New("inference failed")
	}
	if i >= len(e.script) {
		return nil, nil
	}
	return e.script[i], nil
}

func (e *fakeFaceEngine) Close() error { return nil }
