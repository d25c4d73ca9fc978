package core

import (
	"math"

	"github.com/vidgrade/vidgrade/internal/contract"
)

// Autoscale thresholds in seconds.
const (
	shortVideoS  = 600
	mediumVideoS = 1800
	longVideoS   = 3600
)

// autoscaleScene relaxes the sampling and OCR cadence for long videos
// so wall time grows sublinearly with duration. Explicit user settings
// are only ever made coarser, never finer.
func autoscaleScene(cfg *contract.SceneConfig, durationS float64) {
	if !cfg.AutoscaleEnabled || durationS < shortVideoS {
		return
	}
	switch {
	case durationS < mediumVideoS:
		cfg.SampleFPS = math.Min(cfg.SampleFPS, 0.5)
		cfg.OCREveryS = math.Max(cfg.OCREveryS, 8)
	case durationS < longVideoS:
		cfg.SampleFPS = math.Min(cfg.SampleFPS, 0.33)
		cfg.OCREveryS = math.Max(cfg.OCREveryS, 12)
	default:
		cfg.SampleFPS = math.Min(cfg.SampleFPS, 0.2)
		cfg.OCREveryS = math.Max(cfg.OCREveryS, 20)
	}
}

// autoscaleEmotion lowers the facial sampling rate for long videos.
func autoscaleEmotion(cfg *contract.EmotionConfig, durationS float64) {
	if !cfg.AutoscaleEnabled {
		return
	}
	switch {
	case durationS >= longVideoS:
		cfg.SampleFPS = math.Min(cfg.SampleFPS, 0.5)
	case durationS >= mediumVideoS:
		cfg.SampleFPS = math.Min(cfg.SampleFPS, 1.0)
	}
}

// sampleStride converts a native frame rate and a target sampling rate
// into a frame stride of at least 1.
func sampleStride(videoFPS, sampleFPS float64) int {
	if videoFPS <= 0 || sampleFPS <= 0 {
		return 1
	}
	stride := int(math.Round(videoFPS / sampleFPS))
	if stride < 1 {
		stride = 1
	}
	return stride
}

// frameSampler walks a video stream and yields every stride-th frame
// with its timestamp. Skipped frames are closed immediately so only one
// decoded frame is live at a time.
type frameSampler struct {
	stream  contract.VideoStream
	stride  int
	fps     float64
	decoded int
	sampled int
}

// Callers reject streams with a zero or unknown frame rate before
// sampling, so fps is always positive here.
func newFrameSampler(stream contract.VideoStream, sampleFPS float64) *frameSampler {
	fps := stream.Meta().FPS
	return &frameSampler{
		stream: stream,
		stride: sampleStride(fps, sampleFPS),
		fps:    fps,
	}
}

// next returns the next sampled frame and its timestamp in seconds.
// ok is false once the stream is exhausted.
func (s *frameSampler) next() (contract.Frame, float64, bool) {
	for {
		frame, ok := s.stream.Next()
		if !ok {
			return contract.Frame{}, 0, false
		}
		idx := s.decoded
		s.decoded++
		if idx%s.stride != 0 {
			frame.Mat.Close()
			continue
		}
		s.sampled++
		return frame, float64(idx) / s.fps, true
	}
}
