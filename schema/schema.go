// Package schema has configs, models and constants for all parts of vidgrade.
package schema

// VideoMeta describes a decodable video as reported by the decoder at open time.
type VideoMeta struct {
	FPS        float64 // Native frame rate of the source
	FrameCount int     // Total decoded frame count reported by the container (0 if unknown)
	DurationS  float64 // FrameCount / FPS, 0 if the count is unknown
}

// SceneSample is one scene-timeline entry for a sampled frame.
// Logo and TextArea carry the last cached detector result between OCR attempts.
type SceneSample struct {
	T          float64 `json:"t"`         // Timestamp in seconds from video start
	Brightness float64 `json:"v"`         // HSV value-channel mean (0-255)
	Saturation float64 `json:"s"`         // HSV saturation-channel mean (0-255)
	Sharpness  float64 `json:"varlap"`    // Variance of the Laplacian edge response
	Logo       bool    `json:"logo"`      // Brand keyword visible per last OCR attempt
	TextArea   float64 `json:"text_area"` // Text region area as a fraction of frame area
}

// EmotionSample is one emotion-timeline entry for a sampled frame.
// Valid=false marks a frame where no face was found; the slot stays in the
// timeline for continuity but is excluded from every mean.
type EmotionSample struct {
	T       float64 `json:"t"`
	Valence float64 `json:"valence"` // Expression positivity, 0-1
	Energy  float64 `json:"energy"`  // Engagement from motion and expression, 0-1
	Smile   float64 `json:"smile"`
	Eye     float64 `json:"eye"`
	Mouth   float64 `json:"mouth"`
	Head    float64 `json:"head"`
	Valid   bool    `json:"valid"`
}

// HighlightWindow is a merged, duration-filtered interval where one named
// rule was violated continuously within the configured gap tolerance.
// Windows of the same reason never overlap; windows of different reasons may.
type HighlightWindow struct {
	Start  float64 `json:"start"`
	End    float64 `json:"end"`
	Reason string  `json:"reason"`
}

// SceneBlock is the scene-domain result: bounded score, signal means,
// the full sampled timeline and advisory highlight windows.
type SceneBlock struct {
	Score      float64            `json:"score"`
	Signals    map[string]float64 `json:"signals"`
	Undefined  []string           `json:"undefined,omitempty"` // Signals with zero underlying samples
	Timeline   []SceneSample      `json:"timeline"`
	Highlights []HighlightWindow  `json:"highlights"`
	Truncated  bool               `json:"truncated,omitempty"` // Set when cancellation cut sampling short
}

// EmotionBlock is the emotion-domain result.
type EmotionBlock struct {
	Score      float64            `json:"score"`
	Signals    map[string]float64 `json:"signals"`
	Undefined  []string           `json:"undefined,omitempty"`
	Timeline   []EmotionSample    `json:"timeline"`
	Highlights []HighlightWindow  `json:"highlights"`
	Truncated  bool               `json:"truncated,omitempty"`
}

// SceneResult is the full scene analysis payload returned to callers.
type SceneResult struct {
	Scene SceneBlock  `json:"scene"`
	Perf  *PerfReport `json:"perf,omitempty"`
}

// EmotionResult is the full emotion analysis payload returned to callers.
type EmotionResult struct {
	Emotion EmotionBlock `json:"emotion"`
	Perf    *PerfReport  `json:"perf,omitempty"`
}

// PerfReport carries pipeline cost diagnostics. It is purely observational
// and never required for correctness.
type PerfReport struct {
	Video    VideoPerf    `json:"video"`
	Sampling SamplingPerf `json:"sampling"`
	Timing   TimingPerf   `json:"timing"`
}

// VideoPerf records source metadata captured once at open time.
type VideoPerf struct {
	FPS       float64 `json:"fps"`
	Frames    int     `json:"frames"`
	DurationS float64 `json:"duration_s"`
}

// SamplingPerf records sampling and detector counters. Detector-specific
// counters are pointers so each domain only reports its own.
type SamplingPerf struct {
	SampleFPS     float64  `json:"sample_fps"`
	FramesSampled int      `json:"frames_sampled"`
	OCREveryS     *float64 `json:"ocr_every_s,omitempty"`
	OCRAttempts   *int     `json:"ocr_attempts,omitempty"`
	OCRHits       *int     `json:"ocr_hits,omitempty"`
	ValidFrames   *int     `json:"valid_frames,omitempty"`
	DetectionRate *float64 `json:"detection_rate,omitempty"`
}

// TimingPerf records wall-clock cost of the run.
type TimingPerf struct {
	TotalS        float64  `json:"total_s"`
	AvgPerFrameMS float64  `json:"avg_per_frame_ms"`
	AvgOCRMS      *float64 `json:"avg_ocr_ms,omitempty"`
}
