package core

import (
	"context"

	"github.com/vidgrade/vidgrade/internal/contract"
	"github.com/vidgrade/vidgrade/schema"
)

// Detection rate below which the emotion result gets an advisory
// low-coverage highlight spanning the whole video.
const minDetectionRate = 0.2

// analyzeScene runs the scene pipeline over an open stream. The stream
// and engine are owned by the caller. Cancellation stops sampling at
// the next frame boundary and returns the partial result marked as
// truncated rather than an error.
func analyzeScene(ctx context.Context, stream contract.VideoStream, engine contract.TextEngine, cfg contract.SceneConfig, precision int, detail bool) (*schema.SceneResult, error) {
	meta := stream.Meta()
	if meta.FPS <= 0 {
		return nil, &schema.DecodeError{Source: "stream", Reason: "zero or unknown frame rate"}
	}
	autoscaleScene(&cfg, meta.DurationS)

	sampler := newFrameSampler(stream, cfg.SampleFPS)
	detector := newLogoDetector(engine, &cfg)
	perf := newPerfRecorder(meta)

	darkDet := newHighlightDetector(schema.ReasonBrightnessLow, cfg.MergeGapS, cfg.MinDurationS)
	blurDet := newHighlightDetector(schema.ReasonBlur, cfg.MergeGapS, cfg.MinDurationS)
	noLogoDet := newHighlightDetector(schema.ReasonNoLogo, cfg.MergeGapS, cfg.MinDurationS)

	var stats sceneStats
	var timeline sceneTimeline
	truncated := false

sampling:
	for {
		select {
		case <-ctx.Done():
			truncated = true
			break sampling
		default:
		}

		frame, t, ok := sampler.next()
		if !ok {
			break
		}

		m := computeFrameMetrics(frame, cfg.MetricsHeight)
		logo, textArea := detector.observe(frame, t, m.Sharpness)
		frame.Mat.Close()

		stats.addFrame(m)
		timeline.add(schema.SceneSample{
			T:          t,
			Brightness: m.Brightness,
			Saturation: m.Saturation,
			Sharpness:  m.Sharpness,
			Logo:       logo,
			TextArea:   textArea,
		})

		darkDet.observe(t, m.Brightness < cfg.DarkVThresh)
		blurDet.observe(t, m.Sharpness < cfg.BlurVarlapThresh)
		noLogoDet.observe(t, !logo)
	}

	stats.absorbDetector(detector)
	score, signals, undefined := aggregateScene(&stats, &cfg)
	for k, v := range signals {
		signals[k] = schema.Round(v, precision)
	}

	highlights := collectHighlights(darkDet, blurDet, noLogoDet)
	if stats.frames == 0 {
		highlights = append(highlights, schema.HighlightWindow{Reason: schema.ReasonNoSamples})
	}

	result := &schema.SceneResult{
		Scene: schema.SceneBlock{
			Score:      schema.Round(score, precision),
			Signals:    signals,
			Undefined:  undefined,
			Timeline:   timeline.rounded(precision),
			Highlights: roundHighlights(highlights, precision),
			Truncated:  truncated,
		},
	}
	if detail {
		result.Perf = perf.sceneReport(sampler, detector, cfg.SampleFPS, cfg.OCREveryS, precision)
	}
	return result, nil
}

// analyzeEmotion runs the facial pipeline. Rule thresholds apply to the
// smoothed valence/energy series, so highlight detection happens in a
// second pass after smoothing.
func analyzeEmotion(ctx context.Context, stream contract.VideoStream, engine contract.FaceEngine, cfg contract.EmotionConfig, precision int, detail bool) (*schema.EmotionResult, error) {
	meta := stream.Meta()
	if meta.FPS <= 0 {
		return nil, &schema.DecodeError{Source: "stream", Reason: "zero or unknown frame rate"}
	}
	autoscaleEmotion(&cfg, meta.DurationS)

	sampler := newFrameSampler(stream, cfg.SampleFPS)
	tracker := newFaceTracker(cfg.Weights)
	perf := newPerfRecorder(meta)

	var timeline emotionTimeline
	truncated := false

sampling:
	for {
		select {
		case <-ctx.Done():
			truncated = true
			break sampling
		default:
		}

		frame, t, ok := sampler.next()
		if !ok {
			break
		}

		det, err := engine.Detect(frame)
		frame.Mat.Close()
		if err != nil {
			// A frame the detector cannot handle is skipped, not fatal.
			det = nil
		}
		timeline.add(tracker.observe(det, t))
	}

	smoothEmotion(timeline.samples, cfg.SmoothWindowS, cfg.SampleFPS)

	lowValDet := newHighlightDetector(schema.ReasonLowValence, cfg.MergeGapS, cfg.MinDurationS)
	lowEnDet := newHighlightDetector(schema.ReasonLowEnergy, cfg.MergeGapS, cfg.MinDurationS)
	highEnDet := newHighlightDetector(schema.ReasonHighEnergy, cfg.MergeGapS, cfg.MinDurationS)
	lowEngDet := newHighlightDetector(schema.ReasonLowEngagement, cfg.MergeGapS, cfg.MinDurationS)
	for _, s := range timeline.samples {
		if !s.Valid {
			continue
		}
		lowValDet.observe(s.T, s.Valence < cfg.LowValence)
		lowEnDet.observe(s.T, s.Energy < cfg.LowEnergy)
		highEnDet.observe(s.T, s.Energy > cfg.HighEnergy)
		lowEngDet.observe(s.T, s.Valence < cfg.LowValence && s.Energy < cfg.LowEnergy)
	}

	score, signals, undefined := aggregateEmotion(timeline.samples, cfg.Weights)
	for k, v := range signals {
		signals[k] = schema.Round(v, 3)
	}

	highlights := collectHighlights(lowValDet, lowEnDet, highEnDet, lowEngDet)
	if sampler.sampled == 0 {
		highlights = append(highlights, schema.HighlightWindow{Reason: schema.ReasonNoSamples})
	} else if tracker.detectionRate() < minDetectionRate {
		highlights = append(highlights, schema.HighlightWindow{
			Start:  0,
			End:    meta.DurationS,
			Reason: schema.ReasonLowCoverage,
		})
	}

	result := &schema.EmotionResult{
		Emotion: schema.EmotionBlock{
			Score:      schema.Round(score, precision),
			Signals:    signals,
			Undefined:  undefined,
			Timeline:   timeline.rounded(precision),
			Highlights: roundHighlights(highlights, precision),
			Truncated:  truncated,
		},
	}
	if detail {
		result.Perf = perf.emotionReport(sampler, tracker, cfg.SampleFPS, precision)
	}
	return result, nil
}
