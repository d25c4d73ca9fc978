package core

import (
	"time"

	"github.com/vidgrade/vidgrade/schema"
)

// perfRecorder accumulates the wall-clock diagnostics for one run.
type perfRecorder struct {
	start time.Time
	meta  schema.VideoMeta
}

func newPerfRecorder(meta schema.VideoMeta) *perfRecorder {
	return &perfRecorder{start: time.Now(), meta: meta}
}

// sceneReport finalizes the diagnostics for a scene run.
func (p *perfRecorder) sceneReport(sampler *frameSampler, det *logoDetector, sampleFPS, ocrEveryS float64, places int) *schema.PerfReport {
	rep := p.baseReport(sampler, sampleFPS, places)
	rep.Sampling.OCREveryS = &ocrEveryS
	rep.Sampling.OCRAttempts = &det.attempts
	rep.Sampling.OCRHits = &det.hits
	if avg := det.avgTimeMS(); avg != nil {
		rounded := schema.Round(*avg, places)
		rep.Timing.AvgOCRMS = &rounded
	}
	return rep
}

// emotionReport finalizes the diagnostics for an emotion run.
func (p *perfRecorder) emotionReport(sampler *frameSampler, tracker *faceTracker, sampleFPS float64, places int) *schema.PerfReport {
	rep := p.baseReport(sampler, sampleFPS, places)
	rep.Sampling.ValidFrames = &tracker.valid
	rate := schema.Round(tracker.detectionRate(), 3)
	rep.Sampling.DetectionRate = &rate
	return rep
}

func (p *perfRecorder) baseReport(sampler *frameSampler, sampleFPS float64, places int) *schema.PerfReport {
	elapsed := time.Since(p.start)

	avgFrameMS := 0.0
	if sampler.sampled > 0 {
		avgFrameMS = float64(elapsed.Milliseconds()) / float64(sampler.sampled)
	}
	return &schema.PerfReport{
		Video: schema.VideoPerf{
			FPS:       schema.Round(p.meta.FPS, 2),
			Frames:    p.meta.FrameCount,
			DurationS: schema.Round(p.meta.DurationS, places),
		},
		Sampling: schema.SamplingPerf{
			SampleFPS:     sampleFPS,
			FramesSampled: sampler.sampled,
		},
		Timing: schema.TimingPerf{
			TotalS:        schema.Round(elapsed.Seconds(), 3),
			AvgPerFrameMS: schema.Round(avgFrameMS, places),
		},
	}
}
