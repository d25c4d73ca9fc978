package core

import (
	"math"

	"github.com/vidgrade/vidgrade/internal/contract"
	"github.com/vidgrade/vidgrade/schema"
)

// Calibration bands mapping raw geometric ratios onto [0,1]. The bands
// were fit against typical webcam and presenter footage; ratios below
// the band floor read as 0, above the ceiling as 1.
var (
	smileBand    = contract.Band{Lo: 0.30, Hi: 0.65}
	eyeOpenBand  = contract.Band{Lo: 0.12, Hi: 0.28}
	mouthDynBand = contract.Band{Lo: 0.02, Hi: 0.12}
	eyeVarBand   = contract.Band{Lo: 0.01, Hi: 0.06}
	headBand     = contract.Band{Lo: 0.005, Hi: 0.05}
)

// normBand maps x linearly onto [0,1] within the band.
func normBand(x float64, b contract.Band) float64 {
	if b.Hi <= b.Lo {
		return 0
	}
	return schema.Clamp01((x - b.Lo) / (b.Hi - b.Lo))
}

// faceTracker turns raw face geometry into per-sample emotion signals.
// It keeps the previous valid observation so dynamics (mouth movement,
// head motion, eye variation) can be measured frame to frame.
type faceTracker struct {
	weights contract.EmotionWeights

	havePrev    bool
	prevCenterX float64
	prevCenterY float64
	prevMouth   float64
	prevEye     float64

	frames int
	valid  int
}

func newFaceTracker(w contract.EmotionWeights) *faceTracker {
	return &faceTracker{weights: w}
}

// observe folds one detection into an emotion sample at time t. A nil
// detection means no face was found; the sample is recorded as invalid
// and the tracker state is left untouched so dynamics resume from the
// last valid frame.
func (tr *faceTracker) observe(det *contract.FaceDetection, t float64) schema.EmotionSample {
	tr.frames++
	if det == nil {
		return schema.EmotionSample{T: t, Valid: false}
	}
	tr.valid++

	var headMotion, mouthDyn, eyeVar float64
	if tr.havePrev && det.Size > 0 {
		dx := det.CenterX - tr.prevCenterX
		dy := det.CenterY - tr.prevCenterY
		headMotion = math.Hypot(dx, dy) / det.Size
		mouthDyn = math.Abs(det.MouthOpen - tr.prevMouth)
		eyeVar = math.Abs(det.EyeOpen - tr.prevEye)
	}
	tr.havePrev = true
	tr.prevCenterX = det.CenterX
	tr.prevCenterY = det.CenterY
	tr.prevMouth = det.MouthOpen
	tr.prevEye = det.EyeOpen

	w := tr.weights
	valence := weightedPair(
		normBand(det.Smile, smileBand), w.Smile,
		normBand(det.EyeOpen, eyeOpenBand), w.EyeOpen,
	)
	energy := weightedTriple(
		normBand(mouthDyn, mouthDynBand), w.MouthDyn,
		normBand(headMotion, headBand), w.HeadMotion,
		normBand(eyeVar, eyeVarBand), w.EyeVar,
	)

	return schema.EmotionSample{
		T:       t,
		Valence: valence,
		Energy:  energy,
		Smile:   det.Smile,
		Eye:     det.EyeOpen,
		Mouth:   det.MouthOpen,
		Head:    headMotion,
		Valid:   true,
	}
}

// detectionRate is the share of sampled frames with a usable face.
func (tr *faceTracker) detectionRate() float64 {
	if tr.frames == 0 {
		return 0
	}
	return float64(tr.valid) / float64(tr.frames)
}

func weightedPair(a, wa, b, wb float64) float64 {
	sum := wa + wb
	if sum <= 0 {
		return 0
	}
	return (wa*a + wb*b) / sum
}

func weightedTriple(a, wa, b, wb, c, wc float64) float64 {
	sum := wa + wb + wc
	if sum <= 0 {
		return 0
	}
	return (wa*a + wb*b + wc*c) / sum
}

// smoothEmotion applies a trailing moving average to the valence and
// energy series, touching only valid samples. The window is expressed
// in seconds and converted to a sample count at the effective rate.
func smoothEmotion(samples []schema.EmotionSample, windowS, sampleFPS float64) {
	k := int(math.Round(windowS * sampleFPS))
	if k < 2 {
		return
	}

	type point struct{ valence, energy float64 }
	var window []point
	for i := range samples {
		if !samples[i].Valid {
			continue
		}
		window = append(window, point{samples[i].Valence, samples[i].Energy})
		if len(window) > k {
			window = window[1:]
		}
		var sumV, sumE float64
		for _, p := range window {
			sumV += p.valence
			sumE += p.energy
		}
		n := float64(len(window))
		samples[i].Valence = sumV / n
		samples[i].Energy = sumE / n
	}
}
