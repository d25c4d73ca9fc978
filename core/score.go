// Package core has all the analysis logic for vidgrade.
package core

import (
	"math"

	"github.com/vidgrade/vidgrade/internal/contract"
	"github.com/vidgrade/vidgrade/schema"
)

// Tunable maxima and anchors for logo scoring.
const (
	logoRatioSat   = 0.30 // visibility ratio beyond this saturates
	logoAreaSat    = 0.05 // mean area ratio beyond this saturates
	logoRatioShare = 0.6
	logoAreaShare  = 0.4
)

// bandScore maps an 8-bit channel statistic onto [0,100]. Values inside
// the band score 80-100, peaking at the band center. Outside the band
// the score decays linearly to 0 at the channel extremes.
func bandScore(x float64, b contract.Band) float64 {
	if x >= b.Lo && x <= b.Hi {
		center := (b.Lo + b.Hi) / 2
		half := (b.Hi - b.Lo) / 2
		if half <= 0 {
			return 100
		}
		return 100 - 20*math.Abs(x-center)/half
	}
	if x < b.Lo {
		if b.Lo <= 0 {
			return 0
		}
		return schema.ClampScore(80 * x / b.Lo)
	}
	if b.Hi >= 255 {
		return 0
	}
	return schema.ClampScore(80 * (255 - x) / (255 - b.Hi))
}

// linearScore maps x onto [0,100] linearly between the band edges.
// Used for metrics where more is simply better, like sharpness.
func linearScore(x float64, b contract.Band) float64 {
	if b.Hi <= b.Lo {
		return 100
	}
	return schema.ClampScore(100 * (x - b.Lo) / (b.Hi - b.Lo))
}

// inverseScore maps x onto [0,100] where low is good: 100 at or below
// good, 0 at or beyond bad.
func inverseScore(x, good, bad float64) float64 {
	if bad <= good {
		return 100
	}
	return schema.ClampScore(100 * (bad - x) / (bad - good))
}

// logoScore blends how often the logo is visible with how large it is
// when visible. Both axes saturate so a watermark in every frame maxes
// the dimension out.
func logoScore(visibleRatio, areaMean float64) float64 {
	ratioPart := math.Min(1, visibleRatio/logoRatioSat)
	areaPart := math.Min(1, areaMean/logoAreaSat)
	return 100 * (logoRatioShare*ratioPart + logoAreaShare*areaPart)
}

// sceneStats accumulates per-frame visual metrics across a run. Contrast
// and color cast are not part of the timeline, so they are summed here
// rather than recomputed from it.
type sceneStats struct {
	frames      int
	sumV        float64
	sumS        float64
	sumContrast float64
	sumVarlap   float64
	sumCast     float64

	ocrAttempts int
	logoFrames  int
	sumLogoArea float64
}

func (st *sceneStats) addFrame(m frameMetrics) {
	st.frames++
	st.sumV += m.Brightness
	st.sumS += m.Saturation
	st.sumContrast += m.Contrast
	st.sumVarlap += m.Sharpness
	st.sumCast += m.ColorCast
}

// absorbDetector copies the OCR counters so the logo dimension can be
// aggregated alongside the per-frame stats.
func (st *sceneStats) absorbDetector(d *logoDetector) {
	st.ocrAttempts = d.attempts
	st.logoFrames = d.hits
	st.sumLogoArea = d.hitAreaSum
}

// aggregateScene folds the accumulated stats into a weighted score,
// the signal summary, and the list of dimensions that had no samples.
func aggregateScene(st *sceneStats, cfg *contract.SceneConfig) (float64, map[string]float64, []string) {
	signals := make(map[string]float64)
	var undefined []string

	if st.frames == 0 {
		undefined = []string{
			"exposure", "sharpness", "contrast", "saturation", "colorcast", "logo",
		}
		return 0, signals, undefined
	}

	n := float64(st.frames)
	meanV := st.sumV / n
	meanS := st.sumS / n
	meanContrast := st.sumContrast / n
	meanVarlap := st.sumVarlap / n
	meanCast := st.sumCast / n

	signals[string(schema.SignalBrightness)] = meanV
	signals[string(schema.SignalSaturation)] = meanS
	signals[string(schema.SignalContrast)] = meanContrast
	signals[string(schema.SignalSharpness)] = meanVarlap
	signals[string(schema.SignalColorCast)] = meanCast

	w := cfg.Weights
	parts := []struct {
		name   string
		weight float64
		score  float64
		ok     bool
	}{
		{"exposure", w.Exposure, bandScore(meanV, cfg.BrightnessBand), true},
		{"sharpness", w.Sharpness, linearScore(meanVarlap, cfg.SharpnessBand), true},
		{"contrast", w.Contrast, linearScore(meanContrast, cfg.ContrastBand), true},
		{"saturation", w.Saturation, bandScore(meanS, cfg.SaturationBand), true},
		{"colorcast", w.ColorCast, inverseScore(meanCast, cfg.ColorCastGood, cfg.ColorCastBad), true},
		{"logo", w.Logo, 0, st.ocrAttempts > 0},
	}

	// The logo dimension only exists once OCR actually ran. Otherwise its
	// weight is redistributed across the visual dimensions.
	if st.ocrAttempts > 0 {
		visibleRatio := float64(st.logoFrames) / float64(st.ocrAttempts)
		areaMean := 0.0
		if st.logoFrames > 0 {
			areaMean = st.sumLogoArea / float64(st.logoFrames)
		}
		signals[string(schema.SignalLogoRatio)] = visibleRatio
		signals[string(schema.SignalLogoArea)] = areaMean
		parts[5].score = logoScore(visibleRatio, areaMean)
	}

	var weightSum, raw float64
	for _, p := range parts {
		if !p.ok {
			undefined = append(undefined, p.name)
			continue
		}
		weightSum += p.weight
		raw += p.weight * p.score
	}
	if weightSum == 0 {
		return 0, signals, undefined
	}
	return schema.ClampScore(raw / weightSum), signals, undefined
}

// aggregateEmotion reduces the smoothed valence/energy series into a
// weighted score on [0,100]. Valence and energy live on [0,1] and are
// scaled up here.
func aggregateEmotion(samples []schema.EmotionSample, w contract.EmotionWeights) (float64, map[string]float64, []string) {
	signals := make(map[string]float64)

	var n int
	var sumVal, sumEn float64
	for _, s := range samples {
		if !s.Valid {
			continue
		}
		n++
		sumVal += s.Valence
		sumEn += s.Energy
	}
	if n == 0 {
		return 0, signals, []string{"valence", "energy"}
	}

	meanVal := sumVal / float64(n)
	meanEn := sumEn / float64(n)
	signals[string(schema.SignalValence)] = meanVal
	signals[string(schema.SignalEnergy)] = meanEn

	weightSum := w.Valence + w.Energy
	if weightSum == 0 {
		return 0, signals, nil
	}
	raw := w.Valence*meanVal + w.Energy*meanEn
	return schema.ClampScore(100 * raw / weightSum), signals, nil
}
