package core

import "github.com/vidgrade/vidgrade/schema"

// sceneTimeline collects per-frame scene samples in sample order.
// Appends with a timestamp at or before the previous one are dropped,
// so the series stays strictly increasing in t.
type sceneTimeline struct {
	samples []schema.SceneSample
}

func (tl *sceneTimeline) add(s schema.SceneSample) {
	if n := len(tl.samples); n > 0 && s.T <= tl.samples[n-1].T {
		return
	}
	tl.samples = append(tl.samples, s)
}

// rounded returns the series with every field rounded to the given
// number of decimal places, leaving the raw samples untouched.
func (tl *sceneTimeline) rounded(places int) []schema.SceneSample {
	out := make([]schema.SceneSample, len(tl.samples))
	for i, s := range tl.samples {
		out[i] = schema.SceneSample{
			T:          schema.Round(s.T, places),
			Brightness: schema.Round(s.Brightness, places),
			Saturation: schema.Round(s.Saturation, places),
			Sharpness:  schema.Round(s.Sharpness, places),
			Logo:       s.Logo,
			TextArea:   schema.Round(s.TextArea, 4),
		}
	}
	return out
}

// emotionTimeline is the emotion counterpart of sceneTimeline.
type emotionTimeline struct {
	samples []schema.EmotionSample
}

func (tl *emotionTimeline) add(s schema.EmotionSample) {
	if n := len(tl.samples); n > 0 && s.T <= tl.samples[n-1].T {
		return
	}
	tl.samples = append(tl.samples, s)
}

func (tl *emotionTimeline) rounded(places int) []schema.EmotionSample {
	out := make([]schema.EmotionSample, len(tl.samples))
	for i, s := range tl.samples {
		out[i] = schema.EmotionSample{
			T:       schema.Round(s.T, places),
			Valence: schema.Round(s.Valence, 3),
			Energy:  schema.Round(s.Energy, 3),
			Smile:   schema.Round(s.Smile, 3),
			Eye:     schema.Round(s.Eye, 3),
			Mouth:   schema.Round(s.Mouth, 3),
			Head:    schema.Round(s.Head, 3),
			Valid:   s.Valid,
		}
	}
	return out
}
