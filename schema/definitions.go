package schema

// SignalDefinition documents one reportable signal or highlight reason.
type SignalDefinition struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"` // "signal" or "highlight_reason"
	Analysis    string `json:"analysis"`
	Description string `json:"description"`
}

// AllSignalDefinitions lists every signal and highlight reason the
// analyses can report, for help output and agent discovery.
func AllSignalDefinitions() []SignalDefinition {
	return []SignalDefinition{
		{string(SignalBrightness), "signal", "scene", "Mean HSV value channel over sampled frames (0-255)."},
		{string(SignalSaturation), "signal", "scene", "Mean HSV saturation channel over sampled frames (0-255)."},
		{string(SignalContrast), "signal", "scene", "Mean P95-P5 spread of the grayscale histogram."},
		{string(SignalSharpness), "signal", "scene", "Mean variance of the Laplacian edge response."},
		{string(SignalColorCast), "signal", "scene", "Mean BGR channel imbalance relative to green."},
		{string(SignalLogoRatio), "signal", "scene", "Fraction of OCR attempts where the logo was visible."},
		{string(SignalLogoArea), "signal", "scene", "Mean text area ratio over frames with a visible logo."},
		{string(SignalValence), "signal", "emotion", "Mean smoothed expression positivity over valid frames (0-1)."},
		{string(SignalEnergy), "signal", "emotion", "Mean smoothed engagement over valid frames (0-1)."},
		{ReasonBrightnessLow, "highlight_reason", "scene", "Sustained span of frames darker than the brightness threshold."},
		{ReasonBlur, "highlight_reason", "scene", "Sustained span of frames below the sharpness threshold."},
		{ReasonNoLogo, "highlight_reason", "scene", "Sustained span without a visible logo."},
		{ReasonLowValence, "highlight_reason", "emotion", "Sustained span of low expression positivity."},
		{ReasonLowEnergy, "highlight_reason", "emotion", "Sustained span of low engagement."},
		{ReasonHighEnergy, "highlight_reason", "emotion", "Sustained span of very high engagement."},
		{ReasonLowEngagement, "highlight_reason", "emotion", "Sustained span where both valence and energy are low."},
		{ReasonLowCoverage, "highlight_reason", "emotion", "Advisory: a face was found in under 20% of sampled frames."},
		{ReasonNoSamples, "highlight_reason", "both", "Advisory: no frames could be decoded from the source."},
	}
}
