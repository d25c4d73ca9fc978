package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// AnalysisKind represents which pipeline produced a result.
	AnalysisKind string

	// SignalKey represents keys used in signal maps and score breakdowns.
	SignalKey string
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	CSVOut     OutputMode = "csv"
	ParquetOut OutputMode = "parquet"
)

// All analysis kinds supported.
const (
	SceneKind   AnalysisKind = "scene"
	EmotionKind AnalysisKind = "emotion"
)

// Scene signal keys reported in SceneBlock.Signals.
const (
	SignalBrightness SignalKey = "brightness_mean"
	SignalContrast   SignalKey = "contrast_bw"
	SignalSharpness  SignalKey = "sharpness_varlap"
	SignalSaturation SignalKey = "saturation_mean"
	SignalColorCast  SignalKey = "color_cast"
	SignalLogoRatio  SignalKey = "logo_visible_ratio"
	SignalLogoArea   SignalKey = "logo_area_mean"
)

// Emotion signal keys reported in EmotionBlock.Signals.
const (
	SignalValence SignalKey = "valence_mean"
	SignalEnergy  SignalKey = "energy_mean"
)

// Highlight reasons emitted by the scene pipeline.
const (
	ReasonBrightnessLow = "brightness_low"
	ReasonBlur          = "blur"
	ReasonNoLogo        = "no_logo"
)

// Highlight reasons emitted by the emotion pipeline.
const (
	ReasonLowValence    = "low_valence"
	ReasonLowEnergy     = "low_energy"
	ReasonHighEnergy    = "high_energy"
	ReasonLowEngagement = "low_engagement"
	ReasonLowCoverage   = "low_detection_coverage"
	ReasonNoSamples     = "no_samples_decoded"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	JSONOut:    {},
	CSVOut:     {},
	ParquetOut: {},
}
