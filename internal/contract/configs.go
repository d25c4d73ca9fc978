package contract

import (
	"fmt"
	"os"

	"github.com/vidgrade/vidgrade/schema"
)

// Default values for configuration.
const (
	DefaultSampleFPS    = 1.0
	DefaultOCREveryS    = 5.0
	DefaultMergeGapS    = 2.0
	DefaultMinDurationS = 8.0
	DefaultPrecision    = 1
	MaxPrecision        = 3
)

// Band is a [low, high] range on a raw signal used by band and linear
// score mappings.
type Band struct {
	Lo float64
	Hi float64
}

// SceneWeights are the per-dimension weights for the scene score.
// The sum need not be 1; the aggregator normalizes.
type SceneWeights struct {
	Exposure   float64
	Sharpness  float64
	Contrast   float64
	Saturation float64
	ColorCast  float64
	Logo       float64
}

// EmotionWeights are the weights combining facial sub-signals into
// valence/energy and those into the emotion score.
type EmotionWeights struct {
	Valence    float64 // Valence share of the final score
	Energy     float64 // Energy share of the final score
	Smile      float64 // Smile share of valence
	EyeOpen    float64 // Eye-openness share of valence
	MouthDyn   float64 // Mouth movement share of energy
	HeadMotion float64 // Head motion share of energy
	EyeVar     float64 // Eye-openness delta share of energy
}

// SceneConfig holds every tunable of the scene pipeline.
type SceneConfig struct {
	SampleFPS        float64
	OCREveryS        float64 // Minimum seconds between OCR attempts
	MetricsHeight    int     // Frames are downscaled to this height before metrics
	OCRHeight        int     // Frames are downscaled to this height before OCR
	BrightnessBand   Band    // Ideal HSV.V band (8-bit)
	SaturationBand   Band    // Ideal HSV.S band (8-bit)
	ContrastBand     Band    // P95-P5 gray bandwidth mapped linearly
	SharpnessBand    Band    // Laplacian variance mapped linearly
	ColorCastGood    float64 // Channel-mean imbalance scoring 100
	ColorCastBad     float64 // Channel-mean imbalance scoring 0
	DarkVThresh      float64 // V below this violates brightness_low
	BlurVarlapThresh float64 // Laplacian variance below this violates blur
	MergeGapS        float64
	MinDurationS     float64
	OCROnlyIfSharp   bool    // Skip OCR attempts on frames below OCRMinVarlap
	OCRMinVarlap     float64
	OCRWordConf      float64 // Word confidence cutoff (0-100)
	OCRLang          string  // Tesseract language, e.g. "eng" or "chi_sim+eng"
	OCRPageSegMode   int     // Tesseract page segmentation mode
	BrandKeywords    []string
	AutoscaleEnabled bool
	Weights          SceneWeights
}

// EmotionConfig holds every tunable of the emotion pipeline.
type EmotionConfig struct {
	SampleFPS        float64
	SmoothWindowS    float64 // Moving-average window for valence/energy
	CascadeDir       string  // Directory holding facefinder, puploc and lp* cascades
	FaceQualityMin   float32 // Minimum pigo cluster quality to accept a face
	LowValence       float64
	HighValence      float64
	LowEnergy        float64
	HighEnergy       float64
	MergeGapS        float64
	MinDurationS     float64
	AutoscaleEnabled bool
	Weights          EmotionWeights
}

// Config holds the runtime configuration for an analysis.
// This struct remains the "final, validated" config; it is constructed
// once per invocation and never mutated mid-run.
type Config struct {
	VideoPath  string
	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Detail     bool // Include the performance diagnostics block
	Width      int  // Terminal width override (0 = auto-detect)
	UseColors  bool

	Scene   SceneConfig
	Emotion EmotionConfig
}

// ConfigRawInput holds the raw inputs from all sources (flags, env,
// config file). Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	VideoPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Output      string  `mapstructure:"output"`
	OutputFile  string  `mapstructure:"output-file"`
	Precision   int     `mapstructure:"precision"`
	Detail      bool    `mapstructure:"detail"`
	Width       int     `mapstructure:"width"`
	Color       string  `mapstructure:"color"`
	SampleFPS   float64 `mapstructure:"sample-fps"`
	MergeGap    float64 `mapstructure:"merge-gap"`
	MinDuration float64 `mapstructure:"min-duration"`
	Autoscale   bool    `mapstructure:"autoscale"`

	// --- Scene flags ---
	Keywords      string  `mapstructure:"keywords"`
	OCREvery      float64 `mapstructure:"ocr-every"`
	OCRLang       string  `mapstructure:"ocr-lang"`
	OCRConf       float64 `mapstructure:"ocr-conf"`
	OCRMinSharp   float64 `mapstructure:"ocr-min-sharpness"`
	OCRSkipBlurry bool    `mapstructure:"ocr-skip-blurry"`

	// --- Emotion flags ---
	CascadeDir   string  `mapstructure:"cascade-dir"`
	SmoothWindow float64 `mapstructure:"smooth-window"`

	// --- Config-file-only weight overrides ---
	SceneWeights   *SceneWeightsRaw   `mapstructure:"scene_weights"`
	EmotionWeights *EmotionWeightsRaw `mapstructure:"emotion_weights"`
}

// SceneWeightsRaw holds optional scene weight overrides from the YAML
// config file. Pointers distinguish "unset" from an explicit zero.
type SceneWeightsRaw struct {
	Exposure   *float64 `mapstructure:"exposure"`
	Sharpness  *float64 `mapstructure:"sharpness"`
	Contrast   *float64 `mapstructure:"contrast"`
	Saturation *float64 `mapstructure:"saturation"`
	ColorCast  *float64 `mapstructure:"colorcast"`
	Logo       *float64 `mapstructure:"logo"`
}

// EmotionWeightsRaw holds optional emotion weight overrides from the
// YAML config file.
type EmotionWeightsRaw struct {
	Valence    *float64 `mapstructure:"valence"`
	Energy     *float64 `mapstructure:"energy"`
	Smile      *float64 `mapstructure:"smile"`
	EyeOpen    *float64 `mapstructure:"eye_open"`
	MouthDyn   *float64 `mapstructure:"mouth_dyn"`
	HeadMotion *float64 `mapstructure:"head_motion"`
	EyeVar     *float64 `mapstructure:"eye_var"`
}

// Clone returns a deep copy of the config so per-request overrides
// never leak into the base configuration.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Scene.BrandKeywords = append([]string(nil), c.Scene.BrandKeywords...)
	return &clone
}

// DefaultSceneConfig returns the documented scene defaults.
func DefaultSceneConfig() SceneConfig {
	return SceneConfig{
		SampleFPS:        DefaultSampleFPS,
		OCREveryS:        DefaultOCREveryS,
		MetricsHeight:    480,
		OCRHeight:        640,
		BrightnessBand:   Band{Lo: 120, Hi: 180},
		SaturationBand:   Band{Lo: 60, Hi: 160},
		ContrastBand:     Band{Lo: 40, Hi: 160},
		SharpnessBand:    Band{Lo: 100, Hi: 300},
		ColorCastGood:    10,
		ColorCastBad:     40,
		DarkVThresh:      110,
		BlurVarlapThresh: 120,
		MergeGapS:        DefaultMergeGapS,
		MinDurationS:     DefaultMinDurationS,
		OCROnlyIfSharp:   true,
		OCRMinVarlap:     140,
		OCRWordConf:      60,
		OCRLang:          "eng",
		OCRPageSegMode:   6,
		AutoscaleEnabled: true,
		Weights: SceneWeights{
			Exposure:   0.30,
			Sharpness:  0.25,
			Contrast:   0.15,
			Saturation: 0.10,
			ColorCast:  0.10,
			Logo:       0.10,
		},
	}
}

// DefaultEmotionConfig returns the documented emotion defaults.
func DefaultEmotionConfig() EmotionConfig {
	return EmotionConfig{
		SampleFPS:        DefaultSampleFPS,
		SmoothWindowS:    1.2,
		FaceQualityMin:   5.0,
		LowValence:       0.4,
		HighValence:      0.7,
		LowEnergy:        0.4,
		HighEnergy:       0.7,
		MergeGapS:        DefaultMergeGapS,
		MinDurationS:     4.0,
		AutoscaleEnabled: true,
		Weights: EmotionWeights{
			Valence:    0.55,
			Energy:     0.45,
			Smile:      0.6,
			EyeOpen:    0.4,
			MouthDyn:   0.6,
			HeadMotion: 0.25,
			EyeVar:     0.15,
		},
	}
}

// ProcessAndValidate populates cfg from the raw input, applying defaults
// and rejecting invalid combinations before any video is opened.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if input.VideoPathStr == "" {
		return fmt.Errorf("video path is required")
	}
	if _, err := os.Stat(input.VideoPathStr); err != nil {
		return fmt.Errorf("video path %q is not readable: %w", input.VideoPathStr, err)
	}
	cfg.VideoPath = input.VideoPathStr

	out := schema.OutputMode(input.Output)
	if _, ok := schema.ValidOutputModes[out]; !ok {
		return fmt.Errorf("invalid output mode %q", input.Output)
	}
	cfg.Output = out
	cfg.OutputFile = input.OutputFile
	if out == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	cfg.Precision = input.Precision
	if cfg.Precision < 1 {
		cfg.Precision = 1
	}
	if cfg.Precision > MaxPrecision {
		cfg.Precision = MaxPrecision
	}
	cfg.Detail = input.Detail
	cfg.Width = input.Width

	useColors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = useColors

	cfg.Scene = DefaultSceneConfig()
	cfg.Emotion = DefaultEmotionConfig()

	if input.SampleFPS <= 0 {
		return fmt.Errorf("sample-fps must be positive, got %v", input.SampleFPS)
	}
	cfg.Scene.SampleFPS = input.SampleFPS
	cfg.Emotion.SampleFPS = input.SampleFPS

	if input.MergeGap < 0 {
		return fmt.Errorf("merge-gap must be non-negative, got %v", input.MergeGap)
	}
	cfg.Scene.MergeGapS = input.MergeGap
	cfg.Emotion.MergeGapS = input.MergeGap

	if input.MinDuration < 0 {
		return fmt.Errorf("min-duration must be non-negative, got %v", input.MinDuration)
	}
	cfg.Scene.MinDurationS = input.MinDuration
	cfg.Emotion.MinDurationS = input.MinDuration

	cfg.Scene.AutoscaleEnabled = input.Autoscale
	cfg.Emotion.AutoscaleEnabled = input.Autoscale

	if input.OCREvery <= 0 {
		return fmt.Errorf("ocr-every must be positive, got %v", input.OCREvery)
	}
	cfg.Scene.OCREveryS = input.OCREvery
	cfg.Scene.OCRLang = input.OCRLang
	if input.OCRConf < 0 || input.OCRConf > 100 {
		return fmt.Errorf("ocr-conf must be in [0,100], got %v", input.OCRConf)
	}
	cfg.Scene.OCRWordConf = input.OCRConf
	cfg.Scene.OCRMinVarlap = input.OCRMinSharp
	cfg.Scene.OCROnlyIfSharp = input.OCRSkipBlurry
	cfg.Scene.BrandKeywords = SplitCommaList(input.Keywords)

	cfg.Emotion.CascadeDir = input.CascadeDir
	if input.SmoothWindow < 0 {
		return fmt.Errorf("smooth-window must be non-negative, got %v", input.SmoothWindow)
	}
	cfg.Emotion.SmoothWindowS = input.SmoothWindow

	applySceneWeights(&cfg.Scene.Weights, input.SceneWeights)
	applyEmotionWeights(&cfg.Emotion.Weights, input.EmotionWeights)

	if err := validateWeights(cfg); err != nil {
		return err
	}
	return nil
}

func applySceneWeights(w *SceneWeights, raw *SceneWeightsRaw) {
	if raw == nil {
		return
	}
	if raw.Exposure != nil {
		w.Exposure = *raw.Exposure
	}
	if raw.Sharpness != nil {
		w.Sharpness = *raw.Sharpness
	}
	if raw.Contrast != nil {
		w.Contrast = *raw.Contrast
	}
	if raw.Saturation != nil {
		w.Saturation = *raw.Saturation
	}
	if raw.ColorCast != nil {
		w.ColorCast = *raw.ColorCast
	}
	if raw.Logo != nil {
		w.Logo = *raw.Logo
	}
}

func applyEmotionWeights(w *EmotionWeights, raw *EmotionWeightsRaw) {
	if raw == nil {
		return
	}
	if raw.Valence != nil {
		w.Valence = *raw.Valence
	}
	if raw.Energy != nil {
		w.Energy = *raw.Energy
	}
	if raw.Smile != nil {
		w.Smile = *raw.Smile
	}
	if raw.EyeOpen != nil {
		w.EyeOpen = *raw.EyeOpen
	}
	if raw.MouthDyn != nil {
		w.MouthDyn = *raw.MouthDyn
	}
	if raw.HeadMotion != nil {
		w.HeadMotion = *raw.HeadMotion
	}
	if raw.EyeVar != nil {
		w.EyeVar = *raw.EyeVar
	}
}

func validateWeights(cfg *Config) error {
	sw := cfg.Scene.Weights
	for name, v := range map[string]float64{
		"exposure": sw.Exposure, "sharpness": sw.Sharpness, "contrast": sw.Contrast,
		"saturation": sw.Saturation, "colorcast": sw.ColorCast, "logo": sw.Logo,
	} {
		if v < 0 {
			return fmt.Errorf("scene weight %s must be non-negative, got %v", name, v)
		}
	}
	if sw.Exposure+sw.Sharpness+sw.Contrast+sw.Saturation+sw.ColorCast+sw.Logo <= 0 {
		return fmt.Errorf("scene weights must not all be zero")
	}

	ew := cfg.Emotion.Weights
	for name, v := range map[string]float64{
		"valence": ew.Valence, "energy": ew.Energy, "smile": ew.Smile,
		"eye_open": ew.EyeOpen, "mouth_dyn": ew.MouthDyn,
		"head_motion": ew.HeadMotion, "eye_var": ew.EyeVar,
	} {
		if v < 0 {
			return fmt.Errorf("emotion weight %s must be non-negative, got %v", name, v)
		}
	}
	if ew.Valence+ew.Energy <= 0 {
		return fmt.Errorf("emotion valence/energy weights must not both be zero")
	}
	return nil
}
