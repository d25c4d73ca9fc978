// Package faceclient adapts the pigo face and landmark detectors to
// the face contract used by the emotion pipeline.
package faceclient

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	pigo "github.com/esimov/pigo/core"
	"gocv.io/x/gocv"

	"github.com/vidgrade/vidgrade/internal/contract"
	"github.com/vidgrade/vidgrade/schema"
)

// Landmark cascade names from the pigo distribution. The mouth corner
// cascade is mirrored to find both corners.
const (
	lpMouthCorner = "lp84"
	lpUpperLip    = "lp82"
	lpLowerLip    = "lp93"
	lpUpperEyelid = "lp46"
	lpLowerEyelid = "lp44"
)

const perturbs = 50

// Options configures the face engine.
type Options struct {
	CascadeDir string  // Directory with facefinder, puploc and lps/ cascades
	QualityMin float32 // Detections below this cluster quality are dropped
}

// Engine runs the pigo cascades on grayscale frames. Not safe for
// concurrent use.
type Engine struct {
	classifier *pigo.Pigo
	plc        *pigo.PuplocCascade
	flpcs      map[string][]*pigo.FlpCascade
	qualityMin float32
}

// New loads the binary cascades from disk. Any missing or corrupt
// cascade makes the whole engine unavailable.
func New(opts Options) (*Engine, error) {
	dir := opts.CascadeDir
	if dir == "" {
		dir = "cascade"
	}

	faceBytes, err := os.ReadFile(filepath.Join(dir, "facefinder"))
	if err != nil {
		return nil, &schema.ModelUnavailableError{Model: "pigo/facefinder", Err: err}
	}
	classifier, err := pigo.NewPigo().Unpack(faceBytes)
	if err != nil {
		return nil, &schema.ModelUnavailableError{Model: "pigo/facefinder", Err: err}
	}

	puplocBytes, err := os.ReadFile(filepath.Join(dir, "puploc"))
	if err != nil {
		return nil, &schema.ModelUnavailableError{Model: "pigo/puploc", Err: err}
	}
	plc, err := pigo.NewPuplocCascade().UnpackCascade(puplocBytes)
	if err != nil {
		return nil, &schema.ModelUnavailableError{Model: "pigo/puploc", Err: err}
	}

	flpcs, err := plc.ReadCascadeDir(filepath.Join(dir, "lps"))
	if err != nil {
		return nil, &schema.ModelUnavailableError{Model: "pigo/lps", Err: err}
	}
	for _, name := range []string{lpMouthCorner, lpUpperLip, lpLowerLip, lpUpperEyelid, lpLowerEyelid} {
		if len(flpcs[name]) == 0 {
			return nil, &schema.ModelUnavailableError{
				Model: "pigo/lps",
				Err:   fmt.Errorf("landmark cascade %s missing", name),
			}
		}
	}

	return &Engine{
		classifier: classifier,
		plc:        plc,
		flpcs:      flpcs,
		qualityMin: opts.QualityMin,
	}, nil
}

// Detect looks for the strongest face in the frame and measures its
// geometry. A nil detection with a nil error means no usable face.
func (e *Engine) Detect(frame contract.Frame) (*contract.FaceDetection, error) {
	gray := gocv.NewMat()
	gocv.CvtColor(frame.Mat, &gray, gocv.ColorBGRToGray)
	defer gray.Close()

	rows, cols := gray.Rows(), gray.Cols()
	pixels := gray.ToBytes()
	imgParams := pigo.ImageParams{
		Pixels: pixels,
		Rows:   rows,
		Cols:   cols,
		Dim:    cols,
	}

	maxSize := rows
	if cols < rows {
		maxSize = cols
	}
	dets := e.classifier.RunCascade(pigo.CascadeParams{
		MinSize:     20,
		MaxSize:     maxSize,
		ShiftFactor: 0.1,
		ScaleFactor: 1.1,
		ImageParams: imgParams,
	}, 0.0)
	dets = e.classifier.ClusterDetections(dets, 0.2)

	face, ok := strongest(dets, e.qualityMin)
	if !ok {
		return nil, nil
	}

	scale := float32(face.Scale)
	leftEye := e.plc.RunDetector(pigo.Puploc{
		Row:      face.Row - int(0.075*scale),
		Col:      face.Col - int(0.175*scale),
		Scale:    scale * 0.25,
		Perturbs: perturbs,
	}, imgParams, 0.0, false)
	rightEye := e.plc.RunDetector(pigo.Puploc{
		Row:      face.Row - int(0.075*scale),
		Col:      face.Col + int(0.185*scale),
		Scale:    scale * 0.25,
		Perturbs: perturbs,
	}, imgParams, 0.0, false)
	if leftEye == nil || rightEye == nil || leftEye.Row <= 0 || rightEye.Row <= 0 {
		return nil, nil
	}

	eyeDist := dist(float64(leftEye.Col), float64(leftEye.Row), float64(rightEye.Col), float64(rightEye.Row))
	if eyeDist <= 0 {
		return nil, nil
	}

	det := &contract.FaceDetection{
		CenterX: float64(face.Col),
		CenterY: float64(face.Row),
		Size:    float64(face.Scale),
	}

	mouthL, okL := e.landmark(lpMouthCorner, leftEye, rightEye, imgParams, false)
	mouthR, okR := e.landmark(lpMouthCorner, leftEye, rightEye, imgParams, true)
	if okL && okR {
		det.Smile = dist(mouthL.x, mouthL.y, mouthR.x, mouthR.y) / eyeDist
	}

	upperLip, okU := e.landmark(lpUpperLip, leftEye, rightEye, imgParams, false)
	lowerLip, okLo := e.landmark(lpLowerLip, leftEye, rightEye, imgParams, false)
	if okU && okLo {
		det.MouthOpen = math.Abs(lowerLip.y-upperLip.y) / eyeDist
	}

	upperLid, okUl := e.landmark(lpUpperEyelid, leftEye, rightEye, imgParams, false)
	lowerLid, okLl := e.landmark(lpLowerEyelid, leftEye, rightEye, imgParams, false)
	if okUl && okLl {
		det.EyeOpen = math.Abs(lowerLid.y-upperLid.y) / eyeDist
	}

	return det, nil
}

// Close is a no-op; the cascades are plain memory.
func (e *Engine) Close() error {
	return nil
}

type point struct {
	x, y float64
}

func (e *Engine) landmark(name string, leftEye, rightEye *pigo.Puploc, imgParams pigo.ImageParams, flip bool) (point, bool) {
	flpc := e.flpcs[name][0]
	flp := flpc.GetLandmarkPoint(leftEye, rightEye, imgParams, perturbs, flip)
	if flp == nil || flp.Row <= 0 || flp.Col <= 0 {
		return point{}, false
	}
	return point{x: float64(flp.Col), y: float64(flp.Row)}, true
}

func strongest(dets []pigo.Detection, qualityMin float32) (pigo.Detection, bool) {
	var best pigo.Detection
	found := false
	for _, d := range dets {
		if d.Q < qualityMin {
			continue
		}
		if !found || d.Q > best.Q {
			best = d
			found = true
		}
	}
	return best, found
}

func dist(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}
