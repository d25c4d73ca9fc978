// Package ocrclient adapts the Tesseract OCR engine to the text
// detection contract used by the scene pipeline.
package ocrclient

import (
	"image"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"gocv.io/x/gocv"

	"github.com/vidgrade/vidgrade/internal/contract"
	"github.com/vidgrade/vidgrade/schema"
)

// Options configures the OCR engine.
type Options struct {
	Language    string  // Tesseract language pack, e.g. "eng"
	PageSegMode int     // Tesseract page segmentation mode
	MinWordConf float64 // Words below this confidence (0-100) are discarded
	Height      int     // Frames are downscaled to this height before OCR
}

// Engine wraps a single Tesseract client. It is not safe for
// concurrent use; the pipeline calls Detect from one goroutine.
type Engine struct {
	client *gosseract.Client
	opts   Options
}

// New initializes Tesseract with the configured language. A missing
// language pack or broken installation surfaces as a model error so
// callers can fail the run before decoding anything.
func New(opts Options) (*Engine, error) {
	client := gosseract.NewClient()
	if err := client.SetLanguage(opts.Language); err != nil {
		client.Close()
		return nil, &schema.ModelUnavailableError{Model: "tesseract/" + opts.Language, Err: err}
	}
	if err := client.SetPageSegMode(gosseract.PageSegMode(opts.PageSegMode)); err != nil {
		client.Close()
		return nil, &schema.ModelUnavailableError{Model: "tesseract/" + opts.Language, Err: err}
	}
	return &Engine{client: client, opts: opts}, nil
}

// Detect runs OCR on one frame and reports the recognized words plus
// the fraction of the frame covered by confident text boxes.
func (e *Engine) Detect(frame contract.Frame) (contract.TextDetection, error) {
	processed := e.preprocess(frame.Mat)
	defer processed.Close()

	buf, err := gocv.IMEncode(".png", processed)
	if err != nil {
		return contract.TextDetection{}, err
	}
	defer buf.Close()

	if err := e.client.SetImageFromBytes(buf.GetBytes()); err != nil {
		return contract.TextDetection{}, err
	}
	boxes, err := e.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return contract.TextDetection{}, err
	}

	frameArea := float64(processed.Rows() * processed.Cols())
	var det contract.TextDetection
	for _, box := range boxes {
		if box.Confidence < e.opts.MinWordConf {
			continue
		}
		word := strings.TrimSpace(box.Word)
		if word == "" {
			continue
		}
		det.Words = append(det.Words, word)
		if frameArea > 0 {
			det.AreaRatio += float64(box.Box.Dx()*box.Box.Dy()) / frameArea
		}
	}
	return det, nil
}

// Close releases the Tesseract client.
func (e *Engine) Close() error {
	return e.client.Close()
}

// preprocess converts to grayscale and downscales so OCR cost stays
// flat across source resolutions.
func (e *Engine) preprocess(src gocv.Mat) gocv.Mat {
	gray := gocv.NewMat()
	gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)

	rows, cols := gray.Rows(), gray.Cols()
	if e.opts.Height <= 0 || rows <= e.opts.Height {
		return gray
	}
	scale := float64(e.opts.Height) / float64(rows)
	resized := gocv.NewMat()
	gocv.Resize(gray, &resized, image.Pt(int(float64(cols)*scale), e.opts.Height), 0, 0, gocv.InterpolationArea)
	gray.Close()
	return resized
}
