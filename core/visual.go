package core

import (
	"image"
	"math"

	"gocv.io/x/gocv"

	"github.com/vidgrade/vidgrade/internal/contract"
)

// frameMetrics holds the visual measurements of a single sampled frame.
// Brightness and saturation are 8-bit HSV channel means, contrast is the
// P95-P5 spread of the grayscale histogram, sharpness is the variance of
// the Laplacian, and color cast is the BGR channel-mean imbalance.
type frameMetrics struct {
	Brightness float64
	Saturation float64
	Contrast   float64
	Sharpness  float64
	ColorCast  float64
}

// downscaleToHeight shrinks a frame to the target height, preserving
// aspect ratio. Frames already at or below the target are cloned as-is
// so the caller always owns the returned Mat.
func downscaleToHeight(src gocv.Mat, targetHeight int) gocv.Mat {
	rows, cols := src.Rows(), src.Cols()
	if targetHeight <= 0 || rows <= targetHeight {
		return src.Clone()
	}
	scale := float64(targetHeight) / float64(rows)
	dst := gocv.NewMat()
	gocv.Resize(src, &dst, image.Pt(int(float64(cols)*scale), targetHeight), 0, 0, gocv.InterpolationArea)
	return dst
}

// computeFrameMetrics measures a sampled frame. The frame is downscaled
// first so metric cost does not grow with source resolution.
func computeFrameMetrics(frame contract.Frame, metricsHeight int) frameMetrics {
	small := downscaleToHeight(frame.Mat, metricsHeight)
	defer small.Close()

	var m frameMetrics

	// HSV channel means for brightness and saturation.
	hsv := gocv.NewMat()
	gocv.CvtColor(small, &hsv, gocv.ColorBGRToHSV)
	channels := gocv.Split(hsv)
	if len(channels) == 3 {
		m.Saturation = channels[1].Mean().Val1
		m.Brightness = channels[2].Mean().Val1
	}
	for i := range channels {
		channels[i].Close()
	}
	hsv.Close()

	// Channel-mean imbalance relative to green.
	bgr := small.Mean()
	m.ColorCast = (math.Abs(bgr.Val3-bgr.Val2) + math.Abs(bgr.Val1-bgr.Val2)) / 2

	gray := gocv.NewMat()
	gocv.CvtColor(small, &gray, gocv.ColorBGRToGray)
	defer gray.Close()

	m.Contrast = grayPercentile(gray, 95) - grayPercentile(gray, 5)
	m.Sharpness = laplacianVariance(gray)
	return m
}

// grayPercentile returns the p-th percentile intensity of an 8-bit
// grayscale image using its histogram.
func grayPercentile(gray gocv.Mat, p float64) float64 {
	hist := gocv.NewMat()
	defer hist.Close()
	mask := gocv.NewMat()
	defer mask.Close()
	gocv.CalcHist([]gocv.Mat{gray}, []int{0}, mask, &hist, []int{256}, []float64{0, 256}, false)

	total := float64(gray.Rows() * gray.Cols())
	if total == 0 {
		return 0
	}
	target := total * p / 100
	var cum float64
	for i := 0; i < 256; i++ {
		cum += float64(hist.GetFloatAt(i, 0))
		if cum >= target {
			return float64(i)
		}
	}
	return 255
}

// laplacianVariance is the classic focus measure: variance of the
// Laplacian response over the whole frame.
func laplacianVariance(gray gocv.Mat) float64 {
	lap := gocv.NewMat()
	defer lap.Close()
	gocv.Laplacian(gray, &lap, gocv.MatTypeCV64F, 1, 1, 0, gocv.BorderDefault)
	_, std := lap.MeanStdDev()
	return std.Val1 * std.Val1
}
