package relax

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"github.com/atomiclab/atomic/internal/domain"
	"github.com/atomiclab/atomic/internal/errors"
)

// Plot rendering geometry, in pixels.
const (
	plotWidth   = 640
	plotHeight  = 480
	plotMarginL = 70
	plotMarginR = 25
	plotMarginT = 40
	plotMarginB = 50
)

var (
	plotBackground = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	plotAxis       = color.RGBA{R: 60, G: 60, B: 60, A: 255}
	plotGrid       = color.RGBA{R: 225, G: 225, B: 225, A: 255}
	plotLine       = color.RGBA{R: 31, G: 119, B: 180, A: 255}
)

// WriteTrajectoryPNG renders an energy-versus-step line chart for the
// relaxation trajectory and writes it to path.
func WriteTrajectoryPNG(path string, traj *domain.Trajectory) error {
	if traj == nil || len(traj.Samples) == 0 {
		return errors.Wrap(errors.ErrEmptyStructure, "plot trajectory")
	}

	img := image.NewRGBA(image.Rect(0, 0, plotWidth, plotHeight))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: plotBackground}, image.Point{}, draw.Src)

	minE, maxE := traj.Samples[0].Energy, traj.Samples[0].Energy
	for _, sample := range traj.Samples {
		minE = math.Min(minE, sample.Energy)
		maxE = math.Max(maxE, sample.Energy)
	}
	if maxE == minE {
		maxE = minE + 1
	}
	maxStep := traj.Samples[len(traj.Samples)-1].Step
	if maxStep == 0 {
		maxStep = 1
	}

	plotW := plotWidth - plotMarginL - plotMarginR
	plotH := plotHeight - plotMarginT - plotMarginB

	toX := func(step int) int {
		return plotMarginL + int(float64(step)/float64(maxStep)*float64(plotW))
	}
	toY := func(energy float64) int {
		frac := (energy - minE) / (maxE - minE)
		return plotMarginT + plotH - int(frac*float64(plotH))
	}

	// Horizontal gridlines at quarter intervals.
	for k := 0; k <= 4; k++ {
		y := plotMarginT + k*plotH/4
		drawHLine(img, plotMarginL, plotMarginL+plotW, y, plotGrid)
	}

	// Axes.
	drawHLine(img, plotMarginL, plotMarginL+plotW, plotMarginT+plotH, plotAxis)
	drawVLine(img, plotMarginL, plotMarginT, plotMarginT+plotH, plotAxis)

	prevX, prevY := toX(traj.Samples[0].Step), toY(traj.Samples[0].Energy)
	for _, sample := range traj.Samples[1:] {
		x, y := toX(sample.Step), toY(sample.Energy)
		drawSegment(img, prevX, prevY, x, y, plotLine)
		prevX, prevY = x, y
	}

	f, err := os.Create(path) //nolint:gosec // artifact path is orchestrator-controlled
	if err != nil {
		return errors.Wrapf(err, "plot trajectory %s", path)
	}
	defer func() { _ = f.Close() }()

	if err := png.Encode(f, img); err != nil {
		return errors.Wrap(err, "plot trajectory: encode png")
	}
	return errors.Wrapf(f.Close(), "plot trajectory %s", path)
}

func drawHLine(img *image.RGBA, x0, x1, y int, c color.Color) {
	for x := x0; x <= x1; x++ {
		img.Set(x, y, c)
	}
}

func drawVLine(img *image.RGBA, x, y0, y1 int, c color.Color) {
	for y := y0; y <= y1; y++ {
		img.Set(x, y, c)
	}
}

// drawSegment rasterizes a line with the integer Bresenham walk.
func drawSegment(img *image.RGBA, x0, y0, x1, y1 int, c color.Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	errAcc := dx + dy

	for {
		img.Set(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * errAcc
		if e2 >= dy {
			errAcc += dy
			x0 += sx
		}
		if e2 <= dx {
			errAcc += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// TrajectorySummary formats a short human-readable convergence line for
// log output.
func TrajectorySummary(traj *domain.Trajectory) string {
	if traj == nil || len(traj.Samples) == 0 {
		return "no trajectory"
	}
	state := "not converged"
	if traj.Converged {
		state = "converged"
	}
	return fmt.Sprintf("%d steps, %s, energy %.4f -> %.4f eV",
		len(traj.Samples)-1, state, traj.InitialEnergy(), traj.FinalEnergy())
}
