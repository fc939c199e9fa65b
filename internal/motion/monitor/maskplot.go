// Package monitor renders motion-list state for offline inspection.
// It replaces an interactive plotting front end with PNG snapshots of
// the inclusion mask and the generated visitation sequence.
package monitor

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/banshee-data/probe.motion/internal/motion"
)

// MaskPlotter renders two-axis motion lists. Spaces with other
// dimensionalities are rejected; there is no projection support.
type MaskPlotter struct {
	outputDir string

	// Marker sizing; zero values fall back to defaults in Plot.
	GridMarkerRadius  vg.Length
	PointMarkerRadius vg.Length
}

// NewMaskPlotter creates a plotter writing into outputDir, creating the
// directory if needed.
func NewMaskPlotter(outputDir string) (*MaskPlotter, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create plot output dir: %w", err)
	}
	return &MaskPlotter{outputDir: outputDir}, nil
}

// Plot writes a PNG named name.png showing the included grid cells in
// grey and the final ordered point sequence in red, connected in
// visitation order. Returns the written file path.
func (mp *MaskPlotter) Plot(ml *motion.MotionList, name string) (string, error) {
	space := ml.Space()
	if space.NDims() != 2 {
		return "", fmt.Errorf("mask plotting requires a two-axis space, got %d axes", space.NDims())
	}

	gridRadius := mp.GridMarkerRadius
	if gridRadius == 0 {
		gridRadius = vg.Points(1)
	}
	pointRadius := mp.PointMarkerRadius
	if pointRadius == 0 {
		pointRadius = vg.Points(3)
	}

	labels := space.Labels()
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Motion list %q", name)
	p.X.Label.Text = labels[0]
	p.Y.Label.Text = labels[1]

	// Included grid cells.
	mask := ml.Mask()
	xs := space.AxisCoords(0)
	ys := space.AxisCoords(1)
	included := make(plotter.XYs, 0, mask.CountTrue())
	for i := range xs {
		for j := range ys {
			if mask.At([]int{i, j}) {
				included = append(included, plotter.XY{X: xs[i], Y: ys[j]})
			}
		}
	}
	if len(included) > 0 {
		gridScatter, err := plotter.NewScatter(included)
		if err != nil {
			return "", err
		}
		gridScatter.GlyphStyle.Color = color.Gray{Y: 200}
		gridScatter.GlyphStyle.Radius = gridRadius
		p.Add(gridScatter)
		p.Legend.Add("included", gridScatter)
	}

	// Final sequence, connected in visitation order.
	points := ml.Points()
	sequence := make(plotter.XYs, len(points))
	for i, pt := range points {
		sequence[i] = plotter.XY{X: pt[0], Y: pt[1]}
	}
	if len(sequence) > 0 {
		line, scatter, err := plotter.NewLinePoints(sequence)
		if err != nil {
			return "", err
		}
		line.Color = color.RGBA{R: 220, A: 255}
		line.Width = vg.Points(0.5)
		scatter.GlyphStyle.Color = color.RGBA{R: 220, A: 255}
		scatter.GlyphStyle.Radius = pointRadius
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(line, scatter)
		p.Legend.Add("sequence", scatter)
	}

	outPath := filepath.Join(mp.outputDir, name+".png")
	if err := p.Save(8*vg.Inch, 8*vg.Inch, outPath); err != nil {
		return "", fmt.Errorf("failed to save mask plot: %w", err)
	}
	return outPath, nil
}
