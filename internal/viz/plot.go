package viz

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SaveWeightsPNG writes a bar chart of bucket weights. The image format
// follows the file extension.
func SaveWeightsPNG(path, title string, weights []float64) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "bucket"
	p.Y.Label.Text = "accumulated weight"

	bars, err := plotter.NewBarChart(plotter.Values(weights), vg.Points(14))
	if err != nil {
		return err
	}
	p.Add(bars)

	names := make([]string, len(weights))
	for i := range names {
		names[i] = fmt.Sprintf("%d", i)
	}
	p.NominalX(names...)

	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}

// SaveTracePNG writes the classification stream as a step line.
func SaveTracePNG(path, title string, stream []int) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "step"
	p.Y.Label.Text = "bucket"

	pts := make(plotter.XYs, len(stream))
	for i, c := range stream {
		pts[i].X = float64(i)
		pts[i].Y = float64(c)
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.StepStyle = plotter.PostStep
	p.Add(line, plotter.NewGrid())

	return p.Save(10*vg.Inch, 4*vg.Inch, path)
}
