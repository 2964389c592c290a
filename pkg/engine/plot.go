package engine

import (
	"errors"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// WritePlot draws best and average raw fitness against generation and saves
// it as an image; the format follows the extension of path. Generations whose
// value is not finite are left out of that line.
func WritePlot(path, title string, reports []GenerationReport) error {
	if len(reports) == 0 {
		return errors.New("plot: no generations to draw")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Generation"
	p.Y.Label.Text = "Fitness (RMSE)"

	var bestPts, avgPts plotter.XYs
	for _, r := range reports {
		gen := float64(r.Generation)
		if v := float64(r.BestFitness); isFinite(v) {
			bestPts = append(bestPts, plotter.XY{X: gen, Y: v})
		}
		if v := float64(r.AvgFitness); isFinite(v) {
			avgPts = append(avgPts, plotter.XY{X: gen, Y: v})
		}
	}

	if len(bestPts) > 0 {
		bestLine, err := plotter.NewLine(bestPts)
		if err != nil {
			return err
		}
		p.Add(bestLine)
		p.Legend.Add("best", bestLine)
	}
	if len(avgPts) > 0 {
		avgLine, err := plotter.NewLine(avgPts)
		if err != nil {
			return err
		}
		avgLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(avgLine)
		p.Legend.Add("avg", avgLine)
	}
	p.Legend.Top = true

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
