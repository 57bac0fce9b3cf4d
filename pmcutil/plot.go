/*
Copyright © 2021 the pmcpost authors.
This file is part of pmcpost.

pmcpost is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

pmcpost is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with pmcpost.  If not, see <http://www.gnu.org/licenses/>.
*/

package pmcutil

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// diameterHistogram writes to w a PNG image of the number-weighted
// distribution of particle diameters [m] on a log scale.
func diameterHistogram(w io.Writer, diam, numConc []float64, bins int, title string) error {
	if bins < 1 {
		return fmt.Errorf("pmcpost: number of histogram bins must be >0 but is %d", bins)
	}
	xys := make(plotter.XYs, 0, len(diam))
	for i, d := range diam {
		if d > 0 {
			xys = append(xys, struct{ X, Y float64 }{X: math.Log10(d), Y: numConc[i]})
		}
	}
	if len(xys) == 0 {
		return fmt.Errorf("pmcpost: no particles with positive diameters to plot")
	}
	p, err := plot.New()
	if err != nil {
		return err
	}
	h, err := plotter.NewHistogram(xys, bins)
	if err != nil {
		return err
	}
	p.Add(h)
	p.Title.Text = title
	p.X.Label.Text = "log10(diameter / m)"
	p.Y.Label.Text = "number concentration (m-3)"

	img := vgimg.New(5*vg.Inch, 4*vg.Inch)
	dc := draw.New(img)
	p.Draw(dc)
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("pmcpost: writing plot: %v", err)
	}
	return nil
}
