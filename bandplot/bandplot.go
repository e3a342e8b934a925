/*
 * bandplot.go, part of topological-excitons.
 *
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

//Package bandplot draws band structures with gonum/plot.
package bandplot

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/alejandrojuria/topological-excitons/bloch"
	"github.com/alejandrojuria/topological-excitons/kpath"
)

var ErrData = errors.New("bandplot: samples and scan do not match")

func basicBandPlot(title string, scan *kpath.Scan) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "k"
	p.Y.Label.Text = "Energy"
	p.X.Min = scan.Dist[0]
	p.X.Max = scan.Dist[len(scan.Dist)-1]
	if len(scan.Ticks) > 0 {
		ticks := make([]plot.Tick, len(scan.Ticks))
		for i, t := range scan.Ticks {
			ticks[i] = plot.Tick{Value: t.Pos, Label: t.Label}
		}
		p.X.Tick.Marker = plot.ConstantTicks(ticks)
	}
	p.Add(plotter.NewGrid())
	return p
}

//BandPlot draws one line per band of samples along scan, and the Fermi
//energy as a dashed line. The plot is saved as plotname.png.
func BandPlot(samples []*bloch.BandSample, scan *kpath.Scan, fermi float64, title, plotname string) error {
	if len(samples) == 0 || len(samples) != len(scan.Dist) {
		return fmt.Errorf("%w: %d samples for %d points", ErrData, len(samples), len(scan.Dist))
	}
	nbands := len(samples[0].Energies)
	p := basicBandPlot(title, scan)
	for band := 0; band < nbands; band++ {
		pts := make(plotter.XYs, len(samples))
		for i, s := range samples {
			if len(s.Energies) != nbands {
				return fmt.Errorf("%w: sample %d has %d bands, expected %d", ErrData, i, len(s.Energies), nbands)
			}
			pts[i].X = scan.Dist[i]
			pts[i].Y = s.Energies[band]
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		r, g, b := colors(band, nbands)
		l.LineStyle.Color = color.RGBA{R: r, G: g, B: b, A: 255}
		l.LineStyle.Width = vg.Points(1)
		p.Add(l)
	}
	f, err := plotter.NewLine(plotter.XYs{{X: p.X.Min, Y: fermi}, {X: p.X.Max, Y: fermi}})
	if err != nil {
		return err
	}
	f.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	f.LineStyle.Color = color.Gray{Y: 80}
	p.Add(f)
	filename := fmt.Sprintf("%s.png", plotname)
	return p.Save(5*vg.Inch, 4*vg.Inch, filename)
}

//takes hue (0-360), v and s (0-1), returns r,g,b (0-255)
func iHVS2RGB(h, v, s float64) (uint8, uint8, uint8) {
	conversion := 255.0 * v
	if s == 0.0 {
		return uint8(conversion), uint8(conversion), uint8(conversion)
	}
	h = h / 60
	i := math.Floor(h)
	f := h - i
	p := 1 - s
	q := 1 - s*f
	t := 1 - s*(1-f)
	var r, g, b float64
	switch int(i) {
	case 0:
		r, g, b = 1, t, p
	case 1:
		r, g, b = q, 1, p
	case 2:
		r, g, b = p, 1, t
	case 3:
		r, g, b = p, q, 1
	case 4:
		r, g, b = t, p, 1
	default: //case 5
		r, g, b = 1, p, q
	}
	return uint8(r * conversion), uint8(g * conversion), uint8(b * conversion)
}

//colors spreads steps hues from red to violet, skipping the yellows that
//are hard to see on white.
func colors(key, steps int) (r, g, b uint8) {
	norm := 260.0 / float64(steps)
	hp := float64(key)*norm + 20.0
	var h float64
	if hp < 55 {
		h = hp - 20.0
	} else {
		h = hp + 20.0
	}
	return iHVS2RGB(h, 1, 1)
}
