// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"os"
	"path/filepath"

	"github.com/cpmech/beamdefl/fem"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// PltEntity stores all data for a plot entity (X vs Y)
type PltEntity struct {
	Alias string    // alias; used in legend
	X     []float64 // x-values
	Y     []float64 // y-values
}

// ConvEntities returns the deflection vs element size of a refinement study
func ConvEntities(res []*fem.Result) (ent *PltEntity) {
	ent = &PltEntity{Alias: "FE"}
	for _, r := range res {
		ent.X = append(ent.X, r.Prob.Mesh.Maxh)
		ent.Y = append(ent.Y, r.Deflection)
	}
	return
}

// Draw saves a plot of entities, plus horizontal reference lines, to dirout/fn. The
// format follows the extension of fn; e.g. ".png", ".svg" or ".pdf"
func Draw(dirout, fn, title, xlbl, ylbl string, ents []*PltEntity, refs map[string]float64) (err error) {

	// plot
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlbl
	p.Y.Label.Text = ylbl
	p.Legend.Top = true

	// data
	for _, e := range ents {
		if len(e.X) != len(e.Y) {
			return chk.Err("Draw: lengths of x- and y-series are different. len(x)=%d, len(y)=%d", len(e.X), len(e.Y))
		}
		xys := make(plotter.XYs, len(e.X))
		for i := range e.X {
			xys[i].X, xys[i].Y = e.X[i], e.Y[i]
		}
		err = plotutil.AddLinePoints(p, e.Alias, xys)
		if err != nil {
			return
		}
	}

	// references
	for k, label := range utl.StrFltMapSort(refs) {
		v := refs[label]
		f := plotter.NewFunction(func(float64) float64 { return v })
		f.Color = plotutil.Color(len(ents) + k)
		f.Dashes = plotutil.Dashes(1)
		p.Add(f)
		p.Legend.Add(label, f)
	}

	// save
	err = os.MkdirAll(dirout, 0755)
	if err != nil {
		return chk.Err("Draw: cannot create directory: %v", err)
	}
	return p.Save(5*vg.Inch, 4*vg.Inch, filepath.Join(dirout, fn))
}
