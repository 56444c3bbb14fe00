// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements the reporting of deflection analyses: result lines,
// VTU files for visualisation and plots of refinement studies
package out

import (
	"bytes"
	goio "io"

	"github.com/cpmech/beamdefl/ana"
	"github.com/cpmech/beamdefl/fem"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// Renderer writes a visualisation artifact of a result and returns its handle; e.g. a filename
type Renderer interface {
	Render(res *fem.Result) (handle string, err error)
}

// ResultLine returns the line reporting the deflection
func ResultLine(deflection float64) string {
	return io.Sf("Numerical Y deflection:  %.9f m", deflection)
}

// Analytic returns the beam-theory solution corresponding to a result
func Analytic(res *fem.Result) (sol *ana.Cantilever, err error) {
	p := res.Prob
	pstrain := 1.0
	if p.Pstress {
		pstrain = 0
	}
	sol = new(ana.Cantilever)
	err = sol.Init(dbf.Params{
		&dbf.P{N: "L", V: p.Beam.Length},
		&dbf.P{N: "H", V: p.Beam.Height},
		&dbf.P{N: "W", V: p.Beam.Width},
		&dbf.P{N: "F", V: p.Beam.Force},
		&dbf.P{N: "E", V: p.Mat.E},
		&dbf.P{N: "nu", V: p.Mat.Nu},
		&dbf.P{N: "pstrain", V: pstrain},
	})
	if err != nil {
		return nil, err
	}
	return
}

// Report writes the beam-theory estimates next to the numerical deflection.
// The result line itself is written by the caller
func Report(w goio.Writer, res *fem.Result) (err error) {
	sol, err := Analytic(res)
	if err != nil {
		return
	}
	var b bytes.Buffer
	io.Ff(&b, "Euler-Bernoulli deflection: %.9f m (ratio %.4f)\n", sol.EulerBernoulli(), res.Deflection/sol.EulerBernoulli())
	io.Ff(&b, "Timoshenko deflection:      %.9f m (ratio %.4f)\n", sol.Timoshenko(), res.Deflection/sol.Timoshenko())
	_, err = w.Write(b.Bytes())
	return
}

// LineEntities returns the deflection along the axis of the beam, y = H/2, and the
// corresponding Euler-Bernoulli curve, both at npts points
func LineEntities(res *fem.Result, npts int) (fe, eb *PltEntity, err error) {
	x, uy, err := fem.DeflectionLine(res.Field, (res.Msh.Ymin+res.Msh.Ymax)/2, npts)
	if err != nil {
		return
	}
	sol, err := Analytic(res)
	if err != nil {
		return
	}
	fe = &PltEntity{Alias: "FE", X: x, Y: uy}
	eb = &PltEntity{Alias: "Euler-Bernoulli", X: x, Y: make([]float64, len(x))}
	for i, xi := range x {
		eb.Y[i] = sol.Deflection(xi - res.Msh.Xmin)
	}
	return
}

// LineTable writes the deflection line next to the beam-theory curve
func LineTable(w goio.Writer, fe, eb *PltEntity) (err error) {
	var b bytes.Buffer
	io.Ff(&b, "%14s%18s%18s\n", "x", "uy", "uy(EB)")
	for i := range fe.X {
		io.Ff(&b, "%14.6f%18.9f%18.9f\n", fe.X[i], fe.Y[i], eb.Y[i])
	}
	_, err = w.Write(b.Bytes())
	return
}

// Finest returns the result with the smallest element size
func Finest(res []*fem.Result) (r *fem.Result) {
	for _, q := range res {
		if r == nil || q.Prob.Mesh.Maxh < r.Prob.Mesh.Maxh {
			r = q
		}
	}
	return
}

// ConvTable writes the results of a refinement study
func ConvTable(w goio.Writer, res []*fem.Result) (err error) {
	var b bytes.Buffer
	io.Ff(&b, "%12s%8s%10s%10s%18s%14s\n", "maxh", "degree", "ncells", "neq", "deflection", "change")
	for i, r := range res {
		change := ""
		if i > 0 {
			change = io.Sf("%14.3e", r.Deflection-res[i-1].Deflection)
		}
		io.Ff(&b, "%12g%8d%10d%10d%18.9f%14s\n", r.Prob.Mesh.Maxh, r.Sum.Degree, r.Sum.Ncells, r.Sum.Neq, r.Deflection, change)
	}
	_, err = w.Write(b.Bytes())
	return
}
