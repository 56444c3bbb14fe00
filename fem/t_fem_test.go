// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/cpmech/beamdefl/ana"
	"github.com/cpmech/beamdefl/errs"
	"github.com/cpmech/beamdefl/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

func Test_fem01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fem01. aluminium cantilever")

	prob := inp.DefaultProblem()
	prob.Verbose = chk.Verbose
	res, err := Run(prob)
	if err != nil {
		tst.Errorf("Run failed: %v", err)
		return
	}
	io.Pf("Numerical Y deflection:  %.9f m\n", res.Deflection)

	// sign and magnitude
	if res.Deflection > -1e-4 || res.Deflection < -1e-3 {
		tst.Errorf("deflection %g is out of range", res.Deflection)
		return
	}

	// sizes: 71×8 divisions
	chk.Int(tst, "nverts", res.Sum.Nverts, 72*9)
	chk.Int(tst, "nnodes", res.Sum.Nnodes, 143*17)
	chk.Int(tst, "neq", res.Sum.Neq, 2*143*17)
	chk.Int(tst, "nfree", res.Sum.Nfree, 2*143*17-2*17)
	if res.Sum.Asym > 1e-13 {
		tst.Errorf("assembled matrix must be symmetric. asymmetry = %g", res.Sum.Asym)
	}
	if !(res.Sum.Compliance > 0) {
		tst.Errorf("external work must be positive; %g is invalid", res.Sum.Compliance)
	}

	// constrained equations are exactly zero
	for eq, fixed := range res.Sp.Fixed {
		if fixed && res.Field.U[eq] != 0 {
			tst.Errorf("U[%d] = %g must be exactly zero", eq, res.Field.U[eq])
			return
		}
	}
	for _, vid := range res.Msh.FaceTag2verts[inp.Fixed] {
		u := res.Field.AtVert(vid)
		if u[0] != 0 || u[1] != 0 {
			tst.Errorf("u @ vertex %d = %v must be exactly zero", vid, u)
			return
		}
	}

	// beam theory
	var sol ana.Cantilever
	err = sol.Init(dbf.Params{
		&dbf.P{N: "L", V: prob.Beam.Length},
		&dbf.P{N: "H", V: prob.Beam.Height},
		&dbf.P{N: "W", V: prob.Beam.Width},
		&dbf.P{N: "F", V: prob.Beam.Force},
		&dbf.P{N: "E", V: prob.Mat.E},
		&dbf.P{N: "nu", V: prob.Mat.Nu},
	})
	if err != nil {
		tst.Errorf("Init failed: %v", err)
		return
	}
	δeb, δtim := sol.EulerBernoulli(), sol.Timoshenko()
	io.Pforan("δ(EB) = %v  δ(Tim) = %v  δ(FE) = %v\n", δeb, δtim, res.Deflection)
	chk.Float64(tst, "δ/δ(EB)", 0.1, res.Deflection/δeb, 1)
	chk.Float64(tst, "δ/δ(Tim)", 0.05, res.Deflection/δtim, 1)
}

func Test_fem02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fem02. zero load")

	prob := inp.DefaultProblem()
	prob.Beam.Force = 0
	prob.Mesh.Maxh = prob.Beam.Height / 2
	for _, degree := range []int{1, 2} {
		prob.Mesh.Degree = degree
		res, err := Run(prob)
		if err != nil {
			tst.Errorf("Run failed: %v", err)
			return
		}
		chk.Float64(tst, "δ", 1e-17, res.Deflection, 0)
		for eq, u := range res.Field.U {
			if u != 0 {
				tst.Errorf("U[%d] = %g must be zero", eq, u)
				return
			}
		}
	}
}

func Test_fem03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fem03. missing fixed edge")

	prob := inp.DefaultProblem()
	prob.Mesh.Maxh = prob.Beam.Height
	geo, err := inp.NewGeometry(
		[][]float64{{0, 0}, {0.2, 0}, {0.2, 0.02}, {0, 0.02}},
		[]string{"", "force", "", ""},
	)
	if err != nil {
		tst.Errorf("NewGeometry failed: %v", err)
		return
	}
	for _, solver := range []string{"sparsecholesky", "dense"} {
		for _, degree := range []int{1, 2} {
			prob.LinSol.Name = solver
			prob.Mesh.Degree = degree
			o, err := NewFEM(prob)
			if err != nil {
				tst.Errorf("NewFEM failed: %v", err)
				return
			}
			o.Geo = geo
			_, err = o.Run()
			io.Pforan("%s, degree %d: %v\n", solver, degree, err)
			if !errs.Is(err, errs.SingularSystem) {
				tst.Errorf("%s, degree %d: run without fixed edge must fail with a singular-system error. err = %v", solver, degree, err)
				return
			}
		}
	}
}

func Test_fem04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fem04. refinement")

	prob := inp.DefaultProblem()
	H := prob.Beam.Height
	for _, degree := range []int{1, 2} {
		prob.Mesh.Degree = degree
		var δ, work []float64
		// spacings H, H/2 and H/4
		for _, maxh := range []float64{math.Sqrt2 * H, math.Sqrt2 * H / 2, math.Sqrt2 * H / 4} {
			prob.Mesh.Maxh = maxh
			res, err := Run(prob)
			if err != nil {
				tst.Errorf("Run failed: %v", err)
				return
			}
			io.Pforan("degree = %d  maxh = %-8g  δ = %.9f  f·u = %g\n", degree, maxh, res.Deflection, res.Sum.Compliance)
			δ = append(δ, res.Deflection)
			work = append(work, res.Sum.Compliance)
		}

		// nested meshes: the external work increases
		if !(work[1] > work[0] && work[2] > work[1]) {
			tst.Errorf("degree %d: external work must increase with refinement: %v", degree, work)
		}

		// successive differences decrease; linear triangles lock on coarse meshes
		if degree == 2 && !(math.Abs(δ[2]-δ[1]) < math.Abs(δ[1]-δ[0])) {
			tst.Errorf("degree %d: deflections must converge: %v", degree, δ)
		}
	}
}

func Test_fem05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fem05. sparse and dense solvers")

	prob := inp.DefaultProblem()
	prob.Mesh.Maxh = prob.Beam.Height / 2
	var res []*Result
	for _, name := range []string{"sparsecholesky", "dense"} {
		prob.LinSol.Name = name
		r, err := Run(prob)
		if err != nil {
			tst.Errorf("Run with %s failed: %v", name, err)
			return
		}
		res = append(res, r)
	}
	chk.Float64(tst, "δ", 1e-8*math.Abs(res[1].Deflection), res[0].Deflection, res[1].Deflection)
	umax := 0.0
	for _, u := range res[1].Field.U {
		umax = math.Max(umax, math.Abs(u))
	}
	for eq := range res[0].Field.U {
		chk.Float64(tst, "U", 1e-8*umax, res[0].Field.U[eq], res[1].Field.U[eq])
	}

	// unknown solver
	prob.LinSol.Name = "umfpack"
	_, err := Run(prob)
	if !errs.Is(err, errs.Config) {
		tst.Errorf("unknown solver must fail with a config error. err = %v", err)
	}
}

func Test_fem06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fem06. evaluation of the field")

	// linear field is reproduced exactly
	msh := beamMesh(tst, 0.2, 0.02, 0.005)
	for _, degree := range []int{1, 2} {
		sp, err := NewSpace(msh, degree)
		if err != nil {
			tst.Errorf("NewSpace failed: %v", err)
			return
		}
		u := func(x []float64) []float64 { return []float64{1 + 2*x[0] - 3*x[1], -4 + 5*x[0] + 6*x[1]} }
		f := NewField(sp, nodalField(sp, u))
		for _, x := range [][]float64{{0, 0}, {0.2, 0.02}, {0.1, 0.01}, {0.0123, 0.0171}, {0.19999, 0.00001}, {0.07, 0}} {
			v, err := f.At(x)
			if err != nil {
				tst.Errorf("At(%v) failed: %v", x, err)
				return
			}
			chk.Array(tst, io.Sf("u(%v)", x), 1e-14, v, u(x))
		}
		for vid, uv := range f.AtVerts() {
			chk.Array(tst, "u @ vert", 1e-14, uv, u(msh.Verts[vid].C))
		}

		// outside
		for _, x := range [][]float64{{-0.01, 0.01}, {0.1, 0.03}, {1, 1}, {math.NaN(), 0}} {
			_, err = f.At(x)
			if !errs.Is(err, errs.Geometry) {
				tst.Errorf("At(%v) must fail with a geometry error. err = %v", x, err)
			}
		}
	}

	// mean deflection
	sp, _ := NewSpace(msh, 2)
	f := NewField(sp, nodalField(sp, func(x []float64) []float64 { return []float64{0, -x[0] * x[0]} }))
	δ, err := MeanDeflection(f, msh, 0.2)
	if err != nil {
		tst.Errorf("MeanDeflection failed: %v", err)
		return
	}
	chk.Float64(tst, "δ", 1e-15, δ, -0.04)

	// empty selection
	_, err = MeanDeflection(f, msh, 0.3)
	if !errs.Is(err, errs.EmptySelection) {
		tst.Errorf("selection at x = 0.3 must be empty. err = %v", err)
	}
}

func Test_fem07(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fem07. mesh file and summary")

	// generated mesh
	prob := inp.DefaultProblem()
	prob.Mesh.Maxh = prob.Beam.Height / 2
	prob.DirOut = tst.TempDir()
	res1, err := Run(prob)
	if err != nil {
		tst.Errorf("Run failed: %v", err)
		return
	}

	// same mesh from file
	err = res1.Msh.WriteMsh(prob.DirOut, "beam.msh")
	if err != nil {
		tst.Errorf("WriteMsh failed: %v", err)
		return
	}
	prob.Mesh.File = filepath.Join(prob.DirOut, "beam.msh")
	res2, err := Run(prob)
	if err != nil {
		tst.Errorf("Run with mesh file failed: %v", err)
		return
	}
	chk.Float64(tst, "δ", 1e-12, res2.Deflection, res1.Deflection)

	// summary
	err = res2.Sum.Save(prob.DirOut)
	if err != nil {
		tst.Errorf("Save failed: %v", err)
		return
	}
	sum, err := ReadSum(prob.DirOut, prob.Key)
	if err != nil {
		tst.Errorf("ReadSum failed: %v", err)
		return
	}
	chk.Float64(tst, "δ(sum)", 1e-17, sum.Deflection, res2.Deflection)
	chk.Int(tst, "neq(sum)", sum.Neq, res2.Sum.Neq)
	chk.String(tst, sum.Solver, "sparsecholesky")
	_, err = ReadSum(prob.DirOut, "nothing")
	if err == nil {
		tst.Errorf("ReadSum of missing file must fail")
	}
}

func Test_refine01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("refine01. concurrent runs")

	prob := inp.DefaultProblem()
	H := prob.Beam.Height
	maxhs := []float64{H, H / 2, H / 3}
	res, err := Refine(prob, maxhs)
	if err != nil {
		tst.Errorf("Refine failed: %v", err)
		return
	}
	chk.Int(tst, "nres", len(res), 3)
	for i, maxh := range maxhs {
		prob.Mesh.Maxh = maxh
		r, err := Run(prob)
		if err != nil {
			tst.Errorf("Run failed: %v", err)
			return
		}
		io.Pforan("maxh = %-8g  δ = %.9f\n", maxh, res[i].Deflection)
		chk.Float64(tst, "δ", 1e-17, res[i].Deflection, r.Deflection)
		chk.Int(tst, "ncells", res[i].Sum.Ncells, r.Sum.Ncells)
	}

	// failures
	_, err = Refine(prob, nil)
	if !errs.Is(err, errs.Config) {
		tst.Errorf("empty list of sizes must fail. err = %v", err)
	}
	_, err = Refine(prob, []float64{H, -1})
	if !errs.Is(err, errs.Config) {
		tst.Errorf("negative size must fail. err = %v", err)
	}
}

func Test_fem08(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fem08. slender beam")

	// L/H = 1000
	prob := inp.DefaultProblem()
	prob.Beam.Length, prob.Beam.Height = 2, 0.002
	prob.Beam.Force = -0.01
	prob.Mesh.Maxh = 0.002
	res, err := Run(prob)
	if err != nil {
		tst.Errorf("Run failed: %v", err)
		return
	}
	var sol ana.Cantilever
	err = sol.Init(dbf.Params{
		&dbf.P{N: "L", V: prob.Beam.Length},
		&dbf.P{N: "H", V: prob.Beam.Height},
		&dbf.P{N: "W", V: prob.Beam.Width},
		&dbf.P{N: "F", V: prob.Beam.Force},
		&dbf.P{N: "E", V: prob.Mat.E},
		&dbf.P{N: "nu", V: prob.Mat.Nu},
	})
	if err != nil {
		tst.Errorf("Init failed: %v", err)
		return
	}
	io.Pforan("neq = %d  δ(EB) = %v  δ(FE) = %v\n", res.Sum.Neq, sol.EulerBernoulli(), res.Deflection)
	chk.Float64(tst, "δ/δ(EB)", 0.05, res.Deflection/sol.EulerBernoulli(), 1)

	// both solvers on a coarser mesh of the same beam
	prob.Mesh.Maxh = 0.1
	var δ []float64
	for _, name := range []string{"sparsecholesky", "dense"} {
		prob.LinSol.Name = name
		r, err := Run(prob)
		if err != nil {
			tst.Errorf("Run with %s failed: %v", name, err)
			return
		}
		io.Pforan("%-14s neq = %d  δ = %v\n", name, r.Sum.Neq, r.Deflection)
		δ = append(δ, r.Deflection)
	}
	chk.Float64(tst, "δ(sparse) vs δ(dense)", 1e-6*math.Abs(δ[1]), δ[0], δ[1])
}

func Test_fem09(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fem09. deflection line")

	msh := beamMesh(tst, 0.2, 0.02, 0.005)
	sp, err := NewSpace(msh, 2)
	if err != nil {
		tst.Errorf("NewSpace failed: %v", err)
		return
	}

	// quadratic field is reproduced exactly by tri6
	f := NewField(sp, nodalField(sp, func(x []float64) []float64 { return []float64{x[1], -x[0]*x[0] + x[1]} }))
	x, uy, err := DeflectionLine(f, 0.01, 21)
	if err != nil {
		tst.Errorf("DeflectionLine failed: %v", err)
		return
	}
	chk.Array(tst, "x", 1e-15, x, utl.LinSpace(0, 0.2, 21))
	for i, xi := range x {
		chk.Float64(tst, io.Sf("uy(%g)", xi), 1e-14, uy[i], -xi*xi+0.01)
	}

	// failures
	_, _, err = DeflectionLine(f, 0.01, 1)
	if !errs.Is(err, errs.Config) {
		tst.Errorf("one point must fail with a config error. err = %v", err)
	}
	_, _, err = DeflectionLine(f, 0.05, 5)
	if !errs.Is(err, errs.Geometry) {
		tst.Errorf("line outside the mesh must fail with a geometry error. err = %v", err)
	}
}
