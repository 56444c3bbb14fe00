// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"testing"

	"github.com/cpmech/beamdefl/errs"
	"github.com/cpmech/beamdefl/inp"
	"github.com/cpmech/beamdefl/msolid"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// nodalField fills U with u(x) evaluated at all nodes
func nodalField(sp *Space, u func(x []float64) []float64) (U []float64) {
	U = make([]float64, sp.Neq)
	for _, n := range sp.Nodes {
		v := u(n.X)
		for i, eq := range n.Eqs {
			U[eq] = v[i]
		}
	}
	return
}

func Test_stiff01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("stiff01. symmetry and rigid body modes")

	mdl, err := msolid.NewSmallElasticity(1000, 0.25)
	if err != nil {
		tst.Errorf("NewSmallElasticity failed: %v", err)
		return
	}
	msh := beamMesh(tst, 2, 1, 0.5)
	la, err := NewSparseBackend("sparsecholesky")
	if err != nil {
		tst.Errorf("NewSparseBackend failed: %v", err)
		return
	}

	for _, degree := range []int{1, 2} {
		sp, err := NewSpace(msh, degree)
		if err != nil {
			tst.Errorf("NewSpace failed: %v", err)
			return
		}
		form := &StiffnessForm{Mdl: mdl, Thickness: 1}
		locals, ips, err := form.Locals(sp)
		if err != nil {
			tst.Errorf("Locals failed: %v", err)
			return
		}
		chk.Int(tst, "nlocals", len(locals), len(msh.Cells))
		chk.Int(tst, "nip", len(ips), map[int]int{1: 1, 2: 3}[degree])
		K := la.Assemble(sp.Neq, locals)
		io.Pforan("degree = %d  neq = %d  nnz = %d  asym = %g\n", degree, sp.Neq, K.Nnz(), K.Asymmetry())
		if K.Asymmetry() > 1e-14 {
			tst.Errorf("K must be symmetric. asymmetry = %g", K.Asymmetry())
			return
		}
		for _, d := range K.Diag() {
			if d <= 0 {
				tst.Errorf("diagonal of K must be positive; %g is invalid", d)
				return
			}
		}

		// K · u = 0 for translations and rotation
		var kmax float64
		for _, d := range K.Diag() {
			kmax = utl.Max(kmax, d)
		}
		modes := []func(x []float64) []float64{
			func(x []float64) []float64 { return []float64{1, 0} },
			func(x []float64) []float64 { return []float64{0, 1} },
			func(x []float64) []float64 { return []float64{-x[1], x[0]} },
		}
		Ku := make([]float64, sp.Neq)
		for k, mode := range modes {
			K.MulVec(Ku, nodalField(sp, mode))
			for _, v := range Ku {
				if math.Abs(v) > 1e-12*kmax {
					tst.Errorf("degree %d, mode %d: K·u = %g must be zero", degree, k, v)
					return
				}
			}
		}
	}
}

func Test_stiff02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("stiff02. B matrix and strains")

	mdl, err := msolid.NewSmallElasticity(1000, 0.25)
	if err != nil {
		tst.Errorf("NewSmallElasticity failed: %v", err)
		return
	}
	msh := beamMesh(tst, 1, 1, 1)
	sp, err := NewSpace(msh, 2)
	if err != nil {
		tst.Errorf("NewSpace failed: %v", err)
		return
	}

	// u = (a x + b y², c x y)
	a, b, c := 1e-3, -2e-3, 5e-4
	U := nodalField(sp, func(x []float64) []float64 {
		return []float64{a*x[0] + b*x[1]*x[1], c * x[0] * x[1]}
	})

	// compare B·u with the material strain operator
	sh := sp.NewShape()
	B := utl.Alloc(4, 12)
	Bu := make([]float64, 4)
	ε := make([]float64, 4)
	ul := utl.Alloc(6, 2)
	x := sp.CellCoords(0)
	for m, nid := range sp.Cell2node[0] {
		ul[m][0], ul[m][1] = U[sp.Nodes[nid].Eqs[0]], U[sp.Nodes[nid].Eqs[1]]
	}
	for _, R := range [][]float64{{1.0 / 3.0, 1.0 / 3.0}, {0.2, 0.1}, {0.6, 0.3}} {
		err = sh.CalcAtR(x, R, true)
		if err != nil {
			tst.Errorf("CalcAtR failed: %v", err)
			return
		}
		y := sh.IpRealCoords(x, R)
		IpBmatrix(B, 2, sh.Nverts, sh.G)
		for i := 0; i < 4; i++ {
			Bu[i] = 0
			for j := 0; j < 12; j++ {
				Bu[i] += B[i][j] * U[sp.Umaps[0][j]]
			}
		}
		mdl.Strain(ε, sh.G, ul)
		chk.Array(tst, "B·u", 1e-15, Bu, ε)

		// exact strains of a quadratic field
		εxy := (2*b*y[1] + c*y[1]) / 2
		chk.Array(tst, "ε", 1e-14, ε, []float64{a, c * y[0], 0, εxy * math.Sqrt2})
	}
}

func Test_traction01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("traction01. resultant of edge load")

	msh := beamMesh(tst, 0.2, 0.02, 0.004)
	la := &SparseBackend{Name: "sparsecholesky"}
	q := -100.0 / (0.03 * 0.02)
	for _, degree := range []int{1, 2} {
		sp, err := NewSpace(msh, degree)
		if err != nil {
			tst.Errorf("NewSpace failed: %v", err)
			return
		}
		form := &TractionForm{Tag: inp.Loaded, Traction: []float64{0, q}, Thickness: 1}
		locals, ipf, err := form.Locals(sp)
		if err != nil {
			tst.Errorf("Locals failed: %v", err)
			return
		}
		chk.Int(tst, "nlocals", len(locals), 8)
		chk.Int(tst, "nipf", len(ipf), degree+1)
		f := la.AssembleVec(sp.Neq, locals)
		var fx, fy float64
		for _, n := range sp.Nodes {
			fx += f[n.Eqs[0]]
			fy += f[n.Eqs[1]]
			if math.Abs(n.X[0]-0.2) > 1e-12 && f[n.Eqs[1]] != 0 {
				tst.Errorf("node %d is not loaded: f = %g must be zero", n.Id, f[n.Eqs[1]])
				return
			}
		}
		io.Pforan("degree = %d  Fx = %v  Fy = %v\n", degree, fx, fy)
		chk.Float64(tst, "Fx", 1e-17, fx, 0)
		chk.Float64(tst, "Fy", 1e-10, fy, q*0.02)
	}

	// wrong size
	sp, _ := NewSpace(msh, 2)
	_, _, err := (&TractionForm{Tag: inp.Loaded, Traction: []float64{1}, Thickness: 1}).Locals(sp)
	if !errs.Is(err, errs.InvalidParameter) {
		tst.Errorf("traction with 1 component must fail. err = %v", err)
	}
	_, _, err = (&TractionForm{Tag: inp.Loaded, Traction: []float64{0, 1}, Thickness: 1, Nipf: 20}).Locals(sp)
	if !errs.Is(err, errs.Config) {
		tst.Errorf("20 face points must fail. err = %v", err)
	}
}
