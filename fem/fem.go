// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem implements the function space, the forms of linear elasticity, the
// constrained solution and the post-processing of the deflection of plane solids
package fem

import (
	"os"
	"path/filepath"
	"time"

	"github.com/cpmech/beamdefl/errs"
	"github.com/cpmech/beamdefl/inp"
	"github.com/cpmech/beamdefl/msolid"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/floats"
)

// Result holds the output of a run
type Result struct {
	Deflection float64       // mean vertical displacement at the free end [m]
	Prob       inp.Problem   // problem data
	Geo        *inp.Geometry // domain
	Mdl        msolid.Model  // material model
	Msh        *inp.Mesh     // mesh
	Sp         *Space        // function space
	Field      *Field        // displacements
	Sum        Summary       // sizes and timings
}

// FEM holds the collaborators of a deflection analysis
type FEM struct {
	Prob    inp.Problem       // problem data
	Geo     *inp.Geometry     // domain with tagged edges
	Gen     inp.MeshGenerator // mesh generator
	LA      LinAlg            // linear-algebra backend
	Verbose bool              // show messages
}

// NewFEM returns a new FEM structure with the collaborators selected by the problem data.
// The domain is the rectangle of the beam. A mesh file is read when given; otherwise the
// structured generator is used
func NewFEM(prob inp.Problem) (o *FEM, err error) {
	err = prob.Validate()
	if err != nil {
		return
	}
	o = &FEM{Prob: prob, Verbose: prob.Verbose}
	o.Geo, err = inp.Rectangle(prob.Beam.Length, prob.Beam.Height)
	if err != nil {
		return nil, err
	}
	if prob.Mesh.File != "" {
		o.Gen = &inp.FileGen{Dir: filepath.Dir(prob.Mesh.File), Fn: filepath.Base(prob.Mesh.File)}
	} else {
		o.Gen = &inp.StructGen{Verbose: prob.Verbose}
	}
	la, err := NewSparseBackend(prob.LinSol.Name)
	if err != nil {
		return nil, err
	}
	la.Verbose = prob.Verbose
	o.LA = la
	return
}

// Run runs the analysis with the default collaborators
func Run(prob inp.Problem) (res *Result, err error) {
	o, err := NewFEM(prob)
	if err != nil {
		return
	}
	return o.Run()
}

// Run runs the pipeline: geometry => mesh => space => forms => solution => deflection
func (o *FEM) Run() (res *Result, err error) {

	// problem
	cputime := time.Now()
	prob := o.Prob
	res = &Result{Prob: prob}
	res.Sum.Key = prob.Key
	res.Sum.Degree = prob.Mesh.Degree
	res.Sum.Solver = prob.LinSol.Name
	if o.Verbose {
		io.Pf("\n")
		prob.GetInfo(os.Stdout)
	}

	// material
	mdl, err := msolid.New(prob.Mat.Model)
	if err != nil {
		return nil, errs.Wrap(errs.Config, "fem.Run", err)
	}
	err = mdl.Init(2, prob.Pstress, prob.Mat.Prms())
	if err != nil {
		return nil, err
	}
	res.Mdl = mdl

	// geometry and mesh
	t0 := time.Now()
	res.Geo = o.Geo
	res.Msh, err = o.Gen.Generate(res.Geo, prob.Mesh.Maxh)
	if err != nil {
		return nil, errs.Wrap(errs.MeshGeneration, "fem.Run", err)
	}
	res.Sum.Nverts, res.Sum.Ncells = len(res.Msh.Verts), len(res.Msh.Cells)
	res.Sum.TimeMesh = time.Since(t0)

	// space
	t0 = time.Now()
	res.Sp, err = NewSpace(res.Msh, prob.Mesh.Degree)
	if err != nil {
		return nil, err
	}
	res.Sum.Nnodes, res.Sum.Neq, res.Sum.Nfree = len(res.Sp.Nodes), res.Sp.Neq, len(res.Sp.Free)

	// forms
	traction := prob.Traction()
	if o.Verbose {
		io.Pfyel("note: traction = F/(width·height) = %g Pa is applied over the loaded edge; the resultant per unit thickness is %g N\n", traction, traction*prob.Beam.Height)
	}
	stiff := &StiffnessForm{Mdl: mdl, Thickness: 1, Nip: prob.Mesh.Nip}
	load := &TractionForm{Tag: inp.Loaded, Traction: []float64{0, traction}, Thickness: 1, Nipf: prob.Mesh.Nipf}
	kloc, _, err := stiff.Locals(res.Sp)
	if err != nil {
		return nil, err
	}
	floc, _, err := load.Locals(res.Sp)
	if err != nil {
		return nil, err
	}

	// assembly
	K := o.LA.Assemble(res.Sp.Neq, kloc)
	f := o.LA.AssembleVec(res.Sp.Neq, floc)
	res.Sum.Nnz, res.Sum.Asym = K.Nnz(), K.Asymmetry()
	res.Sum.TimeAssembly = time.Since(t0)

	// solution
	t0 = time.Now()
	solver := &ConstraintSolver{LA: o.LA}
	res.Field, err = solver.Solve(K, f, res.Sp)
	if err != nil {
		return nil, err
	}
	res.Sum.Compliance = floats.Dot(f, res.Field.U)
	res.Sum.TimeSolve = time.Since(t0)

	// post-processing
	res.Deflection, err = MeanDeflection(res.Field, res.Msh, prob.Beam.Length)
	if err != nil {
		return nil, err
	}
	res.Sum.Deflection = res.Deflection
	res.Sum.TimeTotal = time.Since(cputime)
	if o.Verbose {
		res.Sum.Print()
	}
	return
}
