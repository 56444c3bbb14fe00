// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparse

import (
	"math"
	"sort"
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/mat"
)

// LinSol solves symmetric positive-definite sparse linear systems
type LinSol interface {
	Init(a *CSR, verbose bool) error // initialise solver with the system matrix
	Fact() error                     // factorise
	Solve(x, b []float64) error      // solve a x = b after Fact
	Clean()                          // release memory
}

// lsallocators holds all available solvers
var lsallocators = make(map[string]func() LinSol)

// GetSolver returns a new solver by name; nil if name is unknown
func GetSolver(name string) LinSol {
	if alloc, ok := lsallocators[name]; ok {
		return alloc()
	}
	return nil
}

// SolverNames returns the names of available solvers
func SolverNames() (names []string) {
	for name := range lsallocators {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// set factory of solvers
func init() {
	lsallocators["sparsecholesky"] = func() LinSol { return new(SpChol) }
	lsallocators["dense"] = func() LinSol { return new(DenseChol) }
}

// SpChol is the envelope Cholesky solver with reverse Cuthill-McKee ordering
type SpChol struct {
	a       *CSR
	verbose bool
	chol    Cholesky
}

// Init initialises the solver
func (o *SpChol) Init(a *CSR, verbose bool) (err error) {
	m, n := a.Dims()
	if m != n {
		return chk.Err("SpChol: matrix must be square. %d×%d is invalid", m, n)
	}
	o.a = a
	o.verbose = verbose
	return
}

// Fact performs the ordering and the numerical factorisation
func (o *SpChol) Fact() (err error) {
	if o.a == nil {
		return chk.Err("SpChol: Init must be called before Fact")
	}
	t0 := time.Now()
	perm := RCM(o.a)
	err = o.chol.Fact(o.a, perm)
	if err != nil {
		return
	}
	if o.verbose {
		n, _ := o.a.Dims()
		io.Pf("sparsecholesky: n = %d  nnz(A) = %d  profile(L) = %d  time = %v\n", n, o.a.Nnz(), o.chol.Profile(), time.Now().Sub(t0))
	}
	return
}

// Solve solves the system
func (o *SpChol) Solve(x, b []float64) error {
	return o.chol.Solve(x, b)
}

// Clean releases memory
func (o *SpChol) Clean() {
	o.a = nil
	o.chol = Cholesky{}
}

// DenseChol solves the system with gonum's dense Cholesky factorisation.
// Suitable for small systems and cross-checks
type DenseChol struct {
	a       *CSR
	verbose bool
	chol    mat.Cholesky
}

// Init initialises the solver
func (o *DenseChol) Init(a *CSR, verbose bool) (err error) {
	m, n := a.Dims()
	if m != n {
		return chk.Err("DenseChol: matrix must be square. %d×%d is invalid", m, n)
	}
	o.a = a
	o.verbose = verbose
	return
}

// Fact factorises the dense copy of the matrix
func (o *DenseChol) Fact() (err error) {
	if o.a == nil {
		return chk.Err("DenseChol: Init must be called before Fact")
	}
	n, _ := o.a.Dims()
	if n == 0 {
		return chk.Err("DenseChol: empty system: %w", ErrNotPosDef)
	}
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		o.a.DoRow(i, func(j int, x float64) {
			if j >= i {
				sym.SetSym(i, j, x)
			}
		})
	}
	if ok := o.chol.Factorize(sym); !ok {
		return chk.Err("dense factorisation failed: %w", ErrNotPosDef)
	}

	// same pivot test as Cholesky.Fact: U[i][i]² relative to A[i][i]
	u := o.chol.RawU()
	for i := 0; i < n; i++ {
		d, p := sym.At(i, i), u.At(i, i)
		if d <= 0 || p*p <= PivotTol*d || math.IsNaN(p) {
			return chk.Err("dense factorisation: pivot %d is too small (%g): %w", i, p*p, ErrNotPosDef)
		}
	}
	if o.verbose {
		io.Pf("dense: n = %d  cond = %g\n", n, o.chol.Cond())
	}
	return
}

// Solve solves the system
func (o *DenseChol) Solve(x, b []float64) (err error) {
	var dst mat.VecDense
	err = o.chol.SolveVecTo(&dst, mat.NewVecDense(len(b), b))
	if err != nil {
		return
	}
	for i := range x {
		x[i] = dst.AtVec(i)
	}
	return
}

// Clean releases memory
func (o *DenseChol) Clean() {
	o.a = nil
	o.chol.Reset()
}
