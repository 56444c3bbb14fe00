// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"errors"
	"strings"

	"github.com/cpmech/beamdefl/errs"
	"github.com/cpmech/beamdefl/sparse"
)

// LinAlg is the linear-algebra backend: assembly, restriction and direct solution
type LinAlg interface {
	Assemble(n int, locals []*Local) *sparse.CSR                       // scatter-add local matrices into an n×n matrix
	AssembleVec(n int, locals []*Local) []float64                      // scatter-add local vectors into an n vector
	Restrict(a *sparse.CSR, free []int) *sparse.CSR                    // keep rows and columns in free
	FactorizeAndSolve(a *sparse.CSR, rhs []float64) ([]float64, error) // solve a x = rhs
}

// SparseBackend implements LinAlg with the solvers of package sparse
type SparseBackend struct {
	Name    string // solver name; e.g. "sparsecholesky"
	Verbose bool   // show messages
}

// NewSparseBackend returns a backend using the named solver
func NewSparseBackend(name string) (o *SparseBackend, err error) {
	if sparse.GetSolver(name) == nil {
		return nil, errs.New(errs.Config, "fem.NewSparseBackend", "linear solver %q is not available; use one of: %s", name, strings.Join(sparse.SolverNames(), ", "))
	}
	return &SparseBackend{Name: name}, nil
}

// Assemble assembles the global matrix
func (o *SparseBackend) Assemble(n int, locals []*Local) *sparse.CSR {
	nmax := 0
	for _, l := range locals {
		nmax += len(l.Eqs) * len(l.Eqs)
	}
	var T sparse.Triplet
	T.Init(n, n, nmax)
	for _, l := range locals {
		for i, I := range l.Eqs {
			for j, J := range l.Eqs {
				T.Put(I, J, l.K[i][j])
			}
		}
	}
	return T.ToCSR()
}

// AssembleVec assembles the global vector
func (o *SparseBackend) AssembleVec(n int, locals []*Local) (fb []float64) {
	fb = make([]float64, n)
	for _, l := range locals {
		for i, I := range l.Eqs {
			fb[I] += l.F[i]
		}
	}
	return
}

// Restrict returns the matrix of free equations
func (o *SparseBackend) Restrict(a *sparse.CSR, free []int) *sparse.CSR {
	return a.Restrict(free)
}

// FactorizeAndSolve factorises a and solves a x = rhs. A matrix that is not
// positive-definite yields a SingularSystem error
func (o *SparseBackend) FactorizeAndSolve(a *sparse.CSR, rhs []float64) (x []float64, err error) {
	op := "fem.FactorizeAndSolve"
	solver := sparse.GetSolver(o.Name)
	if solver == nil {
		return nil, errs.New(errs.Config, op, "linear solver %q is not available", o.Name)
	}
	defer solver.Clean()
	if err = solver.Init(a, o.Verbose); err != nil {
		return nil, errs.Wrap(errs.Config, op, err)
	}
	if err = solver.Fact(); err != nil {
		if errors.Is(err, sparse.ErrNotPosDef) {
			return nil, errs.Wrap(errs.SingularSystem, op, err)
		}
		return nil, err
	}
	x = make([]float64, len(rhs))
	if err = solver.Solve(x, rhs); err != nil {
		return nil, err
	}
	return
}
