// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/beamdefl/errs"
	"github.com/cpmech/beamdefl/sparse"
)

// ConstraintSolver solves K u = f with homogeneous essential conditions by
// eliminating constrained equations
type ConstraintSolver struct {
	LA LinAlg // linear-algebra backend
}

// Solve restricts the system to the free equations, solves it and scatters the
// solution back into a full vector. Constrained entries are exactly zero
func (o *ConstraintSolver) Solve(K *sparse.CSR, f []float64, sp *Space) (field *Field, err error) {

	// check
	op := "fem.ConstraintSolver"
	if m, n := K.Dims(); m != sp.Neq || n != sp.Neq || len(f) != sp.Neq {
		return nil, errs.New(errs.Config, op, "system dimensions (%d×%d, %d) do not match the number of equations %d", m, n, len(f), sp.Neq)
	}

	// reduced system
	U := make([]float64, sp.Neq)
	if len(sp.Free) > 0 {
		Kr := o.LA.Restrict(K, sp.Free)
		fr := make([]float64, len(sp.Free))
		for k, eq := range sp.Free {
			fr[k] = f[eq]
		}

		// solve
		var ur []float64
		ur, err = o.LA.FactorizeAndSolve(Kr, fr)
		if err != nil {
			return nil, errs.Wrap(errs.SingularSystem, op, err)
		}

		// scatter
		for k, eq := range sp.Free {
			U[eq] = ur[k]
		}
	}
	return NewField(sp, U), nil
}
