// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// constants
const (
	INVMAP_TOL = 1.0e-10 // tolerance for inverse mapping function
	INVMAP_NIT = 25      // maximum number of iterations for inverse mapping
)

// InvMap computes the natural coordinates r, given the real coordinate y
//  Input:
//   y[ndim]         -- are the 2D point coordinates
//   x[ndim][nverts] -- coordinates matrix of solid element
//  Output:
//   r[2] -- are the natural coordinates of given point
func (o *Shape) InvMap(r, y []float64, x [][]float64) (err error) {

	// check
	if o.Gndim != 2 {
		return chk.Err("Inverse mapping is only implemented in 2D\n")
	}

	var δRnorm float64
	e := make([]float64, 2)  // residual
	δr := make([]float64, 2) // corrector
	r[0], r[1] = 0, 0        // first trial
	for it := 0; it < INVMAP_NIT; it++ {

		// shape functions and derivatives
		o.Func(o.S, o.DSdR, r, true)

		// residual: e = y - x * S
		for i := 0; i < 2; i++ {
			e[i] = y[i]
			for j := 0; j < o.Nverts; j++ {
				e[i] -= x[i][j] * o.S[j]
			}
		}

		// Jmat == dxdR = x * dSdR;
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				o.DxdR[i][j] = 0.0
				for k := 0; k < o.Nverts; k++ {
					o.DxdR[i][j] += x[i][k] * o.DSdR[k][j]
				}
			}
		}

		// Jimat == dRdx = Jmat.inverse();
		o.J, err = inv2(o.DRdx, o.DxdR)
		if err != nil {
			return
		}

		// corrector: dR = Jimat * e
		δRnorm = 0.0
		for i := 0; i < 2; i++ {
			δr[i] = o.DRdx[i][0]*e[0] + o.DRdx[i][1]*e[1]
			r[i] += δr[i]
			δRnorm += δr[i] * δr[i]
		}

		// converged?
		if math.Sqrt(δRnorm) < INVMAP_TOL {
			return
		}
	}
	return chk.Err("InvMap did not converge after %d iterations", INVMAP_NIT)
}

// CellBryDist returns the shortest distance between R and the boundary of the cell in natural coordinates.
// It is negative if R is outside the cell
func (o *Shape) CellBryDist(R []float64) float64 {
	r, s := R[0], R[1]
	if o.BasicType == "tri3" {
		return utl.Min(r, utl.Min(s, 1.0-r-s))
	}
	chk.Panic("cannot handle BasicType=%q yet", o.BasicType)
	return 0 // must not reach this point
}

// GetShapeMatAtIps returns a matrix formed by computing the shape functions
// at all integration points [nip][nverts]
func (o *Shape) GetShapeMatAtIps(ips []Ipoint) (N [][]float64) {
	nip := len(ips)
	N = utl.Alloc(nip, o.Nverts)
	for i := 0; i < nip; i++ {
		o.Func(o.S, o.DSdR, ips[i], false)
		copy(N[i], o.S)
	}
	return
}
