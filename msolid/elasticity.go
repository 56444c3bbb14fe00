// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/cpmech/beamdefl/errs"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/utl"
)

// Im is the second order identity tensor in Mandel's basis (2D, nsig = 4)
var Im = []float64{1, 1, 1, 0}

// SmallElasticity implements linear isotropic elasticity for small strains.
// Tensors use Mandel's basis with nsig = 4 in 2D: {xx, yy, zz, √2·xy}
type SmallElasticity struct {
	E       float64 // Young's modulus
	Nu      float64 // Poisson's coefficient
	L       float64 // Lamé's λ coefficient
	G       float64 // shear modulus (Lamé's μ)
	K       float64 // bulk modulus
	Ndim    int     // space dimension
	Nsig    int     // number of stress components
	Pstress bool    // plane-stress instead of plane-strain
}

// add model to factory
func init() {
	allocators["lin-elast"] = func() Model { return new(SmallElasticity) }
}

// NewSmallElasticity returns a new plane-strain model
func NewSmallElasticity(E, nu float64) (o *SmallElasticity, err error) {
	o = new(SmallElasticity)
	err = o.Init(2, false, dbf.Params{
		&dbf.P{N: "E", V: E},
		&dbf.P{N: "nu", V: nu},
	})
	if err != nil {
		return nil, err
	}
	return
}

// Init initialises model
func (o *SmallElasticity) Init(ndim int, pstress bool, prms dbf.Params) (err error) {

	// parse parameters
	op := "msolid.SmallElasticity.Init"
	if ndim != 2 {
		return errs.New(errs.InvalidParameter, op, "space dimension must be 2; %d is invalid", ndim)
	}
	for _, p := range prms {
		switch p.N {
		case "E", "nu", "rho":
		default:
			return errs.New(errs.InvalidParameter, op, "parameter named %q is incorrect", p.N)
		}
	}
	E, nu := prms.Find("E"), prms.Find("nu")
	if E == nil || nu == nil {
		return errs.New(errs.InvalidParameter, op, "both \"E\" and \"nu\" must be given")
	}
	o.E, o.Nu = E.V, nu.V

	// check
	if !(o.E > 0) || math.IsInf(o.E, 0) {
		return errs.New(errs.InvalidParameter, op, "Young's modulus must be positive and finite; E = %g is invalid", o.E)
	}
	if !(o.Nu > -1 && o.Nu < 0.5) {
		return errs.New(errs.InvalidParameter, op, "Poisson's coefficient must satisfy -1 < ν < 0.5; ν = %g is invalid", o.Nu)
	}

	// derived
	o.Ndim, o.Nsig, o.Pstress = ndim, 4, pstress
	o.L = o.E * o.Nu / ((1.0 + o.Nu) * (1.0 - 2.0*o.Nu))
	o.G = o.E / (2.0 * (1.0 + o.Nu))
	o.K = o.E / (3.0 * (1.0 - 2.0*o.Nu))
	for _, v := range []float64{o.L, o.G, o.K} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errs.New(errs.InvalidParameter, op, "derived moduli are not finite: λ = %g, μ = %g, K = %g", o.L, o.G, o.K)
		}
	}
	return
}

// GetPrms gets (an example) of parameters
func (o SmallElasticity) GetPrms() dbf.Params {
	return dbf.Params{
		&dbf.P{N: "E", V: 70e9},
		&dbf.P{N: "nu", V: 0.35},
	}
}

// Strain computes the small strain tensor ε = sym(∇u)
//  Input:
//   G[nverts][2] -- gradients of shape functions
//   u[nverts][2] -- nodal displacements
//  Output:
//   ε[4] -- strains in Mandel's basis
func (o *SmallElasticity) Strain(ε []float64, G, u [][]float64) {
	ε[0], ε[1], ε[2], ε[3] = 0, 0, 0, 0
	for m := range G {
		ε[0] += G[m][0] * u[m][0]
		ε[1] += G[m][1] * u[m][1]
		ε[3] += (G[m][1]*u[m][0] + G[m][0]*u[m][1]) / utl.SQ2
	}
	if o.Pstress {
		ε[2] = -o.Nu / (1.0 - o.Nu) * (ε[0] + ε[1])
	}
}

// CalcStress computes σ = 2μ ε + λ tr(ε) I for plane-strain, or the
// plane-stress counterpart with σzz = 0
func (o *SmallElasticity) CalcStress(σ, ε []float64) {
	if o.Pstress {
		c := o.E / (1.0 - o.Nu*o.Nu)
		σ[0] = c * (ε[0] + o.Nu*ε[1])
		σ[1] = c * (o.Nu*ε[0] + ε[1])
		σ[2] = 0
		σ[3] = 2.0 * o.G * ε[3]
		return
	}
	trε := ε[0] + ε[1] + ε[2]
	for i := 0; i < o.Nsig; i++ {
		σ[i] = 2.0*o.G*ε[i] + o.L*trε*Im[i]
	}
}

// CalcD computes D = dσ/dε (constant)
func (o *SmallElasticity) CalcD(D [][]float64) {
	for i := 0; i < o.Nsig; i++ {
		for j := 0; j < o.Nsig; j++ {
			D[i][j] = 0
		}
	}
	if o.Pstress {
		c := o.E / (1.0 - o.Nu*o.Nu)
		D[0][0], D[0][1] = c, c*o.Nu
		D[1][0], D[1][1] = c*o.Nu, c
		D[3][3] = 2.0 * o.G
		return
	}
	for i := 0; i < o.Nsig; i++ {
		for j := 0; j < o.Nsig; j++ {
			D[i][j] = o.L * Im[i] * Im[j]
		}
		D[i][i] += 2.0 * o.G
	}
}
