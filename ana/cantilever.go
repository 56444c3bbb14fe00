// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements analytical solutions
package ana

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Cantilever implements beam-theory solutions for a cantilever with a tip load
//
//      y ^
//        |                     F
//       ▷|---------------------↓
//       ▷|   E, ν              | H
//       ▷|---------------------| ---> x
//        |<-------- L -------->|
//
//  The cross-section is W (width) × H (height)
type Cantilever struct {

	// input
	L       float64 // length
	H       float64 // height
	W       float64 // width
	F       float64 // tip force
	E       float64 // Young's modulus
	ν       float64 // Poisson's coefficient
	κ       float64 // shear correction coefficient
	pstrain bool    // use the plane-strain modulus E/(1-ν²)

	// derived
	I  float64 // second moment of area
	Ee float64 // effective Young's modulus
	G  float64 // shear modulus
}

// Init initialises this structure
func (o *Cantilever) Init(prms dbf.Params) (err error) {

	// default values
	o.L = 0.2
	o.H = 0.02
	o.W = 0.03
	o.F = -100
	o.E = 70e9
	o.ν = 0.35
	o.κ = 5.0 / 6.0
	o.pstrain = true

	// parameters
	for _, p := range prms {
		switch p.N {
		case "L":
			o.L = p.V
		case "H":
			o.H = p.V
		case "W":
			o.W = p.V
		case "F":
			o.F = p.V
		case "E":
			o.E = p.V
		case "nu":
			o.ν = p.V
		case "kappa":
			o.κ = p.V
		case "pstrain":
			o.pstrain = p.V > 0
		default:
			return chk.Err("Cantilever: parameter named %q is incorrect", p.N)
		}
	}

	// check
	if o.L <= 0 || o.H <= 0 || o.W <= 0 || o.E <= 0 || o.κ <= 0 {
		return chk.Err("Cantilever: L, H, W, E and kappa must be positive")
	}
	if o.ν <= -1 || o.ν >= 0.5 {
		return chk.Err("Cantilever: ν = %g is invalid", o.ν)
	}

	// derived
	o.I = o.W * math.Pow(o.H, 3) / 12.0
	o.Ee = o.E
	if o.pstrain {
		o.Ee = o.E / (1.0 - o.ν*o.ν)
	}
	o.G = o.E / (2.0 * (1.0 + o.ν))
	return
}

// Deflection computes the Euler-Bernoulli deflection @ x
//  v(x) = F x² (3 L - x) / (6 E I)
func (o *Cantilever) Deflection(x float64) float64 {
	return o.F * x * x * (3.0*o.L - x) / (6.0 * o.Ee * o.I)
}

// EulerBernoulli returns the tip deflection F L³ / (3 E I)
func (o *Cantilever) EulerBernoulli() float64 {
	return o.Deflection(o.L)
}

// Timoshenko returns the tip deflection including shear: F L³ / (3 E I) + F L / (κ G A)
func (o *Cantilever) Timoshenko() float64 {
	return o.EulerBernoulli() + o.F*o.L/(o.κ*o.G*o.W*o.H)
}
