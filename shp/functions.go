// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

// register shapes
func init() {

	// lin2
	factory["lin2"] = &Shape{
		Type:      "lin2",
		Func:      Lin2Func,
		BasicType: "lin2",
		Gndim:     1,
		Nverts:    2,
		VtkCode:   VTK_LINE,
		NatCoords: [][]float64{{-1, 1}},
	}

	// lin3
	factory["lin3"] = &Shape{
		Type:      "lin3",
		Func:      Lin3Func,
		BasicType: "lin2",
		Gndim:     1,
		Nverts:    3,
		VtkCode:   VTK_QUADRATIC_EDGE,
		NatCoords: [][]float64{{-1, 1, 0}},
	}

	// tri3
	factory["tri3"] = &Shape{
		Type:           "tri3",
		Func:           Tri3Func,
		FaceFunc:       Lin2Func,
		BasicType:      "tri3",
		FaceType:       "lin2",
		Gndim:          2,
		Nverts:         3,
		VtkCode:        VTK_TRIANGLE,
		FaceNvertsMax:  2,
		FaceLocalVerts: [][]int{{0, 1}, {1, 2}, {2, 0}},
		NatCoords: [][]float64{
			{0, 1, 0},
			{0, 0, 1},
		},
	}

	// tri6
	factory["tri6"] = &Shape{
		Type:           "tri6",
		Func:           Tri6Func,
		FaceFunc:       Lin3Func,
		BasicType:      "tri3",
		FaceType:       "lin3",
		Gndim:          2,
		Nverts:         6,
		VtkCode:        VTK_QUADRATIC_TRIANGLE,
		FaceNvertsMax:  3,
		FaceLocalVerts: [][]int{{0, 1, 3}, {1, 2, 4}, {2, 0, 5}},
		NatCoords: [][]float64{
			{0, 1, 0, 0.5, 0.5, 0},
			{0, 0, 1, 0, 0.5, 0.5},
		},
	}

	for _, s := range factory {
		s.init_scratchpad()
	}
}

// VTK codes
const (
	VTK_LINE               = 3
	VTK_TRIANGLE           = 5
	VTK_QUADRATIC_EDGE     = 21
	VTK_QUADRATIC_TRIANGLE = 22
)

// Lin2Func calculates the shape functions (S) and derivatives of shape functions (dSdR) of lin2
// elements at {r,s,t} natural coordinates. The derivatives are calculated only if derivs==true.
//
//   -1     0    +1
//    0-----------1-->r
func Lin2Func(S []float64, dSdR [][]float64, R []float64, derivs bool) {
	r := R[0]
	S[0] = 0.5 * (1.0 - r)
	S[1] = 0.5 * (1.0 + r)
	if !derivs {
		return
	}
	dSdR[0][0] = -0.5
	dSdR[1][0] = 0.5
}

// Lin3Func calculates the shape functions (S) and derivatives of shape functions (dSdR) of lin3
// elements at {r,s,t} natural coordinates. The derivatives are calculated only if derivs==true.
//
//   -1     0    +1
//    0-----2-----1-->r
func Lin3Func(S []float64, dSdR [][]float64, R []float64, derivs bool) {
	r := R[0]
	S[0] = 0.5 * (r*r - r)
	S[1] = 0.5 * (r*r + r)
	S[2] = 1.0 - r*r
	if !derivs {
		return
	}
	dSdR[0][0] = r - 0.5
	dSdR[1][0] = r + 0.5
	dSdR[2][0] = -2.0 * r
}

// Tri3Func calculates the shape functions (S) and derivatives of shape functions (dSdR) of tri3
// elements at {r,s,t} natural coordinates. The derivatives are calculated only if derivs==true.
//
//    s
//    |
//    2, (0,1)
//    | ',
//    |   ',
//    |     ',
//    |       ',
//    |         ',
//    |           ',
//    |             ',
//    | (0,0)         ', (1,0)
//    0-----------------1 ---- r
func Tri3Func(S []float64, dSdR [][]float64, R []float64, derivs bool) {
	r, s := R[0], R[1]
	S[0] = 1.0 - r - s
	S[1] = r
	S[2] = s
	if !derivs {
		return
	}
	dSdR[0][0], dSdR[0][1] = -1.0, -1.0
	dSdR[1][0], dSdR[1][1] = 1.0, 0.0
	dSdR[2][0], dSdR[2][1] = 0.0, 1.0
}

// Tri6Func calculates the shape functions (S) and derivatives of shape functions (dSdR) of tri6
// elements at {r,s,t} natural coordinates. The derivatives are calculated only if derivs==true.
//
//    s
//    |
//    2, (0,1)
//    | ',
//    |   ',
//    |     ',
//    |       ',
//    5         4,
//    | (0,.5)    ', (.5,.5)
//    |             ',
//    | (0,0)   (.5,0) ', (1,0)
//    0---------3-------1 ---- r
func Tri6Func(S []float64, dSdR [][]float64, R []float64, derivs bool) {
	r, s := R[0], R[1]
	t := 1.0 - r - s
	S[0] = t * (2.0*t - 1.0)
	S[1] = r * (2.0*r - 1.0)
	S[2] = s * (2.0*s - 1.0)
	S[3] = 4.0 * r * t
	S[4] = 4.0 * r * s
	S[5] = 4.0 * s * t
	if !derivs {
		return
	}
	dSdR[0][0], dSdR[0][1] = 1.0-4.0*t, 1.0-4.0*t
	dSdR[1][0], dSdR[1][1] = 4.0*r-1.0, 0.0
	dSdR[2][0], dSdR[2][1] = 0.0, 4.0*s-1.0
	dSdR[3][0], dSdR[3][1] = 4.0*(t-r), -4.0*r
	dSdR[4][0], dSdR[4][1] = 4.0*s, 4.0*r
	dSdR[5][0], dSdR[5][1] = -4.0*s, 4.0*(t-s)
}
