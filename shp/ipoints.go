// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/integrate/quad"
)

// Ipoint holds integration point data: natural coordinates {r,s,t} and weight {w}
type Ipoint []float64

// ipsfactory holds integration points of triangles; weights sum up to 1/2
var ipsfactory = map[string][]Ipoint{
	"tri_1": {
		{1.0 / 3.0, 1.0 / 3.0, 0, 1.0 / 2.0},
	},
	"tri_3": {
		{1.0 / 6.0, 1.0 / 6.0, 0, 1.0 / 6.0},
		{2.0 / 3.0, 1.0 / 6.0, 0, 1.0 / 6.0},
		{1.0 / 6.0, 2.0 / 3.0, 0, 1.0 / 6.0},
	},
	"tri_6": {
		{0.445948490915965, 0.445948490915965, 0, 0.223381589678011 / 2.0},
		{0.108103018168070, 0.445948490915965, 0, 0.223381589678011 / 2.0},
		{0.445948490915965, 0.108103018168070, 0, 0.223381589678011 / 2.0},
		{0.091576213509771, 0.091576213509771, 0, 0.109951743655322 / 2.0},
		{0.816847572980459, 0.091576213509771, 0, 0.109951743655322 / 2.0},
		{0.091576213509771, 0.816847572980459, 0, 0.109951743655322 / 2.0},
	},
}

// default number of integration points per shape: {volume, face}
var ipsdefault = map[string][2]int{
	"tri3": {1, 2},
	"tri6": {3, 3},
}

// LegendreIps returns n Gauss-Legendre points over [-1, 1]
func LegendreIps(n int) (ips []Ipoint) {
	if n < 1 {
		chk.Panic("LegendreIps: number of points must be positive. %d is invalid", n)
	}
	x := make([]float64, n)
	w := make([]float64, n)
	quad.Legendre{}.FixedLocations(x, w, -1, 1)
	ips = make([]Ipoint, n)
	for i := 0; i < n; i++ {
		ips[i] = Ipoint{x[i], 0, 0, w[i]}
	}
	return
}

// GetIps returns the integration points of a shape and of its faces
//  Input:
//   geoType -- shape name; e.g. "tri6"
//   nip     -- number of volume points; 0 => use default
//   nipf    -- number of face points; 0 => use default
func GetIps(geoType string, nip, nipf int) (ips, ipf []Ipoint, err error) {
	def, ok := ipsdefault[geoType]
	if !ok {
		return nil, nil, chk.Err("GetIps: cannot find integration points for %q", geoType)
	}
	if nip == 0 {
		nip = def[0]
	}
	if nipf == 0 {
		nipf = def[1]
	}
	key := io.Sf("tri_%d", nip)
	ips, ok = ipsfactory[key]
	if !ok {
		return nil, nil, chk.Err("GetIps: number of integration points %d is not available for %q; use 1, 3 or 6", nip, geoType)
	}
	if nipf < 1 || nipf > 10 {
		return nil, nil, chk.Err("GetIps: number of face integration points %d is invalid; use 1 to 10", nipf)
	}
	ipf = LegendreIps(nipf)
	return
}
