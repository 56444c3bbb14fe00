// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package msolid implements models for solids based on continuum mechanics
package msolid

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Model defines solid models for small strain analyses in Mandel's basis
type Model interface {
	Init(ndim int, pstress bool, prms dbf.Params) error // Init initialises model
	GetPrms() dbf.Params                                // gets (an example) of parameters
	Strain(ε []float64, G, u [][]float64)               // Strain computes ε = sym(∇u) from shape gradients
	CalcStress(σ, ε []float64)                          // CalcStress computes σ(ε)
	CalcD(D [][]float64)                                // CalcD computes D = dσ/dε
}

// allocators holds all available models
var allocators = make(map[string]func() Model)

// New returns a new (uninitialised) model
func New(name string) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("msolid: model %q is not available; use one of %v", name, Names())
	}
	return allocator(), nil
}

// Names returns the names of available models
func Names() (names []string) {
	for name := range allocators {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}
