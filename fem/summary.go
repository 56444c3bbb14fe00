// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Summary records the sizes and timings of a run
type Summary struct {

	// main data
	Key        string  `json:"key"`        // filename key of simulation
	Deflection float64 `json:"deflection"` // mean vertical displacement at the free end
	Compliance float64 `json:"compliance"` // external work f · u
	Degree     int     `json:"degree"`     // polynomial degree
	Nverts     int     `json:"nverts"`     // number of mesh vertices
	Ncells     int     `json:"ncells"`     // number of cells
	Nnodes     int     `json:"nnodes"`     // number of nodes of the space
	Neq        int     `json:"neq"`        // number of equations
	Nfree      int     `json:"nfree"`      // number of free equations
	Nnz        int     `json:"nnz"`        // non-zeros of the assembled matrix
	Asym       float64 `json:"asym"`       // relative asymmetry of the assembled matrix
	Solver     string  `json:"solver"`     // linear solver

	// timings
	TimeMesh     time.Duration `json:"time_mesh"`     // mesh generation
	TimeAssembly time.Duration `json:"time_assembly"` // forms and assembly
	TimeSolve    time.Duration `json:"time_solve"`    // restriction, factorisation and solution
	TimeTotal    time.Duration `json:"time_total"`    // whole pipeline
}

// Print prints the summary
func (o *Summary) Print() {
	io.Pf("vertices = %d  cells = %d  degree = %d\n", o.Nverts, o.Ncells, o.Degree)
	io.Pf("nodes    = %d  equations = %d  free = %d  nnz(K) = %d\n", o.Nnodes, o.Neq, o.Nfree, o.Nnz)
	io.Pf("asymmetry of K = %g  solver = %s  f·u = %g\n", o.Asym, o.Solver, o.Compliance)
	io.Pf("time: mesh = %v  assembly = %v  solve = %v\n", o.TimeMesh, o.TimeAssembly, o.TimeSolve)
	io.Pflmag("cpu time   = %v\n", o.TimeTotal)
}

// Save saves summary to dir/key_sum.json
func (o Summary) Save(dir string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = chk.Err("cannot save summary: %v", r)
		}
	}()
	b, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return
	}
	io.WriteFileD(dir, out_sum_fn(o.Key), bytes.NewBuffer(b))
	return
}

// ReadSum reads summary back
func ReadSum(dir, key string) (o *Summary, err error) {
	b, err := os.ReadFile(filepath.Join(dir, out_sum_fn(key)))
	if err != nil {
		return nil, chk.Err("cannot read summary: %v", err)
	}
	o = new(Summary)
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("cannot decode summary: %v", err)
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func out_sum_fn(key string) string {
	return io.Sf("%s_sum.json", key)
}
