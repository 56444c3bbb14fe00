// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"sync"

	"github.com/cpmech/beamdefl/errs"
	"github.com/cpmech/beamdefl/inp"
)

// Refine runs one analysis per maximum element size. Each analysis runs in its own
// goroutine with its own copy of the problem; results follow the order of maxhs
func Refine(prob inp.Problem, maxhs []float64) (res []*Result, err error) {

	// check
	if len(maxhs) == 0 {
		return nil, errs.New(errs.Config, "fem.Refine", "at least one element size is required")
	}
	if prob.Mesh.File != "" {
		return nil, errs.New(errs.Config, "fem.Refine", "refinement requires the structured generator; mesh file %q is given", prob.Mesh.File)
	}

	// run
	res = make([]*Result, len(maxhs))
	errors := make([]error, len(maxhs))
	var wg sync.WaitGroup
	for i, maxh := range maxhs {
		p := prob
		p.Verbose = false
		p.Mesh.Maxh = maxh
		wg.Add(1)
		go func(i int, p inp.Problem) {
			defer wg.Done()
			res[i], errors[i] = Run(p)
		}(i, p)
	}
	wg.Wait()

	// first error
	for _, e := range errors {
		if e != nil {
			return nil, e
		}
	}
	return
}
