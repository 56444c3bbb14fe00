// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/beamdefl/errs"
	"github.com/cpmech/beamdefl/inp"
	"github.com/cpmech/beamdefl/msolid"
	"github.com/cpmech/beamdefl/shp"
	"github.com/cpmech/gosl/utl"
)

// Local holds the contribution of one cell (or facet) to the global system.
// K is nil for right-hand side contributions and F is nil for matrix contributions
type Local struct {
	Eqs []int       // local equation => global equation
	K   [][]float64 // [len(Eqs)][len(Eqs)] local matrix
	F   []float64   // [len(Eqs)] local vector
}

// StiffnessForm implements the bilinear form of linear elasticity: ∫ ε(v) : σ(u) dΩ
type StiffnessForm struct {
	Mdl       msolid.Model // material model
	Thickness float64      // out-of-plane thickness
	Nip       int          // number of integration points; 0 => default
}

// TractionForm implements the linear form ∫ v · t dΓ over facets with a given tag
type TractionForm struct {
	Tag       inp.Btag  // facets where the traction is applied
	Traction  []float64 // traction vector t [ndim]
	Thickness float64   // out-of-plane thickness
	Nipf      int       // number of integration points on facets; 0 => default
}

// Locals computes the stiffness matrix of each cell:
//  K = Σ_ip Bᵀ · D · B · J · w · thickness
func (o *StiffnessForm) Locals(sp *Space) (locals []*Local, ips []shp.Ipoint, err error) {

	// integration points
	op := "fem.StiffnessForm"
	ips, _, err = shp.GetIps(sp.CellType, o.Nip, 0)
	if err != nil {
		return nil, nil, errs.Wrap(errs.Config, op, err)
	}

	// auxiliary
	sh := sp.NewShape()
	nu := sh.Nverts * sp.Ndim
	nsig := 2 * sp.Ndim
	B := utl.Alloc(nsig, nu)
	D := utl.Alloc(nsig, nsig)
	DB := utl.Alloc(nsig, nu)
	o.Mdl.CalcD(D)

	// cells
	locals = make([]*Local, len(sp.Msh.Cells))
	for cid := range sp.Msh.Cells {
		x := sp.CellCoords(cid)
		K := utl.Alloc(nu, nu)
		for _, ip := range ips {
			err = sh.CalcAtIp(x, ip, true)
			if err != nil {
				return nil, nil, errs.New(errs.MeshGeneration, op, "cell %d: %v", cid, err)
			}
			coef := sh.J * ip[3] * o.Thickness
			IpBmatrix(B, sp.Ndim, sh.Nverts, sh.G)
			for i := 0; i < nsig; i++ {
				for j := 0; j < nu; j++ {
					DB[i][j] = 0
					for k := 0; k < nsig; k++ {
						DB[i][j] += D[i][k] * B[k][j]
					}
				}
			}
			for i := 0; i < nu; i++ {
				for j := 0; j < nu; j++ {
					for k := 0; k < nsig; k++ {
						K[i][j] += coef * B[k][i] * DB[k][j]
					}
				}
			}
		}
		locals[cid] = &Local{Eqs: sp.Umaps[cid], K: K}
	}
	return
}

// Locals computes the load vector of each tagged facet:
//  f = Σ_ipf Sf · t · Jf · w · thickness
func (o *TractionForm) Locals(sp *Space) (locals []*Local, ipf []shp.Ipoint, err error) {

	// check
	op := "fem.TractionForm"
	if len(o.Traction) != sp.Ndim {
		return nil, nil, errs.New(errs.InvalidParameter, op, "traction must have %d components; %d is invalid", sp.Ndim, len(o.Traction))
	}
	_, ipf, err = shp.GetIps(sp.CellType, 0, o.Nipf)
	if err != nil {
		return nil, nil, errs.Wrap(errs.Config, op, err)
	}

	// facets
	sh := sp.NewShape()
	nu := sh.Nverts * sp.Ndim
	for _, pair := range sp.Msh.FaceTag2cells[o.Tag] {
		x := sp.CellCoords(pair.C.Id)
		F := make([]float64, nu)
		for _, ip := range ipf {
			err = sh.CalcAtFaceIp(x, ip, pair.Fid)
			if err != nil {
				return nil, nil, errs.New(errs.MeshGeneration, op, "cell %d, face %d: %v", pair.C.Id, pair.Fid, err)
			}
			coef := ip[3] * sh.Jf * o.Thickness
			for j, m := range sh.FaceLocalVerts[pair.Fid] {
				for i := 0; i < sp.Ndim; i++ {
					F[i+m*sp.Ndim] += coef * sh.Sf[j] * o.Traction[i]
				}
			}
		}
		locals = append(locals, &Local{Eqs: sp.Umaps[pair.C.Id], F: F})
	}
	return
}

// IpBmatrix computes the B matrix at an integration point, such that ε = B · u
//  Note: Mandel's basis with rows {xx, yy, zz, √2·xy}
func IpBmatrix(B [][]float64, ndim, nverts int, G [][]float64) {
	for i := range B {
		for j := range B[i] {
			B[i][j] = 0
		}
	}
	for m := 0; m < nverts; m++ {
		B[0][0+m*ndim] = G[m][0]
		B[1][1+m*ndim] = G[m][1]
		B[3][0+m*ndim] = G[m][1] / utl.SQ2
		B[3][1+m*ndim] = G[m][0] / utl.SQ2
	}
}
