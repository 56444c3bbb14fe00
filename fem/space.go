// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/beamdefl/errs"
	"github.com/cpmech/beamdefl/inp"
	"github.com/cpmech/beamdefl/shp"
	"github.com/cpmech/gosl/utl"
)

// Node holds node data. Nodes are either mesh vertices or edge midpoints
type Node struct {
	Id   int       // node id
	Vert int       // vertex id; -1 for edge-midpoint nodes
	X    []float64 // coordinates
	Eqs  []int     // equation numbers: ux, uy
}

// Space holds the vector-valued polynomial space of displacements over a mesh
type Space struct {
	Msh       *inp.Mesh // mesh
	Degree    int       // polynomial degree: 1 or 2
	CellType  string    // shape of cells; e.g. "tri6"
	Ndim      int       // space dimension
	Nodes     []*Node   // all nodes
	Cell2node [][]int   // [ncells][nnodes] local node => node id
	Umaps     [][]int   // [ncells][nnodes*ndim] local equation => global equation
	Vert2node []int     // [nverts] vertex id => node id
	Neq       int       // number of equations
	Fixed     []bool    // [neq] constrained equations
	Free      []int     // free equations in increasing order
}

// celltypes maps polynomial degrees to shapes
var celltypes = map[int]string{1: "tri3", 2: "tri6"}

// edge identifies a mesh edge by its sorted vertices
type edge struct{ a, b int }

// NewSpace allocates nodes and equations. Equations of nodes on Fixed facets are constrained
func NewSpace(msh *inp.Mesh, degree int) (o *Space, err error) {

	// check
	op := "fem.NewSpace"
	if msh == nil {
		return nil, errs.New(errs.MeshGeneration, op, "mesh is missing")
	}
	ctype, ok := celltypes[degree]
	if !ok {
		return nil, errs.New(errs.Config, op, "polynomial degree must be 1 or 2; %d is invalid", degree)
	}
	sh := shp.Get(ctype)

	// vertex nodes
	o = &Space{Msh: msh, Degree: degree, CellType: ctype, Ndim: msh.Ndim}
	o.Vert2node = make([]int, len(msh.Verts))
	for _, v := range msh.Verts {
		o.Vert2node[v.Id] = o.addNode(v.Id, v.C)
	}

	// cell nodes; edge nodes are shared by neighbours
	edge2node := make(map[edge]int)
	o.Cell2node = make([][]int, len(msh.Cells))
	o.Umaps = make([][]int, len(msh.Cells))
	for _, c := range msh.Cells {
		nodes := make([]int, sh.Nverts)
		for l, v := range c.Verts {
			nodes[l] = o.Vert2node[v]
		}
		if sh.Nverts > len(c.Verts) {
			for fid, lverts := range sh.FaceLocalVerts {
				va, vb := c.Verts[lverts[0]], c.Verts[lverts[1]]
				if va > vb {
					va, vb = vb, va
				}
				key := edge{va, vb}
				nid, found := edge2node[key]
				if !found {
					xa, xb := msh.Verts[va].C, msh.Verts[vb].C
					nid = o.addNode(-1, []float64{(xa[0] + xb[0]) / 2, (xa[1] + xb[1]) / 2})
					edge2node[key] = nid
				}
				nodes[sh.FaceLocalVerts[fid][2]] = nid
			}
		}
		o.Cell2node[c.Id] = nodes
		umap := make([]int, 0, sh.Nverts*o.Ndim)
		for _, nid := range nodes {
			umap = append(umap, o.Nodes[nid].Eqs...)
		}
		o.Umaps[c.Id] = umap
	}

	// essential boundary conditions
	o.Fixed = make([]bool, o.Neq)
	for _, pair := range msh.FaceTag2cells[inp.Fixed] {
		for _, l := range sh.FaceLocalVerts[pair.Fid] {
			for _, eq := range o.Nodes[o.Cell2node[pair.C.Id][l]].Eqs {
				o.Fixed[eq] = true
			}
		}
	}
	for eq, fixed := range o.Fixed {
		if !fixed {
			o.Free = append(o.Free, eq)
		}
	}
	return
}

// addNode appends a new node with its equations
func (o *Space) addNode(vid int, x []float64) (nid int) {
	nid = len(o.Nodes)
	eqs := make([]int, o.Ndim)
	for i := range eqs {
		eqs[i] = o.Neq
		o.Neq++
	}
	o.Nodes = append(o.Nodes, &Node{Id: nid, Vert: vid, X: x, Eqs: eqs})
	return
}

// Nfixed returns the number of constrained equations
func (o *Space) Nfixed() int {
	return o.Neq - len(o.Free)
}

// NewShape returns a new shape structure for the cells of this space
func (o *Space) NewShape() *shp.Shape {
	return shp.Get(o.CellType)
}

// CellCoords returns the coordinates matrix x[ndim][nnodes] of the nodes of a cell
func (o *Space) CellCoords(cid int) (x [][]float64) {
	nodes := o.Cell2node[cid]
	x = utl.Alloc(o.Ndim, len(nodes))
	for j, nid := range nodes {
		for i := 0; i < o.Ndim; i++ {
			x[i][j] = o.Nodes[nid].X[i]
		}
	}
	return
}
