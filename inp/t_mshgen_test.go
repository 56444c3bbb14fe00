// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"math"
	"testing"

	"github.com/cpmech/beamdefl/errs"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_mshgen01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mshgen01")

	geo, err := Rectangle(0.2, 0.02)
	if err != nil {
		tst.Errorf("Rectangle failed: %v", err)
		return
	}
	gen := &StructGen{Verbose: chk.Verbose}
	msh, err := gen.Generate(geo, 0.02/5.0)
	if err != nil {
		tst.Errorf("Generate failed: %v", err)
		return
	}

	// 71×8 divisions: spacing maxh/√2
	chk.Int(tst, "nverts", len(msh.Verts), 72*9)
	chk.Int(tst, "ncells", len(msh.Cells), 2*71*8)
	chk.Float64(tst, "area", 1e-15, msh.Area(), 0.004)
	chk.Float64(tst, "xmax", 1e-15, msh.Xmax, 0.2)
	chk.Float64(tst, "ymax", 1e-15, msh.Ymax, 0.02)

	// tagged facets
	chk.Int(tst, "nfix", len(msh.FaceTag2cells[Fixed]), 8)
	chk.Int(tst, "nforce", len(msh.FaceTag2cells[Loaded]), 8)
	chk.Int(tst, "nfree", len(msh.FaceTag2cells[Free]), 0)
	chk.Int(tst, "fix verts", len(msh.FaceTag2verts[Fixed]), 9)
	chk.Int(tst, "force verts", len(msh.FaceTag2verts[Loaded]), 9)
	for _, vid := range msh.FaceTag2verts[Fixed] {
		chk.Float64(tst, "x @ fix", 1e-17, msh.Verts[vid].C[0], 0)
	}
	for _, vid := range msh.FaceTag2verts[Loaded] {
		chk.Float64(tst, "x @ force", 1e-15, msh.Verts[vid].C[0], 0.2)
	}

	// element size
	if msh.MaxEdge() > 0.004 {
		tst.Errorf("max edge %g is too large", msh.MaxEdge())
	}
}

func Test_mshgen02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mshgen02")

	// trapezoid; tags follow edges
	geo, err := NewGeometry([][]float64{{0, 0}, {4, 0}, {3, 2}, {1, 2}}, []string{"fix", "", "force", ""})
	if err != nil {
		tst.Errorf("NewGeometry failed: %v", err)
		return
	}
	msh, err := new(StructGen).Generate(geo, 0.5)
	if err != nil {
		tst.Errorf("Generate failed: %v", err)
		return
	}
	chk.Float64(tst, "area", 1e-13, msh.Area(), 6)
	for _, vid := range msh.FaceTag2verts[Fixed] {
		chk.Float64(tst, "y @ fix", 1e-17, msh.Verts[vid].C[1], 0)
	}
	for _, vid := range msh.FaceTag2verts[Loaded] {
		chk.Float64(tst, "y @ force", 1e-15, msh.Verts[vid].C[1], 2)
	}

	// failures
	_, err = new(StructGen).Generate(geo, 0)
	if !errs.Is(err, errs.MeshGeneration) {
		tst.Errorf("maxh = 0 must fail. err = %v", err)
	}
	_, err = new(StructGen).Generate(geo, 1e-6)
	if !errs.Is(err, errs.MeshGeneration) {
		tst.Errorf("too many cells must fail. err = %v", err)
	}
	tri, err := NewGeometry([][]float64{{0, 0}, {1, 0}, {0, 1}}, []string{"", "", "fix"})
	if err != nil {
		tst.Errorf("NewGeometry failed: %v", err)
		return
	}
	_, err = new(StructGen).Generate(tri, 0.1)
	if !errs.Is(err, errs.MeshGeneration) {
		tst.Errorf("triangle domain must fail. err = %v", err)
	}
	dart, err := NewGeometry([][]float64{{0, 0}, {2, 1}, {4, 0}, {2, 3}}, []string{"", "", "", ""})
	if err != nil {
		tst.Errorf("NewGeometry failed: %v", err)
		return
	}
	_, err = new(StructGen).Generate(dart, 0.1)
	if !errs.Is(err, errs.MeshGeneration) {
		tst.Errorf("non-convex domain must fail. err = %v", err)
	}
}

func Test_mshgen03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mshgen03")

	// write generated mesh and read it back through FileGen
	geo, _ := Rectangle(1, 0.5)
	msh, err := new(StructGen).Generate(geo, 0.25)
	if err != nil {
		tst.Errorf("Generate failed: %v", err)
		return
	}
	dir := tst.TempDir()
	err = msh.WriteMsh(dir, "rect.msh")
	if err != nil {
		tst.Errorf("WriteMsh failed: %v", err)
		return
	}
	res, err := (&FileGen{Dir: dir, Fn: "rect.msh"}).Generate(geo, 0)
	if err != nil {
		tst.Errorf("FileGen failed: %v", err)
		return
	}
	chk.Int(tst, "nverts", len(res.Verts), len(msh.Verts))
	chk.Int(tst, "ncells", len(res.Cells), len(msh.Cells))
	chk.Ints(tst, "fix verts", res.FaceTag2verts[Fixed], msh.FaceTag2verts[Fixed])
	chk.Ints(tst, "force verts", res.FaceTag2verts[Loaded], msh.FaceTag2verts[Loaded])
	io.Pforan("%v\n", res.Cells[0])

	// mesh does not match geometry with swapped labels
	swapped, _ := NewGeometry(geo.P, []string{"", "fix", "", "force"})
	_, err = (&FileGen{Dir: dir, Fn: "rect.msh"}).Generate(swapped, 0)
	if !errs.Is(err, errs.MeshGeneration) {
		tst.Errorf("mismatched tags must fail. err = %v", err)
	}

	// missing file
	_, err = (&FileGen{Dir: dir, Fn: "none.msh"}).Generate(geo, 0)
	if !errs.Is(err, errs.MeshGeneration) {
		tst.Errorf("missing file must fail. err = %v", err)
	}
}

func Test_mshgen04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mshgen04. element size and cell limit")

	// longest edge never exceeds maxh; skewed domain needs refinement
	for _, pts := range [][][]float64{
		{{0, 0}, {0.2, 0}, {0.2, 0.02}, {0, 0.02}},
		{{0, 0}, {4, 0}, {3, 2}, {1, 2}},
		{{0, 0}, {1, 0}, {3, 1}, {2, 1}},
	} {
		geo, err := NewGeometry(pts, []string{"fix", "", "force", ""})
		if err != nil {
			tst.Errorf("NewGeometry failed: %v", err)
			return
		}
		size := math.Max(geo.EdgeLen(0), geo.EdgeLen(1))
		for _, maxh := range []float64{size, size / 3, size / 10} {
			msh, err := new(StructGen).Generate(geo, maxh)
			if err != nil {
				tst.Errorf("Generate failed: %v", err)
				return
			}
			io.Pforan("maxh = %-10g  max edge = %-10g  ncells = %d\n", maxh, msh.MaxEdge(), len(msh.Cells))
			if msh.MaxEdge() > maxh*(1+Ztol) {
				tst.Errorf("max edge %g exceeds maxh = %g", msh.MaxEdge(), maxh)
				return
			}
		}
	}

	// tiny sizes are rejected before any allocation
	geo, _ := Rectangle(0.2, 0.02)
	for _, maxh := range []float64{1e-12, 1e-300, math.SmallestNonzeroFloat64} {
		msh, err := new(StructGen).Generate(geo, maxh)
		if !errs.Is(err, errs.MeshGeneration) {
			tst.Errorf("maxh = %g must fail with a mesh generation error. err = %v", maxh, err)
		}
		if msh != nil {
			tst.Errorf("maxh = %g must not return a mesh", maxh)
		}
	}
}

func Test_mshgen05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mshgen05. vertex without cells")

	msh := &Mesh{
		Verts: []*Vert{
			{Id: 0, C: []float64{0, 0}},
			{Id: 1, C: []float64{1, 0}},
			{Id: 2, C: []float64{0, 1}},
			{Id: 3, C: []float64{5, 5}},
		},
		Cells: []*Cell{
			{Id: 0, Type: "tri3", Verts: []int{0, 1, 2}},
		},
	}
	err := msh.Init()
	io.Pforan("%v\n", err)
	if !errs.Is(err, errs.MeshGeneration) {
		tst.Errorf("orphan vertex must fail with a mesh generation error. err = %v", err)
	}

	// same mesh without the orphan
	msh.Verts = msh.Verts[:3]
	err = msh.Init()
	if err != nil {
		tst.Errorf("Init failed: %v", err)
		return
	}
	chk.Int(tst, "cells @ 2", len(msh.Vert2cells[2]), 1)
}
